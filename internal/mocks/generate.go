// Package mocks contains generated gomock doubles for the client's ports.
// Regenerate after changing the interfaces in internal/ports.
package mocks

//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=token_store_mock.go github.com/TheManchineel/ludika-go/internal/ports TokenStore

//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=navigator_mock.go github.com/TheManchineel/ludika-go/internal/ports Navigator
