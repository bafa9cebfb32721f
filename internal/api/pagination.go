package api

import (
	"net/http"
	"strconv"
)

// TotalCountHeader carries the server-side total item count on list responses.
// Its presence signals that the server paginated the result.
const TotalCountHeader = "X-Total-Count"

// Page is one page of a list result. When the server did not advertise a
// total, the full result set was returned and callers paginate client-side.
type Page[T any] struct {
	Items []T
	// Total is the server-reported total, or len(Items) when the server did
	// not paginate.
	Total int
	// ServerPaginated reports whether the total came from the server.
	ServerPaginated bool
}

func newPage[T any](items []T, header http.Header) *Page[T] {
	page := &Page[T]{Items: items, Total: len(items)}
	raw := header.Get(TotalCountHeader)
	if raw == "" {
		return page
	}
	total, err := strconv.Atoi(raw)
	if err != nil || total < 0 {
		// A malformed header downgrades to client-side pagination.
		return page
	}
	page.Total = total
	page.ServerPaginated = true
	return page
}
