package api

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/TheManchineel/ludika-go/internal/domain/model"
	"github.com/TheManchineel/ludika-go/internal/transport"
)

// Users is the client for the user administration resource. Most operations
// require a privileged role; the server enforces this.
type Users struct {
	gw *transport.Gateway
}

// NewUsers constructs a Users client over gw.
func NewUsers(gw *transport.Gateway) *Users {
	return &Users{gw: gw}
}

// List retrieves all users (privileged only).
func (c *Users) List(ctx context.Context) ([]model.User, error) {
	var users []model.User
	if _, err := c.gw.GetJSON(ctx, "/users/", nil, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// Get retrieves one user by id (privileged only).
func (c *Users) Get(ctx context.Context, id uuid.UUID) (*model.User, error) {
	var user model.User
	if _, err := c.gw.GetJSON(ctx, "/users/"+id.String(), nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// Delete removes a user (administrators only).
func (c *Users) Delete(ctx context.Context, id uuid.UUID) error {
	return c.gw.Delete(ctx, "/users/"+id.String())
}

// DeleteGames removes every game proposed by a user (privileged only).
func (c *Users) DeleteGames(ctx context.Context, id uuid.UUID) error {
	return c.gw.Delete(ctx, fmt.Sprintf("/users/%s/games", id))
}

// AdminUpdate changes a user's enabled flag or role (privileged only; role
// changes additionally require the administrator role server-side).
func (c *Users) AdminUpdate(ctx context.Context, id uuid.UUID, in model.UserAdminUpdate) (*model.User, error) {
	var user model.User
	if _, err := c.gw.PatchJSON(ctx, "/users/"+id.String(), in, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateVisibleName changes the current user's display name.
func (c *Users) UpdateVisibleName(ctx context.Context, name string) (*model.User, error) {
	in := struct {
		VisibleName string `json:"visible_name"`
	}{VisibleName: name}

	var user model.User
	if _, err := c.gw.PatchJSON(ctx, "/users/me/visible-name", in, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdatePassword changes the current user's password.
func (c *Users) UpdatePassword(ctx context.Context, password string) error {
	in := struct {
		Password string `json:"password"`
	}{Password: password}
	_, err := c.gw.PatchJSON(ctx, "/users/me/password", in, nil)
	return err
}
