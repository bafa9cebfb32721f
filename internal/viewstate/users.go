package viewstate

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/TheManchineel/ludika-go/internal/domain/model"
)

// UserDirectory is the slice of the users client the view needs.
type UserDirectory interface {
	List(ctx context.Context) ([]model.User, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// Users is the observable state of the user administration listing.
type Users struct {
	client UserDirectory

	mu        sync.Mutex
	users     []model.User
	loading   bool
	deleting  bool
	errMsg    string
	deleteErr string
}

// NewUsers constructs a Users view over client.
func NewUsers(client UserDirectory) *Users {
	return &Users{client: client}
}

// UsersSnapshot is a point-in-time copy of the view state.
type UsersSnapshot struct {
	Users     []model.User
	Loading   bool
	Deleting  bool
	Err       string
	DeleteErr string
}

// Fetch loads the user list. Failures are recorded, not returned.
func (v *Users) Fetch(ctx context.Context) {
	v.mu.Lock()
	v.loading = true
	v.errMsg = ""
	v.mu.Unlock()

	users, err := v.client.List(ctx)

	v.mu.Lock()
	defer v.mu.Unlock()
	v.loading = false
	if err != nil {
		v.errMsg = "Failed to fetch users"
		return
	}
	v.users = users
}

// Delete removes a user and, on success, drops them from the local list.
// The error is recorded and also returned so the caller can keep its
// confirmation dialog open.
func (v *Users) Delete(ctx context.Context, id uuid.UUID) error {
	v.mu.Lock()
	v.deleting = true
	v.deleteErr = ""
	v.mu.Unlock()

	err := v.client.Delete(ctx, id)

	v.mu.Lock()
	defer v.mu.Unlock()
	v.deleting = false
	if err != nil {
		v.deleteErr = "Failed to delete user"
		return err
	}

	kept := v.users[:0]
	for _, u := range v.users {
		if u.UUID != id {
			kept = append(kept, u)
		}
	}
	v.users = kept
	return nil
}

// Snapshot returns a copy of the current state.
func (v *Users) Snapshot() UsersSnapshot {
	v.mu.Lock()
	defer v.mu.Unlock()
	users := make([]model.User, len(v.users))
	copy(users, v.users)
	return UsersSnapshot{
		Users:     users,
		Loading:   v.loading,
		Deleting:  v.deleting,
		Err:       v.errMsg,
		DeleteErr: v.deleteErr,
	}
}
