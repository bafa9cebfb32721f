package viewstate

// Package viewstate holds observable per-resource UI state: the last fetched
// items, a loading flag, and a human-readable error. Fetch failures land in the
// error field instead of propagating, so a view can render "failed to fetch"
// and offer a retry; mutating operations record the error and still return it
// so forms can react. Same discipline as the session store: only the methods
// here write, everyone else reads snapshots.

import (
	"context"
	"sync"

	"github.com/TheManchineel/ludika-go/internal/api"
	"github.com/TheManchineel/ludika-go/internal/domain/model"
)

// GameLister is the slice of the games client the view needs.
type GameLister interface {
	List(ctx context.Context, params api.ListGamesParams) (*api.Page[model.Game], error)
}

// Games is the observable state of a game listing.
type Games struct {
	client GameLister

	mu      sync.Mutex
	games   []model.Game
	total   int
	loading bool
	errMsg  string
}

// NewGames constructs a Games view over client.
func NewGames(client GameLister) *Games {
	return &Games{client: client}
}

// GamesSnapshot is a point-in-time copy of the view state.
type GamesSnapshot struct {
	Games   []model.Game
	Total   int
	Loading bool
	// Err is empty when the last fetch succeeded.
	Err string
}

// Fetch loads a page of games. Failures are recorded in the snapshot error
// rather than returned; the caller may simply fetch again. Two overlapping
// fetches resolve in arrival order and the later one wins.
func (v *Games) Fetch(ctx context.Context, params api.ListGamesParams) {
	v.mu.Lock()
	v.loading = true
	v.errMsg = ""
	v.mu.Unlock()

	page, err := v.client.List(ctx, params)

	v.mu.Lock()
	defer v.mu.Unlock()
	v.loading = false
	if err != nil {
		v.errMsg = "Failed to fetch games"
		return
	}
	v.games = page.Items
	v.total = page.Total
}

// Snapshot returns a copy of the current state.
func (v *Games) Snapshot() GamesSnapshot {
	v.mu.Lock()
	defer v.mu.Unlock()
	games := make([]model.Game, len(v.games))
	copy(games, v.games)
	return GamesSnapshot{
		Games:   games,
		Total:   v.total,
		Loading: v.loading,
		Err:     v.errMsg,
	}
}
