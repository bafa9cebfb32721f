package api

// Package api exposes typed clients for each Ludika resource. All requests go
// through the authenticated gateway, so 401 handling never leaks into callers.

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/TheManchineel/ludika-go/internal/domain/model"
	"github.com/TheManchineel/ludika-go/internal/transport"
)

// Games is the client for the games resource.
type Games struct {
	gw *transport.Gateway
}

// NewGames constructs a Games client over gw.
func NewGames(gw *transport.Gateway) *Games {
	return &Games{gw: gw}
}

// ListGamesParams filters and paginates a game listing.
type ListGamesParams struct {
	Search string
	// Tags restricts results to games carrying any of these tag ids.
	Tags  []int
	Page  int
	Limit int
}

func (p ListGamesParams) values() url.Values {
	q := url.Values{}
	if p.Search != "" {
		q.Set("search", p.Search)
	}
	if len(p.Tags) > 0 {
		ids := make([]string, 0, len(p.Tags))
		for _, id := range p.Tags {
			ids = append(ids, strconv.Itoa(id))
		}
		q.Set("tags", strings.Join(ids, ","))
	}
	if p.Page > 0 {
		q.Set("page", strconv.Itoa(p.Page))
	}
	if p.Limit > 0 {
		q.Set("limit", strconv.Itoa(p.Limit))
	}
	return q
}

// List retrieves approved games with search, tag filtering, and pagination.
// Anonymous access is permitted; authenticated callers see the same set.
func (c *Games) List(ctx context.Context, params ListGamesParams) (*Page[model.Game], error) {
	var games []model.Game
	resp, err := c.gw.GetJSON(ctx, "/games/", params.values(), &games)
	if err != nil {
		return nil, err
	}
	return newPage(games, resp.Header), nil
}

// MyGames retrieves the games proposed by the current user.
func (c *Games) MyGames(ctx context.Context, params ListGamesParams) (*Page[model.Game], error) {
	var games []model.Game
	resp, err := c.gw.GetJSON(ctx, "/games/my-games", params.values(), &games)
	if err != nil {
		return nil, err
	}
	return newPage(games, resp.Header), nil
}

// WaitingForApproval retrieves submitted games pending moderation (privileged only).
func (c *Games) WaitingForApproval(ctx context.Context, params ListGamesParams) (*Page[model.Game], error) {
	var games []model.Game
	resp, err := c.gw.GetJSON(ctx, "/games/waiting-for-approval", params.values(), &games)
	if err != nil {
		return nil, err
	}
	return newPage(games, resp.Header), nil
}

// Get retrieves a single game by id.
func (c *Games) Get(ctx context.Context, id int) (*model.Game, error) {
	var game model.Game
	if _, err := c.gw.GetJSON(ctx, fmt.Sprintf("/games/%d", id), nil, &game); err != nil {
		return nil, err
	}
	return &game, nil
}

// GetWithReviews retrieves a game together with its reviews.
func (c *Games) GetWithReviews(ctx context.Context, id int) (*model.GameWithReviews, error) {
	var game model.GameWithReviews
	if _, err := c.gw.GetJSON(ctx, fmt.Sprintf("/games/%d/with-reviews", id), nil, &game); err != nil {
		return nil, err
	}
	return &game, nil
}

// Create proposes a new game. The server assigns draft status and ownership.
func (c *Games) Create(ctx context.Context, in model.GameCreate) (*model.Game, error) {
	var game model.Game
	if _, err := c.gw.PostJSON(ctx, "/games/", in, &game); err != nil {
		return nil, err
	}
	return &game, nil
}

// Update applies a partial update to a game.
func (c *Games) Update(ctx context.Context, id int, in model.GameUpdate) (*model.Game, error) {
	var game model.Game
	if _, err := c.gw.PatchJSON(ctx, fmt.Sprintf("/games/%d", id), in, &game); err != nil {
		return nil, err
	}
	return &game, nil
}

// Submit moves a draft into the moderation queue.
func (c *Games) Submit(ctx context.Context, id int) (*model.Game, error) {
	status := model.GameStatusSubmitted
	return c.Update(ctx, id, model.GameUpdate{Status: &status})
}

// Delete removes a game.
func (c *Games) Delete(ctx context.Context, id int) error {
	return c.gw.Delete(ctx, fmt.Sprintf("/games/%d", id))
}

// AddImage uploads a new image for a game, appended after the existing ones.
func (c *Games) AddImage(ctx context.Context, id int, filename string, r io.Reader) error {
	return c.gw.Upload(ctx, http.MethodPost, fmt.Sprintf("/games/%d/images", id), "file", filename, r, nil)
}

// ReplaceImage overwrites the image at position.
func (c *Games) ReplaceImage(ctx context.Context, id, position int, filename string, r io.Reader) error {
	return c.gw.Upload(
		ctx, http.MethodPut, fmt.Sprintf("/games/%d/images/%d", id, position), "file", filename, r, nil)
}

// DeleteImage removes the image at position.
func (c *Games) DeleteImage(ctx context.Context, id, position int) error {
	return c.gw.Delete(ctx, fmt.Sprintf("/games/%d/images/%d", id, position))
}
