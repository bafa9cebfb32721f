package api

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/TheManchineel/ludika-go/internal/domain/model"
	apperrors "github.com/TheManchineel/ludika-go/internal/errors"
	"github.com/TheManchineel/ludika-go/internal/transport"
)

// Reviews is the client for review criteria and per-game reviews.
type Reviews struct {
	gw *transport.Gateway
}

// NewReviews constructs a Reviews client over gw.
func NewReviews(gw *transport.Gateway) *Reviews {
	return &Reviews{gw: gw}
}

// Criteria retrieves the rating dimensions reviews are scored against.
func (c *Reviews) Criteria(ctx context.Context) ([]model.ReviewCriterion, error) {
	var criteria []model.ReviewCriterion
	if _, err := c.gw.GetJSON(ctx, "/reviews/criteria", nil, &criteria); err != nil {
		return nil, err
	}
	return criteria, nil
}

// Get retrieves a single review by id.
func (c *Reviews) Get(ctx context.Context, id int) (*model.Review, error) {
	var review model.Review
	if _, err := c.gw.GetJSON(ctx, fmt.Sprintf("/reviews/%d", id), nil, &review); err != nil {
		return nil, err
	}
	return &review, nil
}

// MyReview retrieves the current user's review of a game. Having no review yet
// is a normal state, not a failure: it yields (nil, nil).
func (c *Reviews) MyReview(ctx context.Context, gameID int) (*model.Review, error) {
	var review model.Review
	_, err := c.gw.GetJSON(ctx, fmt.Sprintf("/reviews/%d/my-review", gameID), nil, &review)
	if apperrors.IsNotFound(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &review, nil
}

// SubmitMine creates or replaces the current user's review of a game.
func (c *Reviews) SubmitMine(ctx context.Context, gameID int, in model.ReviewCreate) (*model.Review, error) {
	var review model.Review
	if _, err := c.gw.PutJSON(ctx, fmt.Sprintf("/reviews/%d/my-review", gameID), in, &review); err != nil {
		return nil, err
	}
	return &review, nil
}

// DeleteMine removes the current user's review of a game.
func (c *Reviews) DeleteMine(ctx context.Context, gameID int) error {
	return c.gw.Delete(ctx, fmt.Sprintf("/reviews/%d/my-review", gameID))
}

// DeleteUserReview removes another user's review of a game (privileged only).
func (c *Reviews) DeleteUserReview(ctx context.Context, gameID int, userID uuid.UUID) error {
	return c.gw.Delete(ctx, fmt.Sprintf("/reviews/%d/%s", gameID, userID))
}
