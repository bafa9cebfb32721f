package api

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/TheManchineel/ludika-go/internal/domain/model"
)

// Catalog aggregates the independent reads a browse view needs.
type Catalog struct {
	games   *Games
	tags    *Tags
	reviews *Reviews
}

// NewCatalog constructs a Catalog over the individual resource clients.
func NewCatalog(games *Games, tags *Tags, reviews *Reviews) *Catalog {
	return &Catalog{games: games, tags: tags, reviews: reviews}
}

// Bundle is the result of one combined catalogue fetch.
type Bundle struct {
	Games    *Page[model.Game]
	Tags     []model.Tag
	Criteria []model.ReviewCriterion
}

// Bundle fetches games, tags, and review criteria concurrently. The first
// failure cancels the remaining fetches and is returned as-is.
func (c *Catalog) Bundle(ctx context.Context, params ListGamesParams) (*Bundle, error) {
	var bundle Bundle
	group, ctx := errgroup.WithContext(ctx)

	group.Go(func() error {
		games, err := c.games.List(ctx, params)
		if err != nil {
			return err
		}
		bundle.Games = games
		return nil
	})
	group.Go(func() error {
		tags, err := c.tags.List(ctx)
		if err != nil {
			return err
		}
		bundle.Tags = tags
		return nil
	})
	group.Go(func() error {
		criteria, err := c.reviews.Criteria(ctx)
		if err != nil {
			return err
		}
		bundle.Criteria = criteria
		return nil
	})

	if err := group.Wait(); err != nil {
		return nil, err
	}
	return &bundle, nil
}
