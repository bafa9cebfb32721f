package api

import (
	"context"

	"github.com/TheManchineel/ludika-go/internal/domain/model"
	"github.com/TheManchineel/ludika-go/internal/transport"
)

// Tags is the client for the tags resource.
type Tags struct {
	gw *transport.Gateway
}

// NewTags constructs a Tags client over gw.
func NewTags(gw *transport.Gateway) *Tags {
	return &Tags{gw: gw}
}

// List retrieves all catalogue tags.
func (c *Tags) List(ctx context.Context) ([]model.Tag, error) {
	var tags []model.Tag
	if _, err := c.gw.GetJSON(ctx, "/tags/", nil, &tags); err != nil {
		return nil, err
	}
	return tags, nil
}
