package api

import (
	"context"
	"net/http"

	"bookhub/pkg/models"
)

// FetchDiscussions returns one page of the user's own discussions.
func (c *Client) FetchDiscussions(ctx context.Context, page, perPage int) (models.Page[models.Discussion], error) {
	var discussions models.Page[models.Discussion]
	err := c.do(ctx, http.MethodGet, discussionsPath, pageQuery("discussions-per-page", page, perPage), true, nil, &discussions)
	return discussions, err
}

// AddDiscussion opens a new discussion with the administration.
func (c *Client) AddDiscussion(ctx context.Context, discussion models.Discussion) error {
	return c.do(ctx, http.MethodPost, addDiscussionPath, nil, true, discussion, nil)
}
