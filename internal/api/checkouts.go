package api

import (
	"context"
	"net/http"

	"bookhub/pkg/models"
)

// CurrentCheckouts returns the user's active loans.
func (c *Client) CurrentCheckouts(ctx context.Context) ([]models.Checkout, error) {
	var checkouts []models.Checkout
	err := c.do(ctx, http.MethodGet, currentCheckoutsPath, nil, true, nil, &checkouts)
	return checkouts, err
}

// CurrentLoansCount returns how many books the user has out.
func (c *Client) CurrentLoansCount(ctx context.Context) (int, error) {
	var count int
	err := c.do(ctx, http.MethodGet, currentLoansCountPath, nil, true, nil, &count)
	return count, err
}
