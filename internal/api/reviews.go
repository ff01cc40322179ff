package api

import (
	"context"
	"fmt"
	"net/http"

	"bookhub/internal/rating"
	"bookhub/pkg/models"
)

// FetchBookReviews returns one page of a book's reviews, newest first
// when latest is set.
func (c *Client) FetchBookReviews(ctx context.Context, bookID int64, page, perPage int, latest bool) (models.Page[models.Review], error) {
	query := pageQuery("reviews-per-page", page, perPage)
	if latest {
		query.Set("latest", "true")
	}

	var reviews models.Page[models.Review]
	err := c.do(ctx, http.MethodGet, fmt.Sprintf(reviewsPath, bookID), query, false, nil, &reviews)
	return reviews, err
}

// FetchAverageRating returns a book's average rating rounded to the
// nearest half point, ready for the star renderer.
func (c *Client) FetchAverageRating(ctx context.Context, bookID int64) (float64, error) {
	var avg float64
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf(averageRatingPath, bookID), nil, false, nil, &avg); err != nil {
		return 0, err
	}
	return rating.RoundHalf(avg), nil
}
