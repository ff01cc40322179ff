package api

import (
	"context"
	"net/http"

	"bookhub/pkg/models"
)

// FindAllGenres returns every genre in the catalog.
func (c *Client) FindAllGenres(ctx context.Context) ([]models.Genre, error) {
	var genres []models.Genre
	err := c.do(ctx, http.MethodGet, genresPath, nil, false, nil, &genres)
	return genres, err
}
