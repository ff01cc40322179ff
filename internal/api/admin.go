package api

import (
	"context"
	"fmt"
	"net/http"

	"bookhub/pkg/models"
)

// AddBook adds a new book to the catalog. Validation failures come back
// as field-level substrings in the error message; see FieldErrors.
func (c *Client) AddBook(ctx context.Context, book models.Book) error {
	return c.do(ctx, http.MethodPost, addBookPath, nil, true, book, nil)
}

// IncreaseBookQuantity adds one copy of the book.
func (c *Client) IncreaseBookQuantity(ctx context.Context, bookID int64) error {
	return c.do(ctx, http.MethodPatch, fmt.Sprintf(increaseQuantityPath, bookID), nil, true, nil, nil)
}

// DecreaseBookQuantity removes one copy of the book.
func (c *Client) DecreaseBookQuantity(ctx context.Context, bookID int64) error {
	return c.do(ctx, http.MethodPatch, fmt.Sprintf(decreaseQuantityPath, bookID), nil, true, nil, nil)
}

// DeleteBook removes the book from the catalog.
func (c *Client) DeleteBook(ctx context.Context, bookID int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf(deleteBookPath, bookID), nil, true, nil, nil)
}

// FetchOpenDiscussions returns one page of unanswered discussions.
func (c *Client) FetchOpenDiscussions(ctx context.Context, page, perPage int) (models.Page[models.Discussion], error) {
	var discussions models.Page[models.Discussion]
	err := c.do(ctx, http.MethodGet, openDiscussionsPath, pageQuery("discussions-per-page", page, perPage), true, nil, &discussions)
	return discussions, err
}

// CloseDiscussion submits the admin response and closes the discussion.
func (c *Client) CloseDiscussion(ctx context.Context, discussion models.Discussion) error {
	return c.do(ctx, http.MethodPatch, closeDiscussionPath, nil, true, discussion, nil)
}
