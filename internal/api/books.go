package api

import (
	"context"
	"fmt"
	"net/http"

	"bookhub/pkg/models"
)

// BookSearch selects which catalog listing to hit. An empty search
// lists everything; TitleQuery and GenreQuery switch to the matching
// search endpoint, title winning when both are set.
type BookSearch struct {
	Page       int
	PerPage    int
	TitleQuery string
	GenreQuery string
}

// FetchBooks returns one page of the catalog.
func (c *Client) FetchBooks(ctx context.Context, search BookSearch) (models.Page[models.Book], error) {
	perPage := search.PerPage
	if perPage <= 0 {
		perPage = 9
	}
	query := pageQuery("books-per-page", search.Page, perPage)

	path := booksPath
	switch {
	case search.GenreQuery != "":
		path = searchByGenrePath
		query.Set("genre-query", search.GenreQuery)
	case search.TitleQuery != "":
		path = searchByTitlePath
		query.Set("title-query", search.TitleQuery)
	}

	var page models.Page[models.Book]
	err := c.do(ctx, http.MethodGet, path, query, false, nil, &page)
	return page, err
}

// FindBookByID returns one book.
func (c *Client) FindBookByID(ctx context.Context, bookID int64) (models.Book, error) {
	var book models.Book
	err := c.do(ctx, http.MethodGet, fmt.Sprintf("%s/%d", booksPath, bookID), nil, false, nil, &book)
	return book, err
}

// IsBookCheckedOut reports whether the current user has the book out.
func (c *Client) IsBookCheckedOut(ctx context.Context, bookID int64) (bool, error) {
	var checkedOut bool
	err := c.do(ctx, http.MethodGet, fmt.Sprintf(isCheckedOutPath, bookID), nil, true, nil, &checkedOut)
	return checkedOut, err
}

// CheckoutBook checks the book out for the current user.
func (c *Client) CheckoutBook(ctx context.Context, bookID int64) error {
	return c.do(ctx, http.MethodPut, fmt.Sprintf(checkoutBookPath, bookID), nil, true, nil, nil)
}

// RenewCheckout extends the loan on a checked-out book.
func (c *Client) RenewCheckout(ctx context.Context, bookID int64) error {
	return c.do(ctx, http.MethodPut, fmt.Sprintf(renewCheckoutPath, bookID), nil, true, nil, nil)
}

// ReturnBook returns a checked-out book.
func (c *Client) ReturnBook(ctx context.Context, bookID int64) error {
	return c.do(ctx, http.MethodPut, fmt.Sprintf(returnBookPath, bookID), nil, true, nil, nil)
}

// IsBookReviewed reports whether the current user already reviewed the
// book.
func (c *Client) IsBookReviewed(ctx context.Context, bookID int64) (bool, error) {
	var reviewed bool
	err := c.do(ctx, http.MethodGet, fmt.Sprintf(isReviewedPath, bookID), nil, true, nil, &reviewed)
	return reviewed, err
}

// SubmitReview posts a review for the book on behalf of the current
// user.
func (c *Client) SubmitReview(ctx context.Context, bookID int64, review models.Review) error {
	return c.do(ctx, http.MethodPost, fmt.Sprintf(reviewBookPath, bookID), nil, true, review, nil)
}
