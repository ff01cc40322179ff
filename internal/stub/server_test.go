package stub

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"bookhub/internal/api"
	"bookhub/internal/fetch"
	"bookhub/internal/session"
	"bookhub/pkg/models"
)

func newTestClient(t *testing.T) *api.Client {
	t.Helper()

	gin.SetMode(gin.TestMode)
	srv := httptest.NewServer(New("test-secret").Router())
	t.Cleanup(srv.Close)

	return api.New(srv.URL+"/api", session.New(nil))
}

func login(t *testing.T, c *api.Client, email, password string) {
	t.Helper()

	if err := c.Authenticate(context.Background(), models.Login{Email: email, Password: password}); err != nil {
		t.Fatalf("Authenticate(%s): %v", email, err)
	}
}

func TestAuthenticateDecodesRole(t *testing.T) {
	c := newTestClient(t)

	login(t, c, SeedAdminEmail, SeedAdminPassword)
	if !c.Session().IsAdmin() {
		t.Error("admin login did not yield ROLE_ADMIN")
	}
	if got := c.Session().Subject(); got != SeedAdminEmail {
		t.Errorf("Subject() = %q, want %q", got, SeedAdminEmail)
	}
}

func TestAuthenticateRejectsBadPassword(t *testing.T) {
	c := newTestClient(t)

	err := c.Authenticate(context.Background(), models.Login{Email: SeedUserEmail, Password: "wrong"})
	var apiErr *api.APIError
	if !errors.As(err, &apiErr) || apiErr.Status != 401 {
		t.Fatalf("error = %v, want 401 APIError", err)
	}
}

func TestRegisterValidation(t *testing.T) {
	c := newTestClient(t)

	err := c.Register(context.Background(), models.Registration{Email: "new@example.com", Password: "secret99"})
	var apiErr *api.APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("error = %v, want *APIError", err)
	}

	for _, field := range []string{"firstName", "lastName", "dateOfBirth"} {
		errs := api.FieldErrors(field, apiErr.Message)
		if len(errs) != 1 || errs[0].Explanation != "must not be blank" {
			t.Errorf("FieldErrors(%q) = %v", field, errs)
		}
	}
}

func TestRegisterIssuesToken(t *testing.T) {
	c := newTestClient(t)

	err := c.Register(context.Background(), models.Registration{
		FirstName:   "Nora",
		LastName:    "New",
		DateOfBirth: "1990-01-01",
		Email:       "nora@example.com",
		Password:    "secret99",
	})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if !c.Session().IsAuthenticated() || c.Session().Role() != session.RoleUser {
		t.Errorf("session = %+v, want authenticated ROLE_USER", c.Session().State())
	}
}

func TestBookListingAndSearch(t *testing.T) {
	c := newTestClient(t)
	ctx := context.Background()

	page, err := c.FetchBooks(ctx, api.BookSearch{Page: 1, PerPage: 9})
	if err != nil {
		t.Fatalf("FetchBooks: %v", err)
	}
	if page.TotalElements != 10 || page.TotalPages != 2 || len(page.Content) != 9 {
		t.Errorf("page = %d elements, %d pages, %d content; want 10/2/9",
			page.TotalElements, page.TotalPages, len(page.Content))
	}

	byTitle, err := c.FetchBooks(ctx, api.BookSearch{Page: 1, PerPage: 9, TitleQuery: "python"})
	if err != nil {
		t.Fatalf("FetchBooks(title): %v", err)
	}
	if byTitle.TotalElements != 1 {
		t.Errorf("title search found %d books, want 1", byTitle.TotalElements)
	}

	byGenre, err := c.FetchBooks(ctx, api.BookSearch{Page: 1, PerPage: 9, GenreQuery: "FE"})
	if err != nil {
		t.Fatalf("FetchBooks(genre): %v", err)
	}
	for _, book := range byGenre.Content {
		if len(book.Genres) == 0 || book.Genres[0].Description != "FE" {
			t.Errorf("genre search returned %q with genres %+v", book.Title, book.Genres)
		}
	}
}

func TestFindBookByIDNotFound(t *testing.T) {
	c := newTestClient(t)

	_, err := c.FindBookByID(context.Background(), 999)
	var apiErr *api.APIError
	if !errors.As(err, &apiErr) || apiErr.Status != 404 {
		t.Fatalf("error = %v, want 404 APIError", err)
	}
	if apiErr.Message != "Book not found" {
		t.Errorf("Message = %q", apiErr.Message)
	}
}

func TestCheckoutFlow(t *testing.T) {
	c := newTestClient(t)
	ctx := context.Background()
	login(t, c, SeedUserEmail, SeedUserPassword)

	if err := c.CheckoutBook(ctx, 1); err != nil {
		t.Fatalf("CheckoutBook: %v", err)
	}

	checkedOut, err := c.IsBookCheckedOut(ctx, 1)
	if err != nil || !checkedOut {
		t.Fatalf("IsBookCheckedOut = %v, %v; want true", checkedOut, err)
	}

	count, err := c.CurrentLoansCount(ctx)
	if err != nil || count != 1 {
		t.Fatalf("CurrentLoansCount = %d, %v; want 1", count, err)
	}

	book, err := c.FindBookByID(ctx, 1)
	if err != nil {
		t.Fatalf("FindBookByID: %v", err)
	}
	if book.CopiesAvailable != book.Copies-1 {
		t.Errorf("CopiesAvailable = %d, want %d", book.CopiesAvailable, book.Copies-1)
	}

	// Checking the same book out twice fails.
	if err := c.CheckoutBook(ctx, 1); err == nil {
		t.Error("second CheckoutBook succeeded, want error")
	}

	checkouts, err := c.CurrentCheckouts(ctx)
	if err != nil || len(checkouts) != 1 {
		t.Fatalf("CurrentCheckouts = %d items, %v; want 1", len(checkouts), err)
	}
	if checkouts[0].Book.ID != 1 || checkouts[0].DaysLeft < 0 {
		t.Errorf("checkout = %+v", checkouts[0])
	}

	if err := c.RenewCheckout(ctx, 1); err != nil {
		t.Fatalf("RenewCheckout: %v", err)
	}

	if err := c.ReturnBook(ctx, 1); err != nil {
		t.Fatalf("ReturnBook: %v", err)
	}

	records, err := c.FetchHistoryRecords(ctx, 1, 5)
	if err != nil {
		t.Fatalf("FetchHistoryRecords: %v", err)
	}
	if records.TotalElements != 1 || records.Content[0].Book.ID != 1 {
		t.Errorf("history = %+v, want one record for book 1", records)
	}
}

func TestReviewFlow(t *testing.T) {
	c := newTestClient(t)
	ctx := context.Background()
	login(t, c, SeedUserEmail, SeedUserPassword)

	reviewed, err := c.IsBookReviewed(ctx, 2)
	if err != nil || reviewed {
		t.Fatalf("IsBookReviewed = %v, %v; want false", reviewed, err)
	}

	review := models.Review{Rating: 4.5, ReviewDescription: "solid read"}
	if err := c.SubmitReview(ctx, 2, review); err != nil {
		t.Fatalf("SubmitReview: %v", err)
	}

	if err := c.SubmitReview(ctx, 2, review); err == nil {
		t.Error("second SubmitReview succeeded, want error")
	}

	page, err := c.FetchBookReviews(ctx, 2, 1, 5, true)
	if err != nil {
		t.Fatalf("FetchBookReviews: %v", err)
	}
	if page.TotalElements != 1 || page.Content[0].PersonEmail != SeedUserEmail {
		t.Errorf("reviews = %+v", page)
	}

	avg, err := c.FetchAverageRating(ctx, 2)
	if err != nil || avg != 4.5 {
		t.Errorf("FetchAverageRating = %v, %v; want 4.5", avg, err)
	}
}

func TestReviewSubmitFlipsFlagWithoutRefetch(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := New("test-secret").Router()

	isReviewedHits := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasPrefix(r.URL.Path, "/api/books/secure/is-reviewed/") {
			isReviewedHits++
		}
		router.ServeHTTP(w, r)
	}))
	defer srv.Close()

	c := api.New(srv.URL+"/api", session.New(nil))
	login(t, c, SeedUserEmail, SeedUserPassword)
	ctx := context.Background()

	var reviewed fetch.Resource[bool]
	if err := reviewed.Load(ctx, func(ctx context.Context) (bool, error) {
		return c.IsBookReviewed(ctx, 3)
	}); err != nil {
		t.Fatalf("Load(IsBookReviewed): %v", err)
	}
	if reviewed.Data() {
		t.Fatal("book 3 unexpectedly reviewed already")
	}

	if err := c.SubmitReview(ctx, 3, models.Review{Rating: 4}); err != nil {
		t.Fatalf("SubmitReview: %v", err)
	}

	// The accepted submit answers the question locally; only the
	// average rating goes back to the server.
	reviewed.Set(true)

	var avg fetch.Resource[float64]
	avg.Invalidate()
	if err := avg.Load(ctx, func(ctx context.Context) (float64, error) {
		return c.FetchAverageRating(ctx, 3)
	}); err != nil {
		t.Fatalf("Load(FetchAverageRating): %v", err)
	}

	if !reviewed.Data() {
		t.Error("reviewed flag was not flipped")
	}
	if avg.Data() != 4 {
		t.Errorf("average = %v, want 4", avg.Data())
	}
	if isReviewedHits != 1 {
		t.Errorf("is-reviewed was fetched %d times, want 1", isReviewedHits)
	}
}

func TestCurrentCheckoutsFollowsServerClock(t *testing.T) {
	gin.SetMode(gin.TestMode)
	s := New("test-secret")
	base := time.Now()
	s.now = func() time.Time { return base }
	srv := httptest.NewServer(s.Router())
	defer srv.Close()

	c := api.New(srv.URL+"/api", session.New(nil))
	login(t, c, SeedUserEmail, SeedUserPassword)
	ctx := context.Background()

	if err := c.CheckoutBook(ctx, 1); err != nil {
		t.Fatalf("CheckoutBook: %v", err)
	}

	s.mu.Lock()
	s.now = func() time.Time { return base.Add(3 * 24 * time.Hour) }
	s.mu.Unlock()

	checkouts, err := c.CurrentCheckouts(ctx)
	if err != nil || len(checkouts) != 1 {
		t.Fatalf("CurrentCheckouts = %d items, %v; want 1", len(checkouts), err)
	}
	if got := checkouts[0].DaysLeft; got != loanDays-3 {
		t.Errorf("DaysLeft = %d, want %d", got, loanDays-3)
	}
}

func TestAdminRoutesRequireAdminRole(t *testing.T) {
	c := newTestClient(t)
	ctx := context.Background()
	login(t, c, SeedUserEmail, SeedUserPassword)

	err := c.DeleteBook(ctx, 1)
	var apiErr *api.APIError
	if !errors.As(err, &apiErr) || apiErr.Status != 403 {
		t.Fatalf("DeleteBook as user: error = %v, want 403", err)
	}
}

func TestAdminCatalogManagement(t *testing.T) {
	c := newTestClient(t)
	ctx := context.Background()
	login(t, c, SeedAdminEmail, SeedAdminPassword)

	// Validation failures surface as field substrings.
	err := c.AddBook(ctx, models.Book{Title: " "})
	var apiErr *api.APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("AddBook blank: error = %v, want *APIError", err)
	}
	if errs := api.FieldErrors("title", apiErr.Message); len(errs) != 1 {
		t.Errorf("FieldErrors(title) = %v", errs)
	}

	if err := c.AddBook(ctx, models.Book{
		Title: "New Book", Author: "An Author", Description: "Fresh ink.", Copies: 2,
	}); err != nil {
		t.Fatalf("AddBook: %v", err)
	}

	if err := c.IncreaseBookQuantity(ctx, 1); err != nil {
		t.Fatalf("IncreaseBookQuantity: %v", err)
	}
	book, err := c.FindBookByID(ctx, 1)
	if err != nil || book.Copies != 6 || book.CopiesAvailable != 6 {
		t.Errorf("after increase: %+v, %v", book, err)
	}

	if err := c.DecreaseBookQuantity(ctx, 1); err != nil {
		t.Fatalf("DecreaseBookQuantity: %v", err)
	}

	if err := c.DeleteBook(ctx, 1); err != nil {
		t.Fatalf("DeleteBook: %v", err)
	}
	if _, err := c.FindBookByID(ctx, 1); err == nil {
		t.Error("FindBookByID after delete succeeded, want 404")
	}
}

func TestDiscussionFlow(t *testing.T) {
	userClient := newTestClient(t)
	ctx := context.Background()
	login(t, userClient, SeedUserEmail, SeedUserPassword)

	err := userClient.AddDiscussion(ctx, models.Discussion{Title: "Late fee question", Question: "How are fees computed?"})
	if err != nil {
		t.Fatalf("AddDiscussion: %v", err)
	}

	mine, err := userClient.FetchDiscussions(ctx, 1, 5)
	if err != nil || mine.TotalElements != 1 {
		t.Fatalf("FetchDiscussions = %+v, %v; want 1 discussion", mine, err)
	}
	discussion := mine.Content[0]
	if discussion.Closed || discussion.PersonEmail != SeedUserEmail {
		t.Errorf("discussion = %+v", discussion)
	}
}

func TestCloseDiscussion(t *testing.T) {
	gin.SetMode(gin.TestMode)
	srv := httptest.NewServer(New("test-secret").Router())
	defer srv.Close()
	ctx := context.Background()

	userClient := api.New(srv.URL+"/api", session.New(nil))
	login(t, userClient, SeedUserEmail, SeedUserPassword)
	if err := userClient.AddDiscussion(ctx, models.Discussion{Title: "Q", Question: "Why?"}); err != nil {
		t.Fatalf("AddDiscussion: %v", err)
	}

	adminClient := api.New(srv.URL+"/api", session.New(nil))
	login(t, adminClient, SeedAdminEmail, SeedAdminPassword)

	open, err := adminClient.FetchOpenDiscussions(ctx, 1, 5)
	if err != nil || open.TotalElements != 1 {
		t.Fatalf("FetchOpenDiscussions = %+v, %v; want 1", open, err)
	}

	closed := open.Content[0]
	closed.Response = "Fees accrue per day overdue."
	if err := adminClient.CloseDiscussion(ctx, closed); err != nil {
		t.Fatalf("CloseDiscussion: %v", err)
	}

	if err := adminClient.CloseDiscussion(ctx, closed); err == nil {
		t.Error("closing twice succeeded, want error")
	}

	mine, err := userClient.FetchDiscussions(ctx, 1, 5)
	if err != nil {
		t.Fatalf("FetchDiscussions: %v", err)
	}
	got := mine.Content[0]
	if !got.Closed || got.Response == "" || got.AdminEmail != SeedAdminEmail {
		t.Errorf("closed discussion = %+v", got)
	}
}

func TestPaymentIntent(t *testing.T) {
	c := newTestClient(t)
	ctx := context.Background()
	login(t, c, SeedUserEmail, SeedUserPassword)

	fees, err := c.FetchPaymentFees(ctx)
	if err != nil || fees != 0 {
		t.Fatalf("FetchPaymentFees = %v, %v; want 0", fees, err)
	}

	intent, err := c.CreatePaymentIntent(ctx, models.PaymentInfo{
		Amount: 350, Currency: "USD", ReceiptEmail: SeedUserEmail,
	})
	if err != nil {
		t.Fatalf("CreatePaymentIntent: %v", err)
	}
	if !strings.HasPrefix(intent.ClientSecret, "pi_secret_") {
		t.Errorf("ClientSecret = %q", intent.ClientSecret)
	}

	if err := c.CompletePayment(ctx); err != nil {
		t.Fatalf("CompletePayment: %v", err)
	}
}
