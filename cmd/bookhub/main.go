package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"syscall"

	"golang.org/x/term"

	"bookhub/internal/api"
	"bookhub/internal/config"
	"bookhub/internal/fetch"
	"bookhub/internal/pagination"
	"bookhub/internal/rating"
	"bookhub/internal/session"
	"bookhub/internal/store"
	"bookhub/pkg/models"
)

const VERSION = "1.0.0"

var (
	cfg    config.Config
	sess   *session.Session
	client *api.Client
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	var err error
	cfg, err = config.Load(config.DefaultPath())
	if err != nil {
		fmt.Printf("✗ Failed to load config: %v\n", err)
		os.Exit(1)
	}
	sess = session.New(session.NewFileStore(session.DefaultPath()))
	client = api.New(cfg.BaseURL, sess)

	switch os.Args[1] {
	case "init":
		cmdInit()
	case "version":
		fmt.Printf("BookHub CLI v%s\n", VERSION)
	case "auth":
		handleAuth()
	case "books":
		handleBooks()
	case "genres":
		cmdGenres()
	case "reviews":
		handleReviews()
	case "shelf":
		handleShelf()
	case "history":
		cmdHistory()
	case "discussions":
		handleDiscussions()
	case "admin":
		handleAdmin()
	case "fees":
		handleFees()
	case "export":
		handleExport()
	case "help", "--help", "-h":
		printUsage()
	default:
		fmt.Printf("Unknown command: %s\n", os.Args[1])
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`BookHub CLI v` + VERSION + `

Commands:
  init                          Initialize configuration
  version                       Show version
  auth <register|login|logout|status>
  books <list|info|checkout|renew|return>
  genres                        List catalog genres
  reviews <list|submit>         Book reviews
  shelf                         Current loans
  history                       Past loans
  discussions <list|add>        Questions to the administration
  admin <add-book|increase|decrease|delete|discussions|close>
  fees <show|pay>               Late fees
  export catalog                Export the cached catalog
  `)
}

// ===== INIT =====

func cmdInit() {
	if err := os.MkdirAll(config.Dir(), 0755); err != nil {
		fmt.Printf("✗ Failed to create %s: %v\n", config.Dir(), err)
		os.Exit(1)
	}

	cfg = config.Default()
	if err := config.Save(config.DefaultPath(), cfg); err != nil {
		fmt.Printf("✗ Failed to write config: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("✓ BookHub initialized")
	fmt.Printf("  Config: %s\n", config.DefaultPath())
	fmt.Printf("  Backend: %s\n", cfg.BaseURL)
	fmt.Println("\nNext: bookhub auth login --email <email>")
}

// ===== AUTH =====

func handleAuth() {
	if len(os.Args) < 3 {
		fmt.Println("Usage: bookhub auth <register|login|logout|status>")
		os.Exit(1)
	}

	switch os.Args[2] {
	case "register":
		cmdAuthRegister()
	case "login":
		cmdAuthLogin()
	case "logout":
		if err := sess.Logout(); err != nil {
			fmt.Printf("✗ Failed to clear session: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("✓ Logged out")
	case "status":
		cmdAuthStatus()
	}
}

func cmdAuthRegister() {
	registration := models.Registration{
		FirstName:   getFlag("--first-name"),
		LastName:    getFlag("--last-name"),
		DateOfBirth: getFlag("--date-of-birth"),
		Email:       getFlag("--email"),
	}
	if registration.FirstName == "" || registration.LastName == "" ||
		registration.DateOfBirth == "" || registration.Email == "" {
		fmt.Println("Usage: bookhub auth register --first-name <name> --last-name <name> --date-of-birth <yyyy-mm-dd> --email <email>")
		os.Exit(1)
	}

	fmt.Print("Password: ")
	registration.Password = readPassword()

	err := client.Register(context.Background(), registration)
	if err != nil {
		printRegistrationError(err)
		os.Exit(1)
	}

	fmt.Printf("\n✓ Account created. Logged in as %s\n", registration.Email)
}

func printRegistrationError(err error) {
	var apiErr *api.APIError
	if !errors.As(err, &apiErr) {
		fmt.Printf("\n✗ Registration failed: %v\n", err)
		return
	}

	fmt.Println("\n✗ Registration failed:")
	fields := []string{"firstName", "lastName", "dateOfBirth", "email", "password"}
	matched := false
	for _, field := range fields {
		for _, fe := range api.FieldErrors(field, apiErr.Message) {
			fmt.Printf("  %s: %s\n", fe.Field, fe.Explanation)
			matched = true
		}
	}
	if !matched {
		fmt.Printf("  %s\n", apiErr.Message)
	}
}

func cmdAuthLogin() {
	email := getFlag("--email")
	if email == "" {
		fmt.Print("Email: ")
		fmt.Scanln(&email)
	}

	fmt.Print("Password: ")
	password := readPassword()

	err := client.Authenticate(context.Background(), models.Login{Email: email, Password: password})
	if err != nil {
		fmt.Printf("\n✗ Login failed: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("\n✓ Welcome back, %s!\n", email)
	if sess.IsAdmin() {
		fmt.Println("  Role: admin")
	}
}

func cmdAuthStatus() {
	if !sess.IsAuthenticated() {
		fmt.Println("Status: Not logged in")
		return
	}
	if sess.Expired() {
		fmt.Printf("Status: Session for %s has expired\n", sess.Subject())
		fmt.Println("\nNext: bookhub auth login --email " + sess.Subject())
		return
	}
	fmt.Printf("Status: Logged in as %s (role: %s)\n", sess.Subject(), sess.Role())
}

// ===== BOOKS =====

func handleBooks() {
	if len(os.Args) < 3 {
		fmt.Println("Usage: bookhub books <list|info|checkout|renew|return>")
		os.Exit(1)
	}

	switch os.Args[2] {
	case "list":
		cmdBooksList()
	case "info":
		cmdBooksInfo()
	case "checkout":
		cmdBooksCheckout()
	case "renew":
		cmdBooksRenew()
	case "return":
		cmdBooksReturn()
	}
}

func cmdBooksList() {
	if hasFlag("--cached") {
		cmdBooksListCached()
		return
	}

	page := intFlag("--page", 1)
	search := api.BookSearch{
		Page:       page,
		PerPage:    cfg.Catalog.BooksPerPage,
		TitleQuery: getFlag("--title"),
		GenreQuery: getFlag("--genre"),
	}

	result, err := client.FetchBooks(context.Background(), search)
	if err != nil {
		fmt.Printf("✗ Failed: %v\n", err)
		os.Exit(1)
	}

	if len(result.Content) == 0 {
		fmt.Println("No books found")
		return
	}

	start := (page-1)*search.PerPage + 1
	end := start + len(result.Content) - 1
	fmt.Printf("Showing %d-%d of %d books\n\n", start, end, result.TotalElements)

	for _, book := range result.Content {
		printBookLine(book)
	}

	printPageFooter(page, result.TotalPages)
	cacheBooks(result.Content)
}

func cmdBooksListCached() {
	s, err := store.Open(cfg.Cache.Path)
	if err != nil {
		fmt.Printf("✗ Failed to open cache: %v\n", err)
		os.Exit(1)
	}
	defer s.Close()

	books, err := s.ListBooks(getFlag("--title"))
	if err != nil {
		fmt.Printf("✗ Failed: %v\n", err)
		os.Exit(1)
	}
	if len(books) == 0 {
		fmt.Println("Cache is empty. Run 'bookhub books list' or 'bookhub export catalog' first")
		return
	}

	fmt.Printf("Cached catalog (%d books)\n\n", len(books))
	for _, book := range books {
		printBookLine(book)
	}
}

func printBookLine(book models.Book) {
	var genres []string
	for _, genre := range book.Genres {
		genres = append(genres, genre.Description)
	}
	fmt.Printf("%3d. %s - %s\n", book.ID, book.Title, book.Author)
	fmt.Printf("     Available: %d/%d", book.CopiesAvailable, book.Copies)
	if len(genres) > 0 {
		fmt.Printf(" | %s", strings.Join(genres, ", "))
	}
	fmt.Println()
}

func printPageFooter(page, totalPages int) {
	if totalPages <= 1 {
		return
	}
	var parts []string
	for _, p := range pagination.Window(page, totalPages) {
		if p == page {
			parts = append(parts, fmt.Sprintf("[%d]", p))
		} else {
			parts = append(parts, strconv.Itoa(p))
		}
	}
	fmt.Printf("\nPages: %s (of %d)\n", strings.Join(parts, " "), totalPages)
}

func cmdBooksInfo() {
	id := positionalID("bookhub books info <book-id>")
	ctx := context.Background()

	var bookRes fetch.Resource[models.Book]
	if err := bookRes.Load(ctx, func(ctx context.Context) (models.Book, error) {
		return client.FindBookByID(ctx, id)
	}); err != nil {
		fmt.Printf("✗ Failed: %v\n", err)
		os.Exit(1)
	}
	book := bookRes.Data()

	fmt.Printf("\n%s\n", book.Title)
	fmt.Println(strings.Repeat("=", len(book.Title)))
	fmt.Printf("Author: %s\n", book.Author)
	fmt.Printf("Available: %d of %d copies\n", book.CopiesAvailable, book.Copies)
	if len(book.Genres) > 0 {
		var genres []string
		for _, genre := range book.Genres {
			genres = append(genres, genre.Description)
		}
		fmt.Printf("Genres: %s\n", strings.Join(genres, ", "))
	}
	if book.Description != "" {
		fmt.Printf("\n%s\n", book.Description)
	}

	avg, err := client.FetchAverageRating(ctx, id)
	if err == nil {
		fmt.Printf("\nRating: %s (%.1f)\n", renderStars(avg), avg)
	}

	reviews, err := client.FetchBookReviews(ctx, id, 1, 3, true)
	if err == nil && len(reviews.Content) > 0 {
		fmt.Printf("\nLatest reviews (%d total):\n", reviews.TotalElements)
		for _, review := range reviews.Content {
			fmt.Printf("  %s %s - %s\n", renderStars(review.Rating), review.PersonFirstName, review.Date)
			if review.ReviewDescription != "" {
				fmt.Printf("    %s\n", review.ReviewDescription)
			}
		}
	}

	// Per-user state only when a usable token is present.
	checkedOut, err := client.IsBookCheckedOut(ctx, id)
	if err == nil && checkedOut {
		fmt.Println("\nYou have this book checked out")
	}
	reviewed, err := client.IsBookReviewed(ctx, id)
	if err == nil && reviewed {
		fmt.Println("You have reviewed this book")
	}
}

func renderStars(r float64) string {
	full, half, empty := rating.Stars(r)
	return strings.Repeat("★", full) + strings.Repeat("⯨", half) + strings.Repeat("☆", empty)
}

func cmdBooksCheckout() {
	requireAuth()
	id := positionalID("bookhub books checkout <book-id>")
	ctx := context.Background()

	var bookRes fetch.Resource[models.Book]
	if err := bookRes.Load(ctx, func(ctx context.Context) (models.Book, error) {
		return client.FindBookByID(ctx, id)
	}); err != nil {
		fmt.Printf("✗ Failed: %v\n", err)
		os.Exit(1)
	}

	if err := client.CheckoutBook(ctx, id); err != nil {
		fmt.Printf("✗ Checkout failed: %v\n", err)
		os.Exit(1)
	}

	// Reflect the checkout locally instead of refetching.
	bookRes.Update(func(b *models.Book) { b.CopiesAvailable-- })
	book := bookRes.Data()

	fmt.Printf("✓ Checked out %q\n", book.Title)
	fmt.Printf("  Now available: %d/%d\n", book.CopiesAvailable, book.Copies)

	if count, err := client.CurrentLoansCount(ctx); err == nil {
		fmt.Printf("  Your current loans: %d\n", count)
	}
}

func cmdBooksRenew() {
	requireAuth()
	id := positionalID("bookhub books renew <book-id>")

	if err := client.RenewCheckout(context.Background(), id); err != nil {
		fmt.Printf("✗ Renew failed: %v\n", err)
		os.Exit(1)
	}
	fmt.Println("✓ Loan renewed")
}

func cmdBooksReturn() {
	requireAuth()
	id := positionalID("bookhub books return <book-id>")

	if err := client.ReturnBook(context.Background(), id); err != nil {
		fmt.Printf("✗ Return failed: %v\n", err)
		os.Exit(1)
	}
	fmt.Println("✓ Book returned")
}

// ===== GENRES =====

func cmdGenres() {
	genres, err := client.FindAllGenres(context.Background())
	if err != nil {
		fmt.Printf("✗ Failed: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("Genres:")
	for _, genre := range genres {
		fmt.Printf("  %d. %s\n", genre.ID, genre.Description)
	}
	cacheGenres(genres)
}

// ===== REVIEWS =====

func handleReviews() {
	if len(os.Args) < 3 {
		fmt.Println("Usage: bookhub reviews <list|submit>")
		os.Exit(1)
	}

	switch os.Args[2] {
	case "list":
		cmdReviewsList()
	case "submit":
		cmdReviewsSubmit()
	}
}

func cmdReviewsList() {
	id := positionalID("bookhub reviews list <book-id> [--page N] [--latest]")
	page := intFlag("--page", 1)

	reviews, err := client.FetchBookReviews(context.Background(), id, page, cfg.Catalog.ReviewsPerPage, hasFlag("--latest"))
	if err != nil {
		fmt.Printf("✗ Failed: %v\n", err)
		os.Exit(1)
	}

	if len(reviews.Content) == 0 {
		fmt.Println("No reviews yet")
		return
	}

	r := pagination.PageRange(page, int(reviews.TotalElements))
	fmt.Printf("Reviews %d-%d of %d\n\n", r.Start, r.End, reviews.TotalElements)
	for _, review := range reviews.Content {
		fmt.Printf("%s %s - %s\n", renderStars(review.Rating), review.PersonFirstName, review.Date)
		if review.ReviewDescription != "" {
			fmt.Printf("  %s\n", review.ReviewDescription)
		}
	}
	printPageFooter(page, reviews.TotalPages)
}

func cmdReviewsSubmit() {
	requireAuth()
	id := positionalID("bookhub reviews submit <book-id> --rating <0.5-5> [--text <review>]")
	ctx := context.Background()

	ratingStr := getFlag("--rating")
	if ratingStr == "" {
		fmt.Println("Usage: bookhub reviews submit <book-id> --rating <0.5-5> [--text <review>]")
		os.Exit(1)
	}
	value, err := strconv.ParseFloat(ratingStr, 64)
	if err != nil || value < 0.5 || value > 5 {
		fmt.Println("✗ Rating must be between 0.5 and 5")
		os.Exit(1)
	}

	var reviewedRes fetch.Resource[bool]
	if err := reviewedRes.Load(ctx, func(ctx context.Context) (bool, error) {
		return client.IsBookReviewed(ctx, id)
	}); err != nil {
		fmt.Printf("✗ Failed: %v\n", err)
		os.Exit(1)
	}
	if reviewedRes.Data() {
		fmt.Println("✗ You already reviewed this book")
		os.Exit(1)
	}

	review := models.Review{Rating: value, ReviewDescription: getFlag("--text")}
	if err := client.SubmitReview(ctx, id, review); err != nil {
		fmt.Printf("✗ Failed: %v\n", err)
		os.Exit(1)
	}

	// The accepted submit already answers the question; flip the flag
	// locally instead of asking the server again.
	reviewedRes.Set(true)
	fmt.Printf("✓ Review submitted: %s\n", renderStars(value))

	// The average rating went stale with the new review.
	var ratingRes fetch.Resource[float64]
	ratingRes.Invalidate()
	if err := ratingRes.Load(ctx, func(ctx context.Context) (float64, error) {
		return client.FetchAverageRating(ctx, id)
	}); err == nil {
		fmt.Printf("  New average: %s (%.1f)\n", renderStars(ratingRes.Data()), ratingRes.Data())
	}
}

// ===== SHELF =====

func handleShelf() {
	requireAuth()
	ctx := context.Background()

	var checkoutsRes fetch.Resource[[]models.Checkout]
	if err := checkoutsRes.Load(ctx, func(ctx context.Context) ([]models.Checkout, error) {
		return client.CurrentCheckouts(ctx)
	}); err != nil {
		fmt.Printf("✗ Failed: %v\n", err)
		os.Exit(1)
	}
	checkouts := checkoutsRes.Data()

	if len(checkouts) == 0 {
		fmt.Println("No books currently checked out")
		return
	}

	fmt.Printf("Current loans (%d):\n\n", len(checkouts))
	for _, checkout := range checkouts {
		fmt.Printf("%3d. %s - %s\n", checkout.Book.ID, checkout.Book.Title, checkout.Book.Author)
		switch {
		case checkout.DaysLeft > 0:
			fmt.Printf("     Due in %d days\n", checkout.DaysLeft)
		case checkout.DaysLeft == 0:
			fmt.Println("     Due today")
		default:
			fmt.Printf("     Overdue by %d days\n", -checkout.DaysLeft)
		}
	}

	fmt.Println("\nNext: bookhub books renew <book-id> | bookhub books return <book-id>")
}

// ===== HISTORY =====

func cmdHistory() {
	requireAuth()
	page := intFlag("--page", 1)

	records, err := client.FetchHistoryRecords(context.Background(), page, pagination.PerPage)
	if err != nil {
		fmt.Printf("✗ Failed: %v\n", err)
		os.Exit(1)
	}

	if len(records.Content) == 0 {
		fmt.Println("No past loans")
		return
	}

	r := pagination.PageRange(page, int(records.TotalElements))
	fmt.Printf("History %d-%d of %d\n\n", r.Start, r.End, records.TotalElements)
	for _, record := range records.Content {
		fmt.Printf("%s - %s\n", record.Book.Title, record.Book.Author)
		fmt.Printf("  Checked out %s, returned %s\n", record.CheckoutDate, record.ReturnDate)
	}
	printPageFooter(page, records.TotalPages)
}

// ===== DISCUSSIONS =====

func handleDiscussions() {
	if len(os.Args) < 3 {
		fmt.Println("Usage: bookhub discussions <list|add>")
		os.Exit(1)
	}

	requireAuth()

	switch os.Args[2] {
	case "list":
		cmdDiscussionsList()
	case "add":
		cmdDiscussionsAdd()
	}
}

func cmdDiscussionsList() {
	page := intFlag("--page", 1)

	discussions, err := client.FetchDiscussions(context.Background(), page, pagination.PerPage)
	if err != nil {
		fmt.Printf("✗ Failed: %v\n", err)
		os.Exit(1)
	}

	if len(discussions.Content) == 0 {
		fmt.Println("No discussions yet")
		return
	}

	printDiscussions(discussions, page)
}

func printDiscussions(discussions models.Page[models.Discussion], page int) {
	for _, d := range discussions.Content {
		status := "open"
		if d.Closed {
			status = "closed"
		}
		fmt.Printf("#%d [%s] %s\n", d.ID, status, d.Title)
		fmt.Printf("  Q: %s\n", d.Question)
		if d.Response != "" {
			fmt.Printf("  A: %s (%s)\n", d.Response, d.AdminEmail)
		}
	}
	printPageFooter(page, discussions.TotalPages)
}

func cmdDiscussionsAdd() {
	title := getFlag("--title")
	question := getFlag("--question")
	if title == "" || question == "" {
		fmt.Println("Usage: bookhub discussions add --title <title> --question <question>")
		os.Exit(1)
	}

	discussion := models.Discussion{Title: title, Question: question}
	if err := client.AddDiscussion(context.Background(), discussion); err != nil {
		fmt.Printf("✗ Failed: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("✓ Question submitted to the administration")
}

// ===== ADMIN =====

func handleAdmin() {
	if len(os.Args) < 3 {
		fmt.Println("Usage: bookhub admin <add-book|increase|decrease|delete|discussions|close>")
		os.Exit(1)
	}

	requireAuth()
	if !sess.IsAdmin() {
		fmt.Println("✗ Admin role required")
		os.Exit(1)
	}

	switch os.Args[2] {
	case "add-book":
		cmdAdminAddBook()
	case "increase":
		cmdAdminQuantity(true)
	case "decrease":
		cmdAdminQuantity(false)
	case "delete":
		cmdAdminDelete()
	case "discussions":
		cmdAdminDiscussions()
	case "close":
		cmdAdminClose()
	}
}

func cmdAdminAddBook() {
	book := models.Book{
		Title:       getFlag("--title"),
		Author:      getFlag("--author"),
		Description: getFlag("--description"),
		Copies:      intFlag("--copies", 0),
		Img:         getFlag("--img"),
	}
	for _, genre := range strings.Split(getFlag("--genres"), ",") {
		if genre = strings.TrimSpace(genre); genre != "" {
			book.Genres = append(book.Genres, models.Genre{Description: genre})
		}
	}

	err := client.AddBook(context.Background(), book)
	if err != nil {
		var apiErr *api.APIError
		if errors.As(err, &apiErr) {
			fmt.Println("✗ Add book failed:")
			matched := false
			for _, field := range []string{"title", "author", "description", "copies"} {
				for _, fe := range api.FieldErrors(field, apiErr.Message) {
					fmt.Printf("  %s: %s\n", fe.Field, fe.Explanation)
					matched = true
				}
			}
			if !matched {
				fmt.Printf("  %s\n", apiErr.Message)
			}
		} else {
			fmt.Printf("✗ Add book failed: %v\n", err)
		}
		os.Exit(1)
	}

	fmt.Printf("✓ Added %q to the catalog\n", book.Title)
}

func cmdAdminQuantity(increase bool) {
	id := positionalID("bookhub admin <increase|decrease> <book-id>")

	var err error
	if increase {
		err = client.IncreaseBookQuantity(context.Background(), id)
	} else {
		err = client.DecreaseBookQuantity(context.Background(), id)
	}
	if err != nil {
		fmt.Printf("✗ Failed: %v\n", err)
		os.Exit(1)
	}

	if increase {
		fmt.Println("✓ Added one copy")
	} else {
		fmt.Println("✓ Removed one copy")
	}
}

func cmdAdminDelete() {
	id := positionalID("bookhub admin delete <book-id>")

	if err := client.DeleteBook(context.Background(), id); err != nil {
		fmt.Printf("✗ Failed: %v\n", err)
		os.Exit(1)
	}
	fmt.Println("✓ Book deleted")
}

func cmdAdminDiscussions() {
	page := intFlag("--page", 1)

	discussions, err := client.FetchOpenDiscussions(context.Background(), page, pagination.PerPage)
	if err != nil {
		fmt.Printf("✗ Failed: %v\n", err)
		os.Exit(1)
	}

	if len(discussions.Content) == 0 {
		fmt.Println("No open discussions")
		return
	}

	fmt.Printf("Open discussions (%d):\n\n", discussions.TotalElements)
	printDiscussions(discussions, page)
	fmt.Println("\nNext: bookhub admin close --id <id> --response <text>")
}

func cmdAdminClose() {
	id := int64(intFlag("--id", 0))
	response := getFlag("--response")
	if id == 0 || response == "" {
		fmt.Println("Usage: bookhub admin close --id <id> --response <text>")
		os.Exit(1)
	}

	discussion := models.Discussion{ID: id, Response: response}
	if err := client.CloseDiscussion(context.Background(), discussion); err != nil {
		fmt.Printf("✗ Failed: %v\n", err)
		os.Exit(1)
	}
	fmt.Println("✓ Discussion closed")
}

// ===== FEES =====

func handleFees() {
	if len(os.Args) < 3 {
		fmt.Println("Usage: bookhub fees <show|pay>")
		os.Exit(1)
	}

	requireAuth()

	switch os.Args[2] {
	case "show":
		cmdFeesShow()
	case "pay":
		cmdFeesPay()
	}
}

func cmdFeesShow() {
	fees, err := client.FetchPaymentFees(context.Background())
	if err != nil {
		fmt.Printf("✗ Failed: %v\n", err)
		os.Exit(1)
	}

	if fees <= 0 {
		fmt.Println("No outstanding fees")
		return
	}
	fmt.Printf("Outstanding fees: $%.2f\n", fees)
	fmt.Println("\nNext: bookhub fees pay")
}

func cmdFeesPay() {
	ctx := context.Background()

	fees, err := client.FetchPaymentFees(ctx)
	if err != nil {
		fmt.Printf("✗ Failed: %v\n", err)
		os.Exit(1)
	}
	if fees <= 0 {
		fmt.Println("No outstanding fees")
		return
	}

	fmt.Printf("Paying $%.2f...\n", fees)
	if err := client.PayFees(ctx, fees); err != nil {
		fmt.Printf("✗ Payment failed: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("✓ Paid $%.2f. Receipt sent to %s\n", fees, sess.Subject())
}

// ===== EXPORT =====

func handleExport() {
	if len(os.Args) < 3 || os.Args[2] != "catalog" {
		fmt.Println("Usage: bookhub export catalog [--output <file>]")
		os.Exit(1)
	}
	cmdExportCatalog()
}

// cmdExportCatalog walks every catalog page into the local cache and
// writes the whole catalog as JSON.
func cmdExportCatalog() {
	output := getFlag("--output")
	if output == "" {
		output = "catalog_export.json"
	}
	ctx := context.Background()

	s, err := store.Open(cfg.Cache.Path)
	if err != nil {
		fmt.Printf("✗ Failed to open cache: %v\n", err)
		os.Exit(1)
	}
	defer s.Close()

	page := 1
	total := 0
	for {
		result, err := client.FetchBooks(ctx, api.BookSearch{Page: page, PerPage: cfg.Catalog.BooksPerPage})
		if err != nil {
			fmt.Printf("✗ Export failed: %v\n", err)
			os.Exit(1)
		}
		if err := s.SaveBooks(result.Content); err != nil {
			fmt.Printf("✗ Failed to cache books: %v\n", err)
			os.Exit(1)
		}
		total += len(result.Content)
		if page >= result.TotalPages {
			break
		}
		page++
	}

	if genres, err := client.FindAllGenres(ctx); err == nil {
		s.SaveGenres(genres)
	}

	books, err := s.ListBooks("")
	if err != nil {
		fmt.Printf("✗ Failed to read cache: %v\n", err)
		os.Exit(1)
	}

	data, _ := json.MarshalIndent(books, "", "  ")
	if err := os.WriteFile(output, data, 0644); err != nil {
		fmt.Printf("✗ Failed to write file: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("✓ Exported %d books to %s\n", total, output)
}

// ===== HELPER FUNCTIONS =====

// cacheBooks updates the local cache after a listing; failures are not
// worth interrupting the command for.
func cacheBooks(books []models.Book) {
	s, err := store.Open(cfg.Cache.Path)
	if err != nil {
		return
	}
	defer s.Close()
	s.SaveBooks(books)
}

func cacheGenres(genres []models.Genre) {
	s, err := store.Open(cfg.Cache.Path)
	if err != nil {
		return
	}
	defer s.Close()
	s.SaveGenres(genres)
}

func getFlag(flag string) string {
	for i, arg := range os.Args {
		if arg == flag && i+1 < len(os.Args) {
			return os.Args[i+1]
		}
	}
	return ""
}

func hasFlag(flag string) bool {
	for _, arg := range os.Args {
		if arg == flag {
			return true
		}
	}
	return false
}

func intFlag(flag string, fallback int) int {
	value := getFlag(flag)
	if value == "" {
		return fallback
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return n
}

// positionalID reads the required <book-id> argument after the
// subcommand.
func positionalID(usage string) int64 {
	if len(os.Args) < 4 {
		fmt.Println("Usage: " + usage)
		os.Exit(1)
	}
	id, err := strconv.ParseInt(os.Args[3], 10, 64)
	if err != nil {
		fmt.Println("Usage: " + usage)
		os.Exit(1)
	}
	return id
}

func requireAuth() {
	if !sess.IsAuthenticated() {
		fmt.Println("✗ Please login first")
		fmt.Println("  bookhub auth login --email <email>")
		os.Exit(1)
	}
	if sess.Expired() {
		fmt.Println("✗ Session expired, please login again")
		fmt.Println("  bookhub auth login --email " + sess.Subject())
		os.Exit(1)
	}
}

func readPassword() string {
	data, err := term.ReadPassword(int(syscall.Stdin))
	if err != nil {
		var password string
		fmt.Scanln(&password)
		return password
	}
	return string(data)
}
