package api

// Endpoint paths relative to the backend's /api base, grouped by
// controller. Secure paths require a bearer token.
const (
	booksPath         = "/books"
	searchByTitlePath = "/books/search/by-title"
	searchByGenrePath = "/books/search/by-genre"
	isCheckedOutPath  = "/books/secure/is-checked-out/%d"
	checkoutBookPath  = "/books/secure/checkout/%d"
	renewCheckoutPath = "/books/secure/renew-checkout/%d"
	returnBookPath    = "/books/secure/return/%d"
	isReviewedPath    = "/books/secure/is-reviewed/%d"
	reviewBookPath    = "/books/secure/review/%d"

	currentLoansCountPath = "/checkouts/secure/current-loans-count"
	currentCheckoutsPath  = "/checkouts/secure/current-checkouts"

	genresPath = "/genres"

	historyRecordsPath = "/history-records/secure"

	discussionsPath   = "/discussions/secure"
	addDiscussionPath = "/discussions/secure/add-discussion"

	addBookPath          = "/admin/secure/add-book"
	increaseQuantityPath = "/admin/secure/increase-quantity/%d"
	decreaseQuantityPath = "/admin/secure/decrease-quantity/%d"
	deleteBookPath       = "/admin/secure/delete-book/%d"
	openDiscussionsPath  = "/admin/secure/open-discussions"
	closeDiscussionPath  = "/admin/secure/close-discussion"

	paymentInfoPath     = "/payments/secure"
	paymentIntentPath   = "/payments/secure/payment-intent"
	paymentCompletePath = "/payments/secure/payment-complete"

	reviewsPath       = "/reviews/%d"
	averageRatingPath = "/reviews/average-rating/%d"

	registerPath     = "/auth/register"
	authenticatePath = "/auth/authenticate"
)
