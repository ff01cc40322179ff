package models

// Genre represents a book genre
type Genre struct {
	ID          int64  `json:"id,omitempty"`
	Description string `json:"description"`
}

// Book represents a book in the catalog
type Book struct {
	ID              int64   `json:"id,omitempty"`
	Title           string  `json:"title"`
	Author          string  `json:"author"`
	Description     string  `json:"description"`
	Copies          int     `json:"copies"`
	CopiesAvailable int     `json:"copiesAvailable"`
	Genres          []Genre `json:"genres"`
	Img             string  `json:"img"`
}

// Review represents a review left for a book
type Review struct {
	ID                int64   `json:"id,omitempty"`
	PersonEmail       string  `json:"personEmail"`
	PersonFirstName   string  `json:"personFirstName"`
	Date              string  `json:"date"`
	Rating            float64 `json:"rating"`
	ReviewDescription string  `json:"reviewDescription"`
}

// Discussion represents a question opened by a user and optionally
// answered and closed by an admin
type Discussion struct {
	ID              int64  `json:"id,omitempty"`
	PersonEmail     string `json:"personEmail,omitempty"`
	PersonFirstName string `json:"personFirstName,omitempty"`
	PersonLastName  string `json:"personLastName,omitempty"`
	Title           string `json:"title"`
	Question        string `json:"question"`
	AdminEmail      string `json:"adminEmail,omitempty"`
	Response        string `json:"response,omitempty"`
	Closed          bool   `json:"closed,omitempty"`
}

// Checkout represents one active loan with the days left until due
type Checkout struct {
	Book     Book `json:"bookDTO"`
	DaysLeft int  `json:"daysLeft"`
}

// HistoryRecord represents a completed loan
type HistoryRecord struct {
	ID           int64  `json:"id"`
	Book         Book   `json:"bookDTO"`
	CheckoutDate string `json:"checkoutDate"`
	ReturnDate   string `json:"returnDate"`
}

// PaymentInfo represents a payment intent request (amount in cents)
type PaymentInfo struct {
	Amount       int    `json:"amount"`
	Currency     string `json:"currency"`
	ReceiptEmail string `json:"receiptEmail,omitempty"`
}

// PaymentIntent is the slice of the Stripe payment intent object the
// client consumes
type PaymentIntent struct {
	ID           string `json:"id"`
	ClientSecret string `json:"client_secret"`
}

// Registration represents registration data
type Registration struct {
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	DateOfBirth string `json:"dateOfBirth"`
	Email       string `json:"email"`
	Password    string `json:"password"`
}

// Login represents login credentials
type Login struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// TokenResponse is the authentication controller's reply
type TokenResponse struct {
	Token string `json:"token"`
}

// Page is the server pagination envelope wrapping every list endpoint
type Page[T any] struct {
	Content       []T   `json:"content"`
	TotalElements int64 `json:"totalElements"`
	TotalPages    int   `json:"totalPages"`
}

// ErrorResponse is the error envelope returned on non-2xx statuses
type ErrorResponse struct {
	Message string `json:"message,omitempty"`
}
