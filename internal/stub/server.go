// Package stub is an in-memory stand-in for the BookStore backend. It
// serves the same REST contract the real service does, so the CLI and
// the client tests can run against a local process with seeded data.
package stub

import (
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"

	"bookhub/pkg/models"
)

const (
	loanDays      = 7
	lateFeePerDay = 1.0
)

type account struct {
	FirstName    string
	LastName     string
	DateOfBirth  string
	Email        string
	PasswordHash string
	Admin        bool
}

type loan struct {
	BookID     int64
	ReturnDate time.Time
}

// Server holds the whole backend state in memory behind one mutex.
type Server struct {
	mu        sync.Mutex
	jwtSecret []byte

	accounts map[string]*account

	books      map[int64]*models.Book
	bookOrder  []int64
	nextBookID int64

	genres []models.Genre

	reviews      map[int64][]models.Review
	nextReviewID int64

	loans         map[string][]*loan
	history       map[string][]models.HistoryRecord
	nextHistoryID int64

	discussions      []*models.Discussion
	nextDiscussionID int64

	fees map[string]float64

	now func() time.Time
}

// New creates a server with the seed catalog and the two seed accounts.
func New(jwtSecret string) *Server {
	s := &Server{
		jwtSecret: []byte(jwtSecret),
		accounts:  make(map[string]*account),
		books:     make(map[int64]*models.Book),
		reviews:   make(map[int64][]models.Review),
		loans:     make(map[string][]*loan),
		history:   make(map[string][]models.HistoryRecord),
		fees:      make(map[string]float64),
		now:       time.Now,
	}
	s.seed()
	return s
}

// Router builds the gin engine with the full route table.
func (s *Server) Router() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	public := router.Group("/api")
	{
		public.POST("/auth/register", s.register)
		public.POST("/auth/authenticate", s.authenticate)

		public.GET("/books", s.listBooks)
		public.GET("/books/search/by-title", s.searchBooksByTitle)
		public.GET("/books/search/by-genre", s.searchBooksByGenre)
		public.GET("/books/:id", s.getBook)

		public.GET("/genres", s.listGenres)

		public.GET("/reviews/:bookId", s.listReviews)
		public.GET("/reviews/average-rating/:bookId", s.averageRating)
	}

	secure := router.Group("/api")
	secure.Use(s.jwtMiddleware())
	{
		secure.GET("/books/secure/is-checked-out/:id", s.isCheckedOut)
		secure.PUT("/books/secure/checkout/:id", s.checkoutBook)
		secure.PUT("/books/secure/renew-checkout/:id", s.renewCheckout)
		secure.PUT("/books/secure/return/:id", s.returnBook)
		secure.GET("/books/secure/is-reviewed/:id", s.isReviewed)
		secure.POST("/books/secure/review/:id", s.reviewBook)

		secure.GET("/checkouts/secure/current-loans-count", s.currentLoansCount)
		secure.GET("/checkouts/secure/current-checkouts", s.currentCheckouts)

		secure.GET("/history-records/secure", s.listHistoryRecords)

		secure.GET("/discussions/secure", s.listDiscussions)
		secure.POST("/discussions/secure/add-discussion", s.addDiscussion)

		secure.GET("/payments/secure", s.paymentFees)
		secure.POST("/payments/secure/payment-intent", s.createPaymentIntent)
		secure.PUT("/payments/secure/payment-complete", s.completePayment)
	}

	admin := router.Group("/api/admin/secure")
	admin.Use(s.jwtMiddleware(), s.adminOnly())
	{
		admin.POST("/add-book", s.addBook)
		admin.PATCH("/increase-quantity/:id", s.increaseQuantity)
		admin.PATCH("/decrease-quantity/:id", s.decreaseQuantity)
		admin.DELETE("/delete-book/:id", s.deleteBook)
		admin.GET("/open-discussions", s.listOpenDiscussions)
		admin.PATCH("/close-discussion", s.closeDiscussion)
	}

	return router
}

func fail(c *gin.Context, status int, message string) {
	c.JSON(status, models.ErrorResponse{Message: message})
}

// issueToken signs the claim shape the client decodes: sub is the
// account email and role holds the granted authorities.
func (s *Server) issueToken(acct *account) (string, error) {
	authority := "ROLE_USER"
	if acct.Admin {
		authority = "ROLE_ADMIN"
	}

	claims := jwt.MapClaims{
		"sub": acct.Email,
		"iat": s.now().Unix(),
		"exp": s.now().Add(time.Hour).Unix(),
		"role": []map[string]string{
			{"authority": authority},
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.jwtSecret)
}

type stubClaims struct {
	Roles []struct {
		Authority string `json:"authority"`
	} `json:"role"`
	jwt.RegisteredClaims
}

func (s *Server) jwtMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			fail(c, http.StatusUnauthorized, "authorization header required")
			c.Abort()
			return
		}

		claims := &stubClaims{}
		_, err := jwt.ParseWithClaims(parts[1], claims, func(t *jwt.Token) (interface{}, error) {
			return s.jwtSecret, nil
		})
		if err != nil {
			fail(c, http.StatusUnauthorized, "invalid or expired token")
			c.Abort()
			return
		}

		admin := false
		for _, role := range claims.Roles {
			if role.Authority == "ROLE_ADMIN" {
				admin = true
			}
		}

		c.Set("email", claims.Subject)
		c.Set("admin", admin)
		c.Next()
	}
}

func (s *Server) adminOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !c.GetBool("admin") {
			fail(c, http.StatusForbidden, "Administration page only")
			c.Abort()
			return
		}
		c.Next()
	}
}

func userEmail(c *gin.Context) string {
	return c.GetString("email")
}

func pathID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil {
		fail(c, http.StatusBadRequest, "invalid id")
		return 0, false
	}
	return id, true
}

// pageParams reads the zero-based page and the per-page size the real
// backend expects.
func pageParams(c *gin.Context, sizeParam string, defaultSize int) (page, size int) {
	page, _ = strconv.Atoi(c.DefaultQuery("page", "0"))
	size, _ = strconv.Atoi(c.DefaultQuery(sizeParam, strconv.Itoa(defaultSize)))
	if page < 0 {
		page = 0
	}
	if size < 1 {
		size = defaultSize
	}
	return page, size
}

// paginate wraps a slice in the backend's page envelope.
func paginate[T any](items []T, page, size int) models.Page[T] {
	total := len(items)
	totalPages := (total + size - 1) / size

	start := page * size
	if start > total {
		start = total
	}
	end := start + size
	if end > total {
		end = total
	}

	return models.Page[T]{
		Content:       items[start:end],
		TotalElements: int64(total),
		TotalPages:    totalPages,
	}
}
