package stub

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"bookhub/pkg/models"
)

func (s *Server) orderedBooks() []models.Book {
	books := make([]models.Book, 0, len(s.bookOrder))
	for _, id := range s.bookOrder {
		books = append(books, *s.books[id])
	}
	return books
}

func (s *Server) listBooks(c *gin.Context) {
	page, size := pageParams(c, "books-per-page", 9)

	s.mu.Lock()
	books := s.orderedBooks()
	s.mu.Unlock()

	c.JSON(http.StatusOK, paginate(books, page, size))
}

func (s *Server) searchBooksByTitle(c *gin.Context) {
	page, size := pageParams(c, "books-per-page", 9)
	query := strings.ToLower(c.Query("title-query"))

	s.mu.Lock()
	var books []models.Book
	for _, book := range s.orderedBooks() {
		if strings.Contains(strings.ToLower(book.Title), query) {
			books = append(books, book)
		}
	}
	s.mu.Unlock()

	c.JSON(http.StatusOK, paginate(books, page, size))
}

func (s *Server) searchBooksByGenre(c *gin.Context) {
	page, size := pageParams(c, "books-per-page", 9)
	query := c.Query("genre-query")

	s.mu.Lock()
	var books []models.Book
	for _, book := range s.orderedBooks() {
		for _, genre := range book.Genres {
			if strings.EqualFold(genre.Description, query) {
				books = append(books, book)
				break
			}
		}
	}
	s.mu.Unlock()

	c.JSON(http.StatusOK, paginate(books, page, size))
}

func (s *Server) getBook(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	s.mu.Lock()
	book, found := s.books[id]
	s.mu.Unlock()

	if !found {
		fail(c, http.StatusNotFound, "Book not found")
		return
	}
	c.JSON(http.StatusOK, book)
}

func (s *Server) listGenres(c *gin.Context) {
	s.mu.Lock()
	genres := append([]models.Genre(nil), s.genres...)
	s.mu.Unlock()

	c.JSON(http.StatusOK, genres)
}

func (s *Server) listReviews(c *gin.Context) {
	id, ok := pathID(c, "bookId")
	if !ok {
		return
	}
	page, size := pageParams(c, "reviews-per-page", 5)

	s.mu.Lock()
	reviews := append([]models.Review(nil), s.reviews[id]...)
	s.mu.Unlock()

	// Newest first when asked for the latest.
	if c.Query("latest") == "true" {
		for i, j := 0, len(reviews)-1; i < j; i, j = i+1, j-1 {
			reviews[i], reviews[j] = reviews[j], reviews[i]
		}
	}

	c.JSON(http.StatusOK, paginate(reviews, page, size))
}

func (s *Server) averageRating(c *gin.Context) {
	id, ok := pathID(c, "bookId")
	if !ok {
		return
	}

	s.mu.Lock()
	reviews := s.reviews[id]
	var sum float64
	for _, review := range reviews {
		sum += review.Rating
	}
	s.mu.Unlock()

	if len(reviews) == 0 {
		c.JSON(http.StatusOK, 0.0)
		return
	}
	c.JSON(http.StatusOK, sum/float64(len(reviews)))
}

func (s *Server) addBook(c *gin.Context) {
	var book models.Book
	if err := c.ShouldBindJSON(&book); err != nil {
		fail(c, http.StatusBadRequest, "invalid request body")
		return
	}

	var problems []string
	if strings.TrimSpace(book.Title) == "" {
		problems = append(problems, "title: must not be blank")
	}
	if strings.TrimSpace(book.Author) == "" {
		problems = append(problems, "author: must not be blank")
	}
	if strings.TrimSpace(book.Description) == "" {
		problems = append(problems, "description: must not be blank")
	}
	if book.Copies < 1 {
		problems = append(problems, "copies: must be greater than or equal to 1")
	}
	if len(problems) > 0 {
		fail(c, http.StatusBadRequest, strings.Join(problems, ", "))
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextBookID++
	book.ID = s.nextBookID
	book.CopiesAvailable = book.Copies
	if book.Genres == nil {
		book.Genres = []models.Genre{}
	}
	s.books[book.ID] = &book
	s.bookOrder = append(s.bookOrder, book.ID)

	c.JSON(http.StatusCreated, book)
}

func (s *Server) increaseQuantity(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	book, found := s.books[id]
	if !found {
		fail(c, http.StatusNotFound, "Book not found")
		return
	}

	book.Copies++
	book.CopiesAvailable++
	c.Status(http.StatusOK)
}

func (s *Server) decreaseQuantity(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	book, found := s.books[id]
	if !found {
		fail(c, http.StatusNotFound, "Book not found")
		return
	}
	if book.Copies <= 0 || book.CopiesAvailable <= 0 {
		fail(c, http.StatusBadRequest, "Quantity already at zero")
		return
	}

	book.Copies--
	book.CopiesAvailable--
	c.Status(http.StatusOK)
}

func (s *Server) deleteBook(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, found := s.books[id]; !found {
		fail(c, http.StatusNotFound, "Book not found")
		return
	}

	delete(s.books, id)
	delete(s.reviews, id)
	for i, bookID := range s.bookOrder {
		if bookID == id {
			s.bookOrder = append(s.bookOrder[:i], s.bookOrder[i+1:]...)
			break
		}
	}
	for email, loans := range s.loans {
		kept := loans[:0]
		for _, l := range loans {
			if l.BookID != id {
				kept = append(kept, l)
			}
		}
		s.loans[email] = kept
	}

	c.Status(http.StatusOK)
}
