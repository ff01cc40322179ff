package stub

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"bookhub/pkg/models"
)

func (s *Server) findLoan(email string, bookID int64) *loan {
	for _, l := range s.loans[email] {
		if l.BookID == bookID {
			return l
		}
	}
	return nil
}

func (s *Server) isCheckedOut(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	s.mu.Lock()
	checkedOut := s.findLoan(userEmail(c), id) != nil
	s.mu.Unlock()

	c.JSON(http.StatusOK, checkedOut)
}

func (s *Server) checkoutBook(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	email := userEmail(c)

	s.mu.Lock()
	defer s.mu.Unlock()

	book, found := s.books[id]
	if !found || book.CopiesAvailable <= 0 || s.findLoan(email, id) != nil {
		fail(c, http.StatusBadRequest, "Book doesn't exist or already checked out by user")
		return
	}
	if s.fees[email] > 0 {
		fail(c, http.StatusBadRequest, "Outstanding fees")
		return
	}
	for _, l := range s.loans[email] {
		if s.now().After(l.ReturnDate) {
			fail(c, http.StatusBadRequest, "Outstanding fees")
			return
		}
	}

	book.CopiesAvailable--
	s.loans[email] = append(s.loans[email], &loan{
		BookID:     id,
		ReturnDate: s.now().AddDate(0, 0, loanDays),
	})

	c.JSON(http.StatusOK, book)
}

func (s *Server) renewCheckout(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	email := userEmail(c)

	s.mu.Lock()
	defer s.mu.Unlock()

	l := s.findLoan(email, id)
	if l == nil {
		fail(c, http.StatusBadRequest, "Book is not checked out by user")
		return
	}
	if s.now().After(l.ReturnDate) {
		fail(c, http.StatusBadRequest, "Book is overdue")
		return
	}

	l.ReturnDate = s.now().AddDate(0, 0, loanDays)
	c.Status(http.StatusOK)
}

func (s *Server) returnBook(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	email := userEmail(c)

	s.mu.Lock()
	defer s.mu.Unlock()

	l := s.findLoan(email, id)
	if l == nil {
		fail(c, http.StatusBadRequest, "Book is not checked out by user")
		return
	}

	book := s.books[id]
	if book != nil {
		book.CopiesAvailable++
	}

	// A late return accrues fees per day overdue.
	if overdue := s.now().Sub(l.ReturnDate); overdue > 0 {
		days := int(overdue/(24*time.Hour)) + 1
		s.fees[email] += float64(days) * lateFeePerDay
	}

	kept := s.loans[email][:0]
	for _, other := range s.loans[email] {
		if other.BookID != id {
			kept = append(kept, other)
		}
	}
	s.loans[email] = kept

	s.nextHistoryID++
	record := models.HistoryRecord{
		ID:           s.nextHistoryID,
		CheckoutDate: l.ReturnDate.AddDate(0, 0, -loanDays).Format("2006-01-02"),
		ReturnDate:   s.now().Format("2006-01-02"),
	}
	if book != nil {
		record.Book = *book
	}
	s.history[email] = append(s.history[email], record)

	c.Status(http.StatusOK)
}

func (s *Server) isReviewed(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	email := userEmail(c)

	s.mu.Lock()
	reviewed := false
	for _, review := range s.reviews[id] {
		if review.PersonEmail == email {
			reviewed = true
			break
		}
	}
	s.mu.Unlock()

	c.JSON(http.StatusOK, reviewed)
}

func (s *Server) reviewBook(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	email := userEmail(c)

	var review models.Review
	if err := c.ShouldBindJSON(&review); err != nil {
		fail(c, http.StatusBadRequest, "invalid request body")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, found := s.books[id]; !found {
		fail(c, http.StatusNotFound, "Book not found")
		return
	}
	for _, existing := range s.reviews[id] {
		if existing.PersonEmail == email {
			fail(c, http.StatusBadRequest, "Review already created")
			return
		}
	}

	s.nextReviewID++
	review.ID = s.nextReviewID
	review.PersonEmail = email
	if acct := s.accounts[email]; acct != nil {
		review.PersonFirstName = acct.FirstName
	}
	review.Date = s.now().Format("2006-01-02")
	s.reviews[id] = append(s.reviews[id], review)

	c.Status(http.StatusOK)
}

func (s *Server) currentLoansCount(c *gin.Context) {
	s.mu.Lock()
	count := len(s.loans[userEmail(c)])
	s.mu.Unlock()

	c.JSON(http.StatusOK, count)
}

func (s *Server) currentCheckouts(c *gin.Context) {
	s.mu.Lock()
	checkouts := make([]models.Checkout, 0)
	for _, l := range s.loans[userEmail(c)] {
		book := s.books[l.BookID]
		if book == nil {
			continue
		}
		daysLeft := int(l.ReturnDate.Sub(s.now()).Hours() / 24)
		checkouts = append(checkouts, models.Checkout{Book: *book, DaysLeft: daysLeft})
	}
	s.mu.Unlock()

	c.JSON(http.StatusOK, checkouts)
}

func (s *Server) listHistoryRecords(c *gin.Context) {
	page, size := pageParams(c, "records-per-page", 5)

	s.mu.Lock()
	records := append([]models.HistoryRecord(nil), s.history[userEmail(c)]...)
	s.mu.Unlock()

	c.JSON(http.StatusOK, paginate(records, page, size))
}
