package stub

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"bookhub/pkg/models"
)

func (s *Server) listDiscussions(c *gin.Context) {
	page, size := pageParams(c, "discussions-per-page", 5)
	email := userEmail(c)

	s.mu.Lock()
	var discussions []models.Discussion
	for _, d := range s.discussions {
		if d.PersonEmail == email {
			discussions = append(discussions, *d)
		}
	}
	s.mu.Unlock()

	c.JSON(http.StatusOK, paginate(discussions, page, size))
}

func (s *Server) addDiscussion(c *gin.Context) {
	var discussion models.Discussion
	if err := c.ShouldBindJSON(&discussion); err != nil {
		fail(c, http.StatusBadRequest, "invalid request body")
		return
	}

	var problems []string
	if strings.TrimSpace(discussion.Title) == "" {
		problems = append(problems, "title: must not be blank")
	}
	if strings.TrimSpace(discussion.Question) == "" {
		problems = append(problems, "question: must not be blank")
	}
	if len(problems) > 0 {
		fail(c, http.StatusBadRequest, strings.Join(problems, ", "))
		return
	}

	email := userEmail(c)

	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextDiscussionID++
	discussion.ID = s.nextDiscussionID
	discussion.PersonEmail = email
	if acct := s.accounts[email]; acct != nil {
		discussion.PersonFirstName = acct.FirstName
		discussion.PersonLastName = acct.LastName
	}
	discussion.AdminEmail = ""
	discussion.Response = ""
	discussion.Closed = false
	s.discussions = append(s.discussions, &discussion)

	c.JSON(http.StatusCreated, discussion)
}

func (s *Server) listOpenDiscussions(c *gin.Context) {
	page, size := pageParams(c, "discussions-per-page", 5)

	s.mu.Lock()
	var open []models.Discussion
	for _, d := range s.discussions {
		if !d.Closed {
			open = append(open, *d)
		}
	}
	s.mu.Unlock()

	c.JSON(http.StatusOK, paginate(open, page, size))
}

func (s *Server) closeDiscussion(c *gin.Context) {
	var req models.Discussion
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "invalid request body")
		return
	}
	if strings.TrimSpace(req.Response) == "" {
		fail(c, http.StatusBadRequest, "response: must not be blank")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, d := range s.discussions {
		if d.ID != req.ID {
			continue
		}
		if d.Closed {
			fail(c, http.StatusBadRequest, "Discussion already closed")
			return
		}
		d.AdminEmail = userEmail(c)
		d.Response = req.Response
		d.Closed = true
		c.Status(http.StatusOK)
		return
	}

	fail(c, http.StatusNotFound, "Discussion not found")
}

func (s *Server) paymentFees(c *gin.Context) {
	s.mu.Lock()
	fees := s.fees[userEmail(c)]
	s.mu.Unlock()

	c.JSON(http.StatusOK, fees)
}

func (s *Server) createPaymentIntent(c *gin.Context) {
	var info models.PaymentInfo
	if err := c.ShouldBindJSON(&info); err != nil {
		fail(c, http.StatusBadRequest, "invalid request body")
		return
	}
	if info.Amount <= 0 {
		fail(c, http.StatusBadRequest, "amount: must be greater than 0")
		return
	}

	intent := models.PaymentIntent{
		ID:           "pi_" + uuid.New().String(),
		ClientSecret: "pi_secret_" + uuid.New().String(),
	}
	c.JSON(http.StatusOK, intent)
}

func (s *Server) completePayment(c *gin.Context) {
	s.mu.Lock()
	s.fees[userEmail(c)] = 0
	s.mu.Unlock()

	c.Status(http.StatusOK)
}
