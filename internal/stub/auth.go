package stub

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"bookhub/pkg/models"
)

func (s *Server) register(c *gin.Context) {
	var req models.Registration
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "invalid request body")
		return
	}

	var problems []string
	if strings.TrimSpace(req.FirstName) == "" {
		problems = append(problems, "firstName: must not be blank")
	}
	if strings.TrimSpace(req.LastName) == "" {
		problems = append(problems, "lastName: must not be blank")
	}
	if strings.TrimSpace(req.DateOfBirth) == "" {
		problems = append(problems, "dateOfBirth: must not be blank")
	}
	if !strings.Contains(req.Email, "@") {
		problems = append(problems, "email: must be a well-formed email address")
	}
	if len(req.Password) < 5 {
		problems = append(problems, "password: size must be at least 5")
	}
	if len(problems) > 0 {
		fail(c, http.StatusBadRequest, strings.Join(problems, ", "))
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.accounts[req.Email]; exists {
		fail(c, http.StatusConflict, "Email is already in use")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		fail(c, http.StatusInternalServerError, "failed to hash password")
		return
	}

	acct := &account{
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		DateOfBirth:  req.DateOfBirth,
		Email:        req.Email,
		PasswordHash: string(hash),
	}
	s.accounts[req.Email] = acct

	token, err := s.issueToken(acct)
	if err != nil {
		fail(c, http.StatusInternalServerError, "failed to issue token")
		return
	}
	c.JSON(http.StatusCreated, models.TokenResponse{Token: token})
}

func (s *Server) authenticate(c *gin.Context) {
	var req models.Login
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "invalid request body")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	acct, ok := s.accounts[req.Email]
	if !ok || bcrypt.CompareHashAndPassword([]byte(acct.PasswordHash), []byte(req.Password)) != nil {
		fail(c, http.StatusUnauthorized, "Invalid email or password")
		return
	}

	token, err := s.issueToken(acct)
	if err != nil {
		fail(c, http.StatusInternalServerError, "failed to issue token")
		return
	}
	c.JSON(http.StatusOK, models.TokenResponse{Token: token})
}
