package stub

import (
	"golang.org/x/crypto/bcrypt"

	"bookhub/pkg/models"
)

// Seed credentials, matching what the CLI docs advertise for local runs.
const (
	SeedUserEmail     = "user@bookhub.dev"
	SeedAdminEmail    = "admin@bookhub.dev"
	SeedUserPassword  = "password"
	SeedAdminPassword = "password"
)

func (s *Server) seed() {
	userHash, _ := bcrypt.GenerateFromPassword([]byte(SeedUserPassword), bcrypt.DefaultCost)
	adminHash, _ := bcrypt.GenerateFromPassword([]byte(SeedAdminPassword), bcrypt.DefaultCost)

	s.accounts[SeedUserEmail] = &account{
		FirstName:    "Ursula",
		LastName:     "User",
		Email:        SeedUserEmail,
		PasswordHash: string(userHash),
	}
	s.accounts[SeedAdminEmail] = &account{
		FirstName:    "Ada",
		LastName:     "Admin",
		Email:        SeedAdminEmail,
		PasswordHash: string(adminHash),
		Admin:        true,
	}

	s.genres = []models.Genre{
		{ID: 1, Description: "FE"},
		{ID: 2, Description: "BE"},
		{ID: 3, Description: "Data"},
		{ID: 4, Description: "DevOps"},
	}

	seedBooks := []models.Book{
		{Title: "Crash Course in Python", Author: "Eric Traya", Description: "Learn Python fast.",
			Copies: 5, CopiesAvailable: 5, Genres: []models.Genre{s.genres[2]}},
		{Title: "Become a Guru in JavaScript", Author: "Luigi Lo Iacono", Description: "All of JS.",
			Copies: 3, CopiesAvailable: 3, Genres: []models.Genre{s.genres[0]}},
		{Title: "Guide to Spring", Author: "Rajeev Dixit", Description: "Backend services end to end.",
			Copies: 4, CopiesAvailable: 4, Genres: []models.Genre{s.genres[1]}},
		{Title: "Pragmatic DevOps", Author: "Pat Ops", Description: "Ship with confidence.",
			Copies: 2, CopiesAvailable: 2, Genres: []models.Genre{s.genres[3]}},
		{Title: "Data Pipelines", Author: "Dana Flow", Description: "Move data reliably.",
			Copies: 6, CopiesAvailable: 6, Genres: []models.Genre{s.genres[2]}},
		{Title: "Frontend Patterns", Author: "Faye End", Description: "Components that last.",
			Copies: 3, CopiesAvailable: 3, Genres: []models.Genre{s.genres[0]}},
		{Title: "APIs in Practice", Author: "Rajeev Dixit", Description: "Design contracts first.",
			Copies: 4, CopiesAvailable: 4, Genres: []models.Genre{s.genres[1]}},
		{Title: "Kubernetes Field Notes", Author: "Pat Ops", Description: "Clusters in production.",
			Copies: 2, CopiesAvailable: 2, Genres: []models.Genre{s.genres[3]}},
		{Title: "SQL for Humans", Author: "Dana Flow", Description: "Queries that read well.",
			Copies: 5, CopiesAvailable: 5, Genres: []models.Genre{s.genres[2]}},
		{Title: "Testing JavaScript", Author: "Luigi Lo Iacono", Description: "Confidence per keystroke.",
			Copies: 3, CopiesAvailable: 3, Genres: []models.Genre{s.genres[0]}},
	}

	for _, book := range seedBooks {
		s.nextBookID++
		b := book
		b.ID = s.nextBookID
		s.books[b.ID] = &b
		s.bookOrder = append(s.bookOrder, b.ID)
	}
}
