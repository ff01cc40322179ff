package store

import (
	"errors"
	"testing"

	"bookhub/pkg/models"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()

	s, err := Open(":memory:")
	if err != nil {
		t.Fatalf("Open(:memory:): %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSaveAndListBooks(t *testing.T) {
	s := openTestStore(t)

	books := []models.Book{
		{ID: 1, Title: "Crash Course in Python", Author: "Eric", Copies: 5, CopiesAvailable: 5,
			Genres: []models.Genre{{ID: 1, Description: "BE"}}},
		{ID: 2, Title: "Become a Guru in JavaScript", Author: "Luigi", Copies: 3, CopiesAvailable: 2,
			Genres: []models.Genre{{ID: 2, Description: "FE"}}},
	}
	if err := s.SaveBooks(books); err != nil {
		t.Fatalf("SaveBooks: %v", err)
	}

	got, err := s.ListBooks("")
	if err != nil {
		t.Fatalf("ListBooks: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("ListBooks returned %d books, want 2", len(got))
	}
	// Ordered by title.
	if got[0].Title != "Become a Guru in JavaScript" {
		t.Errorf("first book = %q, want title order", got[0].Title)
	}
	if len(got[0].Genres) != 1 || got[0].Genres[0].Description != "FE" {
		t.Errorf("genres not round-tripped: %+v", got[0].Genres)
	}
}

func TestListBooksFiltersByQuery(t *testing.T) {
	s := openTestStore(t)

	if err := s.SaveBooks([]models.Book{
		{ID: 1, Title: "Crash Course in Python", Author: "Eric", Genres: []models.Genre{}},
		{ID: 2, Title: "Guide to DevOps", Author: "Pat", Genres: []models.Genre{}},
	}); err != nil {
		t.Fatalf("SaveBooks: %v", err)
	}

	got, err := s.ListBooks("python")
	if err != nil {
		t.Fatalf("ListBooks: %v", err)
	}
	if len(got) != 1 || got[0].ID != 1 {
		t.Errorf("ListBooks(python) = %+v, want only book 1", got)
	}
}

func TestSaveBooksUpserts(t *testing.T) {
	s := openTestStore(t)

	book := models.Book{ID: 1, Title: "Crash Course in Python", Author: "Eric", Copies: 5, CopiesAvailable: 5, Genres: []models.Genre{}}
	if err := s.SaveBooks([]models.Book{book}); err != nil {
		t.Fatalf("SaveBooks: %v", err)
	}

	book.CopiesAvailable = 4
	if err := s.SaveBooks([]models.Book{book}); err != nil {
		t.Fatalf("SaveBooks (update): %v", err)
	}

	got, err := s.GetBook(1)
	if err != nil {
		t.Fatalf("GetBook: %v", err)
	}
	if got.CopiesAvailable != 4 {
		t.Errorf("CopiesAvailable = %d, want 4", got.CopiesAvailable)
	}
}

func TestGetBookNotFound(t *testing.T) {
	s := openTestStore(t)

	if _, err := s.GetBook(99); !errors.Is(err, ErrBookNotFound) {
		t.Errorf("GetBook(99) error = %v, want ErrBookNotFound", err)
	}
}

func TestSaveAndListGenres(t *testing.T) {
	s := openTestStore(t)

	if err := s.SaveGenres([]models.Genre{
		{ID: 1, Description: "FE"},
		{ID: 2, Description: "BE"},
	}); err != nil {
		t.Fatalf("SaveGenres: %v", err)
	}

	got, err := s.ListGenres()
	if err != nil {
		t.Fatalf("ListGenres: %v", err)
	}
	if len(got) != 2 || got[0].Description != "BE" {
		t.Errorf("ListGenres = %+v, want 2 genres ordered by description", got)
	}
}
