// Package store is the local catalog cache: a small sqlite database the
// CLI refreshes from the backend and reads when browsing offline or
// exporting.
package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	_ "github.com/mattn/go-sqlite3"

	"bookhub/pkg/models"
)

var ErrBookNotFound = errors.New("book not found")

// Open opens the cache at dbPath (":memory:" works for tests) and
// creates the tables.
func Open(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open cache: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping cache: %w", err)
	}

	if err := createTables(db); err != nil {
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return &Store{db: db}, nil
}

func createTables(db *sql.DB) error {
	schema := `
	CREATE TABLE IF NOT EXISTS books (
		id INTEGER PRIMARY KEY,
		title TEXT NOT NULL,
		author TEXT NOT NULL,
		description TEXT,
		copies INTEGER NOT NULL,
		copies_available INTEGER NOT NULL,
		genres TEXT NOT NULL,
		img TEXT,
		cached_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS genres (
		id INTEGER PRIMARY KEY,
		description TEXT UNIQUE NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_books_title ON books(title);
	CREATE INDEX IF NOT EXISTS idx_books_author ON books(author);
	`

	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("failed to execute schema: %w", err)
	}
	return nil
}

// Store caches catalog data between runs.
type Store struct {
	db *sql.DB
}

func (s *Store) Close() error { return s.db.Close() }

// SaveBooks replaces the cached page of books with the given ones.
// Genres are packed as JSON in a single column.
func (s *Store) SaveBooks(books []models.Book) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		INSERT INTO books (id, title, author, description, copies, copies_available, genres, img)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			title = excluded.title,
			author = excluded.author,
			description = excluded.description,
			copies = excluded.copies,
			copies_available = excluded.copies_available,
			genres = excluded.genres,
			img = excluded.img,
			cached_at = CURRENT_TIMESTAMP
	`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, book := range books {
		genresJSON, err := json.Marshal(book.Genres)
		if err != nil {
			return err
		}
		if _, err := stmt.Exec(
			book.ID,
			book.Title,
			book.Author,
			book.Description,
			book.Copies,
			book.CopiesAvailable,
			string(genresJSON),
			book.Img,
		); err != nil {
			return fmt.Errorf("failed to cache book %q: %w", book.Title, err)
		}
	}

	return tx.Commit()
}

// ListBooks returns the cached books matching the query, ordered by
// title. An empty query returns everything.
func (s *Store) ListBooks(query string) ([]models.Book, error) {
	sqlQuery := `SELECT id, title, author, description, copies, copies_available, genres, img FROM books`
	var args []interface{}
	if query != "" {
		sqlQuery += ` WHERE title LIKE ? OR author LIKE ?`
		searchTerm := "%" + query + "%"
		args = append(args, searchTerm, searchTerm)
	}
	sqlQuery += ` ORDER BY title`

	rows, err := s.db.Query(sqlQuery, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list books: %w", err)
	}
	defer rows.Close()

	var books []models.Book
	for rows.Next() {
		var book models.Book
		var genresJSON string
		if err := rows.Scan(
			&book.ID,
			&book.Title,
			&book.Author,
			&book.Description,
			&book.Copies,
			&book.CopiesAvailable,
			&genresJSON,
			&book.Img,
		); err != nil {
			return nil, fmt.Errorf("failed to scan book: %w", err)
		}
		if err := json.Unmarshal([]byte(genresJSON), &book.Genres); err != nil {
			return nil, fmt.Errorf("failed to decode genres: %w", err)
		}
		books = append(books, book)
	}

	return books, rows.Err()
}

// GetBook returns one cached book by ID.
func (s *Store) GetBook(id int64) (models.Book, error) {
	var book models.Book
	var genresJSON string
	err := s.db.QueryRow(
		`SELECT id, title, author, description, copies, copies_available, genres, img FROM books WHERE id = ?`,
		id,
	).Scan(
		&book.ID,
		&book.Title,
		&book.Author,
		&book.Description,
		&book.Copies,
		&book.CopiesAvailable,
		&genresJSON,
		&book.Img,
	)
	if err == sql.ErrNoRows {
		return models.Book{}, ErrBookNotFound
	}
	if err != nil {
		return models.Book{}, fmt.Errorf("failed to get book: %w", err)
	}
	if err := json.Unmarshal([]byte(genresJSON), &book.Genres); err != nil {
		return models.Book{}, fmt.Errorf("failed to decode genres: %w", err)
	}
	return book, nil
}

// SaveGenres replaces the cached genre list.
func (s *Store) SaveGenres(genres []models.Genre) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM genres`); err != nil {
		return err
	}

	stmt, err := tx.Prepare(`INSERT INTO genres (id, description) VALUES (?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, genre := range genres {
		if _, err := stmt.Exec(genre.ID, genre.Description); err != nil {
			return fmt.Errorf("failed to cache genre %q: %w", genre.Description, err)
		}
	}

	return tx.Commit()
}

// ListGenres returns the cached genres ordered by description.
func (s *Store) ListGenres() ([]models.Genre, error) {
	rows, err := s.db.Query(`SELECT id, description FROM genres ORDER BY description`)
	if err != nil {
		return nil, fmt.Errorf("failed to list genres: %w", err)
	}
	defer rows.Close()

	var genres []models.Genre
	for rows.Next() {
		var genre models.Genre
		if err := rows.Scan(&genre.ID, &genre.Description); err != nil {
			return nil, fmt.Errorf("failed to scan genre: %w", err)
		}
		genres = append(genres, genre)
	}

	return genres, rows.Err()
}
