package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// Reading statuses a saved book can be in.
const (
	StatusWantToRead = "Want to Read"
	StatusReading    = "Reading"
	StatusCompleted  = "Completed"
)

// Defaults applied when the catalog provides no value.
const (
	UnknownAuthor = "Unknown Author"
	NoDescription = "No description available"
)

// ValidStatus reports whether s is one of the three reading statuses.
func ValidStatus(s string) bool {
	switch s {
	case StatusWantToRead, StatusReading, StatusCompleted:
		return true
	}
	return false
}

// StringList stores an ordered list of strings as a JSON column.
type StringList []string

func (l StringList) Value() (driver.Value, error) {
	b, err := json.Marshal([]string(l))
	if err != nil {
		return nil, fmt.Errorf("failed to marshal string list: %w", err)
	}
	return string(b), nil
}

func (l *StringList) Scan(src any) error {
	switch v := src.(type) {
	case string:
		return json.Unmarshal([]byte(v), l)
	case []byte:
		return json.Unmarshal(v, l)
	case nil:
		*l = nil
		return nil
	}
	return fmt.Errorf("cannot scan %T into StringList", src)
}

// Book is a saved library entry: a reference to an external catalog item
// plus the owner's status and review.
type Book struct {
	ID             string     `db:"id" json:"id"`
	UserID         int64      `db:"user_id" json:"-"`
	GoogleID       string     `db:"google_id" json:"googleId"`
	Title          string     `db:"title" json:"title"`
	Subtitle       string     `db:"subtitle" json:"subtitle"`
	Authors        StringList `db:"authors" json:"authors"`
	Description    string     `db:"description" json:"description"`
	Thumbnail      string     `db:"thumbnail" json:"thumbnail"`
	Link           string     `db:"link" json:"link"`
	Status         string     `db:"status" json:"status"`
	PersonalReview string     `db:"personal_review" json:"personalReview"`
	CreatedAt      time.Time  `db:"created_at" json:"createdAt"`
	UpdatedAt      time.Time  `db:"updated_at" json:"updatedAt"`
}

// SearchBook is a catalog item normalized into the saveable book shape.
type SearchBook struct {
	GoogleID    string   `json:"googleId"`
	Title       string   `json:"title"`
	Subtitle    string   `json:"subtitle"`
	Authors     []string `json:"authors"`
	Description string   `json:"description"`
	Thumbnail   string   `json:"thumbnail"`
	Link        string   `json:"link"`
}

// CreateBookRequest defines the structure for saving a book to the library.
type CreateBookRequest struct {
	GoogleID    string   `json:"googleId" binding:"required" validate:"required"`
	Title       string   `json:"title" binding:"required" validate:"required"`
	Subtitle    string   `json:"subtitle"`
	Authors     []string `json:"authors"`
	Description string   `json:"description"`
	Thumbnail   string   `json:"thumbnail"`
	Link        string   `json:"link"`
}

// UpdateBookRequest is a partial update: nil fields are left unchanged.
type UpdateBookRequest struct {
	Status         *string `json:"status,omitempty"`
	PersonalReview *string `json:"personalReview,omitempty" binding:"omitempty,max=1000" validate:"omitempty,max=1000"`
}

// ListBooksResponse wraps the library listing.
type ListBooksResponse struct {
	Success bool   `json:"success"`
	Count   int    `json:"count"`
	Data    []Book `json:"data"`
}

// BookResponse wraps a single saved book.
type BookResponse struct {
	Success bool `json:"success"`
	Data    Book `json:"data"`
}

// DeleteBookResponse carries the removed record's snapshot.
type DeleteBookResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    Book   `json:"data"`
}

// SearchResponse wraps a catalog search page with pagination metadata so
// the caller can compute total pages.
type SearchResponse struct {
	Success      bool         `json:"success"`
	Count        int          `json:"count"`
	TotalItems   int          `json:"totalItems"`
	CurrentPage  int          `json:"currentPage"`
	BooksPerPage int          `json:"booksPerPage"`
	Data         []SearchBook `json:"data"`
}
