package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"ctchen222/BookShelf/internal/api/models"
	"ctchen222/BookShelf/internal/apperr"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"go.opentelemetry.io/otel"
)

var bookTracer = otel.Tracer("repository.book")

const bookColumns = `id, user_id, google_id, title, subtitle, authors, description,
	thumbnail, link, status, personal_review, created_at, updated_at`

// BookRepository defines the interface for saved-book data operations.
// Every method is scoped to the owning user: a record that belongs to
// someone else behaves exactly like a record that does not exist.
type BookRepository interface {
	ListByUser(ctx context.Context, userID int64) ([]models.Book, error)
	Create(ctx context.Context, book *models.Book) (*models.Book, error)
	Update(ctx context.Context, userID int64, bookID string, status, review *string) (*models.Book, error)
	Delete(ctx context.Context, userID int64, bookID string) (*models.Book, error)
}

type sqliteBookRepository struct {
	db *sqlx.DB
}

// NewBookRepository creates a new SQLite-based BookRepository.
func NewBookRepository(db *sqlx.DB) BookRepository {
	return &sqliteBookRepository{db: db}
}

// ListByUser returns the user's library, most recently saved first.
func (r *sqliteBookRepository) ListByUser(ctx context.Context, userID int64) ([]models.Book, error) {
	ctx, span := bookTracer.Start(ctx, "BookRepository.ListByUser")
	defer span.End()

	books := []models.Book{}
	query := `SELECT ` + bookColumns + ` FROM books WHERE user_id = ? ORDER BY created_at DESC, rowid DESC`
	if err := r.db.SelectContext(ctx, &books, query, userID); err != nil {
		return nil, fmt.Errorf("failed to list books: %w", err)
	}
	return books, nil
}

// Create inserts a new saved book. The UNIQUE(user_id, google_id) index
// rejects a second save of the same catalog item for the same user.
func (r *sqliteBookRepository) Create(ctx context.Context, book *models.Book) (*models.Book, error) {
	ctx, span := bookTracer.Start(ctx, "BookRepository.Create")
	defer span.End()

	book.ID = uuid.New().String()
	now := time.Now().UTC()
	book.CreatedAt = now
	book.UpdatedAt = now

	query := `INSERT INTO books (` + bookColumns + `)
		VALUES (:id, :user_id, :google_id, :title, :subtitle, :authors, :description,
			:thumbnail, :link, :status, :personal_review, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, book); err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return nil, apperr.Wrap(apperr.KindConflict, "Book already saved to your library", err)
		}
		return nil, fmt.Errorf("failed to create book: %w", err)
	}
	return book, nil
}

// Update applies a partial update of status and review to a book owned by
// userID and returns the updated record. The WHERE clause carries both the
// id and the owner, so the ownership check and the mutation are one atomic
// statement.
func (r *sqliteBookRepository) Update(ctx context.Context, userID int64, bookID string, status, review *string) (*models.Book, error) {
	ctx, span := bookTracer.Start(ctx, "BookRepository.Update")
	defer span.End()

	sets := []string{"updated_at = ?"}
	args := []any{time.Now().UTC()}
	if status != nil {
		sets = append(sets, "status = ?")
		args = append(args, *status)
	}
	if review != nil {
		sets = append(sets, "personal_review = ?")
		args = append(args, *review)
	}
	args = append(args, bookID, userID)

	query := `UPDATE books SET ` + strings.Join(sets, ", ") + ` WHERE id = ? AND user_id = ?`
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to update book: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("failed to read update result: %w", err)
	}
	if affected == 0 {
		return nil, apperr.NotFound("Book not found in your library")
	}

	return r.getOwned(ctx, r.db, userID, bookID)
}

// Delete removes a book owned by userID and returns the removed record's
// snapshot. Lookup and delete run in one transaction so the snapshot always
// matches what was removed.
func (r *sqliteBookRepository) Delete(ctx context.Context, userID int64, bookID string) (*models.Book, error) {
	ctx, span := bookTracer.Start(ctx, "BookRepository.Delete")
	defer span.End()

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin delete transaction: %w", err)
	}
	defer tx.Rollback()

	book, err := r.getOwned(ctx, tx, userID, bookID)
	if err != nil {
		return nil, err
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM books WHERE id = ? AND user_id = ?`, bookID, userID); err != nil {
		return nil, fmt.Errorf("failed to delete book: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit delete: %w", err)
	}
	return book, nil
}

type queryer interface {
	GetContext(ctx context.Context, dest any, query string, args ...any) error
}

func (r *sqliteBookRepository) getOwned(ctx context.Context, q queryer, userID int64, bookID string) (*models.Book, error) {
	var book models.Book
	query := `SELECT ` + bookColumns + ` FROM books WHERE id = ? AND user_id = ?`
	if err := q.GetContext(ctx, &book, query, bookID, userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.NotFound("Book not found in your library")
		}
		return nil, fmt.Errorf("failed to get book: %w", err)
	}
	return &book, nil
}
