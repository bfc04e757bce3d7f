package service

import (
	"context"

	"ctchen222/BookShelf/internal/api/models"
	"ctchen222/BookShelf/internal/api/repository"
	"ctchen222/BookShelf/internal/apperr"
	"ctchen222/BookShelf/internal/validator"
)

// BookService defines the interface for saved-book business logic. Every
// operation takes the owning user's id; records of other users are
// invisible.
type BookService interface {
	List(ctx context.Context, userID int64) ([]models.Book, error)
	Create(ctx context.Context, userID int64, req *models.CreateBookRequest) (*models.Book, error)
	Update(ctx context.Context, userID int64, bookID string, req *models.UpdateBookRequest) (*models.Book, error)
	Delete(ctx context.Context, userID int64, bookID string) (*models.Book, error)
}

type bookService struct {
	bookRepo repository.BookRepository
}

// NewBookService creates a new BookService.
func NewBookService(bookRepo repository.BookRepository) BookService {
	return &bookService{bookRepo: bookRepo}
}

// List returns the user's library, newest first.
func (s *bookService) List(ctx context.Context, userID int64) ([]models.Book, error) {
	return s.bookRepo.ListByUser(ctx, userID)
}

// Create saves a catalog item to the user's library, filling in the
// defaults for fields the catalog left empty.
func (s *bookService) Create(ctx context.Context, userID int64, req *models.CreateBookRequest) (*models.Book, error) {
	if err := validator.GetValidator().StructCtx(ctx, req); err != nil {
		return nil, apperr.Wrap(apperr.KindValidation, "Google ID and title are required", err)
	}

	authors := req.Authors
	if len(authors) == 0 {
		authors = []string{models.UnknownAuthor}
	}
	description := req.Description
	if description == "" {
		description = models.NoDescription
	}

	book := &models.Book{
		UserID:         userID,
		GoogleID:       req.GoogleID,
		Title:          req.Title,
		Subtitle:       req.Subtitle,
		Authors:        authors,
		Description:    description,
		Thumbnail:      req.Thumbnail,
		Link:           req.Link,
		Status:         models.StatusWantToRead,
		PersonalReview: "",
	}
	return s.bookRepo.Create(ctx, book)
}

// Update applies a partial update of status and review. A nil field is
// left unchanged; a supplied status must be one of the three reading
// statuses.
func (s *bookService) Update(ctx context.Context, userID int64, bookID string, req *models.UpdateBookRequest) (*models.Book, error) {
	if err := validator.GetValidator().StructCtx(ctx, req); err != nil {
		return nil, apperr.Wrap(apperr.KindValidation, "Personal review is limited to 1000 characters", err)
	}
	if req.Status != nil && !models.ValidStatus(*req.Status) {
		return nil, apperr.Validation(`Invalid status. Must be "Want to Read", "Reading", or "Completed"`)
	}
	return s.bookRepo.Update(ctx, userID, bookID, req.Status, req.PersonalReview)
}

// Delete removes a book from the user's library and returns its snapshot.
func (s *bookService) Delete(ctx context.Context, userID int64, bookID string) (*models.Book, error) {
	return s.bookRepo.Delete(ctx, userID, bookID)
}
