package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"ctchen222/BookShelf/internal/api/models"
	"ctchen222/BookShelf/internal/api/repository"
	"ctchen222/BookShelf/internal/apperr"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBookFixture(t *testing.T) (BookService, int64, int64) {
	t.Helper()

	pool := newTestDB(t)
	users := newTestUserService(t, pool, time.Hour)

	alice, err := users.Register(context.Background(), &models.RegisterRequest{
		Username: "alice", Email: "alice@x.com", Password: "pw123456",
	})
	require.NoError(t, err)
	bob, err := users.Register(context.Background(), &models.RegisterRequest{
		Username: "bob", Email: "bob@x.com", Password: "pw123456",
	})
	require.NoError(t, err)

	return NewBookService(repository.NewBookRepository(pool)), alice.ID, bob.ID
}

func TestBookService_CreateAppliesDefaults(t *testing.T) {
	books, alice, _ := newBookFixture(t)

	saved, err := books.Create(context.Background(), alice, &models.CreateBookRequest{
		GoogleID: "abc123",
		Title:    "Dune",
	})
	require.NoError(t, err)

	assert.Equal(t, models.StatusWantToRead, saved.Status)
	assert.Equal(t, "", saved.PersonalReview)
	assert.Equal(t, models.StringList{models.UnknownAuthor}, saved.Authors)
	assert.Equal(t, models.NoDescription, saved.Description)
	assert.NotEmpty(t, saved.ID)
}

func TestBookService_CreateKeepsProvidedFields(t *testing.T) {
	books, alice, _ := newBookFixture(t)

	saved, err := books.Create(context.Background(), alice, &models.CreateBookRequest{
		GoogleID:    "abc123",
		Title:       "Dune",
		Subtitle:    "Book One",
		Authors:     []string{"Frank Herbert"},
		Description: "Spice and sand",
		Thumbnail:   "http://img/dune.jpg",
		Link:        "http://books/dune",
	})
	require.NoError(t, err)

	assert.Equal(t, models.StringList{"Frank Herbert"}, saved.Authors)
	assert.Equal(t, "Spice and sand", saved.Description)
	assert.Equal(t, "Book One", saved.Subtitle)
}

func TestBookService_CreateRequiresIDAndTitle(t *testing.T) {
	books, alice, _ := newBookFixture(t)

	for _, req := range []*models.CreateBookRequest{
		{Title: "Dune"},
		{GoogleID: "abc123"},
		{},
	} {
		_, err := books.Create(context.Background(), alice, req)
		require.Error(t, err)
		assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
	}
}

func TestBookService_UpdateValidatesStatus(t *testing.T) {
	books, alice, _ := newBookFixture(t)

	saved, err := books.Create(context.Background(), alice, &models.CreateBookRequest{
		GoogleID: "abc123", Title: "Dune",
	})
	require.NoError(t, err)

	bogus := "Finished"
	_, err = books.Update(context.Background(), alice, saved.ID, &models.UpdateBookRequest{Status: &bogus})
	require.Error(t, err)
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))

	for _, status := range []string{models.StatusWantToRead, models.StatusReading, models.StatusCompleted} {
		s := status
		updated, err := books.Update(context.Background(), alice, saved.ID, &models.UpdateBookRequest{Status: &s})
		require.NoError(t, err)
		assert.Equal(t, status, updated.Status)
	}
}

func TestBookService_UpdateReviewIndependentOfStatus(t *testing.T) {
	books, alice, _ := newBookFixture(t)

	saved, err := books.Create(context.Background(), alice, &models.CreateBookRequest{
		GoogleID: "abc123", Title: "Dune",
	})
	require.NoError(t, err)

	reading := models.StatusReading
	updated, err := books.Update(context.Background(), alice, saved.ID, &models.UpdateBookRequest{Status: &reading})
	require.NoError(t, err)
	assert.Equal(t, models.StatusReading, updated.Status)
	assert.Equal(t, "", updated.PersonalReview)

	review := "Loved it"
	updated, err = books.Update(context.Background(), alice, saved.ID, &models.UpdateBookRequest{PersonalReview: &review})
	require.NoError(t, err)
	assert.Equal(t, models.StatusReading, updated.Status)
	assert.Equal(t, "Loved it", updated.PersonalReview)
}

func TestBookService_UpdateRejectsOversizedReview(t *testing.T) {
	books, alice, _ := newBookFixture(t)

	saved, err := books.Create(context.Background(), alice, &models.CreateBookRequest{
		GoogleID: "abc123", Title: "Dune",
	})
	require.NoError(t, err)

	long := strings.Repeat("x", 1001)
	_, err = books.Update(context.Background(), alice, saved.ID, &models.UpdateBookRequest{PersonalReview: &long})
	require.Error(t, err)
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
}

func TestBookService_CrossUserAccessIsNotFound(t *testing.T) {
	books, alice, bob := newBookFixture(t)

	saved, err := books.Create(context.Background(), alice, &models.CreateBookRequest{
		GoogleID: "abc123", Title: "Dune",
	})
	require.NoError(t, err)

	status := models.StatusCompleted
	_, err = books.Update(context.Background(), bob, saved.ID, &models.UpdateBookRequest{Status: &status})
	require.Error(t, err)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))

	_, err = books.Delete(context.Background(), bob, saved.ID)
	require.Error(t, err)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}

func TestBookService_DuplicateSaveThenDeleteThenResave(t *testing.T) {
	books, alice, _ := newBookFixture(t)

	saved, err := books.Create(context.Background(), alice, &models.CreateBookRequest{
		GoogleID: "abc123", Title: "Dune",
	})
	require.NoError(t, err)

	_, err = books.Create(context.Background(), alice, &models.CreateBookRequest{
		GoogleID: "abc123", Title: "Dune",
	})
	require.Error(t, err)
	assert.Equal(t, apperr.KindConflict, apperr.KindOf(err))

	_, err = books.Delete(context.Background(), alice, saved.ID)
	require.NoError(t, err)

	_, err = books.Create(context.Background(), alice, &models.CreateBookRequest{
		GoogleID: "abc123", Title: "Dune",
	})
	require.NoError(t, err)
}
