package controller

import (
	"net/http"
	"strconv"

	"ctchen222/BookShelf/internal/api/middleware"
	"ctchen222/BookShelf/internal/api/models"
	"ctchen222/BookShelf/internal/api/response"
	"ctchen222/BookShelf/internal/api/service"
	"ctchen222/BookShelf/internal/apperr"
	"ctchen222/BookShelf/internal/catalog"

	"github.com/gin-gonic/gin"
)

// BookController handles the personal library endpoints and the public
// catalog search.
type BookController struct {
	bookService service.BookService
	catalog     *catalog.Client
}

// NewBookController creates a new BookController.
func NewBookController(bookService service.BookService, catalogClient *catalog.Client) *BookController {
	return &BookController{
		bookService: bookService,
		catalog:     catalogClient,
	}
}

// List returns the authenticated user's library.
func (bc *BookController) List(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		response.FromError(c, apperr.Internal("Something went wrong!", nil))
		return
	}

	books, err := bc.bookService.List(c.Request.Context(), user.ID)
	if err != nil {
		response.FromError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.ListBooksResponse{
		Success: true,
		Count:   len(books),
		Data:    books,
	})
}

// Create saves a book to the authenticated user's library.
func (bc *BookController) Create(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		response.FromError(c, apperr.Internal("Something went wrong!", nil))
		return
	}

	var req models.CreateBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.FromError(c, apperr.Wrap(apperr.KindValidation, "Google ID and title are required", err))
		return
	}

	book, err := bc.bookService.Create(c.Request.Context(), user.ID, &req)
	if err != nil {
		response.FromError(c, err)
		return
	}

	c.JSON(http.StatusCreated, models.BookResponse{Success: true, Data: *book})
}

// Update changes the status or review of a saved book.
func (bc *BookController) Update(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		response.FromError(c, apperr.Internal("Something went wrong!", nil))
		return
	}

	var req models.UpdateBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.FromError(c, apperr.Wrap(apperr.KindValidation, "Invalid update payload", err))
		return
	}

	book, err := bc.bookService.Update(c.Request.Context(), user.ID, c.Param("id"), &req)
	if err != nil {
		response.FromError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.BookResponse{Success: true, Data: *book})
}

// Delete removes a saved book and returns its snapshot.
func (bc *BookController) Delete(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		response.FromError(c, apperr.Internal("Something went wrong!", nil))
		return
	}

	book, err := bc.bookService.Delete(c.Request.Context(), user.ID, c.Param("id"))
	if err != nil {
		response.FromError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.DeleteBookResponse{
		Success: true,
		Message: "Book removed from library",
		Data:    *book,
	})
}

// Search proxies a search to the external catalog. This endpoint is public.
func (bc *BookController) Search(c *gin.Context) {
	page := 1
	if p := c.Query("page"); p != "" {
		parsed, err := strconv.Atoi(p)
		if err != nil || parsed < 1 {
			response.FromError(c, apperr.Validation("Page must be a positive number"))
			return
		}
		page = parsed
	}

	opts := catalog.SearchOptions{PrintType: c.Query("printType")}
	switch filter := c.Query("filter"); filter {
	case "":
	case "free-ebooks":
		opts.FreeOnly = true
	default:
		response.FromError(c, apperr.Validation(`Invalid filter. Only "free-ebooks" is supported`))
		return
	}

	result, err := bc.catalog.Search(c.Request.Context(), c.Query("query"), page, opts)
	if err != nil {
		response.FromError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.SearchResponse{
		Success:      true,
		Count:        len(result.Books),
		TotalItems:   result.TotalItems,
		CurrentPage:  result.CurrentPage,
		BooksPerPage: result.BooksPerPage,
		Data:         result.Books,
	})
}
