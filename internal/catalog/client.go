// Package catalog is a thin client for the Google Books volumes API. It
// forwards a search term and page, and normalizes each returned volume
// into the shape the library saves.
package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"ctchen222/BookShelf/internal/api/models"
	"ctchen222/BookShelf/internal/apperr"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

var tracer = otel.Tracer("catalog")

// BooksPerPage is the fixed page size forwarded to the volumes endpoint.
const BooksPerPage = 10

// Print types the volumes endpoint accepts.
var printTypes = map[string]bool{
	"all":       true,
	"books":     true,
	"magazines": true,
}

// SearchOptions are the optional filters forwarded to the catalog.
type SearchOptions struct {
	// FreeOnly restricts results to free ebooks.
	FreeOnly bool
	// PrintType restricts results to "all", "books" or "magazines".
	// Empty means no restriction.
	PrintType string
}

// SearchResult is one page of normalized results plus the pagination
// metadata needed to compute total pages.
type SearchResult struct {
	Books        []models.SearchBook
	TotalItems   int
	CurrentPage  int
	BooksPerPage int
}

// Client searches the Google Books volumes endpoint.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a catalog client. The timeout bounds every upstream
// call; the caller's context can cancel earlier.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// volumesResponse mirrors the subset of the volumes payload we read.
type volumesResponse struct {
	TotalItems int `json:"totalItems"`
	Items      []struct {
		ID         string `json:"id"`
		VolumeInfo struct {
			Title       string   `json:"title"`
			Subtitle    string   `json:"subtitle"`
			Authors     []string `json:"authors"`
			Description string   `json:"description"`
			ImageLinks  struct {
				Thumbnail string `json:"thumbnail"`
			} `json:"imageLinks"`
			PreviewLink string `json:"previewLink"`
			InfoLink    string `json:"infoLink"`
		} `json:"volumeInfo"`
	} `json:"items"`
}

// Search fetches one page of results for the query. The query must be
// non-empty and page numbers start at 1; no upstream call is made when
// the input is invalid.
func (c *Client) Search(ctx context.Context, query string, page int, opts SearchOptions) (*SearchResult, error) {
	ctx, span := tracer.Start(ctx, "Catalog.Search")
	defer span.End()

	if query == "" {
		return nil, apperr.Validation("Search query is required")
	}
	if page < 1 {
		page = 1
	}
	if opts.PrintType != "" && !printTypes[opts.PrintType] {
		return nil, apperr.Validation(`Invalid print type. Must be "all", "books", or "magazines"`)
	}
	span.SetAttributes(attribute.String("catalog.query", query), attribute.Int("catalog.page", page))

	params := url.Values{}
	params.Set("q", query)
	params.Set("maxResults", strconv.Itoa(BooksPerPage))
	params.Set("startIndex", strconv.Itoa((page-1)*BooksPerPage))
	if opts.FreeOnly {
		params.Set("filter", "free-ebooks")
	}
	if opts.PrintType != "" {
		params.Set("printType", opts.PrintType)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/volumes?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build catalog request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "catalog call failed")
		return nil, apperr.Upstream("Error searching books from Google Books API", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		err := fmt.Errorf("catalog returned status %d", resp.StatusCode)
		span.RecordError(err)
		span.SetStatus(codes.Error, "catalog call failed")
		return nil, apperr.Upstream("Error searching books from Google Books API", err)
	}

	var payload volumesResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, apperr.Upstream("Error searching books from Google Books API", err)
	}

	books := make([]models.SearchBook, 0, len(payload.Items))
	for _, item := range payload.Items {
		info := item.VolumeInfo

		authors := info.Authors
		if len(authors) == 0 {
			authors = []string{models.UnknownAuthor}
		}
		description := info.Description
		if description == "" {
			description = models.NoDescription
		}
		// Prefer the preview link over the generic info link.
		link := info.PreviewLink
		if link == "" {
			link = info.InfoLink
		}

		books = append(books, models.SearchBook{
			GoogleID:    item.ID,
			Title:       info.Title,
			Subtitle:    info.Subtitle,
			Authors:     authors,
			Description: description,
			Thumbnail:   info.ImageLinks.Thumbnail,
			Link:        link,
		})
	}

	return &SearchResult{
		Books:        books,
		TotalItems:   payload.TotalItems,
		CurrentPage:  page,
		BooksPerPage: BooksPerPage,
	}, nil
}
