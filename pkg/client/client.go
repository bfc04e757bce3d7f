// Package client is the typed HTTP client for the BookShelf API. The
// presentation layer talks to the server exclusively through it.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"ctchen222/BookShelf/internal/api/models"
	"ctchen222/BookShelf/internal/apperr"
)

// Client calls the BookShelf API, attaching the bearer token when one has
// been set.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// New creates a client for the API at baseURL.
func New(baseURL string) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
}

// SetToken sets the session token sent with authenticated requests.
func (c *Client) SetToken(token string) {
	c.token = token
}

// Register creates an account and returns the new session.
func (c *Client) Register(ctx context.Context, username, email, password string) (*models.AuthResponse, error) {
	body := models.RegisterRequest{Username: username, Email: email, Password: password}
	var resp models.AuthResponse
	if err := c.do(ctx, http.MethodPost, "/api/auth/register", nil, body, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Login exchanges credentials for a session.
func (c *Client) Login(ctx context.Context, email, password string) (*models.AuthResponse, error) {
	body := models.LoginRequest{Email: email, Password: password}
	var resp models.AuthResponse
	if err := c.do(ctx, http.MethodPost, "/api/auth/login", nil, body, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Me returns the authenticated user's public fields.
func (c *Client) Me(ctx context.Context) (*models.MeResponse, error) {
	var resp models.MeResponse
	if err := c.do(ctx, http.MethodGet, "/api/auth/me", nil, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Search queries the catalog. filter and printType may be empty.
func (c *Client) Search(ctx context.Context, query string, page int, filter, printType string) (*models.SearchResponse, error) {
	params := url.Values{}
	params.Set("query", query)
	if page > 0 {
		params.Set("page", strconv.Itoa(page))
	}
	if filter != "" {
		params.Set("filter", filter)
	}
	if printType != "" {
		params.Set("printType", printType)
	}

	var resp models.SearchResponse
	if err := c.do(ctx, http.MethodGet, "/api/books/search", params, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// ListBooks returns the user's library.
func (c *Client) ListBooks(ctx context.Context) (*models.ListBooksResponse, error) {
	var resp models.ListBooksResponse
	if err := c.do(ctx, http.MethodGet, "/api/books", nil, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// SaveBook adds a catalog item to the user's library.
func (c *Client) SaveBook(ctx context.Context, req *models.CreateBookRequest) (*models.Book, error) {
	var resp models.BookResponse
	if err := c.do(ctx, http.MethodPost, "/api/books", nil, req, &resp); err != nil {
		return nil, err
	}
	return &resp.Data, nil
}

// UpdateBook changes the status or review of a saved book.
func (c *Client) UpdateBook(ctx context.Context, id string, req *models.UpdateBookRequest) (*models.Book, error) {
	var resp models.BookResponse
	if err := c.do(ctx, http.MethodPut, "/api/books/"+url.PathEscape(id), nil, req, &resp); err != nil {
		return nil, err
	}
	return &resp.Data, nil
}

// DeleteBook removes a saved book and returns its snapshot.
func (c *Client) DeleteBook(ctx context.Context, id string) (*models.Book, error) {
	var resp models.DeleteBookResponse
	if err := c.do(ctx, http.MethodDelete, "/api/books/"+url.PathEscape(id), nil, nil, &resp); err != nil {
		return nil, err
	}
	return &resp.Data, nil
}

func (c *Client) do(ctx context.Context, method, path string, params url.Values, body, out any) error {
	u := c.baseURL + path
	if len(params) > 0 {
		u += "?" + params.Encode()
	}

	var reqBody *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reqBody = bytes.NewReader(data)
	} else {
		reqBody = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reqBody)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		var fail struct {
			Message string `json:"message"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&fail)
		if fail.Message == "" {
			fail.Message = fmt.Sprintf("server returned status %d", resp.StatusCode)
		}
		return apperr.New(apperr.KindFromStatus(resp.StatusCode), fail.Message)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}
	return nil
}
