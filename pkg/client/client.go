// Package client is a Go SDK for the Sweet Shop API. It wraps the HTTP
// endpoints and maintains an observable session so callers can react to
// login and logout without polling.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const defaultTimeout = 10 * time.Second

// Sweet is the public catalog shape returned by the API.
type Sweet struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Category string  `json:"category"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
	Image    string  `json:"image,omitempty"`
}

// SearchQuery carries the optional search filters. Nil price bounds mean
// unbounded.
type SearchQuery struct {
	Name     string
	Category string
	MinPrice *float64
	MaxPrice *float64
}

// AddSweetParams carries the fields for creating a catalog entry.
type AddSweetParams struct {
	Name     string  `json:"name"`
	Category string  `json:"category"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
	ImageURL string  `json:"imageUrl,omitempty"`
}

// UpdateSweetParams is a partial update: nil fields are omitted from the
// request body and keep their server-side values.
type UpdateSweetParams struct {
	Name     *string  `json:"name,omitempty"`
	Category *string  `json:"category,omitempty"`
	Price    *float64 `json:"price,omitempty"`
	Quantity *int     `json:"quantity,omitempty"`
	ImageURL *string  `json:"imageUrl,omitempty"`
}

// APIError is a non-2xx response decoded from the API's error envelope.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d: %s", e.StatusCode, e.Message)
}

// Client calls the Sweet Shop API. The zero value is not usable; construct
// with NewClient.
type Client struct {
	baseURL string
	http    *http.Client
	session *SessionStore
}

// NewClient returns a Client for the API at baseURL. When httpClient is nil
// a default with a 10s timeout is used; when store is nil a fresh
// SessionStore is created.
func NewClient(baseURL string, httpClient *http.Client, store *SessionStore) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultTimeout}
	}
	if store == nil {
		store = NewSessionStore()
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    httpClient,
		session: store,
	}
}

// Session exposes the observable session store.
func (c *Client) Session() *SessionStore {
	return c.session
}

// Register creates an account and returns the registered email.
func (c *Client) Register(ctx context.Context, name, email, password string) (string, error) {
	body := map[string]string{"name": name, "email": email, "password": password}
	var resp struct {
		User struct {
			Email string `json:"email"`
		} `json:"user"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/auth/register", body, &resp); err != nil {
		return "", err
	}
	return resp.User.Email, nil
}

// Login authenticates and installs the resulting session in the store,
// notifying AuthChanged subscribers.
func (c *Client) Login(ctx context.Context, email, password string) (Session, error) {
	body := map[string]string{"email": email, "password": password}
	var resp struct {
		Token string `json:"token"`
		User  struct {
			Email string `json:"email"`
		} `json:"user"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/auth/login", body, &resp); err != nil {
		return Session{}, err
	}
	return c.session.Set(resp.Token, resp.User.Email)
}

// Logout clears the session and notifies AuthChanged subscribers.
func (c *Client) Logout() {
	c.session.Clear()
}

// Sweets returns the full catalog.
func (c *Client) Sweets(ctx context.Context) ([]Sweet, error) {
	var sweets []Sweet
	if err := c.do(ctx, http.MethodGet, "/api/sweets", nil, &sweets); err != nil {
		return nil, err
	}
	return sweets, nil
}

// SearchSweets returns the catalog entries matching all given filters.
func (c *Client) SearchSweets(ctx context.Context, q SearchQuery) ([]Sweet, error) {
	params := url.Values{}
	if q.Name != "" {
		params.Set("name", q.Name)
	}
	if q.Category != "" {
		params.Set("category", q.Category)
	}
	if q.MinPrice != nil {
		params.Set("minPrice", strconv.FormatFloat(*q.MinPrice, 'f', -1, 64))
	}
	if q.MaxPrice != nil {
		params.Set("maxPrice", strconv.FormatFloat(*q.MaxPrice, 'f', -1, 64))
	}

	path := "/api/sweets/search"
	if encoded := params.Encode(); encoded != "" {
		path += "?" + encoded
	}

	var sweets []Sweet
	if err := c.do(ctx, http.MethodGet, path, nil, &sweets); err != nil {
		return nil, err
	}
	return sweets, nil
}

// AddSweet creates a catalog entry (admin only).
func (c *Client) AddSweet(ctx context.Context, params AddSweetParams) (Sweet, error) {
	var sweet Sweet
	err := c.do(ctx, http.MethodPost, "/api/sweets", params, &sweet)
	return sweet, err
}

// UpdateSweet partially updates a catalog entry (admin only).
func (c *Client) UpdateSweet(ctx context.Context, id string, params UpdateSweetParams) (Sweet, error) {
	var sweet Sweet
	err := c.do(ctx, http.MethodPut, "/api/sweets/"+url.PathEscape(id), params, &sweet)
	return sweet, err
}

// DeleteSweet permanently removes a catalog entry (admin only).
func (c *Client) DeleteSweet(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/sweets/"+url.PathEscape(id), nil, nil)
}

// Purchase buys exactly one unit and returns the updated entry.
func (c *Client) Purchase(ctx context.Context, id string) (Sweet, error) {
	var sweet Sweet
	err := c.do(ctx, http.MethodPost, "/api/sweets/"+url.PathEscape(id)+"/purchase", nil, &sweet)
	return sweet, err
}

// Restock adds quantity units of stock (admin only).
func (c *Client) Restock(ctx context.Context, id string, quantity int) (Sweet, error) {
	body := map[string]int{"quantity": quantity}
	var sweet Sweet
	err := c.do(ctx, http.MethodPost, "/api/sweets/"+url.PathEscape(id)+"/restock", body, &sweet)
	return sweet, err
}

// do performs one request: encodes the body, attaches the bearer token when
// a session is held, and decodes either the result or the error envelope.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if session := c.session.Current(); session.Authenticated() {
		req.Header.Set("Authorization", "Bearer "+session.Token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeAPIError(resp)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func decodeAPIError(resp *http.Response) error {
	apiErr := &APIError{StatusCode: resp.StatusCode}

	var envelope struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err == nil {
		if envelope.Error != "" {
			apiErr.Message = envelope.Error
		} else {
			apiErr.Message = envelope.Message
		}
	}
	if apiErr.Message == "" {
		apiErr.Message = http.StatusText(resp.StatusCode)
	}
	return apiErr
}
