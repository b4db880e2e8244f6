// Package backend is the HTTP client for the remote Mancala game service.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"mancalaweb/internal/board"
)

var (
	// ErrNotFound is returned when the backend does not know the board.
	ErrNotFound = errors.New("board not found")
	// ErrRejected is returned when the backend refuses a request, e.g. an illegal move.
	ErrRejected = errors.New("request rejected")
)

// StatusError carries a non-2xx backend response.
type StatusError struct {
	Op      string
	Code    int
	Message string
}

func (e *StatusError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s: backend returned %d: %s", e.Op, e.Code, e.Message)
	}
	return fmt.Sprintf("%s: backend returned %d", e.Op, e.Code)
}

// Unwrap maps the status code onto the package's sentinel errors.
func (e *StatusError) Unwrap() error {
	switch {
	case e.Code == http.StatusNotFound:
		return ErrNotFound
	case e.Code >= 400 && e.Code < 500:
		return ErrRejected
	}
	return nil
}

// Client talks to the game service rooted at BaseURL.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient creates a client. A zero timeout leaves requests bounded only by
// their context.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

// Create asks the backend for a new board.
func (c *Client) Create(ctx context.Context, req board.CreateRequest) (board.Board, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return board.Board{}, fmt.Errorf("create: %w", err)
	}
	return c.do(ctx, "create", http.MethodPost, "/board", body)
}

// Get fetches a board by id.
func (c *Client) Get(ctx context.Context, id string) (board.Board, error) {
	return c.do(ctx, "get", http.MethodGet, "/board/"+url.PathEscape(id), nil)
}

// Target applies a move starting from pit and returns the post-move board.
func (c *Client) Target(ctx context.Context, id string, pit int) (board.Board, error) {
	path := "/board/" + url.PathEscape(id) + "/target/" + strconv.Itoa(pit)
	return c.do(ctx, "target", http.MethodPut, path, nil)
}

func (c *Client) do(ctx context.Context, op, method, path string, body []byte) (board.Board, error) {
	var b board.Board

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return b, fmt.Errorf("%s: %w", op, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return b, fmt.Errorf("%s: %w", op, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return b, &StatusError{Op: op, Code: resp.StatusCode, Message: errorMessage(resp.Body)}
	}
	if err := json.NewDecoder(resp.Body).Decode(&b); err != nil {
		return b, fmt.Errorf("%s: decode board: %w", op, err)
	}
	return b, nil
}

// errorMessage extracts the backend's message key, e.g. "board.not_found".
func errorMessage(r io.Reader) string {
	var payload struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	data, err := io.ReadAll(io.LimitReader(r, 4096))
	if err != nil || len(data) == 0 {
		return ""
	}
	if json.Unmarshal(data, &payload) != nil {
		return strings.TrimSpace(string(data))
	}
	if payload.Message != "" {
		return payload.Message
	}
	return payload.Error
}
