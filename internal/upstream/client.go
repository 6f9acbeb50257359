// Package upstream is the thin HTTP client layer for the remote REST
// backend. It owns request headers, error mapping, and nothing else: payload
// shapes belong to the backend, and module repositories decode them.
package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/painel-crm/painel-crm/internal/shared"
)

// Client performs requests against the backend REST API.
type Client struct {
	baseURL string
	http    *http.Client
	logger  *slog.Logger
}

// NewClient constructs a Client for the given base URL.
func NewClient(baseURL string, timeout time.Duration, logger *slog.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		logger:  logger,
	}
}

// Get issues a GET request on behalf of the account.
func (c *Client) Get(ctx context.Context, acct *shared.Account, path string, query url.Values, out any) error {
	return c.Do(ctx, acct, http.MethodGet, path, query, nil, out)
}

// Post issues a POST request on behalf of the account.
func (c *Client) Post(ctx context.Context, acct *shared.Account, path string, body, out any) error {
	return c.Do(ctx, acct, http.MethodPost, path, nil, body, out)
}

// Put issues a PUT request on behalf of the account.
func (c *Client) Put(ctx context.Context, acct *shared.Account, path string, body, out any) error {
	return c.Do(ctx, acct, http.MethodPut, path, nil, body, out)
}

// Delete issues a DELETE request on behalf of the account.
func (c *Client) Delete(ctx context.Context, acct *shared.Account, path string) error {
	return c.Do(ctx, acct, http.MethodDelete, path, nil, nil, nil)
}

// Do performs a backend request. A nil account sends no identity headers
// (used for sign-in). Responses are decoded into out when non-nil.
func (c *Client) Do(ctx context.Context, acct *shared.Account, method, path string, query url.Values, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("upstream: encode body: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return fmt.Errorf("upstream: build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if acct != nil {
		req.Header.Set("Authorization", "Bearer "+acct.AccessToken)
		req.Header.Set("X-User-Id", strconv.FormatInt(acct.UserData.ID, 10))
		req.Header.Set("X-User-Role", acct.UserData.ParsedRole().Header())
	}

	res, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %s %s: %v", shared.ErrUpstream, method, path, err)
	}
	defer func() {
		_, _ = io.Copy(io.Discard, res.Body)
		_ = res.Body.Close()
	}()

	if err := c.checkStatus(res, method, path); err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(res.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: decode %s %s: %v", shared.ErrUpstream, method, path, err)
	}
	return nil
}

type errorBody struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func (c *Client) checkStatus(res *http.Response, method, path string) error {
	if res.StatusCode < 400 {
		return nil
	}
	detail := c.errorDetail(res)
	if c.logger != nil {
		c.logger.Warn("backend request failed",
			slog.String("method", method),
			slog.String("path", path),
			slog.Int("status", res.StatusCode))
	}
	switch {
	case res.StatusCode == http.StatusUnauthorized:
		return shared.ErrUnauthenticated
	case res.StatusCode == http.StatusForbidden:
		return shared.ErrForbidden
	case res.StatusCode == http.StatusNotFound:
		return shared.ErrNotFound
	case res.StatusCode == http.StatusBadRequest, res.StatusCode == http.StatusUnprocessableEntity,
		res.StatusCode == http.StatusConflict:
		if detail != "" {
			return fmt.Errorf("%w: %s", shared.ErrValidation, detail)
		}
		return shared.ErrValidation
	default:
		return fmt.Errorf("%w: %s %s: status %d", shared.ErrUpstream, method, path, res.StatusCode)
	}
}

func (c *Client) errorDetail(res *http.Response) string {
	data, err := io.ReadAll(io.LimitReader(res.Body, 4096))
	if err != nil || len(data) == 0 {
		return ""
	}
	var parsed errorBody
	if err := json.Unmarshal(data, &parsed); err == nil {
		if parsed.Error != "" {
			return parsed.Error
		}
		if parsed.Message != "" {
			return parsed.Message
		}
	}
	return strings.TrimSpace(string(data))
}
