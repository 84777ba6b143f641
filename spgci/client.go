// Copyright 2025 S&P Global Commodity Insights

// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at

//     http://www.apache.org/licenses/LICENSE-2.0

// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package spgci

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/stockparfait/errors"
)

const (
	authPath = "auth/api"
	// Refresh the token slightly before the server-side expiry.
	tokenExpiryMargin = time.Minute
)

// Client is an authenticated session with the API. It owns the HTTP client
// and the cached access token. A Client is not safe for concurrent use; all
// calls are synchronous and sequential.
type Client struct {
	cfg         Config
	httpClient  *http.Client
	token       string
	tokenExpiry time.Time // zero = no expiry known, cache until invalidated
}

// NewClient creates a Client for the given Config. Zero-valued BaseURL,
// UserAgent and Timeout get defaults; credentials are checked lazily at the
// first token exchange.
func NewClient(cfg Config) (*Client, error) {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if _, err := url.Parse(cfg.BaseURL); err != nil {
		return nil, errors.Annotate(err, "invalid base URL: '%s'", cfg.BaseURL)
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	if cfg.UserAgent == "" {
		cfg.UserAgent = "spgci-go/" + Version
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 30 * time.Second
	}
	return &Client{
		cfg: cfg,
		httpClient: &http.Client{
			Transport: newRetryTransport(nil, cfg),
			Timeout:   cfg.Timeout,
		},
	}, nil
}

type contextKey int

const clientContextKey contextKey = iota

// UseClient injects the Client into the context, to be used by GetData and
// the dataset operations.
func UseClient(ctx context.Context, c *Client) context.Context {
	return context.WithValue(ctx, clientContextKey, c)
}

// GetClient extracts the Client from the context, if any, otherwise nil.
func GetClient(ctx context.Context) *Client {
	c, ok := ctx.Value(clientContextKey).(*Client)
	if !ok {
		return nil
	}
	return c
}

// BaseURL returns the effective base URL of the API.
func (c *Client) BaseURL() string { return c.cfg.BaseURL }

// Token returns a valid access token, running the token exchange when no
// token is cached or the cached one has expired.
func (c *Client) Token(ctx context.Context) (string, error) {
	if c.token != "" && (c.tokenExpiry.IsZero() || time.Now().Before(c.tokenExpiry)) {
		return c.token, nil
	}
	// Not annotated: API error types (AuthError and the rate limits) must
	// reach the caller intact.
	if err := c.RefreshToken(ctx); err != nil {
		return "", err
	}
	return c.token, nil
}

// InvalidateToken drops the cached token, forcing a refresh on the next use.
func (c *Client) InvalidateToken() {
	c.token = ""
	c.tokenExpiry = time.Time{}
}

// RefreshToken exchanges the configured credentials for a fresh access token,
// replacing any cached one.
func (c *Client) RefreshToken(ctx context.Context) error {
	if c.cfg.Username == "" || c.cfg.Password == "" {
		return errors.Reason(
			"username and password are required; set SPGCI_USERNAME and SPGCI_PASSWORD")
	}
	form := url.Values{}
	form.Set("username", c.cfg.Username)
	form.Set("password", c.cfg.Password)
	if c.cfg.AppKey != "" {
		form.Set("appkey", c.cfg.AppKey)
	}

	uri := c.cfg.BaseURL + "/" + authPath
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, uri,
		strings.NewReader(form.Encode()))
	if err != nil {
		return errors.Annotate(err, "failed to create token request")
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("User-Agent", c.cfg.UserAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return errors.Annotate(err, "token request failed")
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return errors.Annotate(err, "failed to read token response")
	}
	switch {
	case resp.StatusCode == http.StatusOK:
	case resp.StatusCode == http.StatusBadRequest,
		resp.StatusCode == http.StatusUnauthorized,
		resp.StatusCode == http.StatusForbidden:
		return &AuthError{Body: bodySnippet(body)}
	case resp.StatusCode == http.StatusTooManyRequests:
		return rateLimitError(resp.Header)
	default:
		return &StatusError{
			Code:   resp.StatusCode,
			Status: resp.Status,
			Body:   bodySnippet(body),
		}
	}

	var tr struct {
		AccessToken string `json:"access_token"`
		ExpiresIn   int    `json:"expires_in"`
	}
	if err := json.Unmarshal(body, &tr); err != nil {
		return errors.Annotate(err, "failed to parse token response")
	}
	if tr.AccessToken == "" {
		return errors.Reason("token response carries no access_token")
	}
	c.token = tr.AccessToken
	c.tokenExpiry = time.Time{}
	if tr.ExpiresIn > 0 {
		c.tokenExpiry = time.Now().
			Add(time.Duration(tr.ExpiresIn)*time.Second - tokenExpiryMargin)
	}
	return nil
}

// get runs an authenticated GET and returns the response body. A 401/403
// invalidates the cached token and retries once with a fresh one.
func (c *Client) get(ctx context.Context, path string, query url.Values) ([]byte, error) {
	token, err := c.Token(ctx)
	if err != nil {
		return nil, err
	}
	body, err := c.doGet(ctx, path, query, token)
	if err == nil {
		return body, nil
	}
	if _, ok := err.(*AuthError); !ok {
		return nil, err
	}
	c.InvalidateToken()
	if token, err = c.Token(ctx); err != nil {
		return nil, err
	}
	return c.doGet(ctx, path, query, token)
}

func (c *Client) doGet(ctx context.Context, path string, query url.Values, token string) ([]byte, error) {
	uri := c.cfg.BaseURL + "/" + strings.Trim(path, "/")
	if len(query) > 0 {
		uri += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, uri, nil)
	if err != nil {
		return nil, errors.Annotate(err, "failed to create request for '%s'", uri)
	}
	req.Header.Set("User-Agent", c.cfg.UserAgent)
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errors.Annotate(err, "request failed: '%s'", uri)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Annotate(err, "failed to read response: '%s'", uri)
	}
	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		return body, nil
	case resp.StatusCode == http.StatusUnauthorized,
		resp.StatusCode == http.StatusForbidden:
		return nil, &AuthError{Body: bodySnippet(body)}
	case resp.StatusCode == http.StatusTooManyRequests:
		return nil, rateLimitError(resp.Header)
	}
	return nil, &StatusError{
		Code:   resp.StatusCode,
		Status: resp.Status,
		Body:   bodySnippet(body),
	}
}
