// Package tmdb defines a small read-only client for The Movie Database API
package tmdb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"go.uber.org/zap"
)

const (
	DefaultBaseURL  = "https://api.themoviedb.org/3"
	DefaultLanguage = "en-US"
	DefaultTimeout  = 15 * time.Second

	// upstream error bodies are only logged, never relayed
	maxErrorBody = 512
)

var (
	ErrStatus  = errors.New("unexpected status from tmdb")
	ErrDecode  = errors.New("undecodable response from tmdb")
	ErrRequest = errors.New("request to tmdb failed")
)

type Options struct {
	APIKey   string
	BaseURL  string
	Language string
	Timeout  time.Duration
}

// Client forwards requests to TMDb. It holds no mutable state and is safe
// for concurrent use.
type Client struct {
	http     *http.Client
	apiKey   string
	baseURL  string
	language string
}

func New(o Options) *Client {
	if o.BaseURL == "" {
		o.BaseURL = DefaultBaseURL
	}

	if o.Language == "" {
		o.Language = DefaultLanguage
	}

	if o.Timeout <= 0 {
		o.Timeout = DefaultTimeout
	}

	return &Client{
		http:     &http.Client{Timeout: o.Timeout},
		apiKey:   o.APIKey,
		baseURL:  o.BaseURL,
		language: o.Language,
	}
}

// Raw fetches path and returns the body untouched after checking that it
// is valid JSON. query may be nil.
func (c *Client) Raw(ctx context.Context, path string, query url.Values) (json.RawMessage, error) {
	body, err := c.do(ctx, path, query)
	if err != nil {
		return nil, err
	}

	if !json.Valid(body) {
		return nil, fmt.Errorf("%w, %s", ErrDecode, path)
	}

	return body, nil
}

// Page lists endpoints such as /movie/popular. page is forwarded as given.
func (c *Client) Page(ctx context.Context, path, page string) (json.RawMessage, error) {
	return c.Raw(ctx, path, url.Values{"page": {page}})
}

// TrailerKey returns the key of the first YouTube video of type Trailer
// listed under /{kind}/{id}/videos, empty when there is none
func (c *Client) TrailerKey(ctx context.Context, kind string, id int) (string, error) {
	var res videosResponse
	if err := c.decode(ctx, fmt.Sprintf("/%s/%d/videos", kind, id), nil, &res); err != nil {
		return "", err
	}

	for _, v := range res.Results {
		if v.Type == "Trailer" && v.Site == "YouTube" {
			return v.Key, nil
		}
	}

	return "", nil
}

// PersonCast returns the cast array of a person's combined credits.
// A missing array gives an empty, non nil result.
func (c *Client) PersonCast(ctx context.Context, id int) ([]json.RawMessage, error) {
	var res struct {
		Cast []json.RawMessage `json:"cast"`
	}

	if err := c.decode(ctx, fmt.Sprintf("/person/%d/combined_credits", id), nil, &res); err != nil {
		return nil, err
	}

	if res.Cast == nil {
		return []json.RawMessage{}, nil
	}

	return res.Cast, nil
}

// Search runs a multi search and returns only the results array
func (c *Client) Search(ctx context.Context, q, page string) ([]json.RawMessage, error) {
	var res struct {
		Results []json.RawMessage `json:"results"`
	}

	if err := c.decode(ctx, "/search/multi", url.Values{"query": {q}, "page": {page}}, &res); err != nil {
		return nil, err
	}

	if res.Results == nil {
		return []json.RawMessage{}, nil
	}

	return res.Results, nil
}

func (c *Client) decode(ctx context.Context, path string, query url.Values, dst any) error {
	body, err := c.do(ctx, path, query)
	if err != nil {
		return err
	}

	if err := json.Unmarshal(body, dst); err != nil {
		return fmt.Errorf("%w, %s: %w", ErrDecode, path, err)
	}

	return nil
}

func (c *Client) do(ctx context.Context, path string, query url.Values) ([]byte, error) {
	u, err := url.Parse(c.baseURL + path)
	if err != nil {
		return nil, fmt.Errorf("%w, %w", ErrRequest, err)
	}

	q := u.Query()
	for k, v := range query {
		q[k] = v
	}
	q.Set("api_key", c.apiKey)
	q.Set("language", c.language)
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("%w, %w", ErrRequest, err)
	}
	req.Header.Set("Accept", "application/json")

	zap.L().Debug("TMDb request", zap.String("path", path))

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w, %s: %w", ErrRequest, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, fmt.Errorf("%w %d, %s: %s", ErrStatus, resp.StatusCode, path, snippet)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w, %s: %w", ErrRequest, path, err)
	}

	return body, nil
}

type videosResponse struct {
	Results []struct {
		Key  string `json:"key"`
		Site string `json:"site"`
		Type string `json:"type"`
	} `json:"results"`
}

// ParseID accepts positive integer ids only
func ParseID(s string) (int, bool) {
	id, err := strconv.Atoi(s)
	if err != nil || id <= 0 {
		return 0, false
	}

	return id, true
}
