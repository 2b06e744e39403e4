// Package movieapi talks to the public random-movie endpoint.
package movieapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// ErrEmptyResponse is returned when the endpoint answers with an empty array.
var ErrEmptyResponse = errors.New("movie API returned no movie")

// StatusError reports a non-2xx answer from the endpoint.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("movie API responded with status %d", e.StatusCode)
	}
	return fmt.Sprintf("movie API responded with status %d: %s", e.StatusCode, e.Body)
}

// Movie mirrors one element of the endpoint's JSON array.
type Movie struct {
	PosterPath    string  `json:"poster_path"`
	OriginalTitle string  `json:"original_title"`
	ReleaseDate   string  `json:"release_date"`
	VoteAverage   float64 `json:"vote_average"`
	VoteCount     int     `json:"vote_count"`
	Overview      string  `json:"overview"`
}

type Client struct {
	url        string
	httpClient *http.Client
}

// NewClient returns a client for url. A zero timeout means the request is
// only bounded by its context.
func NewClient(url string, timeout time.Duration) *Client {
	return &Client{
		url:        url,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// WithHTTPClient swaps the underlying transport, mostly for tests.
func (c *Client) WithHTTPClient(hc *http.Client) *Client {
	c.httpClient = hc
	return c
}

// FetchRandom issues a single GET and returns the first movie of the array.
func (c *Client) FetchRandom(ctx context.Context) (*Movie, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, fmt.Errorf("build movie request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request movie API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, &StatusError{StatusCode: resp.StatusCode, Body: string(snippet)}
	}

	var movies []Movie
	if err := json.NewDecoder(resp.Body).Decode(&movies); err != nil {
		return nil, fmt.Errorf("decode movie API response: %w", err)
	}

	if len(movies) == 0 {
		return nil, ErrEmptyResponse
	}

	return &movies[0], nil
}
