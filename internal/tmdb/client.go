// Package tmdb is a small client for The Movie Database search API.
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
	"strings"
	"time"
)

// ErrNotConfigured is returned by every call when no API key is set.
var ErrNotConfigured = errors.New("tmdb: api key not configured")

// StatusError is a non-2xx answer from TMDB.
type StatusError struct {
	StatusCode int
	Message    string
}

func (e *StatusError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("tmdb: status %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("tmdb: status %d", e.StatusCode)
}

// Movie is one search result.
type Movie struct {
	ID            int64   `json:"id"`
	Title         string  `json:"title"`
	OriginalTitle string  `json:"original_title"`
	Overview      string  `json:"overview"`
	PosterPath    *string `json:"poster_path"`
	BackdropPath  *string `json:"backdrop_path"`
	ReleaseDate   string  `json:"release_date"`
	VoteAverage   float64 `json:"vote_average"`
	VoteCount     int     `json:"vote_count"`
	Popularity    float64 `json:"popularity"`
	GenreIDs      []int   `json:"genre_ids"`
}

// Page is a page of results as returned by TMDB.
type Page struct {
	Page         int     `json:"page"`
	Results      []Movie `json:"results"`
	TotalPages   int     `json:"total_pages"`
	TotalResults int     `json:"total_results"`
}

// Client calls TMDB's v3 API with an api_key query parameter.
type Client struct {
	BaseURL  string
	APIKey   string
	Language string
	HTTP     *http.Client
}

func NewClient(baseURL, apiKey, language string, timeout time.Duration) *Client {
	return &Client{
		BaseURL:  strings.TrimRight(baseURL, "/"),
		APIKey:   apiKey,
		Language: language,
		HTTP:     &http.Client{Timeout: timeout},
	}
}

// SearchMovies runs a title search.
func (c *Client) SearchMovies(ctx context.Context, query string, page int) (Page, error) {
	q := url.Values{}
	q.Set("query", query)
	return c.get(ctx, "/search/movie", q, page)
}

// PopularMovies lists currently popular movies.
func (c *Client) PopularMovies(ctx context.Context, page int) (Page, error) {
	return c.get(ctx, "/movie/popular", url.Values{}, page)
}

func (c *Client) get(ctx context.Context, path string, q url.Values, page int) (Page, error) {
	if c.APIKey == "" {
		return Page{}, ErrNotConfigured
	}
	if page < 1 {
		page = 1
	}
	q.Set("api_key", c.APIKey)
	if c.Language != "" {
		q.Set("language", c.Language)
	}
	q.Set("page", strconv.Itoa(page))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+path+"?"+q.Encode(), nil)
	if err != nil {
		return Page{}, fmt.Errorf("tmdb: build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return Page{}, fmt.Errorf("tmdb: %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var body struct {
			StatusMessage string `json:"status_message"`
		}
		_ = json.NewDecoder(io.LimitReader(resp.Body, 64<<10)).Decode(&body)
		return Page{}, &StatusError{StatusCode: resp.StatusCode, Message: body.StatusMessage}
	}

	var out Page
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return Page{}, fmt.Errorf("tmdb: decode %s: %w", path, err)
	}
	if out.Results == nil {
		out.Results = []Movie{}
	}
	return out, nil
}
