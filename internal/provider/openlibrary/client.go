// Package openlibrary implements the OpenLibrary search API adapter.
package openlibrary

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	apierrors "github.com/lepinkainen/shelfscan/internal/errors"
	"github.com/lepinkainen/shelfscan/internal/isbn"
	"github.com/lepinkainen/shelfscan/internal/provider"
	"github.com/lepinkainen/shelfscan/internal/ratelimit"
)

const defaultBaseURL = "https://openlibrary.org"

// Client queries the OpenLibrary search API. OpenLibrary asks for at most
// one request per second, enforced by the client's rate limiter.
type Client struct {
	httpClient  *http.Client
	rateLimiter *ratelimit.Limiter
	baseURL     string
}

// Compile-time check that Client implements provider.Bibliographic.
var _ provider.Bibliographic = (*Client)(nil)

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the HTTP client, mainly for tests.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithBaseURL overrides the API base URL, mainly for tests.
func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = u }
}

// New creates an OpenLibrary client.
func New(opts ...Option) *Client {
	c := &Client{
		httpClient:  &http.Client{Timeout: 10 * time.Second},
		rateLimiter: ratelimit.New("OpenLibrary", 1),
		baseURL:     defaultBaseURL,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Name returns the provider source label.
func (c *Client) Name() provider.Source {
	return provider.SourceOpenLibrary
}

// searchResponse matches the OpenLibrary search API response structure.
type searchResponse struct {
	NumFound int `json:"numFound"`
	Docs     []struct {
		Title            string   `json:"title"`
		AuthorName       []string `json:"author_name"`
		FirstPublishYear int      `json:"first_publish_year"`
		ISBN             []string `json:"isbn"`
		CoverID          int      `json:"cover_i"`
		RatingsAverage   float64  `json:"ratings_average"`
		RatingsCount     int      `json:"ratings_count"`
		FirstSentence    []string `json:"first_sentence"`
	} `json:"docs"`
}

// Search looks up a book by title and author. Returns (nil, nil) when
// OpenLibrary has no match.
func (c *Client) Search(ctx context.Context, query provider.Query) (*provider.Record, error) {
	if query.Title == "" {
		return nil, fmt.Errorf("title is required")
	}

	if err := c.rateLimiter.Wait(ctx); err != nil {
		return nil, err
	}

	params := url.Values{}
	params.Set("title", query.Title)
	if query.Author != "" {
		params.Set("author", query.Author)
	}
	params.Set("limit", "1")
	params.Set("fields", "title,author_name,first_publish_year,isbn,cover_i,ratings_average,ratings_count,first_sentence")

	reqURL := fmt.Sprintf("%s/search.json?%s", c.baseURL, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("openLibrary API request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode == http.StatusTooManyRequests {
		return nil, apierrors.NewRateLimitError(string(provider.SourceOpenLibrary), retryAfter(resp))
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("openLibrary API returned status %d", resp.StatusCode)
	}

	var result searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode OpenLibrary response: %w", err)
	}

	if result.NumFound == 0 || len(result.Docs) == 0 {
		return nil, nil
	}

	return c.toRecord(result), nil
}

func (c *Client) toRecord(result searchResponse) *provider.Record {
	doc := result.Docs[0]

	record := &provider.Record{
		Source:       provider.SourceOpenLibrary,
		Title:        doc.Title,
		Rating:       doc.RatingsAverage,
		RatingsCount: doc.RatingsCount,
		PublishYear:  doc.FirstPublishYear,
	}

	if len(doc.AuthorName) > 0 {
		record.Author = doc.AuthorName[0]
	}

	if len(doc.FirstSentence) > 0 {
		record.Description = doc.FirstSentence[0]
	}

	// Search results list every edition's ISBN; take the first
	// checksum-valid one, preferring the 13-digit form.
	for _, raw := range doc.ISBN {
		id := isbn.Normalize(raw)
		if isbn.Valid13(id) {
			record.ISBN = id
			break
		}
		if record.ISBN == "" && isbn.Valid10(id) {
			record.ISBN = id
		}
	}

	if doc.CoverID > 0 {
		record.Thumbnail = fmt.Sprintf("https://covers.openlibrary.org/b/id/%d-M.jpg", doc.CoverID)
	}

	return record
}

// retryAfter reads the Retry-After header, if the API sent one.
func retryAfter(resp *http.Response) time.Duration {
	seconds, err := strconv.Atoi(resp.Header.Get("Retry-After"))
	if err != nil || seconds < 0 {
		return 0
	}
	return time.Duration(seconds) * time.Second
}
