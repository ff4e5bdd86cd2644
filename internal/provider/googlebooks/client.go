// Package googlebooks implements the Google Books volumes API adapter.
// It is the only provider that supplies an infoLink.
package googlebooks

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

const defaultBaseURL = "https://www.googleapis.com/books/v1"

// Client queries the Google Books volumes API.
type Client struct {
	httpClient  *http.Client
	rateLimiter *ratelimit.Limiter
	baseURL     string
	apiKey      string
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

// New creates a Google Books client. The API key is optional; unkeyed
// requests work with a lower quota.
func New(apiKey string, opts ...Option) *Client {
	c := &Client{
		httpClient:  &http.Client{Timeout: 10 * time.Second},
		rateLimiter: ratelimit.New("Google Books", 5),
		baseURL:     defaultBaseURL,
		apiKey:      apiKey,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Name returns the provider source label.
func (c *Client) Name() provider.Source {
	return provider.SourceGoogleBooks
}

// volumesResponse matches the Google Books API response structure.
type volumesResponse struct {
	TotalItems int `json:"totalItems"`
	Items      []struct {
		VolumeInfo struct {
			Title               string   `json:"title"`
			Authors             []string `json:"authors"`
			PublishedDate       string   `json:"publishedDate"`
			Description         string   `json:"description"`
			AverageRating       float64  `json:"averageRating"`
			RatingsCount        int      `json:"ratingsCount"`
			InfoLink            string   `json:"infoLink"`
			IndustryIdentifiers []struct {
				Type       string `json:"type"`
				Identifier string `json:"identifier"`
			} `json:"industryIdentifiers"`
			ImageLinks struct {
				Thumbnail      string `json:"thumbnail"`
				SmallThumbnail string `json:"smallThumbnail"`
			} `json:"imageLinks"`
		} `json:"volumeInfo"`
	} `json:"items"`
}

// Search looks up a volume by title and author. Returns (nil, nil) when
// Google Books has no match.
func (c *Client) Search(ctx context.Context, query provider.Query) (*provider.Record, error) {
	if query.Title == "" {
		return nil, fmt.Errorf("title is required")
	}

	q := fmt.Sprintf("intitle:%q", query.Title)
	if query.Author != "" {
		q += fmt.Sprintf("+inauthor:%q", query.Author)
	}

	return c.fetch(ctx, q)
}

// SearchISBN looks up a volume by identifier. Returns (nil, nil) when
// Google Books has no match.
func (c *Client) SearchISBN(ctx context.Context, id isbn.Identifier) (*provider.Record, error) {
	if id == "" {
		return nil, fmt.Errorf("identifier is required")
	}
	return c.fetch(ctx, "isbn:"+string(id))
}

func (c *Client) fetch(ctx context.Context, q string) (*provider.Record, error) {
	if err := c.rateLimiter.Wait(ctx); err != nil {
		return nil, err
	}

	params := url.Values{}
	params.Set("q", q)
	params.Set("maxResults", "1")
	if c.apiKey != "" {
		params.Set("key", c.apiKey)
	}

	reqURL := fmt.Sprintf("%s/volumes?%s", c.baseURL, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("google Books API request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode == http.StatusTooManyRequests {
		return nil, apierrors.NewRateLimitError(string(provider.SourceGoogleBooks), retryAfter(resp))
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("google Books API returned status %d", resp.StatusCode)
	}

	var result volumesResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode Google Books response: %w", err)
	}

	if result.TotalItems == 0 || len(result.Items) == 0 {
		return nil, nil
	}

	return c.toRecord(result), nil
}

func (c *Client) toRecord(result volumesResponse) *provider.Record {
	info := result.Items[0].VolumeInfo

	record := &provider.Record{
		Source:       provider.SourceGoogleBooks,
		Title:        info.Title,
		Rating:       info.AverageRating,
		RatingsCount: info.RatingsCount,
		Description:  info.Description,
		Thumbnail:    info.ImageLinks.Thumbnail,
		InfoLink:     info.InfoLink,
	}

	if len(info.Authors) > 0 {
		record.Author = info.Authors[0]
	}

	// Prefer the 13-digit identifier when both forms are present.
	for _, id := range info.IndustryIdentifiers {
		normalized := isbn.Normalize(id.Identifier)
		switch id.Type {
		case "ISBN_13":
			record.ISBN = normalized
		case "ISBN_10":
			if record.ISBN == "" {
				record.ISBN = normalized
			}
		}
	}

	// publishedDate formats vary; the year prefix is the stable part.
	if len(info.PublishedDate) >= 4 {
		if year, err := strconv.Atoi(info.PublishedDate[:4]); err == nil {
			record.PublishYear = year
		}
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
