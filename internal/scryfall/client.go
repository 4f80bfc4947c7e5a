package scryfall

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/arcanaland/deckview/internal/card"
)

const DefaultBaseURL = "https://api.scryfall.com"

// ErrNotFound is matched by errors for names Scryfall could not resolve
var ErrNotFound = errors.New("card not found")

// APIError matches Scryfall's error object
type APIError struct {
	Status  int    `json:"status"`
	Code    string `json:"code"`
	Details string `json:"details"`
}

func (e *APIError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("scryfall: %d %s: %s", e.Status, e.Code, e.Details)
	}
	return fmt.Sprintf("scryfall: unexpected status code: %d", e.Status)
}

func (e *APIError) Is(target error) bool {
	return target == ErrNotFound && e.Status == http.StatusNotFound
}

type Client struct {
	httpClient *http.Client
	userAgent  string
	baseURL    string
	limiter    *rate.Limiter
}

type Option func(*Client)

// WithBaseURL points the client at another API root
func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = strings.TrimRight(u, "/") }
}

// WithTimeout bounds every request. Zero keeps the transport default.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.httpClient.Timeout = d }
}

// WithRateLimit spaces every outgoing request, images included, by at least interval.
// A non-positive interval disables the limit.
func WithRateLimit(interval time.Duration) Option {
	return func(c *Client) {
		if interval <= 0 {
			c.limiter = nil
			return
		}
		c.limiter = rate.NewLimiter(rate.Every(interval), 1)
	}
}

func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.httpClient = h }
}

func NewClient(userAgent string, opts ...Option) *Client {
	c := &Client{
		httpClient: &http.Client{},
		userAgent:  userAgent,
		baseURL:    DefaultBaseURL,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Named runs a fuzzy name lookup against /cards/named
func (c *Client) Named(ctx context.Context, name string) (*card.Card, error) {
	u := fmt.Sprintf("%s/cards/named?fuzzy=%s", c.baseURL, url.QueryEscape(name))

	var res card.Card
	if err := c.getJSON(ctx, u, &res); err != nil {
		return nil, fmt.Errorf("lookup %q: %w", name, err)
	}
	return &res, nil
}

// Image downloads and decodes a card image
func (c *Client) Image(ctx context.Context, imageURL string) (image.Image, error) {
	resp, err := c.do(ctx, imageURL, "image/*")
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &APIError{Status: resp.StatusCode}
	}

	img, _, err := image.Decode(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}
	return img, nil
}

func (c *Client) getJSON(ctx context.Context, u string, target interface{}) error {
	resp, err := c.do(ctx, u, "application/json")
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		apiErr := &APIError{}
		if err := json.NewDecoder(resp.Body).Decode(apiErr); err != nil || apiErr.Status == 0 {
			apiErr = &APIError{Status: resp.StatusCode}
		}
		apiErr.Status = resp.StatusCode
		return apiErr
	}

	return json.NewDecoder(resp.Body).Decode(target)
}

func (c *Client) do(ctx context.Context, u, accept string) (*http.Response, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, err
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", accept)

	return c.httpClient.Do(req)
}
