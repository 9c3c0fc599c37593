package endoflife

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/nao1215/eolallowlist/internal/config"
	"github.com/nao1215/eolallowlist/internal/model"
	"golang.org/x/time/rate"
)

// Client fetches products and cycles from the endoflife.date API.
// A Client is not safe for concurrent use; it is meant to be driven by a
// single sequential fetch loop.
type Client struct {
	baseURL     string
	http        *http.Client
	timeout     time.Duration
	delay       time.Duration
	limiter     *rate.Limiter
	userAgent   string
	maxBodySize int64
	logger      *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient sets the underlying HTTP client. Its Timeout is left as is.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.http = hc
	}
}

// WithTimeout sets the per-request timeout of the default HTTP client.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.timeout = d
	}
}

// WithRequestDelay sets the fixed spacing between two requests.
// The delay is a minimum spacing between request starts, not a sleep before
// each request: a request that follows a slow one goes out immediately.
// Zero or a negative value disables the delay.
func WithRequestDelay(d time.Duration) Option {
	return func(c *Client) {
		c.delay = d
	}
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		c.userAgent = ua
	}
}

// WithMaxBodySize limits how many bytes of a response body are read.
func WithMaxBodySize(n int64) Option {
	return func(c *Client) {
		if n > 0 {
			c.maxBodySize = n
		}
	}
}

// WithLogger sets the logger used for progress and skipped products.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// NewClient creates a Client for the API rooted at baseURL,
// e.g. "https://endoflife.date/api".
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		// Make sure we don't end up with "//all.json" in the final URL.
		baseURL:     strings.TrimRight(baseURL, "/"),
		timeout:     config.DefaultTimeout,
		delay:       config.DefaultRequestDelay,
		userAgent:   config.DefaultUserAgent,
		maxBodySize: config.DefaultMaxBodySize,
		logger:      slog.Default(),
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.http == nil {
		c.http = &http.Client{Timeout: c.timeout}
	}
	c.limiter = newLimiter(c.delay)

	return c
}

// newLimiter allows one request per delay with no burst, so consecutive
// requests are at least delay apart.
func newLimiter(delay time.Duration) *rate.Limiter {
	if delay <= 0 {
		return rate.NewLimiter(rate.Inf, 1)
	}
	return rate.NewLimiter(rate.Every(delay), 1)
}

// BaseURL returns the API root without a trailing slash.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Products returns every product identifier listed by all.json.
// Any failure is returned as a *FetchError.
func (c *Client) Products(ctx context.Context) ([]string, error) {
	u := c.baseURL + "/all.json"

	resp, err := c.get(ctx, u)
	if err != nil {
		return nil, &FetchError{URL: u, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &FetchError{URL: u, Err: fmt.Errorf("%w: %s", ErrUnexpectedStatus, resp.Status)}
	}

	products, err := decodeStrings(io.LimitReader(resp.Body, c.maxBodySize))
	if err != nil {
		return nil, &FetchError{URL: u, Err: err}
	}
	return products, nil
}

// Cycles returns the cycle records of a single product.
// A non-200 answer is returned as a *StatusError; transport and decoding
// failures as a *FetchError.
func (c *Client) Cycles(ctx context.Context, product string) ([]Cycle, error) {
	u := c.baseURL + "/" + url.PathEscape(product) + ".json"

	resp, err := c.get(ctx, u)
	if err != nil {
		return nil, &FetchError{URL: u, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, c.maxBodySize)) //nolint:errcheck // drain for connection reuse
		return nil, &StatusError{Product: product, StatusCode: resp.StatusCode}
	}

	cycles, err := decodeCycles(io.LimitReader(resp.Body, c.maxBodySize))
	if err != nil {
		return nil, &FetchError{URL: u, Err: err}
	}
	return cycles, nil
}

// decodeCycles expects exactly one JSON array of cycle objects.
// A null payload or data after the array is a schema error.
func decodeCycles(r io.Reader) ([]Cycle, error) {
	dec := json.NewDecoder(r)

	t, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("%w: read opening token: %v", ErrSchema, err)
	}
	if d, ok := t.(json.Delim); !ok || d != '[' {
		return nil, fmt.Errorf("%w: expected a JSON array of cycles", ErrSchema)
	}

	cycles := make([]Cycle, 0, 16)
	for dec.More() {
		var cycle Cycle
		if err := dec.Decode(&cycle); err != nil {
			return nil, fmt.Errorf("%w: decode cycle %d: %v", ErrSchema, len(cycles), err)
		}
		cycles = append(cycles, cycle)
	}

	if _, err := dec.Token(); err != nil {
		return nil, fmt.Errorf("%w: read closing token: %v", ErrSchema, err)
	}
	if err := expectEOF(dec); err != nil {
		return nil, err
	}
	return cycles, nil
}

// expectEOF fails when anything but whitespace follows the decoded value.
func expectEOF(dec *json.Decoder) error {
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return fmt.Errorf("%w: unexpected data after the JSON array", ErrSchema)
	}
	return nil
}

// get waits for the rate limiter and performs a GET request.
func (c *Client) get(ctx context.Context, u string) (*http.Response, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("do request: %w", err)
	}
	return resp, nil
}

// decodeStrings expects a JSON array whose elements are all strings,
// like ["almalinux", "alpine", ...].
func decodeStrings(r io.Reader) ([]string, error) {
	dec := json.NewDecoder(r)

	t, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("%w: read opening token: %v", ErrSchema, err)
	}
	if d, ok := t.(json.Delim); !ok || d != '[' {
		return nil, fmt.Errorf("%w: expected a JSON array of strings", ErrSchema)
	}

	out := make([]string, 0, 512)
	for dec.More() {
		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return nil, fmt.Errorf("%w: decode element: %v", ErrSchema, err)
		}
		if len(raw) == 0 || raw[0] != '"' {
			return nil, fmt.Errorf("%w: element %d is not a string: %s", ErrSchema, len(out), raw)
		}
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return nil, fmt.Errorf("%w: decode element: %v", ErrSchema, err)
		}
		out = append(out, s)
	}

	// Consume the closing ']' token.
	if _, err := dec.Token(); err != nil {
		return nil, fmt.Errorf("%w: read closing token: %v", ErrSchema, err)
	}
	if err := expectEOF(dec); err != nil {
		return nil, err
	}
	return out, nil
}

// Result is the outcome of CollectLinks.
// On failure Err is set and Links is empty; callers must inspect Err rather
// than treat an empty set as "no products exist".
type Result struct {
	// Links holds the unique raw link strings. Never nil.
	Links *model.Set

	// Products is the number of products listed by the API.
	Products int

	// Skipped lists products whose payload returned a non-200 status.
	Skipped []model.SkippedProduct

	// Err is the reason the fetch failed, nil on success.
	Err error
}

// OK reports whether the fetch succeeded with at least one link.
func (r Result) OK() bool {
	return r.Err == nil && r.Links.Len() > 0
}

// CollectLinks lists all products and gathers every string "link" found in
// their cycles. Products answering with a non-200 status are skipped.
// Any other failure aborts the fetch and yields an empty link set.
func (c *Client) CollectLinks(ctx context.Context) Result {
	res := Result{Links: model.NewSet()}

	products, err := c.Products(ctx)
	if err != nil {
		c.logger.Error("failed to list products", "error", err)
		res.Err = err
		return res
	}
	res.Products = len(products)
	c.logger.Info("products listed", "count", len(products), "api", c.baseURL)

	links := model.NewSet()
	for i, product := range products {
		cycles, err := c.Cycles(ctx, product)

		var statusErr *StatusError
		if errors.As(err, &statusErr) {
			c.logger.Warn("product skipped", "product", product, "status", statusErr.StatusCode)
			res.Skipped = append(res.Skipped, model.SkippedProduct{
				Product:    product,
				StatusCode: statusErr.StatusCode,
			})
			continue
		}
		if err != nil {
			c.logger.Error("fetch aborted", "product", product, "error", err)
			res.Err = err
			return res
		}

		added := 0
		for _, cycle := range cycles {
			if link, ok := cycle.LinkString(); ok && links.Add(link) {
				added++
			}
		}
		c.logger.Debug("product fetched",
			"product", product,
			"cycles", len(cycles),
			"newLinks", added,
			"progress", fmt.Sprintf("%d/%d", i+1, len(products)),
		)
	}

	res.Links = links
	if links.Len() == 0 {
		c.logger.Error("no links collected", "products", len(products), "skipped", len(res.Skipped))
		res.Err = ErrNoLinks
	}
	return res
}
