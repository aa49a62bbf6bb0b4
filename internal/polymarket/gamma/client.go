// Package gamma consumes Polymarket gamma endpoints.
package gamma

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/sieginglion/polymarket/internal/platform"
	"github.com/sieginglion/polymarket/pkg/httpclient"
)

const (
	DefaultTimeout   = 30 * time.Second
	DefaultUserAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) " +
		"AppleWebKit/537.36 (KHTML, like Gecko) " +
		"Chrome/120.0.0.0 Safari/537.36"
)

// ErrUnexpectedShape is returned when the listing is neither an array nor an object wrapping one.
var ErrUnexpectedShape = errors.New("gamma: unexpected listing shape")

// listingKeys are the object keys that may wrap a listing array.
var listingKeys = []string{"data", "markets"}

type Client struct {
	httpClient *http.Client
	baseURL    string
	userAgent  string
}

var _ platform.MarketSource = (*Client)(nil)

type Option func(*Client)

func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = d
	}
}

func WithUserAgent(ua string) Option {
	return func(c *Client) {
		c.userAgent = ua
	}
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		httpClient: &http.Client{Timeout: DefaultTimeout},
		baseURL:    baseURL,
		userAgent:  DefaultUserAgent,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// FetchMarkets lists open markets sorted by volume, descending.
// Records are returned undecoded; see ParseMarket.
func (c *Client) FetchMarkets(ctx context.Context, q platform.Query) ([]json.RawMessage, error) {
	params := url.Values{}
	params.Set("limit", strconv.Itoa(q.Limit))
	params.Set("order", "volumeNum")
	params.Set("ascending", "false")
	params.Set("closed", "false")
	if !q.EndDateMax.IsZero() {
		params.Set("end_date_max", q.EndDateMax.UTC().Format(time.RFC3339))
	}

	body, err := httpclient.GetResource[json.RawMessage](
		ctx, c.httpClient, c.baseURL, "/markets?"+params.Encode(), []int{http.StatusOK},
		httpclient.WithHeader("User-Agent", c.userAgent),
	)
	if err != nil {
		return nil, fmt.Errorf("gamma: get markets: %w", err)
	}

	records, err := decodeListing(body)
	if err != nil {
		return nil, err
	}
	return records, nil
}

func decodeListing(body json.RawMessage) ([]json.RawMessage, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return nil, ErrUnexpectedShape
	}

	switch trimmed[0] {
	case '[':
		var records []json.RawMessage
		if err := json.Unmarshal(trimmed, &records); err != nil {
			return nil, fmt.Errorf("gamma: decode listing: %w", err)
		}
		return records, nil
	case '{':
		var wrapper map[string]json.RawMessage
		if err := json.Unmarshal(trimmed, &wrapper); err != nil {
			return nil, fmt.Errorf("gamma: decode listing: %w", err)
		}
		for _, key := range listingKeys {
			inner, ok := wrapper[key]
			if !ok {
				continue
			}
			var records []json.RawMessage
			if err := json.Unmarshal(inner, &records); err != nil {
				return nil, fmt.Errorf("gamma: decode listing %q: %w", key, err)
			}
			return records, nil
		}
		return nil, fmt.Errorf("%w: object without %v", ErrUnexpectedShape, listingKeys)
	default:
		return nil, ErrUnexpectedShape
	}
}
