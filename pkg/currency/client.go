package currency

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sharlabs/shar-backend/pkg/config"
)

const (
	defaultBaseURL = "https://myanmar-currency-api.github.io/api"
	defaultTimeout = 10 * time.Second
)

var errBaseURLRequired = errors.New("currency api base url is required")

// Rate is a single currency pair quoted against MMK.
type Rate struct {
	Currency string          `json:"currency"`
	Buy      decimal.Decimal `json:"buy"`
	Sell     decimal.Decimal `json:"sell"`
}

// Snapshot is the full rate table with its upstream timestamp.
type Snapshot struct {
	Timestamp string `json:"timestamp"`
	Rates     []Rate `json:"rates"`
}

// Client fetches MMK exchange rates from the public Myanmar currency API.
type Client struct {
	httpClient *http.Client
	baseURL    string
}

// Option configures optional client behavior.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// NewClient builds a rate client from configuration.
func NewClient(cfg config.RatesConfig, opts ...Option) (*Client, error) {
	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	client := &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(client)
		}
	}
	if client.baseURL == "" {
		return nil, errBaseURLRequired
	}
	return client, nil
}

type latestResponse struct {
	Timestamp string `json:"timestamp"`
	Data      []struct {
		Currency string `json:"currency"`
		Buy      string `json:"buy"`
		Sell     string `json:"sell"`
	} `json:"data"`
}

// Latest fetches the current rate table. Upstream quotes arrive as strings
// with thousands separators, so each value is normalized before parsing.
func (c *Client) Latest(ctx context.Context) (*Snapshot, error) {
	endpoint := c.baseURL + "/latest.json"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching rates: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("rates api returned status %d", resp.StatusCode)
	}

	var parsed latestResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("decoding rates: %w", err)
	}

	snapshot := &Snapshot{
		Timestamp: parsed.Timestamp,
		Rates:     make([]Rate, 0, len(parsed.Data)),
	}
	for _, entry := range parsed.Data {
		code := strings.ToUpper(strings.TrimSpace(entry.Currency))
		if code == "" {
			continue
		}
		buy, err := parseQuote(entry.Buy)
		if err != nil {
			return nil, fmt.Errorf("parsing buy quote for %s: %w", code, err)
		}
		sell, err := parseQuote(entry.Sell)
		if err != nil {
			return nil, fmt.Errorf("parsing sell quote for %s: %w", code, err)
		}
		snapshot.Rates = append(snapshot.Rates, Rate{Currency: code, Buy: buy, Sell: sell})
	}

	if len(snapshot.Rates) == 0 {
		return nil, fmt.Errorf("rates api returned no entries")
	}
	return snapshot, nil
}

func parseQuote(raw string) (decimal.Decimal, error) {
	normalized := strings.ReplaceAll(strings.TrimSpace(raw), ",", "")
	if normalized == "" {
		return decimal.Zero, fmt.Errorf("empty quote")
	}
	return decimal.NewFromString(normalized)
}
