// Package kalshi is the REST client for Kalshi's public trade API. These are
// read-only endpoints; no authentication is required.
package kalshi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/quantpulse/marketsignal/internal/domain"
)

const pageSize = 200

// KeywordGenerator derives keyword lists at ingestion; satisfied by
// keywords.Generator.
type KeywordGenerator interface {
	Generate(title, description string) []string
}

// Config holds client tuning.
type Config struct {
	BaseURL string
	// TargetCount stops paging once this many simple binary markets are
	// collected. The API's default ordering front-loads thousands of parlay
	// markets, so several pages are usually needed.
	TargetCount int
	MaxPages    int
	Timeout     time.Duration
}

// Defaults returns the standard public-endpoint configuration.
func Defaults() Config {
	return Config{
		BaseURL:     "https://api.elections.kalshi.com/trade-api/v2",
		TargetCount: 400,
		MaxPages:    15,
		Timeout:     5 * time.Second,
	}
}

// Client fetches open simple binary markets via cursor pagination.
type Client struct {
	cfg        Config
	keywords   KeywordGenerator
	clock      domain.Clock
	httpClient *http.Client
}

var _ domain.MarketSource = (*Client)(nil)

func NewClient(cfg Config, keywords KeywordGenerator, clock domain.Clock) *Client {
	def := Defaults()
	if cfg.BaseURL == "" {
		cfg.BaseURL = def.BaseURL
	}
	if cfg.TargetCount <= 0 {
		cfg.TargetCount = def.TargetCount
	}
	if cfg.MaxPages <= 0 {
		cfg.MaxPages = def.MaxPages
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = def.Timeout
	}
	if clock == nil {
		clock = domain.RealClock{}
	}
	return &Client{
		cfg:        cfg,
		keywords:   keywords,
		clock:      clock,
		httpClient: &http.Client{Timeout: cfg.Timeout},
	}
}

// Name identifies the source in logs and metadata.
func (c *Client) Name() string { return string(domain.PlatformKalshi) }

// FetchMarkets pages through open markets until it has enough simple binary
// ones or the cursor runs out. Markets with degenerate prices at either
// bound are dropped.
func (c *Client) FetchMarkets(ctx context.Context) ([]domain.Market, error) {
	var all []domain.Market
	cursor := ""

	for page := 0; page < c.cfg.MaxPages; page++ {
		resp, err := c.fetchPage(ctx, cursor)
		if err != nil {
			return nil, fmt.Errorf("kalshi: page %d: %w", page+1, err)
		}

		now := c.clock.Now()
		for i := range resp.Markets {
			am := &resp.Markets[i]
			if !am.IsSimple() {
				continue
			}
			m := am.ToDomainMarket(c.keywords, now)
			if m.YesPrice <= 0 || m.YesPrice >= 1 {
				continue
			}
			all = append(all, m)
		}

		if len(all) >= c.cfg.TargetCount || resp.Cursor == "" {
			break
		}
		cursor = resp.Cursor
	}

	return all, nil
}

func (c *Client) fetchPage(ctx context.Context, cursor string) (*marketsResponse, error) {
	params := url.Values{}
	params.Set("status", "open")
	params.Set("mve_filter", "exclude")
	params.Set("limit", strconv.Itoa(pageSize))
	if cursor != "" {
		params.Set("cursor", cursor)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.cfg.BaseURL+"/markets?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}

	var page marketsResponse
	if err := json.Unmarshal(body, &page); err != nil {
		return nil, fmt.Errorf("decode markets: %w", err)
	}
	return &page, nil
}
