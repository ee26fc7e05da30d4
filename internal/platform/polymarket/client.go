// Package polymarket is the REST client for the Polymarket Gamma API, which
// provides public read-only market discovery. No authentication is required.
package polymarket

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

const pageSize = 100

// KeywordGenerator derives keyword lists at ingestion; satisfied by
// keywords.Generator.
type KeywordGenerator interface {
	Generate(title, description string) []string
}

// Config holds client tuning.
type Config struct {
	BaseURL string
	// TargetCount stops paging once this many binary markets are collected.
	TargetCount int
	MaxPages    int
	Timeout     time.Duration
}

// Defaults returns the standard public-endpoint configuration.
func Defaults() Config {
	return Config{
		BaseURL:     "https://gamma-api.polymarket.com",
		TargetCount: 500,
		MaxPages:    10,
		Timeout:     5 * time.Second,
	}
}

// Client fetches active binary markets ordered by 24-hour volume.
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
func (c *Client) Name() string { return string(domain.PlatformPolymarket) }

// FetchMarkets pages through the Gamma markets endpoint until it has the
// target number of binary Yes/No markets or runs out of pages. Markets with
// degenerate prices at either bound are dropped.
func (c *Client) FetchMarkets(ctx context.Context) ([]domain.Market, error) {
	var all []domain.Market
	offset := 0

	for page := 0; page < c.cfg.MaxPages; page++ {
		apiMarkets, err := c.fetchPage(ctx, offset)
		if err != nil {
			return nil, fmt.Errorf("polymarket: page %d: %w", page+1, err)
		}
		if len(apiMarkets) == 0 {
			break
		}

		now := c.clock.Now()
		for i := range apiMarkets {
			am := &apiMarkets[i]
			if !am.IsBinary() {
				continue
			}
			m := am.ToDomainMarket(c.keywords, now)
			if m.YesPrice <= 0 || m.YesPrice >= 1 {
				continue
			}
			all = append(all, m)
		}

		if len(all) >= c.cfg.TargetCount || len(apiMarkets) < pageSize {
			break
		}
		offset += pageSize
	}

	if len(all) > c.cfg.TargetCount {
		all = all[:c.cfg.TargetCount]
	}
	return all, nil
}

func (c *Client) fetchPage(ctx context.Context, offset int) ([]APIMarket, error) {
	params := url.Values{}
	params.Set("closed", "false")
	params.Set("active", "true")
	params.Set("order", "volume24hrClob")
	params.Set("ascending", "false")
	params.Set("limit", strconv.Itoa(pageSize))
	params.Set("offset", strconv.Itoa(offset))

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

	var apiMarkets []APIMarket
	if err := json.Unmarshal(body, &apiMarkets); err != nil {
		return nil, fmt.Errorf("decode markets: %w", err)
	}
	return apiMarkets, nil
}
