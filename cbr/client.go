// Package cbr fetches exchange rates published by the Central Bank of Russia.
package cbr

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
)

// ErrUnavailable marks transport-level failures reaching the CBR site, as
// opposed to malformed pages.
var ErrUnavailable = errors.New("cbr is unavailable")

// Client provides RUB exchange rates keyed by currency char code.
type Client interface {
	// Daily returns the full daily currency base.
	Daily(ctx context.Context) (map[string]float64, error)
	// KeyIndicators returns the key indicator rates, including precious
	// metals quoted per gram.
	KeyIndicators(ctx context.Context) (map[string]float64, error)
}

var _ Client = (*DefaultClient)(nil)

// DefaultClient scrapes the public CBR pages.
type DefaultClient struct {
	dailyURL         string
	keyIndicatorsURL string
	userAgent        string
	http             *http.Client
}

type Params struct {
	DailyURL         string
	KeyIndicatorsURL string
	UserAgent        string
	HTTPClient       *http.Client
}

// New creates a new CBR client from the given config.
func New(p Params) *DefaultClient {
	return &DefaultClient{
		dailyURL:         p.DailyURL,
		keyIndicatorsURL: p.KeyIndicatorsURL,
		userAgent:        p.UserAgent,
		http:             p.HTTPClient,
	}
}

func (c *DefaultClient) Daily(ctx context.Context) (map[string]float64, error) {
	page, err := c.fetch(ctx, c.dailyURL)
	if err != nil {
		return nil, err
	}
	return ParseDaily(page)
}

func (c *DefaultClient) KeyIndicators(ctx context.Context) (map[string]float64, error) {
	page, err := c.fetch(ctx, c.keyIndicatorsURL)
	if err != nil {
		return nil, err
	}
	return ParseKeyIndicators(page)
}

func (c *DefaultClient) fetch(ctx context.Context, rawURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, err
	}
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: status %d", ErrUnavailable, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return body, nil
}
