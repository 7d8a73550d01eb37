package cbr

import (
	"net/http"
	"time"
)

// Config holds CBR client configuration.
type Config struct {
	DailyURL         string       `yaml:"daily_url"`
	KeyIndicatorsURL string       `yaml:"key_indicators_url"`
	UserAgent        string       `yaml:"user_agent"`
	HTTPClient       *http.Client `yaml:"-"`
}

// Defaults applies default values to the config.
func (c *Config) Defaults() {
	if c.DailyURL == "" {
		c.DailyURL = "https://www.cbr.ru/eng/currency_base/daily/"
	}
	if c.KeyIndicatorsURL == "" {
		c.KeyIndicatorsURL = "https://www.cbr.ru/eng/key-indicators/"
	}
	if c.UserAgent == "" {
		c.UserAgent = "asset/1.0"
	}
	if c.HTTPClient == nil {
		c.HTTPClient = &http.Client{Timeout: 30 * time.Second}
	}
}
