package cbr

import (
	"context"
	"errors"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestDaily(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Path; got != "/eng/currency_base/daily/" {
			t.Fatalf("unexpected path: %s", got)
		}
		if got := r.Header.Get("User-Agent"); got != "test/1.0" {
			t.Fatalf("unexpected user agent: %s", got)
		}
		_, _ = w.Write([]byte(dailyPage))
	}))
	defer server.Close()

	client := New(Params{
		DailyURL:   server.URL + "/eng/currency_base/daily/",
		UserAgent:  "test/1.0",
		HTTPClient: server.Client(),
	})

	rates, err := client.Daily(context.Background())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if got := rates["USD"]; math.Abs(got-75.50) > 1e-9 {
		t.Fatalf("expected USD rate 75.50, got %v", got)
	}
}

func TestKeyIndicators(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(keyIndicatorsPage))
	}))
	defer server.Close()

	client := New(Params{
		KeyIndicatorsURL: server.URL + "/eng/key-indicators/",
		HTTPClient:       server.Client(),
	})

	rates, err := client.KeyIndicators(context.Background())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if got := rates["Au"]; math.Abs(got-4400.12) > 1e-9 {
		t.Fatalf("expected Au rate 4400.12, got %v", got)
	}
}

func TestFetchUnavailable(t *testing.T) {
	tests := []struct {
		name  string
		setup func(t *testing.T) *DefaultClient
	}{
		{
			name: "connection refused",
			setup: func(t *testing.T) *DefaultClient {
				server := httptest.NewServer(http.NotFoundHandler())
				server.Close()
				return New(Params{
					DailyURL:   server.URL,
					HTTPClient: http.DefaultClient,
				})
			},
		},
		{
			name: "server error",
			setup: func(t *testing.T) *DefaultClient {
				server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
					w.WriteHeader(http.StatusBadGateway)
				}))
				t.Cleanup(server.Close)
				return New(Params{
					DailyURL:   server.URL,
					HTTPClient: server.Client(),
				})
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := tt.setup(t)
			_, err := client.Daily(context.Background())
			if !errors.Is(err, ErrUnavailable) {
				t.Errorf("expected ErrUnavailable, got %v", err)
			}
		})
	}
}
