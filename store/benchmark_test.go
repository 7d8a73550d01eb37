package store

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/finwatch/asset/models"
)

func BenchmarkAddProfile(b *testing.B) {
	ctx := context.Background()
	st := NewSQLiteStore(Params{Path: filepath.Join(b.TempDir(), "asset.db")})
	if err := st.Open(ctx); err != nil {
		b.Fatalf("open: %v", err)
	}
	defer st.Close()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		profile := models.Profile{
			CharCode: "USD",
			Asset: models.Asset{
				Name:     fmt.Sprintf("property-%d", i),
				Capital:  1000,
				Interest: 0.1,
			},
		}
		if err := st.AddProfile(ctx, profile); err != nil {
			b.Fatalf("add: %v", err)
		}
	}
}

func BenchmarkListProfiles(b *testing.B) {
	ctx := context.Background()
	st := NewSQLiteStore(Params{Path: filepath.Join(b.TempDir(), "asset.db")})
	if err := st.Open(ctx); err != nil {
		b.Fatalf("open: %v", err)
	}
	defer st.Close()

	for i := 0; i < 100; i++ {
		profile := models.Profile{
			CharCode: "USD",
			Asset: models.Asset{
				Name:     fmt.Sprintf("property-%d", i),
				Capital:  1000,
				Interest: 0.1,
			},
		}
		if err := st.AddProfile(ctx, profile); err != nil {
			b.Fatalf("add: %v", err)
		}
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := st.ListProfiles(ctx); err != nil {
			b.Fatalf("list: %v", err)
		}
	}
}
