package store

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/finwatch/asset/models"
)

func newOpenStore(t *testing.T) *SQLiteStore {
	t.Helper()
	ctx := context.Background()

	st := NewSQLiteStore(Params{Path: filepath.Join(t.TempDir(), "asset.db")})
	if err := st.Open(ctx); err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { _ = st.Close() })
	return st
}

func TestSQLiteStoreAddAndList(t *testing.T) {
	ctx := context.Background()
	st := newOpenStore(t)

	profiles := []models.Profile{
		{CharCode: "USD", Asset: models.Asset{Name: "property", Capital: 1000, Interest: 0.1}},
		{CharCode: "EUR", Asset: models.Asset{Name: "bonds", Capital: 500, Interest: 0.05}},
		{CharCode: "RUB", Asset: models.Asset{Name: "deposit", Capital: 100000, Interest: 0.04}},
	}
	for _, p := range profiles {
		if err := st.AddProfile(ctx, p); err != nil {
			t.Fatalf("add %s: %v", p.Asset.Name, err)
		}
	}

	listed, err := st.ListProfiles(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(listed) != 3 {
		t.Fatalf("expected 3 profiles, got %d", len(listed))
	}
	// Sorted by char code first.
	if listed[0].CharCode != "EUR" || listed[1].CharCode != "RUB" || listed[2].CharCode != "USD" {
		t.Errorf("unexpected order: %v", listed)
	}
}

func TestSQLiteStoreDuplicateName(t *testing.T) {
	ctx := context.Background()
	st := newOpenStore(t)

	profile := models.Profile{
		CharCode: "USD",
		Asset:    models.Asset{Name: "property", Capital: 1000, Interest: 0.1},
	}
	if err := st.AddProfile(ctx, profile); err != nil {
		t.Fatalf("add: %v", err)
	}

	profile.CharCode = "EUR"
	err := st.AddProfile(ctx, profile)
	if !errors.Is(err, ErrAssetExists) {
		t.Fatalf("expected ErrAssetExists, got %v", err)
	}
}

func TestSQLiteStoreGetProfiles(t *testing.T) {
	ctx := context.Background()
	st := newOpenStore(t)

	for _, p := range []models.Profile{
		{CharCode: "USD", Asset: models.Asset{Name: "property", Capital: 1000, Interest: 0.1}},
		{CharCode: "EUR", Asset: models.Asset{Name: "bonds", Capital: 500, Interest: 0.05}},
	} {
		if err := st.AddProfile(ctx, p); err != nil {
			t.Fatalf("add: %v", err)
		}
	}

	got, err := st.GetProfiles(ctx, []string{"property", "unknown"})
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(got) != 1 || got[0].Asset.Name != "property" {
		t.Fatalf("expected only property, got %v", got)
	}

	got, err = st.GetProfiles(ctx, nil)
	if err != nil {
		t.Fatalf("get with no names: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected no profiles for empty query, got %v", got)
	}
}

func TestSQLiteStoreCleanup(t *testing.T) {
	ctx := context.Background()
	st := newOpenStore(t)

	profile := models.Profile{
		CharCode: "USD",
		Asset:    models.Asset{Name: "property", Capital: 1000, Interest: 0.1},
	}
	if err := st.AddProfile(ctx, profile); err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := st.Cleanup(ctx); err != nil {
		t.Fatalf("cleanup: %v", err)
	}

	listed, err := st.ListProfiles(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(listed) != 0 {
		t.Fatalf("expected empty bank after cleanup, got %v", listed)
	}

	// The bank accepts the same name again after cleanup.
	if err := st.AddProfile(ctx, profile); err != nil {
		t.Fatalf("re-add after cleanup: %v", err)
	}
}

func TestSQLiteStorePersistsAcrossOpens(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "asset.db")

	st := NewSQLiteStore(Params{Path: path})
	if err := st.Open(ctx); err != nil {
		t.Fatalf("open: %v", err)
	}
	profile := models.Profile{
		CharCode: "USD",
		Asset:    models.Asset{Name: "property", Capital: 1000, Interest: 0.1},
	}
	if err := st.AddProfile(ctx, profile); err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := st.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	reopened := NewSQLiteStore(Params{Path: path})
	if err := reopened.Open(ctx); err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer reopened.Close()

	listed, err := reopened.ListProfiles(ctx)
	if err != nil {
		t.Fatalf("list after reopen: %v", err)
	}
	if len(listed) != 1 || listed[0].Asset.Name != "property" {
		t.Fatalf("expected persisted profile, got %v", listed)
	}
}
