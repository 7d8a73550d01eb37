package store

import (
	"context"
	"errors"

	"github.com/finwatch/asset/models"
)

// ErrAssetExists is returned when adding a profile whose asset name is
// already in the bank.
var ErrAssetExists = errors.New("asset already exists")

// Config holds store configuration.
type Config struct {
	Path string `yaml:"path"`
}

type Store interface {
	Open(ctx context.Context) error
	Close() error

	AddProfile(ctx context.Context, profile models.Profile) error
	ListProfiles(ctx context.Context) ([]models.Profile, error)
	GetProfiles(ctx context.Context, names []string) ([]models.Profile, error)
	Cleanup(ctx context.Context) error
}
