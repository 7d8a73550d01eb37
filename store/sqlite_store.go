package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	_ "github.com/mattn/go-sqlite3"

	"github.com/finwatch/asset/logger"
	"github.com/finwatch/asset/models"
)

var _ Store = (*SQLiteStore)(nil)

const memoryDSN = "file:asset_bank?mode=memory&cache=shared&_foreign_keys=on&_busy_timeout=5000"

const schema = `
CREATE TABLE IF NOT EXISTS profiles (
	name      TEXT PRIMARY KEY,
	char_code TEXT NOT NULL,
	capital   REAL NOT NULL,
	interest  REAL NOT NULL
);`

// SQLiteStore persists the asset bank in a sqlite database. An empty path
// keeps the bank in memory, which matches the behavior of a bank that lives
// only for the life of the process.
type SQLiteStore struct {
	mu     sync.RWMutex
	db     *sql.DB
	path   string
	logger logger.Logger
}

type Params struct {
	Path   string
	Logger logger.Logger
}

func NewSQLiteStore(p Params) *SQLiteStore {
	log := p.Logger
	if log == nil {
		log = logger.NewNop()
	}
	return &SQLiteStore{
		path:   p.Path,
		logger: log,
	}
}

func (s *SQLiteStore) Open(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.db != nil {
		return nil
	}

	dsn := memoryDSN
	if s.path != "" {
		if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
			return err
		}
		dsn = fmt.Sprintf("file:%s?_foreign_keys=on&_busy_timeout=5000", s.path)
	}

	database, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return err
	}
	database.SetMaxOpenConns(1)
	database.SetMaxIdleConns(1)

	if err = database.PingContext(ctx); err != nil {
		_ = database.Close()
		return err
	}

	if _, err = database.ExecContext(ctx, schema); err != nil {
		_ = database.Close()
		return fmt.Errorf("apply schema: %w", err)
	}

	s.db = database
	return nil
}

func (s *SQLiteStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}

func (s *SQLiteStore) AddProfile(ctx context.Context, profile models.Profile) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.db == nil {
		return errors.New("store is not open")
	}

	s.logger.DebugW("adding profile",
		"name", profile.Asset.Name,
		"char_code", profile.CharCode,
	)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	var exists int
	err = tx.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM profiles WHERE name = ?`, profile.Asset.Name,
	).Scan(&exists)
	if err != nil {
		_ = tx.Rollback()
		return err
	}
	if exists > 0 {
		_ = tx.Rollback()
		return fmt.Errorf("%w: %s", ErrAssetExists, profile.Asset.Name)
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO profiles (name, char_code, capital, interest) VALUES (?, ?, ?, ?)`,
		profile.Asset.Name, profile.CharCode, profile.Asset.Capital, profile.Asset.Interest,
	)
	if err != nil {
		_ = tx.Rollback()
		return err
	}

	return tx.Commit()
}

func (s *SQLiteStore) ListProfiles(ctx context.Context) ([]models.Profile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.db == nil {
		return nil, errors.New("store is not open")
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT name, char_code, capital, interest FROM profiles ORDER BY char_code, name`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanProfiles(rows)
}

func (s *SQLiteStore) GetProfiles(ctx context.Context, names []string) ([]models.Profile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.db == nil {
		return nil, errors.New("store is not open")
	}
	if len(names) == 0 {
		return nil, nil
	}

	placeholders := strings.Repeat("?,", len(names))
	placeholders = placeholders[:len(placeholders)-1]
	args := make([]any, len(names))
	for i, name := range names {
		args[i] = name
	}

	query := fmt.Sprintf(
		`SELECT name, char_code, capital, interest FROM profiles
		 WHERE name IN (%s) ORDER BY char_code, name`, placeholders,
	)
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanProfiles(rows)
}

func (s *SQLiteStore) Cleanup(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.db == nil {
		return errors.New("store is not open")
	}

	s.logger.InfoW("cleaning up asset bank")
	_, err := s.db.ExecContext(ctx, `DELETE FROM profiles`)
	return err
}

func scanProfiles(rows *sql.Rows) ([]models.Profile, error) {
	var out []models.Profile
	for rows.Next() {
		var p models.Profile
		if err := rows.Scan(&p.Asset.Name, &p.CharCode, &p.Asset.Capital, &p.Asset.Interest); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}
