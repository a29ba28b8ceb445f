package notify

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/tursodatabase/libsql-client-go/libsql"
	_ "modernc.org/sqlite"

	"github.com/preston-bernstein/season-dashboard-service/internal/domain/activity"
)

const markerSchema = `CREATE TABLE IF NOT EXISTS notify_markers (
	activity   TEXT PRIMARY KEY,
	marker     TEXT NOT NULL,
	updated_at INTEGER NOT NULL
)`

// MarkerStore persists the key of the last announced result per activity.
type MarkerStore interface {
	Last(ctx context.Context, a activity.Activity) (string, bool, error)
	Save(ctx context.Context, a activity.Activity, marker string) error
}

// SQLStore is a MarkerStore backed by a local sqlite file or a remote libsql database.
type SQLStore struct {
	db  *sql.DB
	now func() time.Time
}

// OpenSQLStore opens dsn and ensures the schema exists. libsql:// and http(s):// DSNs use the
// libsql driver; anything else is treated as a sqlite path.
func OpenSQLStore(ctx context.Context, dsn string) (*SQLStore, error) {
	if dsn == "" {
		return nil, errors.New("marker store dsn required")
	}
	driver := driverFor(dsn)
	if driver == "sqlite" && dsn != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(dsn), 0o755); err != nil {
			return nil, fmt.Errorf("create marker store dir: %w", err)
		}
	}
	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("open marker store: %w", err)
	}
	store, err := NewSQLStore(ctx, db)
	if err != nil {
		db.Close()
		return nil, err
	}
	return store, nil
}

// NewSQLStore wraps an open database and ensures the schema exists.
func NewSQLStore(ctx context.Context, db *sql.DB) (*SQLStore, error) {
	if _, err := db.ExecContext(ctx, markerSchema); err != nil {
		return nil, fmt.Errorf("create marker schema: %w", err)
	}
	return &SQLStore{db: db, now: time.Now}, nil
}

func driverFor(dsn string) string {
	for _, prefix := range []string{"libsql://", "http://", "https://", "ws://", "wss://"} {
		if strings.HasPrefix(dsn, prefix) {
			return "libsql"
		}
	}
	return "sqlite"
}

// Last returns the stored marker for a. The bool is false when nothing was announced yet.
func (s *SQLStore) Last(ctx context.Context, a activity.Activity) (string, bool, error) {
	var marker string
	err := s.db.QueryRowContext(ctx, `SELECT marker FROM notify_markers WHERE activity = ?`, a.String()).Scan(&marker)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return marker, true, nil
}

// Save replaces the marker for a.
func (s *SQLStore) Save(ctx context.Context, a activity.Activity, marker string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO notify_markers (activity, marker, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(activity) DO UPDATE SET marker = excluded.marker, updated_at = excluded.updated_at`,
		a.String(), marker, s.now().Unix(),
	)
	return err
}

// Close releases the underlying database.
func (s *SQLStore) Close() error {
	return s.db.Close()
}
