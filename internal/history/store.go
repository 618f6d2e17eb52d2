package history

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/nao1215/wpkit/internal/model"
)

// FileName is the database file created inside the history directory.
const FileName = "wpkit.db"

// storedTimeLayout is fixed-width so that text ordering matches time order.
const storedTimeLayout = "2006-01-02 15:04:05.000000"

// Store provides SQLite-based storage for scan results.
type Store struct {
	// db is the underlying SQL database connection.
	db *sql.DB

	// dbPath is the path to the SQLite database file.
	dbPath string
}

// Options configures Store behavior.
type Options struct {
	// CreateIfNotExists creates the database file if it doesn't exist.
	CreateIfNotExists bool

	// EnableWAL enables Write-Ahead Logging.
	EnableWAL bool
}

// DefaultOptions returns the default database options.
func DefaultOptions() Options {
	return Options{
		CreateIfNotExists: true,
		EnableWAL:         true,
	}
}

// Open opens or creates the history database in dir.
// When CreateIfNotExists is false and the database doesn't exist, an error
// wrapping model.ErrNotFound is returned.
func Open(dir string, opts Options) (*Store, error) {
	dbPath := filepath.Join(dir, FileName)

	if !opts.CreateIfNotExists {
		if _, err := os.Stat(dbPath); errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("history database %s: %w", dbPath, model.ErrNotFound)
		} else if err != nil {
			return nil, fmt.Errorf("failed to check database path: %w", err)
		}
	} else if err := os.MkdirAll(dir, 0750); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	dsn := dbPath + "?mode=rw"
	if opts.CreateIfNotExists {
		dsn = dbPath + "?mode=rwc"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	db.SetMaxOpenConns(1) // SQLite only supports one writer
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	s := &Store{
		db:     db,
		dbPath: dbPath,
	}

	if opts.EnableWAL {
		if _, err := db.ExecContext(context.Background(), "PRAGMA journal_mode=WAL"); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
		}
	}

	if err := s.createTables(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}
	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.dbPath
}

// createTables creates the database schema if it doesn't exist.
func (s *Store) createTables() error {
	schema := `
	CREATE TABLE IF NOT EXISTS scans (
		id TEXT PRIMARY KEY,
		root TEXT NOT NULL,
		scanned_at TEXT NOT NULL,
		wp_version TEXT,
		plugin_count INTEGER NOT NULL DEFAULT 0,
		theme_count INTEGER NOT NULL DEFAULT 0,
		result_json TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_scans_root ON scans(root);
	CREATE INDEX IF NOT EXISTS idx_scans_scanned_at ON scans(scanned_at);
	`

	_, err := s.db.ExecContext(context.Background(), schema)
	return err
}

// SaveScan stores result. Saving the same scan ID twice is an error.
func (s *Store) SaveScan(ctx context.Context, result *model.ScanResult) error {
	resultJSON, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("failed to serialize scan: %w", err)
	}

	var version sql.NullString
	if result.PlatformVersion != nil {
		version = sql.NullString{String: *result.PlatformVersion, Valid: true}
	}

	query := `
	INSERT INTO scans (id, root, scanned_at, wp_version, plugin_count, theme_count, result_json)
	VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	_, err = s.db.ExecContext(ctx, query,
		result.ID,
		result.Root,
		result.ScannedAt.UTC().Format(storedTimeLayout),
		version,
		result.PluginCount(),
		result.ThemeCount(),
		string(resultJSON),
	)
	if err != nil {
		return fmt.Errorf("failed to save scan: %w", err)
	}
	return nil
}

// ScanMetadata contains summary information about a stored scan.
type ScanMetadata struct {
	ID              string
	Root            string
	ScannedAt       time.Time
	PlatformVersion string
	PluginCount     int
	ThemeCount      int
}

// ListScans returns the stored scans of root, newest first. An empty root
// lists every scan.
func (s *Store) ListScans(ctx context.Context, root string) ([]ScanMetadata, error) {
	query := `
	SELECT id, root, scanned_at, wp_version, plugin_count, theme_count
	FROM scans
	WHERE (? = '' OR root = ?)
	ORDER BY scanned_at DESC, rowid DESC
	`

	rows, err := s.db.QueryContext(ctx, query, root, root)
	if err != nil {
		return nil, fmt.Errorf("failed to list scans: %w", err)
	}
	defer rows.Close()

	var results []ScanMetadata
	for rows.Next() {
		var meta ScanMetadata
		var scannedAt string
		var version sql.NullString

		if err := rows.Scan(&meta.ID, &meta.Root, &scannedAt, &version, &meta.PluginCount, &meta.ThemeCount); err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}
		meta.ScannedAt = parseTimestamp(scannedAt)
		meta.PlatformVersion = model.UnknownValue
		if version.Valid && version.String != "" {
			meta.PlatformVersion = version.String
		}
		results = append(results, meta)
	}
	return results, rows.Err()
}

// GetScan retrieves a stored scan by ID. Unknown IDs wrap model.ErrNotFound.
func (s *Store) GetScan(ctx context.Context, id string) (*model.ScanResult, error) {
	query := `
	SELECT result_json FROM scans
	WHERE id = ?
	`

	var resultJSON string
	err := s.db.QueryRowContext(ctx, query, id).Scan(&resultJSON)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("scan %s: %w", id, model.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get scan: %w", err)
	}

	var result model.ScanResult
	if err := json.Unmarshal([]byte(resultJSON), &result); err != nil {
		return nil, fmt.Errorf("failed to parse scan %s: %w", id, err)
	}
	return &result, nil
}

// LatestScans returns up to n scans of root, newest first.
func (s *Store) LatestScans(ctx context.Context, root string, n int) ([]*model.ScanResult, error) {
	metas, err := s.ListScans(ctx, root)
	if err != nil {
		return nil, err
	}
	if len(metas) > n {
		metas = metas[:n]
	}

	results := make([]*model.ScanResult, 0, len(metas))
	for _, m := range metas {
		r, err := s.GetScan(ctx, m.ID)
		if err != nil {
			return nil, err
		}
		results = append(results, r)
	}
	return results, nil
}

// timestampFormats contains the timestamp formats that may be stored.
// The order matters: more specific formats should come first.
var timestampFormats = []string{
	storedTimeLayout,
	"2006-01-02 15:04:05",  // SQLite default datetime format
	"2006-01-02T15:04:05Z", // ISO 8601 with Z suffix
	time.RFC3339Nano,
}

// parseTimestamp parses a stored timestamp as UTC, returning zero time
// when no format matches.
func parseTimestamp(s string) time.Time {
	for _, format := range timestampFormats {
		if t, err := time.Parse(format, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
