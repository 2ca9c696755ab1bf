// Package sqlite provides a SQLite-backed embedding cache so the
// knowledge base does not have to be re-encoded at every startup.
package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"encoding/binary"
	"errors"
	"fmt"
	"io/fs"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strings"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/custodia-labs/advisor-cli/internal/adapters/driven/cache/sqlite/migrations"
	"github.com/custodia-labs/advisor-cli/internal/core/ports/driven"
)

// Ensure Store implements the interface.
var _ driven.EmbeddingCacheStore = (*Store)(nil)

// float32Size is the byte width of one vector component on the wire.
const float32Size = 4

// Store is a SQLite-backed embedding cache. Vectors are stored one
// row per document, in corpus order, as little-endian float32 blobs.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore creates a new SQLite embedding cache at the specified data
// directory. If dataDir is empty, defaults to ~/.advisor/data/cache.db.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".advisor", "data")
	}

	// Ensure directory exists
	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "cache.db")

	// Open database with WAL mode for better concurrency
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{
		db:   db,
		path: dbPath,
	}

	// Run migrations
	if err := s.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// migrate applies any pending .up.sql files from the embedded
// migrations filesystem, in version order.
func (s *Store) migrate(fsys embed.FS) error {
	// Ensure schema_migrations table exists
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	// Get current version
	var currentVersion int
	row := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	// Find all up migrations
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	// Sort and run migrations
	var upFiles []string
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasSuffix(name, ".up.sql") {
			upFiles = append(upFiles, name)
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		// Extract version number (e.g., "001_initial.up.sql" -> 1)
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue // Skip files that don't match pattern
		}

		if version <= currentVersion {
			continue // Already applied
		}

		// Read and execute migration
		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}

		if _, err := s.db.Exec(string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}

		if _, err := s.db.Exec("INSERT INTO schema_migrations (version) VALUES (?)", version); err != nil {
			return fmt.Errorf("recording migration %s: %w", name, err)
		}
	}

	return nil
}

// Load returns the cached embedding matrix and the document count
// recorded when it was saved. An empty or malformed cache is reported
// as an error so the caller recomputes.
func (s *Store) Load(ctx context.Context) ([][]float32, int, error) {
	var count int
	row := s.db.QueryRowContext(ctx, "SELECT document_count FROM cache_meta WHERE id = 1")
	if err := row.Scan(&count); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, 0, fmt.Errorf("embedding cache is empty")
		}
		return nil, 0, fmt.Errorf("reading cache metadata: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, "SELECT vector FROM embeddings ORDER BY idx")
	if err != nil {
		return nil, 0, fmt.Errorf("reading embeddings: %w", err)
	}
	defer rows.Close()

	var vectors [][]float32
	for rows.Next() {
		var blob []byte
		if err := rows.Scan(&blob); err != nil {
			return nil, 0, fmt.Errorf("scanning embedding row: %w", err)
		}
		vec, err := decodeVector(blob)
		if err != nil {
			return nil, 0, fmt.Errorf("decoding embedding row: %w", err)
		}
		vectors = append(vectors, vec)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterating embeddings: %w", err)
	}

	if len(vectors) != count {
		return nil, 0, fmt.Errorf("cache records %d documents but holds %d vectors", count, len(vectors))
	}
	return vectors, count, nil
}

// Save replaces the cached matrix atomically with the given vectors,
// document count, and encoder model name.
func (s *Store) Save(ctx context.Context, vectors [][]float32, count int, model string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM embeddings"); err != nil {
		return fmt.Errorf("clearing embeddings: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, "INSERT INTO embeddings (idx, vector) VALUES (?, ?)")
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for i, vec := range vectors {
		if _, err := stmt.ExecContext(ctx, i, encodeVector(vec)); err != nil {
			return fmt.Errorf("inserting embedding %d: %w", i, err)
		}
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO cache_meta (id, document_count, model, saved_at)
		VALUES (1, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(id) DO UPDATE SET
			document_count = excluded.document_count,
			model = excluded.model,
			saved_at = excluded.saved_at
	`, count, model)
	if err != nil {
		return fmt.Errorf("writing cache metadata: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing cache: %w", err)
	}
	return nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// encodeVector serialises a vector as little-endian float32 bytes.
func encodeVector(vec []float32) []byte {
	buf := make([]byte, len(vec)*float32Size)
	for i, v := range vec {
		binary.LittleEndian.PutUint32(buf[i*float32Size:], math.Float32bits(v))
	}
	return buf
}

// decodeVector deserialises a little-endian float32 blob.
func decodeVector(blob []byte) ([]float32, error) {
	if len(blob)%float32Size != 0 {
		return nil, fmt.Errorf("blob length %d is not a multiple of %d", len(blob), float32Size)
	}
	vec := make([]float32, len(blob)/float32Size)
	for i := range vec {
		vec[i] = math.Float32frombits(binary.LittleEndian.Uint32(blob[i*float32Size:]))
	}
	return vec, nil
}
