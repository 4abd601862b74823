package database

import (
	"database/sql"
	"fmt"

	"cctop-gen/internal/database/migrations"
	"cctop-gen/internal/gen"

	_ "github.com/mattn/go-sqlite3" // SQLite driver
)

// SQLiteStore implements the gen.Store interface plus the read-only
// statistics and export queries.
type SQLiteStore struct {
	db   *sql.DB
	path string
}

// NewSQLiteStore opens a new SQLite store.
// path can be a file path or ":memory:" for an in-memory database.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := OpenConnection(path)
	if err != nil {
		return nil, err
	}
	return &SQLiteStore{db: db, path: path}, nil
}

// NewSQLiteStoreFromDB wraps an existing database connection. The caller is
// responsible for ensuring the connection is properly configured.
func NewSQLiteStoreFromDB(db *sql.DB) *SQLiteStore {
	return &SQLiteStore{db: db, path: ""}
}

// OpenConnection opens and configures a SQLite connection with the PRAGMAs
// the schema relies on. Exported for tools and tests that need a properly
// configured connection.
func OpenConnection(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	// Referential integrity is a binding contract of the schema; SQLite
	// ships with foreign keys OFF for backward compatibility.
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling foreign keys: %w", err)
	}

	return db, nil
}

// InitSchema creates the five tables and their indexes (idempotent) and
// seeds the static event-type rows, ignoring rows that already exist.
func (s *SQLiteStore) InitSchema() error {
	if s.db == nil {
		return gen.ErrNotConnected
	}
	if err := migrations.MigrateUp(s.db); err != nil {
		return fmt.Errorf("initializing schema: %w", err)
	}
	return s.SeedEventTypes()
}

// SeedEventTypes inserts the fixed event-type rows. Safe to call any number
// of times; existing rows are left untouched.
func (s *SQLiteStore) SeedEventTypes() error {
	if s.db == nil {
		return gen.ErrNotConnected
	}
	for _, seed := range gen.EventTypeSeeds() {
		_, err := s.db.Exec(
			"INSERT OR IGNORE INTO event_types (code, name, description) VALUES (?, ?, ?)",
			seed.Code, seed.Name, seed.Description,
		)
		if err != nil {
			return fmt.Errorf("seeding event type %q: %w", seed.Code, err)
		}
	}
	return nil
}

// EventTypeIDs maps event-type codes to their row ids.
func (s *SQLiteStore) EventTypeIDs() (map[string]int64, error) {
	if s.db == nil {
		return nil, gen.ErrNotConnected
	}
	rows, err := s.db.Query("SELECT id, code FROM event_types")
	if err != nil {
		return nil, fmt.Errorf("loading event types: %w", err)
	}
	defer rows.Close()

	ids := make(map[string]int64)
	for rows.Next() {
		var id int64
		var code string
		if err := rows.Scan(&id, &code); err != nil {
			return nil, fmt.Errorf("scanning event type: %w", err)
		}
		ids[code] = id
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading event types: %w", err)
	}
	return ids, nil
}

// InsertFile creates a files row and returns its surrogate id.
func (s *SQLiteStore) InsertFile(inode int64) (int64, error) {
	if s.db == nil {
		return 0, gen.ErrNotConnected
	}
	res, err := s.db.Exec("INSERT INTO files (inode, is_active) VALUES (?, 1)", inode)
	if err != nil {
		return 0, fmt.Errorf("inserting file: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("reading file id: %w", err)
	}
	return id, nil
}

// InsertFileHistory creates a files row plus all its events and their
// measurements in a single transaction. A crash mid-generation loses at
// most this one file's uncommitted history.
func (s *SQLiteStore) InsertFileHistory(inode int64, events []gen.Event) (int64, error) {
	if s.db == nil {
		return 0, gen.ErrNotConnected
	}

	tx, err := s.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("starting transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.Exec("INSERT INTO files (inode, is_active) VALUES (?, 1)", inode)
	if err != nil {
		return 0, fmt.Errorf("inserting file: %w", err)
	}
	fileID, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("reading file id: %w", err)
	}

	for _, ev := range events {
		if err := insertEvent(tx, fileID, ev); err != nil {
			return 0, err
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing file history: %w", err)
	}
	return fileID, nil
}

// InsertLiveEvent persists one event and its measurement atomically with
// its own commit, returning the event id.
func (s *SQLiteStore) InsertLiveEvent(ev gen.Event) (int64, error) {
	if s.db == nil {
		return 0, gen.ErrNotConnected
	}

	tx, err := s.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("starting transaction: %w", err)
	}
	defer tx.Rollback()

	id, err := insertEventReturningID(tx, ev.FileID, ev)
	if err != nil {
		return 0, err
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing live event: %w", err)
	}
	return id, nil
}

func insertEvent(tx *sql.Tx, fileID int64, ev gen.Event) error {
	_, err := insertEventReturningID(tx, fileID, ev)
	return err
}

func insertEventReturningID(tx *sql.Tx, fileID int64, ev gen.Event) (int64, error) {
	res, err := tx.Exec(
		`INSERT INTO events (timestamp, event_type_id, file_id, file_path, file_name, directory)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		ev.Timestamp, ev.TypeID, fileID, ev.Path, ev.Name, ev.Dir,
	)
	if err != nil {
		return 0, fmt.Errorf("inserting event: %w", err)
	}
	eventID, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("reading event id: %w", err)
	}

	if ev.Metrics != nil {
		_, err = tx.Exec(
			`INSERT INTO measurements (event_id, inode, file_size, line_count, block_count)
			 VALUES (?, ?, ?, ?, ?)`,
			eventID, ev.Inode, ev.Metrics.Size, ev.Metrics.Lines, ev.Metrics.Blocks,
		)
		if err != nil {
			return 0, fmt.Errorf("inserting measurement: %w", err)
		}
	}
	return eventID, nil
}

// RecentFiles returns up to limit active files ordered by their most recent
// event, newest first, each carrying its latest path.
func (s *SQLiteStore) RecentFiles(limit int) ([]gen.PoolFile, error) {
	if s.db == nil {
		return nil, gen.ErrNotConnected
	}

	// Bare columns alongside MAX() resolve to the row holding the
	// maximum, so file_path/file_name/directory come from the latest event.
	rows, err := s.db.Query(
		`SELECT f.id, f.inode, e.file_path, e.file_name, e.directory, MAX(e.timestamp) AS last_ts
		 FROM events e
		 JOIN files f ON e.file_id = f.id
		 WHERE f.is_active = 1
		 GROUP BY f.id
		 ORDER BY last_ts DESC
		 LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("loading recent files: %w", err)
	}
	defer rows.Close()

	var pool []gen.PoolFile
	for rows.Next() {
		var pf gen.PoolFile
		var inode sql.NullInt64
		var lastTS int64
		if err := rows.Scan(&pf.FileID, &inode, &pf.Path, &pf.Name, &pf.Dir, &lastTS); err != nil {
			return nil, fmt.Errorf("scanning recent file: %w", err)
		}
		pf.Inode = inode.Int64
		pool = append(pool, pf)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading recent files: %w", err)
	}
	return pool, nil
}

// BackupTo creates a complete copy of the database at destPath using
// VACUUM INTO.
func (s *SQLiteStore) BackupTo(destPath string) error {
	if s.db == nil {
		return gen.ErrNotConnected
	}
	if _, err := s.db.Exec("VACUUM INTO ?", destPath); err != nil {
		return fmt.Errorf("backing up database: %w", err)
	}
	return nil
}

// Path returns the database file path (or ":memory:").
func (s *SQLiteStore) Path() string { return s.path }

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Compile-time check that SQLiteStore implements the generator's store
// interface.
var _ gen.Store = (*SQLiteStore)(nil)
