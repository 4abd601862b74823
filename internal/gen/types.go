package gen

import "time"

// Metrics holds the size-bearing measurements attached to an event.
type Metrics struct {
	Size   int64 // bytes
	Lines  int64
	Blocks int64 // 512-byte blocks
}

// Event is one generated file activity event, ready for persistence.
// Metrics is nil when the event type carries no measurement (for example a
// delete before any size was ever known).
type Event struct {
	Timestamp int64 // unix seconds
	Type      EventType
	TypeID    int64 // event_types row id
	FileID    int64 // files row id; assigned by the store during bulk inserts
	Inode     int64
	Path      string
	Name      string
	Dir       string
	Metrics   *Metrics
}

// PoolFile is a member of the live-mode working set.
type PoolFile struct {
	FileID int64
	Inode  int64
	Path   string
	Name   string
	Dir    string
}

// Store is the persistence surface the generators need. Implemented by
// database.SQLiteStore.
type Store interface {
	// EventTypeIDs maps event-type codes to their row ids.
	EventTypeIDs() (map[string]int64, error)

	// InsertFile creates a files row and returns its id.
	InsertFile(inode int64) (int64, error)

	// InsertFileHistory creates a files row plus all its events and their
	// measurements in a single transaction, returning the new file id.
	InsertFileHistory(inode int64, events []Event) (int64, error)

	// InsertLiveEvent persists one event (and its measurement, if any)
	// with its own commit, returning the event id.
	InsertLiveEvent(ev Event) (int64, error)

	// RecentFiles returns up to limit active files ordered by most recent
	// activity, newest first.
	RecentFiles(limit int) ([]PoolFile, error)
}

// Clock abstracts time retrieval so generation is deterministic in tests.
type Clock interface {
	Now() time.Time
}

// RealClock returns the actual current time.
type RealClock struct{}

func (RealClock) Now() time.Time { return time.Now() }

// Logger provides structured logging for the generation layer.
// The args follow slog conventions: alternating key/value pairs.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// NopLogger is a Logger that discards all output. Use in tests.
type NopLogger struct{}

func NewNopLogger() *NopLogger { return &NopLogger{} }

func (*NopLogger) Debug(string, ...any) {}
func (*NopLogger) Info(string, ...any)  {}
func (*NopLogger) Warn(string, ...any)  {}
func (*NopLogger) Error(string, ...any) {}
