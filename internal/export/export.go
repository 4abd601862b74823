// Package export builds the JSON sample document consumers use to inspect
// a populated fixture database.
package export

import (
	"encoding/json"
	"fmt"
	"os"

	"cctop-gen/internal/database"
)

// DefaultLimit is the number of recent events included when none is given.
const DefaultLimit = 50

// Document is the exported sample: the most recent events plus summary
// statistics over the whole store.
type Document struct {
	RecentEvents []database.SampleEvent `json:"recent_events"`
	Statistics   *database.Stats        `json:"statistics"`
}

// Build assembles a Document from the store, read-only.
func Build(store *database.SQLiteStore, limit int) (*Document, error) {
	if limit <= 0 {
		limit = DefaultLimit
	}

	events, err := store.RecentEvents(limit)
	if err != nil {
		return nil, fmt.Errorf("collecting recent events: %w", err)
	}
	stats, err := store.Stats()
	if err != nil {
		return nil, fmt.Errorf("collecting statistics: %w", err)
	}

	if events == nil {
		events = []database.SampleEvent{}
	}
	return &Document{RecentEvents: events, Statistics: stats}, nil
}

// WriteFile writes the document to path as indented JSON.
func WriteFile(path string, doc *Document) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding sample document: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0644); err != nil {
		return fmt.Errorf("writing sample document: %w", err)
	}
	return nil
}
