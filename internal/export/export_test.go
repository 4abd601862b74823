package export

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"cctop-gen/internal/database"
	"cctop-gen/internal/gen"
	"cctop-gen/internal/testutil"
)

func TestBuild_EmptyStore(t *testing.T) {
	store := testutil.NewTestStore(t)

	doc, err := Build(store, 0)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	if doc.RecentEvents == nil {
		t.Error("RecentEvents = nil, want empty slice")
	}
	if len(doc.RecentEvents) != 0 {
		t.Errorf("len(RecentEvents) = %d, want 0", len(doc.RecentEvents))
	}
	if doc.Statistics == nil {
		t.Fatal("Statistics = nil, want populated")
	}
	if doc.Statistics.EventTypesCount != 6 {
		t.Errorf("EventTypesCount = %d, want 6", doc.Statistics.EventTypesCount)
	}
}

func TestBuild_RespectsLimit(t *testing.T) {
	store := testutil.NewTestStore(t)
	insertHistory(t, store, 5)

	doc, err := Build(store, 2)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if len(doc.RecentEvents) != 2 {
		t.Errorf("len(RecentEvents) = %d, want 2", len(doc.RecentEvents))
	}
	if doc.Statistics.EventsCount != 5 {
		t.Errorf("EventsCount = %d, want 5", doc.Statistics.EventsCount)
	}
}

func TestWriteFile(t *testing.T) {
	store := testutil.NewTestStore(t)
	insertHistory(t, store, 3)

	doc, err := Build(store, 10)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	path := filepath.Join(t.TempDir(), "sample.json")
	if err := WriteFile(path, doc); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading sample: %v", err)
	}
	if len(data) == 0 || data[len(data)-1] != '\n' {
		t.Error("sample file missing trailing newline")
	}

	var got map[string]json.RawMessage
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("sample is not valid JSON: %v", err)
	}
	for _, key := range []string{"recent_events", "statistics"} {
		if _, ok := got[key]; !ok {
			t.Errorf("sample missing %q key", key)
		}
	}
}

func insertHistory(t *testing.T, store *database.SQLiteStore, n int) {
	t.Helper()

	ids, err := store.EventTypeIDs()
	if err != nil {
		t.Fatalf("EventTypeIDs() error = %v", err)
	}

	base := time.Date(2024, 1, 10, 9, 0, 0, 0, time.UTC).Unix()
	events := make([]gen.Event, n)
	for i := range events {
		events[i] = gen.Event{
			Timestamp: base + int64(i)*3600,
			Type:      gen.Modify,
			TypeID:    ids["modify"],
			Inode:     123456,
			Path:      "src/main.js",
			Name:      "main.js",
			Dir:       "src",
			Metrics:   &gen.Metrics{Size: 1000, Lines: 25, Blocks: 2},
		}
	}
	events[0].Type = gen.Create
	events[0].TypeID = ids["create"]

	if _, err := store.InsertFileHistory(123456, events); err != nil {
		t.Fatalf("InsertFileHistory() error = %v", err)
	}
}
