package database

import (
	"database/sql"
	"fmt"
	"math"
	"time"

	"cctop-gen/internal/gen"
)

// Stats summarizes the populated store. TimeRange and FileMetrics are nil
// (and omitted from JSON) when the schema holds no events or measurements,
// so an empty database never trips division-by-empty arithmetic.
type Stats struct {
	EventsCount       int64              `json:"events_count"`
	FilesCount        int64              `json:"files_count"`
	MeasurementsCount int64              `json:"measurements_count"`
	EventTypesCount   int64              `json:"event_types_count"`
	AggregatesCount   int64              `json:"aggregates_count"`
	EventDistribution map[string]int64   `json:"event_distribution"`
	TimeRange         *TimeRange         `json:"time_range,omitempty"`
	FileMetrics       *FileMetricsSummary `json:"file_metrics,omitempty"`
}

// TimeRange is the span covered by the events table.
type TimeRange struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// FileMetricsSummary aggregates measurement rows.
type FileMetricsSummary struct {
	UniqueFiles int64   `json:"unique_files"`
	AvgSize     float64 `json:"avg_size"`
	MaxSize     int64   `json:"max_size"`
	AvgLines    float64 `json:"avg_lines"`
	MaxLines    int64   `json:"max_lines"`
}

// SampleEvent is one row of the JSON sample export.
type SampleEvent struct {
	ID        int64  `json:"id"`
	Timestamp string `json:"timestamp"`
	EventType string `json:"event_type"`
	FilePath  string `json:"file_path"`
	FileSize  *int64 `json:"file_size"`
	LineCount *int64 `json:"line_count"`
}

const statsTimeLayout = "2006-01-02T15:04:05"

// Stats collects summary statistics over all five tables.
func (s *SQLiteStore) Stats() (*Stats, error) {
	if s.db == nil {
		return nil, gen.ErrNotConnected
	}

	st := &Stats{EventDistribution: make(map[string]int64)}

	counts := []struct {
		table string
		dest  *int64
	}{
		{"events", &st.EventsCount},
		{"files", &st.FilesCount},
		{"measurements", &st.MeasurementsCount},
		{"event_types", &st.EventTypesCount},
		{"aggregates", &st.AggregatesCount},
	}
	for _, c := range counts {
		if err := s.db.QueryRow("SELECT COUNT(*) FROM " + c.table).Scan(c.dest); err != nil {
			return nil, fmt.Errorf("counting %s: %w", c.table, err)
		}
	}

	rows, err := s.db.Query(
		`SELECT et.code, COUNT(*) AS count
		 FROM events e
		 JOIN event_types et ON e.event_type_id = et.id
		 GROUP BY et.code
		 ORDER BY count DESC`)
	if err != nil {
		return nil, fmt.Errorf("loading event distribution: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var code string
		var count int64
		if err := rows.Scan(&code, &count); err != nil {
			return nil, fmt.Errorf("scanning event distribution: %w", err)
		}
		st.EventDistribution[code] = count
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading event distribution: %w", err)
	}

	var minTS, maxTS sql.NullInt64
	err = s.db.QueryRow("SELECT MIN(timestamp), MAX(timestamp) FROM events").Scan(&minTS, &maxTS)
	if err != nil {
		return nil, fmt.Errorf("loading time range: %w", err)
	}
	if minTS.Valid {
		st.TimeRange = &TimeRange{
			Start: time.Unix(minTS.Int64, 0).Format(statsTimeLayout),
			End:   time.Unix(maxTS.Int64, 0).Format(statsTimeLayout),
		}
	}

	var uniqueFiles sql.NullInt64
	var avgSize, avgLines sql.NullFloat64
	var maxSize, maxLines sql.NullInt64
	err = s.db.QueryRow(
		`SELECT COUNT(DISTINCT e.file_path), AVG(m.file_size), MAX(m.file_size),
		        AVG(m.line_count), MAX(m.line_count)
		 FROM measurements m
		 JOIN events e ON m.event_id = e.id`).
		Scan(&uniqueFiles, &avgSize, &maxSize, &avgLines, &maxLines)
	if err != nil {
		return nil, fmt.Errorf("loading file metrics: %w", err)
	}
	if uniqueFiles.Valid && uniqueFiles.Int64 > 0 {
		st.FileMetrics = &FileMetricsSummary{
			UniqueFiles: uniqueFiles.Int64,
			AvgSize:     round2(avgSize.Float64),
			MaxSize:     maxSize.Int64,
			AvgLines:    round2(avgLines.Float64),
			MaxLines:    maxLines.Int64,
		}
	}

	return st, nil
}

// RecentEvents returns up to limit events newest-first, joined with their
// measurements when present.
func (s *SQLiteStore) RecentEvents(limit int) ([]SampleEvent, error) {
	if s.db == nil {
		return nil, gen.ErrNotConnected
	}

	rows, err := s.db.Query(
		`SELECT e.id, datetime(e.timestamp, 'unixepoch') AS ts, et.code, e.file_path,
		        m.file_size, m.line_count
		 FROM events e
		 JOIN event_types et ON e.event_type_id = et.id
		 LEFT JOIN measurements m ON e.id = m.event_id
		 ORDER BY e.timestamp DESC
		 LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("loading recent events: %w", err)
	}
	defer rows.Close()

	var events []SampleEvent
	for rows.Next() {
		var ev SampleEvent
		var size, lines sql.NullInt64
		if err := rows.Scan(&ev.ID, &ev.Timestamp, &ev.EventType, &ev.FilePath, &size, &lines); err != nil {
			return nil, fmt.Errorf("scanning recent event: %w", err)
		}
		if size.Valid {
			ev.FileSize = &size.Int64
		}
		if lines.Valid {
			ev.LineCount = &lines.Int64
		}
		events = append(events, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading recent events: %w", err)
	}
	return events, nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
