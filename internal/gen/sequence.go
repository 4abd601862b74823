package gen

import (
	"fmt"
	"math/rand"
	"time"
)

// Gap between consecutive events of one file: 1 minute to 3 days.
const (
	minEventGap = 60
	maxEventGap = 259200
)

// Params controls bulk history generation.
type Params struct {
	Files         int // number of simulated files
	Days          int // history window, counting back from now
	EventsPerFile int // upper bound on events per file
}

// DefaultParams mirrors the CLI defaults.
func DefaultParams() Params {
	return Params{Files: 100, Days: 30, EventsPerFile: 10}
}

// Generator bulk-populates the store with chronologically ordered, causally
// consistent event sequences, one per simulated file.
type Generator struct {
	store Store
	synth *Synthesizer
	rng   *rand.Rand
	clock Clock
	log   Logger
}

// NewGenerator creates a Generator with the provided dependencies.
func NewGenerator(store Store, synth *Synthesizer, rng *rand.Rand, clock Clock, log Logger) *Generator {
	return &Generator{store: store, synth: synth, rng: rng, clock: clock, log: log}
}

// Run generates history for p.Files files over the last p.Days days and
// returns the total number of events persisted. Each file's events and
// measurements are committed in a single transaction; a storage failure
// aborts the whole run.
func (g *Generator) Run(p Params) (int, error) {
	typeIDs, err := g.store.EventTypeIDs()
	if err != nil {
		return 0, fmt.Errorf("loading event types: %w", err)
	}

	end := g.clock.Now()
	start := end.AddDate(0, 0, -p.Days)
	window := end.Unix() - start.Unix()
	if window < 0 {
		return 0, fmt.Errorf("invalid window: %d days", p.Days)
	}

	g.log.Info("generating events", "files", p.Files, "days", p.Days, "events_per_file", p.EventsPerFile)

	total := 0
	for i := 0; i < p.Files; i++ {
		events, inode, err := g.fileSequence(typeIDs, start, end, p.EventsPerFile)
		if err != nil {
			return total, err
		}

		if _, err := g.store.InsertFileHistory(inode, events); err != nil {
			return total, fmt.Errorf("persisting file history: %w", err)
		}
		total += len(events)

		if (i+1)%10 == 0 {
			g.log.Info("progress", "files_done", i+1, "files_total", p.Files)
		}
	}

	g.log.Info("generation complete", "events", total, "files", p.Files)
	return total, nil
}

// fileSequence builds one file's event sequence. The first event is find or
// create, placed uniformly in the window; each later event follows after a
// uniform gap and is dropped (ending the sequence) once it overshoots the
// window. Partial sequences are expected, not errors.
func (g *Generator) fileSequence(typeIDs map[string]int64, start, end time.Time, maxEvents int) ([]Event, int64, error) {
	pattern := g.synth.PickPattern()
	path, name, dir := g.synth.GeneratePath(pattern)
	inode := g.synth.Inode()

	first := Find
	if g.rng.Intn(2) == 1 {
		first = Create
	}

	window := end.Unix() - start.Unix()
	var (
		events []Event
		ts     int64
		cur    *Metrics
	)

	for i := 0; i < maxEvents; i++ {
		var et EventType
		if i == 0 {
			et = first
			ts = start.Unix() + g.rng.Int63n(window+1)
		} else {
			ts += minEventGap + g.rng.Int63n(maxEventGap-minEventGap+1)
			if ts > end.Unix() {
				break
			}
			et = pickEventType(g.rng, typeTableFor(Intensity(time.Unix(ts, 0))))
		}

		if et == Move {
			path, name, dir = g.synth.GeneratePath(pattern)
		}
		cur = nextMetrics(g.synth, g.rng, et, path, cur)

		typeID, ok := typeIDs[et.Code()]
		if !ok {
			return nil, 0, &GenerationError{Msg: fmt.Sprintf("no event_types row for %q", et.Code())}
		}

		ev := Event{
			Timestamp: ts,
			Type:      et,
			TypeID:    typeID,
			Inode:     inode,
			Path:      path,
			Name:      name,
			Dir:       dir,
		}
		if cur != nil {
			m := *cur
			ev.Metrics = &m
		}
		events = append(events, ev)
	}

	return events, inode, nil
}

// nextMetrics applies the metrics transition policy for one event type.
// create/find synthesize fresh metrics; modify shifts the size by a uniform
// delta in [-100, 500] and re-derives line/block counts; delete and move
// carry metrics forward untouched; restore synthesizes only when no metrics
// exist yet.
func nextMetrics(s *Synthesizer, rng *rand.Rand, et EventType, path string, cur *Metrics) *Metrics {
	switch et {
	case Create, Find:
		m := s.SynthesizeMetrics(path)
		return &m
	case Modify:
		if cur == nil {
			m := s.SynthesizeMetrics(path)
			return &m
		}
		delta := int64(rng.Intn(601)) - 100
		m := s.MetricsForSize(path, cur.Size+delta)
		return &m
	case Restore:
		if cur == nil {
			m := s.SynthesizeMetrics(path)
			return &m
		}
	}
	// delete, move: carry forward
	return cur
}
