package gen

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"sync/atomic"
	"time"
)

const (
	livePoolLimit     = 100 // most-recently-active files considered for reuse
	liveBootstrapSize = 10  // files fabricated when the pool is empty
	minLiveSleep      = 0.5 // seconds
)

// LiveDriver continuously generates single events against a working pool of
// files until its context is cancelled. Each event gets its own commit, so
// stopping mid-loop never loses more than the event in flight.
type LiveDriver struct {
	store Store
	synth *Synthesizer
	rng   *rand.Rand
	clock Clock
	log   Logger
	out   io.Writer

	running atomic.Bool
	pool    []PoolFile
	metrics map[int64]*Metrics
}

// NewLiveDriver creates a LiveDriver. Event summaries are printed to out.
func NewLiveDriver(store Store, synth *Synthesizer, rng *rand.Rand, clock Clock, log Logger, out io.Writer) *LiveDriver {
	return &LiveDriver{
		store:   store,
		synth:   synth,
		rng:     rng,
		clock:   clock,
		log:     log,
		out:     out,
		metrics: make(map[int64]*Metrics),
	}
}

// Running reports whether the driver loop is active.
func (d *LiveDriver) Running() bool { return d.running.Load() }

// SleepDuration draws the pause before the next event from an exponential
// distribution with mean interval (seconds), clamped to
// [0.5s, 3*interval].
func (d *LiveDriver) SleepDuration(interval float64) time.Duration {
	s := d.rng.ExpFloat64() * interval
	if s < minLiveSleep {
		s = minLiveSleep
	}
	if max := interval * 3; s > max {
		s = max
	}
	return time.Duration(s * float64(time.Second))
}

// Run generates events until ctx is cancelled. Recoverable per-event errors
// are logged and the loop continues; a missing database handle is fatal and
// returned.
func (d *LiveDriver) Run(ctx context.Context, interval float64) error {
	if interval <= 0 {
		interval = 2.0
	}

	typeIDs, err := d.store.EventTypeIDs()
	if err != nil {
		return fmt.Errorf("loading event types: %w", err)
	}

	if err := d.loadPool(); err != nil {
		return err
	}

	d.running.Store(true)
	defer d.running.Store(false)

	d.log.Info("live mode started", "interval", interval, "pool_size", len(d.pool))

	counter := 1
	for {
		timer := time.NewTimer(d.SleepDuration(interval))
		select {
		case <-ctx.Done():
			timer.Stop()
			d.log.Info("live mode stopped", "events", counter-1)
			return nil
		case <-timer.C:
		}

		ev, err := d.nextEvent(typeIDs)
		if err != nil {
			if errors.Is(err, ErrNotConnected) {
				return err
			}
			d.log.Error("generating live event", "error", err)
			continue
		}

		if _, err := d.store.InsertLiveEvent(ev); err != nil {
			if errors.Is(err, ErrNotConnected) {
				return err
			}
			d.log.Error("inserting live event", "error", err)
			continue
		}

		d.printSummary(counter, ev)
		counter++
	}
}

// loadPool loads the working set of recently active files, fabricating a
// small initial pool when the database has none.
func (d *LiveDriver) loadPool() error {
	pool, err := d.store.RecentFiles(livePoolLimit)
	if err != nil {
		return fmt.Errorf("loading file pool: %w", err)
	}

	if len(pool) == 0 {
		d.log.Info("no existing files, bootstrapping pool", "size", liveBootstrapSize)
		for i := 0; i < liveBootstrapSize; i++ {
			pattern := d.synth.RandomPattern()
			path, name, dir := d.synth.GeneratePath(pattern)
			inode := d.synth.Inode()
			id, err := d.store.InsertFile(inode)
			if err != nil {
				return fmt.Errorf("bootstrapping file pool: %w", err)
			}
			pool = append(pool, PoolFile{FileID: id, Inode: inode, Path: path, Name: name, Dir: dir})
		}
	}

	d.pool = pool
	return nil
}

// nextEvent produces one event at the current wall-clock time, biased by
// the current activity intensity. A create targets a brand-new file; every
// other type targets a uniformly chosen pool member.
func (d *LiveDriver) nextEvent(typeIDs map[string]int64) (Event, error) {
	now := d.clock.Now()
	et := pickEventType(d.rng, typeTableFor(Intensity(now)))

	var pf *PoolFile
	if et == Create || len(d.pool) == 0 {
		pattern := d.synth.RandomPattern()
		path, name, dir := d.synth.GeneratePath(pattern)
		inode := d.synth.Inode()
		id, err := d.store.InsertFile(inode)
		if err != nil {
			return Event{}, fmt.Errorf("creating file: %w", err)
		}
		d.pool = append(d.pool, PoolFile{FileID: id, Inode: inode, Path: path, Name: name, Dir: dir})
		pf = &d.pool[len(d.pool)-1]
	} else {
		pf = &d.pool[d.rng.Intn(len(d.pool))]
	}

	if et == Move {
		pattern := d.synth.RandomPattern()
		pf.Path, pf.Name, pf.Dir = d.synth.GeneratePath(pattern)
	}

	cur := nextMetrics(d.synth, d.rng, et, pf.Path, d.metrics[pf.FileID])
	d.metrics[pf.FileID] = cur

	typeID, ok := typeIDs[et.Code()]
	if !ok {
		return Event{}, &GenerationError{Msg: fmt.Sprintf("no event_types row for %q", et.Code())}
	}

	ev := Event{
		Timestamp: now.Unix(),
		Type:      et,
		TypeID:    typeID,
		FileID:    pf.FileID,
		Inode:     pf.Inode,
		Path:      pf.Path,
		Name:      pf.Name,
		Dir:       pf.Dir,
	}
	if cur != nil {
		m := *cur
		ev.Metrics = &m
	}
	return ev, nil
}

func (d *LiveDriver) printSummary(counter int, ev Event) {
	size := "N/A"
	if ev.Metrics != nil {
		size = fmt.Sprintf("%dB", ev.Metrics.Size)
	}
	fmt.Fprintf(d.out, "[%s] #%03d %-7s %-30s (%s)\n",
		d.clock.Now().Format("15:04:05"), counter, ev.Type.Code(), ev.Path, size)
}
