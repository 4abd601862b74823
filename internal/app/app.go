package app

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"cctop-gen/internal/config"
	"cctop-gen/internal/database"
	"cctop-gen/internal/export"
	"cctop-gen/internal/gen"
	"cctop-gen/internal/vault"
)

// App is the application layer between the CLI and the generation core. It
// constructs all dependencies from config, exposes high-level operations,
// and manages the database and log-file lifecycle on Close.
type App struct {
	cfg     *config.Config
	store   *database.SQLiteStore
	logger  gen.Logger
	logFile *os.File
	clock   gen.Clock
	rng     *rand.Rand
	synth   *gen.Synthesizer
	runID   string
}

// New creates a fully wired App. dbPathOverride, when non-empty, replaces
// the configured database path and re-roots the workspace around it (the
// workspace root is the parent of the database's data/ directory). The
// caller must call Close when done.
func New(dbPathOverride string) (*App, error) {
	defaults, err := GetDefaults()
	if err != nil {
		return nil, fmt.Errorf("getting defaults: %w", err)
	}

	cfg, found, err := config.ReadFromFile(defaults["config_path"])
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	if !found {
		cfg = config.NewConfig(defaults["workspace_root"])
	}

	if dbPathOverride != "" {
		absPath, err := filepath.Abs(dbPathOverride)
		if err != nil {
			return nil, fmt.Errorf("resolving database path: %w", err)
		}
		cfg.Database = config.DatabaseConfig{Type: "sqlite", Path: absPath}
		cfg.WorkspaceRoot = filepath.Dir(filepath.Dir(absPath))
	}
	if cfg.WorkspaceRoot == "" {
		cfg.WorkspaceRoot = defaults["workspace_root"]
	}
	if cfg.Vault.Type == "filesystem" && cfg.Vault.FSRoot == "" {
		cfg.Vault.FSRoot = cfg.WorkspaceRoot
	}

	if err := EnsureWorkspace(cfg.WorkspaceRoot); err != nil {
		return nil, err
	}

	store, err := database.NewStoreFromConfig(cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("creating store: %w", err)
	}

	if err := store.InitSchema(); err != nil {
		store.Close()
		return nil, fmt.Errorf("initializing schema: %w", err)
	}

	runID := uuid.New().String()
	logger, logFile, err := newLogger(filepath.Join(cfg.WorkspaceRoot, "logs"), runID)
	if err != nil {
		store.Close()
		return nil, fmt.Errorf("creating logger: %w", err)
	}

	clock := gen.RealClock{}
	seed := cfg.Generator.Seed
	if seed == 0 {
		seed = clock.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	return &App{
		cfg:     cfg,
		store:   store,
		logger:  &slogAdapter{l: logger},
		logFile: logFile,
		clock:   clock,
		rng:     rng,
		synth:   gen.NewSynthesizer(rng),
		runID:   runID,
	}, nil
}

// Config returns the effective configuration.
func (a *App) Config() *config.Config { return a.cfg }

// Generate bulk-populates the database and returns the number of events
// persisted.
func (a *App) Generate(p gen.Params) (int, error) {
	g := gen.NewGenerator(a.store, a.synth, a.rng, a.clock, a.logger)
	return g.Run(p)
}

// Live runs the live-mode driver until ctx is cancelled.
func (a *App) Live(ctx context.Context, interval float64) error {
	if interval <= 0 {
		interval = a.cfg.Live.Interval
	}
	d := gen.NewLiveDriver(a.store, a.synth, a.rng, a.clock, a.logger, os.Stdout)
	return d.Run(ctx, interval)
}

// Stats collects summary statistics from the store.
func (a *App) Stats() (*database.Stats, error) {
	return a.store.Stats()
}

// ExportSample writes the JSON sample document to path.
func (a *App) ExportSample(path string, limit int) error {
	doc, err := export.Build(a.store, limit)
	if err != nil {
		return err
	}
	return export.WriteFile(path, doc)
}

// Snapshot copies the database with VACUUM INTO and uploads the copy to
// the configured vault. An empty name gets a timestamped default.
func (a *App) Snapshot(ctx context.Context, name string) error {
	if name == "" {
		name = fmt.Sprintf("activity-%s.db", a.clock.Now().UTC().Format("20060102T150405Z"))
	}

	sink, err := vault.NewSinkFromConfig(ctx, a.cfg.Vault)
	if err != nil {
		return fmt.Errorf("creating vault: %w", err)
	}

	tmp, err := os.CreateTemp("", "cctop-snapshot-*.db")
	if err != nil {
		return fmt.Errorf("creating temp file for snapshot: %w", err)
	}
	tmpPath := tmp.Name()
	tmp.Close()
	os.Remove(tmpPath) // VACUUM INTO refuses to overwrite an existing file
	defer os.Remove(tmpPath)

	if err := a.store.BackupTo(tmpPath); err != nil {
		return err
	}

	f, err := os.Open(tmpPath)
	if err != nil {
		return fmt.Errorf("opening snapshot for upload: %w", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return fmt.Errorf("stat snapshot: %w", err)
	}

	if err := sink.PutSnapshot(ctx, name, f, info.Size()); err != nil {
		return fmt.Errorf("uploading snapshot: %w", err)
	}

	a.logger.Info("snapshot uploaded", "name", name, "bytes", info.Size())
	return nil
}

// Close releases the database and the log file.
func (a *App) Close() error {
	var firstErr error
	if err := a.store.Close(); err != nil {
		firstErr = fmt.Errorf("closing database: %w", err)
	}
	if a.logFile != nil {
		a.logFile.Close()
	}
	return firstErr
}
