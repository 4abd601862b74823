package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config is the main configuration for cctop-gen. Every field has a usable
// default, so running without a config file is fully supported.
type Config struct {
	WorkspaceRoot string          `toml:"workspace_root"`
	Database      DatabaseConfig  `toml:"database"`
	Generator     GeneratorConfig `toml:"generator"`
	Live          LiveConfig      `toml:"live"`
	Vault         VaultConfig     `toml:"vault"`
}

// DatabaseConfig selects the storage backend.
// This uses a tagged union pattern - the Type field determines which other
// fields are relevant.
type DatabaseConfig struct {
	Type string `toml:"type"`           // "sqlite" or "memory"
	Path string `toml:"path,omitempty"` // only used for type=sqlite
}

// GeneratorConfig holds bulk-generation defaults; flags override them.
type GeneratorConfig struct {
	Files         int   `toml:"files"`
	Days          int   `toml:"days"`
	EventsPerFile int   `toml:"events_per_file"`
	Seed          int64 `toml:"seed"` // 0 means time-based
}

// LiveConfig holds live-mode defaults.
type LiveConfig struct {
	Interval float64 `toml:"interval"` // mean seconds between events
}

// VaultConfig selects the snapshot sink backend.
// This uses a tagged union pattern - the Type field determines which other
// fields are relevant.
type VaultConfig struct {
	Type string `toml:"type"` // "memory", "filesystem", or "s3"

	// Filesystem-specific (only used when Type == "filesystem")
	FSRoot string `toml:"fs_root,omitempty"`

	// S3-specific (only used when Type == "s3")
	S3Bucket    string `toml:"s3_bucket,omitempty"`
	S3Prefix    string `toml:"s3_prefix,omitempty"`
	S3Region    string `toml:"s3_region,omitempty"`
	S3Endpoint  string `toml:"s3_endpoint,omitempty"`  // for MinIO/LocalStack
	S3PathStyle bool   `toml:"s3_path_style,omitempty"` // required for MinIO
}

// NewConfig creates a Config with defaults rooted at the given workspace.
func NewConfig(workspaceRoot string) *Config {
	return &Config{
		WorkspaceRoot: workspaceRoot,
		Database: DatabaseConfig{
			Type: "sqlite",
			Path: filepath.Join(workspaceRoot, "data", "activity.db"),
		},
		Generator: GeneratorConfig{
			Files:         100,
			Days:          30,
			EventsPerFile: 10,
		},
		Live: LiveConfig{Interval: 2.0},
		Vault: VaultConfig{
			Type:   "filesystem",
			FSRoot: workspaceRoot,
		},
	}
}

// Manager handles reading and writing configuration.
type Manager struct{}

// Read decodes a Config from the provided reader.
func (m *Manager) Read(r io.Reader) (*Config, error) {
	var cfg Config
	if _, err := toml.NewDecoder(r).Decode(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	return &cfg, nil
}

// Write encodes a Config to the provided writer.
func (m *Manager) Write(w io.Writer, cfg *Config) error {
	if err := toml.NewEncoder(w).Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	return nil
}

// ReadFromFile reads a Config from the specified file path. A missing file
// is not an error: the second return value reports whether the file existed.
func ReadFromFile(path string) (*Config, bool, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to open config: %w", err)
	}
	defer f.Close()

	m := &Manager{}
	cfg, err := m.Read(f)
	if err != nil {
		return nil, true, err
	}
	return cfg, true, nil
}

// Init writes the given config to path, refusing to overwrite an existing
// file.
func Init(path string, cfg *Config) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists: %s", path)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	defer f.Close()

	m := &Manager{}
	return m.Write(f, cfg)
}
