package vault

import (
	"context"
	"fmt"

	"cctop-gen/internal/config"
)

// NewSinkFromConfig creates a Sink implementation based on the vault config
// type.
func NewSinkFromConfig(ctx context.Context, cfg config.VaultConfig) (Sink, error) {
	switch cfg.Type {
	case "memory":
		return NewMemorySink(), nil
	case "filesystem":
		if cfg.FSRoot == "" {
			return nil, fmt.Errorf("filesystem vault requires fs_root to be set")
		}
		return NewFileSystemSink(cfg.FSRoot)
	case "s3":
		if cfg.S3Bucket == "" {
			return nil, fmt.Errorf("s3 vault requires s3_bucket to be set")
		}
		return NewS3Sink(ctx, cfg)
	default:
		return nil, fmt.Errorf("unknown vault type: %s", cfg.Type)
	}
}
