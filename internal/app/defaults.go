package app

import (
	"fmt"
	"os"
	"path/filepath"
)

// GetDefaults returns application default paths, checking environment
// variables first.
// Environment variables:
//   - CCTOP_CONFIG_PATH: config file location (default: ~/.config/cctop-gen.toml)
//   - CCTOP_HOME: workspace root (default: ./.cctop)
func GetDefaults() (map[string]string, error) {
	configPath, err := getConfigPath()
	if err != nil {
		return nil, err
	}

	workspaceRoot, err := getWorkspaceRoot()
	if err != nil {
		return nil, err
	}

	return map[string]string{
		"config_path":    configPath,
		"workspace_root": workspaceRoot,
	}, nil
}

func getConfigPath() (string, error) {
	if path := os.Getenv("CCTOP_CONFIG_PATH"); path != "" {
		return path, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return filepath.Join(homeDir, ".config", "cctop-gen.toml"), nil
}

// getWorkspaceRoot returns the workspace root, checking CCTOP_HOME first,
// then falling back to .cctop under the current directory, the layout the
// CLI under test expects.
func getWorkspaceRoot() (string, error) {
	if path := os.Getenv("CCTOP_HOME"); path != "" {
		return path, nil
	}

	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("cannot determine working directory: %w", err)
	}
	return filepath.Join(cwd, ".cctop"), nil
}
