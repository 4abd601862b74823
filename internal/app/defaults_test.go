package app

import (
	"path/filepath"
	"strings"
	"testing"
)

func TestGetDefaults_EnvOverrides(t *testing.T) {
	t.Setenv("CCTOP_CONFIG_PATH", "/etc/cctop/custom.toml")
	t.Setenv("CCTOP_HOME", "/srv/cctop")

	defaults, err := GetDefaults()
	if err != nil {
		t.Fatalf("GetDefaults() error = %v", err)
	}

	if defaults["config_path"] != "/etc/cctop/custom.toml" {
		t.Errorf("config_path = %q, want %q", defaults["config_path"], "/etc/cctop/custom.toml")
	}
	if defaults["workspace_root"] != "/srv/cctop" {
		t.Errorf("workspace_root = %q, want %q", defaults["workspace_root"], "/srv/cctop")
	}
}

func TestGetDefaults_Fallbacks(t *testing.T) {
	t.Setenv("CCTOP_CONFIG_PATH", "")
	t.Setenv("CCTOP_HOME", "")

	defaults, err := GetDefaults()
	if err != nil {
		t.Fatalf("GetDefaults() error = %v", err)
	}

	if !strings.HasSuffix(defaults["config_path"], filepath.Join(".config", "cctop-gen.toml")) {
		t.Errorf("config_path = %q, want ~/.config/cctop-gen.toml", defaults["config_path"])
	}
	if filepath.Base(defaults["workspace_root"]) != ".cctop" {
		t.Errorf("workspace_root = %q, want .cctop under cwd", defaults["workspace_root"])
	}
}
