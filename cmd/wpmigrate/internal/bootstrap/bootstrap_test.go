package bootstrap

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/goliatone/go-wpmigrate"
	"github.com/goliatone/go-wpmigrate/pkg/interfaces"
)

func TestResolveConfigLayersEnvAndOptions(t *testing.T) {
	t.Setenv("WPMIGRATE_ENGINE", "bun")
	t.Setenv("WPMIGRATE_TABLE", "posts_env")

	publishedOnly := true
	cfg, err := ResolveConfig(Options{
		Table:         "posts_flag",
		Dialect:       " sqlite ",
		PublishedOnly: &publishedOnly,
	})
	if err != nil {
		t.Fatalf("ResolveConfig returned error: %v", err)
	}
	if cfg.Render.Engine != wpmigrate.EngineBun {
		t.Fatalf("expected engine from environment, got %q", cfg.Render.Engine)
	}
	if cfg.Render.Table != "posts_flag" {
		t.Fatalf("expected option to override environment, got %q", cfg.Render.Table)
	}
	if cfg.Render.Dialect != wpmigrate.DialectSQLite {
		t.Fatalf("expected trimmed dialect, got %q", cfg.Render.Dialect)
	}
	if !cfg.Posts.PublishedOnly {
		t.Fatal("expected published only option applied")
	}
	if cfg.Posts.DefaultCategory != "Tin tức" {
		t.Fatalf("expected default category kept, got %q", cfg.Posts.DefaultCategory)
	}
}

func TestResolveConfigReadsEnvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	if err := os.WriteFile(path, []byte("WPMIGRATE_DEFAULT_CATEGORY=Tin thị trường\n"), 0o644); err != nil {
		t.Fatalf("write env file: %v", err)
	}
	t.Setenv("WPMIGRATE_DEFAULT_CATEGORY", "")
	os.Unsetenv("WPMIGRATE_DEFAULT_CATEGORY")

	cfg, err := ResolveConfig(Options{EnvFile: path})
	if err != nil {
		t.Fatalf("ResolveConfig returned error: %v", err)
	}
	if cfg.Posts.DefaultCategory != "Tin thị trường" {
		t.Fatalf("expected category from env file, got %q", cfg.Posts.DefaultCategory)
	}
}

func TestBuildModuleWiresService(t *testing.T) {
	var stdout, logs bytes.Buffer
	module, err := BuildModule(Options{Stdout: &stdout, LogWriter: &logs})
	if err != nil {
		t.Fatalf("BuildModule returned error: %v", err)
	}
	if module.Service == nil || module.Logger == nil {
		t.Fatalf("expected service and logger, got %+v", module)
	}

	sql, result, err := module.Service.Convert(context.Background(), strings.NewReader(`<?xml version="1.0"?>
<rss version="2.0" xmlns:wp="http://wordpress.org/export/1.2/"><channel><title>t</title></channel></rss>`))
	if err != nil {
		t.Fatalf("Convert returned error: %v", err)
	}
	if sql != "" || result.Converted != 0 {
		t.Fatalf("expected empty conversion, got %q %+v", sql, result)
	}
	var _ interfaces.MigrationService = module.Service
}

func TestBuildModuleRejectsInvalidOptions(t *testing.T) {
	_, err := BuildModule(Options{OnInvalidRecord: "retry"})
	if !errors.Is(err, wpmigrate.ErrInvalidRecordPolicyUnknown) {
		t.Fatalf("expected ErrInvalidRecordPolicyUnknown, got %v", err)
	}
}
