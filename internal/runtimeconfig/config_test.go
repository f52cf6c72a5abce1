package runtimeconfig_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/goliatone/go-wpmigrate/internal/runtimeconfig"
)

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() returned unexpected error: %v", err)
	}
	if cfg.Posts.DefaultCategory != "Tin tức" {
		t.Fatalf("unexpected default category %q", cfg.Posts.DefaultCategory)
	}
	if cfg.Render.Table != "public.posts" {
		t.Fatalf("unexpected default table %q", cfg.Render.Table)
	}
	if cfg.SkipInvalidRecords() {
		t.Fatalf("expected abort policy by default")
	}
}

func TestConfigValidate_Errors(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*runtimeconfig.Config)
		want   error
	}{
		{"blank category", func(c *runtimeconfig.Config) { c.Posts.DefaultCategory = "  " }, runtimeconfig.ErrDefaultCategoryRequired},
		{"template without slug", func(c *runtimeconfig.Config) { c.Posts.LegacyURLTemplate = "https://example.com/blog" }, runtimeconfig.ErrLegacyURLTemplateInvalid},
		{"zero excerpt", func(c *runtimeconfig.Config) { c.Posts.ExcerptLimit = 0 }, runtimeconfig.ErrLimitInvalid},
		{"negative fallback", func(c *runtimeconfig.Config) { c.Posts.ExcerptFallbackLimit = -1 }, runtimeconfig.ErrLimitInvalid},
		{"zero meta", func(c *runtimeconfig.Config) { c.Posts.MetaDescriptionLimit = 0 }, runtimeconfig.ErrLimitInvalid},
		{"slug strategy", func(c *runtimeconfig.Config) { c.Posts.SlugStrategy = "ascii" }, runtimeconfig.ErrSlugStrategyUnknown},
		{"engine", func(c *runtimeconfig.Config) { c.Render.Engine = "gorm" }, runtimeconfig.ErrRenderEngineUnknown},
		{"dialect", func(c *runtimeconfig.Config) { c.Render.Dialect = "mysql" }, runtimeconfig.ErrRenderDialectUnknown},
		{"table", func(c *runtimeconfig.Config) { c.Render.Table = "" }, runtimeconfig.ErrRenderTableRequired},
		{"policy", func(c *runtimeconfig.Config) { c.Errors.OnInvalidRecord = "retry" }, runtimeconfig.ErrInvalidRecordPolicyUnknown},
		{"provider", func(c *runtimeconfig.Config) { c.Logging.Provider = "syslog" }, runtimeconfig.ErrLoggingProviderUnknown},
		{"level", func(c *runtimeconfig.Config) { c.Logging.Level = "loud" }, runtimeconfig.ErrLoggingLevelInvalid},
		{"format", func(c *runtimeconfig.Config) {
			c.Logging.Provider = "gologger"
			c.Logging.Format = "xml"
		}, runtimeconfig.ErrLoggingFormatInvalid},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := runtimeconfig.DefaultConfig()
			tc.mutate(&cfg)
			if err := cfg.Validate(); !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}
}

func TestConfigValidate_NormalizesCase(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Render.Engine = " BUN "
	cfg.Render.Dialect = "SQLite"
	cfg.Errors.OnInvalidRecord = "Skip"

	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() returned unexpected error: %v", err)
	}
	if !cfg.SkipInvalidRecords() {
		t.Fatalf("expected skip policy to be recognised")
	}
}

func TestFromEnv_OverlaysVariables(t *testing.T) {
	t.Setenv("WPMIGRATE_DEFAULT_CATEGORY", "News")
	t.Setenv("WPMIGRATE_DIALECT", "sqlite")
	t.Setenv("WPMIGRATE_EXCERPT_LIMIT", "320")
	t.Setenv("WPMIGRATE_PUBLISHED_ONLY", "true")
	t.Setenv("WPMIGRATE_LOG_FOCUS", "wpmigrate.extract,wpmigrate.render")

	cfg, err := runtimeconfig.FromEnv(runtimeconfig.DefaultConfig())
	if err != nil {
		t.Fatalf("FromEnv() error: %v", err)
	}
	if cfg.Posts.DefaultCategory != "News" {
		t.Fatalf("expected category override, got %q", cfg.Posts.DefaultCategory)
	}
	if cfg.Render.Dialect != runtimeconfig.DialectSQLite {
		t.Fatalf("expected sqlite dialect, got %q", cfg.Render.Dialect)
	}
	if cfg.Posts.ExcerptLimit != 320 {
		t.Fatalf("expected excerpt limit 320, got %d", cfg.Posts.ExcerptLimit)
	}
	if !cfg.Posts.PublishedOnly {
		t.Fatalf("expected published only to be enabled")
	}
	if len(cfg.Logging.Focus) != 2 {
		t.Fatalf("expected two focus entries, got %v", cfg.Logging.Focus)
	}
	if cfg.Render.Table != "public.posts" {
		t.Fatalf("expected untouched default table, got %q", cfg.Render.Table)
	}
}

func TestFromEnv_LoadsEnvFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "migrate.env")
	content := "WPMIGRATE_LEGACY_URL_TEMPLATE=https://example.com/archive/{slug}\nWPMIGRATE_ON_INVALID_RECORD=skip\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write env file: %v", err)
	}
	// godotenv never overrides variables that are already set, register
	// cleanup through Setenv so the loaded values do not leak.
	t.Setenv("WPMIGRATE_LEGACY_URL_TEMPLATE", "")
	t.Setenv("WPMIGRATE_ON_INVALID_RECORD", "")
	os.Unsetenv("WPMIGRATE_LEGACY_URL_TEMPLATE")
	os.Unsetenv("WPMIGRATE_ON_INVALID_RECORD")

	cfg, err := runtimeconfig.FromEnv(runtimeconfig.DefaultConfig(), path)
	if err != nil {
		t.Fatalf("FromEnv() error: %v", err)
	}
	if cfg.Posts.LegacyURLTemplate != "https://example.com/archive/{slug}" {
		t.Fatalf("unexpected template %q", cfg.Posts.LegacyURLTemplate)
	}
	if !cfg.SkipInvalidRecords() {
		t.Fatalf("expected skip policy from env file")
	}
}

func TestFromEnv_MissingFileIgnored(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "absent.env")
	if _, err := runtimeconfig.FromEnv(runtimeconfig.DefaultConfig(), missing); err != nil {
		t.Fatalf("expected missing env file to be ignored, got %v", err)
	}
}
