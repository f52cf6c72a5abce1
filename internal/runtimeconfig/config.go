package runtimeconfig

import (
	"errors"
	"fmt"
	"strings"
)

var ErrDefaultCategoryRequired = errors.New("wpmigrate config: default category is required")
var ErrLegacyURLTemplateInvalid = errors.New("wpmigrate config: legacy url template must contain {slug}")
var ErrLimitInvalid = errors.New("wpmigrate config: length limits must be positive")
var ErrSlugStrategyUnknown = errors.New("wpmigrate config: slug strategy is invalid")
var ErrRenderEngineUnknown = errors.New("wpmigrate config: render engine is invalid")
var ErrRenderDialectUnknown = errors.New("wpmigrate config: render dialect is invalid")
var ErrRenderTableRequired = errors.New("wpmigrate config: render table is required")
var ErrInvalidRecordPolicyUnknown = errors.New("wpmigrate config: invalid record policy is invalid")
var ErrLoggingProviderUnknown = errors.New("wpmigrate config: logging provider is invalid")
var ErrLoggingLevelInvalid = errors.New("wpmigrate config: logging level is invalid")
var ErrLoggingFormatInvalid = errors.New("wpmigrate config: logging format is invalid")

// SlugPlaceholder is substituted with the final slug in the legacy URL template.
const SlugPlaceholder = "{slug}"

const (
	SlugStrategyVietnamese = "vietnamese"
	SlugStrategyGoSlug     = "goslug"
)

const (
	EngineText = "text"
	EngineBun  = "bun"
)

const (
	DialectPostgres = "postgres"
	DialectSQLite   = "sqlite"
)

const (
	// OnInvalidAbort stops the run at the first record that cannot be normalized.
	OnInvalidAbort = "abort"
	// OnInvalidSkip drops the record, logs it and keeps going.
	OnInvalidSkip = "skip"
)

// Config aggregates every tunable of a migration run.
type Config struct {
	Posts   PostsConfig
	Render  RenderConfig
	Errors  ErrorsConfig
	Output  OutputConfig
	Logging LoggingConfig
}

// PostsConfig controls extraction filters and per-record normalization.
type PostsConfig struct {
	DefaultCategory      string
	LegacyURLTemplate    string
	ExcerptLimit         int
	ExcerptFallbackLimit int
	MetaDescriptionLimit int
	PublishedOnly        bool
	StripBlockComments   bool
	SlugStrategy         string
}

// RenderConfig selects how statements are produced.
type RenderConfig struct {
	Engine  string
	Dialect string
	Table   string
}

// ErrorsConfig decides what happens to records that fail normalization.
type ErrorsConfig struct {
	OnInvalidRecord string
}

// OutputConfig carries credentials for remote sinks. Local paths and stdout
// need no configuration.
type OutputConfig struct {
	S3Endpoint  string
	S3Region    string
	S3AccessKey string
	S3SecretKey string
}

// LoggingConfig captures provider-specific options for runtime logging.
type LoggingConfig struct {
	Provider  string
	Level     string
	Format    string
	AddSource bool
	Focus     []string
}

// DefaultConfig returns the settings used for the vexim.vn blog import.
func DefaultConfig() Config {
	return Config{
		Posts: PostsConfig{
			DefaultCategory:      "Tin tức",
			LegacyURLTemplate:    "https://vexim.vn/blog/" + SlugPlaceholder,
			ExcerptLimit:         500,
			ExcerptFallbackLimit: 200,
			MetaDescriptionLimit: 160,
			SlugStrategy:         SlugStrategyVietnamese,
		},
		Render: RenderConfig{
			Engine:  EngineText,
			Dialect: DialectPostgres,
			Table:   "public.posts",
		},
		Errors: ErrorsConfig{
			OnInvalidRecord: OnInvalidAbort,
		},
		Logging: LoggingConfig{
			Provider: "console",
			Level:    "info",
		},
	}
}

// Validate performs consistency checks before a run starts.
func (cfg Config) Validate() error {
	if strings.TrimSpace(cfg.Posts.DefaultCategory) == "" {
		return ErrDefaultCategoryRequired
	}
	if !strings.Contains(cfg.Posts.LegacyURLTemplate, SlugPlaceholder) {
		return fmt.Errorf("%w: %q", ErrLegacyURLTemplateInvalid, cfg.Posts.LegacyURLTemplate)
	}
	if cfg.Posts.ExcerptLimit <= 0 {
		return fmt.Errorf("%w: excerpt", ErrLimitInvalid)
	}
	if cfg.Posts.ExcerptFallbackLimit <= 0 {
		return fmt.Errorf("%w: excerpt fallback", ErrLimitInvalid)
	}
	if cfg.Posts.MetaDescriptionLimit <= 0 {
		return fmt.Errorf("%w: meta description", ErrLimitInvalid)
	}
	switch normalize(cfg.Posts.SlugStrategy) {
	case SlugStrategyVietnamese, SlugStrategyGoSlug:
	default:
		return fmt.Errorf("%w: %s", ErrSlugStrategyUnknown, cfg.Posts.SlugStrategy)
	}
	switch normalize(cfg.Render.Engine) {
	case EngineText, EngineBun:
	default:
		return fmt.Errorf("%w: %s", ErrRenderEngineUnknown, cfg.Render.Engine)
	}
	switch normalize(cfg.Render.Dialect) {
	case DialectPostgres, DialectSQLite:
	default:
		return fmt.Errorf("%w: %s", ErrRenderDialectUnknown, cfg.Render.Dialect)
	}
	if strings.TrimSpace(cfg.Render.Table) == "" {
		return ErrRenderTableRequired
	}
	switch normalize(cfg.Errors.OnInvalidRecord) {
	case OnInvalidAbort, OnInvalidSkip:
	default:
		return fmt.Errorf("%w: %s", ErrInvalidRecordPolicyUnknown, cfg.Errors.OnInvalidRecord)
	}

	provider := normalize(cfg.Logging.Provider)
	if !isSupportedProvider(provider) {
		return fmt.Errorf("%w: %s", ErrLoggingProviderUnknown, cfg.Logging.Provider)
	}
	if level := strings.TrimSpace(cfg.Logging.Level); level != "" && !isSupportedLevel(level) {
		return fmt.Errorf("%w: %s", ErrLoggingLevelInvalid, level)
	}
	if provider == "gologger" {
		if format := strings.TrimSpace(cfg.Logging.Format); format != "" && !isSupportedFormat(format) {
			return fmt.Errorf("%w: %s", ErrLoggingFormatInvalid, format)
		}
	}
	return nil
}

// SkipInvalidRecords reports whether record errors are tolerated.
func (cfg Config) SkipInvalidRecords() bool {
	return normalize(cfg.Errors.OnInvalidRecord) == OnInvalidSkip
}

func normalize(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}

func isSupportedProvider(provider string) bool {
	switch provider {
	case "", "console", "gologger":
		return true
	default:
		return false
	}
}

func isSupportedLevel(level string) bool {
	switch normalize(level) {
	case "trace", "debug", "info", "warn", "warning", "error", "fatal":
		return true
	default:
		return false
	}
}

func isSupportedFormat(format string) bool {
	switch normalize(format) {
	case "json", "console", "pretty":
		return true
	default:
		return false
	}
}
