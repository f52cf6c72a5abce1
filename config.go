package wpmigrate

import "github.com/goliatone/go-wpmigrate/internal/runtimeconfig"

var (
	ErrDefaultCategoryRequired    = runtimeconfig.ErrDefaultCategoryRequired
	ErrLegacyURLTemplateInvalid   = runtimeconfig.ErrLegacyURLTemplateInvalid
	ErrLimitInvalid               = runtimeconfig.ErrLimitInvalid
	ErrSlugStrategyUnknown        = runtimeconfig.ErrSlugStrategyUnknown
	ErrRenderEngineUnknown        = runtimeconfig.ErrRenderEngineUnknown
	ErrRenderDialectUnknown       = runtimeconfig.ErrRenderDialectUnknown
	ErrRenderTableRequired        = runtimeconfig.ErrRenderTableRequired
	ErrInvalidRecordPolicyUnknown = runtimeconfig.ErrInvalidRecordPolicyUnknown
	ErrLoggingProviderUnknown     = runtimeconfig.ErrLoggingProviderUnknown
	ErrLoggingLevelInvalid        = runtimeconfig.ErrLoggingLevelInvalid
	ErrLoggingFormatInvalid       = runtimeconfig.ErrLoggingFormatInvalid
)

type (
	Config        = runtimeconfig.Config
	PostsConfig   = runtimeconfig.PostsConfig
	RenderConfig  = runtimeconfig.RenderConfig
	ErrorsConfig  = runtimeconfig.ErrorsConfig
	OutputConfig  = runtimeconfig.OutputConfig
	LoggingConfig = runtimeconfig.LoggingConfig
)

const (
	EngineText             = runtimeconfig.EngineText
	EngineBun              = runtimeconfig.EngineBun
	DialectPostgres        = runtimeconfig.DialectPostgres
	DialectSQLite          = runtimeconfig.DialectSQLite
	OnInvalidAbort         = runtimeconfig.OnInvalidAbort
	OnInvalidSkip          = runtimeconfig.OnInvalidSkip
	SlugStrategyVietnamese = runtimeconfig.SlugStrategyVietnamese
	SlugStrategyGoSlug     = runtimeconfig.SlugStrategyGoSlug
)

func DefaultConfig() Config {
	return runtimeconfig.DefaultConfig()
}

// ConfigFromEnv overlays WPMIGRATE_* environment variables, after loading the
// optional env files, on top of base.
func ConfigFromEnv(base Config, envFiles ...string) (Config, error) {
	return runtimeconfig.FromEnv(base, envFiles...)
}
