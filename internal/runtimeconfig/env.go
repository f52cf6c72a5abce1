package runtimeconfig

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// EnvPrefix namespaces every environment override.
const EnvPrefix = "WPMIGRATE"

// envOverrides mirrors the configurable fields. Pointer and empty values mean
// "not set" so defaults survive when a variable is absent.
type envOverrides struct {
	DefaultCategory      string   `envconfig:"DEFAULT_CATEGORY"`
	LegacyURLTemplate    string   `envconfig:"LEGACY_URL_TEMPLATE"`
	ExcerptLimit         int      `envconfig:"EXCERPT_LIMIT"`
	ExcerptFallbackLimit int      `envconfig:"EXCERPT_FALLBACK_LIMIT"`
	MetaDescriptionLimit int      `envconfig:"META_DESCRIPTION_LIMIT"`
	PublishedOnly        *bool    `envconfig:"PUBLISHED_ONLY"`
	StripBlockComments   *bool    `envconfig:"STRIP_BLOCK_COMMENTS"`
	SlugStrategy         string   `envconfig:"SLUG_STRATEGY"`
	Engine               string   `envconfig:"ENGINE"`
	Dialect              string   `envconfig:"DIALECT"`
	Table                string   `envconfig:"TABLE"`
	OnInvalidRecord      string   `envconfig:"ON_INVALID_RECORD"`
	S3Endpoint           string   `envconfig:"S3_ENDPOINT"`
	S3Region             string   `envconfig:"S3_REGION"`
	S3AccessKey          string   `envconfig:"S3_ACCESS_KEY"`
	S3SecretKey          string   `envconfig:"S3_SECRET_KEY"`
	LogProvider          string   `envconfig:"LOG_PROVIDER"`
	LogLevel             string   `envconfig:"LOG_LEVEL"`
	LogFormat            string   `envconfig:"LOG_FORMAT"`
	LogFocus             []string `envconfig:"LOG_FOCUS"`
}

// FromEnv overlays WPMIGRATE_* variables onto base. When envFiles are given
// they are loaded first with godotenv; a missing file is not an error so a
// default ".env" can always be passed. Variables already present in the
// process environment win over file values.
func FromEnv(base Config, envFiles ...string) (Config, error) {
	for _, file := range envFiles {
		file = strings.TrimSpace(file)
		if file == "" {
			continue
		}
		if err := godotenv.Load(file); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return base, fmt.Errorf("load env file %s: %w", file, err)
		}
	}

	var env envOverrides
	if err := envconfig.Process(EnvPrefix, &env); err != nil {
		return base, fmt.Errorf("process environment: %w", err)
	}

	cfg := base
	setString(&cfg.Posts.DefaultCategory, env.DefaultCategory)
	setString(&cfg.Posts.LegacyURLTemplate, env.LegacyURLTemplate)
	setInt(&cfg.Posts.ExcerptLimit, env.ExcerptLimit)
	setInt(&cfg.Posts.ExcerptFallbackLimit, env.ExcerptFallbackLimit)
	setInt(&cfg.Posts.MetaDescriptionLimit, env.MetaDescriptionLimit)
	setBool(&cfg.Posts.PublishedOnly, env.PublishedOnly)
	setBool(&cfg.Posts.StripBlockComments, env.StripBlockComments)
	setString(&cfg.Posts.SlugStrategy, env.SlugStrategy)
	setString(&cfg.Render.Engine, env.Engine)
	setString(&cfg.Render.Dialect, env.Dialect)
	setString(&cfg.Render.Table, env.Table)
	setString(&cfg.Errors.OnInvalidRecord, env.OnInvalidRecord)
	setString(&cfg.Output.S3Endpoint, env.S3Endpoint)
	setString(&cfg.Output.S3Region, env.S3Region)
	setString(&cfg.Output.S3AccessKey, env.S3AccessKey)
	setString(&cfg.Output.S3SecretKey, env.S3SecretKey)
	setString(&cfg.Logging.Provider, env.LogProvider)
	setString(&cfg.Logging.Level, env.LogLevel)
	setString(&cfg.Logging.Format, env.LogFormat)
	if len(env.LogFocus) > 0 {
		cfg.Logging.Focus = append([]string(nil), env.LogFocus...)
	}
	return cfg, nil
}

func setString(dst *string, value string) {
	if trimmed := strings.TrimSpace(value); trimmed != "" {
		*dst = trimmed
	}
}

func setInt(dst *int, value int) {
	if value != 0 {
		*dst = value
	}
}

func setBool(dst *bool, value *bool) {
	if value != nil {
		*dst = *value
	}
}
