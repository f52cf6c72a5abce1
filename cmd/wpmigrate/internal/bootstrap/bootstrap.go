package bootstrap

import (
	"fmt"
	"io"
	"strings"

	"github.com/goliatone/go-wpmigrate"
	"github.com/goliatone/go-wpmigrate/internal/di"
	"github.com/goliatone/go-wpmigrate/internal/logging"
	"github.com/goliatone/go-wpmigrate/pkg/interfaces"
)

// Options captures configuration for the migration CLI bootstrap. Empty
// strings and nil pointers keep the value resolved from defaults and the
// environment.
type Options struct {
	EnvFile            string
	DefaultCategory    string
	LegacyURLTemplate  string
	SlugStrategy       string
	Engine             string
	Dialect            string
	Table              string
	OnInvalidRecord    string
	PublishedOnly      *bool
	StripBlockComments *bool
	LogProvider        string
	LogLevel           string
	LogFormat          string
	LoggerProvider     interfaces.LoggerProvider
	Stdout             io.Writer
	LogWriter          io.Writer
}

// Module wraps the migration module and the configured service/logger.
type Module struct {
	Module  *wpmigrate.Module
	Service interfaces.MigrationService
	Logger  interfaces.Logger
}

// ResolveConfig layers defaults, the env file, WPMIGRATE_* variables and the
// explicit options, in that order.
func ResolveConfig(opts Options) (wpmigrate.Config, error) {
	var envFiles []string
	if file := strings.TrimSpace(opts.EnvFile); file != "" {
		envFiles = append(envFiles, file)
	}
	cfg, err := wpmigrate.ConfigFromEnv(wpmigrate.DefaultConfig(), envFiles...)
	if err != nil {
		return cfg, fmt.Errorf("load environment: %w", err)
	}

	override(&cfg.Posts.DefaultCategory, opts.DefaultCategory)
	override(&cfg.Posts.LegacyURLTemplate, opts.LegacyURLTemplate)
	override(&cfg.Posts.SlugStrategy, opts.SlugStrategy)
	override(&cfg.Render.Engine, opts.Engine)
	override(&cfg.Render.Dialect, opts.Dialect)
	override(&cfg.Render.Table, opts.Table)
	override(&cfg.Errors.OnInvalidRecord, opts.OnInvalidRecord)
	override(&cfg.Logging.Provider, opts.LogProvider)
	override(&cfg.Logging.Level, opts.LogLevel)
	override(&cfg.Logging.Format, opts.LogFormat)
	if opts.PublishedOnly != nil {
		cfg.Posts.PublishedOnly = *opts.PublishedOnly
	}
	if opts.StripBlockComments != nil {
		cfg.Posts.StripBlockComments = *opts.StripBlockComments
	}
	return cfg, nil
}

// BuildModule constructs a migration module from the CLI options.
func BuildModule(opts Options) (*Module, error) {
	cfg, err := ResolveConfig(opts)
	if err != nil {
		return nil, err
	}

	diOpts := []di.Option{}
	if opts.LoggerProvider != nil {
		diOpts = append(diOpts, di.WithLoggerProvider(opts.LoggerProvider))
	}
	if opts.Stdout != nil {
		diOpts = append(diOpts, di.WithStdout(opts.Stdout))
	}
	if opts.LogWriter != nil {
		diOpts = append(diOpts, di.WithLogWriter(opts.LogWriter))
	}

	module, err := wpmigrate.New(cfg, diOpts...)
	if err != nil {
		return nil, fmt.Errorf("initialise migration module: %w", err)
	}

	return &Module{
		Module:  module,
		Service: module.Migration(),
		Logger:  logging.ModuleLogger(module.Container().LoggerProvider(), "wpmigrate.cli"),
	}, nil
}

func override(dst *string, value string) {
	if trimmed := strings.TrimSpace(value); trimmed != "" {
		*dst = trimmed
	}
}
