package di

import (
	"io"
	"strings"

	"github.com/goliatone/go-wpmigrate/internal/logging"
	"github.com/goliatone/go-wpmigrate/internal/logging/console"
	"github.com/goliatone/go-wpmigrate/internal/logging/gologger"
	"github.com/goliatone/go-wpmigrate/internal/migration"
	"github.com/goliatone/go-wpmigrate/internal/output"
	"github.com/goliatone/go-wpmigrate/internal/posts"
	"github.com/goliatone/go-wpmigrate/internal/runtimeconfig"
	"github.com/goliatone/go-wpmigrate/internal/sqlgen"
	"github.com/goliatone/go-wpmigrate/internal/wxr"
	"github.com/goliatone/go-wpmigrate/pkg/interfaces"
	"github.com/goliatone/go-slug"
)

// Container wires the pipeline stages from configuration.
type Container struct {
	Config runtimeconfig.Config

	loggerProvider interfaces.LoggerProvider
	logWriter      io.Writer
	stdout         io.Writer
	s3Client       output.S3ClientFunc
	slugNormalizer slug.Normalizer

	extractor  interfaces.Extractor
	normalizer interfaces.Normalizer
	renderer   interfaces.Renderer
	sinks      migration.SinkOpener

	migrationSvc *migration.Service
}

// Option mutates the container before it is finalised.
type Option func(*Container)

// WithLoggerProvider overrides the provider selected by Logging.Provider.
func WithLoggerProvider(provider interfaces.LoggerProvider) Option {
	return func(c *Container) {
		if provider != nil {
			c.loggerProvider = provider
		}
	}
}

// WithLogWriter redirects the console provider, which writes to stderr by default.
func WithLogWriter(w io.Writer) Option {
	return func(c *Container) {
		if w != nil {
			c.logWriter = w
		}
	}
}

// WithStdout replaces the writer behind the stdout sink.
func WithStdout(w io.Writer) Option {
	return func(c *Container) {
		if w != nil {
			c.stdout = w
		}
	}
}

// WithS3Client replaces the S3 client constructor used for s3:// outputs.
func WithS3Client(fn output.S3ClientFunc) Option {
	return func(c *Container) {
		if fn != nil {
			c.s3Client = fn
		}
	}
}

// WithSlugNormalizer replaces the go-slug normalizer used by the goslug strategy.
func WithSlugNormalizer(normalizer slug.Normalizer) Option {
	return func(c *Container) {
		if normalizer != nil {
			c.slugNormalizer = normalizer
		}
	}
}

// WithExtractor overrides the WXR extractor.
func WithExtractor(extractor interfaces.Extractor) Option {
	return func(c *Container) {
		if extractor != nil {
			c.extractor = extractor
		}
	}
}

// WithNormalizer overrides the record normalizer.
func WithNormalizer(normalizer interfaces.Normalizer) Option {
	return func(c *Container) {
		if normalizer != nil {
			c.normalizer = normalizer
		}
	}
}

// WithRenderer overrides the SQL renderer.
func WithRenderer(renderer interfaces.Renderer) Option {
	return func(c *Container) {
		if renderer != nil {
			c.renderer = renderer
		}
	}
}

// WithSinkOpener overrides output location resolution.
func WithSinkOpener(opener migration.SinkOpener) Option {
	return func(c *Container) {
		if opener != nil {
			c.sinks = opener
		}
	}
}

// NewContainer validates cfg and builds every stage not supplied through options.
func NewContainer(cfg runtimeconfig.Config, opts ...Option) (*Container, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	c := &Container{Config: cfg}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}

	if err := c.configureLogging(); err != nil {
		return nil, err
	}
	if err := c.configureStages(); err != nil {
		return nil, err
	}

	c.migrationSvc = migration.NewService(
		migration.Config{SkipInvalid: cfg.SkipInvalidRecords()},
		c.extractor,
		c.normalizer,
		c.renderer,
		c.sinks,
		migration.WithLogger(logging.ModuleLogger(c.loggerProvider, "")),
	)

	logging.ModuleLogger(c.loggerProvider, "").Debug("container.configured",
		"engine", cfg.Render.Engine,
		"dialect", cfg.Render.Dialect,
		"table", cfg.Render.Table,
		"on_invalid_record", cfg.Errors.OnInvalidRecord,
		"slug_strategy", cfg.Posts.SlugStrategy,
	)
	return c, nil
}

func (c *Container) configureLogging() error {
	if c.loggerProvider != nil {
		return nil
	}

	switch strings.ToLower(strings.TrimSpace(c.Config.Logging.Provider)) {
	case "gologger":
		provider, err := gologger.NewProvider(gologger.Config{
			Level:     c.Config.Logging.Level,
			Format:    c.Config.Logging.Format,
			AddSource: c.Config.Logging.AddSource,
			Focus:     c.Config.Logging.Focus,
		})
		if err != nil {
			return err
		}
		c.loggerProvider = provider
	default:
		opts := console.Options{Writer: c.logWriter}
		if level, ok := console.ParseLevel(c.Config.Logging.Level); ok {
			opts.MinLevel = &level
		}
		c.loggerProvider = console.NewProvider(opts)
	}
	return nil
}

func (c *Container) configureStages() error {
	if c.extractor == nil {
		c.extractor = wxr.NewExtractor(c.Config.Posts,
			wxr.WithLogger(logging.ExtractLogger(c.loggerProvider)),
		)
	}

	if c.normalizer == nil {
		normalizerOpts := []posts.Option{
			posts.WithLogger(logging.NormalizeLogger(c.loggerProvider)),
		}
		if c.slugNormalizer != nil && strings.EqualFold(c.Config.Posts.SlugStrategy, runtimeconfig.SlugStrategyGoSlug) {
			normalizerOpts = append(normalizerOpts, posts.WithSlugFunc(posts.GoSlugFunc(c.slugNormalizer)))
		}
		c.normalizer = posts.NewNormalizer(c.Config.Posts, normalizerOpts...)
	}

	if c.renderer == nil {
		renderer, err := sqlgen.New(c.Config.Render,
			sqlgen.WithLogger(logging.RenderLogger(c.loggerProvider)),
		)
		if err != nil {
			return err
		}
		c.renderer = renderer
	}

	if c.sinks == nil {
		factoryOpts := []output.FactoryOption{
			output.WithStdout(c.stdout),
			output.WithS3Client(c.s3Client),
			output.WithLogger(logging.OutputLogger(c.loggerProvider)),
		}
		c.sinks = output.NewFactory(c.Config.Output, factoryOpts...)
	}
	return nil
}

// LoggerProvider returns the provider shared by every stage.
func (c *Container) LoggerProvider() interfaces.LoggerProvider {
	return c.loggerProvider
}

// MigrationService returns the pipeline service.
func (c *Container) MigrationService() *migration.Service {
	return c.migrationSvc
}

// Extractor returns the configured extractor.
func (c *Container) Extractor() interfaces.Extractor {
	return c.extractor
}

// Normalizer returns the configured normalizer.
func (c *Container) Normalizer() interfaces.Normalizer {
	return c.normalizer
}

// Renderer returns the configured renderer.
func (c *Container) Renderer() interfaces.Renderer {
	return c.renderer
}
