package migration

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-wpmigrate/internal/logging"
	"github.com/goliatone/go-wpmigrate/pkg/interfaces"
	"github.com/google/uuid"
)

// SinkOpener resolves an output location into a sink.
type SinkOpener interface {
	Open(ctx context.Context, location string) (interfaces.Sink, error)
}

// sourceExtractor is implemented by extractors that can label errors with the
// export path.
type sourceExtractor interface {
	ExtractSource(ctx context.Context, r io.Reader, source string) (*interfaces.Export, error)
}

// Config controls pipeline policy.
type Config struct {
	// SkipInvalid drops records that fail normalization instead of aborting.
	SkipInvalid bool
}

// Option mutates the service during construction.
type Option func(*Service)

// WithLogger sets the pipeline logger.
func WithLogger(logger interfaces.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// Service implements interfaces.MigrationService.
type Service struct {
	cfg        Config
	extractor  interfaces.Extractor
	normalizer interfaces.Normalizer
	renderer   interfaces.Renderer
	sinks      SinkOpener
	logger     interfaces.Logger
}

var _ interfaces.MigrationService = (*Service)(nil)

// NewService wires the pipeline stages together.
func NewService(cfg Config, extractor interfaces.Extractor, normalizer interfaces.Normalizer, renderer interfaces.Renderer, sinks SinkOpener, opts ...Option) *Service {
	s := &Service{
		cfg:        cfg,
		extractor:  extractor,
		normalizer: normalizer,
		renderer:   renderer,
		sinks:      sinks,
		logger:     logging.NoOp(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// Migrate reads opts.Source, converts it and writes the SQL to opts.Output.
// Nothing is written when any stage fails or when DryRun is set.
func (s *Service) Migrate(ctx context.Context, opts interfaces.MigrateOptions) (*interfaces.MigrateResult, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	runID := strings.TrimSpace(opts.RunID)
	if runID == "" {
		runID = uuid.NewString()
	}
	ctx = logging.ContextWithRunID(ctx, runID)
	logger := logging.WithFields(s.logger.WithContext(ctx), map[string]any{
		"source": opts.Source,
	})

	file, err := os.Open(opts.Source)
	if err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryBadInput, "open wordpress export").
			WithTextCode(TextCodeSourceUnreadable).
			WithMetadata(map[string]any{"source": opts.Source})
	}
	defer file.Close()

	sql, result, err := s.convert(ctx, file, opts.Source, logger)
	if err != nil {
		return nil, err
	}
	result.RunID = runID
	result.Source = opts.Source
	result.DryRun = opts.DryRun

	if opts.DryRun {
		logger.Info("migration.dry_run", "statements", result.Converted, "bytes", result.Bytes)
		return result, nil
	}

	sink, err := s.sinks.Open(ctx, opts.Output)
	if err != nil {
		return nil, err
	}
	result.Output = sink.Location()
	if err := sink.Write(ctx, []byte(sql)); err != nil {
		return nil, err
	}

	logger.Info("migration.completed",
		"output", result.Output,
		"converted", result.Converted,
		"skipped", result.Skipped,
		"invalid", result.Invalid,
		"bytes", result.Bytes,
	)
	return result, nil
}

// Convert runs extraction, normalization and rendering over r and returns the
// SQL text without writing it anywhere.
func (s *Service) Convert(ctx context.Context, r io.Reader) (string, *interfaces.MigrateResult, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	return s.convert(ctx, r, "", s.logger.WithContext(ctx))
}

func (s *Service) extract(ctx context.Context, r io.Reader, source string) (*interfaces.Export, error) {
	if named, ok := s.extractor.(sourceExtractor); ok && source != "" {
		return named.ExtractSource(ctx, r, source)
	}
	return s.extractor.Extract(ctx, r)
}

func (s *Service) convert(ctx context.Context, r io.Reader, source string, logger interfaces.Logger) (string, *interfaces.MigrateResult, error) {
	export, err := s.extract(ctx, r, source)
	if err != nil {
		return "", nil, err
	}

	result := &interfaces.MigrateResult{
		Extracted: len(export.Posts),
		Skipped:   export.Skipped,
	}
	collector := goerrors.NewCollector(
		goerrors.WithMaxErrors(len(export.Posts)+1),
		goerrors.WithContext(ctx),
	)

	posts := make([]interfaces.Post, 0, len(export.Posts))
	for _, raw := range export.Posts {
		if err := ctx.Err(); err != nil {
			return "", nil, err
		}
		post, err := s.normalizer.Normalize(raw)
		if err != nil {
			if !s.cfg.SkipInvalid {
				return "", nil, err
			}
			collector.Add(err)
			result.Errors = append(result.Errors, err)
			logging.WithRecordContext(logger, raw.LegacyID, raw.Slug, source).
				Warn("posts.normalize.skipped", "error", err)
			continue
		}
		posts = append(posts, post)
	}

	if collector.HasErrors() {
		result.Invalid = collector.Count()
		logger.Warn("migration.records.invalid",
			"count", collector.Count(),
			"categories", fmt.Sprint(collector.CategoryStats()),
		)
	}

	sql, err := s.renderer.Render(posts)
	if err != nil {
		return "", nil, err
	}
	result.Converted = len(posts)
	result.Bytes = len(sql)
	return sql, result, nil
}
