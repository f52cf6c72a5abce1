package wpmigrate

import (
	"context"
	"io"

	"github.com/goliatone/go-wpmigrate/internal/di"
	"github.com/goliatone/go-wpmigrate/internal/logging"
	"github.com/goliatone/go-wpmigrate/pkg/interfaces"
)

type (
	Post           = interfaces.Post
	RawPost        = interfaces.RawPost
	PostStatus     = interfaces.PostStatus
	MigrateOptions = interfaces.MigrateOptions
	MigrateResult  = interfaces.MigrateResult
)

// Module represents the top level migration runtime façade.
type Module struct {
	container *di.Container
}

// New constructs a migration module using the provided configuration and optional DI overrides.
func New(cfg Config, opts ...di.Option) (*Module, error) {
	container, err := di.NewContainer(cfg, opts...)
	if err != nil {
		return nil, err
	}
	return &Module{container: container}, nil
}

// Container exposes the underlying DI container for advanced integrations.
func (m *Module) Container() *di.Container {
	return m.container
}

// Migration returns the pipeline service.
func (m *Module) Migration() interfaces.MigrationService {
	if m == nil || m.container == nil {
		return nil
	}
	return m.container.MigrationService()
}

// Logger returns the root module logger.
func (m *Module) Logger() interfaces.Logger {
	if m == nil || m.container == nil {
		return logging.NoOp()
	}
	return logging.ModuleLogger(m.container.LoggerProvider(), "")
}

// Migrate converts opts.Source and writes the SQL to opts.Output.
func (m *Module) Migrate(ctx context.Context, opts MigrateOptions) (*MigrateResult, error) {
	return m.container.MigrationService().Migrate(ctx, opts)
}

// Convert returns the SQL for the export read from r without writing it.
func (m *Module) Convert(ctx context.Context, r io.Reader) (string, *MigrateResult, error) {
	return m.container.MigrationService().Convert(ctx, r)
}
