package migratecmd

import (
	"context"
	"errors"
	"strings"

	"github.com/goliatone/go-wpmigrate/internal/commands"
	"github.com/goliatone/go-wpmigrate/internal/logging"
	"github.com/goliatone/go-wpmigrate/pkg/interfaces"
	command "github.com/goliatone/go-command"
	"github.com/google/uuid"
)

// OperationExport names the export migration in logs, telemetry and error metadata.
const OperationExport = "migrate.export"

// ErrMigrationServiceRequired is returned when the handler has no service to call.
var ErrMigrationServiceRequired = errors.New("migrate command: migration service is required")

var _ command.Commander[MigrateExportCommand] = (*MigrateExportHandler)(nil)

// ResultObserver receives the summary of a successful run.
type ResultObserver func(result *interfaces.MigrateResult)

// MigrateExportHandler runs export migrations via the shared command handler foundation.
type MigrateExportHandler struct {
	inner *commands.Handler[MigrateExportCommand]
}

// NewMigrateExportHandler creates a handler bound to the supplied migration service.
// observer may be nil.
func NewMigrateExportHandler(service interfaces.MigrationService, logger interfaces.Logger, observer ResultObserver, opts ...commands.HandlerOption[MigrateExportCommand]) *MigrateExportHandler {
	baseLogger := commands.EnsureLogger(logger)

	exec := func(ctx context.Context, msg MigrateExportCommand) error {
		if service == nil {
			return ErrMigrationServiceRequired
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		runID := strings.TrimSpace(msg.RunID)
		if runID == "" {
			runID = uuid.NewString()
		}
		ctx = logging.ContextWithRunID(ctx, runID)

		result, err := service.Migrate(ctx, interfaces.MigrateOptions{
			Source: strings.TrimSpace(msg.Source),
			Output: strings.TrimSpace(msg.Output),
			DryRun: msg.DryRun,
			RunID:  runID,
		})
		if err != nil {
			return err
		}
		if result != nil {
			logging.WithFields(baseLogger.WithContext(ctx), logging.ResultFields(result)).
				Info("migrate.command.export.completed")
			if observer != nil {
				observer(result)
			}
		}
		return nil
	}

	handlerOpts := []commands.HandlerOption[MigrateExportCommand]{
		commands.WithLogger[MigrateExportCommand](baseLogger),
		commands.WithOperation[MigrateExportCommand](OperationExport),
		commands.WithMessageFields(func(msg MigrateExportCommand) map[string]any {
			fields := map[string]any{
				"source": msg.Source,
			}
			if msg.Output != "" {
				fields["output"] = msg.Output
			}
			if msg.DryRun {
				fields["dry_run"] = true
			}
			return fields
		}),
		commands.WithTelemetry(commands.DefaultTelemetry[MigrateExportCommand](baseLogger)),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &MigrateExportHandler{
		inner: commands.NewHandler(exec, handlerOpts...),
	}
}

// Execute satisfies command.Commander[MigrateExportCommand].
func (h *MigrateExportHandler) Execute(ctx context.Context, msg MigrateExportCommand) error {
	return h.inner.Execute(ctx, msg)
}
