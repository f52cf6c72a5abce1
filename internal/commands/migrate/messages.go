package migratecmd

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/goliatone/go-wpmigrate/internal/output"
	"github.com/google/uuid"
)

const migrateExportMessageType = "wpmigrate.migrate_export"

// MigrateExportCommand converts a WordPress export into upsert SQL and writes
// it to Output.
type MigrateExportCommand struct {
	// Source is the path of the WXR export file.
	Source string `json:"source"`
	// Output is "" or "-" for stdout, s3://bucket/key, or a file path.
	Output string `json:"output,omitempty"`
	// DryRun runs the pipeline and reports counts without writing.
	DryRun bool `json:"dry_run,omitempty"`
	// RunID tags the run in logs. Generated by the handler when empty.
	RunID string `json:"run_id,omitempty"`
}

// Type implements command.Message.
func (MigrateExportCommand) Type() string { return migrateExportMessageType }

// Validate ensures a source is present and the optional fields are well formed.
func (cmd MigrateExportCommand) Validate() error {
	return validation.ValidateStruct(&cmd,
		validation.Field(&cmd.Source, validation.Required, validation.By(func(value any) error {
			if strings.TrimSpace(value.(string)) == "" {
				return validation.NewError("wpmigrate.migrate_export.source_required", "source is required")
			}
			return nil
		})),
		validation.Field(&cmd.Output, validation.By(func(value any) error {
			if _, _, _, err := output.ParseS3URI(strings.TrimSpace(value.(string))); err != nil {
				return validation.NewError("wpmigrate.migrate_export.output_invalid", "output must be a path, '-' or s3://bucket/key")
			}
			return nil
		})),
		validation.Field(&cmd.RunID, validation.By(func(value any) error {
			id := strings.TrimSpace(value.(string))
			if id == "" {
				return nil
			}
			if _, err := uuid.Parse(id); err != nil {
				return validation.NewError("wpmigrate.migrate_export.run_id_invalid", "run id must be a UUID")
			}
			return nil
		})),
	)
}
