package interfaces

import (
	"context"
	"io"
)

// MigrateOptions describes a single export-to-SQL run.
type MigrateOptions struct {
	// Source is the path of the WXR export file.
	Source string
	// Output is "" or "-" for stdout, s3://bucket/key, or a file path.
	Output string
	// DryRun runs the full pipeline but skips writing the output.
	DryRun bool
	// RunID tags every log entry of the run. Generated when empty.
	RunID string
}

// MigrateResult summarises a run.
type MigrateResult struct {
	RunID  string
	Source string
	Output string
	DryRun bool
	// Extracted counts post items read from the export.
	Extracted int
	// Skipped counts items excluded by type or publication filter.
	Skipped int
	// Converted counts posts rendered into statements.
	Converted int
	// Invalid counts records dropped under the skip policy.
	Invalid int
	Bytes   int
	// Errors holds the record errors collected under the skip policy.
	Errors []error
}

// MigrationService runs the extract, normalize, render and write pipeline.
type MigrationService interface {
	Migrate(ctx context.Context, opts MigrateOptions) (*MigrateResult, error)
	Convert(ctx context.Context, r io.Reader) (string, *MigrateResult, error)
}
