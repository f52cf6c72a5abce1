package logging

import (
	"maps"

	"github.com/goliatone/go-wpmigrate/pkg/interfaces"
)

// WithFields returns logger with fields attached when it implements
// interfaces.FieldsLogger. Other loggers are returned unchanged.
func WithFields(logger interfaces.Logger, fields map[string]any) interfaces.Logger {
	if logger == nil || len(fields) == 0 {
		return logger
	}
	if fieldsLogger, ok := logger.(interfaces.FieldsLogger); ok {
		return fieldsLogger.WithFields(maps.Clone(fields))
	}
	return logger
}

// ResultFields flattens a run summary into log fields.
func ResultFields(result *interfaces.MigrateResult) map[string]any {
	if result == nil {
		return nil
	}
	fields := map[string]any{
		"extracted_count": result.Extracted,
		"converted_count": result.Converted,
		"skipped_count":   result.Skipped,
		"invalid_count":   result.Invalid,
		"bytes":           result.Bytes,
		"dry_run":         result.DryRun,
	}
	if result.Output != "" {
		fields["output"] = result.Output
	}
	return fields
}
