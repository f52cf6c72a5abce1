package logging

import (
	"context"
	"strings"

	"github.com/goliatone/go-wpmigrate/pkg/interfaces"
)

const (
	rootModule      = "wpmigrate"
	extractModule   = "wpmigrate.extract"
	normalizeModule = "wpmigrate.normalize"
	renderModule    = "wpmigrate.render"
	outputModule    = "wpmigrate.output"
)

const (
	fieldLegacyID = "legacy_id"
	fieldSlug     = "slug"
	fieldSource   = "source"
)

// ModuleLogger returns a module-scoped logger, defaulting to a no-op
// implementation when no provider is supplied. The returned logger attaches
// the module identifier as structured context so downstream entries can be
// filtered predictably.
func ModuleLogger(provider interfaces.LoggerProvider, module string) interfaces.Logger {
	if module == "" {
		module = rootModule
	}

	logger := NoOp()
	if provider != nil {
		if provided := provider.GetLogger(module); provided != nil {
			logger = provided
		}
	}

	return WithFields(logger, map[string]any{
		"module": module,
	})
}

// ExtractLogger returns the logger namespace reserved for export parsing.
func ExtractLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, extractModule)
}

// NormalizeLogger returns the logger namespace reserved for record normalization.
func NormalizeLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, normalizeModule)
}

// RenderLogger returns the logger namespace reserved for SQL rendering.
func RenderLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, renderModule)
}

// OutputLogger returns the logger namespace reserved for output sinks.
func OutputLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, outputModule)
}

// WithRecordContext enriches the logger with the identifiers of the record
// being processed. Empty values are ignored.
func WithRecordContext(logger interfaces.Logger, legacyID, slug, source string) interfaces.Logger {
	fields := map[string]any{}
	if trimmed := strings.TrimSpace(legacyID); trimmed != "" {
		fields[fieldLegacyID] = trimmed
	}
	if trimmed := strings.TrimSpace(slug); trimmed != "" {
		fields[fieldSlug] = trimmed
	}
	if trimmed := strings.TrimSpace(source); trimmed != "" {
		fields[fieldSource] = trimmed
	}
	return WithFields(logger, fields)
}

// NoOp returns a logger that drops every log entry. It satisfies the Logger
// contract so services can safely operate when logging is disabled.
func NoOp() interfaces.Logger {
	return noopLogger{}
}

type noopLogger struct{}

var _ interfaces.Logger = noopLogger{}

func (noopLogger) Trace(string, ...any) {}
func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}
func (noopLogger) Fatal(string, ...any) {}

func (n noopLogger) WithFields(map[string]any) interfaces.Logger {
	return n
}

func (n noopLogger) WithContext(context.Context) interfaces.Logger {
	return n
}
