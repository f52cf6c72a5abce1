package commands

import (
	"strings"

	"github.com/goliatone/go-wpmigrate/internal/logging"
	"github.com/goliatone/go-wpmigrate/pkg/interfaces"
)

const commandModuleRoot = "wpmigrate.commands"

// CommandLogger returns the logger for the handler serving operation, e.g.
// "migrate.export" logs under wpmigrate.commands.migrate with operation set.
func CommandLogger(provider interfaces.LoggerProvider, operation string) interfaces.Logger {
	operation = strings.Trim(strings.TrimSpace(operation), ".")
	if operation == "" {
		return logging.WithFields(logging.ModuleLogger(provider, commandModuleRoot), map[string]any{
			"component": "command",
		})
	}

	group, _, _ := strings.Cut(operation, ".")
	return logging.WithFields(logging.ModuleLogger(provider, commandModuleRoot+"."+group), map[string]any{
		"component": "command",
		"operation": operation,
	})
}
