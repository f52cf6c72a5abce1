package commands

import (
	"errors"
	"fmt"

	internalcommands "github.com/goliatone/go-wpmigrate/internal/commands"
	migratecmd "github.com/goliatone/go-wpmigrate/internal/commands/migrate"
	"github.com/goliatone/go-wpmigrate/internal/di"
	"github.com/goliatone/go-wpmigrate/pkg/interfaces"
	command "github.com/goliatone/go-command"
	"github.com/goliatone/go-command/dispatcher"
)

// CommandRegistry records command handlers so hosts can expose them via CLI or cron.
type CommandRegistry interface {
	RegisterCommand(handler any) error
}

// CommandDispatcher subscribes command handlers to a dispatcher implementation.
type CommandDispatcher interface {
	RegisterCommand(handler any) (CommandSubscription, error)
}

// CommandSubscription allows hosts to tear down dispatcher subscriptions.
type CommandSubscription interface {
	Unsubscribe()
}

// RegistrationOptions configures how handlers are registered during construction.
type RegistrationOptions struct {
	Registry       CommandRegistry
	Dispatcher     CommandDispatcher
	LoggerProvider interfaces.LoggerProvider
	// Observer receives the summary of every successful export migration.
	Observer migratecmd.ResultObserver
}

// RegistrationResult captures the constructed command handlers and any dispatcher subscriptions.
type RegistrationResult struct {
	Handlers      []any
	Subscriptions []CommandSubscription
}

// ErrUnsupportedHandler is returned by GlobalDispatcher for handlers it cannot subscribe.
var ErrUnsupportedHandler = errors.New("commands: unsupported handler type")

// GlobalDispatcher subscribes handlers to the go-command package level dispatcher.
type GlobalDispatcher struct{}

// RegisterCommand implements CommandDispatcher.
func (GlobalDispatcher) RegisterCommand(handler any) (CommandSubscription, error) {
	switch h := handler.(type) {
	case command.Commander[migratecmd.MigrateExportCommand]:
		return dispatcher.SubscribeCommand(h), nil
	default:
		return nil, fmt.Errorf("%w: %T", ErrUnsupportedHandler, handler)
	}
}

// RegisterContainerCommands builds the command handlers exposed by the provided container and
// optionally registers them with registry/dispatcher integrations.
func RegisterContainerCommands(container *di.Container, opts RegistrationOptions) (*RegistrationResult, error) {
	if container == nil {
		return &RegistrationResult{}, nil
	}

	provider := opts.LoggerProvider
	if provider == nil {
		provider = container.LoggerProvider()
	}

	result := &RegistrationResult{
		Handlers:      make([]any, 0),
		Subscriptions: make([]CommandSubscription, 0),
	}

	var errs error

	register := func(handler any) {
		if handler == nil {
			return
		}
		result.Handlers = append(result.Handlers, handler)

		if opts.Registry != nil {
			if err := opts.Registry.RegisterCommand(handler); err != nil {
				errs = errors.Join(errs, err)
			}
		}

		if opts.Dispatcher != nil {
			subscription, err := opts.Dispatcher.RegisterCommand(handler)
			if err != nil {
				errs = errors.Join(errs, err)
			} else if subscription != nil {
				result.Subscriptions = append(result.Subscriptions, subscription)
			}
		}
	}

	if service := container.MigrationService(); service != nil {
		register(migratecmd.NewMigrateExportHandler(service, internalcommands.CommandLogger(provider, migratecmd.OperationExport), opts.Observer))
	}

	if len(result.Handlers) == 0 {
		return result, errors.New("no command handlers registered; ensure the migration service is configured")
	}

	return result, errs
}
