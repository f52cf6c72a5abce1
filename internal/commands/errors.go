package commands

import (
	"context"
	"errors"

	goerrors "github.com/goliatone/go-errors"
)

// Text codes attached to errors raised by Handler.Execute.
const (
	TextCodeInvalidMessage = "WPMIGRATE_COMMAND_INVALID"
	TextCodeCancelled      = "WPMIGRATE_COMMAND_CANCELLED"
	TextCodeTimedOut       = "WPMIGRATE_COMMAND_TIMED_OUT"
	TextCodeContext        = "WPMIGRATE_COMMAND_CONTEXT"
	TextCodeFailed         = "WPMIGRATE_COMMAND_FAILED"
)

type failureStage string

const (
	stageValidate failureStage = "validate"
	stageContext  failureStage = "context"
	stageExecute  failureStage = "execute"
)

// failure describes where a command stopped. It is rendered into metadata so
// a failed run can be traced back to its command and operation.
type failure struct {
	command   string
	operation string
	stage     failureStage
}

// wrap tags err unless a stage below the command layer already categorised
// it, in which case the original error is returned untouched.
func (f failure) wrap(err error) error {
	if err == nil {
		return nil
	}
	if goerrors.IsWrapped(err) {
		return err
	}

	category, code, message := f.classify(err)
	metadata := map[string]any{
		"command": f.command,
		"stage":   string(f.stage),
	}
	if f.operation != "" {
		metadata["operation"] = f.operation
	}
	return goerrors.Wrap(err, category, message).
		WithTextCode(code).
		WithMetadata(metadata)
}

func (f failure) classify(err error) (goerrors.Category, string, string) {
	switch f.stage {
	case stageValidate:
		return goerrors.CategoryValidation, TextCodeInvalidMessage, f.command + ": invalid message"
	case stageContext:
		switch {
		case errors.Is(err, context.Canceled):
			return goerrors.CategoryCommand, TextCodeCancelled, f.command + ": cancelled"
		case errors.Is(err, context.DeadlineExceeded):
			return goerrors.CategoryCommand, TextCodeTimedOut, f.command + ": timed out"
		}
		return goerrors.CategoryCommand, TextCodeContext, f.command + ": context error"
	default:
		return goerrors.CategoryCommand, TextCodeFailed, f.command + ": failed"
	}
}
