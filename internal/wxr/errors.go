package wxr

import (
	"fmt"

	goerrors "github.com/goliatone/go-errors"
)

// TextCodeMalformed tags every ParseError.
const TextCodeMalformed = "WXR_MALFORMED"

// ParseError reports an export document that is not well-formed XML or does
// not follow the RSS layout. It always aborts the run.
type ParseError struct {
	Source string
	// Line is the 1-based line of the syntax error, or 0 when unknown.
	Line  int
	Cause error

	err *goerrors.Error
}

func newParseError(source string, line int, cause error) *ParseError {
	meta := map[string]any{}
	if source != "" {
		meta["source"] = source
	}
	if line > 0 {
		meta["line"] = line
	}
	return &ParseError{
		Source: source,
		Line:   line,
		Cause:  cause,
		err: goerrors.Wrap(cause, goerrors.CategoryBadInput, "malformed wordpress export").
			WithTextCode(TextCodeMalformed).
			WithMetadata(meta),
	}
}

func (e *ParseError) Error() string {
	source := e.Source
	if source == "" {
		source = "input"
	}
	if e.Line > 0 {
		return fmt.Sprintf("wxr: malformed export %s at line %d: %v", source, e.Line, e.Cause)
	}
	return fmt.Sprintf("wxr: malformed export %s: %v", source, e.Cause)
}

func (e *ParseError) Unwrap() error {
	return e.err
}
