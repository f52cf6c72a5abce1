package posts

import (
	"fmt"
	"strings"

	goerrors "github.com/goliatone/go-errors"
)

const (
	TextCodeInvalidDate   = "POST_INVALID_DATE"
	TextCodeInvalidID     = "POST_INVALID_ID"
	TextCodeTitleRequired = "POST_TITLE_REQUIRED"
)

// RecordError reports a post that could not be normalized. The wrapped
// go-errors value carries the validation category and text code so callers can
// match on either the concrete type or the category.
type RecordError struct {
	LegacyID string
	Field    string
	Code     string
	Cause    error

	err *goerrors.Error
}

func newRecordError(code, field, legacyID string, cause error) *RecordError {
	legacyID = strings.TrimSpace(legacyID)
	wrapped := goerrors.Wrap(cause, goerrors.CategoryValidation, "post record invalid").
		WithTextCode(code).
		WithMetadata(map[string]any{
			"legacy_id": legacyID,
			"field":     field,
		})
	return &RecordError{
		LegacyID: legacyID,
		Field:    field,
		Code:     code,
		Cause:    cause,
		err:      wrapped,
	}
}

func (e *RecordError) Error() string {
	id := e.LegacyID
	if id == "" {
		id = "<missing>"
	}
	return fmt.Sprintf("posts: record %s: invalid %s: %v", id, e.Field, e.Cause)
}

func (e *RecordError) Unwrap() error {
	return e.err
}
