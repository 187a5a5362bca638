package project

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNotFound is returned when no project matches the requested id.
var ErrNotFound = errors.New("project not found")

// Reason classifies a ValidationError.
type Reason string

const (
	ReasonNoFiles       Reason = "no_files"
	ReasonMissingBanner Reason = "missing_banner"
	ReasonMissingField  Reason = "missing_field"
	ReasonInvalidID     Reason = "invalid_id"
)

// ValidationError rejects a request before any media or repository call is made.
type ValidationError struct {
	Reason  Reason
	Fields  []string
	Message string
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return e.Message
	}
	return fmt.Sprintf("%s (%s)", e.Message, strings.Join(e.Fields, ", "))
}

// UploadError reports a media store upload that produced no usable reference.
type UploadError struct {
	Collection string
	Message    string
	Err        error
}

func (e *UploadError) Error() string {
	return fmt.Sprintf("%s: upload to %q: %v", e.Message, e.Collection, e.Err)
}

func (e *UploadError) Unwrap() error { return e.Err }

// DestroyError reports a media store deletion that failed.
type DestroyError struct {
	ImageID string
	Err     error
}

func (e *DestroyError) Error() string {
	return fmt.Sprintf("destroy image %q: %v", e.ImageID, e.Err)
}

func (e *DestroyError) Unwrap() error { return e.Err }

// PersistenceError carries a rejection from the database with its native code and message.
type PersistenceError struct {
	Op      string
	Code    string
	Message string
	Err     error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%s: %s (SQLSTATE %s)", e.Op, e.Message, e.Code)
}

func (e *PersistenceError) Unwrap() error { return e.Err }

// Constraint reports whether the error is an integrity constraint violation (SQLSTATE class 23)
// or a check on input data (class 22).
func (e *PersistenceError) Constraint() bool {
	return strings.HasPrefix(e.Code, "23") || strings.HasPrefix(e.Code, "22")
}
