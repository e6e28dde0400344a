// Package apperr defines the sentinel errors shared across the application.
package apperr

import "errors"

var (
	ErrNotFound      = errors.New("not found")
	ErrAlreadyExists = errors.New("already exists")

	// ErrNotAPeriodFile signals that a filename does not match any of the
	// bracketed period naming patterns.
	ErrNotAPeriodFile = errors.New("not a period file")

	// ErrNoSources signals that a consolidation run found nothing to merge.
	ErrNoSources = errors.New("no source files found")
)
