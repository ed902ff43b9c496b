package pipeline

import "errors"

// Sentinel errors for hard input failures. They are wrapped with the
// offending path; match with errors.Is.
var (
	ErrInputNotFound      = errors.New("input not found")
	ErrNotDirectory       = errors.New("input is not a directory")
	ErrDuplicateInventory = errors.New("duplicate inventory identifier")
)
