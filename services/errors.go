// services/errors.go
package services

import "errors"

// Sentinel errors surfaced by the scan pipeline. The API layer maps these
// onto HTTP status codes; everything else is a plain 500.
var (
	ErrBrandNotFound      = errors.New("brand not found")
	ErrNoPrompts          = errors.New("brand has no prompts to scan")
	ErrQueueNotConfigured = errors.New("job queue is not configured")
	ErrJobNotFound        = errors.New("scan job not found")
)
