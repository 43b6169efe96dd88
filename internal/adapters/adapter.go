// Package adapters fetches a user's records from external learning and
// portfolio platforms and normalizes them into integration records.
package adapters

import (
	"context"

	"resumehub/internal/models"
)

type Adapter interface {
	Platform() models.Platform
	Fetch(ctx context.Context, credential string) ([]models.IntegrationRecord, error)
}

type Instructions struct {
	Manual bool     `json:"manual"`
	Steps  []string `json:"steps"`
}

// AdapterError is the only error an adapter returns. Message is safe to show
// to the user; Cause is kept for logs.
type AdapterError struct {
	Platform     models.Platform `json:"platform"`
	Message      string          `json:"message"`
	Instructions *Instructions   `json:"instructions,omitempty"`
	Fallback     string          `json:"fallback,omitempty"`
	Cause        error           `json:"-"`
}

func (e *AdapterError) Error() string {
	return e.Message
}

func (e *AdapterError) Unwrap() error {
	return e.Cause
}
