package domain

import (
	"context"
	"errors"
)

// Form family names, used for logging and idempotency key namespaces
const (
	FormContact        = "contact"
	FormConsultation   = "consultation"
	FormProjectInquiry = "project_inquiry"
)

// ErrSubmissionInProgress is returned when an idempotency key is reserved by a request that has not finished
var ErrSubmissionInProgress = errors.New("submission with this idempotency key is still in progress")

// Receipt is the outcome of an accepted submission
type Receipt[T any] struct {
	Message string
	Record  *T
	// Replayed is set when the record was served from a previous request with the same idempotency key
	Replayed bool
}

// IdempotencyStore remembers accepted submissions by client-supplied key.
//
// Reserve claims the key and returns false when it is already taken.
// Load returns the committed payload, or found=false while the key is only reserved.
type IdempotencyStore interface {
	Reserve(ctx context.Context, key string) (bool, error)
	Load(ctx context.Context, key string) (payload []byte, found bool, err error)
	Commit(ctx context.Context, key string, payload []byte) error
	Release(ctx context.Context, key string) error
}
