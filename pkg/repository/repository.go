package repository

import (
	"context"
	"errors"

	"github.com/garnizeh/estimator/pkg/models"
)

// Repository interfaces for domain entities. These are the public contracts
// consumers should depend on; concrete implementations live under internal/.

var (
	// ErrNotFound is returned when an operation targets an estimate id that
	// does not exist in the store.
	ErrNotFound = errors.New("estimate not found")

	// ErrInvalidEstimate is returned when an aggregate fails the caller-side
	// preconditions (nil, blank client or project name, missing id on update).
	ErrInvalidEstimate = errors.New("invalid estimate")
)

type EstimateRepo interface {
	// ListEstimates returns every estimate with its items attached, most
	// recently updated first. An empty store yields an empty slice.
	ListEstimates(ctx context.Context) ([]models.Estimate, error)

	// GetEstimate returns one estimate with its items, or nil when the id
	// does not exist.
	GetEstimate(ctx context.Context, id int64) (*models.Estimate, error)

	// SaveEstimate inserts the header and all items atomically, assigns both
	// timestamps, and returns the generated id.
	SaveEstimate(ctx context.Context, e *models.Estimate) (int64, error)

	// UpdateEstimate rewrites the header fields and replaces the entire item
	// set atomically. CreatedAt is never touched. Returns ErrNotFound when
	// the id does not exist.
	UpdateEstimate(ctx context.Context, e *models.Estimate) error

	// DeleteEstimate removes the header row; item rows go with it via the
	// cascade. Deleting a missing id is a successful no-op.
	DeleteEstimate(ctx context.Context, id int64) error
}
