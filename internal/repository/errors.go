// Package repository holds helpers shared by the storage-backed repositories.
package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/kailas-cloud/shopsearch/internal/db"
	"github.com/kailas-cloud/shopsearch/internal/domain"
)

// Classify maps a storage error onto the domain taxonomy, keeping the cause in the chain.
// An expired or cancelled request context counts as unavailability, not a fault.
func Classify(err error) error {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, db.ErrPoolExhausted),
		errors.Is(err, db.ErrUnavailable),
		errors.Is(err, context.DeadlineExceeded),
		errors.Is(err, context.Canceled):
		return fmt.Errorf("%w: %w", domain.ErrResourceUnavailable, err)
	default:
		return fmt.Errorf("%w: %w", domain.ErrCollaboratorFault, err)
	}
}
