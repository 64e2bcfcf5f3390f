package services

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/custodia-labs/bismuth/internal/core/domain"
)

// newID returns a fresh random identifier.
func newID() string {
	return uuid.NewString()
}

// validateID checks that id is a UUID.
func validateID(kind, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return fmt.Errorf("%w: %s id %q", domain.ErrInvalidInput, kind, id)
	}
	return nil
}
