// Package idgen provides UUID-based entity identities.
package idgen

import (
	"github.com/google/uuid"
	"github.com/runoshun/planner/internal/domain"
)

// Ensure UUID implements domain.IDGenerator.
var _ domain.IDGenerator = UUID{}

// UUID generates random (version 4) UUID strings.
type UUID struct{}

// NewID returns a new random UUID.
func (UUID) NewID() string {
	return uuid.New().String()
}
