// Package idgen generates task ids.
package idgen

import (
	"github.com/Vlab-Corporation/claude-config-installer/internal/domain"
	"github.com/google/uuid"
)

// Ensure UUID implements domain.IDGenerator.
var _ domain.IDGenerator = UUID{}

// idLength is the number of hex characters kept from the random uuid.
const idLength = 8

// UUID creates ids of the form task-1a2b3c4d from random uuids.
type UUID struct{}

// NewID returns a new task id.
func (UUID) NewID() string {
	return domain.TaskIDPrefix + uuid.NewString()[:idLength]
}
