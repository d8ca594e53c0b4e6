package dagmc

import (
	"fmt"
	"strings"

	"github.com/eepeterson/godagmc/internal/meshdb"
)

// DuplicateIDError reports an attempt to assign an ID already held by a
// different live entity of the same category.
type DuplicateIDError struct {
	Category Category
	ID       int
}

func (e *DuplicateIDError) Error() string {
	return fmt.Sprintf("%s ID %d is already in use", strings.ToLower(string(e.Category)), e.ID)
}

// ValidationError reports an entity set whose category and dimension tags are
// absent or inconsistent with the requested entity type.
type ValidationError struct {
	Handle meshdb.Handle
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid entity set %d: %s", e.Handle, e.Reason)
}

// StaleEntityError reports an operation on a wrapper whose entity set has been
// deleted from the model.
type StaleEntityError struct {
	Category Category
	ID       int
}

func (e *StaleEntityError) Error() string {
	return fmt.Sprintf("%s %d is no longer attached to a mesh database", strings.ToLower(string(e.Category)), e.ID)
}
