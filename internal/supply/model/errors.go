package model

import (
	"errors"
	"fmt"
	"strings"
)

// ErrHeaderNotFound — no qualifying header row within the scan bound.
// Fatal to the ingestion pass; callers must not fall back to row 0.
var ErrHeaderNotFound = errors.New("header row not found")

// MappingError — header row was found but the date identity cannot be
// resolved. Carries the unresolved fields for the user-facing message.
type MappingError struct {
	Missing []Field
}

func (e *MappingError) Error() string {
	names := make([]string, len(e.Missing))
	for i, f := range e.Missing {
		names[i] = string(f)
	}
	return fmt.Sprintf("field mapping incomplete: missing %s", strings.Join(names, ", "))
}
