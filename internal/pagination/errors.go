package pagination

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidGeometry matches any InvalidGeometryError via errors.Is
	ErrInvalidGeometry = errors.New("invalid page geometry")
	// ErrEmptySource matches any EmptySourceError via errors.Is
	ErrEmptySource = errors.New("empty source")
)

// InvalidGeometryError is returned when the page geometry or source width
// leaves no printable area. It is a configuration error and never retried.
type InvalidGeometryError struct {
	Reason string
}

func (e *InvalidGeometryError) Error() string {
	return fmt.Sprintf("invalid page geometry: %s", e.Reason)
}

func (e *InvalidGeometryError) Is(target error) bool {
	return target == ErrInvalidGeometry
}

// EmptySourceError is returned when the source has no rows to paginate
type EmptySourceError struct {
	Height int
}

func (e *EmptySourceError) Error() string {
	return fmt.Sprintf("empty source: height %d", e.Height)
}

func (e *EmptySourceError) Is(target error) bool {
	return target == ErrEmptySource
}
