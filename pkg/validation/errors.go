package validation

import (
	"errors"
	"fmt"
)

// Sentinels for errors.Is matching. The concrete error types below carry
// the detail.
var (
	ErrInvalidProfile = errors.New("invalid elevation profile")
	ErrMissingGeodata = errors.New("missing geodata")
	ErrNotFound       = errors.New("not found")
)

// InvalidProfileError reports a profile that is missing, shorter than two
// points or not strictly increasing in distance.
type InvalidProfileError struct {
	Reason string
}

func (e *InvalidProfileError) Error() string {
	return fmt.Sprintf("%s: %s", ErrInvalidProfile, e.Reason)
}

func (e *InvalidProfileError) Is(target error) bool { return target == ErrInvalidProfile }

// MissingGeodataError reports a pass without coordinates when 3D synthesis
// was requested.
type MissingGeodataError struct {
	PassID string
}

func (e *MissingGeodataError) Error() string {
	return fmt.Sprintf("%s: pass %q has neither coordinates nor coordinates_3d", ErrMissingGeodata, e.PassID)
}

func (e *MissingGeodataError) Is(target error) bool { return target == ErrMissingGeodata }

// NotFoundError is raised by pass stores for unknown ids and passed through
// the core unchanged.
type NotFoundError struct {
	Kind string
	ID   string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q %s", e.Kind, e.ID, ErrNotFound)
}

func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

// InvalidProfile is a shorthand constructor.
func InvalidProfile(format string, args ...any) error {
	return &InvalidProfileError{Reason: fmt.Sprintf(format, args...)}
}
