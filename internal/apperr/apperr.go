package apperr

import (
	"errors"
	"fmt"
)

// Sentinel errors shared across repos, services and the HTTP layer.
// Callers classify with errors.Is.
var (
	ErrInvalidArgument      = errors.New("invalid argument")
	ErrNotFound             = errors.New("not found")
	ErrReferentialIntegrity = errors.New("referential integrity violation")
)

func InvalidArgumentf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidArgument, fmt.Sprintf(format, args...))
}

func NotFoundf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrNotFound, fmt.Sprintf(format, args...))
}

func ReferentialIntegrityf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrReferentialIntegrity, fmt.Sprintf(format, args...))
}
