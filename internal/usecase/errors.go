package usecase

import (
	"errors"
	"fmt"

	"studentshub/internal/repository"
)

var (
	ErrInvalidInput         = errors.New("invalid input")
	ErrUnauthorized         = errors.New("unauthorized")
	ErrInvalidCredentials   = errors.New("invalid credentials")
	ErrInvalidRefreshToken  = errors.New("invalid refresh token")
	ErrRefreshTokenExpired  = errors.New("refresh token expired")
	ErrEmailTaken           = errors.New("email already registered")
	ErrForbidden            = errors.New("forbidden")
	ErrNotFound             = errors.New("not found")
	ErrDuplicateApplication = errors.New("already applied to this job")
	ErrJobUnavailable       = errors.New("job is not accepting applications")
	ErrInvalidTransition    = errors.New("invalid status transition")
	ErrRateLimited          = errors.New("too many requests")
	ErrInternal             = errors.New("internal error")
)

// DuplicateApplicationError carries the id of the application that
// blocks a new one.
type DuplicateApplicationError struct {
	ApplicationID string
}

func (e *DuplicateApplicationError) Error() string {
	return ErrDuplicateApplication.Error()
}

func (e *DuplicateApplicationError) Unwrap() error {
	return ErrDuplicateApplication
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}

func forbidden(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrForbidden, fmt.Sprintf(format, args...))
}

func notFound(what string) error {
	return fmt.Errorf("%w: %s", ErrNotFound, what)
}

// internal keeps the cause for logging while classifying as ErrInternal.
func internal(op string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrInternal, op, err)
}

// storeErr maps repository errors for an entity lookup.
func storeErr(op, what string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, repository.ErrNotFound) {
		return notFound(what)
	}
	return internal(op, err)
}

// passThrough returns err unchanged when it is already classified.
func passThrough(op string, err error) error {
	for _, known := range []error{
		ErrInvalidInput, ErrUnauthorized, ErrForbidden, ErrNotFound, ErrDuplicateApplication,
		ErrJobUnavailable, ErrInvalidTransition, ErrRateLimited, ErrInternal, ErrEmailTaken,
		ErrInvalidCredentials,
	} {
		if errors.Is(err, known) {
			return err
		}
	}
	return internal(op, err)
}
