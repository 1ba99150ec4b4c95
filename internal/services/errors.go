package services

import (
	"errors"

	"github.com/smlcredit/smlcredit-api/internal/repository"
)

// Common service errors
var (
	ErrNotFound     = errors.New("record not found")
	ErrDuplicate    = errors.New("duplicate record")
	ErrUnauthorized = errors.New("unauthorized")
	ErrInvalidInput = errors.New("invalid input")
)

// fromRepo maps storage errors onto the service sentinels so handlers only
// ever switch on one error family.
func fromRepo(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, repository.ErrNotFound):
		return ErrNotFound
	case errors.Is(err, repository.ErrConflict):
		return ErrDuplicate
	default:
		return err
	}
}
