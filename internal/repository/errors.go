package repository

import "errors"

// Storage-level errors. Services translate these into their own sentinels.
var (
	ErrNotFound = errors.New("record not found")
	ErrConflict = errors.New("record already exists")
)
