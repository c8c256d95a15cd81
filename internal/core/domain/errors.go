package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrAlreadyExists indicates an entity already exists.
	ErrAlreadyExists = errors.New("already exists")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrInvalidConfig indicates page, grid or image settings that cannot
	// produce a layout (non-positive sizes, zero columns, no room for a row).
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrNotImplemented indicates functionality is not yet available.
	ErrNotImplemented = errors.New("not implemented")

	// ErrUnsupportedFormat indicates an image format that cannot be decoded.
	ErrUnsupportedFormat = errors.New("unsupported image format")

	// ErrNoPhotos indicates an operation that needs at least one photo.
	ErrNoPhotos = errors.New("no photos")
)
