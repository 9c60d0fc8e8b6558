package domain

import "errors"

// Sentinel errors for domain operations
var (
	// ErrItemNotFound indicates the requested content item does not exist
	ErrItemNotFound = errors.New("content item not found")

	// ErrDuplicateID indicates two catalog entries share an identifier
	ErrDuplicateID = errors.New("duplicate content id")

	// ErrEmptyCatalog indicates the catalog source contained no items
	ErrEmptyCatalog = errors.New("catalog is empty")

	// ErrInvalidItem indicates a catalog entry is missing a required field
	ErrInvalidItem = errors.New("invalid content item")

	// ErrEngineClosed indicates a command was sent to a closed media engine
	ErrEngineClosed = errors.New("media engine is closed")

	// ErrLoadTimeout indicates the media engine never reported the stream as loaded
	ErrLoadTimeout = errors.New("media failed to load")

	// ErrNoPlayer indicates no external player could be launched
	ErrNoPlayer = errors.New("no external player available")
)
