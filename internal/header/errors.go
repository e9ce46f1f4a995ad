package header

import "errors"

var (
	// ErrNotReady is returned by operations attempted before OnAttachedLayout.
	ErrNotReady = errors.New("header: layout manager not initialized yet")
	// ErrInvalidHost is returned when a Host is missing a collaborator.
	ErrInvalidHost = errors.New("header: host is missing a collaborator")
	// ErrInvalidGeometry is returned when the container size cannot hold the snap zones.
	ErrInvalidGeometry = errors.New("header: invalid snap geometry")
	// ErrUnresolvedHolder marks a view whose adapter position cannot be found.
	ErrUnresolvedHolder = errors.New("header: view holder not found")
)
