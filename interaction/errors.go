package interaction

import "errors"

var (
	// ErrStoreRequired is returned when an interaction store is not provided.
	ErrStoreRequired = errors.New("interaction store required")
)
