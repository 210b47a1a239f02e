package router

import "errors"

var (
	// ErrClassifierRequired is returned when a classification model is not
	// provided.
	ErrClassifierRequired = errors.New("classifier model required")
)
