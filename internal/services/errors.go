package services

import "errors"

// Dashboard service errors
var (
	ErrUnknownChart  = errors.New("unknown chart")
	ErrUnknownFormat = errors.New("unsupported format")
)
