package domain

import "errors"

// Sentinel errors for the domain layer. These provide consistent, checkable
// errors for common transcript failures.
var (
	ErrNotFound     = errors.New("requested message not found")
	ErrEmptyContent = errors.New("message content is empty")
	ErrInvalidRole  = errors.New("invalid message role")
)
