package service

import "errors"

var (
	// ErrInvalidURL is returned when a request URL cannot be parsed.
	ErrInvalidURL = errors.New("invalid request url")
	// ErrEmptyPermalink is returned when a permalink lookup has no permalink.
	ErrEmptyPermalink = errors.New("permalink must not be empty")
	// ErrUnknownObjectType is returned for object types outside the known set.
	ErrUnknownObjectType = errors.New("unknown object type")
)
