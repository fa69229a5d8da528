package cookie

import "errors"

var (
	// ErrInvalidArgument is returned when a required argument is missing or
	// out of range. It signals a programming error in the caller.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrUnknownPolicy is returned when no Spec factory is registered for a
	// cookie policy identifier.
	ErrUnknownPolicy = errors.New("unsupported cookie policy")
	// ErrInvalidRequest is returned when the request target cannot be parsed.
	ErrInvalidRequest = errors.New("invalid request URI")
)
