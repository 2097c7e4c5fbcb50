package protocol

import "errors"

var (
	ErrMalformed      = errors.New("malformed message")
	ErrMissingCommand = errors.New("missing command")
)
