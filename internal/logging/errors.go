package logging

import "errors"

var (
	ErrSinkPanic = errors.New("log sink panicked")
)
