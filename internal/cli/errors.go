package cli

import "errors"

var (
	ErrTargetsFailed = errors.New("targets failed")
)
