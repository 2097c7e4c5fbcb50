package config

import (
	"errors"
	"fmt"

	"github.com/containerd/errdefs"
)

var (
	ErrInvalidConfig = fmt.Errorf("invalid configuration: %w", errdefs.ErrInvalidArgument)
	ErrLoad          = errors.New("failed to load configuration")
)
