package build

import "errors"

var (
	ErrBuild           = errors.New("build failed")
	ErrOpenCLLink      = errors.New("OpenCL linking unsupported")
	ErrSIMDRequired    = errors.New("SIMD required for vectorization")
	ErrPipelineAborted = errors.New("pipeline aborted")
)
