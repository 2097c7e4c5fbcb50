package build

import (
	ocispec "github.com/opencontainers/image-spec/specs-go/v1"
)

// Terminal state of a target's pipeline.
type Status string

const (
	StatusSuccess Status = "success"
	StatusFailure Status = "failure"
)

// Result of one target's pipeline.
type Outcome struct {
	Target     string              // Target architecture.
	Status     Status              // Success or failure.
	Artifact   string              // Artifact path; empty on failure.
	Descriptor *ocispec.Descriptor // Content descriptor of the artifact; nil on failure.
	Reason     string              // Human-readable failure reason; empty on success.
	Err        error               // Underlying failure; nil on success.
}

// Creates a successful outcome.
func Success(target, artifact string, desc ocispec.Descriptor) Outcome {
	return Outcome{
		Target:     target,
		Status:     StatusSuccess,
		Artifact:   artifact,
		Descriptor: &desc,
	}
}

// Creates a failed outcome.
func Failure(target, reason string, err error) Outcome {
	return Outcome{
		Target: target,
		Status: StatusFailure,
		Reason: reason,
		Err:    err,
	}
}

// Whether the target produced an artifact.
func (o Outcome) OK() bool {
	return o.Status == StatusSuccess
}

// Returned after every target of a run has finished.
type Summary struct {
	RunID    string    // Identifier attached to every record of the run.
	Outcomes []Outcome // One outcome per target, in configuration order.
}

// Returns the number of successful targets.
func (s *Summary) Succeeded() int {
	n := 0
	for _, o := range s.Outcomes {
		if o.OK() {
			n++
		}
	}
	return n
}

// Returns the number of failed targets.
func (s *Summary) Failed() int {
	return len(s.Outcomes) - s.Succeeded()
}
