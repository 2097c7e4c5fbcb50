package protocol

// Payload of a build request.
type BuildRequest struct {
	Config    map[string]any `json:"config,omitempty"`    // Override merged over the defaults.
	Artifacts string         `json:"artifacts,omitempty"` // Artifact directory. Empty uses the daemon's default.
	Timeout   string         `json:"timeout,omitempty"`   // Run deadline as a Go duration, e.g. "30s".
}

// Result of one target.
type TargetResult struct {
	Target   string `json:"target"`
	Status   string `json:"status"`
	Artifact string `json:"artifact,omitempty"`
	Digest   string `json:"digest,omitempty"`
	Reason   string `json:"reason,omitempty"`
}

// Payload of the response to a build request.
type BuildResult struct {
	Run     string         `json:"run"`     // Run ID attached to every streamed record.
	Targets []TargetResult `json:"targets"` // One entry per target, in configuration order.
}

// Payload of the response to a status request.
type StatusResult struct {
	Running bool   `json:"running"`
	Version string `json:"version"`
	Pid     int    `json:"pid"`
	Uptime  string `json:"uptime"`
	Builds  int    `json:"builds"`
}

// Payload of an error response.
type ErrorResult struct {
	Message string `json:"message"`
}
