package protocol

import (
	"encoding/json"
	"fmt"
)

// Identifies the kind of an envelope.
type Command string

const (
	CmdBuild    Command = "build"    // Run a build; streams the log, then replies ok.
	CmdStatus   Command = "status"   // Query daemon status.
	CmdShutdown Command = "shutdown" // Stop the daemon.
	CmdOK       Command = "ok"       // Successful response.
	CmdError    Command = "error"    // Failed request.
)

// Top-level message on the wire.
type Envelope struct {
	Command Command         `json:"command"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// Encodes a command and its payload as an envelope.
//
// A nil payload is omitted. The returned bytes carry no trailing newline.
func Encode(cmd Command, payload any) ([]byte, error) {
	env := Envelope{Command: cmd}

	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrMalformed, err)
		}
		env.Payload = raw
	}

	return json.Marshal(env)
}

// Decodes an envelope, returning it together with its raw payload.
func Decode(data []byte) (*Envelope, json.RawMessage, error) {
	var env Envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, nil, fmt.Errorf("%w: %w", ErrMalformed, err)
	}
	if env.Command == "" {
		return nil, nil, ErrMissingCommand
	}
	return &env, env.Payload, nil
}

// Decodes a payload into a value of type T.
//
// An empty payload yields the zero value.
func DecodePayload[T any](payload json.RawMessage) (*T, error) {
	var v T
	if len(payload) == 0 {
		return &v, nil
	}
	if err := json.Unmarshal(payload, &v); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformed, err)
	}
	return &v, nil
}

// Whether a line read from the daemon is a response envelope rather than a
// build log record.
func IsEnvelope(line []byte) bool {
	var probe struct {
		Command *Command `json:"command"`
	}
	if err := json.Unmarshal(line, &probe); err != nil {
		return false
	}
	return probe.Command != nil
}
