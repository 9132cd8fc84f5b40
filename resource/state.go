package resource

import (
	"bytes"
	"encoding/json"
)

type Status int

const (
	StatusIdle Status = iota
	StatusLoading
	StatusReady
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusLoading:
		return "loading"
	case StatusReady:
		return "ready"
	case StatusFailed:
		return "failed"
	default:
		return "idle"
	}
}

// State is the lifecycle of one remote collection: exactly one of Idle,
// Loading, Ready(data) or Failed(message) at a time.
type State[T any] struct {
	status  Status
	data    []T
	message string
	err     error
}

func Idle[T any]() State[T] { return State[T]{status: StatusIdle} }

func Loading[T any]() State[T] { return State[T]{status: StatusLoading} }

func Ready[T any](data []T) State[T] {
	if data == nil {
		data = []T{}
	}
	return State[T]{status: StatusReady, data: data}
}

func Failed[T any](message string, err error) State[T] {
	return State[T]{status: StatusFailed, message: message, err: err}
}

func (s State[T]) Status() Status { return s.status }

func (s State[T]) Loading() bool { return s.status == StatusLoading }

func (s State[T]) Ready() bool { return s.status == StatusReady }

func (s State[T]) Failed() bool { return s.status == StatusFailed }

// Data is the fetched collection; empty unless the state is Ready.
func (s State[T]) Data() []T { return s.data }

// Message is the human-readable failure; empty unless the state is Failed.
func (s State[T]) Message() string { return s.message }

// Err is the error behind a Failed state.
func (s State[T]) Err() error { return s.err }

// Coerce decodes a collection payload. Anything that is not a JSON array
// (null, an object, a scalar, nothing) is an empty collection.
func Coerce[T any](raw json.RawMessage) ([]T, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return []T{}, nil
	}

	out := []T{}
	if err := json.Unmarshal(trimmed, &out); err != nil {
		return nil, err
	}
	return out, nil
}
