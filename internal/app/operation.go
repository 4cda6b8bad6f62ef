package app

import "time"

// Operation tracks one CLI invocation. Its ID tags every log line the
// invocation writes.
type Operation struct {
	ID        string
	Name      string
	StartedAt time.Time
	Status    string // "success" or "error"
}

// NewOperation creates an operation that has started at startedAt and has not failed.
func NewOperation(id, name string, startedAt time.Time) *Operation {
	return &Operation{
		ID:        id,
		Name:      name,
		StartedAt: startedAt,
		Status:    "success",
	}
}

// Fail marks the operation as failed.
func (op *Operation) Fail() { op.Status = "error" }

// Failed reports whether Fail was called.
func (op *Operation) Failed() bool { return op.Status == "error" }

// Elapsed returns the time since the operation started, truncated to milliseconds.
func (op *Operation) Elapsed(now time.Time) time.Duration {
	return now.Sub(op.StartedAt).Truncate(time.Millisecond)
}
