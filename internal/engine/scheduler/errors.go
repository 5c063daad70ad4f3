package scheduler

import "errors"

// Errors returned by Schedule.
var (
	// ErrCapacityExceeded indicates MaxPending tasks are already pending.
	ErrCapacityExceeded = errors.New("maximum number of scheduled events reached")

	// ErrClosed indicates the scheduler has been torn down.
	ErrClosed = errors.New("scheduler closed")
)
