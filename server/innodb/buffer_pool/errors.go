package buffer_pool

import "errors"

// Sentinel errors surfaced by the buffer pool. Most public operations report
// failure as a plain bool/ok (see the PoolInstance methods in pool.go); these are
// reserved for the handful of calls — mainly construction — that have no
// natural bool signal.
var (
	ErrInvalidPoolSize     = errors.New("buffer_pool: pool size must be positive")
	ErrInvalidInstanceSpec = errors.New("buffer_pool: instance index out of range for num_instances")
	ErrNilDiskManager      = errors.New("buffer_pool: disk manager is required")
)

// PoolError wraps a lower-level error with the operation that triggered it,
// in the teacher package's Op/Err error style.
type PoolError struct {
	Op  string
	Err error
}

func (e *PoolError) Error() string {
	if e.Err == nil {
		return e.Op
	}
	return e.Op + ": " + e.Err.Error()
}

func (e *PoolError) Unwrap() error { return e.Err }

func newError(op string, err error) error {
	return &PoolError{Op: op, Err: err}
}
