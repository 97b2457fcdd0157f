package batch

import "github.com/kailas-cloud/recdex/internal/domain/item"

// ItemStatus is the processing outcome of a single batch item.
type ItemStatus string

// Batch item status values.
const (
	StatusOK    ItemStatus = "ok"
	StatusError ItemStatus = "error"
)

// Result is the outcome of processing one item in a batch operation.
type Result struct {
	key    item.Key
	status ItemStatus
	err    error
}

// NewOK creates a successful batch result.
func NewOK(key item.Key) Result { return Result{key: key, status: StatusOK} }

// NewError creates a failed batch result.
func NewError(key item.Key, err error) Result { return Result{key: key, status: StatusError, err: err} }

// Key returns the item the result is for.
func (r Result) Key() item.Key { return r.key }

// Status returns the processing outcome.
func (r Result) Status() ItemStatus { return r.status }

// Err returns the error, if any.
func (r Result) Err() error { return r.err }
