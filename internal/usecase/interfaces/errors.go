package interfaces

import "errors"

// ErrPreconditionFailed is returned by repositories when a conditional write
// finds the record in a different state than the caller expected.
var ErrPreconditionFailed = errors.New("precondition failed")
