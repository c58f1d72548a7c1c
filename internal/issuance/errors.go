package issuance

import "fmt"

// Issuance steps that can fail with a DependencyError.
const (
	OpRender = "render"
	OpUpload = "upload"
)

// DependencyError reports a render or upload failure during issuance.
// The record written before the failure, if any, is kept.
type DependencyError struct {
	Op  string
	ID  string
	Err error
}

func (e *DependencyError) Error() string {
	return fmt.Sprintf("%s certificate %s: %v", e.Op, e.ID, e.Err)
}

func (e *DependencyError) Unwrap() error { return e.Err }
