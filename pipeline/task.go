// Package pipeline wires the Reader, Alignment Worker pool, and
// Writer stages together around bounded channels, mirroring the
// spec's five-component pipeline with Go channels standing in for its
// bounded MPMC queues and condition-variable-equivalent flags.
package pipeline

import (
	"fmt"

	"github.com/pjotrp/wfmash/mapping"
	"github.com/pjotrp/wfmash/seqbuf"
)

// Task is one unit of work dequeued by an alignment worker: a single
// mapping record plus a handle onto the shared query buffer it was
// cut from. Buffer must be Released exactly once, regardless of
// whether the task produces output.
type Task struct {
	Record      mapping.Record
	Buffer      seqbuf.Buffer
	QuerySuffix string // "_<rank>" when split+SAM-format both apply, else ""
}

// TaskError describes a per-task failure that does not stop the
// pipeline: a reference lookup miss, a zero-length or failed reference
// fetch, or an aligner error. The worker returns it instead of logging
// inline; Run logs it to stderr and drops the task, but progress still
// advances by the task's query span.
type TaskError struct {
	Task   Task
	Reason string
	Cause  error // nil for failures with no underlying error (e.g. unknown target)
}

func (e *TaskError) Error() string {
	rec := e.Task.Record
	if e.Cause != nil {
		return fmt.Sprintf("task dropped (%s) for raw_mapping_line %q: %v", e.Reason, rec.RawLine, e.Cause)
	}
	return fmt.Sprintf("task dropped (%s) for raw_mapping_line %q", e.Reason, rec.RawLine)
}

func (e *TaskError) Unwrap() error {
	return e.Cause
}
