package pipeline

import (
	"fmt"
	"log"
	"sync/atomic"

	"github.com/pjotrp/wfmash/fasta"
	"github.com/pjotrp/wfmash/seq"
	"github.com/pjotrp/wfmash/wavefront"
)

// Worker is one member of the alignment worker pool. Each worker owns
// a private fasta.ReferenceReader, constructed once and never shared,
// so random-access reference fetches require no synchronization.
type Worker struct {
	id       int
	ref      *fasta.ReferenceReader
	aligner  wavefront.Aligner
	params   wavefront.Params
	maxPad   int64
	wantDbg  bool
	active   *atomic.Bool
	progress *Progress
}

// NewWorker constructs a Worker with its own reference reader opened
// against referencePath.
func NewWorker(id int, referencePath string, aligner wavefront.Aligner, params wavefront.Params, maxPad int64, wantDebug bool, active *atomic.Bool, progress *Progress) (*Worker, error) {
	ref, err := fasta.OpenReference(referencePath)
	if err != nil {
		return nil, fmt.Errorf("pipeline: Worker %d: %w", id, err)
	}
	return &Worker{id: id, ref: ref, aligner: aligner, params: params, maxPad: maxPad, wantDbg: wantDebug, active: active, progress: progress}, nil
}

// Close releases the worker's private reference reader.
func (w *Worker) Close() error {
	return w.ref.Close()
}

// Run consumes tasks until the channel is closed (the Reader stage
// has exhausted every query and every task already pushed has been
// drained), emitting primary and, when enabled, debug strings onto
// the respective output channels.
func (w *Worker) Run(tasks <-chan Task, primary chan<- string, debug chan<- string) {
	for task := range tasks {
		w.active.Store(true)
		if err := w.processOne(task, primary, debug); err != nil {
			log.Printf("pipeline: worker %d: %v", w.id, err)
		}
		w.active.Store(false)
	}
}

// processOne returns a non-nil *TaskError when the task could not be
// aligned; the caller logs it and moves on, since a per-task failure
// never stops the pipeline.
func (w *Worker) processOne(task Task, primary chan<- string, debug chan<- string) *TaskError {
	rec := task.Record
	defer task.Buffer.Release()
	reported := false
	defer func() {
		if !reported {
			w.progress.Advance(rec.QuerySpan(), -1)
		}
	}()

	targetID := *rec.TargetID
	targetLen, ok := w.ref.Length(targetID)
	if !ok {
		return &TaskError{Task: task, Reason: fmt.Sprintf("unknown target %q", targetID)}
	}

	headPad := rec.TargetStart
	if headPad > w.maxPad {
		headPad = w.maxPad
	}
	tailRoom := targetLen - rec.TargetEnd
	tailPad := tailRoom
	if tailPad > w.maxPad {
		tailPad = w.maxPad
	}

	paddedStart := rec.TargetStart - headPad
	paddedEnd := rec.TargetEnd + tailPad
	target, err := w.ref.Fetch(targetID, paddedStart, paddedEnd)
	if err != nil {
		return &TaskError{Task: task, Reason: fmt.Sprintf("reference fetch failed for %q", targetID), Cause: err}
	}
	if len(target) == 0 {
		return &TaskError{Task: task, Reason: fmt.Sprintf("empty reference fetch for %q [%d,%d)", targetID, paddedStart, paddedEnd)}
	}

	forwardQuery := task.Buffer.Slice(rec.QueryStart, rec.QueryEnd)
	query := seq.Convert(forwardQuery, rec.Strand)

	req := wavefront.Request{
		QueryName:    task.Buffer.Name() + task.QuerySuffix,
		Query:        query,
		QueryLen:     task.Buffer.Len(),
		QueryStart:   rec.QueryStart,
		QuerySlice:   rec.QueryEnd - rec.QueryStart,
		Strand:       rec.Strand,
		TargetName:   targetID,
		Target:       target,
		TargetLen:    targetLen,
		TargetOrigin: rec.TargetStart,
		TargetStart:  headPad,
		TargetSlice:  rec.TargetEnd - rec.TargetStart,
		WantDebug:    w.wantDbg,
		Params:       w.params,
	}

	result, err := w.aligner.Align(req)
	if err != nil {
		return &TaskError{Task: task, Reason: fmt.Sprintf("aligner error for query %q", *rec.QueryID), Cause: err}
	}
	if result.Primary == "" {
		return nil
	}
	primary <- result.Primary
	if w.wantDbg && result.Debug != "" && debug != nil {
		debug <- result.Debug
	}
	reported = true
	w.progress.Advance(rec.QuerySpan(), rec.EstimatedIdentity)
	return nil
}
