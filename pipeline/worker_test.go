package pipeline

import (
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/pjotrp/wfmash/mapping"
	"github.com/pjotrp/wfmash/seqbuf"
	"github.com/pjotrp/wfmash/wavefront"
)

// TestProcessOneReturnsTaskErrorForUnknownTarget locks in the typed
// failure contract: a mapping row naming a contig absent from the
// reference's .fai must come back as a *TaskError quoting the raw
// mapping line, not a bare log line with no return value.
func TestProcessOneReturnsTaskErrorForUnknownTarget(t *testing.T) {
	dir := t.TempDir()
	refPath := filepath.Join(dir, "ref.fa")
	writeFile(t, refPath, ">chr1\nACGTACGTACGT\n")
	writeFile(t, refPath+".fai", "chr1\t12\t6\t12\t13\n")

	progress := NewProgress(8)
	active := &atomic.Bool{}
	w, err := NewWorker(0, refPath, nopAligner{}, wavefront.Params{}, 32768, false, active, progress)
	if err != nil {
		t.Fatalf("NewWorker: %v", err)
	}
	defer w.Close()

	line := "q1 8 0 8 + chrMissing 12 0 8 id:f:100.0"
	rec, err := mapping.Parse(line, mapping.ParseConfig{DefaultIdentity: 0.95})
	if err != nil {
		t.Fatalf("mapping.Parse: %v", err)
	}
	rec.RawLine = line

	task := Task{Record: rec, Buffer: seqbuf.New("q1", []byte("ACGTACGT"))}
	primary := make(chan string, 1)

	taskErr := w.processOne(task, primary, nil)
	if taskErr == nil {
		t.Fatal("expected a *TaskError for an unknown target")
	}
	if taskErr.Reason == "" {
		t.Fatal("expected a non-empty Reason")
	}
	if got := taskErr.Error(); got == "" {
		t.Fatal("expected Error() to render a message")
	}
	if taskErr.Task.Record.RawLine != line {
		t.Fatalf("expected TaskError to carry the raw mapping line, got %q", taskErr.Task.Record.RawLine)
	}
	if progress.Current() != 8 {
		t.Fatalf("expected progress to still advance by the dropped task's query span, got %d", progress.Current())
	}
}

type nopAligner struct{}

func (nopAligner) Align(req wavefront.Request) (wavefront.Result, error) {
	return wavefront.Result{}, nil
}
