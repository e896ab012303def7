package wavefront

import (
	"strings"
	"testing"

	"github.com/pjotrp/wfmash/seq"
)

func TestPatchingAlignerForwardPAF(t *testing.T) {
	query := []byte("ACGTACGTACGT")
	target := []byte("ACGTACGTACGT")
	req := Request{
		QueryName:   "q1",
		Query:       query,
		QueryLen:    int64(len(query)),
		QueryStart:  0,
		QuerySlice:  int64(len(query)),
		Strand:      seq.Forward,
		TargetName:  "chr1",
		Target:      target,
		TargetLen:   int64(len(target)),
		TargetStart: 0,
		TargetSlice: int64(len(target)),
		Params:      defaultParams(),
	}
	aligner := NewPatchingAligner()
	result, err := aligner.Align(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Primary == "" {
		t.Fatal("expected a non-empty PAF record")
	}
	if !strings.HasPrefix(result.Primary, "q1\t") {
		t.Fatalf("expected record to start with query name, got %s", result.Primary)
	}
	if !strings.Contains(result.Primary, "cg:Z:12M") {
		t.Fatalf("expected full-length match CIGAR, got %s", result.Primary)
	}
}

func TestPatchingAlignerEmptySliceYieldsEmptyResult(t *testing.T) {
	req := Request{Params: defaultParams()}
	aligner := NewPatchingAligner()
	result, err := aligner.Align(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Primary != "" {
		t.Fatalf("expected empty result for zero-length slices, got %q", result.Primary)
	}
}

func TestPatchingAlignerSAMFormat(t *testing.T) {
	query := []byte("ACGTACGT")
	target := []byte("ACGTACGT")
	params := defaultParams()
	params.SAMFormat = true
	req := Request{
		QueryName:   "q1",
		Query:       query,
		QueryLen:    int64(len(query)),
		QuerySlice:  int64(len(query)),
		Strand:      seq.Forward,
		TargetName:  "chr1",
		Target:      target,
		TargetLen:   int64(len(target)),
		TargetSlice: int64(len(target)),
		Params:      params,
	}
	aligner := NewPatchingAligner()
	result, err := aligner.Align(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	fields := strings.Split(strings.TrimSpace(result.Primary), "\t")
	if len(fields) < 11 {
		t.Fatalf("expected at least 11 mandatory SAM fields, got %d: %v", len(fields), fields)
	}
}

func TestPatchingAlignerDebugOutput(t *testing.T) {
	query := []byte("ACGTACGT")
	target := []byte("ACGTACGT")
	req := Request{
		QueryName:   "q1",
		Query:       query,
		QuerySlice:  int64(len(query)),
		TargetName:  "chr1",
		Target:      target,
		TargetSlice: int64(len(target)),
		WantDebug:   true,
		Params:      defaultParams(),
	}
	aligner := NewPatchingAligner()
	result, err := aligner.Align(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Debug == "" {
		t.Fatal("expected non-empty debug output when WantDebug is set")
	}
}
