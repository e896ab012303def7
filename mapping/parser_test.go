package mapping

import (
	"testing"

	"github.com/pjotrp/wfmash/seq"
)

func TestParseForward(t *testing.T) {
	rec, err := Parse("q1 8 0 8 + chr1 12 0 8 8 8 60 id:f:100.0", ParseConfig{DefaultIdentity: 0.95})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if *rec.QueryID != "q1" || *rec.TargetID != "chr1" {
		t.Fatalf("unexpected ids: %+v", rec)
	}
	if rec.Strand != seq.Forward {
		t.Fatalf("expected forward strand, got %v", rec.Strand)
	}
	if rec.QueryStart != 0 || rec.QueryEnd != 8 {
		t.Fatalf("unexpected query interval: %+v", rec)
	}
	if rec.TargetStart != 0 || rec.TargetEnd != 8 {
		t.Fatalf("unexpected target interval: %+v", rec)
	}
	if rec.EstimatedIdentity != 1.0 {
		t.Fatalf("expected identity 1.0, got %v", rec.EstimatedIdentity)
	}
}

func TestParseReverseStrand(t *testing.T) {
	rec, err := Parse("q1 6 0 6 - chr1 6 0 6 id:f:99.0", ParseConfig{DefaultIdentity: 0.95})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Strand != seq.Reverse {
		t.Fatalf("expected reverse strand, got %v", rec.Strand)
	}
}

func TestParseMissingIdentityUsesDefault(t *testing.T) {
	rec, err := Parse("q1 8 0 8 + chr1 12 0 8", ParseConfig{DefaultIdentity: 0.42})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.EstimatedIdentity != 0.42 {
		t.Fatalf("expected default identity 0.42, got %v", rec.EstimatedIdentity)
	}
}

func TestParseTooFewFields(t *testing.T) {
	_, err := Parse("q1 8 0 8 + chr1 12 0", ParseConfig{DefaultIdentity: 0.95})
	if err == nil {
		t.Fatal("expected error for line with 8 fields")
	}
}

func TestParseNonNumericIdentityTailFallsBackToDefault(t *testing.T) {
	rec, err := Parse("q1 8 0 8 + chr1 12 0 8 8 8 60 id:f:NA", ParseConfig{DefaultIdentity: 0.7})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.EstimatedIdentity != 0.7 {
		t.Fatalf("expected default identity 0.7, got %v", rec.EstimatedIdentity)
	}
}

func TestQuerySpan(t *testing.T) {
	rec := Record{QueryStart: 10, QueryEnd: 42}
	if rec.QuerySpan() != 32 {
		t.Fatalf("expected span 32, got %d", rec.QuerySpan())
	}
}

// TestParseInternsRepeatedIDs locks in that two rows sharing a query or
// target id get back the same Symbol pointer, not merely an
// equal-by-content string: this is what lets the Reader stage compare
// pending.QueryID against a freshly interned FASTA header with ==.
func TestParseInternsRepeatedIDs(t *testing.T) {
	r1, err := Parse("q1 8 0 4 + chr1 12 0 4 id:f:100.0", ParseConfig{DefaultIdentity: 0.95})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	r2, err := Parse("q1 8 4 8 + chr1 12 4 8 id:f:99.0", ParseConfig{DefaultIdentity: 0.95})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r1.QueryID != r2.QueryID {
		t.Fatalf("expected identical query ids to share a Symbol pointer")
	}
	if r1.TargetID != r2.TargetID {
		t.Fatalf("expected identical target ids to share a Symbol pointer")
	}
}
