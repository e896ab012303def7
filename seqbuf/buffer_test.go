package seqbuf

import "testing"

func TestAcquireReleaseRefcount(t *testing.T) {
	b := New("q1", []byte("ACGT"))
	if b.Refs() != 1 {
		t.Fatalf("expected 1 ref, got %d", b.Refs())
	}
	c := b.Acquire()
	if b.Refs() != 2 {
		t.Fatalf("expected 2 refs, got %d", b.Refs())
	}
	c.Release()
	if b.Refs() != 1 {
		t.Fatalf("expected 1 ref after release, got %d", b.Refs())
	}
	b.Release()
	if b.Refs() != 0 {
		t.Fatalf("expected 0 refs after final release, got %d", b.Refs())
	}
}

func TestSliceAliasesData(t *testing.T) {
	b := New("q1", []byte("ACGTACGT"))
	s := b.Slice(2, 6)
	if string(s) != "GTAC" {
		t.Fatalf("unexpected slice: %s", s)
	}
	if b.Len() != 8 {
		t.Fatalf("expected len 8, got %d", b.Len())
	}
	if b.Name() != "q1" {
		t.Fatalf("unexpected name: %s", b.Name())
	}
}
