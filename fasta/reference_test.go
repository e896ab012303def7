package fasta

import (
	"os"
	"path/filepath"
	"testing"
)

func writeReferenceFixture(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "ref.fa")
	content := ">chr1\nACGTACGT\nACGTACGT\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write fasta: %v", err)
	}
	// header is 6 bytes (">chr1\n"), each data line is 8 bases + 1
	// newline = 9 bytes wide.
	fai := "chr1\t16\t6\t8\t9\n"
	if err := os.WriteFile(path+".fai", []byte(fai), 0o644); err != nil {
		t.Fatalf("write fai: %v", err)
	}
	return path
}

func TestReferenceReaderFetchWithinSingleLine(t *testing.T) {
	path := writeReferenceFixture(t)
	r, err := OpenReference(path)
	if err != nil {
		t.Fatalf("OpenReference: %v", err)
	}
	defer r.Close()

	got, err := r.Fetch("chr1", 0, 8)
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if string(got) != "ACGTACGT" {
		t.Fatalf("unexpected fetch: %s", got)
	}
}

func TestReferenceReaderFetchAcrossLineBoundary(t *testing.T) {
	path := writeReferenceFixture(t)
	r, err := OpenReference(path)
	if err != nil {
		t.Fatalf("OpenReference: %v", err)
	}
	defer r.Close()

	got, err := r.Fetch("chr1", 4, 12)
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if string(got) != "ACGTACGT" {
		t.Fatalf("unexpected fetch across line boundary: %s", got)
	}
}

func TestReferenceReaderFetchFullContig(t *testing.T) {
	path := writeReferenceFixture(t)
	r, err := OpenReference(path)
	if err != nil {
		t.Fatalf("OpenReference: %v", err)
	}
	defer r.Close()

	got, err := r.Fetch("chr1", 0, 16)
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if string(got) != "ACGTACGTACGTACGT" {
		t.Fatalf("unexpected full fetch: %s", got)
	}

	length, ok := r.Length("chr1")
	if !ok || length != 16 {
		t.Fatalf("unexpected length: %d, ok=%v", length, ok)
	}
}

func TestReferenceReaderUnknownContig(t *testing.T) {
	path := writeReferenceFixture(t)
	r, err := OpenReference(path)
	if err != nil {
		t.Fatalf("OpenReference: %v", err)
	}
	defer r.Close()

	if _, err := r.Fetch("chrX", 0, 4); err == nil {
		t.Fatal("expected error for unknown contig")
	}
}

func TestReferenceReaderOutOfRange(t *testing.T) {
	path := writeReferenceFixture(t)
	r, err := OpenReference(path)
	if err != nil {
		t.Fatalf("OpenReference: %v", err)
	}
	defer r.Close()

	if _, err := r.Fetch("chr1", 0, 17); err == nil {
		t.Fatal("expected error for out-of-range interval")
	}
}
