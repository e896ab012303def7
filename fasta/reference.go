// elPrep: a high-performance tool for analyzing SAM/BAM files.
// Copyright (c) 2017-2020 imec vzw.

// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as
// published by the Free Software Foundation, either version 3 of the
// License, or (at your option) any later version, and Additional Terms
// (see below).

// This program is distributed in the hope that it will be useful, but
// WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the GNU
// Affero General Public License for more details.

// You should have received a copy of the GNU Affero General Public
// License and Additional Terms along with this program. If not, see
// <https://github.com/ExaScience/elprep/blob/master/LICENSE.txt>.

package fasta

import (
	"bufio"
	"bytes"
	"fmt"
	"os"
	"strconv"

	"golang.org/x/sys/unix"

	"github.com/pjotrp/wfmash/seq"
)

// FaiReference is one entry of a samtools-style .fai index: the
// length of a contig's sequence and the byte layout the sequence was
// written with, enough to compute a random-access file offset for any
// subinterval without scanning the file.
type FaiReference struct {
	Length    int64
	Offset    int64
	LineBases int32
	LineWidth int32
}

// ParseFai parses a .fai index file, as produced by `samtools faidx`.
func ParseFai(filename string) (map[string]FaiReference, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("fasta: ParseFai: %w", err)
	}
	defer f.Close()

	fai := make(map[string]FaiReference)
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		b := bytes.Split(scanner.Bytes(), []byte("\t"))
		if len(b) != 5 {
			return nil, fmt.Errorf("fasta: ParseFai: %s: malformed line, want 5 tab-separated fields, got %d", filename, len(b))
		}
		length, err := strconv.ParseInt(string(b[1]), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("fasta: ParseFai: %s: bad length: %w", filename, err)
		}
		offset, err := strconv.ParseInt(string(b[2]), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("fasta: ParseFai: %s: bad offset: %w", filename, err)
		}
		lineBases, err := strconv.ParseInt(string(b[3]), 10, 32)
		if err != nil {
			return nil, fmt.Errorf("fasta: ParseFai: %s: bad line bases: %w", filename, err)
		}
		lineWidth, err := strconv.ParseInt(string(b[4]), 10, 32)
		if err != nil {
			return nil, fmt.Errorf("fasta: ParseFai: %s: bad line width: %w", filename, err)
		}
		fai[string(b[0])] = FaiReference{
			Length:    length,
			Offset:    offset,
			LineBases: int32(lineBases),
			LineWidth: int32(lineWidth),
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("fasta: ParseFai: %s: %w", filename, err)
	}
	return fai, nil
}

// ReferenceReader is a thread-local, random-access reader onto an
// indexed reference FASTA, mmapped read-only. It is not safe for
// concurrent use by multiple goroutines: each worker in the alignment
// pool owns a private ReferenceReader obtained with a fresh Open call
// against the same file.
type ReferenceReader struct {
	file *os.File
	data []byte
	fai  map[string]FaiReference
}

// OpenReference mmaps path read-only and parses the accompanying
// path+".fai" index, returning a reader ready to serve Fetch calls.
func OpenReference(path string) (*ReferenceReader, error) {
	fai, err := ParseFai(path + ".fai")
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("fasta: OpenReference: %w", err)
	}
	stat, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("fasta: OpenReference: %w", err)
	}
	data, err := unix.Mmap(int(f.Fd()), 0, int(stat.Size()), unix.PROT_READ, unix.MAP_SHARED)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("fasta: OpenReference: mmap: %w", err)
	}
	return &ReferenceReader{file: f, data: data, fai: fai}, nil
}

// Close unmaps the reference file and closes its descriptor.
func (r *ReferenceReader) Close() error {
	err := unix.Munmap(r.data)
	r.data = nil
	if cerr := r.file.Close(); err == nil {
		err = cerr
	}
	return err
}

// Length returns the full length of the named contig, and whether the
// contig is present in the index.
func (r *ReferenceReader) Length(contig string) (int64, bool) {
	ref, ok := r.fai[contig]
	return ref.Length, ok
}

// byteOffset converts a 0-based sequence position within contig into
// a byte offset into the mmapped file, accounting for the newline
// bytes samtools' .fai format interleaves every LineBases characters.
func byteOffset(ref FaiReference, pos int64) int64 {
	line := pos / int64(ref.LineBases)
	col := pos % int64(ref.LineBases)
	return ref.Offset + line*int64(ref.LineWidth) + col
}

// Fetch returns the canonicalized (upper-case A/C/G/T/N) bytes of
// contig in [start, end). It returns an error if the contig is
// unknown or the interval falls outside the contig's length, which
// callers must treat as a per-task reference-lookup miss, not a fatal
// error.
func (r *ReferenceReader) Fetch(contig string, start, end int64) ([]byte, error) {
	ref, ok := r.fai[contig]
	if !ok {
		return nil, fmt.Errorf("fasta: Fetch: unknown contig %q", contig)
	}
	if start < 0 || end > ref.Length || start > end {
		return nil, fmt.Errorf("fasta: Fetch: interval [%d,%d) out of range for contig %q of length %d", start, end, contig, ref.Length)
	}
	out := make([]byte, 0, end-start)
	pos := start
	for pos < end {
		col := pos % int64(ref.LineBases)
		remainingInLine := int64(ref.LineBases) - col
		n := end - pos
		if n > remainingInLine {
			n = remainingInLine
		}
		off := byteOffset(ref, pos)
		out = append(out, r.data[off:off+n]...)
		pos += n
	}
	seq.Canonicalize(out)
	return out, nil
}
