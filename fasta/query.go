package fasta

import (
	"bufio"
	"fmt"
	"os"

	"github.com/pjotrp/wfmash/internal/bgzf"
	"github.com/pjotrp/wfmash/seq"
)

// QueryIterator pulls one query sequence at a time out of a FASTA
// file, transparently decompressing bgzip or plain gzip input. It
// satisfies the Reader stage's need to interleave FASTA iteration
// with mapping-file lookahead without a separate goroutine: callers
// drive it explicitly with Next, rather than the iterator pushing
// records through a callback.
type QueryIterator struct {
	file    *os.File
	scanner *bufio.Scanner
	nextHdr []byte
	done    bool
	err     error
}

func contigFromHeader(b []byte) string {
	i := 1
	for ; i < len(b); i++ {
		if c := b[i]; c >= '!' && c <= '~' {
			break
		}
	}
	j := i + 1
	for ; j < len(b); j++ {
		if c := b[j]; c < '!' || c > '~' {
			break
		}
	}
	return string(b[i:j])
}

// OpenQueryIterator opens filename and prepares it for iteration. It
// tolerates bgzip/gzip-compressed input transparently.
func OpenQueryIterator(filename string) (*QueryIterator, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("fasta: OpenQueryIterator: %w", err)
	}
	buffered := bufio.NewReader(f)
	reader, err := bgzf.HandleBGZF(buffered)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("fasta: OpenQueryIterator: %w", err)
	}
	scanner := bufio.NewScanner(reader)
	scanner.Buffer(make([]byte, 0, 64*1024), 64*1024*1024)
	return &QueryIterator{file: f, scanner: scanner}, nil
}

// nextNonEmptyLine advances the scanner past blank lines, tolerating
// them anywhere in the file. It returns false once input is
// exhausted.
func (it *QueryIterator) nextNonEmptyLine() ([]byte, bool) {
	for it.scanner.Scan() {
		b := it.scanner.Bytes()
		if len(b) > 0 {
			return b, true
		}
	}
	return nil, false
}

// Next returns the next (name, sequence) pair, already canonicalized
// to upper-case A/C/G/T/N. ok is false once the file is exhausted; a
// non-nil error indicates a malformed FASTA file (e.g. content before
// the first header), which callers must treat as fatal.
func (it *QueryIterator) Next() (name string, data []byte, ok bool, err error) {
	if it.done {
		return "", nil, false, it.err
	}

	var header []byte
	if it.nextHdr != nil {
		header = it.nextHdr
		it.nextHdr = nil
	} else {
		b, got := it.nextNonEmptyLine()
		if !got {
			it.done = true
			return "", nil, false, nil
		}
		if b[0] != '>' {
			it.done = true
			it.err = fmt.Errorf("fasta: invalid file - missing first header")
			return "", nil, false, it.err
		}
		header = b
	}

	name = contigFromHeader(header)
	var seqBytes []byte
	for {
		b, got := it.nextNonEmptyLine()
		if !got {
			it.done = true
			break
		}
		if b[0] == '>' {
			cp := make([]byte, len(b))
			copy(cp, b)
			it.nextHdr = cp
			break
		}
		seqBytes = append(seqBytes, b...)
	}
	seq.Canonicalize(seqBytes)
	return name, seqBytes, true, nil
}

// Close releases the underlying file descriptor.
func (it *QueryIterator) Close() error {
	return it.file.Close()
}
