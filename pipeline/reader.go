package pipeline

import (
	"bufio"
	"fmt"
	"os"
	"sync/atomic"

	"github.com/pjotrp/wfmash/fasta"
	"github.com/pjotrp/wfmash/internal/intern"
	"github.com/pjotrp/wfmash/mapping"
	"github.com/pjotrp/wfmash/seqbuf"
)

// lookahead wraps the mapping file with a one-line read-ahead buffer,
// so the Reader can decide, for each FASTA query, how many of the
// upcoming mapping rows belong to it without consuming a row it
// cannot yet use.
type lookahead struct {
	scanner *bufio.Scanner
	cfg     mapping.ParseConfig
	pending *mapping.Record
	lineNo  int
}

func newLookahead(f *os.File, cfg mapping.ParseConfig) (*lookahead, error) {
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	la := &lookahead{scanner: scanner, cfg: cfg}
	if err := la.advance(); err != nil {
		return nil, err
	}
	return la, nil
}

// advance reads and parses the next non-empty mapping line into
// pending, skipping blank lines. It leaves pending nil once the file
// is exhausted.
func (la *lookahead) advance() error {
	for la.scanner.Scan() {
		la.lineNo++
		line := la.scanner.Text()
		if len(line) == 0 {
			continue
		}
		rec, err := mapping.Parse(line, la.cfg)
		if err != nil {
			return fmt.Errorf("mapping: line %d: %w", la.lineNo, err)
		}
		rec.RawLine = line
		la.pending = &rec
		return nil
	}
	if err := la.scanner.Err(); err != nil {
		return fmt.Errorf("mapping: %w", err)
	}
	la.pending = nil
	return nil
}

// Reader is the pipeline's first stage: it iterates query FASTA
// files and, for each query sequence, pushes one Task per mapping row
// whose query_id matches, assigning rank_mapping in file order.
type Reader struct {
	tasks  chan<- Task
	done   *atomic.Bool
	split  bool
	samFmt bool
}

// NewReader constructs a Reader that pushes onto tasks and signals
// done when every query FASTA input is exhausted.
func NewReader(tasks chan<- Task, done *atomic.Bool, split, samFormat bool) *Reader {
	return &Reader{tasks: tasks, done: done, split: split, samFmt: samFormat}
}

// Run drives the Reader to completion: it opens mappingFile and every
// query FASTA in queryFastas, in order, and blocks pushing tasks onto
// the bounded task queue (the pipeline's only backpressure
// mechanism) until every query sequence has been consumed.
func (r *Reader) Run(mappingFile string, queryFastas []string, cfg mapping.ParseConfig) error {
	defer r.done.Store(true)

	f, err := os.Open(mappingFile)
	if err != nil {
		return fmt.Errorf("pipeline: Reader: %w", err)
	}
	defer f.Close()

	la, err := newLookahead(f, cfg)
	if err != nil {
		return fmt.Errorf("pipeline: Reader: %w", err)
	}

	for _, qf := range queryFastas {
		it, err := fasta.OpenQueryIterator(qf)
		if err != nil {
			return fmt.Errorf("pipeline: Reader: %w", err)
		}
		for {
			name, data, ok, err := it.Next()
			if err != nil {
				it.Close()
				return fmt.Errorf("pipeline: Reader: %w", err)
			}
			if !ok {
				break
			}
			buf := seqbuf.New(name, data)
			querySym := intern.Intern(name)
			rank := 0
			for la.pending != nil && la.pending.QueryID == querySym {
				rec := *la.pending
				rec.RankMapping = rank
				suffix := ""
				if r.split && r.samFmt {
					suffix = fmt.Sprintf("_%d", rank)
				}
				r.tasks <- Task{Record: rec, Buffer: buf.Acquire(), QuerySuffix: suffix}
				rank++
				if err := la.advance(); err != nil {
					buf.Release()
					it.Close()
					return err
				}
			}
			buf.Release()
		}
		if err := it.Close(); err != nil {
			return fmt.Errorf("pipeline: Reader: %w", err)
		}
	}
	return nil
}
