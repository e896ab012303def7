// Package mapping parses mashmap-style approximate-mapping rows and
// provides a parallel pre-scan to size the progress meter.
package mapping

import (
	"github.com/pjotrp/wfmash/internal/intern"
	"github.com/pjotrp/wfmash/seq"
)

// Record is one parsed mapping row: a single candidate approximate
// mapping between a query interval and a target interval. QueryID and
// TargetID are interned: every record sharing a query or contig name
// holds the same Symbol pointer, so the Reader stage's per-query
// grouping compares names by pointer instead of by content.
type Record struct {
	QueryID     intern.Symbol
	QueryStart  int64
	QueryEnd    int64
	Strand      seq.Strand
	TargetID    intern.Symbol
	TargetStart int64
	TargetEnd   int64

	// EstimatedIdentity is in (0,1]; it is the configured default when
	// the mapping line carries no identity field.
	EstimatedIdentity float64

	// RankMapping is assigned by the Reader stage, not by Parse: it is
	// the 0-based position of this record among all records sharing
	// QueryID, in file order.
	RankMapping int

	// RawLine is the unparsed mapping-file line this record came from,
	// assigned by the Reader stage for inclusion in per-task failure
	// reports. Parse itself leaves it empty.
	RawLine string
}

// QuerySpan is QueryEnd - QueryStart, the quantity the progress
// counter accumulates.
func (r Record) QuerySpan() int64 {
	return r.QueryEnd - r.QueryStart
}
