// Package wavefront implements the alignment worker's aligner
// invocation contract: the request/result shapes passed to and from
// the wavefront aligner, an adaptive-patching implementation built on
// github.com/shenwei356/wfa for identity estimation and a homegrown
// Gotoh affine-gap DP for CIGAR construction, and PAF/SAM record
// serialization.
package wavefront

import "github.com/pjotrp/wfmash/seq"

// Params carries the aligner-bound scoring and threshold knobs the
// pipeline treats as opaque and forwards verbatim.
type Params struct {
	Mismatch  int
	GapOpen   int
	GapExtend int

	MashDistance      float64
	WFMinLength       int
	DistanceThreshold float64
	SegmentLength     int
	BlockLength       int
	ChainGap          int
	MaxPatchingScore  int
	ErodeK            int

	SAMFormat bool
}

// Request carries every field computeAlignments.hpp::doAlignment
// passes down to the aligner.
type Request struct {
	QueryName  string // includes the _<rank> suffix when splitting
	Query      []byte // strand-corrected slice, not the full buffer
	QueryLen   int64  // full query length
	QueryStart int64
	QuerySlice int64 // length of Query
	Strand     seq.Strand
	TargetName string
	Target     []byte // padded reference buffer
	TargetLen  int64  // full target length

	// TargetOrigin is the absolute genomic coordinate of the unpadded
	// interval's start; PAF cols 8/9 and SAM POS report this.
	TargetOrigin int64
	// TargetStart is the offset of the unpadded interval within Target
	// (the padded buffer): it slices Target and is never reported.
	TargetStart int64
	TargetSlice int64 // length of the unpadded target interval

	WantDebug bool // whether the worker's debug accumulator is active
	Params    Params
}

// Result carries the serialized output of one alignment: the primary
// record (PAF or SAM, per Params.SAMFormat) and, when debug output is
// requested, a TSV debug record. Either may be empty, which the
// pipeline treats as success-with-nothing-to-emit.
type Result struct {
	Primary string
	Debug   string
}

// Aligner is the interface the alignment worker calls. Align is
// assumed to always return: soft failures (empty reference fetch, no
// alignable content) are encoded as a Result with an empty Primary
// field rather than a non-nil error. A non-nil error signals an
// unrecoverable condition in the aligner itself.
type Aligner interface {
	Align(req Request) (Result, error)
}
