package wavefront

import (
	"fmt"

	"github.com/willf/bitset"
)

// PatchingAligner is the shipped Aligner implementation: it estimates
// per-segment identity with github.com/shenwei356/wfa, retries
// low-identity segments against a widened reference window (patching),
// and produces the actual CIGAR with gotohAlign, then serializes the
// result as PAF or SAM depending on Params.SAMFormat.
type PatchingAligner struct{}

// NewPatchingAligner returns a ready-to-use PatchingAligner. It holds
// no state; its methods are safe to call concurrently from multiple
// worker goroutines.
func NewPatchingAligner() PatchingAligner {
	return PatchingAligner{}
}

func (PatchingAligner) Align(req Request) (Result, error) {
	if req.QuerySlice == 0 || req.TargetSlice == 0 {
		return Result{}, nil
	}

	unpaddedTarget := req.Target[req.TargetStart : req.TargetStart+req.TargetSlice]
	segLen := req.Params.SegmentLength
	if segLen <= 0 {
		segLen = len(req.Query)
	}
	segments := segmentsForAlignment(req.Query, unpaddedTarget, segLen)

	var perSegment [][]cigarOp
	patched := bitset.New(uint(len(segments)))
	tPos := 0
	for i, seg := range segments {
		tStart := int(req.TargetStart) + tPos
		tEnd := tStart + len(seg.target)
		ops, wasPatched := alignSegmentWithPatching(seg, req.Target, tStart, tEnd, req.Params)
		perSegment = append(perSegment, ops)
		if wasPatched {
			patched.Set(uint(i))
		}
		tPos += len(seg.target)
	}

	ops := chainCigarOps(perSegment)
	if len(ops) == 0 {
		return Result{}, nil
	}

	matches, mismatches, insertions, deletions := cigarStats(ops, req.Query, unpaddedTarget)

	var primary string
	if req.Params.SAMFormat {
		primary = formatSAM(req, ops, matches, mismatches)
	} else {
		primary = formatPAF(req, ops, matches, mismatches, insertions, deletions)
	}

	result := Result{Primary: primary}
	if req.WantDebug {
		result.Debug = formatDebugTSV(req, matches, mismatches, insertions, deletions, patched, len(segments))
	}
	return result, nil
}

// patchedMaskString renders which of the n segments needed a widened
// retry as a compact '0'/'1' string, for the debug TSV's patching
// column.
func patchedMaskString(patched *bitset.BitSet, n int) string {
	mask := make([]byte, n)
	for i := 0; i < n; i++ {
		if patched.Test(uint(i)) {
			mask[i] = '1'
		} else {
			mask[i] = '0'
		}
	}
	return string(mask)
}

func formatDebugTSV(req Request, matches, mismatches, insertions, deletions int, patched *bitset.BitSet, nSegments int) string {
	return fmt.Sprintf("%s\t%s\t%d\t%d\t%d\t%d\t%s\n",
		req.QueryName, req.TargetName, matches, mismatches, insertions, deletions, patchedMaskString(patched, nSegments))
}
