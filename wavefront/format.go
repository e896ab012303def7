package wavefront

import (
	"fmt"
	"strings"

	"github.com/pjotrp/wfmash/seq"
)

// formatPAF renders one alignment as a PAF record with a trailing
// cg:Z: CIGAR tag, in the convention produced by mashmap-family
// aligners.
func formatPAF(req Request, ops []cigarOp, matches, mismatches, insertions, deletions int) string {
	strandByte := byte('+')
	if req.Strand == seq.Reverse {
		strandByte = '-'
	}
	alnLen := matches + mismatches + insertions + deletions
	mapq := 60
	return fmt.Sprintf("%s\t%d\t%d\t%d\t%c\t%s\t%d\t%d\t%d\t%d\t%d\t%d\tcg:Z:%s\n",
		req.QueryName, req.QueryLen, req.QueryStart, req.QueryStart+req.QuerySlice,
		strandByte,
		req.TargetName, req.TargetLen, req.TargetOrigin, req.TargetOrigin+req.TargetSlice,
		matches, alnLen, mapq,
		cigarString(ops))
}

// formatSAM renders one alignment as a single SAM record line. Since
// the downstream consumer is expected to supply its own header, this
// emits only the eleven mandatory fields plus an NM tag. req.Query is
// already strand-corrected (see seq.Convert), so it is written out
// as-is: SAM's SEQ field is always relative to the reference strand,
// which for a reverse-strand mapping is exactly what the already
// reverse-complemented Query holds.
func formatSAM(req Request, ops []cigarOp, matches, mismatches int) string {
	flag := 0
	if req.Strand == seq.Reverse {
		flag |= 0x10
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%s\t%d\t%s\t%d\t%d\t%s\t*\t0\t0\t%s\t*\tNM:i:%d\n",
		req.QueryName, flag, req.TargetName, req.TargetOrigin+1, 60,
		cigarString(ops), string(req.Query), mismatches)
	return b.String()
}
