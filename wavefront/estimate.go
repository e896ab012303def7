package wavefront

import "github.com/shenwei356/wfa"

// estimateIdentity runs a real wavefront extension over query/target
// with github.com/shenwei356/wfa and derives an approximate identity
// from the number of wavefronts it took to reach the end: len(algn.M)
// is the edit-distance-ish score the vendored library's public state
// exposes, since that package's own traceback (Aligner.backTrace) is
// an unusable stub and cannot produce a CIGAR. This is used only to
// gate the patching decision; the actual CIGAR comes from
// gotohAlign.
func estimateIdentity(query, target []byte) float64 {
	if len(query) == 0 || len(target) == 0 {
		return 0
	}
	algn := wfa.New()
	defer wfa.RecycleAligner(algn)

	q, t := query, target
	if err := algn.Align(&q, &t); err != nil {
		return 0
	}

	score := len(algn.M) - 1
	if score < 0 {
		score = 0
	}
	longer := len(query)
	if len(target) > longer {
		longer = len(target)
	}
	identity := 1.0 - float64(score)/float64(longer)
	if identity < 0 {
		identity = 0
	}
	if identity > 1 {
		identity = 1
	}
	return identity
}
