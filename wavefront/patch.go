package wavefront

// segment is one query/target window carved out for independent
// alignment, following wflign_patch.hpp's segment-then-chain design:
// rather than aligning the whole padded region in one banded pass,
// the region is cut into fixed-size windows, each is tentatively
// scored, and windows whose estimated identity falls below threshold
// are "patched" by widening their target window before the real
// (Gotoh) alignment runs.
type segment struct {
	query  []byte
	target []byte
}

// segmentsForAlignment splits query and target into up to
// segmentLength-sized windows, proportionally aligned by position so
// that a window capturing the first third of the query also captures
// roughly the first third of the target. This proportional mapping
// takes the place of wflign's own anchor chaining, which is out of
// scope here: the pipeline only needs *an* invocation contract for
// the aligner, not a byte-for-byte reproduction of its internals.
func segmentsForAlignment(query, target []byte, segmentLength int) []segment {
	if segmentLength <= 0 || len(query) <= segmentLength {
		return []segment{{query: query, target: target}}
	}
	var segments []segment
	qLen, tLen := len(query), len(target)
	for qStart := 0; qStart < qLen; qStart += segmentLength {
		qEnd := qStart + segmentLength
		if qEnd > qLen {
			qEnd = qLen
		}
		tStart := qStart * tLen / qLen
		tEnd := qEnd * tLen / qLen
		if tEnd <= tStart {
			tEnd = tStart + 1
		}
		if tEnd > tLen {
			tEnd = tLen
		}
		segments = append(segments, segment{query: query[qStart:qEnd], target: target[tStart:tEnd]})
	}
	return segments
}

// widen grows a target window within [0, tLen) by chainGap bases on
// each side, used to retry a low-identity segment with more context,
// mirroring do_wfa_patch_alignment's widened-band retry.
func widen(tStart, tEnd, tLen, chainGap int) (int, int) {
	start := tStart - chainGap
	if start < 0 {
		start = 0
	}
	end := tEnd + chainGap
	if end > tLen {
		end = tLen
	}
	return start, end
}

// alignSegmentWithPatching aligns one segment, retrying with a
// widened target window when the wfa-based identity estimate falls
// below the configured threshold, up to maxPatchingScore retries. The
// returned bool reports whether any retry was needed, so callers can
// track which segments of a chained alignment were patched.
func alignSegmentWithPatching(seg segment, fullTarget []byte, tStart, tEnd int, prm Params) ([]cigarOp, bool) {
	query, target := seg.query, seg.target
	identity := estimateIdentity(query, target)

	retries := 0
	for identity < prm.DistanceThreshold && retries < prm.MaxPatchingScore {
		newStart, newEnd := widen(tStart, tEnd, len(fullTarget), prm.ChainGap)
		if newStart == tStart && newEnd == tEnd {
			break
		}
		tStart, tEnd = newStart, newEnd
		target = fullTarget[tStart:tEnd]
		identity = estimateIdentity(query, target)
		retries++
	}

	ops, _ := gotohAlign(query, target, prm)
	return ops, retries > 0
}
