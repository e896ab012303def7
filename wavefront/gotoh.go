package wavefront

// gotohAlign computes a global affine-gap alignment of query against
// target and returns its CIGAR operations plus the alignment score.
// It implements Gotoh, O. J. Mol. Biol. (1982) 162, 705-708, using a
// single running score matrix plus a direction matrix for traceback,
// adapted from float match/mismatch scoring to the integer
// mismatch/gap-open/gap-extend penalties carried in Params.
//
// Opening a gap costs gapOpen+gapExtend for its first base; each
// subsequent base in the same gap costs gapExtend. This mirrors the
// convention where "opening" already includes one unit of widening.
func gotohAlign(query, target []byte, prm Params) ([]cigarOp, int) {
	nrow := len(query) + 1
	ncol := len(target) + 1
	if nrow == 1 || ncol == 1 {
		gapLen := len(query) + len(target)
		score := 0
		if gapLen > 0 {
			score = -(prm.GapOpen + gapLen*prm.GapExtend)
		}
		return straightGapCigar(len(query), len(target)), score
	}

	const negInf = -(1 << 30)

	opn := -(prm.GapOpen + prm.GapExtend)
	wdn := -prm.GapExtend

	scoreMat := make([][]int, nrow)
	dir := make([][]byte, nrow)
	for i := range scoreMat {
		scoreMat[i] = make([]int, ncol)
		dir[i] = make([]byte, ncol)
	}

	dir[0][0] = dirStop
	for j := 1; j < ncol; j++ {
		scoreMat[0][j] = opn + (j-1)*wdn
		dir[0][j] = dirLeft
	}
	for i := 1; i < nrow; i++ {
		scoreMat[i][0] = opn + (i-1)*wdn
		dir[i][0] = dirUp
	}

	p := make([]int, ncol) // best score ending with a gap in target (vertical move, query consumed)
	for j := range p {
		p[j] = negInf
	}

	for i := 1; i < nrow; i++ {
		qprev := negInf // best score ending with a gap in query (horizontal move, target consumed)
		for j := 1; j < ncol; j++ {
			matchScore := prm.Mismatch
			if query[i-1] == target[j-1] {
				matchScore = 0
			} else {
				matchScore = -prm.Mismatch
			}
			best := scoreMat[i-1][j-1] + matchScore
			direction := dirDiag

			p[j] = max(scoreMat[i-1][j]+opn, p[j]+wdn)
			q := max(scoreMat[i][j-1]+opn, qprev+wdn)

			if p[j] > best {
				best, direction = p[j], dirUp
			}
			if q > best {
				best, direction = q, dirLeft
			}
			scoreMat[i][j] = best
			dir[i][j] = direction
			qprev = q
		}
	}

	score := scoreMat[nrow-1][ncol-1]
	ops := traceback(dir, nrow-1, ncol-1)
	return ops, score
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}

const (
	dirStop byte = iota
	dirDiag
	dirUp   // gap in target (query consumed, insertion relative to target)
	dirLeft // gap in query (target consumed, deletion relative to target)
)

func traceback(dir [][]byte, i, j int) []cigarOp {
	var ops []cigarOp
	for i > 0 || j > 0 {
		switch dir[i][j] {
		case dirDiag:
			ops = append(ops, cigarOp{op: 'M', n: 1})
			i--
			j--
		case dirUp:
			ops = append(ops, cigarOp{op: 'I', n: 1})
			i--
		case dirLeft:
			ops = append(ops, cigarOp{op: 'D', n: 1})
			j--
		default:
			if i > 0 {
				ops = append(ops, cigarOp{op: 'I', n: 1})
				i--
			} else {
				ops = append(ops, cigarOp{op: 'D', n: 1})
				j--
			}
		}
	}
	reverseOps(ops)
	return mergeCigarOps(ops)
}

func reverseOps(ops []cigarOp) {
	for i, j := 0, len(ops)-1; i < j; i, j = i+1, j-1 {
		ops[i], ops[j] = ops[j], ops[i]
	}
}

// straightGapCigar handles the degenerate case where one side of the
// alignment is empty.
func straightGapCigar(queryLen, targetLen int) []cigarOp {
	var ops []cigarOp
	if queryLen > 0 {
		ops = append(ops, cigarOp{op: 'I', n: queryLen})
	}
	if targetLen > 0 {
		ops = append(ops, cigarOp{op: 'D', n: targetLen})
	}
	return ops
}
