// Package seqbuf implements the reference-counted, immutable query
// buffer shared by every Task cut from one FASTA record. The Reader
// stage creates one Buffer per query record and fans it out to many
// tasks that are processed, and dropped, in arbitrary order; a buffer
// is freed for garbage collection only once its last task has
// released it.
package seqbuf

import "sync/atomic"

// Buffer is a reference-counted handle onto one query sequence. The
// zero value is not usable; construct with New.
type Buffer struct {
	name string
	data []byte
	refs *int32
}

// New wraps data (already canonicalized upper-case A/C/G/T/N) in a
// Buffer with one outstanding reference. data is never copied; the
// caller must not mutate it afterwards, since Buffer is shared across
// goroutines without synchronization on its contents.
func New(name string, data []byte) Buffer {
	n := int32(1)
	return Buffer{name: name, data: data, refs: &n}
}

// Acquire returns a new handle onto the same underlying sequence,
// incrementing the shared reference count. The returned Buffer must
// eventually be Released independently of b.
func (b Buffer) Acquire() Buffer {
	atomic.AddInt32(b.refs, 1)
	return b
}

// Release decrements the reference count. Once every acquired handle
// has been released the underlying slice becomes eligible for garbage
// collection; Release itself performs no freeing beyond dropping Go's
// last live reference to data, since the runtime owns deallocation.
func (b Buffer) Release() {
	atomic.AddInt32(b.refs, -1)
}

// Name returns the query identifier this buffer was created for.
func (b Buffer) Name() string { return b.name }

// Len returns the full length of the underlying query sequence.
func (b Buffer) Len() int64 { return int64(len(b.data)) }

// Slice returns the forward-strand bytes in [start, end). start and
// end are int64 to match the mapping package's coordinate fields,
// which carry genome-scale offsets. The returned slice aliases the
// buffer's storage and must not be retained past the owning handle's
// Release.
func (b Buffer) Slice(start, end int64) []byte {
	return b.data[start:end]
}

// Refs reports the current outstanding reference count. It exists for
// tests that assert every handle has been dropped after shutdown.
func (b Buffer) Refs() int32 {
	return atomic.LoadInt32(b.refs)
}
