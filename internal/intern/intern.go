// Package intern provides string interning for sequence and contig names
// so that repeated identifiers across millions of mapping records can be
// compared by pointer instead of by content.
package intern

import (
	"unsafe"

	"github.com/exascience/pargo/sync"

	"github.com/pjotrp/wfmash/internal"
)

type symbolName string

func (s symbolName) Hash() uint64 {
	return internal.StringHash(string(s))
}

// A Symbol is a unique pointer to a string. Two symbols compare equal
// with == if and only if the underlying strings are equal.
type Symbol *string

// Hash computes a hash value for the given Symbol, suitable for use as
// a map key in small, linear-scan maps.
func Hash(s Symbol) uint64 {
	return uint64(uintptr(unsafe.Pointer(s)))
}

var table = sync.NewMap(0)

/*
Intern returns a Symbol for the given string.

It always returns the same pointer for strings that are equal, and
different pointers for strings that are not equal: for two strings s1
and s2, if s1 == s2, then Intern(s1) == Intern(s2), and if s1 != s2,
then Intern(s1) != Intern(s2).

Dereferencing the returned pointer always yields a string equal to the
original: *Intern(s) == s always holds.

It is safe for multiple goroutines to call Intern concurrently.
*/
func Intern(s string) Symbol {
	entry, _ := table.LoadOrStore(symbolName(s), Symbol(&s))
	return entry.(Symbol)
}
