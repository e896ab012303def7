// Package seq provides sequence canonicalization and strand
// conversion for DNA bytes: upper-casing plus IUPAC ambiguity folding
// to N, and reverse complementation.
package seq

// iupacUpperTable maps every IUPAC nucleotide code, upper or lower
// case, to its canonical upper-case form, folding every ambiguity
// code other than N to N. ToUpperAndN maps every byte outside the
// table to N.
var iupacUpperTable = map[byte]byte{
	'A': 'A', 'a': 'A',
	'C': 'C', 'c': 'C',
	'G': 'G', 'g': 'G',
	'T': 'T', 't': 'T',
	'N': 'N', 'n': 'N',
	'R': 'N', 'r': 'N',
	'Y': 'N', 'y': 'N',
	'M': 'N', 'm': 'N',
	'K': 'N', 'k': 'N',
	'W': 'N', 'w': 'N',
	'S': 'N', 's': 'N',
	'B': 'N', 'b': 'N',
	'D': 'N', 'd': 'N',
	'H': 'N', 'h': 'N',
	'V': 'N', 'v': 'N',
}

// ToUpperAndN normalizes a single base: A/C/G/T/N fold to upper case,
// and ambiguity codes and any other byte become N.
func ToUpperAndN(base byte) byte {
	if n, ok := iupacUpperTable[base]; ok {
		return n
	}
	return 'N'
}

// Canonicalize rewrites b in place to upper-case A/C/G/T/N, folding
// IUPAC ambiguity codes and any other byte to N. It is a fixed point
// on input that is already canonical: calling it twice has the same effect as calling
// it once.
func Canonicalize(b []byte) {
	for i, c := range b {
		b[i] = ToUpperAndN(c)
	}
}

// complementTable maps a canonical upper-case base to its complement.
// N maps to N.
var complementTable = [256]byte{}

func init() {
	for i := range complementTable {
		complementTable[i] = 'N'
	}
	complementTable['A'] = 'T'
	complementTable['C'] = 'G'
	complementTable['G'] = 'C'
	complementTable['T'] = 'A'
	complementTable['N'] = 'N'
}

// ReverseComplement returns the reverse complement of a canonical
// (upper-case A/C/G/T/N) slice, as a freshly allocated slice. Applying
// it twice to a canonical slice yields a slice equal to the original.
func ReverseComplement(b []byte) []byte {
	out := make([]byte, len(b))
	n := len(b)
	for i, c := range b {
		out[n-1-i] = complementTable[c]
	}
	return out
}

// Strand is the orientation of a query relative to the target, as
// reported by the upstream mapper.
type Strand byte

const (
	// Forward orientation: the query maps to the target as-is.
	Forward Strand = '+'
	// Reverse orientation: the query maps to the reverse complement
	// of the target interval, per mashmap-style PAF convention.
	Reverse Strand = '-'
)

// ParseStrand converts a single mapping-file token into a Strand.
// Anything other than "+" is treated as Reverse, matching the
// parser's permissive field mapping for strand tokens.
func ParseStrand(token string) Strand {
	if token == "+" {
		return Forward
	}
	return Reverse
}

// Convert returns query as-is for Forward strand, or its reverse
// complement for Reverse strand.
func Convert(query []byte, strand Strand) []byte {
	if strand == Forward {
		return query
	}
	return ReverseComplement(query)
}
