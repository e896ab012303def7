package mapping

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pjotrp/wfmash/internal/intern"
	"github.com/pjotrp/wfmash/seq"
)

// ParseConfig carries the one piece of external configuration the
// parser needs: the identity to assume when a mapping row omits its
// identity field.
type ParseConfig struct {
	DefaultIdentity float64
}

// Parse parses one mapping-file line. It is pure and allocation-light:
// it splits on whitespace with strings.Fields and performs no I/O.
//
// Field mapping: token 0 is the query id; tokens 2 and 3 are the query
// interval; token 4 is the strand ("+" forward, anything else
// reverse); token 5 is the target id; tokens 7 and 8 are the target
// interval. Token 12, if present, is split on ':' and its last field
// is parsed as a percentage identity, divided by 100. If token 12 is
// absent, or its tail does not parse as a number, cfg.DefaultIdentity
// is used instead.
//
// Parse requires at least 9 tokens; fewer is reported as an error, to
// be treated as a fatal malformed-input condition by the caller.
func Parse(line string, cfg ParseConfig) (Record, error) {
	tokens := strings.Fields(line)
	if len(tokens) < 9 {
		return Record{}, fmt.Errorf("mapping: line has %d fields, need at least 9: %q", len(tokens), line)
	}

	queryStart, err := strconv.ParseInt(tokens[2], 10, 64)
	if err != nil {
		return Record{}, fmt.Errorf("mapping: bad query_start %q: %w", tokens[2], err)
	}
	queryEnd, err := strconv.ParseInt(tokens[3], 10, 64)
	if err != nil {
		return Record{}, fmt.Errorf("mapping: bad query_end %q: %w", tokens[3], err)
	}
	targetStart, err := strconv.ParseInt(tokens[7], 10, 64)
	if err != nil {
		return Record{}, fmt.Errorf("mapping: bad target_start %q: %w", tokens[7], err)
	}
	targetEnd, err := strconv.ParseInt(tokens[8], 10, 64)
	if err != nil {
		return Record{}, fmt.Errorf("mapping: bad target_end %q: %w", tokens[8], err)
	}

	identity := cfg.DefaultIdentity
	if len(tokens) > 12 {
		fields := strings.Split(tokens[12], ":")
		last := fields[len(fields)-1]
		if pct, err := strconv.ParseFloat(last, 64); err == nil {
			identity = pct / 100.0
		}
	}

	return Record{
		QueryID:           intern.Intern(tokens[0]),
		QueryStart:        queryStart,
		QueryEnd:          queryEnd,
		Strand:            seq.ParseStrand(tokens[4]),
		TargetID:          intern.Intern(tokens[5]),
		TargetStart:       targetStart,
		TargetEnd:         targetEnd,
		EstimatedIdentity: identity,
	}, nil
}
