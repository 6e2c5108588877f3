package tac

import "bytes"

// Match is one separator occurrence, the half-open range [Start, End).
type Match struct {
	Start int
	End   int
}

// Len returns the separator length. Pattern matches may be empty.
func (m Match) Len() int {
	return m.End - m.Start
}

// Locate returns every separator occurrence in data, ascending by Start.
// Matches never overlap. A nil result means data is a single record.
func Locate(data []byte, sep Separator) []Match {
	if len(data) == 0 {
		return nil
	}
	switch sep.kind {
	case KindString:
		return locateString(data, sep.str)
	case KindPattern:
		return sep.pat.findAll(data)
	default:
		return locateByte(data, sep.b)
	}
}

func locateByte(data []byte, b byte) []Match {
	var matches []Match
	off := 0
	for {
		i := bytes.IndexByte(data[off:], b)
		if i < 0 {
			return matches
		}
		off += i
		matches = append(matches, Match{Start: off, End: off + 1})
		off++
	}
}

// locateString resumes after the end of each match, so a self-overlapping
// separator such as "aa" in "aaa" matches once.
func locateString(data, sep []byte) []Match {
	var matches []Match
	off := 0
	for {
		i := bytes.Index(data[off:], sep)
		if i < 0 {
			return matches
		}
		off += i
		matches = append(matches, Match{Start: off, End: off + len(sep)})
		off += len(sep)
	}
}
