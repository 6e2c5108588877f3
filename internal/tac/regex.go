package tac

import (
	"bytes"
	"io"
	"regexp"
	"regexp/syntax"
	"slices"
	"unicode/utf8"
)

// matcher finds pattern separators from the end of a buffer toward its start.
//
// A candidate position pos matches when the expression matches starting
// exactly at pos inside buf[:bound]. The first candidate found walking
// backward from bound-1 wins, bound moves to it, and the walk repeats.
type matcher struct {
	expr string

	// anchored is \A(?:expr).
	anchored *regexp.Regexp

	// context is \A(?s:.)(expr), set when expr has assertions that look at
	// the byte before the match (^, \A, \b, \B). The extra rune is fed from
	// the input so those assertions see what precedes pos.
	context *regexp.Regexp

	// prefix is a literal every match starts with; complete means the whole
	// expression is that literal.
	prefix   []byte
	complete bool
}

func newMatcher(re *regexp.Regexp) (*matcher, error) {
	expr := re.String()
	anchored, err := regexp.Compile(`\A(?:` + expr + `)`)
	if err != nil {
		return nil, newPatternError(expr, err)
	}
	m := &matcher{expr: expr, anchored: anchored}

	tree, err := syntax.Parse(expr, syntax.Perl)
	if err != nil {
		return nil, newPatternError(expr, err)
	}
	if hasLeftAssertion(tree) {
		m.context, err = regexp.Compile(`\A(?s:.)(` + expr + `)`)
		if err != nil {
			return nil, newPatternError(expr, err)
		}
	} else {
		prefix, complete := re.LiteralPrefix()
		m.prefix = []byte(prefix)
		m.complete = complete && prefix != ""
	}
	return m, nil
}

// hasLeftAssertion reports whether the tree contains an empty-width
// assertion whose outcome depends on the input before the match.
func hasLeftAssertion(re *syntax.Regexp) bool {
	switch re.Op {
	case syntax.OpBeginLine, syntax.OpBeginText, syntax.OpWordBoundary, syntax.OpNoWordBoundary:
		return true
	}
	for _, sub := range re.Sub {
		if hasLeftAssertion(sub) {
			return true
		}
	}
	return false
}

// findAll returns every backward-discovered match in ascending order.
func (m *matcher) findAll(buf []byte) []Match {
	var matches []Match
	bound := len(buf)
	for bound > 0 {
		start, end, ok := m.last(buf[:bound])
		if !ok {
			break
		}
		matches = append(matches, Match{Start: start, End: end})
		bound = start
	}
	slices.Reverse(matches)
	return matches
}

// last returns the match with the greatest start position in hay.
func (m *matcher) last(hay []byte) (int, int, bool) {
	if m.complete {
		i := bytes.LastIndex(hay, m.prefix)
		if i < 0 {
			return 0, 0, false
		}
		return i, i + len(m.prefix), true
	}

	pos := len(hay)
	for pos > 0 {
		pos--
		if len(m.prefix) > 0 {
			// Skip straight to the next position that can start a match.
			i := bytes.LastIndex(hay[:min(pos+len(m.prefix), len(hay))], m.prefix)
			if i < 0 {
				return 0, 0, false
			}
			pos = i
		}
		if end, ok := m.matchAt(hay, pos); ok {
			return pos, end, true
		}
	}
	return 0, 0, false
}

// matchAt reports the end of the match starting exactly at pos.
func (m *matcher) matchAt(hay []byte, pos int) (int, bool) {
	if m.context == nil || pos == 0 {
		loc := m.anchored.FindIndex(hay[pos:])
		if loc == nil {
			return 0, false
		}
		return pos + loc[1], true
	}

	_, size := utf8.DecodeLastRune(hay[:pos])
	from := pos - size
	if _, n := utf8.DecodeRune(hay[from:]); from+n == pos {
		loc := m.context.FindSubmatchIndex(hay[from:])
		if loc == nil {
			return 0, false
		}
		return from + loc[3], true
	}

	// pos splits a rune. The bytes before it are a fragment, which regexp
	// would read as U+FFFD, so that is the context the assertions see.
	loc := m.context.FindReaderSubmatchIndex(&splitRuneReader{rest: hay[pos:]})
	if loc == nil {
		return 0, false
	}
	return pos + loc[3] - 1, true
}

// splitRuneReader yields a one-byte U+FFFD followed by the runes of rest.
type splitRuneReader struct {
	rest    []byte
	started bool
}

func (r *splitRuneReader) ReadRune() (rune, int, error) {
	if !r.started {
		r.started = true
		return utf8.RuneError, 1, nil
	}
	if len(r.rest) == 0 {
		return 0, 0, io.EOF
	}
	c, size := utf8.DecodeRune(r.rest)
	r.rest = r.rest[size:]
	return c, size, nil
}
