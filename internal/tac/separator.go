package tac

import (
	"fmt"
	"regexp"
)

// Kind identifies which separator variant a Separator holds.
type Kind int

const (
	KindByte Kind = iota
	KindString
	KindPattern
)

func (k Kind) String() string {
	switch k {
	case KindByte:
		return "byte"
	case KindString:
		return "string"
	case KindPattern:
		return "pattern"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Mode is the separator attachment convention.
type Mode int

const (
	// After attaches a separator to the end of the record before it.
	After Mode = iota

	// Before attaches a separator to the start of the record after it.
	Before
)

func (m Mode) String() string {
	if m == Before {
		return "before"
	}
	return "after"
}

// Separator is one of Byte, String or Pattern.
type Separator struct {
	kind Kind
	b    byte
	str  []byte
	pat  *matcher
}

// Newline is the default separator.
var Newline = Byte('\n')

// Byte returns a single-byte separator.
func Byte(b byte) Separator {
	return Separator{kind: KindByte, b: b}
}

// String returns a byte-string separator. A one-byte string is normalized
// to Byte. The separator is copied; the caller may reuse s.
func String(s []byte) (Separator, error) {
	switch len(s) {
	case 0:
		return Separator{}, &Error{
			Code:    ErrCodeEmptySeparator,
			Message: "separator cannot be empty",
		}
	case 1:
		return Byte(s[0]), nil
	}
	return Separator{kind: KindString, str: append([]byte(nil), s...)}, nil
}

// Pattern compiles expr into a regular-expression separator.
// A bad expression yields an INVALID_PATTERN error.
func Pattern(expr string) (Separator, error) {
	re, err := regexp.Compile(expr)
	if err != nil {
		return Separator{}, newPatternError(expr, err)
	}
	return FromRegexp(re)
}

// FromRegexp wraps an already compiled expression.
func FromRegexp(re *regexp.Regexp) (Separator, error) {
	m, err := newMatcher(re)
	if err != nil {
		return Separator{}, err
	}
	return Separator{kind: KindPattern, pat: m}, nil
}

// Parse builds a separator the way the command line describes one:
// a literal string, or a regular expression when regex is set.
func Parse(s string, regex bool) (Separator, error) {
	if regex {
		if s == "" {
			return Separator{}, &Error{
				Code:    ErrCodeEmptySeparator,
				Message: "separator cannot be empty",
			}
		}
		return Pattern(s)
	}
	return String([]byte(s))
}

// Kind reports the separator variant.
func (s Separator) Kind() Kind {
	return s.kind
}

func (s Separator) String() string {
	switch s.kind {
	case KindByte:
		return fmt.Sprintf("byte(%q)", s.b)
	case KindString:
		return fmt.Sprintf("string(%q)", s.str)
	default:
		return fmt.Sprintf("pattern(%q)", s.pat.expr)
	}
}
