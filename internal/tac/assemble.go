package tac

// Span is the half-open byte range [Start, End) of one record, separator
// bytes included on the side the Mode attaches them to.
type Span struct {
	Start int
	End   int
}

// Len returns the span length.
func (s Span) Len() int {
	return s.End - s.Start
}

// Empty reports whether the span covers no bytes.
func (s Span) Empty() bool {
	return s.End <= s.Start
}

// Assemble converts ascending matches into record spans in emission order:
// the record that ends the buffer comes first, the one that starts it last.
//
// In After mode record i is [matches[i-1].End, matches[i].End) and the
// trailing record is [last.End, n). In Before mode the leading record is
// [0, matches[0].Start) and record i is [matches[i].Start, matches[i+1].Start).
//
// Spans at the buffer edges may be empty; they are kept so the spans always
// tile [0, n) exactly.
func Assemble(n int, matches []Match, mode Mode) []Span {
	if len(matches) == 0 {
		return []Span{{Start: 0, End: n}}
	}

	spans := make([]Span, 0, len(matches)+1)
	if mode == Before {
		end := n
		for i := len(matches) - 1; i >= 0; i-- {
			start := matches[i].Start
			spans = append(spans, Span{Start: start, End: end})
			end = start
		}
		return append(spans, Span{Start: 0, End: end})
	}

	start := matches[len(matches)-1].End
	spans = append(spans, Span{Start: start, End: n})
	for i := len(matches) - 1; i >= 0; i-- {
		end := matches[i].End
		start = 0
		if i > 0 {
			start = matches[i-1].End
		}
		spans = append(spans, Span{Start: start, End: end})
	}
	return spans
}
