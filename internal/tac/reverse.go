package tac

import "io"

// Reverser runs the locate, assemble and write stages.
// The zero value is ready to use with default write tuning.
type Reverser struct {
	Writer Writer
}

// Reverse writes the records of data to sink in reverse order.
//
// data is only read, and sub-slices of it are handed to the sink; it must not
// change until Reverse returns. An empty buffer writes nothing.
func (r *Reverser) Reverse(data []byte, sep Separator, mode Mode, sink io.Writer) (Stats, error) {
	if len(data) == 0 {
		return Stats{Strategy: StrategyNone}, nil
	}
	matches := Locate(data, sep)
	spans := Assemble(len(data), matches, mode)
	return r.Writer.WriteSpans(sink, data, spans)
}

// Reverse writes the records of data to sink in reverse order using the
// default Reverser.
func Reverse(data []byte, sep Separator, mode Mode, sink io.Writer) error {
	var r Reverser
	_, err := r.Reverse(data, sep, mode, sink)
	return err
}

// ReversePattern compiles expr and reverses data around its matches.
// A bad expression is reported before anything is written.
func ReversePattern(data []byte, expr string, mode Mode, sink io.Writer) error {
	sep, err := Pattern(expr)
	if err != nil {
		return err
	}
	return Reverse(data, sep, mode, sink)
}
