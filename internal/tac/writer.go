package tac

import (
	"errors"
	"io"
)

const (
	// DefaultContiguousThreshold is the input size below which records are
	// copied into one buffer and written with a single call.
	DefaultContiguousThreshold = 16 << 20

	// DefaultMaxIOV caps the descriptors handed to one vectored write
	// (IOV_MAX on Linux).
	DefaultMaxIOV = 1024

	// minVectoredSpans is the smallest non-empty span count worth building
	// descriptors for.
	minVectoredSpans = 5
)

// VectorWriter is implemented by sinks that accept scatter-gather writes.
//
// WriteVectored writes the concatenation of bufs and returns how many bytes
// were accepted. Like io.Writer, it may accept fewer bytes than requested.
type VectorWriter interface {
	WriteVectored(bufs [][]byte) (int, error)
}

// Flusher is implemented by buffering sinks such as *bufio.Writer.
type Flusher interface {
	Flush() error
}

// Strategy names how a Writer emitted its spans.
type Strategy string

const (
	StrategyNone       Strategy = "none"
	StrategyContiguous Strategy = "contiguous"
	StrategyVectored   Strategy = "vectored"
	StrategySequential Strategy = "sequential"
)

// Stats describes one completed write.
type Stats struct {
	Strategy Strategy `json:"strategy"`
	Records  int      `json:"records"`
	Bytes    int64    `json:"bytes"`
	Writes   int      `json:"writes"`
}

// Writer emits record spans to a sink.
// The zero value uses the default threshold and descriptor cap.
type Writer struct {
	// ContiguousThreshold is the input size at or above which the writer
	// stops copying. Zero means DefaultContiguousThreshold; negative disables
	// the contiguous strategy.
	ContiguousThreshold int

	// MaxIOV caps descriptors per vectored write. Zero means DefaultMaxIOV.
	MaxIOV int

	// ForceSequential skips vectored writes even when the sink supports them.
	ForceSequential bool
}

func (w *Writer) threshold() int {
	if w.ContiguousThreshold == 0 {
		return DefaultContiguousThreshold
	}
	return w.ContiguousThreshold
}

func (w *Writer) maxIOV() int {
	if w.MaxIOV <= 0 {
		return DefaultMaxIOV
	}
	return w.MaxIOV
}

// WriteSpans writes data[s.Start:s.End] for every span, in order.
// Empty spans produce no bytes and no write call. The first sink error stops
// the write and is returned wrapped in *Error.
func (w *Writer) WriteSpans(sink io.Writer, data []byte, spans []Span) (Stats, error) {
	views := make([][]byte, 0, len(spans))
	var total int64
	for _, s := range spans {
		if s.Empty() {
			continue
		}
		views = append(views, data[s.Start:s.End])
		total += int64(s.Len())
	}
	st := Stats{Strategy: StrategyNone, Records: len(views)}

	var err error
	switch {
	case len(views) == 0:
	case len(data) < w.threshold():
		st.Strategy = StrategyContiguous
		st.Writes, err = writeContiguous(sink, views, total)
	default:
		vw, ok := sink.(VectorWriter)
		if ok && !w.ForceSequential && len(views) >= minVectoredSpans {
			st.Strategy = StrategyVectored
			st.Writes, err = writeVectored(vw, views, w.maxIOV())
		} else {
			st.Strategy = StrategySequential
			st.Writes, err = writeSequential(sink, views)
		}
	}
	if err != nil {
		return st, err
	}
	st.Bytes = total

	if f, ok := sink.(Flusher); ok {
		if err := f.Flush(); err != nil {
			return st, newWriteError(err)
		}
	}
	return st, nil
}

func writeContiguous(sink io.Writer, views [][]byte, total int64) (int, error) {
	buf := make([]byte, 0, total)
	for _, v := range views {
		buf = append(buf, v...)
	}
	return writeAll(sink, buf)
}

func writeSequential(sink io.Writer, views [][]byte) (int, error) {
	calls := 0
	for _, v := range views {
		n, err := writeAll(sink, v)
		calls += n
		if err != nil {
			return calls, err
		}
	}
	return calls, nil
}

// writeAll writes p completely and returns the number of Write calls.
func writeAll(sink io.Writer, p []byte) (int, error) {
	calls := 0
	for len(p) > 0 {
		n, err := sink.Write(p)
		calls++
		if err != nil {
			return calls, wrapSinkError(err)
		}
		if n == 0 {
			return calls, newWriteZeroError()
		}
		if n > len(p) {
			return calls, newWriteError(errInvalidWrite)
		}
		p = p[n:]
	}
	return calls, nil
}

// writeVectored hands views to vw in batches of at most maxIOV descriptors.
//
// next is the first view not fully written and off the bytes of it already
// accepted. A short write advances (next, off) by the reported count, so the
// following call resumes inside the partially written view.
func writeVectored(vw VectorWriter, views [][]byte, maxIOV int) (int, error) {
	batch := make([][]byte, 0, min(maxIOV, len(views)))
	next, off := 0, 0
	calls := 0
	for next < len(views) {
		end := min(next+maxIOV, len(views))
		batch = append(batch[:0], views[next][off:])
		batch = append(batch, views[next+1:end]...)
		size := len(views[next]) - off
		for _, v := range views[next+1 : end] {
			size += len(v)
		}

		n, err := vw.WriteVectored(batch)
		calls++
		if err != nil {
			return calls, wrapSinkError(err)
		}
		if n == 0 {
			return calls, newWriteZeroError()
		}
		if n > size {
			return calls, newWriteError(errInvalidWrite)
		}

		for n > 0 && next < len(views) {
			rem := len(views[next]) - off
			if n < rem {
				off += n
				break
			}
			n -= rem
			next++
			off = 0
		}
	}
	return calls, nil
}

func wrapSinkError(err error) error {
	var te *Error
	if errors.As(err, &te) {
		return err
	}
	return newWriteError(err)
}
