package testutil

import (
	"bytes"
	"errors"
)

// ErrSinkClosed is returned by FailingWriter once its limit is reached.
var ErrSinkClosed = errors.New("sink closed")

// ShortWriter accepts at most Max bytes per Write call.
// It never reports an error, so callers must loop to finish.
type ShortWriter struct {
	Max   int
	Calls int
	bytes.Buffer
}

// Write implements io.Writer.
func (w *ShortWriter) Write(p []byte) (int, error) {
	w.Calls++
	if w.Max > 0 && len(p) > w.Max {
		p = p[:w.Max]
	}
	return w.Buffer.Write(p)
}

// ZeroWriter reports zero bytes written and no error.
type ZeroWriter struct {
	Calls int
}

// Write implements io.Writer.
func (w *ZeroWriter) Write(p []byte) (int, error) {
	w.Calls++
	return 0, nil
}

// WriteVectored implements tac.VectorWriter.
func (w *ZeroWriter) WriteVectored(bufs [][]byte) (int, error) {
	w.Calls++
	return 0, nil
}

// FailingWriter accepts Limit bytes in total, then fails every call with Err
// (ErrSinkClosed when nil).
type FailingWriter struct {
	Limit int
	Err   error
	Calls int
	bytes.Buffer
}

// Write implements io.Writer.
func (w *FailingWriter) Write(p []byte) (int, error) {
	w.Calls++
	room := w.Limit - w.Len()
	if room <= 0 {
		return 0, w.err()
	}
	if len(p) > room {
		n, _ := w.Buffer.Write(p[:room])
		return n, w.err()
	}
	return w.Buffer.Write(p)
}

func (w *FailingWriter) err() error {
	if w.Err != nil {
		return w.Err
	}
	return ErrSinkClosed
}

// VectorRecorder is a scatter-gather sink that records every batch.
//
// Max caps the bytes accepted per call (0 = unlimited) to exercise
// partial-write recovery. Batches holds the descriptor count of each call.
type VectorRecorder struct {
	Max     int
	Batches []int
	Writes  int
	bytes.Buffer
}

// Write implements io.Writer.
func (v *VectorRecorder) Write(p []byte) (int, error) {
	v.Writes++
	if v.Max > 0 && len(p) > v.Max {
		p = p[:v.Max]
	}
	return v.Buffer.Write(p)
}

// WriteVectored implements tac.VectorWriter.
func (v *VectorRecorder) WriteVectored(bufs [][]byte) (int, error) {
	v.Batches = append(v.Batches, len(bufs))
	n := 0
	for _, b := range bufs {
		if v.Max > 0 && n+len(b) > v.Max {
			b = b[:v.Max-n]
		}
		v.Buffer.Write(b)
		n += len(b)
		if v.Max > 0 && n == v.Max {
			break
		}
	}
	return n, nil
}

// OverReportingWriter stores what it is given but claims Extra more bytes.
type OverReportingWriter struct {
	Extra int
	Calls int
	bytes.Buffer
}

// Write implements io.Writer.
func (w *OverReportingWriter) Write(p []byte) (int, error) {
	w.Calls++
	n, _ := w.Buffer.Write(p)
	return n + w.Extra, nil
}

// WriteVectored implements tac.VectorWriter.
func (w *OverReportingWriter) WriteVectored(bufs [][]byte) (int, error) {
	w.Calls++
	n := 0
	for _, b := range bufs {
		m, _ := w.Buffer.Write(b)
		n += m
	}
	return n + w.Extra, nil
}
