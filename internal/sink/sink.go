// Package sink adapts output files for the record-reversal engine.
//
// On Linux a File implements tac.VectorWriter with writev(2), so large
// inputs are written straight from the input buffer without copying. On other
// platforms File is a plain writer and the engine falls back to sequential
// writes.
package sink

import "os"

// File writes to an *os.File.
type File struct {
	f  *os.File
	fd int
}

// NewFile wraps f. The caller keeps ownership of f.
func NewFile(f *os.File) *File {
	return &File{f: f, fd: int(f.Fd())}
}

// Write implements io.Writer.
func (s *File) Write(p []byte) (int, error) {
	return s.f.Write(p)
}

// Name returns the underlying file name.
func (s *File) Name() string {
	return s.f.Name()
}
