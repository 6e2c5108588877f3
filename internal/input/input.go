package input

import (
	"bytes"
	"fmt"
	"io"
	"os"
)

const (
	// MapThreshold is the file size from which regular files are mapped.
	MapThreshold = 1 << 20

	// hugePageThreshold is the mapping size from which huge pages are requested.
	hugePageThreshold = 2 << 20
)

// Method names how a buffer was acquired.
type Method string

const (
	MethodRead   Method = "read"
	MethodMmap   Method = "mmap"
	MethodStream Method = "stream"
)

// Data is an acquired input buffer.
type Data struct {
	b      []byte
	region []byte // whole mapping, nil unless mapped
	method Method
}

// Bytes returns the buffer. It must not be modified, and must not be used
// after Close.
func (d *Data) Bytes() []byte {
	return d.b
}

// Method reports how the buffer was acquired.
func (d *Data) Method() Method {
	return d.method
}

// Mapped reports whether the buffer is a memory mapping.
func (d *Data) Mapped() bool {
	return d.region != nil
}

// Close releases the buffer. It is safe to call more than once.
func (d *Data) Close() error {
	region := d.region
	d.b, d.region = nil, nil
	if region == nil {
		return nil
	}
	if err := unmap(region); err != nil {
		return fmt.Errorf("failed to unmap input: %w", err)
	}
	return nil
}

// Open acquires the contents of the file at path.
func Open(path string) (*Data, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	fi, err := f.Stat()
	if err != nil {
		return nil, err
	}
	if !fi.Mode().IsRegular() || fi.Size() == 0 {
		// Size zero also covers synthetic files (procfs) that report no size.
		return readAll(f, MethodStream, 0)
	}
	return acquire(f, 0, fi.Size())
}

// Stdin acquires the remaining contents of f, normally os.Stdin.
// A redirected regular file is mapped from the current offset.
func Stdin(f *os.File) (*Data, error) {
	fi, err := f.Stat()
	if err != nil {
		return nil, err
	}
	if !fi.Mode().IsRegular() || fi.Size() == 0 {
		return readAll(f, MethodStream, 0)
	}
	off, err := f.Seek(0, io.SeekCurrent)
	if err != nil {
		return readAll(f, MethodStream, 0)
	}
	if off >= fi.Size() {
		return &Data{method: MethodRead}, nil
	}
	return acquire(f, off, fi.Size())
}

func acquire(f *os.File, off, size int64) (*Data, error) {
	if size-off < MapThreshold {
		return readAll(f, MethodRead, size-off)
	}
	region, err := mapFile(f, size)
	if err != nil {
		return readAll(f, MethodRead, size-off)
	}
	return &Data{b: region[off:], region: region, method: MethodMmap}, nil
}

// readAll reads f to EOF. hint pre-sizes the buffer when the size is known.
func readAll(f *os.File, method Method, hint int64) (*Data, error) {
	var buf bytes.Buffer
	if hint > 0 {
		// One extra byte lets ReadFrom see EOF without growing.
		buf.Grow(int(hint) + 1)
	}
	if _, err := buf.ReadFrom(f); err != nil {
		return nil, err
	}
	return &Data{b: buf.Bytes(), method: method}, nil
}

// ReadAll acquires everything r yields, for readers that are not files.
func ReadAll(r io.Reader) (*Data, error) {
	if f, ok := r.(*os.File); ok {
		return Stdin(f)
	}
	var buf bytes.Buffer
	if _, err := buf.ReadFrom(r); err != nil {
		return nil, err
	}
	return &Data{b: buf.Bytes(), method: MethodStream}, nil
}
