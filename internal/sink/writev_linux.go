//go:build linux

package sink

import (
	"errors"
	"os"

	"golang.org/x/sys/unix"
)

// WriteVectored writes bufs with a single writev(2) call, retrying
// interrupted calls. It may accept fewer bytes than requested.
func (s *File) WriteVectored(bufs [][]byte) (int, error) {
	for {
		n, err := unix.Writev(s.fd, bufs)
		if err == nil {
			return n, nil
		}
		if errors.Is(err, unix.EINTR) || errors.Is(err, unix.EAGAIN) {
			continue
		}
		return 0, &os.PathError{Op: "writev", Path: s.Name(), Err: err}
	}
}
