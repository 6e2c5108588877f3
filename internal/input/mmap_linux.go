//go:build linux

package input

import (
	"os"

	"golang.org/x/sys/unix"
)

func mapFile(f *os.File, size int64) ([]byte, error) {
	b, err := unix.Mmap(int(f.Fd()), 0, int(size), unix.PROT_READ, unix.MAP_SHARED|unix.MAP_POPULATE)
	if err != nil {
		return nil, err
	}
	// Advice is best effort; the mapping is usable either way.
	_ = unix.Madvise(b, unix.MADV_SEQUENTIAL)
	if size >= hugePageThreshold {
		_ = unix.Madvise(b, unix.MADV_HUGEPAGE)
	}
	return b, nil
}

func unmap(b []byte) error {
	return unix.Munmap(b)
}
