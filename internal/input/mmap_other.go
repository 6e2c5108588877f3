//go:build !linux

package input

import (
	"errors"
	"os"
)

var errNoMmap = errors.New("memory mapping not supported on this platform")

func mapFile(f *os.File, size int64) ([]byte, error) {
	return nil, errNoMmap
}

func unmap(b []byte) error {
	return nil
}
