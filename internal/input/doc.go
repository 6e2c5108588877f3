// Package input acquires the complete contents of a file or standard input
// as one read-only buffer for the record-reversal engine.
//
// Strategy by source:
//   - Regular files under 1 MiB are read into memory.
//   - Larger regular files are memory-mapped read-only. On Linux the mapping
//     is pre-faulted (MAP_POPULATE) and advised sequential, with transparent
//     huge pages requested from 2 MiB up. A failed mapping falls back to a
//     full read.
//   - Pipes, terminals and other non-regular files are read to EOF.
//
// Mapped buffers stay valid until Close, even after the file descriptor is
// closed.
package input
