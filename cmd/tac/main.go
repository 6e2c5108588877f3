// Command tac writes files to standard output last record first.
package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/roach88/tac/internal/cli"
)

func main() {
	// Writes to a closed pipe then fail with EPIPE, which the command
	// treats as a normal end of output.
	signal.Ignore(syscall.SIGPIPE)
	os.Exit(cli.Execute(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}
