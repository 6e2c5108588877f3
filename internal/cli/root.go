package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/roach88/tac/internal/tac"
)

// version is overridden at link time (-ldflags "-X ...cli.version=v1.2.3").
var version = "dev"

// RootOptions holds the flags of the tac command.
type RootOptions struct {
	Verbose bool
	Format  string // "json" | "text"

	Before    bool
	Regex     bool
	Separator string
	Stats     bool

	// Write tuning, hidden from --help.
	ContiguousThreshold int
	MaxIOV              int

	// RunIDs allows overriding the run id generator (for testing).
	// If nil, defaults to UUIDv7Generator.
	RunIDs RunIDGenerator
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the tac command.
func NewRootCommand() *cobra.Command {
	return newRootCommand(&RootOptions{})
}

func newRootCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tac [OPTION]... [FILE]...",
		Short: "tac - concatenate and print files in reverse",
		Long: `Write each FILE to standard output, last record first.

With no FILE, or when FILE is -, read standard input.

Records are separated by newline unless --separator is given. By default the
separator ends the record before it; with --before it starts the record after
it. With --regex the separator is a regular expression.

Examples:
  tac access.log
  tac -s '::' fields.txt
  tac -b -r -s '^#' notes.md
  cat journal.txt | tac --stats --format json`,
		Version:       version,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !isValidFormat(opts.Format) {
				return NewExitError(ExitCommandError, fmt.Sprintf("invalid format %q: must be one of %v", opts.Format, ValidFormats))
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTac(opts, args, cmd)
		},
	}
	cmd.SetFlagErrorFunc(func(c *cobra.Command, err error) error {
		return WrapExitError(ExitCommandError, "invalid usage", err)
	})

	flags := cmd.Flags()
	flags.BoolVarP(&opts.Before, "before", "b", false, "attach the separator before instead of after")
	flags.BoolVarP(&opts.Regex, "regex", "r", false, "interpret the separator as a regular expression")
	flags.StringVarP(&opts.Separator, "separator", "s", "", "use STRING as the separator instead of newline")
	flags.BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	flags.StringVar(&opts.Format, "format", "text", "diagnostic output format (json|text)")
	flags.BoolVar(&opts.Stats, "stats", false, "print a summary of the run to stderr")

	flags.IntVar(&opts.ContiguousThreshold, "contiguous-threshold", tac.DefaultContiguousThreshold, "input size at which records stop being copied into one buffer")
	flags.IntVar(&opts.MaxIOV, "max-iov", tac.DefaultMaxIOV, "maximum buffers per vectored write")
	_ = flags.MarkHidden("contiguous-threshold")
	_ = flags.MarkHidden("max-iov")

	return cmd
}

// Execute runs the tac command and returns the process exit code.
// Errors the command did not already report are written to stderr.
func Execute(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	opts := &RootOptions{}
	cmd := newRootCommand(opts)
	cmd.SetArgs(args)
	cmd.SetIn(stdin)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	err := cmd.Execute()
	if err == nil {
		return ExitSuccess
	}

	var exitErr *ExitError
	if !errors.As(err, &exitErr) || !exitErr.Reported {
		format := opts.Format
		if !isValidFormat(format) {
			format = "text"
		}
		formatter := &OutputFormatter{Format: format, Writer: stderr}
		_ = formatter.Error(errorCode(err), err.Error(), nil)
	}
	return GetExitCode(err)
}

// isValidFormat checks if the format is one of the allowed values.
func isValidFormat(format string) bool {
	for _, f := range ValidFormats {
		if f == format {
			return true
		}
	}
	return false
}
