package cli

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/roach88/tac/internal/input"
	"github.com/roach88/tac/internal/sink"
	"github.com/roach88/tac/internal/tac"
)

// FileStats is the per-input part of a --stats summary.
type FileStats struct {
	Name   string       `json:"name"`
	Method input.Method `json:"method"`
	tac.Stats
}

// Summary is printed by --stats after all inputs are processed.
type Summary struct {
	Separator string      `json:"separator"`
	Mode      string      `json:"mode"`
	Files     []FileStats `json:"files"`
	Failed    int         `json:"failed"`
	Records   int         `json:"records"`
	Bytes     int64       `json:"bytes"`
}

func (s *Summary) add(fs FileStats) {
	s.Files = append(s.Files, fs)
	s.Records += fs.Records
	s.Bytes += fs.Bytes
}

// String renders the text form of the summary.
func (s Summary) String() string {
	var b strings.Builder
	for _, f := range s.Files {
		fmt.Fprintf(&b, "%s: %d record(s), %d byte(s), %s input, %s output in %d write(s)\n",
			f.Name, f.Records, f.Bytes, f.Method, f.Strategy, f.Writes)
	}
	fmt.Fprintf(&b, "total: %d file(s), %d record(s), %d byte(s), separator %s, %s mode",
		len(s.Files), s.Records, s.Bytes, s.Separator, s.Mode)
	if s.Failed > 0 {
		fmt.Fprintf(&b, ", %d unreadable", s.Failed)
	}
	return b.String()
}

func runTac(opts *RootOptions, files []string, cmd *cobra.Command) error {
	runIDs := opts.RunIDs
	if runIDs == nil {
		runIDs = UUIDv7Generator{}
	}
	runID := runIDs.Generate()

	stderr := cmd.ErrOrStderr()
	logger := newLogger(opts, stderr).With("run_id", runID)
	formatter := &OutputFormatter{
		Format:  opts.Format,
		Writer:  stderr,
		Verbose: opts.Verbose,
		TraceID: runID,
	}

	sep, err := separatorFromFlags(opts, cmd)
	if err != nil {
		_ = formatter.Error(errorCode(err), configMessage(err), nil)
		code := ExitFailure
		if tac.IsConfigError(err) {
			code = ExitCommandError
		}
		return &ExitError{Code: code, Message: "invalid separator", Err: err, Reported: true}
	}
	if opts.MaxIOV < 1 {
		msg := fmt.Sprintf("invalid --max-iov %d: must be at least 1", opts.MaxIOV)
		_ = formatter.Error(ErrCodeInvalidTuning, msg, nil)
		return &ExitError{Code: ExitCommandError, Message: msg, Reported: true}
	}

	mode := tac.After
	if opts.Before {
		mode = tac.Before
	}
	reverser := &tac.Reverser{Writer: tac.Writer{
		ContiguousThreshold: opts.ContiguousThreshold,
		MaxIOV:              opts.MaxIOV,
	}}
	out := outputSink(cmd.OutOrStdout())

	if len(files) == 0 {
		files = []string{"-"}
	}
	logger.Debug("run starting", "files", len(files), "separator", sep.String(), "mode", mode.String())

	summary := Summary{Separator: sep.String(), Mode: mode.String(), Files: []FileStats{}}
	for _, name := range files {
		data, err := acquire(name, cmd.InOrStdin())
		if err != nil {
			_ = formatter.Error(ErrCodeReadFailed, fmt.Sprintf("%s: %s", displayName(name), causeText(err)), nil)
			logger.Debug("input unreadable", "file", displayName(name), "error", err)
			summary.Failed++
			continue
		}
		logger.Debug("input acquired", "file", displayName(name), "bytes", len(data.Bytes()), "method", data.Method())

		st, err := reverser.Reverse(data.Bytes(), sep, mode, out)
		if closeErr := data.Close(); closeErr != nil {
			logger.Warn("failed to release input", "file", displayName(name), "error", closeErr)
		}
		if err != nil {
			if errors.Is(err, syscall.EPIPE) {
				// The reader went away; stop quietly like the coreutils.
				logger.Debug("output closed by reader", "file", displayName(name))
				return nil
			}
			_ = formatter.Error(errorCode(err), fmt.Sprintf("write error: %s", causeText(err)), nil)
			return &ExitError{Code: ExitFailure, Message: "write error", Err: err, Reported: true}
		}
		logger.Debug("input reversed",
			"file", displayName(name),
			"strategy", st.Strategy,
			"records", st.Records,
			"bytes", st.Bytes,
			"writes", st.Writes,
		)
		summary.add(FileStats{Name: displayName(name), Method: data.Method(), Stats: st})
	}

	if opts.Stats {
		if err := formatter.Success(summary); err != nil {
			logger.Warn("failed to write summary", "error", err)
		}
	}
	if summary.Failed > 0 {
		return &ExitError{
			Code:     ExitFailure,
			Message:  fmt.Sprintf("%d input(s) could not be read", summary.Failed),
			Reported: true,
		}
	}
	return nil
}

// newLogger builds the run logger. Diagnostics stay quiet unless --verbose;
// in JSON mode log lines are JSON too so stderr remains machine-readable.
func newLogger(opts *RootOptions, w io.Writer) *slog.Logger {
	logLevel := slog.LevelWarn
	if opts.Verbose {
		logLevel = slog.LevelDebug
	}
	handlerOpts := &slog.HandlerOptions{Level: logLevel}
	if opts.Format == "json" {
		return slog.New(slog.NewJSONHandler(w, handlerOpts))
	}
	return slog.New(slog.NewTextHandler(w, handlerOpts))
}

// separatorFromFlags resolves -s/-r. Without -s the separator is newline,
// also as a pattern; an explicit empty -s is an error.
func separatorFromFlags(opts *RootOptions, cmd *cobra.Command) (tac.Separator, error) {
	if !cmd.Flags().Changed("separator") {
		if opts.Regex {
			return tac.Pattern(`\n`)
		}
		return tac.Newline, nil
	}
	return tac.Parse(opts.Separator, opts.Regex)
}

func acquire(name string, stdin io.Reader) (*input.Data, error) {
	if name == "-" {
		return input.ReadAll(stdin)
	}
	return input.Open(name)
}

// outputSink upgrades real files to the vectored sink.
func outputSink(w io.Writer) io.Writer {
	if f, ok := w.(*os.File); ok {
		return sink.NewFile(f)
	}
	return w
}

func displayName(name string) string {
	if name == "-" {
		return "standard input"
	}
	return name
}

// causeText strips the operation and path from file errors, which the
// caller already prints: "open x: no such file or directory" -> "no such
// file or directory".
func causeText(err error) string {
	var pe *os.PathError
	if errors.As(err, &pe) {
		return pe.Err.Error()
	}
	var te *tac.Error
	if errors.As(err, &te) && te.Err != nil {
		return causeText(te.Err)
	}
	return err.Error()
}

func configMessage(err error) string {
	var te *tac.Error
	if errors.As(err, &te) {
		if te.Code == tac.ErrCodeInvalidPattern {
			return fmt.Sprintf("invalid regular expression %q: %v", te.Pattern, te.Err)
		}
		return te.Message
	}
	return err.Error()
}

// errorCode maps an error to its JSON error code.
func errorCode(err error) string {
	var te *tac.Error
	if errors.As(err, &te) {
		switch te.Code {
		case tac.ErrCodeInvalidPattern:
			return ErrCodeInvalidPattern
		case tac.ErrCodeEmptySeparator:
			return ErrCodeEmptySeparator
		case tac.ErrCodeWriteZero:
			return ErrCodeWriteZero
		case tac.ErrCodeWriteFailed:
			return ErrCodeWriteFailed
		}
	}
	if GetExitCode(err) == ExitCommandError {
		return ErrCodeInvalidUsage
	}
	return ErrCodeGeneric
}
