package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// Exit codes for the tac command.
const (
	ExitSuccess      = 0 // Successful execution
	ExitFailure      = 1 // An input could not be read, or output failed
	ExitCommandError = 2 // Command error (bad separator, invalid pattern, bad flags)
)

// Error codes reported in JSON responses.
const (
	ErrCodeGeneric        = "E001" // Generic/unknown error
	ErrCodeInvalidUsage   = "E002" // Flag, argument or --format error
	ErrCodeEmptySeparator = "E003" // Empty separator
	ErrCodeInvalidPattern = "E004" // Separator regex does not compile
	ErrCodeReadFailed     = "E005" // Input could not be acquired
	ErrCodeWriteFailed    = "E006" // Output write error
	ErrCodeWriteZero      = "E007" // Output stopped accepting bytes
	ErrCodeInvalidTuning  = "E008" // Bad hidden tuning flag
)

// ExitError represents an error with a specific exit code.
// Use this to return errors with meaningful exit codes from CLI commands.
type ExitError struct {
	Code    int    // Exit code (use ExitFailure or ExitCommandError)
	Message string // Error message
	Err     error  // Underlying error (optional)

	// Reported marks errors already written by the command, so Execute
	// does not print them a second time.
	Reported bool
}

func (e *ExitError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// NewExitError creates a new ExitError with the given code and message.
func NewExitError(code int, message string) *ExitError {
	return &ExitError{Code: code, Message: message}
}

// WrapExitError wraps an existing error with an exit code.
func WrapExitError(code int, message string, err error) *ExitError {
	return &ExitError{Code: code, Message: message, Err: err}
}

// GetExitCode extracts the exit code from an error.
// Returns ExitFailure (1) if the error is not an ExitError.
func GetExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitFailure
}

// OutputFormatter handles JSON vs text diagnostics for the tac command.
//
// The reversed records go to stdout untouched; everything the formatter
// prints (errors and --stats summaries) goes to Writer, which the command
// points at stderr.
type OutputFormatter struct {
	Format  string
	Writer  io.Writer
	Verbose bool
	TraceID string // run id attached to JSON responses
}

// CLIResponse is the standard JSON response format for CLI output.
type CLIResponse struct {
	Status  string      `json:"status"`             // "ok" or "error"
	Data    interface{} `json:"data,omitempty"`     // success payload
	Error   *CLIError   `json:"error,omitempty"`    // error details
	TraceID string      `json:"trace_id,omitempty"` // run id
}

// CLIError is the error structure for CLI responses.
type CLIError struct {
	Code    string      `json:"code"`              // "E001", "E002", etc.
	Message string      `json:"message"`           // human-readable message
	Details interface{} `json:"details,omitempty"` // additional context
}

// Success outputs a successful result in the configured format.
func (f *OutputFormatter) Success(data interface{}) error {
	if f.Format == "json" {
		return json.NewEncoder(f.Writer).Encode(CLIResponse{
			Status:  "ok",
			Data:    data,
			TraceID: f.TraceID,
		})
	}

	_, err := fmt.Fprintln(f.Writer, data)
	return err
}

// Error outputs an error in the configured format.
func (f *OutputFormatter) Error(code, message string, details interface{}) error {
	if f.Format == "json" {
		return json.NewEncoder(f.Writer).Encode(CLIResponse{
			Status: "error",
			Error: &CLIError{
				Code:    code,
				Message: message,
				Details: details,
			},
			TraceID: f.TraceID,
		})
	}

	// Same shape as the coreutils diagnostics: "tac: <message>".
	fmt.Fprintf(f.Writer, "tac: %s\n", message)
	if f.Verbose && details != nil {
		fmt.Fprintf(f.Writer, "tac: [%s] details: %v\n", code, details)
	}
	return nil
}
