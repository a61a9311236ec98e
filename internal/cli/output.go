package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"
)

// Exit codes for CLI commands.
const (
	ExitSuccess      = 0 // Every expression evaluated
	ExitFailure      = 1 // At least one expression failed to evaluate or solve
	ExitCommandError = 2 // Command error (bad flags, unreadable input, etc.)
)

// ExitError represents an error with a specific exit code.
type ExitError struct {
	Code    int    // Exit code (use ExitFailure or ExitCommandError)
	Message string // Error message
	Err     error  // Underlying error (optional)
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

// CLIResponse is the structured output for one expression in json and yaml
// formats.
type CLIResponse struct {
	Status string    `json:"status" yaml:"status"`                   // "ok" or "error"
	Data   *Outcome  `json:"data,omitempty" yaml:"data,omitempty"`   // the evaluated expression
	Error  *CLIError `json:"error,omitempty" yaml:"error,omitempty"` // error details
}

// CLIError is the error structure for CLI responses.
type CLIError struct {
	Kind    string `json:"kind" yaml:"kind"`                   // error kind, e.g. "DivisionByZero"
	Message string `json:"message" yaml:"message"`             // human-readable message
	Pos     int    `json:"pos,omitempty" yaml:"pos,omitempty"` // rune column in the input
}

// Outcome is the result of evaluating or solving one expression.
type Outcome struct {
	Input   string   `json:"input" yaml:"input"`
	Result  string   `json:"result,omitempty" yaml:"result,omitempty"`
	Solved  bool     `json:"solved,omitempty" yaml:"solved,omitempty"`
	Postfix string   `json:"postfix,omitempty" yaml:"postfix,omitempty"`
	Trace   []string `json:"trace,omitempty" yaml:"trace,omitempty"`

	err *CLIError
}

// OutputFormatter renders outcomes as text, json, or yaml.
type OutputFormatter struct {
	Format string
	Writer io.Writer

	docs int
}

// Write outputs one outcome in the configured format.
func (f *OutputFormatter) Write(o *Outcome) error {
	resp := CLIResponse{Status: "ok", Data: o}
	if o.err != nil {
		resp.Status = "error"
		resp.Error = o.err
	}
	switch f.Format {
	case "json":
		return json.NewEncoder(f.Writer).Encode(resp)
	case "yaml":
		b, err := yaml.Marshal(resp)
		if err != nil {
			return err
		}
		if f.docs > 0 {
			if _, err := io.WriteString(f.Writer, "---\n"); err != nil {
				return err
			}
		}
		f.docs++
		_, err = f.Writer.Write(b)
		return err
	}

	// Human-readable text output
	var b strings.Builder
	if o.Postfix != "" {
		fmt.Fprintf(&b, "postfix: %s\n", o.Postfix)
	}
	for _, step := range o.Trace {
		fmt.Fprintf(&b, "  %s\n", step)
	}
	switch {
	case o.err != nil:
		fmt.Fprintf(&b, "error: %s\n", o.err.Message)
	case o.Solved:
		fmt.Fprintf(&b, "X = %s\n", o.Result)
	default:
		fmt.Fprintf(&b, "%s\n", o.Result)
	}
	_, err := io.WriteString(f.Writer, b.String())
	return err
}
