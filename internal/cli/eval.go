package cli

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/zephyrtronium/calc"
)

// EvalOptions holds flags for evaluating expressions.
type EvalOptions struct {
	In    string // input file, "-" for stdin
	Lines bool   // each input line is a separate expression
	Verb  string // result formatting verb
	Trace bool   // include evaluation steps
	Echo  bool   // include the postfix sequence
	Tree  bool   // evaluate through an expression tree
}

func (e *EvalOptions) addFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&e.In, "in", "", "input file (default stdin if no args given)")
	cmd.Flags().BoolVarP(&e.Lines, "lines", "n", false, "treat separate input lines as separate expressions")
	cmd.Flags().StringVar(&e.Verb, "fmt", "%g", "result formatting string")
	cmd.Flags().BoolVar(&e.Trace, "trace", false, "print evaluation steps")
	cmd.Flags().BoolVar(&e.Echo, "echo", false, "print expressions in postfix order")
	cmd.Flags().BoolVar(&e.Tree, "tree", false, "evaluate through an expression tree")
}

func runEval(opts *RootOptions, e *EvalOptions, args []string, cmd *cobra.Command) error {
	log := opts.logger()
	srcs, err := e.inputs(args, cmd.InOrStdin())
	if err != nil {
		return WrapExitError(ExitCommandError, "reading input", err)
	}
	if len(srcs) == 0 {
		log.Warn("no expressions to evaluate")
	}

	f := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()}
	failed := 0
	for _, src := range srcs {
		o := e.evaluate(src, log)
		if o.err != nil {
			failed++
		}
		if err := f.Write(o); err != nil {
			return WrapExitError(ExitCommandError, "writing output", err)
		}
	}
	if failed > 0 {
		return NewExitError(ExitFailure, fmt.Sprintf("%d of %d expressions failed", failed, len(srcs)))
	}
	return nil
}

// inputs collects the expressions to evaluate. Input from --in, or from stdin
// when there are no arguments, comes before the arguments themselves.
func (e *EvalOptions) inputs(args []string, stdin io.Reader) ([]string, error) {
	in := e.In
	if in == "" && len(args) == 0 {
		in = "-"
	}
	var srcs []string
	if in != "" {
		r := stdin
		if in != "-" {
			f, err := os.Open(in)
			if err != nil {
				return nil, err
			}
			defer f.Close()
			r = f
		}
		b, err := io.ReadAll(r)
		if err != nil {
			return nil, err
		}
		srcs = append(srcs, split(string(b), e.Lines)...)
	}
	return append(srcs, args...), nil
}

// split divides input into expressions, dropping blank ones.
func split(s string, lines bool) []string {
	if !lines {
		s = strings.TrimSpace(s)
		if s == "" {
			return nil
		}
		return []string{s}
	}
	var r []string
	for _, line := range strings.Split(s, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			r = append(r, line)
		}
	}
	return r
}

func (e *EvalOptions) calcopts() []calc.Option {
	if e.Tree {
		return []calc.Option{calc.UseTree()}
	}
	return nil
}

// evaluate calculates one expression. The outcome records any failure rather
// than returning it so that later expressions still run.
func (e *EvalOptions) evaluate(src string, log *slog.Logger) *Outcome {
	o := &Outcome{Input: src}
	r, err := calc.Calculate(src, e.calcopts()...)
	if r != nil {
		if e.Echo {
			o.Postfix = postfixString(r.Postfix)
		}
		if e.Trace {
			o.Trace = r.Trace
		}
	}
	if err != nil {
		o.err = errorInfo(err)
		log.Debug("evaluation failed", "input", src, "kind", o.err.Kind, "pos", o.err.Pos)
		return o
	}
	o.Result = fmt.Sprintf(e.verb(), r.Value)
	o.Solved = r.Solved
	log.Debug("evaluated", "input", src, "solved", r.Solved, "steps", len(r.Trace))
	return o
}

func (e *EvalOptions) verb() string {
	if e.Verb == "" {
		return "%g"
	}
	return e.Verb
}

func postfixString(postfix []calc.Token) string {
	s := make([]string, len(postfix))
	for i, tok := range postfix {
		s[i] = tok.Text
	}
	return strings.Join(s, " ")
}

func errorInfo(err error) *CLIError {
	r := &CLIError{Kind: calc.KindOf(err).String(), Message: err.Error()}
	var ierr calc.InputError
	if errors.As(err, &ierr) {
		r.Pos = ierr.Pos()
	}
	return r
}
