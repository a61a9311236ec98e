package cli

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"
	"github.com/spf13/cobra"
)

const (
	historyFile = ".calc_history"
	replPrompt  = "calc> "
)

const replHelp = `Enter an expression such as 3 + 5 * (2 - 8) or an equation such as 2X + 4 = 10.
Commands:
  :trace on|off  print evaluation steps
  :tree on|off   evaluate through an expression tree
  :help          show this message
  :quit          exit`

// ReplOptions holds flags for the repl command.
type ReplOptions struct {
	History string
	Eval    EvalOptions
}

// prompter reads lines interactively. *liner.State satisfies it.
type prompter interface {
	Prompt(prompt string) (string, error)
	AppendHistory(item string)
}

// NewReplCommand creates the repl command.
func NewReplCommand(opts *RootOptions) *cobra.Command {
	replOpts := &ReplOptions{}

	cmd := &cobra.Command{
		Use:   "repl",
		Short: "Evaluate expressions interactively",
		Long: `Start an interactive session. Each line is evaluated, or solved for X if it
is an equation, as soon as it is entered. Type :help for commands.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRepl(opts, replOpts, cmd)
		},
	}

	cmd.Flags().StringVar(&replOpts.History, "history", "", "history file (default ~/"+historyFile+")")
	cmd.Flags().StringVar(&replOpts.Eval.Verb, "fmt", "%g", "result formatting string")
	cmd.Flags().BoolVar(&replOpts.Eval.Trace, "trace", false, "print evaluation steps")
	cmd.Flags().BoolVar(&replOpts.Eval.Tree, "tree", false, "evaluate through an expression tree")

	return cmd
}

func runRepl(opts *RootOptions, r *ReplOptions, cmd *cobra.Command) error {
	log := opts.logger()
	histPath := r.historyPath()

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	if histPath != "" {
		if f, err := os.Open(histPath); err == nil {
			_, _ = ln.ReadHistory(f)
			_ = f.Close()
		}
		defer func() {
			f, err := os.Create(histPath)
			if err != nil {
				log.Warn("saving history", "path", histPath, "err", err)
				return
			}
			_, _ = ln.WriteHistory(f)
			_ = f.Close()
		}()
	}

	f := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()}
	return repl(ln, f, &r.Eval, log)
}

func (r *ReplOptions) historyPath() string {
	if r.History != "" {
		return r.History
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, historyFile)
}

// repl evaluates lines from p until :quit, end of input, or an aborted prompt.
func repl(p prompter, f *OutputFormatter, e *EvalOptions, log *slog.Logger) error {
	for {
		line, err := p.Prompt(replPrompt)
		switch {
		case errors.Is(err, io.EOF):
			fmt.Fprintln(f.Writer)
			return nil
		case errors.Is(err, liner.ErrPromptAborted):
			return nil
		case err != nil:
			return WrapExitError(ExitCommandError, "reading input", err)
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		p.AppendHistory(line)

		if strings.HasPrefix(line, ":") {
			quit, msg := replCommand(line, e)
			if quit {
				return nil
			}
			fmt.Fprintln(f.Writer, msg)
			continue
		}
		if err := f.Write(e.evaluate(line, log)); err != nil {
			return WrapExitError(ExitCommandError, "writing output", err)
		}
	}
}

// replCommand runs a colon command, returning whether to quit and a message
// to show otherwise.
func replCommand(line string, e *EvalOptions) (bool, string) {
	args := strings.Fields(strings.ToLower(line))
	switch args[0] {
	case ":quit", ":q":
		return true, ""
	case ":help":
		return false, replHelp
	case ":trace", ":tree":
		if len(args) != 2 || (args[1] != "on" && args[1] != "off") {
			return false, "usage: " + args[0] + " on|off"
		}
		on := args[1] == "on"
		if args[0] == ":trace" {
			e.Trace = on
		} else {
			e.Tree = on
		}
		return false, args[0][1:] + " " + args[1]
	}
	return false, "unknown command. Type :help for commands."
}
