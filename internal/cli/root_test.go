package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

// execute runs the root command with args and stdin, returning stdout, stderr
// and the error from Execute.
func execute(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	cmd := NewRootCommand()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

func TestRootCommand(t *testing.T) {
	cmd := NewRootCommand()
	require.NotNil(t, cmd)
	assert.Equal(t, "calc", cmd.Name())
	assert.Contains(t, cmd.Long, "linear equations")
}

func TestCommandPresence(t *testing.T) {
	cmd := NewRootCommand()
	sub, _, err := cmd.Find([]string{"repl"})
	require.NoError(t, err)
	require.NotNil(t, sub)
	assert.Equal(t, "repl", sub.Name())
}

func TestGlobalFlags(t *testing.T) {
	cmd := NewRootCommand()

	verboseFlag := cmd.PersistentFlags().Lookup("verbose")
	require.NotNil(t, verboseFlag)
	assert.Equal(t, "v", verboseFlag.Shorthand)
	assert.Equal(t, "false", verboseFlag.DefValue)

	formatFlag := cmd.PersistentFlags().Lookup("format")
	require.NotNil(t, formatFlag)
	assert.Equal(t, "text", formatFlag.DefValue)
}

func TestEvalFlags(t *testing.T) {
	cmd := NewRootCommand()

	linesFlag := cmd.Flags().Lookup("lines")
	require.NotNil(t, linesFlag)
	assert.Equal(t, "n", linesFlag.Shorthand)

	fmtFlag := cmd.Flags().Lookup("fmt")
	require.NotNil(t, fmtFlag)
	assert.Equal(t, "%g", fmtFlag.DefValue)

	for _, name := range []string{"in", "trace", "echo", "tree"} {
		assert.NotNil(t, cmd.Flags().Lookup(name), "flag %s", name)
	}
}

func TestReplCommandFlags(t *testing.T) {
	cmd := NewRootCommand()
	replCmd, _, err := cmd.Find([]string{"repl"})
	require.NoError(t, err)

	histFlag := replCmd.Flags().Lookup("history")
	require.NotNil(t, histFlag)
	assert.Equal(t, "", histFlag.DefValue)
}

func TestEvalArgs(t *testing.T) {
	out, _, err := execute(t, "", "3 + 5 * (2 - 8)", "2 * X + 4 = 10", "2(3)")
	require.NoError(t, err)
	assert.Equal(t, "-27\nX = 3\n6\n", out)
}

func TestEvalStdin(t *testing.T) {
	out, _, err := execute(t, "3 + 5\n* 2\n")
	require.NoError(t, err)
	assert.Equal(t, "13\n", out)
}

func TestEvalStdinLines(t *testing.T) {
	out, _, err := execute(t, "1 + 1\n\n  2 * 3  \nX / 2 = 4\n", "--lines")
	require.NoError(t, err)
	assert.Equal(t, "2\n6\nX = 8\n", out)
}

func TestEvalInFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "exprs.txt")
	require.NoError(t, os.WriteFile(path, []byte("10 / 4\n2 ^ 10\n"), 0o644))

	out, _, err := execute(t, "", "--in", path, "-n", "1 + 2")
	require.NoError(t, err)
	assert.Equal(t, "2.5\n1024\n3\n", out)
}

func TestEvalInMissingFile(t *testing.T) {
	_, _, err := execute(t, "", "--in", filepath.Join(t.TempDir(), "missing"))
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestEvalVerb(t *testing.T) {
	out, _, err := execute(t, "", "--fmt", "%.3f", "1 / 3")
	require.NoError(t, err)
	assert.Equal(t, "0.333\n", out)
}

func TestEvalTrace(t *testing.T) {
	out, _, err := execute(t, "", "--trace", "1 + 2")
	require.NoError(t, err)
	assert.Equal(t, "  push 1\n  push 2\n  1 + 2 = 3\n3\n", out)
}

func TestEvalTreeTrace(t *testing.T) {
	out, _, err := execute(t, "", "--trace", "--tree", "1 + 2")
	require.NoError(t, err)
	assert.Equal(t, "  1 + 2 = 3\n3\n", out)
}

func TestEvalEcho(t *testing.T) {
	out, _, err := execute(t, "", "--echo", "3 + 5 * (2 - 8)")
	require.NoError(t, err)
	assert.Equal(t, "postfix: 3 5 2 8 - * +\n-27\n", out)
}

func TestEvalFailures(t *testing.T) {
	out, _, err := execute(t, "", "1 / 0", "1 + 1", "X = X")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, err.Error(), "2 of 3")

	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "error: 3: division by zero", lines[0])
	assert.Equal(t, "2", lines[1])
	assert.True(t, strings.HasPrefix(lines[2], "error: "), lines[2])
}

func TestEvalTreeDivision(t *testing.T) {
	out, _, err := execute(t, "", "--tree", "1 / 0")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Equal(t, "error: 3: division by zero\n", out)

	out, _, err = execute(t, "", "--tree", "--trace", "1 / 0")
	require.Error(t, err)
	assert.Equal(t, "  1 / 0 = +Inf\n  error: 3: division by zero\nerror: 3: division by zero\n", out)
}

func TestEvalJSON(t *testing.T) {
	out, _, err := execute(t, "", "--format", "json", "2 * X + 4 = 10", "3 $ 4")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))

	dec := json.NewDecoder(strings.NewReader(out))
	var ok CLIResponse
	require.NoError(t, dec.Decode(&ok))
	assert.Equal(t, "ok", ok.Status)
	require.NotNil(t, ok.Data)
	assert.Equal(t, "2 * X + 4 = 10", ok.Data.Input)
	assert.Equal(t, "3", ok.Data.Result)
	assert.True(t, ok.Data.Solved)
	assert.Nil(t, ok.Error)

	var bad CLIResponse
	require.NoError(t, dec.Decode(&bad))
	assert.Equal(t, "error", bad.Status)
	require.NotNil(t, bad.Error)
	assert.Equal(t, "UnknownCharacter", bad.Error.Kind)
	assert.Equal(t, 3, bad.Error.Pos)
	assert.Contains(t, bad.Error.Message, "unknown character")
}

func TestEvalYAML(t *testing.T) {
	out, _, err := execute(t, "", "--format", "yaml", "--trace", "1 + 2", "4 - 1")
	require.NoError(t, err)

	dec := yaml.NewDecoder(strings.NewReader(out))
	var docs []CLIResponse
	for {
		var r CLIResponse
		err := dec.Decode(&r)
		if errors.Is(err, io.EOF) {
			break
		}
		require.NoError(t, err)
		docs = append(docs, r)
	}
	require.Len(t, docs, 2)
	assert.Equal(t, "ok", docs[0].Status)
	assert.Equal(t, "3", docs[0].Data.Result)
	assert.Equal(t, []string{"push 1", "push 2", "1 + 2 = 3"}, docs[0].Data.Trace)
	assert.Equal(t, "3", docs[1].Data.Result)
}

func TestInvalidFormat(t *testing.T) {
	_, _, err := execute(t, "", "--format", "xml", "1")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, err.Error(), "invalid format")
}

func TestUnknownFlag(t *testing.T) {
	_, _, err := execute(t, "", "--bogus", "1")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestVerboseLogging(t *testing.T) {
	_, errOut, err := execute(t, "", "-v", "1 + 1")
	require.NoError(t, err)
	assert.Contains(t, errOut, "level=DEBUG")
	assert.Contains(t, errOut, "msg=evaluated")

	_, errOut, err = execute(t, "", "1 + 1")
	require.NoError(t, err)
	assert.Empty(t, errOut)
}

func TestEmptyInputWarns(t *testing.T) {
	out, errOut, err := execute(t, "  \n")
	require.NoError(t, err)
	assert.Empty(t, out)
	assert.Contains(t, errOut, "no expressions to evaluate")
}

func TestSplit(t *testing.T) {
	assert.Nil(t, split(" \n ", false))
	assert.Equal(t, []string{"1 +\n2"}, split("\n1 +\n2\n", false))
	assert.Equal(t, []string{"1 +", "2"}, split("\n1 +\r\n2\n", true))
}
