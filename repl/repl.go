// Package repl implements the interactive Read-Eval-Print loop described in
// spec.md §6. It is an out-of-core collaborator: the file-read entry point,
// the line-reader loop, and terminal color formatting are explicitly not
// part of the language pipeline, but still need a real implementation to
// run the interpreter interactively.
package repl

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"vscript/evaluator"
	"vscript/internal/astdump"
	"vscript/internal/replconfig"
	"vscript/internal/replhistory"
	"vscript/lexer"
	"vscript/object"
	"vscript/parser"
)

// ANSI color codes, kept as the teacher's raw escape constants — terminal
// color formatting is explicitly out of scope for the core pipeline, but
// the REPL still needs it to highlight errors.
const (
	Reset = "\033[0m"
	Red   = "\033[31m"
	Gray  = "\033[37m"
)

const exitSentinel = ".退出"

// Options configures a REPL session; zero value uses replconfig.Default().
type Options struct {
	Prompt      string
	ColorOutput bool
	DumpAST     bool
	DumpTokens  bool
}

// FromConfig builds Options from a loaded replconfig.Config.
func FromConfig(cfg replconfig.Config) Options {
	return Options{Prompt: cfg.Prompt, ColorOutput: cfg.ColorOutput}
}

// Start runs the loop: read a line from in, evaluate it against a
// persistent environment, send 输出's output to out and any lex/parse/
// runtime error to errOut, repeat until the `.退出` sentinel or end of
// input. The global environment — and hence every 就是/函数 binding —
// survives across lines for the whole session. Diagnostics go to errOut
// so piping out alone captures only 输出 results, per spec.md §6.
func Start(in io.Reader, out, errOut io.Writer, opts Options) {
	if opts.Prompt == "" {
		opts = FromConfig(replconfig.Default())
	}

	scanner := bufio.NewScanner(in)
	eval := &evaluator.Evaluator{Globals: object.NewEnvironment(), Out: out}
	object.RegisterBuiltins(eval.Globals, out)

	history, err := replhistory.New()
	if err != nil {
		fmt.Fprintf(errOut, errColor(opts)+"无法创建历史记录：%s\n"+resetColor(opts), err)
	} else {
		defer history.Close()
	}

	for {
		fmt.Fprint(out, opts.Prompt)
		if !scanner.Scan() {
			return
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		if line == exitSentinel {
			return
		}
		if line == ".历史" {
			printHistory(out, errOut, history)
			continue
		}

		result := evalLine(eval, line, out, errOut, opts)
		if history != nil {
			_ = history.Append(replhistory.Entry{Line: line, Result: result})
		}
	}
}

func evalLine(eval *evaluator.Evaluator, line string, out, errOut io.Writer, opts Options) string {
	l := lexer.New(line)
	p, err := parser.New(l)
	if err != nil {
		return reportError(errOut, opts, err)
	}

	if opts.DumpTokens {
		astdump.Tokens(out, line)
	}

	stmts, err := p.ParseProgram()
	if err != nil {
		return reportError(errOut, opts, err)
	}

	if opts.DumpAST {
		astdump.Program(out, stmts)
		return ""
	}

	if err := eval.Interpret(stmts); err != nil {
		return reportError(errOut, opts, err)
	}
	return ""
}

func reportError(errOut io.Writer, opts Options, err error) string {
	fmt.Fprintf(errOut, errColor(opts)+"%s\n"+resetColor(opts), err)
	return err.Error()
}

func errColor(opts Options) string {
	if opts.ColorOutput {
		return Red
	}
	return ""
}

func resetColor(opts Options) string {
	if opts.ColorOutput {
		return Reset
	}
	return ""
}

func printHistory(out, errOut io.Writer, history *replhistory.History) {
	if history == nil {
		fmt.Fprintln(errOut, "没有可用的历史记录")
		return
	}
	entries, err := history.Entries()
	if err != nil {
		fmt.Fprintf(errOut, "读取历史记录失败：%s\n", err)
		return
	}
	for i, e := range entries {
		fmt.Fprintf(out, "%d: %s\n", i+1, e.Line)
	}
}

// NewEnvironmentForTest exposes a fresh globals environment with built-ins
// registered, for callers (tests, golden fixtures) that want REPL-identical
// semantics without driving the interactive loop.
func NewEnvironmentForTest(out io.Writer) *object.Environment {
	env := object.NewEnvironment()
	object.RegisterBuiltins(env, out)
	return env
}
