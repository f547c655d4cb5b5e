// Package cmd wires VScript's CLI contract (spec.md §6) onto cobra:
// zero arguments enters the REPL, one argument runs a file, two or more is
// a usage error, and a file-read failure exits 70.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"vscript/evaluator"
	"vscript/internal/astdump"
	"vscript/internal/replconfig"
	"vscript/lexer"
	"vscript/parser"
	"vscript/repl"
)

const (
	exitUsage   = 64
	exitIOError = 70
)

var (
	dumpAST    bool
	dumpTokens bool
	noColor    bool
)

var rootCmd = &cobra.Command{
	Use:   "vscript [path]",
	Short: "VScript interpreter",
	Long: `vscript is a tree-walking interpreter for VScript, a small
Chinese-keyworded scripting language with first-class closures, a handful
of built-in functions, and numeric/string/boolean/null/array values.

With no arguments it starts an interactive session. With one argument it
reads that file as UTF-8 source and interprets it.`,
	// Arity is checked by hand in run(), not via cobra's Args validator, so
	// a 2+-argument invocation surfaces spec.md's own exit code 64 instead
	// of cobra's default arg-count error.
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          run,
}

func init() {
	rootCmd.Flags().BoolVar(&dumpAST, "dump-ast", false, "print the parsed AST instead of evaluating it")
	rootCmd.Flags().BoolVar(&dumpTokens, "tokens", false, "print the token stream before evaluating")
	rootCmd.Flags().BoolVar(&noColor, "no-color", false, "disable ANSI color in REPL diagnostics")
}

// Execute runs the root command and translates its outcome into the exact
// process exit codes spec.md §6 requires.
func Execute() int {
	if err := rootCmd.Execute(); err != nil {
		if code, ok := err.(exitCode); ok {
			if code.msg != "" {
				fmt.Fprintln(os.Stderr, code.msg)
			}
			return int(code.code)
		}
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}

// exitCode lets run() carry a specific process exit code back through
// cobra's plain error return, without cobra printing its own usage text for
// cases spec.md defines its own exit code for.
type exitCode struct {
	code int
	msg  string
}

func (e exitCode) Error() string { return e.msg }

func run(c *cobra.Command, args []string) error {
	if len(args) > 1 {
		return exitCode{code: exitUsage, msg: c.UsageString()}
	}

	if len(args) == 1 {
		return runFile(args[0])
	}
	return runREPL()
}

func runFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return exitCode{code: exitIOError, msg: fmt.Sprintf("无法读取文件 %s：%s", path, err)}
	}

	l := lexer.New(string(data))
	p, err := parser.New(l)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return exitCode{code: 1}
	}
	stmts, err := p.ParseProgram()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return exitCode{code: 1}
	}

	if dumpTokens {
		astdump.Tokens(os.Stdout, string(data))
	}
	if dumpAST {
		astdump.Program(os.Stdout, stmts)
		return nil
	}

	eval := evaluator.New()
	if err := eval.Interpret(stmts); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return exitCode{code: 1}
	}
	return nil
}

func runREPL() error {
	cfg, err := replconfig.Load(".vscript.yaml")
	if err != nil {
		fmt.Fprintf(os.Stderr, "无法加载 .vscript.yaml：%s\n", err)
		cfg = replconfig.Default()
	}
	opts := repl.FromConfig(cfg)
	if noColor {
		opts.ColorOutput = false
	}
	opts.DumpAST = dumpAST
	opts.DumpTokens = dumpTokens

	repl.Start(os.Stdin, os.Stdout, os.Stderr, opts)
	return nil
}
