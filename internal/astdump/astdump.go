// Package astdump renders a parsed program or a token stream for the
// --dump-ast / --tokens debug flags. It exists purely for development use
// and never affects evaluation.
package astdump

import (
	"fmt"
	"io"

	"github.com/kr/pretty"
	"github.com/kr/text"

	"vscript/ast"
	"vscript/lexer"
	"vscript/token"
)

// Program prints each top-level statement's String() form on its own line,
// prefixed with its index.
func Program(out io.Writer, stmts []ast.Stmt) {
	for i, s := range stmts {
		fmt.Fprintf(out, "[%d] %s\n", i, s.String())
	}
}

// Tree uses kr/pretty's Go-syntax-like dump for each top-level statement,
// indented with kr/text, useful when
// String() collapses detail the raw struct would show (token positions,
// nil vs. zero-value fields).
func Tree(out io.Writer, stmts []ast.Stmt) {
	for i, s := range stmts {
		dump := pretty.Sprint(s)
		fmt.Fprintf(out, "[%d]\n%s\n", i, text.Indent(dump, "  "))
	}
}

// Tokens scans source with a fresh lexer and writes one line per token,
// stopping at (and including) the first lexical error or the EOF token.
func Tokens(out io.Writer, source string) {
	l := lexer.New(source)
	for {
		tok, err := l.NextToken()
		if err != nil {
			fmt.Fprintf(out, "LEX ERROR: %s\n", err)
			return
		}
		fmt.Fprintf(out, "%-10s %-12q line=%d col=%d\n", tok.Type, tok.Lexeme, tok.Line, tok.Column)
		if tok.Type == token.EOF {
			return
		}
	}
}
