// Package verrors formats the three error kinds the VScript pipeline can
// raise — lexical, parse, and runtime — in the bit-exact surface forms the
// language specifies. It mirrors the shape of a dedicated compiler-error
// package (position + message + formatted Error()), adapted so VScript's
// own wire format is produced instead of any other language's.
package verrors

import (
	"fmt"

	"github.com/juju/errors"
)

// Position is a 1-based source location. It is preserved unchanged from the
// lexer through the parser and into runtime error messages.
type Position struct {
	Line   int
	Column int
}

// LexError reports a scan-time defect: an unexpected character, an
// unterminated string, or an unterminated block comment.
type LexError struct {
	Pos Position
	Msg string
}

func (e *LexError) Error() string {
	return fmt.Sprintf("第 %d 行，第 %d 列：%s", e.Pos.Line, e.Pos.Column, e.Msg)
}

// NewLexError builds a LexError at the given position.
func NewLexError(pos Position, format string, args ...any) *LexError {
	return &LexError{Pos: pos, Msg: fmt.Sprintf(format, args...)}
}

// ParseError reports a parse-time defect, attributed to the offending
// token's lexeme (or 文件末尾 when the token is end-of-input).
type ParseError struct {
	Pos   Position
	Where string // the token's quoted lexeme, or 文件末尾
	Msg   string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("第 %d 行，第 %d 列，在 %s 处：%s", e.Pos.Line, e.Pos.Column, e.Where, e.Msg)
}

// NewParseError builds a ParseError attributed to where (a quoted lexeme or
// 文件末尾).
func NewParseError(pos Position, where string, format string, args ...any) *ParseError {
	return &ParseError{Pos: pos, Where: where, Msg: fmt.Sprintf(format, args...)}
}

// RuntimeError reports an evaluation-time defect: a type mismatch, division
// by zero, undefined variable, wrong arity, non-callable call target, or
// non-array iterable. It is attributed to the token that triggered it.
type RuntimeError struct {
	Pos Position
	Msg string
	// cause holds an underlying Go error (e.g. a strconv failure surfaced
	// while coercing a builtin's arguments), when one exists.
	cause error
}

func (e *RuntimeError) Error() string {
	return fmt.Sprintf("运行时错误（第 %d 行，第 %d 列）：%s", e.Pos.Line, e.Pos.Column, e.Msg)
}

// Unwrap exposes the underlying cause, if any, to errors.Is/As.
func (e *RuntimeError) Unwrap() error { return e.cause }

// NewRuntimeError builds a RuntimeError attributed to pos.
func NewRuntimeError(pos Position, format string, args ...any) *RuntimeError {
	return &RuntimeError{Pos: pos, Msg: fmt.Sprintf(format, args...)}
}

// WrapRuntimeError builds a RuntimeError that annotates an underlying Go
// error (for example a strconv failure while coercing a builtin argument),
// using juju/errors so the original cause is never silently dropped.
func WrapRuntimeError(pos Position, cause error, format string, args ...any) *RuntimeError {
	annotated := errors.Annotate(cause, fmt.Sprintf(format, args...))
	return &RuntimeError{Pos: pos, Msg: annotated.Error(), cause: cause}
}
