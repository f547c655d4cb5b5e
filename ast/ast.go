// Package ast defines the tagged-variant node set the parser builds and the
// evaluator walks: one interface for expressions, one for statements, with
// an exhaustive concrete type per variant in spec.md §3.
package ast

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"vscript/token"
)

// Node is implemented by every AST node; String renders a debug form, never
// used to reconstruct valid source.
type Node interface {
	String() string
}

// Expr is implemented by every expression node.
type Expr interface {
	Node
	exprNode()
}

// Stmt is implemented by every statement node.
type Stmt interface {
	Node
	stmtNode()
}

// Program is the root node: a flat list of top-level statements.
type Program struct {
	Statements []Stmt
}

func (p *Program) String() string {
	var out bytes.Buffer
	for _, s := range p.Statements {
		out.WriteString(s.String())
	}
	return out.String()
}

// ----------------------------------------------------------------------------
// Expressions
// ----------------------------------------------------------------------------

// Binary is `left operator right`.
type Binary struct {
	Left     Expr
	Operator token.Token
	Right    Expr
}

func (*Binary) exprNode() {}
func (b *Binary) String() string {
	return fmt.Sprintf("(%s %s %s)", b.Left.String(), b.Operator.Lexeme, b.Right.String())
}

// Grouping is a parenthesized expression, kept distinct so precedence
// display in String() stays faithful to source structure.
type Grouping struct {
	Inner Expr
}

func (*Grouping) exprNode() {}
func (g *Grouping) String() string { return "(" + g.Inner.String() + ")" }

// Literal wraps a scalar constant: float64, string, bool, or nil (for 空).
type Literal struct {
	Value any
}

func (*Literal) exprNode() {}
func (l *Literal) String() string {
	switch v := l.Value.(type) {
	case nil:
		return "空"
	case float64:
		return strconv.FormatFloat(v, 'g', -1, 64)
	case string:
		return strconv.Quote(v)
	case bool:
		if v {
			return "真"
		}
		return "假"
	default:
		return fmt.Sprintf("%v", v)
	}
}

// Unary is `operator right`.
type Unary struct {
	Operator token.Token
	Right    Expr
}

func (*Unary) exprNode() {}
func (u *Unary) String() string { return fmt.Sprintf("(%s%s)", u.Operator.Lexeme, u.Right.String()) }

// Variable references a name previously bound in an enclosing scope.
type Variable struct {
	Name token.Token
}

func (*Variable) exprNode() {}
func (v *Variable) String() string { return v.Name.Lexeme }

// Assign is `name = value`; the parser only ever constructs this with a
// Variable on the left, enforced at parse time rather than in the type.
type Assign struct {
	Name  token.Token
	Value Expr
}

func (*Assign) exprNode() {}
func (a *Assign) String() string { return fmt.Sprintf("(%s = %s)", a.Name.Lexeme, a.Value.String()) }

// Call is `callee(args...)`.
type Call struct {
	Callee Expr
	Paren  token.Token // the closing ')' , used for call-site error attribution
	Args   []Expr
}

func (*Call) exprNode() {}
func (c *Call) String() string {
	args := make([]string, len(c.Args))
	for i, a := range c.Args {
		args[i] = a.String()
	}
	return fmt.Sprintf("%s(%s)", c.Callee.String(), strings.Join(args, ", "))
}

// ArrayLit is `[e1, e2, ...]`.
type ArrayLit struct {
	Bracket  token.Token // the opening '[', used for error attribution
	Elements []Expr
}

func (*ArrayLit) exprNode() {}
func (a *ArrayLit) String() string {
	elems := make([]string, len(a.Elements))
	for i, e := range a.Elements {
		elems[i] = e.String()
	}
	return "[" + strings.Join(elems, ", ") + "]"
}

// ----------------------------------------------------------------------------
// Statements
// ----------------------------------------------------------------------------

// ExpressionStmt evaluates an expression for its side effect and discards
// the result.
type ExpressionStmt struct {
	Expression Expr
}

func (*ExpressionStmt) stmtNode() {}
func (s *ExpressionStmt) String() string { return s.Expression.String() }

// FunctionDecl is `函数 name(params) { body }`.
type FunctionDecl struct {
	Name   token.Token
	Params []token.Token
	Body   []Stmt
}

func (*FunctionDecl) stmtNode() {}
func (f *FunctionDecl) String() string {
	params := make([]string, len(f.Params))
	for i, p := range f.Params {
		params[i] = p.Lexeme
	}
	return fmt.Sprintf("函数 %s(%s) { ... }", f.Name.Lexeme, strings.Join(params, ", "))
}

// IfStmt is `如果 (cond) then [否则 else]`.
type IfStmt struct {
	Condition  Expr
	Then       Stmt
	Else       Stmt // nil when absent
}

func (*IfStmt) stmtNode() {}
func (i *IfStmt) String() string {
	s := fmt.Sprintf("如果 (%s) %s", i.Condition.String(), i.Then.String())
	if i.Else != nil {
		s += " 否则 " + i.Else.String()
	}
	return s
}

// LetStmt is `就是 name [= initializer]`.
type LetStmt struct {
	Name        token.Token
	Initializer Expr // nil when absent; binds to 空
}

func (*LetStmt) stmtNode() {}
func (l *LetStmt) String() string {
	if l.Initializer == nil {
		return "就是 " + l.Name.Lexeme
	}
	return fmt.Sprintf("就是 %s = %s", l.Name.Lexeme, l.Initializer.String())
}

// ReturnStmt is `返回 [value]`.
type ReturnStmt struct {
	Keyword token.Token
	Value   Expr // nil when the statement immediately closes the body
}

func (*ReturnStmt) stmtNode() {}
func (r *ReturnStmt) String() string {
	if r.Value == nil {
		return "返回"
	}
	return "返回 " + r.Value.String()
}

// WhileStmt is a pretest loop. It exists in the AST for evaluator
// completeness but has no surface syntax; the parser never constructs one.
type WhileStmt struct {
	Condition Expr
	Body      Stmt
}

func (*WhileStmt) stmtNode() {}
func (w *WhileStmt) String() string {
	return fmt.Sprintf("while (%s) %s", w.Condition.String(), w.Body.String())
}

// BlockStmt is `{ stmts... }`.
type BlockStmt struct {
	Statements []Stmt
}

func (*BlockStmt) stmtNode() {}
func (b *BlockStmt) String() string {
	parts := make([]string, len(b.Statements))
	for i, s := range b.Statements {
		parts[i] = s.String()
	}
	return "{ " + strings.Join(parts, " ") + " }"
}

// ForStmt is `对于 var 在 iterable body`.
type ForStmt struct {
	Var      token.Token
	Iterable Expr
	Body     Stmt
}

func (*ForStmt) stmtNode() {}
func (f *ForStmt) String() string {
	return fmt.Sprintf("对于 %s 在 %s %s", f.Var.Lexeme, f.Iterable.String(), f.Body.String())
}
