// Package evaluator walks the AST produced by the parser against a
// lexically-scoped object.Environment, producing object.Value results or
// runtime errors.
package evaluator

import (
	"errors"
	"io"
	"math"
	"os"

	"vscript/ast"
	"vscript/internal/verrors"
	"vscript/object"
	"vscript/token"
)

// signal distinguishes ordinary statement completion from a 返回 unwind in
// flight. It is threaded explicitly through every statement-executing
// method rather than modeled as an error, per the control-flow/error
// distinction the top-level handler must respect.
type signal int

const (
	sigNone signal = iota
	sigReturn
)

type result struct {
	sig   signal
	value object.Value
}

// Evaluator holds the interpreter's one piece of process-wide mutable
// state: the global environment. It is reused across Interpret calls so a
// REPL session accumulates definitions.
type Evaluator struct {
	Globals *object.Environment
	Out     io.Writer
}

// New constructs an Evaluator with the global environment populated by the
// built-in library.
func New() *Evaluator {
	e := &Evaluator{Globals: object.NewEnvironment(), Out: os.Stdout}
	object.RegisterBuiltins(e.Globals, e.Out)
	return e
}

// Interpret executes stmts in the global environment. A 返回 reaching the
// top level (outside any function call) simply ends the run; it is not an
// error.
func (e *Evaluator) Interpret(stmts []ast.Stmt) error {
	_, err := e.evalStmts(stmts, e.Globals)
	return err
}

func posOf(t token.Token) verrors.Position {
	return verrors.Position{Line: t.Line, Column: t.Column}
}

// ----------------------------------------------------------------------------
// Statements
// ----------------------------------------------------------------------------

func (e *Evaluator) evalStmts(stmts []ast.Stmt, env *object.Environment) (result, error) {
	for _, s := range stmts {
		r, err := e.execStmt(s, env)
		if err != nil {
			return result{}, err
		}
		if r.sig != sigNone {
			return r, nil
		}
	}
	return result{}, nil
}

// execStmt dispatches on the concrete statement variant. Every arm is
// total over the Stmt tag set declared in ast.go, including the dormant
// WhileStmt.
func (e *Evaluator) execStmt(stmt ast.Stmt, env *object.Environment) (result, error) {
	switch s := stmt.(type) {
	case *ast.ExpressionStmt:
		_, err := e.evalExpr(s.Expression, env)
		return result{}, err

	case *ast.FunctionDecl:
		e.execFunctionDecl(s, env)
		return result{}, nil

	case *ast.LetStmt:
		value := object.Value(&object.Null{})
		if s.Initializer != nil {
			v, err := e.evalExpr(s.Initializer, env)
			if err != nil {
				return result{}, err
			}
			value = v
		}
		env.Define(s.Name.Lexeme, value)
		return result{}, nil

	case *ast.IfStmt:
		cond, err := e.evalExpr(s.Condition, env)
		if err != nil {
			return result{}, err
		}
		if truthy(cond) {
			return e.execStmt(s.Then, env)
		}
		if s.Else != nil {
			return e.execStmt(s.Else, env)
		}
		return result{}, nil

	case *ast.ReturnStmt:
		value := object.Value(&object.Null{})
		if s.Value != nil {
			v, err := e.evalExpr(s.Value, env)
			if err != nil {
				return result{}, err
			}
			value = v
		}
		return result{sig: sigReturn, value: value}, nil

	case *ast.WhileStmt:
		for {
			cond, err := e.evalExpr(s.Condition, env)
			if err != nil {
				return result{}, err
			}
			if !truthy(cond) {
				return result{}, nil
			}
			r, err := e.execStmt(s.Body, env)
			if err != nil || r.sig != sigNone {
				return r, err
			}
		}

	case *ast.BlockStmt:
		child := object.NewChild(env)
		return e.evalStmts(s.Statements, child)

	case *ast.ForStmt:
		return e.execForStmt(s, env)

	default:
		return result{}, verrors.NewRuntimeError(verrors.Position{}, "未知的语句类型")
	}
}

func (e *Evaluator) execFunctionDecl(f *ast.FunctionDecl, env *object.Environment) {
	closure := env // capture the declaration-time environment, not the caller's
	fn := &object.Callable{
		Arity: len(f.Params),
		Name:  f.Name.Lexeme,
		Invoke: func(args []object.Value) (object.Value, error) {
			callEnv := object.NewChild(closure)
			for i, param := range f.Params {
				callEnv.Define(param.Lexeme, args[i])
			}
			r, err := e.evalStmts(f.Body, callEnv)
			if err != nil {
				return nil, err
			}
			if r.sig == sigReturn {
				return r.value, nil
			}
			return &object.Null{}, nil
		},
	}
	env.Define(f.Name.Lexeme, fn)
}

func (e *Evaluator) execForStmt(f *ast.ForStmt, env *object.Environment) (result, error) {
	iterVal, err := e.evalExpr(f.Iterable, env)
	if err != nil {
		return result{}, err
	}
	arr, ok := iterVal.(*object.Array)
	if !ok {
		return result{}, verrors.NewRuntimeError(posOf(f.Var), "'对于' 循环需要一个数组")
	}

	loopEnv := object.NewChild(env)
	for _, elem := range arr.Elements {
		loopEnv.Define(f.Var.Lexeme, elem)
		r, err := e.execStmt(f.Body, loopEnv)
		if err != nil || r.sig != sigNone {
			return r, err
		}
	}
	return result{}, nil
}

// ----------------------------------------------------------------------------
// Expressions
// ----------------------------------------------------------------------------

func (e *Evaluator) evalExpr(expr ast.Expr, env *object.Environment) (object.Value, error) {
	switch n := expr.(type) {
	case *ast.Literal:
		return literalValue(n.Value), nil

	case *ast.Grouping:
		return e.evalExpr(n.Inner, env)

	case *ast.Variable:
		return env.Get(n.Name)

	case *ast.Assign:
		value, err := e.evalExpr(n.Value, env)
		if err != nil {
			return nil, err
		}
		if err := env.Assign(n.Name, value); err != nil {
			return nil, err
		}
		return value, nil

	case *ast.Unary:
		return e.evalUnary(n, env)

	case *ast.Binary:
		return e.evalBinary(n, env)

	case *ast.Call:
		return e.evalCall(n, env)

	case *ast.ArrayLit:
		elems := make([]object.Value, len(n.Elements))
		for i, el := range n.Elements {
			v, err := e.evalExpr(el, env)
			if err != nil {
				return nil, err
			}
			elems[i] = v
		}
		return &object.Array{Elements: elems}, nil

	default:
		return nil, verrors.NewRuntimeError(verrors.Position{}, "未知的表达式类型")
	}
}

func literalValue(v any) object.Value {
	switch val := v.(type) {
	case nil:
		return &object.Null{}
	case float64:
		return &object.Number{Value: val}
	case string:
		return &object.String{Value: val}
	case bool:
		return &object.Boolean{Value: val}
	default:
		return &object.Null{}
	}
}

func (e *Evaluator) evalUnary(u *ast.Unary, env *object.Environment) (object.Value, error) {
	right, err := e.evalExpr(u.Right, env)
	if err != nil {
		return nil, err
	}
	pos := posOf(u.Operator)
	switch u.Operator.Type {
	case token.MINUS:
		n, ok := right.(*object.Number)
		if !ok {
			return nil, verrors.NewRuntimeError(pos, "类型错误：一元 '-' 需要数字")
		}
		return &object.Number{Value: -n.Value}, nil
	case token.NOT:
		return &object.Boolean{Value: !truthy(right)}, nil
	default:
		return nil, verrors.NewRuntimeError(pos, "未知的一元运算符 '%s'", u.Operator.Lexeme)
	}
}

// evalBinary evaluates both operands left-to-right before the operator
// fires, including 并/或 — VScript never short-circuits them (see
// spec.md §9's note pinning this as observable, pre-existing behavior).
func (e *Evaluator) evalBinary(b *ast.Binary, env *object.Environment) (object.Value, error) {
	left, err := e.evalExpr(b.Left, env)
	if err != nil {
		return nil, err
	}
	right, err := e.evalExpr(b.Right, env)
	if err != nil {
		return nil, err
	}
	pos := posOf(b.Operator)

	switch b.Operator.Type {
	case token.AND:
		return &object.Boolean{Value: truthy(left) && truthy(right)}, nil
	case token.OR:
		return &object.Boolean{Value: truthy(left) || truthy(right)}, nil
	case token.EQ:
		return &object.Boolean{Value: valuesEqual(left, right)}, nil
	case token.NOT_EQ:
		return &object.Boolean{Value: !valuesEqual(left, right)}, nil
	case token.PLUS:
		return evalPlus(left, right, pos)
	case token.MINUS, token.STAR, token.SLASH, token.PERCENT,
		token.LT, token.LT_EQ, token.GT, token.GT_EQ:
		return evalNumeric(b.Operator, left, right, pos)
	default:
		return nil, verrors.NewRuntimeError(pos, "未知的运算符 '%s'", b.Operator.Lexeme)
	}
}

func evalPlus(left, right object.Value, pos verrors.Position) (object.Value, error) {
	if ln, ok := left.(*object.Number); ok {
		if rn, ok := right.(*object.Number); ok {
			return &object.Number{Value: ln.Value + rn.Value}, nil
		}
	}
	if ls, ok := left.(*object.String); ok {
		if rs, ok := right.(*object.String); ok {
			return &object.String{Value: ls.Value + rs.Value}, nil
		}
	}
	return nil, verrors.NewRuntimeError(pos, "类型错误：'+' 需要两个数字或两个字符串")
}

func evalNumeric(op token.Token, left, right object.Value, pos verrors.Position) (object.Value, error) {
	ln, ok1 := left.(*object.Number)
	rn, ok2 := right.(*object.Number)
	if !ok1 || !ok2 {
		return nil, verrors.NewRuntimeError(pos, "类型错误：'%s' 需要两个数字", op.Lexeme)
	}
	switch op.Type {
	case token.MINUS:
		return &object.Number{Value: ln.Value - rn.Value}, nil
	case token.STAR:
		return &object.Number{Value: ln.Value * rn.Value}, nil
	case token.SLASH:
		if rn.Value == 0 {
			return nil, verrors.NewRuntimeError(pos, "除数不能为零")
		}
		return &object.Number{Value: ln.Value / rn.Value}, nil
	case token.PERCENT:
		return &object.Number{Value: math.Mod(ln.Value, rn.Value)}, nil
	case token.LT:
		return &object.Boolean{Value: ln.Value < rn.Value}, nil
	case token.LT_EQ:
		return &object.Boolean{Value: ln.Value <= rn.Value}, nil
	case token.GT:
		return &object.Boolean{Value: ln.Value > rn.Value}, nil
	case token.GT_EQ:
		return &object.Boolean{Value: ln.Value >= rn.Value}, nil
	default:
		return nil, verrors.NewRuntimeError(pos, "未知的运算符 '%s'", op.Lexeme)
	}
}

func (e *Evaluator) evalCall(c *ast.Call, env *object.Environment) (object.Value, error) {
	calleeVal, err := e.evalExpr(c.Callee, env)
	if err != nil {
		return nil, err
	}

	args := make([]object.Value, len(c.Args))
	for i, a := range c.Args {
		v, err := e.evalExpr(a, env)
		if err != nil {
			return nil, err
		}
		args[i] = v
	}

	fn, ok := calleeVal.(*object.Callable)
	if !ok {
		return nil, verrors.NewRuntimeError(posOf(c.Paren), "只能调用函数")
	}
	if len(args) != fn.Arity {
		return nil, verrors.NewRuntimeError(posOf(c.Paren), "期望 %d 个参数但得到 %d 个", fn.Arity, len(args))
	}

	v, err := fn.Invoke(args)
	if err != nil {
		if rerr, ok := err.(*verrors.RuntimeError); ok {
			return nil, rerr
		}
		// a built-in wrapped an underlying cause (e.g. a strconv failure while
		// coercing an argument) with %w; surface that cause through
		// WrapRuntimeError instead of flattening it into a plain string.
		if cause := errors.Unwrap(err); cause != nil {
			return nil, verrors.WrapRuntimeError(posOf(c.Paren), cause, "范围参数无法解析为数字")
		}
		// a built-in reported a plain error (no position of its own); attribute
		// it to the call site, matching user-function runtime errors.
		return nil, verrors.NewRuntimeError(posOf(c.Paren), "%s", err.Error())
	}
	return v, nil
}

// truthy implements VScript's coercion to boolean: 空 is false, a boolean
// is itself, everything else — including 0, "", and an empty array — is
// true.
func truthy(v object.Value) bool {
	switch val := v.(type) {
	case *object.Null:
		return false
	case *object.Boolean:
		return val.Value
	default:
		return true
	}
}

// valuesEqual implements VScript's == rule: 空 equals only 空; numbers,
// strings and booleans compare by value; arrays and callables compare by
// identity.
func valuesEqual(a, b object.Value) bool {
	_, aNull := a.(*object.Null)
	_, bNull := b.(*object.Null)
	if aNull || bNull {
		return aNull && bNull
	}
	switch av := a.(type) {
	case *object.Number:
		bv, ok := b.(*object.Number)
		return ok && av.Value == bv.Value
	case *object.String:
		bv, ok := b.(*object.String)
		return ok && av.Value == bv.Value
	case *object.Boolean:
		bv, ok := b.(*object.Boolean)
		return ok && av.Value == bv.Value
	case *object.Array:
		bv, ok := b.(*object.Array)
		return ok && av == bv
	case *object.Callable:
		bv, ok := b.(*object.Callable)
		return ok && av == bv
	default:
		return false
	}
}
