package object

import (
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/maruel/natural"
)

// RegisterBuiltins defines VScript's fixed built-in library (spec.md §4.6)
// into env. out is where 输出 writes; tests and the golden-file harness
// substitute a buffer for stdout.
//
// Built-in failures are returned as plain errors rather than
// *verrors.RuntimeError: the evaluator attributes them to the call site
// itself (the closing paren) the same way it would a wrong-arity error,
// so a built-in never needs its own source position. The exception is a
// coercion failure with an underlying cause (see toNumberArg below): the
// evaluator unwraps it and re-raises it through verrors.WrapRuntimeError
// so the strconv failure itself is never silently dropped.
func RegisterBuiltins(env *Environment, out io.Writer) {
	env.Define("输出", &Callable{Arity: 1, Name: "输出", Invoke: func(args []Value) (Value, error) {
		fmt.Fprintln(out, args[0].Inspect())
		return &Null{}, nil
	}})

	env.Define("范围", &Callable{Arity: 2, Name: "范围", Invoke: func(args []Value) (Value, error) {
		start, err := toNumberArg(args[0])
		if err != nil {
			return nil, err
		}
		end, err := toNumberArg(args[1])
		if err != nil {
			return nil, err
		}
		var elems []Value
		for v := start; v < end; v++ {
			elems = append(elems, &Number{Value: v})
		}
		return &Array{Elements: elems}, nil
	}})

	env.Define("长度", &Callable{Arity: 1, Name: "长度", Invoke: func(args []Value) (Value, error) {
		switch v := args[0].(type) {
		case *Array:
			return &Number{Value: float64(len(v.Elements))}, nil
		case *String:
			return &Number{Value: float64(len(v.Value))}, nil
		default:
			return nil, fmt.Errorf("长度函数需要数组或字符串参数")
		}
	}})

	env.Define("类型", &Callable{Arity: 1, Name: "类型", Invoke: func(args []Value) (Value, error) {
		return &String{Value: string(args[0].Type())}, nil
	}})

	// 排序 supplements the distilled built-in set (spec.md's §4.6 table lists
	// only the four above); sibling interpreters in the retrieved pack expose
	// an array-sort helper alongside 长度/类型, so VScript gets one too.
	// Two numbers compare numerically; any other pair is ordered by its
	// Inspect() rendering with natural-sort comparison (so "item2" sorts
	// before "item10").
	env.Define("排序", &Callable{Arity: 1, Name: "排序", Invoke: func(args []Value) (Value, error) {
		arr, ok := args[0].(*Array)
		if !ok {
			return nil, fmt.Errorf("排序函数需要数组参数")
		}
		sorted := make([]Value, len(arr.Elements))
		copy(sorted, arr.Elements)
		sort.SliceStable(sorted, func(i, j int) bool {
			a, aNum := sorted[i].(*Number)
			b, bNum := sorted[j].(*Number)
			if aNum && bNum {
				return a.Value < b.Value
			}
			return natural.Less(sorted[i].Inspect(), sorted[j].Inspect())
		})
		return &Array{Elements: sorted}, nil
	}})
}

// toNumberArg coerces v to a float64 for 范围's bounds. A *Number passes
// through directly; a *String is parsed with strconv, so a call like
// 范围("0", "5") works the same as 范围(0, 5). A failed parse is wrapped
// with %w so evalCall can unwrap the strconv cause and re-raise it through
// verrors.WrapRuntimeError instead of discarding it.
func toNumberArg(v Value) (float64, error) {
	switch v := v.(type) {
	case *Number:
		return v.Value, nil
	case *String:
		n, err := strconv.ParseFloat(strings.TrimSpace(v.Value), 64)
		if err != nil {
			return 0, fmt.Errorf("范围函数无法将 %q 解析为数字：%w", v.Value, err)
		}
		return n, nil
	default:
		return 0, fmt.Errorf("范围函数需要数字或可解析为数字的字符串参数")
	}
}
