package runtime

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"scriptlang/internal/ast"
	"scriptlang/internal/span"
)

// builtinNames is the closed set of reserved built-in function names.
// They are not first-class: a bare reference to one of these names as an
// expression is a runtime error (see evalIdentifier), and they are
// recognised only when they appear as the callee of a CallExpr.
var builtinNames = map[string]bool{
	"print": true, "println": true, "len": true,
	"push": true, "pop": true, "insert": true, "remove": true, "sort": true,
	"range": true, "abs": true, "ceil": true, "floor": true, "round": true, "sqrt": true,
	"rnd": true, "parse_num": true, "to_string": true, "lower": true, "upper": true,
	"split": true, "join": true, "replace": true, "read": true, "stacktrace": true,
}

func isBuiltinName(name string) bool {
	return builtinNames[name]
}

func (it *Interpreter) callBuiltin(name string, argExprs []ast.Expr, sp span.Span) Value {
	switch name {
	case "print":
		return it.builtinPrint(argExprs, false)
	case "println":
		return it.builtinPrint(argExprs, true)
	case "len":
		return it.builtinLen(argExprs, sp)
	case "push":
		return it.builtinPush(argExprs, sp)
	case "pop":
		return it.builtinPop(argExprs, sp)
	case "insert":
		return it.builtinInsert(argExprs, sp)
	case "remove":
		return it.builtinRemove(argExprs, sp)
	case "sort":
		return it.builtinSort(argExprs, sp)
	case "range":
		return it.builtinRange(argExprs, sp)
	case "abs":
		return it.builtinMath1(argExprs, sp, "abs", math.Abs)
	case "ceil":
		return it.builtinMath1(argExprs, sp, "ceil", math.Ceil)
	case "floor":
		return it.builtinMath1(argExprs, sp, "floor", math.Floor)
	case "round":
		return it.builtinMath1(argExprs, sp, "round", math.Round)
	case "sqrt":
		return it.builtinSqrt(argExprs, sp)
	case "rnd":
		it.expectArity(name, argExprs, sp, 0, 0)
		return NumberVal(it.rng.Float64())
	case "parse_num":
		return it.builtinParseNum(argExprs, sp)
	case "to_string":
		it.expectArity(name, argExprs, sp, 1, 1)
		return StringVal(DisplayString(it.eval(argExprs[0])))
	case "lower":
		return it.builtinCase(argExprs, sp, toASCIILower)
	case "upper":
		return it.builtinCase(argExprs, sp, toASCIIUpper)
	case "split":
		return it.builtinSplit(argExprs, sp)
	case "join":
		return it.builtinJoin(argExprs, sp)
	case "replace":
		return it.builtinReplace(argExprs, sp)
	case "read":
		it.expectArity(name, argExprs, sp, 0, 0)
		return StringVal("")
	case "stacktrace":
		it.expectArity(name, argExprs, sp, 0, 0)
		return &ListVal{}
	default:
		panic(newRuntimeError(sp, "unknown built-in '%s'", name))
	}
}

func (it *Interpreter) expectArity(name string, args []ast.Expr, sp span.Span, min, max int) {
	n := len(args)
	if n < min || (max >= 0 && n > max) {
		if min == max {
			panic(newRuntimeError(sp, "'%s' expects %d argument(s), got %d", name, min, n))
		}
		panic(newRuntimeError(sp, "'%s' expects between %d and %d argument(s), got %d", name, min, max, n))
	}
}

// listIdentTarget evaluates argExprs[idx] as the lvalue identifier required
// by the mutating list built-ins, returning the bound list and its name.
func (it *Interpreter) listIdentTarget(name string, argExprs []ast.Expr, idx int, sp span.Span) (*ListVal, string) {
	ident, ok := argExprs[idx].(*ast.Identifier)
	if !ok {
		panic(newRuntimeError(sp, "'%s' requires its first argument to be an identifier bound to a list", name))
	}
	v, ok := it.env.Get(ident.Name)
	if !ok {
		panic(newRuntimeError(sp, "undefined variable '%s'", ident.Name))
	}
	list, ok := v.(*ListVal)
	if !ok {
		panic(newRuntimeError(sp, "'%s' requires '%s' to be bound to a list, got %s", name, ident.Name, v.TypeName()))
	}
	return list, ident.Name
}

func (it *Interpreter) builtinPrint(argExprs []ast.Expr, newline bool) Value {
	var b strings.Builder
	for _, a := range argExprs {
		b.WriteString(DisplayString(it.eval(a)))
	}
	if newline {
		b.WriteByte('\n')
	}
	fmt.Fprint(it.out, b.String())
	return Nil
}

func (it *Interpreter) builtinLen(argExprs []ast.Expr, sp span.Span) Value {
	it.expectArity("len", argExprs, sp, 1, 1)
	v := it.eval(argExprs[0])
	switch t := v.(type) {
	case StringVal:
		return NumberVal(len(string(t)))
	case *ListVal:
		return NumberVal(len(t.Elements))
	default:
		panic(newRuntimeError(sp, "'len' requires a string or list, got %s", v.TypeName()))
	}
}

func (it *Interpreter) builtinPush(argExprs []ast.Expr, sp span.Span) Value {
	it.expectArity("push", argExprs, sp, 2, 2)
	list, _ := it.listIdentTarget("push", argExprs, 0, sp)
	val := it.eval(argExprs[1])
	list.Elements = append(list.Elements, val)
	return Nil
}

func (it *Interpreter) builtinPop(argExprs []ast.Expr, sp span.Span) Value {
	it.expectArity("pop", argExprs, sp, 1, 1)
	list, name := it.listIdentTarget("pop", argExprs, 0, sp)
	if len(list.Elements) == 0 {
		panic(newRuntimeError(sp, "'pop' on empty list '%s'", name))
	}
	last := list.Elements[len(list.Elements)-1]
	list.Elements = list.Elements[:len(list.Elements)-1]
	return last
}

func (it *Interpreter) builtinInsert(argExprs []ast.Expr, sp span.Span) Value {
	it.expectArity("insert", argExprs, sp, 3, 3)
	list, name := it.listIdentTarget("insert", argExprs, 0, sp)
	idx := it.evalIntArg(argExprs[1], "insert index")
	val := it.eval(argExprs[2])
	if idx < 0 || idx > len(list.Elements) {
		panic(newRuntimeError(sp, "'insert' index %d out of range for '%s' (size %d)", idx, name, len(list.Elements)))
	}
	list.Elements = append(list.Elements, nil)
	copy(list.Elements[idx+1:], list.Elements[idx:])
	list.Elements[idx] = val
	return Nil
}

func (it *Interpreter) builtinRemove(argExprs []ast.Expr, sp span.Span) Value {
	it.expectArity("remove", argExprs, sp, 2, 2)
	list, name := it.listIdentTarget("remove", argExprs, 0, sp)
	idx := it.evalIntArg(argExprs[1], "remove index")
	if idx < 0 || idx >= len(list.Elements) {
		panic(newRuntimeError(sp, "'remove' index %d out of range for '%s' (size %d)", idx, name, len(list.Elements)))
	}
	val := list.Elements[idx]
	list.Elements = append(list.Elements[:idx], list.Elements[idx+1:]...)
	return val
}

func (it *Interpreter) builtinSort(argExprs []ast.Expr, sp span.Span) Value {
	it.expectArity("sort", argExprs, sp, 1, 1)
	list, name := it.listIdentTarget("sort", argExprs, 0, sp)
	if len(list.Elements) == 0 {
		return Nil
	}
	switch list.Elements[0].(type) {
	case NumberVal:
		for _, e := range list.Elements {
			if _, ok := e.(NumberVal); !ok {
				panic(newRuntimeError(sp, "'sort' requires '%s' to hold elements of a single type", name))
			}
		}
		sort.Slice(list.Elements, func(i, j int) bool {
			return list.Elements[i].(NumberVal) < list.Elements[j].(NumberVal)
		})
	case StringVal:
		for _, e := range list.Elements {
			if _, ok := e.(StringVal); !ok {
				panic(newRuntimeError(sp, "'sort' requires '%s' to hold elements of a single type", name))
			}
		}
		sort.Slice(list.Elements, func(i, j int) bool {
			return list.Elements[i].(StringVal) < list.Elements[j].(StringVal)
		})
	default:
		panic(newRuntimeError(sp, "'sort' requires a list of numbers or strings"))
	}
	return Nil
}

func (it *Interpreter) builtinRange(argExprs []ast.Expr, sp span.Span) Value {
	it.expectArity("range", argExprs, sp, 1, 3)
	var start, stop, step int
	step = 1
	switch len(argExprs) {
	case 1:
		stop = it.evalIntArg(argExprs[0], "range stop")
	case 2:
		start = it.evalIntArg(argExprs[0], "range start")
		stop = it.evalIntArg(argExprs[1], "range stop")
	case 3:
		start = it.evalIntArg(argExprs[0], "range start")
		stop = it.evalIntArg(argExprs[1], "range stop")
		step = it.evalIntArg(argExprs[2], "range step")
	}
	if step == 0 {
		panic(newRuntimeError(sp, "'range' step cannot be zero"))
	}
	var out []Value
	if step > 0 {
		for i := start; i < stop; i += step {
			out = append(out, NumberVal(i))
		}
	} else {
		for i := start; i > stop; i += step {
			out = append(out, NumberVal(i))
		}
	}
	return &ListVal{Elements: out}
}

func (it *Interpreter) builtinMath1(argExprs []ast.Expr, sp span.Span, name string, fn func(float64) float64) Value {
	it.expectArity(name, argExprs, sp, 1, 1)
	v := it.eval(argExprs[0])
	n, ok := v.(NumberVal)
	if !ok {
		panic(newRuntimeError(sp, "'%s' requires a number, got %s", name, v.TypeName()))
	}
	return NumberVal(fn(float64(n)))
}

func (it *Interpreter) builtinSqrt(argExprs []ast.Expr, sp span.Span) Value {
	it.expectArity("sqrt", argExprs, sp, 1, 1)
	v := it.eval(argExprs[0])
	n, ok := v.(NumberVal)
	if !ok {
		panic(newRuntimeError(sp, "'sqrt' requires a number, got %s", v.TypeName()))
	}
	if n < 0 {
		panic(newRuntimeError(sp, "'sqrt' of a negative number"))
	}
	return NumberVal(math.Sqrt(float64(n)))
}

func (it *Interpreter) builtinParseNum(argExprs []ast.Expr, sp span.Span) Value {
	it.expectArity("parse_num", argExprs, sp, 1, 1)
	v := it.eval(argExprs[0])
	s, ok := v.(StringVal)
	if !ok {
		panic(newRuntimeError(sp, "'parse_num' requires a string, got %s", v.TypeName()))
	}
	n, err := strconv.ParseFloat(string(s), 64)
	if err != nil {
		return Nil
	}
	return NumberVal(n)
}

func (it *Interpreter) builtinCase(argExprs []ast.Expr, sp span.Span, fn func(byte) byte) Value {
	it.expectArity("lower/upper", argExprs, sp, 1, 1)
	v := it.eval(argExprs[0])
	s, ok := v.(StringVal)
	if !ok {
		panic(newRuntimeError(sp, "expected a string, got %s", v.TypeName()))
	}
	bs := []byte(string(s))
	out := make([]byte, len(bs))
	for i, c := range bs {
		out[i] = fn(c)
	}
	return StringVal(string(out))
}

func toASCIILower(c byte) byte {
	if c >= 'A' && c <= 'Z' {
		return c + ('a' - 'A')
	}
	return c
}

func toASCIIUpper(c byte) byte {
	if c >= 'a' && c <= 'z' {
		return c - ('a' - 'A')
	}
	return c
}

func (it *Interpreter) builtinSplit(argExprs []ast.Expr, sp span.Span) Value {
	it.expectArity("split", argExprs, sp, 2, 2)
	sv, ok := it.eval(argExprs[0]).(StringVal)
	if !ok {
		panic(newRuntimeError(sp, "'split' requires a string as its first argument"))
	}
	dv, ok := it.eval(argExprs[1]).(StringVal)
	if !ok {
		panic(newRuntimeError(sp, "'split' requires a string delimiter"))
	}
	s, delim := string(sv), string(dv)

	var parts []string
	if delim == "" {
		bs := []byte(s)
		parts = make([]string, len(bs))
		for i, b := range bs {
			parts[i] = string([]byte{b})
		}
	} else {
		parts = strings.Split(s, delim)
	}

	out := make([]Value, len(parts))
	for i, p := range parts {
		out[i] = StringVal(p)
	}
	return &ListVal{Elements: out}
}

func (it *Interpreter) builtinJoin(argExprs []ast.Expr, sp span.Span) Value {
	it.expectArity("join", argExprs, sp, 2, 2)
	lv, ok := it.eval(argExprs[0]).(*ListVal)
	if !ok {
		panic(newRuntimeError(sp, "'join' requires a list as its first argument"))
	}
	sep, ok := it.eval(argExprs[1]).(StringVal)
	if !ok {
		panic(newRuntimeError(sp, "'join' requires a string separator"))
	}
	parts := make([]string, len(lv.Elements))
	for i, e := range lv.Elements {
		s, ok := e.(StringVal)
		if !ok {
			panic(newRuntimeError(sp, "'join' requires every element to be a string, got %s at index %d", e.TypeName(), i))
		}
		parts[i] = string(s)
	}
	return StringVal(strings.Join(parts, string(sep)))
}

func (it *Interpreter) builtinReplace(argExprs []ast.Expr, sp span.Span) Value {
	it.expectArity("replace", argExprs, sp, 3, 3)
	sv, ok := it.eval(argExprs[0]).(StringVal)
	if !ok {
		panic(newRuntimeError(sp, "'replace' requires a string as its first argument"))
	}
	oldv, ok := it.eval(argExprs[1]).(StringVal)
	if !ok {
		panic(newRuntimeError(sp, "'replace' requires a string as its second argument"))
	}
	newv, ok := it.eval(argExprs[2]).(StringVal)
	if !ok {
		panic(newRuntimeError(sp, "'replace' requires a string as its third argument"))
	}
	if len(oldv) == 0 {
		panic(newRuntimeError(sp, "'replace' needle cannot be empty"))
	}
	return StringVal(strings.ReplaceAll(string(sv), string(oldv), string(newv)))
}
