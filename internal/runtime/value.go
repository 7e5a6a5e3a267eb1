package runtime

import (
	"math"
	"strconv"
	"strings"

	"scriptlang/internal/ast"
)

// Value is a tagged runtime value: exactly one of NumberVal, StringVal,
// *ListVal, *FuncVal, or NilVal.
type Value interface {
	TypeName() string
}

// NumberVal is a 64-bit IEEE-754 double.
type NumberVal float64

func (NumberVal) TypeName() string { return "number" }

// StringVal is a UTF-8 byte sequence, indexed as bytes.
type StringVal string

func (StringVal) TypeName() string { return "string" }

// ListVal is a shared, mutably-aliased ordered sequence of values. Two
// bindings holding the same *ListVal observe each other's mutations.
type ListVal struct {
	Elements []Value
}

func (*ListVal) TypeName() string { return "list" }

// FuncVal is a shared reference to a function's parameter names and body.
// Functions do not capture an environment: there are no closures.
type FuncVal struct {
	Params []string
	Body   *ast.Block
}

func (*FuncVal) TypeName() string { return "function" }

// NilVal is the language's single nil value.
type NilVal struct{}

func (NilVal) TypeName() string { return "nil" }

// Nil is the canonical nil value.
var Nil Value = NilVal{}

// IsTruthy implements the language's asBool predicate: 0, empty string,
// empty list and nil are false; everything else (including any function)
// is true.
func IsTruthy(v Value) bool {
	switch t := v.(type) {
	case NumberVal:
		return t != 0
	case StringVal:
		return len(t) != 0
	case *ListVal:
		return len(t.Elements) != 0
	case *FuncVal:
		return true
	case NilVal:
		return false
	}
	return false
}

func boolToNumber(b bool) NumberVal {
	if b {
		return 1
	}
	return 0
}

// isIntegral reports whether a number has no fractional part.
func isIntegral(n float64) bool {
	return n == math.Trunc(n)
}

// FormatNumber renders a number in the canonical form: integer notation
// when the value equals its truncation to a 64-bit integer, else decimal
// notation at 15 significant digits.
const (
	minInt64AsFloat = -9223372036854775808.0
	maxInt64AsFloat = 9223372036854775808.0 // one past math.MaxInt64, exclusive bound
)

func FormatNumber(n float64) string {
	if n >= minInt64AsFloat && n < maxInt64AsFloat && float64(int64(n)) == n {
		return strconv.FormatInt(int64(n), 10)
	}
	return strconv.FormatFloat(n, 'g', 15, 64)
}

// quoteString renders s as it appears inside a container: wrapped in
// double quotes with \\, \", \n, \r, \t escaped; other bytes pass through.
func quoteString(s string) string {
	var b strings.Builder
	b.WriteByte('"')
	for i := 0; i < len(s); i++ {
		switch c := s[i]; c {
		case '\\':
			b.WriteString(`\\`)
		case '"':
			b.WriteString(`\"`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		default:
			b.WriteByte(c)
		}
	}
	b.WriteByte('"')
	return b.String()
}

// CanonicalString renders v the way it appears nested inside a list or
// function's printed representation: strings are quoted and escaped.
func CanonicalString(v Value) string {
	switch t := v.(type) {
	case NumberVal:
		return FormatNumber(float64(t))
	case StringVal:
		return quoteString(string(t))
	case NilVal:
		return "nil"
	case *FuncVal:
		return "[function]"
	case *ListVal:
		parts := make([]string, len(t.Elements))
		for i, e := range t.Elements {
			parts[i] = CanonicalString(e)
		}
		return "[" + strings.Join(parts, ", ") + "]"
	}
	return ""
}

// DisplayString renders v the way print/println/to_string render it at
// top level: strings are raw and unquoted; composite values still use
// their canonical (quoted-string) representation internally.
func DisplayString(v Value) string {
	switch t := v.(type) {
	case StringVal:
		return string(t)
	case NumberVal:
		return FormatNumber(float64(t))
	case NilVal:
		return "nil"
	default:
		return CanonicalString(v)
	}
}
