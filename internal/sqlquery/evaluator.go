package sqlquery

import (
	"regexp"
	"strings"
	"time"

	"sqlterm/internal/datatable"
)

// evaluator walks the WHERE AST against one row at a time. Identifier
// resolution happens once up front via validate, so eval never returns an
// UnknownColumnError mid-scan (spec.md §4.3: "validates column references"
// before "evaluates the WHERE predicate row-by-row").
type evaluator struct {
	table           *datatable.Table
	caseInsensitive bool
}

// validate walks expr once, resolving every ColumnRef so a typo surfaces
// before any row is scanned.
func (e *evaluator) validate(expr Expr) error {
	switch n := expr.(type) {
	case *BinaryExpr:
		if err := e.validate(n.Left); err != nil {
			return err
		}
		return e.validate(n.Right)
	case *NotExpr:
		return e.validate(n.Child)
	case *ComparisonExpr:
		if err := e.validate(n.Left); err != nil {
			return err
		}
		if n.Right != nil {
			if err := e.validate(n.Right); err != nil {
				return err
			}
		}
		if n.High != nil {
			if err := e.validate(n.High); err != nil {
				return err
			}
		}
		for _, v := range n.List {
			if err := e.validate(v); err != nil {
				return err
			}
		}
		return nil
	case *ColumnRef:
		if n.Quoted {
			_, _, err := resolveColumn(e.table, n.Name, false)
			return err
		}
		_, _, err := resolveColumn(e.table, n.Name, e.caseInsensitive)
		return err
	case *Literal:
		return nil
	}
	return nil
}

// eval evaluates expr as a boolean predicate against source row idx.
func (e *evaluator) eval(expr Expr, row int) (bool, error) {
	switch n := expr.(type) {
	case *BinaryExpr:
		left, err := e.eval(n.Left, row)
		if err != nil {
			return false, err
		}
		if n.Op == TokenAnd && !left {
			return false, nil
		}
		if n.Op == TokenOr && left {
			return true, nil
		}
		return e.eval(n.Right, row)

	case *NotExpr:
		v, err := e.eval(n.Child, row)
		if err != nil {
			return false, err
		}
		return !v, nil

	case *ComparisonExpr:
		return e.evalComparison(n, row)

	case *ColumnRef:
		// A bare column (or method chain) used directly as a boolean,
		// e.g. `WHERE active` or `WHERE name.Contains('x')`.
		v, err := e.evalValue(n, row)
		if err != nil {
			return false, err
		}
		return v.Bool() && v.Type == datatable.Boolean, nil

	default:
		return false, &TypeError{Message: "expression cannot be evaluated as a boolean predicate"}
	}
}

func (e *evaluator) evalComparison(n *ComparisonExpr, row int) (bool, error) {
	switch n.Op {
	case TokenIs:
		v, err := e.evalValue(n.Left, row)
		if err != nil {
			return false, err
		}
		isNull := v.IsNull()
		if n.IsNot {
			return !isNull, nil
		}
		return isNull, nil

	case TokenIn:
		left, err := e.evalValue(n.Left, row)
		if err != nil {
			return false, err
		}
		for _, candExpr := range n.List {
			cand, err := e.evalValue(candExpr, row)
			if err != nil {
				return false, err
			}
			if e.valuesEqual(left, cand) {
				return true, nil
			}
		}
		return false, nil

	case TokenBetween:
		left, err := e.evalValue(n.Left, row)
		if err != nil {
			return false, err
		}
		low, err := e.evalValue(n.Right, row)
		if err != nil {
			return false, err
		}
		high, err := e.evalValue(n.High, row)
		if err != nil {
			return false, err
		}
		return e.compareTyped(left, low) >= 0 && e.compareTyped(left, high) <= 0, nil

	case TokenLike:
		left, err := e.evalValue(n.Left, row)
		if err != nil {
			return false, err
		}
		right, err := e.evalValue(n.Right, row)
		if err != nil {
			return false, err
		}
		return e.likeMatch(left.String(), right.String()), nil

	default: // =, !=, <>, <, <=, >, >=
		left, err := e.evalValue(n.Left, row)
		if err != nil {
			return false, err
		}
		right, err := e.evalValue(n.Right, row)
		if err != nil {
			return false, err
		}
		cmp := e.compareTyped(left, right)
		switch n.Op {
		case TokenEq:
			return cmp == 0, nil
		case TokenNeq:
			return cmp != 0, nil
		case TokenLt:
			return cmp < 0, nil
		case TokenLte:
			return cmp <= 0, nil
		case TokenGt:
			return cmp > 0, nil
		case TokenGte:
			return cmp >= 0, nil
		}
		return false, &TypeError{Message: "unsupported comparison operator"}
	}
}

// evalValue evaluates any primary expression (column reference with its
// method chain, or a literal) to a concrete datatable.Value.
func (e *evaluator) evalValue(expr Expr, row int) (datatable.Value, error) {
	switch n := expr.(type) {
	case *Literal:
		switch n.Kind {
		case LiteralString:
			return datatable.TextValue(n.Str), nil
		case LiteralNumber:
			return datatable.FloatValue(n.Num), nil
		case LiteralDateTime:
			t := time.Date(n.Y, time.Month(n.M), n.D, n.H, n.Mi, n.S, 0, time.UTC)
			return datatable.DateTimeValue(t), nil
		}
		return datatable.NullValue(), nil

	case *ColumnRef:
		caseInsensitive := e.caseInsensitive && !n.Quoted
		colName, jpathExpr, hasJPath := ParseColumnJPath(n.Name)
		idx, _, err := resolveColumn(e.table, colName, caseInsensitive)
		if err != nil {
			return datatable.Value{}, err
		}
		v := e.table.Cell(row, idx)
		if hasJPath {
			if extracted, ok := EvaluateColumnJPath(v.String(), jpathExpr); ok {
				v = extracted
			} else {
				v = datatable.NullValue()
			}
		}
		for _, call := range n.MethodChain {
			v, err = e.applyMethod(v, call, row)
			if err != nil {
				return datatable.Value{}, err
			}
		}
		return v, nil

	default:
		return datatable.Value{}, &TypeError{Message: "expected a value expression"}
	}
}

// applyMethod implements the method-call chain primitives of spec.md §4.2.
// IgnoreCase folds the receiver and string arguments before comparing.
func (e *evaluator) applyMethod(v datatable.Value, call MethodCall, row int) (datatable.Value, error) {
	s := v.String()
	fold := func(x string) string {
		if call.IgnoreCase {
			return strings.ToLower(x)
		}
		return x
	}
	argStr := func(i int) (string, error) {
		if i >= len(call.Args) {
			return "", &TypeError{Message: call.Name + " requires an argument"}
		}
		av, err := e.evalValue(call.Args[i], row)
		if err != nil {
			return "", err
		}
		return av.String(), nil
	}

	switch call.Name {
	case "Contains":
		arg, err := argStr(0)
		if err != nil {
			return datatable.Value{}, err
		}
		return boolVal(strings.Contains(fold(s), fold(arg))), nil
	case "StartsWith":
		arg, err := argStr(0)
		if err != nil {
			return datatable.Value{}, err
		}
		return boolVal(strings.HasPrefix(fold(s), fold(arg))), nil
	case "EndsWith":
		arg, err := argStr(0)
		if err != nil {
			return datatable.Value{}, err
		}
		return boolVal(strings.HasSuffix(fold(s), fold(arg))), nil
	case "IndexOf":
		arg, err := argStr(0)
		if err != nil {
			return datatable.Value{}, err
		}
		return datatable.IntValue(int64(strings.Index(fold(s), fold(arg)))), nil
	case "Length":
		return datatable.IntValue(int64(len([]rune(s)))), nil
	case "ToLower":
		return datatable.TextValue(strings.ToLower(s)), nil
	case "ToUpper":
		return datatable.TextValue(strings.ToUpper(s)), nil
	case "Trim":
		return datatable.TextValue(strings.TrimSpace(s)), nil
	default:
		return datatable.Value{}, &TypeError{Message: "unknown method " + call.Name}
	}
}

func boolVal(b bool) datatable.Value { return datatable.BoolValue(b) }

// compareTyped compares two values, coercing numeric strings when one
// side is numeric and the other is text/mixed, per spec.md §4.3:
// "integer-string comparisons coerce numeric strings if possible else
// fall back to lexical". Case-insensitive mode folds plain text/mixed
// comparisons.
func (e *evaluator) compareTyped(a, b datatable.Value) int {
	if isNumericType(a.Type) && !isNumericType(b.Type) {
		if f, ok := b.CoerceNumeric(); ok {
			return compareFloat(numericOf(a), f)
		}
	}
	if isNumericType(b.Type) && !isNumericType(a.Type) {
		if f, ok := a.CoerceNumeric(); ok {
			return compareFloat(f, numericOf(b))
		}
	}
	if a.Type == datatable.DateTime || b.Type == datatable.DateTime {
		at, aok := a.ParseTime()
		bt, bok := b.ParseTime()
		if aok && bok {
			switch {
			case at.Before(bt):
				return -1
			case at.After(bt):
				return 1
			default:
				return 0
			}
		}
	}
	if e.caseInsensitive && isTextual(a.Type) && isTextual(b.Type) {
		return strings.Compare(strings.ToLower(a.String()), strings.ToLower(b.String()))
	}
	return datatable.Compare(a, b)
}

func (e *evaluator) valuesEqual(a, b datatable.Value) bool {
	return e.compareTyped(a, b) == 0
}

func isNumericType(t datatable.ColumnType) bool {
	return t == datatable.Integer || t == datatable.Float
}

func isTextual(t datatable.ColumnType) bool {
	return t == datatable.Text || t == datatable.Mixed
}

func numericOf(v datatable.Value) float64 {
	if v.Type == datatable.Integer {
		return float64(v.Int())
	}
	return v.Float64()
}

func compareFloat(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// likeMatch implements SQL LIKE: '%' matches zero or more characters, '_'
// matches exactly one, anchored at both ends (spec.md §4.3).
func (e *evaluator) likeMatch(s, pattern string) bool {
	if e.caseInsensitive {
		s = strings.ToLower(s)
		pattern = strings.ToLower(pattern)
	}
	re := likeToRegexp(pattern)
	return re.MatchString(s)
}

func likeToRegexp(pattern string) *regexp.Regexp {
	var sb strings.Builder
	sb.WriteByte('^')
	for _, r := range pattern {
		switch r {
		case '%':
			sb.WriteString(".*")
		case '_':
			sb.WriteString(".")
		default:
			sb.WriteString(regexp.QuoteMeta(string(r)))
		}
	}
	sb.WriteByte('$')
	re, err := regexp.Compile(sb.String())
	if err != nil {
		// A pattern that somehow fails to compile matches nothing rather
		// than panicking mid-scan.
		return regexp.MustCompile(`$.^`)
	}
	return re
}
