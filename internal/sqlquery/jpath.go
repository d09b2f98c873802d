package sqlquery

import (
	"fmt"
	"strings"

	"github.com/ohler55/ojg/jp"
	"github.com/ohler55/ojg/oj"

	"sqlterm/internal/datatable"
)

// ParseColumnJPath splits an identifier of the form `column{$.path.to.field}`
// into its base column name and JPath expression, mirroring the teacher's
// `query/stages.go` parseColumnJPath so a method-call chain or comparison
// can reach into a JSON-valued Text/Mixed cell (spec.md §4.2 generalizes the
// identifier primary to "a method call chain"; this is sqlterm's extension
// for structured JSON columns, not named explicitly in spec.md but a direct
// carry-over of the teacher's JPath column-access feature).
func ParseColumnJPath(name string) (column, jpathExpr string, ok bool) {
	open := strings.Index(name, "{")
	if open == -1 {
		return name, "", false
	}
	close := strings.LastIndex(name, "}")
	if close == -1 || close <= open {
		return name, "", false
	}
	column = strings.TrimSpace(name[:open])
	jpathExpr = strings.TrimSpace(name[open+1 : close])
	if column == "" || jpathExpr == "" {
		return name, "", false
	}
	return column, jpathExpr, true
}

// EvaluateColumnJPath applies jpathExpr to jsonText, returning a
// datatable.Value of the closest matching type, or ok=false if the text
// does not parse as JSON, the path does not compile, or nothing matches.
func EvaluateColumnJPath(jsonText, jpathExpr string) (datatable.Value, bool) {
	if jsonText == "" || jpathExpr == "" {
		return datatable.Value{}, false
	}
	data, err := oj.ParseString(jsonText)
	if err != nil {
		return datatable.Value{}, false
	}
	path, err := jp.ParseString(jpathExpr)
	if err != nil {
		return datatable.Value{}, false
	}
	results := path.Get(data)
	if len(results) == 0 {
		return datatable.Value{}, false
	}
	return jsonValueToValue(results[0]), true
}

func jsonValueToValue(v any) datatable.Value {
	switch val := v.(type) {
	case nil:
		return datatable.NullValue()
	case string:
		return datatable.TextValue(val)
	case bool:
		return datatable.BoolValue(val)
	case int64:
		return datatable.IntValue(val)
	case int:
		return datatable.IntValue(int64(val))
	case float64:
		if val == float64(int64(val)) {
			return datatable.IntValue(int64(val))
		}
		return datatable.FloatValue(val)
	case map[string]any, []any:
		b, err := oj.Marshal(val)
		if err != nil {
			return datatable.TextValue(fmt.Sprintf("%v", val))
		}
		return datatable.TextValue(string(b))
	default:
		return datatable.TextValue(fmt.Sprintf("%v", val))
	}
}
