// Package sqlquery implements the recursive-descent SQL parser and AST
// evaluator of spec.md §4.2-§4.3, generalized from the teacher's boolean
// filter-expression parser (query/filter_expr.go's tokenizer -> parseOr ->
// parseAnd -> parseNot -> parsePrimary precedence climb) to the full
// SELECT...FROM...WHERE...ORDER BY...LIMIT/OFFSET dialect.
package sqlquery

import "fmt"

// TokenType enumerates the lexical categories of the sqlterm dialect.
type TokenType int

const (
	TokenEOF TokenType = iota
	TokenIdent
	TokenQuotedIdent // "quoted identifier" (preserves case/whitespace)
	TokenString      // 'literal' (single-quoted only) used as a value, not an identifier
	TokenNumber
	TokenStar
	TokenComma
	TokenDot
	TokenLParen
	TokenRParen

	// Keywords
	TokenSelect
	TokenFrom
	TokenWhere
	TokenOrder
	TokenBy
	TokenAsc
	TokenDesc
	TokenLimit
	TokenOffset
	TokenAnd
	TokenOr
	TokenNot
	TokenLike
	TokenIn
	TokenBetween
	TokenIs
	TokenNull
	TokenDateTime

	// Comparison operators
	TokenEq
	TokenNeq
	TokenLt
	TokenLte
	TokenGt
	TokenGte
)

var keywords = map[string]TokenType{
	"SELECT":   TokenSelect,
	"FROM":     TokenFrom,
	"WHERE":    TokenWhere,
	"ORDER":    TokenOrder,
	"BY":       TokenBy,
	"ASC":      TokenAsc,
	"DESC":     TokenDesc,
	"LIMIT":    TokenLimit,
	"OFFSET":   TokenOffset,
	"AND":      TokenAnd,
	"OR":       TokenOr,
	"NOT":      TokenNot,
	"LIKE":     TokenLike,
	"IN":       TokenIn,
	"BETWEEN":  TokenBetween,
	"IS":       TokenIs,
	"NULL":     TokenNull,
	"DATETIME": TokenDateTime,
}

// Token is one lexical unit plus its source position, used for error
// reporting (spec.md §4.2: "Errors include a position").
type Token struct {
	Type TokenType
	Text string
	Pos  int
}

func (t Token) String() string {
	if t.Text == "" {
		return fmt.Sprintf("<%d>", t.Type)
	}
	return t.Text
}
