package sqlquery

import (
	"strings"
)

// lexer tokenizes a query string, grounded on filter_expr.go's
// FilterExprTokenizer but extended with quoted strings/identifiers,
// numbers, and the comparison-operator punctuation the boolean-only
// teacher tokenizer never needed.
type lexer struct {
	input string
	pos   int
}

func newLexer(input string) *lexer {
	return &lexer{input: input}
}

func (l *lexer) tokenize() ([]Token, error) {
	var tokens []Token
	for {
		tok, err := l.next()
		if err != nil {
			return nil, err
		}
		tokens = append(tokens, tok)
		if tok.Type == TokenEOF {
			return tokens, nil
		}
	}
}

func (l *lexer) next() (Token, error) {
	l.skipWhitespace()
	start := l.pos
	if l.pos >= len(l.input) {
		return Token{Type: TokenEOF, Pos: start}, nil
	}

	c := l.input[l.pos]
	switch {
	case c == '*':
		l.pos++
		return Token{Type: TokenStar, Text: "*", Pos: start}, nil
	case c == ',':
		l.pos++
		return Token{Type: TokenComma, Text: ",", Pos: start}, nil
	case c == '.':
		l.pos++
		return Token{Type: TokenDot, Text: ".", Pos: start}, nil
	case c == '(':
		l.pos++
		return Token{Type: TokenLParen, Text: "(", Pos: start}, nil
	case c == ')':
		l.pos++
		return Token{Type: TokenRParen, Text: ")", Pos: start}, nil
	case c == '=':
		l.pos++
		return Token{Type: TokenEq, Text: "=", Pos: start}, nil
	case c == '!':
		if l.peekAt(1) == '=' {
			l.pos += 2
			return Token{Type: TokenNeq, Text: "!=", Pos: start}, nil
		}
		return Token{}, &ParseError{Message: "unexpected character '!'", Position: start}
	case c == '<':
		if l.peekAt(1) == '>' {
			l.pos += 2
			return Token{Type: TokenNeq, Text: "<>", Pos: start}, nil
		}
		if l.peekAt(1) == '=' {
			l.pos += 2
			return Token{Type: TokenLte, Text: "<=", Pos: start}, nil
		}
		l.pos++
		return Token{Type: TokenLt, Text: "<", Pos: start}, nil
	case c == '>':
		if l.peekAt(1) == '=' {
			l.pos += 2
			return Token{Type: TokenGte, Text: ">=", Pos: start}, nil
		}
		l.pos++
		return Token{Type: TokenGt, Text: ">", Pos: start}, nil
	case c == '\'' || c == '"':
		return l.lexQuoted(c)
	case isDigit(c):
		return l.lexNumber()
	case isIdentStart(c):
		return l.lexIdentOrKeyword()
	default:
		return Token{}, &ParseError{Message: "unexpected character " + string(c), Position: start}
	}
}

func (l *lexer) skipWhitespace() {
	for l.pos < len(l.input) && isSpace(l.input[l.pos]) {
		l.pos++
	}
}

func (l *lexer) peekAt(offset int) byte {
	if l.pos+offset >= len(l.input) {
		return 0
	}
	return l.input[l.pos+offset]
}

// lexQuoted reads a '...'/"..." token. The quote character alone decides
// its kind: single quotes give a string literal, double quotes always give
// a quoted identifier, so a double-quoted value is never read as a string
// literal. Doubling the quote character escapes it inside the token
// (e.g. 'it''s').
func (l *lexer) lexQuoted(quote byte) (Token, error) {
	start := l.pos
	l.pos++ // consume opening quote
	var sb strings.Builder
	for {
		if l.pos >= len(l.input) {
			return Token{}, &ParseError{Message: "unterminated quoted literal", Position: start}
		}
		c := l.input[l.pos]
		if c == quote {
			if l.peekAt(1) == quote {
				sb.WriteByte(quote)
				l.pos += 2
				continue
			}
			l.pos++
			break
		}
		sb.WriteByte(c)
		l.pos++
	}
	typ := TokenString
	if quote == '"' {
		typ = TokenQuotedIdent
	}
	return Token{Type: typ, Text: sb.String(), Pos: start}, nil
}

func (l *lexer) lexNumber() (Token, error) {
	start := l.pos
	for l.pos < len(l.input) && (isDigit(l.input[l.pos]) || l.input[l.pos] == '.') {
		l.pos++
	}
	return Token{Type: TokenNumber, Text: l.input[start:l.pos], Pos: start}, nil
}

func (l *lexer) lexIdentOrKeyword() (Token, error) {
	start := l.pos
	for l.pos < len(l.input) && isIdentPart(l.input[l.pos]) {
		l.pos++
	}
	text := l.input[start:l.pos]
	if kw, ok := keywords[strings.ToUpper(text)]; ok {
		return Token{Type: kw, Text: text, Pos: start}, nil
	}
	return Token{Type: TokenIdent, Text: text, Pos: start}, nil
}

func isSpace(c byte) bool { return c == ' ' || c == '\t' || c == '\n' || c == '\r' }
func isDigit(c byte) bool { return c >= '0' && c <= '9' }
func isIdentStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}
func isIdentPart(c byte) bool { return isIdentStart(c) || isDigit(c) }
