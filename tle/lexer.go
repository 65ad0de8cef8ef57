// Package tle tokenizes and parses the expression language embedded in
// [ ... ] template strings, just far enough to resolve the symbol under a
// cursor. Expressions are never evaluated.
package tle

import "github.com/tminor/lsparm/json"

type TokenType int

const (
	TokenLeftParen TokenType = iota
	TokenRightParen
	TokenLeftBracket
	TokenRightBracket
	TokenComma
	TokenPeriod
	TokenLiteral // single-quoted string, '' escapes a quote
	TokenNumber
	TokenIdentifier
	TokenUnrecognized
)

// Token is one lexical element of an expression. Spans are document
// offsets, not offsets into the expression string.
type Token struct {
	Type TokenType
	Span json.Span
	Text string
}

// scan tokenizes text; base is the document offset of text's first
// character, so every token span lands in document coordinates.
func scan(text string, base int) []Token {
	var tokens []Token
	i := 0
	for i < len(text) {
		ch := text[i]
		switch {
		case ch == ' ' || ch == '\t' || ch == '\r' || ch == '\n':
			i++
		case ch == '(':
			tokens = append(tokens, punct(TokenLeftParen, text, base, i))
			i++
		case ch == ')':
			tokens = append(tokens, punct(TokenRightParen, text, base, i))
			i++
		case ch == '[':
			tokens = append(tokens, punct(TokenLeftBracket, text, base, i))
			i++
		case ch == ']':
			tokens = append(tokens, punct(TokenRightBracket, text, base, i))
			i++
		case ch == ',':
			tokens = append(tokens, punct(TokenComma, text, base, i))
			i++
		case ch == '.':
			tokens = append(tokens, punct(TokenPeriod, text, base, i))
			i++
		case ch == '\'':
			end := scanLiteral(text, i)
			tokens = append(tokens, Token{
				Type: TokenLiteral,
				Span: json.Span{Start: base + i, End: base + end},
				Text: text[i:end],
			})
			i = end
		case isDigit(ch) || (ch == '-' && i+1 < len(text) && isDigit(text[i+1])):
			end := i + 1
			for end < len(text) && (isDigit(text[end]) || text[end] == '.') {
				end++
			}
			tokens = append(tokens, Token{
				Type: TokenNumber,
				Span: json.Span{Start: base + i, End: base + end},
				Text: text[i:end],
			})
			i = end
		case isIdentifierStart(ch):
			end := i + 1
			for end < len(text) && isIdentifierPart(text[end]) {
				end++
			}
			tokens = append(tokens, Token{
				Type: TokenIdentifier,
				Span: json.Span{Start: base + i, End: base + end},
				Text: text[i:end],
			})
			i = end
		default:
			tokens = append(tokens, punct(TokenUnrecognized, text, base, i))
			i++
		}
	}
	return tokens
}

// scanLiteral returns the offset one past the closing quote of the
// single-quoted literal starting at open. A doubled quote stays inside
// the literal.
func scanLiteral(text string, open int) int {
	i := open + 1
	for i < len(text) {
		if text[i] == '\'' {
			if i+1 < len(text) && text[i+1] == '\'' {
				i += 2
				continue
			}
			return i + 1
		}
		i++
	}
	return len(text)
}

func punct(tokenType TokenType, text string, base, i int) Token {
	return Token{
		Type: tokenType,
		Span: json.Span{Start: base + i, End: base + i + 1},
		Text: text[i : i+1],
	}
}

func isDigit(ch byte) bool { return ch >= '0' && ch <= '9' }

func isIdentifierStart(ch byte) bool {
	return ch == '_' || ch == '$' ||
		(ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z')
}

func isIdentifierPart(ch byte) bool {
	return isIdentifierStart(ch) || isDigit(ch)
}
