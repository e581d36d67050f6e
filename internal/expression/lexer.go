package expression

import (
	"github.com/exprcalc/exprcalc/internal/types"
)

type lexer struct {
	source string
	index  int
}

func newLexer(source string) *lexer {
	return &lexer{source: source, index: 0}
}

func (l *lexer) scan() ([]token, error) {
	var tokens []token
	for l.index != len(l.source) {
		switch c := l.source[l.index]; c {
		case ' ':
			l.index++ // just skip white spaces
		case '+', '-', '*', '/', '(', ')', '.':
			tokens = append(tokens, token{kind: symbolTokenKindMap[c], beginsPos: l.index, endsPos: l.index + 1})
			l.index++
		case '0', '1', '2', '3', '4', '5', '6', '7', '8', '9':
			tok, err := l.scanNumber()
			if err != nil {
				return nil, err
			}
			tokens = append(tokens, tok)
		default:
			return nil, types.NewLexError("invalid character at %d: %c", l.index, c)
		}
	}
	return tokens, nil
}

// scanNumber consumes digits, then at most one decimal point followed by
// digits. The current byte is a digit when it is called.
func (l *lexer) scanNumber() (token, error) {
	beginsPos := l.index
	l.index++
	for l.index != len(l.source) && isDigit(l.source[l.index]) {
		l.index++
	}

	if l.index != len(l.source) && l.source[l.index] == '.' {
		l.index++
		for l.index != len(l.source) {
			if c := l.source[l.index]; isDigit(c) {
				l.index++
			} else if c == '.' {
				return token{}, types.NewLexError("number has multiple decimal points at %d", l.index)
			} else {
				break
			}
		}
	}

	return token{kind: numberToken, beginsPos: beginsPos, endsPos: l.index}, nil
}

func isDigit(c byte) bool {
	return '0' <= c && c <= '9'
}
