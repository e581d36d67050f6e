package expression

import "github.com/samber/lo"

type tokenKind int

const (
	plusToken tokenKind = iota
	minusToken
	starToken
	slashToken
	lParenToken
	rParenToken
	numberToken
	dotToken
)

var symbolTokenKindMap = map[byte]tokenKind{
	'+': plusToken,
	'-': minusToken,
	'*': starToken,
	'/': slashToken,
	'(': lParenToken,
	')': rParenToken,
	'.': dotToken,
}

var tokenKindSymbolMap = lo.Invert(symbolTokenKindMap)

// token is a half-open range [beginsPos, endsPos) into the source text.
// The literal text of a number token is re-sliced from the source.
type token struct {
	kind               tokenKind
	beginsPos, endsPos int
}

func (t token) length() int {
	return t.endsPos - t.beginsPos
}
