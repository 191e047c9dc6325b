package procfs

import (
	"github.com/viant/parsly"
	"github.com/viant/parsly/matcher"
)

// Token codes
const (
	whitespaceCode = iota
	wordCode
	numberCode
)

// Token definitions
var (
	whitespaceToken = parsly.NewToken(whitespaceCode, "Whitespace", matcher.NewWhiteSpace())
	wordToken       = parsly.NewToken(wordCode, "Word", newWordMatcher())
	numberToken     = parsly.NewToken(numberCode, "Number", newNumberMatcher())
)

func newWordMatcher() parsly.Matcher {
	return &wordMatcher{}
}

func newNumberMatcher() parsly.Matcher {
	return &numberMatcher{}
}

// wordMatcher matches a run of non-whitespace characters, used for the
// command verb and the process name.
type wordMatcher struct{}

func (m *wordMatcher) Match(cursor *parsly.Cursor) int {
	input := cursor.Input
	pos := cursor.Pos
	size := cursor.InputSize

	matched := 0
	for i := pos; i < size; i++ {
		if isWhitespace(input[i]) {
			break
		}
		matched++
	}
	return matched
}

// numberMatcher matches a run of decimal digits.
type numberMatcher struct{}

func (m *numberMatcher) Match(cursor *parsly.Cursor) int {
	input := cursor.Input
	pos := cursor.Pos
	size := cursor.InputSize

	matched := 0
	for i := pos; i < size; i++ {
		if input[i] < '0' || input[i] > '9' {
			break
		}
		matched++
	}
	return matched
}

func isWhitespace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}
