// Package assertaction provides testing functions to validate a single plugin action
package assertaction

import (
	"github.com/stretchr/testify/assert"
	"github.com/teamaker/teabot"
	"testing"
)

// AnswerValidator is a function to do further validation of an action's answer. The return value is meant to be true if validation
// is successful and false otherwise (following the testify convention)
type AnswerValidator func(t *testing.T, a *teabot.Answer) bool

// MatchesAndAnswers asserts that action matches m and passes its answer to validateAnswer
func MatchesAndAnswers(t *testing.T, action teabot.ActionDefinition, m *teabot.IncomingMessage, validateAnswer AnswerValidator) bool {
	if !assert.Truef(t, action.Match(m), "Message [%s] expected to match but action.Match returned false", m.NormalizedText) {
		return false
	}

	return validateAnswer(t, action.Answer(m))
}

// NotMatch asserts that action doesn't match m
func NotMatch(t *testing.T, action teabot.ActionDefinition, m *teabot.IncomingMessage) bool {
	return assert.Falsef(t, action.Match(m), "Message [%s] should not be a match but action.Match returned true", m.NormalizedText)
}

// MatchesAll asserts that action matches every one of texts, taken as normalized message texts. The action
// isn't invoked so stateful actions can be checked without side effects
func MatchesAll(t *testing.T, action teabot.ActionDefinition, texts ...string) (ok bool) {
	ok = true
	for _, text := range texts {
		ok = assert.Truef(t, action.Match(&teabot.IncomingMessage{NormalizedText: text}), "[%s] expected to match", text) && ok
	}

	return ok
}

// MatchesNone asserts that action matches none of texts, taken as normalized message texts
func MatchesNone(t *testing.T, action teabot.ActionDefinition, texts ...string) (ok bool) {
	ok = true
	for _, text := range texts {
		ok = assert.Falsef(t, action.Match(&teabot.IncomingMessage{NormalizedText: text}), "[%s] should not match", text) && ok
	}

	return ok
}
