package assertaction_test

import (
	"github.com/stretchr/testify/assert"
	"github.com/teamaker/teabot"
	"github.com/teamaker/teabot/actions"
	"github.com/teamaker/teabot/test/assertaction"
	"github.com/teamaker/teabot/test/assertanswer"
	"strings"
	"testing"
)

var brew = actions.NewCommand().
	WithMatcher(func(m *teabot.IncomingMessage) bool {
		return strings.HasPrefix(m.NormalizedText, "brew")
	}).
	WithAnswerer(func(m *teabot.IncomingMessage) *teabot.Answer {
		return &teabot.Answer{Text: "Brewing"}
	}).
	Build()

func TestMatchesAndAnswers(t *testing.T) {
	mockT := new(testing.T)

	assert.Equal(t, true, assertaction.MatchesAndAnswers(mockT, brew, &teabot.IncomingMessage{NormalizedText: "brew"}, func(t *testing.T, a *teabot.Answer) bool {
		return assertanswer.HasText(t, a, "Brewing")
	}))
}

func TestMatchesAndAnswersWithInvalidAnswer(t *testing.T) {
	mockT := new(testing.T)

	assert.Equal(t, false, assertaction.MatchesAndAnswers(mockT, brew, &teabot.IncomingMessage{NormalizedText: "brew"}, func(t *testing.T, a *teabot.Answer) bool {
		return assertanswer.HasText(t, a, "Steeping")
	}))
}

func TestMatchesAndAnswersWithoutMatch(t *testing.T) {
	mockT := new(testing.T)
	answered := false

	assert.Equal(t, false, assertaction.MatchesAndAnswers(mockT, brew, &teabot.IncomingMessage{NormalizedText: "pour"}, func(t *testing.T, a *teabot.Answer) bool {
		answered = true
		return true
	}))
	assert.False(t, answered)
}

func TestNotMatch(t *testing.T) {
	mockT := new(testing.T)

	assert.Equal(t, true, assertaction.NotMatch(mockT, brew, &teabot.IncomingMessage{NormalizedText: "pour"}))
	assert.Equal(t, false, assertaction.NotMatch(mockT, brew, &teabot.IncomingMessage{NormalizedText: "brew"}))
}

func TestMatchesAll(t *testing.T) {
	mockT := new(testing.T)

	assert.Equal(t, true, assertaction.MatchesAll(mockT, brew, "brew", "brew earl grey"))
	assert.Equal(t, false, assertaction.MatchesAll(mockT, brew, "brew", "pour", "brew chai"))
}

func TestMatchesNone(t *testing.T) {
	mockT := new(testing.T)

	assert.Equal(t, true, assertaction.MatchesNone(mockT, brew, "pour", "stir"))
	assert.Equal(t, false, assertaction.MatchesNone(mockT, brew, "pour", "brew"))
}

func TestMatchesAllDoesNotAnswer(t *testing.T) {
	poured := 0
	pour := actions.NewCommand().
		WithAnswerer(func(m *teabot.IncomingMessage) *teabot.Answer {
			poured++
			return nil
		}).
		Stateful().
		Build()

	assert.Equal(t, true, assertaction.MatchesAll(t, pour, "pour", "pour again"))
	assert.Equal(t, 0, poured)
}
