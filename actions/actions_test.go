package actions_test

import (
	"github.com/stretchr/testify/assert"
	"github.com/teamaker/teabot"
	"github.com/teamaker/teabot/actions"
	"github.com/teamaker/teabot/schedule"
	"testing"
)

func TestNewCommandWithDefaults(t *testing.T) {
	action := actions.NewCommand().Build()
	assert.False(t, action.Hidden)
	assert.False(t, action.Stateful)
	assert.True(t, action.Match(&teabot.IncomingMessage{}))
	assert.Nil(t, action.Answer(&teabot.IncomingMessage{}))
}

func TestNewHearActionWithDefaults(t *testing.T) {
	action := actions.NewHearAction().Build()
	assert.False(t, action.Hidden)
	assert.True(t, action.Match(&teabot.IncomingMessage{}))
	assert.Nil(t, action.Answer(&teabot.IncomingMessage{}))
}

func TestNewActionWithMatcher(t *testing.T) {
	action := actions.NewHearAction().
		WithMatcher(func(m *teabot.IncomingMessage) bool {
			return m.NormalizedText == "kettle"
		}).
		Build()

	assert.False(t, action.Match(&teabot.IncomingMessage{NormalizedText: "coffee"}))
	assert.True(t, action.Match(&teabot.IncomingMessage{NormalizedText: "kettle"}))
}

func TestNewActionWithAnswerer(t *testing.T) {
	action := actions.NewCommand().
		WithAnswerer(func(m *teabot.IncomingMessage) *teabot.Answer {
			return &teabot.Answer{Text: "Milk, no sugar"}
		}).
		Build()

	assert.Equal(t, &teabot.Answer{Text: "Milk, no sugar"}, action.Answer(&teabot.IncomingMessage{}))
}

func TestNewActionWithUsageAndDescription(t *testing.T) {
	action := actions.NewCommand().
		WithUsage("brew").
		WithDescription("Brew a pot").
		Build()

	assert.Equal(t, "brew", action.Usage)
	assert.Equal(t, "Brew a pot", action.Description)
}

func TestNewActionWithDescriptionf(t *testing.T) {
	action := actions.NewHearAction().
		WithDescriptionf("Brew one of %s", []string{"earl grey", "rooibos"}).
		Build()

	assert.Equal(t, "Brew one of [earl grey rooibos]", action.Description)
}

func TestNewHiddenAction(t *testing.T) {
	action := actions.NewHearAction().
		Hidden().
		Build()

	assert.True(t, action.Hidden)
}

func TestNewStatefulAction(t *testing.T) {
	action := actions.NewCommand().
		Stateful().
		Build()

	assert.True(t, action.Stateful)
	assert.False(t, action.Hidden)
}

func TestNewScheduledActionWithDefaults(t *testing.T) {
	action := actions.NewScheduledAction().Build()

	assert.False(t, action.Hidden)
	assert.Equal(t, schedule.Definition{}, action.Schedule)
	assert.NotPanics(t, assert.PanicTestFunc(action.Action))
}

func TestNewScheduledActionWithSchedule(t *testing.T) {
	action := actions.NewScheduledAction().WithSchedule(schedule.New().EveryN(2, schedule.Hours).Build()).Build()

	assert.Equal(t, schedule.Definition{Interval: 2, Unit: schedule.Hours}, action.Schedule)
}

func TestNewHiddenScheduledAction(t *testing.T) {
	action := actions.NewScheduledAction().Hidden().Build()

	assert.True(t, action.Hidden)
}

func TestNewScheduledActionWithDescriptionf(t *testing.T) {
	action := actions.NewScheduledAction().
		WithDescriptionf("Call for tea at %s", "15:00").
		Build()

	assert.Equal(t, "Call for tea at 15:00", action.Description)
}

func TestNewScheduledActionWithAction(t *testing.T) {
	action := actions.NewScheduledAction().
		WithAction(func() {
			panic("tea time")
		}).
		Build()

	assert.PanicsWithValue(t, "tea time", assert.PanicTestFunc(action.Action))
}
