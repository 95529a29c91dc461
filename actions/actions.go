/*
Package actions provides a fluent API for creating teabot plugin actions. Typical usages
will also involve using the plugin fluent API from github.com/teamaker/teabot/plugin.

	import (
		"github.com/teamaker/teabot"
		"github.com/teamaker/teabot/actions"
		"github.com/teamaker/teabot/plugin"
		"github.com/teamaker/teabot/schedule"
	)

	func newPlugin() (p *teabot.Plugin) {
		p = plugin.New("kettle").
			WithCommand(actions.NewCommand().
				WithMatcher(func(m *teabot.IncomingMessage) bool {
					return strings.HasPrefix(m.NormalizedText, "boil")
				}).
				WithUsage("boil").
				WithDescription("Put the kettle on").
				WithAnswerer(func(m *teabot.IncomingMessage) *teabot.Answer {
					return &teabot.Answer{Text: ":droplet: The kettle is on"}
				}).
				Build()).
			WithHearAction(actions.NewHearAction().
				Hidden().
				WithMatcher(func(m *teabot.IncomingMessage) bool {
					return strings.Contains(m.NormalizedText, "biscuit")
				}).
				WithAnswerer(func(m *teabot.IncomingMessage) *teabot.Answer {
					return &teabot.Answer{Text: "Did someone say biscuits?"}
				}).
				Build()).
			WithScheduledAction(actions.NewScheduledAction().
				WithSchedule(schedule.New().Every(time.Friday.String()).AtTime("15:00").Build()).
				WithDescription("Friday tea reminder").
				WithAction(remindEveryone).
				Build()).
			Build()
		return p
	}
*/
package actions

import (
	"fmt"
	"github.com/teamaker/teabot"
	"github.com/teamaker/teabot/schedule"
)

// ActionBuilder holds the action to build
type ActionBuilder struct {
	action teabot.ActionDefinition
}

// ScheduledActionBuilder holds the scheduled action to build
type ScheduledActionBuilder struct {
	scheduledAction teabot.ScheduledActionDefinition
}

var (
	// Default to always match, an Answerer returning nil amounts to no match
	defaultMatcher = func(m *teabot.IncomingMessage) bool {
		return true
	}

	defaultAnswerer = func(m *teabot.IncomingMessage) *teabot.Answer {
		return nil
	}
)

func newAction() (ab *ActionBuilder) {
	ab = &ActionBuilder{action: teabot.ActionDefinition{Match: defaultMatcher, Answer: defaultAnswerer}}

	return ab
}

// NewCommand returns a new ActionBuilder to build a new command
func NewCommand() (ab *ActionBuilder) {
	return newAction()
}

// NewHearAction returns a new ActionBuilder to build a new hear action
func NewHearAction() (ab *ActionBuilder) {
	return newAction()
}

// WithMatcher sets the action's matcher function
func (ab *ActionBuilder) WithMatcher(matcher teabot.Matcher) *ActionBuilder {
	ab.action.Match = matcher
	return ab
}

// WithUsage sets the action usage
func (ab *ActionBuilder) WithUsage(usage string) *ActionBuilder {
	ab.action.Usage = usage
	return ab
}

// WithDescription sets the action description
func (ab *ActionBuilder) WithDescription(description string) *ActionBuilder {
	ab.action.Description = description
	return ab
}

// WithDescriptionf sets the action description delegating format and arguments to fmt.Sprintf
func (ab *ActionBuilder) WithDescriptionf(format string, a ...interface{}) *ActionBuilder {
	ab.action.Description = fmt.Sprintf(format, a...)
	return ab
}

// WithAnswerer sets the action's answerer function
func (ab *ActionBuilder) WithAnswerer(answerer teabot.Answerer) *ActionBuilder {
	ab.action.Answer = answerer
	return ab
}

// Hidden sets the action to hidden
func (ab *ActionBuilder) Hidden() *ActionBuilder {
	ab.action.Hidden = true
	return ab
}

// Stateful marks an action whose answer changes state. Edits of a message it answered keep the response as is
func (ab *ActionBuilder) Stateful() *ActionBuilder {
	ab.action.Stateful = true
	return ab
}

// Build returns the ActionDefinition
func (ab *ActionBuilder) Build() teabot.ActionDefinition {
	return ab.action
}

// NewScheduledAction returns a new ScheduledActionBuilder to build a new ScheduledActionDefinition
func NewScheduledAction() (sab *ScheduledActionBuilder) {
	sab = &ScheduledActionBuilder{scheduledAction: teabot.ScheduledActionDefinition{Action: func() {}}}

	return sab
}

// WithSchedule sets the schedule for the scheduled action
func (sab *ScheduledActionBuilder) WithSchedule(schedule schedule.Definition) *ScheduledActionBuilder {
	sab.scheduledAction.Schedule = schedule
	return sab
}

// WithDescription sets the scheduled action description
func (sab *ScheduledActionBuilder) WithDescription(desc string) *ScheduledActionBuilder {
	sab.scheduledAction.Description = desc
	return sab
}

// WithDescriptionf sets the scheduled action description delegating format and arguments to fmt.Sprintf
func (sab *ScheduledActionBuilder) WithDescriptionf(format string, a ...interface{}) *ScheduledActionBuilder {
	sab.scheduledAction.Description = fmt.Sprintf(format, a...)
	return sab
}

// WithAction sets the action function to run on schedule
func (sab *ScheduledActionBuilder) WithAction(action teabot.ScheduledAction) *ScheduledActionBuilder {
	sab.scheduledAction.Action = action
	return sab
}

// Hidden omits the scheduled action from the help message
func (sab *ScheduledActionBuilder) Hidden() *ScheduledActionBuilder {
	sab.scheduledAction.Hidden = true
	return sab
}

// Build returns the ScheduledActionDefinition
func (sab *ScheduledActionBuilder) Build() teabot.ScheduledActionDefinition {
	return sab.scheduledAction
}
