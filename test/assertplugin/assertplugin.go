package assertplugin

import (
	"fmt"
	"github.com/slack-go/slack"
	"github.com/teamaker/teabot"
	"github.com/teamaker/teabot/schedule"
	"github.com/teamaker/teabot/test/capture"
	"log"
	"strings"
	"testing"
)

// Asserter represents a plugin driver/asserter and holds the bot identifier that tests are using when
// sending test messages for processing
type Asserter struct {
	t              *testing.T
	botUserID      string
	logger         *log.Logger
	userInfoFinder teabot.UserInfoFinder
}

// New creates a new asserter with the given botUserId
// (only include the id without the '@' prefix).
// The botUserId is used in order to detect commands formed with
// <@botUserId>
func New(t *testing.T, botUserID string, options ...Option) (a *Asserter) {
	a = new(Asserter)
	a.t = t
	a.botUserID = botUserID

	for _, option := range options {
		option(a)
	}

	return a
}

// Option defines an option for the Asserter
type Option func(*Asserter)

// OptionLog sets a logger for the asserter such that this logger is attached to the plugin when driven by
// the asserter
func OptionLog(logger *log.Logger) func(*Asserter) {
	return func(a *Asserter) {
		a.logger = logger
	}
}

// OptionUserInfoFinder sets the UserInfoFinder injected in the plugin
func OptionUserInfoFinder(userInfoFinder teabot.UserInfoFinder) func(*Asserter) {
	return func(a *Asserter) {
		a.userInfoFinder = userInfoFinder
	}
}

// ResultValidator is a function to do further validation of the answers resulting from a plugin processing of
// all of its commands and hear actions. The return value is meant to be true if validation is successful and
// false otherwise (following the testify convention)
type ResultValidator func(t *testing.T, answers []*teabot.Answer) bool

// ScheduleResultValidator validates messages sent by scheduled actions. Messages are keyed by channel ID
type ScheduleResultValidator func(t *testing.T, sentMsgs map[string][]string) bool

// ChannelJoinValidator validates the answer of a plugin to joining a channel
type ChannelJoinValidator func(t *testing.T, answer *teabot.Answer) bool

// Answers drives a plugin and collects its Answers. Once all of those have been collected,
// it passes handling to a validator to assert the expected answers. It follows the style of
// github.com/stretchr/testify/assert as far as returning true/false to indicate success for further nested testing
func (a *Asserter) Answers(p *teabot.Plugin, m *slack.Msg, validate ResultValidator) (valid bool) {
	a.injectServices(p, capture.NewRealTimeSender())

	answers := a.driveActions(p, m)

	return validate(a.t, answers)
}

// RunsOnSchedule runs all scheduled actions of the plugin defined with the given schedule and validates
// the messages they sent. It returns false if no scheduled action runs on that schedule
func (a *Asserter) RunsOnSchedule(p *teabot.Plugin, sched schedule.Definition, validate ScheduleResultValidator) (valid bool) {
	sender := capture.NewRealTimeSender()
	a.injectServices(p, sender)

	if !a.runScheduledActions(p, sched) {
		a.t.Errorf("No scheduled action runs on schedule [%s]", sched)
		return false
	}

	return validate(a.t, sender.SentMessages)
}

// DoesNotRunOnSchedule asserts that no scheduled action of the plugin is defined with the given schedule
func (a *Asserter) DoesNotRunOnSchedule(p *teabot.Plugin, sched schedule.Definition) (valid bool) {
	for _, action := range p.ScheduledActions {
		if action.Schedule == sched {
			a.t.Errorf("Expected no scheduled action to run on schedule [%s] but [%s] does", sched, action.Description)
			return false
		}
	}

	return true
}

// JoinsChannel invokes the plugin's channel join answerer with channelID and validates its answer. It
// returns false when the plugin doesn't react to channel joins
func (a *Asserter) JoinsChannel(p *teabot.Plugin, channelID string, validate ChannelJoinValidator) (valid bool) {
	a.injectServices(p, capture.NewRealTimeSender())

	if p.OnChannelJoin == nil {
		a.t.Errorf("Plugin [%s] doesn't answer to channel joins", p.Name)
		return false
	}

	return validate(a.t, p.OnChannelJoin(channelID))
}

func (a *Asserter) injectServices(p *teabot.Plugin, sender teabot.RealTimeMessageSender) {
	p.Logger = teabot.NewSLogger(getLogger(a), true)
	p.RealTimeMsgSender = sender
	p.UserInfoFinder = a.userInfoFinder
}

func (a *Asserter) runScheduledActions(p *teabot.Plugin, sched schedule.Definition) (ran bool) {
	for _, action := range p.ScheduledActions {
		if action.Schedule == sched {
			action.Action()
			ran = true
		}
	}

	return ran
}

func getLogger(a *Asserter) (logger *log.Logger) {
	if a.logger != nil {
		return a.logger
	}

	var b strings.Builder
	return log.New(&b, "", 0)
}

func (a *Asserter) driveActions(p *teabot.Plugin, m *slack.Msg) (answers []*teabot.Answer) {
	botMentionPrefix := fmt.Sprintf("<@%s> ", a.botUserID)

	if strings.HasPrefix(m.Text, botMentionPrefix) {
		normalizedText := strings.TrimPrefix(m.Text, botMentionPrefix)
		inMsg := teabot.IncomingMessage{NormalizedText: normalizedText, Msg: *m}

		return runActions(p.Commands, &inMsg)
	}

	inMsg := teabot.IncomingMessage{NormalizedText: m.Text, Msg: *m}

	if strings.HasPrefix(m.Channel, "D") {
		return runActions(p.Commands, &inMsg)
	}

	return runActions(p.HearActions, &inMsg)
}

func runActions(actions []teabot.ActionDefinition, m *teabot.IncomingMessage) (answers []*teabot.Answer) {
	answers = make([]*teabot.Answer, 0)

	for _, action := range actions {
		if action.Match(m) {
			a := action.Answer(m)

			if a != nil {
				answers = append(answers, a)
			}
		}
	}

	return answers
}
