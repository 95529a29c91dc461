package teabot

import (
	"fmt"
	"github.com/slack-go/slack"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/teamaker/teabot/config"
	"github.com/teamaker/teabot/schedule"
	"io/ioutil"
	"log"
	"strings"
	"testing"
)

type fakeUserInfoFinder struct {
	fail bool
}

func (u *fakeUserInfoFinder) GetUserInfo(userID string) (user *slack.User, err error) {
	if u.fail {
		return nil, fmt.Errorf("Unknown user [%s]", userID)
	}

	return &slack.User{ID: userID, RealName: "Ruth"}, nil
}

func newPluginWithActionsOfAllTypes() (p *Plugin) {
	p = new(Plugin)
	p.Name = "brewer"
	p.Commands = []ActionDefinition{{
		Match: func(m *IncomingMessage) bool {
			return strings.HasPrefix(m.NormalizedText, "brew")
		},
		Usage:       "brew <kind of tea>",
		Description: "Brew a pot",
		Answer: func(m *IncomingMessage) *Answer {
			return nil
		}}, {
		Hidden: true,
		Match: func(m *IncomingMessage) bool {
			return strings.HasPrefix(m.NormalizedText, "secret")
		},
		Usage:       "secret",
		Description: "Hidden from help",
		Answer: func(m *IncomingMessage) *Answer {
			return nil
		}}}

	p.HearActions = []ActionDefinition{{
		Match: func(m *IncomingMessage) bool {
			return strings.Contains(m.NormalizedText, "kettle")
		},
		Usage:       "say `kettle`",
		Description: "Whistle when hearing about kettles",
		Answer: func(m *IncomingMessage) *Answer {
			return nil
		}}}

	p.ScheduledActions = []ScheduledActionDefinition{{Schedule: schedule.Definition{Interval: 1, Unit: schedule.Days, AtTime: "15:00"}, Description: "Call everyone for tea", Action: func() {}}}

	return p
}

func newHelpPluginForTest(t *testing.T, uf UserInfoFinder) *helpPlugin {
	s, err := New("teabot", config.NewViperWithDefaults())
	require.NoError(t, err)
	s.RegisterPlugin(newPluginWithActionsOfAllTypes())

	help := s.newHelpPlugin("1.0.0")
	help.UserInfoFinder = uf
	help.Logger = NewSLogger(log.New(ioutil.Discard, "", 0), true)

	return help
}

func TestHelpMatching(t *testing.T) {
	help := newHelpPluginForTest(t, &fakeUserInfoFinder{})

	cmd := help.Commands[0]
	assert.False(t, cmd.Match(&IncomingMessage{NormalizedText: " help"}))
	assert.True(t, cmd.Match(&IncomingMessage{NormalizedText: "help"}))
	assert.True(t, cmd.Match(&IncomingMessage{NormalizedText: "Help me"}))
	assert.False(t, cmd.Match(&IncomingMessage{NormalizedText: "who's next?"}))
}

func TestHelpListsVisibleActions(t *testing.T) {
	help := newHelpPluginForTest(t, &fakeUserInfoFinder{})

	a := help.Commands[0].Answer(&IncomingMessage{NormalizedText: "help", Msg: slack.Msg{User: "U0RUTH"}})
	require.NotNil(t, a)

	assert.Equal(t, "Hi, `Ruth`! I'm `teabot` (engine `v1.0.0`) and I keep track of whose turn it is to make tea :tea:.\n\n"+
		"I currently support the following commands:\n\t• `brew <kind of tea>` - Brew a pot\n\n"+
		"And listen for the following:\n\t• `say `kettle`` - Whistle when hearing about kettles\n\n"+
		"And do those things periodically:\n\t• [`brewer`] `Every day at 15:00` (`Local`) - Call everyone for tea\n", a.Text)
	assert.Equal(t, map[string]string{ThreadedReplyOpt: "true"}, ApplyAnswerOpts(a.Options...))
}

func TestHelpWithoutUserInfo(t *testing.T) {
	help := newHelpPluginForTest(t, &fakeUserInfoFinder{fail: true})

	a := help.Commands[0].Answer(&IncomingMessage{NormalizedText: "help", Msg: slack.Msg{User: "U0GHOST"}})
	require.NotNil(t, a)

	assert.True(t, strings.HasPrefix(a.Text, "I'm `teabot`"), "Expected no greeting by name but got [%s]", a.Text)
}
