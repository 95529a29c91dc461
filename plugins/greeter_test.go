package plugins_test

import (
	"github.com/slack-go/slack"
	"github.com/stretchr/testify/assert"
	"github.com/teamaker/teabot"
	"github.com/teamaker/teabot/plugins"
	"github.com/teamaker/teabot/test/assertanswer"
	"github.com/teamaker/teabot/test/assertplugin"
	"testing"
)

func TestGreetingWhenMentioned(t *testing.T) {
	assertplugin := assertplugin.New(t, "bot")
	g := plugins.NewGreeter()

	for _, greeting := range []string{"hello", "Hi!", "greetings, teabot", "hey"} {
		assertplugin.Answers(g, &slack.Msg{Text: "<@bot> " + greeting, Channel: "CTEA"}, func(t *testing.T, answers []*teabot.Answer) bool {
			return assert.Len(t, answers, 1) && assertanswer.HasText(t, answers[0], "Hello Slackers!")
		})
	}
}

func TestDirectHelloTakesPrecedence(t *testing.T) {
	assertplugin := assertplugin.New(t, "bot")
	g := plugins.NewGreeter()

	assertplugin.Answers(g, &slack.Msg{Text: "hello", Channel: "DTEA"}, func(t *testing.T, answers []*teabot.Answer) bool {
		return assert.Len(t, answers, 1) && assertanswer.HasText(t, answers[0], "Hello!")
	})
}

func TestOtherDirectGreeting(t *testing.T) {
	assertplugin := assertplugin.New(t, "bot")
	g := plugins.NewGreeter()

	assertplugin.Answers(g, &slack.Msg{Text: "hi", Channel: "DTEA"}, func(t *testing.T, answers []*teabot.Answer) bool {
		return assert.Len(t, answers, 1) && assertanswer.HasText(t, answers[0], "Hello Slackers!")
	})
}

func TestNoGreetingWhenOverheard(t *testing.T) {
	assertplugin := assertplugin.New(t, "bot")
	g := plugins.NewGreeter()

	assertplugin.Answers(g, &slack.Msg{Text: "hello everyone", Channel: "CTEA"}, func(t *testing.T, answers []*teabot.Answer) bool {
		return assert.Empty(t, answers)
	})
}

func TestNoGreetingForRotaCommands(t *testing.T) {
	assertplugin := assertplugin.New(t, "bot")
	g := plugins.NewGreeter()

	assertplugin.Answers(g, &slack.Msg{Text: "<@bot> who's next?"}, func(t *testing.T, answers []*teabot.Answer) bool {
		return assert.Empty(t, answers)
	})
}

func TestAnnouncesItselfOnChannelJoin(t *testing.T) {
	assertplugin := assertplugin.New(t, "bot")
	g := plugins.NewGreeter()

	assertplugin.JoinsChannel(g, "CTEA", func(t *testing.T, answer *teabot.Answer) bool {
		return assertanswer.HasText(t, answer, "I'm here!")
	})
}

func TestGreeterHelp(t *testing.T) {
	g := plugins.NewGreeter()

	assert.Len(t, g.Commands, 2)
	assert.True(t, g.Commands[0].Hidden)
	assert.Equal(t, "Say hello/hi/greetings/hey back", g.Commands[1].Description)
}
