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

func TestSendValidVersionMessage(t *testing.T) {
	assertplugin := assertplugin.New(t, "bot")
	v := plugins.NewVersioner("teabot", "1.0.0")

	assertplugin.Answers(v, &slack.Msg{Text: "<@bot> version"}, func(t *testing.T, answers []*teabot.Answer) bool {
		return assert.Len(t, answers, 1) && assertanswer.HasText(t, answers[0], "I'm `teabot`, version `1.0.0`")
	})
}

func TestMatchOnVersionCommand(t *testing.T) {
	v := plugins.NewVersioner("teabot", "1.0.0")
	vc := v.Commands[0]

	assert.True(t, vc.Match(&teabot.IncomingMessage{NormalizedText: "version"}))
	assert.True(t, vc.Match(&teabot.IncomingMessage{NormalizedText: "version please"}))
	assert.False(t, vc.Match(&teabot.IncomingMessage{NormalizedText: " version"}))
}
