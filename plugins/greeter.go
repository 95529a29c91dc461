package plugins

import (
	"github.com/teamaker/teabot"
	"github.com/teamaker/teabot/actions"
	"github.com/teamaker/teabot/plugin"
	"regexp"
	"strings"
)

const (
	// GreeterPluginName holds identifying name for the greeter plugin
	GreeterPluginName = "greeter"
)

var directHelloRegex = regexp.MustCompile(`(?i)\bhello\b`)

// NewGreeter creates a new instance of the greeter plugin. It says hello back when greeted and
// announces itself in channels it joins
func NewGreeter() (p *teabot.Plugin) {
	recognizer := NewDefaultRecognizer()

	return plugin.New(GreeterPluginName).
		WithCommand(actions.NewCommand().
			Hidden().
			WithMatcher(isDirectHello).
			WithAnswerer(func(m *teabot.IncomingMessage) *teabot.Answer {
				return &teabot.Answer{Text: "Hello!"}
			}).
			Build()).
		WithCommand(actions.NewCommand().
			WithMatcher(func(m *teabot.IncomingMessage) bool {
				c, ok := recognizer.Recognize(m.NormalizedText)
				return ok && c == CommandGreet && !isDirectHello(m)
			}).
			WithUsage("hello").
			WithDescriptionf("Say %s back", strings.Join(recognizer.Keywords(CommandGreet), "/")).
			WithAnswerer(func(m *teabot.IncomingMessage) *teabot.Answer {
				return &teabot.Answer{Text: "Hello Slackers!"}
			}).
			Build()).
		WithChannelJoinAnswer(func(channelID string) *teabot.Answer {
			return &teabot.Answer{Text: "I'm here!"}
		}).
		Build()
}

// isDirectHello returns true for a direct message saying hello
func isDirectHello(m *teabot.IncomingMessage) bool {
	return strings.HasPrefix(m.Channel, "D") && directHelloRegex.MatchString(m.NormalizedText)
}
