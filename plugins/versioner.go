// Package plugins provides the teabot plugins: the tea rota itself along with greetings, a tally of
// rounds made and version reporting
package plugins

import (
	"fmt"
	"github.com/teamaker/teabot"
	"github.com/teamaker/teabot/actions"
	"github.com/teamaker/teabot/plugin"
	"strings"
)

const (
	// VersionerPluginName holds identifying name for the versioner plugin
	VersionerPluginName = "versioner"
)

// NewVersioner creates a new instance of the versioner plugin
func NewVersioner(name string, version string) (p *teabot.Plugin) {
	return plugin.New(VersionerPluginName).
		WithCommand(actions.NewCommand().
			WithMatcher(func(m *teabot.IncomingMessage) bool {
				return strings.HasPrefix(m.NormalizedText, "version")
			}).
			WithUsage("version").
			WithDescriptionf("Reply with `%s`'s `version` number", name).
			WithAnswerer(func(m *teabot.IncomingMessage) *teabot.Answer {
				return &teabot.Answer{Text: fmt.Sprintf("I'm `%s`, version `%s`", name, version)}
			}).
			Build()).
		Build()
}
