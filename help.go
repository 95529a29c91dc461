package teabot

import (
	"fmt"
	"github.com/teamaker/teabot/config"
	"io"
	"strings"
)

const (
	helpPluginName = "help"
)

type helpPlugin struct {
	Plugin

	name                   string
	version                string
	timeLocation           string
	commands               []ActionDefinition
	hearActions            []ActionDefinition
	pluginScheduledActions []pluginScheduledAction
}

// pluginScheduledAction is a plugin's scheduled action along with the plugin name
type pluginScheduledAction struct {
	plugin string
	ScheduledActionDefinition
}

func (s *Teabot) newHelpPlugin(version string) *helpPlugin {
	h := new(helpPlugin)
	h.name = s.name
	h.version = version
	h.timeLocation = s.config.GetString(config.TimeLocationKey)
	h.commands, h.hearActions, h.pluginScheduledActions = findAllActions(s.plugins)

	h.Plugin = Plugin{Name: helpPluginName, Commands: []ActionDefinition{{
		Match: func(m *IncomingMessage) bool {
			return strings.HasPrefix(strings.ToLower(m.NormalizedText), helpPluginName)
		},
		Usage:       helpPluginName,
		Description: "Reply with usage instructions",
		Answer:      h.showHelp,
	}}}

	return h
}

// showHelp lists the visible commands, hear actions and scheduled actions of all plugins
func (h *helpPlugin) showHelp(m *IncomingMessage) *Answer {
	var b strings.Builder

	if h.UserInfoFinder != nil {
		user, err := h.UserInfoFinder.GetUserInfo(m.User)
		if err != nil {
			h.Logger.Debugf("Error getting user info for user id [%s], skipping the greeting by name: %v\n", m.User, err)
		} else {
			fmt.Fprintf(&b, "Hi, `%s`! ", user.RealName)
		}
	}

	fmt.Fprintf(&b, "I'm `%s` (engine `v%s`) and I keep track of whose turn it is to make tea :tea:.\n", h.name, h.version)

	if len(h.commands) > 0 {
		fmt.Fprintf(&b, "\nI currently support the following commands:\n")
		appendActions(&b, h.commands)
	}

	if len(h.hearActions) > 0 {
		fmt.Fprintf(&b, "\nAnd listen for the following:\n")
		appendActions(&b, h.hearActions)
	}

	if len(h.pluginScheduledActions) > 0 {
		fmt.Fprintf(&b, "\nAnd do those things periodically:\n")
		appendScheduledActions(&b, h.timeLocation, h.pluginScheduledActions)
	}

	return &Answer{Text: b.String(), Options: []AnswerOption{AnswerInThread()}}
}

func appendActions(w io.Writer, actions []ActionDefinition) {
	for _, a := range actions {
		if a.Usage != "" {
			fmt.Fprintf(w, "\t• `%s` - %s\n", a.Usage, a.Description)
		}
	}
}

func appendScheduledActions(w io.Writer, timeLocationName string, scheduledActions []pluginScheduledAction) {
	for _, sa := range scheduledActions {
		fmt.Fprintf(w, "\t• [`%s`] `%s` (`%s`) - %s\n", sa.plugin, sa.Schedule, timeLocationName, sa.Description)
	}
}

// findAllActions returns the visible actions of all plugins
func findAllActions(plugins []*Plugin) (commands []ActionDefinition, hearActions []ActionDefinition, pluginScheduledActions []pluginScheduledAction) {
	commands = make([]ActionDefinition, 0)
	hearActions = make([]ActionDefinition, 0)
	pluginScheduledActions = make([]pluginScheduledAction, 0)

	for _, p := range plugins {
		commands = append(commands, visibleActions(p.Commands)...)
		hearActions = append(hearActions, visibleActions(p.HearActions)...)

		for _, sa := range p.ScheduledActions {
			if !sa.Hidden {
				pluginScheduledActions = append(pluginScheduledActions, pluginScheduledAction{plugin: p.Name, ScheduledActionDefinition: sa})
			}
		}
	}

	return commands, hearActions, pluginScheduledActions
}

func visibleActions(actions []ActionDefinition) (visible []ActionDefinition) {
	visible = make([]ActionDefinition, 0)
	for _, a := range actions {
		if !a.Hidden {
			visible = append(visible, a)
		}
	}

	return visible
}
