// Package plugin provides a fluent API to assemble a teabot.Plugin from actions built with
// github.com/teamaker/teabot/actions:
//
//	p := plugin.New("kettle").
//		WithCommand(boil, pour).
//		WithChannelJoinAnswer(func(channelID string) *teabot.Answer {
//			return &teabot.Answer{Text: "Who wants tea?"}
//		}).
//		Build()
package plugin

import (
	"github.com/teamaker/teabot"
)

// PluginBuilder holds a plugin to build
type PluginBuilder struct {
	plugin *teabot.Plugin
}

// New creates a new PluginBuilder with a plugin with the given name and empty set of actions
func New(name string) (pb *PluginBuilder) {
	pb = new(PluginBuilder)
	pb.plugin = new(teabot.Plugin)
	pb.plugin.Name = name
	pb.plugin.Commands = make([]teabot.ActionDefinition, 0)
	pb.plugin.HearActions = make([]teabot.ActionDefinition, 0)
	pb.plugin.ScheduledActions = make([]teabot.ScheduledActionDefinition, 0)

	return pb
}

// WithCommand appends commands to the plugin. Commands are tried in the order they're added
func (pb *PluginBuilder) WithCommand(commands ...teabot.ActionDefinition) *PluginBuilder {
	pb.plugin.Commands = append(pb.plugin.Commands, commands...)
	return pb
}

// WithHearAction appends hear actions to the plugin
func (pb *PluginBuilder) WithHearAction(hearActions ...teabot.ActionDefinition) *PluginBuilder {
	pb.plugin.HearActions = append(pb.plugin.HearActions, hearActions...)
	return pb
}

// WithScheduledAction appends scheduled actions to the plugin
func (pb *PluginBuilder) WithScheduledAction(scheduledActions ...teabot.ScheduledActionDefinition) *PluginBuilder {
	pb.plugin.ScheduledActions = append(pb.plugin.ScheduledActions, scheduledActions...)
	return pb
}

// WithChannelJoinAnswer sets the answerer invoked when the bot joins a channel
func (pb *PluginBuilder) WithChannelJoinAnswer(answerer teabot.ChannelJoinAnswerer) *PluginBuilder {
	pb.plugin.OnChannelJoin = answerer
	return pb
}

// Build returns the created Plugin instance
func (pb *PluginBuilder) Build() (p *teabot.Plugin) {
	return pb.plugin
}
