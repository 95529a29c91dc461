/*
Package teabot provides the engine of a slack bot that keeps track of whose turn it is to make tea.

It is extended via plugins combining commands, hear actions (listeners), scheduled actions and
channel join greetings. Responses follow the messages that triggered them: an edited message
gets its responses updated and a deleted message gets its responses deleted.

Plugins have access to services injected on startup:
 - UserInfoFinder: To query user info
 - SLogger: To log debug/info statements
 - RealTimeMessageSender: To send messages outside the normal answer flow (i.e. from a scheduled action)

Example:

	v := config.NewViperWithDefaults()
	// Read configuration and resolve the connection mode

	bot, err := teabot.NewBot("teabot", v).
		WithPlugin(plugins.NewGreeter()).
		WithOptionallyConfigurablePluginErr(plugins.TeaRotaPluginName, func(c *config.PluginConfig) (*teabot.Plugin, error) {
			return plugins.NewTeaRota(c)
		}).
		Build()
	if err != nil {
		log.Fatal(err)
	}
	defer bot.Close()

	if err = bot.Run(); err != nil {
		log.Fatal(err)
	}
*/
package teabot
