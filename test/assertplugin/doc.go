// Package assertplugin provides testing functions to validate a plugin's overall functionality.
// This package is designed to play well but not require the assertanswer package for validation
// of answers
//
// All commands and hear actions are evaluated by the driver but this is a simplified version of
// how teabot routes messages. Tests should include <@botUserID> with the same botUserID the asserter
// was created with to test commands (or use a channel ID that starts with D for direct messages)
//
// Example:
//    func TestPlugin(t *testing.T) {
//        assertplugin := assertplugin.New(t, "bot")
//        p := plugins.NewGreeter()
//
//        assertplugin.Answers(p, &slack.Msg{Text: "<@bot> hello"}, func(t *testing.T, answers []*teabot.Answer) bool {
//            return assert.Len(t, answers, 1) && assertanswer.HasText(t, answers[0], "Hello Slackers!")
//        })
//    }
package assertplugin // import "github.com/teamaker/teabot/test/assertplugin"
