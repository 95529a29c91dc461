package teabot_test

import (
	"github.com/stretchr/testify/assert"
	"github.com/teamaker/teabot"
	"testing"
)

func TestApplyAnswerOpts(t *testing.T) {
	tests := map[string]struct {
		options  []teabot.AnswerOption
		expected map[string]string
	}{
		"NoOption":          {nil, map[string]string{}},
		"InThread":          {[]teabot.AnswerOption{teabot.AnswerInThread()}, map[string]string{teabot.ThreadedReplyOpt: "true"}},
		"Ephemeral":         {[]teabot.AnswerOption{teabot.AnswerEphemeral("U0RUTH")}, map[string]string{teabot.EphemeralAnswerToOpt: "U0RUTH"}},
		"EphemeralInThread": {[]teabot.AnswerOption{teabot.AnswerEphemeral("U0RUTH"), teabot.AnswerInThread()}, map[string]string{teabot.EphemeralAnswerToOpt: "U0RUTH", teabot.ThreadedReplyOpt: "true"}},
		"LastUserWins":      {[]teabot.AnswerOption{teabot.AnswerEphemeral("U0RUTH"), teabot.AnswerEphemeral("U0LEWIS")}, map[string]string{teabot.EphemeralAnswerToOpt: "U0LEWIS"}},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tc.expected, teabot.ApplyAnswerOpts(tc.options...))
		})
	}
}
