package teabot

import (
	"github.com/slack-go/slack"
)

// Keys of the send configuration built from answer options
const (
	// ThreadedReplyOpt is set to "true" on answers going to the thread of their triggering message
	ThreadedReplyOpt = "threadedReply"
	// EphemeralAnswerToOpt holds the id of the only user an ephemeral answer is shown to
	EphemeralAnswerToOpt = "ephemeralMsgToUserID"
)

// Answer is what an action replies: its text, attachments and how to deliver it
type Answer struct {
	Text string

	// Attachments rendered under the text, in order
	Attachments []slack.Attachment

	// Options to apply when sending a message
	Options []AnswerOption
}

// AnswerOption sets a delivery option of an answer on the send configuration
type AnswerOption func(sendOpts map[string]string)

// AnswerInThread replies in the thread of the triggering message, whatever the configured default
func AnswerInThread() AnswerOption {
	return func(sendOpts map[string]string) {
		sendOpts[ThreadedReplyOpt] = "true"
	}
}

// AnswerEphemeral shows the answer to userID only. Ephemeral answers can't be updated or deleted
func AnswerEphemeral(userID string) AnswerOption {
	return func(sendOpts map[string]string) {
		sendOpts[EphemeralAnswerToOpt] = userID
	}
}

// ApplyAnswerOpts returns the send configuration resulting from opts, applied in order
func ApplyAnswerOpts(opts ...AnswerOption) (sendOpts map[string]string) {
	sendOpts = make(map[string]string)
	for _, opt := range opts {
		opt(sendOpts)
	}

	return sendOpts
}
