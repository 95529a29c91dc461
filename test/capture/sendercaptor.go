// Package capture provides test doubles recording what teabot plugins send to slack
package capture

import (
	"github.com/slack-go/slack"
	"sync"
)

// RealTimeSenderCaptor holds the text of messages sent to it keyed by channel ID. It implements
// teabot.RealTimeMessageSender
type RealTimeSenderCaptor struct {
	mu           sync.Mutex
	SentMessages map[string][]string
}

// NewRealTimeSender returns a new initialized RealTimeSenderCaptor instance
func NewRealTimeSender() (rtms *RealTimeSenderCaptor) {
	rtms = new(RealTimeSenderCaptor)
	rtms.SentMessages = make(map[string][]string)

	return rtms
}

// NewOutgoingMessage returns an OutgoingMessage with only the channel ID and text set on it. Nothing is
// captured until the message is sent
func (rtms *RealTimeSenderCaptor) NewOutgoingMessage(text string, channelID string, options ...slack.RTMsgOption) *slack.OutgoingMessage {
	m := &slack.OutgoingMessage{Channel: channelID, Text: text, Type: "message"}
	for _, opt := range options {
		opt(m)
	}

	return m
}

// SendMessage captures the text of msg under its channel
func (rtms *RealTimeSenderCaptor) SendMessage(msg *slack.OutgoingMessage) {
	rtms.mu.Lock()
	defer rtms.mu.Unlock()

	rtms.SentMessages[msg.Channel] = append(rtms.SentMessages[msg.Channel], msg.Text)
}
