package teabot

import (
	"github.com/slack-go/slack"
)

// RealTimeMessageSender is implemented by any value that can create and send outgoing real time messages.
// slack.RTM implements it but teabot injects a sender posting through the web api. Plugins sending messages
// outside of an answer (i.e. scheduled actions) get one injected in their BotServices
type RealTimeMessageSender interface {
	// NewOutgoingMessage prepares an outgoing message for channelID
	NewOutgoingMessage(text string, channelID string, options ...slack.RTMsgOption) *slack.OutgoingMessage

	// SendMessage queues the outgoing message for delivery
	SendMessage(msg *slack.OutgoingMessage)
}

// chatMessageSender sends real time messages through the web api so they render like answers, with
// linked names and full parsing
type chatMessageSender struct {
	sender messageSender
	log    *sLogger
}

// NewOutgoingMessage prepares an outgoing message for channelID. Messages don't get an id since they
// aren't sent over the websocket
func (c chatMessageSender) NewOutgoingMessage(text string, channelID string, options ...slack.RTMsgOption) *slack.OutgoingMessage {
	msg := &slack.OutgoingMessage{Type: messageType, Channel: channelID, Text: text}
	for _, opt := range options {
		opt(msg)
	}

	return msg
}

// SendMessage posts msg, logging any error since real time messages have no way to report one
func (c chatMessageSender) SendMessage(msg *slack.OutgoingMessage) {
	options := contentOptions(&Answer{Text: msg.Text})
	if msg.ThreadTimestamp != "" {
		options = append(options, slack.MsgOptionTS(msg.ThreadTimestamp))
	}

	if _, _, _, err := c.sender.SendMessage(msg.Channel, options...); err != nil {
		c.log.Printf("Unable to send message to [%s]: %v\n", msg.Channel, err)
	}
}
