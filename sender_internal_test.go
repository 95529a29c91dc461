package teabot

import (
	"errors"
	"github.com/slack-go/slack"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"io/ioutil"
	"log"
	"strings"
	"testing"
)

type failingSender struct{}

func (f failingSender) SendMessage(channelID string, options ...slack.MsgOption) (rChannelID string, rTimestamp string, rText string, err error) {
	return "", "", "", errors.New("channel_not_found")
}

func TestChatMessageSenderLinksNames(t *testing.T) {
	driver := new(inMemoryChatDriver)
	sender := chatMessageSender{sender: driver, log: NewSLogger(log.New(ioutil.Discard, "", 0), false)}

	sender.SendMessage(sender.NewOutgoingMessage("@juma! You're up!", "C0TEA"))

	require.Len(t, driver.sent, 1)
	m := driver.sent[0]
	assert.Equal(t, "C0TEA", m.channelID)
	assert.Equal(t, "@juma! You're up!", m.values.Get("text"))
	assert.Equal(t, "1", m.values.Get("link_names"))
	assert.Equal(t, "full", m.values.Get("parse"))
	assert.Equal(t, "", m.values.Get("thread_ts"))
}

func TestChatMessageSenderInThread(t *testing.T) {
	driver := new(inMemoryChatDriver)
	sender := chatMessageSender{sender: driver, log: NewSLogger(log.New(ioutil.Discard, "", 0), false)}

	sender.SendMessage(sender.NewOutgoingMessage("Kettle's on", "C0TEA", slack.RTMsgOptionTS("1000.1")))

	require.Len(t, driver.sent, 1)
	assert.Equal(t, "1000.1", driver.sent[0].values.Get("thread_ts"))
}

func TestChatMessageSenderLogsErrors(t *testing.T) {
	var b strings.Builder
	sender := chatMessageSender{sender: failingSender{}, log: NewSLogger(log.New(&b, "", 0), false)}

	sender.SendMessage(sender.NewOutgoingMessage("@ruth! You're up!", "C0GONE"))

	assert.Contains(t, b.String(), "Unable to send message to [C0GONE]: channel_not_found")
}
