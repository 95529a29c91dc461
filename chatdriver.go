package teabot

import (
	"context"
	"github.com/slack-go/slack"
	"go.opentelemetry.io/otel/label"
	"go.opentelemetry.io/otel/metric"
	"time"
)

// messageSender sends a message synchronously and returns what identifies the sent message.
//
// slack.Client implements this interface
type messageSender interface {
	SendMessage(channelID string, options ...slack.MsgOption) (rChannelID string, rTimestamp string, rText string, err error)
}

// messageUpdater is implemented by slack.Client
type messageUpdater interface {
	UpdateMessage(channelID, timestamp string, options ...slack.MsgOption) (rChannelID string, rTimestamp string, rText string, err error)
}

// messageDeleter is implemented by slack.Client
type messageDeleter interface {
	DeleteMessage(channelID string, timestamp string) (rChannelID string, rTimestamp string, err error)
}

// chatDriver is everything teabot needs to deliver answers
type chatDriver interface {
	messageDeleter
	messageSender
	messageUpdater
}

const (
	sendMessageMethod   = "SendMessage"
	updateMessageMethod = "UpdateMessage"
	deleteMessageMethod = "DeleteMessage"
)

// chatDriverWithTelemetry decorates a chatDriver with call, error and timing metrics
type chatDriverWithTelemetry struct {
	base           chatDriver
	calls          map[string]metric.BoundInt64Counter
	errs           map[string]metric.BoundInt64Counter
	durationMillis map[string]metric.BoundInt64ValueRecorder
}

func newChatDriverWithTelemetry(base chatDriver, appName string, meter metric.Meter) (d chatDriverWithTelemetry) {
	d.base = base
	d.calls = make(map[string]metric.BoundInt64Counter)
	d.errs = make(map[string]metric.BoundInt64Counter)
	d.durationMillis = make(map[string]metric.BoundInt64ValueRecorder)

	mt := metric.Must(meter)
	calls := mt.NewInt64Counter("chatDriverCalls")
	errs := mt.NewInt64Counter("chatDriverErrors")
	durations := mt.NewInt64ValueRecorder("chatDriverProcessingTimeMillis")

	for _, method := range []string{sendMessageMethod, updateMessageMethod, deleteMessageMethod} {
		labels := []label.KeyValue{label.String("name", appName), label.String("method", method)}

		d.calls[method] = calls.Bind(labels...)
		d.errs[method] = errs.Bind(labels...)
		d.durationMillis[method] = durations.Bind(labels...)
	}

	return d
}

func (d chatDriverWithTelemetry) record(method string, start time.Time, err error) {
	ctx := context.Background()

	d.calls[method].Add(ctx, 1)
	d.durationMillis[method].Record(ctx, time.Since(start).Milliseconds())
	if err != nil {
		d.errs[method].Add(ctx, 1)
	}
}

// SendMessage implements messageSender
func (d chatDriverWithTelemetry) SendMessage(channelID string, options ...slack.MsgOption) (rChannelID string, rTimestamp string, rText string, err error) {
	defer func(start time.Time) { d.record(sendMessageMethod, start, err) }(time.Now())

	return d.base.SendMessage(channelID, options...)
}

// UpdateMessage implements messageUpdater
func (d chatDriverWithTelemetry) UpdateMessage(channelID, timestamp string, options ...slack.MsgOption) (rChannelID string, rTimestamp string, rText string, err error) {
	defer func(start time.Time) { d.record(updateMessageMethod, start, err) }(time.Now())

	return d.base.UpdateMessage(channelID, timestamp, options...)
}

// DeleteMessage implements messageDeleter
func (d chatDriverWithTelemetry) DeleteMessage(channelID string, timestamp string) (rChannelID string, rTimestamp string, err error) {
	defer func(start time.Time) { d.record(deleteMessageMethod, start, err) }(time.Now())

	return d.base.DeleteMessage(channelID, timestamp)
}
