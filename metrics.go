package teabot

import (
	"context"
	"go.opentelemetry.io/otel/label"
	"go.opentelemetry.io/otel/metric"
	"sync/atomic"
	"time"
)

const (
	newMsgType    = "new"
	updateMsgType = "edit"
	deleteMsgType = "delete"
)

var msgTypes = []string{newMsgType, updateMsgType, deleteMsgType}

// instrumenter holds the bound instruments of a teabot instance. All of them are created before message
// processing starts so they're only read concurrently
type instrumenter struct {
	appName       string
	meter         metric.Meter
	coreMetrics   coreMetrics
	pluginMetrics map[string]pluginMetrics
	latestLatency int64
}

type coreMetrics struct {
	msgsSeen                   metric.BoundInt64Counter
	msgsProcessed              map[string]metric.BoundInt64Counter
	msgProcessingLatencyMillis map[string]metric.BoundInt64ValueRecorder
	msgDispatchLatencyMillis   metric.BoundInt64ValueRecorder
	channelJoins               metric.BoundInt64Counter
	slackLatencyMillis         metric.Int64ValueObserver
}

type pluginMetrics struct {
	processingTimeMillis metric.BoundInt64ValueRecorder
	reactionCount        metric.BoundInt64Counter
	scheduledRuns        metric.BoundInt64Counter
}

func newInstrumenter(appName string, meter metric.Meter) (ins *instrumenter, err error) {
	ins = new(instrumenter)
	ins.appName = appName
	ins.meter = meter
	ins.pluginMetrics = make(map[string]pluginMetrics)

	mt := metric.Must(meter)
	appLabel := label.String("name", appName)

	slackLatency, err := meter.NewInt64ValueObserver("slackLatencyMillis", func(_ context.Context, result metric.Int64ObserverResult) {
		result.Observe(atomic.LoadInt64(&ins.latestLatency), appLabel)
	})
	if err != nil {
		return nil, err
	}

	ins.coreMetrics = coreMetrics{
		msgsSeen:                   mt.NewInt64Counter("msgSeen").Bind(appLabel),
		msgsProcessed:              newBoundCounterByMsgType("msgProcessed", appName, mt),
		msgProcessingLatencyMillis: newBoundValueRecorderByMsgType("msgProcessingLatencyMillis", appName, mt),
		msgDispatchLatencyMillis:   mt.NewInt64ValueRecorder("msgDispatchLatencyMillis").Bind(appLabel),
		channelJoins:               mt.NewInt64Counter("channelJoins").Bind(appLabel),
		slackLatencyMillis:         slackLatency,
	}

	return ins, nil
}

// recordSlackLatency keeps the latest latency reported by slack for the next observation
func (ins *instrumenter) recordSlackLatency(latency time.Duration) {
	atomic.StoreInt64(&ins.latestLatency, latency.Milliseconds())
}

// registerPlugin creates the instruments of a plugin. It must be called before any message is processed
func (ins *instrumenter) registerPlugin(pluginName string) {
	if _, ok := ins.pluginMetrics[pluginName]; ok {
		return
	}

	mt := metric.Must(ins.meter)
	labels := []label.KeyValue{label.String("name", ins.appName), label.String("plugin", pluginName)}

	ins.pluginMetrics[pluginName] = pluginMetrics{
		processingTimeMillis: mt.NewInt64ValueRecorder("pluginProcessingTimeMillis").Bind(labels...),
		reactionCount:        mt.NewInt64Counter("pluginReactions").Bind(labels...),
		scheduledRuns:        mt.NewInt64Counter("pluginScheduledRuns").Bind(labels...),
	}
}

func newBoundCounterByMsgType(counterName string, appName string, mt metric.MeterMust) (boundCounters map[string]metric.BoundInt64Counter) {
	boundCounters = make(map[string]metric.BoundInt64Counter)

	c := mt.NewInt64Counter(counterName)
	for _, msgType := range msgTypes {
		boundCounters[msgType] = c.Bind(label.String("name", appName), label.String("msgType", msgType))
	}

	return boundCounters
}

func newBoundValueRecorderByMsgType(recorderName string, appName string, mt metric.MeterMust) (boundRecorders map[string]metric.BoundInt64ValueRecorder) {
	boundRecorders = make(map[string]metric.BoundInt64ValueRecorder)

	r := mt.NewInt64ValueRecorder(recorderName)
	for _, msgType := range msgTypes {
		boundRecorders[msgType] = r.Bind(label.String("name", appName), label.String("msgType", msgType))
	}

	return boundRecorders
}

type timed func()

func measure(operation timed) (d time.Duration) {
	before := time.Now()

	operation()

	return time.Since(before)
}
