package teabot

import (
	"context"
	"fmt"
	"github.com/slack-go/slack"
	"hash/crc32"
	"sync"
)

// partitionRouter fans message events out to a fixed number of worker queues. Events are keyed by
// the id of the message they originate from so a message and its edits and deletion are always
// processed in order by the same worker
type partitionRouter struct {
	log *sLogger

	messageQueues []chan slack.MessageEvent
	workers       sync.WaitGroup
	hashMask      uint32

	*instrumenter
}

func newPartitionRouter(partitionCount int, queueBufferSize int, log *sLogger, instrumenter *instrumenter) (pr *partitionRouter, err error) {
	if !isPowerOfTwo(partitionCount) {
		return nil, fmt.Errorf("A partition router can only work with a partitionCount that is a power of two but was [%d]", partitionCount)
	}

	if queueBufferSize < 0 {
		return nil, fmt.Errorf("Invalid partition buffer size [%d], must be 0 or more", queueBufferSize)
	}

	pr = new(partitionRouter)
	pr.messageQueues = make([]chan slack.MessageEvent, partitionCount)
	for i := range pr.messageQueues {
		pr.messageQueues[i] = make(chan slack.MessageEvent, queueBufferSize)
	}
	pr.hashMask = uint32(partitionCount - 1)
	pr.log = log
	pr.instrumenter = instrumenter

	return pr, nil
}

// start launches one worker per partition, each calling process for every event routed to its partition
func (pr *partitionRouter) start(process func(msgEvent slack.MessageEvent)) {
	for i, queue := range pr.messageQueues {
		pr.workers.Add(1)

		go func(partition int, queue <-chan slack.MessageEvent) {
			defer pr.workers.Done()

			for msgEvent := range queue {
				process(msgEvent)
			}

			pr.log.Debugf("Worker for partition [%d] stopped\n", partition)
		}(i, queue)
	}
}

// stop closes all queues and waits for the workers to be done with the events already routed
func (pr *partitionRouter) stop() {
	for _, queue := range pr.messageQueues {
		close(queue)
	}

	pr.workers.Wait()
}

// routeMessageEvent queues msgEvent on the partition of its original message id
func (pr *partitionRouter) routeMessageEvent(msgEvent slack.MessageEvent) {
	msgID := getOriginalMessageID(msgEvent)
	partition := pr.partitionForMsgID(msgID)

	pr.log.Debugf("Dispatching message [%s] to partition [%d]\n", msgID, partition)
	d := measure(func() {
		pr.messageQueues[partition] <- msgEvent
	})

	pr.coreMetrics.msgDispatchLatencyMillis.Record(context.Background(), d.Milliseconds())
}

// partitionForMsgID returns the partition index for a given message ID
func (pr *partitionRouter) partitionForMsgID(msgID SlackMessageID) (partition int) {
	h := crc32.NewIEEE()
	h.Write([]byte(msgID.channelID))
	h.Write([]byte(msgID.timestamp))

	return int(h.Sum32() & pr.hashMask)
}

// getOriginalMessageID returns the id of the message an event is about: the edited message for
// changes, the deleted one for deletions and the message itself otherwise
func getOriginalMessageID(m slack.MessageEvent) (id SlackMessageID) {
	switch {
	case m.SubType == msgSubTypeChanged && m.SubMessage != nil:
		return SlackMessageID{channelID: m.Channel, timestamp: m.SubMessage.Timestamp}
	case m.SubType == msgSubTypeDeleted:
		return SlackMessageID{channelID: m.Channel, timestamp: m.DeletedTimestamp}
	default:
		return SlackMessageID{channelID: m.Channel, timestamp: m.Timestamp}
	}
}

func isPowerOfTwo(val int) bool {
	return val > 0 && (val&(val-1)) == 0
}
