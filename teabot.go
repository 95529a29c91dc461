package teabot

import (
	"context"
	"fmt"
	lru "github.com/hashicorp/golang-lru"
	"github.com/marcsantiago/gocron"
	"github.com/slack-go/slack"
	"github.com/spf13/viper"
	"github.com/teamaker/teabot/config"
	"github.com/teamaker/teabot/schedule"
	"go.opentelemetry.io/otel/metric"
	"io"
	"log"
	"os"
	"os/signal"
	"regexp"
	"strings"
	"sync/atomic"
	"syscall"
	"time"
)

// VERSION is the version of the teabot engine, as reported by the help command
const VERSION = "1.0.0"

const (
	defaultLogPrefix  = "teabot: "
	defaultLogFlag    = log.Lshortfile | log.LstdFlags
	defaultActionID   = "default"
	messageType       = "message"
	msgSubTypeDeleted = "message_deleted"
	msgSubTypeChanged = "message_changed"
	directChannelTag  = 'D'
)

// Teabot is a slack bot: a name, its plugins and what it needs to route messages to them
type Teabot struct {
	name          string
	config        *viper.Viper
	defaultAction Answerer

	plugins []*Plugin
	closers []io.Closer

	// Responses sent for each triggering message, so they can follow edits and deletions
	triggeringMsgToResponses *lru.ARCCache

	commandsWithID    []ActionDefinitionWithID
	hearActionsWithID []ActionDefinitionWithID

	// Holds a selfIdentity once connected
	identity atomic.Value

	logger *log.Logger
	log    *sLogger
	meter  metric.Meter

	*instrumenter
}

// Plugin is a named set of actions. Commands are triggered by messages directed at the bot, hear actions by
// any other message and scheduled actions by their schedule
type Plugin struct {
	Name             string
	Commands         []ActionDefinition
	HearActions      []ActionDefinition
	ScheduledActions []ScheduledActionDefinition

	// OnChannelJoin is optional and invoked with the channel id when the bot joins a channel
	OnChannelJoin ChannelJoinAnswerer

	// Injected by teabot before running
	BotServices
}

// BotServices are the services injected in every plugin on startup
type BotServices struct {
	// Logger to log anything a plugin wants to log. Lines are prefixed with the plugin name
	Logger SLogger

	// RealTimeMsgSender sends messages outside of the answer flow (i.e. from scheduled actions)
	RealTimeMsgSender RealTimeMessageSender

	// UserInfoFinder finds user info, from a cache when enabled
	UserInfoFinder UserInfoFinder
}

// ActionDefinition represents how an action is triggered, published, used and described
// along with defining the function defining its behavior
type ActionDefinition struct {
	// Indicates whether the action should be omitted from the help message
	Hidden bool

	// Matcher that will determine whether or not the action should be triggered
	Match Matcher

	// Usage example
	Usage string

	// Help description for the action
	Description string

	// Function to execute if the Matcher matches
	Answer Answerer

	// Stateful actions change state when answering. Once answered, edits of the triggering message keep
	// their response as is instead of answering again
	Stateful bool
}

// ScheduledActionDefinition represents when a scheduled action is triggered as well
// as what it does
type ScheduledActionDefinition struct {
	// Indicates whether the action should be omitted from the help message
	Hidden bool

	// Schedule definition determining when the action runs
	Schedule schedule.Definition

	// Help description for the scheduled action
	Description string

	// Action is the function invoked when the schedule activates
	Action ScheduledAction
}

// ActionDefinitionWithID holds an action definition along with its identifier string
type ActionDefinitionWithID struct {
	ActionDefinition
	pluginName string
	id         string
}

// IncomingMessage holds a slack message along with its text normalized for matching. For a command, the
// normalized text has the mention of the bot stripped from it
type IncomingMessage struct {
	NormalizedText string
	slack.Msg
}

// Matcher determines whether or not an action should be triggered. A match doesn't guarantee that the action
// answers anything once invoked
type Matcher func(m *IncomingMessage) bool

// Answerer is what gets executed when an ActionDefinition is triggered. Returning nil means no answer
type Answerer func(m *IncomingMessage) *Answer

// ScheduledAction is what gets executed when a ScheduledActionDefinition is triggered
type ScheduledAction func()

// ChannelJoinAnswerer returns the answer to post in a channel the bot just joined, or nil
type ChannelJoinAnswerer func(channelID string) *Answer

// SlackMessageID holds the elements that form a unique message identifier within a workspace
type SlackMessageID struct {
	channelID string
	timestamp string
}

// String returns a friendly representation of a SlackMessageID
func (id SlackMessageID) String() string {
	return fmt.Sprintf("%s/%s", id.channelID, id.timestamp)
}

// OutgoingMessage holds an answer along with where it goes and which action triggered it
type OutgoingMessage struct {
	*Answer

	channelID string

	// Timestamp of the thread a threaded answer goes to
	threadTimestamp string

	// pluginName.c[commandIndex] for a command or pluginName.h[actionIndex] for an hear action
	pluginIdentifier string
}

type selfIdentity struct {
	id           string
	name         string
	directedAtUs *regexp.Regexp
}

// terminationEvent ends the processing of incoming events
type terminationEvent struct{}

// Option defines an option for a Teabot
type Option func(*Teabot)

// OptionLog sets a logger for teabot
func OptionLog(logger *log.Logger) Option {
	return func(s *Teabot) {
		s.logger = logger
	}
}

// OptionLogfile sets a logfile for teabot to log to with the default prefix and flags
func OptionLogfile(logfile *os.File) Option {
	return func(s *Teabot) {
		s.logger = log.New(logfile, defaultLogPrefix, defaultLogFlag)
	}
}

// OptionMeter sets the meter used to instrument teabot. Instruments are no-ops by default
func OptionMeter(meter metric.Meter) Option {
	return func(s *Teabot) {
		s.meter = meter
	}
}

// New creates a new teabot given a name, a configuration and options
func New(name string, v *viper.Viper, options ...Option) (s *Teabot, err error) {
	s = new(Teabot)
	s.name = name
	s.config = config.LayerConfigWithDefaults(v)
	s.plugins = make([]*Plugin, 0)
	s.closers = make([]io.Closer, 0)
	s.logger = log.New(os.Stdout, defaultLogPrefix, defaultLogFlag)
	s.defaultAction = func(m *IncomingMessage) *Answer {
		return &Answer{Text: fmt.Sprintf("I don't understand, ask me for \"%s\" to get a list of things I do", helpPluginName)}
	}

	for _, opt := range options {
		opt(s)
	}

	s.log = NewSLogger(s.logger, v.GetBool(config.DebugKey))

	s.triggeringMsgToResponses, err = lru.NewARC(v.GetInt(config.ResponseCacheSizeKey))
	if err != nil {
		return nil, fmt.Errorf("Invalid response cache size [%d]: %w", v.GetInt(config.ResponseCacheSizeKey), err)
	}

	s.instrumenter, err = newInstrumenter(name, s.meter)
	if err != nil {
		return nil, err
	}

	return s, nil
}

// RegisterPlugin registers a plugin with the teabot engine. This should be invoked
// prior to calling Run
func (s *Teabot) RegisterPlugin(p *Plugin) {
	s.plugins = append(s.plugins, p)
}

// Close closes everything registered to be closed with the bot, returning the first error encountered
func (s *Teabot) Close() (err error) {
	for _, c := range s.closers {
		if cerr := c.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}

	return err
}

// Run connects to slack and processes events until the connection fails for invalid credentials or the
// process receives a SIGINT or SIGTERM
func (s *Teabot) Run() (err error) {
	api := slack.New(
		s.config.GetString(config.TokenKey),
		slack.OptionDebug(s.config.GetBool(config.DebugKey)),
		slack.OptionLog(log.New(s.logger.Writer(), "slack: ", defaultLogFlag)),
	)

	timeLoc, err := config.GetTimeLocation(s.config)
	if err != nil {
		return err
	}

	uf, err := NewCachingUserInfoFinder(s.config, api, s.log)
	if err != nil {
		return err
	}

	rtm := api.NewRTM()
	go rtm.ManageConnection()

	driver := newChatDriverWithTelemetry(api, s.name, s.meter)
	s.prepare(chatMessageSender{sender: driver, log: s.log}, uf)

	sc, err := s.newActionScheduler(timeLoc)
	if err != nil {
		return err
	}
	stopScheduler := sc.Start()
	defer close(stopScheduler)

	go s.watchForTerminationSignalToAbort(rtm.IncomingEvents)

	return s.processIncomingEvents(rtm.IncomingEvents, driver, rtm)
}

// prepare adds the help plugin, injects services into every plugin and indexes their actions.
// It must be called once all plugins are registered
func (s *Teabot) prepare(sender RealTimeMessageSender, uf UserInfoFinder) {
	help := s.newHelpPlugin(VERSION)
	s.RegisterPlugin(&help.Plugin)

	for _, p := range s.plugins {
		p.BotServices = BotServices{Logger: s.log.withPrefix(p.Name), RealTimeMsgSender: sender, UserInfoFinder: uf}
		s.instrumenter.registerPlugin(p.Name)
	}

	s.attachIdentifiersToPluginActions()
}

// watchForTerminationSignalToAbort waits for a SIGTERM or SIGINT and queues a termination event to end
// the processing of events
func (s *Teabot) watchForTerminationSignalToAbort(events chan<- slack.RTMEvent) {
	tSignals := make(chan os.Signal, 1)
	signal.Notify(tSignals, syscall.SIGINT, syscall.SIGTERM)
	sig := <-tSignals

	s.log.Printf("Received termination signal [%s], shutting down\n", sig)
	events <- slack.RTMEvent{Type: "termination", Data: &terminationEvent{}}
}

// processIncomingEvents loops over incoming events until a termination event or invalid credentials. Message
// events are processed by the partition workers which are drained before returning
func (s *Teabot) processIncomingEvents(events <-chan slack.RTMEvent, driver chatDriver, sif selfInfoFinder) (err error) {
	pr, err := newPartitionRouter(s.config.GetInt(config.MessageProcessingPartitionCount), s.config.GetInt(config.MessageProcessingBufferedMessageCount), s.log, s.instrumenter)
	if err != nil {
		return err
	}

	pr.start(func(msgEvent slack.MessageEvent) {
		s.processMessageEvent(driver, &msgEvent)
	})
	defer pr.stop()

	for msg := range events {
		switch e := msg.Data.(type) {
		case *slack.ConnectedEvent:
			s.log.Printf("RTM api connected (connection count: %d)\n", e.ConnectionCount)
			s.cacheSelfIdentity(sif)

		case *slack.DisconnectedEvent:
			s.log.Printf("RTM api closed (intentional: %t): %v\n", e.Intentional, e.Cause)

		case *slack.MessageEvent:
			s.coreMetrics.msgsSeen.Add(context.Background(), 1)
			pr.routeMessageEvent(*e)

		case *slack.ChannelJoinedEvent:
			s.processChannelJoin(driver, e.Channel.ID)

		case *slack.MemberJoinedChannelEvent:
			if e.User == s.self().id {
				s.processChannelJoin(driver, e.Channel)
			}

		case *slack.LatencyReport:
			s.log.Debugf("Current latency: %v\n", e.Value)
			s.instrumenter.recordSlackLatency(e.Value)

		case *slack.RTMError:
			s.log.Printf("Error: %s\n", e.Error())

		case *slack.InvalidAuthEvent:
			return fmt.Errorf("Invalid credentials, unable to connect to slack")

		case *terminationEvent:
			s.log.Debugf("Termination event received, done processing events\n")
			return nil

		default:
			// Ignore other events
		}
	}

	return nil
}

// cacheSelfIdentity keeps our own identity and the pattern of messages directed at us
func (s *Teabot) cacheSelfIdentity(sif selfInfoFinder) {
	info := sif.GetInfo()
	if info == nil || info.User == nil {
		s.log.Printf("Unable to find self identity, ignoring\n")
		return
	}

	id := selfIdentity{id: info.User.ID, name: info.User.Name}
	id.directedAtUs = regexp.MustCompile(fmt.Sprintf("(?s)^(<@%s>|@?%s):? (.+)", regexp.QuoteMeta(id.id), regexp.QuoteMeta(id.name)))
	s.identity.Store(id)

	s.log.Debugf("Caching self id [%s] and self name [%s]\n", id.id, id.name)
}

func (s *Teabot) self() selfIdentity {
	if id, ok := s.identity.Load().(selfIdentity); ok {
		return id
	}

	return selfIdentity{}
}

// attachIdentifiersToPluginActions indexes every plugin action with an identifier stable for the duration
// of an execution:
//  - pluginName.c[pluginIndexOfTheCommand] for commands
//  - pluginName.h[pluginIndexOfTheHearAction] for hear actions
func (s *Teabot) attachIdentifiersToPluginActions() {
	s.commandsWithID = make([]ActionDefinitionWithID, 0)
	s.hearActionsWithID = make([]ActionDefinitionWithID, 0)

	for _, p := range s.plugins {
		for i, c := range p.Commands {
			s.commandsWithID = append(s.commandsWithID, ActionDefinitionWithID{ActionDefinition: c, pluginName: p.Name, id: fmt.Sprintf("%s.c[%d]", p.Name, i)})
		}

		for i, h := range p.HearActions {
			s.hearActionsWithID = append(s.hearActionsWithID, ActionDefinitionWithID{ActionDefinition: h, pluginName: p.Name, id: fmt.Sprintf("%s.h[%d]", p.Name, i)})
		}
	}
}

// newActionScheduler registers every plugin's scheduled actions with a new scheduler. The caller starts it
func (s *Teabot) newActionScheduler(timeLoc *time.Location) (sc *gocron.Scheduler, err error) {
	gocron.ChangeLoc(timeLoc)
	sc = gocron.NewScheduler()

	for _, p := range s.plugins {
		pm := s.instrumenter.pluginMetrics[p.Name]

		for _, sa := range p.ScheduledActions {
			j, err := schedule.NewJob(sc, sa.Schedule)
			if err != nil {
				return nil, fmt.Errorf("Error scheduling action [%s] of plugin [%s]: %w", sa.Description, p.Name, err)
			}

			action := sa.Action
			s.log.Debugf("Adding job [%s] of plugin [%s] to scheduler\n", sa.Schedule, p.Name)
			j.Do(func() {
				pm.scheduledRuns.Add(context.Background(), 1)
				action()
			})
		}
	}

	return sc, nil
}

// processChannelJoin posts the channel join answers of plugins to a channel we just joined
func (s *Teabot) processChannelJoin(sender messageSender, channelID string) {
	s.log.Debugf("Joined channel [%s]\n", channelID)
	s.coreMetrics.channelJoins.Add(context.Background(), 1)

	for _, p := range s.plugins {
		if p.OnChannelJoin == nil {
			continue
		}

		if answer := p.OnChannelJoin(channelID); answer != nil {
			o := &OutgoingMessage{Answer: answer, channelID: channelID, pluginIdentifier: p.Name + ".join"}
			if _, err := s.sendNewMessage(sender, o); err != nil {
				s.log.Printf("Unable to send channel join message of plugin [%s] to [%s]: %v\n", p.Name, channelID, err)
			}
		}
	}
}

// processMessageEvent handles high-level processing of all slack message events
func (s *Teabot) processMessageEvent(driver chatDriver, msgEvent *slack.MessageEvent) {
	// reply_to is set by slack when acknowledging a message we sent
	isReply := msgEvent.ReplyTo > 0

	s.log.Debugf("Processing event: %v\n", msgEvent)

	if isReply || msgEvent.Type != messageType {
		return
	}

	var msgType string
	d := measure(func() {
		switch msgEvent.SubType {
		case msgSubTypeDeleted:
			msgType = deleteMsgType
			s.processDeletedMessage(driver, msgEvent)
		case msgSubTypeChanged:
			msgType = updateMsgType
			s.processUpdatedMessage(driver, msgEvent)
		default:
			msgType = newMsgType
			s.processNewMessage(driver, msgEvent)
		}
	})

	ctx := context.Background()
	s.coreMetrics.msgsProcessed[msgType].Add(ctx, 1)
	s.coreMetrics.msgProcessingLatencyMillis[msgType].Record(ctx, d.Milliseconds())
}

// processUpdatedMessage processes changed messages:
//  1. A message without responses in cache is processed like a new message
//  2. A message with cached responses gets them updated per plugin action. Responses of stateful actions are
//     kept untouched. Responses of actions not triggering anymore are deleted and responses of newly triggered
//     actions are sent as new messages
//  3. The new state of responses replaces the previous one in the cache
func (s *Teabot) processUpdatedMessage(driver chatDriver, msgEvent *slack.MessageEvent) {
	if msgEvent.SubMessage == nil {
		s.log.Debugf("Ignoring changed message without a sub message: %v\n", msgEvent)
		return
	}

	editedMsgID := getOriginalMessageID(*msgEvent)
	cachedResponses, exists := s.triggeringMsgToResponses.Get(editedMsgID)
	if !exists {
		s.sendOutgoingMessages(driver, editedMsgID, s.routeMessage(combineIncomingMessageToHandle(msgEvent), nil))
		return
	}

	responsesByAction := make(map[string]SlackMessageID)
	for id, r := range cachedResponses.(map[string]SlackMessageID) {
		responsesByAction[id] = r
	}
	newResponseByActionID := s.keepStatefulResponses(responsesByAction)

	s.log.Debugf("Detected %d existing responses to message [%s]\n", len(responsesByAction)+len(newResponseByActionID), editedMsgID)

	for _, o := range s.routeMessage(combineIncomingMessageToHandle(msgEvent), newResponseByActionID) {
		if r, ok := responsesByAction[o.pluginIdentifier]; ok {
			rID, err := s.updateExistingMessage(driver, r, o)
			if err != nil {
				s.log.Printf("Unable to update message [%s] to triggering message [%s]: %v\n", r, editedMsgID, err)
				continue
			}

			newResponseByActionID[o.pluginIdentifier] = rID
			delete(responsesByAction, o.pluginIdentifier)
		} else {
			rID, err := s.sendNewMessage(driver, o)
			if err != nil {
				s.log.Printf("Unable to send new message to updated message [%s]: %v\n", editedMsgID, err)
				continue
			}

			if rID != (SlackMessageID{}) {
				newResponseByActionID[o.pluginIdentifier] = rID
			}
		}
	}

	// Whatever is left isn't triggered anymore
	for _, r := range responsesByAction {
		if _, _, err := driver.DeleteMessage(r.channelID, r.timestamp); err != nil {
			s.log.Printf("Unable to delete response [%s] not triggered anymore by [%s]: %v\n", r, editedMsgID, err)
		}
	}

	if len(newResponseByActionID) > 0 {
		s.triggeringMsgToResponses.Add(editedMsgID, newResponseByActionID)
	} else {
		s.triggeringMsgToResponses.Remove(editedMsgID)
	}
}

// keepStatefulResponses moves the responses of stateful actions out of responsesByAction and returns them
func (s *Teabot) keepStatefulResponses(responsesByAction map[string]SlackMessageID) (kept map[string]SlackMessageID) {
	kept = make(map[string]SlackMessageID)

	for _, actions := range [][]ActionDefinitionWithID{s.commandsWithID, s.hearActionsWithID} {
		for _, a := range actions {
			if r, ok := responsesByAction[a.id]; ok && a.Stateful {
				kept[a.id] = r
				delete(responsesByAction, a.id)
			}
		}
	}

	return kept
}

// processDeletedMessage deletes any responses triggered by a message that was just deleted
func (s *Teabot) processDeletedMessage(deleter messageDeleter, msgEvent *slack.MessageEvent) {
	deletedMsgID := getOriginalMessageID(*msgEvent)

	if existingResponses, exists := s.triggeringMsgToResponses.Get(deletedMsgID); exists {
		for _, r := range existingResponses.(map[string]SlackMessageID) {
			if _, _, err := deleter.DeleteMessage(r.channelID, r.timestamp); err != nil {
				s.log.Printf("Error deleting response [%s] to deleted message [%s]: %v\n", r, deletedMsgID, err)
			}
		}

		s.triggeringMsgToResponses.Remove(deletedMsgID)
	}
}

// processNewMessage handles a regular new message and sends any triggered response
func (s *Teabot) processNewMessage(sender messageSender, msgEvent *slack.MessageEvent) {
	incomingMsgID := getOriginalMessageID(*msgEvent)
	m := &IncomingMessage{NormalizedText: msgEvent.Text, Msg: msgEvent.Msg}

	s.sendOutgoingMessages(sender, incomingMsgID, s.routeMessage(m, nil))
}

// sendOutgoingMessages sends out triggered plugin responses and keeps track of those in the cache
func (s *Teabot) sendOutgoingMessages(sender messageSender, incomingMsgID SlackMessageID, outMsgs []*OutgoingMessage) {
	newResponseByActionID := make(map[string]SlackMessageID)

	for _, o := range outMsgs {
		rID, err := s.sendNewMessage(sender, o)
		if err != nil {
			s.log.Printf("Unable to send new message triggered by [%s]: %v\n", incomingMsgID, err)
			continue
		}

		// Ephemeral messages can't be updated or deleted
		if rID != (SlackMessageID{}) {
			newResponseByActionID[o.pluginIdentifier] = rID
		}
	}

	if len(newResponseByActionID) > 0 {
		s.log.Debugf("Adding responses to triggering message [%s]: %v\n", incomingMsgID, newResponseByActionID)
		s.triggeringMsgToResponses.Add(incomingMsgID, newResponseByActionID)
	}
}

// sendNewMessage sends a new outgoing message and returns its identifier. Ephemeral messages get an empty identifier
func (s *Teabot) sendNewMessage(sender messageSender, o *OutgoingMessage) (rID SlackMessageID, err error) {
	sendOpts := ApplyAnswerOpts(o.Options...)
	options := append(contentOptions(o.Answer), s.threadingOptions(o, sendOpts)...)

	userID, ephemeral := sendOpts[EphemeralAnswerToOpt]
	if ephemeral {
		options = append(options, slack.MsgOptionPostEphemeral(userID))
	}

	channelID, timestamp, _, err := sender.SendMessage(o.channelID, options...)
	if err != nil || ephemeral {
		return SlackMessageID{}, err
	}

	return SlackMessageID{channelID: channelID, timestamp: timestamp}, nil
}

// updateExistingMessage updates an existing response with the content of a newly triggered OutgoingMessage
func (s *Teabot) updateExistingMessage(updater messageUpdater, r SlackMessageID, o *OutgoingMessage) (rID SlackMessageID, err error) {
	channelID, timestamp, _, err := updater.UpdateMessage(r.channelID, r.timestamp, contentOptions(o.Answer)...)

	return SlackMessageID{channelID: channelID, timestamp: timestamp}, err
}

// contentOptions returns the message options for the text and attachments of an answer. Names are linked
// and the text is fully parsed so "@name" mentions and channel names render as links
func contentOptions(a *Answer) (options []slack.MsgOption) {
	options = []slack.MsgOption{
		slack.MsgOptionText(a.Text, false),
		slack.MsgOptionPostMessageParameters(slack.PostMessageParameters{AsUser: true, LinkNames: 1, Parse: "full"}),
	}

	if len(a.Attachments) > 0 {
		options = append(options, slack.MsgOptionAttachments(a.Attachments...))
	}

	return options
}

// threadingOptions returns the threading options of an outgoing message. Answers in thread are threaded
// whatever the configured default
func (s *Teabot) threadingOptions(o *OutgoingMessage, sendOpts map[string]string) (options []slack.MsgOption) {
	threaded := s.config.GetBool(config.ThreadedRepliesKey) || sendOpts[ThreadedReplyOpt] == "true"
	if !threaded || o.threadTimestamp == "" {
		return nil
	}

	options = append(options, slack.MsgOptionTS(o.threadTimestamp))

	if s.config.GetBool(config.BroadcastThreadedRepliesKey) {
		options = append(options, slack.MsgOptionBroadcast())
	}

	return options
}

// combineIncomingMessageToHandle combines a changed message with its sub message into what a bot intuitively
// processes: the message as visible in its channel with the updated text and the user who updated it
func combineIncomingMessageToHandle(messageEvent *slack.MessageEvent) (m *IncomingMessage) {
	combined := messageEvent.Msg
	combined.Text = messageEvent.SubMessage.Text
	combined.User = messageEvent.SubMessage.User
	combined.Timestamp = messageEvent.SubMessage.Timestamp
	combined.ThreadTimestamp = messageEvent.SubMessage.ThreadTimestamp

	return &IncomingMessage{NormalizedText: combined.Text, Msg: combined}
}

// routeMessage routes a message to commands or hear actions:
//  1. A message starting with a mention of us (<@id> or @name) goes to commands without that mention
//  2. A direct message goes to commands as is
//  3. A message mentioning us anywhere else goes to commands without the mention
//  4. Any other message goes to hear actions
//
// Actions with a response in kept are not invoked
func (s *Teabot) routeMessage(m *IncomingMessage, kept map[string]SlackMessageID) (responses []*OutgoingMessage) {
	self := s.self()

	if self.id != "" && m.User == self.id {
		s.log.Debugf("Ignoring message from user [%s] because that's us\n", m.User)
		return nil
	}

	mention := fmt.Sprintf("<@%s>", self.id)

	if self.directedAtUs != nil {
		if matches := self.directedAtUs.FindStringSubmatch(m.Text); len(matches) == 3 {
			m.NormalizedText = matches[2]
			return s.handleCommand(m, kept)
		}
	}

	if len(m.Channel) > 0 && m.Channel[0] == directChannelTag {
		return s.handleCommand(m, kept)
	}

	if self.id != "" && strings.Contains(m.Text, mention) {
		m.NormalizedText = strings.TrimSpace(strings.Replace(m.Text, mention, "", -1))
		return s.handleCommand(m, kept)
	}

	outMsgs, _ := s.handleMessage(s.hearActionsWithID, m, kept)

	return outMsgs
}

// handleCommand tries all commands and falls back on the default answer when none answers
func (s *Teabot) handleCommand(m *IncomingMessage, kept map[string]SlackMessageID) (outMsgs []*OutgoingMessage) {
	outMsgs, keptCount := s.handleMessage(s.commandsWithID, m, kept)
	if len(outMsgs) == 0 && keptCount == 0 {
		if answer := s.defaultAction(m); answer != nil {
			return []*OutgoingMessage{newOutgoingMessage(answer, m, defaultActionID)}
		}
	}

	return outMsgs
}

// handleMessage invokes every action matching the message, skipping those with a kept response.
// More than one action can answer a single message
func (s *Teabot) handleMessage(actions []ActionDefinitionWithID, m *IncomingMessage, kept map[string]SlackMessageID) (outMsgs []*OutgoingMessage, keptCount int) {
	outMsgs = make([]*OutgoingMessage, 0)

	for _, action := range actions {
		if _, ok := kept[action.id]; ok {
			keptCount++
			continue
		}

		if !action.Match(m) {
			continue
		}

		var answer *Answer
		d := measure(func() {
			answer = action.Answer(m)
		})

		ctx := context.Background()
		pm := s.instrumenter.pluginMetrics[action.pluginName]
		pm.processingTimeMillis.Record(ctx, d.Milliseconds())

		if answer != nil {
			pm.reactionCount.Add(ctx, 1)
			outMsgs = append(outMsgs, newOutgoingMessage(answer, m, action.id))
		}
	}

	return outMsgs, keptCount
}

func newOutgoingMessage(answer *Answer, m *IncomingMessage, pluginIdentifier string) *OutgoingMessage {
	threadTimestamp := m.ThreadTimestamp
	if threadTimestamp == "" {
		threadTimestamp = m.Timestamp
	}

	return &OutgoingMessage{Answer: answer, channelID: m.Channel, threadTimestamp: threadTimestamp, pluginIdentifier: pluginIdentifier}
}
