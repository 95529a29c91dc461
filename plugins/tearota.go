package plugins

import (
	"errors"
	"fmt"
	"github.com/slack-go/slack"
	"github.com/teamaker/teabot"
	"github.com/teamaker/teabot/actions"
	"github.com/teamaker/teabot/config"
	"github.com/teamaker/teabot/plugin"
	"github.com/teamaker/teabot/rota"
	"github.com/teamaker/teabot/schedule"
	"math/rand"
	"regexp"
	"strings"
	"sync"
	"time"
)

const (
	// TeaRotaPluginName holds identifying name for the tea rota plugin
	TeaRotaPluginName = "teaRota"
)

// Configuration keys
const (
	rosterKey     = "roster"
	channelIDsKey = "channelIDs"
	atTimeKey     = "atTime"
)

const (
	defaultTeaCallTime = "15:00"
	rotaColor          = "#36a64f"
	rotaPretext        = "Okay, gang! Let's get this kettle on the road :raised_hands:\n Today's tea rota is..."
	namePlaceholder    = "{name}"
)

// DefaultRoster is the roster used when none is configured
var DefaultRoster = []string{"@juma", "@adam", "@tahlia", "@ruth", "@lewis", "@rachel"}

var atTimeRegex = regexp.MustCompile(`\A([01]?\d|2[0-3]):[0-5]\d\z`)

var nextMakerTemplates = []string{
	"The next person to make a tea is {name}!",
	"It looks like {name}'s turn next!",
	"{name}! You're up!",
}

// MakerRecorder is told about every tea maker announced by the tea rota
type MakerRecorder interface {
	Record(maker string)
}

// TeaRota holds the plugin data for the tea rota plugin
type TeaRota struct {
	teabot.Plugin

	engine     *rota.Engine
	recognizer Recognizer
	recorders  []MakerRecorder

	randMu       sync.Mutex
	templateRand *rand.Rand
}

// TeaRotaOption defines an option for the tea rota plugin
type TeaRotaOption func(tr *TeaRota)

// OptionEngine sets the rota engine instead of one built from the configured roster
func OptionEngine(e *rota.Engine) TeaRotaOption {
	return func(tr *TeaRota) {
		tr.engine = e
	}
}

// OptionRecognizer sets the command recognizer. The default is NewDefaultRecognizer()
func OptionRecognizer(r Recognizer) TeaRotaOption {
	return func(tr *TeaRota) {
		tr.recognizer = r
	}
}

// OptionTemplateRand sets the random source used to pick an announcement template
func OptionTemplateRand(r *rand.Rand) TeaRotaOption {
	return func(tr *TeaRota) {
		tr.templateRand = r
	}
}

// OptionMakerRecorder adds a recorder told about each announced maker
func OptionMakerRecorder(r MakerRecorder) TeaRotaOption {
	return func(tr *TeaRota) {
		tr.recorders = append(tr.recorders, r)
	}
}

// NewTeaRota creates a new instance of the tea rota plugin. The roster is read from the plugin
// configuration (defaulting to DefaultRoster) and, when channelIDs are configured, a daily
// tea call is scheduled at atTime
func NewTeaRota(c *config.PluginConfig, opts ...TeaRotaOption) (p *teabot.Plugin, err error) {
	if atTime := c.GetString(atTimeKey); atTime != "" && !atTimeRegex.MatchString(atTime) {
		return nil, fmt.Errorf("Invalid [%s] value [%s] for plugin [%s], expected HH:MM", atTimeKey, atTime, TeaRotaPluginName)
	}

	tr := newTeaRota(c, opts...)

	return &tr.Plugin, nil
}

func newTeaRota(c *config.PluginConfig, opts ...TeaRotaOption) (tr *TeaRota) {
	c.SetDefault(rosterKey, DefaultRoster)
	c.SetDefault(atTimeKey, defaultTeaCallTime)

	tr = new(TeaRota)
	tr.recognizer = NewDefaultRecognizer()
	tr.templateRand = rand.New(rand.NewSource(time.Now().UnixNano()))

	for _, opt := range opts {
		opt(tr)
	}

	if tr.engine == nil {
		tr.engine = rota.New(readRoster(c))
	}

	pb := plugin.New(TeaRotaPluginName).
		WithCommand(actions.NewCommand().
			WithMatcher(tr.matchCommand(CommandGenerate)).
			WithUsage("generate").
			WithDescriptionf("Shuffle %s into a new tea rota", describeRoster(tr.engine.Roster())).
			WithAnswerer(tr.answerGenerate).
			Stateful().
			Build()).
		WithCommand(actions.NewCommand().
			WithMatcher(tr.matchCommand(CommandNext)).
			WithUsage("next").
			WithDescription("Find out whose turn it is to make tea").
			WithAnswerer(tr.answerNext).
			Stateful().
			Build())

	if channelIDs := c.GetStringSlice(channelIDsKey); len(channelIDs) > 0 {
		atTime := c.GetString(atTimeKey)

		pb.WithScheduledAction(actions.NewScheduledAction().
			WithSchedule(schedule.New().Every(schedule.Days).AtTime(atTime).Build()).
			WithDescriptionf("Call the next tea maker in %s", renderChannels(channelIDs)).
			WithAction(func() {
				tr.callForTea(channelIDs)
			}).
			Build())
	}

	tr.Plugin = *pb.Build()

	return tr
}

// readRoster returns the configured roster without empty identifiers
func readRoster(c *config.PluginConfig) (roster []string) {
	roster = make([]string, 0)
	for _, m := range c.GetStringSlice(rosterKey) {
		if m = strings.TrimSpace(m); m != "" {
			roster = append(roster, m)
		}
	}

	return roster
}

func describeRoster(roster []string) string {
	if len(roster) == 0 {
		return "nobody (yet)"
	}

	return strings.Join(roster, ", ")
}

func renderChannels(channelIDs []string) string {
	rendered := make([]string, 0, len(channelIDs))
	for _, id := range channelIDs {
		rendered = append(rendered, fmt.Sprintf("<#%s>", id))
	}

	return strings.Join(rendered, ", ")
}

func (tr *TeaRota) matchCommand(c Command) teabot.Matcher {
	return func(m *teabot.IncomingMessage) bool {
		recognized, ok := tr.recognizer.Recognize(m.NormalizedText)
		return ok && recognized == c
	}
}

func (tr *TeaRota) answerGenerate(m *teabot.IncomingMessage) *teabot.Answer {
	r, err := tr.engine.Generate()
	if err != nil {
		return tr.answerError(err)
	}

	tr.record(r.FirstUp)

	return &teabot.Answer{
		Text: rotaPretext,
		Attachments: []slack.Attachment{
			{Color: rotaColor, Text: strings.Join(r.Order, "\n")},
			{Text: fmt.Sprintf("You're up first, %s!", r.FirstUp)},
		}}
}

func (tr *TeaRota) answerNext(m *teabot.IncomingMessage) *teabot.Answer {
	next, err := tr.engine.Next()
	if err != nil {
		return tr.answerError(err)
	}

	tr.record(next)

	return &teabot.Answer{Text: tr.announceNext(next)}
}

func (tr *TeaRota) answerError(err error) *teabot.Answer {
	switch {
	case errors.Is(err, rota.ErrEmptyRoster):
		return &teabot.Answer{Text: fmt.Sprintf("There's nobody on the tea rota :cry: Add tea makers to `%s.%s.%s` and ask me again", config.PluginsKey, TeaRotaPluginName, rosterKey)}
	case errors.Is(err, rota.ErrNoRotation):
		return &teabot.Answer{Text: "There's no tea rota yet :thinking_face: Ask me to `generate` one first!"}
	}

	tr.Logger.Printf("Unexpected rota error: %v", err)
	return &teabot.Answer{Text: fmt.Sprintf("Sorry, I lost track of the tea rota. If you must know, this happened: %v", err)}
}

// announceNext renders one of the next maker templates picked at random
func (tr *TeaRota) announceNext(maker string) string {
	tr.randMu.Lock()
	template := nextMakerTemplates[tr.templateRand.Intn(len(nextMakerTemplates))]
	tr.randMu.Unlock()

	return strings.Replace(template, namePlaceholder, maker, -1)
}

func (tr *TeaRota) record(maker string) {
	for _, r := range tr.recorders {
		r.Record(maker)
	}
}

// callForTea advances the rota and announces the next maker in every channel
func (tr *TeaRota) callForTea(channelIDs []string) {
	next, err := tr.engine.Next()
	if err != nil {
		tr.Logger.Printf("Skipping tea call to %v: %v", channelIDs, err)
		return
	}

	tr.record(next)

	text := tr.announceNext(next)
	for _, channelID := range channelIDs {
		tr.Logger.Debugf("Sending tea call [%s] to [%s]", text, channelID)
		tr.RealTimeMsgSender.SendMessage(tr.RealTimeMsgSender.NewOutgoingMessage(text, channelID))
	}
}
