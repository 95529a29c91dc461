package plugins

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"github.com/teamaker/teabot"
	"github.com/teamaker/teabot/actions"
	"github.com/teamaker/teabot/plugin"
	"github.com/teamaker/teabot/store"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"sync"
	"text/tabwriter"
)

const (
	// TeaTallyPluginName holds identifying name for the tea tally plugin
	TeaTallyPluginName = "teaTally"
)

var tallyRegex = regexp.MustCompile(`(?i)\Atally\z`)
var tallyResetRegex = regexp.MustCompile(`(?i)\Atally reset\z`)

// TeaTally holds the plugin data for the tea tally plugin. It counts the rounds of tea announced for
// each maker and implements MakerRecorder
type TeaTally struct {
	teabot.Plugin

	mu     sync.Mutex
	storer store.StringStorer
}

// NewTeaTally creates a new instance of the tea tally plugin persisting counts with storer
func NewTeaTally(storer store.StringStorer) (tt *TeaTally) {
	tt = new(TeaTally)
	tt.storer = storer

	tt.Plugin = *plugin.New(TeaTallyPluginName).
		WithCommand(actions.NewCommand().
			WithMatcher(func(m *teabot.IncomingMessage) bool {
				return tallyRegex.MatchString(strings.TrimSpace(m.NormalizedText))
			}).
			WithUsage("tally").
			WithDescription("Show who made the most rounds of tea").
			WithAnswerer(tt.answerTally).
			Build()).
		WithCommand(actions.NewCommand().
			WithMatcher(func(m *teabot.IncomingMessage) bool {
				return tallyResetRegex.MatchString(strings.TrimSpace(m.NormalizedText))
			}).
			WithUsage("tally reset").
			WithDescription("Start counting rounds of tea from zero").
			WithAnswerer(tt.answerReset).
			Build()).
		Build()

	return tt
}

// Record adds one round of tea to maker's tally. Errors are logged
func (tt *TeaTally) Record(maker string) {
	tt.mu.Lock()
	defer tt.mu.Unlock()

	count := 0
	rawValue, err := tt.storer.GetString(maker)
	if err == nil {
		count, err = strconv.Atoi(rawValue)
		if err != nil {
			tt.Logger.Printf("Error parsing tally [%s] of [%s], resetting it to 0: %v", rawValue, maker, err)
			count = 0
		}
	} else if !errors.Is(err, store.ErrNotFound) {
		tt.Logger.Printf("Error loading tally of [%s]: %v", maker, err)
		return
	}

	if err = tt.storer.PutString(maker, strconv.Itoa(count+1)); err != nil {
		tt.Logger.Printf("Error persisting tally of [%s]: %v", maker, err)
	}
}

func (tt *TeaTally) answerTally(m *teabot.IncomingMessage) *teabot.Answer {
	entries, err := tt.storer.Scan()
	if err != nil {
		return &teabot.Answer{Text: fmt.Sprintf("Sorry, I couldn't get the tea tally for you. If you must know, this happened: %v", err)}
	}

	pl, err := rankMakers(entries)
	if err != nil {
		return &teabot.Answer{Text: fmt.Sprintf("Sorry, I couldn't get the tea tally for you. If you must know, this happened: %v", err)}
	}

	if len(pl) == 0 {
		return &teabot.Answer{Text: "Nobody made tea yet :disappointed:"}
	}

	return &teabot.Answer{Text: fmt.Sprintf("Here are the rounds of tea made so far:\n%s", formatTally(pl))}
}

func (tt *TeaTally) answerReset(m *teabot.IncomingMessage) *teabot.Answer {
	tt.mu.Lock()
	defer tt.mu.Unlock()

	entries, err := tt.storer.Scan()
	if err != nil {
		return &teabot.Answer{Text: fmt.Sprintf("Sorry, I couldn't reset the tea tally. If you must know, this happened: %v", err)}
	}

	for maker := range entries {
		if err = tt.storer.DeleteString(maker); err != nil {
			return &teabot.Answer{Text: fmt.Sprintf("Sorry, I couldn't reset the tea tally. If you must know, this happened: %v", err)}
		}
	}

	return &teabot.Answer{Text: "The tea tally is back to zero :wastebasket:"}
}

type makerCount struct {
	Maker string
	Count int
}

type makerCounts []makerCount

func (mc makerCounts) Len() int { return len(mc) }

// Less ranks higher counts first and breaks ties by name
func (mc makerCounts) Less(i, j int) bool {
	return mc[i].Count > mc[j].Count || (mc[i].Count == mc[j].Count && strings.Compare(mc[i].Maker, mc[j].Maker) < 0)
}

func (mc makerCounts) Swap(i, j int) { mc[i], mc[j] = mc[j], mc[i] }

func rankMakers(entries map[string]string) (ranked makerCounts, err error) {
	ranked = make(makerCounts, 0, len(entries))
	for maker, rawValue := range entries {
		count, err := strconv.Atoi(rawValue)
		if err != nil {
			return nil, fmt.Errorf("invalid tally [%s] for [%s]: %w", rawValue, maker, err)
		}

		ranked = append(ranked, makerCount{Maker: maker, Count: count})
	}

	sort.Sort(ranked)

	return ranked, nil
}

func formatTally(ranked makerCounts) string {
	var b bytes.Buffer
	b.WriteString("```")
	w := new(tabwriter.Writer)
	bufw := bufio.NewWriter(&b)
	w.Init(bufw, 5, 0, 1, ' ', 0)
	for _, mc := range ranked {
		fmt.Fprintf(w, "%d\t%s\n", mc.Count, mc.Maker)
	}
	fmt.Fprintf(w, "```\n")

	w.Flush()
	bufw.Flush()
	return b.String()
}
