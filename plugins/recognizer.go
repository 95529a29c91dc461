package plugins

import (
	"fmt"
	"regexp"
	"strings"
)

// Command is a command recognized in the text of a message
type Command int

// Recognized commands
const (
	CommandUnknown Command = iota
	CommandGreet
	CommandGenerate
	CommandNext
)

var commandNames = map[Command]string{
	CommandUnknown:  "unknown",
	CommandGreet:    "greet",
	CommandGenerate: "generate",
	CommandNext:     "next",
}

func (c Command) String() string {
	if n, ok := commandNames[c]; ok {
		return n
	}

	return fmt.Sprintf("command(%d)", int(c))
}

// Recognizer maps the text of a message to a Command. ok is false when nothing is recognized
type Recognizer interface {
	Recognize(text string) (c Command, ok bool)
}

type keywordSet struct {
	command  Command
	keywords []string
	pattern  *regexp.Regexp
}

// KeywordRecognizer recognizes commands by keywords. Keyword sets are evaluated in the order they
// were added and the first one with a keyword present in the text, as a whole word and ignoring case, wins
type KeywordRecognizer struct {
	sets []keywordSet
}

// NewKeywordRecognizer returns a KeywordRecognizer with no keywords
func NewKeywordRecognizer() (kr *KeywordRecognizer) {
	return new(KeywordRecognizer)
}

// NewDefaultRecognizer returns the KeywordRecognizer with the teabot vocabulary
func NewDefaultRecognizer() (kr *KeywordRecognizer) {
	return NewKeywordRecognizer().
		WithKeywords(CommandGreet, "hello", "hi", "greetings", "hey").
		WithKeywords(CommandGenerate, "generate", "rota", "new").
		WithKeywords(CommandNext, "next", "want", "who", "tea")
}

// WithKeywords adds a keyword set recognized as command c
func (kr *KeywordRecognizer) WithKeywords(c Command, keywords ...string) *KeywordRecognizer {
	quoted := make([]string, 0, len(keywords))
	for _, k := range keywords {
		quoted = append(quoted, regexp.QuoteMeta(k))
	}

	kr.sets = append(kr.sets, keywordSet{command: c, keywords: keywords, pattern: regexp.MustCompile(fmt.Sprintf(`(?i)\b(?:%s)\b`, strings.Join(quoted, "|")))})
	return kr
}

// Keywords returns the keywords recognized as command c
func (kr *KeywordRecognizer) Keywords(c Command) (keywords []string) {
	for _, s := range kr.sets {
		if s.command == c {
			keywords = append(keywords, s.keywords...)
		}
	}

	return keywords
}

// Recognize returns the command of the first keyword set matching text
func (kr *KeywordRecognizer) Recognize(text string) (c Command, ok bool) {
	for _, s := range kr.sets {
		if s.pattern.MatchString(text) {
			return s.command, true
		}
	}

	return CommandUnknown, false
}
