package teabot

import (
	"fmt"
	"log"
)

// SLogger is the teabot logging interface. Plugins get one injected via their BotServices
type SLogger interface {
	Printf(format string, v ...interface{})

	Debugf(format string, v ...interface{})
}

type sLogger struct {
	logger *log.Logger
	prefix string
	debug  bool
}

// NewSLogger creates a new teabot logger writing to log. Debug lines are only written when debug is true
func NewSLogger(log *log.Logger, debug bool) (l *sLogger) {
	l = new(sLogger)
	l.debug = debug
	l.logger = log

	return l
}

// withPrefix returns a logger sharing the same output and debug flag but writing every line
// with "[prefix] " in front of it
func (sl *sLogger) withPrefix(prefix string) (l *sLogger) {
	l = NewSLogger(sl.logger, sl.debug)
	l.prefix = fmt.Sprintf("%s[%s] ", sl.prefix, prefix)

	return l
}

// Debugf logs a debug line when debug is enabled
func (sl *sLogger) Debugf(format string, v ...interface{}) {
	if sl.debug {
		sl.output(format, v...)
	}
}

// Printf logs a line
func (sl *sLogger) Printf(format string, v ...interface{}) {
	sl.output(format, v...)
}

func (sl *sLogger) output(format string, v ...interface{}) {
	sl.logger.Output(3, sl.prefix+fmt.Sprintf(format, v...))
}
