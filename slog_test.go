package teabot

import (
	"github.com/stretchr/testify/assert"
	"log"
	"strings"
	"testing"
)

func TestLogWhenDebugEnabled(t *testing.T) {
	var b strings.Builder
	slog := NewSLogger(log.New(&b, "", 0), true)

	slog.Debugf("Brewing a pot of %s\n", "rooibos")

	assert.Equal(t, "Brewing a pot of rooibos\n", b.String())
}

func TestLogWhenDebugDisabled(t *testing.T) {
	var b strings.Builder
	slog := NewSLogger(log.New(&b, "", 0), false)

	slog.Debugf("Brewing a pot of %s\n", "rooibos")

	// Nothing should have been logged
	assert.Equal(t, "", b.String())
}

func TestPrintfLogsRegardlessOfDebug(t *testing.T) {
	for _, debug := range []bool{true, false} {
		var b strings.Builder
		slog := NewSLogger(log.New(&b, "", 0), debug)

		slog.Printf("Brewing a pot of %s\n", "rooibos")

		assert.Equal(t, "Brewing a pot of rooibos\n", b.String())
	}
}

func TestPrefixedLogger(t *testing.T) {
	var b strings.Builder
	slog := NewSLogger(log.New(&b, "", 0), true).withPrefix("tearota").withPrefix("scheduler")

	slog.Printf("Tea time in [%s]\n", "C0TEA")
	slog.Debugf("Nobody answered\n")

	assert.Equal(t, "[tearota] [scheduler] Tea time in [C0TEA]\n[tearota] [scheduler] Nobody answered\n", b.String())
}

func TestLogFlagsReportCallerFile(t *testing.T) {
	var b strings.Builder
	slog := NewSLogger(log.New(&b, "", log.Lshortfile), false)

	slog.Printf("Kettle on\n")

	assert.True(t, strings.HasPrefix(b.String(), "slog_test.go:"), "Expected caller file to be the test file but got [%s]", b.String())
}
