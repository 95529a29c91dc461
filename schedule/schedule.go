// Package schedule defines when scheduled teabot actions run and maps those definitions to gocron jobs
package schedule

import (
	"fmt"
	"github.com/marcsantiago/gocron"
	"strings"
	"time"
)

// Definition represents when a scheduled action runs
type Definition struct {
	// Interval value (every 1 minute would be expressed with an interval of 1). Must be set explicitly or implicitly (a weekday value implicitly sets the interval to 1)
	Interval uint64

	// Must be set explicitly or implicitly ("weeks" is implicitly set when "Weekday" is set). Valid time units are: "weeks", "hours", "days", "minutes", "seconds"
	Unit string

	// Optional day of the week. If set, unit and interval are ignored and implicitly considered to be "every 1 week"
	Weekday string

	// Optional "at time" value (i.e. "10:30")
	AtTime string
}

// Unit values
const (
	Weeks   = "weeks"
	Hours   = "hours"
	Days    = "days"
	Minutes = "minutes"
	Seconds = "seconds"
)

var weekdays = map[string]func(j *gocron.Job) *gocron.Job{
	time.Monday.String():    (*gocron.Job).Monday,
	time.Tuesday.String():   (*gocron.Job).Tuesday,
	time.Wednesday.String(): (*gocron.Job).Wednesday,
	time.Thursday.String():  (*gocron.Job).Thursday,
	time.Friday.String():    (*gocron.Job).Friday,
	time.Saturday.String():  (*gocron.Job).Saturday,
	time.Sunday.String():    (*gocron.Job).Sunday,
}

var units = map[string]func(j *gocron.Job) *gocron.Job{
	Weeks:   (*gocron.Job).Weeks,
	Hours:   (*gocron.Job).Hours,
	Days:    (*gocron.Job).Days,
	Minutes: (*gocron.Job).Minutes,
	Seconds: (*gocron.Job).Seconds,
}

// Builder holds a Definition to build
type Builder struct {
	definition Definition
}

// New returns a Builder for a Definition running every 1 unit by default
func New() (b *Builder) {
	b = new(Builder)
	b.definition = Definition{Interval: 1}

	return b
}

// Every sets the unit (or weekday) of the schedule
func (b *Builder) Every(unitOrWeekday string) *Builder {
	if _, ok := weekdays[unitOrWeekday]; ok {
		b.definition.Weekday = unitOrWeekday
		b.definition.Unit = Weeks
		b.definition.Interval = 1
	} else {
		b.definition.Unit = unitOrWeekday
	}

	return b
}

// EveryN sets an interval along with its unit
func (b *Builder) EveryN(interval uint64, unit string) *Builder {
	b.definition.Interval = interval
	b.definition.Unit = unit

	return b
}

// AtTime sets the time of day (i.e. "15:00")
func (b *Builder) AtTime(atTime string) *Builder {
	b.definition.AtTime = atTime

	return b
}

// Build returns the Definition
func (b *Builder) Build() Definition {
	return b.definition
}

// String returns a human-friendly string for the Definition
func (d Definition) String() string {
	var b strings.Builder

	fmt.Fprintf(&b, "Every ")

	if d.Weekday != "" {
		fmt.Fprintf(&b, "%s", d.Weekday)
	} else if d.Interval == 1 {
		fmt.Fprintf(&b, "%s", strings.TrimSuffix(d.Unit, "s"))
	} else {
		fmt.Fprintf(&b, "%d %s", d.Interval, d.Unit)
	}

	if d.AtTime != "" {
		fmt.Fprintf(&b, " at %s", d.AtTime)
	}

	return b.String()
}

// NewJob sets up the gocron.Job with the schedule and leaves the task undefined for the caller to set up
func NewJob(s *gocron.Scheduler, d Definition) (j *gocron.Job, err error) {
	interval := uint64(1)
	setUnit, ok := weekdays[d.Weekday]
	if !ok {
		interval = d.Interval
		if setUnit, ok = units[d.Unit]; !ok {
			return nil, fmt.Errorf("Invalid schedule [%s]: unit [%s] isn't one of weeks, days, hours, minutes or seconds", d, d.Unit)
		}
	}

	j = setUnit(s.Every(interval, false))

	if d.AtTime != "" {
		j = j.At(d.AtTime)
	}

	if j.Err() != nil {
		return nil, j.Err()
	}

	return j, nil
}
