// Package rota keeps track of "who makes tea next". An Engine holds a fixed roster, shuffles it into a
// rotation order on demand and hands out the next person in that order, wrapping around once everyone
// had their turn.
//
// The engine knows nothing about chat: it returns plain identifiers and leaves the wording of
// announcements to its caller.
package rota

import (
	"errors"
	"math/rand"
	"sync"
	"time"
)

var (
	// ErrEmptyRoster is returned when generating a rotation for a roster without anyone on it
	ErrEmptyRoster = errors.New("rota: the roster is empty")

	// ErrNoRotation is returned when asking for the next person before any rotation was generated
	ErrNoRotation = errors.New("rota: no rotation generated yet")
)

// Rotation is a snapshot of a freshly generated rotation order
type Rotation struct {
	// Order is a permutation of the roster
	Order []string

	// FirstUp is the person at the start of Order
	FirstUp string
}

// Engine owns the roster, the current rotation order and the cursor into it. It is safe for
// concurrent use
type Engine struct {
	mu     sync.Mutex
	roster []string
	order  []string // nil until the first Generate
	cursor int
	random *rand.Rand
}

// Option defines an option for an Engine
type Option func(e *Engine)

// OptionRand sets the random source used to shuffle the roster. A seeded source makes rotations reproducible
func OptionRand(r *rand.Rand) Option {
	return func(e *Engine) {
		e.random = r
	}
}

// New returns an engine for the given roster. The roster is copied
func New(roster []string, opts ...Option) (e *Engine) {
	e = new(Engine)
	e.roster = append([]string(nil), roster...)

	for _, opt := range opts {
		opt(e)
	}

	if e.random == nil {
		e.random = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	return e
}

// Roster returns a copy of the roster
func (e *Engine) Roster() []string {
	return append([]string(nil), e.roster...)
}

// Generate shuffles the roster into a new rotation order, replacing the current one, and resets the
// cursor to the first person. That first person is considered announced: the following call to Next
// returns the second person of the order. Generate fails with ErrEmptyRoster, leaving any existing
// rotation untouched, when the roster is empty
func (e *Engine) Generate() (r Rotation, err error) {
	if len(e.roster) == 0 {
		return Rotation{}, ErrEmptyRoster
	}

	order := append([]string(nil), e.roster...)

	e.mu.Lock()
	defer e.mu.Unlock()

	Shuffle(e.random, order)
	e.order = order
	e.cursor = 0

	return Rotation{Order: append([]string(nil), order...), FirstUp: order[0]}, nil
}

// Next advances the cursor and returns the person it lands on. Once the cursor moves past the
// last person, it wraps back to the start of the order before reading so the rotation starts over
func (e *Engine) Next() (id string, err error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.order == nil {
		return "", ErrNoRotation
	}

	e.cursor++
	if e.cursor >= len(e.order) {
		e.cursor = 0
	}

	return e.order[e.cursor], nil
}

// Shuffle does an in-place Fisher-Yates shuffle of ids using r
func Shuffle(r *rand.Rand, ids []string) {
	for i := len(ids) - 1; i > 0; i-- {
		j := r.Intn(i + 1)
		ids[i], ids[j] = ids[j], ids[i]
	}
}
