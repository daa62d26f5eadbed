// Package idgen provides the identifier sources injected into application services.
package idgen

import (
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"
)

// Timestamp issues millisecond Unix timestamps as IDs. When two IDs are requested
// within the same millisecond the later one is bumped so IDs never repeat.
type Timestamp struct {
	mu   sync.Mutex
	now  func() time.Time
	last int64
}

// NewTimestamp creates a Timestamp generator. A nil clock uses time.Now.
func NewTimestamp(now func() time.Time) *Timestamp {
	if now == nil {
		now = time.Now
	}
	return &Timestamp{now: now}
}

// NextID returns the next strictly increasing millisecond timestamp
func (g *Timestamp) NextID() string {
	g.mu.Lock()
	defer g.mu.Unlock()

	ms := g.now().UnixMilli()
	if ms <= g.last {
		ms = g.last + 1
	}
	g.last = ms
	return strconv.FormatInt(ms, 10)
}

// Sequence issues IDs of the form PREFIX-0001, PREFIX-0002, ...
type Sequence struct {
	mu     sync.Mutex
	prefix string
	width  int
	next   int64
}

// NewSequence creates a sequence whose first ID is start+1
func NewSequence(prefix string, width int, start int64) *Sequence {
	if width <= 0 {
		width = 4
	}
	return &Sequence{prefix: prefix, width: width, next: start + 1}
}

// SequenceNumber extracts N from an ID of the form PREFIX-N.
// It reports false for IDs with another prefix or a non-numeric suffix.
func SequenceNumber(prefix, id string) (int64, bool) {
	digits, ok := strings.CutPrefix(id, prefix+"-")
	if !ok || digits == "" {
		return 0, false
	}
	n, err := strconv.ParseInt(digits, 10, 64)
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}

// NextID returns the next ID in the sequence
func (s *Sequence) NextID() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := fmt.Sprintf("%s-%0*d", s.prefix, s.width, s.next)
	s.next++
	return id
}

// Fixed returns a predefined list of IDs in order, then repeats the last one.
// It is meant for tests.
type Fixed struct {
	mu  sync.Mutex
	ids []string
	pos int
}

// NewFixed creates a Fixed generator
func NewFixed(ids ...string) *Fixed {
	return &Fixed{ids: ids}
}

// NextID returns the next predefined ID
func (f *Fixed) NextID() string {
	f.mu.Lock()
	defer f.mu.Unlock()

	if len(f.ids) == 0 {
		return ""
	}
	if f.pos >= len(f.ids) {
		return f.ids[len(f.ids)-1]
	}
	id := f.ids[f.pos]
	f.pos++
	return id
}
