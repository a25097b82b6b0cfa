package testutil

import (
	"fmt"
	"sync"
	"time"

	"wordmatch/internal/domain"
	"wordmatch/internal/session"

	"go.uber.org/zap"
)

// NewTestLogger creates a no-op logger for tests
func NewTestLogger() *zap.Logger {
	return zap.NewNop()
}

// NewTestEntries builds entries from source/target pairs
func NewTestEntries(pairs ...string) []domain.Entry {
	if len(pairs)%2 != 0 {
		panic("testutil: odd number of words")
	}
	out := make([]domain.Entry, 0, len(pairs)/2)
	for i := 0; i < len(pairs); i += 2 {
		out = append(out, domain.Entry{Source: pairs[i], Target: pairs[i+1]})
	}
	return out
}

// NewNumberedEntries builds n entries "src-i" -> "dst-i"
func NewNumberedEntries(n int) []domain.Entry {
	out := make([]domain.Entry, n)
	for i := range out {
		out[i] = domain.Entry{Source: fmt.Sprintf("src-%d", i), Target: fmt.Sprintf("dst-%d", i)}
	}
	return out
}

// RenderEvent is one call recorded by RecordingRenderer
type RenderEvent struct {
	Method string
	Side   domain.Side
	ID     int
}

// RecordingRenderer implements session.Renderer and remembers what it was told
type RecordingRenderer struct {
	mu       sync.Mutex
	Events   []RenderEvent
	Pages    []session.Page
	Correct  int
	Wrong    int
	Progress int
	Advance  bool
	Summary  *domain.Summary
}

func (r *RecordingRenderer) record(method string, side domain.Side, id int) {
	r.Events = append(r.Events, RenderEvent{Method: method, Side: side, ID: id})
}

func (r *RecordingRenderer) ShowPage(page session.Page) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Pages = append(r.Pages, page)
	r.Advance = false
	r.record("ShowPage", "", len(page.Left))
}

func (r *RecordingRenderer) MarkSelected(side domain.Side, id int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.record("MarkSelected", side, id)
}

func (r *RecordingRenderer) MarkSolved(side domain.Side, id int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.record("MarkSolved", side, id)
}

func (r *RecordingRenderer) MarkWrong(side domain.Side, id int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.record("MarkWrong", side, id)
}

func (r *RecordingRenderer) ClearWrong(side domain.Side, id int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.record("ClearWrong", side, id)
}

func (r *RecordingRenderer) UpdateScore(correct, wrong int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Correct, r.Wrong = correct, wrong
}

func (r *RecordingRenderer) UpdateProgress(pageSize int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Progress = pageSize
}

func (r *RecordingRenderer) EnableAdvance() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Advance = true
	r.record("EnableAdvance", "", 0)
}

func (r *RecordingRenderer) ShowSessionEnd(summary domain.Summary) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Summary = &summary
	r.record("ShowSessionEnd", "", 0)
}

// LastPage returns the most recently shown page
func (r *RecordingRenderer) LastPage() session.Page {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.Pages) == 0 {
		return session.Page{}
	}
	return r.Pages[len(r.Pages)-1]
}

// Count returns how many times method was called
func (r *RecordingRenderer) Count(method string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, e := range r.Events {
		if e.Method == method {
			n++
		}
	}
	return n
}

// ItemID finds the ID of the item with the given text in a column, -1 when missing
func ItemID(items []session.Item, text string) int {
	for _, it := range items {
		if it.Text == text {
			return it.ID
		}
	}
	return -1
}

// ManualScheduler implements session.Scheduler; callbacks run only when Fire is called
type ManualScheduler struct {
	mu      sync.Mutex
	pending []*ManualTicket
}

// ManualTicket is a ticket created by ManualScheduler
type ManualTicket struct {
	Delay   time.Duration
	fn      func()
	stopped bool
	fired   bool
}

// Stop cancels the ticket if it has not fired
func (t *ManualTicket) Stop() bool {
	if t.stopped || t.fired {
		return false
	}
	t.stopped = true
	return true
}

func (s *ManualScheduler) AfterFunc(d time.Duration, f func()) session.Ticket {
	s.mu.Lock()
	defer s.mu.Unlock()
	t := &ManualTicket{Delay: d, fn: f}
	s.pending = append(s.pending, t)
	return t
}

// Fire runs every ticket that is neither stopped nor fired and returns how many ran
func (s *ManualScheduler) Fire() int {
	s.mu.Lock()
	due := s.pending
	s.pending = nil
	s.mu.Unlock()

	n := 0
	for _, t := range due {
		if t.stopped || t.fired {
			continue
		}
		t.fired = true
		t.fn()
		n++
	}
	return n
}

// Tickets returns all tickets handed out since the last Fire
func (s *ManualScheduler) Tickets() []*ManualTicket {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]*ManualTicket(nil), s.pending...)
}
