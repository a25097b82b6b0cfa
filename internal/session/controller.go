// Package session holds the matching game state machine: word queues,
// page composition and match scoring.
package session

import (
	"errors"
	"math/rand/v2"
	"time"

	"wordmatch/internal/domain"
)

const (
	// PageSize is the maximum number of pairs on one page
	PageSize = 10
	// WrongFlashDelay is how long a wrong pair stays marked
	WrongFlashDelay = 600 * time.Millisecond
)

var (
	ErrUnknownItem   = errors.New("unknown item")
	ErrAdvanceLocked = errors.New("page is not solved yet")
	ErrSessionOver   = errors.New("session is over")
)

const noSelection = -1

// Score is a snapshot of the session counters
type Score struct {
	TotalAttempts int `json:"totalAttempts"`
	Correct       int `json:"correct"`
	Wrong         int `json:"wrong"`
}

// Outcome describes one resolved match attempt
type Outcome struct {
	Left         *domain.WordPair
	Right        *domain.WordPair
	Correct      bool
	PageComplete bool
}

// Option configures a Controller
type Option func(*Controller)

// WithRand sets the random source used for shuffling
func WithRand(r *rand.Rand) Option {
	return func(c *Controller) { c.rng = r }
}

// WithScheduler sets the scheduler used for the wrong-match flash reset
func WithScheduler(s Scheduler) Option {
	return func(c *Controller) { c.scheduler = s }
}

// Controller owns the queues, counters and selection state of one session.
// It is not safe for concurrent use; callers serialize access.
type Controller struct {
	renderer  Renderer
	scheduler Scheduler
	rng       *rand.Rand

	pairs  []*domain.WordPair
	main   []*domain.WordPair
	review []*domain.WordPair

	left        []*domain.WordPair
	right       []*domain.WordPair
	leftSolved  []bool
	rightSolved []bool
	solvedPairs int

	selLeft  int
	selRight int

	totalAttempts int
	correct       int
	wrong         int

	started    bool
	canAdvance bool
	over       bool
	summary    domain.Summary
	tickets    []Ticket
}

// New creates a controller over the given entries and shuffles the main queue.
// Nothing is rendered until Start.
func New(entries []domain.Entry, renderer Renderer, opts ...Option) *Controller {
	c := &Controller{
		renderer:  renderer,
		scheduler: TimerScheduler(),
		pairs:     make([]*domain.WordPair, 0, len(entries)),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.rng == nil {
		c.rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	for _, e := range entries {
		c.pairs = append(c.pairs, domain.NewWordPair(e))
	}
	c.Reset()
	return c
}

// Reset puts the session back to its initial state with a fresh shuffle
func (c *Controller) Reset() {
	c.stopTickets()
	for _, p := range c.pairs {
		p.MistakeCount = 0
	}
	c.main = append(make([]*domain.WordPair, 0, len(c.pairs)), c.pairs...)
	c.shuffle(c.main)
	c.review = nil
	c.left, c.right = nil, nil
	c.leftSolved, c.rightSolved = nil, nil
	c.solvedPairs = 0
	c.clearSelection()
	c.totalAttempts, c.correct, c.wrong = 0, 0, 0
	c.started, c.canAdvance, c.over = false, false, false
	c.summary = domain.Summary{}
}

// Start shows the first page, or ends the session at once if there are no words
func (c *Controller) Start() error {
	return c.Advance()
}

// TakeNextPage pulls up to PageSize pairs, review queue first
func (c *Controller) TakeNextPage() []*domain.WordPair {
	page := make([]*domain.WordPair, 0, PageSize)
	for len(page) < PageSize && len(c.review) > 0 {
		page = append(page, c.review[0])
		c.review = c.review[1:]
	}
	for len(page) < PageSize && len(c.main) > 0 {
		page = append(page, c.main[0])
		c.main = c.main[1:]
	}
	return page
}

// Advance moves to the next page once the current one is solved.
// When both queues are empty the session ends and the summary is shown.
func (c *Controller) Advance() error {
	if c.over {
		return ErrSessionOver
	}
	if c.started && !c.canAdvance {
		return ErrAdvanceLocked
	}
	c.started = true
	c.canAdvance = false
	c.clearSelection()
	c.stopTickets()

	next := c.TakeNextPage()
	if len(next) == 0 {
		c.finish()
		return nil
	}
	c.showPage(next)
	return nil
}

// SelectLeft marks a source-side item as pending and resolves a match if the right side is pending too.
// Outcome is nil when no attempt was resolved.
func (c *Controller) SelectLeft(id int) (*Outcome, error) {
	return c.selectItem(domain.SideLeft, id)
}

// SelectRight is SelectLeft for the target side
func (c *Controller) SelectRight(id int) (*Outcome, error) {
	return c.selectItem(domain.SideRight, id)
}

// Select dispatches to SelectLeft or SelectRight
func (c *Controller) Select(side domain.Side, id int) (*Outcome, error) {
	switch side {
	case domain.SideLeft, domain.SideRight:
		return c.selectItem(side, id)
	}
	return nil, ErrUnknownItem
}

func (c *Controller) selectItem(side domain.Side, id int) (*Outcome, error) {
	if c.over {
		return nil, ErrSessionOver
	}
	if id < 0 || id >= len(c.left) {
		return nil, ErrUnknownItem
	}

	if side == domain.SideLeft {
		if c.leftSolved[id] {
			return nil, nil
		}
		c.selLeft = id
	} else {
		if c.rightSolved[id] {
			return nil, nil
		}
		c.selRight = id
	}
	c.renderer.MarkSelected(side, id)

	if c.selLeft == noSelection || c.selRight == noSelection {
		return nil, nil
	}
	return c.resolve(), nil
}

func (c *Controller) resolve() *Outcome {
	lid, rid := c.selLeft, c.selRight
	left, right := c.left[lid], c.right[rid]
	out := &Outcome{Left: left, Right: right}

	c.totalAttempts++
	if left == right {
		c.leftSolved[lid] = true
		c.rightSolved[rid] = true
		c.correct++
		c.solvedPairs++
		left.Forgive()
		c.renderer.MarkSolved(domain.SideLeft, lid)
		c.renderer.MarkSolved(domain.SideRight, rid)
		out.Correct = true
	} else {
		c.wrong++
		left.Miss()
		c.review = append(c.review, left)
		c.renderer.MarkWrong(domain.SideLeft, lid)
		c.renderer.MarkWrong(domain.SideRight, rid)
		r := c.renderer
		c.tickets = append(c.tickets, c.scheduler.AfterFunc(WrongFlashDelay, func() {
			r.ClearWrong(domain.SideLeft, lid)
			r.ClearWrong(domain.SideRight, rid)
		}))
	}
	c.clearSelection()
	c.renderer.UpdateScore(c.correct, c.wrong)

	if c.solvedPairs == len(c.left) {
		c.canAdvance = true
		c.renderer.EnableAdvance()
		out.PageComplete = true
	}
	return out
}

func (c *Controller) showPage(pairs []*domain.WordPair) {
	c.left = pairs
	c.right = append(make([]*domain.WordPair, 0, len(pairs)), pairs...)
	c.shuffle(c.right)
	c.leftSolved = make([]bool, len(pairs))
	c.rightSolved = make([]bool, len(pairs))
	c.solvedPairs = 0

	page := Page{
		Left:  make([]Item, len(c.left)),
		Right: make([]Item, len(c.right)),
	}
	for i, p := range c.left {
		page.Left[i] = Item{ID: i, Text: p.Source}
	}
	for i, p := range c.right {
		page.Right[i] = Item{ID: i, Text: p.Target}
	}

	c.renderer.ShowPage(page)
	c.renderer.UpdateProgress(len(pairs))
	c.renderer.UpdateScore(c.correct, c.wrong)
}

func (c *Controller) finish() {
	c.over = true
	c.left, c.right = nil, nil
	c.leftSolved, c.rightSolved = nil, nil
	c.summary = domain.NewSummary(c.correct, c.wrong, c.totalAttempts, len(c.pairs))
	c.renderer.ShowSessionEnd(c.summary)
}

func (c *Controller) clearSelection() {
	c.selLeft = noSelection
	c.selRight = noSelection
}

func (c *Controller) stopTickets() {
	for _, t := range c.tickets {
		t.Stop()
	}
	c.tickets = nil
}

func (c *Controller) shuffle(pairs []*domain.WordPair) {
	c.rng.Shuffle(len(pairs), func(i, j int) {
		pairs[i], pairs[j] = pairs[j], pairs[i]
	})
}

// Score returns the current counters
func (c *Controller) Score() Score {
	return Score{TotalAttempts: c.totalAttempts, Correct: c.correct, Wrong: c.wrong}
}

// Summary returns the final tally; zero until the session is over
func (c *Controller) Summary() domain.Summary {
	return c.summary
}

// Over reports whether the session has ended
func (c *Controller) Over() bool {
	return c.over
}

// CanAdvance reports whether the current page is fully solved
func (c *Controller) CanAdvance() bool {
	return c.canAdvance
}

// PageWords returns the pairs of the current page in left-column order
func (c *Controller) PageWords() []*domain.WordPair {
	return append([]*domain.WordPair(nil), c.left...)
}

// QueueLengths returns the number of pairs left in the main and review queues
func (c *Controller) QueueLengths() (main, review int) {
	return len(c.main), len(c.review)
}

// TotalWords returns the number of distinct pairs loaded
func (c *Controller) TotalWords() int {
	return len(c.pairs)
}

// Pending returns the pending item IDs per side, -1 when none
func (c *Controller) Pending() (left, right int) {
	return c.selLeft, c.selRight
}
