package httpserver

import (
	"sync"

	"wordmatch/internal/domain"
	"wordmatch/internal/session"
)

// Cell is one item of a board column as the browser draws it
type Cell struct {
	ID       int    `json:"id"`
	Text     string `json:"text"`
	Selected bool   `json:"selected"`
	Solved   bool   `json:"solved"`
	Wrong    bool   `json:"wrong"`
}

// Board is the view model of a session returned by every session endpoint
type Board struct {
	SessionID  string          `json:"sessionId"`
	Left       []Cell          `json:"left"`
	Right      []Cell          `json:"right"`
	Correct    int             `json:"correct"`
	Wrong      int             `json:"wrong"`
	PageSize   int             `json:"pageSize"`
	CanAdvance bool            `json:"canAdvance"`
	Over       bool            `json:"over"`
	Summary    *domain.Summary `json:"summary,omitempty"`
}

// BoardRenderer keeps a Board up to date from controller callbacks.
// ClearWrong arrives on a timer goroutine, hence the mutex.
type BoardRenderer struct {
	mu    sync.Mutex
	board Board
}

var _ session.Renderer = (*BoardRenderer)(nil)

// NewBoardRenderer creates an empty board
func NewBoardRenderer() *BoardRenderer {
	return &BoardRenderer{}
}

func (b *BoardRenderer) ShowPage(page session.Page) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.board.Left = cells(page.Left)
	b.board.Right = cells(page.Right)
	b.board.CanAdvance = false
	b.board.Over = false
	b.board.Summary = nil
}

func (b *BoardRenderer) MarkSelected(side domain.Side, id int) {
	b.mu.Lock()
	defer b.mu.Unlock()

	column := b.column(side)
	for i := range column {
		column[i].Selected = column[i].ID == id
	}
}

func (b *BoardRenderer) MarkSolved(side domain.Side, id int) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if c := b.cell(side, id); c != nil {
		c.Solved = true
		c.Selected = false
		c.Wrong = false
	}
}

func (b *BoardRenderer) MarkWrong(side domain.Side, id int) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if c := b.cell(side, id); c != nil {
		c.Wrong = true
		c.Selected = false
	}
}

func (b *BoardRenderer) ClearWrong(side domain.Side, id int) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if c := b.cell(side, id); c != nil {
		c.Wrong = false
	}
}

func (b *BoardRenderer) UpdateScore(correct, wrong int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.board.Correct = correct
	b.board.Wrong = wrong
}

func (b *BoardRenderer) UpdateProgress(pageSize int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.board.PageSize = pageSize
}

func (b *BoardRenderer) EnableAdvance() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.board.CanAdvance = true
}

func (b *BoardRenderer) ShowSessionEnd(summary domain.Summary) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.board.Left = nil
	b.board.Right = nil
	b.board.PageSize = 0
	b.board.CanAdvance = false
	b.board.Over = true
	b.board.Summary = &summary
}

// Snapshot returns a copy of the board safe to encode while the session moves on
func (b *BoardRenderer) Snapshot(sessionID string) Board {
	b.mu.Lock()
	defer b.mu.Unlock()

	out := b.board
	out.SessionID = sessionID
	out.Left = append([]Cell(nil), b.board.Left...)
	out.Right = append([]Cell(nil), b.board.Right...)
	if b.board.Summary != nil {
		s := *b.board.Summary
		out.Summary = &s
	}
	return out
}

func (b *BoardRenderer) column(side domain.Side) []Cell {
	if side == domain.SideLeft {
		return b.board.Left
	}
	return b.board.Right
}

// cell returns nil for IDs of a page that is no longer shown
func (b *BoardRenderer) cell(side domain.Side, id int) *Cell {
	column := b.column(side)
	if id < 0 || id >= len(column) {
		return nil
	}
	return &column[id]
}

func cells(items []session.Item) []Cell {
	out := make([]Cell, len(items))
	for i, it := range items {
		out[i] = Cell{ID: it.ID, Text: it.Text}
	}
	return out
}
