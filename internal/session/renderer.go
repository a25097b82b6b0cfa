package session

import (
	"time"

	"wordmatch/internal/domain"
)

// Item is one selectable cell of a page column.
// IDs are positions within their column and are only meaningful for the page they were shown on.
type Item struct {
	ID   int    `json:"id"`
	Text string `json:"text"`
}

// Page is what a renderer shows: source words on the left, shuffled targets on the right
type Page struct {
	Left  []Item `json:"left"`
	Right []Item `json:"right"`
}

// Renderer displays a session and is driven by the controller.
//
// MarkSolved and MarkWrong also end the pending highlight of that side.
// ClearWrong is called from a timer goroutine, so implementations must
// guard their view state.
type Renderer interface {
	ShowPage(page Page)
	MarkSelected(side domain.Side, id int)
	MarkSolved(side domain.Side, id int)
	MarkWrong(side domain.Side, id int)
	ClearWrong(side domain.Side, id int)
	UpdateScore(correct, wrong int)
	UpdateProgress(pageSize int)
	EnableAdvance()
	ShowSessionEnd(summary domain.Summary)
}

// Ticket is a cancellable deferred callback
type Ticket interface {
	Stop() bool
}

// Scheduler runs cosmetic callbacks after a delay
type Scheduler interface {
	AfterFunc(d time.Duration, f func()) Ticket
}

type timerScheduler struct{}

func (timerScheduler) AfterFunc(d time.Duration, f func()) Ticket {
	return time.AfterFunc(d, f)
}

// TimerScheduler returns a Scheduler backed by time.AfterFunc
func TimerScheduler() Scheduler {
	return timerScheduler{}
}
