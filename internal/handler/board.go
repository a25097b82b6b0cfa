package handler

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"wordmatch/internal/domain"
	"wordmatch/internal/session"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

var errNoMessage = errors.New("board has no message yet")

// Editor edits sent messages; *tele.Bot implements it
type Editor interface {
	Edit(msg tele.Editable, what interface{}, opts ...interface{}) (*tele.Message, error)
}

type cell struct {
	text     string
	selected bool
	solved   bool
	wrong    bool
}

func (c cell) label() string {
	switch {
	case c.solved:
		return "✅ " + c.text
	case c.wrong:
		return "❌ " + c.text
	case c.selected:
		return "[" + c.text + "]"
	}
	return c.text
}

// Board renders a session as one message with an inline keyboard.
// Controller callbacks only update state; Flush pushes it to Telegram.
// ClearWrong runs on a timer goroutine and flushes by itself once the last
// wrong mark of the page is gone.
type Board struct {
	mu     sync.Mutex
	editor Editor
	logger *zap.Logger
	msg    tele.Editable

	left, right []cell
	correct     int
	wrong       int
	pageSize    int
	canAdvance  bool
	summary     *domain.Summary
}

var _ session.Renderer = (*Board)(nil)

// NewBoard creates a board bound to msg; msg may be nil until the first send
func NewBoard(editor Editor, msg tele.Editable, logger *zap.Logger) *Board {
	return &Board{editor: editor, msg: msg, logger: logger}
}

// Attach binds the board to a newly sent message
func (b *Board) Attach(msg tele.Editable) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.msg = msg
}

func (b *Board) ShowPage(page session.Page) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.left = toCells(page.Left)
	b.right = toCells(page.Right)
	b.canAdvance = false
	b.summary = nil
}

func (b *Board) MarkSelected(side domain.Side, id int) {
	b.mu.Lock()
	defer b.mu.Unlock()

	column := b.column(side)
	for i := range column {
		column[i].selected = i == id
	}
}

func (b *Board) MarkSolved(side domain.Side, id int) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if c := b.cell(side, id); c != nil {
		c.solved, c.selected, c.wrong = true, false, false
	}
}

func (b *Board) MarkWrong(side domain.Side, id int) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if c := b.cell(side, id); c != nil {
		c.wrong, c.selected = true, false
	}
}

func (b *Board) ClearWrong(side domain.Side, id int) {
	b.mu.Lock()
	defer b.mu.Unlock()

	c := b.cell(side, id)
	if c == nil || !c.wrong {
		return
	}
	c.wrong = false
	if b.anyWrong() {
		return
	}
	if err := b.flushLocked(); err != nil && !isNotModified(err) {
		b.logger.Warn("Failed to clear wrong marks", zap.Error(err))
	}
}

func (b *Board) UpdateScore(correct, wrong int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.correct, b.wrong = correct, wrong
}

func (b *Board) UpdateProgress(pageSize int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.pageSize = pageSize
}

func (b *Board) EnableAdvance() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.canAdvance = true
}

func (b *Board) ShowSessionEnd(summary domain.Summary) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.left, b.right = nil, nil
	b.pageSize = 0
	b.canAdvance = false
	b.summary = &summary
}

// Flush edits the bound message to the current state
func (b *Board) Flush() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.flushLocked()
}

// Render returns the message text and keyboard for the current state
func (b *Board) Render() (string, *tele.ReplyMarkup) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.renderLocked()
}

func (b *Board) flushLocked() error {
	if b.msg == nil {
		return errNoMessage
	}
	text, markup := b.renderLocked()
	_, err := b.editor.Edit(b.msg, text, markup)
	return err
}

func (b *Board) renderLocked() (string, *tele.ReplyMarkup) {
	markup := &tele.ReplyMarkup{}

	if b.summary != nil {
		markup.Inline(
			markup.Row(btnPlayAgain),
			markup.Row(btnStats),
		)
		return summaryText(*b.summary), markup
	}

	rows := make([]tele.Row, 0, len(b.left)+1)
	for i := range b.left {
		row := tele.Row{markup.Data(b.left[i].label(), pickUnique, sideLeftCode, strconv.Itoa(i))}
		if i < len(b.right) {
			row = append(row, markup.Data(b.right[i].label(), pickUnique, sideRightCode, strconv.Itoa(i)))
		}
		rows = append(rows, row)
	}
	if b.canAdvance {
		rows = append(rows, markup.Row(btnAdvance))
	}
	markup.Inline(rows...)

	text := fmt.Sprintf("کلمات این صفحه: %d\nدرست: %d | غلط: %d", b.pageSize, b.correct, b.wrong)
	return text, markup
}

func (b *Board) column(side domain.Side) []cell {
	if side == domain.SideLeft {
		return b.left
	}
	return b.right
}

func (b *Board) cell(side domain.Side, id int) *cell {
	column := b.column(side)
	if id < 0 || id >= len(column) {
		return nil
	}
	return &column[id]
}

func (b *Board) anyWrong() bool {
	for _, c := range b.left {
		if c.wrong {
			return true
		}
	}
	for _, c := range b.right {
		if c.wrong {
			return true
		}
	}
	return false
}

func toCells(items []session.Item) []cell {
	out := make([]cell, len(items))
	for i, it := range items {
		out[i] = cell{text: it.Text}
	}
	return out
}

func summaryText(s domain.Summary) string {
	var sb strings.Builder
	sb.WriteString("پایان بازی 🎉\n\n")
	fmt.Fprintf(&sb, "امتیاز: %d / 100\n", s.Accuracy)
	fmt.Fprintf(&sb, "کل تلاش‌ها: %d\n", s.TotalAttempts)
	fmt.Fprintf(&sb, "درست: %d\n", s.Correct)
	fmt.Fprintf(&sb, "غلط: %d\n", s.Wrong)
	fmt.Fprintf(&sb, "تعداد لغت‌ها: %d", s.TotalWords)
	return sb.String()
}

func isNotModified(err error) bool {
	return err != nil && strings.Contains(err.Error(), "message is not modified")
}
