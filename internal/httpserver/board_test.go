package httpserver

import (
	"testing"

	"wordmatch/internal/domain"
	"wordmatch/internal/session"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testPage() session.Page {
	return session.Page{
		Left:  []session.Item{{ID: 0, Text: "Hund"}, {ID: 1, Text: "Katze"}},
		Right: []session.Item{{ID: 0, Text: "گربه"}, {ID: 1, Text: "سگ"}},
	}
}

func TestBoardRenderer_Selection(t *testing.T) {
	b := NewBoardRenderer()
	b.ShowPage(testPage())

	b.MarkSelected(domain.SideLeft, 0)
	b.MarkSelected(domain.SideLeft, 1)
	snap := b.Snapshot("s1")
	assert.False(t, snap.Left[0].Selected)
	assert.True(t, snap.Left[1].Selected)
	assert.False(t, snap.Right[0].Selected)

	b.MarkSolved(domain.SideLeft, 1)
	snap = b.Snapshot("s1")
	assert.True(t, snap.Left[1].Solved)
	assert.False(t, snap.Left[1].Selected)
}

func TestBoardRenderer_WrongFlash(t *testing.T) {
	b := NewBoardRenderer()
	b.ShowPage(testPage())

	b.MarkSelected(domain.SideRight, 1)
	b.MarkWrong(domain.SideRight, 1)
	snap := b.Snapshot("s1")
	assert.True(t, snap.Right[1].Wrong)
	assert.False(t, snap.Right[1].Selected)

	b.ClearWrong(domain.SideRight, 1)
	assert.False(t, b.Snapshot("s1").Right[1].Wrong)

	// a late flash for a page that is gone is ignored
	b.ShowPage(session.Page{Left: []session.Item{{ID: 0, Text: "Baum"}}, Right: []session.Item{{ID: 0, Text: "درخت"}}})
	assert.NotPanics(t, func() { b.ClearWrong(domain.SideRight, 1) })
}

func TestBoardRenderer_SessionEnd(t *testing.T) {
	b := NewBoardRenderer()
	b.ShowPage(testPage())
	b.UpdateProgress(2)
	b.UpdateScore(2, 1)
	b.EnableAdvance()
	assert.True(t, b.Snapshot("s1").CanAdvance)

	b.ShowSessionEnd(domain.NewSummary(2, 1, 3, 2))
	snap := b.Snapshot("s1")
	assert.True(t, snap.Over)
	assert.False(t, snap.CanAdvance)
	assert.Empty(t, snap.Left)
	require.NotNil(t, snap.Summary)
	assert.Equal(t, 67, snap.Summary.Accuracy)
	assert.Equal(t, 2, snap.Correct)
	assert.Equal(t, 1, snap.Wrong)

	b.ShowPage(testPage())
	snap = b.Snapshot("s2")
	assert.False(t, snap.Over)
	assert.Nil(t, snap.Summary)
	assert.Equal(t, "s2", snap.SessionID)
}

func TestBoardRenderer_SnapshotIsACopy(t *testing.T) {
	b := NewBoardRenderer()
	b.ShowPage(testPage())

	snap := b.Snapshot("s1")
	b.MarkSolved(domain.SideLeft, 0)

	assert.False(t, snap.Left[0].Solved)
	assert.True(t, b.Snapshot("s1").Left[0].Solved)
}
