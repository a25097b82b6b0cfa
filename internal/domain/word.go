package domain

// Entry is a raw source/target row as produced by a word source
type Entry struct {
	Source string
	Target string
}

// WordPair is a source-language/target-language association with a mistake counter.
// Pairs are compared by pointer: two pairs with identical text are distinct.
type WordPair struct {
	Source       string
	Target       string
	MistakeCount int
}

// NewWordPair creates a pair from an entry with a zero mistake count
func NewWordPair(e Entry) *WordPair {
	return &WordPair{Source: e.Source, Target: e.Target}
}

// Miss records a wrong attempt
func (p *WordPair) Miss() {
	p.MistakeCount++
}

// Forgive removes one mistake, never going below zero
func (p *WordPair) Forgive() {
	if p.MistakeCount > 0 {
		p.MistakeCount--
	}
}

// Side identifies a column on a page
type Side string

const (
	SideLeft  Side = "left"
	SideRight Side = "right"
)

// ParseSide converts user input into a Side
func ParseSide(s string) (Side, bool) {
	switch Side(s) {
	case SideLeft:
		return SideLeft, true
	case SideRight:
		return SideRight, true
	}
	return "", false
}
