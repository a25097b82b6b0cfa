package session

import "wordmatch/internal/domain"

// RightColumn exposes the right column order to external tests
func RightColumn(c *Controller) []*domain.WordPair {
	return append([]*domain.WordPair(nil), c.right...)
}
