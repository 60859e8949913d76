package domain

import (
	"iter"
	"strings"
	"sync"
)

// History is the chronological transcript of one session. Turns are only
// ever appended; nothing is removed or rewritten.
type History struct {
	mu    sync.RWMutex
	turns []Turn
}

func NewHistory() *History {
	return &History{}
}

func (h *History) Append(t Turn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.turns = append(h.turns, t)
}

func (h *History) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.turns)
}

// Transcript yields the turns in insertion order. The sequence can be ranged
// over any number of times; each pass sees the turns present when it starts.
func (h *History) Transcript() iter.Seq[Turn] {
	return func(yield func(Turn) bool) {
		h.mu.RLock()
		turns := h.turns[:len(h.turns):len(h.turns)]
		h.mu.RUnlock()

		for _, t := range turns {
			if !yield(t) {
				return
			}
		}
	}
}

// Turns returns a copy of every turn.
func (h *History) Turns() []Turn {
	return h.Last(0)
}

// Last returns a copy of the newest n turns, or of all turns when n <= 0.
func (h *History) Last(n int) []Turn {
	h.mu.RLock()
	defer h.mu.RUnlock()

	turns := h.turns
	if n > 0 && len(turns) > n {
		turns = turns[len(turns)-n:]
	}
	return append([]Turn(nil), turns...)
}

func (h *History) FormattedLog() string {
	return FormatTurns(h.Turns())
}

// FormatTurns renders turns as "role: content" lines joined by newlines.
func FormatTurns(turns []Turn) string {
	lines := make([]string, 0, len(turns))
	for _, t := range turns {
		lines = append(lines, t.String())
	}
	return strings.Join(lines, "\n")
}
