package prompter

import (
	"sync/atomic"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

// History keeps the most recently generated prompts. Entries are evicted when
// the size bound is reached or their TTL expires.
type History struct {
	seq     atomic.Uint64
	entries *expirable.LRU[uint64, GeneratedPrompt]
}

func NewHistory(size int, ttl time.Duration) *History {
	return &History{
		entries: expirable.NewLRU[uint64, GeneratedPrompt](size, nil, ttl),
	}
}

func (h *History) Add(prompt GeneratedPrompt) {
	h.entries.Add(h.seq.Add(1), prompt)
}

// List returns the live entries, oldest first.
func (h *History) List() []GeneratedPrompt {
	return h.entries.Values()
}

func (h *History) Len() int {
	return h.entries.Len()
}
