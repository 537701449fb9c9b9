package chatterbox

// MaxHistory is the number of entries a History retains.
const MaxHistory = 1000

// History is an insertion-ordered list of entries capped at MaxHistory.
// The oldest entries are evicted first.
type History struct {
	entries []ChatEntry
	limit   int
}

// NewHistory returns an empty History with the MaxHistory cap.
func NewHistory() *History {
	return &History{limit: MaxHistory}
}

// Append adds e to the tail, evicting from the head to stay within the cap.
func (h *History) Append(e ChatEntry) {
	h.entries = append(h.entries, e)
	if over := len(h.entries) - h.limit; over > 0 {
		// Shift in place so the retained entries stay at the front.
		n := copy(h.entries, h.entries[over:])
		clear(h.entries[n:])
		h.entries = h.entries[:n]
	}
}

// Len returns the number of retained entries.
func (h *History) Len() int { return len(h.entries) }

// Entries returns the retained entries, oldest first.
func (h *History) Entries() []ChatEntry {
	out := make([]ChatEntry, len(h.entries))
	copy(out, h.entries)
	return out
}
