package chatterbox

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHistoryAppend(t *testing.T) {
	h := NewHistory()
	h.Append(ChatEntry{Body: "a"})
	h.Append(ChatEntry{Body: "b"})

	entries := h.Entries()
	require.Len(t, entries, 2)
	assert.Equal(t, "a", entries[0].Body)
	assert.Equal(t, "b", entries[1].Body)

	entries[0].Body = "changed"
	assert.Equal(t, "a", h.Entries()[0].Body)
}

func TestHistoryEvictsOldest(t *testing.T) {
	h := NewHistory()
	for i := range MaxHistory + 5 {
		h.Append(ChatEntry{Body: strconv.Itoa(i)})
	}

	assert.Equal(t, MaxHistory, h.Len())
	entries := h.Entries()
	assert.Equal(t, "5", entries[0].Body)
	assert.Equal(t, strconv.Itoa(MaxHistory+4), entries[len(entries)-1].Body)
}
