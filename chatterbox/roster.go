package chatterbox

// Roster is the current snapshot of participant nicknames, in the order the
// relay sent them.
type Roster struct {
	names []string
}

// Replace swaps in a new snapshot.
func (r *Roster) Replace(names []string) {
	r.names = append([]string(nil), names...)
}

// Names returns a copy of the snapshot.
func (r *Roster) Names() []string {
	return append([]string(nil), r.names...)
}

// Len returns the number of nicknames.
func (r *Roster) Len() int { return len(r.names) }

// Topic holds the channel topic.
type Topic struct {
	text string
}

// Set replaces the topic.
func (t *Topic) Set(s string) { t.text = s }

// String returns the current topic.
func (t *Topic) String() string { return t.text }
