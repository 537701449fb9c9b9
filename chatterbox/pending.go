package chatterbox

// Pending counts entries rendered while the view is hidden and reports the
// count to a PendingSink.
type Pending struct {
	sink    PendingSink
	count   int
	visible bool
}

// NewPending returns a tracker that starts visible. A nil sink discards
// notifications.
func NewPending(sink PendingSink) *Pending {
	if sink == nil {
		sink = noopPendingSink{}
	}
	return &Pending{sink: sink, visible: true}
}

// EntryRendered increments the count when the view is not visible.
func (p *Pending) EntryRendered() {
	if p.visible {
		return
	}
	p.count++
	p.sink.SetPending(p.count)
}

// SetVisible records a visibility change. Becoming visible resets the count.
func (p *Pending) SetVisible(visible bool) {
	p.visible = visible
	if !visible {
		return
	}
	p.count = 0
	p.sink.ClearPending()
}

// Count returns the current count.
func (p *Pending) Count() int { return p.count }

// Visible reports whether the view is currently visible.
func (p *Pending) Visible() bool { return p.visible }
