package readline

// BufferHistory is the undo/redo log: snapshot-based buffer history mutated
// only by the dispatcher.
type BufferHistory interface {
	// Add snapshots the buffer after an edit.
	Add(b *Buffer)
	// Prev restores the previous (older) snapshot into the buffer.
	Prev(b *Buffer)
	// Next restores the next (newer) snapshot into the buffer.
	Next(b *Buffer)
	// Clear drops all snapshots.
	Clear()
}

type bufferSnapshot struct {
	text   string
	cursor int
}

// snapshotHistory is the default BufferHistory. pos points one past the
// snapshot that matches the buffer's current state.
type snapshotHistory struct {
	snaps []bufferSnapshot
	pos   int
}

// NewBufferHistory returns the default snapshot-based undo/redo log.
func NewBufferHistory() BufferHistory {
	return &snapshotHistory{}
}

func (h *snapshotHistory) Add(b *Buffer) {
	snap := bufferSnapshot{text: b.String(), cursor: b.Cursor()}
	if h.pos > 0 && h.snaps[h.pos-1] == snap {
		return
	}
	// Editing after an undo discards the redo branch.
	h.snaps = append(h.snaps[:h.pos], snap)
	h.pos = len(h.snaps)
}

func (h *snapshotHistory) Prev(b *Buffer) {
	if h.pos <= 1 {
		return
	}
	h.pos--
	h.restore(b, h.snaps[h.pos-1])
}

func (h *snapshotHistory) Next(b *Buffer) {
	if h.pos >= len(h.snaps) {
		return
	}
	h.restore(b, h.snaps[h.pos])
	h.pos++
}

func (h *snapshotHistory) Clear() {
	h.snaps = h.snaps[:0]
	h.pos = 0
}

func (h *snapshotHistory) restore(b *Buffer, snap bufferSnapshot) {
	b.SetText(snap.text)
	if snap.cursor <= b.Len() {
		b.cursor = snap.cursor
	}
}
