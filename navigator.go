package readline

// historyIndex is the browse cursor over the history log. The zero value is
// the prompt state: not browsing, editing fresh text. While browsing, line
// holds the entry index with 0 = most recent and higher = older.
type historyIndex struct {
	browsing bool
	line     int
}

// up moves toward older entries. From the prompt state it enters the most
// recent entry unless the log is empty; past the oldest entry it clamps.
func (h historyIndex) up(limit int) historyIndex {
	if !h.browsing {
		if limit == 0 {
			return h
		}
		return historyIndex{browsing: true, line: 0}
	}
	next := h.line + 1
	if next > limit-1 {
		next = limit - 1
	}
	return historyIndex{browsing: true, line: next}
}

// down moves toward more recent entries; from the most recent entry it
// returns to the prompt state. At the prompt it is a no-op.
func (h historyIndex) down() historyIndex {
	if !h.browsing {
		return h
	}
	if h.line == 0 {
		return historyIndex{}
	}
	return historyIndex{browsing: true, line: h.line - 1}
}
