package model

const historySize = 5

// History remembers the hashes of recent generations for cycle detection
type History struct {
	hashes []string
}

// Record adds the snapshot to history and maintains size
func (h *History) Record(s Snapshot) {
	h.hashes = append(h.hashes, s.Hash())

	if len(h.hashes) > historySize {
		h.hashes = h.hashes[1:]
	}
}

// IsStagnant checks if s repeats one of the last three recorded states,
// i.e. the world is static or cycling with period 3 or less.
func (h *History) IsStagnant(s Snapshot) bool {
	if len(h.hashes) < 3 {
		return false
	}

	current := s.Hash()
	for _, prev := range h.hashes[len(h.hashes)-3:] {
		if prev == current {
			return true
		}
	}
	return false
}

// Reset forgets all recorded states
func (h *History) Reset() {
	h.hashes = nil
}
