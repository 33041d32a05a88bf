package sales

import (
	"slices"
	"sync"
)

// HeaderState is the tri-state of the select-all checkbox.
type HeaderState string

const (
	HeaderUnchecked     HeaderState = "unchecked"
	HeaderChecked       HeaderState = "checked"
	HeaderIndeterminate HeaderState = "indeterminate"
)

// Selection tracks selected row ids. It survives sort and filter changes and
// is pruned against the loaded rows.
type Selection struct {
	mu  sync.RWMutex
	ids map[int64]bool
}

// NewSelection builds an empty selection.
func NewSelection() *Selection {
	return &Selection{ids: make(map[int64]bool)}
}

// ToggleRow flips one id and reports whether it is now selected.
func (s *Selection) ToggleRow(id int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ids[id] {
		delete(s.ids, id)
		return false
	}
	s.ids[id] = true
	return true
}

// ToggleAll selects every id unless all of them are already selected, in
// which case it clears them.
func (s *Selection) ToggleAll(ids []int64) {
	if len(ids) == 0 {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.allSelectedLocked(ids) {
		for _, id := range ids {
			delete(s.ids, id)
		}
		return
	}
	for _, id := range ids {
		s.ids[id] = true
	}
}

// Clear drops every selected id.
func (s *Selection) Clear() {
	s.mu.Lock()
	clear(s.ids)
	s.mu.Unlock()
}

// Prune drops ids that are no longer present.
func (s *Selection) Prune(present []int64) int {
	keep := make(map[int64]struct{}, len(present))
	for _, id := range present {
		keep[id] = struct{}{}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	removed := 0
	for id := range s.ids {
		if _, ok := keep[id]; !ok {
			delete(s.ids, id)
			removed++
		}
	}
	return removed
}

// Remove drops the given ids.
func (s *Selection) Remove(ids []int64) {
	s.mu.Lock()
	for _, id := range ids {
		delete(s.ids, id)
	}
	s.mu.Unlock()
}

// IsSelected reports whether id is selected.
func (s *Selection) IsSelected(id int64) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ids[id]
}

// HeaderState summarizes the selection of the given (visible) ids.
func (s *Selection) HeaderState(ids []int64) HeaderState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	selected := 0
	for _, id := range ids {
		if s.ids[id] {
			selected++
		}
	}
	switch {
	case selected == 0:
		return HeaderUnchecked
	case selected == len(ids):
		return HeaderChecked
	default:
		return HeaderIndeterminate
	}
}

// IDs returns the selected ids in ascending order.
func (s *Selection) IDs() []int64 {
	s.mu.RLock()
	out := make([]int64, 0, len(s.ids))
	for id := range s.ids {
		out = append(out, id)
	}
	s.mu.RUnlock()
	slices.Sort(out)
	return out
}

// Count returns the number of selected ids.
func (s *Selection) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.ids)
}

func (s *Selection) allSelectedLocked(ids []int64) bool {
	for _, id := range ids {
		if !s.ids[id] {
			return false
		}
	}
	return true
}
