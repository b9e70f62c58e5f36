package inventory

import (
	"slices"
	"sync"
)

// Selection is the set of item ids picked for a bulk operation. IDs come
// back in the order they were first selected.
type Selection struct {
	mu  sync.Mutex
	ids []string
}

func NewSelection() *Selection {
	return &Selection{}
}

// Toggle adds id when absent and removes it when present. It reports
// whether id is selected afterwards.
func (s *Selection) Toggle(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if i := slices.Index(s.ids, id); i >= 0 {
		s.ids = slices.Delete(s.ids, i, i+1)
		return false
	}
	s.ids = append(s.ids, id)
	return true
}

func (s *Selection) IDs() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.ids)
}

func (s *Selection) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.ids)
}

func (s *Selection) Clear() {
	s.mu.Lock()
	s.ids = nil
	s.mu.Unlock()
}
