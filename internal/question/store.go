package question

import (
	"fmt"
	"sort"
)

// Store owns the accepted questions of one question bank.
// Questions keep their load order.
type Store struct {
	questions []Question
	byID      map[int]int
}

// NewStore builds a store from already validated questions.
// Later duplicates of an id are dropped.
func NewStore(questions []Question) *Store {
	store := &Store{byID: make(map[int]int, len(questions))}
	for _, q := range questions {
		_ = store.Add(q)
	}
	return store
}

// Len returns the number of questions.
func (s *Store) Len() int {
	if s == nil {
		return 0
	}
	return len(s.questions)
}

// Questions returns a copy of the questions in store order.
func (s *Store) Questions() []Question {
	if s == nil {
		return nil
	}
	return append([]Question(nil), s.questions...)
}

// ByID looks up a question by id.
func (s *Store) ByID(id int) (Question, bool) {
	if s == nil {
		return nil, false
	}
	i, ok := s.byID[id]
	if !ok {
		return nil, false
	}
	return s.questions[i], true
}

// Add appends a question after re-checking its rules and id uniqueness.
func (s *Store) Add(q Question) error {
	if err := Valid(q); err != nil {
		return err
	}
	id := q.Meta().ID
	if _, exists := s.byID[id]; exists {
		return invalid(id, ReasonDuplicateID, "duplicate id %d", id)
	}
	if s.byID == nil {
		s.byID = make(map[int]int)
	}
	s.byID[id] = len(s.questions)
	s.questions = append(s.questions, q)
	return nil
}

// Remove deletes a question by id and reports whether it existed.
func (s *Store) Remove(id int) bool {
	if s == nil {
		return false
	}
	i, ok := s.byID[id]
	if !ok {
		return false
	}
	s.questions = append(s.questions[:i:i], s.questions[i+1:]...)
	delete(s.byID, id)
	for j := i; j < len(s.questions); j++ {
		s.byID[s.questions[j].Meta().ID] = j
	}
	return true
}

// Sections returns the sorted distinct section values.
func (s *Store) Sections() []string {
	seen := map[string]struct{}{}
	for _, q := range s.Questions() {
		seen[q.Meta().Section] = struct{}{}
	}
	return sortedKeys(seen)
}

// Difficulties returns the sorted distinct difficulty values.
func (s *Store) Difficulties() []Difficulty {
	seen := map[string]struct{}{}
	for _, q := range s.Questions() {
		seen[string(q.Meta().Difficulty)] = struct{}{}
	}
	keys := sortedKeys(seen)
	out := make([]Difficulty, 0, len(keys))
	for _, key := range keys {
		out = append(out, Difficulty(key))
	}
	return out
}

func sortedKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for key := range set {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// SectionCount is the number of questions in one section.
type SectionCount struct {
	Section string `json:"section"`
	Title   string `json:"title"`
	Count   int    `json:"count"`
}

// Stats summarizes the contents of a store.
type Stats struct {
	Total        int
	ByDifficulty map[Difficulty]int
	ByKind       map[Kind]int
	BySection    []SectionCount
}

// Stats counts questions by difficulty, kind and section.
// The section title is taken from the first question of each section.
func (s *Store) Stats() Stats {
	stats := Stats{
		ByDifficulty: map[Difficulty]int{},
		ByKind:       map[Kind]int{},
	}
	sections := map[string]*SectionCount{}
	for _, q := range s.Questions() {
		meta := q.Meta()
		stats.Total++
		stats.ByDifficulty[meta.Difficulty]++
		stats.ByKind[q.Kind()]++
		entry, ok := sections[meta.Section]
		if !ok {
			entry = &SectionCount{Section: meta.Section, Title: meta.SectionTitle}
			sections[meta.Section] = entry
		}
		entry.Count++
	}
	for _, entry := range sections {
		stats.BySection = append(stats.BySection, *entry)
	}
	sort.Slice(stats.BySection, func(i, j int) bool {
		return stats.BySection[i].Section < stats.BySection[j].Section
	})
	return stats
}

// Describe renders a one-line description of a question for logs and previews.
func Describe(q Question) string {
	meta := q.Meta()
	return fmt.Sprintf("#%d [%s %s] %s", meta.ID, meta.Section, meta.Difficulty, meta.Text)
}
