package service_test

import (
	"context"
	"sync"

	"readtrack/internal/modules/reader/domain"
)

type memStore struct {
	mu    sync.Mutex
	read  map[string][]bool
	notes map[string][]string
	last  map[string]string
	saves int
}

func newMemStore() *memStore {
	return &memStore{
		read:  map[string][]bool{},
		notes: map[string][]string{},
		last:  map[string]string{},
	}
}

func key(bookID, title string) string { return bookID + ":" + title }

func (s *memStore) LoadRead(_ context.Context, bookID, title string) ([]bool, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.read[key(bookID, title)]
	return append([]bool(nil), v...), ok
}

func (s *memStore) SaveRead(_ context.Context, bookID, title string, read []bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.saves++
	s.read[key(bookID, title)] = append([]bool(nil), read...)
}

func (s *memStore) LoadNotes(_ context.Context, bookID, title string) ([]string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.notes[key(bookID, title)]
	return append([]string(nil), v...), ok
}

func (s *memStore) SaveNotes(_ context.Context, bookID, title string, notes []string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.saves++
	s.notes[key(bookID, title)] = append([]string(nil), notes...)
}

func (s *memStore) LoadLastRead(_ context.Context, bookID string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.last[bookID]
	return v, ok
}

func (s *memStore) SaveLastRead(_ context.Context, bookID, id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.last[bookID] = id
}

func (s *memStore) AggregateProgress(_ context.Context, bookID string, titles []string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	done := 0
	for _, title := range titles {
		if domain.AllRead(s.read[key(bookID, title)]) {
			done++
		}
	}
	return domain.Percent(done, len(titles))
}
