package repository

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/jpspell/premier-squares-service/internal/model"
)

// MemoryContestStore is a mutex-guarded in-memory ContestStore. It backs the
// test suite and database-less local runs. Documents are copied on the way in
// and out so callers never share slices with the store.
type MemoryContestStore struct {
	mu       sync.RWMutex
	contests map[string]model.Contest
	order    []string
}

// NewMemoryContestStore constructs an empty MemoryContestStore.
func NewMemoryContestStore() *MemoryContestStore {
	return &MemoryContestStore{contests: make(map[string]model.Contest)}
}

// Create stores a copy of contest under a generated UUID.
func (s *MemoryContestStore) Create(_ context.Context, contest *model.Contest) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	contest.ID = uuid.New().String()
	s.contests[contest.ID] = copyContest(*contest)
	s.order = append(s.order, contest.ID)
	return nil
}

// Get returns a copy of the stored contest or ErrNotFound.
func (s *MemoryContestStore) Get(_ context.Context, id string) (*model.Contest, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	contest, ok := s.contests[id]
	if !ok {
		return nil, ErrNotFound
	}
	contest = copyContest(contest)
	return &contest, nil
}

// List returns all contests in insertion order.
func (s *MemoryContestStore) List(_ context.Context) ([]model.Contest, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	contests := make([]model.Contest, 0, len(s.order))
	for _, id := range s.order {
		contests = append(contests, copyContest(s.contests[id]))
	}
	return contests, nil
}

// Update overwrites the stored document for contest.ID, or ErrNotFound.
func (s *MemoryContestStore) Update(_ context.Context, contest *model.Contest) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.contests[contest.ID]; !ok {
		return ErrNotFound
	}
	s.contests[contest.ID] = copyContest(*contest)
	return nil
}

func copyContest(c model.Contest) model.Contest {
	if c.Names != nil {
		names := make([]string, len(c.Names))
		copy(names, c.Names)
		c.Names = names
	}
	return c
}

// MemoryWinnerStore is the in-memory WinnerStore counterpart.
type MemoryWinnerStore struct {
	mu     sync.RWMutex
	winner *model.WinnerRecord
}

// NewMemoryWinnerStore constructs an empty MemoryWinnerStore.
func NewMemoryWinnerStore() *MemoryWinnerStore {
	return &MemoryWinnerStore{}
}

// Create stores a copy of record under a generated UUID.
func (s *MemoryWinnerStore) Create(_ context.Context, record *model.WinnerRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	record.ID = uuid.New().String()
	rec := *record
	s.winner = &rec
	return nil
}

// First returns a copy of the stored record, or ErrNotFound when empty.
func (s *MemoryWinnerStore) First(_ context.Context) (*model.WinnerRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.winner == nil {
		return nil, ErrNotFound
	}
	rec := *s.winner
	return &rec, nil
}
