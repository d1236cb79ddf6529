package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/mightenyip/yfd-py-analysis/internal/domain"
	"github.com/mightenyip/yfd-py-analysis/internal/storage"
)

// StrengthEntryStore is an in-memory implementation of storage.StrengthEntryStore.
type StrengthEntryStore struct {
	mu   sync.RWMutex
	data map[string]*domain.OpponentStrengthEntry // keyed by "TEAM|role"
}

// NewStrengthEntryStore creates a new in-memory strength entry store.
func NewStrengthEntryStore() *StrengthEntryStore {
	return &StrengthEntryStore{
		data: make(map[string]*domain.OpponentStrengthEntry),
	}
}

func strengthKey(team string, role domain.Role) string {
	return strings.ToUpper(strings.TrimSpace(team)) + "|" + string(role)
}

// Insert adds a new entry. Returns ErrDuplicateKey if (team, role) exists.
func (s *StrengthEntryStore) Insert(_ context.Context, e *domain.OpponentStrengthEntry) error {
	if e == nil || strings.TrimSpace(e.Team) == "" || e.Role == "" {
		return storage.ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	key := strengthKey(e.Team, e.Role)
	if _, exists := s.data[key]; exists {
		return storage.ErrDuplicateKey
	}

	copy := *e
	s.data[key] = &copy
	return nil
}

// InsertBulk adds multiple entries atomically. Fails entire batch on any duplicate.
func (s *StrengthEntryStore) InsertBulk(_ context.Context, entries []*domain.OpponentStrengthEntry) error {
	if len(entries) == 0 {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// Track keys in this batch to detect intra-batch duplicates
	batchKeys := make(map[string]struct{}, len(entries))

	// First pass: check for duplicates (existing + intra-batch)
	for _, e := range entries {
		if e == nil || strings.TrimSpace(e.Team) == "" || e.Role == "" {
			return storage.ErrInvalidInput
		}

		key := strengthKey(e.Team, e.Role)
		// Check existing data
		if _, exists := s.data[key]; exists {
			return storage.ErrDuplicateKey
		}
		// Check intra-batch duplicate
		if _, exists := batchKeys[key]; exists {
			return storage.ErrDuplicateKey
		}
		batchKeys[key] = struct{}{}
	}

	// Second pass: insert all
	for _, e := range entries {
		copy := *e
		s.data[strengthKey(e.Team, e.Role)] = &copy
	}

	return nil
}

// GetByTeamRole retrieves the entry for a team and role. Returns ErrNotFound if not exists.
func (s *StrengthEntryStore) GetByTeamRole(_ context.Context, team string, role domain.Role) (*domain.OpponentStrengthEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, exists := s.data[strengthKey(team, role)]
	if !exists {
		return nil, storage.ErrNotFound
	}

	copy := *e
	return &copy, nil
}

// GetByRole retrieves all entries for a role, ordered by rank ASC.
func (s *StrengthEntryStore) GetByRole(_ context.Context, role domain.Role) ([]*domain.OpponentStrengthEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []*domain.OpponentStrengthEntry
	for _, e := range s.data {
		if e.Role == role {
			copy := *e
			result = append(result, &copy)
		}
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].Rank < result[j].Rank
	})

	return result, nil
}

// GetAll retrieves all entries, ordered by role then rank.
func (s *StrengthEntryStore) GetAll(_ context.Context) ([]*domain.OpponentStrengthEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*domain.OpponentStrengthEntry, 0, len(s.data))
	for _, e := range s.data {
		copy := *e
		result = append(result, &copy)
	}

	sort.Slice(result, func(i, j int) bool {
		if result[i].Role != result[j].Role {
			return result[i].Role < result[j].Role
		}
		return result[i].Rank < result[j].Rank
	})

	return result, nil
}

var _ storage.StrengthEntryStore = (*StrengthEntryStore)(nil)
