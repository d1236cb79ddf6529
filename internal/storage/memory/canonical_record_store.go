package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/mightenyip/yfd-py-analysis/internal/domain"
	"github.com/mightenyip/yfd-py-analysis/internal/storage"
)

// CanonicalRecordStore is an in-memory implementation of storage.CanonicalRecordStore.
type CanonicalRecordStore struct {
	mu   sync.RWMutex
	data map[string]*domain.CanonicalRecord // keyed by record_id
}

// NewCanonicalRecordStore creates a new in-memory canonical record store.
func NewCanonicalRecordStore() *CanonicalRecordStore {
	return &CanonicalRecordStore{
		data: make(map[string]*domain.CanonicalRecord),
	}
}

// Insert adds a new record. Returns ErrDuplicateKey if record_id exists.
func (s *CanonicalRecordStore) Insert(_ context.Context, r *domain.CanonicalRecord) error {
	if r == nil || r.RecordID == "" {
		return storage.ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.data[r.RecordID]; exists {
		return storage.ErrDuplicateKey
	}

	copy := *r
	s.data[r.RecordID] = &copy
	return nil
}

// InsertBulk adds multiple records atomically. Fails entire batch on any duplicate.
func (s *CanonicalRecordStore) InsertBulk(_ context.Context, records []*domain.CanonicalRecord) error {
	if len(records) == 0 {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// Track keys in this batch to detect intra-batch duplicates
	batchKeys := make(map[string]struct{}, len(records))

	// First pass: check for duplicates (existing + intra-batch)
	for _, r := range records {
		if r == nil || r.RecordID == "" {
			return storage.ErrInvalidInput
		}

		// Check existing data
		if _, exists := s.data[r.RecordID]; exists {
			return storage.ErrDuplicateKey
		}
		// Check intra-batch duplicate
		if _, exists := batchKeys[r.RecordID]; exists {
			return storage.ErrDuplicateKey
		}
		batchKeys[r.RecordID] = struct{}{}
	}

	// Second pass: insert all
	for _, r := range records {
		copy := *r
		s.data[r.RecordID] = &copy
	}

	return nil
}

// GetByID retrieves a record by its ID. Returns ErrNotFound if not exists.
func (s *CanonicalRecordStore) GetByID(_ context.Context, recordID string) (*domain.CanonicalRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	r, exists := s.data[recordID]
	if !exists {
		return nil, storage.ErrNotFound
	}

	copy := *r
	return &copy, nil
}

// GetByWeek retrieves all records for a week, ordered by role then name.
func (s *CanonicalRecordStore) GetByWeek(_ context.Context, week int) ([]*domain.CanonicalRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []*domain.CanonicalRecord
	for _, r := range s.data {
		if r.Week == week {
			copy := *r
			result = append(result, &copy)
		}
	}

	sort.Slice(result, func(i, j int) bool {
		if result[i].Role != result[j].Role {
			return result[i].Role < result[j].Role
		}
		return result[i].Name < result[j].Name
	})

	return result, nil
}

// GetByRole retrieves records for a role across the given weeks, ordered
// by week then name. An empty week list means all weeks.
func (s *CanonicalRecordStore) GetByRole(_ context.Context, role domain.Role, weeks []int) ([]*domain.CanonicalRecord, error) {
	wanted := make(map[int]struct{}, len(weeks))
	for _, w := range weeks {
		wanted[w] = struct{}{}
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []*domain.CanonicalRecord
	for _, r := range s.data {
		if r.Role != role {
			continue
		}
		if len(wanted) > 0 {
			if _, ok := wanted[r.Week]; !ok {
				continue
			}
		}
		copy := *r
		result = append(result, &copy)
	}

	sort.Slice(result, func(i, j int) bool {
		if result[i].Week != result[j].Week {
			return result[i].Week < result[j].Week
		}
		return result[i].Name < result[j].Name
	})

	return result, nil
}

// GetAll retrieves all records, ordered by week, role, then name.
func (s *CanonicalRecordStore) GetAll(_ context.Context) ([]*domain.CanonicalRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*domain.CanonicalRecord, 0, len(s.data))
	for _, r := range s.data {
		copy := *r
		result = append(result, &copy)
	}

	sort.Slice(result, func(i, j int) bool {
		if result[i].Week != result[j].Week {
			return result[i].Week < result[j].Week
		}
		if result[i].Role != result[j].Role {
			return result[i].Role < result[j].Role
		}
		return result[i].Name < result[j].Name
	})

	return result, nil
}

var _ storage.CanonicalRecordStore = (*CanonicalRecordStore)(nil)
