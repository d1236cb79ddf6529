package storage

import (
	"context"

	"github.com/mightenyip/yfd-py-analysis/internal/domain"
)

// CanonicalRecordStore provides access to deduplicated participant
// records.
type CanonicalRecordStore interface {
	// Insert adds a new record. Returns ErrDuplicateKey if record_id exists.
	Insert(ctx context.Context, r *domain.CanonicalRecord) error

	// InsertBulk adds multiple records atomically. Fails entire batch on any duplicate.
	InsertBulk(ctx context.Context, records []*domain.CanonicalRecord) error

	// GetByID retrieves a record by its ID. Returns ErrNotFound if not exists.
	GetByID(ctx context.Context, recordID string) (*domain.CanonicalRecord, error)

	// GetByWeek retrieves all records for a week, ordered by role then name.
	GetByWeek(ctx context.Context, week int) ([]*domain.CanonicalRecord, error)

	// GetByRole retrieves records for a role across the given weeks, ordered
	// by week then name. An empty week list means all weeks.
	GetByRole(ctx context.Context, role domain.Role, weeks []int) ([]*domain.CanonicalRecord, error)

	// GetAll retrieves all records, ordered by week, role, then name.
	GetAll(ctx context.Context) ([]*domain.CanonicalRecord, error)
}

// StrengthEntryStore provides access to opponent strength rankings.
type StrengthEntryStore interface {
	// Insert adds a new entry. Returns ErrDuplicateKey if (team, role) exists.
	Insert(ctx context.Context, e *domain.OpponentStrengthEntry) error

	// InsertBulk adds multiple entries atomically. Fails entire batch on any duplicate.
	InsertBulk(ctx context.Context, entries []*domain.OpponentStrengthEntry) error

	// GetByTeamRole retrieves the entry for a team and role. Returns ErrNotFound if not exists.
	GetByTeamRole(ctx context.Context, team string, role domain.Role) (*domain.OpponentStrengthEntry, error)

	// GetByRole retrieves all entries for a role, ordered by rank ASC.
	GetByRole(ctx context.Context, role domain.Role) ([]*domain.OpponentStrengthEntry, error)

	// GetAll retrieves all entries, ordered by role then rank.
	GetAll(ctx context.Context) ([]*domain.OpponentStrengthEntry, error)
}
