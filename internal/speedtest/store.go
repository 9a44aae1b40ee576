package speedtest

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// CondOp is a filter operator the store knows how to translate.
type CondOp string

const (
	OpEq   CondOp = "="
	OpLike CondOp = "LIKE"
)

// Cond is one AND-combined filter condition over a whitelisted column.
// Values are always bound as query parameters, never interpolated.
type Cond struct {
	Column string
	Op     CondOp
	Value  any
}

var filterableColumns = map[string]struct{}{
	"location": {},
	"country":  {},
	"city":     {},
	"address":  {},
}

// Store provides durable, append-only access to speed-test results. It is
// constructed once at startup and passed to every consumer; there is no
// package-level connection.
type Store struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

// Migrate creates or updates the speed_tests table.
func (s *Store) Migrate() error {
	return s.db.AutoMigrate(&Result{})
}

// Insert persists one result. It returns ErrDuplicateSubmission when the
// submission ID is already present; the unique index makes a race between two
// identical submissions resolve to exactly one stored row.
func (s *Store) Insert(ctx context.Context, result *Result) error {
	err := s.db.WithContext(ctx).Create(result).Error
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrDuplicateSubmission
	}
	return fmt.Errorf("inserting speed test: %w", err)
}

// Search returns every result matching the AND-combined conditions, most
// recent first. Columns outside the whitelist are rejected rather than
// silently ignored.
func (s *Store) Search(ctx context.Context, conds []Cond) ([]Result, error) {
	tx := s.db.WithContext(ctx).Model(&Result{})

	for _, c := range conds {
		if _, ok := filterableColumns[c.Column]; !ok {
			return nil, fmt.Errorf("filter on unsupported column %q", c.Column)
		}
		switch c.Op {
		case OpEq:
			tx = tx.Where(c.Column+" = ?", c.Value)
		case OpLike:
			tx = tx.Where(c.Column+" LIKE ?", fmt.Sprintf("%%%v%%", c.Value))
		default:
			return nil, fmt.Errorf("unsupported filter operator %q", c.Op)
		}
	}

	var results []Result
	if err := tx.Order("timestamp DESC").Find(&results).Error; err != nil {
		return nil, fmt.Errorf("querying speed tests: %w", err)
	}
	return results, nil
}
