package repository

import (
	"context"

	"gorm.io/gorm"
)

// Scope types for sequential code assignment
const (
	ScopeProject = "project"
	ScopeTask    = "task"
	ScopeOffer   = "offer"
	ScopeInvoice = "invoice"
)

// CodeSequenceRepository hands out gap-free sequential numbers per scope.
// Projects count within their creation year, tasks, offers and invoices
// within their project.
type CodeSequenceRepository struct {
	db *gorm.DB
}

func NewCodeSequenceRepository(db *gorm.DB) *CodeSequenceRepository {
	return &CodeSequenceRepository{db: db}
}

// NextValue claims the next number in a scope with a single atomic upsert.
// The row lock taken by the conflict update serializes concurrent creators
// in the same scope until their transaction commits, so two creators never
// see the same value. Callers must pass the transaction the entity insert
// runs in; the claim rolls back with it.
func (r *CodeSequenceRepository) NextValue(ctx context.Context, tx *gorm.DB, scopeType, scopeKey string) (int, error) {
	var next int
	err := tx.WithContext(ctx).Raw(`
		INSERT INTO code_sequences (scope_type, scope_key, last_value, created_at, updated_at)
		VALUES (?, ?, 1, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)
		ON CONFLICT (scope_type, scope_key)
		DO UPDATE SET last_value = code_sequences.last_value + 1, updated_at = CURRENT_TIMESTAMP
		RETURNING last_value`,
		scopeType, scopeKey,
	).Scan(&next).Error
	if err != nil {
		return 0, err
	}
	return next, nil
}
