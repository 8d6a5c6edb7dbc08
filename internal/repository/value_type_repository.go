package repository

import (
	"context"

	"github.com/feinwerk/workbench-api/internal/domain"
	"gorm.io/gorm"
)

type ValueTypeRepository struct {
	db *gorm.DB
}

func NewValueTypeRepository(db *gorm.DB) *ValueTypeRepository {
	return &ValueTypeRepository{db: db}
}

func (r *ValueTypeRepository) Create(ctx context.Context, vt *domain.ValueType) error {
	return r.db.WithContext(ctx).Create(vt).Error
}

func (r *ValueTypeRepository) GetByID(ctx context.Context, id uint) (*domain.ValueType, error) {
	var vt domain.ValueType
	err := r.db.WithContext(ctx).First(&vt, id).Error
	if err != nil {
		return nil, err
	}
	return &vt, nil
}

func (r *ValueTypeRepository) Update(ctx context.Context, vt *domain.ValueType) error {
	return r.db.WithContext(ctx).Save(vt).Error
}

func (r *ValueTypeRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&domain.ValueType{}, id).Error
}

// List returns value types ordered by position. Archived types are kept
// out unless includeArchived is set; existing deal values keep rendering
// their archived type.
func (r *ValueTypeRepository) List(ctx context.Context, includeArchived bool) ([]domain.ValueType, error) {
	var types []domain.ValueType
	query := r.db.WithContext(ctx).Model(&domain.ValueType{})
	if !includeArchived {
		query = query.Where("is_archived = ?", false)
	}
	err := query.Order("position ASC, id ASC").Find(&types).Error
	return types, err
}

// CountReferences counts deal values pointing at a value type. A type in
// use must not be deleted, only archived.
func (r *ValueTypeRepository) CountReferences(ctx context.Context, typeID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.DealValue{}).Where("type_id = ?", typeID).Count(&count).Error
	return count, err
}
