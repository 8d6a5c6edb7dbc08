package repository

import (
	"context"

	"github.com/feinwerk/workbench-api/internal/domain"
	"gorm.io/gorm"
)

type ClosingTypeRepository struct {
	db *gorm.DB
}

func NewClosingTypeRepository(db *gorm.DB) *ClosingTypeRepository {
	return &ClosingTypeRepository{db: db}
}

func (r *ClosingTypeRepository) Create(ctx context.Context, ct *domain.ClosingType) error {
	return r.db.WithContext(ctx).Create(ct).Error
}

func (r *ClosingTypeRepository) GetByID(ctx context.Context, id uint) (*domain.ClosingType, error) {
	var ct domain.ClosingType
	err := r.db.WithContext(ctx).First(&ct, id).Error
	if err != nil {
		return nil, err
	}
	return &ct, nil
}

func (r *ClosingTypeRepository) Update(ctx context.Context, ct *domain.ClosingType) error {
	return r.db.WithContext(ctx).Save(ct).Error
}

func (r *ClosingTypeRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&domain.ClosingType{}, id).Error
}

func (r *ClosingTypeRepository) List(ctx context.Context) ([]domain.ClosingType, error) {
	var types []domain.ClosingType
	err := r.db.WithContext(ctx).Order("position ASC, id ASC").Find(&types).Error
	return types, err
}

// CountReferences counts closed deals pointing at a closing type. A type
// in use must not be deleted.
func (r *ClosingTypeRepository) CountReferences(ctx context.Context, typeID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.Deal{}).Where("closing_type_id = ?", typeID).Count(&count).Error
	return count, err
}
