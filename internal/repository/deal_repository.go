package repository

import (
	"context"

	"github.com/feinwerk/workbench-api/internal/domain"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// DealFilters narrows deal list queries
type DealFilters struct {
	Status     *domain.DealStatus
	CustomerID *uint
	OwnerID    string
}

type DealRepository struct {
	db *gorm.DB
}

func NewDealRepository(db *gorm.DB) *DealRepository {
	return &DealRepository{db: db}
}

// Create inserts a deal together with its values in one transaction
func (r *DealRepository) Create(ctx context.Context, deal *domain.Deal) error {
	return r.db.WithContext(ctx).Create(deal).Error
}

func (r *DealRepository) GetByID(ctx context.Context, id uint) (*domain.Deal, error) {
	var deal domain.Deal
	err := r.db.WithContext(ctx).
		Preload("Customer").
		Preload("Contact").
		Preload("ClosingType").
		Preload("Values.Type").
		Preload("Attributes.Group").
		First(&deal, id).Error
	if err != nil {
		return nil, err
	}
	return &deal, nil
}

func (r *DealRepository) Update(ctx context.Context, deal *domain.Deal) error {
	return r.db.WithContext(ctx).Omit("Attributes").Save(deal).Error
}

// ReplaceAttributes swaps a deal's attribute selection for the given set.
func (r *DealRepository) ReplaceAttributes(ctx context.Context, deal *domain.Deal, attrs []domain.Attribute) error {
	return r.db.WithContext(ctx).Model(deal).Association("Attributes").Replace(attrs)
}

// ReplaceValues swaps a deal's value rows for the given set. Runs in a
// transaction so the deal total never reflects a half-applied edit.
func (r *DealRepository) ReplaceValues(ctx context.Context, dealID uint, values []domain.DealValue) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("deal_id = ?", dealID).Delete(&domain.DealValue{}).Error; err != nil {
			return err
		}
		for i := range values {
			values[i].ID = 0
			values[i].DealID = dealID
		}
		if len(values) == 0 {
			return nil
		}
		return tx.Create(&values).Error
	})
}

func (r *DealRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("deal_id = ?", id).Delete(&domain.DealValue{}).Error; err != nil {
			return err
		}
		if err := tx.Exec("DELETE FROM deal_attributes WHERE deal_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&domain.Deal{}, id).Error
	})
}

func (r *DealRepository) List(ctx context.Context, page, pageSize int, filters DealFilters) ([]domain.Deal, int64, error) {
	var deals []domain.Deal
	var total int64

	query := r.db.WithContext(ctx).Model(&domain.Deal{})

	if filters.Status != nil {
		query = query.Where("status = ?", *filters.Status)
	}
	if filters.CustomerID != nil {
		query = query.Where("customer_id = ?", *filters.CustomerID)
	}
	if filters.OwnerID != "" {
		query = query.Where("owner_id = ?", filters.OwnerID)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	err := query.
		Preload("Customer").
		Preload("Values.Type").
		Offset(offset).Limit(pageSize).
		Order("created_at DESC").
		Find(&deals).Error

	return deals, total, err
}

// ListOpen returns all open deals with their values for pipeline views
func (r *DealRepository) ListOpen(ctx context.Context) ([]domain.Deal, error) {
	var deals []domain.Deal
	err := r.db.WithContext(ctx).
		Preload("Customer").
		Preload("Values.Type").
		Where("status = ?", domain.DealOpen).
		Order("decision_expected_on ASC NULLS LAST, created_at ASC").
		Find(&deals).Error
	return deals, err
}

// SumValues computes a deal's total from its value rows
func (r *DealRepository) SumValues(ctx context.Context, dealID uint) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := r.db.WithContext(ctx).
		Model(&domain.DealValue{}).
		Where("deal_id = ?", dealID).
		Select("COALESCE(SUM(value), 0)").
		Scan(&total).Error
	return total, err
}
