package repository

import (
	"context"
	"strconv"

	"github.com/feinwerk/workbench-api/internal/domain"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type OfferRepository struct {
	db        *gorm.DB
	sequences *CodeSequenceRepository
}

func NewOfferRepository(db *gorm.DB, sequences *CodeSequenceRepository) *OfferRepository {
	return &OfferRepository{db: db, sequences: sequences}
}

// Create inserts an offer with its services and claims its code number in
// one transaction. Codes count up within the offer's project.
func (r *OfferRepository) Create(ctx context.Context, offer *domain.Offer) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		n, err := r.sequences.NextValue(ctx, tx, ScopeOffer, strconv.FormatUint(uint64(offer.ProjectID), 10))
		if err != nil {
			return err
		}
		offer.CodeNumber = n
		return tx.Create(offer).Error
	})
}

func (r *OfferRepository) GetByID(ctx context.Context, id uint) (*domain.Offer, error) {
	var offer domain.Offer
	err := r.db.WithContext(ctx).
		Preload("Project").
		Preload("Services", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC, id ASC")
		}).
		First(&offer, id).Error
	if err != nil {
		return nil, err
	}
	return &offer, nil
}

func (r *OfferRepository) Update(ctx context.Context, offer *domain.Offer) error {
	return r.db.WithContext(ctx).Omit("Services").Save(offer).Error
}

func (r *OfferRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("offer_id = ?", id).Delete(&domain.Service{}).Error; err != nil {
			return err
		}
		return tx.Delete(&domain.Offer{}, id).Error
	})
}

func (r *OfferRepository) ListByProject(ctx context.Context, projectID uint) ([]domain.Offer, error) {
	var offers []domain.Offer
	err := r.db.WithContext(ctx).
		Preload("Project").
		Preload("Services", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC, id ASC")
		}).
		Where("project_id = ?", projectID).
		Order("code_number ASC").
		Find(&offers).Error
	return offers, err
}

// Service line handling

func (r *OfferRepository) CreateService(ctx context.Context, service *domain.Service) error {
	return r.db.WithContext(ctx).Create(service).Error
}

func (r *OfferRepository) GetServiceByID(ctx context.Context, id uint) (*domain.Service, error) {
	var service domain.Service
	err := r.db.WithContext(ctx).Preload("Offer").First(&service, id).Error
	if err != nil {
		return nil, err
	}
	return &service, nil
}

func (r *OfferRepository) UpdateService(ctx context.Context, service *domain.Service) error {
	return r.db.WithContext(ctx).Save(service).Error
}

func (r *OfferRepository) DeleteService(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&domain.Service{}, id).Error
}

// CountServiceReferences counts tasks assigned to a service. Services
// with tasks must not be deleted.
func (r *OfferRepository) CountServiceReferences(ctx context.Context, serviceID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.Task{}).Where("service_id = ?", serviceID).Count(&count).Error
	return count, err
}

// SumServiceCost computes an offer's subtotal from its service lines
func (r *OfferRepository) SumServiceCost(ctx context.Context, offerID uint) (decimal.Decimal, error) {
	var subtotal decimal.Decimal
	err := r.db.WithContext(ctx).
		Model(&domain.Service{}).
		Where("offer_id = ?", offerID).
		Select("COALESCE(SUM(cost), 0)").
		Scan(&subtotal).Error
	return subtotal, err
}

// SumApprovedHoursByProject totals approved hours across the services of
// all offers under a project
func (r *OfferRepository) SumApprovedHoursByProject(ctx context.Context, projectID uint) (decimal.Decimal, error) {
	var hours decimal.Decimal
	err := r.db.WithContext(ctx).
		Model(&domain.Service{}).
		Joins("JOIN offers ON offers.id = services.offer_id").
		Where("offers.project_id = ?", projectID).
		Select("COALESCE(SUM(services.approved_hours), 0)").
		Scan(&hours).Error
	return hours, err
}
