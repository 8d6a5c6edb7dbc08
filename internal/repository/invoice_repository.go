package repository

import (
	"context"
	"strconv"
	"time"

	"github.com/feinwerk/workbench-api/internal/domain"
	"gorm.io/gorm"
)

// InvoiceFilters narrows invoice list queries
type InvoiceFilters struct {
	ProjectID *uint
	Status    *domain.InvoiceStatus
	OwnerID   string
}

type InvoiceRepository struct {
	db        *gorm.DB
	sequences *CodeSequenceRepository
}

func NewInvoiceRepository(db *gorm.DB, sequences *CodeSequenceRepository) *InvoiceRepository {
	return &InvoiceRepository{db: db, sequences: sequences}
}

// Create inserts an invoice and claims its code number in one
// transaction. Codes count up within the invoice's project.
func (r *InvoiceRepository) Create(ctx context.Context, invoice *domain.Invoice) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		n, err := r.sequences.NextValue(ctx, tx, ScopeInvoice, strconv.FormatUint(uint64(invoice.ProjectID), 10))
		if err != nil {
			return err
		}
		invoice.CodeNumber = n
		return tx.Create(invoice).Error
	})
}

func (r *InvoiceRepository) GetByID(ctx context.Context, id uint) (*domain.Invoice, error) {
	var invoice domain.Invoice
	err := r.db.WithContext(ctx).Preload("Project").First(&invoice, id).Error
	if err != nil {
		return nil, err
	}
	return &invoice, nil
}

func (r *InvoiceRepository) Update(ctx context.Context, invoice *domain.Invoice) error {
	return r.db.WithContext(ctx).Save(invoice).Error
}

func (r *InvoiceRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&domain.Invoice{}, id).Error
}

func (r *InvoiceRepository) List(ctx context.Context, page, pageSize int, filters InvoiceFilters) ([]domain.Invoice, int64, error) {
	var invoices []domain.Invoice
	var total int64

	query := r.db.WithContext(ctx).Model(&domain.Invoice{})

	if filters.ProjectID != nil {
		query = query.Where("project_id = ?", *filters.ProjectID)
	}
	if filters.Status != nil {
		query = query.Where("status = ?", *filters.Status)
	}
	if filters.OwnerID != "" {
		query = query.Where("owner_id = ?", filters.OwnerID)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	err := query.
		Preload("Project").
		Offset(offset).Limit(pageSize).
		Order("created_at DESC").
		Find(&invoices).Error

	return invoices, total, err
}

// Recurring invoice templates

func (r *InvoiceRepository) CreateRecurring(ctx context.Context, ri *domain.RecurringInvoice) error {
	return r.db.WithContext(ctx).Create(ri).Error
}

func (r *InvoiceRepository) GetRecurringByID(ctx context.Context, id uint) (*domain.RecurringInvoice, error) {
	var ri domain.RecurringInvoice
	err := r.db.WithContext(ctx).Preload("Project").First(&ri, id).Error
	if err != nil {
		return nil, err
	}
	return &ri, nil
}

func (r *InvoiceRepository) UpdateRecurring(ctx context.Context, ri *domain.RecurringInvoice) error {
	return r.db.WithContext(ctx).Save(ri).Error
}

func (r *InvoiceRepository) DeleteRecurring(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&domain.RecurringInvoice{}, id).Error
}

func (r *InvoiceRepository) ListRecurring(ctx context.Context, projectID *uint) ([]domain.RecurringInvoice, error) {
	var templates []domain.RecurringInvoice
	query := r.db.WithContext(ctx).Preload("Project")
	if projectID != nil {
		query = query.Where("project_id = ?", *projectID)
	}
	err := query.Order("id ASC").Find(&templates).Error
	return templates, err
}

// ListRecurringDue returns templates whose next period has started and
// whose end date, if any, has not passed.
func (r *InvoiceRepository) ListRecurringDue(ctx context.Context, today time.Time) ([]domain.RecurringInvoice, error) {
	var templates []domain.RecurringInvoice
	err := r.db.WithContext(ctx).
		Preload("Project").
		Where("next_period_starts_on <= ?", today).
		Where("ends_on IS NULL OR ends_on >= next_period_starts_on").
		Order("id ASC").
		Find(&templates).Error
	return templates, err
}
