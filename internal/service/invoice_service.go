package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/feinwerk/workbench-api/internal/domain"
	"github.com/feinwerk/workbench-api/internal/mapper"
	"github.com/feinwerk/workbench-api/internal/repository"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type InvoiceService struct {
	invoiceRepo *repository.InvoiceRepository
	projectRepo *repository.ProjectRepository
	offerRepo   *repository.OfferRepository
	logger      *zap.Logger
	now         func() time.Time
}

func NewInvoiceService(
	invoiceRepo *repository.InvoiceRepository,
	projectRepo *repository.ProjectRepository,
	offerRepo *repository.OfferRepository,
	logger *zap.Logger,
) *InvoiceService {
	return &InvoiceService{
		invoiceRepo: invoiceRepo,
		projectRepo: projectRepo,
		offerRepo:   offerRepo,
		logger:      logger,
		now:         time.Now,
	}
}

// Create bills a project. When an offer is named, its priced content
// seeds the invoice: the subtotal is the sum over the offer's service
// costs and the discount is the offer's discount.
func (s *InvoiceService) Create(ctx context.Context, req *domain.CreateInvoiceRequest) (*domain.InvoiceDTO, error) {
	project, err := s.projectRepo.GetByID(ctx, req.ProjectID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("project %d: %w", req.ProjectID, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to load project: %w", err)
	}
	if !project.Invoicing {
		errs := domain.ValidationErrors{}
		errs.Add("project", "This project cannot be invoiced.")
		return nil, errs
	}

	dueOn, err := mapper.ParseDatePtr(req.DueOn)
	if err != nil {
		return nil, fmt.Errorf("invalid due date: %w", ErrInvalidInput)
	}

	invoice := &domain.Invoice{
		ProjectID:   req.ProjectID,
		Title:       req.Title,
		Description: req.Description,
		OwnerID:     req.OwnerID,
		OwnerName:   req.OwnerName,
		Status:      domain.InvoiceInPreparation,
		DueOn:       dueOn,
		Subtotal:    req.Subtotal,
		Discount:    req.Discount,
		LiableToVAT: true,
	}
	if req.LiableToVAT != nil {
		invoice.LiableToVAT = *req.LiableToVAT
	}

	if req.OfferID != nil {
		offer, err := s.offerRepo.GetByID(ctx, *req.OfferID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, fmt.Errorf("offer %d: %w", *req.OfferID, ErrNotFound)
			}
			return nil, fmt.Errorf("failed to load offer: %w", err)
		}
		if offer.ProjectID != req.ProjectID {
			errs := domain.ValidationErrors{}
			errs.Add("offer", "Offer belongs to a different project.")
			return nil, errs
		}
		subtotal, err := s.offerRepo.SumServiceCost(ctx, offer.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to sum offer services: %w", err)
		}
		invoice.Subtotal = subtotal
		invoice.Discount = offer.Discount
		if req.LiableToVAT == nil {
			invoice.LiableToVAT = offer.LiableToVAT
		}
	}

	if err := s.invoiceRepo.Create(ctx, invoice); err != nil {
		return nil, fmt.Errorf("failed to create invoice: %w", err)
	}

	s.logger.Info("invoice created",
		zap.Uint("invoice_id", invoice.ID),
		zap.Uint("project_id", invoice.ProjectID))

	return s.GetByID(ctx, invoice.ID)
}

func (s *InvoiceService) GetByID(ctx context.Context, id uint) (*domain.InvoiceDTO, error) {
	invoice, err := s.invoiceRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get invoice: %w", err)
	}

	dto := mapper.ToInvoiceDTO(invoice, s.now())
	return &dto, nil
}

func (s *InvoiceService) List(ctx context.Context, page, pageSize int, filters repository.InvoiceFilters) ([]domain.InvoiceDTO, int64, error) {
	invoices, total, err := s.invoiceRepo.List(ctx, page, pageSize, filters)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list invoices: %w", err)
	}

	today := s.now()
	dtos := make([]domain.InvoiceDTO, len(invoices))
	for i := range invoices {
		dtos[i] = mapper.ToInvoiceDTO(&invoices[i], today)
	}
	return dtos, total, nil
}

func (s *InvoiceService) Update(ctx context.Context, id uint, req *domain.UpdateInvoiceRequest) (*domain.InvoiceDTO, error) {
	invoice, err := s.invoiceRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get invoice: %w", err)
	}

	dueOn, err := mapper.ParseDatePtr(req.DueOn)
	if err != nil {
		return nil, fmt.Errorf("invalid due date: %w", ErrInvalidInput)
	}

	invoice.Title = req.Title
	invoice.Description = req.Description
	invoice.OwnerID = req.OwnerID
	invoice.OwnerName = req.OwnerName
	invoice.Subtotal = req.Subtotal
	invoice.Discount = req.Discount
	invoice.DueOn = dueOn
	if req.LiableToVAT != nil {
		invoice.LiableToVAT = *req.LiableToVAT
	}

	if err := s.invoiceRepo.Update(ctx, invoice); err != nil {
		return nil, fmt.Errorf("failed to update invoice: %w", err)
	}

	return s.GetByID(ctx, invoice.ID)
}

// UpdateStatus moves an invoice through its lifecycle. Everything past
// preparation needs the invoiced-on date; paying stamps the closing date.
func (s *InvoiceService) UpdateStatus(ctx context.Context, id uint, req *domain.UpdateInvoiceStatusRequest) (*domain.InvoiceDTO, error) {
	invoice, err := s.invoiceRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get invoice: %w", err)
	}

	invoicedOn, err := mapper.ParseDatePtr(req.InvoicedOn)
	if err != nil {
		return nil, fmt.Errorf("invalid invoice date: %w", ErrInvalidInput)
	}
	closedOn, err := mapper.ParseDatePtr(req.ClosedOn)
	if err != nil {
		return nil, fmt.Errorf("invalid closing date: %w", ErrInvalidInput)
	}

	invoice.Status = req.Status
	if invoicedOn != nil {
		invoice.InvoicedOn = invoicedOn
	}

	switch req.Status {
	case domain.InvoicePaid, domain.InvoiceCanceled:
		if closedOn == nil {
			today := dateOf(s.now())
			closedOn = &today
		}
		invoice.ClosedOn = closedOn
	case domain.InvoiceInPreparation:
		invoice.InvoicedOn = nil
		invoice.ClosedOn = nil
	default:
		invoice.ClosedOn = nil
	}

	if err := domain.ValidateInvoiceTransition(invoice); err != nil {
		return nil, err
	}

	if err := s.invoiceRepo.Update(ctx, invoice); err != nil {
		return nil, fmt.Errorf("failed to update invoice status: %w", err)
	}

	s.logger.Info("invoice status changed",
		zap.Uint("invoice_id", invoice.ID),
		zap.Int("status", int(invoice.Status)))

	return s.GetByID(ctx, invoice.ID)
}

// Delete removes an invoice still in preparation. Sent invoices are
// canceled, never deleted.
func (s *InvoiceService) Delete(ctx context.Context, id uint) error {
	invoice, err := s.invoiceRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to get invoice: %w", err)
	}

	if invoice.Status != domain.InvoiceInPreparation {
		return fmt.Errorf("invoice already left preparation: %w", ErrProtected)
	}

	if err := s.invoiceRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete invoice: %w", err)
	}
	s.logger.Info("invoice deleted", zap.Uint("invoice_id", id))
	return nil
}

// Recurring invoice templates

func (s *InvoiceService) CreateRecurring(ctx context.Context, req *domain.CreateRecurringInvoiceRequest) (*domain.RecurringInvoiceDTO, error) {
	project, err := s.projectRepo.GetByID(ctx, req.ProjectID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("project %d: %w", req.ProjectID, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to load project: %w", err)
	}
	if !project.Invoicing {
		errs := domain.ValidationErrors{}
		errs.Add("project", "This project cannot be invoiced.")
		return nil, errs
	}

	startsOn, err := mapper.ParseDate(req.StartsOn)
	if err != nil {
		return nil, fmt.Errorf("invalid start date: %w", ErrInvalidInput)
	}
	endsOn, err := mapper.ParseDatePtr(req.EndsOn)
	if err != nil {
		return nil, fmt.Errorf("invalid end date: %w", ErrInvalidInput)
	}

	ri := &domain.RecurringInvoice{
		ProjectID:          req.ProjectID,
		Title:              req.Title,
		Description:        req.Description,
		OwnerID:            req.OwnerID,
		OwnerName:          req.OwnerName,
		Periodicity:        req.Periodicity,
		StartsOn:           startsOn,
		EndsOn:             endsOn,
		NextPeriodStartsOn: startsOn,
		Subtotal:           req.Subtotal,
		LiableToVAT:        true,
	}
	if req.LiableToVAT != nil {
		ri.LiableToVAT = *req.LiableToVAT
	}

	if err := domain.ValidateRecurringInvoice(ri); err != nil {
		return nil, err
	}

	if err := s.invoiceRepo.CreateRecurring(ctx, ri); err != nil {
		return nil, fmt.Errorf("failed to create recurring invoice: %w", err)
	}

	dto := mapper.ToRecurringInvoiceDTO(ri)
	return &dto, nil
}

func (s *InvoiceService) GetRecurringByID(ctx context.Context, id uint) (*domain.RecurringInvoiceDTO, error) {
	ri, err := s.invoiceRepo.GetRecurringByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get recurring invoice: %w", err)
	}

	dto := mapper.ToRecurringInvoiceDTO(ri)
	return &dto, nil
}

func (s *InvoiceService) ListRecurring(ctx context.Context, projectID *uint) ([]domain.RecurringInvoiceDTO, error) {
	templates, err := s.invoiceRepo.ListRecurring(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to list recurring invoices: %w", err)
	}

	dtos := make([]domain.RecurringInvoiceDTO, len(templates))
	for i := range templates {
		dtos[i] = mapper.ToRecurringInvoiceDTO(&templates[i])
	}
	return dtos, nil
}

func (s *InvoiceService) UpdateRecurring(ctx context.Context, id uint, req *domain.UpdateRecurringInvoiceRequest) (*domain.RecurringInvoiceDTO, error) {
	ri, err := s.invoiceRepo.GetRecurringByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get recurring invoice: %w", err)
	}

	endsOn, err := mapper.ParseDatePtr(req.EndsOn)
	if err != nil {
		return nil, fmt.Errorf("invalid end date: %w", ErrInvalidInput)
	}

	ri.Project = nil
	ri.Title = req.Title
	ri.Description = req.Description
	ri.OwnerID = req.OwnerID
	ri.OwnerName = req.OwnerName
	ri.Periodicity = req.Periodicity
	ri.EndsOn = endsOn
	ri.Subtotal = req.Subtotal
	if req.LiableToVAT != nil {
		ri.LiableToVAT = *req.LiableToVAT
	}

	if err := domain.ValidateRecurringInvoice(ri); err != nil {
		return nil, err
	}

	if err := s.invoiceRepo.UpdateRecurring(ctx, ri); err != nil {
		return nil, fmt.Errorf("failed to update recurring invoice: %w", err)
	}

	return s.GetRecurringByID(ctx, ri.ID)
}

func (s *InvoiceService) DeleteRecurring(ctx context.Context, id uint) error {
	if _, err := s.invoiceRepo.GetRecurringByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to get recurring invoice: %w", err)
	}
	if err := s.invoiceRepo.DeleteRecurring(ctx, id); err != nil {
		return fmt.Errorf("failed to delete recurring invoice: %w", err)
	}
	return nil
}

// CreateDueInvoices materializes invoices for every recurring template
// whose next period has started. A template that fell behind catches up
// with one invoice per elapsed period. Returns the created invoices.
func (s *InvoiceService) CreateDueInvoices(ctx context.Context) ([]domain.InvoiceDTO, error) {
	today := dateOf(s.now())

	templates, err := s.invoiceRepo.ListRecurringDue(ctx, today)
	if err != nil {
		return nil, fmt.Errorf("failed to list due templates: %w", err)
	}

	var created []domain.InvoiceDTO
	for i := range templates {
		ri := &templates[i]
		for !ri.NextPeriodStartsOn.After(today) {
			if ri.EndsOn != nil && ri.NextPeriodStartsOn.After(*ri.EndsOn) {
				break
			}

			periodStart := ri.NextPeriodStartsOn
			invoicedOn := periodStart
			invoice := &domain.Invoice{
				ProjectID:   ri.ProjectID,
				Title:       fmt.Sprintf("%s (%s)", ri.Title, domain.FormatDate(periodStart)),
				Description: ri.Description,
				OwnerID:     ri.OwnerID,
				OwnerName:   ri.OwnerName,
				Status:      domain.InvoiceInPreparation,
				InvoicedOn:  &invoicedOn,
				Subtotal:    ri.Subtotal,
				LiableToVAT: ri.LiableToVAT,
			}
			if err := s.invoiceRepo.Create(ctx, invoice); err != nil {
				return created, fmt.Errorf("failed to create invoice for template %d: %w", ri.ID, err)
			}

			ri.Project = nil
			ri.NextPeriodStartsOn = ri.Periodicity.NextDate(periodStart)
			if err := s.invoiceRepo.UpdateRecurring(ctx, ri); err != nil {
				return created, fmt.Errorf("failed to advance template %d: %w", ri.ID, err)
			}

			dto, err := s.GetByID(ctx, invoice.ID)
			if err != nil {
				return created, err
			}
			created = append(created, *dto)

			s.logger.Info("recurring invoice materialized",
				zap.Uint("template_id", ri.ID),
				zap.Uint("invoice_id", invoice.ID),
				zap.String("period_start", domain.FormatDate(periodStart)))
		}
	}

	return created, nil
}
