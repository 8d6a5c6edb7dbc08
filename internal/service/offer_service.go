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

type OfferService struct {
	offerRepo   *repository.OfferRepository
	projectRepo *repository.ProjectRepository
	logger      *zap.Logger
	now         func() time.Time
}

func NewOfferService(
	offerRepo *repository.OfferRepository,
	projectRepo *repository.ProjectRepository,
	logger *zap.Logger,
) *OfferService {
	return &OfferService{
		offerRepo:   offerRepo,
		projectRepo: projectRepo,
		logger:      logger,
		now:         time.Now,
	}
}

func (s *OfferService) Create(ctx context.Context, req *domain.CreateOfferRequest) (*domain.OfferDTO, error) {
	if _, err := s.projectRepo.GetByID(ctx, req.ProjectID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("project %d: %w", req.ProjectID, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to load project: %w", err)
	}

	offer := &domain.Offer{
		ProjectID:     req.ProjectID,
		Title:         req.Title,
		Description:   req.Description,
		OwnerID:       req.OwnerID,
		OwnerName:     req.OwnerName,
		Status:        domain.OfferInPreparation,
		PostalAddress: req.PostalAddress,
		Discount:      req.Discount,
		LiableToVAT:   true,
	}
	if req.LiableToVAT != nil {
		offer.LiableToVAT = *req.LiableToVAT
	}

	offer.Services = make([]domain.Service, len(req.Services))
	for i, svc := range req.Services {
		offer.Services[i] = domain.Service{
			Title:         svc.Title,
			Description:   svc.Description,
			ApprovedHours: svc.ApprovedHours,
			Cost:          svc.Cost,
			Position:      svc.Position,
		}
	}

	if err := s.offerRepo.Create(ctx, offer); err != nil {
		return nil, fmt.Errorf("failed to create offer: %w", err)
	}

	s.logger.Info("offer created",
		zap.Uint("offer_id", offer.ID),
		zap.Uint("project_id", offer.ProjectID))

	return s.GetByID(ctx, offer.ID)
}

func (s *OfferService) GetByID(ctx context.Context, id uint) (*domain.OfferDTO, error) {
	offer, err := s.offerRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get offer: %w", err)
	}

	dto := mapper.ToOfferDTO(offer)
	return &dto, nil
}

func (s *OfferService) ListByProject(ctx context.Context, projectID uint) ([]domain.OfferDTO, error) {
	offers, err := s.offerRepo.ListByProject(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to list offers: %w", err)
	}

	dtos := make([]domain.OfferDTO, len(offers))
	for i := range offers {
		dtos[i] = mapper.ToOfferDTO(&offers[i])
	}
	return dtos, nil
}

func (s *OfferService) Update(ctx context.Context, id uint, req *domain.UpdateOfferRequest) (*domain.OfferDTO, error) {
	offer, err := s.offerRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get offer: %w", err)
	}

	offer.Title = req.Title
	offer.Description = req.Description
	offer.OwnerID = req.OwnerID
	offer.OwnerName = req.OwnerName
	offer.PostalAddress = req.PostalAddress
	offer.Discount = req.Discount
	if req.LiableToVAT != nil {
		offer.LiableToVAT = *req.LiableToVAT
	}

	if err := s.offerRepo.Update(ctx, offer); err != nil {
		return nil, fmt.Errorf("failed to update offer: %w", err)
	}

	return s.GetByID(ctx, offer.ID)
}

// UpdateStatus moves an offer through its lifecycle. Everything past
// preparation needs the offered-on date; accepting or rejecting stamps
// the closing date.
func (s *OfferService) UpdateStatus(ctx context.Context, id uint, req *domain.UpdateOfferStatusRequest) (*domain.OfferDTO, error) {
	offer, err := s.offerRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get offer: %w", err)
	}

	offeredOn, err := mapper.ParseDatePtr(req.OfferedOn)
	if err != nil {
		return nil, fmt.Errorf("invalid offered date: %w", ErrInvalidInput)
	}
	closedOn, err := mapper.ParseDatePtr(req.ClosedOn)
	if err != nil {
		return nil, fmt.Errorf("invalid closing date: %w", ErrInvalidInput)
	}

	offer.Status = req.Status
	if offeredOn != nil {
		offer.OfferedOn = offeredOn
	}

	switch req.Status {
	case domain.OfferAccepted, domain.OfferRejected, domain.OfferReplaced:
		if closedOn == nil {
			today := dateOf(s.now())
			closedOn = &today
		}
		offer.ClosedOn = closedOn
	case domain.OfferInPreparation:
		offer.OfferedOn = nil
		offer.ClosedOn = nil
	case domain.OfferOffered:
		offer.ClosedOn = nil
	}

	if err := domain.ValidateOfferTransition(offer); err != nil {
		return nil, err
	}

	if err := s.offerRepo.Update(ctx, offer); err != nil {
		return nil, fmt.Errorf("failed to update offer status: %w", err)
	}

	s.logger.Info("offer status changed",
		zap.Uint("offer_id", offer.ID),
		zap.Int("status", int(offer.Status)))

	return s.GetByID(ctx, offer.ID)
}

// Delete removes an offer whose services carry no tasks
func (s *OfferService) Delete(ctx context.Context, id uint) error {
	offer, err := s.offerRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to get offer: %w", err)
	}

	for _, svc := range offer.Services {
		refs, err := s.offerRepo.CountServiceReferences(ctx, svc.ID)
		if err != nil {
			return fmt.Errorf("failed to count service references: %w", err)
		}
		if refs > 0 {
			return fmt.Errorf("service %d has %d tasks: %w", svc.ID, refs, ErrProtected)
		}
	}

	if err := s.offerRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete offer: %w", err)
	}
	s.logger.Info("offer deleted", zap.Uint("offer_id", id))
	return nil
}

// Service lines

func (s *OfferService) AddService(ctx context.Context, offerID uint, req *domain.ServiceInput) (*domain.ServiceDTO, error) {
	if _, err := s.offerRepo.GetByID(ctx, offerID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("offer %d: %w", offerID, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to load offer: %w", err)
	}

	service := &domain.Service{
		OfferID:       offerID,
		Title:         req.Title,
		Description:   req.Description,
		ApprovedHours: req.ApprovedHours,
		Cost:          req.Cost,
		Position:      req.Position,
	}

	if err := s.offerRepo.CreateService(ctx, service); err != nil {
		return nil, fmt.Errorf("failed to create service: %w", err)
	}

	dto := mapper.ToServiceDTO(service)
	return &dto, nil
}

func (s *OfferService) UpdateService(ctx context.Context, serviceID uint, req *domain.ServiceInput) (*domain.ServiceDTO, error) {
	service, err := s.offerRepo.GetServiceByID(ctx, serviceID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get service: %w", err)
	}

	service.Offer = nil
	service.Title = req.Title
	service.Description = req.Description
	service.ApprovedHours = req.ApprovedHours
	service.Cost = req.Cost
	service.Position = req.Position

	if err := s.offerRepo.UpdateService(ctx, service); err != nil {
		return nil, fmt.Errorf("failed to update service: %w", err)
	}

	dto := mapper.ToServiceDTO(service)
	return &dto, nil
}

// DeleteService removes a service line without tasks
func (s *OfferService) DeleteService(ctx context.Context, serviceID uint) error {
	if _, err := s.offerRepo.GetServiceByID(ctx, serviceID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to get service: %w", err)
	}

	refs, err := s.offerRepo.CountServiceReferences(ctx, serviceID)
	if err != nil {
		return fmt.Errorf("failed to count service references: %w", err)
	}
	if refs > 0 {
		return fmt.Errorf("service has %d tasks: %w", refs, ErrProtected)
	}

	if err := s.offerRepo.DeleteService(ctx, serviceID); err != nil {
		return fmt.Errorf("failed to delete service: %w", err)
	}
	return nil
}
