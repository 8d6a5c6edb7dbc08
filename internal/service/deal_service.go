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

type DealService struct {
	dealRepo        *repository.DealRepository
	customerRepo    *repository.CustomerRepository
	closingTypeRepo *repository.ClosingTypeRepository
	valueTypeRepo   *repository.ValueTypeRepository
	attributeRepo   *repository.AttributeRepository
	logger          *zap.Logger
	now             func() time.Time
}

func NewDealService(
	dealRepo *repository.DealRepository,
	customerRepo *repository.CustomerRepository,
	closingTypeRepo *repository.ClosingTypeRepository,
	valueTypeRepo *repository.ValueTypeRepository,
	attributeRepo *repository.AttributeRepository,
	logger *zap.Logger,
) *DealService {
	return &DealService{
		dealRepo:        dealRepo,
		customerRepo:    customerRepo,
		closingTypeRepo: closingTypeRepo,
		valueTypeRepo:   valueTypeRepo,
		attributeRepo:   attributeRepo,
		logger:          logger,
		now:             time.Now,
	}
}

// resolveAttributes validates a deal's attribute selection: at most one
// attribute per group, required live groups covered, archived entries
// only allowed when the deal already carries them (keep covers edits of
// old deals without forcing a re-pick).
func (s *DealService) resolveAttributes(ctx context.Context, ids []uint, keep map[uint]bool) ([]domain.Attribute, error) {
	attrs, err := s.attributeRepo.GetAttributesByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to load attributes: %w", err)
	}
	byID := make(map[uint]*domain.Attribute, len(attrs))
	for i := range attrs {
		byID[attrs[i].ID] = &attrs[i]
	}

	errs := domain.ValidationErrors{}
	seenGroup := map[uint]bool{}
	selected := make([]domain.Attribute, 0, len(ids))
	for _, id := range ids {
		a, ok := byID[id]
		if !ok {
			return nil, fmt.Errorf("attribute %d: %w", id, ErrNotFound)
		}
		field := fmt.Sprintf("attribute_%d", a.GroupID)
		if seenGroup[a.GroupID] {
			errs.Add(field, "Only one selection per group is allowed.")
			continue
		}
		seenGroup[a.GroupID] = true
		archived := a.IsArchived || (a.Group != nil && a.Group.IsArchived)
		if archived && !keep[a.ID] {
			errs.Add(field, "This attribute is archived.")
			continue
		}
		selected = append(selected, *a)
	}

	required, err := s.attributeRepo.RequiredGroups(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load required attribute groups: %w", err)
	}
	for i := range required {
		if !seenGroup[required[i].ID] {
			errs.Add(fmt.Sprintf("attribute_%d", required[i].ID), "This field is required.")
		}
	}

	if err := errs.ErrOrNil(); err != nil {
		return nil, err
	}
	return selected, nil
}

func (s *DealService) Create(ctx context.Context, req *domain.CreateDealRequest) (*domain.DealDTO, error) {
	if _, err := s.customerRepo.GetByID(ctx, req.CustomerID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("customer %d: %w", req.CustomerID, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to load customer: %w", err)
	}

	decisionExpectedOn, err := mapper.ParseDatePtr(req.DecisionExpectedOn)
	if err != nil {
		return nil, fmt.Errorf("invalid decision date: %w", ErrInvalidInput)
	}

	deal := &domain.Deal{
		CustomerID:         req.CustomerID,
		ContactID:          req.ContactID,
		Title:              req.Title,
		Description:        req.Description,
		OwnerID:            req.OwnerID,
		OwnerName:          req.OwnerName,
		Status:             domain.DealOpen,
		Probability:        req.Probability,
		DecisionExpectedOn: decisionExpectedOn,
	}
	if deal.Probability == 0 {
		deal.Probability = domain.ProbabilityUnknown
	}

	if err := domain.ValidateDealTransition(deal); err != nil {
		return nil, err
	}

	deal.Values = make([]domain.DealValue, len(req.Values))
	for i, v := range req.Values {
		deal.Values[i] = domain.DealValue{TypeID: v.TypeID, Value: v.Value}
	}

	attrs, err := s.resolveAttributes(ctx, req.AttributeIDs, nil)
	if err != nil {
		return nil, err
	}
	deal.Attributes = attrs

	if err := s.dealRepo.Create(ctx, deal); err != nil {
		return nil, fmt.Errorf("failed to create deal: %w", err)
	}

	s.logger.Info("deal created",
		zap.Uint("deal_id", deal.ID),
		zap.Uint("customer_id", deal.CustomerID))

	return s.GetByID(ctx, deal.ID)
}

func (s *DealService) GetByID(ctx context.Context, id uint) (*domain.DealDTO, error) {
	deal, err := s.dealRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get deal: %w", err)
	}

	dto := mapper.ToDealDTO(deal, s.now())
	return &dto, nil
}

func (s *DealService) List(ctx context.Context, page, pageSize int, filters repository.DealFilters) ([]domain.DealDTO, int64, error) {
	deals, total, err := s.dealRepo.List(ctx, page, pageSize, filters)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list deals: %w", err)
	}

	today := s.now()
	dtos := make([]domain.DealDTO, len(deals))
	for i := range deals {
		dtos[i] = mapper.ToDealDTO(&deals[i], today)
	}
	return dtos, total, nil
}

// DealGroupDTO is one urgency bucket of the pipeline view
type DealGroupDTO struct {
	Group int              `json:"group"`
	Title string           `json:"title"`
	Deals []domain.DealDTO `json:"deals"`
}

// Pipeline returns all open deals bucketed by urgency, most urgent group
// first. Empty groups are omitted.
func (s *DealService) Pipeline(ctx context.Context) ([]DealGroupDTO, error) {
	deals, err := s.dealRepo.ListOpen(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list open deals: %w", err)
	}

	today := s.now()
	buckets := map[int][]domain.DealDTO{}
	for i := range deals {
		dto := mapper.ToDealDTO(&deals[i], today)
		buckets[dto.Group] = append(buckets[dto.Group], dto)
	}

	groups := make([]DealGroupDTO, 0, len(buckets))
	for g := domain.DealGroupUrgent; g <= domain.DealGroupSomeday; g++ {
		if deals, ok := buckets[g]; ok {
			groups = append(groups, DealGroupDTO{
				Group: g,
				Title: domain.DealGroupTitle(g),
				Deals: deals,
			})
		}
	}
	return groups, nil
}

func (s *DealService) Update(ctx context.Context, id uint, req *domain.UpdateDealRequest) (*domain.DealDTO, error) {
	deal, err := s.dealRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get deal: %w", err)
	}

	decisionExpectedOn, err := mapper.ParseDatePtr(req.DecisionExpectedOn)
	if err != nil {
		return nil, fmt.Errorf("invalid decision date: %w", ErrInvalidInput)
	}

	deal.ContactID = req.ContactID
	deal.Title = req.Title
	deal.Description = req.Description
	deal.OwnerID = req.OwnerID
	deal.OwnerName = req.OwnerName
	deal.Probability = req.Probability
	deal.DecisionExpectedOn = decisionExpectedOn
	if deal.Probability == 0 {
		deal.Probability = domain.ProbabilityUnknown
	}

	if err := domain.ValidateDealTransition(deal); err != nil {
		return nil, err
	}

	var attrs []domain.Attribute
	if req.AttributeIDs != nil {
		keep := make(map[uint]bool, len(deal.Attributes))
		for i := range deal.Attributes {
			keep[deal.Attributes[i].ID] = true
		}
		attrs, err = s.resolveAttributes(ctx, req.AttributeIDs, keep)
		if err != nil {
			return nil, err
		}
	}

	if err := s.dealRepo.Update(ctx, deal); err != nil {
		return nil, fmt.Errorf("failed to update deal: %w", err)
	}

	if req.AttributeIDs != nil {
		if err := s.dealRepo.ReplaceAttributes(ctx, deal, attrs); err != nil {
			return nil, fmt.Errorf("failed to update deal attributes: %w", err)
		}
	}

	if req.Values != nil {
		values := make([]domain.DealValue, len(req.Values))
		for i, v := range req.Values {
			values[i] = domain.DealValue{TypeID: v.TypeID, Value: v.Value}
		}
		if err := s.dealRepo.ReplaceValues(ctx, deal.ID, values); err != nil {
			return nil, fmt.Errorf("failed to update deal values: %w", err)
		}
	}

	return s.GetByID(ctx, deal.ID)
}

// UpdateStatus moves a deal through its lifecycle. Closing requires a
// closing type; whether the deal ends up accepted or declined follows
// from the closing type's win flag, so the two can never contradict.
// Reopening clears all closing fields.
func (s *DealService) UpdateStatus(ctx context.Context, id uint, req *domain.UpdateDealStatusRequest) (*domain.DealDTO, error) {
	deal, err := s.dealRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get deal: %w", err)
	}

	if req.Status == domain.DealOpen {
		deal.Status = domain.DealOpen
		deal.ClosedOn = nil
		deal.ClosingTypeID = nil
		deal.ClosingType = nil
		deal.ClosingNotice = ""
	} else {
		deal.Status = req.Status
		deal.ClosingTypeID = req.ClosingTypeID
		deal.ClosingNotice = req.ClosingNotice

		closedOn, err := mapper.ParseDatePtr(req.ClosedOn)
		if err != nil {
			return nil, fmt.Errorf("invalid closing date: %w", ErrInvalidInput)
		}
		if closedOn == nil {
			today := dateOf(s.now())
			closedOn = &today
		}
		deal.ClosedOn = closedOn

		if deal.ClosingTypeID != nil {
			closingType, err := s.closingTypeRepo.GetByID(ctx, *deal.ClosingTypeID)
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return nil, fmt.Errorf("closing type %d: %w", *deal.ClosingTypeID, ErrNotFound)
				}
				return nil, fmt.Errorf("failed to load closing type: %w", err)
			}
			if closingType.RepresentsAWin {
				deal.Status = domain.DealAccepted
			} else {
				deal.Status = domain.DealDeclined
			}
		}
	}

	if err := domain.ValidateDealTransition(deal); err != nil {
		return nil, err
	}

	if err := s.dealRepo.Update(ctx, deal); err != nil {
		return nil, fmt.Errorf("failed to update deal status: %w", err)
	}

	s.logger.Info("deal status changed",
		zap.Uint("deal_id", deal.ID),
		zap.Int("status", int(deal.Status)))

	return s.GetByID(ctx, deal.ID)
}

func (s *DealService) Delete(ctx context.Context, id uint) error {
	if _, err := s.dealRepo.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to get deal: %w", err)
	}
	if err := s.dealRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete deal: %w", err)
	}
	s.logger.Info("deal deleted", zap.Uint("deal_id", id))
	return nil
}
