package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/feinwerk/workbench-api/internal/domain"
	"github.com/feinwerk/workbench-api/internal/mapper"
	"github.com/feinwerk/workbench-api/internal/repository"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// AttributeService manages attribute groups and their attributes. Groups
// act as pick-one facets on deals; required groups are enforced when a
// deal is created or edited.
type AttributeService struct {
	attributeRepo *repository.AttributeRepository
	logger        *zap.Logger
}

func NewAttributeService(attributeRepo *repository.AttributeRepository, logger *zap.Logger) *AttributeService {
	return &AttributeService{attributeRepo: attributeRepo, logger: logger}
}

func (s *AttributeService) CreateGroup(ctx context.Context, req *domain.CreateAttributeGroupRequest) (*domain.AttributeGroupDTO, error) {
	g := &domain.AttributeGroup{
		Title:      req.Title,
		IsRequired: true,
		Position:   req.Position,
	}
	if req.IsRequired != nil {
		g.IsRequired = *req.IsRequired
	}
	if err := s.attributeRepo.CreateGroup(ctx, g); err != nil {
		return nil, fmt.Errorf("failed to create attribute group: %w", err)
	}
	dto := mapper.ToAttributeGroupDTO(g)
	return &dto, nil
}

func (s *AttributeService) GetGroupByID(ctx context.Context, id uint) (*domain.AttributeGroupDTO, error) {
	g, err := s.attributeRepo.GetGroupByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get attribute group: %w", err)
	}
	dto := mapper.ToAttributeGroupDTO(g)
	return &dto, nil
}

func (s *AttributeService) ListGroups(ctx context.Context, includeArchived bool) ([]domain.AttributeGroupDTO, error) {
	groups, err := s.attributeRepo.ListGroups(ctx, includeArchived)
	if err != nil {
		return nil, fmt.Errorf("failed to list attribute groups: %w", err)
	}
	dtos := make([]domain.AttributeGroupDTO, len(groups))
	for i := range groups {
		dtos[i] = mapper.ToAttributeGroupDTO(&groups[i])
	}
	return dtos, nil
}

func (s *AttributeService) UpdateGroup(ctx context.Context, id uint, req *domain.UpdateAttributeGroupRequest) (*domain.AttributeGroupDTO, error) {
	g, err := s.attributeRepo.GetGroupByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get attribute group: %w", err)
	}

	g.Title = req.Title
	g.IsRequired = req.IsRequired
	g.IsArchived = req.IsArchived
	g.Position = req.Position

	if err := s.attributeRepo.UpdateGroup(ctx, g); err != nil {
		return nil, fmt.Errorf("failed to update attribute group: %w", err)
	}
	dto := mapper.ToAttributeGroupDTO(g)
	return &dto, nil
}

// DeleteGroup removes a group and its attributes. Groups whose attributes
// are still attached to deals can only be archived.
func (s *AttributeService) DeleteGroup(ctx context.Context, id uint) error {
	if _, err := s.attributeRepo.GetGroupByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to get attribute group: %w", err)
	}

	refs, err := s.attributeRepo.CountGroupReferences(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to count attribute group references: %w", err)
	}
	if refs > 0 {
		return fmt.Errorf("attribute group is used by %d deals: %w", refs, ErrProtected)
	}

	if err := s.attributeRepo.DeleteGroup(ctx, id); err != nil {
		return fmt.Errorf("failed to delete attribute group: %w", err)
	}
	s.logger.Info("attribute group deleted", zap.Uint("attribute_group_id", id))
	return nil
}

func (s *AttributeService) CreateAttribute(ctx context.Context, req *domain.CreateAttributeRequest) (*domain.AttributeDTO, error) {
	group, err := s.attributeRepo.GetGroupByID(ctx, req.GroupID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get attribute group: %w", err)
	}

	a := &domain.Attribute{
		GroupID:  req.GroupID,
		Title:    req.Title,
		Position: req.Position,
	}
	if err := s.attributeRepo.CreateAttribute(ctx, a); err != nil {
		return nil, fmt.Errorf("failed to create attribute: %w", err)
	}
	a.Group = group
	dto := mapper.ToAttributeDTO(a)
	return &dto, nil
}

func (s *AttributeService) UpdateAttribute(ctx context.Context, id uint, req *domain.UpdateAttributeRequest) (*domain.AttributeDTO, error) {
	a, err := s.attributeRepo.GetAttributeByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get attribute: %w", err)
	}

	a.Title = req.Title
	a.Position = req.Position
	a.IsArchived = req.IsArchived

	if err := s.attributeRepo.UpdateAttribute(ctx, a); err != nil {
		return nil, fmt.Errorf("failed to update attribute: %w", err)
	}
	dto := mapper.ToAttributeDTO(a)
	return &dto, nil
}

// DeleteAttribute removes an unused attribute. Attributes attached to
// deals can only be archived.
func (s *AttributeService) DeleteAttribute(ctx context.Context, id uint) error {
	if _, err := s.attributeRepo.GetAttributeByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to get attribute: %w", err)
	}

	refs, err := s.attributeRepo.CountAttributeReferences(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to count attribute references: %w", err)
	}
	if refs > 0 {
		return fmt.Errorf("attribute is used by %d deals: %w", refs, ErrProtected)
	}

	if err := s.attributeRepo.DeleteAttribute(ctx, id); err != nil {
		return fmt.Errorf("failed to delete attribute: %w", err)
	}
	s.logger.Info("attribute deleted", zap.Uint("attribute_id", id))
	return nil
}
