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

type ClosingTypeService struct {
	closingTypeRepo *repository.ClosingTypeRepository
	logger          *zap.Logger
}

func NewClosingTypeService(closingTypeRepo *repository.ClosingTypeRepository, logger *zap.Logger) *ClosingTypeService {
	return &ClosingTypeService{closingTypeRepo: closingTypeRepo, logger: logger}
}

func (s *ClosingTypeService) Create(ctx context.Context, req *domain.CreateClosingTypeRequest) (*domain.ClosingTypeDTO, error) {
	ct := &domain.ClosingType{
		Title:          req.Title,
		RepresentsAWin: req.RepresentsAWin,
		Position:       req.Position,
	}
	if err := s.closingTypeRepo.Create(ctx, ct); err != nil {
		return nil, fmt.Errorf("failed to create closing type: %w", err)
	}
	dto := mapper.ToClosingTypeDTO(ct)
	return &dto, nil
}

func (s *ClosingTypeService) List(ctx context.Context) ([]domain.ClosingTypeDTO, error) {
	types, err := s.closingTypeRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list closing types: %w", err)
	}
	dtos := make([]domain.ClosingTypeDTO, len(types))
	for i := range types {
		dtos[i] = mapper.ToClosingTypeDTO(&types[i])
	}
	return dtos, nil
}

func (s *ClosingTypeService) Update(ctx context.Context, id uint, req *domain.UpdateClosingTypeRequest) (*domain.ClosingTypeDTO, error) {
	ct, err := s.closingTypeRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get closing type: %w", err)
	}

	ct.Title = req.Title
	ct.RepresentsAWin = req.RepresentsAWin
	ct.Position = req.Position

	if err := s.closingTypeRepo.Update(ctx, ct); err != nil {
		return nil, fmt.Errorf("failed to update closing type: %w", err)
	}
	dto := mapper.ToClosingTypeDTO(ct)
	return &dto, nil
}

// Delete removes an unused closing type. Types referenced by closed
// deals stay.
func (s *ClosingTypeService) Delete(ctx context.Context, id uint) error {
	if _, err := s.closingTypeRepo.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to get closing type: %w", err)
	}

	refs, err := s.closingTypeRepo.CountReferences(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to count closing type references: %w", err)
	}
	if refs > 0 {
		return fmt.Errorf("closing type is used by %d deals: %w", refs, ErrProtected)
	}

	if err := s.closingTypeRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete closing type: %w", err)
	}
	s.logger.Info("closing type deleted", zap.Uint("closing_type_id", id))
	return nil
}
