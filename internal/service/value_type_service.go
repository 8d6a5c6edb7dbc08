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

type ValueTypeService struct {
	valueTypeRepo *repository.ValueTypeRepository
	logger        *zap.Logger
}

func NewValueTypeService(valueTypeRepo *repository.ValueTypeRepository, logger *zap.Logger) *ValueTypeService {
	return &ValueTypeService{valueTypeRepo: valueTypeRepo, logger: logger}
}

func (s *ValueTypeService) Create(ctx context.Context, req *domain.CreateValueTypeRequest) (*domain.ValueTypeDTO, error) {
	vt := &domain.ValueType{
		Title:    req.Title,
		Position: req.Position,
	}
	if err := s.valueTypeRepo.Create(ctx, vt); err != nil {
		return nil, fmt.Errorf("failed to create value type: %w", err)
	}
	dto := mapper.ToValueTypeDTO(vt)
	return &dto, nil
}

func (s *ValueTypeService) List(ctx context.Context, includeArchived bool) ([]domain.ValueTypeDTO, error) {
	types, err := s.valueTypeRepo.List(ctx, includeArchived)
	if err != nil {
		return nil, fmt.Errorf("failed to list value types: %w", err)
	}
	dtos := make([]domain.ValueTypeDTO, len(types))
	for i := range types {
		dtos[i] = mapper.ToValueTypeDTO(&types[i])
	}
	return dtos, nil
}

func (s *ValueTypeService) Update(ctx context.Context, id uint, req *domain.UpdateValueTypeRequest) (*domain.ValueTypeDTO, error) {
	vt, err := s.valueTypeRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get value type: %w", err)
	}

	vt.Title = req.Title
	vt.Position = req.Position
	vt.IsArchived = req.IsArchived

	if err := s.valueTypeRepo.Update(ctx, vt); err != nil {
		return nil, fmt.Errorf("failed to update value type: %w", err)
	}
	dto := mapper.ToValueTypeDTO(vt)
	return &dto, nil
}

// Delete removes an unused value type. Types referenced by deal values
// can only be archived.
func (s *ValueTypeService) Delete(ctx context.Context, id uint) error {
	if _, err := s.valueTypeRepo.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to get value type: %w", err)
	}

	refs, err := s.valueTypeRepo.CountReferences(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to count value type references: %w", err)
	}
	if refs > 0 {
		return fmt.Errorf("value type is used by %d deal values: %w", refs, ErrProtected)
	}

	if err := s.valueTypeRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete value type: %w", err)
	}
	s.logger.Info("value type deleted", zap.Uint("value_type_id", id))
	return nil
}
