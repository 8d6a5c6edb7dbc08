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

type LogbookService struct {
	logbookRepo *repository.LogbookRepository
	taskRepo    *repository.TaskRepository
	logger      *zap.Logger
}

func NewLogbookService(
	logbookRepo *repository.LogbookRepository,
	taskRepo *repository.TaskRepository,
	logger *zap.Logger,
) *LogbookService {
	return &LogbookService{
		logbookRepo: logbookRepo,
		taskRepo:    taskRepo,
		logger:      logger,
	}
}

func (s *LogbookService) Create(ctx context.Context, req *domain.CreateLoggedHoursRequest) (*domain.LoggedHoursDTO, error) {
	if _, err := s.taskRepo.GetByID(ctx, req.TaskID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("task %d: %w", req.TaskID, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to load task: %w", err)
	}

	if !req.Hours.IsPositive() {
		errs := domain.ValidationErrors{}
		errs.Add("hours", "Must be greater than zero.")
		return nil, errs
	}

	renderedOn, err := mapper.ParseDate(req.RenderedOn)
	if err != nil {
		return nil, fmt.Errorf("invalid rendered date: %w", ErrInvalidInput)
	}

	entry := &domain.LoggedHours{
		TaskID:       req.TaskID,
		RenderedByID: req.RenderedByID,
		RenderedBy:   req.RenderedBy,
		RenderedOn:   renderedOn,
		Hours:        req.Hours,
		Description:  req.Description,
	}

	if err := s.logbookRepo.Create(ctx, entry); err != nil {
		return nil, fmt.Errorf("failed to create logbook entry: %w", err)
	}

	s.logger.Info("hours logged",
		zap.Uint("task_id", entry.TaskID),
		zap.String("hours", entry.Hours.String()))

	return s.GetByID(ctx, entry.ID)
}

func (s *LogbookService) GetByID(ctx context.Context, id uint) (*domain.LoggedHoursDTO, error) {
	entry, err := s.logbookRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get logbook entry: %w", err)
	}

	dto := mapper.ToLoggedHoursDTO(entry)
	return &dto, nil
}

func (s *LogbookService) ListByTask(ctx context.Context, taskID uint) ([]domain.LoggedHoursDTO, error) {
	entries, err := s.logbookRepo.ListByTask(ctx, taskID)
	if err != nil {
		return nil, fmt.Errorf("failed to list logbook entries: %w", err)
	}

	dtos := make([]domain.LoggedHoursDTO, len(entries))
	for i := range entries {
		dtos[i] = mapper.ToLoggedHoursDTO(&entries[i])
	}
	return dtos, nil
}

func (s *LogbookService) Update(ctx context.Context, id uint, req *domain.UpdateLoggedHoursRequest) (*domain.LoggedHoursDTO, error) {
	entry, err := s.logbookRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get logbook entry: %w", err)
	}

	if !req.Hours.IsPositive() {
		errs := domain.ValidationErrors{}
		errs.Add("hours", "Must be greater than zero.")
		return nil, errs
	}

	renderedOn, err := mapper.ParseDate(req.RenderedOn)
	if err != nil {
		return nil, fmt.Errorf("invalid rendered date: %w", ErrInvalidInput)
	}

	entry.Task = nil
	entry.RenderedOn = renderedOn
	entry.Hours = req.Hours
	entry.Description = req.Description

	if err := s.logbookRepo.Update(ctx, entry); err != nil {
		return nil, fmt.Errorf("failed to update logbook entry: %w", err)
	}

	return s.GetByID(ctx, entry.ID)
}

func (s *LogbookService) Delete(ctx context.Context, id uint) error {
	if _, err := s.logbookRepo.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to get logbook entry: %w", err)
	}
	if err := s.logbookRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete logbook entry: %w", err)
	}
	return nil
}
