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

type TaskService struct {
	taskRepo    *repository.TaskRepository
	projectRepo *repository.ProjectRepository
	offerRepo   *repository.OfferRepository
	logbookRepo *repository.LogbookRepository
	logger      *zap.Logger
	now         func() time.Time
}

func NewTaskService(
	taskRepo *repository.TaskRepository,
	projectRepo *repository.ProjectRepository,
	offerRepo *repository.OfferRepository,
	logbookRepo *repository.LogbookRepository,
	logger *zap.Logger,
) *TaskService {
	return &TaskService{
		taskRepo:    taskRepo,
		projectRepo: projectRepo,
		offerRepo:   offerRepo,
		logbookRepo: logbookRepo,
		logger:      logger,
		now:         time.Now,
	}
}

func (s *TaskService) Create(ctx context.Context, req *domain.CreateTaskRequest) (*domain.TaskDTO, error) {
	if _, err := s.projectRepo.GetByID(ctx, req.ProjectID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("project %d: %w", req.ProjectID, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to load project: %w", err)
	}
	if req.ServiceID != nil {
		if err := s.checkServiceBelongsToProject(ctx, *req.ServiceID, req.ProjectID); err != nil {
			return nil, err
		}
	}

	dueOn, err := mapper.ParseDatePtr(req.DueOn)
	if err != nil {
		return nil, fmt.Errorf("invalid due date: %w", ErrInvalidInput)
	}

	task := &domain.Task{
		ProjectID:   req.ProjectID,
		ServiceID:   req.ServiceID,
		Title:       req.Title,
		Description: req.Description,
		Type:        req.Type,
		Priority:    req.Priority,
		OwnerID:     req.OwnerID,
		OwnerName:   req.OwnerName,
		Status:      domain.TaskInbox,
		DueOn:       dueOn,
		Position:    req.Position,
	}
	if task.Type == "" {
		task.Type = domain.TaskTypeTask
	}
	if task.Priority == 0 {
		task.Priority = domain.PriorityNormal
	}

	if err := domain.ValidateTask(task); err != nil {
		return nil, err
	}

	if err := s.taskRepo.Create(ctx, task); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	s.logger.Info("task created",
		zap.Uint("task_id", task.ID),
		zap.Uint("project_id", task.ProjectID),
		zap.String("code", task.Code()))

	return s.GetByID(ctx, task.ID)
}

func (s *TaskService) GetByID(ctx context.Context, id uint) (*domain.TaskDTO, error) {
	task, err := s.taskRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get task: %w", err)
	}

	dto := mapper.ToTaskDTO(task, s.now())
	return &dto, nil
}

func (s *TaskService) List(ctx context.Context, page, pageSize int, filters repository.TaskFilters) ([]domain.TaskDTO, int64, error) {
	tasks, total, err := s.taskRepo.List(ctx, page, pageSize, filters)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list tasks: %w", err)
	}

	today := s.now()
	dtos := make([]domain.TaskDTO, len(tasks))
	for i := range tasks {
		dtos[i] = mapper.ToTaskDTO(&tasks[i], today)
	}
	return dtos, total, nil
}

func (s *TaskService) Update(ctx context.Context, id uint, req *domain.UpdateTaskRequest) (*domain.TaskDTO, error) {
	task, err := s.taskRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get task: %w", err)
	}

	if req.ServiceID != nil {
		if err := s.checkServiceBelongsToProject(ctx, *req.ServiceID, task.ProjectID); err != nil {
			return nil, err
		}
	}

	dueOn, err := mapper.ParseDatePtr(req.DueOn)
	if err != nil {
		return nil, fmt.Errorf("invalid due date: %w", ErrInvalidInput)
	}

	task.ServiceID = req.ServiceID
	task.Service = nil
	task.Title = req.Title
	task.Description = req.Description
	task.Type = req.Type
	task.Priority = req.Priority
	task.OwnerID = req.OwnerID
	task.OwnerName = req.OwnerName
	task.DueOn = dueOn
	if req.Position != nil {
		task.Position = *req.Position
	}

	if err := domain.ValidateTask(task); err != nil {
		return nil, err
	}

	if err := s.taskRepo.Update(ctx, task); err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}

	return s.GetByID(ctx, task.ID)
}

// UpdateStatus moves a task through its lifecycle. Completing stamps the
// closing time, reopening clears it.
func (s *TaskService) UpdateStatus(ctx context.Context, id uint, req *domain.UpdateTaskStatusRequest) (*domain.TaskDTO, error) {
	task, err := s.taskRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get task: %w", err)
	}

	if !req.Status.IsValid() {
		errs := domain.ValidationErrors{}
		errs.Add("status", "Invalid status.")
		return nil, errs
	}

	wasDone := task.Status == domain.TaskDone
	task.Status = req.Status
	switch {
	case req.Status == domain.TaskDone && !wasDone:
		closedAt := s.now()
		task.ClosedAt = &closedAt
	case req.Status != domain.TaskDone && wasDone:
		task.ClosedAt = nil
	}

	if err := s.taskRepo.Update(ctx, task); err != nil {
		return nil, fmt.Errorf("failed to update task status: %w", err)
	}

	s.logger.Info("task status changed",
		zap.Uint("task_id", task.ID),
		zap.Int("status", int(task.Status)))

	return s.GetByID(ctx, task.ID)
}

// Delete removes a task without logged hours
func (s *TaskService) Delete(ctx context.Context, id uint) error {
	if _, err := s.taskRepo.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to get task: %w", err)
	}

	refs, err := s.taskRepo.CountLoggedHours(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to count logged hours: %w", err)
	}
	if refs > 0 {
		return fmt.Errorf("task has %d logged hours entries: %w", refs, ErrProtected)
	}

	if err := s.taskRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}
	s.logger.Info("task deleted", zap.Uint("task_id", id))
	return nil
}

// Overview aggregates hours around a task. Tasks assigned to a service
// additionally report hours across sibling tasks of the same service and
// the service's approved hours.
func (s *TaskService) Overview(ctx context.Context, id uint) (*domain.TaskOverviewDTO, error) {
	task, err := s.taskRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get task: %w", err)
	}

	loggedThis, err := s.logbookRepo.SumByTask(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to sum logged hours: %w", err)
	}

	overview := &domain.TaskOverviewDTO{
		TaskID:     id,
		LoggedThis: loggedThis,
	}

	if task.ServiceID != nil {
		loggedTasks, err := s.logbookRepo.SumByService(ctx, *task.ServiceID)
		if err != nil {
			return nil, fmt.Errorf("failed to sum service hours: %w", err)
		}
		overview.LoggedTasks = &loggedTasks

		service, err := s.offerRepo.GetServiceByID(ctx, *task.ServiceID)
		if err != nil {
			return nil, fmt.Errorf("failed to load service: %w", err)
		}
		overview.HoursApproved = &service.ApprovedHours
	}

	return overview, nil
}

// checkServiceBelongsToProject verifies that an assigned service is one
// of the project's own offers. A task billing hours against another
// project's service would corrupt both overviews.
func (s *TaskService) checkServiceBelongsToProject(ctx context.Context, serviceID, projectID uint) error {
	service, err := s.offerRepo.GetServiceByID(ctx, serviceID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("service %d: %w", serviceID, ErrNotFound)
		}
		return fmt.Errorf("failed to load service: %w", err)
	}
	if service.Offer == nil || service.Offer.ProjectID != projectID {
		errs := domain.ValidationErrors{}
		errs.Add("service", "Service belongs to a different project.")
		return errs
	}
	return nil
}
