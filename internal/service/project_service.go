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

type ProjectService struct {
	projectRepo  *repository.ProjectRepository
	customerRepo *repository.CustomerRepository
	offerRepo    *repository.OfferRepository
	logbookRepo  *repository.LogbookRepository
	logger       *zap.Logger
}

func NewProjectService(
	projectRepo *repository.ProjectRepository,
	customerRepo *repository.CustomerRepository,
	offerRepo *repository.OfferRepository,
	logbookRepo *repository.LogbookRepository,
	logger *zap.Logger,
) *ProjectService {
	return &ProjectService{
		projectRepo:  projectRepo,
		customerRepo: customerRepo,
		offerRepo:    offerRepo,
		logbookRepo:  logbookRepo,
		logger:       logger,
	}
}

func (s *ProjectService) Create(ctx context.Context, req *domain.CreateProjectRequest) (*domain.ProjectDTO, error) {
	if _, err := s.customerRepo.GetByID(ctx, req.CustomerID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("customer %d: %w", req.CustomerID, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to load customer: %w", err)
	}

	project := &domain.Project{
		CustomerID:  req.CustomerID,
		ContactID:   req.ContactID,
		Title:       req.Title,
		Description: req.Description,
		OwnerID:     req.OwnerID,
		OwnerName:   req.OwnerName,
		Status:      domain.ProjectAcquisition,
		Invoicing:   true,
		Maintenance: req.Maintenance,
	}
	if req.Invoicing != nil {
		project.Invoicing = *req.Invoicing
	}

	if err := s.projectRepo.Create(ctx, project); err != nil {
		return nil, fmt.Errorf("failed to create project: %w", err)
	}

	s.logger.Info("project created",
		zap.Uint("project_id", project.ID),
		zap.String("code", project.Code()))

	return s.GetByID(ctx, project.ID)
}

func (s *ProjectService) GetByID(ctx context.Context, id uint) (*domain.ProjectDTO, error) {
	project, err := s.projectRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get project: %w", err)
	}

	dto := mapper.ToProjectDTO(project)
	return &dto, nil
}

func (s *ProjectService) List(ctx context.Context, page, pageSize int, filters repository.ProjectFilters) ([]domain.ProjectDTO, int64, error) {
	projects, total, err := s.projectRepo.List(ctx, page, pageSize, filters)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list projects: %w", err)
	}

	dtos := make([]domain.ProjectDTO, len(projects))
	for i := range projects {
		dtos[i] = mapper.ToProjectDTO(&projects[i])
	}
	return dtos, total, nil
}

func (s *ProjectService) Update(ctx context.Context, id uint, req *domain.UpdateProjectRequest) (*domain.ProjectDTO, error) {
	project, err := s.projectRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get project: %w", err)
	}

	project.ContactID = req.ContactID
	project.Title = req.Title
	project.Description = req.Description
	project.OwnerID = req.OwnerID
	project.OwnerName = req.OwnerName
	project.Status = req.Status
	if req.Invoicing != nil {
		project.Invoicing = *req.Invoicing
	}
	if req.Maintenance != nil {
		project.Maintenance = *req.Maintenance
	}

	if err := domain.ValidateProject(project); err != nil {
		return nil, err
	}

	if err := s.projectRepo.Update(ctx, project); err != nil {
		return nil, fmt.Errorf("failed to update project: %w", err)
	}

	return s.GetByID(ctx, project.ID)
}

// Delete removes a project without tasks or offers
func (s *ProjectService) Delete(ctx context.Context, id uint) error {
	if _, err := s.projectRepo.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to get project: %w", err)
	}

	refs, err := s.projectRepo.CountReferences(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to count project references: %w", err)
	}
	if refs > 0 {
		return fmt.Errorf("project has %d tasks or offers: %w", refs, ErrProtected)
	}

	if err := s.projectRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete project: %w", err)
	}
	s.logger.Info("project deleted", zap.Uint("project_id", id))
	return nil
}

// Overview aggregates hours for a project: logged hours across its tasks
// against approved hours across the services of its offers.
func (s *ProjectService) Overview(ctx context.Context, id uint) (*domain.ProjectOverviewDTO, error) {
	if _, err := s.projectRepo.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get project: %w", err)
	}

	logged, err := s.logbookRepo.SumByProject(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to sum logged hours: %w", err)
	}
	approved, err := s.offerRepo.SumApprovedHoursByProject(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to sum approved hours: %w", err)
	}

	return &domain.ProjectOverviewDTO{
		ProjectID:     id,
		HoursLogged:   logged,
		HoursApproved: approved,
	}, nil
}
