package repository

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/feinwerk/workbench-api/internal/domain"
	"gorm.io/gorm"
)

// ProjectFilters narrows project list queries
type ProjectFilters struct {
	Status     *domain.ProjectStatus
	CustomerID *uint
	OwnerID    string
	Search     string
}

type ProjectRepository struct {
	db        *gorm.DB
	sequences *CodeSequenceRepository
}

func NewProjectRepository(db *gorm.DB, sequences *CodeSequenceRepository) *ProjectRepository {
	return &ProjectRepository{db: db, sequences: sequences}
}

// Create inserts a project and claims its code number in one transaction.
// Codes count up within the creation year.
func (r *ProjectRepository) Create(ctx context.Context, project *domain.Project) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		year := time.Now().Year()
		if !project.CreatedAt.IsZero() {
			year = project.CreatedAt.Year()
		}
		n, err := r.sequences.NextValue(ctx, tx, ScopeProject, strconv.Itoa(year))
		if err != nil {
			return err
		}
		project.CodeNumber = n
		return tx.Create(project).Error
	})
}

func (r *ProjectRepository) GetByID(ctx context.Context, id uint) (*domain.Project, error) {
	var project domain.Project
	err := r.db.WithContext(ctx).
		Preload("Customer").
		Preload("Contact").
		First(&project, id).Error
	if err != nil {
		return nil, err
	}
	return &project, nil
}

func (r *ProjectRepository) Update(ctx context.Context, project *domain.Project) error {
	return r.db.WithContext(ctx).Save(project).Error
}

func (r *ProjectRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&domain.Project{}, id).Error
}

func (r *ProjectRepository) List(ctx context.Context, page, pageSize int, filters ProjectFilters) ([]domain.Project, int64, error) {
	var projects []domain.Project
	var total int64

	query := r.db.WithContext(ctx).Model(&domain.Project{})

	if filters.Status != nil {
		query = query.Where("status = ?", *filters.Status)
	}
	if filters.CustomerID != nil {
		query = query.Where("customer_id = ?", *filters.CustomerID)
	}
	if filters.OwnerID != "" {
		query = query.Where("owner_id = ?", filters.OwnerID)
	}
	if filters.Search != "" {
		searchPattern := "%" + strings.ToLower(filters.Search) + "%"
		query = query.Where("LOWER(title) LIKE ?", searchPattern)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	err := query.
		Preload("Customer").
		Offset(offset).Limit(pageSize).
		Order("created_at DESC").
		Find(&projects).Error

	return projects, total, err
}

// CountReferences counts tasks and offers under a project. Projects with
// history must not be deleted.
func (r *ProjectRepository) CountReferences(ctx context.Context, projectID uint) (int64, error) {
	var tasks, offers int64
	if err := r.db.WithContext(ctx).Model(&domain.Task{}).Where("project_id = ?", projectID).Count(&tasks).Error; err != nil {
		return 0, err
	}
	if err := r.db.WithContext(ctx).Model(&domain.Offer{}).Where("project_id = ?", projectID).Count(&offers).Error; err != nil {
		return 0, err
	}
	return tasks + offers, nil
}
