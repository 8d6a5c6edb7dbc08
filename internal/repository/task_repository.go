package repository

import (
	"context"
	"strconv"

	"github.com/feinwerk/workbench-api/internal/domain"
	"gorm.io/gorm"
)

// TaskFilters narrows task list queries
type TaskFilters struct {
	ProjectID *uint
	ServiceID *uint
	Status    *domain.TaskStatus
	OwnerID   string
}

type TaskRepository struct {
	db        *gorm.DB
	sequences *CodeSequenceRepository
}

func NewTaskRepository(db *gorm.DB, sequences *CodeSequenceRepository) *TaskRepository {
	return &TaskRepository{db: db, sequences: sequences}
}

// Create inserts a task and claims its code number in one transaction.
// Codes count up within the task's project.
func (r *TaskRepository) Create(ctx context.Context, task *domain.Task) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		n, err := r.sequences.NextValue(ctx, tx, ScopeTask, strconv.FormatUint(uint64(task.ProjectID), 10))
		if err != nil {
			return err
		}
		task.CodeNumber = n
		return tx.Create(task).Error
	})
}

func (r *TaskRepository) GetByID(ctx context.Context, id uint) (*domain.Task, error) {
	var task domain.Task
	err := r.db.WithContext(ctx).
		Preload("Project").
		Preload("Service").
		First(&task, id).Error
	if err != nil {
		return nil, err
	}
	return &task, nil
}

func (r *TaskRepository) Update(ctx context.Context, task *domain.Task) error {
	return r.db.WithContext(ctx).Save(task).Error
}

func (r *TaskRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&domain.Task{}, id).Error
}

func (r *TaskRepository) List(ctx context.Context, page, pageSize int, filters TaskFilters) ([]domain.Task, int64, error) {
	var tasks []domain.Task
	var total int64

	query := r.db.WithContext(ctx).Model(&domain.Task{})

	if filters.ProjectID != nil {
		query = query.Where("project_id = ?", *filters.ProjectID)
	}
	if filters.ServiceID != nil {
		query = query.Where("service_id = ?", *filters.ServiceID)
	}
	if filters.Status != nil {
		query = query.Where("status = ?", *filters.Status)
	}
	if filters.OwnerID != "" {
		query = query.Where("owner_id = ?", filters.OwnerID)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	err := query.
		Preload("Project").
		Preload("Service").
		Offset(offset).Limit(pageSize).
		Order("priority DESC, position ASC, id ASC").
		Find(&tasks).Error

	return tasks, total, err
}

// CountLoggedHours counts time log entries against a task. Tasks with
// logged hours must not be deleted.
func (r *TaskRepository) CountLoggedHours(ctx context.Context, taskID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.LoggedHours{}).Where("task_id = ?", taskID).Count(&count).Error
	return count, err
}
