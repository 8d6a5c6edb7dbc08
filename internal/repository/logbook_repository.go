package repository

import (
	"context"

	"github.com/feinwerk/workbench-api/internal/domain"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type LogbookRepository struct {
	db *gorm.DB
}

func NewLogbookRepository(db *gorm.DB) *LogbookRepository {
	return &LogbookRepository{db: db}
}

func (r *LogbookRepository) Create(ctx context.Context, entry *domain.LoggedHours) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *LogbookRepository) GetByID(ctx context.Context, id uint) (*domain.LoggedHours, error) {
	var entry domain.LoggedHours
	err := r.db.WithContext(ctx).Preload("Task").First(&entry, id).Error
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

func (r *LogbookRepository) Update(ctx context.Context, entry *domain.LoggedHours) error {
	return r.db.WithContext(ctx).Save(entry).Error
}

func (r *LogbookRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&domain.LoggedHours{}, id).Error
}

func (r *LogbookRepository) ListByTask(ctx context.Context, taskID uint) ([]domain.LoggedHours, error) {
	var entries []domain.LoggedHours
	err := r.db.WithContext(ctx).
		Where("task_id = ?", taskID).
		Order("rendered_on DESC, id DESC").
		Find(&entries).Error
	return entries, err
}

// SumByTask totals hours logged against one task
func (r *LogbookRepository) SumByTask(ctx context.Context, taskID uint) (decimal.Decimal, error) {
	var hours decimal.Decimal
	err := r.db.WithContext(ctx).
		Model(&domain.LoggedHours{}).
		Where("task_id = ?", taskID).
		Select("COALESCE(SUM(hours), 0)").
		Scan(&hours).Error
	return hours, err
}

// SumByService totals hours logged across all tasks assigned to a service
func (r *LogbookRepository) SumByService(ctx context.Context, serviceID uint) (decimal.Decimal, error) {
	var hours decimal.Decimal
	err := r.db.WithContext(ctx).
		Model(&domain.LoggedHours{}).
		Joins("JOIN tasks ON tasks.id = logged_hours.task_id").
		Where("tasks.service_id = ?", serviceID).
		Select("COALESCE(SUM(logged_hours.hours), 0)").
		Scan(&hours).Error
	return hours, err
}

// SumByProject totals hours logged across all tasks of a project
func (r *LogbookRepository) SumByProject(ctx context.Context, projectID uint) (decimal.Decimal, error) {
	var hours decimal.Decimal
	err := r.db.WithContext(ctx).
		Model(&domain.LoggedHours{}).
		Joins("JOIN tasks ON tasks.id = logged_hours.task_id").
		Where("tasks.project_id = ?", projectID).
		Select("COALESCE(SUM(logged_hours.hours), 0)").
		Scan(&hours).Error
	return hours, err
}
