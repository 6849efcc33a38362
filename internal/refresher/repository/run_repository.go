package repository

import (
	"context"

	"portfolio-tracker/internal/entity"

	"gorm.io/gorm"
)

// RunRepository defines the interface for refresh run history operations.
type RunRepository interface {
	Create(ctx context.Context, run *entity.RefreshRun) error
	Update(ctx context.Context, run *entity.RefreshRun) error
	FindByID(ctx context.Context, id uint) (*entity.RefreshRun, error)
	FindByJobID(ctx context.Context, jobID uint, limit int) ([]entity.RefreshRun, error)
}

// NewRunRepository creates a new GORM-based refresh run repository.
func NewRunRepository(db *gorm.DB) RunRepository {
	return &runRepository{db: db}
}

type runRepository struct {
	db *gorm.DB
}

func (r *runRepository) Create(ctx context.Context, run *entity.RefreshRun) error {
	return r.db.WithContext(ctx).Create(run).Error
}

func (r *runRepository) Update(ctx context.Context, run *entity.RefreshRun) error {
	return r.db.WithContext(ctx).Save(run).Error
}

func (r *runRepository) FindByID(ctx context.Context, id uint) (*entity.RefreshRun, error) {
	var run entity.RefreshRun
	if err := r.db.WithContext(ctx).First(&run, id).Error; err != nil {
		return nil, err
	}
	return &run, nil
}

func (r *runRepository) FindByJobID(ctx context.Context, jobID uint, limit int) ([]entity.RefreshRun, error) {
	if limit <= 0 {
		limit = 50
	}
	var runs []entity.RefreshRun
	err := r.db.WithContext(ctx).
		Where("job_id = ?", jobID).
		Order("started_at DESC").
		Limit(limit).
		Find(&runs).Error
	if err != nil {
		return nil, err
	}
	return runs, nil
}
