package repository

import (
	"context"

	"portfolio-tracker/internal/entity"

	"gorm.io/gorm"
)

// JobRepository defines the interface for refresh job data operations.
type JobRepository interface {
	Create(ctx context.Context, job *entity.RefreshJob) error
	FindByID(ctx context.Context, id uint) (*entity.RefreshJob, error)
	FindAll(ctx context.Context) ([]entity.RefreshJob, error)
	Update(ctx context.Context, job *entity.RefreshJob) error
	Delete(ctx context.Context, id uint) error
}

// NewJobRepository creates a new GORM-based refresh job repository.
func NewJobRepository(db *gorm.DB) JobRepository {
	return &jobRepository{db: db}
}

type jobRepository struct {
	db *gorm.DB
}

func (r *jobRepository) Create(ctx context.Context, job *entity.RefreshJob) error {
	return r.db.WithContext(ctx).Create(job).Error
}

func (r *jobRepository) FindByID(ctx context.Context, id uint) (*entity.RefreshJob, error) {
	var job entity.RefreshJob
	if err := r.db.WithContext(ctx).Preload("Schedules").First(&job, id).Error; err != nil {
		return nil, err
	}
	return &job, nil
}

func (r *jobRepository) FindAll(ctx context.Context) ([]entity.RefreshJob, error) {
	var jobs []entity.RefreshJob
	if err := r.db.WithContext(ctx).Preload("Schedules").Find(&jobs).Error; err != nil {
		return nil, err
	}
	return jobs, nil
}

func (r *jobRepository) Update(ctx context.Context, job *entity.RefreshJob) error {
	return r.db.WithContext(ctx).Save(job).Error
}

// Delete removes a job together with its schedules and run history.
func (r *jobRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("job_id = ?", id).Delete(&entity.RefreshRun{}).Error; err != nil {
			return err
		}
		if err := tx.Where("job_id = ?", id).Delete(&entity.RefreshSchedule{}).Error; err != nil {
			return err
		}
		return tx.Delete(&entity.RefreshJob{}, id).Error
	})
}
