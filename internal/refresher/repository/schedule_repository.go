package repository

import (
	"context"

	"portfolio-tracker/internal/entity"
	"portfolio-tracker/pkg/utils"

	"gorm.io/gorm"
)

// ScheduleRepository defines the interface for refresh schedule data operations.
type ScheduleRepository interface {
	Create(ctx context.Context, schedule *entity.RefreshSchedule) error
	FindByID(ctx context.Context, id uint) (*entity.RefreshSchedule, error)
	FindAll(ctx context.Context) ([]entity.RefreshSchedule, error)
	Update(ctx context.Context, schedule *entity.RefreshSchedule) error
	Delete(ctx context.Context, id uint) error
	FindDue(ctx context.Context) ([]entity.RefreshSchedule, error)
}

// NewScheduleRepository creates a new GORM-based refresh schedule repository.
func NewScheduleRepository(db *gorm.DB) ScheduleRepository {
	return &scheduleRepository{db: db}
}

type scheduleRepository struct {
	db *gorm.DB
}

func (r *scheduleRepository) Create(ctx context.Context, schedule *entity.RefreshSchedule) error {
	return r.db.WithContext(ctx).Create(schedule).Error
}

func (r *scheduleRepository) FindByID(ctx context.Context, id uint) (*entity.RefreshSchedule, error) {
	var schedule entity.RefreshSchedule
	if err := r.db.WithContext(ctx).First(&schedule, id).Error; err != nil {
		return nil, err
	}
	return &schedule, nil
}

func (r *scheduleRepository) FindAll(ctx context.Context) ([]entity.RefreshSchedule, error) {
	var schedules []entity.RefreshSchedule
	if err := r.db.WithContext(ctx).Find(&schedules).Error; err != nil {
		return nil, err
	}
	return schedules, nil
}

func (r *scheduleRepository) Update(ctx context.Context, schedule *entity.RefreshSchedule) error {
	return r.db.WithContext(ctx).Save(schedule).Error
}

func (r *scheduleRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&entity.RefreshSchedule{}, id).Error
}

// FindDue finds all active schedules whose next execution has passed. A NULL
// next execution means the schedule has never run.
func (r *scheduleRepository) FindDue(ctx context.Context) ([]entity.RefreshSchedule, error) {
	var schedules []entity.RefreshSchedule
	err := r.db.WithContext(ctx).
		Where("is_active = ? AND (next_execution IS NULL OR next_execution <= ?)", true, utils.TimeNowNY()).
		Find(&schedules).Error
	if err != nil {
		return nil, err
	}
	return schedules, nil
}
