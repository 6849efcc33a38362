package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"portfolio-tracker/internal/entity"
	"portfolio-tracker/internal/refresher/config"
	"portfolio-tracker/internal/refresher/repository"
	"portfolio-tracker/pkg/common"
	"portfolio-tracker/pkg/logger"
	"portfolio-tracker/pkg/utils"

	"github.com/redis/go-redis/v9"
	"github.com/robfig/cron/v3"
)

// SchedulerService defines the interface for the refresh scheduling loop.
type SchedulerService interface {
	Start(ctx context.Context)
	ProcessSchedules(ctx context.Context)
}

// NewSchedulerService creates a new scheduler service.
func NewSchedulerService(
	scheduleRepo repository.ScheduleRepository,
	runRepo repository.RunRepository,
	redisClient *redis.Client,
	logger *logger.Logger,
	pollingInterval time.Duration,
	cfg *config.Config,
) SchedulerService {
	return &schedulerService{
		scheduleRepo:    scheduleRepo,
		runRepo:         runRepo,
		redisClient:     redisClient,
		logger:          logger,
		pollingInterval: pollingInterval,
		cronParser:      cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor),
		cfg:             cfg,
	}
}

type schedulerService struct {
	scheduleRepo    repository.ScheduleRepository
	runRepo         repository.RunRepository
	redisClient     *redis.Client
	logger          *logger.Logger
	pollingInterval time.Duration
	cronParser      cron.Parser
	cfg             *config.Config
}

// Start begins the periodic schedule processing loop.
func (s *schedulerService) Start(ctx context.Context) {
	ticker := time.NewTicker(s.pollingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("Scheduler service stopping")
			return
		case <-ticker.C:
			s.ProcessSchedules(ctx)
		}
	}
}

// ProcessSchedules finds due schedules and enqueues a run for each.
func (s *schedulerService) ProcessSchedules(ctx context.Context) {
	schedules, err := s.scheduleRepo.FindDue(ctx)
	if err != nil {
		s.logger.Error("Failed to find due schedules", logger.ErrorField(err))
		return
	}

	for _, schedule := range schedules {
		s.publishRun(ctx, schedule)
	}
}

func (s *schedulerService) publishRun(ctx context.Context, schedule entity.RefreshSchedule) {
	now := utils.TimeNowNY()

	run := &entity.RefreshRun{
		JobID:      schedule.JobID,
		ScheduleID: schedule.ID,
		Status:     entity.StatusRunning,
		StartedAt:  now,
	}

	if err := s.runRepo.Create(ctx, run); err != nil {
		s.logger.Error("Failed to create refresh run", logger.ErrorField(err), logger.Field("schedule_id", schedule.ID))
		return
	}

	runPayload, err := json.Marshal(run)
	if err != nil {
		s.logger.Error("Failed to marshal run payload", logger.ErrorField(err), logger.Field("run_id", run.ID))
		return
	}

	if err := s.redisClient.XAdd(ctx, &redis.XAddArgs{
		Stream: common.RedisStreamRefreshTaskExecution,
		Values: map[string]interface{}{"payload": runPayload},
		MaxLen: s.cfg.Redis.StreamMaxLen,
	}).Err(); err != nil {
		s.logger.Error("Failed to enqueue run", logger.ErrorField(err), logger.Field("run_id", run.ID))
		run.Status = entity.StatusFailed
		run.CompletedAt = sql.NullTime{Time: utils.TimeNowNY(), Valid: true}
		run.ErrorMessage = sql.NullString{String: err.Error(), Valid: true}
		if errInner := s.runRepo.Update(ctx, run); errInner != nil {
			s.logger.Error("Failed to update refresh run", logger.ErrorField(errInner), logger.Field("run_id", run.ID))
		}
		return
	}

	s.logger.Info("Run published successfully", logger.Field("run_id", run.ID), logger.Field("job_id", schedule.JobID))

	// Advance the schedule so the next poll does not pick it up again.
	cronSchedule, err := s.cronParser.Parse(schedule.CronExpression)
	if err != nil {
		s.logger.Error("Failed to parse cron expression", logger.ErrorField(err), logger.Field("schedule_id", schedule.ID))
		return
	}

	schedule.LastExecution = sql.NullTime{Time: now, Valid: true}
	schedule.NextExecution = sql.NullTime{Time: cronSchedule.Next(now), Valid: true}

	if err := s.scheduleRepo.Update(ctx, &schedule); err != nil {
		s.logger.Error("Failed to update next execution time", logger.ErrorField(err), logger.Field("schedule_id", schedule.ID))
	}
}
