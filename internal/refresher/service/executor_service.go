package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"portfolio-tracker/internal/entity"
	"portfolio-tracker/internal/refresher/repository"
	"portfolio-tracker/internal/refresher/strategy"
	"portfolio-tracker/pkg/common"
	"portfolio-tracker/pkg/logger"
	"portfolio-tracker/pkg/utils"

	"github.com/redis/go-redis/v9"
)

// ExecutorService manages the execution of queued refresh runs.
type ExecutorService interface {
	ProcessTask(ctx context.Context)
}

// NewExecutorService creates a new ExecutorService.
func NewExecutorService(
	redisClient *redis.Client,
	jobRepo repository.JobRepository,
	runRepo repository.RunRepository,
	log *logger.Logger,
	strategies []strategy.JobExecutionStrategy,
) ExecutorService {
	strategyMap := make(map[entity.JobType]strategy.JobExecutionStrategy)
	for _, s := range strategies {
		strategyMap[s.GetType()] = s
	}

	return &executorService{
		redisClient:        redisClient,
		jobRepo:            jobRepo,
		runRepo:            runRepo,
		logger:             log,
		executorStrategies: strategyMap,
	}
}

type executorService struct {
	redisClient        *redis.Client
	jobRepo            repository.JobRepository
	runRepo            repository.RunRepository
	logger             *logger.Logger
	executorStrategies map[entity.JobType]strategy.JobExecutionStrategy
}

// ProcessTask dequeues and executes a single run.
func (s *executorService) ProcessTask(ctx context.Context) {
	streams, err := s.redisClient.XReadGroup(ctx, &redis.XReadGroupArgs{
		Group:    common.RedisStreamGroup,
		Consumer: common.RedisStreamConsumer,
		Streams:  []string{common.RedisStreamRefreshTaskExecution, ">"}, // ">" means only new messages
		Count:    1,
		Block:    2 * time.Second, // Block for 2 seconds to allow graceful shutdown
		NoAck:    true,
	}).Result()

	if err != nil {
		// Ignore context cancellation and timeout errors, as they are expected during shutdown or idle periods.
		if err == context.Canceled || err == redis.Nil {
			return
		}
		s.logger.Error("Failed to read from stream", logger.ErrorField(err))
		return
	}

	if len(streams) == 0 || len(streams[0].Messages) == 0 {
		return
	}

	message := streams[0].Messages[0]

	// The run data is expected to be a JSON string in the 'payload' field.
	runData, ok := message.Values["payload"].(string)
	if !ok {
		s.logger.Error("field 'payload' not found or not a string in stream message", logger.Field("message_id", message.ID))
		return
	}

	var run entity.RefreshRun
	if err := json.Unmarshal([]byte(runData), &run); err != nil {
		s.logger.Error("Failed to unmarshal run data", logger.ErrorField(err), logger.Field("message_id", message.ID))
		// Acknowledge the message to prevent reprocessing of a malformed message.
		if err := s.redisClient.XAck(ctx, common.RedisStreamRefreshTaskExecution, common.RedisStreamGroup, message.ID).Err(); err != nil {
			s.logger.Error("Failed to acknowledge malformed message", logger.ErrorField(err), logger.Field("message_id", message.ID))
		}
		return
	}

	s.logger.Info("Processing run", logger.Field("job_id", run.JobID), logger.Field("run_id", run.ID))

	job, err := s.jobRepo.FindByID(ctx, run.JobID)
	if err != nil {
		s.logger.Error("Failed to find job", logger.ErrorField(err), logger.Field("job_id", run.JobID))
		return
	}

	executionCtx, cancelExec := context.WithTimeout(ctx, time.Duration(job.Timeout)*time.Second)
	defer cancelExec()

	s.executeAndUpdate(executionCtx, job, &run)
}

func (s *executorService) executeAndUpdate(ctx context.Context, job *entity.RefreshJob, run *entity.RefreshRun) {
	strat, ok := s.executorStrategies[job.Type]
	if !ok {
		err := fmt.Errorf("no executor strategy found for job type: %s", job.Type)
		s.logger.Error("Run execution failed", logger.ErrorField(err), logger.Field("job_id", job.ID))
		run.Status = entity.StatusFailed
		run.ErrorMessage = sql.NullString{String: err.Error(), Valid: true}
	} else {
		output, err := strat.Execute(ctx, job)
		if err != nil {
			s.logger.Error("Run execution failed", logger.ErrorField(err), logger.Field("job_id", job.ID), logger.IntField("run_id", int(run.ID)))
			run.Status = entity.StatusFailed
			run.ErrorMessage = sql.NullString{String: err.Error(), Valid: true}
		} else {
			s.logger.Info("Run executed successfully", logger.Field("job_id", job.ID), logger.IntField("run_id", int(run.ID)))
			run.Status = entity.StatusCompleted
		}
		run.Output = sql.NullString{String: output, Valid: true}
	}

	run.CompletedAt = sql.NullTime{Time: utils.TimeNowNY(), Valid: true}

	if err := s.runRepo.Update(ctx, run); err != nil {
		s.logger.Error("Failed to update refresh run", logger.ErrorField(err), logger.Field("run_id", run.ID))
	}
	s.logger.Info("Run execution completed", logger.Field("job_id", job.ID), logger.IntField("run_id", int(run.ID)))
}
