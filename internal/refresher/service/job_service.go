package service

import (
	"context"
	"encoding/json"
	"fmt"

	"portfolio-tracker/internal/entity"
	"portfolio-tracker/internal/refresher/dto"
	"portfolio-tracker/internal/refresher/repository"
	"portfolio-tracker/pkg/logger"
)

// JobService defines the interface for managing refresh jobs and their run
// history.
type JobService interface {
	CreateJob(ctx context.Context, req *dto.CreateJobRequest) (*dto.JobResponse, error)
	GetJobByID(ctx context.Context, id uint) (*dto.JobResponse, error)
	GetAllJobs(ctx context.Context) ([]*dto.JobResponse, error)
	UpdateJob(ctx context.Context, id uint, req *dto.UpdateJobRequest) (*dto.JobResponse, error)
	DeleteJob(ctx context.Context, id uint) error
	GetRuns(ctx context.Context, jobID uint, limit int) ([]dto.RunResponse, error)
}

// NewJobService creates a new job service.
func NewJobService(jobRepo repository.JobRepository, runRepo repository.RunRepository, logger *logger.Logger) JobService {
	return &jobService{jobRepo: jobRepo, runRepo: runRepo, logger: logger}
}

type jobService struct {
	jobRepo repository.JobRepository
	runRepo repository.RunRepository
	logger  *logger.Logger
}

var validJobTypes = map[entity.JobType]struct{}{
	entity.JobTypeSignalPriceUpdate: {},
	entity.JobTypeDailySnapshot:     {},
	entity.JobTypeResearchRefresh:   {},
	entity.JobTypePriceAlert:        {},
}

func (s *jobService) CreateJob(ctx context.Context, req *dto.CreateJobRequest) (*dto.JobResponse, error) {
	jobType := entity.JobType(req.Type)
	if _, ok := validJobTypes[jobType]; !ok {
		return nil, fmt.Errorf("unknown job type: %s", req.Type)
	}

	job := &entity.RefreshJob{
		Name:        req.Name,
		Description: req.Description,
		Type:        jobType,
		Payload:     []byte(req.Payload),
		Timeout:     req.Timeout,
	}
	if job.Timeout <= 0 {
		job.Timeout = 60
	}
	for _, sched := range req.Schedules {
		isActive := true
		if sched.IsActive != nil {
			isActive = *sched.IsActive
		}
		job.Schedules = append(job.Schedules, entity.RefreshSchedule{
			CronExpression: sched.CronExpression,
			IsActive:       isActive,
		})
	}

	if err := s.jobRepo.Create(ctx, job); err != nil {
		s.logger.Error("Failed to create refresh job", logger.ErrorField(err))
		return nil, err
	}
	return mapToJobResponse(job), nil
}

func (s *jobService) GetJobByID(ctx context.Context, id uint) (*dto.JobResponse, error) {
	job, err := s.jobRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return mapToJobResponse(job), nil
}

func (s *jobService) GetAllJobs(ctx context.Context) ([]*dto.JobResponse, error) {
	jobs, err := s.jobRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	var responses []*dto.JobResponse
	for i := range jobs {
		responses = append(responses, mapToJobResponse(&jobs[i]))
	}
	return responses, nil
}

func (s *jobService) UpdateJob(ctx context.Context, id uint, req *dto.UpdateJobRequest) (*dto.JobResponse, error) {
	job, err := s.jobRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != "" {
		job.Name = req.Name
	}
	job.Description = req.Description
	if len(req.Payload) > 0 {
		job.Payload = []byte(req.Payload)
	}
	if req.Timeout > 0 {
		job.Timeout = req.Timeout
	}

	if err := s.jobRepo.Update(ctx, job); err != nil {
		s.logger.Error("Failed to update refresh job", logger.ErrorField(err), logger.Field("job_id", id))
		return nil, err
	}
	return mapToJobResponse(job), nil
}

func (s *jobService) DeleteJob(ctx context.Context, id uint) error {
	if err := s.jobRepo.Delete(ctx, id); err != nil {
		s.logger.Error("Failed to delete refresh job", logger.ErrorField(err), logger.Field("job_id", id))
		return err
	}
	return nil
}

func (s *jobService) GetRuns(ctx context.Context, jobID uint, limit int) ([]dto.RunResponse, error) {
	runs, err := s.runRepo.FindByJobID(ctx, jobID, limit)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.RunResponse, 0, len(runs))
	for _, run := range runs {
		resp := dto.RunResponse{
			ID:         run.ID,
			JobID:      run.JobID,
			ScheduleID: run.ScheduleID,
			Status:     string(run.Status),
			StartedAt:  run.StartedAt,
		}
		if run.CompletedAt.Valid {
			completed := run.CompletedAt.Time
			resp.CompletedAt = &completed
		}
		if run.Output.Valid {
			resp.Output = run.Output.String
		}
		if run.ErrorMessage.Valid {
			resp.ErrorMessage = run.ErrorMessage.String
		}
		responses = append(responses, resp)
	}
	return responses, nil
}

func mapToJobResponse(job *entity.RefreshJob) *dto.JobResponse {
	resp := &dto.JobResponse{
		ID:          job.ID,
		Name:        job.Name,
		Description: job.Description,
		Type:        string(job.Type),
		Payload:     json.RawMessage(job.Payload),
		Timeout:     job.Timeout,
		Schedules:   make([]dto.ScheduleResponse, 0, len(job.Schedules)),
		CreatedAt:   job.CreatedAt,
		UpdatedAt:   job.UpdatedAt,
	}
	for _, sched := range job.Schedules {
		schedResp := dto.ScheduleResponse{
			ID:             sched.ID,
			CronExpression: sched.CronExpression,
			IsActive:       sched.IsActive,
		}
		if sched.NextExecution.Valid {
			next := sched.NextExecution.Time
			schedResp.NextExecution = &next
		}
		if sched.LastExecution.Valid {
			last := sched.LastExecution.Time
			schedResp.LastExecution = &last
		}
		resp.Schedules = append(resp.Schedules, schedResp)
	}
	return resp
}
