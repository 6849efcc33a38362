package dto

import (
	"encoding/json"
	"time"
)

// CreateScheduleRequest is one cron schedule attached to a refresh job.
type CreateScheduleRequest struct {
	CronExpression string `json:"cron_expression"`
	IsActive       *bool  `json:"is_active"`
}

// CreateJobRequest is the DTO for creating a refresh job with its schedules.
type CreateJobRequest struct {
	Name        string                  `json:"name"`
	Description string                  `json:"description"`
	Type        string                  `json:"type"`
	Payload     json.RawMessage         `json:"payload" swaggertype:"object"`
	Timeout     int                     `json:"timeout"`
	Schedules   []CreateScheduleRequest `json:"schedules"`
}

// UpdateJobRequest is the DTO for updating a refresh job.
type UpdateJobRequest struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Payload     json.RawMessage `json:"payload" swaggertype:"object"`
	Timeout     int             `json:"timeout"`
}

// ScheduleResponse is one cron schedule of a refresh job.
type ScheduleResponse struct {
	ID             uint       `json:"id"`
	CronExpression string     `json:"cron_expression"`
	IsActive       bool       `json:"is_active"`
	NextExecution  *time.Time `json:"next_execution,omitempty"`
	LastExecution  *time.Time `json:"last_execution,omitempty"`
}

// JobResponse is the DTO for API responses containing a refresh job.
type JobResponse struct {
	ID          uint               `json:"id"`
	Name        string             `json:"name"`
	Description string             `json:"description"`
	Type        string             `json:"type"`
	Payload     json.RawMessage    `json:"payload,omitempty" swaggertype:"object"`
	Timeout     int                `json:"timeout"`
	Schedules   []ScheduleResponse `json:"schedules"`
	CreatedAt   time.Time          `json:"created_at"`
	UpdatedAt   time.Time          `json:"updated_at"`
}

// RunResponse is one execution of a refresh job.
type RunResponse struct {
	ID           uint       `json:"id"`
	JobID        uint       `json:"job_id"`
	ScheduleID   uint       `json:"schedule_id"`
	Status       string     `json:"status"`
	StartedAt    time.Time  `json:"started_at"`
	CompletedAt  *time.Time `json:"completed_at,omitempty"`
	Output       string     `json:"output,omitempty"`
	ErrorMessage string     `json:"error_message,omitempty"`
}
