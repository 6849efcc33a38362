package entity

import (
	"database/sql"
	"time"

	"gorm.io/datatypes"
)

type JobType string

const (
	JobTypeSignalPriceUpdate JobType = "signal_price_update"
	JobTypeDailySnapshot     JobType = "daily_snapshot"
	JobTypeResearchRefresh   JobType = "research_refresh"
	JobTypePriceAlert        JobType = "price_alert"
)

type RunStatus string

const (
	StatusRunning   RunStatus = "RUNNING"
	StatusCompleted RunStatus = "COMPLETED"
	StatusFailed    RunStatus = "FAILED"
)

// RefreshJob is a configured background refresh task with its cron schedules.
type RefreshJob struct {
	ID          uint              `gorm:"primaryKey" json:"id"`
	Name        string            `gorm:"not null" json:"name"`
	Description string            `json:"description"`
	Type        JobType           `gorm:"not null" json:"type"`
	Payload     datatypes.JSON    `gorm:"type:jsonb" json:"payload"`
	Timeout     int               `gorm:"not null;default:60" json:"timeout"`
	Schedules   []RefreshSchedule `gorm:"foreignKey:JobID" json:"schedules"`
	CreatedAt   time.Time         `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time         `gorm:"autoUpdateTime" json:"updated_at"`
}

func (RefreshJob) TableName() string {
	return "refresh_jobs"
}

type RefreshSchedule struct {
	ID             uint         `gorm:"primaryKey" json:"id"`
	JobID          uint         `gorm:"not null;index" json:"job_id"`
	CronExpression string       `gorm:"not null" json:"cron_expression"`
	IsActive       bool         `gorm:"not null;default:true" json:"is_active"`
	NextExecution  sql.NullTime `json:"next_execution"`
	LastExecution  sql.NullTime `json:"last_execution"`
	CreatedAt      time.Time    `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time    `gorm:"autoUpdateTime" json:"updated_at"`
}

func (RefreshSchedule) TableName() string {
	return "refresh_schedules"
}

// RefreshRun records a single execution of a refresh job.
type RefreshRun struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	JobID        uint           `gorm:"not null;index" json:"job_id"`
	ScheduleID   uint           `gorm:"not null" json:"schedule_id"`
	Status       RunStatus      `gorm:"not null" json:"status"`
	StartedAt    time.Time      `gorm:"not null" json:"started_at"`
	CompletedAt  sql.NullTime   `json:"completed_at"`
	Output       sql.NullString `json:"output"`
	ErrorMessage sql.NullString `json:"error_message"`
}

func (RefreshRun) TableName() string {
	return "refresh_runs"
}
