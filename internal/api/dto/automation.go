package dto

import "time"

// TaskBaseDTO 自动化任务 - 注册
type TaskBaseDTO struct {
	Name             string `json:"name" binding:"required" validate:"min=1,max=100"`
	Type             string `json:"type" binding:"required" validate:"oneof=report_refresh metric_snapshot"`
	FrequencyMinutes int    `json:"frequency_minutes" binding:"required" validate:"min=1,max=10080"`
	Enabled          bool   `json:"enabled"`
}

// TaskDTO 自动化任务
type TaskDTO struct {
	ID               string     `json:"id"`
	Name             string     `json:"name"`
	Type             string     `json:"type"`
	FrequencyMinutes int        `json:"frequency_minutes"`
	Enabled          bool       `json:"enabled"`
	NextRun          time.Time  `json:"next_run"`
	LastRun          *time.Time `json:"last_run,omitempty"`
	LastError        string     `json:"last_error,omitempty"`
}

// RuleBaseDTO 告警规则 - 注册
type RuleBaseDTO struct {
	Name            string  `json:"name" binding:"required" validate:"min=1,max=100"`
	UserID          uint64  `json:"user_id" binding:"required"`
	Metric          string  `json:"metric" binding:"required"`
	Comparator      string  `json:"comparator" binding:"required" validate:"oneof=gt gte lt lte eq"`
	Threshold       float64 `json:"threshold"`
	IntervalMinutes int     `json:"interval_minutes" validate:"omitempty,min=1,max=10080"`
	Enabled         bool    `json:"enabled"`
}

// RuleDTO 告警规则
type RuleDTO struct {
	ID              string     `json:"id"`
	Name            string     `json:"name"`
	UserID          uint64     `json:"user_id"`
	Metric          string     `json:"metric"`
	Comparator      string     `json:"comparator"`
	Threshold       float64    `json:"threshold"`
	IntervalMinutes int        `json:"interval_minutes"`
	Enabled         bool       `json:"enabled"`
	LastFiredAt     *time.Time `json:"last_fired_at,omitempty"`
}
