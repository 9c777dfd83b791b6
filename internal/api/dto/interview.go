package dto

import "time"

// InterviewBaseDTO 面试安排 - 新增
type InterviewBaseDTO struct {
	ApplicationID   string    `json:"application_id" binding:"required"`
	Round           int       `json:"round" validate:"omitempty,min=1,max=20"`
	Type            string    `json:"type" binding:"required" validate:"oneof=phone video onsite"`
	ScheduledAt     time.Time `json:"scheduled_at" binding:"required"`
	DurationMinutes int       `json:"duration_minutes" validate:"omitempty,min=5,max=480"`
	Location        string    `json:"location" validate:"omitempty,max=300"`
	MeetingURL      string    `json:"meeting_url" validate:"omitempty,max=2048"`
	Interviewers    []string  `json:"interviewers" validate:"max=20"`
}

// InterviewDTO 面试安排
type InterviewDTO struct {
	ID              string    `json:"id"`
	ApplicationID   string    `json:"application_id"`
	Round           int       `json:"round"`
	Type            string    `json:"type"`
	ScheduledAt     time.Time `json:"scheduled_at"`
	DurationMinutes int       `json:"duration_minutes"`
	Location        string    `json:"location,omitempty"`
	MeetingURL      string    `json:"meeting_url,omitempty"`
	Interviewers    []string  `json:"interviewers,omitempty"`
	Outcome         string    `json:"outcome"`
	Notes           string    `json:"notes,omitempty"`
}

// InterviewOutcomeDTO 记录面试结果
type InterviewOutcomeDTO struct {
	Outcome string `json:"outcome" binding:"required" validate:"oneof=pending passed failed cancelled"`
	Notes   string `json:"notes" validate:"omitempty,max=2000"`
}

// InterviewRescheduleDTO 改期
type InterviewRescheduleDTO struct {
	ScheduledAt     time.Time `json:"scheduled_at" binding:"required"`
	DurationMinutes int       `json:"duration_minutes" validate:"omitempty,min=5,max=480"`
}
