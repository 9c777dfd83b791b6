package dto

import "time"

// ResumeBaseDTO 简历 - 新增或修改
type ResumeBaseDTO struct {
	Title      string               `json:"title" binding:"required" validate:"min=1,max=200"`
	Summary    string               `json:"summary" validate:"omitempty,max=3000"`
	Skills     []string             `json:"skills" validate:"max=100"`
	Experience []ExperienceEntryDTO `json:"experience" validate:"max=30"`
	Education  []EducationEntryDTO  `json:"education" validate:"max=10"`
}

// ResumeDTO 简历
type ResumeDTO struct {
	ID         string               `json:"id"`
	Title      string               `json:"title"`
	Summary    string               `json:"summary,omitempty"`
	Skills     []string             `json:"skills,omitempty"`
	Experience []ExperienceEntryDTO `json:"experience,omitempty"`
	Education  []EducationEntryDTO  `json:"education,omitempty"`
	Complete   ResumeCompleteDTO    `json:"complete"`
	CreatedAt  time.Time            `json:"created_at"`
	UpdatedAt  time.Time            `json:"updated_at"`
}

// ResumeCompleteDTO 各区块完整度
type ResumeCompleteDTO struct {
	Summary    bool `json:"summary"`
	Skills     bool `json:"skills"`
	Experience bool `json:"experience"`
	Education  bool `json:"education"`
}

type ExperienceEntryDTO struct {
	Company     string     `json:"company" binding:"required"`
	Role        string     `json:"role" binding:"required"`
	Description string     `json:"description,omitempty"`
	StartedAt   time.Time  `json:"started_at"`
	EndedAt     *time.Time `json:"ended_at,omitempty"`
}

type EducationEntryDTO struct {
	School string `json:"school" binding:"required"`
	Degree string `json:"degree,omitempty"`
	Major  string `json:"major,omitempty"`
	Year   int    `json:"year,omitempty"`
}
