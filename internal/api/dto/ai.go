package dto

// JobMatchRequestDTO 岗位匹配分析请求
type JobMatchRequestDTO struct {
	ApplicationID string `json:"application_id" binding:"required"`
	ResumeID      string `json:"resume_id" binding:"required"`
}

// JobMatchDTO 岗位匹配分析结果
type JobMatchDTO struct {
	Score     int      `json:"score"`
	Strengths []string `json:"strengths"`
	Gaps      []string `json:"gaps"`
	Advice    string   `json:"advice"`
}

// ResumeReviewDTO 简历诊断结果
type ResumeReviewDTO struct {
	Score       int      `json:"score"`
	Issues      []string `json:"issues"`
	Suggestions []string `json:"suggestions"`
	Degraded    bool     `json:"degraded"`
}

// SalarySuggestRequestDTO 薪资建议请求
type SalarySuggestRequestDTO struct {
	Position string `json:"position" binding:"required"`
	Location string `json:"location"`
}

// SalarySuggestDTO 薪资建议
type SalarySuggestDTO struct {
	Min       int64  `json:"min"`
	Max       int64  `json:"max"`
	Currency  string `json:"currency"`
	Rationale string `json:"rationale,omitempty"`
	Degraded  bool   `json:"degraded"`
}
