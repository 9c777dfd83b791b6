package dto

// DashboardMetricsDTO 仪表盘报表
type DashboardMetricsDTO struct {
	TotalApplications int64            `json:"total_applications"`
	StatusCounts      map[string]int64 `json:"status_counts"`

	SuccessRate   float64 `json:"success_rate"`
	ResponseRate  float64 `json:"response_rate"`
	InterviewRate float64 `json:"interview_rate"`
	OfferRate     float64 `json:"offer_rate"`

	AvgResponseDays float64 `json:"avg_response_days"`

	MonthlyTrend []MonthBucketDTO `json:"monthly_trend"`
	Trend        string           `json:"trend"` // growing/stable/declining

	TopCompanies []CompanyCountDTO `json:"top_companies"`
	TopSkills    []SkillCountDTO   `json:"top_skills"`
}

// MonthBucketDTO 月度投递数
type MonthBucketDTO struct {
	Month string `json:"month"`
	Count int64  `json:"count"`
}

// CompanyCountDTO 公司投递排行
type CompanyCountDTO struct {
	Company string `json:"company"`
	Count   int64  `json:"count"`
}

// SkillCountDTO 技能出现次数
type SkillCountDTO struct {
	Skill string `json:"skill"`
	Count int64  `json:"count"`
}

// UserAnalyticsDTO 用户画像报表
type UserAnalyticsDTO struct {
	UserID          uint64 `json:"user_id"`
	ProfileStrength int    `json:"profile_strength"`

	LoginsLast30Days int64  `json:"logins_last_30_days"`
	LastLoginAt      string `json:"last_login_at,omitempty"`
	Country          string `json:"country,omitempty"`
	City             string `json:"city,omitempty"`

	TotalApplications int64            `json:"total_applications"`
	TotalResumes      int              `json:"total_resumes"`
	InterviewOutcomes map[string]int64 `json:"interview_outcomes"`
}

// DailyMetricDTO 单日活动快照
type DailyMetricDTO struct {
	Date              string `json:"date"` // 2026-08-23
	ApplicationsTotal int    `json:"applications_total"`
	StatusChanges     int    `json:"status_changes"`
	InterviewsTotal   int    `json:"interviews_total"`
	OffersTotal       int    `json:"offers_total"`
}

// CompanyAnalyticsDTO 公司维度报表
type CompanyAnalyticsDTO struct {
	Company       string           `json:"company"`
	Total         int64            `json:"total"`
	StatusCounts  map[string]int64 `json:"status_counts"`
	SuccessRate   float64          `json:"success_rate"`
	InterviewRate float64          `json:"interview_rate"`
}

// CacheStatsDTO 报表缓存状态
type CacheStatsDTO struct {
	Size int      `json:"size"`
	Keys []string `json:"keys"`
}
