package dto

// ImportRequestDTO 职位页面导入请求
type ImportRequestDTO struct {
	URL string `json:"url" binding:"required" validate:"url"`
}

// DraftApplicationDTO 导入生成的投递草稿，确认前不落库
type DraftApplicationDTO struct {
	Company     string   `json:"company"`
	Position    string   `json:"position"`
	Location    string   `json:"location,omitempty"`
	SalaryMin   int64    `json:"salary_min,omitempty"`
	SalaryMax   int64    `json:"salary_max,omitempty"`
	Currency    string   `json:"currency,omitempty"`
	Skills      []string `json:"skills,omitempty"`
	Description string   `json:"description,omitempty"`
	PostingURL  string   `json:"posting_url"`
	PageTitle   string   `json:"page_title,omitempty"`
}
