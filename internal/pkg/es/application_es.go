package es

import "time"

// ApplicationES 投递记录的搜索索引文档，_id 为 Mongo ObjectID Hex
type ApplicationES struct {
	ID        string    `json:"id"`
	UserID    uint64    `json:"user_id"`
	Company   string    `json:"company"`
	Position  string    `json:"position"`
	Location  string    `json:"location,omitempty"`
	Status    string    `json:"status"`
	Source    string    `json:"source,omitempty"`
	Skills    []string  `json:"skills,omitempty"`
	Notes     string    `json:"notes,omitempty"`
	SalaryMin int64     `json:"salary_min,omitempty"`
	SalaryMax int64     `json:"salary_max,omitempty"`
	AppliedAt time.Time `json:"applied_at"`

	Sort []interface{} `json:"-"`
}
