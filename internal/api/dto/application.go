package dto

import "time"

// ApplicationBaseDTO 投递记录 - 新增或修改
type ApplicationBaseDTO struct {
	Company    string     `json:"company" binding:"required" validate:"min=1,max=200"`
	Position   string     `json:"position" binding:"required" validate:"min=1,max=200"`
	Location   string     `json:"location" validate:"omitempty,max=200"`
	Source     string     `json:"source" validate:"omitempty,max=100"`
	PostingURL string     `json:"posting_url" validate:"omitempty,max=2048"`
	SalaryMin  int64      `json:"salary_min" validate:"omitempty,min=0"`
	SalaryMax  int64      `json:"salary_max" validate:"omitempty,min=0"`
	Currency   string     `json:"currency" validate:"omitempty,max=10"`
	Skills     []string   `json:"skills" validate:"max=50"`
	Notes      string     `json:"notes" validate:"omitempty,max=5000"`
	AppliedAt  *time.Time `json:"applied_at"`
}

// ApplicationDTO 投递记录
type ApplicationDTO struct {
	ID              string             `json:"id"`
	Company         string             `json:"company"`
	Position        string             `json:"position"`
	Location        string             `json:"location,omitempty"`
	Status          string             `json:"status"`
	Source          string             `json:"source,omitempty"`
	PostingURL      string             `json:"posting_url,omitempty"`
	SalaryMin       int64              `json:"salary_min,omitempty"`
	SalaryMax       int64              `json:"salary_max,omitempty"`
	Currency        string             `json:"currency,omitempty"`
	Skills          []string           `json:"skills,omitempty"`
	Notes           string             `json:"notes,omitempty"`
	AppliedAt       time.Time          `json:"applied_at"`
	FirstResponseAt *time.Time         `json:"first_response_at,omitempty"`
	StatusHistory   []StatusChangeDTO  `json:"status_history,omitempty"`
	Communications  []CommunicationDTO `json:"communications,omitempty"`
	Attachments     []AttachmentDTO    `json:"attachments,omitempty"`
	CreatedAt       time.Time          `json:"created_at"`
	UpdatedAt       time.Time          `json:"updated_at"`
}

// StatusChangeDTO 状态变更记录
type StatusChangeDTO struct {
	Status    string    `json:"status"`
	Note      string    `json:"note,omitempty"`
	ChangedAt time.Time `json:"changed_at"`
}

// ChangeStatusDTO 状态流转
type ChangeStatusDTO struct {
	Status string `json:"status" binding:"required"`
	Note   string `json:"note" validate:"omitempty,max=500"`
}

// CommunicationDTO 沟通记录
type CommunicationDTO struct {
	Type       string    `json:"type" binding:"required" validate:"oneof=email phone message other"`
	Direction  string    `json:"direction" binding:"required" validate:"oneof=inbound outbound"`
	Subject    string    `json:"subject" validate:"omitempty,max=300"`
	OccurredAt time.Time `json:"occurred_at"`
}

// AttachmentDTO 附件
type AttachmentDTO struct {
	ObjectKey   string    `json:"object_key"`
	FileName    string    `json:"file_name"`
	ContentType string    `json:"content_type"`
	Size        int64     `json:"size"`
	UploadedAt  time.Time `json:"uploaded_at"`
	DownloadURL string    `json:"download_url,omitempty"`
}

// ApplicationSearchDTO 搜索条件
type ApplicationSearchDTO struct {
	Keyword string `json:"keyword" form:"keyword"`
	Status  string `json:"status" form:"status"`
	Company string `json:"company" form:"company"`
	Cursor  string `json:"cursor" form:"cursor"`
	Size    int    `json:"size" form:"size" validate:"omitempty,min=1,max=50"`
}

// ApplicationPageDTO 分页结果
type ApplicationPageDTO struct {
	Items      []*ApplicationDTO `json:"items"`
	NextCursor string            `json:"next_cursor,omitempty"`
}
