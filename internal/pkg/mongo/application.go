package mongo

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Application 求职申请文档
type Application struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID          uint64             `bson:"user_id" json:"userId"`
	Company         string             `bson:"company" json:"company"`
	Position        string             `bson:"position" json:"position"`
	Location        string             `bson:"location,omitempty" json:"location"`
	Status          string             `bson:"status" json:"status"` // applied/screening/interview/offer/rejected/withdrawn
	Source          string             `bson:"source,omitempty" json:"source"`
	PostingURL      string             `bson:"posting_url,omitempty" json:"postingUrl"`
	SalaryMin       int64              `bson:"salary_min,omitempty" json:"salaryMin"`
	SalaryMax       int64              `bson:"salary_max,omitempty" json:"salaryMax"`
	Currency        string             `bson:"currency,omitempty" json:"currency"`
	Skills          []string           `bson:"skills,omitempty" json:"skills"`
	Notes           string             `bson:"notes,omitempty" json:"notes"`
	AppliedAt       time.Time          `bson:"applied_at" json:"appliedAt"`
	FirstResponseAt *time.Time         `bson:"first_response_at,omitempty" json:"firstResponseAt"`
	StatusHistory   []StatusChange     `bson:"status_history" json:"statusHistory"`
	Communications  []Communication    `bson:"communications,omitempty" json:"communications"`
	Attachments     []Attachment       `bson:"attachments,omitempty" json:"attachments"`
	CreatedAt       time.Time          `bson:"created_at" json:"createdAt"`
	UpdatedAt       time.Time          `bson:"updated_at" json:"updatedAt"`
}

// StatusChange 状态流转记录，只追加
type StatusChange struct {
	Status    string    `bson:"status" json:"status"`
	Note      string    `bson:"note,omitempty" json:"note"`
	ChangedAt time.Time `bson:"changed_at" json:"changedAt"`
}

// Communication 往来沟通记录
type Communication struct {
	Type       string    `bson:"type" json:"type"` // email/phone/message
	Direction  string    `bson:"direction" json:"direction"` // inbound/outbound
	Subject    string    `bson:"subject,omitempty" json:"subject"`
	OccurredAt time.Time `bson:"occurred_at" json:"occurredAt"`
}

// Attachment 申请附件，指向 MinIO 对象
type Attachment struct {
	ObjectKey   string    `bson:"object_key" json:"objectKey"`
	FileName    string    `bson:"file_name" json:"fileName"`
	ContentType string    `bson:"content_type" json:"contentType"`
	Size        int64     `bson:"size" json:"size"`
	UploadedAt  time.Time `bson:"uploaded_at" json:"uploadedAt"`
}
