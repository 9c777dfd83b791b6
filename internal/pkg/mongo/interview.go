package mongo

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Interview 面试安排文档
type Interview struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID          uint64             `bson:"user_id" json:"userId"`
	ApplicationID   primitive.ObjectID `bson:"application_id" json:"applicationId"`
	Round           int                `bson:"round" json:"round"`
	Type            string             `bson:"type" json:"type"` // phone/video/onsite
	ScheduledAt     time.Time          `bson:"scheduled_at" json:"scheduledAt"`
	DurationMinutes int                `bson:"duration_minutes" json:"durationMinutes"`
	Location        string             `bson:"location,omitempty" json:"location"`
	MeetingURL      string             `bson:"meeting_url,omitempty" json:"meetingUrl"`
	Interviewers    []string           `bson:"interviewers,omitempty" json:"interviewers"`
	Outcome         string             `bson:"outcome,omitempty" json:"outcome"` // pending/passed/failed/cancelled
	Notes           string             `bson:"notes,omitempty" json:"notes"`
	CreatedAt       time.Time          `bson:"created_at" json:"createdAt"`
	UpdatedAt       time.Time          `bson:"updated_at" json:"updatedAt"`
}
