package mongo

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Resume 简历文档
type Resume struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID     uint64             `bson:"user_id" json:"userId"`
	Title      string             `bson:"title" json:"title"`
	Summary    string             `bson:"summary,omitempty" json:"summary"`
	Skills     []string           `bson:"skills,omitempty" json:"skills"`
	Experience []ExperienceEntry  `bson:"experience,omitempty" json:"experience"`
	Education  []EducationEntry   `bson:"education,omitempty" json:"education"`
	CreatedAt  time.Time          `bson:"created_at" json:"createdAt"`
	UpdatedAt  time.Time          `bson:"updated_at" json:"updatedAt"`
}

type ExperienceEntry struct {
	Company     string     `bson:"company" json:"company"`
	Role        string     `bson:"role" json:"role"`
	Description string     `bson:"description,omitempty" json:"description"`
	StartedAt   time.Time  `bson:"started_at" json:"startedAt"`
	EndedAt     *time.Time `bson:"ended_at,omitempty" json:"endedAt"`
}

type EducationEntry struct {
	School string `bson:"school" json:"school"`
	Degree string `bson:"degree,omitempty" json:"degree"`
	Major  string `bson:"major,omitempty" json:"major"`
	Year   int    `bson:"year,omitempty" json:"year"`
}

// SectionsComplete 简历各区块是否填写，画像强度的输入
func (r *Resume) SectionsComplete() (summary, skills, experience, education bool) {
	return r.Summary != "", len(r.Skills) > 0, len(r.Experience) > 0, len(r.Education) > 0
}
