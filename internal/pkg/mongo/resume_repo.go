package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type SkillCount struct {
	Skill string `bson:"_id"`
	Count int64  `bson:"count"`
}

type ResumeRepo interface {
	Create(ctx context.Context, resume *Resume) (string, error)
	GetByID(ctx context.Context, userID uint64, id string) (*Resume, error)
	ListByUser(ctx context.Context, userID uint64) ([]*Resume, error)
	Update(ctx context.Context, userID uint64, resume *Resume) error
	Delete(ctx context.Context, userID uint64, id string) error
	TopSkills(ctx context.Context, userID uint64, limit int) ([]SkillCount, error)
}

type resumeRepoImpl struct {
	col *mongo.Collection
}

func NewResumeRepo(db *mongo.Database) ResumeRepo {
	return &resumeRepoImpl{
		col: db.Collection("resumes"),
	}
}

func (s *resumeRepoImpl) Create(ctx context.Context, resume *Resume) (string, error) {
	now := time.Now()
	resume.CreatedAt = now
	resume.UpdatedAt = now

	result, err := s.col.InsertOne(ctx, resume)
	if err != nil {
		return "", err
	}
	oid, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return "", errors.New("unexpected inserted id type")
	}
	resume.ID = oid
	return oid.Hex(), nil
}

func (s *resumeRepoImpl) GetByID(ctx context.Context, userID uint64, id string) (*Resume, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, err
	}

	var resume Resume
	err = s.col.FindOne(ctx, bson.M{"_id": oid, "user_id": userID}).Decode(&resume)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &resume, nil
}

func (s *resumeRepoImpl) ListByUser(ctx context.Context, userID uint64) ([]*Resume, error) {
	cursor, err := s.col.Find(ctx, bson.M{"user_id": userID},
		options.Find().SetSort(bson.D{{Key: "updated_at", Value: -1}}))
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = cursor.Close(ctx)
	}()

	var resumes []*Resume
	if err := cursor.All(ctx, &resumes); err != nil {
		return nil, err
	}
	return resumes, nil
}

func (s *resumeRepoImpl) Update(ctx context.Context, userID uint64, resume *Resume) error {
	update := bson.M{"$set": bson.M{
		"title":      resume.Title,
		"summary":    resume.Summary,
		"skills":     resume.Skills,
		"experience": resume.Experience,
		"education":  resume.Education,
		"updated_at": time.Now(),
	}}

	result, err := s.col.UpdateOne(ctx, bson.M{"_id": resume.ID, "user_id": userID}, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

func (s *resumeRepoImpl) Delete(ctx context.Context, userID uint64, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return err
	}

	result, err := s.col.DeleteOne(ctx, bson.M{"_id": oid, "user_id": userID})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// TopSkills 展开简历技能后按出现次数排序
func (s *resumeRepoImpl) TopSkills(ctx context.Context, userID uint64, limit int) ([]SkillCount, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"user_id": userID}}},
		{{Key: "$unwind", Value: "$skills"}},
		{{Key: "$group", Value: bson.M{"_id": "$skills", "count": bson.M{"$sum": 1}}}},
		{{Key: "$sort", Value: bson.D{{Key: "count", Value: -1}, {Key: "_id", Value: 1}}}},
		{{Key: "$limit", Value: limit}},
	}

	cursor, err := s.col.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = cursor.Close(ctx)
	}()

	var counts []SkillCount
	if err := cursor.All(ctx, &counts); err != nil {
		return nil, err
	}
	return counts, nil
}
