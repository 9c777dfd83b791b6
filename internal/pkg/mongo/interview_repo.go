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

type OutcomeCount struct {
	Outcome string `bson:"_id"`
	Count   int64  `bson:"count"`
}

type InterviewRepo interface {
	Create(ctx context.Context, interview *Interview) (string, error)
	GetByID(ctx context.Context, userID uint64, id string) (*Interview, error)
	ListByApplication(ctx context.Context, userID uint64, applicationID string) ([]*Interview, error)
	ListUpcoming(ctx context.Context, userID uint64, limit int) ([]*Interview, error)
	UpdateOutcome(ctx context.Context, userID uint64, id string, outcome, notes string) error
	Reschedule(ctx context.Context, userID uint64, id string, scheduledAt time.Time, durationMinutes int) error
	Delete(ctx context.Context, userID uint64, id string) error
	CountByOutcome(ctx context.Context, userID uint64) ([]OutcomeCount, error)
	CountInRange(ctx context.Context, userID uint64, from, to time.Time) (int64, error)
}

type interviewRepoImpl struct {
	col *mongo.Collection
}

func NewInterviewRepo(db *mongo.Database) InterviewRepo {
	return &interviewRepoImpl{
		col: db.Collection("interviews"),
	}
}

func (s *interviewRepoImpl) Create(ctx context.Context, interview *Interview) (string, error) {
	now := time.Now()
	interview.CreatedAt = now
	interview.UpdatedAt = now
	if interview.Outcome == "" {
		interview.Outcome = "pending"
	}

	result, err := s.col.InsertOne(ctx, interview)
	if err != nil {
		return "", err
	}
	oid, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return "", errors.New("unexpected inserted id type")
	}
	interview.ID = oid
	return oid.Hex(), nil
}

func (s *interviewRepoImpl) GetByID(ctx context.Context, userID uint64, id string) (*Interview, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, err
	}

	var interview Interview
	err = s.col.FindOne(ctx, bson.M{"_id": oid, "user_id": userID}).Decode(&interview)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &interview, nil
}

func (s *interviewRepoImpl) ListByApplication(ctx context.Context, userID uint64, applicationID string) ([]*Interview, error) {
	appOID, err := primitive.ObjectIDFromHex(applicationID)
	if err != nil {
		return nil, err
	}

	cursor, err := s.col.Find(ctx,
		bson.M{"user_id": userID, "application_id": appOID},
		options.Find().SetSort(bson.D{{Key: "round", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = cursor.Close(ctx)
	}()

	var interviews []*Interview
	if err := cursor.All(ctx, &interviews); err != nil {
		return nil, err
	}
	return interviews, nil
}

func (s *interviewRepoImpl) ListUpcoming(ctx context.Context, userID uint64, limit int) ([]*Interview, error) {
	cursor, err := s.col.Find(ctx,
		bson.M{
			"user_id":      userID,
			"outcome":      "pending",
			"scheduled_at": bson.M{"$gte": time.Now()},
		},
		options.Find().SetSort(bson.D{{Key: "scheduled_at", Value: 1}}).SetLimit(int64(limit)))
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = cursor.Close(ctx)
	}()

	var interviews []*Interview
	if err := cursor.All(ctx, &interviews); err != nil {
		return nil, err
	}
	return interviews, nil
}

func (s *interviewRepoImpl) UpdateOutcome(ctx context.Context, userID uint64, id string, outcome, notes string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return err
	}

	set := bson.M{"outcome": outcome, "updated_at": time.Now()}
	if notes != "" {
		set["notes"] = notes
	}

	result, err := s.col.UpdateOne(ctx, bson.M{"_id": oid, "user_id": userID}, bson.M{"$set": set})
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

func (s *interviewRepoImpl) Reschedule(ctx context.Context, userID uint64, id string, scheduledAt time.Time, durationMinutes int) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return err
	}

	result, err := s.col.UpdateOne(ctx,
		bson.M{"_id": oid, "user_id": userID},
		bson.M{"$set": bson.M{
			"scheduled_at":     scheduledAt,
			"duration_minutes": durationMinutes,
			"updated_at":       time.Now(),
		}})
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

func (s *interviewRepoImpl) Delete(ctx context.Context, userID uint64, id string) error {
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

// CountInRange 统计时间窗内安排的面试场次
func (s *interviewRepoImpl) CountInRange(ctx context.Context, userID uint64, from, to time.Time) (int64, error) {
	return s.col.CountDocuments(ctx, bson.M{
		"user_id":      userID,
		"scheduled_at": bson.M{"$gte": from, "$lt": to},
	})
}

func (s *interviewRepoImpl) CountByOutcome(ctx context.Context, userID uint64) ([]OutcomeCount, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"user_id": userID}}},
		{{Key: "$group", Value: bson.M{"_id": "$outcome", "count": bson.M{"$sum": 1}}}},
	}

	cursor, err := s.col.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = cursor.Close(ctx)
	}()

	var counts []OutcomeCount
	if err := cursor.All(ctx, &counts); err != nil {
		return nil, err
	}
	return counts, nil
}
