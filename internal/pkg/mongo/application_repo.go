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

// 聚合结果显式建模，避免 bson.M 透传导致的形状漂移
type StatusCount struct {
	Status string `bson:"_id"`
	Count  int64  `bson:"count"`
}

type CompanyCount struct {
	Company string `bson:"_id"`
	Count   int64  `bson:"count"`
}

type MonthCount struct {
	Month string `bson:"_id"` // 2026-08
	Count int64  `bson:"count"`
}

type CompanyStatusCount struct {
	Company string `bson:"company"`
	Status  string `bson:"status"`
	Count   int64  `bson:"count"`
}

type ApplicationRepo interface {
	Create(ctx context.Context, app *Application) (string, error)
	GetByID(ctx context.Context, userID uint64, id string) (*Application, error)
	ListByUser(ctx context.Context, userID uint64, status string, page, pageSize int) ([]*Application, error)
	Update(ctx context.Context, userID uint64, app *Application) error
	UpdateStatus(ctx context.Context, userID uint64, id string, change StatusChange) error
	AddCommunication(ctx context.Context, userID uint64, id string, comm Communication) error
	AddAttachment(ctx context.Context, userID uint64, id string, att Attachment) error
	Delete(ctx context.Context, userID uint64, id string) error

	CountByUser(ctx context.Context, userID uint64) (int64, error)
	CountResponded(ctx context.Context, userID uint64) (int64, error)
	CountByStatus(ctx context.Context, userID uint64) ([]StatusCount, error)
	CountInRange(ctx context.Context, userID uint64, from, to time.Time) (int64, error)
	CountStatusChangesInRange(ctx context.Context, userID uint64, from, to time.Time) (int64, error)
	TopCompanies(ctx context.Context, userID uint64, limit int) ([]CompanyCount, error)
	MonthlyTrend(ctx context.Context, userID uint64, months int) ([]MonthCount, error)
	AvgResponseDays(ctx context.Context, userID uint64) (float64, error)
	CompanyStatusBreakdown(ctx context.Context, userID uint64, company string) ([]CompanyStatusCount, error)
}

type applicationRepoImpl struct {
	col *mongo.Collection
}

func NewApplicationRepo(db *mongo.Database) ApplicationRepo {
	return &applicationRepoImpl{
		col: db.Collection("applications"),
	}
}

func (s *applicationRepoImpl) Create(ctx context.Context, app *Application) (string, error) {
	now := time.Now()
	app.CreatedAt = now
	app.UpdatedAt = now
	if app.AppliedAt.IsZero() {
		app.AppliedAt = now
	}
	if len(app.StatusHistory) == 0 {
		app.StatusHistory = []StatusChange{{Status: app.Status, ChangedAt: now}}
	}

	result, err := s.col.InsertOne(ctx, app)
	if err != nil {
		return "", err
	}
	oid, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return "", errors.New("unexpected inserted id type")
	}
	app.ID = oid
	return oid.Hex(), nil
}

func (s *applicationRepoImpl) GetByID(ctx context.Context, userID uint64, id string) (*Application, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, err
	}

	var app Application
	err = s.col.FindOne(ctx, bson.M{"_id": oid, "user_id": userID}).Decode(&app)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &app, nil
}

func (s *applicationRepoImpl) ListByUser(ctx context.Context, userID uint64, status string, page, pageSize int) ([]*Application, error) {
	filter := bson.M{"user_id": userID}
	if status != "" {
		filter["status"] = status
	}

	findOptions := options.Find().
		SetSort(bson.D{{Key: "applied_at", Value: -1}}).
		SetSkip(int64((page - 1) * pageSize)).
		SetLimit(int64(pageSize))

	cursor, err := s.col.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = cursor.Close(ctx)
	}()

	var apps []*Application
	if err := cursor.All(ctx, &apps); err != nil {
		return nil, err
	}
	return apps, nil
}

func (s *applicationRepoImpl) Update(ctx context.Context, userID uint64, app *Application) error {
	update := bson.M{"$set": bson.M{
		"company":     app.Company,
		"position":    app.Position,
		"location":    app.Location,
		"source":      app.Source,
		"posting_url": app.PostingURL,
		"salary_min":  app.SalaryMin,
		"salary_max":  app.SalaryMax,
		"currency":    app.Currency,
		"skills":      app.Skills,
		"notes":       app.Notes,
		"applied_at":  app.AppliedAt,
		"updated_at":  time.Now(),
	}}

	result, err := s.col.UpdateOne(ctx, bson.M{"_id": app.ID, "user_id": userID}, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// UpdateStatus 更新当前状态并向 status_history 追加一条记录
func (s *applicationRepoImpl) UpdateStatus(ctx context.Context, userID uint64, id string, change StatusChange) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return err
	}

	update := bson.M{
		"$set":  bson.M{"status": change.Status, "updated_at": time.Now()},
		"$push": bson.M{"status_history": change},
	}
	result, err := s.col.UpdateOne(ctx, bson.M{"_id": oid, "user_id": userID}, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// AddCommunication 追加沟通记录；首条入站沟通回填 first_response_at
func (s *applicationRepoImpl) AddCommunication(ctx context.Context, userID uint64, id string, comm Communication) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return err
	}

	update := bson.M{
		"$push": bson.M{"communications": comm},
		"$set":  bson.M{"updated_at": time.Now()},
	}
	result, err := s.col.UpdateOne(ctx, bson.M{"_id": oid, "user_id": userID}, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}

	if comm.Direction == "inbound" {
		_, err = s.col.UpdateOne(ctx,
			bson.M{"_id": oid, "user_id": userID, "first_response_at": bson.M{"$exists": false}},
			bson.M{"$set": bson.M{"first_response_at": comm.OccurredAt}},
		)
	}
	return err
}

func (s *applicationRepoImpl) AddAttachment(ctx context.Context, userID uint64, id string, att Attachment) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return err
	}

	result, err := s.col.UpdateOne(ctx,
		bson.M{"_id": oid, "user_id": userID},
		bson.M{"$push": bson.M{"attachments": att}, "$set": bson.M{"updated_at": time.Now()}},
	)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

func (s *applicationRepoImpl) Delete(ctx context.Context, userID uint64, id string) error {
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

func (s *applicationRepoImpl) CountByUser(ctx context.Context, userID uint64) (int64, error) {
	return s.col.CountDocuments(ctx, bson.M{"user_id": userID})
}

// CountResponded 已收到首次回复的申请数，响应率的分子
func (s *applicationRepoImpl) CountResponded(ctx context.Context, userID uint64) (int64, error) {
	return s.col.CountDocuments(ctx, bson.M{
		"user_id":           userID,
		"first_response_at": bson.M{"$exists": true},
	})
}

func (s *applicationRepoImpl) CountByStatus(ctx context.Context, userID uint64) ([]StatusCount, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"user_id": userID}}},
		{{Key: "$group", Value: bson.M{"_id": "$status", "count": bson.M{"$sum": 1}}}},
	}

	var counts []StatusCount
	if err := s.aggregate(ctx, pipeline, &counts); err != nil {
		return nil, err
	}
	return counts, nil
}

func (s *applicationRepoImpl) CountInRange(ctx context.Context, userID uint64, from, to time.Time) (int64, error) {
	return s.col.CountDocuments(ctx, bson.M{
		"user_id":    userID,
		"applied_at": bson.M{"$gte": from, "$lt": to},
	})
}

// CountStatusChangesInRange 统计时间窗内的状态流转次数
func (s *applicationRepoImpl) CountStatusChangesInRange(ctx context.Context, userID uint64, from, to time.Time) (int64, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"user_id": userID}}},
		{{Key: "$unwind", Value: "$status_history"}},
		{{Key: "$match", Value: bson.M{"status_history.changed_at": bson.M{"$gte": from, "$lt": to}}}},
		{{Key: "$count", Value: "count"}},
	}

	var results []struct {
		Count int64 `bson:"count"`
	}
	if err := s.aggregate(ctx, pipeline, &results); err != nil {
		return 0, err
	}
	if len(results) == 0 {
		return 0, nil
	}
	return results[0].Count, nil
}

// topCompaniesPipeline 按申请量降序取前 N，数量相同按公司名升序保证排序稳定
func topCompaniesPipeline(userID uint64, limit int) mongo.Pipeline {
	return mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"user_id": userID}}},
		{{Key: "$group", Value: bson.M{"_id": "$company", "count": bson.M{"$sum": 1}}}},
		{{Key: "$sort", Value: bson.D{{Key: "count", Value: -1}, {Key: "_id", Value: 1}}}},
		{{Key: "$limit", Value: limit}},
	}
}

func (s *applicationRepoImpl) TopCompanies(ctx context.Context, userID uint64, limit int) ([]CompanyCount, error) {
	var counts []CompanyCount
	if err := s.aggregate(ctx, topCompaniesPipeline(userID, limit), &counts); err != nil {
		return nil, err
	}
	return counts, nil
}

func (s *applicationRepoImpl) MonthlyTrend(ctx context.Context, userID uint64, months int) ([]MonthCount, error) {
	since := time.Now().AddDate(0, -months, 0)
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"user_id": userID, "applied_at": bson.M{"$gte": since}}}},
		{{Key: "$group", Value: bson.M{
			"_id":   bson.M{"$dateToString": bson.M{"format": "%Y-%m", "date": "$applied_at"}},
			"count": bson.M{"$sum": 1},
		}}},
		{{Key: "$sort", Value: bson.D{{Key: "_id", Value: 1}}}},
	}

	var counts []MonthCount
	if err := s.aggregate(ctx, pipeline, &counts); err != nil {
		return nil, err
	}
	return counts, nil
}

// AvgResponseDays 只统计已有首次回复的申请
func (s *applicationRepoImpl) AvgResponseDays(ctx context.Context, userID uint64) (float64, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{
			"user_id":           userID,
			"first_response_at": bson.M{"$exists": true},
		}}},
		{{Key: "$project", Value: bson.M{
			"response_ms": bson.M{"$subtract": bson.A{"$first_response_at", "$applied_at"}},
		}}},
		{{Key: "$group", Value: bson.M{"_id": nil, "avg_ms": bson.M{"$avg": "$response_ms"}}}},
	}

	var results []struct {
		AvgMs float64 `bson:"avg_ms"`
	}
	if err := s.aggregate(ctx, pipeline, &results); err != nil {
		return 0, err
	}
	if len(results) == 0 {
		return 0, nil
	}
	return results[0].AvgMs / float64(24*time.Hour/time.Millisecond), nil
}

func (s *applicationRepoImpl) CompanyStatusBreakdown(ctx context.Context, userID uint64, company string) ([]CompanyStatusCount, error) {
	match := bson.M{"user_id": userID}
	if company != "" {
		match["company"] = company
	}

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: match}},
		{{Key: "$group", Value: bson.M{
			"_id":   bson.M{"company": "$company", "status": "$status"},
			"count": bson.M{"$sum": 1},
		}}},
		{{Key: "$project", Value: bson.M{
			"_id":     0,
			"company": "$_id.company",
			"status":  "$_id.status",
			"count":   1,
		}}},
		{{Key: "$sort", Value: bson.D{{Key: "company", Value: 1}, {Key: "status", Value: 1}}}},
	}

	var counts []CompanyStatusCount
	if err := s.aggregate(ctx, pipeline, &counts); err != nil {
		return nil, err
	}
	return counts, nil
}

func (s *applicationRepoImpl) aggregate(ctx context.Context, pipeline mongo.Pipeline, results any) error {
	cursor, err := s.col.Aggregate(ctx, pipeline)
	if err != nil {
		return err
	}
	defer func() {
		_ = cursor.Close(ctx)
	}()
	return cursor.All(ctx, results)
}
