package repository

import (
	"Huntboard/internal/model"
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type UserDailyMetricRepo interface {
	SaveOrUpdateMetric(ctx context.Context, metric *model.UserDailyMetric) error
	GetMetricsSince(ctx context.Context, userID uint64, since time.Time) ([]*model.UserDailyMetric, error)
}

type userDailyMetricRepoImpl struct {
	db *gorm.DB
}

func NewUserDailyMetricRepo(db *gorm.DB) UserDailyMetricRepo {
	return &userDailyMetricRepoImpl{db: db}
}

// SaveOrUpdateMetric 同一用户同一天的快照做 upsert
func (s *userDailyMetricRepoImpl) SaveOrUpdateMetric(ctx context.Context, metric *model.UserDailyMetric) error {
	return s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}, {Name: "metric_date"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"applications_total", "status_changes", "interviews_total", "offers_total", "updated_at",
		}),
	}).Create(metric).Error
}

func (s *userDailyMetricRepoImpl) GetMetricsSince(ctx context.Context, userID uint64, since time.Time) ([]*model.UserDailyMetric, error) {
	metrics := make([]*model.UserDailyMetric, 0)
	result := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Where("metric_date >= ?", since).
		Order("metric_date ASC").
		Find(&metrics)
	if result.Error != nil {
		return nil, result.Error
	}
	return metrics, nil
}
