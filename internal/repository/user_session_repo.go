package repository

import (
	"Huntboard/internal/model"
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

type UserSessionRepo interface {
	CreateSession(ctx context.Context, session *model.UserSession) error
	CloseLatestSession(ctx context.Context, userID uint64) error
	CloseStaleSessions(ctx context.Context, olderThan time.Time) (int64, error)
	CountLoginsSince(ctx context.Context, userID uint64, since time.Time) (int64, error)
	GetLastSession(ctx context.Context, userID uint64) (*model.UserSession, error)
	GetRecentSessions(ctx context.Context, userID uint64, limit int) ([]*model.UserSession, error)
}

type userSessionRepoImpl struct {
	db *gorm.DB
}

func NewUserSessionRepo(db *gorm.DB) UserSessionRepo {
	return &userSessionRepoImpl{db: db}
}

func (s *userSessionRepoImpl) CreateSession(ctx context.Context, session *model.UserSession) error {
	return s.db.WithContext(ctx).Create(session).Error
}

// CloseLatestSession 登出时关闭该用户最近一个活跃会话
func (s *userSessionRepoImpl) CloseLatestSession(ctx context.Context, userID uint64) error {
	var session model.UserSession
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND is_active = ?", userID, true).
		Order("login_at DESC").
		First(&session).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return err
	}

	now := time.Now()
	return s.db.WithContext(ctx).
		Model(&model.UserSession{}).
		Where("id = ?", session.ID).
		Updates(map[string]any{"is_active": false, "logout_at": now}).Error
}

// CloseStaleSessions 批量关闭超时未登出的会话，返回影响行数
func (s *userSessionRepoImpl) CloseStaleSessions(ctx context.Context, olderThan time.Time) (int64, error) {
	now := time.Now()
	result := s.db.WithContext(ctx).
		Model(&model.UserSession{}).
		Where("is_active = ? AND login_at < ?", true, olderThan).
		Updates(map[string]any{"is_active": false, "logout_at": now})
	return result.RowsAffected, result.Error
}

func (s *userSessionRepoImpl) CountLoginsSince(ctx context.Context, userID uint64, since time.Time) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).
		Model(&model.UserSession{}).
		Where("user_id = ? AND login_at >= ?", userID, since).
		Count(&count).Error
	return count, err
}

func (s *userSessionRepoImpl) GetLastSession(ctx context.Context, userID uint64) (*model.UserSession, error) {
	var session model.UserSession
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("login_at DESC").
		First(&session).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &session, nil
}

func (s *userSessionRepoImpl) GetRecentSessions(ctx context.Context, userID uint64, limit int) ([]*model.UserSession, error) {
	sessions := make([]*model.UserSession, 0)
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("login_at DESC").
		Limit(limit).
		Find(&sessions).Error
	if err != nil {
		return nil, err
	}
	return sessions, nil
}
