package job

import (
	"Huntboard/internal/pkg/logger"
	"Huntboard/internal/repository"
	"context"
	log "log/slog"
	"time"

	"github.com/google/uuid"
)

const staleSessionAge = 24 * time.Hour

// SessionCleanupJob 关闭超过 24 小时仍未登出的会话
type SessionCleanupJob struct {
	sessionRepo repository.UserSessionRepo
}

func NewSessionCleanupJob(sessionRepo repository.UserSessionRepo) *SessionCleanupJob {
	return &SessionCleanupJob{sessionRepo: sessionRepo}
}

func (s *SessionCleanupJob) Run() {
	traceID := "job-session-" + uuid.NewString()
	ctx := context.WithValue(context.Background(), logger.TraceIDKey, traceID)

	closed, err := s.sessionRepo.CloseStaleSessions(ctx, time.Now().Add(-staleSessionAge))
	if err != nil {
		log.ErrorContext(ctx, "close stale sessions failed", "err", err)
		return
	}
	if closed > 0 {
		log.InfoContext(ctx, "SessionCleanupJob finished", "closed_count", closed)
	}
}
