package job

import (
	"Huntboard/internal/model"
	"Huntboard/internal/pkg/consts"
	"Huntboard/internal/pkg/logger"
	"Huntboard/internal/pkg/mongo"
	"Huntboard/internal/pkg/redis"
	"Huntboard/internal/pkg/util"
	"Huntboard/internal/repository"
	"context"
	log "log/slog"
	"strconv"
	"time"

	"github.com/google/uuid"
)

// DailyMetricJob 把脏集合里的用户当天指标快照落到 MySQL
type DailyMetricJob struct {
	appRepo       mongo.ApplicationRepo
	interviewRepo mongo.InterviewRepo
	metricRepo    repository.UserDailyMetricRepo
}

func NewDailyMetricJob(appRepo mongo.ApplicationRepo, interviewRepo mongo.InterviewRepo, metricRepo repository.UserDailyMetricRepo) *DailyMetricJob {
	return &DailyMetricJob{
		appRepo:       appRepo,
		interviewRepo: interviewRepo,
		metricRepo:    metricRepo,
	}
}

func (s *DailyMetricJob) Run() {
	traceID := "job-metric-" + uuid.NewString()
	ctx := context.WithValue(context.Background(), logger.TraceIDKey, traceID)
	if err := s.RunOnce(ctx); err != nil {
		log.ErrorContext(ctx, "DailyMetricJob failed", "err", err)
	}
}

// RunOnce 重命名脏集合为 processing 后逐用户计算，处理完删除。
// 源键不存在说明没有增量，直接返回。
func (s *DailyMetricJob) RunOnce(ctx context.Context) error {
	processingKey := consts.ApplicationDirtyKey + ":processing"
	if err := redis.Rename(ctx, consts.ApplicationDirtyKey, processingKey); err != nil {
		return nil
	}

	members, err := redis.GetSet(ctx, processingKey)
	if err != nil {
		return err
	}

	userIDs, err := util.StrSliceToUInt64Slice(members)
	if err != nil {
		return err
	}

	log.InfoContext(ctx, "DailyMetricJob processing", "user_count", len(userIDs))

	dayStart := time.Now().Truncate(24 * time.Hour)
	dayEnd := dayStart.Add(24 * time.Hour)

	for _, uid := range userIDs {
		if err := s.snapshotUser(ctx, uid, dayStart, dayEnd); err != nil {
			log.ErrorContext(ctx, "snapshot user metrics failed", "uid", uid, "err", err)
			continue
		}
	}

	if err := redis.DeleteKey(ctx, processingKey); err != nil {
		log.ErrorContext(ctx, "delete processing set failed", "err", err)
	}

	log.InfoContext(ctx, "DailyMetricJob finished", "processed_count", len(userIDs))
	return nil
}

func (s *DailyMetricJob) snapshotUser(ctx context.Context, uid uint64, dayStart, dayEnd time.Time) error {
	lockKey := consts.DailyMetricLock + strconv.FormatUint(uid, 10)
	newUUID := uuid.NewString()
	lock, err := redis.TryLock(ctx, lockKey, newUUID, time.Second*30, 1)
	if err != nil || !lock {
		return err
	}
	defer redis.UnLock(ctx, lockKey, newUUID)

	applications, err := s.appRepo.CountInRange(ctx, uid, dayStart, dayEnd)
	if err != nil {
		return err
	}
	statusChanges, err := s.appRepo.CountStatusChangesInRange(ctx, uid, dayStart, dayEnd)
	if err != nil {
		return err
	}
	interviews, err := s.interviewRepo.CountInRange(ctx, uid, dayStart, dayEnd)
	if err != nil {
		return err
	}

	var offers int64
	statusCounts, err := s.appRepo.CountByStatus(ctx, uid)
	if err != nil {
		return err
	}
	for _, sc := range statusCounts {
		if sc.Status == consts.StatusOffer {
			offers = sc.Count
		}
	}

	metric := &model.UserDailyMetric{
		UserID:            uid,
		MetricDate:        dayStart,
		ApplicationsTotal: int(applications),
		StatusChanges:     int(statusChanges),
		InterviewsTotal:   int(interviews),
		OffersTotal:       int(offers),
	}
	return s.metricRepo.SaveOrUpdateMetric(ctx, metric)
}
