package service

import (
	"Huntboard/internal/api/config"
	"Huntboard/internal/api/dto"
	"Huntboard/internal/model"
	"Huntboard/internal/pkg/cache"
	"Huntboard/internal/pkg/consts"
	"Huntboard/internal/pkg/mongo"
	"Huntboard/internal/repository"
	"context"
	"fmt"
	log "log/slog"
	"strconv"
	"time"

	"golang.org/x/sync/errgroup"
)

// 报表趋势分类
const (
	TrendGrowing   = "growing"
	TrendStable    = "stable"
	TrendDeclining = "declining"
)

const trendWindowDays = 30

type AnalyticsService interface {
	DashboardMetrics(ctx context.Context, userID uint64) (*dto.DashboardMetricsDTO, error)
	UserAnalytics(ctx context.Context, userID uint64) (*dto.UserAnalyticsDTO, error)
	CompanyAnalytics(ctx context.Context, userID uint64, company string) (*dto.CompanyAnalyticsDTO, error)
	ActivityHistory(ctx context.Context, userID uint64, days int) ([]dto.DailyMetricDTO, error)

	InvalidateUser(userID uint64)
	CacheStats() *dto.CacheStatsDTO
}

type AnalyticsServiceImpl struct {
	appRepo       mongo.ApplicationRepo
	resumeRepo    mongo.ResumeRepo
	interviewRepo mongo.InterviewRepo
	userRepo      repository.UserRepo
	sessionRepo   repository.UserSessionRepo
	metricRepo    repository.UserDailyMetricRepo
	reportCache   cache.ReportCache

	dashboardTTL time.Duration
	userTTL      time.Duration
	companyTTL   time.Duration
	topCompanies int
	topSkills    int
}

func NewAnalyticsService(
	appRepo mongo.ApplicationRepo,
	resumeRepo mongo.ResumeRepo,
	interviewRepo mongo.InterviewRepo,
	userRepo repository.UserRepo,
	sessionRepo repository.UserSessionRepo,
	metricRepo repository.UserDailyMetricRepo,
	reportCache cache.ReportCache,
) AnalyticsService {
	cfg := config.Cfg.Analytics
	return &AnalyticsServiceImpl{
		appRepo:       appRepo,
		resumeRepo:    resumeRepo,
		interviewRepo: interviewRepo,
		userRepo:      userRepo,
		sessionRepo:   sessionRepo,
		metricRepo:    metricRepo,
		reportCache:   reportCache,
		dashboardTTL: minutesOr(cfg.DashboardTTLMinutes, 10),
		userTTL:      minutesOr(cfg.UserTTLMinutes, 15),
		companyTTL:   minutesOr(cfg.CompanyTTLMinutes, 30),
		topCompanies: intOr(cfg.TopCompanyLimit, 10),
		topSkills:    intOr(cfg.TopSkillLimit, 10),
	}
}

// DashboardMetrics 仪表盘报表：缓存命中直接返回，未命中并发跑各聚合管道后组装
func (s *AnalyticsServiceImpl) DashboardMetrics(ctx context.Context, userID uint64) (*dto.DashboardMetricsDTO, error) {
	key := dashboardCacheKey(userID)
	if cached, ok := s.reportCache.Get(key).(*dto.DashboardMetricsDTO); ok {
		return cached, nil
	}

	if err := s.requireUser(ctx, userID); err != nil {
		return nil, err
	}

	var (
		total        int64
		responded    int64
		statusCounts []mongo.StatusCount
		companies    []mongo.CompanyCount
		months       []mongo.MonthCount
		skills       []mongo.SkillCount
		avgDays      float64
		recentCount  int64
		prevCount    int64
	)

	now := time.Now()
	recentFrom := now.AddDate(0, 0, -trendWindowDays)
	prevFrom := now.AddDate(0, 0, -2*trendWindowDays)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		total, err = s.appRepo.CountByUser(gctx, userID)
		return
	})
	g.Go(func() (err error) {
		responded, err = s.appRepo.CountResponded(gctx, userID)
		return
	})
	g.Go(func() (err error) {
		statusCounts, err = s.appRepo.CountByStatus(gctx, userID)
		return
	})
	g.Go(func() (err error) {
		companies, err = s.appRepo.TopCompanies(gctx, userID, s.topCompanies)
		return
	})
	g.Go(func() (err error) {
		months, err = s.appRepo.MonthlyTrend(gctx, userID, 12)
		return
	})
	g.Go(func() (err error) {
		avgDays, err = s.appRepo.AvgResponseDays(gctx, userID)
		return
	})
	g.Go(func() (err error) {
		skills, err = s.resumeRepo.TopSkills(gctx, userID, s.topSkills)
		return
	})
	g.Go(func() (err error) {
		recentCount, err = s.appRepo.CountInRange(gctx, userID, recentFrom, now)
		return
	})
	g.Go(func() (err error) {
		prevCount, err = s.appRepo.CountInRange(gctx, userID, prevFrom, recentFrom)
		return
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("仪表盘聚合失败: %w", err)
	}

	countMap := make(map[string]int64, len(consts.AllStatuses))
	for _, status := range consts.AllStatuses {
		countMap[status] = 0
	}
	for _, sc := range statusCounts {
		countMap[sc.Status] = sc.Count
	}

	offers := countMap[consts.StatusOffer]
	interviews := countMap[consts.StatusInterview] + offers

	result := &dto.DashboardMetricsDTO{
		TotalApplications: total,
		StatusCounts:      countMap,
		SuccessRate:       rate(offers, total),
		ResponseRate:      rate(responded, total),
		InterviewRate:     rate(interviews, total),
		OfferRate:         rate(offers, total),
		AvgResponseDays:   avgDays,
		Trend:             classifyTrend(recentCount, prevCount),
		MonthlyTrend:      make([]dto.MonthBucketDTO, 0, len(months)),
		TopCompanies:      make([]dto.CompanyCountDTO, 0, len(companies)),
		TopSkills:         make([]dto.SkillCountDTO, 0, len(skills)),
	}
	for _, m := range months {
		result.MonthlyTrend = append(result.MonthlyTrend, dto.MonthBucketDTO{Month: m.Month, Count: m.Count})
	}
	for _, c := range companies {
		result.TopCompanies = append(result.TopCompanies, dto.CompanyCountDTO{Company: c.Company, Count: c.Count})
	}
	for _, sk := range skills {
		result.TopSkills = append(result.TopSkills, dto.SkillCountDTO{Skill: sk.Skill, Count: sk.Count})
	}

	s.reportCache.Set(key, result, s.dashboardTTL)
	log.InfoContext(ctx, "dashboard metrics computed", "user_id", userID, "total", total)
	return result, nil
}

// UserAnalytics 用户画像报表
func (s *AnalyticsServiceImpl) UserAnalytics(ctx context.Context, userID uint64) (*dto.UserAnalyticsDTO, error) {
	key := userCacheKey(userID)
	if cached, ok := s.reportCache.Get(key).(*dto.UserAnalyticsDTO); ok {
		return cached, nil
	}

	user, err := s.userRepo.GetUserById(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	var (
		logins      int64
		lastSession *time.Time
		total       int64
		resumes     []*mongo.Resume
		outcomes    []mongo.OutcomeCount
	)

	since := time.Now().AddDate(0, 0, -30)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		logins, err = s.sessionRepo.CountLoginsSince(gctx, userID, since)
		return
	})
	g.Go(func() error {
		session, err := s.sessionRepo.GetLastSession(gctx, userID)
		if err != nil {
			return err
		}
		if session != nil {
			lastSession = &session.LoginAt
		}
		return nil
	})
	g.Go(func() (err error) {
		total, err = s.appRepo.CountByUser(gctx, userID)
		return
	})
	g.Go(func() (err error) {
		resumes, err = s.resumeRepo.ListByUser(gctx, userID)
		return
	})
	g.Go(func() (err error) {
		outcomes, err = s.interviewRepo.CountByOutcome(gctx, userID)
		return
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("用户画像聚合失败: %w", err)
	}

	outcomeMap := make(map[string]int64, len(outcomes))
	for _, oc := range outcomes {
		outcomeMap[oc.Outcome] = oc.Count
	}

	result := &dto.UserAnalyticsDTO{
		UserID:            userID,
		ProfileStrength:   profileStrength(user, resumes),
		LoginsLast30Days:  logins,
		Country:           user.UserDetail.Country,
		City:              user.UserDetail.City,
		TotalApplications: total,
		TotalResumes:      len(resumes),
		InterviewOutcomes: outcomeMap,
	}
	if lastSession != nil {
		result.LastLoginAt = lastSession.Format(time.RFC3339)
	}

	s.reportCache.Set(key, result, s.userTTL)
	return result, nil
}

// CompanyAnalytics 公司维度报表
func (s *AnalyticsServiceImpl) CompanyAnalytics(ctx context.Context, userID uint64, company string) (*dto.CompanyAnalyticsDTO, error) {
	if company == "" {
		return nil, ErrParamInvalid
	}

	key := companyCacheKey(userID, company)
	if cached, ok := s.reportCache.Get(key).(*dto.CompanyAnalyticsDTO); ok {
		return cached, nil
	}

	if err := s.requireUser(ctx, userID); err != nil {
		return nil, err
	}

	breakdown, err := s.appRepo.CompanyStatusBreakdown(ctx, userID, company)
	if err != nil {
		return nil, fmt.Errorf("公司报表聚合失败: %w", err)
	}

	countMap := make(map[string]int64, len(consts.AllStatuses))
	for _, status := range consts.AllStatuses {
		countMap[status] = 0
	}
	var total int64
	for _, item := range breakdown {
		countMap[item.Status] += item.Count
		total += item.Count
	}

	offers := countMap[consts.StatusOffer]
	interviews := countMap[consts.StatusInterview] + offers

	result := &dto.CompanyAnalyticsDTO{
		Company:       company,
		Total:         total,
		StatusCounts:  countMap,
		SuccessRate:   rate(offers, total),
		InterviewRate: rate(interviews, total),
	}

	s.reportCache.Set(key, result, s.companyTTL)
	return result, nil
}

// ActivityHistory 每日活动快照序列，数据来自定时任务落的 MySQL 表，不走报表缓存
func (s *AnalyticsServiceImpl) ActivityHistory(ctx context.Context, userID uint64, days int) ([]dto.DailyMetricDTO, error) {
	if days <= 0 || days > 90 {
		days = 30
	}

	if err := s.requireUser(ctx, userID); err != nil {
		return nil, err
	}

	since := time.Now().AddDate(0, 0, -days)
	metrics, err := s.metricRepo.GetMetricsSince(ctx, userID, since)
	if err != nil {
		return nil, fmt.Errorf("活动历史查询失败: %w", err)
	}

	result := make([]dto.DailyMetricDTO, 0, len(metrics))
	for _, m := range metrics {
		result = append(result, dto.DailyMetricDTO{
			Date:              m.MetricDate.Format("2006-01-02"),
			ApplicationsTotal: m.ApplicationsTotal,
			StatusChanges:     m.StatusChanges,
			InterviewsTotal:   m.InterviewsTotal,
			OffersTotal:       m.OffersTotal,
		})
	}
	return result, nil
}

// InvalidateUser 清掉某个用户的报表缓存，自动化刷新任务调用
func (s *AnalyticsServiceImpl) InvalidateUser(userID uint64) {
	s.reportCache.Delete(dashboardCacheKey(userID))
	s.reportCache.Delete(userCacheKey(userID))
}

func (s *AnalyticsServiceImpl) CacheStats() *dto.CacheStatsDTO {
	stats := s.reportCache.Stats()
	return &dto.CacheStatsDTO{Size: stats.Size, Keys: stats.Keys}
}

func (s *AnalyticsServiceImpl) requireUser(ctx context.Context, userID uint64) error {
	user, err := s.userRepo.GetUserById(ctx, userID)
	if err != nil {
		return err
	}
	if user == nil || user.IsDelete {
		return ErrUserNotFound
	}
	return nil
}

// rate 分母为 0 时恒为 0，报表里不允许出现 NaN
func rate(numerator, denominator int64) float64 {
	if denominator == 0 {
		return 0
	}
	return float64(numerator) / float64(denominator)
}

// classifyTrend 近 30 天与前 30 天对比，变化恰好 ±10% 视为平稳
func classifyTrend(recent, previous int64) string {
	if previous == 0 {
		if recent > 0 {
			return TrendGrowing
		}
		return TrendStable
	}
	diff := 10 * (recent - previous)
	switch {
	case diff > previous:
		return TrendGrowing
	case diff < -previous:
		return TrendDeclining
	default:
		return TrendStable
	}
}

// profileStrength 档案完整度加权求和，封顶 100
func profileStrength(user *model.User, resumes []*mongo.Resume) int {
	score := 0
	detail := user.UserDetail
	if detail.Nickname != "" {
		score += 10
	}
	if detail.AvatarURL != "" && detail.AvatarURL != consts.DefaultAvatarURL {
		score += 10
	}
	if detail.Bio != "" {
		score += 10
	}
	if detail.TargetRole != "" {
		score += 15
	}
	if detail.Country != "" || detail.City != "" {
		score += 10
	}
	if detail.YearsExperience > 0 {
		score += 10
	}
	if len(resumes) > 0 {
		score += 15
		summary, skills, experience, education := resumes[0].SectionsComplete()
		for _, ok := range []bool{summary, skills, experience, education} {
			if ok {
				score += 5
			}
		}
	}
	if score > 100 {
		score = 100
	}
	return score
}

func dashboardCacheKey(userID uint64) string {
	return "report:dashboard:" + strconv.FormatUint(userID, 10)
}

func userCacheKey(userID uint64) string {
	return "report:user:" + strconv.FormatUint(userID, 10)
}

func companyCacheKey(userID uint64, company string) string {
	return "report:company:" + strconv.FormatUint(userID, 10) + ":" + company
}

func minutesOr(minutes, fallback int) time.Duration {
	if minutes <= 0 {
		minutes = fallback
	}
	return time.Duration(minutes) * time.Minute
}

func intOr(value, fallback int) int {
	if value <= 0 {
		return fallback
	}
	return value
}
