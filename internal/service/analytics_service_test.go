package service

import (
	"Huntboard/internal/model"
	"Huntboard/internal/pkg/cache"
	"Huntboard/internal/pkg/consts"
	"Huntboard/internal/pkg/mongo"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestUser(id uint64) *model.User {
	return &model.User{
		ID: id,
		UserDetail: model.UserDetail{
			UserID: id,
		},
	}
}

func TestClassifyTrend(t *testing.T) {
	tests := []struct {
		name     string
		recent   int64
		previous int64
		want     string
	}{
		{"增长超过 10%", 111, 100, TrendGrowing},
		{"恰好 +10% 属于平稳", 110, 100, TrendStable},
		{"区间内小幅波动", 95, 100, TrendStable},
		{"恰好 -10% 属于平稳", 90, 100, TrendStable},
		{"下降超过 10%", 89, 100, TrendDeclining},
		{"双方为零", 0, 0, TrendStable},
		{"从零开始增长", 5, 0, TrendGrowing},
		{"降为零", 0, 100, TrendDeclining},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, classifyTrend(tt.recent, tt.previous))
		})
	}
}

func TestRate(t *testing.T) {
	assert.Equal(t, 0.0, rate(3, 0), "分母为零必须返回 0")
	assert.Equal(t, 0.0, rate(0, 10))
	assert.InDelta(t, 0.25, rate(1, 4), 1e-9)
}

func TestProfileStrength(t *testing.T) {
	t.Run("空档案", func(t *testing.T) {
		user := newTestUser(1)
		assert.Equal(t, 0, profileStrength(user, nil))
	})

	t.Run("完整档案封顶 100", func(t *testing.T) {
		user := newTestUser(1)
		user.UserDetail.Nickname = "小王"
		user.UserDetail.AvatarURL = "avatars/1/custom.jpg"
		user.UserDetail.Bio = "后端工程师"
		user.UserDetail.TargetRole = "Go 开发"
		user.UserDetail.Country = "中国"
		user.UserDetail.YearsExperience = 5
		resume := &mongo.Resume{
			Summary:    "五年后端经验",
			Skills:     []string{"Go", "MySQL"},
			Experience: []mongo.ExperienceEntry{{Company: "Acme", Role: "开发"}},
			Education:  []mongo.EducationEntry{{School: "某大学"}},
		}
		assert.Equal(t, 100, profileStrength(user, []*mongo.Resume{resume}))
	})

	t.Run("只有简历骨架", func(t *testing.T) {
		user := newTestUser(1)
		resume := &mongo.Resume{Title: "空简历"}
		// 有简历 15 分，四个区块都不完整
		assert.Equal(t, 15, profileStrength(user, []*mongo.Resume{resume}))
	})
}

func TestDashboardMetrics(t *testing.T) {
	setupTestConfig()

	appRepo := &fakeApplicationRepo{
		total:     10,
		responded: 4,
		statusCounts: []mongo.StatusCount{
			{Status: consts.StatusApplied, Count: 5},
			{Status: consts.StatusInterview, Count: 1},
			{Status: consts.StatusOffer, Count: 2},
			{Status: consts.StatusRejected, Count: 2},
		},
		companies:   []mongo.CompanyCount{{Company: "Acme", Count: 4}},
		months:      []mongo.MonthCount{{Month: "2026-08", Count: 3}},
		avgDays:     2.5,
		recentCount: 13,
		prevCount:   10,
	}
	resumeRepo := &fakeResumeRepo{skills: []mongo.SkillCount{{Skill: "Go", Count: 2}}}
	userRepo := &fakeUserRepo{user: newTestUser(1)}
	sessionRepo := &fakeSessionRepo{}
	reportCache := cache.NewReportCache(time.Minute)

	svc := NewAnalyticsService(appRepo, resumeRepo, &fakeInterviewRepo{}, userRepo, sessionRepo, &fakeMetricRepo{}, reportCache)
	result, err := svc.DashboardMetrics(context.Background(), 1)
	require.NoError(t, err)

	assert.Equal(t, int64(10), result.TotalApplications)
	assert.InDelta(t, 0.2, result.SuccessRate, 1e-9)
	assert.InDelta(t, 0.2, result.OfferRate, 1e-9)
	assert.InDelta(t, 0.4, result.ResponseRate, 1e-9)
	// interview 率包含已拿 offer 的申请
	assert.InDelta(t, 0.3, result.InterviewRate, 1e-9)
	assert.Equal(t, 2.5, result.AvgResponseDays)
	assert.Equal(t, TrendGrowing, result.Trend)

	// 所有状态必须补零出现
	for _, status := range consts.AllStatuses {
		_, ok := result.StatusCounts[status]
		assert.True(t, ok, "缺少状态 %s", status)
	}
	assert.Equal(t, int64(0), result.StatusCounts[consts.StatusWithdrawn])

	t.Run("缓存命中不再重算", func(t *testing.T) {
		before := appRepo.countCalls
		again, err := svc.DashboardMetrics(context.Background(), 1)
		require.NoError(t, err)
		assert.Same(t, result, again)
		assert.Equal(t, before, appRepo.countCalls)
	})

	t.Run("失效后重新聚合", func(t *testing.T) {
		before := appRepo.countCalls
		svc.InvalidateUser(1)
		_, err := svc.DashboardMetrics(context.Background(), 1)
		require.NoError(t, err)
		assert.Equal(t, before+1, appRepo.countCalls)
	})
}

func TestDashboardMetrics_ZeroApplications(t *testing.T) {
	setupTestConfig()

	svc := NewAnalyticsService(
		&fakeApplicationRepo{},
		&fakeResumeRepo{},
		&fakeInterviewRepo{},
		&fakeUserRepo{user: newTestUser(1)},
		&fakeSessionRepo{},
		&fakeMetricRepo{},
		cache.NewReportCache(time.Minute),
	)
	result, err := svc.DashboardMetrics(context.Background(), 1)
	require.NoError(t, err)

	assert.Equal(t, int64(0), result.TotalApplications)
	assert.Equal(t, 0.0, result.SuccessRate)
	assert.Equal(t, 0.0, result.ResponseRate)
	assert.Equal(t, 0.0, result.InterviewRate)
	assert.Equal(t, 0.0, result.OfferRate)
	assert.Equal(t, TrendStable, result.Trend)
}

func TestDashboardMetrics_UserNotFound(t *testing.T) {
	setupTestConfig()

	svc := NewAnalyticsService(
		&fakeApplicationRepo{},
		&fakeResumeRepo{},
		&fakeInterviewRepo{},
		&fakeUserRepo{},
		&fakeSessionRepo{},
		&fakeMetricRepo{},
		cache.NewReportCache(time.Minute),
	)
	_, err := svc.DashboardMetrics(context.Background(), 42)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestUserAnalytics(t *testing.T) {
	setupTestConfig()

	user := newTestUser(7)
	user.UserDetail.Country = "中国"
	user.UserDetail.City = "上海"
	loginAt := time.Date(2026, 8, 20, 9, 0, 0, 0, time.UTC)

	svc := NewAnalyticsService(
		&fakeApplicationRepo{total: 6},
		&fakeResumeRepo{list: []*mongo.Resume{{Title: "主简历"}}},
		&fakeInterviewRepo{outcomes: []mongo.OutcomeCount{
			{Outcome: "passed", Count: 2},
			{Outcome: "failed", Count: 1},
		}},
		&fakeUserRepo{user: user},
		&fakeSessionRepo{logins: 12, last: &model.UserSession{UserID: 7, LoginAt: loginAt}},
		&fakeMetricRepo{},
		cache.NewReportCache(time.Minute),
	)

	result, err := svc.UserAnalytics(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, uint64(7), result.UserID)
	assert.Equal(t, int64(12), result.LoginsLast30Days)
	assert.Equal(t, loginAt.Format(time.RFC3339), result.LastLoginAt)
	assert.Equal(t, "中国", result.Country)
	assert.Equal(t, int64(6), result.TotalApplications)
	assert.Equal(t, 1, result.TotalResumes)
	assert.Equal(t, map[string]int64{"passed": 2, "failed": 1}, result.InterviewOutcomes)
}

func TestActivityHistory(t *testing.T) {
	setupTestConfig()

	today := time.Now().Truncate(24 * time.Hour)
	metricRepo := &fakeMetricRepo{metrics: []*model.UserDailyMetric{
		{UserID: 1, MetricDate: today.AddDate(0, 0, -40), ApplicationsTotal: 9},
		{UserID: 1, MetricDate: today.AddDate(0, 0, -2), ApplicationsTotal: 3, InterviewsTotal: 1},
		{UserID: 1, MetricDate: today.AddDate(0, 0, -1), ApplicationsTotal: 5, OffersTotal: 1},
	}}
	svc := NewAnalyticsService(
		&fakeApplicationRepo{},
		&fakeResumeRepo{},
		&fakeInterviewRepo{},
		&fakeUserRepo{user: newTestUser(1)},
		&fakeSessionRepo{},
		metricRepo,
		cache.NewReportCache(time.Minute),
	)

	history, err := svc.ActivityHistory(context.Background(), 1, 30)
	require.NoError(t, err)
	// 窗口外的快照不返回
	require.Len(t, history, 2)
	assert.Equal(t, today.AddDate(0, 0, -2).Format("2006-01-02"), history[0].Date)
	assert.Equal(t, 3, history[0].ApplicationsTotal)
	assert.Equal(t, 1, history[1].OffersTotal)

	t.Run("非法天数取默认 30 天", func(t *testing.T) {
		history, err := svc.ActivityHistory(context.Background(), 1, -5)
		require.NoError(t, err)
		assert.Len(t, history, 2)
	})
}

func TestCompanyAnalytics(t *testing.T) {
	setupTestConfig()

	appRepo := &fakeApplicationRepo{
		breakdown: []mongo.CompanyStatusCount{
			{Company: "Acme", Status: consts.StatusApplied, Count: 2},
			{Company: "Acme", Status: consts.StatusInterview, Count: 1},
			{Company: "Acme", Status: consts.StatusOffer, Count: 1},
		},
	}
	svc := NewAnalyticsService(
		appRepo,
		&fakeResumeRepo{},
		&fakeInterviewRepo{},
		&fakeUserRepo{user: newTestUser(1)},
		&fakeSessionRepo{},
		&fakeMetricRepo{},
		cache.NewReportCache(time.Minute),
	)

	result, err := svc.CompanyAnalytics(context.Background(), 1, "Acme")
	require.NoError(t, err)
	assert.Equal(t, int64(4), result.Total)
	assert.InDelta(t, 0.25, result.SuccessRate, 1e-9)
	assert.InDelta(t, 0.5, result.InterviewRate, 1e-9)

	t.Run("公司名为空", func(t *testing.T) {
		_, err := svc.CompanyAnalytics(context.Background(), 1, "")
		assert.ErrorIs(t, err, ErrParamInvalid)
	})
}
