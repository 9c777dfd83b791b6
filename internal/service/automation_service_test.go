package service

import (
	"Huntboard/internal/api/dto"
	"Huntboard/internal/pkg/cache"
	"Huntboard/internal/pkg/consts"
	"Huntboard/internal/pkg/mongo"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAutomationService(t *testing.T, snapshot SnapshotRunner) (AutomationService, cache.ReportCache) {
	t.Helper()
	setupTestConfig()
	reportCache := cache.NewReportCache(time.Minute)
	svc := NewAutomationService(&fakeApplicationRepo{}, reportCache, snapshot)
	return svc, reportCache
}

func TestRegisterTask(t *testing.T) {
	svc, _ := newAutomationService(t, &fakeSnapshotRunner{})

	task, err := svc.RegisterTask(&dto.TaskBaseDTO{
		Name:             "每小时刷新报表",
		Type:             TaskReportRefresh,
		FrequencyMinutes: 60,
		Enabled:          true,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, task.ID)
	assert.True(t, task.NextRun.After(time.Now()))

	assert.Len(t, svc.ListTasks(), 1)

	t.Run("未知任务类型", func(t *testing.T) {
		_, err := svc.RegisterTask(&dto.TaskBaseDTO{Name: "x", Type: "unknown", FrequencyMinutes: 1})
		assert.ErrorIs(t, err, ErrParamInvalid)
	})

	t.Run("移除任务", func(t *testing.T) {
		require.NoError(t, svc.RemoveTask(task.ID))
		assert.ErrorIs(t, svc.RemoveTask(task.ID), ErrTaskNotFound)
	})
}

func TestRegisterRule(t *testing.T) {
	svc, _ := newAutomationService(t, &fakeSnapshotRunner{})

	rule, err := svc.RegisterRule(&dto.RuleBaseDTO{
		Name:       "投递量告警",
		UserID:     1,
		Metric:     MetricApplicationsTotal,
		Comparator: "gte",
		Threshold:  100,
		Enabled:    true,
	})
	require.NoError(t, err)
	// 未指定间隔时取全局冷却时间
	assert.Equal(t, 60, rule.IntervalMinutes)
	assert.Len(t, svc.ListRules(), 1)

	t.Run("非法比较符", func(t *testing.T) {
		_, err := svc.RegisterRule(&dto.RuleBaseDTO{Name: "x", UserID: 1, Metric: MetricOffersTotal, Comparator: "between"})
		assert.ErrorIs(t, err, ErrComparatorInvalid)
	})

	t.Run("非法指标", func(t *testing.T) {
		_, err := svc.RegisterRule(&dto.RuleBaseDTO{Name: "x", UserID: 1, Metric: "cpu_usage", Comparator: "gt"})
		assert.ErrorIs(t, err, ErrMetricInvalid)
	})

	t.Run("移除规则", func(t *testing.T) {
		require.NoError(t, svc.RemoveRule(rule.ID))
		assert.ErrorIs(t, svc.RemoveRule(rule.ID), ErrRuleNotFound)
	})
}

func TestScanTasks(t *testing.T) {
	snapshot := &fakeSnapshotRunner{}
	svc, reportCache := newAutomationService(t, snapshot)

	refresh, err := svc.RegisterTask(&dto.TaskBaseDTO{
		Name: "刷新报表", Type: TaskReportRefresh, FrequencyMinutes: 60, Enabled: true,
	})
	require.NoError(t, err)
	metric, err := svc.RegisterTask(&dto.TaskBaseDTO{
		Name: "指标快照", Type: TaskMetricSnapshot, FrequencyMinutes: 60, Enabled: true,
	})
	require.NoError(t, err)

	impl := svc.(*AutomationServiceImpl)
	markDue := func(id string) {
		impl.mu.Lock()
		impl.tasks[id].NextRun = time.Now().Add(-time.Minute)
		impl.mu.Unlock()
	}

	t.Run("未启动时不执行", func(t *testing.T) {
		markDue(metric.ID)
		svc.ScanTasks(context.Background())
		assert.Equal(t, int32(0), snapshot.runs)
	})

	svc.Start()

	t.Run("到期任务执行并重排", func(t *testing.T) {
		reportCache.Set("report:dashboard:1", struct{}{}, time.Minute)
		markDue(refresh.ID)
		markDue(metric.ID)

		svc.ScanTasks(context.Background())

		assert.Equal(t, int32(1), snapshot.runs)
		assert.Equal(t, 0, reportCache.Stats().Size, "report_refresh 应清空报表缓存")

		for _, task := range svc.ListTasks() {
			assert.True(t, task.NextRun.After(time.Now()), "任务 %s 未重排", task.Name)
			require.NotNil(t, task.LastRun)
			assert.Empty(t, task.LastError)
		}
	})

	t.Run("失败任务记录错误并照常重排", func(t *testing.T) {
		snapshot.err = errors.New("mongo unavailable")
		markDue(metric.ID)

		svc.ScanTasks(context.Background())

		var found bool
		for _, task := range svc.ListTasks() {
			if task.ID == metric.ID {
				found = true
				assert.Equal(t, "mongo unavailable", task.LastError)
				assert.True(t, task.NextRun.After(time.Now()))
			}
		}
		assert.True(t, found)
	})

	t.Run("未到期任务跳过", func(t *testing.T) {
		before := snapshot.runs
		svc.ScanTasks(context.Background())
		assert.Equal(t, before, snapshot.runs)
	})

	t.Run("停止后不再执行", func(t *testing.T) {
		svc.Stop()
		before := snapshot.runs
		markDue(metric.ID)
		svc.ScanTasks(context.Background())
		assert.Equal(t, before, snapshot.runs)
	})
}

func TestScanRules(t *testing.T) {
	setupTestConfig()
	appRepo := &fakeApplicationRepo{total: 50}
	svc := NewAutomationService(appRepo, cache.NewReportCache(time.Minute), &fakeSnapshotRunner{})
	impl := svc.(*AutomationServiceImpl)

	var cooldownKeys []string
	cooldownFree := true
	impl.acquireCooldown = func(ctx context.Context, key string, ttl time.Duration) (bool, error) {
		cooldownKeys = append(cooldownKeys, key)
		return cooldownFree, nil
	}

	rule, err := svc.RegisterRule(&dto.RuleBaseDTO{
		Name:            "投递量过半百",
		UserID:          1,
		Metric:          MetricApplicationsTotal,
		Comparator:      "gte",
		Threshold:       50,
		IntervalMinutes: 30,
		Enabled:         true,
	})
	require.NoError(t, err)

	lastFiredAt := func(id string) *time.Time {
		for _, r := range svc.ListRules() {
			if r.ID == id {
				return r.LastFiredAt
			}
		}
		return nil
	}

	t.Run("未启动时不评估", func(t *testing.T) {
		svc.ScanRules(context.Background())
		assert.Empty(t, cooldownKeys)
	})

	svc.Start()

	t.Run("满足条件先抢冷却键再触发", func(t *testing.T) {
		svc.ScanRules(context.Background())
		require.Len(t, cooldownKeys, 1)
		assert.Equal(t, consts.AlertCooldownKey+rule.ID, cooldownKeys[0])
		require.NotNil(t, lastFiredAt(rule.ID))
	})

	t.Run("冷却期内不重复触发", func(t *testing.T) {
		cooldownFree = false
		firstFired := *lastFiredAt(rule.ID)

		svc.ScanRules(context.Background())

		assert.Len(t, cooldownKeys, 2, "仍会尝试抢冷却键")
		assert.Equal(t, firstFired, *lastFiredAt(rule.ID), "冷却期内 LastFiredAt 不应更新")
	})

	t.Run("条件不满足不碰冷却键", func(t *testing.T) {
		appRepo.total = 10
		before := len(cooldownKeys)

		svc.ScanRules(context.Background())

		assert.Len(t, cooldownKeys, before)
	})

	t.Run("冷却检查出错时跳过本轮", func(t *testing.T) {
		appRepo.total = 50
		impl.acquireCooldown = func(ctx context.Context, key string, ttl time.Duration) (bool, error) {
			return false, errors.New("redis unavailable")
		}
		firstFired := *lastFiredAt(rule.ID)

		svc.ScanRules(context.Background())

		assert.Equal(t, firstFired, *lastFiredAt(rule.ID))
	})
}

func TestCompare(t *testing.T) {
	tests := []struct {
		value      float64
		comparator string
		threshold  float64
		want       bool
	}{
		{5, "gt", 4, true},
		{5, "gt", 5, false},
		{5, "gte", 5, true},
		{3, "lt", 4, true},
		{4, "lte", 4, true},
		{4, "eq", 4, true},
		{4, "eq", 5, false},
		{4, "between", 5, false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, compare(tt.value, tt.comparator, tt.threshold),
			"%v %s %v", tt.value, tt.comparator, tt.threshold)
	}
}

func TestFetchMetric(t *testing.T) {
	setupTestConfig()
	appRepo := &fakeApplicationRepo{
		total:     20,
		responded: 5,
		statusCounts: []mongo.StatusCount{
			{Status: consts.StatusApplied, Count: 12},
			{Status: consts.StatusInterview, Count: 5},
			{Status: consts.StatusOffer, Count: 3},
		},
	}
	svc := NewAutomationService(appRepo, cache.NewReportCache(time.Minute), &fakeSnapshotRunner{})
	impl := svc.(*AutomationServiceImpl)
	ctx := context.Background()

	tests := []struct {
		metric string
		want   float64
	}{
		{MetricApplicationsTotal, 20},
		{MetricResponseRate, 0.25},
		{MetricOffersTotal, 3},
		{MetricInterviewsTotal, 8},
		{MetricSuccessRate, 0.15},
	}
	for _, tt := range tests {
		value, err := impl.fetchMetric(ctx, 1, tt.metric)
		require.NoError(t, err, tt.metric)
		assert.InDelta(t, tt.want, value, 1e-9, tt.metric)
	}

	_, err := impl.fetchMetric(ctx, 1, "unknown")
	assert.ErrorIs(t, err, ErrMetricInvalid)
}
