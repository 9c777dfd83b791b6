package service

import (
	"Huntboard/internal/api/config"
	"Huntboard/internal/api/dto"
	"Huntboard/internal/pkg/cache"
	"Huntboard/internal/pkg/consts"
	"Huntboard/internal/pkg/mongo"
	"Huntboard/internal/pkg/redis"
	"context"
	log "log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
)

// 任务类型
const (
	TaskReportRefresh  = "report_refresh"
	TaskMetricSnapshot = "metric_snapshot"
)

// 告警指标
const (
	MetricApplicationsTotal = "applications_total"
	MetricOffersTotal       = "offers_total"
	MetricInterviewsTotal   = "interviews_total"
	MetricResponseRate      = "response_rate"
	MetricSuccessRate       = "success_rate"
)

var validComparators = map[string]bool{
	"gt": true, "gte": true, "lt": true, "lte": true, "eq": true,
}

var validMetrics = map[string]bool{
	MetricApplicationsTotal: true,
	MetricOffersTotal:       true,
	MetricInterviewsTotal:   true,
	MetricResponseRate:      true,
	MetricSuccessRate:       true,
}

// SnapshotRunner 每日指标快照的执行入口，由 job 层提供
type SnapshotRunner interface {
	RunOnce(ctx context.Context) error
}

// automationTask 注册表内的任务，不持久化，重启后由管理端重新注册
type automationTask struct {
	ID               string
	Name             string
	Type             string
	FrequencyMinutes int
	Enabled          bool
	NextRun          time.Time
	LastRun          *time.Time
	LastError        string
}

type alertRule struct {
	ID              string
	Name            string
	UserID          uint64
	Metric          string
	Comparator      string
	Threshold       float64
	IntervalMinutes int
	Enabled         bool
	LastFiredAt     *time.Time
}

type AutomationService interface {
	Start()
	Stop()

	RegisterTask(baseDTO *dto.TaskBaseDTO) (*dto.TaskDTO, error)
	ListTasks() []*dto.TaskDTO
	RemoveTask(id string) error

	RegisterRule(baseDTO *dto.RuleBaseDTO) (*dto.RuleDTO, error)
	ListRules() []*dto.RuleDTO
	RemoveRule(id string) error

	ScanTasks(ctx context.Context)
	ScanRules(ctx context.Context)
}

type AutomationServiceImpl struct {
	mu      sync.Mutex
	tasks   map[string]*automationTask
	rules   map[string]*alertRule
	running bool

	appRepo     mongo.ApplicationRepo
	reportCache cache.ReportCache
	snapshot    SnapshotRunner

	cooldown time.Duration
	// acquireCooldown 抢占触发冷却键，键存在期间同一规则不再触发
	acquireCooldown func(ctx context.Context, key string, ttl time.Duration) (bool, error)
}

func NewAutomationService(appRepo mongo.ApplicationRepo, reportCache cache.ReportCache, snapshot SnapshotRunner) AutomationService {
	cooldownMinutes := config.Cfg.Automation.AlertCooldownMinutes
	if cooldownMinutes <= 0 {
		cooldownMinutes = 60
	}
	return &AutomationServiceImpl{
		tasks:       make(map[string]*automationTask),
		rules:       make(map[string]*alertRule),
		appRepo:     appRepo,
		reportCache: reportCache,
		snapshot:    snapshot,
		cooldown:    time.Duration(cooldownMinutes) * time.Minute,
		acquireCooldown: func(ctx context.Context, key string, ttl time.Duration) (bool, error) {
			return redis.SetNX(ctx, key, time.Now().Unix(), ttl)
		},
	}
}

func (s *AutomationServiceImpl) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.running = true
	log.Info("自动化引擎启动", "tasks", len(s.tasks), "rules", len(s.rules))
}

func (s *AutomationServiceImpl) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.running = false
	log.Info("自动化引擎停止")
}

func (s *AutomationServiceImpl) RegisterTask(baseDTO *dto.TaskBaseDTO) (*dto.TaskDTO, error) {
	if baseDTO.Type != TaskReportRefresh && baseDTO.Type != TaskMetricSnapshot {
		return nil, ErrParamInvalid
	}

	task := &automationTask{
		ID:               uuid.NewString(),
		Name:             baseDTO.Name,
		Type:             baseDTO.Type,
		FrequencyMinutes: baseDTO.FrequencyMinutes,
		Enabled:          baseDTO.Enabled,
		NextRun:          time.Now().Add(time.Duration(baseDTO.FrequencyMinutes) * time.Minute),
	}

	s.mu.Lock()
	s.tasks[task.ID] = task
	s.mu.Unlock()

	return toTaskDTO(task), nil
}

func (s *AutomationServiceImpl) ListTasks() []*dto.TaskDTO {
	s.mu.Lock()
	defer s.mu.Unlock()
	result := make([]*dto.TaskDTO, 0, len(s.tasks))
	for _, task := range s.tasks {
		result = append(result, toTaskDTO(task))
	}
	return result
}

func (s *AutomationServiceImpl) RemoveTask(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.tasks[id]; !ok {
		return ErrTaskNotFound
	}
	delete(s.tasks, id)
	return nil
}

func (s *AutomationServiceImpl) RegisterRule(baseDTO *dto.RuleBaseDTO) (*dto.RuleDTO, error) {
	if !validComparators[baseDTO.Comparator] {
		return nil, ErrComparatorInvalid
	}
	if !validMetrics[baseDTO.Metric] {
		return nil, ErrMetricInvalid
	}

	interval := baseDTO.IntervalMinutes
	if interval <= 0 {
		interval = int(s.cooldown / time.Minute)
	}

	rule := &alertRule{
		ID:              uuid.NewString(),
		Name:            baseDTO.Name,
		UserID:          baseDTO.UserID,
		Metric:          baseDTO.Metric,
		Comparator:      baseDTO.Comparator,
		Threshold:       baseDTO.Threshold,
		IntervalMinutes: interval,
		Enabled:         baseDTO.Enabled,
	}

	s.mu.Lock()
	s.rules[rule.ID] = rule
	s.mu.Unlock()

	return toRuleDTO(rule), nil
}

func (s *AutomationServiceImpl) ListRules() []*dto.RuleDTO {
	s.mu.Lock()
	defer s.mu.Unlock()
	result := make([]*dto.RuleDTO, 0, len(s.rules))
	for _, rule := range s.rules {
		result = append(result, toRuleDTO(rule))
	}
	return result
}

func (s *AutomationServiceImpl) RemoveRule(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.rules[id]; !ok {
		return ErrRuleNotFound
	}
	delete(s.rules, id)
	return nil
}

// ScanTasks 每分钟扫描一次：到期任务执行后重排到 now + frequency，
// 失败任务记录错误并照常重排，不会卡住队列
func (s *AutomationServiceImpl) ScanTasks(ctx context.Context) {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return
	}
	now := time.Now()
	due := make([]*automationTask, 0)
	for _, task := range s.tasks {
		if task.Enabled && !task.NextRun.After(now) {
			due = append(due, task)
		}
	}
	s.mu.Unlock()

	for _, task := range due {
		err := s.executeTask(ctx, task)

		s.mu.Lock()
		ranAt := time.Now()
		task.LastRun = &ranAt
		task.NextRun = ranAt.Add(time.Duration(task.FrequencyMinutes) * time.Minute)
		if err != nil {
			task.LastError = err.Error()
			log.ErrorContext(ctx, "automation task failed", "task", task.Name, "type", task.Type, "err", err)
		} else {
			task.LastError = ""
			log.InfoContext(ctx, "automation task done", "task", task.Name, "type", task.Type)
		}
		s.mu.Unlock()
	}
}

// ScanRules 每 5 分钟评估一次告警规则，触发前先抢 Redis 冷却键，
// 多实例或重启场景下不会重复触发
func (s *AutomationServiceImpl) ScanRules(ctx context.Context) {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return
	}
	rules := make([]*alertRule, 0, len(s.rules))
	for _, rule := range s.rules {
		if rule.Enabled {
			rules = append(rules, rule)
		}
	}
	s.mu.Unlock()

	for _, rule := range rules {
		value, err := s.fetchMetric(ctx, rule.UserID, rule.Metric)
		if err != nil {
			log.ErrorContext(ctx, "fetch alert metric failed", "rule", rule.Name, "metric", rule.Metric, "err", err)
			continue
		}
		if !compare(value, rule.Comparator, rule.Threshold) {
			continue
		}

		cooldownKey := consts.AlertCooldownKey + rule.ID
		acquired, err := s.acquireCooldown(ctx, cooldownKey, time.Duration(rule.IntervalMinutes)*time.Minute)
		if err != nil {
			log.ErrorContext(ctx, "alert cooldown check failed", "rule", rule.Name, "err", err)
			continue
		}
		if !acquired {
			continue
		}

		firedAt := time.Now()
		s.mu.Lock()
		rule.LastFiredAt = &firedAt
		s.mu.Unlock()
		log.WarnContext(ctx, "alert fired",
			"rule", rule.Name, "user_id", rule.UserID,
			"metric", rule.Metric, "value", value,
			"comparator", rule.Comparator, "threshold", rule.Threshold)
	}
}

func (s *AutomationServiceImpl) executeTask(ctx context.Context, task *automationTask) error {
	switch task.Type {
	case TaskReportRefresh:
		s.reportCache.Clear()
		return nil
	case TaskMetricSnapshot:
		return s.snapshot.RunOnce(ctx)
	default:
		return ErrParamInvalid
	}
}

func (s *AutomationServiceImpl) fetchMetric(ctx context.Context, userID uint64, metric string) (float64, error) {
	switch metric {
	case MetricApplicationsTotal:
		total, err := s.appRepo.CountByUser(ctx, userID)
		return float64(total), err
	case MetricResponseRate:
		total, err := s.appRepo.CountByUser(ctx, userID)
		if err != nil {
			return 0, err
		}
		responded, err := s.appRepo.CountResponded(ctx, userID)
		if err != nil {
			return 0, err
		}
		return rate(responded, total), nil
	case MetricOffersTotal, MetricInterviewsTotal, MetricSuccessRate:
		counts, err := s.appRepo.CountByStatus(ctx, userID)
		if err != nil {
			return 0, err
		}
		var total, offers, interviews int64
		for _, sc := range counts {
			total += sc.Count
			switch sc.Status {
			case consts.StatusOffer:
				offers += sc.Count
			case consts.StatusInterview:
				interviews += sc.Count
			}
		}
		switch metric {
		case MetricOffersTotal:
			return float64(offers), nil
		case MetricInterviewsTotal:
			return float64(interviews + offers), nil
		default:
			return rate(offers, total), nil
		}
	}
	return 0, ErrMetricInvalid
}

func compare(value float64, comparator string, threshold float64) bool {
	switch comparator {
	case "gt":
		return value > threshold
	case "gte":
		return value >= threshold
	case "lt":
		return value < threshold
	case "lte":
		return value <= threshold
	case "eq":
		return value == threshold
	}
	return false
}

func toTaskDTO(task *automationTask) *dto.TaskDTO {
	return &dto.TaskDTO{
		ID:               task.ID,
		Name:             task.Name,
		Type:             task.Type,
		FrequencyMinutes: task.FrequencyMinutes,
		Enabled:          task.Enabled,
		NextRun:          task.NextRun,
		LastRun:          task.LastRun,
		LastError:        task.LastError,
	}
}

func toRuleDTO(rule *alertRule) *dto.RuleDTO {
	return &dto.RuleDTO{
		ID:              rule.ID,
		Name:            rule.Name,
		UserID:          rule.UserID,
		Metric:          rule.Metric,
		Comparator:      rule.Comparator,
		Threshold:       rule.Threshold,
		IntervalMinutes: rule.IntervalMinutes,
		Enabled:         rule.Enabled,
		LastFiredAt:     rule.LastFiredAt,
	}
}
