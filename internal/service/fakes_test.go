package service

import (
	"Huntboard/internal/api/config"
	"Huntboard/internal/model"
	"Huntboard/internal/pkg/llm"
	"Huntboard/internal/pkg/mongo"
	"context"
	"sync/atomic"
	"time"
)

// setupTestConfig 注入测试用的全局配置，TTL 与重试都取小值加快用例
func setupTestConfig() {
	config.Cfg = &config.Config{}
	config.Cfg.LLM.MaxRetries = 2
	config.Cfg.Analytics.DashboardTTLMinutes = 1
	config.Cfg.Analytics.UserTTLMinutes = 1
	config.Cfg.Analytics.CompanyTTLMinutes = 1
}

type fakeApplicationRepo struct {
	apps map[string]*mongo.Application

	total        int64
	responded    int64
	recentCount  int64
	prevCount    int64
	statusCounts []mongo.StatusCount
	companies    []mongo.CompanyCount
	months       []mongo.MonthCount
	skills       []mongo.SkillCount
	avgDays      float64
	breakdown    []mongo.CompanyStatusCount
	err          error

	countCalls int32
}

func (f *fakeApplicationRepo) Create(ctx context.Context, app *mongo.Application) (string, error) {
	return "", f.err
}

func (f *fakeApplicationRepo) GetByID(ctx context.Context, userID uint64, id string) (*mongo.Application, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.apps[id], nil
}

func (f *fakeApplicationRepo) ListByUser(ctx context.Context, userID uint64, status string, page, pageSize int) ([]*mongo.Application, error) {
	return nil, f.err
}

func (f *fakeApplicationRepo) Update(ctx context.Context, userID uint64, app *mongo.Application) error {
	return f.err
}

func (f *fakeApplicationRepo) UpdateStatus(ctx context.Context, userID uint64, id string, change mongo.StatusChange) error {
	return f.err
}

func (f *fakeApplicationRepo) AddCommunication(ctx context.Context, userID uint64, id string, comm mongo.Communication) error {
	return f.err
}

func (f *fakeApplicationRepo) AddAttachment(ctx context.Context, userID uint64, id string, att mongo.Attachment) error {
	return f.err
}

func (f *fakeApplicationRepo) Delete(ctx context.Context, userID uint64, id string) error {
	return f.err
}

func (f *fakeApplicationRepo) CountByUser(ctx context.Context, userID uint64) (int64, error) {
	atomic.AddInt32(&f.countCalls, 1)
	return f.total, f.err
}

func (f *fakeApplicationRepo) CountResponded(ctx context.Context, userID uint64) (int64, error) {
	return f.responded, f.err
}

func (f *fakeApplicationRepo) CountByStatus(ctx context.Context, userID uint64) ([]mongo.StatusCount, error) {
	return f.statusCounts, f.err
}

func (f *fakeApplicationRepo) CountInRange(ctx context.Context, userID uint64, from, to time.Time) (int64, error) {
	// 近 30 天窗口的起点晚于前 30 天窗口的起点
	if time.Since(from) < 31*24*time.Hour {
		return f.recentCount, f.err
	}
	return f.prevCount, f.err
}

func (f *fakeApplicationRepo) CountStatusChangesInRange(ctx context.Context, userID uint64, from, to time.Time) (int64, error) {
	return 0, f.err
}

func (f *fakeApplicationRepo) TopCompanies(ctx context.Context, userID uint64, limit int) ([]mongo.CompanyCount, error) {
	return f.companies, f.err
}

func (f *fakeApplicationRepo) MonthlyTrend(ctx context.Context, userID uint64, months int) ([]mongo.MonthCount, error) {
	return f.months, f.err
}

func (f *fakeApplicationRepo) AvgResponseDays(ctx context.Context, userID uint64) (float64, error) {
	return f.avgDays, f.err
}

func (f *fakeApplicationRepo) CompanyStatusBreakdown(ctx context.Context, userID uint64, company string) ([]mongo.CompanyStatusCount, error) {
	return f.breakdown, f.err
}

type fakeResumeRepo struct {
	resumes map[string]*mongo.Resume
	list    []*mongo.Resume
	skills  []mongo.SkillCount
	err     error
}

func (f *fakeResumeRepo) Create(ctx context.Context, resume *mongo.Resume) (string, error) {
	return "", f.err
}

func (f *fakeResumeRepo) GetByID(ctx context.Context, userID uint64, id string) (*mongo.Resume, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.resumes[id], nil
}

func (f *fakeResumeRepo) ListByUser(ctx context.Context, userID uint64) ([]*mongo.Resume, error) {
	return f.list, f.err
}

func (f *fakeResumeRepo) Update(ctx context.Context, userID uint64, resume *mongo.Resume) error {
	return f.err
}

func (f *fakeResumeRepo) Delete(ctx context.Context, userID uint64, id string) error {
	return f.err
}

func (f *fakeResumeRepo) TopSkills(ctx context.Context, userID uint64, limit int) ([]mongo.SkillCount, error) {
	return f.skills, f.err
}

type fakeUserRepo struct {
	user *model.User
	err  error

	tierSet string
	deleted bool
}

func (f *fakeUserRepo) GetUserById(ctx context.Context, id uint64) (*model.User, error) {
	return f.user, f.err
}

func (f *fakeUserRepo) GetUserByUsername(ctx context.Context, username string) (*model.User, error) {
	return f.user, f.err
}

func (f *fakeUserRepo) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	return f.user, f.err
}

func (f *fakeUserRepo) CreateUser(ctx context.Context, user *model.User, detail *model.UserDetail, roles *[]*model.UserRole) error {
	return f.err
}

func (f *fakeUserRepo) UpdateUser(ctx context.Context, user *model.User) error {
	return f.err
}

func (f *fakeUserRepo) UpdateUserDetail(ctx context.Context, detail *model.UserDetail) error {
	return f.err
}

func (f *fakeUserRepo) UpdateUserTier(ctx context.Context, id uint64, tier string) error {
	if f.err == nil {
		f.tierSet = tier
	}
	return f.err
}

func (f *fakeUserRepo) DeleteUser(ctx context.Context, id uint64) error {
	if f.err == nil {
		f.deleted = true
	}
	return f.err
}

type fakeSessionRepo struct {
	logins int64
	last   *model.UserSession
	err    error
}

func (f *fakeSessionRepo) CreateSession(ctx context.Context, session *model.UserSession) error {
	return f.err
}

func (f *fakeSessionRepo) CloseLatestSession(ctx context.Context, userID uint64) error {
	return f.err
}

func (f *fakeSessionRepo) CloseStaleSessions(ctx context.Context, olderThan time.Time) (int64, error) {
	return 0, f.err
}

func (f *fakeSessionRepo) CountLoginsSince(ctx context.Context, userID uint64, since time.Time) (int64, error) {
	return f.logins, f.err
}

func (f *fakeSessionRepo) GetLastSession(ctx context.Context, userID uint64) (*model.UserSession, error) {
	return f.last, f.err
}

func (f *fakeSessionRepo) GetRecentSessions(ctx context.Context, userID uint64, limit int) ([]*model.UserSession, error) {
	if f.last == nil {
		return nil, f.err
	}
	return []*model.UserSession{f.last}, f.err
}

type fakeMetricRepo struct {
	metrics []*model.UserDailyMetric
	err     error
}

func (f *fakeMetricRepo) SaveOrUpdateMetric(ctx context.Context, metric *model.UserDailyMetric) error {
	if f.err == nil {
		f.metrics = append(f.metrics, metric)
	}
	return f.err
}

func (f *fakeMetricRepo) GetMetricsSince(ctx context.Context, userID uint64, since time.Time) ([]*model.UserDailyMetric, error) {
	if f.err != nil {
		return nil, f.err
	}
	result := make([]*model.UserDailyMetric, 0, len(f.metrics))
	for _, m := range f.metrics {
		if !m.MetricDate.Before(since) {
			result = append(result, m)
		}
	}
	return result, nil
}

type fakeCaller struct {
	matchResult  *llm.JobMatchResult
	reviewResult *llm.ResumeReviewResult
	salaryResult *llm.SalarySuggestion
	err          error

	matchCalls int32
}

func (f *fakeCaller) JobMatch(ctx context.Context, input *llm.JobMatchInput) (*llm.JobMatchResult, error) {
	atomic.AddInt32(&f.matchCalls, 1)
	if f.err != nil {
		return nil, f.err
	}
	return f.matchResult, nil
}

func (f *fakeCaller) ResumeReview(ctx context.Context, resumeJSON string) (*llm.ResumeReviewResult, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.reviewResult, nil
}

func (f *fakeCaller) SalarySuggest(ctx context.Context, position, location string, yearsExperience int) (*llm.SalarySuggestion, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.salaryResult, nil
}

func (f *fakeCaller) ExtractPosting(ctx context.Context, pageText string) (*llm.PostingExtract, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &llm.PostingExtract{}, nil
}

type fakeSnapshotRunner struct {
	runs int32
	err  error
}

func (f *fakeSnapshotRunner) RunOnce(ctx context.Context) error {
	atomic.AddInt32(&f.runs, 1)
	return f.err
}
