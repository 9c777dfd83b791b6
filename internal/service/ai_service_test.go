package service

import (
	"Huntboard/internal/api/dto"
	"Huntboard/internal/pkg/llm"
	"Huntboard/internal/pkg/mongo"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAITestRepos() (*fakeApplicationRepo, *fakeResumeRepo, *fakeUserRepo) {
	appRepo := &fakeApplicationRepo{
		apps: map[string]*mongo.Application{
			"app1": {
				Company:  "Acme",
				Position: "Go 后端工程师",
				Skills:   []string{"Go", "Kafka"},
				Notes:    "负责交易链路",
			},
		},
	}
	resumeRepo := &fakeResumeRepo{
		resumes: map[string]*mongo.Resume{
			"resume1": {
				Title:      "主简历",
				Summary:    "五年后端经验",
				Skills:     []string{"Go", "MySQL"},
				Experience: []mongo.ExperienceEntry{{Company: "Beta", Role: "开发"}},
			},
		},
	}
	userRepo := &fakeUserRepo{user: newTestUser(1)}
	return appRepo, resumeRepo, userRepo
}

func TestAnalyzeJobMatch_Success(t *testing.T) {
	setupTestConfig()
	appRepo, resumeRepo, userRepo := newAITestRepos()
	caller := &fakeCaller{matchResult: &llm.JobMatchResult{
		Score:     82,
		Strengths: []string{"Go 技术栈吻合"},
		Gaps:      []string{"缺少 Kafka 经验"},
		Advice:    "补充消息队列相关项目",
	}}

	svc := NewAIService(caller, appRepo, resumeRepo, userRepo)
	result, err := svc.AnalyzeJobMatch(context.Background(), 1, &dto.JobMatchRequestDTO{
		ApplicationID: "app1",
		ResumeID:      "resume1",
	})
	require.NoError(t, err)
	assert.Equal(t, 82, result.Score)
	assert.Equal(t, []string{"Go 技术栈吻合"}, result.Strengths)
	assert.Equal(t, int32(1), caller.matchCalls)
}

func TestAnalyzeJobMatch_NoFabricatedScore(t *testing.T) {
	setupTestConfig()
	appRepo, resumeRepo, userRepo := newAITestRepos()
	caller := &fakeCaller{err: errors.New("model overloaded")}

	svc := NewAIService(caller, appRepo, resumeRepo, userRepo)
	result, err := svc.AnalyzeJobMatch(context.Background(), 1, &dto.JobMatchRequestDTO{
		ApplicationID: "app1",
		ResumeID:      "resume1",
	})

	// 重试耗尽后必须报错，绝不能返回编造的分数
	assert.Nil(t, result)
	assert.ErrorIs(t, err, ErrMatchUnavailable)
	assert.Equal(t, int32(2), caller.matchCalls, "应按配置重试 2 次")
}

func TestAnalyzeJobMatch_NotFound(t *testing.T) {
	setupTestConfig()
	appRepo, resumeRepo, userRepo := newAITestRepos()
	svc := NewAIService(&fakeCaller{}, appRepo, resumeRepo, userRepo)

	t.Run("投递记录不存在", func(t *testing.T) {
		_, err := svc.AnalyzeJobMatch(context.Background(), 1, &dto.JobMatchRequestDTO{
			ApplicationID: "missing",
			ResumeID:      "resume1",
		})
		assert.ErrorIs(t, err, ErrApplicationNotFound)
	})

	t.Run("简历不存在", func(t *testing.T) {
		_, err := svc.AnalyzeJobMatch(context.Background(), 1, &dto.JobMatchRequestDTO{
			ApplicationID: "app1",
			ResumeID:      "missing",
		})
		assert.ErrorIs(t, err, ErrResumeNotFound)
	})
}

func TestReviewResume_Degraded(t *testing.T) {
	setupTestConfig()
	appRepo, resumeRepo, userRepo := newAITestRepos()
	caller := &fakeCaller{err: errors.New("timeout")}

	svc := NewAIService(caller, appRepo, resumeRepo, userRepo)
	result, err := svc.ReviewResume(context.Background(), 1, "resume1")
	require.NoError(t, err)

	assert.True(t, result.Degraded)
	// 基础 40 + 概述/技能/经历三个完整区块各 10
	assert.Equal(t, 70, result.Score)
	assert.Equal(t, defaultReviewChecklist, result.Suggestions)
}

func TestReviewResume_Success(t *testing.T) {
	setupTestConfig()
	appRepo, resumeRepo, userRepo := newAITestRepos()
	caller := &fakeCaller{reviewResult: &llm.ResumeReviewResult{
		Score:       88,
		Issues:      []string{"缺少量化指标"},
		Suggestions: []string{"为项目补充业务结果"},
	}}

	svc := NewAIService(caller, appRepo, resumeRepo, userRepo)
	result, err := svc.ReviewResume(context.Background(), 1, "resume1")
	require.NoError(t, err)
	assert.False(t, result.Degraded)
	assert.Equal(t, 88, result.Score)
}

func TestSuggestSalary_Degraded(t *testing.T) {
	setupTestConfig()
	appRepo, resumeRepo, userRepo := newAITestRepos()
	userRepo.user.UserDetail.YearsExperience = 10
	caller := &fakeCaller{err: errors.New("unavailable")}

	svc := NewAIService(caller, appRepo, resumeRepo, userRepo)
	result, err := svc.SuggestSalary(context.Background(), 1, &dto.SalarySuggestRequestDTO{Position: "后端工程师"})
	require.NoError(t, err)

	assert.True(t, result.Degraded)
	assert.Equal(t, "CNY", result.Currency)
	assert.Equal(t, int64(420000), result.Min)
	assert.Equal(t, int64(800000), result.Max)
}

func TestSeniorityBand(t *testing.T) {
	tests := []struct {
		position string
		years    int
		want     string
	}{
		{"Senior Go Engineer", 2, "senior"},
		{"资深后端", 1, "senior"},
		{"后端工程师", 9, "senior"},
		{"后端工程师", 4, "mid"},
		{"Mid-level Developer", 0, "mid"},
		{"实习生", 0, "junior"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, seniorityBand(tt.position, tt.years), "position=%s years=%d", tt.position, tt.years)
	}
}
