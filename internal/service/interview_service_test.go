package service

import (
	"Huntboard/internal/api/dto"
	"Huntboard/internal/pkg/mongo"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	mongodriver "go.mongodb.org/mongo-driver/mongo"
)

type fakeInterviewRepo struct {
	interviews map[string]*mongo.Interview
	outcomes   []mongo.OutcomeCount
	err        error
}

func (f *fakeInterviewRepo) Create(ctx context.Context, interview *mongo.Interview) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	interview.ID = primitive.NewObjectID()
	f.interviews[interview.ID.Hex()] = interview
	return interview.ID.Hex(), nil
}

func (f *fakeInterviewRepo) GetByID(ctx context.Context, userID uint64, id string) (*mongo.Interview, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.interviews[id], nil
}

func (f *fakeInterviewRepo) ListByApplication(ctx context.Context, userID uint64, applicationID string) ([]*mongo.Interview, error) {
	return nil, f.err
}

func (f *fakeInterviewRepo) ListUpcoming(ctx context.Context, userID uint64, limit int) ([]*mongo.Interview, error) {
	return nil, f.err
}

func (f *fakeInterviewRepo) UpdateOutcome(ctx context.Context, userID uint64, id string, outcome, notes string) error {
	if _, ok := f.interviews[id]; !ok {
		return mongodriver.ErrNoDocuments
	}
	f.interviews[id].Outcome = outcome
	f.interviews[id].Notes = notes
	return nil
}

func (f *fakeInterviewRepo) Reschedule(ctx context.Context, userID uint64, id string, scheduledAt time.Time, durationMinutes int) error {
	if _, ok := f.interviews[id]; !ok {
		return mongodriver.ErrNoDocuments
	}
	f.interviews[id].ScheduledAt = scheduledAt
	f.interviews[id].DurationMinutes = durationMinutes
	return nil
}

func (f *fakeInterviewRepo) Delete(ctx context.Context, userID uint64, id string) error {
	if _, ok := f.interviews[id]; !ok {
		return mongodriver.ErrNoDocuments
	}
	delete(f.interviews, id)
	return nil
}

func (f *fakeInterviewRepo) CountByOutcome(ctx context.Context, userID uint64) ([]mongo.OutcomeCount, error) {
	return f.outcomes, f.err
}

func (f *fakeInterviewRepo) CountInRange(ctx context.Context, userID uint64, from, to time.Time) (int64, error) {
	return 0, f.err
}

func TestScheduleInterview(t *testing.T) {
	appID := primitive.NewObjectID()
	appRepo := &fakeApplicationRepo{
		apps: map[string]*mongo.Application{
			appID.Hex(): {ID: appID, UserID: 1, Company: "Acme", Position: "Go 后端"},
		},
	}
	interviewRepo := &fakeInterviewRepo{interviews: map[string]*mongo.Interview{}}
	svc := NewInterviewService(interviewRepo, appRepo)

	result, err := svc.Schedule(context.Background(), 1, &dto.InterviewBaseDTO{
		ApplicationID: appID.Hex(),
		Type:          "video",
		ScheduledAt:   time.Now().Add(48 * time.Hour),
	})
	require.NoError(t, err)
	// 轮次与时长缺省补齐
	assert.Equal(t, 1, result.Round)
	assert.Equal(t, 60, result.DurationMinutes)

	t.Run("投递记录不存在", func(t *testing.T) {
		_, err := svc.Schedule(context.Background(), 1, &dto.InterviewBaseDTO{
			ApplicationID: primitive.NewObjectID().Hex(),
			Type:          "video",
			ScheduledAt:   time.Now(),
		})
		assert.ErrorIs(t, err, ErrApplicationNotFound)
	})
}

func TestRecordOutcome_NotFound(t *testing.T) {
	svc := NewInterviewService(
		&fakeInterviewRepo{interviews: map[string]*mongo.Interview{}},
		&fakeApplicationRepo{},
	)
	err := svc.RecordOutcome(context.Background(), 1, primitive.NewObjectID().Hex(), &dto.InterviewOutcomeDTO{Outcome: "passed"})
	assert.ErrorIs(t, err, ErrInterviewNotFound)
}

func TestExportICS(t *testing.T) {
	appID := primitive.NewObjectID()
	interviewID := primitive.NewObjectID()
	scheduledAt := time.Date(2026, 9, 1, 6, 30, 0, 0, time.UTC)

	appRepo := &fakeApplicationRepo{
		apps: map[string]*mongo.Application{
			appID.Hex(): {ID: appID, UserID: 1, Company: "Acme", Position: "Go 后端"},
		},
	}
	interviewRepo := &fakeInterviewRepo{
		interviews: map[string]*mongo.Interview{
			interviewID.Hex(): {
				ID:              interviewID,
				UserID:          1,
				ApplicationID:   appID,
				Round:           2,
				Type:            "video",
				ScheduledAt:     scheduledAt,
				DurationMinutes: 45,
				MeetingURL:      "https://meet.example.com/xyz",
				Interviewers:    []string{"李工"},
			},
		},
	}

	svc := NewInterviewService(interviewRepo, appRepo)
	ics, err := svc.ExportICS(context.Background(), 1, interviewID.Hex())
	require.NoError(t, err)

	assert.Contains(t, ics, "UID:"+interviewID.Hex()+"@huntboard")
	assert.Contains(t, ics, "DTSTART:20260901T063000Z")
	assert.Contains(t, ics, "DTEND:20260901T071500Z")
	assert.Contains(t, ics, `SUMMARY:Go 后端 面试（第 2 轮）- Acme`)
	assert.Contains(t, ics, "面试官: 李工")

	t.Run("面试不存在", func(t *testing.T) {
		_, err := svc.ExportICS(context.Background(), 1, primitive.NewObjectID().Hex())
		assert.ErrorIs(t, err, ErrInterviewNotFound)
	})
}
