package service

import (
	"Huntboard/internal/api/dto"
	"Huntboard/internal/pkg/mongo"
	"Huntboard/internal/pkg/util"
	"context"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const defaultInterviewMinutes = 60

type InterviewService interface {
	Schedule(ctx context.Context, userID uint64, baseDTO *dto.InterviewBaseDTO) (*dto.InterviewDTO, error)
	Get(ctx context.Context, userID uint64, id string) (*dto.InterviewDTO, error)
	ListByApplication(ctx context.Context, userID uint64, applicationID string) ([]*dto.InterviewDTO, error)
	ListUpcoming(ctx context.Context, userID uint64, limit int) ([]*dto.InterviewDTO, error)
	RecordOutcome(ctx context.Context, userID uint64, id string, outcomeDTO *dto.InterviewOutcomeDTO) error
	Reschedule(ctx context.Context, userID uint64, id string, reDTO *dto.InterviewRescheduleDTO) error
	Delete(ctx context.Context, userID uint64, id string) error
	ExportICS(ctx context.Context, userID uint64, id string) (string, error)
}

type InterviewServiceImpl struct {
	interviewRepo mongo.InterviewRepo
	appRepo       mongo.ApplicationRepo
}

func NewInterviewService(interviewRepo mongo.InterviewRepo, appRepo mongo.ApplicationRepo) InterviewService {
	return &InterviewServiceImpl{
		interviewRepo: interviewRepo,
		appRepo:       appRepo,
	}
}

func (s *InterviewServiceImpl) Schedule(ctx context.Context, userID uint64, baseDTO *dto.InterviewBaseDTO) (*dto.InterviewDTO, error) {
	app, err := s.appRepo.GetByID(ctx, userID, baseDTO.ApplicationID)
	if err != nil || app == nil {
		return nil, ErrApplicationNotFound
	}

	appOID, err := primitive.ObjectIDFromHex(baseDTO.ApplicationID)
	if err != nil {
		return nil, ErrApplicationNotFound
	}

	round := baseDTO.Round
	if round <= 0 {
		round = 1
	}
	duration := baseDTO.DurationMinutes
	if duration <= 0 {
		duration = defaultInterviewMinutes
	}

	interview := &mongo.Interview{
		UserID:          userID,
		ApplicationID:   appOID,
		Round:           round,
		Type:            baseDTO.Type,
		ScheduledAt:     baseDTO.ScheduledAt,
		DurationMinutes: duration,
		Location:        baseDTO.Location,
		MeetingURL:      baseDTO.MeetingURL,
		Interviewers:    baseDTO.Interviewers,
	}
	if _, err := s.interviewRepo.Create(ctx, interview); err != nil {
		return nil, err
	}
	return toInterviewDTO(interview), nil
}

func (s *InterviewServiceImpl) Get(ctx context.Context, userID uint64, id string) (*dto.InterviewDTO, error) {
	interview, err := s.interviewRepo.GetByID(ctx, userID, id)
	if err != nil || interview == nil {
		return nil, ErrInterviewNotFound
	}
	return toInterviewDTO(interview), nil
}

func (s *InterviewServiceImpl) ListByApplication(ctx context.Context, userID uint64, applicationID string) ([]*dto.InterviewDTO, error) {
	interviews, err := s.interviewRepo.ListByApplication(ctx, userID, applicationID)
	if err != nil {
		return nil, err
	}
	return toInterviewDTOs(interviews), nil
}

func (s *InterviewServiceImpl) ListUpcoming(ctx context.Context, userID uint64, limit int) ([]*dto.InterviewDTO, error) {
	if limit <= 0 || limit > 50 {
		limit = 10
	}
	interviews, err := s.interviewRepo.ListUpcoming(ctx, userID, limit)
	if err != nil {
		return nil, err
	}
	return toInterviewDTOs(interviews), nil
}

func (s *InterviewServiceImpl) RecordOutcome(ctx context.Context, userID uint64, id string, outcomeDTO *dto.InterviewOutcomeDTO) error {
	if err := s.interviewRepo.UpdateOutcome(ctx, userID, id, outcomeDTO.Outcome, outcomeDTO.Notes); err != nil {
		return ErrInterviewNotFound
	}
	return nil
}

func (s *InterviewServiceImpl) Reschedule(ctx context.Context, userID uint64, id string, reDTO *dto.InterviewRescheduleDTO) error {
	duration := reDTO.DurationMinutes
	if duration <= 0 {
		duration = defaultInterviewMinutes
	}
	if err := s.interviewRepo.Reschedule(ctx, userID, id, reDTO.ScheduledAt, duration); err != nil {
		return ErrInterviewNotFound
	}
	return nil
}

func (s *InterviewServiceImpl) Delete(ctx context.Context, userID uint64, id string) error {
	if err := s.interviewRepo.Delete(ctx, userID, id); err != nil {
		return ErrInterviewNotFound
	}
	return nil
}

// ExportICS 导出单场面试的日历文本
func (s *InterviewServiceImpl) ExportICS(ctx context.Context, userID uint64, id string) (string, error) {
	interview, err := s.interviewRepo.GetByID(ctx, userID, id)
	if err != nil || interview == nil {
		return "", ErrInterviewNotFound
	}

	app, err := s.appRepo.GetByID(ctx, userID, interview.ApplicationID.Hex())
	if err != nil || app == nil {
		return "", ErrApplicationNotFound
	}

	summary := fmt.Sprintf("%s 面试（第 %d 轮）- %s", app.Position, interview.Round, app.Company)
	descParts := []string{fmt.Sprintf("面试类型: %s", interview.Type)}
	if len(interview.Interviewers) > 0 {
		descParts = append(descParts, "面试官: "+strings.Join(interview.Interviewers, ", "))
	}
	if interview.MeetingURL != "" {
		descParts = append(descParts, "会议链接: "+interview.MeetingURL)
	}

	evt := &util.ICSEvent{
		UID:         interview.ID.Hex() + "@huntboard",
		Summary:     summary,
		Description: strings.Join(descParts, "\n"),
		Location:    interview.Location,
		Start:       interview.ScheduledAt,
		End:         interview.ScheduledAt.Add(time.Duration(interview.DurationMinutes) * time.Minute),
	}
	return util.RenderICS(evt), nil
}

func toInterviewDTO(interview *mongo.Interview) *dto.InterviewDTO {
	return &dto.InterviewDTO{
		ID:              interview.ID.Hex(),
		ApplicationID:   interview.ApplicationID.Hex(),
		Round:           interview.Round,
		Type:            interview.Type,
		ScheduledAt:     interview.ScheduledAt,
		DurationMinutes: interview.DurationMinutes,
		Location:        interview.Location,
		MeetingURL:      interview.MeetingURL,
		Interviewers:    interview.Interviewers,
		Outcome:         interview.Outcome,
		Notes:           interview.Notes,
	}
}

func toInterviewDTOs(interviews []*mongo.Interview) []*dto.InterviewDTO {
	result := make([]*dto.InterviewDTO, 0, len(interviews))
	for _, interview := range interviews {
		result = append(result, toInterviewDTO(interview))
	}
	return result
}
