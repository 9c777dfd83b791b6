package service

import (
	"Huntboard/internal/api/dto"
	"Huntboard/internal/pkg/mongo"
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ResumeService interface {
	Create(ctx context.Context, userID uint64, baseDTO *dto.ResumeBaseDTO) (*dto.ResumeDTO, error)
	Get(ctx context.Context, userID uint64, id string) (*dto.ResumeDTO, error)
	List(ctx context.Context, userID uint64) ([]*dto.ResumeDTO, error)
	Update(ctx context.Context, userID uint64, id string, baseDTO *dto.ResumeBaseDTO) error
	Delete(ctx context.Context, userID uint64, id string) error
}

type ResumeServiceImpl struct {
	resumeRepo mongo.ResumeRepo
}

func NewResumeService(resumeRepo mongo.ResumeRepo) ResumeService {
	return &ResumeServiceImpl{resumeRepo: resumeRepo}
}

func (s *ResumeServiceImpl) Create(ctx context.Context, userID uint64, baseDTO *dto.ResumeBaseDTO) (*dto.ResumeDTO, error) {
	resume := fromResumeBaseDTO(userID, baseDTO)
	if _, err := s.resumeRepo.Create(ctx, resume); err != nil {
		return nil, err
	}
	return toResumeDTO(resume), nil
}

func (s *ResumeServiceImpl) Get(ctx context.Context, userID uint64, id string) (*dto.ResumeDTO, error) {
	resume, err := s.resumeRepo.GetByID(ctx, userID, id)
	if err != nil || resume == nil {
		return nil, ErrResumeNotFound
	}
	return toResumeDTO(resume), nil
}

func (s *ResumeServiceImpl) List(ctx context.Context, userID uint64) ([]*dto.ResumeDTO, error) {
	resumes, err := s.resumeRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	result := make([]*dto.ResumeDTO, 0, len(resumes))
	for _, resume := range resumes {
		result = append(result, toResumeDTO(resume))
	}
	return result, nil
}

func (s *ResumeServiceImpl) Update(ctx context.Context, userID uint64, id string, baseDTO *dto.ResumeBaseDTO) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrResumeNotFound
	}
	resume := fromResumeBaseDTO(userID, baseDTO)
	resume.ID = oid
	if err := s.resumeRepo.Update(ctx, userID, resume); err != nil {
		return ErrResumeNotFound
	}
	return nil
}

func (s *ResumeServiceImpl) Delete(ctx context.Context, userID uint64, id string) error {
	if err := s.resumeRepo.Delete(ctx, userID, id); err != nil {
		return ErrResumeNotFound
	}
	return nil
}

func fromResumeBaseDTO(userID uint64, baseDTO *dto.ResumeBaseDTO) *mongo.Resume {
	resume := &mongo.Resume{
		UserID:  userID,
		Title:   baseDTO.Title,
		Summary: baseDTO.Summary,
		Skills:  baseDTO.Skills,
	}
	for _, exp := range baseDTO.Experience {
		resume.Experience = append(resume.Experience, mongo.ExperienceEntry{
			Company:     exp.Company,
			Role:        exp.Role,
			Description: exp.Description,
			StartedAt:   exp.StartedAt,
			EndedAt:     exp.EndedAt,
		})
	}
	for _, edu := range baseDTO.Education {
		resume.Education = append(resume.Education, mongo.EducationEntry{
			School: edu.School,
			Degree: edu.Degree,
			Major:  edu.Major,
			Year:   edu.Year,
		})
	}
	return resume
}

func toResumeDTO(resume *mongo.Resume) *dto.ResumeDTO {
	summary, skills, experience, education := resume.SectionsComplete()
	result := &dto.ResumeDTO{
		ID:      resume.ID.Hex(),
		Title:   resume.Title,
		Summary: resume.Summary,
		Skills:  resume.Skills,
		Complete: dto.ResumeCompleteDTO{
			Summary:    summary,
			Skills:     skills,
			Experience: experience,
			Education:  education,
		},
		CreatedAt: resume.CreatedAt,
		UpdatedAt: resume.UpdatedAt,
	}
	for _, exp := range resume.Experience {
		result.Experience = append(result.Experience, dto.ExperienceEntryDTO{
			Company:     exp.Company,
			Role:        exp.Role,
			Description: exp.Description,
			StartedAt:   exp.StartedAt,
			EndedAt:     exp.EndedAt,
		})
	}
	for _, edu := range resume.Education {
		result.Education = append(result.Education, dto.EducationEntryDTO{
			School: edu.School,
			Degree: edu.Degree,
			Major:  edu.Major,
			Year:   edu.Year,
		})
	}
	return result
}
