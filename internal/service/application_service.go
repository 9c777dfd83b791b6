package service

import (
	"Huntboard/internal/api/dto"
	"Huntboard/internal/pkg/consts"
	"Huntboard/internal/pkg/es"
	"Huntboard/internal/pkg/minio"
	"Huntboard/internal/pkg/mongo"
	"Huntboard/internal/pkg/redis"
	"Huntboard/internal/pkg/util"
	"context"
	"fmt"
	"io"
	log "log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
)

const (
	attachmentURLExpiry = 15 * time.Minute
	companySuggestTTL   = 10 * time.Minute
)

var validStatuses = func() map[string]bool {
	m := make(map[string]bool, len(consts.AllStatuses))
	for _, status := range consts.AllStatuses {
		m[status] = true
	}
	return m
}()

type ApplicationService interface {
	Create(ctx context.Context, userID uint64, baseDTO *dto.ApplicationBaseDTO) (*dto.ApplicationDTO, error)
	Get(ctx context.Context, userID uint64, id string) (*dto.ApplicationDTO, error)
	List(ctx context.Context, userID uint64, status string, page, pageSize int) ([]*dto.ApplicationDTO, error)
	Update(ctx context.Context, userID uint64, id string, baseDTO *dto.ApplicationBaseDTO) error
	ChangeStatus(ctx context.Context, userID uint64, id string, changeDTO *dto.ChangeStatusDTO) error
	AddCommunication(ctx context.Context, userID uint64, id string, commDTO *dto.CommunicationDTO) error
	Delete(ctx context.Context, userID uint64, id string) error

	Search(ctx context.Context, userID uint64, searchDTO *dto.ApplicationSearchDTO) (*dto.ApplicationPageDTO, error)
	SuggestCompanies(ctx context.Context, userID uint64, prefix string) ([]string, error)

	UploadAttachment(ctx context.Context, userID uint64, id, fileName, contentType string, reader io.Reader, size int64) (*dto.AttachmentDTO, error)
	AttachmentURL(ctx context.Context, userID uint64, id, objectKey string) (string, error)
}

type ApplicationServiceImpl struct {
	appRepo    mongo.ApplicationRepo
	searchRepo es.ApplicationRepo
}

func NewApplicationService(appRepo mongo.ApplicationRepo, searchRepo es.ApplicationRepo) ApplicationService {
	return &ApplicationServiceImpl{
		appRepo:    appRepo,
		searchRepo: searchRepo,
	}
}

func (s *ApplicationServiceImpl) Create(ctx context.Context, userID uint64, baseDTO *dto.ApplicationBaseDTO) (*dto.ApplicationDTO, error) {
	app := s.fromBaseDTO(userID, baseDTO)
	app.Status = consts.StatusApplied

	id, err := s.appRepo.Create(ctx, app)
	if err != nil {
		return nil, err
	}

	s.afterWrite(ctx, app)
	log.InfoContext(ctx, "application created", "user_id", userID, "application_id", id)
	return s.toDTO(ctx, app, false), nil
}

func (s *ApplicationServiceImpl) Get(ctx context.Context, userID uint64, id string) (*dto.ApplicationDTO, error) {
	app, err := s.appRepo.GetByID(ctx, userID, id)
	if err != nil {
		return nil, ErrApplicationNotFound
	}
	if app == nil {
		return nil, ErrApplicationNotFound
	}
	return s.toDTO(ctx, app, true), nil
}

func (s *ApplicationServiceImpl) List(ctx context.Context, userID uint64, status string, page, pageSize int) ([]*dto.ApplicationDTO, error) {
	if status != "" && !validStatuses[status] {
		return nil, ErrStatusInvalid
	}
	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 || pageSize > 50 {
		pageSize = 20
	}

	apps, err := s.appRepo.ListByUser(ctx, userID, status, page, pageSize)
	if err != nil {
		return nil, err
	}

	result := make([]*dto.ApplicationDTO, 0, len(apps))
	for _, app := range apps {
		result = append(result, s.toDTO(ctx, app, false))
	}
	return result, nil
}

func (s *ApplicationServiceImpl) Update(ctx context.Context, userID uint64, id string, baseDTO *dto.ApplicationBaseDTO) error {
	app, err := s.appRepo.GetByID(ctx, userID, id)
	if err != nil || app == nil {
		return ErrApplicationNotFound
	}

	updated := s.fromBaseDTO(userID, baseDTO)
	updated.ID = app.ID
	updated.Status = app.Status
	if updated.AppliedAt.IsZero() {
		updated.AppliedAt = app.AppliedAt
	}

	if err := s.appRepo.Update(ctx, userID, updated); err != nil {
		return ErrApplicationNotFound
	}

	s.afterWrite(ctx, updated)
	return nil
}

// ChangeStatus 状态流转，历史只追加
func (s *ApplicationServiceImpl) ChangeStatus(ctx context.Context, userID uint64, id string, changeDTO *dto.ChangeStatusDTO) error {
	if !validStatuses[changeDTO.Status] {
		return ErrStatusInvalid
	}

	change := mongo.StatusChange{
		Status:    changeDTO.Status,
		Note:      changeDTO.Note,
		ChangedAt: time.Now(),
	}
	if err := s.appRepo.UpdateStatus(ctx, userID, id, change); err != nil {
		return ErrApplicationNotFound
	}

	app, err := s.appRepo.GetByID(ctx, userID, id)
	if err == nil && app != nil {
		s.afterWrite(ctx, app)
	}
	return nil
}

func (s *ApplicationServiceImpl) AddCommunication(ctx context.Context, userID uint64, id string, commDTO *dto.CommunicationDTO) error {
	occurredAt := commDTO.OccurredAt
	if occurredAt.IsZero() {
		occurredAt = time.Now()
	}
	comm := mongo.Communication{
		Type:       commDTO.Type,
		Direction:  commDTO.Direction,
		Subject:    commDTO.Subject,
		OccurredAt: occurredAt,
	}
	if err := s.appRepo.AddCommunication(ctx, userID, id, comm); err != nil {
		return ErrApplicationNotFound
	}
	s.markDirty(ctx, userID)
	return nil
}

func (s *ApplicationServiceImpl) Delete(ctx context.Context, userID uint64, id string) error {
	app, err := s.appRepo.GetByID(ctx, userID, id)
	if err != nil || app == nil {
		return ErrApplicationNotFound
	}

	if err := s.appRepo.Delete(ctx, userID, id); err != nil {
		return ErrApplicationNotFound
	}

	// 附件随申请一并清理
	for _, att := range app.Attachments {
		if err := minio.DeleteFile(ctx, att.ObjectKey); err != nil {
			log.WarnContext(ctx, "delete attachment failed", "object_key", att.ObjectKey, "err", err)
		}
	}

	if err := s.searchRepo.DeleteApplication(ctx, id); err != nil {
		log.ErrorContext(ctx, "delete es document failed", "application_id", id, "err", err)
	}
	s.markDirty(ctx, userID)
	return nil
}

func (s *ApplicationServiceImpl) Search(ctx context.Context, userID uint64, searchDTO *dto.ApplicationSearchDTO) (*dto.ApplicationPageDTO, error) {
	size := searchDTO.Size
	if size <= 0 || size > 50 {
		size = 20
	}
	if searchDTO.Status != "" && !validStatuses[searchDTO.Status] {
		return nil, ErrStatusInvalid
	}

	sortValues, err := util.DecodeCursor(searchDTO.Cursor)
	if err != nil {
		return nil, ErrParamInvalid
	}

	hits, err := s.searchRepo.Search(ctx, userID, searchDTO.Keyword, searchDTO.Status, searchDTO.Company, sortValues, size)
	if err != nil {
		return nil, err
	}

	items := make([]*dto.ApplicationDTO, 0, len(hits))
	for _, hit := range hits {
		items = append(items, &dto.ApplicationDTO{
			ID:        hit.ID,
			Company:   hit.Company,
			Position:  hit.Position,
			Location:  hit.Location,
			Status:    hit.Status,
			Source:    hit.Source,
			SalaryMin: hit.SalaryMin,
			SalaryMax: hit.SalaryMax,
			Skills:    hit.Skills,
			Notes:     hit.Notes,
			AppliedAt: hit.AppliedAt,
		})
	}

	nextCursor := ""
	if len(hits) == size {
		nextCursor = util.EncodeCursor(hits[len(hits)-1].Sort)
	}
	return &dto.ApplicationPageDTO{Items: items, NextCursor: nextCursor}, nil
}

// SuggestCompanies 公司名补全，同一前缀短期内直接走 Redis
func (s *ApplicationServiceImpl) SuggestCompanies(ctx context.Context, userID uint64, prefix string) ([]string, error) {
	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		return []string{}, nil
	}

	cacheKey := consts.CompanySuggestKey + strconv.FormatUint(userID, 10) + ":" + strings.ToLower(prefix)
	if raw, err := redis.GetValue(ctx, cacheKey); err == nil && raw != "" {
		var cached []string
		if err := json.Unmarshal([]byte(raw), &cached); err == nil {
			return cached, nil
		}
	}

	suggestions, err := s.searchRepo.SuggestCompanies(ctx, userID, prefix, 10)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(suggestions); err == nil {
		if err := redis.SetWithExpiration(ctx, cacheKey, string(data), companySuggestTTL); err != nil {
			log.WarnContext(ctx, "cache company suggestions failed", "prefix", prefix, "err", err)
		}
	}
	return suggestions, nil
}

func (s *ApplicationServiceImpl) UploadAttachment(ctx context.Context, userID uint64, id, fileName, contentType string, reader io.Reader, size int64) (*dto.AttachmentDTO, error) {
	if !strings.HasPrefix(contentType, consts.MimePrefixImage) && contentType != consts.MimePrefixPDF {
		return nil, ErrFileNotSupported
	}

	app, err := s.appRepo.GetByID(ctx, userID, id)
	if err != nil || app == nil {
		return nil, ErrApplicationNotFound
	}

	objectKey := fmt.Sprintf("attachments/%d/%s/%s_%s", userID, id, uuid.NewString(), fileName)
	if _, err := minio.UploadFile(ctx, objectKey, reader, size, contentType); err != nil {
		return nil, err
	}

	att := mongo.Attachment{
		ObjectKey:   objectKey,
		FileName:    fileName,
		ContentType: contentType,
		Size:        size,
		UploadedAt:  time.Now(),
	}
	if err := s.appRepo.AddAttachment(ctx, userID, id, att); err != nil {
		return nil, ErrApplicationNotFound
	}

	return &dto.AttachmentDTO{
		ObjectKey:   att.ObjectKey,
		FileName:    att.FileName,
		ContentType: att.ContentType,
		Size:        att.Size,
		UploadedAt:  att.UploadedAt,
	}, nil
}

func (s *ApplicationServiceImpl) AttachmentURL(ctx context.Context, userID uint64, id, objectKey string) (string, error) {
	app, err := s.appRepo.GetByID(ctx, userID, id)
	if err != nil || app == nil {
		return "", ErrApplicationNotFound
	}

	for _, att := range app.Attachments {
		if att.ObjectKey == objectKey {
			return minio.PresignedGetURL(ctx, att.ObjectKey, att.FileName, attachmentURLExpiry)
		}
	}
	return "", ErrFileNotExist
}

// afterWrite 同步 ES 索引并把用户标记进脏集合，供每日指标任务消费
func (s *ApplicationServiceImpl) afterWrite(ctx context.Context, app *mongo.Application) {
	doc := &es.ApplicationES{
		ID:        app.ID.Hex(),
		UserID:    app.UserID,
		Company:   app.Company,
		Position:  app.Position,
		Location:  app.Location,
		Status:    app.Status,
		Source:    app.Source,
		Skills:    app.Skills,
		Notes:     app.Notes,
		SalaryMin: app.SalaryMin,
		SalaryMax: app.SalaryMax,
		AppliedAt: app.AppliedAt,
	}
	if err := s.searchRepo.IndexApplication(ctx, doc); err != nil {
		log.ErrorContext(ctx, "index application failed", "application_id", doc.ID, "err", err)
	}
	s.markDirty(ctx, app.UserID)
}

func (s *ApplicationServiceImpl) markDirty(ctx context.Context, userID uint64) {
	if err := redis.SAdd(ctx, consts.ApplicationDirtyKey, userID); err != nil {
		log.ErrorContext(ctx, "mark dirty user failed", "user_id", userID, "err", err)
	}
}

func (s *ApplicationServiceImpl) fromBaseDTO(userID uint64, baseDTO *dto.ApplicationBaseDTO) *mongo.Application {
	app := &mongo.Application{
		UserID:     userID,
		Company:    baseDTO.Company,
		Position:   baseDTO.Position,
		Location:   baseDTO.Location,
		Source:     baseDTO.Source,
		PostingURL: baseDTO.PostingURL,
		SalaryMin:  baseDTO.SalaryMin,
		SalaryMax:  baseDTO.SalaryMax,
		Currency:   baseDTO.Currency,
		Skills:     baseDTO.Skills,
		Notes:      baseDTO.Notes,
	}
	if baseDTO.AppliedAt != nil {
		app.AppliedAt = *baseDTO.AppliedAt
	}
	return app
}

func (s *ApplicationServiceImpl) toDTO(ctx context.Context, app *mongo.Application, withURLs bool) *dto.ApplicationDTO {
	result := &dto.ApplicationDTO{
		ID:              app.ID.Hex(),
		Company:         app.Company,
		Position:        app.Position,
		Location:        app.Location,
		Status:          app.Status,
		Source:          app.Source,
		PostingURL:      app.PostingURL,
		SalaryMin:       app.SalaryMin,
		SalaryMax:       app.SalaryMax,
		Currency:        app.Currency,
		Skills:          app.Skills,
		Notes:           app.Notes,
		AppliedAt:       app.AppliedAt,
		FirstResponseAt: app.FirstResponseAt,
		CreatedAt:       app.CreatedAt,
		UpdatedAt:       app.UpdatedAt,
	}

	for _, change := range app.StatusHistory {
		result.StatusHistory = append(result.StatusHistory, dto.StatusChangeDTO{
			Status:    change.Status,
			Note:      change.Note,
			ChangedAt: change.ChangedAt,
		})
	}
	for _, comm := range app.Communications {
		result.Communications = append(result.Communications, dto.CommunicationDTO{
			Type:       comm.Type,
			Direction:  comm.Direction,
			Subject:    comm.Subject,
			OccurredAt: comm.OccurredAt,
		})
	}
	for _, att := range app.Attachments {
		item := dto.AttachmentDTO{
			ObjectKey:   att.ObjectKey,
			FileName:    att.FileName,
			ContentType: att.ContentType,
			Size:        att.Size,
			UploadedAt:  att.UploadedAt,
		}
		if withURLs {
			if url, err := minio.PresignedGetURL(ctx, att.ObjectKey, att.FileName, attachmentURLExpiry); err == nil {
				item.DownloadURL = url
			}
		}
		result.Attachments = append(result.Attachments, item)
	}
	return result
}
