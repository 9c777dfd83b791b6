package service

import (
	"Huntboard/internal/api/dto"
	"Huntboard/internal/pkg/consts"
	"Huntboard/internal/pkg/llm"
	"Huntboard/internal/pkg/minio"
	"Huntboard/internal/pkg/redis"
	"Huntboard/internal/pkg/webfetch"
	"context"
	"fmt"
	log "log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/pkg/errors"
)

const importResultTTL = time.Hour

type ImportService interface {
	ImportPosting(ctx context.Context, userID uint64, url string) (*dto.DraftApplicationDTO, error)
	LastDraft(ctx context.Context, userID uint64) (*dto.DraftApplicationDTO, error)
}

type ImportServiceImpl struct {
	fetcher webfetch.Fetcher
	caller  llm.Caller
}

func NewImportService(fetcher webfetch.Fetcher, caller llm.Caller) ImportService {
	return &ImportServiceImpl{
		fetcher: fetcher,
		caller:  caller,
	}
}

// ImportPosting 抓取职位页面并抽取结构化字段，生成投递草稿。
// 草稿只暂存在 Redis，用户确认前不落库。
func (s *ImportServiceImpl) ImportPosting(ctx context.Context, userID uint64, url string) (*dto.DraftApplicationDTO, error) {
	page, err := s.fetcher.FetchPage(ctx, url)
	if err != nil {
		log.ErrorContext(ctx, "fetch posting page failed", "url", url, "err", err)
		return nil, ErrImportFailed
	}

	// 抓取产物归档到临时桶方便排查抽取问题，由生命周期规则自动过期
	s.archivePageText(ctx, userID, page.Text)

	extract, err := s.caller.ExtractPosting(ctx, page.Text)
	if err != nil {
		log.ErrorContext(ctx, "extract posting failed", "url", url, "err", err)
		return nil, ErrImportFailed
	}

	draft := &dto.DraftApplicationDTO{
		Company:     extract.Company,
		Position:    extract.Position,
		Location:    extract.Location,
		SalaryMin:   extract.SalaryMin,
		SalaryMax:   extract.SalaryMax,
		Currency:    extract.Currency,
		Skills:      extract.Skills,
		Description: extract.Description,
		PostingURL:  url,
		PageTitle:   page.Title,
	}
	if draft.Position == "" {
		draft.Position = page.Title
	}

	if err := s.stashDraft(ctx, userID, draft); err != nil {
		log.WarnContext(ctx, "stash draft failed", "user_id", userID, "err", err)
	}
	return draft, nil
}

// LastDraft 取回最近一次导入生成的草稿
func (s *ImportServiceImpl) LastDraft(ctx context.Context, userID uint64) (*dto.DraftApplicationDTO, error) {
	value, err := redis.GetValue(ctx, draftKey(userID))
	if err != nil {
		return nil, err
	}
	if value == "" {
		return nil, ErrImportFailed
	}
	draft := &dto.DraftApplicationDTO{}
	if err := json.Unmarshal([]byte(value), draft); err != nil {
		return nil, errors.Wrap(err, "decode stashed draft")
	}
	return draft, nil
}

func (s *ImportServiceImpl) stashDraft(ctx context.Context, userID uint64, draft *dto.DraftApplicationDTO) error {
	data, err := json.Marshal(draft)
	if err != nil {
		return errors.Wrap(err, "encode draft")
	}
	return redis.SetWithExpiration(ctx, draftKey(userID), string(data), importResultTTL)
}

func (s *ImportServiceImpl) archivePageText(ctx context.Context, userID uint64, text string) {
	if text == "" {
		return
	}
	objectName := fmt.Sprintf("imports/%d/%s.txt", userID, uuid.NewString())
	_, err := minio.UploadTempFile(ctx, objectName, strings.NewReader(text), int64(len(text)), "text/plain; charset=utf-8")
	if err != nil {
		log.WarnContext(ctx, "archive fetched page failed", "user_id", userID, "err", err)
	}
}

func draftKey(userID uint64) string {
	return consts.ImportResultKey + strconv.FormatUint(userID, 10)
}
