package llm

import (
	"Huntboard/internal/api/config"
	"context"
	log "log/slog"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/googleai"
)

var llmClient llms.Model

var jobMatchPrompt string
var resumeReviewPrompt string
var salarySuggestPrompt string
var postingExtractPrompt string

func InitLLM() error {
	cfg := config.Cfg.LLM

	llm, err := googleai.New(context.Background(),
		googleai.WithAPIKey(cfg.ApiKey),
		googleai.WithDefaultModel(cfg.TextModel),
	)

	if err != nil {
		log.Error("AI大模型初始化失败", "err", err)
		return err
	}

	llmClient = llm

	// 从prompt txt文件中读取prompt
	jobMatchPrompt = readPrompt(cfg.PromptsPath.JobMatch)
	resumeReviewPrompt = readPrompt(cfg.PromptsPath.ResumeReview)
	salarySuggestPrompt = readPrompt(cfg.PromptsPath.SalarySuggest)
	postingExtractPrompt = readPrompt(cfg.PromptsPath.PostingExtract)

	return nil
}
