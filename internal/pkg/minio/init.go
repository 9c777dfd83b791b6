package minio

import (
	"Huntboard/internal/api/config"
	"context"
	"fmt"
	log "log/slog"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/minio/minio-go/v7/pkg/lifecycle"
)

var (
	// Client 全局 MinIO 客户端实例
	Client *minio.Client
	// MainBucket 主要存储桶，投递附件和头像
	MainBucket string
	// TempBucket 临时存储桶，导入抓取的中间产物
	TempBucket string
)

// Init 初始化 MinIO 客户端
func Init() error {
	cfg := config.Cfg.MinIO

	var endpoint string
	var useSSL bool
	if cfg.InternalEndpoint != "" {
		endpoint = cfg.InternalEndpoint
		useSSL = cfg.InternalUseSSL
	} else {
		endpoint = cfg.ExternalEndpoint
		useSSL = true
	}

	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: useSSL,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize minio client: %w", err)
	}

	ctx := context.Background()
	_, err = client.ListBuckets(ctx)
	if err != nil {
		return fmt.Errorf("failed to connect to minio server: %w", err)
	}
	Client = client
	MainBucket = cfg.MainBucket
	TempBucket = cfg.TempBucket
	return EnsureTempBucketLifecycle(ctx)
}

func EnsureTempBucketLifecycle(ctx context.Context) error {
	lcConfig, err := Client.GetBucketLifecycle(ctx, TempBucket)
	if err != nil {
		lcConfig = lifecycle.NewConfiguration()
	}

	const expireDays = 1
	for _, rule := range lcConfig.Rules {
		// 已存在全桶 1 天过期规则时不再重复写入
		if rule.Status == "Enabled" &&
			rule.Expiration.Days == expireDays &&
			rule.RuleFilter.Prefix == "" {
			log.Info("临时桶过期策略已存在", "ruleID", rule.ID)
			return nil
		}
	}

	lcConfig.Rules = append(lcConfig.Rules, lifecycle.Rule{
		ID:     "TempAutoExpire",
		Status: "Enabled",
		Expiration: lifecycle.Expiration{
			Days: expireDays,
		},
	})

	if err = Client.SetBucketLifecycle(ctx, TempBucket, lcConfig); err != nil {
		return fmt.Errorf("设置临时桶生命周期失败: %w", err)
	}
	log.Info("已补全临时桶的 1 天过期策略")
	return nil
}
