package service

import (
	"bytes"
	"context"
	"creai_edu_backend/internal/seed"
	"creai_edu_backend/internal/util"
	"creai_edu_backend/pkg/logger"
	"fmt"
	"time"

	"go.uber.org/zap"
)

const bundleContentType = "application/yaml"

// CatalogService 启动时写入种子内容，可叠加存储中的内容包
type CatalogService struct {
	Storage *StorageService
	Repos   seed.Repositories
	now     func() time.Time
}

func NewCatalogService(storage *StorageService, repos seed.Repositories) *CatalogService {
	return &CatalogService{Storage: storage, Repos: repos, now: time.Now}
}

// LoadBundle 读取并解析存储中的内容包
func (s *CatalogService) LoadBundle(ctx context.Context, name string) (seed.Catalog, error) {
	rc, err := s.Storage.Open(ctx, name)
	if err != nil {
		return seed.Catalog{}, fmt.Errorf("open catalog bundle %s: %w", name, err)
	}
	defer rc.Close()

	reader, err := util.SniffText(rc)
	if err != nil {
		return seed.Catalog{}, fmt.Errorf("catalog bundle %s: %w", name, err)
	}
	return seed.DecodeBundle(reader)
}

// Bootstrap 写入内置内容；bundle 非空时用内容包中的条目覆盖或追加
func (s *CatalogService) Bootstrap(ctx context.Context, bundle string) (seed.Catalog, error) {
	now := s.now()
	catalog := seed.Builtin(now)

	if bundle != "" {
		extra, err := s.LoadBundle(ctx, bundle)
		if err != nil {
			return seed.Catalog{}, err
		}
		catalog = catalog.Merge(extra)
		logger.Log.Info("Catalog bundle merged",
			zap.String("bundle", bundle),
			zap.Int("modules", len(extra.Modules)),
			zap.Int("lessons", len(extra.Lessons)),
			zap.Int("exercises", len(extra.Exercises)),
		)
	}

	if err := catalog.Apply(ctx, s.Repos, now); err != nil {
		return seed.Catalog{}, fmt.Errorf("apply catalog: %w", err)
	}
	logger.Log.Info("Catalog loaded",
		zap.Int("modules", len(catalog.Modules)),
		zap.Int("lessons", len(catalog.Lessons)),
		zap.Int("exercises", len(catalog.Exercises)),
	)
	return catalog, nil
}

// Export 将内置内容写成 YAML 内容包，返回存储地址
func (s *CatalogService) Export(ctx context.Context, name string) (string, error) {
	var buf bytes.Buffer
	if err := seed.EncodeBundle(&buf, seed.Builtin(s.now())); err != nil {
		return "", fmt.Errorf("encode catalog bundle: %w", err)
	}

	url, err := s.Storage.Upload(ctx, name, bytes.NewReader(buf.Bytes()), int64(buf.Len()), bundleContentType)
	if err != nil {
		return "", fmt.Errorf("upload catalog bundle %s: %w", name, err)
	}
	logger.Log.Info("Catalog exported", zap.String("url", url), zap.Int("bytes", buf.Len()))
	return url, nil
}
