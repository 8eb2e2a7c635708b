package service

import (
	"context"
	"creai_edu_backend/internal/config"
	"creai_edu_backend/internal/util"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/aliyun/aliyun-oss-go-sdk/oss"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// StorageProvider 内容包的读写后端
type StorageProvider interface {
	Upload(ctx context.Context, name string, reader io.Reader, size int64, contentType string) (string, error)
	Open(ctx context.Context, name string) (io.ReadCloser, error)
	GetURL(name string) string
}

// LocalStorageProvider 本地目录
type LocalStorageProvider struct {
	Root string
}

func (p *LocalStorageProvider) path(name string) string {
	return filepath.Join(p.Root, filepath.FromSlash(name))
}

func (p *LocalStorageProvider) Upload(ctx context.Context, name string, reader io.Reader, size int64, contentType string) (string, error) {
	dst := p.path(name)
	if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return "", err
	}

	out, err := os.Create(dst)
	if err != nil {
		return "", err
	}
	defer out.Close()

	if _, err := io.Copy(out, reader); err != nil {
		return "", err
	}
	return p.GetURL(name), nil
}

func (p *LocalStorageProvider) Open(ctx context.Context, name string) (io.ReadCloser, error) {
	return os.Open(p.path(name))
}

func (p *LocalStorageProvider) GetURL(name string) string {
	return "file://" + filepath.ToSlash(p.path(name))
}

// MinioStorageProvider MinIO 对象存储
type MinioStorageProvider struct {
	Bucket string
	Client *minio.Client
}

func NewMinioStorageProvider(cfg *config.StorageConfig) (*MinioStorageProvider, error) {
	client, err := minio.New(cfg.MinioEndpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.MinioAccessID, cfg.MinioSecret, ""),
		Secure: cfg.MinioSecure,
	})
	if err != nil {
		return nil, err
	}
	return &MinioStorageProvider{Bucket: cfg.MinioBucket, Client: client}, nil
}

func (p *MinioStorageProvider) Upload(ctx context.Context, name string, reader io.Reader, size int64, contentType string) (string, error) {
	_, err := p.Client.PutObject(ctx, p.Bucket, name, reader, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", err
	}
	return p.GetURL(name), nil
}

func (p *MinioStorageProvider) Open(ctx context.Context, name string) (io.ReadCloser, error) {
	obj, err := p.Client.GetObject(ctx, p.Bucket, name, minio.GetObjectOptions{})
	if err != nil {
		return nil, err
	}
	// GetObject 是惰性的，Stat 才会真正发请求
	if _, err := obj.Stat(); err != nil {
		obj.Close()
		return nil, err
	}
	return obj, nil
}

func (p *MinioStorageProvider) GetURL(name string) string {
	return "/" + p.Bucket + "/" + name
}

// OSSStorageProvider 阿里云 OSS
type OSSStorageProvider struct {
	Endpoint string
	Bucket   *oss.Bucket
}

func NewOSSStorageProvider(cfg *config.StorageConfig) (*OSSStorageProvider, error) {
	client, err := oss.New(cfg.OSSEndpoint, cfg.OSSAccessKey, cfg.OSSSecretKey)
	if err != nil {
		return nil, err
	}
	bucket, err := client.Bucket(cfg.OSSBucket)
	if err != nil {
		return nil, err
	}
	return &OSSStorageProvider{Endpoint: cfg.OSSEndpoint, Bucket: bucket}, nil
}

func (p *OSSStorageProvider) Upload(ctx context.Context, name string, reader io.Reader, size int64, contentType string) (string, error) {
	if err := p.Bucket.PutObject(name, reader, oss.ContentType(contentType), oss.WithContext(ctx)); err != nil {
		return "", err
	}
	return p.GetURL(name), nil
}

func (p *OSSStorageProvider) Open(ctx context.Context, name string) (io.ReadCloser, error) {
	return p.Bucket.GetObject(name, oss.WithContext(ctx))
}

func (p *OSSStorageProvider) GetURL(name string) string {
	return fmt.Sprintf("https://%s.%s/%s", p.Bucket.BucketName, p.Endpoint, name)
}

// StorageService 按配置选择存储后端
type StorageService struct {
	Provider StorageProvider
}

func NewStorageService(cfg *config.StorageConfig) (*StorageService, error) {
	var (
		provider StorageProvider
		err      error
	)
	switch cfg.Type {
	case util.StorageMinio:
		provider, err = NewMinioStorageProvider(cfg)
	case util.StorageOSS:
		provider, err = NewOSSStorageProvider(cfg)
	case util.StorageLocal, "":
		provider = &LocalStorageProvider{Root: cfg.LocalPath}
	default:
		return nil, fmt.Errorf("unsupported storage type %q", cfg.Type)
	}
	if err != nil {
		return nil, fmt.Errorf("init %s storage: %w", cfg.Type, err)
	}
	return &StorageService{Provider: provider}, nil
}

func (s *StorageService) Upload(ctx context.Context, name string, reader io.Reader, size int64, contentType string) (string, error) {
	return s.Provider.Upload(ctx, name, reader, size, contentType)
}

func (s *StorageService) Open(ctx context.Context, name string) (io.ReadCloser, error) {
	return s.Provider.Open(ctx, name)
}

func (s *StorageService) GetURL(name string) string {
	return s.Provider.GetURL(name)
}
