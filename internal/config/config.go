package config

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig
	Log       LogConfig `mapstructure:"log"`
	Database  DatabaseConfig
	Redis     RedisConfig
	Cache     CacheConfig `mapstructure:"cache"`
	JWT       JWTConfig
	Storage   StorageConfig
	Catalog   CatalogConfig   `mapstructure:"catalog"`
	Sandbox   SandboxConfig   `mapstructure:"sandbox"`
	Sessions  SessionConfig   `mapstructure:"sessions"`
	Network   NetworkConfig   `mapstructure:"network"`
	Tracing   TracingConfig   `mapstructure:"tracing"`
	CORS      CORSConfig      `mapstructure:"cors"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`

	// 配置文件绝对路径，供热加载监听
	File string `mapstructure:"-"`
}

type ServerConfig struct {
	Port string
	Mode string
}

type LogConfig struct {
	Level      string `mapstructure:"level"`
	File       string `mapstructure:"file"`
	MaxSizeMB  int    `mapstructure:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAgeDays int    `mapstructure:"max_age_days"`
}

// DatabaseConfig Driver 为 memory 时不连接数据库
type DatabaseConfig struct {
	Driver   string `mapstructure:"driver"`
	Host     string
	Port     int
	User     string
	Password string
	DBName   string `mapstructure:"dbname"`
	Charset  string
	SSLMode  string `mapstructure:"sslmode"`
	Path     string `mapstructure:"path"`
}

type RedisConfig struct {
	Enabled  bool `mapstructure:"enabled"`
	Host     string
	Port     int
	Password string
	DB       int
}

type CacheConfig struct {
	TTLMinutes int `mapstructure:"ttl_minutes"`
}

type JWTConfig struct {
	Secret     string        `mapstructure:"secret"`
	ExpireTime time.Duration `mapstructure:"expire_hours"`
}

type StorageConfig struct {
	Type          string `mapstructure:"type"`
	LocalPath     string `mapstructure:"local_path"`
	MinioEndpoint string `mapstructure:"minio_endpoint"`
	MinioAccessID string `mapstructure:"minio_access_key"`
	MinioSecret   string `mapstructure:"minio_secret_key"`
	MinioBucket   string `mapstructure:"minio_bucket"`
	MinioSecure   bool   `mapstructure:"minio_secure"`
	OSSEndpoint   string `mapstructure:"oss_endpoint"`
	OSSAccessKey  string `mapstructure:"oss_access_key"`
	OSSSecretKey  string `mapstructure:"oss_secret_key"`
	OSSBucket     string `mapstructure:"oss_bucket"`
}

// CatalogConfig Bundle 为空时只加载内置种子内容
type CatalogConfig struct {
	Bundle string `mapstructure:"bundle"`
}

// SandboxConfig MaxMemoryMB 为单次执行允许的堆增长，MaxConcurrent 为同时执行的脚本数
type SandboxConfig struct {
	TimeoutMs     int      `mapstructure:"timeout_ms"`
	MaxCodeBytes  int      `mapstructure:"max_code_bytes"`
	MaxMemoryMB   int      `mapstructure:"max_memory_mb"`
	MaxConcurrent int      `mapstructure:"max_concurrent"`
	Denylist      []string `mapstructure:"denylist"`
}

type SessionConfig struct {
	TTLMinutes int `mapstructure:"ttl_minutes"`
}

type NetworkConfig struct {
	PublicIPURL        string `mapstructure:"public_ip_url"`
	JSONPlaceholderURL string `mapstructure:"jsonplaceholder_url"`
	TimeoutSeconds     int    `mapstructure:"timeout_seconds"`
}

type TracingConfig struct {
	Enabled           bool   `mapstructure:"enabled"`
	CollectorEndpoint string `mapstructure:"collector_endpoint"`
}

// CORSConfig allowed_origins 中的 "*" 表示任意来源，此时不返回 Allow-Credentials
type CORSConfig struct {
	AllowedOrigins   []string `mapstructure:"allowed_origins"`
	AllowCredentials bool     `mapstructure:"allow_credentials"`
	MaxAgeSeconds    int      `mapstructure:"max_age_seconds"`
}

// RateLimitConfig max_requests<=0 时关闭限流；skip_paths 按前缀匹配
type RateLimitConfig struct {
	MaxRequests   int      `mapstructure:"max_requests"`
	WindowMinutes int      `mapstructure:"window_minutes"`
	SkipPaths     []string `mapstructure:"skip_paths"`
}

func (c RateLimitConfig) Window() time.Duration {
	return time.Duration(c.WindowMinutes) * time.Minute
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", "3000")
	v.SetDefault("server.mode", "debug")

	v.SetDefault("log.file", "logs/app.log")
	v.SetDefault("log.max_size_mb", 100)
	v.SetDefault("log.max_backups", 5)
	v.SetDefault("log.max_age_days", 30)

	v.SetDefault("database.driver", "memory")
	v.SetDefault("database.charset", "utf8mb4")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.path", "data/creai.db")

	v.SetDefault("redis.enabled", false)
	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("cache.ttl_minutes", 10)

	v.SetDefault("jwt.secret", "dev-secret-change-me")
	v.SetDefault("jwt.expire_hours", 24)

	v.SetDefault("storage.type", "local")
	v.SetDefault("storage.local_path", "catalog")

	v.SetDefault("sandbox.timeout_ms", 2000)
	v.SetDefault("sandbox.max_code_bytes", 16*1024)
	v.SetDefault("sandbox.max_memory_mb", 64)
	v.SetDefault("sandbox.max_concurrent", 4)
	v.SetDefault("sandbox.denylist", []string{"fetch", "XMLHttpRequest", "import"})

	v.SetDefault("sessions.ttl_minutes", 60)

	v.SetDefault("network.public_ip_url", "https://api.ipify.org?format=json")
	v.SetDefault("network.jsonplaceholder_url", "https://jsonplaceholder.typicode.com")
	v.SetDefault("network.timeout_seconds", 5)

	v.SetDefault("cors.allowed_origins", []string{"http://localhost:5173"})
	v.SetDefault("cors.allow_credentials", true)
	v.SetDefault("cors.max_age_seconds", 600)
	v.SetDefault("rate_limit.max_requests", 600)
	v.SetDefault("rate_limit.window_minutes", 1)
	v.SetDefault("rate_limit.skip_paths", []string{"/health", "/metrics", "/swagger"})
}

// LoadConfig 从 path 目录读取 config.yaml；文件缺失时使用默认值与环境变量
func LoadConfig(path string) (*Config, error) {
	v := viper.New()
	v.AddConfigPath(path)
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	v.SetEnvPrefix("CREAI_EDU")
	v.AutomaticEnv()
	setDefaults(v)

	// Database
	v.BindEnv("database.driver", "DATABASE_DRIVER")
	v.BindEnv("database.host", "DATABASE_HOST")
	v.BindEnv("database.port", "DATABASE_PORT")
	v.BindEnv("database.user", "DATABASE_USER")
	v.BindEnv("database.password", "DATABASE_PASSWORD")
	v.BindEnv("database.dbname", "DATABASE_NAME")

	// JWT
	v.BindEnv("jwt.secret", "JWT_SECRET")

	// Redis
	v.BindEnv("redis.enabled", "REDIS_ENABLED")
	v.BindEnv("redis.host", "REDIS_HOST")
	v.BindEnv("redis.port", "REDIS_PORT")
	v.BindEnv("redis.password", "REDIS_PASSWORD")

	// Server
	v.BindEnv("server.mode", "SERVER_MODE")
	v.BindEnv("server.port", "PORT")

	// Storage
	v.BindEnv("storage.type", "STORAGE_TYPE")
	v.BindEnv("storage.minio_endpoint", "MINIO_ENDPOINT")
	v.BindEnv("storage.minio_access_key", "MINIO_ACCESS_KEY")
	v.BindEnv("storage.minio_secret_key", "MINIO_SECRET_KEY")
	v.BindEnv("storage.minio_bucket", "MINIO_BUCKET")
	v.BindEnv("storage.oss_endpoint", "OSS_ENDPOINT")
	v.BindEnv("storage.oss_access_key", "OSS_ACCESS_KEY")
	v.BindEnv("storage.oss_secret_key", "OSS_SECRET_KEY")
	v.BindEnv("storage.oss_bucket", "OSS_BUCKET")
	v.BindEnv("catalog.bundle", "CATALOG_BUNDLE")

	// Tracing
	v.BindEnv("tracing.enabled", "TRACING_ENABLED")
	v.BindEnv("tracing.collector_endpoint", "TRACING_COLLECTOR_ENDPOINT")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if used := v.ConfigFileUsed(); used != "" {
		if abs, err := filepath.Abs(used); err == nil {
			cfg.File = abs
		}
	}

	cfg.JWT.ExpireTime = cfg.JWT.ExpireTime * time.Hour

	// 生产环境校验 JWT Secret 强度
	if cfg.Server.Mode == "release" && len(cfg.JWT.Secret) < 32 {
		return nil, fmt.Errorf("JWT secret is too short (%d chars), must be at least 32 characters in release mode", len(cfg.JWT.Secret))
	}

	return &cfg, nil
}

func (c *Config) SandboxTimeout() time.Duration {
	return time.Duration(c.Sandbox.TimeoutMs) * time.Millisecond
}

func (c *Config) SessionTTL() time.Duration {
	return time.Duration(c.Sessions.TTLMinutes) * time.Minute
}

func (c *Config) CacheTTL() time.Duration {
	return time.Duration(c.Cache.TTLMinutes) * time.Minute
}

func (c *Config) NetworkTimeout() time.Duration {
	return time.Duration(c.Network.TimeoutSeconds) * time.Second
}
