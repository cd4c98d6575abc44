package app

import (
	"os"
	"path/filepath"
	"time"

	"github.com/haierkeys/fast-note-pad/internal/dao"
	"github.com/haierkeys/fast-note-pad/pkg/app"
	"github.com/haierkeys/fast-note-pad/pkg/logger"
	"github.com/haierkeys/fast-note-pad/pkg/storage"
	"github.com/haierkeys/fast-note-pad/pkg/tracer"
	"github.com/haierkeys/fast-note-pad/pkg/util"

	"github.com/creasty/defaults"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// DefaultAuthTokenKey 默认配置中的 Token 密钥占位符，首次运行时替换为随机值
const DefaultAuthTokenKey = "fast-note-pad-Auth-Token"

// AppConfig 应用配置
type AppConfig struct {
	File     string         `yaml:"-"` // 配置文件路径，不序列化
	Server   ServerConfig   `yaml:"server"`
	Log      LogConfig      `yaml:"log"`
	Database DatabaseConfig `yaml:"database"`
	App      AppSettings    `yaml:"app"`
	Security SecurityConfig `yaml:"security"`
	Tracer   TracerConfig   `yaml:"tracer"`
	Metrics  MetricsConfig  `yaml:"metrics"`
	Backup   BackupConfig   `yaml:"backup"`
}

// LogConfig 日志配置
type LogConfig struct {
	// Level 日志级别，参见 zapcore.ParseLevel
	Level string `yaml:"level" default:"info"`
	// File 日志文件路径，为空时只输出到 stderr
	File string `yaml:"file" default:"storage/logs/log.log"`
	// Production 是否启用 JSON 输出
	Production bool `yaml:"production" default:"true"`
}

// ServerConfig 服务器配置
type ServerConfig struct {
	// RunMode 运行模式 debug / release
	RunMode string `yaml:"run-mode" default:"release"`
	// HttpPort HTTP 端口
	HttpPort string `yaml:"http-port" default:":9000"`
	// ReadTimeout 读取超时（秒）
	ReadTimeout int `yaml:"read-timeout" default:"60"`
	// WriteTimeout 写入超时（秒）
	WriteTimeout int `yaml:"write-timeout" default:"60"`
	// PrivateHttpListen 私有 HTTP 监听地址（metrics / pprof），为空时不启动
	PrivateHttpListen string `yaml:"private-http-listen" default:"127.0.0.1:9001"`
}

// SecurityConfig 安全配置
type SecurityConfig struct {
	AuthTokenKey string `yaml:"auth-token-key" default:"fast-note-pad-Auth-Token"`
	TokenExpiry  string `yaml:"token-expiry" default:"7d"` // Token 过期时间，支持格式：7d（天）、24h（小时）、30m（分钟）
	TokenIssuer  string `yaml:"token-issuer" default:"fast-note-pad"`
	// MachineBoundToken 密钥是否绑定本机 ID（外部认证服务签发 Token 时必须关闭）
	MachineBoundToken bool `yaml:"machine-bound-token" default:"false"`
}

// DatabaseConfig 数据库配置
type DatabaseConfig struct {
	// Type 数据库类型 sqlite / mysql / postgres
	Type string `yaml:"type" default:"sqlite"`
	// Path SQLite 数据库文件路径
	Path string `yaml:"path" default:"storage/database/db.sqlite3"`
	// UserName 用户名
	UserName string `yaml:"username"`
	// Password 密码
	Password string `yaml:"password"`
	// Host 主机
	Host string `yaml:"host"`
	// Port 端口，0 表示使用驱动默认端口
	Port int `yaml:"port"`
	// Name 数据库名
	Name string `yaml:"name"`
	// TablePrefix 表前缀
	TablePrefix string `yaml:"table-prefix"`
	// AutoMigrate 是否启用自动迁移
	AutoMigrate bool `yaml:"auto-migrate" default:"true"`
	// Charset 字符集（mysql）
	Charset string `yaml:"charset" default:"utf8mb4"`
	// SSLMode（postgres）
	SSLMode string `yaml:"ssl-mode" default:"disable"`
	// MaxIdleConns 最大闲置连接数，默认 10
	MaxIdleConns int `yaml:"max-idle-conns" default:"10"`
	// MaxOpenConns 最大打开连接数，默认 100
	MaxOpenConns int `yaml:"max-open-conns" default:"100"`
	// ConnMaxLifetime 连接最大生命周期，支持格式：30m（分钟）、1h（小时），默认 30m
	ConnMaxLifetime string `yaml:"conn-max-lifetime" default:"30m"`
	// ConnMaxIdleTime 空闲连接最大生命周期，支持格式：10m（分钟）、1h（小时），默认 10m
	ConnMaxIdleTime string `yaml:"conn-max-idle-time" default:"10m"`
}

// AppSettings 应用设置
type AppSettings struct {
	// DefaultContextTimeout 默认请求上下文超时时间（秒）
	DefaultContextTimeout int `yaml:"default-context-timeout" default:"60"`
	// RateLimitCapacity 笔记接口每秒允许的请求数，0 表示不限流
	RateLimitCapacity int64 `yaml:"rate-limit-capacity" default:"50"`
}

// TracerConfig 请求追踪配置
type TracerConfig struct {
	// Enabled 是否启用追踪
	Enabled bool `yaml:"enabled" default:"true"`
	// Header 追踪 ID 请求头名称，默认 X-Trace-ID
	Header string `yaml:"header" default:"X-Trace-ID"`
	// ServiceName 上报到 Jaeger 的服务名
	ServiceName string `yaml:"service-name" default:"fast-note-pad"`
	// AgentHostPort jaeger-agent 地址，如 127.0.0.1:6831，为空时只生成 Trace ID 不上报
	AgentHostPort string `yaml:"agent-host-port"`
	// SampleRate 采样率，0-1
	SampleRate float64 `yaml:"sample-rate" default:"1"`
}

// MetricsConfig 指标配置
type MetricsConfig struct {
	// Namespace prometheus 指标命名空间
	Namespace string `yaml:"namespace" default:"fast_note_pad"`
	// StatsInterval 笔记数量统计任务的执行间隔，支持格式：30s、5m、1h
	StatsInterval string `yaml:"stats-interval" default:"5m"`
}

// BackupConfig 定时备份配置
type BackupConfig struct {
	// Enabled 是否启用定时备份
	Enabled bool `yaml:"enabled" default:"false"`
	// Interval 备份间隔，支持格式：12h、1d
	Interval string `yaml:"interval" default:"1d"`
	// Storage 备份存储后端 localfs / s3 / r2 / minio / oss / webdav
	Storage storage.Config `yaml:"storage"`
}

// LoadConfig 从文件加载配置
// 返回配置实例和配置文件的绝对路径
func LoadConfig(f string) (*AppConfig, string, error) {
	realpath, err := filepath.Abs(f)
	if err != nil {
		return nil, "", err
	}
	realpath = filepath.Clean(realpath)

	file, err := os.ReadFile(realpath)
	if err != nil {
		return nil, realpath, errors.Wrap(err, "read config file failed")
	}

	c, err := ParseConfig(file)
	if err != nil {
		return nil, realpath, err
	}
	c.File = realpath

	return c, realpath, nil
}

// ParseConfig 解析 YAML 配置内容并填充默认值
func ParseConfig(data []byte) (*AppConfig, error) {
	c := new(AppConfig)

	// 设置默认值
	if err := defaults.Set(c); err != nil {
		return nil, errors.Wrap(err, "set default config failed")
	}

	if err := yaml.Unmarshal(data, c); err != nil {
		return nil, errors.Wrap(err, "parse config file failed")
	}

	// 不再二次调用 defaults.Set：它会把显式配置的 false / 0 覆盖回默认值
	if c.Database.Type == "" {
		c.Database.Type = "sqlite"
	}

	if c.Database.Type != "sqlite" && c.Database.Type != "mysql" && c.Database.Type != "postgres" {
		return nil, errors.Errorf("unsupported database type %q", c.Database.Type)
	}

	if c.Backup.Enabled && !storage.StorageTypeMap[c.Backup.Storage.Type] {
		return nil, errors.Errorf("unsupported backup storage type %q", c.Backup.Storage.Type)
	}

	return c, nil
}

// Save 保存配置到文件
func (c *AppConfig) Save() error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return errors.Wrap(err, "marshal config failed")
	}

	err = os.WriteFile(c.File, data, 0644)
	if err != nil {
		return errors.Wrap(err, "write config file failed")
	}

	return nil
}

// GetTokenExpiry 获取 Token 过期时间
func (c *AppConfig) GetTokenExpiry() time.Duration {
	if expiry, err := util.ParseDuration(c.Security.TokenExpiry); err == nil && expiry > 0 {
		return expiry
	}
	return 7 * 24 * time.Hour
}

// GetContextTimeout 获取请求上下文超时时间
func (c *AppConfig) GetContextTimeout() time.Duration {
	return time.Duration(c.App.DefaultContextTimeout) * time.Second
}

// GetStatsInterval 获取统计任务执行间隔
func (c *AppConfig) GetStatsInterval() time.Duration {
	if d, err := util.ParseDuration(c.Metrics.StatsInterval); err == nil && d > 0 {
		return d
	}
	return 5 * time.Minute
}

// GetBackupInterval 获取备份任务执行间隔
func (c *AppConfig) GetBackupInterval() time.Duration {
	if d, err := util.ParseDuration(c.Backup.Interval); err == nil && d > 0 {
		return d
	}
	return 24 * time.Hour
}

// GetTokenConfig 转换为 TokenManager 配置
func (c *AppConfig) GetTokenConfig() app.TokenConfig {
	return app.TokenConfig{
		SecretKey:    c.Security.AuthTokenKey,
		Expiry:       c.GetTokenExpiry(),
		Issuer:       c.Security.TokenIssuer,
		MachineBound: c.Security.MachineBoundToken,
	}
}

// GetTracerConfig 获取 Jaeger 配置，追踪关闭时不设置上报地址
func (c *AppConfig) GetTracerConfig() tracer.Config {
	cfg := tracer.Config{
		ServiceName: c.Tracer.ServiceName,
		SampleRate:  c.Tracer.SampleRate,
	}
	if c.Tracer.Enabled {
		cfg.AgentHostPort = c.Tracer.AgentHostPort
	}
	return cfg
}

// GetLoggerConfig 转换为日志配置
func (c *AppConfig) GetLoggerConfig() logger.Config {
	return logger.Config{
		Level:      c.Log.Level,
		File:       c.Log.File,
		Production: c.Log.Production,
	}
}

// GetDatabaseConfig 转换为 DAO 数据库配置
func (c *AppConfig) GetDatabaseConfig() dao.DatabaseConfig {
	return dao.DatabaseConfig{
		Type:            c.Database.Type,
		Path:            c.Database.Path,
		UserName:        c.Database.UserName,
		Password:        c.Database.Password,
		Host:            c.Database.Host,
		Port:            c.Database.Port,
		Name:            c.Database.Name,
		TablePrefix:     c.Database.TablePrefix,
		AutoMigrate:     c.Database.AutoMigrate,
		Charset:         c.Database.Charset,
		SSLMode:         c.Database.SSLMode,
		MaxIdleConns:    c.Database.MaxIdleConns,
		MaxOpenConns:    c.Database.MaxOpenConns,
		ConnMaxLifetime: c.Database.ConnMaxLifetime,
		ConnMaxIdleTime: c.Database.ConnMaxIdleTime,
		RunMode:         c.Server.RunMode,
	}
}
