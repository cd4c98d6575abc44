// Package storage 备份快照的存储后端
package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/haierkeys/fast-note-pad/pkg/storage/aliyun_oss"
	"github.com/haierkeys/fast-note-pad/pkg/storage/aws_s3"
	"github.com/haierkeys/fast-note-pad/pkg/storage/local_fs"
	"github.com/haierkeys/fast-note-pad/pkg/storage/webdav"

	"github.com/pkg/errors"
	"go.uber.org/zap"
)

type Type = string

const (
	LOCAL  Type = "localfs"
	S3     Type = "s3"
	R2     Type = "r2"
	MinIO  Type = "minio"
	OSS    Type = "oss"
	WebDAV Type = "webdav"
)

// StorageTypeMap 支持的存储类型
var StorageTypeMap = map[Type]bool{
	LOCAL:  true,
	S3:     true,
	R2:     true,
	MinIO:  true,
	OSS:    true,
	WebDAV: true,
}

// ErrInvalidStorageType 不支持的存储类型
var ErrInvalidStorageType = errors.New("invalid storage type")

// Config Unified storage configuration
// Config 统一的存储配置
type Config struct {
	Type Type `yaml:"type" default:"localfs"`

	// CustomPath 对象键前缀
	CustomPath string `yaml:"custom-path"`

	// Cloud Storage (S3/OSS/MinIO/R2)
	Endpoint        string `yaml:"endpoint"`
	Region          string `yaml:"region"`
	BucketName      string `yaml:"bucket-name"`
	AccessKeyID     string `yaml:"access-key-id"`
	AccessKeySecret string `yaml:"access-key-secret"`
	AccountID       string `yaml:"account-id"` // Cloudflare R2 specific

	// WebDAV
	User     string `yaml:"user"`
	Password string `yaml:"password"`

	// Local FS
	SavePath string `yaml:"save-path" default:"storage/backup"`
}

// Storager 存储后端
type Storager interface {
	// SendContent 写入内容并返回最终的对象路径
	SendContent(ctx context.Context, pathKey string, content []byte, modTime time.Time) (string, error)
	// Delete 删除对象，对象不存在不视为错误
	Delete(ctx context.Context, pathKey string) error
}

// NewClient 根据配置类型创建存储后端
func NewClient(config *Config, lg *zap.Logger) (Storager, error) {
	if config == nil {
		return nil, ErrInvalidStorageType
	}
	if lg == nil {
		lg = zap.NewNop()
	}

	switch config.Type {
	case LOCAL:
		return local_fs.NewClient(&local_fs.Config{
			SavePath:   config.SavePath,
			CustomPath: config.CustomPath,
		})
	case S3, MinIO, R2:
		cfg := &aws_s3.Config{
			Endpoint:        config.Endpoint,
			Region:          config.Region,
			BucketName:      config.BucketName,
			AccessKeyID:     config.AccessKeyID,
			AccessKeySecret: config.AccessKeySecret,
			CustomPath:      config.CustomPath,
		}
		switch config.Type {
		case MinIO:
			cfg.UsePathStyle = true
		case R2:
			if cfg.Endpoint == "" {
				cfg.Endpoint = fmt.Sprintf("https://%s.r2.cloudflarestorage.com", config.AccountID)
			}
			if cfg.Region == "" {
				cfg.Region = "auto"
			}
		}
		return aws_s3.NewClient(cfg, aws_s3.WithLogger(lg.Named(config.Type)))
	case OSS:
		return aliyun_oss.NewClient(&aliyun_oss.Config{
			Endpoint:        config.Endpoint,
			BucketName:      config.BucketName,
			AccessKeyID:     config.AccessKeyID,
			AccessKeySecret: config.AccessKeySecret,
			CustomPath:      config.CustomPath,
		})
	case WebDAV:
		return webdav.NewClient(&webdav.Config{
			Endpoint:   config.Endpoint,
			User:       config.User,
			Password:   config.Password,
			CustomPath: config.CustomPath,
		})
	}
	return nil, errors.Wrapf(ErrInvalidStorageType, "%q", config.Type)
}
