package aws_s3

import (
	"bytes"
	"context"
	"time"

	"github.com/haierkeys/fast-note-pad/pkg/fileurl"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// Config S3 及兼容服务（MinIO、Cloudflare R2）的连接配置
type Config struct {
	Endpoint        string `yaml:"endpoint"`
	Region          string `yaml:"region"`
	BucketName      string `yaml:"bucket-name"`
	AccessKeyID     string `yaml:"access-key-id"`
	AccessKeySecret string `yaml:"access-key-secret"`
	CustomPath      string `yaml:"custom-path"`
	// UsePathStyle 使用 path-style 地址（MinIO 需要）
	UsePathStyle bool `yaml:"use-path-style"`
}

type S3 struct {
	S3Client *s3.Client
	Config   *Config
	logger   *zap.Logger
}

// Option 配置选项函数类型
type Option func(*S3)

// WithLogger 设置日志器
func WithLogger(logger *zap.Logger) Option {
	return func(s *S3) {
		s.logger = logger
	}
}

// NewClient 创建 S3 存储实例
// opts 可选参数用于配置日志器等选项
func NewClient(conf *Config, opts ...Option) (*S3, error) {
	if conf.BucketName == "" {
		return nil, errors.New("aws_s3: bucket-name is required")
	}

	cfg, err := config.LoadDefaultConfig(context.Background(),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(conf.AccessKeyID, conf.AccessKeySecret, "")),
		config.WithRegion(conf.Region),
	)
	if err != nil {
		return nil, errors.Wrap(err, "aws_s3")
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		if conf.Endpoint != "" {
			o.BaseEndpoint = aws.String(conf.Endpoint)
		}
		o.UsePathStyle = conf.UsePathStyle
	})

	s := &S3{
		S3Client: client,
		Config:   conf,
		logger:   zap.NewNop(), // 默认空日志器
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// SendContent 上传内容，修改时间写入对象元数据
func (p *S3) SendContent(ctx context.Context, fileKey string, content []byte, modTime time.Time) (string, error) {
	fileKey = fileurl.ObjectKey(p.Config.CustomPath, fileKey)

	input := &s3.PutObjectInput{
		Bucket:            aws.String(p.Config.BucketName),
		Key:               aws.String(fileKey),
		Body:              bytes.NewReader(content),
		ContentType:       aws.String("application/json"),
		ChecksumAlgorithm: types.ChecksumAlgorithmSha256,
	}
	if !modTime.IsZero() {
		input.Metadata = map[string]string{
			"modification-time": modTime.Format(time.RFC3339),
		}
	}

	if _, err := p.S3Client.PutObject(ctx, input); err != nil {
		var noBucket *types.NoSuchBucket
		if errors.As(err, &noBucket) {
			p.logger.Error("bucket does not exist", zap.String("bucket", p.Config.BucketName))
		}
		return "", errors.Wrap(err, "aws_s3")
	}

	p.logger.Debug("object uploaded", zap.String("key", fileKey), zap.Int("size", len(content)))
	return fileurl.PathSuffixCheckAdd(p.Config.BucketName, "/") + fileKey, nil
}

func (p *S3) Delete(ctx context.Context, fileKey string) error {
	fileKey = fileurl.ObjectKey(p.Config.CustomPath, fileKey)

	_, err := p.S3Client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(p.Config.BucketName),
		Key:    aws.String(fileKey),
	})
	return errors.Wrap(err, "aws_s3")
}
