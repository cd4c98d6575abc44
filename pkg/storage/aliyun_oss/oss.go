package aliyun_oss

import (
	"bytes"
	"context"
	"net/http"
	"time"

	"github.com/haierkeys/fast-note-pad/pkg/fileurl"

	"github.com/aliyun/aliyun-oss-go-sdk/oss"
	"github.com/pkg/errors"
)

type Config struct {
	Endpoint        string `yaml:"endpoint"`
	BucketName      string `yaml:"bucket-name"`
	AccessKeyID     string `yaml:"access-key-id"`
	AccessKeySecret string `yaml:"access-key-secret"`
	CustomPath      string `yaml:"custom-path"`
}

type OSS struct {
	Client *oss.Client
	Bucket *oss.Bucket
	Config *Config
}

func NewClient(conf *Config) (*OSS, error) {
	client, err := oss.New(conf.Endpoint, conf.AccessKeyID, conf.AccessKeySecret)
	if err != nil {
		return nil, errors.Wrap(err, "aliyun_oss")
	}
	bucket, err := client.Bucket(conf.BucketName)
	if err != nil {
		return nil, errors.Wrap(err, "aliyun_oss")
	}
	return &OSS{Client: client, Bucket: bucket, Config: conf}, nil
}

func (p *OSS) SendContent(ctx context.Context, fileKey string, content []byte, modTime time.Time) (string, error) {
	fileKey = fileurl.ObjectKey(p.Config.CustomPath, fileKey)

	options := []oss.Option{
		oss.WithContext(ctx),
		oss.ContentType("application/json"),
	}
	if !modTime.IsZero() {
		options = append(options, oss.Meta("modification-time", modTime.UTC().Format(http.TimeFormat)))
	}

	if err := p.Bucket.PutObject(fileKey, bytes.NewReader(content), options...); err != nil {
		return "", errors.Wrap(err, "aliyun_oss")
	}
	return fileKey, nil
}

func (p *OSS) Delete(ctx context.Context, fileKey string) error {
	fileKey = fileurl.ObjectKey(p.Config.CustomPath, fileKey)
	return errors.Wrap(p.Bucket.DeleteObject(fileKey, oss.WithContext(ctx)), "aliyun_oss")
}
