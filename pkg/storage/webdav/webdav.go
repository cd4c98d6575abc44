package webdav

import (
	"context"
	"os"
	"path"
	"time"

	"github.com/haierkeys/fast-note-pad/pkg/fileurl"

	"github.com/pkg/errors"
	"github.com/studio-b12/gowebdav"
)

// Config 结构体用于存储 WebDAV 连接信息。
type Config struct {
	Endpoint   string `yaml:"endpoint"`
	User       string `yaml:"user"`
	Password   string `yaml:"password"`
	CustomPath string `yaml:"custom-path"`
}

// WebDAV 结构体表示 WebDAV 客户端。
type WebDAV struct {
	Client *gowebdav.Client
	Config *Config
}

// NewClient 创建一个新的 WebDAV 客户端实例。连接在首次写入时建立
func NewClient(conf *Config) (*WebDAV, error) {
	if conf.Endpoint == "" {
		return nil, errors.New("webdav: endpoint is required")
	}
	return &WebDAV{
		Client: gowebdav.NewClient(conf.Endpoint, conf.User, conf.Password),
		Config: conf,
	}, nil
}

// SendContent 将内容写入 WebDAV 服务器，父目录不存在时创建。
// WebDAV 不支持设置修改时间，modTime 被忽略
func (w *WebDAV) SendContent(ctx context.Context, fileKey string, content []byte, _ time.Time) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	fileKey = "/" + fileurl.ObjectKey(w.Config.CustomPath, fileKey)

	if err := w.Client.MkdirAll(path.Dir(fileKey), 0755); err != nil {
		return "", errors.Wrap(err, "webdav")
	}
	if err := w.Client.Write(fileKey, content, os.ModePerm); err != nil {
		return "", errors.Wrap(err, "webdav")
	}
	return fileKey, nil
}

func (w *WebDAV) Delete(ctx context.Context, fileKey string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	fileKey = "/" + fileurl.ObjectKey(w.Config.CustomPath, fileKey)
	return errors.Wrap(w.Client.Remove(fileKey), "webdav")
}
