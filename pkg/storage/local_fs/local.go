package local_fs

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/haierkeys/fast-note-pad/pkg/fileurl"

	"github.com/pkg/errors"
)

type Config struct {
	SavePath   string `yaml:"save-path" default:"storage/backup"`
	CustomPath string `yaml:"custom-path"`
}

// LocalFS 本地目录存储
type LocalFS struct {
	Config *Config
}

func NewClient(conf *Config) (*LocalFS, error) {
	if conf == nil || conf.SavePath == "" {
		return nil, errors.New("local_fs: save-path is required")
	}
	return &LocalFS{Config: conf}, nil
}

func (p *LocalFS) fullPath(fileKey string) string {
	return filepath.Join(p.Config.SavePath, filepath.FromSlash(fileurl.ObjectKey(p.Config.CustomPath, fileKey)))
}

// SendContent 写入文件，目录不存在时创建，并设置修改时间
func (p *LocalFS) SendContent(_ context.Context, fileKey string, content []byte, modTime time.Time) (string, error) {
	dst := p.fullPath(fileKey)

	if err := fileurl.CreatePath(dst, 0754); err != nil {
		return "", errors.Wrap(err, "local_fs")
	}
	if err := os.WriteFile(dst, content, 0644); err != nil {
		return "", errors.Wrap(err, "local_fs")
	}
	if !modTime.IsZero() {
		if err := os.Chtimes(dst, modTime, modTime); err != nil {
			return "", errors.Wrap(err, "local_fs")
		}
	}
	return dst, nil
}

func (p *LocalFS) Delete(_ context.Context, fileKey string) error {
	dst := p.fullPath(fileKey)
	if fileurl.IsExist(dst) {
		return os.Remove(dst)
	}
	return nil
}
