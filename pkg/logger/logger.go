// Package logger builds the zap logger used by the service
// Package logger 构建服务使用的 zap 日志器
package logger

import (
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config 日志配置
type Config struct {
	Level      string // debug / info / warn / error，参见 zapcore.ParseLevel
	File       string // 日志文件路径，为空则只输出到 stderr
	Production bool   // 文件输出是否使用 JSON 格式
}

// NewLogger 创建日志器：控制台输出 + 可选文件输出
func NewLogger(cfg Config) (*zap.Logger, error) {
	level := zapcore.InfoLevel
	if cfg.Level != "" {
		l, err := zapcore.ParseLevel(cfg.Level)
		if err != nil {
			return nil, errors.Wrapf(err, "invalid log level %q", cfg.Level)
		}
		level = l
	}

	consoleConfig := zap.NewDevelopmentEncoderConfig()
	consoleConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	consoleConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	cores := []zapcore.Core{
		zapcore.NewCore(zapcore.NewConsoleEncoder(consoleConfig), zapcore.Lock(os.Stderr), level),
	}

	if cfg.File != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.File), 0754); err != nil {
			return nil, errors.Wrap(err, "create log dir failed")
		}
		f, err := os.OpenFile(cfg.File, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			return nil, errors.Wrap(err, "open log file failed")
		}

		var enc zapcore.Encoder
		if cfg.Production {
			fileConfig := zap.NewProductionEncoderConfig()
			fileConfig.EncodeTime = zapcore.ISO8601TimeEncoder
			enc = zapcore.NewJSONEncoder(fileConfig)
		} else {
			fileConfig := zap.NewDevelopmentEncoderConfig()
			fileConfig.EncodeTime = zapcore.ISO8601TimeEncoder
			enc = zapcore.NewConsoleEncoder(fileConfig)
		}
		cores = append(cores, zapcore.NewCore(enc, zapcore.AddSync(f), level))
	}

	return zap.New(zapcore.NewTee(cores...), zap.AddCaller()), nil
}
