package cmd

import (
	"os"
	"os/signal"
	"strings"
	"sync"
	"syscall"
	"time"

	internalApp "github.com/haierkeys/fast-note-pad/internal/app"
	"github.com/haierkeys/fast-note-pad/pkg/fileurl"
	"github.com/haierkeys/fast-note-pad/pkg/util"

	"github.com/pkg/errors"
	"github.com/radovskyb/watcher"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type runFlags struct {
	dir     string // Project root directory // 项目根目录
	port    string // Startup port // 启动端口
	runMode string // Startup mode // 启动模式
	config  string // Specified configuration file path // 指定要使用的配置文件路径
}

// resolveConfigPath 查找配置文件，找不到时写入内嵌的默认配置（随机生成 Token 密钥）
func resolveConfigPath(path string) (string, error) {
	if len(path) > 0 {
		return path, nil
	}

	for _, candidate := range []string{"config/config-dev.yaml", "config.yaml", "config/config.yaml"} {
		if fileurl.IsExist(candidate) {
			return candidate, nil
		}
	}

	bootstrapLogger.Warn("config file not found, creating default config")
	path = "config/config.yaml"

	content := strings.Replace(configDefault, internalApp.DefaultAuthTokenKey, util.GetRandomString(32), 1)

	if err := fileurl.CreatePath(path, os.ModePerm); err != nil {
		return "", errors.Wrap(err, "config file auto create error")
	}
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		return "", errors.Wrap(err, "config file auto create writing error")
	}

	bootstrapLogger.Info("config file auto create successfully", zap.String("path", path))
	return path, nil
}

// serverHolder 持有当前运行的 Server，配置热重载时被替换
type serverHolder struct {
	mu sync.Mutex
	s  *Server
}

func (h *serverHolder) get() *Server {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.s
}

// reload 关闭当前 Server 并按最新配置重建
func (h *serverHolder) reload(runEnv *runFlags) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.s != nil {
		h.s.sc.SendCloseSignal(nil)
		if err := h.s.sc.WaitClosed(); err != nil {
			h.s.logger.Warn("previous server closed with error", zap.Error(err))
		}
	}

	s, err := NewServer(runEnv)
	if err != nil {
		bootstrapLogger.Error("service restart err", zap.Error(err))
		h.s = nil
		return
	}
	h.s = s
}

// watchConfig 监听配置文件写入并触发热重载
func watchConfig(runEnv *runFlags, holder *serverHolder) *watcher.Watcher {
	w := watcher.New()

	// 将 SetMaxEvents 设置为 1，以便在每个监听周期中至多接收 1 个事件
	w.SetMaxEvents(1)

	// 只通知写入事件。
	w.FilterOps(watcher.Write)

	go func() {
		for {
			select {
			case event := <-w.Event:
				bootstrapLogger.Info("config watcher change", zap.String("event", event.Op.String()), zap.String("file", event.Path))
				holder.reload(runEnv)
			case err := <-w.Error:
				bootstrapLogger.Error("config watcher error", zap.Error(err))
			case <-w.Closed:
				bootstrapLogger.Info("config watcher closed")
				return
			}
		}
	}()

	if err := w.Add(runEnv.config); err != nil {
		bootstrapLogger.Error("config watcher file error", zap.Error(err))
		return w
	}

	go func() {
		if err := w.Start(time.Second * 5); err != nil {
			bootstrapLogger.Error("config watcher start error", zap.Error(err))
		}
	}()

	return w
}

func init() {
	runEnv := new(runFlags)

	var runCommand = &cobra.Command{
		Use:   "run [-c config_file] [-d working_dir] [-p port] [-m mode]",
		Short: "Run service",
		Run: func(cmd *cobra.Command, args []string) {
			if len(runEnv.dir) > 0 {
				if err := os.Chdir(runEnv.dir); err != nil {
					bootstrapLogger.Error("failed to change the current working directory", zap.Error(err))
					return
				}
				bootstrapLogger.Info("working directory changed", zap.String("dir", runEnv.dir))
			}

			configPath, err := resolveConfigPath(runEnv.config)
			if err != nil {
				bootstrapLogger.Error("config file error", zap.Error(err))
				return
			}
			runEnv.config = configPath

			s, err := NewServer(runEnv)
			if err != nil {
				bootstrapLogger.Error("api service start err", zap.Error(err))
				return
			}
			holder := &serverHolder{s: s}

			w := watchConfig(runEnv, holder)
			defer w.Close()

			quit := make(chan os.Signal, 1)
			signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
			<-quit

			s = holder.get()
			if s == nil {
				return
			}

			s.logger.Info("Received shutdown signal, initiating graceful shutdown...")
			s.sc.SendCloseSignal(nil)

			// 等待所有关闭处理器完成（包括 App Container 的优雅关闭）
			if err := s.sc.WaitClosed(); err != nil {
				s.logger.Error("Shutdown completed with error", zap.Error(err))
			} else {
				s.logger.Info("Service has been shut down gracefully.")
			}
			_ = s.logger.Sync()
		},
	}

	rootCmd.AddCommand(runCommand)
	fs := runCommand.Flags()
	fs.StringVarP(&runEnv.dir, "dir", "d", "", "run dir")
	fs.StringVarP(&runEnv.port, "port", "p", "", "run port")
	fs.StringVarP(&runEnv.runMode, "mode", "m", "", "run mode")
	fs.StringVarP(&runEnv.config, "config", "c", "", "config file")
}
