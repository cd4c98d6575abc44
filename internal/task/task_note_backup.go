package task

import (
	"context"
	"time"

	"github.com/haierkeys/fast-note-pad/internal/app"
	"github.com/haierkeys/fast-note-pad/internal/service"
	"github.com/haierkeys/fast-note-pad/pkg/logger"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

// NoteBackupTask 定期将笔记快照写入备份存储
type NoteBackupTask struct {
	app      *app.App
	backup   service.BackupService
	logger   *zap.Logger
	interval time.Duration

	runs        *prometheus.CounterVec
	lastSuccess prometheus.Gauge
}

// Name 返回任务名称
func (t *NoteBackupTask) Name() string {
	return "NoteBackup"
}

// LoopInterval 返回执行间隔
func (t *NoteBackupTask) LoopInterval() time.Duration {
	return t.interval
}

// IsStartupRun 启动时不立即备份，等待第一个间隔
func (t *NoteBackupTask) IsStartupRun() bool {
	return false
}

// Run 执行一次备份
func (t *NoteBackupTask) Run(ctx context.Context) error {
	if t.app.IsShuttingDown() {
		return nil
	}
	// 关闭时等待进行中的备份完成
	defer t.app.TrackOperation()()

	start := time.Now()

	result, err := t.backup.Run(ctx)
	if err != nil {
		t.runs.WithLabelValues("error").Inc()
		return errors.Wrap(err, "note backup")
	}

	t.runs.WithLabelValues("ok").Inc()
	t.lastSuccess.SetToCurrentTime()

	t.logger.Info("task log",
		zap.String(logger.FieldTask, t.Name()),
		zap.String("stamp", result.Stamp),
		zap.Int("owners", result.Owners),
		zap.Int("notes", result.Notes),
		zap.Duration("took", time.Since(start)))

	return nil
}

// NewNoteBackupTask 创建备份任务，未启用备份时返回 nil
func NewNoteBackupTask(a *app.App) (Task, error) {
	if a.BackupService == nil {
		return nil, nil
	}
	cfg := a.Config()

	runs := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: cfg.Metrics.Namespace,
		Name:      "backup_runs_total",
		Help:      "Number of note backup runs by result.",
	}, []string{"result"})
	lastSuccess := prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: cfg.Metrics.Namespace,
		Name:      "backup_last_success_timestamp_seconds",
		Help:      "Unix time of the last successful note backup.",
	})
	for _, c := range []prometheus.Collector{runs, lastSuccess} {
		if err := a.Registry.Register(c); err != nil {
			return nil, errors.Wrap(err, "register backup metrics")
		}
	}

	return &NoteBackupTask{
		app:         a,
		backup:      a.BackupService,
		logger:      a.Logger(),
		interval:    cfg.GetBackupInterval(),
		runs:        runs,
		lastSuccess: lastSuccess,
	}, nil
}

func init() {
	Register(NewNoteBackupTask)
}
