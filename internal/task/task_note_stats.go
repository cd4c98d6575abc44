package task

import (
	"context"
	"time"

	"github.com/haierkeys/fast-note-pad/internal/app"
	"github.com/haierkeys/fast-note-pad/internal/domain"
	"github.com/haierkeys/fast-note-pad/pkg/logger"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

// NoteStatsTask 定期统计笔记数量并发布到 prometheus
type NoteStatsTask struct {
	repo     domain.NoteRepository
	logger   *zap.Logger
	interval time.Duration
	gauge    *prometheus.GaugeVec
}

// Name 返回任务名称
func (t *NoteStatsTask) Name() string {
	return "NoteStats"
}

// LoopInterval 返回执行间隔
func (t *NoteStatsTask) LoopInterval() time.Duration {
	return t.interval
}

// IsStartupRun 是否立即执行一次
func (t *NoteStatsTask) IsStartupRun() bool {
	return true
}

// Run 执行统计
func (t *NoteStatsTask) Run(ctx context.Context) error {
	count, err := t.repo.CountAll(ctx)
	if err != nil {
		return errors.Wrap(err, "count notes")
	}

	t.gauge.WithLabelValues("all").Set(float64(count.Total))
	t.gauge.WithLabelValues("pinned").Set(float64(count.Pinned))

	t.logger.Debug("task log",
		zap.String(logger.FieldTask, t.Name()),
		zap.Int64("total", count.Total),
		zap.Int64("pinned", count.Pinned))

	return nil
}

// NewNoteStatsTask 创建笔记统计任务，指标注册到容器的 Registry
func NewNoteStatsTask(a *app.App) (Task, error) {
	cfg := a.Config()

	gauge := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: cfg.Metrics.Namespace,
		Name:      "notes_total",
		Help:      "Number of stored notes.",
	}, []string{"kind"})
	if err := a.Registry.Register(gauge); err != nil {
		return nil, errors.Wrap(err, "register notes gauge")
	}

	return &NoteStatsTask{
		repo:     a.NoteRepo,
		logger:   a.Logger(),
		interval: cfg.GetStatsInterval(),
		gauge:    gauge,
	}, nil
}

func init() {
	Register(NewNoteStatsTask)
}
