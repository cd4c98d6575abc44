package task

import (
	"context"
	"fmt"
	"time"

	"github.com/haierkeys/fast-note-pad/pkg/logger"
	"github.com/haierkeys/fast-note-pad/pkg/safe_close"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Task 定义任务接口
type Task interface {
	Name() string                  // 任务名称
	Run(ctx context.Context) error // 执行任务
	LoopInterval() time.Duration   // 执行间隔
	IsStartupRun() bool            // 是否立即执行一次
}

// Scheduler 任务调度器，基于 cron 的 @every 调度
type Scheduler struct {
	logger *zap.Logger
	tasks  []Task
	sc     *safe_close.SafeClose
	cron   *cron.Cron
}

// NewScheduler 创建任务调度器
func NewScheduler(lg *zap.Logger, sc *safe_close.SafeClose) *Scheduler {
	cl := &cronLogger{logger: lg}
	return &Scheduler{
		logger: lg,
		tasks:  make([]Task, 0),
		sc:     sc,
		cron: cron.New(
			cron.WithLogger(cl),
			// 上一次未执行完时跳过本次，避免同一任务并发执行
			cron.WithChain(cron.Recover(cl), cron.SkipIfStillRunning(cl)),
		),
	}
}

// AddTask 添加任务
func (s *Scheduler) AddTask(task Task) {
	s.tasks = append(s.tasks, task)
}

// Start 启动所有任务，关闭信号到达后等待运行中的任务结束
func (s *Scheduler) Start() {
	if len(s.tasks) == 0 {
		s.logger.Info("no tasks to schedule")
		return
	}

	s.logger.Info("tasks starting", zap.Int("count", len(s.tasks)))

	ctx, cancel := context.WithCancel(context.Background())

	for _, task := range s.tasks {
		s.startTask(ctx, task)
	}

	s.cron.Start()

	s.sc.Attach(func(done func(), closeSignal <-chan struct{}) {
		defer done()
		<-closeSignal
		cancel()
		<-s.cron.Stop().Done()
		s.logger.Info("tasks stopped")
	})
}

// startTask 启动单个任务
func (s *Scheduler) startTask(ctx context.Context, task Task) {
	run := func(kind string) {
		defer func() {
			if r := recover(); r != nil {
				s.logger.Error("task panic",
					zap.String(logger.FieldTask, task.Name()),
					zap.String("type", kind),
					zap.Any("panic", r),
					zap.Stack("stack"))
			}
		}()
		if err := task.Run(ctx); err != nil {
			s.logger.Error("task running error",
				zap.String(logger.FieldTask, task.Name()),
				zap.String("type", kind),
				zap.Error(err))
		}
	}

	// 如果任务需要立即执行
	if task.IsStartupRun() {
		s.logger.Info("task running", zap.String(logger.FieldTask, task.Name()), zap.Bool("startupRun", true))
		go run("startupRun")
	}

	if task.LoopInterval() <= 0 {
		return
	}

	spec := fmt.Sprintf("@every %s", task.LoopInterval())
	if _, err := s.cron.AddFunc(spec, func() { run("loopRun") }); err != nil {
		s.logger.Error("task schedule error",
			zap.String(logger.FieldTask, task.Name()),
			zap.String("spec", spec),
			zap.Error(err))
	}
}

// cronLogger 将 cron 的日志接口适配到 zap
type cronLogger struct {
	logger *zap.Logger
}

func (l *cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.logger.Sugar().Debugw("cron: "+msg, keysAndValues...)
}

func (l *cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.logger.Sugar().Errorw("cron: "+msg, append(keysAndValues, "error", err)...)
}
