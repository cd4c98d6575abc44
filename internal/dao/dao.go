// Package dao 实现数据访问层
package dao

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/haierkeys/fast-note-pad/internal/model"
	"github.com/haierkeys/fast-note-pad/pkg/fileurl"
	"github.com/haierkeys/fast-note-pad/pkg/util"

	"github.com/glebarez/sqlite"
	"github.com/haierkeys/gormTracing"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"gorm.io/gorm/schema"
)

// DatabaseConfig 数据库配置（由 app.AppConfig 转换而来）
type DatabaseConfig struct {
	Type            string // sqlite / mysql / postgres
	Path            string // SQLite 数据库文件路径，":memory:" 为内存库
	UserName        string
	Password        string
	Host            string
	Port            int
	Name            string
	TablePrefix     string
	AutoMigrate     bool
	Charset         string
	SSLMode         string
	MaxIdleConns    int
	MaxOpenConns    int
	ConnMaxLifetime string
	ConnMaxIdleTime string
	RunMode         string
}

type Dao struct {
	Db     *gorm.DB
	config *DatabaseConfig
	logger *zap.Logger
}

// Option Dao 可选配置
type Option func(*Dao)

// WithConfig 注入数据库配置
func WithConfig(cfg *DatabaseConfig) Option {
	return func(d *Dao) {
		d.config = cfg
	}
}

// WithLogger 注入日志器
func WithLogger(lg *zap.Logger) Option {
	return func(d *Dao) {
		d.logger = lg
	}
}

// New 创建 Dao 实例
func New(db *gorm.DB, opts ...Option) *Dao {
	d := &Dao{Db: db, logger: zap.NewNop()}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// WithContext 返回绑定请求上下文的会话，超时与取消会传递到驱动
func (d *Dao) WithContext(ctx context.Context) *gorm.DB {
	return d.Db.WithContext(ctx)
}

// Logger 获取日志器
func (d *Dao) Logger() *zap.Logger {
	return d.logger
}

// NewDBEngineWithConfig 创建数据库连接，并按配置执行自动迁移
func NewDBEngineWithConfig(c DatabaseConfig, lg *zap.Logger) (*gorm.DB, error) {
	dialector, err := newDialector(c)
	if err != nil {
		return nil, err
	}

	gormLogger := logger.Default.LogMode(logger.Silent)
	if c.RunMode == "debug" {
		gormLogger = logger.Default.LogMode(logger.Info)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: gormLogger,
		NamingStrategy: schema.NamingStrategy{
			TablePrefix:   c.TablePrefix, // 表名前缀，`Note` 的表名应该是 `t_note`
			SingularTable: true,          // 使用单数表名
		},
		NowFunc: util.NowMilli,
	})
	if err != nil {
		return nil, errors.Wrapf(err, "open %s database", c.Type)
	}

	// 获取通用数据库对象 sql.DB ，然后使用其提供的功能
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}

	maxOpen := applyPoolConfig(sqlDB, c)

	if err := db.Use(&gormTracing.OpentracingPlugin{}); err != nil && lg != nil {
		lg.Warn("gorm tracing plugin not registered", zap.Error(err))
	}

	if c.AutoMigrate {
		if err := model.AutoMigrate(db); err != nil {
			return nil, errors.Wrap(err, "auto migrate")
		}
	}

	if lg != nil {
		lg.Info("database connected", zap.String("type", c.Type), zap.Int("maxOpenConns", maxOpen))
	}

	return db, nil
}

// poolSetter 连接池配置项，*sql.DB 实现该接口
type poolSetter interface {
	SetMaxIdleConns(n int)
	SetMaxOpenConns(n int)
	SetConnMaxLifetime(d time.Duration)
	SetConnMaxIdleTime(d time.Duration)
}

// applyPoolConfig 设置连接池参数，返回最大打开连接数
// 内存库的数据只存在于唯一的连接上，连接不能被回收，否则会得到一个空库
func applyPoolConfig(db poolSetter, c DatabaseConfig) int {
	if isMemorySqlite(c) {
		db.SetMaxOpenConns(1)
		db.SetMaxIdleConns(1)
		db.SetConnMaxLifetime(0)
		db.SetConnMaxIdleTime(0)
		return 1
	}

	if c.MaxIdleConns > 0 {
		db.SetMaxIdleConns(c.MaxIdleConns)
	}
	if c.MaxOpenConns > 0 {
		db.SetMaxOpenConns(c.MaxOpenConns)
	}
	if d, err := util.ParseDuration(c.ConnMaxLifetime); err == nil && d > 0 {
		db.SetConnMaxLifetime(d)
	} else {
		db.SetConnMaxLifetime(30 * time.Minute)
	}
	if d, err := util.ParseDuration(c.ConnMaxIdleTime); err == nil && d > 0 {
		db.SetConnMaxIdleTime(d)
	}
	return c.MaxOpenConns
}

func isMemorySqlite(c DatabaseConfig) bool {
	return c.Type == "sqlite" && (c.Path == ":memory:" || strings.Contains(c.Path, "mode=memory"))
}

func newDialector(c DatabaseConfig) (gorm.Dialector, error) {
	switch c.Type {
	case "mysql":
		charset := c.Charset
		if charset == "" {
			charset = "utf8mb4"
		}
		// clientFoundRows: UPDATE 返回匹配行数而不是变更行数
		return mysql.Open(fmt.Sprintf("%s:%s@tcp(%s)/%s?charset=%s&parseTime=true&loc=UTC&clientFoundRows=true",
			c.UserName,
			c.Password,
			hostPort(c.Host, c.Port, 3306),
			c.Name,
			charset,
		)), nil
	case "postgres":
		sslMode := c.SSLMode
		if sslMode == "" {
			sslMode = "disable"
		}
		host, port := c.Host, c.Port
		if port == 0 {
			port = 5432
		}
		return postgres.Open(fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s TimeZone=UTC",
			host, port, c.UserName, c.Password, c.Name, sslMode,
		)), nil
	case "sqlite", "":
		if isMemorySqlite(c) {
			return sqlite.Open(c.Path), nil
		}
		if !fileurl.IsExist(c.Path) {
			if err := fileurl.CreatePath(c.Path, os.ModePerm); err != nil {
				return nil, errors.Wrap(err, "create sqlite dir")
			}
		}
		return sqlite.Open(c.Path + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"), nil
	default:
		return nil, fmt.Errorf("unsupported database type %q", c.Type)
	}
}

func hostPort(host string, port, defaultPort int) string {
	if strings.Contains(host, ":") {
		return host
	}
	if port == 0 {
		port = defaultPort
	}
	return fmt.Sprintf("%s:%d", host, port)
}
