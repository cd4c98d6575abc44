package dao

import (
	"context"
	"testing"
	"time"

	"github.com/haierkeys/fast-note-pad/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type poolRecorder struct {
	maxIdle, maxOpen      int
	lifetime, idleTimeout time.Duration
	lifetimeSet, idleSet  bool
}

func (p *poolRecorder) SetMaxIdleConns(n int) { p.maxIdle = n }
func (p *poolRecorder) SetMaxOpenConns(n int) { p.maxOpen = n }
func (p *poolRecorder) SetConnMaxLifetime(d time.Duration) {
	p.lifetime, p.lifetimeSet = d, true
}
func (p *poolRecorder) SetConnMaxIdleTime(d time.Duration) {
	p.idleTimeout, p.idleSet = d, true
}

func TestApplyPoolConfig(t *testing.T) {
	t.Run("memory sqlite keeps its only connection", func(t *testing.T) {
		p := &poolRecorder{}
		n := applyPoolConfig(p, DatabaseConfig{
			Type:            "sqlite",
			Path:            ":memory:",
			MaxOpenConns:    20,
			MaxIdleConns:    0,
			ConnMaxLifetime: "1s",
			ConnMaxIdleTime: "200ms",
		})
		assert.Equal(t, 1, n)
		assert.Equal(t, 1, p.maxOpen)
		assert.Equal(t, 1, p.maxIdle)
		assert.True(t, p.lifetimeSet)
		assert.Zero(t, p.lifetime)
		assert.True(t, p.idleSet)
		assert.Zero(t, p.idleTimeout)
	})

	t.Run("file database follows config", func(t *testing.T) {
		p := &poolRecorder{}
		n := applyPoolConfig(p, DatabaseConfig{
			Type:            "sqlite",
			Path:            "storage/db.sqlite3",
			MaxOpenConns:    20,
			MaxIdleConns:    5,
			ConnMaxLifetime: "1h",
			ConnMaxIdleTime: "10m",
		})
		assert.Equal(t, 20, n)
		assert.Equal(t, 20, p.maxOpen)
		assert.Equal(t, 5, p.maxIdle)
		assert.Equal(t, time.Hour, p.lifetime)
		assert.Equal(t, 10*time.Minute, p.idleTimeout)
	})

	t.Run("default lifetime", func(t *testing.T) {
		p := &poolRecorder{}
		applyPoolConfig(p, DatabaseConfig{Type: "mysql"})
		assert.Equal(t, 30*time.Minute, p.lifetime)
		assert.False(t, p.idleSet)
	})
}

func TestNewDBEngine_MemorySqliteSurvivesIdleTimeout(t *testing.T) {
	db, err := NewDBEngineWithConfig(DatabaseConfig{
		Type:            "sqlite",
		Path:            ":memory:",
		AutoMigrate:     true,
		ConnMaxLifetime: "100ms",
		ConnMaxIdleTime: "100ms",
	}, zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	repo := NewNoteRepository(New(db))
	ctx := context.Background()

	created, err := repo.Insert(ctx, &domain.Note{OwnerID: "u1", Title: "t", Content: "c"})
	require.NoError(t, err)

	// 超过配置的空闲与存活时间，连接池不应回收内存库连接
	time.Sleep(1500 * time.Millisecond)

	got, err := repo.GetByID(ctx, created.ID, "u1")
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)
}
