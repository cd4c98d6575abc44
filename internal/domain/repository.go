package domain

import (
	"context"
	"iter"
)

// NoteRepository 笔记仓储接口
// 所有按 id 的读写都同时按 ownerID 限定范围
type NoteRepository interface {
	// Insert 创建笔记，分配 ID、CreatedAt、UpdatedAt
	Insert(ctx context.Context, note *Note) (*Note, error)

	// GetByID 根据 ID 获取笔记，不存在返回 ErrNoteNotFound
	GetByID(ctx context.Context, id, ownerID string) (*Note, error)

	// ListByOwner 按 CreatedAt 倒序惰性返回所有者的笔记
	// 序列只能遍历一次；存储错误作为最后一个元素返回
	ListByOwner(ctx context.Context, ownerID string, filter NoteListFilter) iter.Seq2[*Note, error]

	// UpdateFields 部分更新并刷新 UpdatedAt，返回更新后的笔记
	UpdateFields(ctx context.Context, id, ownerID string, patch NotePatch) (*Note, error)

	// DeleteByID 物理删除笔记，不存在返回 ErrNoteNotFound
	DeleteByID(ctx context.Context, id, ownerID string) error

	// CountByOwner 统计所有者的笔记数量与置顶数量
	CountByOwner(ctx context.Context, ownerID string) (*NoteCount, error)

	// ListOwners 返回拥有至少一条笔记的全部所有者 ID，按字典序
	ListOwners(ctx context.Context) ([]string, error)

	// CountAll 统计全部笔记数量与置顶数量
	CountAll(ctx context.Context) (*NoteCount, error)

	// Ping 检查存储连接
	Ping(ctx context.Context) error
}
