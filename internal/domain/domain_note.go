// Package domain 定义领域模型和接口
package domain

import (
	"errors"
	"time"
)

// ErrNoteNotFound is returned by the store when no note matches the id (and owner)
// ErrNoteNotFound 没有匹配 id（及所有者）的笔记时由存储层返回
var ErrNoteNotFound = errors.New("note not found")

// Note 笔记领域模型
type Note struct {
	ID        string
	OwnerID   string
	Title     string
	Content   string
	Pinned    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NotePatch describes a partial update. Nil fields are left untouched.
// NotePatch 部分更新，nil 字段保持不变
type NotePatch struct {
	Title   *string
	Content *string
	Pinned  *bool
}

// IsEmpty 是否没有任何需要更新的字段
func (p NotePatch) IsEmpty() bool {
	return p.Title == nil && p.Content == nil && p.Pinned == nil
}

// NoteListFilter narrows ListByOwner results
// NoteListFilter 列表过滤条件
type NoteListFilter struct {
	Pinned *bool
}

// NoteCount 笔记数量统计
type NoteCount struct {
	Total  int64
	Pinned int64
}
