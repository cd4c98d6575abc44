// Package dto Defines data transfer objects (request parameters and response structs)
// Package dto 定义数据传输对象（请求参数和响应结构体）
package dto

import (
	"github.com/haierkeys/fast-note-pad/pkg/timex"
)

// NoteDTO Note data transfer object
// NoteDTO 笔记数据传输对象
type NoteDTO struct {
	ID        string     `json:"id"`
	OwnerID   string     `json:"ownerId"`
	Title     string     `json:"title"`
	Content   string     `json:"content"`
	Pinned    bool       `json:"pinned"`
	CreatedAt timex.Time `json:"createdAt"`
	UpdatedAt timex.Time `json:"updatedAt"`
}

// NoteStatsDTO Note counters of one owner
// NoteStatsDTO 单个用户的笔记统计
type NoteStatsDTO struct {
	Total  int64 `json:"total"`
	Pinned int64 `json:"pinned"`
}

// NoteCreateRequest Request parameters for creating a note
// 创建笔记的请求参数
type NoteCreateRequest struct {
	Title   string `json:"title" form:"title" binding:"required,notblank"`
	Content string `json:"content" form:"content" binding:"required,notblank"`
}

// NoteGetRequest Request parameters for getting a single note
// 获取单条笔记的请求参数
type NoteGetRequest struct {
	ID string `json:"id" form:"id" binding:"required,notblank"`
}

// NoteListRequest Optional filters for listing notes
// 笔记列表的可选过滤参数
type NoteListRequest struct {
	Pinned *bool `json:"pinned" form:"pinned"`
}

// NoteUpdateRequest Request parameters for replacing title and content
// 更新标题与内容的请求参数
type NoteUpdateRequest struct {
	ID      string `json:"id" form:"id" binding:"required,notblank"`
	Title   string `json:"title" form:"title" binding:"required,notblank"`
	Content string `json:"content" form:"content" binding:"required,notblank"`
}

// NotePinRequest Request parameters for setting the pinned flag
// 设置置顶状态的请求参数
type NotePinRequest struct {
	ID     string `json:"id" form:"id" binding:"required,notblank"`
	Pinned *bool  `json:"pinned" form:"pinned" binding:"required"`
}

// NoteDeleteRequest Request parameters for deleting a note
// 删除笔记的请求参数
type NoteDeleteRequest struct {
	ID string `json:"id" form:"id" binding:"required,notblank"`
}
