// Package service 实现业务逻辑层
package service

import (
	"context"
	"errors"
	"iter"
	"strings"
	"time"

	"github.com/haierkeys/fast-note-pad/internal/domain"
	"github.com/haierkeys/fast-note-pad/internal/dto"
	"github.com/haierkeys/fast-note-pad/pkg/code"
	"github.com/haierkeys/fast-note-pad/pkg/convert"
	apperrors "github.com/haierkeys/fast-note-pad/pkg/errors"

	"golang.org/x/sync/singleflight"
)

// statsQueryTimeout 合并后的统计查询超时时间
const statsQueryTimeout = 10 * time.Second

// NoteDTO 笔记数据传输对象
type NoteDTO = dto.NoteDTO

// NoteStatsDTO 笔记统计
type NoteStatsDTO = dto.NoteStatsDTO

// NoteService 定义笔记业务服务接口
// 所有方法都要求 ownerID，且只能访问该用户自己的笔记
type NoteService interface {
	// Create 创建笔记，pinned 初始为 false
	Create(ctx context.Context, ownerID string, params *dto.NoteCreateRequest) (*NoteDTO, error)

	// Get 获取单条笔记
	Get(ctx context.Context, ownerID string, params *dto.NoteGetRequest) (*NoteDTO, error)

	// List 按创建时间倒序返回用户的全部笔记
	List(ctx context.Context, ownerID string) iter.Seq2[*NoteDTO, error]

	// ListFiltered 同 List，可按置顶状态过滤
	ListFiltered(ctx context.Context, ownerID string, params *dto.NoteListRequest) iter.Seq2[*NoteDTO, error]

	// UpdateContent 替换标题与内容
	UpdateContent(ctx context.Context, ownerID string, params *dto.NoteUpdateRequest) (*NoteDTO, error)

	// UpdatePin 设置置顶状态
	UpdatePin(ctx context.Context, ownerID string, params *dto.NotePinRequest) (*NoteDTO, error)

	// Delete 删除笔记
	Delete(ctx context.Context, ownerID string, params *dto.NoteDeleteRequest) error

	// Stats 统计用户的笔记数量与置顶数量
	Stats(ctx context.Context, ownerID string) (*NoteStatsDTO, error)
}

// noteService 实现 NoteService 接口
type noteService struct {
	noteRepo domain.NoteRepository
	sf       *singleflight.Group
}

// NewNoteService 创建 NoteService 实例
func NewNoteService(noteRepo domain.NoteRepository) NoteService {
	return &noteService{
		noteRepo: noteRepo,
		sf:       &singleflight.Group{},
	}
}

// isBlank 空字符串或只包含空白字符
func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}

// requireOwner 没有用户身份时拒绝请求
func requireOwner(ownerID string) error {
	if isBlank(ownerID) {
		return code.ErrorNotUserAuthToken
	}
	return nil
}

// invalidParams 参数校验失败
func invalidParams(fields ...string) error {
	details := make([]string, 0, len(fields))
	for _, f := range fields {
		details = append(details, f+" is required")
	}
	return code.ErrorInvalidParams.WithDetails(details...)
}

// storeError 将存储层错误转换为对外错误码，原始错误保留在 Cause 中供日志使用
func storeError(err error) error {
	if errors.Is(err, domain.ErrNoteNotFound) {
		return code.ErrorNoteNotFound
	}
	return apperrors.NewAppError(code.ErrorDBQuery, err)
}

// domainToDTO 将领域模型转换为 DTO
func domainToDTO(note *domain.Note) (*NoteDTO, error) {
	if note == nil {
		return nil, nil
	}
	out := &NoteDTO{}
	if err := convert.StructAssign(note, out); err != nil {
		return nil, apperrors.NewAppError(code.ErrorServerInternal, err)
	}
	return out, nil
}

// Create 创建笔记
func (s *noteService) Create(ctx context.Context, ownerID string, params *dto.NoteCreateRequest) (*NoteDTO, error) {
	if err := requireOwner(ownerID); err != nil {
		return nil, err
	}
	if params == nil {
		return nil, invalidParams("title", "content")
	}

	var missing []string
	if isBlank(params.Title) {
		missing = append(missing, "title")
	}
	if isBlank(params.Content) {
		missing = append(missing, "content")
	}
	if len(missing) > 0 {
		return nil, invalidParams(missing...)
	}

	note, err := s.noteRepo.Insert(ctx, &domain.Note{
		OwnerID: ownerID,
		Title:   params.Title,
		Content: params.Content,
		Pinned:  false,
	})
	if err != nil {
		return nil, storeError(err)
	}
	return domainToDTO(note)
}

// Get 获取单条笔记
func (s *noteService) Get(ctx context.Context, ownerID string, params *dto.NoteGetRequest) (*NoteDTO, error) {
	if err := requireOwner(ownerID); err != nil {
		return nil, err
	}
	if params == nil || isBlank(params.ID) {
		return nil, invalidParams("id")
	}

	note, err := s.noteRepo.GetByID(ctx, params.ID, ownerID)
	if err != nil {
		return nil, storeError(err)
	}
	return domainToDTO(note)
}

// List 获取笔记列表
func (s *noteService) List(ctx context.Context, ownerID string) iter.Seq2[*NoteDTO, error] {
	return s.ListFiltered(ctx, ownerID, nil)
}

// ListFiltered 获取笔记列表（可按置顶过滤）
func (s *noteService) ListFiltered(ctx context.Context, ownerID string, params *dto.NoteListRequest) iter.Seq2[*NoteDTO, error] {
	return func(yield func(*NoteDTO, error) bool) {
		if err := requireOwner(ownerID); err != nil {
			yield(nil, err)
			return
		}

		var filter domain.NoteListFilter
		if params != nil {
			filter.Pinned = params.Pinned
		}

		for note, err := range s.noteRepo.ListByOwner(ctx, ownerID, filter) {
			if err != nil {
				yield(nil, storeError(err))
				return
			}
			out, err := domainToDTO(note)
			if !yield(out, err) || err != nil {
				return
			}
		}
	}
}

// UpdateContent 更新标题与内容
func (s *noteService) UpdateContent(ctx context.Context, ownerID string, params *dto.NoteUpdateRequest) (*NoteDTO, error) {
	if err := requireOwner(ownerID); err != nil {
		return nil, err
	}
	if params == nil {
		return nil, invalidParams("id", "title", "content")
	}

	var missing []string
	if isBlank(params.ID) {
		missing = append(missing, "id")
	}
	if isBlank(params.Title) {
		missing = append(missing, "title")
	}
	if isBlank(params.Content) {
		missing = append(missing, "content")
	}
	if len(missing) > 0 {
		return nil, invalidParams(missing...)
	}

	note, err := s.noteRepo.UpdateFields(ctx, params.ID, ownerID, domain.NotePatch{
		Title:   &params.Title,
		Content: &params.Content,
	})
	if err != nil {
		return nil, storeError(err)
	}
	return domainToDTO(note)
}

// UpdatePin 更新置顶状态
func (s *noteService) UpdatePin(ctx context.Context, ownerID string, params *dto.NotePinRequest) (*NoteDTO, error) {
	if err := requireOwner(ownerID); err != nil {
		return nil, err
	}
	if params == nil {
		return nil, invalidParams("id", "pinned")
	}

	var missing []string
	if isBlank(params.ID) {
		missing = append(missing, "id")
	}
	if params.Pinned == nil {
		missing = append(missing, "pinned")
	}
	if len(missing) > 0 {
		return nil, invalidParams(missing...)
	}

	pinned := *params.Pinned
	note, err := s.noteRepo.UpdateFields(ctx, params.ID, ownerID, domain.NotePatch{Pinned: &pinned})
	if err != nil {
		return nil, storeError(err)
	}
	return domainToDTO(note)
}

// Delete 删除笔记
func (s *noteService) Delete(ctx context.Context, ownerID string, params *dto.NoteDeleteRequest) error {
	if err := requireOwner(ownerID); err != nil {
		return err
	}
	if params == nil || isBlank(params.ID) {
		return invalidParams("id")
	}

	if err := s.noteRepo.DeleteByID(ctx, params.ID, ownerID); err != nil {
		return storeError(err)
	}
	return nil
}

// Stats 统计笔记数量
// 同一用户的并发请求合并为一次查询
func (s *noteService) Stats(ctx context.Context, ownerID string) (*NoteStatsDTO, error) {
	if err := requireOwner(ownerID); err != nil {
		return nil, err
	}

	// 查询不随首个调用方取消，每个调用方仍可按自己的 ctx 提前返回
	ch := s.sf.DoChan("stats:"+ownerID, func() (interface{}, error) {
		qctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), statsQueryTimeout)
		defer cancel()

		count, err := s.noteRepo.CountByOwner(qctx, ownerID)
		if err != nil {
			return nil, storeError(err)
		}
		return &NoteStatsDTO{Total: count.Total, Pinned: count.Pinned}, nil
	})

	select {
	case <-ctx.Done():
		return nil, storeError(ctx.Err())
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(*NoteStatsDTO), nil
	}
}
