package dao

import (
	"context"
	"iter"
	"sync/atomic"

	"github.com/haierkeys/fast-note-pad/internal/domain"
	"github.com/haierkeys/fast-note-pad/internal/model"
	"github.com/haierkeys/fast-note-pad/pkg/util"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// errSequenceConsumed is yielded when a ListByOwner sequence is ranged over twice
var errSequenceConsumed = errors.New("note sequence already consumed")

// noteRepository 实现 domain.NoteRepository 接口
type noteRepository struct {
	dao *Dao
}

// NewNoteRepository 创建 NoteRepository 实例
func NewNoteRepository(dao *Dao) domain.NoteRepository {
	return &noteRepository{dao: dao}
}

// toDomain 将数据库模型转换为领域模型
func (r *noteRepository) toDomain(m *model.Note) *domain.Note {
	if m == nil {
		return nil
	}
	return &domain.Note{
		ID:        m.ID,
		OwnerID:   m.OwnerID,
		Title:     m.Title,
		Content:   m.Content,
		Pinned:    m.Pinned,
		CreatedAt: m.CreatedAt.UTC(),
		UpdatedAt: m.UpdatedAt.UTC(),
	}
}

// Insert 创建笔记
func (r *noteRepository) Insert(ctx context.Context, note *domain.Note) (*domain.Note, error) {
	now := util.NowMilli()
	m := &model.Note{
		ID:        uuid.NewString(),
		OwnerID:   note.OwnerID,
		Title:     note.Title,
		Content:   note.Content,
		Pinned:    note.Pinned,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := r.dao.WithContext(ctx).Create(m).Error; err != nil {
		return nil, errors.Wrap(err, "insert note")
	}
	return r.toDomain(m), nil
}

// GetByID 根据 ID 获取笔记
func (r *noteRepository) GetByID(ctx context.Context, id, ownerID string) (*domain.Note, error) {
	m, err := r.find(r.dao.WithContext(ctx), id, ownerID)
	if err != nil {
		return nil, err
	}
	return r.toDomain(m), nil
}

func (r *noteRepository) find(db *gorm.DB, id, ownerID string) (*model.Note, error) {
	var m model.Note
	err := db.Where("id = ? AND owner_id = ?", id, ownerID).Take(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrNoteNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "get note")
	}
	return &m, nil
}

// ListByOwner 按创建时间倒序流式读取笔记
func (r *noteRepository) ListByOwner(ctx context.Context, ownerID string, filter domain.NoteListFilter) iter.Seq2[*domain.Note, error] {
	var consumed atomic.Bool

	return func(yield func(*domain.Note, error) bool) {
		if !consumed.CompareAndSwap(false, true) {
			yield(nil, errSequenceConsumed)
			return
		}

		db := r.dao.WithContext(ctx)
		query := db.Model(&model.Note{}).Where("owner_id = ?", ownerID)
		if filter.Pinned != nil {
			query = query.Where("pinned = ?", *filter.Pinned)
		}

		rows, err := query.Order("created_at DESC").Order("id DESC").Rows()
		if err != nil {
			yield(nil, errors.Wrap(err, "list notes"))
			return
		}
		defer rows.Close()

		for rows.Next() {
			var m model.Note
			if err := db.ScanRows(rows, &m); err != nil {
				yield(nil, errors.Wrap(err, "scan note"))
				return
			}
			if !yield(r.toDomain(&m), nil) {
				return
			}
		}
		if err := rows.Err(); err != nil {
			yield(nil, errors.Wrap(err, "list notes"))
		}
	}
}

// UpdateFields 部分更新笔记
// UPDATE 与读回在同一事务内完成，updated_at 只会前进不会后退
func (r *noteRepository) UpdateFields(ctx context.Context, id, ownerID string, patch domain.NotePatch) (*domain.Note, error) {
	var updated *model.Note

	err := r.dao.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		now := util.NowMilli()
		values := map[string]any{
			"updated_at": gorm.Expr("CASE WHEN updated_at > ? THEN updated_at ELSE ? END", now, now),
		}
		if patch.Title != nil {
			values["title"] = *patch.Title
		}
		if patch.Content != nil {
			values["content"] = *patch.Content
		}
		if patch.Pinned != nil {
			values["pinned"] = *patch.Pinned
		}

		result := tx.Model(&model.Note{}).
			Where("id = ? AND owner_id = ?", id, ownerID).
			Updates(values)
		if result.Error != nil {
			return errors.Wrap(result.Error, "update note")
		}
		if result.RowsAffected == 0 {
			return domain.ErrNoteNotFound
		}

		m, err := r.find(tx, id, ownerID)
		if err != nil {
			return err
		}
		updated = m
		return nil
	})
	if err != nil {
		return nil, err
	}
	return r.toDomain(updated), nil
}

// DeleteByID 物理删除笔记
func (r *noteRepository) DeleteByID(ctx context.Context, id, ownerID string) error {
	result := r.dao.WithContext(ctx).
		Where("id = ? AND owner_id = ?", id, ownerID).
		Delete(&model.Note{})
	if result.Error != nil {
		return errors.Wrap(result.Error, "delete note")
	}
	if result.RowsAffected == 0 {
		return domain.ErrNoteNotFound
	}
	return nil
}

// CountByOwner 统计所有者的笔记数量
func (r *noteRepository) CountByOwner(ctx context.Context, ownerID string) (*domain.NoteCount, error) {
	return r.count(r.dao.WithContext(ctx).Model(&model.Note{}).Where("owner_id = ?", ownerID))
}

// CountAll 统计全部笔记数量
func (r *noteRepository) CountAll(ctx context.Context) (*domain.NoteCount, error) {
	return r.count(r.dao.WithContext(ctx).Model(&model.Note{}))
}

// ListOwners 查询全部所有者
func (r *noteRepository) ListOwners(ctx context.Context) ([]string, error) {
	var owners []string
	err := r.dao.WithContext(ctx).Model(&model.Note{}).
		Distinct("owner_id").
		Order("owner_id ASC").
		Pluck("owner_id", &owners).Error
	if err != nil {
		return nil, errors.Wrap(err, "list owners")
	}
	return owners, nil
}

func (r *noteRepository) count(query *gorm.DB) (*domain.NoteCount, error) {
	var result struct {
		Total  int64
		Pinned int64
	}
	err := query.
		Select("COUNT(*) AS total, COALESCE(SUM(CASE WHEN pinned THEN 1 ELSE 0 END), 0) AS pinned").
		Scan(&result).Error
	if err != nil {
		return nil, errors.Wrap(err, "count notes")
	}
	return &domain.NoteCount{Total: result.Total, Pinned: result.Pinned}, nil
}

// Ping 检查数据库连接
func (r *noteRepository) Ping(ctx context.Context) error {
	sqlDB, err := r.dao.Db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

var _ domain.NoteRepository = (*noteRepository)(nil)
