package service

import (
	"context"
	"net/url"
	"time"

	"github.com/haierkeys/fast-note-pad/internal/domain"
	"github.com/haierkeys/fast-note-pad/internal/dto"
	"github.com/haierkeys/fast-note-pad/pkg/storage"
	"github.com/haierkeys/fast-note-pad/pkg/timex"
	"github.com/haierkeys/fast-note-pad/pkg/util"

	"github.com/bytedance/sonic"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// BackupStampLayout 备份批次目录名格式
const BackupStampLayout = "20060102T150405Z"

// BackupService 将全部笔记按用户导出到存储后端
type BackupService interface {
	// Run 导出一个批次：<stamp>/<ownerID>.json，每个用户一个文件
	// 任一用户写入失败时删除本批次已写入的文件
	Run(ctx context.Context) (*dto.BackupResultDTO, error)
}

type backupService struct {
	noteRepo domain.NoteRepository
	storager storage.Storager
	logger   *zap.Logger
}

// NewBackupService 创建 BackupService 实例
func NewBackupService(noteRepo domain.NoteRepository, storager storage.Storager, logger *zap.Logger) BackupService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &backupService{
		noteRepo: noteRepo,
		storager: storager,
		logger:   logger,
	}
}

func (s *backupService) Run(ctx context.Context) (*dto.BackupResultDTO, error) {
	now := util.NowMilli()
	result := &dto.BackupResultDTO{Stamp: now.Format(BackupStampLayout)}

	owners, err := s.noteRepo.ListOwners(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "backup: list owners")
	}

	var written []string
	for _, ownerID := range owners {
		snapshot, err := s.snapshot(ctx, ownerID, now)
		if err != nil {
			s.rollback(written)
			return nil, err
		}

		content, err := sonic.Marshal(snapshot)
		if err != nil {
			s.rollback(written)
			return nil, errors.Wrap(err, "backup: encode snapshot")
		}

		pathKey := result.Stamp + "/" + url.PathEscape(ownerID) + ".json"
		key, err := s.storager.SendContent(ctx, pathKey, content, now)
		if err != nil {
			s.rollback(written)
			return nil, errors.Wrapf(err, "backup: write %s", pathKey)
		}
		written = append(written, pathKey)

		result.Owners++
		result.Notes += snapshot.Count
		result.Keys = append(result.Keys, key)
	}

	return result, nil
}

func (s *backupService) snapshot(ctx context.Context, ownerID string, now time.Time) (*dto.BackupSnapshotDTO, error) {
	snapshot := &dto.BackupSnapshotDTO{
		OwnerID:   ownerID,
		CreatedAt: timex.Time(now),
		Notes:     []*dto.NoteDTO{},
	}
	for note, err := range s.noteRepo.ListByOwner(ctx, ownerID, domain.NoteListFilter{}) {
		if err != nil {
			return nil, errors.Wrapf(err, "backup: list notes of %s", ownerID)
		}
		out, err := domainToDTO(note)
		if err != nil {
			return nil, err
		}
		snapshot.Notes = append(snapshot.Notes, out)
	}
	snapshot.Count = len(snapshot.Notes)
	return snapshot, nil
}

// rollback 删除本批次已写入的文件，使用独立的 context 保证在取消后仍能清理
func (s *backupService) rollback(keys []string) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	for _, key := range keys {
		if err := s.storager.Delete(ctx, key); err != nil {
			s.logger.Warn("backup rollback failed", zap.String("key", key), zap.Error(err))
		}
	}
}
