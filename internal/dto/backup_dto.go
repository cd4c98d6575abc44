package dto

import (
	"github.com/haierkeys/fast-note-pad/pkg/timex"
)

// BackupSnapshotDTO One owner's notes as written to backup storage
// BackupSnapshotDTO 单个用户的备份快照文件内容
type BackupSnapshotDTO struct {
	OwnerID   string     `json:"ownerId"`
	CreatedAt timex.Time `json:"createdAt"`
	Count     int        `json:"count"`
	Notes     []*NoteDTO `json:"notes"`
}

// BackupResultDTO 一次备份的结果
type BackupResultDTO struct {
	Stamp  string   `json:"stamp"`
	Owners int      `json:"owners"`
	Notes  int      `json:"notes"`
	Keys   []string `json:"keys"`
}
