package model

import (
	"time"
)

// Note mapped from table <note> (table prefix applied by the naming strategy)
type Note struct {
	ID        string    `gorm:"column:id;primaryKey;type:varchar(36)" json:"id"`
	OwnerID   string    `gorm:"column:owner_id;not null;type:varchar(191);index:idx_note_owner_created,priority:1" json:"ownerId"`
	Title     string    `gorm:"column:title;not null;type:varchar(512)" json:"title"`
	Content   string    `gorm:"column:content;not null;type:text" json:"content"`
	Pinned    bool      `gorm:"column:pinned;not null;default:false" json:"pinned"`
	CreatedAt time.Time `gorm:"column:created_at;not null;autoCreateTime:false;index:idx_note_owner_created,priority:2" json:"createdAt"`
	UpdatedAt time.Time `gorm:"column:updated_at;not null;autoUpdateTime:false" json:"updatedAt"`
}
