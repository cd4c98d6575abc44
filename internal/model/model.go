// Package model 数据库表结构定义
package model

import (
	"gorm.io/gorm"
)

// AutoMigrate 自动迁移所有表结构
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(&Note{})
}
