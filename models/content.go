// file: models/content.go
package models

import (
	"time"
)

// 自定义班级内容类型
type ContentType string

const (
	ContentTypePost     ContentType = "post"
	ContentTypeNote     ContentType = "note"
	ContentTypeResource ContentType = "resource"
)

// ClassroomContent 班级内容记录：帖子/笔记为内联文本，资源附带文件引用
// 记录创建后不可修改，仅随班级级联删除一并消失
type ClassroomContent struct {
	ID          uint32      `gorm:"primarykey" json:"id"`
	ClassroomID uint32      `gorm:"index;not null" json:"classroom_id"`
	Type        ContentType `gorm:"size:20;not null" json:"type"`
	Title       string      `gorm:"size:255;not null" json:"title"`
	Content     string      `gorm:"type:text" json:"content,omitempty"`
	FileID      *string     `gorm:"size:64;index" json:"file_id,omitempty"`
	FileName    string      `gorm:"size:255" json:"file_name,omitempty"`
	FileURL     string      `gorm:"size:512" json:"file_url,omitempty"`
	CreatedBy   uint32      `gorm:"not null" json:"created_by"`
	CreatedAt   time.Time   `json:"created_at"`
}

func (ClassroomContent) TableName() string {
	return "paperly_classroom_content"
}

// StoredFile 已落盘文件的元数据；ID 为对外暴露的不透明文件标识
type StoredFile struct {
	ID          string    `gorm:"primarykey;size:64" json:"id"`
	ObjectKey   string    `gorm:"size:512;not null" json:"-"`
	FileName    string    `gorm:"size:255;not null" json:"file_name"`
	ContentType string    `gorm:"size:255;not null" json:"content_type"`
	FileSize    int64     `gorm:"not null" json:"file_size"`
	SHA256      string    `gorm:"size:64;not null" json:"sha256"`
	CreatedBy   uint32    `gorm:"not null" json:"created_by"`
	CreatedAt   time.Time `json:"created_at"`
}

func (StoredFile) TableName() string {
	return "paperly_stored_file"
}
