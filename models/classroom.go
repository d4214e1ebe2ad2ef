// file: models/classroom.go
package models

import (
	"time"
)

type Classroom struct {
	ID          uint32    `gorm:"primarykey" json:"id"`
	Name        string    `gorm:"size:100;not null" json:"name"`
	Description string    `gorm:"type:text" json:"description"`
	// 6 位十六进制加入码，创建后不可变
	Code      string            `gorm:"size:12;unique;not null" json:"code"`
	CreatedBy uint32            `gorm:"not null" json:"created_by"`
	Creator   User              `gorm:"foreignKey:CreatedBy" json:"-"`
	CreatedAt time.Time         `json:"created_at"`
	UpdatedAt time.Time         `json:"updated_at"`
	Members   []ClassroomMember `gorm:"foreignKey:ClassroomID" json:"-"`
}

func (Classroom) TableName() string {
	return "paperly_classroom"
}

type ClassroomMember struct {
	ID          uint32    `gorm:"primarykey" json:"-"`
	ClassroomID uint32    `gorm:"uniqueIndex:unique_classroom_user;not null" json:"classroom_id"`
	UserID      uint32    `gorm:"uniqueIndex:unique_classroom_user;not null" json:"user_id"`
	User        User      `gorm:"foreignKey:UserID" json:"-"`
	JoinedAt    time.Time `json:"joined_at"`
}

func (ClassroomMember) TableName() string {
	return "paperly_classroom_members"
}

// ClassroomInfo 对外序列化结构，加入码只展示给成员
type ClassroomInfo struct {
	ID          uint32 `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Code        string `json:"code"`
	CreatedBy   uint32 `json:"created_by"`
}

func NewClassroomInfo(cr Classroom) ClassroomInfo {
	return ClassroomInfo{
		ID:          cr.ID,
		Name:        cr.Name,
		Description: cr.Description,
		Code:        cr.Code,
		CreatedBy:   cr.CreatedBy,
	}
}
