// file: models/group.go
package models

import (
	"time"
)

// 自定义小组类型
type GroupType string

const (
	GroupTypePublic  GroupType = "public"
	GroupTypePrivate GroupType = "private"
)

type Group struct {
	ID          uint32    `gorm:"primarykey" json:"id"`
	ClassroomID uint32    `gorm:"uniqueIndex:unique_classroom_group_name;not null" json:"classroom_id"`
	Name        string    `gorm:"size:100;uniqueIndex:unique_classroom_group_name;not null" json:"name"`
	Description string    `gorm:"type:text" json:"description"`
	GroupType   GroupType `gorm:"size:20;not null" json:"group_type"`
	// 仅私有小组持有加入码；6 位大写字母数字，全局唯一（MySQL 唯一索引允许多个 NULL）
	JoinCode  *string       `gorm:"size:12;unique" json:"-"`
	CreatedBy uint32        `gorm:"not null" json:"created_by"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
	Members   []GroupMember `gorm:"foreignKey:GroupID" json:"-"`
}

func (Group) TableName() string {
	return "paperly_group"
}

type GroupMember struct {
	ID       uint32    `gorm:"primarykey" json:"-"`
	GroupID  uint32    `gorm:"uniqueIndex:unique_group_user;not null" json:"group_id"`
	UserID   uint32    `gorm:"uniqueIndex:unique_group_user;not null" json:"user_id"`
	User     User      `gorm:"foreignKey:UserID" json:"-"`
	JoinedAt time.Time `json:"joined_at"`
}

func (GroupMember) TableName() string {
	return "paperly_group_members"
}

// GroupInfo 对外序列化结构；JoinCode 仅对小组创建者返回
type GroupInfo struct {
	ID          uint32    `json:"id"`
	ClassroomID uint32    `json:"classroom_id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	GroupType   GroupType `json:"group_type"`
	JoinCode    string    `json:"join_code,omitempty"`
	CreatedBy   uint32    `json:"created_by"`
}

func NewGroupInfo(g Group, includeCode bool) GroupInfo {
	info := GroupInfo{
		ID:          g.ID,
		ClassroomID: g.ClassroomID,
		Name:        g.Name,
		Description: g.Description,
		GroupType:   g.GroupType,
		CreatedBy:   g.CreatedBy,
	}
	if includeCode && g.JoinCode != nil {
		info.JoinCode = *g.JoinCode
	}
	return info
}
