// file: dto/group.go
package dto

import "strings"

type CreateGroupReq struct {
	ClassroomID uint32 `json:"classroom_id" binding:"required"`
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	GroupType   string `json:"group_type" binding:"required,oneof=public private"`
}

func (r *CreateGroupReq) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Description = strings.TrimSpace(r.Description)
	r.GroupType = strings.ToLower(strings.TrimSpace(r.GroupType))
}

// JoinGroupReq 按小组 ID 或加入码加入，二者至少填一个
type JoinGroupReq struct {
	GroupID  uint32 `json:"group_id"`
	JoinCode string `json:"join_code"`
}

func (r *JoinGroupReq) Normalize() {
	// 小组加入码统一按大写比较
	r.JoinCode = strings.ToUpper(strings.TrimSpace(r.JoinCode))
}
