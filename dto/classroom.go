// file: dto/classroom.go
package dto

import "strings"

type CreateClassroomReq struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

func (r *CreateClassroomReq) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Description = strings.TrimSpace(r.Description)
}

type JoinClassroomReq struct {
	Code string `json:"code" binding:"required"`
}

func (r *JoinClassroomReq) Normalize() {
	// 班级加入码以小写十六进制存储
	r.Code = strings.ToLower(strings.TrimSpace(r.Code))
}
