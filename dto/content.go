// file: dto/content.go
package dto

import "strings"

type AddContentReq struct {
	Type    string `json:"type" binding:"required,oneof=post note resource"`
	Title   string `json:"title" binding:"required"`
	Content string `json:"content"`
	// resource 类型必须引用一个已上传的文件
	FileID string `json:"file_id"`
}

func (r *AddContentReq) Normalize() {
	r.Type = strings.ToLower(strings.TrimSpace(r.Type))
	r.Title = strings.TrimSpace(r.Title)
}
