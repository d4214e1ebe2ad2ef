// file: utils/code_generator.go
package utils

import (
	"crypto/rand"
	"encoding/hex"
	"strings"
)

const groupCodeCharset = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// GenerateClassroomCode 生成 6 位十六进制班级加入码（3 个随机字节）
func GenerateClassroomCode() string {
	b := make([]byte, 3)
	if _, err := rand.Read(b); err != nil {
		// crypto/rand 在所有受支持平台上不会失败
		panic(err)
	}
	return hex.EncodeToString(b)
}

// GenerateGroupCode 生成指定长度的大写字母数字加入码
// 加入码即能力凭证，使用 crypto/rand 防止被猜测
func GenerateGroupCode(length int) string {
	b := make([]byte, length)
	if _, err := rand.Read(b); err != nil {
		panic(err)
	}
	var sb strings.Builder
	sb.Grow(length)
	for i := 0; i < length; i++ {
		sb.WriteByte(groupCodeCharset[int(b[i])%len(groupCodeCharset)])
	}
	return sb.String()
}
