// file: storage/store.go
package storage

import (
	"context"
	"io"
)

// Store 内容存储：按不透明 object key 存取二进制文件
// 实现必须保证 Save 返回 nil 时文件已持久化
type Store interface {
	Save(ctx context.Context, key string, r io.Reader) error
	Open(ctx context.Context, key string) (io.ReadCloser, error)
	Remove(ctx context.Context, key string) error
}
