// file: storage/disk.go
package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// DiskStore 本地目录存储，object key 即目录下的文件名
type DiskStore struct {
	dir string
}

func NewDiskStore(dir string) (*DiskStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &DiskStore{dir: dir}, nil
}

// path 将 key 限制为纯文件名，防止路径穿越
func (s *DiskStore) path(key string) string {
	return filepath.Join(s.dir, filepath.Base(key))
}

func (s *DiskStore) Save(ctx context.Context, key string, r io.Reader) error {
	f, err := os.Create(s.path(key))
	if err != nil {
		return fmt.Errorf("create object %s: %w", key, err)
	}
	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		os.Remove(s.path(key))
		return fmt.Errorf("write object %s: %w", key, err)
	}
	if err := f.Close(); err != nil {
		os.Remove(s.path(key))
		return fmt.Errorf("close object %s: %w", key, err)
	}
	return nil
}

func (s *DiskStore) Open(ctx context.Context, key string) (io.ReadCloser, error) {
	f, err := os.Open(s.path(key))
	if err != nil {
		return nil, fmt.Errorf("open object %s: %w", key, err)
	}
	return f, nil
}

func (s *DiskStore) Remove(ctx context.Context, key string) error {
	return os.Remove(s.path(key))
}
