// file: storage/b2.go
package storage

import (
	"context"
	"fmt"
	"io"

	"github.com/kurin/blazer/b2"
)

// B2Store Backblaze B2 对象存储后端，由 PAPERLY_STORAGE=b2 启用
type B2Store struct {
	client *b2.Client
	bucket *b2.Bucket
}

func NewB2Store(ctx context.Context, accountID, appKey, bucketName string) (*B2Store, error) {
	client, err := b2.NewClient(ctx, accountID, appKey)
	if err != nil {
		return nil, fmt.Errorf("create b2 client: %w", err)
	}

	bucket, err := client.Bucket(ctx, bucketName)
	if err != nil {
		return nil, fmt.Errorf("get bucket: %w", err)
	}

	return &B2Store{client: client, bucket: bucket}, nil
}

func (s *B2Store) Save(ctx context.Context, key string, r io.Reader) error {
	w := s.bucket.Object(key).NewWriter(ctx)
	if _, err := io.Copy(w, r); err != nil {
		w.Close()
		return fmt.Errorf("write object %s: %w", key, err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("close object %s: %w", key, err)
	}
	return nil
}

func (s *B2Store) Open(ctx context.Context, key string) (io.ReadCloser, error) {
	return s.bucket.Object(key).NewReader(ctx), nil
}

func (s *B2Store) Remove(ctx context.Context, key string) error {
	return s.bucket.Object(key).Delete(ctx)
}
