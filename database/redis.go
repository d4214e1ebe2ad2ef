// file: database/redis.go
package database

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// InitRedis 建立 Redis 连接，用作内容列表的读穿缓存
func InitRedis(addr string) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: "",
		DB:       0,
		PoolSize: 100,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := rdb.Ping(ctx).Result(); err != nil {
		return nil, err
	}

	return rdb, nil
}
