// file: config/config.go
package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

// Config 汇总进程启动所需的全部外部配置
type Config struct {
	ListenAddr string
	DSN        string
	RedisAddr  string
	JWTSecret  string

	// 文件存储：disk（本地目录）或 b2（Backblaze 对象存储）
	Storage     string
	UploadDir   string
	B2AccountID string
	B2AppKey    string
	B2Bucket    string

	// 启动时将该邮箱对应的已注册用户提升为 admin
	AdminEmail string
}

// Load 读取 .env（如果存在）和环境变量，缺省值适用于本地开发
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables only")
	}

	return &Config{
		ListenAddr:  getenv("PAPERLY_LISTEN_ADDR", ":8080"),
		DSN:         getenv("PAPERLY_DSN", "root:123456@tcp(localhost:3306)/paperly?charset=utf8mb4&parseTime=True&loc=Local"),
		RedisAddr:   getenv("PAPERLY_REDIS_ADDR", "localhost:6379"),
		JWTSecret:   getenv("PAPERLY_JWT_SECRET", "paperly-dev-secret-change-me"),
		Storage:     getenv("PAPERLY_STORAGE", "disk"),
		UploadDir:   getenv("PAPERLY_UPLOAD_DIR", "./uploads"),
		B2AccountID: os.Getenv("PAPERLY_B2_ACCOUNT_ID"),
		B2AppKey:    os.Getenv("PAPERLY_B2_APP_KEY"),
		B2Bucket:    os.Getenv("PAPERLY_B2_BUCKET"),
		AdminEmail:  os.Getenv("PAPERLY_ADMIN_EMAIL"),
	}
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
