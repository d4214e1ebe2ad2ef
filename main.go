// file: main.go
package main

import (
	"context"
	"log"

	"github.com/Meril1494/Paperly/config"
	"github.com/Meril1494/Paperly/database"
	"github.com/Meril1494/Paperly/models"
	"github.com/Meril1494/Paperly/routes"
	"github.com/Meril1494/Paperly/storage"
	"github.com/Meril1494/Paperly/utils"
)

func main() {
	cfg := config.Load()
	utils.InitJWT(cfg.JWTSecret)

	db, err := database.Connect(cfg.DSN)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Println("Database connection successfully established and connection pool configured.")

	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	rdb, err := database.InitRedis(cfg.RedisAddr)
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	log.Println("Redis connection successfully established.")

	var store storage.Store
	switch cfg.Storage {
	case "b2":
		store, err = storage.NewB2Store(context.Background(), cfg.B2AccountID, cfg.B2AppKey, cfg.B2Bucket)
	default:
		store, err = storage.NewDiskStore(cfg.UploadDir)
	}
	if err != nil {
		log.Fatalf("Failed to initialize file storage: %v", err)
	}

	// 启动时将配置指定的邮箱提升为 admin（服务端授予角色的引导入口）
	if cfg.AdminEmail != "" {
		result := db.Model(&models.User{}).
			Where("email = ? AND role <> ?", cfg.AdminEmail, models.RoleAdmin).
			Update("role", models.RoleAdmin)
		if result.Error != nil {
			log.Printf("Failed to promote bootstrap admin: %v", result.Error)
		} else if result.RowsAffected > 0 {
			log.Printf("Promoted %s to admin", cfg.AdminEmail)
		}
	}

	r := routes.SetupRouter(db, rdb, store)

	log.Printf("Starting server on %s", cfg.ListenAddr)
	if err := r.Run(cfg.ListenAddr); err != nil {
		log.Fatalf("Failed to run server: %v", err)
	}
}
