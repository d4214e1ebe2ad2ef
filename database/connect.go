// file: database/connect.go
package database

import (
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"

	"github.com/Meril1494/Paperly/models"
)

// Connect 建立 MySQL 连接并配置连接池
func Connect(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}

	// SetMaxIdleConns 用于设置连接池中空闲连接的最大数量。
	sqlDB.SetMaxIdleConns(10)

	// SetMaxOpenConns 设置打开数据库连接的最大数量。
	sqlDB.SetMaxOpenConns(100)

	// SetConnMaxLifetime 设置了连接可复用的最大时间。
	// 这对于解决 MySQL 的 'wait_timeout' 问题至关重要。
	sqlDB.SetConnMaxLifetime(time.Hour)

	return db, nil
}

// Migrate 迁移全部数据表；成员表的联合唯一索引保证加入操作的幂等性，
// (classroom_id, name) 唯一索引保证班级内小组名不重复
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Classroom{},
		&models.ClassroomMember{},
		&models.Group{},
		&models.GroupMember{},
		&models.ClassroomContent{},
		&models.StoredFile{},
	)
}
