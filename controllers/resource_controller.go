// file: controllers/resource_controller.go
package controllers

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/Meril1494/Paperly/models"
	"github.com/Meril1494/Paperly/services"
	"github.com/Meril1494/Paperly/storage"
	"github.com/Meril1494/Paperly/utils"
)

type ResourceController struct {
	db      *gorm.DB
	rdb     *redis.Client
	store   storage.Store
	uploads *services.UploadService
}

func NewResourceController(db *gorm.DB, rdb *redis.Client, store storage.Store) *ResourceController {
	return &ResourceController{
		db:      db,
		rdb:     rdb,
		store:   store,
		uploads: services.NewUploadService(db, store),
	}
}

// UploadResource 接收 multipart 文件，校验通过后写入存储并建立 resource 记录
func (ctl *ResourceController) UploadResource(c *gin.Context) {
	classroomID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.Error(c, 1002, "无效的班级ID")
		return
	}
	userIDAny, _ := c.Get("user_id")
	userID := userIDAny.(uint32)

	var classroom models.Classroom
	if err := ctl.db.First(&classroom, classroomID).Error; err != nil {
		utils.Error(c, 4004, "班级不存在")
		return
	}

	isMember, err := isClassroomMember(ctl.db, classroom.ID, userID)
	if err != nil {
		utils.Error(c, 5000, "数据库错误")
		return
	}
	if !isMember {
		utils.Error(c, 4003, "Not a member of this classroom")
		return
	}

	fh, err := c.FormFile("file")
	if err != nil {
		utils.Error(c, 1001, "获取文件失败")
		return
	}
	title := c.PostForm("title")

	record, err := ctl.uploads.UploadResource(c.Request.Context(), classroom.ID, fh, title, userID)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrUnsupportedFileType):
			utils.Error(c, 1003, "unsupported file type")
		case errors.Is(err, services.ErrFileTooLarge):
			utils.Error(c, 1004, "file too large")
		default:
			utils.Error(c, 5001, "文件上传失败: "+err.Error())
		}
		return
	}

	invalidateContentCache(ctl.rdb, classroom.ID)

	utils.Created(c, "Resource uploaded", gin.H{"content": record})
}

// DownloadResource 按文件 ID 下载，返回存储时记录的 Content-Type
func (ctl *ResourceController) DownloadResource(c *gin.Context) {
	fileID := c.Param("file_id")

	var storedFile models.StoredFile
	if err := ctl.db.First(&storedFile, "id = ?", fileID).Error; err != nil {
		utils.Error(c, 4004, "文件不存在")
		return
	}

	reader, err := ctl.store.Open(c.Request.Context(), storedFile.ObjectKey)
	if err != nil {
		utils.Error(c, 5001, "读取文件失败")
		return
	}
	defer reader.Close()

	extraHeaders := map[string]string{
		"Content-Disposition": `attachment; filename="` + storedFile.FileName + `"`,
	}
	c.DataFromReader(200, storedFile.FileSize, storedFile.ContentType, reader, extraHeaders)
}
