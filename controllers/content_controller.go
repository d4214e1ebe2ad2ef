// file: controllers/content_controller.go
package controllers

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/Meril1494/Paperly/dto"
	"github.com/Meril1494/Paperly/models"
	"github.com/Meril1494/Paperly/utils"
)

// 内容列表缓存的有效期；写操作后立即失效，TTL 只是兜底
const contentCacheTTL = 30 * time.Second

func contentCacheKey(classroomID uint32, contentType string) string {
	return fmt.Sprintf("classroom_content:%d:%s", classroomID, contentType)
}

// invalidateContentCache 删除某班级所有类型变体的内容缓存
func invalidateContentCache(rdb *redis.Client, classroomID uint32) {
	if rdb == nil {
		return
	}
	keys := []string{
		contentCacheKey(classroomID, "all"),
		contentCacheKey(classroomID, string(models.ContentTypePost)),
		contentCacheKey(classroomID, string(models.ContentTypeNote)),
		contentCacheKey(classroomID, string(models.ContentTypeResource)),
	}
	rdb.Del(context.Background(), keys...)
}

type ContentController struct {
	db  *gorm.DB
	rdb *redis.Client
}

func NewContentController(db *gorm.DB, rdb *redis.Client) *ContentController {
	return &ContentController{db: db, rdb: rdb}
}

// AddContent 在班级内发布帖子/笔记，或为已上传文件补建 resource 记录
func (ctl *ContentController) AddContent(c *gin.Context) {
	classroomID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.Error(c, 1002, "无效的班级ID")
		return
	}
	userIDAny, _ := c.Get("user_id")
	userID := userIDAny.(uint32)

	var req dto.AddContentReq
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 1001, "参数无效: "+err.Error())
		return
	}
	req.Normalize()
	if req.Title == "" {
		utils.Error(c, 1001, "标题不能为空")
		return
	}

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

	record := models.ClassroomContent{
		ClassroomID: classroom.ID,
		Type:        models.ContentType(req.Type),
		Title:       req.Title,
		Content:     req.Content,
		CreatedBy:   userID,
		CreatedAt:   time.Now(),
	}

	// resource 记录必须引用一个已上传的文件
	if record.Type == models.ContentTypeResource {
		if req.FileID == "" {
			utils.Error(c, 1001, "resource 类型必须携带 file_id")
			return
		}
		var storedFile models.StoredFile
		if err := ctl.db.First(&storedFile, "id = ?", req.FileID).Error; err != nil {
			utils.Error(c, 4004, "文件不存在")
			return
		}
		record.FileID = &storedFile.ID
		record.FileName = storedFile.FileName
		record.FileURL = "/api/resources/" + storedFile.ID
	}

	if err := ctl.db.Create(&record).Error; err != nil {
		utils.Error(c, 5000, "保存内容失败: "+err.Error())
		return
	}

	invalidateContentCache(ctl.rdb, classroom.ID)

	utils.Created(c, "Content added", gin.H{"content": record})
}

// GetClassroomContent 查询班级内容，可按类型过滤，带读穿缓存
func (ctl *ContentController) GetClassroomContent(c *gin.Context) {
	classroomID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.Error(c, 1002, "无效的班级ID")
		return
	}
	userIDAny, _ := c.Get("user_id")
	userID := userIDAny.(uint32)

	contentType := c.Query("type")
	switch contentType {
	case "", string(models.ContentTypePost), string(models.ContentTypeNote), string(models.ContentTypeResource):
	default:
		utils.Error(c, 1001, "无效的内容类型")
		return
	}

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

	cacheVariant := contentType
	if cacheVariant == "" {
		cacheVariant = "all"
	}
	cacheKey := contentCacheKey(classroom.ID, cacheVariant)

	// 1. 尝试从 Redis 获取缓存
	if ctl.rdb != nil {
		val, err := ctl.rdb.Get(c.Request.Context(), cacheKey).Result()
		if err == nil {
			var records []models.ClassroomContent
			if json.Unmarshal([]byte(val), &records) == nil {
				utils.Success(c, "success (from cache)", gin.H{"contents": records})
				return
			}
		}
	}

	var records []models.ClassroomContent
	db := ctl.db.Where("classroom_id = ?", classroom.ID)
	if contentType != "" {
		db = db.Where("type = ?", contentType)
	}
	if err := db.Order("created_at desc, id desc").Find(&records).Error; err != nil {
		utils.Error(c, 5000, "查询内容失败: "+err.Error())
		return
	}

	// 2. 缓存未命中，将查询结果存入 Redis
	if ctl.rdb != nil {
		if jsonData, err := json.Marshal(records); err == nil {
			ctl.rdb.Set(c.Request.Context(), cacheKey, jsonData, contentCacheTTL)
		}
	}

	utils.Success(c, "success", gin.H{"contents": records})
}
