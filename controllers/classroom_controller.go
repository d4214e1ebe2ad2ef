// file: controllers/classroom_controller.go
package controllers

import (
	"log"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Meril1494/Paperly/dto"
	"github.com/Meril1494/Paperly/models"
	"github.com/Meril1494/Paperly/storage"
	"github.com/Meril1494/Paperly/utils"
)

// isClassroomMember 是一个辅助函数，检查用户是否为班级成员（创建者也有成员行）
func isClassroomMember(db *gorm.DB, classroomID, userID uint32) (bool, error) {
	var count int64
	err := db.Model(&models.ClassroomMember{}).
		Where("classroom_id = ? AND user_id = ?", classroomID, userID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

type ClassroomController struct {
	db    *gorm.DB
	rdb   *redis.Client
	store storage.Store
}

func NewClassroomController(db *gorm.DB, rdb *redis.Client, store storage.Store) *ClassroomController {
	return &ClassroomController{db: db, rdb: rdb, store: store}
}

// CreateClassroom 仅 teacher 角色可创建班级（路由层已做角色校验）
func (ctl *ClassroomController) CreateClassroom(c *gin.Context) {
	userIDAny, _ := c.Get("user_id")
	userID := userIDAny.(uint32)

	var req dto.CreateClassroomReq
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 1001, "参数无效: "+err.Error())
		return
	}
	req.Normalize()
	if req.Name == "" {
		utils.Error(c, 1001, "班级名称不能为空")
		return
	}

	// 生成唯一的加入码；码空间足够大，实际上一次就能成功
	var code string
	for {
		code = utils.GenerateClassroomCode()
		var count int64
		ctl.db.Model(&models.Classroom{}).Where("code = ?", code).Count(&count)
		if count == 0 {
			break
		}
	}

	newClassroom := models.Classroom{
		Name:        req.Name,
		Description: req.Description,
		Code:        code,
		CreatedBy:   userID,
	}

	err := ctl.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&newClassroom).Error; err != nil {
			return err
		}
		creatorMember := models.ClassroomMember{
			ClassroomID: newClassroom.ID,
			UserID:      userID,
			JoinedAt:    time.Now(),
		}
		if err := tx.Create(&creatorMember).Error; err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		utils.Error(c, 5000, "创建班级失败: "+err.Error())
		return
	}

	utils.Created(c, "Classroom created", gin.H{
		"classroom": models.NewClassroomInfo(newClassroom),
	})
}

// JoinClassroom 凭加入码加入班级，重复加入是幂等操作
func (ctl *ClassroomController) JoinClassroom(c *gin.Context) {
	userIDAny, _ := c.Get("user_id")
	userID := userIDAny.(uint32)

	var req dto.JoinClassroomReq
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 1001, "参数无效: "+err.Error())
		return
	}
	req.Normalize()

	var classroom models.Classroom
	if err := ctl.db.Where("code = ?", req.Code).First(&classroom).Error; err != nil {
		utils.Error(c, 4004, "Invalid code")
		return
	}

	// 联合唯一索引 + DoNothing：并发重复加入也只会留下一行
	member := models.ClassroomMember{
		ClassroomID: classroom.ID,
		UserID:      userID,
		JoinedAt:    time.Now(),
	}
	err := ctl.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "classroom_id"}, {Name: "user_id"}},
		DoNothing: true,
	}).Create(&member).Error
	if err != nil {
		utils.Error(c, 5000, "加入班级失败: "+err.Error())
		return
	}

	utils.Success(c, "Joined classroom", gin.H{
		"classroom": models.NewClassroomInfo(classroom),
	})
}

// GetMyClassrooms 列出用户创建或加入的全部班级
func (ctl *ClassroomController) GetMyClassrooms(c *gin.Context) {
	userIDAny, _ := c.Get("user_id")
	userID := userIDAny.(uint32)

	var classrooms []models.Classroom
	err := ctl.db.Model(&models.Classroom{}).
		Joins("JOIN paperly_classroom_members m ON m.classroom_id = paperly_classroom.id").
		Where("m.user_id = ?", userID).
		Order("paperly_classroom.id asc").
		Find(&classrooms).Error
	if err != nil {
		utils.Error(c, 5000, "查询班级失败: "+err.Error())
		return
	}

	infos := make([]models.ClassroomInfo, len(classrooms))
	for i, cr := range classrooms {
		infos[i] = models.NewClassroomInfo(cr)
	}

	utils.Success(c, "success", gin.H{"classrooms": infos})
}

// DeleteClassroom 创建者删除班级，级联删除小组、成员、内容记录及文件
func (ctl *ClassroomController) DeleteClassroom(c *gin.Context) {
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
	if classroom.CreatedBy != userID {
		utils.Error(c, 4003, "Unauthorized to delete this classroom")
		return
	}

	// 先收集待删文件的 object key，事务提交后再清理存储
	var storedFiles []models.StoredFile
	ctl.db.Joins("JOIN paperly_classroom_content cc ON cc.file_id = paperly_stored_file.id").
		Where("cc.classroom_id = ?", classroom.ID).
		Find(&storedFiles)

	err = ctl.db.Transaction(func(tx *gorm.DB) error {
		groupIDs := tx.Model(&models.Group{}).Select("id").Where("classroom_id = ?", classroom.ID)
		if err := tx.Where("group_id IN (?)", groupIDs).Delete(&models.GroupMember{}).Error; err != nil {
			return err
		}
		if err := tx.Where("classroom_id = ?", classroom.ID).Delete(&models.Group{}).Error; err != nil {
			return err
		}
		if err := tx.Where("classroom_id = ?", classroom.ID).Delete(&models.ClassroomMember{}).Error; err != nil {
			return err
		}
		if err := tx.Where("classroom_id = ?", classroom.ID).Delete(&models.ClassroomContent{}).Error; err != nil {
			return err
		}
		for _, sf := range storedFiles {
			if err := tx.Delete(&models.StoredFile{}, "id = ?", sf.ID).Error; err != nil {
				return err
			}
		}
		return tx.Delete(&classroom).Error
	})
	if err != nil {
		utils.Error(c, 5000, "删除班级失败: "+err.Error())
		return
	}

	// 存储清理是尽力而为：失败只记日志，文件交给离线清理
	for _, sf := range storedFiles {
		if err := ctl.store.Remove(c.Request.Context(), sf.ObjectKey); err != nil {
			log.Printf("failed to remove blob %s for deleted classroom %d: %v", sf.ObjectKey, classroom.ID, err)
		}
	}

	invalidateContentCache(ctl.rdb, classroom.ID)

	utils.Success(c, "Classroom deleted successfully", nil)
}
