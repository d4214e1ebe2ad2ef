// file: controllers/group_controller.go
package controllers

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Meril1494/Paperly/dto"
	"github.com/Meril1494/Paperly/models"
	"github.com/Meril1494/Paperly/utils"
)

type GroupController struct {
	db *gorm.DB
}

func NewGroupController(db *gorm.DB) *GroupController {
	return &GroupController{db: db}
}

// CreateGroup 班级成员在班级内创建小组；私有小组生成 6 位大写加入码
func (ctl *GroupController) CreateGroup(c *gin.Context) {
	userIDAny, _ := c.Get("user_id")
	userID := userIDAny.(uint32)

	var req dto.CreateGroupReq
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 1001, "参数无效: "+err.Error())
		return
	}
	req.Normalize()
	if req.Name == "" {
		utils.Error(c, 1001, "小组名称不能为空")
		return
	}

	var classroom models.Classroom
	if err := ctl.db.First(&classroom, req.ClassroomID).Error; err != nil {
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

	var existingGroup models.Group
	if err := ctl.db.Where("classroom_id = ? AND name = ?", classroom.ID, req.Name).First(&existingGroup).Error; err == nil {
		utils.Error(c, 2001, "Group name already exists in this classroom")
		return
	}

	newGroup := models.Group{
		ClassroomID: classroom.ID,
		Name:        req.Name,
		Description: req.Description,
		GroupType:   models.GroupType(req.GroupType),
		CreatedBy:   userID,
	}

	if newGroup.GroupType == models.GroupTypePrivate {
		// 生成全局唯一的小组加入码
		for {
			code := utils.GenerateGroupCode(6)
			var count int64
			ctl.db.Model(&models.Group{}).Where("join_code = ?", code).Count(&count)
			if count == 0 {
				newGroup.JoinCode = &code
				break
			}
		}
	}

	err = ctl.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&newGroup).Error; err != nil {
			return err
		}
		creatorMember := models.GroupMember{
			GroupID:  newGroup.ID,
			UserID:   userID,
			JoinedAt: time.Now(),
		}
		if err := tx.Create(&creatorMember).Error; err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		// 并发创建同名小组时由联合唯一索引兜底
		utils.Error(c, 2001, "Group name already exists in this classroom")
		return
	}

	utils.Created(c, "Group created successfully", gin.H{
		"group": models.NewGroupInfo(newGroup, true),
	})
}

// JoinGroup 按小组 ID 或加入码加入；必须先是所属班级的成员，
// 私有小组还必须提供正确的加入码（大小写不敏感）
func (ctl *GroupController) JoinGroup(c *gin.Context) {
	userIDAny, _ := c.Get("user_id")
	userID := userIDAny.(uint32)

	var req dto.JoinGroupReq
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 1001, "参数无效: "+err.Error())
		return
	}
	req.Normalize()
	if req.GroupID == 0 && req.JoinCode == "" {
		utils.Error(c, 1001, "Group ID or join code required")
		return
	}

	var group models.Group
	if req.GroupID != 0 {
		if err := ctl.db.First(&group, req.GroupID).Error; err != nil {
			utils.Error(c, 4004, "Group not found")
			return
		}
	} else {
		if err := ctl.db.Where("join_code = ?", req.JoinCode).First(&group).Error; err != nil {
			utils.Error(c, 4004, "Group not found")
			return
		}
	}

	isMember, err := isClassroomMember(ctl.db, group.ClassroomID, userID)
	if err != nil {
		utils.Error(c, 5000, "数据库错误")
		return
	}
	if !isMember {
		utils.Error(c, 4003, "Not a member of this classroom")
		return
	}

	if group.GroupType == models.GroupTypePrivate {
		if group.JoinCode == nil || req.JoinCode != *group.JoinCode {
			utils.Error(c, 4003, "Invalid group code")
			return
		}
	}

	member := models.GroupMember{
		GroupID:  group.ID,
		UserID:   userID,
		JoinedAt: time.Now(),
	}
	err = ctl.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "group_id"}, {Name: "user_id"}},
		DoNothing: true,
	}).Create(&member).Error
	if err != nil {
		utils.Error(c, 5000, "加入小组失败: "+err.Error())
		return
	}

	utils.Success(c, "Joined group successfully", gin.H{
		"group": models.NewGroupInfo(group, group.CreatedBy == userID),
	})
}

// LeaveGroup 成员退出小组；从未加入过也返回成功（幂等）
func (ctl *GroupController) LeaveGroup(c *gin.Context) {
	groupID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.Error(c, 1002, "无效的小组ID")
		return
	}
	userIDAny, _ := c.Get("user_id")
	userID := userIDAny.(uint32)

	var group models.Group
	if err := ctl.db.First(&group, groupID).Error; err != nil {
		utils.Error(c, 4004, "Group not found")
		return
	}

	if err := ctl.db.Where("group_id = ? AND user_id = ?", group.ID, userID).Delete(&models.GroupMember{}).Error; err != nil {
		utils.Error(c, 5000, "退出小组失败: "+err.Error())
		return
	}

	utils.Success(c, "Left group successfully", nil)
}

// DeleteGroup 仅创建者可解散小组；内容记录属于班级，不随小组删除
func (ctl *GroupController) DeleteGroup(c *gin.Context) {
	groupID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.Error(c, 1002, "无效的小组ID")
		return
	}
	userIDAny, _ := c.Get("user_id")
	userID := userIDAny.(uint32)

	var group models.Group
	if err := ctl.db.First(&group, groupID).Error; err != nil {
		utils.Error(c, 4004, "Group not found")
		return
	}

	if group.CreatedBy != userID {
		utils.Error(c, 4003, "Unauthorized to delete this group")
		return
	}

	err = ctl.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("group_id = ?", group.ID).Delete(&models.GroupMember{}).Error; err != nil {
			return err
		}
		return tx.Delete(&group).Error
	})
	if err != nil {
		utils.Error(c, 5000, "解散小组失败: "+err.Error())
		return
	}

	utils.Success(c, "Group deleted successfully", nil)
}

// ListClassroomGroups 列出班级内全部小组；加入码只展示给各小组的创建者
func (ctl *GroupController) ListClassroomGroups(c *gin.Context) {
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

	var groups []models.Group
	if err := ctl.db.Where("classroom_id = ?", classroom.ID).Order("id asc").Find(&groups).Error; err != nil {
		utils.Error(c, 5000, "查询小组失败: "+err.Error())
		return
	}

	infos := make([]models.GroupInfo, len(groups))
	for i, g := range groups {
		infos[i] = models.NewGroupInfo(g, g.CreatedBy == userID)
	}

	utils.Success(c, "success", gin.H{"groups": infos})
}
