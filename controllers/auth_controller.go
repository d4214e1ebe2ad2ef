// file: controllers/auth_controller.go
package controllers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/Meril1494/Paperly/models"
	"github.com/Meril1494/Paperly/utils"
)

type AuthController struct {
	db *gorm.DB
}

func NewAuthController(db *gorm.DB) *AuthController {
	return &AuthController{db: db}
}

// --- 公开接口 ---

func (ctl *AuthController) Register(c *gin.Context) {
	var req struct {
		Name     string `json:"name" binding:"required"`
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required,min=8"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 1001, "参数无效: "+err.Error())
		return
	}

	var user models.User
	if err := ctl.db.Where("email = ?", req.Email).First(&user).Error; err == nil {
		utils.Error(c, 2001, "邮箱已被注册")
		return
	}

	// 角色由服务端指定，注册一律为 student，忽略客户端提交的任何角色字段
	newUser := models.User{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Role:     models.RoleStudent,
	}
	if err := ctl.db.Create(&newUser).Error; err != nil {
		utils.Error(c, 5000, "数据库错误: "+err.Error())
		return
	}

	token, err := utils.GenerateToken(newUser)
	if err != nil {
		utils.Error(c, 5002, "Token 生成失败")
		return
	}

	utils.Created(c, "User registered successfully", gin.H{
		"token": token,
		"user": gin.H{
			"id":    newUser.ID,
			"name":  newUser.Name,
			"email": newUser.Email,
			"role":  newUser.Role,
		},
	})
}

func (ctl *AuthController) Login(c *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 1001, "参数无效: "+err.Error())
		return
	}

	var user models.User
	if err := ctl.db.Where("email = ?", req.Email).First(&user).Error; err != nil {
		utils.Error(c, 2002, "用户不存在或密码错误")
		return
	}
	if !user.CheckPassword(req.Password) {
		utils.Error(c, 2002, "用户不存在或密码错误")
		return
	}

	token, err := utils.GenerateToken(user)
	if err != nil {
		utils.Error(c, 5002, "Token 生成失败")
		return
	}

	utils.Success(c, "Login success", gin.H{
		"token": token,
		"user": gin.H{
			"id":    user.ID,
			"name":  user.Name,
			"email": user.Email,
			"role":  user.Role,
		},
	})
}

// --- 仅管理员可访问的接口 ---

// UpdateUserRole 管理员授予/收回 teacher 角色
func (ctl *AuthController) UpdateUserRole(c *gin.Context) {
	targetUserID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.Error(c, 1002, "无效的用户ID")
		return
	}

	var req struct {
		Role models.UserRole `json:"role" binding:"required,oneof=student teacher"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 1001, "无效的角色")
		return
	}

	var user models.User
	if err := ctl.db.First(&user, targetUserID).Error; err != nil {
		utils.Error(c, 4004, "用户不存在")
		return
	}
	if user.Role == models.RoleAdmin {
		utils.Error(c, 2003, "Admin cannot be modified")
		return
	}

	if err := ctl.db.Model(&user).Update("role", req.Role).Error; err != nil {
		utils.Error(c, 5000, "数据库错误: "+err.Error())
		return
	}

	utils.Success(c, "Role updated successfully", gin.H{
		"user_id": user.ID,
		"role":    req.Role,
	})
}
