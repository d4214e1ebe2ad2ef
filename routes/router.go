// file: routes/router.go
package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/Meril1494/Paperly/controllers"
	"github.com/Meril1494/Paperly/middlewares"
	"github.com/Meril1494/Paperly/models"
	"github.com/Meril1494/Paperly/storage"
)

// SetupRouter 构造全部 controller 并注册路由
// rdb 可以为 nil（例如测试环境），此时内容列表缓存被禁用
func SetupRouter(db *gorm.DB, rdb *redis.Client, store storage.Store) *gin.Engine {
	r := gin.Default()

	authCtl := controllers.NewAuthController(db)
	classroomCtl := controllers.NewClassroomController(db, rdb, store)
	groupCtl := controllers.NewGroupController(db)
	contentCtl := controllers.NewContentController(db, rdb)
	resourceCtl := controllers.NewResourceController(db, rdb, store)

	api := r.Group("/api")
	{
		authRoutes := api.Group("/auth")
		{
			authRoutes.POST("/register", authCtl.Register)
			authRoutes.POST("/login", authCtl.Login)
		}

		userRoutes := api.Group("/users")
		userRoutes.Use(middlewares.JWTAuthMiddleware(), middlewares.RoleAuthMiddleware(models.RoleAdmin))
		{
			userRoutes.PUT("/:id/role", authCtl.UpdateUserRole)
		}

		classroomRoutes := api.Group("/classrooms")
		classroomRoutes.Use(middlewares.JWTAuthMiddleware())
		{
			classroomRoutes.POST("", middlewares.RoleAuthMiddleware(models.RoleTeacher), classroomCtl.CreateClassroom)
			classroomRoutes.POST("/join", classroomCtl.JoinClassroom)
			classroomRoutes.GET("/mine", classroomCtl.GetMyClassrooms)
			classroomRoutes.DELETE("/:id", classroomCtl.DeleteClassroom)
			classroomRoutes.GET("/:id/groups", groupCtl.ListClassroomGroups)
			classroomRoutes.POST("/:id/content", contentCtl.AddContent)
			classroomRoutes.GET("/:id/content", contentCtl.GetClassroomContent)
			classroomRoutes.POST("/:id/resources", resourceCtl.UploadResource)
		}

		groupRoutes := api.Group("/groups")
		groupRoutes.Use(middlewares.JWTAuthMiddleware())
		{
			groupRoutes.POST("", groupCtl.CreateGroup)
			groupRoutes.POST("/join", groupCtl.JoinGroup)
			groupRoutes.POST("/:id/leave", groupCtl.LeaveGroup)
			groupRoutes.DELETE("/:id", groupCtl.DeleteGroup)
		}

		resourceRoutes := api.Group("/resources")
		resourceRoutes.Use(middlewares.JWTAuthMiddleware())
		{
			resourceRoutes.GET("/:file_id", resourceCtl.DownloadResource)
		}
	}

	return r
}
