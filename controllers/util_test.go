// file: controllers/util_test.go
package controllers_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/Meril1494/Paperly/database"
	"github.com/Meril1494/Paperly/models"
	"github.com/Meril1494/Paperly/routes"
	"github.com/Meril1494/Paperly/storage"
	"github.com/Meril1494/Paperly/utils"
)

// setupRouter 构造测试环境：独立的内存 sqlite、临时目录存储、无缓存
func setupRouter(t *testing.T) (http.Handler, *gorm.DB, string) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	utils.InitJWT("test-secret")

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	uploadDir := t.TempDir()
	store, err := storage.NewDiskStore(uploadDir)
	require.NoError(t, err)

	return routes.SetupRouter(db, nil, store), db, uploadDir
}

func doJSON(r http.Handler, method, path, body, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// decodeData 解出响应 envelope 中的 data 字段
func decodeData(t *testing.T, w *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	var resp struct {
		Code int             `json:"code"`
		Msg  string          `json:"msg"`
		Data json.RawMessage `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	if out != nil {
		require.NoError(t, json.Unmarshal(resp.Data, out))
	}
}

func respMsg(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var resp struct {
		Msg string `json:"msg"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp.Msg
}

// registerUser 注册并返回 token 和用户 ID
func registerUser(t *testing.T, r http.Handler, name, email string) (string, uint32) {
	t.Helper()
	body := fmt.Sprintf(`{"name":%q,"email":%q,"password":"password123"}`, name, email)
	w := doJSON(r, "POST", "/api/auth/register", body, "")
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var data struct {
		Token string `json:"token"`
		User  struct {
			ID uint32 `json:"id"`
		} `json:"user"`
	}
	decodeData(t, w, &data)
	return data.Token, data.User.ID
}

// promote 直接改库提升角色并重新签发携带新角色的 token
func promote(t *testing.T, db *gorm.DB, userID uint32, role models.UserRole) string {
	t.Helper()
	require.NoError(t, db.Model(&models.User{}).Where("id = ?", userID).Update("role", role).Error)

	var user models.User
	require.NoError(t, db.First(&user, userID).Error)
	token, err := utils.GenerateToken(user)
	require.NoError(t, err)
	return token
}

type classroomResp struct {
	Classroom struct {
		ID          uint32 `json:"id"`
		Name        string `json:"name"`
		Description string `json:"description"`
		Code        string `json:"code"`
		CreatedBy   uint32 `json:"created_by"`
	} `json:"classroom"`
}

// createClassroom 以 teacher 身份创建班级，返回 ID 和加入码
func createClassroom(t *testing.T, r http.Handler, token, name string) (uint32, string) {
	t.Helper()
	body := fmt.Sprintf(`{"name":%q,"description":"test classroom"}`, name)
	w := doJSON(r, "POST", "/api/classrooms", body, token)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var data classroomResp
	decodeData(t, w, &data)
	return data.Classroom.ID, data.Classroom.Code
}

type groupResp struct {
	Group struct {
		ID          uint32 `json:"id"`
		ClassroomID uint32 `json:"classroom_id"`
		Name        string `json:"name"`
		GroupType   string `json:"group_type"`
		JoinCode    string `json:"join_code"`
		CreatedBy   uint32 `json:"created_by"`
	} `json:"group"`
}

func createGroup(t *testing.T, r http.Handler, token string, classroomID uint32, name, groupType string) groupResp {
	t.Helper()
	body := fmt.Sprintf(`{"classroom_id":%d,"name":%q,"group_type":%q}`, classroomID, name, groupType)
	w := doJSON(r, "POST", "/api/groups", body, token)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var data groupResp
	decodeData(t, w, &data)
	return data
}

func classroomMemberCount(t *testing.T, db *gorm.DB, classroomID uint32) int64 {
	t.Helper()
	var count int64
	require.NoError(t, db.Model(&models.ClassroomMember{}).Where("classroom_id = ?", classroomID).Count(&count).Error)
	return count
}

func groupMemberCount(t *testing.T, db *gorm.DB, groupID uint32) int64 {
	t.Helper()
	var count int64
	require.NoError(t, db.Model(&models.GroupMember{}).Where("group_id = ?", groupID).Count(&count).Error)
	return count
}
