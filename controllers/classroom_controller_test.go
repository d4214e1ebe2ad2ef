// file: controllers/classroom_controller_test.go
package controllers_test

import (
	"encoding/hex"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Meril1494/Paperly/models"
)

func TestCreateClassroomRequiresTeacherRole(t *testing.T) {
	r, _, _ := setupRouter(t)

	studentToken, _ := registerUser(t, r, "Student", "student@example.com")
	w := doJSON(r, "POST", "/api/classrooms", `{"name":"Algebra"}`, studentToken)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestCreateClassroomEmptyName(t *testing.T) {
	r, db, _ := setupRouter(t)

	_, teacherID := registerUser(t, r, "Teacher", "teacher@example.com")
	teacherToken := promote(t, db, teacherID, models.RoleTeacher)

	w := doJSON(r, "POST", "/api/classrooms", `{"name":"   "}`, teacherToken)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateAndJoinClassroom(t *testing.T) {
	r, db, _ := setupRouter(t)

	_, teacherID := registerUser(t, r, "Teacher", "teacher@example.com")
	teacherToken := promote(t, db, teacherID, models.RoleTeacher)

	classroomID, code := createClassroom(t, r, teacherToken, "Algebra")

	// 加入码是 6 位十六进制
	require.Len(t, code, 6)
	_, err := hex.DecodeString(code)
	require.NoError(t, err)

	// 创建者自动成为唯一成员
	assert.EqualValues(t, 1, classroomMemberCount(t, db, classroomID))

	studentToken, _ := registerUser(t, r, "Student", "student@example.com")
	w := doJSON(r, "POST", "/api/classrooms/join", fmt.Sprintf(`{"code":%q}`, code), studentToken)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.EqualValues(t, 2, classroomMemberCount(t, db, classroomID))

	// 重复加入是幂等操作，成员数不变
	w = doJSON(r, "POST", "/api/classrooms/join", fmt.Sprintf(`{"code":%q}`, code), studentToken)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.EqualValues(t, 2, classroomMemberCount(t, db, classroomID))
}

func TestJoinClassroomInvalidCode(t *testing.T) {
	r, _, _ := setupRouter(t)

	token, _ := registerUser(t, r, "Student", "student@example.com")
	w := doJSON(r, "POST", "/api/classrooms/join", `{"code":"ffffff"}`, token)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetMyClassrooms(t *testing.T) {
	r, db, _ := setupRouter(t)

	_, teacherID := registerUser(t, r, "Teacher", "teacher@example.com")
	teacherToken := promote(t, db, teacherID, models.RoleTeacher)

	_, codeA := createClassroom(t, r, teacherToken, "Algebra")
	createClassroom(t, r, teacherToken, "Biology")

	studentToken, _ := registerUser(t, r, "Student", "student@example.com")
	w := doJSON(r, "POST", "/api/classrooms/join", fmt.Sprintf(`{"code":%q}`, codeA), studentToken)
	require.Equal(t, http.StatusOK, w.Code)

	var teacherData struct {
		Classrooms []struct {
			Name string `json:"name"`
		} `json:"classrooms"`
	}
	w = doJSON(r, "GET", "/api/classrooms/mine", "", teacherToken)
	require.Equal(t, http.StatusOK, w.Code)
	decodeData(t, w, &teacherData)
	assert.Len(t, teacherData.Classrooms, 2)

	var studentData struct {
		Classrooms []struct {
			Name string `json:"name"`
		} `json:"classrooms"`
	}
	w = doJSON(r, "GET", "/api/classrooms/mine", "", studentToken)
	require.Equal(t, http.StatusOK, w.Code)
	decodeData(t, w, &studentData)
	require.Len(t, studentData.Classrooms, 1)
	assert.Equal(t, "Algebra", studentData.Classrooms[0].Name)
}

func TestDeleteClassroomCascades(t *testing.T) {
	r, db, _ := setupRouter(t)

	_, teacherID := registerUser(t, r, "Teacher", "teacher@example.com")
	teacherToken := promote(t, db, teacherID, models.RoleTeacher)
	classroomID, code := createClassroom(t, r, teacherToken, "Algebra")

	studentToken, _ := registerUser(t, r, "Student", "student@example.com")
	w := doJSON(r, "POST", "/api/classrooms/join", fmt.Sprintf(`{"code":%q}`, code), studentToken)
	require.Equal(t, http.StatusOK, w.Code)

	group := createGroup(t, r, studentToken, classroomID, "Study Crew", "public")

	w = doJSON(r, "POST", fmt.Sprintf("/api/classrooms/%d/content", classroomID),
		`{"type":"post","title":"Welcome","content":"hello"}`, teacherToken)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	// 非创建者无权删除
	w = doJSON(r, "DELETE", fmt.Sprintf("/api/classrooms/%d", classroomID), "", studentToken)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = doJSON(r, "DELETE", fmt.Sprintf("/api/classrooms/%d", classroomID), "", teacherToken)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var count int64
	db.Model(&models.Group{}).Where("classroom_id = ?", classroomID).Count(&count)
	assert.Zero(t, count)
	db.Model(&models.GroupMember{}).Where("group_id = ?", group.Group.ID).Count(&count)
	assert.Zero(t, count)
	db.Model(&models.ClassroomMember{}).Where("classroom_id = ?", classroomID).Count(&count)
	assert.Zero(t, count)
	db.Model(&models.ClassroomContent{}).Where("classroom_id = ?", classroomID).Count(&count)
	assert.Zero(t, count)

	w = doJSON(r, "DELETE", fmt.Sprintf("/api/classrooms/%d", classroomID), "", teacherToken)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
