package routes

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"elder-guardian-service/config"
	"elder-guardian-service/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type apiResponse struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func setupTestRouter(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.Admin{},
		&models.ElderlyUser{},
		&models.GuardianUser{},
		&models.GuardianElderlyRelation{},
		&models.MonitoringDevice{},
		&models.ActivityRecord{},
		&models.LocationRecord{},
		&models.AlertRecord{},
	))

	cfg := &config.Config{
		JWTSecretKey:         "routes-test-secret",
		DefaultAdminPassword: "admin123",
		LowBatteryThreshold:  20,
	}
	return SetupRouter(db, cfg), db
}

func doRequest(t *testing.T, r *gin.Engine, method, path, token string, body interface{}) (*httptest.ResponseRecorder, apiResponse) {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var resp apiResponse
	if len(w.Body.Bytes()) > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	}
	return w, resp
}

func loginToken(t *testing.T, r *gin.Engine, path string, body interface{}) string {
	t.Helper()
	w, resp := doRequest(t, r, http.MethodPost, path, "", body)
	require.Equal(t, http.StatusOK, w.Code, "login failed: %s", w.Body.String())

	var payload struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(resp.Data, &payload))
	require.NotEmpty(t, payload.Token)
	return payload.Token
}

func TestPing(t *testing.T) {
	r, _ := setupTestRouter(t)

	w, resp := doRequest(t, r, http.MethodGet, "/api/ping", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "pong", resp.Message)
}

func TestElderlyLoginAndProfile(t *testing.T) {
	r, db := setupTestRouter(t)

	elderly := &models.ElderlyUser{Name: "张建国", Phone: "13800000001"}
	require.NoError(t, db.Create(elderly).Error)

	token := loginToken(t, r, "/api/auth/login/elderly", gin.H{"phone": "13800000001"})

	w, resp := doRequest(t, r, http.MethodGet, "/api/elderly/profile", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var profile models.ElderlyUser
	require.NoError(t, json.Unmarshal(resp.Data, &profile))
	assert.Equal(t, "张建国", profile.Name)
}

func TestLoginUnknownPhone(t *testing.T) {
	r, _ := setupTestRouter(t)

	w, _ := doRequest(t, r, http.MethodPost, "/api/auth/login/elderly", "", gin.H{"phone": "13899999999"})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestProtectedRouteRequiresToken(t *testing.T) {
	r, _ := setupTestRouter(t)

	w, _ := doRequest(t, r, http.MethodGet, "/api/elderly/profile", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRoleMismatchForbidden(t *testing.T) {
	r, db := setupTestRouter(t)

	guardian := &models.GuardianUser{Name: "张晓明", Phone: "13900000001"}
	require.NoError(t, db.Create(guardian).Error)

	token := loginToken(t, r, "/api/auth/login/guardian", gin.H{"phone": "13900000001"})

	// 监护人令牌访问老人端接口被拒绝
	w, _ := doRequest(t, r, http.MethodGet, "/api/elderly/profile", token, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestFallStatusReportRaisesAlert(t *testing.T) {
	r, db := setupTestRouter(t)

	elderly := &models.ElderlyUser{Name: "张建国", Phone: "13800000001"}
	require.NoError(t, db.Create(elderly).Error)

	token := loginToken(t, r, "/api/auth/login/elderly", gin.H{"phone": "13800000001"})

	w, _ := doRequest(t, r, http.MethodPost, "/api/elderly/status", token, gin.H{"status": "fallen"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var alerts []models.AlertRecord
	require.NoError(t, db.Where("elderly_id = ?", elderly.ID).Find(&alerts).Error)
	require.Len(t, alerts, 1)
	assert.Equal(t, models.AlertTypeFall, alerts[0].Type)
	assert.Equal(t, models.AlertStatusPending, alerts[0].Status)
}

func TestNormalStatusReportNoAlert(t *testing.T) {
	r, db := setupTestRouter(t)

	elderly := &models.ElderlyUser{Name: "张建国", Phone: "13800000001"}
	require.NoError(t, db.Create(elderly).Error)

	token := loginToken(t, r, "/api/auth/login/elderly", gin.H{"phone": "13800000001"})

	w, _ := doRequest(t, r, http.MethodPost, "/api/elderly/status", token, gin.H{"status": "walking"})
	require.Equal(t, http.StatusOK, w.Code)

	var count int64
	require.NoError(t, db.Model(&models.AlertRecord{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestGuardianBindAndElderlyList(t *testing.T) {
	r, db := setupTestRouter(t)

	guardian := &models.GuardianUser{Name: "张晓明", Phone: "13900000001"}
	require.NoError(t, db.Create(guardian).Error)
	elderly := &models.ElderlyUser{Name: "张建国", Phone: "13800000001"}
	require.NoError(t, db.Create(elderly).Error)

	token := loginToken(t, r, "/api/auth/login/guardian", gin.H{"phone": "13900000001"})

	w, _ := doRequest(t, r, http.MethodPost, "/api/guardian/bind", token, gin.H{"phone": "13800000001"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	// 重复绑定返回400
	w, _ = doRequest(t, r, http.MethodPost, "/api/guardian/bind", token, gin.H{"phone": "13800000001"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, resp := doRequest(t, r, http.MethodGet, "/api/guardian/elderly", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var list []map[string]interface{}
	require.NoError(t, json.Unmarshal(resp.Data, &list))
	require.Len(t, list, 1)
	assert.Equal(t, "张建国", list[0]["name"])
	assert.NotNil(t, list[0]["status"])
}

func TestAdminAlertLifecycleOverHTTP(t *testing.T) {
	r, db := setupTestRouter(t)

	admin := &models.Admin{Username: "admin", Password: "admin123", Name: "系统管理员"}
	require.NoError(t, db.Create(admin).Error)

	elderly := &models.ElderlyUser{Name: "张建国", Phone: "13800000001"}
	require.NoError(t, db.Create(elderly).Error)
	elderlyToken := loginToken(t, r, "/api/auth/login/elderly", gin.H{"phone": "13800000001"})

	// 老人发起SOS产生报警
	w, _ := doRequest(t, r, http.MethodPost, "/api/elderly/sos", elderlyToken, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var alert models.AlertRecord
	require.NoError(t, db.First(&alert).Error)

	adminToken := loginToken(t, r, "/api/auth/login/admin", gin.H{"username": "admin", "password": "admin123"})

	alertPath := fmt.Sprintf("/api/alerts/%d", alert.ID)

	// 未确认直接解决被拒绝
	w, _ = doRequest(t, r, http.MethodPut, alertPath, adminToken, gin.H{"action": "resolve"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, _ = doRequest(t, r, http.MethodPut, alertPath, adminToken, gin.H{"action": "confirm", "handler": "值班管理员"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w, resp := doRequest(t, r, http.MethodPut, alertPath, adminToken, gin.H{"action": "resolve", "handler": "值班管理员"})
	require.Equal(t, http.StatusOK, w.Code)

	var resolved models.AlertRecord
	require.NoError(t, json.Unmarshal(resp.Data, &resolved))
	assert.Equal(t, models.AlertStatusResolved, resolved.Status)
	assert.Equal(t, "值班管理员", resolved.ResolvedBy)
}

func TestAdminLoginWrongPassword(t *testing.T) {
	r, db := setupTestRouter(t)

	admin := &models.Admin{Username: "admin", Password: "admin123", Name: "系统管理员"}
	require.NoError(t, db.Create(admin).Error)

	w, _ := doRequest(t, r, http.MethodPost, "/api/auth/login/admin", "", gin.H{"username": "admin", "password": "nope"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestStatsHistoryAccessControl(t *testing.T) {
	r, db := setupTestRouter(t)

	first := &models.ElderlyUser{Name: "张建国", Phone: "13800000001"}
	require.NoError(t, db.Create(first).Error)
	second := &models.ElderlyUser{Name: "李秀英", Phone: "13800000002"}
	require.NoError(t, db.Create(second).Error)

	token := loginToken(t, r, "/api/auth/login/elderly", gin.H{"phone": "13800000001"})

	// 本人记录可以查询
	w, _ := doRequest(t, r, http.MethodGet, fmt.Sprintf("/api/stats/history/%d", first.ID), token, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	// 他人记录被拒绝
	w, _ = doRequest(t, r, http.MethodGet, fmt.Sprintf("/api/stats/history/%d", second.ID), token, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
}
