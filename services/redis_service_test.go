package services

import (
	"testing"
	"time"

	"elder-guardian-service/models"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRedisService(t *testing.T) (InterfaceRedisService, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return NewRedisServiceWithClient(client), mr
}

func TestRedisSetGetDelete(t *testing.T) {
	svc, _ := newTestRedisService(t)

	type payload struct {
		Name  string `json:"name"`
		Count int    `json:"count"`
	}

	require.NoError(t, svc.Set("test:key", payload{Name: "张建国", Count: 3}, time.Minute))

	var got payload
	require.NoError(t, svc.Get("test:key", &got))
	assert.Equal(t, "张建国", got.Name)
	assert.Equal(t, 3, got.Count)

	require.NoError(t, svc.Delete("test:key"))
	assert.Error(t, svc.Get("test:key", &got))
}

func TestRedisGetMissingKey(t *testing.T) {
	svc, _ := newTestRedisService(t)

	var dest map[string]interface{}
	assert.ErrorIs(t, svc.Get("missing", &dest), redis.Nil)
}

func TestDashboardStatsCache(t *testing.T) {
	svc, mr := newTestRedisService(t)

	stats := DashboardStats{TotalElderly: 5, ActiveDevices: 3, TodayAlerts: 2, PendingAlerts: 1}
	require.NoError(t, svc.CacheDashboardStats(stats, 10*time.Second))

	var cached DashboardStats
	require.NoError(t, svc.GetDashboardStats(&cached))
	assert.Equal(t, stats, cached)

	// 过期后读不到
	mr.FastForward(11 * time.Second)
	assert.Error(t, svc.GetDashboardStats(&cached))
}

func TestInvalidateDashboardStats(t *testing.T) {
	svc, _ := newTestRedisService(t)

	require.NoError(t, svc.CacheDashboardStats(DashboardStats{TotalElderly: 1}, time.Minute))
	require.NoError(t, svc.InvalidateDashboardStats())

	var cached DashboardStats
	assert.Error(t, svc.GetDashboardStats(&cached))
}

func TestDashboardSummaryUsesCache(t *testing.T) {
	db := setupTestDB(t)
	cfg := testConfig()
	redisSvc, _ := newTestRedisService(t)
	activitySvc := NewActivityService(db, cfg)
	alertSvc := NewAlertService(db, cfg, activitySvc, redisSvc)
	statsSvc := NewStatsService(db, cfg, activitySvc, alertSvc, redisSvc)

	createTestElderly(t, db, "张建国", "13800000001")

	first, err := statsSvc.DashboardSummary()
	require.NoError(t, err)
	assert.Equal(t, int64(1), first.TotalElderly)

	// 第二个老人入库，但10秒缓存还在，计数不变
	createTestElderly(t, db, "李秀英", "13800000002")
	cached, err := statsSvc.DashboardSummary()
	require.NoError(t, err)
	assert.Equal(t, int64(1), cached.TotalElderly)

	// 新报警写入使缓存失效，重新计数
	elderly := createTestElderly(t, db, "王福全", "13800000003")
	_, err = alertSvc.Raise(elderly.ID, models.AlertTypeSOS, models.AlertLevelHigh, "老人发起SOS求救", "")
	require.NoError(t, err)

	fresh, err := statsSvc.DashboardSummary()
	require.NoError(t, err)
	assert.Equal(t, int64(3), fresh.TotalElderly)
	assert.Equal(t, int64(1), fresh.PendingAlerts)
}
