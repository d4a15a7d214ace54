package services

import (
	"testing"
	"time"

	"elder-guardian-service/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStatsTestServices(t *testing.T) (InterfaceStatsService, InterfaceActivityService, InterfaceAlertService, *models.ElderlyUser) {
	db := setupTestDB(t)
	cfg := testConfig()
	activitySvc := NewActivityService(db, cfg)
	alertSvc := NewAlertService(db, cfg, activitySvc, nil)
	statsSvc := NewStatsService(db, cfg, activitySvc, alertSvc, nil)
	elderly := createTestElderly(t, db, "张建国", "13800000001")
	return statsSvc, activitySvc, alertSvc, elderly
}

func TestCurrentStatusForEmptyIsZeroValued(t *testing.T) {
	statsSvc, _, _, elderly := newStatsTestServices(t)

	status, err := statsSvc.CurrentStatusFor(elderly.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ActivityUnknown, status.ActivityState)
	assert.Equal(t, "未知", status.ActivityLabel)
	assert.Equal(t, models.UnknownLocation, status.LocationDesc)
	assert.False(t, status.IsFall)
	assert.Zero(t, status.BatteryLevel)
	assert.Nil(t, status.LastReportTime)
}

func TestCurrentStatusForAggregates(t *testing.T) {
	db := setupTestDB(t)
	cfg := testConfig()
	activitySvc := NewActivityService(db, cfg)
	statsSvc := NewStatsService(db, cfg, activitySvc, NewAlertService(db, cfg, activitySvc, nil), nil)

	elderly := createTestElderly(t, db, "张建国", "13800000001")
	device := createTestDevice(t, db, "EG-001", &elderly.ID)
	require.NoError(t, db.Model(device).Updates(map[string]interface{}{"battery_level": 60, "is_online": true}).Error)

	_, err := activitySvc.AppendActivity(elderly.ID, models.ActivityFallen, "", time.Now())
	require.NoError(t, err)
	_, err = activitySvc.AppendLocation(elderly.ID, 39.92, 116.46, "朝阳公园", time.Now())
	require.NoError(t, err)

	status, err := statsSvc.CurrentStatusFor(elderly.ID)
	require.NoError(t, err)
	assert.True(t, status.IsFall)
	assert.Equal(t, "跌倒", status.ActivityLabel)
	assert.Equal(t, "朝阳公园", status.LocationDesc)
	assert.Equal(t, 60, status.BatteryLevel)
	assert.True(t, status.IsOnline)
	assert.Equal(t, device.ID, status.DeviceID)
	require.NotNil(t, status.LastReportTime)
}

func TestAllStatusesKeyedByElderly(t *testing.T) {
	db := setupTestDB(t)
	cfg := testConfig()
	activitySvc := NewActivityService(db, cfg)
	statsSvc := NewStatsService(db, cfg, activitySvc, NewAlertService(db, cfg, activitySvc, nil), nil)

	first := createTestElderly(t, db, "张建国", "13800000001")
	second := createTestElderly(t, db, "李秀英", "13800000002")

	statuses, err := statsSvc.AllStatuses()
	require.NoError(t, err)
	require.Len(t, statuses, 2)
	assert.Contains(t, statuses, first.ID)
	assert.Contains(t, statuses, second.ID)
}

func TestDashboardSummaryCounts(t *testing.T) {
	db := setupTestDB(t)
	cfg := testConfig()
	activitySvc := NewActivityService(db, cfg)
	alertSvc := NewAlertService(db, cfg, activitySvc, nil)
	statsSvc := NewStatsService(db, cfg, activitySvc, alertSvc, nil)

	elderly := createTestElderly(t, db, "张建国", "13800000001")
	createTestElderly(t, db, "李秀英", "13800000002")

	online := createTestDevice(t, db, "EG-001", &elderly.ID)
	require.NoError(t, db.Model(online).Update("is_online", true).Error)
	createTestDevice(t, db, "EG-002", nil)

	alert, err := alertSvc.Raise(elderly.ID, models.AlertTypeSOS, models.AlertLevelHigh, "老人发起SOS求救", "")
	require.NoError(t, err)
	_, err = alertSvc.Raise(elderly.ID, models.AlertTypeFall, models.AlertLevelHigh, "检测到老人跌倒", "")
	require.NoError(t, err)
	_, err = alertSvc.Confirm(alert.ID, "张晓明")
	require.NoError(t, err)

	stats, err := statsSvc.DashboardSummary()
	require.NoError(t, err)
	assert.Equal(t, int64(2), stats.TotalElderly)
	assert.Equal(t, int64(1), stats.ActiveDevices)
	assert.Equal(t, int64(2), stats.TodayAlerts)
	assert.Equal(t, int64(1), stats.PendingAlerts)
}

func TestResolveRange(t *testing.T) {
	statsSvc, _, _, _ := newStatsTestServices(t)

	now := time.Now()
	todayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	start, end := statsSvc.ResolveRange(RangeYesterday)
	assert.Equal(t, todayStart.AddDate(0, 0, -1), start)
	assert.True(t, end.Before(todayStart))

	start, _ = statsSvc.ResolveRange(RangeWeek)
	assert.Equal(t, todayStart.AddDate(0, 0, -7), start)

	start, _ = statsSvc.ResolveRange(RangeMonth)
	assert.Equal(t, todayStart.AddDate(0, 0, -30), start)

	// 未知范围按一周处理
	start, _ = statsSvc.ResolveRange("bogus")
	assert.Equal(t, todayStart.AddDate(0, 0, -7), start)
}

func TestHistorySummaryEmptyWindow(t *testing.T) {
	statsSvc, _, _, elderly := newStatsTestServices(t)

	summary, err := statsSvc.HistorySummary(elderly.ID, RangeWeek)
	require.NoError(t, err)
	assert.Zero(t, summary.TotalAlerts)
	assert.Empty(t, summary.StatusDistribution)
	assert.Empty(t, summary.Alerts)
}

func TestHistorySummaryDistribution(t *testing.T) {
	statsSvc, activitySvc, alertSvc, elderly := newStatsTestServices(t)

	base := time.Now().Add(-3 * time.Hour)
	_, err := activitySvc.AppendActivity(elderly.ID, models.ActivityStill, "", base)
	require.NoError(t, err)
	_, err = activitySvc.AppendActivity(elderly.ID, models.ActivityWalking, "", base.Add(time.Hour))
	require.NoError(t, err)
	_, err = activitySvc.AppendActivity(elderly.ID, models.ActivityStill, "", base.Add(2*time.Hour))
	require.NoError(t, err)

	_, err = alertSvc.RaiseSosAlert(elderly.ID)
	require.NoError(t, err)

	summary, err := statsSvc.HistorySummary(elderly.ID, RangeWeek)
	require.NoError(t, err)
	assert.Equal(t, int64(1), summary.TotalAlerts)
	require.Len(t, summary.Alerts, 1)

	// 同名状态累计，顺序保持首次出现
	require.Len(t, summary.StatusDistribution, 2)
	assert.Equal(t, "静止", summary.StatusDistribution[0].Name)
	assert.Equal(t, "正常行走", summary.StatusDistribution[1].Name)
	// 静止 = 第一段1小时 + 最后一段约1小时
	assert.GreaterOrEqual(t, summary.StatusDistribution[0].Minutes, 115)
	assert.Equal(t, 60, summary.StatusDistribution[1].Minutes)
}
