package services

import (
	"testing"
	"time"

	"elder-guardian-service/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatDuration(t *testing.T) {
	assert.Equal(t, "0分钟", FormatDuration(0))
	assert.Equal(t, "45分钟", FormatDuration(45*time.Minute))
	assert.Equal(t, "1小时30分", FormatDuration(90*time.Minute))
	assert.Equal(t, "2小时0分", FormatDuration(2*time.Hour))
	// 负时长按零处理
	assert.Equal(t, "0分钟", FormatDuration(-time.Minute))
}

func TestAppendActivityDefaultsLabel(t *testing.T) {
	db := setupTestDB(t)
	svc := NewActivityService(db, testConfig())

	elderly := createTestElderly(t, db, "张建国", "13800000001")

	record, err := svc.AppendActivity(elderly.ID, models.ActivityWalking, "", time.Now())
	require.NoError(t, err)
	assert.Equal(t, "正常行走", record.StateName)
	assert.False(t, record.IsDangerous)
	assert.Nil(t, record.EndTime)

	fallen, err := svc.AppendActivity(elderly.ID, models.ActivityFallen, "", time.Now())
	require.NoError(t, err)
	assert.Equal(t, "跌倒", fallen.StateName)
	assert.True(t, fallen.IsDangerous)
}

func TestAppendActivityUnknownElderly(t *testing.T) {
	db := setupTestDB(t)
	svc := NewActivityService(db, testConfig())

	_, err := svc.AppendActivity(999, models.ActivityWalking, "", time.Now())
	assert.ErrorIs(t, err, ErrElderlyNotFound)
}

func TestLatestActivityReturnsNilWithoutRecords(t *testing.T) {
	db := setupTestDB(t)
	svc := NewActivityService(db, testConfig())

	elderly := createTestElderly(t, db, "张建国", "13800000001")

	record, err := svc.LatestActivity(elderly.ID)
	require.NoError(t, err)
	assert.Nil(t, record)

	location, err := svc.LatestLocation(elderly.ID)
	require.NoError(t, err)
	assert.Nil(t, location)
}

func TestLatestActivityPicksMaxStartTime(t *testing.T) {
	db := setupTestDB(t)
	svc := NewActivityService(db, testConfig())

	elderly := createTestElderly(t, db, "张建国", "13800000001")
	base := time.Now().Add(-2 * time.Hour)

	_, err := svc.AppendActivity(elderly.ID, models.ActivityStill, "", base)
	require.NoError(t, err)
	_, err = svc.AppendActivity(elderly.ID, models.ActivityWalking, "", base.Add(30*time.Minute))
	require.NoError(t, err)

	record, err := svc.LatestActivity(elderly.ID)
	require.NoError(t, err)
	require.NotNil(t, record)
	assert.Equal(t, models.ActivityWalking, record.State)
}

func TestQueryActivityRangeDerivesDurations(t *testing.T) {
	db := setupTestDB(t)
	svc := NewActivityService(db, testConfig())

	elderly := createTestElderly(t, db, "张建国", "13800000001")
	base := time.Date(2026, 8, 29, 8, 0, 0, 0, time.Local)

	_, err := svc.AppendActivity(elderly.ID, models.ActivityStill, "", base)
	require.NoError(t, err)
	_, err = svc.AppendActivity(elderly.ID, models.ActivityWalking, "", base.Add(45*time.Minute))
	require.NoError(t, err)
	_, err = svc.AppendActivity(elderly.ID, models.ActivitySitting, "", base.Add(135*time.Minute))
	require.NoError(t, err)

	items, err := svc.QueryActivityRange(elderly.ID, base, base.Add(3*time.Hour))
	require.NoError(t, err)
	require.Len(t, items, 3)

	// 时长 = 下一条的开始时间 - 本条开始时间
	assert.Equal(t, "45分钟", items[0].Duration)
	assert.Equal(t, "1小时30分", items[1].Duration)
	// 最后一条算到窗口结束（过去的窗口不会被当前时间截断）
	assert.Equal(t, "45分钟", items[2].Duration)
	assert.Equal(t, base.Add(3*time.Hour).Unix(), items[2].EndTime.Unix())
}

func TestQueryActivityRangeEmptyWindow(t *testing.T) {
	db := setupTestDB(t)
	svc := NewActivityService(db, testConfig())

	elderly := createTestElderly(t, db, "张建国", "13800000001")

	items, err := svc.QueryActivityRange(elderly.ID, time.Now().Add(-time.Hour), time.Now())
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestQueryRecentActivityDescending(t *testing.T) {
	db := setupTestDB(t)
	svc := NewActivityService(db, testConfig())

	elderly := createTestElderly(t, db, "张建国", "13800000001")
	base := time.Now().Add(-3 * time.Hour)

	_, err := svc.AppendActivity(elderly.ID, models.ActivityStill, "", base)
	require.NoError(t, err)
	_, err = svc.AppendActivity(elderly.ID, models.ActivityWalking, "", base.Add(time.Hour))
	require.NoError(t, err)

	items, err := svc.QueryRecentActivity(elderly.ID, 50)
	require.NoError(t, err)
	require.Len(t, items, 2)
	// 最新的在前
	assert.Equal(t, models.ActivityWalking, items[0].State)
	assert.Equal(t, models.ActivityStill, items[1].State)
	// 非最新记录的时长依旧按相邻记录推算
	assert.Equal(t, "1小时0分", items[1].Duration)
}

func TestQueryActivityRangeForGuardianScoping(t *testing.T) {
	db := setupTestDB(t)
	svc := NewActivityService(db, testConfig())
	relationSvc := NewRelationService(db, testConfig())

	guardian := createTestGuardian(t, db, "张晓明", "13900000001")
	bound := createTestElderly(t, db, "张建国", "13800000001")
	unbound := createTestElderly(t, db, "李秀英", "13800000002")

	_, err := relationSvc.BindElderlyByPhone(guardian.ID, bound.Phone)
	require.NoError(t, err)

	base := time.Now().Add(-time.Hour)
	_, err = svc.AppendActivity(bound.ID, models.ActivityWalking, "", base)
	require.NoError(t, err)
	_, err = svc.AppendActivity(unbound.ID, models.ActivityStill, "", base)
	require.NoError(t, err)

	items, err := svc.QueryActivityRangeForGuardian(guardian.ID, base.Add(-time.Minute), time.Now())
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, bound.ID, items[0].ElderlyID)
	assert.Equal(t, "张建国", items[0].ElderlyName)
}

func TestAppendLocationDefaultsAddress(t *testing.T) {
	db := setupTestDB(t)
	svc := NewActivityService(db, testConfig())

	elderly := createTestElderly(t, db, "张建国", "13800000001")

	record, err := svc.AppendLocation(elderly.ID, 39.92, 116.46, "", time.Now())
	require.NoError(t, err)
	assert.Equal(t, models.UnknownLocation, record.LocationDesc)

	named, err := svc.AppendLocation(elderly.ID, 39.92, 116.46, "朝阳公园", time.Now())
	require.NoError(t, err)
	assert.Equal(t, "朝阳公园", named.LocationDesc)
}
