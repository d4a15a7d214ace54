package services

import (
	"testing"

	"elder-guardian-service/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateGuardianRejectsDuplicatePhone(t *testing.T) {
	db := setupTestDB(t)
	svc := NewGuardianService(db, testConfig())

	require.NoError(t, svc.CreateGuardian(&models.GuardianUser{Name: "张晓明", Phone: "13900000001"}))
	err := svc.CreateGuardian(&models.GuardianUser{Name: "李四", Phone: "13900000001"})
	assert.ErrorIs(t, err, ErrPhoneAlreadyUsed)
}

func TestGetGuardianByPhone(t *testing.T) {
	db := setupTestDB(t)
	svc := NewGuardianService(db, testConfig())

	created := createTestGuardian(t, db, "张晓明", "13900000001")

	guardian, err := svc.GetGuardianByPhone("13900000001")
	require.NoError(t, err)
	assert.Equal(t, created.ID, guardian.ID)

	_, err = svc.GetGuardianByPhone("13999999999")
	assert.ErrorIs(t, err, ErrPhoneNotRegistered)
}

func TestUpdateGuardian(t *testing.T) {
	db := setupTestDB(t)
	svc := NewGuardianService(db, testConfig())

	created := createTestGuardian(t, db, "张晓明", "13900000001")

	updated, err := svc.UpdateGuardian(created.ID, map[string]interface{}{"name": "张小明"})
	require.NoError(t, err)
	assert.Equal(t, "张小明", updated.Name)
	assert.Equal(t, "13900000001", updated.Phone)
}

func TestDeleteGuardianCascadesRelations(t *testing.T) {
	db := setupTestDB(t)
	svc := NewGuardianService(db, testConfig())
	relationSvc := NewRelationService(db, testConfig())

	guardian := createTestGuardian(t, db, "张晓明", "13900000001")
	elderly := createTestElderly(t, db, "张建国", "13800000001")

	_, err := relationSvc.BindElderlyByPhone(guardian.ID, elderly.Phone)
	require.NoError(t, err)

	require.NoError(t, svc.DeleteGuardian(guardian.ID))

	_, err = svc.GetGuardianByID(guardian.ID)
	assert.ErrorIs(t, err, ErrGuardianNotFound)

	var relationCount int64
	require.NoError(t, db.Model(&models.GuardianElderlyRelation{}).
		Where("guardian_id = ?", guardian.ID).Count(&relationCount).Error)
	assert.Zero(t, relationCount)

	// 老人档案不受影响
	var elderlyCount int64
	require.NoError(t, db.Model(&models.ElderlyUser{}).
		Where("id = ?", elderly.ID).Count(&elderlyCount).Error)
	assert.Equal(t, int64(1), elderlyCount)
}
