package services

import (
	"testing"

	"elder-guardian-service/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBindElderlyByPhone(t *testing.T) {
	db := setupTestDB(t)
	svc := NewRelationService(db, testConfig())

	guardian := createTestGuardian(t, db, "张晓明", "13900000001")
	elderly := createTestElderly(t, db, "张建国", "13800000001")

	relation, err := svc.BindElderlyByPhone(guardian.ID, elderly.Phone)
	require.NoError(t, err)
	assert.Equal(t, guardian.ID, relation.GuardianID)
	assert.Equal(t, elderly.ID, relation.ElderlyID)
	assert.Equal(t, models.DefaultRelationship, relation.Relationship)
	assert.Equal(t, models.DefaultGuardianAlias, relation.GuardianAlias)
}

func TestBindElderlyByPhoneNotRegistered(t *testing.T) {
	db := setupTestDB(t)
	svc := NewRelationService(db, testConfig())

	guardian := createTestGuardian(t, db, "张晓明", "13900000001")

	_, err := svc.BindElderlyByPhone(guardian.ID, "13811112222")
	assert.ErrorIs(t, err, ErrPhoneNotRegistered)
}

func TestBindTwiceReturnsAlreadyBound(t *testing.T) {
	db := setupTestDB(t)
	svc := NewRelationService(db, testConfig())

	guardian := createTestGuardian(t, db, "张晓明", "13900000001")
	elderly := createTestElderly(t, db, "张建国", "13800000001")

	_, err := svc.BindElderlyByPhone(guardian.ID, elderly.Phone)
	require.NoError(t, err)

	_, err = svc.BindElderlyByPhone(guardian.ID, elderly.Phone)
	assert.ErrorIs(t, err, ErrAlreadyBound)

	// 反方向绑定命中同一条关系，同样拒绝
	_, err = svc.BindGuardianByPhone(elderly.ID, guardian.Phone)
	assert.ErrorIs(t, err, ErrAlreadyBound)
}

func TestBindGuardianByPhoneAliases(t *testing.T) {
	db := setupTestDB(t)
	svc := NewRelationService(db, testConfig())

	guardian := createTestGuardian(t, db, "张晓明", "13900000001")
	elderly := createTestElderly(t, db, "张建国", "13800000001")

	relation, err := svc.BindGuardianByPhone(elderly.ID, guardian.Phone)
	require.NoError(t, err)
	assert.Equal(t, models.DefaultElderlyAlias, relation.ElderlyAlias)
}

func TestUnbindIsIdempotent(t *testing.T) {
	db := setupTestDB(t)
	svc := NewRelationService(db, testConfig())

	guardian := createTestGuardian(t, db, "张晓明", "13900000001")
	elderly := createTestElderly(t, db, "张建国", "13800000001")

	_, err := svc.BindElderlyByPhone(guardian.ID, elderly.Phone)
	require.NoError(t, err)

	require.NoError(t, svc.Unbind(guardian.ID, elderly.ID))
	// 再次解绑不报错
	require.NoError(t, svc.Unbind(guardian.ID, elderly.ID))

	bound, err := svc.IsBound(guardian.ID, elderly.ID)
	require.NoError(t, err)
	assert.False(t, bound)
}

func TestUpdateAliases(t *testing.T) {
	db := setupTestDB(t)
	svc := NewRelationService(db, testConfig())

	guardian := createTestGuardian(t, db, "张晓明", "13900000001")
	elderly := createTestElderly(t, db, "张建国", "13800000001")

	_, err := svc.BindElderlyByPhone(guardian.ID, elderly.Phone)
	require.NoError(t, err)

	relation, err := svc.UpdateAliases(guardian.ID, elderly.ID, "爸爸", "儿子")
	require.NoError(t, err)
	assert.Equal(t, "爸爸", relation.GuardianAlias)
	assert.Equal(t, "儿子", relation.ElderlyAlias)

	// 空值不覆盖已有称呼
	relation, err = svc.UpdateAliases(guardian.ID, elderly.ID, "", "")
	require.NoError(t, err)
	assert.Equal(t, "爸爸", relation.GuardianAlias)
}

func TestUpdateAliasesRelationNotFound(t *testing.T) {
	db := setupTestDB(t)
	svc := NewRelationService(db, testConfig())

	_, err := svc.UpdateAliases(1, 2, "爸爸", "儿子")
	assert.ErrorIs(t, err, ErrRelationNotFound)
}

func TestListForGuardianPreloadsElderly(t *testing.T) {
	db := setupTestDB(t)
	svc := NewRelationService(db, testConfig())

	guardian := createTestGuardian(t, db, "张晓明", "13900000001")
	first := createTestElderly(t, db, "张建国", "13800000001")
	second := createTestElderly(t, db, "李秀英", "13800000002")

	_, err := svc.BindElderlyByPhone(guardian.ID, first.Phone)
	require.NoError(t, err)
	_, err = svc.BindElderlyByPhone(guardian.ID, second.Phone)
	require.NoError(t, err)

	relations, err := svc.ListForGuardian(guardian.ID)
	require.NoError(t, err)
	require.Len(t, relations, 2)
	require.NotNil(t, relations[0].Elderly)
	assert.Equal(t, "张建国", relations[0].Elderly.Name)
}

func TestCreateRelationValidatesBothSides(t *testing.T) {
	db := setupTestDB(t)
	svc := NewRelationService(db, testConfig())

	elderly := createTestElderly(t, db, "张建国", "13800000001")

	_, err := svc.CreateRelation(999, elderly.ID, "子女")
	assert.ErrorIs(t, err, ErrGuardianNotFound)

	guardian := createTestGuardian(t, db, "张晓明", "13900000001")
	_, err = svc.CreateRelation(guardian.ID, 999, "子女")
	assert.ErrorIs(t, err, ErrElderlyNotFound)

	relation, err := svc.CreateRelation(guardian.ID, elderly.ID, "子女")
	require.NoError(t, err)
	assert.Equal(t, "子女", relation.Relationship)
}

func TestDeleteRelationByID(t *testing.T) {
	db := setupTestDB(t)
	svc := NewRelationService(db, testConfig())

	guardian := createTestGuardian(t, db, "张晓明", "13900000001")
	elderly := createTestElderly(t, db, "张建国", "13800000001")

	relation, err := svc.CreateRelation(guardian.ID, elderly.ID, "")
	require.NoError(t, err)

	require.NoError(t, svc.DeleteRelationByID(relation.ID))
	assert.ErrorIs(t, svc.DeleteRelationByID(relation.ID), ErrRelationNotFound)
}
