package services

import (
	"errors"

	"elder-guardian-service/config"
	"elder-guardian-service/models"

	"gorm.io/gorm"
)

// InterfaceRelationService defines the guardian-elderly relation service interface
type InterfaceRelationService interface {
	BindElderlyByPhone(guardianID uint, phone string) (*models.GuardianElderlyRelation, error)
	BindGuardianByPhone(elderlyID uint, phone string) (*models.GuardianElderlyRelation, error)
	Unbind(guardianID, elderlyID uint) error
	UpdateAliases(guardianID, elderlyID uint, guardianAlias, elderlyAlias string) (*models.GuardianElderlyRelation, error)
	ListForGuardian(guardianID uint) ([]models.GuardianElderlyRelation, error)
	ListForElderly(elderlyID uint) ([]models.GuardianElderlyRelation, error)
	GetAllRelations() ([]models.GuardianElderlyRelation, error)
	CreateRelation(guardianID, elderlyID uint, relationship string) (*models.GuardianElderlyRelation, error)
	DeleteRelationByID(relationID uint) error
	IsBound(guardianID, elderlyID uint) (bool, error)
}

// RelationService 提供监护关系相关的服务
type RelationService struct {
	DB     *gorm.DB
	Config *config.Config
}

// NewRelationService 创建一个新的监护关系服务
func NewRelationService(db *gorm.DB, cfg *config.Config) InterfaceRelationService {
	return &RelationService{
		DB:     db,
		Config: cfg,
	}
}

// createRelation 在事务中检查并创建关系行
// (guardian_id, elderly_id) 上的唯一索引兜底并发下的重复插入
func (s *RelationService) createRelation(guardianID, elderlyID uint, relationship, guardianAlias, elderlyAlias string) (*models.GuardianElderlyRelation, error) {
	relation := &models.GuardianElderlyRelation{
		GuardianID:    guardianID,
		ElderlyID:     elderlyID,
		Relationship:  relationship,
		GuardianAlias: guardianAlias,
		ElderlyAlias:  elderlyAlias,
		Priority:      1,
	}

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.GuardianElderlyRelation{}).
			Where("guardian_id = ? AND elderly_id = ?", guardianID, elderlyID).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return ErrAlreadyBound
		}
		if err := tx.Create(relation).Error; err != nil {
			// 并发绑定触发唯一索引冲突时按已绑定处理
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrAlreadyBound
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return relation, nil
}

// 1 BindElderlyByPhone 监护人通过手机号绑定老人
func (s *RelationService) BindElderlyByPhone(guardianID uint, phone string) (*models.GuardianElderlyRelation, error) {
	var elderly models.ElderlyUser
	if err := s.DB.Where("phone = ?", phone).First(&elderly).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPhoneNotRegistered
		}
		return nil, err
	}

	// 监护人视角：称老人为"长辈"，老人侧默认显示"亲属"
	return s.createRelation(guardianID, elderly.ID,
		models.DefaultRelationship, models.DefaultGuardianAlias, models.DefaultRelationship)
}

// 2 BindGuardianByPhone 老人通过手机号绑定监护人
func (s *RelationService) BindGuardianByPhone(elderlyID uint, phone string) (*models.GuardianElderlyRelation, error) {
	var guardian models.GuardianUser
	if err := s.DB.Where("phone = ?", phone).First(&guardian).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPhoneNotRegistered
		}
		return nil, err
	}

	// 老人视角：称对方为"监护人"，监护人侧默认显示"亲属"
	return s.createRelation(guardian.ID, elderlyID,
		models.DefaultRelationship, models.DefaultRelationship, models.DefaultElderlyAlias)
}

// 3 Unbind 解除监护关系，幂等：关系不存在时不报错
func (s *RelationService) Unbind(guardianID, elderlyID uint) error {
	return s.DB.Where("guardian_id = ? AND elderly_id = ?", guardianID, elderlyID).
		Delete(&models.GuardianElderlyRelation{}).Error
}

// 4 UpdateAliases 更新双方称呼，不修改关系类型
func (s *RelationService) UpdateAliases(guardianID, elderlyID uint, guardianAlias, elderlyAlias string) (*models.GuardianElderlyRelation, error) {
	var relation models.GuardianElderlyRelation
	if err := s.DB.Where("guardian_id = ? AND elderly_id = ?", guardianID, elderlyID).
		First(&relation).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRelationNotFound
		}
		return nil, err
	}

	updates := map[string]interface{}{}
	if guardianAlias != "" {
		updates["guardian_alias"] = guardianAlias
	}
	if elderlyAlias != "" {
		updates["elderly_alias"] = elderlyAlias
	}
	if len(updates) > 0 {
		if err := s.DB.Model(&relation).Updates(updates).Error; err != nil {
			return nil, err
		}
	}
	return &relation, nil
}

// 5 ListForGuardian 获取监护人绑定的所有老人
func (s *RelationService) ListForGuardian(guardianID uint) ([]models.GuardianElderlyRelation, error) {
	var relations []models.GuardianElderlyRelation
	if err := s.DB.Preload("Elderly").Where("guardian_id = ?", guardianID).
		Order("priority DESC, id ASC").Find(&relations).Error; err != nil {
		return nil, err
	}
	return relations, nil
}

// 6 ListForElderly 获取老人绑定的所有监护人
func (s *RelationService) ListForElderly(elderlyID uint) ([]models.GuardianElderlyRelation, error) {
	var relations []models.GuardianElderlyRelation
	if err := s.DB.Preload("Guardian").Where("elderly_id = ?", elderlyID).
		Order("priority DESC, id ASC").Find(&relations).Error; err != nil {
		return nil, err
	}
	return relations, nil
}

// 7 GetAllRelations 获取所有监护关系（管理后台用）
func (s *RelationService) GetAllRelations() ([]models.GuardianElderlyRelation, error) {
	var relations []models.GuardianElderlyRelation
	if err := s.DB.Preload("Guardian").Preload("Elderly").Find(&relations).Error; err != nil {
		return nil, err
	}
	return relations, nil
}

// 8 CreateRelation 管理后台按ID直接建立监护关系
func (s *RelationService) CreateRelation(guardianID, elderlyID uint, relationship string) (*models.GuardianElderlyRelation, error) {
	var guardian models.GuardianUser
	if err := s.DB.First(&guardian, guardianID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrGuardianNotFound
		}
		return nil, err
	}
	var elderly models.ElderlyUser
	if err := s.DB.First(&elderly, elderlyID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrElderlyNotFound
		}
		return nil, err
	}

	if relationship == "" {
		relationship = models.DefaultRelationship
	}
	return s.createRelation(guardianID, elderlyID,
		relationship, models.DefaultGuardianAlias, models.DefaultElderlyAlias)
}

// 9 DeleteRelationByID 管理后台按关系ID删除
func (s *RelationService) DeleteRelationByID(relationID uint) error {
	var relation models.GuardianElderlyRelation
	if err := s.DB.First(&relation, relationID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrRelationNotFound
		}
		return err
	}
	return s.DB.Delete(&relation).Error
}

// 10 IsBound 判断监护人是否绑定了该老人（访问控制用）
func (s *RelationService) IsBound(guardianID, elderlyID uint) (bool, error) {
	var count int64
	if err := s.DB.Model(&models.GuardianElderlyRelation{}).
		Where("guardian_id = ? AND elderly_id = ?", guardianID, elderlyID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
