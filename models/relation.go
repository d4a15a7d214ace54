package models

// GuardianElderlyRelation 表示监护人和老人之间的监护关系
// (guardian_id, elderly_id) 唯一，防止重复绑定
type GuardianElderlyRelation struct {
	BaseModel
	GuardianID    uint   `gorm:"not null;uniqueIndex:idx_guardian_elderly" json:"guardian_id"`
	ElderlyID     uint   `gorm:"not null;uniqueIndex:idx_guardian_elderly" json:"elderly_id"`
	Relationship  string `gorm:"type:varchar(30)" json:"relationship"`   // 如：父子、护工、配偶等
	GuardianAlias string `gorm:"type:varchar(30)" json:"guardian_alias"` // 监护人对老人的称呼
	ElderlyAlias  string `gorm:"type:varchar(30)" json:"elderly_alias"`  // 老人对监护人的称呼
	Priority      int    `gorm:"default:1" json:"priority"`              // 报警通知优先级，数字越大优先级越高

	// 关联
	Guardian *GuardianUser `gorm:"foreignKey:GuardianID" json:"guardian,omitempty"`
	Elderly  *ElderlyUser  `gorm:"foreignKey:ElderlyID" json:"elderly,omitempty"`
}

// 绑定时写入的默认称呼
const (
	DefaultRelationship  = "亲属"
	DefaultGuardianAlias = "长辈"  // 监护人视角
	DefaultElderlyAlias  = "监护人" // 老人视角
)
