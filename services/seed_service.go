package services

import (
	"fmt"
	"time"

	"elder-guardian-service/config"
	"elder-guardian-service/models"

	"gorm.io/gorm"
)

// InterfaceSeedService defines the demo data seeding interface
type InterfaceSeedService interface {
	SeedDemoData() (int, error)
}

// SeedService 写入演示数据（老人、监护人、设备和两天的活动流水）
type SeedService struct {
	DB     *gorm.DB
	Config *config.Config
}

// NewSeedService 创建一个新的演示数据服务
func NewSeedService(db *gorm.DB, cfg *config.Config) InterfaceSeedService {
	return &SeedService{
		DB:     db,
		Config: cfg,
	}
}

type seedActivity struct {
	state     models.ActivityState
	dayOffset int // 0: 今天, -1: 昨天
	start     string
}

// SeedDemoData 写入演示账户和活动记录，返回写入的活动记录数
// 已有同手机号的账户时复用，活动记录先清空再写入，避免重复
func (s *SeedService) SeedDemoData() (int, error) {
	elderlySeed := []struct {
		name       string
		phone      string
		address    string
		activities []seedActivity
	}{
		{
			name: "张建国", phone: "13800000001", address: "北京市朝阳区幸福路12号",
			activities: []seedActivity{
				{models.ActivityStill, -1, "06:00"},
				{models.ActivityStanding, -1, "07:00"},
				{models.ActivityWalking, -1, "07:15"},
				{models.ActivitySitting, -1, "08:00"},
				{models.ActivityWalking, -1, "09:00"},
				{models.ActivitySitting, -1, "10:00"},
				{models.ActivityStill, -1, "12:00"},
				{models.ActivityStanding, -1, "14:00"},
				{models.ActivityWalking, -1, "14:10"},
				{models.ActivityStill, 0, "06:00"},
				{models.ActivityWalking, 0, "07:30"},
				{models.ActivitySitting, 0, "08:30"},
				{models.ActivityWalking, 0, "10:00"},
			},
		},
		{
			name: "李秀英", phone: "13800000002", address: "北京市海淀区安宁里3号",
			activities: []seedActivity{
				{models.ActivityStill, -1, "05:00"},
				{models.ActivitySitting, -1, "06:30"},
				{models.ActivityWalking, -1, "08:00"},
				{models.ActivityUpstairs, -1, "09:00"},
				{models.ActivitySitting, -1, "09:10"},
				{models.ActivityStill, -1, "12:00"},
				{models.ActivityStill, 0, "05:00"},
				{models.ActivityWalking, 0, "07:00"},
				{models.ActivitySitting, 0, "08:00"},
				{models.ActivityStanding, 0, "10:30"},
				{models.ActivityDownstairs, 0, "10:45"},
			},
		},
	}

	guardian := models.GuardianUser{Name: "张晓明", Phone: "13900000001"}
	if err := s.DB.Where("phone = ?", guardian.Phone).
		FirstOrCreate(&guardian, models.GuardianUser{Name: guardian.Name, Phone: guardian.Phone}).Error; err != nil {
		return 0, err
	}

	now := time.Now()
	inserted := 0

	for i, seed := range elderlySeed {
		elderly := models.ElderlyUser{
			Name:    seed.name,
			Gender:  "男",
			Phone:   seed.phone,
			Address: seed.address,
		}
		if i == 1 {
			elderly.Gender = "女"
		}
		if err := s.DB.Where("phone = ?", seed.phone).FirstOrCreate(&elderly, elderly).Error; err != nil {
			return 0, err
		}

		// 监护关系：与演示监护人绑定
		relation := models.GuardianElderlyRelation{
			GuardianID:    guardian.ID,
			ElderlyID:     elderly.ID,
			Relationship:  models.DefaultRelationship,
			GuardianAlias: models.DefaultGuardianAlias,
			ElderlyAlias:  models.DefaultElderlyAlias,
			Priority:      1,
		}
		if err := s.DB.Where("guardian_id = ? AND elderly_id = ?", guardian.ID, elderly.ID).
			FirstOrCreate(&relation).Error; err != nil {
			return 0, err
		}

		// 监测设备
		device := models.MonitoringDevice{
			SerialNumber: fmt.Sprintf("EG-DEMO-%03d", i+1),
			Name:         "智能手环",
			Type:         "手环",
			Brand:        "WiseCare",
			ElderlyID:    &elderly.ID,
			BatteryLevel: 80,
			IsOnline:     true,
		}
		if err := s.DB.Where("serial_number = ?", device.SerialNumber).
			FirstOrCreate(&device).Error; err != nil {
			return 0, err
		}

		// 清空旧的演示活动记录后重新写入
		if err := s.DB.Where("elderly_id = ?", elderly.ID).
			Delete(&models.ActivityRecord{}).Error; err != nil {
			return 0, err
		}

		for _, act := range seed.activities {
			start, err := seedTime(now, act.dayOffset, act.start)
			if err != nil {
				return 0, err
			}
			record := models.ActivityRecord{
				ElderlyID:   elderly.ID,
				State:       act.state,
				StateName:   act.state.Label(),
				IsDangerous: act.state.IsDangerous(),
				StartTime:   start,
			}
			if err := s.DB.Create(&record).Error; err != nil {
				return 0, err
			}
			inserted++
		}
	}

	return inserted, nil
}

// seedTime 把"天偏移 + HH:MM"转成具体时间
func seedTime(now time.Time, dayOffset int, clock string) (time.Time, error) {
	t, err := time.ParseInLocation("15:04", clock, now.Location())
	if err != nil {
		return time.Time{}, err
	}
	day := now.AddDate(0, 0, dayOffset)
	return time.Date(day.Year(), day.Month(), day.Day(), t.Hour(), t.Minute(), 0, 0, now.Location()), nil
}
