package services

import (
	"errors"
	"fmt"
	"time"

	"elder-guardian-service/config"
	"elder-guardian-service/models"

	"gorm.io/gorm"
)

// InterfaceActivityService defines the activity/location ledger interface
type InterfaceActivityService interface {
	AppendActivity(elderlyID uint, state models.ActivityState, label string, timestamp time.Time) (*models.ActivityRecord, error)
	AppendLocation(elderlyID uint, latitude, longitude float64, address string, timestamp time.Time) (*models.LocationRecord, error)
	LatestActivity(elderlyID uint) (*models.ActivityRecord, error)
	LatestLocation(elderlyID uint) (*models.LocationRecord, error)
	QueryActivityRange(elderlyID uint, start, end time.Time) ([]HistoryItem, error)
	QueryRecentActivity(elderlyID uint, limit int) ([]HistoryItem, error)
	QueryActivityRangeForGuardian(guardianID uint, start, end time.Time) ([]HistoryItem, error)
	QueryRecentActivityForGuardian(guardianID uint, limit int) ([]HistoryItem, error)
}

// HistoryItem 带读取时计算时长的活动记录视图
type HistoryItem struct {
	ID          uint                 `json:"id"`
	ElderlyID   uint                 `json:"elderly_id"`
	ElderlyName string               `json:"elderly_name,omitempty"`
	State       models.ActivityState `json:"state"`
	StateName   string               `json:"state_name"`
	IsDangerous bool                 `json:"is_dangerous"`
	StartTime   time.Time            `json:"start_time"`
	EndTime     time.Time            `json:"end_time"`
	Duration    string               `json:"duration"`
}

// ActivityService 活动状态与定位的追加式流水账
type ActivityService struct {
	DB     *gorm.DB
	Config *config.Config
}

// NewActivityService 创建一个新的活动记录服务
func NewActivityService(db *gorm.DB, cfg *config.Config) InterfaceActivityService {
	return &ActivityService{
		DB:     db,
		Config: cfg,
	}
}

// FormatDuration 时长格式化：不足一小时显示"45分钟"，否则显示"1小时30分"
func FormatDuration(d time.Duration) string {
	minutes := int(d.Minutes())
	if minutes < 0 {
		minutes = 0
	}
	if minutes < 60 {
		return fmt.Sprintf("%d分钟", minutes)
	}
	return fmt.Sprintf("%d小时%d分", minutes/60, minutes%60)
}

// 1 AppendActivity 追加活动状态记录
// 只记录时间点观测，不校验与已有区间的重叠；结束时间留空，"直到被下一条取代"
func (s *ActivityService) AppendActivity(elderlyID uint, state models.ActivityState, label string, timestamp time.Time) (*models.ActivityRecord, error) {
	var elderly models.ElderlyUser
	if err := s.DB.First(&elderly, elderlyID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrElderlyNotFound
		}
		return nil, err
	}

	if timestamp.IsZero() {
		timestamp = time.Now()
	}
	if label == "" {
		label = state.Label()
	}

	record := &models.ActivityRecord{
		ElderlyID:   elderlyID,
		State:       state,
		StateName:   label,
		IsDangerous: state.IsDangerous(),
		StartTime:   timestamp,
	}
	if err := s.DB.Create(record).Error; err != nil {
		return nil, err
	}
	return record, nil
}

// 2 AppendLocation 追加GPS定位记录
func (s *ActivityService) AppendLocation(elderlyID uint, latitude, longitude float64, address string, timestamp time.Time) (*models.LocationRecord, error) {
	var elderly models.ElderlyUser
	if err := s.DB.First(&elderly, elderlyID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrElderlyNotFound
		}
		return nil, err
	}

	if timestamp.IsZero() {
		timestamp = time.Now()
	}
	if address == "" {
		address = models.UnknownLocation
	}

	record := &models.LocationRecord{
		ElderlyID:    elderlyID,
		Latitude:     latitude,
		Longitude:    longitude,
		LocationDesc: address,
		UploadTime:   timestamp,
	}
	if err := s.DB.Create(record).Error; err != nil {
		return nil, err
	}
	return record, nil
}

// 3 LatestActivity 获取最新活动记录（仪表盘的"当前状态"），无记录时返回 nil
func (s *ActivityService) LatestActivity(elderlyID uint) (*models.ActivityRecord, error) {
	var record models.ActivityRecord
	err := s.DB.Where("elderly_id = ?", elderlyID).
		Order("start_time DESC, id DESC").First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &record, nil
}

// 4 LatestLocation 获取最新定位记录，无记录时返回 nil
func (s *ActivityService) LatestLocation(elderlyID uint) (*models.LocationRecord, error) {
	var record models.LocationRecord
	err := s.DB.Where("elderly_id = ?", elderlyID).
		Order("upload_time DESC, id DESC").First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &record, nil
}

// buildHistory 按老人分组推算每条记录的结束时间和时长
// 时长 = 下一条记录的开始时间 - 本条开始时间
// 每个老人窗口内的最后一条记录算到窗口结束为止，且不超过当前时间
func buildHistory(records []models.ActivityRecord, names map[uint]string, windowEnd time.Time) []HistoryItem {
	now := time.Now()
	if windowEnd.IsZero() || windowEnd.After(now) {
		windowEnd = now
	}

	// 每个老人最后一条记录的下标
	lastIndex := make(map[uint]int)
	for i, r := range records {
		lastIndex[r.ElderlyID] = i
	}
	// 每个老人下一条记录的开始时间
	nextStart := make(map[uint]time.Time)

	items := make([]HistoryItem, len(records))
	for i := len(records) - 1; i >= 0; i-- {
		r := records[i]

		var end time.Time
		if r.EndTime != nil {
			// 旧数据可能带有写入时的结束时间，读取时沿用
			end = *r.EndTime
		} else if lastIndex[r.ElderlyID] == i {
			end = windowEnd
		} else {
			end = nextStart[r.ElderlyID]
		}
		if end.Before(r.StartTime) {
			end = r.StartTime
		}
		nextStart[r.ElderlyID] = r.StartTime

		items[i] = HistoryItem{
			ID:          r.ID,
			ElderlyID:   r.ElderlyID,
			ElderlyName: names[r.ElderlyID],
			State:       r.State,
			StateName:   r.StateName,
			IsDangerous: r.IsDangerous,
			StartTime:   r.StartTime,
			EndTime:     end,
			Duration:    FormatDuration(end.Sub(r.StartTime)),
		}
	}
	return items
}

// elderlyNames 查询一批老人的姓名，用于"全部老人"的历史视图
func (s *ActivityService) elderlyNames(records []models.ActivityRecord) (map[uint]string, error) {
	ids := make([]uint, 0, len(records))
	seen := make(map[uint]bool)
	for _, r := range records {
		if !seen[r.ElderlyID] {
			seen[r.ElderlyID] = true
			ids = append(ids, r.ElderlyID)
		}
	}
	names := make(map[uint]string)
	if len(ids) == 0 {
		return names, nil
	}

	var users []models.ElderlyUser
	if err := s.DB.Select("id", "name").Where("id IN ?", ids).Find(&users).Error; err != nil {
		return nil, err
	}
	for _, u := range users {
		names[u.ID] = u.Name
	}
	return names, nil
}

// 5 QueryActivityRange 查询单个老人某时间窗口内的活动记录，按开始时间升序
func (s *ActivityService) QueryActivityRange(elderlyID uint, start, end time.Time) ([]HistoryItem, error) {
	var records []models.ActivityRecord
	if err := s.DB.Where("elderly_id = ? AND start_time BETWEEN ? AND ?", elderlyID, start, end).
		Order("start_time ASC, id ASC").Find(&records).Error; err != nil {
		return nil, err
	}
	return buildHistory(records, nil, end), nil
}

// 6 QueryRecentActivity 未指定日期时返回最近的记录，按开始时间降序
func (s *ActivityService) QueryRecentActivity(elderlyID uint, limit int) ([]HistoryItem, error) {
	if limit <= 0 {
		limit = 50
	}
	var records []models.ActivityRecord
	if err := s.DB.Where("elderly_id = ?", elderlyID).
		Order("start_time DESC, id DESC").Limit(limit).Find(&records).Error; err != nil {
		return nil, err
	}

	// 时长推算需要升序，算完再倒回来
	reverse(records)
	items := buildHistory(records, nil, time.Time{})
	reverseItems(items)
	return items, nil
}

// 7 QueryActivityRangeForGuardian 查询监护人名下所有老人的活动记录
// 通过监护关系表过滤，监护人永远看不到未绑定老人的数据
func (s *ActivityService) QueryActivityRangeForGuardian(guardianID uint, start, end time.Time) ([]HistoryItem, error) {
	var records []models.ActivityRecord
	if err := s.DB.
		Joins("JOIN guardian_elderly_relations r ON r.elderly_id = activity_records.elderly_id").
		Where("r.guardian_id = ? AND activity_records.start_time BETWEEN ? AND ?", guardianID, start, end).
		Order("activity_records.start_time ASC, activity_records.id ASC").
		Find(&records).Error; err != nil {
		return nil, err
	}

	names, err := s.elderlyNames(records)
	if err != nil {
		return nil, err
	}
	return buildHistory(records, names, end), nil
}

// 8 QueryRecentActivityForGuardian 监护人名下所有老人的最近记录，按开始时间降序
func (s *ActivityService) QueryRecentActivityForGuardian(guardianID uint, limit int) ([]HistoryItem, error) {
	if limit <= 0 {
		limit = 50
	}
	var records []models.ActivityRecord
	if err := s.DB.
		Joins("JOIN guardian_elderly_relations r ON r.elderly_id = activity_records.elderly_id").
		Where("r.guardian_id = ?", guardianID).
		Order("activity_records.start_time DESC, activity_records.id DESC").
		Limit(limit).Find(&records).Error; err != nil {
		return nil, err
	}

	names, err := s.elderlyNames(records)
	if err != nil {
		return nil, err
	}

	reverse(records)
	items := buildHistory(records, names, time.Time{})
	reverseItems(items)
	return items, nil
}

func reverse(records []models.ActivityRecord) {
	for i, j := 0, len(records)-1; i < j; i, j = i+1, j-1 {
		records[i], records[j] = records[j], records[i]
	}
}

func reverseItems(items []HistoryItem) {
	for i, j := 0, len(items)-1; i < j; i, j = i+1, j-1 {
		items[i], items[j] = items[j], items[i]
	}
}
