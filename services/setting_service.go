package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/faouziesf/cod-manager/models"
	"github.com/faouziesf/cod-manager/utils"

	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"
)

const settingCacheTTL = 5 * time.Minute

// SettingService provides the per-tenant throttling policy. Tenants
// without an explicit row get a default one created on first access.
type SettingService struct {
	DB  *gorm.DB
	RDB *redis.Client
}

func NewSettingService(db *gorm.DB, rdb *redis.Client) *SettingService {
	return &SettingService{DB: db, RDB: rdb}
}

func settingCacheKey(adminID uint) string {
	return fmt.Sprintf("settings:%d", adminID)
}

// ForTenant returns the settings row for an admin id, creating defaults
// when missing.
func (s *SettingService) ForTenant(adminID uint) (*models.Setting, error) {
	if s.RDB != nil {
		if raw, err := s.RDB.Get(utils.RedisCtx(), settingCacheKey(adminID)).Result(); err == nil {
			var cached models.Setting
			if err := json.Unmarshal([]byte(raw), &cached); err == nil {
				return &cached, nil
			}
		}
	}

	var setting models.Setting
	err := s.DB.Where("admin_id = ?", adminID).First(&setting).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		def := models.DefaultSetting(adminID)
		if err := s.DB.Create(def).Error; err != nil {
			return nil, err
		}
		setting = *def
	} else if err != nil {
		return nil, err
	}

	s.cache(&setting)
	return &setting, nil
}

// ForUser resolves the settings of the user's tenant.
func (s *SettingService) ForUser(user *models.User) (*models.Setting, error) {
	return s.ForTenant(user.TenantID())
}

type SettingUpdate struct {
	StandardMaxDailyAttempts int     `json:"standard_max_daily_attempts" binding:"required,min=1"`
	StandardMaxTotalAttempts int     `json:"standard_max_total_attempts" binding:"required,min=1"`
	StandardAttemptsDelay    float64 `json:"standard_attempts_delay" binding:"required,gt=0"`
	DatedMaxDailyAttempts    int     `json:"dated_max_daily_attempts" binding:"required,min=1"`
	DatedMaxTotalAttempts    int     `json:"dated_max_total_attempts" binding:"required,min=1"`
	DatedAttemptsDelay       float64 `json:"dated_attempts_delay" binding:"required,gt=0"`
	OldAttemptsDelay         float64 `json:"old_attempts_delay" binding:"required,gt=0"`
}

func (s *SettingService) Update(adminID uint, in SettingUpdate) (*models.Setting, error) {
	setting, err := s.ForTenant(adminID)
	if err != nil {
		return nil, err
	}

	setting.StandardMaxDailyAttempts = in.StandardMaxDailyAttempts
	setting.StandardMaxTotalAttempts = in.StandardMaxTotalAttempts
	setting.StandardAttemptsDelay = in.StandardAttemptsDelay
	setting.DatedMaxDailyAttempts = in.DatedMaxDailyAttempts
	setting.DatedMaxTotalAttempts = in.DatedMaxTotalAttempts
	setting.DatedAttemptsDelay = in.DatedAttemptsDelay
	setting.OldAttemptsDelay = in.OldAttemptsDelay

	if err := s.DB.Save(setting).Error; err != nil {
		return nil, err
	}

	if s.RDB != nil {
		s.RDB.Del(utils.RedisCtx(), settingCacheKey(adminID))
	}
	s.cache(setting)
	return setting, nil
}

func (s *SettingService) cache(setting *models.Setting) {
	if s.RDB == nil {
		return
	}
	raw, err := json.Marshal(setting)
	if err != nil {
		return
	}
	s.RDB.Set(utils.RedisCtx(), settingCacheKey(setting.AdminID), raw, settingCacheTTL)
}
