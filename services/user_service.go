package services

import (
	"errors"
	"time"

	"github.com/faouziesf/cod-manager/models"
	"github.com/faouziesf/cod-manager/utils"

	"gorm.io/gorm"
)

// UserService manages the role tree: super admins create tenant admins,
// admins create managers and employees, managers create employees.
type UserService struct {
	DB  *gorm.DB
	Now utils.Clock
}

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{DB: db, Now: utils.TunisTime}
}

type CreateUserInput struct {
	Name      string `json:"name" binding:"required"`
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,min=8"`
	Role      string `json:"role"`
	ManagerID *uint  `json:"manager_id"`
	TrialDays int    `json:"trial_days"`
	IPAddress string `json:"-"`
}

// CreateUser derives tenant and manager links from the creator's role.
// A manager can only create employees; a new admin gets a trial window
// and a default settings row.
func (s *UserService) CreateUser(in CreateUserInput, creator *models.User) (*models.User, error) {
	role := in.Role
	if role == "" {
		role = models.RoleEmployee
	}

	var adminID, managerID *uint
	switch {
	case creator.IsSuperAdmin():
		if role != models.RoleAdmin {
			return nil, ErrForbidden
		}
	case creator.IsAdmin():
		id := creator.ID
		adminID = &id
		if role == models.RoleEmployee {
			managerID = in.ManagerID
		} else if role != models.RoleManager {
			return nil, ErrForbidden
		}
	case creator.IsManager():
		role = models.RoleEmployee
		adminID = creator.AdminID
		id := creator.ID
		managerID = &id
	default:
		return nil, ErrForbidden
	}

	hash, err := utils.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}

	var trialEndsAt *time.Time
	if role == models.RoleAdmin && in.TrialDays > 0 {
		t := s.Now().AddDate(0, 0, in.TrialDays)
		trialEndsAt = &t
	}

	user := &models.User{
		Name:        in.Name,
		Email:       in.Email,
		Password:    hash,
		Role:        role,
		AdminID:     adminID,
		ManagerID:   managerID,
		IsActive:    true,
		TrialEndsAt: trialEndsAt,
		IPAddress:   in.IPAddress,
	}

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(user).Error; err != nil {
			return err
		}
		// Every tenant starts with the default throttling policy.
		if role == models.RoleAdmin {
			return tx.Create(models.DefaultSetting(user.ID)).Error
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}

type UpdateUserInput struct {
	Name      *string `json:"name"`
	Email     *string `json:"email"`
	Password  *string `json:"password"`
	IsActive  *bool   `json:"is_active"`
	ManagerID *uint   `json:"manager_id"`
}

func (s *UserService) UpdateUser(user *models.User, in UpdateUserInput) (*models.User, error) {
	if in.Name != nil {
		user.Name = *in.Name
	}
	if in.Email != nil {
		user.Email = *in.Email
	}
	if in.IsActive != nil {
		user.IsActive = *in.IsActive
	}
	if in.ManagerID != nil {
		user.ManagerID = in.ManagerID
	}
	if in.Password != nil && *in.Password != "" {
		hash, err := utils.HashPassword(*in.Password)
		if err != nil {
			return nil, err
		}
		user.Password = hash
	}
	if err := s.DB.Save(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// GetScopedUser loads a user the viewer is allowed to manage.
func (s *UserService) GetScopedUser(id uint, viewer *models.User) (*models.User, error) {
	var user models.User
	err := s.DB.First(&user, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	} else if err != nil {
		return nil, err
	}

	switch {
	case viewer.IsSuperAdmin():
		return &user, nil
	case viewer.IsAdmin():
		if user.AdminID != nil && *user.AdminID == viewer.ID {
			return &user, nil
		}
	case viewer.IsManager():
		if user.ManagerID != nil && *user.ManagerID == viewer.ID {
			return &user, nil
		}
	}
	return nil, ErrForbidden
}

// UsersByRole lists the viewer's subordinates holding a role.
func (s *UserService) UsersByRole(viewer *models.User, role string) ([]models.User, error) {
	var users []models.User
	query := s.DB.Where("role = ?", role)
	switch {
	case viewer.IsSuperAdmin():
		// platform-wide
	case viewer.IsAdmin():
		query = query.Where("admin_id = ?", viewer.ID)
	case viewer.IsManager():
		if role != models.RoleEmployee {
			return []models.User{}, nil
		}
		query = query.Where("manager_id = ?", viewer.ID)
	default:
		return []models.User{}, nil
	}
	err := query.Order("name").Find(&users).Error
	return users, err
}

// CanCreateMore enforces the tenant's seat limits for managers and
// employees. Seats are counted per tenant, so a manager creating
// employees consumes the same pool as the tenant admin.
func (s *UserService) CanCreateMore(creator *models.User, role string, settings *models.Setting) (bool, error) {
	var limit int
	switch role {
	case models.RoleManager:
		limit = settings.MaxManagers
	case models.RoleEmployee:
		limit = settings.MaxEmployees
	default:
		return false, nil
	}

	var count int64
	err := s.DB.Model(&models.User{}).
		Where("admin_id = ? AND role = ?", creator.TenantID(), role).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count < int64(limit), nil
}

// DeactivateExpiredTrials suspends every admin whose trial ended and
// cascades is_active=false to all users of the tenant. Suspended tenants
// drop out of the processing queues immediately.
func (s *UserService) DeactivateExpiredTrials() (int, error) {
	var expired []models.User
	err := s.DB.Where("role = ? AND is_active = ?", models.RoleAdmin, true).
		Where("trial_ends_at IS NOT NULL AND trial_ends_at < ?", s.Now()).
		Find(&expired).Error
	if err != nil {
		return 0, err
	}

	for i := range expired {
		admin := &expired[i]
		err := s.DB.Transaction(func(tx *gorm.DB) error {
			if err := tx.Model(admin).Update("is_active", false).Error; err != nil {
				return err
			}
			return tx.Model(&models.User{}).
				Where("admin_id = ?", admin.ID).
				Update("is_active", false).Error
		})
		if err != nil {
			return i, err
		}
	}
	return len(expired), nil
}

// OnlineUsers lists users of the viewer's scope active in the last 15
// minutes.
func (s *UserService) OnlineUsers(viewer *models.User) ([]models.User, error) {
	var users []models.User
	query := s.DB.Where("last_activity_at > ?", s.Now().Add(-15*time.Minute))
	switch {
	case viewer.IsAdmin():
		query = query.Where("id = ? OR admin_id = ?", viewer.ID, viewer.ID)
	case viewer.IsManager():
		query = query.Where("id = ? OR manager_id = ?", viewer.ID, viewer.ID)
	default:
		query = query.Where("id = ?", viewer.ID)
	}
	err := query.Find(&users).Error
	return users, err
}

func (s *UserService) TouchActivity(user *models.User) {
	now := s.Now()
	if err := s.DB.Model(user).Update("last_activity_at", now).Error; err != nil {
		utils.LogError(err, "TouchActivity")
	}
}
