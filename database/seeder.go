package database

import (
	"errors"

	"github.com/faouziesf/cod-manager/config"
	"github.com/faouziesf/cod-manager/models"
	"github.com/faouziesf/cod-manager/utils"

	"gorm.io/gorm"
)

// SeedSuperAdmin creates the platform account from the environment when
// no super admin exists yet.
func SeedSuperAdmin(db *gorm.DB, cfg *config.Config) error {
	var existing models.User
	err := db.Where("role = ?", models.RoleSuperAdmin).First(&existing).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	if cfg.SuperAdminEmail == "" || cfg.SuperAdminPassword == "" {
		return errors.New("SUPER_ADMIN_EMAIL and SUPER_ADMIN_PASSWORD must be set for the first boot")
	}

	hash, err := utils.HashPassword(cfg.SuperAdminPassword)
	if err != nil {
		return err
	}

	admin := models.User{
		Name:     "Super Admin",
		Email:    cfg.SuperAdminEmail,
		Password: hash,
		Role:     models.RoleSuperAdmin,
		IsActive: true,
	}
	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&admin).Error; err != nil {
			return err
		}
		setting := models.DefaultSetting(admin.ID)
		return tx.Create(setting).Error
	})
}

// SeedRegions fills the regions table with the Tunisian governorates on
// an empty database.
func SeedRegions(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.Region{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	names := []string{
		"Ariana", "Beja", "Ben Arous", "Bizerte", "Gabes", "Gafsa",
		"Jendouba", "Kairouan", "Kasserine", "Kebili", "Kef", "Mahdia",
		"Manouba", "Medenine", "Monastir", "Nabeul", "Sfax", "Sidi Bouzid",
		"Siliana", "Sousse", "Tataouine", "Tozeur", "Tunis", "Zaghouan",
	}
	regions := make([]models.Region, 0, len(names))
	for _, name := range names {
		regions = append(regions, models.Region{Name: name})
	}
	return db.Create(&regions).Error
}
