package config

import (
	"log"
	"os"
	"strconv"

	"github.com/YashChoudhary13/The-MEX/models"

	"github.com/glebarez/sqlite"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

// JWTSecret used to sign tokens — read from env or fallback
var JWTSecret = []byte(GetEnv("JWT_SECRET", "the_mex_super_secret_2024"))

func GetEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func InitDB() {
	var err error
	path := GetEnv("DATABASE_PATH", "the_mex.db")
	DB, err = gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	// Auto-migrate all models
	err = DB.AutoMigrate(
		&models.User{},
		&models.MenuCategory{},
		&models.MenuItem{},
		&models.Order{},
		&models.OrderItem{},
		&models.SpecialOffer{},
		&models.PromoCode{},
		&models.SystemSetting{},
	)
	if err != nil {
		log.Fatal("Failed to migrate database:", err)
	}

	seedDefaults()

	log.Println("Database connected and migrated successfully")
}

// seedDefaults creates the admin account and baseline settings on first run.
func seedDefaults() {
	var count int64
	DB.Model(&models.User{}).Where("role = ?", models.RoleAdmin).Count(&count)
	if count == 0 {
		hash, err := bcrypt.GenerateFromPassword(
			[]byte(GetEnv("ADMIN_PASSWORD", "admin123")), bcrypt.DefaultCost)
		if err != nil {
			log.Fatal("Failed to hash admin password:", err)
		}
		DB.Create(&models.User{
			Username:     GetEnv("ADMIN_USERNAME", "admin"),
			PasswordHash: string(hash),
			Role:         models.RoleAdmin,
		})
	}

	for key, value := range map[string]string{
		"service_fee": "2.99",
		"tax_rate":    "8",
	} {
		var setting models.SystemSetting
		if err := DB.Where("key = ?", key).First(&setting).Error; err != nil {
			DB.Create(&models.SystemSetting{Key: key, Value: value})
		}
	}
}

// GetServiceFee reads the configurable per-order service fee.
func GetServiceFee() float64 {
	return settingFloat("service_fee", 2.99)
}

// GetTaxRate reads the configurable tax rate, expressed as a percentage.
func GetTaxRate() float64 {
	return settingFloat("tax_rate", 8)
}

func settingFloat(key string, fallback float64) float64 {
	var setting models.SystemSetting
	if err := DB.Where("key = ?", key).First(&setting).Error; err != nil {
		return fallback
	}
	value, err := strconv.ParseFloat(setting.Value, 64)
	if err != nil {
		return fallback
	}
	return value
}
