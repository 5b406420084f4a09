package db

import (
	"fmt"

	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/tgavazzi/hydromate/internal/config"
)

// NewDB opens the database configured in cfg. SQLite is the default
// local store; setting MYSQL_DSN switches to MySQL.
func NewDB(cfg *config.Config) (*gorm.DB, error) {
	var dialector gorm.Dialector
	if cfg.DB.MySQLDSN != "" {
		dialector = mysql.Open(cfg.DB.MySQLDSN)
	} else {
		dialector = sqlite.Open(cfg.DB.SQLitePath)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open db: %w", err)
	}

	// AutoMigrate ensures schema is in sync with models.
	if err := db.AutoMigrate(&User{}, &UserProfile{}, &HydrationDay{}); err != nil {
		return nil, fmt.Errorf("failed to migrate schema: %w", err)
	}

	return db, nil
}
