package storage

import (
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/ericogr/war-cards/internal/game"
)

// OpenAndMigrate opens the sqlite database behind dataSourceName and keeps the
// schema current with AutoMigrate. The default DSN is a shared in-memory
// database, so matches do not outlive the process.
func OpenAndMigrate(dataSourceName string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(dataSourceName), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}
	// a shared in-memory database disappears once its last connection closes
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(&game.Match{}, &game.User{}); err != nil {
		return nil, err
	}
	return db, nil
}
