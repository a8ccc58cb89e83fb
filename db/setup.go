package db

import (
	"github.com/planit-dev/planit/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func ConnectDatabase(dsn string) error {
	var err error

	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})

	if err != nil {
		return err
	}

	return nil
}

// MigrateDatabase creates tables in foreign-key dependency order.
func MigrateDatabase() error {
	tables := []interface{}{
		&models.User{},
		&models.Activity{},
		&models.Goal{},
		&models.Timeline{},
		&models.Team{},
		&models.TeamMembership{},
		&models.TeamMeeting{},
		&models.MeetingInvitation{},
		&models.Notification{},
	}

	migrator := DB.Migrator()

	for _, table := range tables {
		if !migrator.HasTable(table) {
			if err := DB.AutoMigrate(table); err != nil {
				return err
			}
		}
	}

	return nil
}
