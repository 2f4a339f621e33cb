package database

import (
	"log"

	"github.com/SergiyLacitis/habit-tasks-backend/internal/model"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func InitDB(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		log.Printf("failed to connect database: %v", err)
		return nil, err
	}

	if err := Migrate(db); err != nil {
		return nil, err
	}

	return db, nil
}

// Migrate creates the schema in foreign-key dependency order:
// users before tasks, tasks before task logs.
func Migrate(db *gorm.DB) error {
	log.Println("Starting database migration...")

	for _, m := range []any{&model.User{}, &model.Task{}, &model.TaskLog{}} {
		if err := db.AutoMigrate(m); err != nil {
			log.Printf("failed to migrate %T: %v", m, err)
			return err
		}
	}

	log.Println("Database migration completed.")
	return nil
}
