package utils

import (
	"fmt"

	"github.com/himanshukadian/himanshu-blog-backend/backend/config"
	"github.com/himanshukadian/himanshu-blog-backend/backend/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func InitDB(cfg *config.Config) (*gorm.DB, error) {
	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		cfg.DBHost, cfg.DBUser, cfg.DBPassword, cfg.DBName, cfg.DBPort)

	// TranslateError lets duplicate-key violations surface as
	// gorm.ErrDuplicatedKey so they can be mapped to 409s.
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, err
	}

	if err := MigrateModels(db); err != nil {
		return nil, err
	}

	return db, nil
}

func MigrateModels(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Article{},
		&models.Comment{},
		&models.CommentEdit{},
		&models.Tag{},
		&models.Type{},
		&models.Category{},
		&models.Post{},
		&models.Course{},
		&models.Section{},
		&models.Chapter{},
		&models.Scene{},
		&models.Resume{},
		&models.Project{},
		&models.Contact{},
	)
}
