package database

import "foodmedia/internal/models"

// PersistentModels returns the authoritative set of schema-managed GORM models.
func PersistentModels() []interface{} {
	return []interface{}{
		&models.User{},
		&models.Category{},
		&models.Post{},
		&models.PostMedia{},
		&models.Comment{},
		&models.Like{},
		&models.Follow{},
		&models.SavedPost{},
	}
}
