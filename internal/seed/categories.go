package seed

import (
	"fmt"

	"foodmedia/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// BuiltInCategories defines the permanent food categories posts can be
// tagged with. Seeding is idempotent, so this list can grow over time.
var BuiltInCategories = []string{
	"Breakfast",
	"Lunch",
	"Dinner",
	"Dessert",
	"Snacks",
	"Baking",
	"Vegan",
	"Vegetarian",
	"Gluten-Free",
	"BBQ & Grilling",
	"Seafood",
	"Pasta",
	"Soups & Stews",
	"Salads",
	"Street Food",
	"Drinks & Cocktails",
}

// Categories seeds the permanent built-in categories.
func Categories(db *gorm.DB) error {
	for _, name := range BuiltInCategories {
		category := models.Category{Name: name}
		if err := db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "name"}},
			DoNothing: true,
		}).Create(&category).Error; err != nil {
			return fmt.Errorf("seed built-in category %s: %w", name, err)
		}
	}
	return nil
}
