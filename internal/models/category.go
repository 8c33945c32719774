package models

// Category is reference data used to tag posts ("Dessert", "Vegan", ...).
// Categories are created by seeding and read-only from the service layer's
// perspective.
type Category struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"unique;not null" json:"name"`
}
