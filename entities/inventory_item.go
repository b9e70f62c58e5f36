package entities

import (
	"github.com/google/uuid"
)

// InventoryItem is one tracked food record. Days remaining and the derived
// progress values are computed at read time and never stored.
type InventoryItem struct {
	ID             uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	UserID         uuid.UUID `gorm:"type:uuid;index" json:"user_id"`
	Name           string    `gorm:"not null" json:"name"`
	Location       string    `gorm:"index" json:"location"` // "Fridge", "Freezer", "Pantry"
	Quantity       int       `json:"quantity"`
	ExpirationDate string    `gorm:"type:varchar(10)" json:"expiration_date"` // YYYY-MM-DD
	ImageURL       *string   `json:"image_url,omitempty"`

	User *User `gorm:"foreignKey:UserID"`
	Timestamp
}
