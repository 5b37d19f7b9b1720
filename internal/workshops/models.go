package workshops

import (
	"time"

	"github.com/google/uuid"
)

// Kind mirrors the time-slot kind the item is booked through
type Kind string

const (
	KindWorkshop Kind = "WORKSHOP"
	KindSpace    Kind = "SPACE"
)

// Workshop is a bookable item: a workshop programme or a rentable space.
// Time slots reference it through their ItemID.
type Workshop struct {
	ID          uuid.UUID `json:"id" gorm:"primaryKey;type:uuid;default:uuid_generate_v4()"`
	Title       string    `json:"title" gorm:"not null"`
	Description string    `json:"description"`
	Kind        Kind      `json:"kind" gorm:"not null"`
	BasePrice   float64   `json:"base_price" gorm:"not null;default:0"`
	Instructor  string    `json:"instructor,omitempty"`
	Location    string    `json:"location,omitempty"`
	IsActive    bool      `json:"is_active" gorm:"not null;default:true"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
