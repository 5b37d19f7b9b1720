package workshops

// CreateWorkshopRequest is the admin payload for a new bookable item
type CreateWorkshopRequest struct {
	Title       string  `json:"title" binding:"required,min=2,max=100"`
	Description string  `json:"description" binding:"omitempty,max=2000"`
	Kind        string  `json:"kind" binding:"required,oneof=WORKSHOP SPACE"`
	BasePrice   float64 `json:"base_price" binding:"gte=0"`
	Instructor  string  `json:"instructor" binding:"omitempty,max=100"`
	Location    string  `json:"location" binding:"omitempty,max=200"`
}

// UpdateWorkshopRequest carries only the fields being changed
type UpdateWorkshopRequest struct {
	Title       *string  `json:"title" binding:"omitempty,min=2,max=100"`
	Description *string  `json:"description" binding:"omitempty,max=2000"`
	BasePrice   *float64 `json:"base_price" binding:"omitempty,gte=0"`
	Instructor  *string  `json:"instructor" binding:"omitempty,max=100"`
	Location    *string  `json:"location" binding:"omitempty,max=200"`
	IsActive    *bool    `json:"is_active"`
}
