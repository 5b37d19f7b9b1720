package timeslots

// CreateTimeSlotRequest is the admin payload for a single slot
type CreateTimeSlotRequest struct {
	Date        string   `json:"date" binding:"required,datetime=2006-01-02"`
	StartTime   string   `json:"start_time" binding:"required,timehhmm"`
	EndTime     string   `json:"end_time" binding:"required,timehhmm"`
	Kind        string   `json:"kind" binding:"required,oneof=WORKSHOP SPACE"`
	ItemID      string   `json:"item_id" binding:"omitempty,uuid"`
	MaxCapacity int      `json:"max_capacity" binding:"required"`
	Price       *float64 `json:"price" binding:"omitempty,gte=0"`
	IsAvailable *bool    `json:"is_available"`
}

// UpdateTimeSlotRequest carries only the fields being changed
type UpdateTimeSlotRequest struct {
	Date        *string  `json:"date" binding:"omitempty,datetime=2006-01-02"`
	StartTime   *string  `json:"start_time" binding:"omitempty,timehhmm"`
	EndTime     *string  `json:"end_time" binding:"omitempty,timehhmm"`
	MaxCapacity *int     `json:"max_capacity"`
	Price       *float64 `json:"price" binding:"omitempty,gte=0"`
	IsAvailable *bool    `json:"is_available"`
}

// BulkGenerateRequest describes a generation run: a date range, a daily time
// window, and a fixed slot duration. ExcludedWeekdays uses Go weekday
// numbering (0 = Sunday).
type BulkGenerateRequest struct {
	StartDate           string   `json:"start_date" binding:"required,datetime=2006-01-02"`
	EndDate             string   `json:"end_date" binding:"required,datetime=2006-01-02"`
	StartTime           string   `json:"start_time" binding:"required,timehhmm"`
	EndTime             string   `json:"end_time" binding:"required,timehhmm"`
	SlotDurationMinutes int      `json:"slot_duration_minutes" binding:"required"`
	MaxCapacity         int      `json:"max_capacity" binding:"required"`
	Kind                string   `json:"kind" binding:"required,oneof=WORKSHOP SPACE"`
	ItemID              string   `json:"item_id" binding:"omitempty,uuid"`
	Price               *float64 `json:"price" binding:"omitempty,gte=0"`
	ExcludedWeekdays    []int    `json:"excluded_weekdays" binding:"omitempty,dive,gte=0,lte=6"`
}
