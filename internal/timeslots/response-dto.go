package timeslots

// BulkGenerateResponse summarizes a generation run
type BulkGenerateResponse struct {
	SlotsCreated int        `json:"slots_created"`
	Slots        []TimeSlot `json:"slots"`
}

// AvailabilityResponse wraps the availability query result
type AvailabilityResponse struct {
	ItemID    string     `json:"item_id"`
	StartDate string     `json:"start_date"`
	EndDate   string     `json:"end_date"`
	Count     int        `json:"count"`
	Slots     []TimeSlot `json:"slots"`
}
