package response

import "dental-clinic-api/internal/usecase/queries"

type SlotResponse struct {
	Time        string `json:"time"`
	IsAvailable bool   `json:"is_available"`
}

type DaySlotsResponse struct {
	DentistID string         `json:"dentist_id"`
	Date      string         `json:"date"`
	Slots     []SlotResponse `json:"slots"`
}

func FromSlotViews(dentistID, date string, views []queries.SlotView) *DaySlotsResponse {
	slots := make([]SlotResponse, len(views))
	for i, v := range views {
		slots[i] = SlotResponse{Time: v.Time, IsAvailable: v.IsAvailable}
	}
	return &DaySlotsResponse{DentistID: dentistID, Date: date, Slots: slots}
}
