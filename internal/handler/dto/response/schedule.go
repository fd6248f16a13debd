package response

import (
	"dental-clinic-api/internal/usecase/queries"

	"github.com/google/uuid"
)

type RuleResponse struct {
	ID          uuid.UUID `json:"id"`
	Weekday     int       `json:"weekday"`
	StartTime   string    `json:"start_time"`
	EndTime     string    `json:"end_time"`
	SlotMinutes int       `json:"slot_minutes"`
	Active      bool      `json:"active"`
}

func FromRuleViews(views []*queries.RuleView) []RuleResponse {
	rules := make([]RuleResponse, len(views))
	for i, v := range views {
		rules[i] = RuleResponse{
			ID:          v.ID,
			Weekday:     v.Weekday,
			StartTime:   v.StartTime,
			EndTime:     v.EndTime,
			SlotMinutes: v.SlotMinutes,
			Active:      v.Active,
		}
	}
	return rules
}
