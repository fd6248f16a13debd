package request

type WeeklyRuleRequest struct {
	Weekday     int    `json:"weekday" binding:"min=0,max=6"`
	StartTime   string `json:"start_time" binding:"required"`
	EndTime     string `json:"end_time" binding:"required"`
	SlotMinutes int    `json:"slot_minutes" binding:"required,min=1"`
	Active      bool   `json:"active"`
}

type WeeklyScheduleRequest struct {
	Rules []WeeklyRuleRequest `json:"rules" binding:"required"`
}
