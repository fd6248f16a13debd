package api

import (
	"net/http"

	reqdto "dental-clinic-api/internal/handler/dto/request"
	resdto "dental-clinic-api/internal/handler/dto/response"
	"dental-clinic-api/internal/usecase/commands"
	"dental-clinic-api/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ScheduleHandler struct {
	scheduleCommands commands.ScheduleCommands
	scheduleQueries  queries.ScheduleQueries
}

func NewScheduleHandler(scheduleCommands commands.ScheduleCommands, scheduleQueries queries.ScheduleQueries) *ScheduleHandler {
	return &ScheduleHandler{
		scheduleCommands: scheduleCommands,
		scheduleQueries:  scheduleQueries,
	}
}

// @Summary Get weekly schedule
// @Description Get a dentist's weekly availability template
// @Tags schedule
// @Produce json
// @Param id path string true "Dentist ID"
// @Success 200 {array} resdto.RuleResponse
// @Failure 400 {object} map[string]string
// @Router /dentists/{id}/schedule [get]
func (h *ScheduleHandler) GetWeeklySchedule(c *gin.Context) {
	dentistID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid dentist ID format",
		})
		return
	}

	views, err := h.scheduleQueries.WeeklySchedule(c.Request.Context(), dentistID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	c.JSON(http.StatusOK, resdto.FromRuleViews(views))
}

// @Summary Replace weekly schedule
// @Description Replace a dentist's weekly availability template
// @Tags schedule
// @Accept json
// @Security BearerAuth
// @Param id path string true "Dentist ID"
// @Param request body reqdto.WeeklyScheduleRequest true "Weekly schedule"
// @Success 204
// @Failure 400 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Router /dentists/{id}/schedule [put]
func (h *ScheduleHandler) SaveWeeklySchedule(c *gin.Context) {
	actor, role, ok := requireIdentity(c)
	if !ok {
		return
	}

	dentistID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid dentist ID format",
		})
		return
	}

	var req reqdto.WeeklyScheduleRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	rules := make([]commands.WeeklyRuleInput, len(req.Rules))
	for i, r := range req.Rules {
		rules[i] = commands.WeeklyRuleInput{
			Weekday:     r.Weekday,
			StartTime:   r.StartTime,
			EndTime:     r.EndTime,
			SlotMinutes: r.SlotMinutes,
			Active:      r.Active,
		}
	}

	if err := h.scheduleCommands.SaveWeeklySchedule(c.Request.Context(), actor, role, dentistID, rules); err != nil {
		respondCommandError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// @Summary Clear weekly schedule
// @Description Remove all availability rules for a dentist
// @Tags schedule
// @Security BearerAuth
// @Param id path string true "Dentist ID"
// @Success 204
// @Failure 403 {object} map[string]string
// @Router /dentists/{id}/schedule [delete]
func (h *ScheduleHandler) ClearWeeklySchedule(c *gin.Context) {
	actor, role, ok := requireIdentity(c)
	if !ok {
		return
	}

	dentistID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid dentist ID format",
		})
		return
	}

	if err := h.scheduleCommands.ClearWeeklySchedule(c.Request.Context(), actor, role, dentistID); err != nil {
		respondCommandError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
