package api

import (
	"net/http"
	"time"

	resdto "dental-clinic-api/internal/handler/dto/response"
	"dental-clinic-api/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const dateLayout = "2006-01-02"

type SlotHandler struct {
	slotQueries queries.SlotQueries
}

func NewSlotHandler(slotQueries queries.SlotQueries) *SlotHandler {
	return &SlotHandler{
		slotQueries: slotQueries,
	}
}

// @Summary Get day availability
// @Description List a dentist's slots for a date with availability flags
// @Tags slots
// @Produce json
// @Param id path string true "Dentist ID"
// @Param date query string true "Date (YYYY-MM-DD)"
// @Success 200 {object} resdto.DaySlotsResponse
// @Failure 400 {object} map[string]string
// @Router /dentists/{id}/slots [get]
func (h *SlotHandler) GetDaySlots(c *gin.Context) {
	dentistID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid dentist ID format",
		})
		return
	}

	date, err := time.Parse(dateLayout, c.Query("date"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid or missing date, expected YYYY-MM-DD",
		})
		return
	}

	views, err := h.slotQueries.AvailableSlots(c.Request.Context(), dentistID, date)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	c.JSON(http.StatusOK, resdto.FromSlotViews(dentistID.String(), date.Format(dateLayout), views))
}
