package api

import (
	"errors"
	"net/http"
	"time"

	"dental-clinic-api/internal/domain/appointment"
	"dental-clinic-api/internal/domain/schedule"
	"dental-clinic-api/internal/domain/user"
	reqdto "dental-clinic-api/internal/handler/dto/request"
	resdto "dental-clinic-api/internal/handler/dto/response"
	"dental-clinic-api/internal/handler/middleware"
	"dental-clinic-api/internal/usecase/commands"
	"dental-clinic-api/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type AppointmentHandler struct {
	bookingCommands    commands.BookingCommands
	appointmentQueries queries.AppointmentQueries
}

func NewAppointmentHandler(bookingCommands commands.BookingCommands, appointmentQueries queries.AppointmentQueries) *AppointmentHandler {
	return &AppointmentHandler{
		bookingCommands:    bookingCommands,
		appointmentQueries: appointmentQueries,
	}
}

// @Summary Book appointment
// @Description Reserve a slot for an authenticated patient or a guest with contact details
// @Tags appointments
// @Accept json
// @Produce json
// @Param request body reqdto.ReserveSlotRequest true "Booking request"
// @Success 201 {object} resdto.AppointmentResponse
// @Failure 400 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /appointments [post]
func (h *AppointmentHandler) BookAppointment(c *gin.Context) {
	var req reqdto.ReserveSlotRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	date, slotTime, ok := parseSlot(c, req.Date, req.Time)
	if !ok {
		return
	}

	// Authenticated users book as themselves; everyone else is a guest and
	// must supply contact details, enforced by the domain layer.
	var patientID *uuid.UUID
	if userID, authed := middleware.GetUserID(c); authed {
		patientID = &userID
	}

	view, err := h.bookingCommands.ReserveSlot(c.Request.Context(), commands.ReserveSlotInput{
		DentistID:      req.DentistID,
		Date:           date,
		Time:           slotTime,
		PatientID:      patientID,
		ContactName:    req.PatientName,
		ContactEmail:   req.PatientEmail,
		Reason:         req.Reason,
		RequirePayment: req.RequirePayment,
		Holder:         req.HoldToken,
	})
	if err != nil {
		respondCommandError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resdto.FromAppointmentView(view))
}

// @Summary Get appointment
// @Description Get appointment by ID
// @Tags appointments
// @Produce json
// @Security BearerAuth
// @Param id path string true "Appointment ID"
// @Success 200 {object} resdto.AppointmentResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /appointments/{id} [get]
func (h *AppointmentHandler) GetAppointment(c *gin.Context) {
	actor, role, ok := requireIdentity(c)
	if !ok {
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid appointment ID format",
		})
		return
	}

	view, err := h.appointmentQueries.GetByID(c.Request.Context(), actor, role, id)
	if err != nil {
		switch {
		case errors.Is(err, queries.ErrAppointmentNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Appointment not found",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	c.JSON(http.StatusOK, resdto.FromAppointmentView(view))
}

// @Summary List own appointments
// @Description List appointments for the requesting patient or dentist
// @Tags appointments
// @Produce json
// @Security BearerAuth
// @Success 200 {array} resdto.AppointmentListResponse
// @Failure 401 {object} map[string]string
// @Router /appointments [get]
func (h *AppointmentHandler) ListAppointments(c *gin.Context) {
	actor, role, ok := requireIdentity(c)
	if !ok {
		return
	}

	items, err := h.appointmentQueries.ListByRequester(c.Request.Context(), actor, role)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	response := make([]*resdto.AppointmentListResponse, len(items))
	for i, item := range items {
		response[i] = resdto.FromAppointmentListItem(item)
	}
	c.JSON(http.StatusOK, response)
}

// @Summary List dentist day appointments
// @Description List a dentist's appointments for a specific date
// @Tags appointments
// @Produce json
// @Security BearerAuth
// @Param id path string true "Dentist ID"
// @Param date query string true "Date (YYYY-MM-DD)"
// @Success 200 {array} resdto.AppointmentListResponse
// @Failure 403 {object} map[string]string
// @Router /dentists/{id}/appointments [get]
func (h *AppointmentHandler) ListDentistAppointments(c *gin.Context) {
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

	date, err := time.Parse(dateLayout, c.Query("date"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid or missing date, expected YYYY-MM-DD",
		})
		return
	}

	items, err := h.appointmentQueries.ListByDentistDate(c.Request.Context(), actor, role, dentistID, date)
	if err != nil {
		switch {
		case errors.Is(err, queries.ErrAccessDenied):
			c.JSON(http.StatusForbidden, gin.H{
				"error": "Access denied",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	response := make([]*resdto.AppointmentListResponse, len(items))
	for i, item := range items {
		response[i] = resdto.FromAppointmentListItem(item)
	}
	c.JSON(http.StatusOK, response)
}

// @Summary Cancel appointment
// @Description Cancel an appointment, subject to the cancellation window
// @Tags appointments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Appointment ID"
// @Success 204
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /appointments/{id} [delete]
func (h *AppointmentHandler) CancelAppointment(c *gin.Context) {
	actor, role, ok := requireIdentity(c)
	if !ok {
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid appointment ID format",
		})
		return
	}

	// Cancellation reason is optional; an empty body is fine.
	var req reqdto.CancelAppointmentRequest
	_ = c.ShouldBindJSON(&req)

	if err := h.bookingCommands.CancelAppointment(c.Request.Context(), actor, role, id, req.Reason); err != nil {
		respondCommandError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// @Summary Update appointment
// @Description Update status or notes; cancellation requests follow the cancellation rules
// @Tags appointments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Appointment ID"
// @Param request body reqdto.UpdateAppointmentRequest true "Update request"
// @Success 200 {object} resdto.AppointmentResponse
// @Failure 403 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /appointments/{id} [put]
func (h *AppointmentHandler) UpdateAppointment(c *gin.Context) {
	actor, role, ok := requireIdentity(c)
	if !ok {
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid appointment ID format",
		})
		return
	}

	var req reqdto.UpdateAppointmentRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	in := commands.UpdateAppointmentInput{
		Notes:        req.Notes,
		CancelReason: req.CancelReason,
	}
	if req.Status != nil {
		status := appointment.Status(*req.Status)
		if !status.IsValid() {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Invalid appointment status",
			})
			return
		}
		in.Status = &status
	}

	view, err := h.bookingCommands.UpdateAppointment(c.Request.Context(), actor, role, id, in)
	if err != nil {
		respondCommandError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.FromAppointmentView(view))
}

// @Summary Confirm appointment
// @Description Confirm a pending appointment after payment settles
// @Tags appointments
// @Produce json
// @Security BearerAuth
// @Param id path string true "Appointment ID"
// @Success 200 {object} resdto.AppointmentResponse
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /appointments/{id}/confirm [post]
func (h *AppointmentHandler) ConfirmAppointment(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid appointment ID format",
		})
		return
	}

	view, err := h.bookingCommands.ConfirmAppointment(c.Request.Context(), id)
	if err != nil {
		respondCommandError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.FromAppointmentView(view))
}

// @Summary Place slot hold
// @Description Hold a slot temporarily during the reserve-then-pay flow
// @Tags holds
// @Accept json
// @Produce json
// @Param request body reqdto.HoldRequest true "Hold request"
// @Success 201 {object} resdto.HoldResponse
// @Failure 409 {object} map[string]string
// @Router /holds [post]
func (h *AppointmentHandler) PlaceHold(c *gin.Context) {
	var req reqdto.HoldRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	date, slotTime, ok := parseSlot(c, req.Date, req.Time)
	if !ok {
		return
	}

	receipt, err := h.bookingCommands.PlaceHold(c.Request.Context(), commands.PlaceHoldInput{
		DentistID: req.DentistID,
		Date:      date,
		Time:      slotTime,
		Holder:    req.Holder,
	})
	if err != nil {
		respondCommandError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resdto.FromHoldReceipt(receipt))
}

// @Summary Release slot hold
// @Description Release a previously placed hold
// @Tags holds
// @Accept json
// @Success 204
// @Failure 400 {object} map[string]string
// @Router /holds [delete]
func (h *AppointmentHandler) ReleaseHold(c *gin.Context) {
	var req reqdto.HoldRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	date, slotTime, ok := parseSlot(c, req.Date, req.Time)
	if !ok {
		return
	}

	if err := h.bookingCommands.ReleaseHold(c.Request.Context(), commands.PlaceHoldInput{
		DentistID: req.DentistID,
		Date:      date,
		Time:      slotTime,
		Holder:    req.Holder,
	}); err != nil {
		respondCommandError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func parseSlot(c *gin.Context, dateStr, timeStr string) (time.Time, schedule.TimeOfDay, bool) {
	date, err := time.Parse(dateLayout, dateStr)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid date, expected YYYY-MM-DD",
		})
		return time.Time{}, schedule.TimeOfDay{}, false
	}
	slotTime, err := schedule.ParseTimeOfDay(timeStr)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid time, expected HH:MM",
		})
		return time.Time{}, schedule.TimeOfDay{}, false
	}
	return date, slotTime, true
}

func requireIdentity(c *gin.Context) (uuid.UUID, user.Role, bool) {
	actor, okID := middleware.GetUserID(c)
	role, okRole := middleware.GetUserRole(c)
	if !okID || !okRole {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return uuid.Nil, "", false
	}
	return actor, role, true
}

// respondCommandError maps use case outcomes to HTTP statuses. Slot conflicts
// carry alternative suggestions in the response body.
func respondCommandError(c *gin.Context, err error) {
	var slotErr *commands.SlotUnavailableError
	if errors.As(err, &slotErr) {
		c.JSON(http.StatusConflict, gin.H{
			"error":        "Slot is no longer available",
			"alternatives": slotErr.Alternatives,
		})
		return
	}

	switch {
	case errors.Is(err, commands.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid booking request",
		})
	case errors.Is(err, commands.ErrAppointmentNotFound):
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Appointment not found",
		})
	case errors.Is(err, commands.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{
			"error": "Access denied",
		})
	case errors.Is(err, commands.ErrSlotUnavailable):
		c.JSON(http.StatusConflict, gin.H{
			"error": "Slot is no longer available",
		})
	case errors.Is(err, commands.ErrAlreadyCancelled):
		c.JSON(http.StatusConflict, gin.H{
			"error": "Appointment is already cancelled",
		})
	case errors.Is(err, commands.ErrConcurrentUpdate):
		c.JSON(http.StatusConflict, gin.H{
			"error": "Appointment was modified concurrently",
		})
	case errors.Is(err, commands.ErrCancellationWindowExpired):
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Cancellation window has closed",
		})
	case errors.Is(err, commands.ErrInvalidTransition):
		c.JSON(http.StatusConflict, gin.H{
			"error": "Invalid status transition",
		})
	case errors.Is(err, commands.ErrDatastoreTimeout):
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Datastore timeout",
		})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
	}
}
