//go:build e2e

package booking_test

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"testing"
	"time"

	"dental-clinic-api/internal/domain/schedule"
	"dental-clinic-api/internal/domain/user"
	"dental-clinic-api/internal/infra/readstore"
	"dental-clinic-api/tests/common/httptest"
	"dental-clinic-api/tests/e2e"
	"dental-clinic-api/tests/e2e/common/helper"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
)

type BookingE2ETestSuite struct {
	e2e.SharedSuite
}

func TestBookingE2ESuite(t *testing.T) {
	suite.Run(t, new(BookingE2ETestSuite))
}

// seedWeeklySchedule inserts a 09:00-17:00 / 30 min template for the weekday
// of the given date.
func (s *BookingE2ETestSuite) seedWeeklySchedule(dentistID uuid.UUID, date time.Time) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	_, err := s.DB.Exec(ctx, `
		INSERT INTO availability_rules (id, dentist_id, weekday, start_time, end_time, slot_minutes, active)
		VALUES ($1, $2, $3, '09:00', '17:00', 30, TRUE)
	`, uuid.New(), dentistID, int(date.Weekday()))
	s.Require().NoError(err)
}

func (s *BookingE2ETestSuite) bookingBody(dentistID uuid.UUID, date time.Time, slot, email string) map[string]any {
	return map[string]any{
		"dentist_id":    dentistID.String(),
		"date":          date.Format("2006-01-02"),
		"time":          slot,
		"patient_name":  "Guest Patient",
		"patient_email": email,
		"reason":        "toothache",
	}
}

func nextWeek() time.Time {
	return time.Now().AddDate(0, 0, 7)
}

func (s *BookingE2ETestSuite) TestConcurrentBookingOnlyOneWins() {
	dentistID := uuid.New()
	date := nextWeek()
	s.seedWeeklySchedule(dentistID, date)

	const attempts = 8
	codes := make([]int, attempts)
	bodies := make([]map[string]any, attempts)

	var wg sync.WaitGroup
	for i := range attempts {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			body := s.bookingBody(dentistID, date, "10:00", fmt.Sprintf("guest%d@example.com", i))
			rec := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, "/api/appointments", body, "")
			codes[i] = rec.Code

			var resp map[string]any
			_ = httptest.DecodeResponseBody(s.T(), rec.Body, &resp)
			bodies[i] = resp
		}(i)
	}
	wg.Wait()

	created, conflicted := 0, 0
	for i, code := range codes {
		switch code {
		case http.StatusCreated:
			created++
		case http.StatusConflict:
			conflicted++
			alternatives, ok := bodies[i]["alternatives"].([]any)
			s.Require().True(ok, "conflict response must carry alternatives")
			s.NotEmpty(alternatives)
			for _, alt := range alternatives {
				s.NotEqual("10:00", alt, "requested slot must never be suggested")
			}
		default:
			s.Failf("unexpected status", "attempt %d returned %d", i, code)
		}
	}
	s.Equal(1, created, "exactly one booking must win the race")
	s.Equal(attempts-1, conflicted)
}

func (s *BookingE2ETestSuite) TestCancelledSlotCanBeRebooked() {
	dentistID := uuid.New()
	patientID := uuid.New()
	date := nextWeek()
	s.seedWeeklySchedule(dentistID, date)

	token := helper.IssueToken(s.T(), s.Config.JWT.Secret, patientID, user.RolePatient)

	rec := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, "/api/appointments",
		s.bookingBody(dentistID, date, "11:00", "patient@example.com"), token)
	var created struct {
		ID uuid.UUID `json:"id"`
	}
	httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &created)

	rec = httptest.PerformRequest(s.T(), s.Router, http.MethodDelete, "/api/appointments/"+created.ID.String(),
		map[string]any{"reason": "schedule change"}, token)
	s.Equal(http.StatusNoContent, rec.Code)

	// The cancelled row no longer occupies the slot.
	rec = httptest.PerformRequest(s.T(), s.Router, http.MethodPost, "/api/appointments",
		s.bookingBody(dentistID, date, "11:00", "another@example.com"), "")
	s.Equal(http.StatusCreated, rec.Code)
}

func (s *BookingE2ETestSuite) TestCancellationWindowIsEnforced() {
	dentistID := uuid.New()
	patientID := uuid.New()

	// A slot 30 minutes from now is bookable but inside the one hour window.
	start := time.Now().Add(30 * time.Minute)
	s.seedWeeklySchedule(dentistID, start)

	token := helper.IssueToken(s.T(), s.Config.JWT.Secret, patientID, user.RolePatient)

	rec := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, "/api/appointments",
		s.bookingBody(dentistID, start, start.Format("15:04"), "patient@example.com"), token)
	var created struct {
		ID uuid.UUID `json:"id"`
	}
	httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &created)

	rec = httptest.PerformRequest(s.T(), s.Router, http.MethodDelete, "/api/appointments/"+created.ID.String(),
		map[string]any{"reason": "too late"}, token)
	s.Equal(http.StatusBadRequest, rec.Code)

	// Staff may still cancel inside the window.
	adminToken := helper.IssueToken(s.T(), s.Config.JWT.Secret, uuid.New(), user.RoleAdmin)
	rec = httptest.PerformRequest(s.T(), s.Router, http.MethodDelete, "/api/appointments/"+created.ID.String(),
		map[string]any{"reason": "clinic closure"}, adminToken)
	s.Equal(http.StatusNoContent, rec.Code)
}

func (s *BookingE2ETestSuite) TestPaymentConfirmationFlow() {
	dentistID := uuid.New()
	date := nextWeek()
	s.seedWeeklySchedule(dentistID, date)

	body := s.bookingBody(dentistID, date, "15:00", "payer@example.com")
	body["require_payment"] = true
	rec := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, "/api/appointments", body, "")
	var created struct {
		ID     uuid.UUID `json:"id"`
		Status string    `json:"status"`
	}
	httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &created)
	s.Equal("pending", created.Status)

	confirmURL := "/api/appointments/" + created.ID.String() + "/confirm"

	// The payment callback is reserved for staff-scoped tokens.
	patientToken := helper.IssueToken(s.T(), s.Config.JWT.Secret, uuid.New(), user.RolePatient)
	rec = httptest.PerformRequest(s.T(), s.Router, http.MethodPost, confirmURL, nil, patientToken)
	s.Equal(http.StatusForbidden, rec.Code)

	adminToken := helper.IssueToken(s.T(), s.Config.JWT.Secret, uuid.New(), user.RoleAdmin)
	var confirmed struct {
		Status string `json:"status"`
	}
	rec = httptest.PerformRequest(s.T(), s.Router, http.MethodPost, confirmURL, nil, adminToken)
	httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &confirmed)
	s.Equal("confirmed", confirmed.Status)

	// Webhook replays must not fail or change the outcome.
	rec = httptest.PerformRequest(s.T(), s.Router, http.MethodPost, confirmURL, nil, adminToken)
	httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &confirmed)
	s.Equal("confirmed", confirmed.Status)

	updateURL := "/api/appointments/" + created.ID.String()
	rec = httptest.PerformRequest(s.T(), s.Router, http.MethodPut, updateURL,
		map[string]any{"status": "completed"}, adminToken)
	s.Equal(http.StatusOK, rec.Code)

	// Completed is terminal; the conditional write refuses to move it back.
	rec = httptest.PerformRequest(s.T(), s.Router, http.MethodPut, updateURL,
		map[string]any{"status": "pending"}, adminToken)
	s.Equal(http.StatusConflict, rec.Code)
}

func (s *BookingE2ETestSuite) TestHoldBlocksOtherBookers() {
	dentistID := uuid.New()
	date := nextWeek()
	s.seedWeeklySchedule(dentistID, date)

	holdBody := map[string]any{
		"dentist_id": dentistID.String(),
		"date":       date.Format("2006-01-02"),
		"time":       "14:00",
		"holder":     "checkout-session-1",
	}

	rec := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, "/api/holds", holdBody, "")
	s.Equal(http.StatusCreated, rec.Code)

	// A competing hold on the same slot loses.
	competing := map[string]any{
		"dentist_id": dentistID.String(),
		"date":       date.Format("2006-01-02"),
		"time":       "14:00",
		"holder":     "checkout-session-2",
	}
	rec = httptest.PerformRequest(s.T(), s.Router, http.MethodPost, "/api/holds", competing, "")
	s.Equal(http.StatusConflict, rec.Code)

	// Booking without the hold token is refused.
	rec = httptest.PerformRequest(s.T(), s.Router, http.MethodPost, "/api/appointments",
		s.bookingBody(dentistID, date, "14:00", "other@example.com"), "")
	s.Equal(http.StatusConflict, rec.Code)

	// The holder converts the hold into a booking.
	body := s.bookingBody(dentistID, date, "14:00", "holder@example.com")
	body["hold_token"] = "checkout-session-1"
	rec = httptest.PerformRequest(s.T(), s.Router, http.MethodPost, "/api/appointments", body, "")
	s.Equal(http.StatusCreated, rec.Code)
}

func (s *BookingE2ETestSuite) TestAvailabilityCheckExcludesSelf() {
	dentistID := uuid.New()
	date := nextWeek()
	s.seedWeeklySchedule(dentistID, date)

	rec := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, "/api/appointments",
		s.bookingBody(dentistID, date, "13:00", "self@example.com"), "")
	var created struct {
		ID uuid.UUID `json:"id"`
	}
	httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &created)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	reads := readstore.NewAppointmentReadStore(s.DB)
	slot, err := schedule.ParseTimeOfDay("13:00")
	s.Require().NoError(err)

	available, err := reads.IsSlotAvailable(ctx, dentistID, date, slot, nil)
	s.Require().NoError(err)
	s.False(available, "occupied slot must read as unavailable")

	// Excluding the occupant itself frees the slot, the reschedule case.
	available, err = reads.IsSlotAvailable(ctx, dentistID, date, slot, &created.ID)
	s.Require().NoError(err)
	s.True(available)
}

func (s *BookingE2ETestSuite) TestSlotGridReflectsBookings() {
	dentistID := uuid.New()
	date := nextWeek()
	s.seedWeeklySchedule(dentistID, date)

	rec := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, "/api/appointments",
		s.bookingBody(dentistID, date, "09:30", "grid@example.com"), "")
	s.Require().Equal(http.StatusCreated, rec.Code)

	url := fmt.Sprintf("/api/dentists/%s/slots?date=%s", dentistID, date.Format("2006-01-02"))
	rec = httptest.PerformRequest(s.T(), s.Router, http.MethodGet, url, nil, "")

	var grid struct {
		Slots []struct {
			Time        string `json:"time"`
			IsAvailable bool   `json:"is_available"`
		} `json:"slots"`
	}
	httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &grid)

	s.Require().Len(grid.Slots, 16, "09:00-17:00 at 30 min yields 16 half-open slots")
	s.Equal("09:00", grid.Slots[0].Time)
	s.Equal("16:30", grid.Slots[len(grid.Slots)-1].Time)

	for _, slot := range grid.Slots {
		if slot.Time == "09:30" {
			s.False(slot.IsAvailable, "booked slot must show unavailable")
		}
	}
}
