//go:build unit

package api_test

import (
	"net/http"
	"testing"
	"time"

	"dental-clinic-api/internal/domain/appointment"
	"dental-clinic-api/internal/domain/user"
	"dental-clinic-api/internal/handler/api"
	resdto "dental-clinic-api/internal/handler/dto/response"
	"dental-clinic-api/internal/usecase/commands"
	"dental-clinic-api/internal/usecase/queries"
	"dental-clinic-api/tests/common/builder"
	"dental-clinic-api/tests/common/httptest"
	"dental-clinic-api/tests/common/testutil"
	commandsmock "dental-clinic-api/tests/mock/commands"
	queriesmock "dental-clinic-api/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type AppointmentHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCtrl     *gomock.Controller
	mockCommands *commandsmock.MockBookingCommands
	mockQueries  *queriesmock.MockAppointmentQueries
	handler      *api.AppointmentHandler
	actorID      uuid.UUID
}

func (s *AppointmentHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCommands = commandsmock.NewMockBookingCommands(s.mockCtrl)
	s.mockQueries = queriesmock.NewMockAppointmentQueries(s.mockCtrl)
	s.handler = api.NewAppointmentHandler(s.mockCommands, s.mockQueries)
	s.actorID = uuid.New()

	// Mock authentication middleware for testing
	requireAuth := func(c *gin.Context) {
		if c.GetHeader("Authorization") == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		c.Set("user_id", s.actorID)
		c.Set("user_role", user.RolePatient)
		c.Next()
	}
	optionalAuth := func(c *gin.Context) {
		if c.GetHeader("Authorization") != "" {
			c.Set("user_id", s.actorID)
			c.Set("user_role", user.RolePatient)
		}
		c.Next()
	}

	s.router.POST("/appointments", optionalAuth, s.handler.BookAppointment)
	s.router.GET("/appointments", requireAuth, s.handler.ListAppointments)
	s.router.GET("/appointments/:id", requireAuth, s.handler.GetAppointment)
	s.router.PUT("/appointments/:id", requireAuth, s.handler.UpdateAppointment)
	s.router.DELETE("/appointments/:id", requireAuth, s.handler.CancelAppointment)
	s.router.POST("/appointments/:id/confirm", requireAuth, s.handler.ConfirmAppointment)
	s.router.POST("/holds", optionalAuth, s.handler.PlaceHold)
	s.router.DELETE("/holds", optionalAuth, s.handler.ReleaseHold)
}

func (s *AppointmentHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestAppointmentHandlerSuite(t *testing.T) {
	suite.Run(t, new(AppointmentHandlerTestSuite))
}

// ================================================================================
// TestBookAppointment
// ================================================================================

func (s *AppointmentHandlerTestSuite) TestBookAppointment() {
	url := "/appointments"

	s.Run("success: guest booking returns 201", func() {
		b := builder.NewAppointmentBuilder()
		view := b.BuildView()
		s.mockCommands.EXPECT().ReserveSlot(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ any, in commands.ReserveSlotInput) (*queries.AppointmentView, error) {
				s.Nil(in.PatientID)
				s.Equal("Taro Yamada", in.ContactName)
				return view, nil
			})

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, b.BuildReserveRequestMap(), "")

		var body resdto.AppointmentResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &body)
		s.Equal(view.ID, body.ID)
		s.Equal("10:00", body.Time)
	})

	s.Run("success: authenticated booking carries the patient ID", func() {
		b := builder.NewAppointmentBuilder()
		view := b.BuildView()
		s.mockCommands.EXPECT().ReserveSlot(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ any, in commands.ReserveSlotInput) (*queries.AppointmentView, error) {
				s.Require().NotNil(in.PatientID)
				s.Equal(s.actorID, *in.PatientID)
				return view, nil
			})

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, b.BuildReserveRequestMap(), "bearer-token")

		var body resdto.AppointmentResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &body)
	})

	s.Run("error: 409 with alternatives when the slot is taken", func() {
		b := builder.NewAppointmentBuilder()
		s.mockCommands.EXPECT().ReserveSlot(gomock.Any(), gomock.Any()).
			Return(nil, &commands.SlotUnavailableError{Alternatives: []string{"10:30", "09:30"}})

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, b.BuildReserveRequestMap(), "")

		s.Equal(http.StatusConflict, rec.Code)

		var body struct {
			Error        string   `json:"error"`
			Alternatives []string `json:"alternatives"`
		}
		httptest.DecodeResponseBody(s.T(), rec.Body, &body)
		s.Equal([]string{"10:30", "09:30"}, body.Alternatives)
	})

	s.Run("error: 400 on validation failures", func() {
		cases := []struct {
			name   string
			mutate func(map[string]any)
		}{
			{name: "missing dentist_id", mutate: testutil.Field("dentist_id", nil)},
			{name: "missing date", mutate: testutil.Field("date", nil)},
			{name: "malformed date", mutate: testutil.Field("date", "03/03/2026")},
			{name: "missing time", mutate: testutil.Field("time", nil)},
			{name: "malformed time", mutate: testutil.Field("time", "25:00")},
			{name: "malformed email", mutate: testutil.Field("patient_email", "not-an-email")},
		}
		for _, c := range cases {
			s.Run(c.name, func() {
				body := builder.NewAppointmentBuilder().BuildReserveRequestMap()
				c.mutate(body)

				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, body, "")
				s.Equal(http.StatusBadRequest, rec.Code)
			})
		}
	})

	s.Run("error: 400 when the use case rejects the input", func() {
		b := builder.NewAppointmentBuilder()
		s.mockCommands.EXPECT().ReserveSlot(gomock.Any(), gomock.Any()).
			Return(nil, commands.ErrInvalidInput)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, b.BuildReserveRequestMap(), "")

		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid booking request")
	})
}

// ================================================================================
// TestCancelAppointment
// ================================================================================

func (s *AppointmentHandlerTestSuite) TestCancelAppointment() {
	id := uuid.New()
	url := "/appointments/" + id.String()

	s.Run("success: returns 204", func() {
		s.mockCommands.EXPECT().
			CancelAppointment(gomock.Any(), s.actorID, user.RolePatient, id, "feeling better").
			Return(nil)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodDelete, url,
			map[string]any{"reason": "feeling better"}, "bearer-token")

		s.Equal(http.StatusNoContent, rec.Code)
	})

	s.Run("error: 401 without a token", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodDelete, url, nil, "")
		s.Equal(http.StatusUnauthorized, rec.Code)
	})

	s.Run("error: status mapping", func() {
		cases := []struct {
			name       string
			commandErr error
			expectCode int
		}{
			{name: "not found", commandErr: commands.ErrAppointmentNotFound, expectCode: http.StatusNotFound},
			{name: "forbidden", commandErr: commands.ErrForbidden, expectCode: http.StatusForbidden},
			{name: "window expired", commandErr: commands.ErrCancellationWindowExpired, expectCode: http.StatusBadRequest},
			{name: "already cancelled", commandErr: commands.ErrAlreadyCancelled, expectCode: http.StatusConflict},
			{name: "concurrent update", commandErr: commands.ErrConcurrentUpdate, expectCode: http.StatusConflict},
			{name: "datastore timeout", commandErr: commands.ErrDatastoreTimeout, expectCode: http.StatusInternalServerError},
		}
		for _, c := range cases {
			s.Run(c.name, func() {
				s.mockCommands.EXPECT().
					CancelAppointment(gomock.Any(), s.actorID, user.RolePatient, id, "").
					Return(c.commandErr)

				rec := httptest.PerformRequest(s.T(), s.router, http.MethodDelete, url, nil, "bearer-token")
				s.Equal(c.expectCode, rec.Code)
			})
		}
	})

	s.Run("error: 400 for malformed ID", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodDelete, "/appointments/not-a-uuid", nil, "bearer-token")
		s.Equal(http.StatusBadRequest, rec.Code)
	})
}

// ================================================================================
// TestUpdateAppointment
// ================================================================================

func (s *AppointmentHandlerTestSuite) TestUpdateAppointment() {
	id := uuid.New()
	url := "/appointments/" + id.String()

	s.Run("success: status transition returns the updated appointment", func() {
		view := builder.NewAppointmentBuilder().WithStatus(appointment.StatusCompleted).BuildView()
		s.mockCommands.EXPECT().
			UpdateAppointment(gomock.Any(), s.actorID, user.RolePatient, id, gomock.Any()).
			DoAndReturn(func(_ any, _ uuid.UUID, _ user.Role, _ uuid.UUID, in commands.UpdateAppointmentInput) (*queries.AppointmentView, error) {
				s.Require().NotNil(in.Status)
				s.Equal(appointment.StatusCompleted, *in.Status)
				return view, nil
			})

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPut, url,
			map[string]any{"status": "completed"}, "bearer-token")

		var body resdto.AppointmentResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal("completed", body.Status)
	})

	s.Run("success: notes-only update", func() {
		view := builder.NewAppointmentBuilder().BuildView()
		s.mockCommands.EXPECT().
			UpdateAppointment(gomock.Any(), s.actorID, user.RolePatient, id, gomock.Any()).
			DoAndReturn(func(_ any, _ uuid.UUID, _ user.Role, _ uuid.UUID, in commands.UpdateAppointmentInput) (*queries.AppointmentView, error) {
				s.Nil(in.Status)
				s.Require().NotNil(in.Notes)
				s.Equal("follow-up in six months", *in.Notes)
				return view, nil
			})

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPut, url,
			map[string]any{"notes": "follow-up in six months"}, "bearer-token")

		s.Equal(http.StatusOK, rec.Code)
	})

	s.Run("error: 400 on an unknown status value", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPut, url,
			map[string]any{"status": "sleeping"}, "bearer-token")

		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid appointment status")
	})

	s.Run("error: status mapping", func() {
		cases := []struct {
			name       string
			commandErr error
			expectCode int
		}{
			{name: "concurrent transition lost", commandErr: commands.ErrConcurrentUpdate, expectCode: http.StatusConflict},
			{name: "invalid transition", commandErr: commands.ErrInvalidTransition, expectCode: http.StatusConflict},
			{name: "forbidden", commandErr: commands.ErrForbidden, expectCode: http.StatusForbidden},
			{name: "empty update", commandErr: commands.ErrInvalidInput, expectCode: http.StatusBadRequest},
		}
		for _, c := range cases {
			s.Run(c.name, func() {
				s.mockCommands.EXPECT().
					UpdateAppointment(gomock.Any(), s.actorID, user.RolePatient, id, gomock.Any()).
					Return(nil, c.commandErr)

				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPut, url,
					map[string]any{"status": "completed"}, "bearer-token")
				s.Equal(c.expectCode, rec.Code)
			})
		}
	})
}

// ================================================================================
// TestConfirmAppointment
// ================================================================================

func (s *AppointmentHandlerTestSuite) TestConfirmAppointment() {
	id := uuid.New()
	url := "/appointments/" + id.String() + "/confirm"

	s.Run("success: pending appointment confirms", func() {
		view := builder.NewAppointmentBuilder().BuildView()
		s.mockCommands.EXPECT().ConfirmAppointment(gomock.Any(), id).Return(view, nil)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil, "bearer-token")

		var body resdto.AppointmentResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal("confirmed", body.Status)
	})

	s.Run("success: replayed confirmation stays 200", func() {
		view := builder.NewAppointmentBuilder().BuildView()
		s.mockCommands.EXPECT().ConfirmAppointment(gomock.Any(), id).Return(view, nil).Times(2)

		for range 2 {
			rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil, "bearer-token")
			s.Equal(http.StatusOK, rec.Code)
		}
	})

	s.Run("error: 409 when the appointment cannot be confirmed", func() {
		s.mockCommands.EXPECT().ConfirmAppointment(gomock.Any(), id).
			Return(nil, commands.ErrInvalidTransition)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil, "bearer-token")
		s.Equal(http.StatusConflict, rec.Code)
	})

	s.Run("error: 400 for malformed ID", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/appointments/nope/confirm", nil, "bearer-token")
		s.Equal(http.StatusBadRequest, rec.Code)
	})
}

// ================================================================================
// TestGetAppointment
// ================================================================================

func (s *AppointmentHandlerTestSuite) TestGetAppointment() {
	s.Run("success: returns the appointment", func() {
		view := builder.NewAppointmentBuilder().BuildView()
		s.mockQueries.EXPECT().
			GetByID(gomock.Any(), s.actorID, user.RolePatient, view.ID).
			Return(view, nil)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/appointments/"+view.ID.String(), nil, "bearer-token")

		var body resdto.AppointmentResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal(view.ID, body.ID)
	})

	s.Run("error: 404 when hidden or missing", func() {
		id := uuid.New()
		s.mockQueries.EXPECT().
			GetByID(gomock.Any(), s.actorID, user.RolePatient, id).
			Return(nil, queries.ErrAppointmentNotFound)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/appointments/"+id.String(), nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "Appointment not found")
	})
}

// ================================================================================
// TestPlaceHold
// ================================================================================

func (s *AppointmentHandlerTestSuite) TestPlaceHold() {
	url := "/holds"
	reqBody := map[string]any{
		"dentist_id": uuid.New().String(),
		"date":       "2026-03-03",
		"time":       "10:00",
		"holder":     "session-abc",
	}

	s.Run("success: returns 201 with expiry", func() {
		s.mockCommands.EXPECT().PlaceHold(gomock.Any(), gomock.Any()).
			Return(&commands.HoldReceipt{ExpiresAt: builder.BaseTime.Add(10 * time.Minute)}, nil)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")

		var body resdto.HoldResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &body)
		s.False(body.ExpiresAt.IsZero())
	})

	s.Run("error: 409 when already held", func() {
		s.mockCommands.EXPECT().PlaceHold(gomock.Any(), gomock.Any()).
			Return(nil, &commands.SlotUnavailableError{Alternatives: []string{"10:30"}})

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")
		s.Equal(http.StatusConflict, rec.Code)
	})

	s.Run("error: 400 without a holder token", func() {
		body := map[string]any{
			"dentist_id": uuid.New().String(),
			"date":       "2026-03-03",
			"time":       "10:00",
		}
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, body, "")
		s.Equal(http.StatusBadRequest, rec.Code)
	})
}
