package request

import "github.com/google/uuid"

type ReserveSlotRequest struct {
	DentistID uuid.UUID `json:"dentist_id" binding:"required"`
	Date      string    `json:"date" binding:"required"`
	Time      string    `json:"time" binding:"required"`
	// Contact fields are required for guest bookings only; authenticated
	// patients are identified by their token.
	PatientName    string `json:"patient_name"`
	PatientEmail   string `json:"patient_email" binding:"omitempty,email"`
	Reason         string `json:"reason"`
	RequirePayment bool   `json:"require_payment"`
	HoldToken      string `json:"hold_token"`
}

type UpdateAppointmentRequest struct {
	Status       *string `json:"status"`
	Notes        *string `json:"notes"`
	CancelReason string  `json:"cancel_reason"`
}

type CancelAppointmentRequest struct {
	Reason string `json:"reason"`
}

type HoldRequest struct {
	DentistID uuid.UUID `json:"dentist_id" binding:"required"`
	Date      string    `json:"date" binding:"required"`
	Time      string    `json:"time" binding:"required"`
	Holder    string    `json:"holder" binding:"required"`
}
