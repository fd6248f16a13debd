package response

import (
	"time"

	"dental-clinic-api/internal/usecase/commands"
	"dental-clinic-api/internal/usecase/queries"

	"github.com/google/uuid"
)

type AppointmentResponse struct {
	ID           uuid.UUID  `json:"id"`
	DentistID    uuid.UUID  `json:"dentist_id"`
	PatientID    *uuid.UUID `json:"patient_id,omitempty"`
	PatientName  *string    `json:"patient_name,omitempty"`
	PatientEmail *string    `json:"patient_email,omitempty"`
	Date         string     `json:"date"`
	Time         string     `json:"time"`
	Status       string     `json:"status"`
	Reason       string     `json:"reason"`
	Notes        string     `json:"notes"`
	CancelReason *string    `json:"cancel_reason,omitempty"`
	CancelledAt  *time.Time `json:"cancelled_at,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

func FromAppointmentView(v *queries.AppointmentView) *AppointmentResponse {
	return &AppointmentResponse{
		ID:           v.ID,
		DentistID:    v.DentistID,
		PatientID:    v.PatientID,
		PatientName:  v.PatientName,
		PatientEmail: v.PatientEmail,
		Date:         v.Date,
		Time:         v.Time,
		Status:       v.Status,
		Reason:       v.Reason,
		Notes:        v.Notes,
		CancelReason: v.CancelReason,
		CancelledAt:  v.CancelledAt,
		CreatedAt:    v.CreatedAt,
		UpdatedAt:    v.UpdatedAt,
	}
}

type AppointmentListResponse struct {
	ID        uuid.UUID `json:"id"`
	DentistID uuid.UUID `json:"dentist_id"`
	Date      string    `json:"date"`
	Time      string    `json:"time"`
	Status    string    `json:"status"`
	Reason    string    `json:"reason"`
	CreatedAt time.Time `json:"created_at"`
}

func FromAppointmentListItem(item *queries.AppointmentListItem) *AppointmentListResponse {
	return &AppointmentListResponse{
		ID:        item.ID,
		DentistID: item.DentistID,
		Date:      item.Date,
		Time:      item.Time,
		Status:    item.Status,
		Reason:    item.Reason,
		CreatedAt: item.CreatedAt,
	}
}

type HoldResponse struct {
	ExpiresAt time.Time `json:"expires_at"`
}

func FromHoldReceipt(r *commands.HoldReceipt) *HoldResponse {
	return &HoldResponse{ExpiresAt: r.ExpiresAt}
}
