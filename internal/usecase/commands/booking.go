package commands

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"dental-clinic-api/internal/domain/appointment"
	"dental-clinic-api/internal/domain/schedule"
	"dental-clinic-api/internal/domain/user"
	"dental-clinic-api/internal/infra"
	"dental-clinic-api/internal/infra/db"
	"dental-clinic-api/internal/pkg/clock"
	"dental-clinic-api/internal/pkg/config"
	"dental-clinic-api/internal/pkg/errs"
	"dental-clinic-api/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	ErrInvalidInput              = errs.New("invalid input")
	ErrSlotUnavailable           = errs.New("slot unavailable")
	ErrAppointmentNotFound       = errs.New("appointment not found")
	ErrForbidden                 = errs.New("forbidden")
	ErrCancellationWindowExpired = errs.New("cancellation window expired")
	ErrAlreadyCancelled          = errs.New("appointment already cancelled")
	ErrInvalidTransition         = errs.New("invalid status transition")
	ErrConcurrentUpdate          = errs.New("appointment changed concurrently")
	ErrDatastoreTimeout          = errs.New("datastore timeout")
	ErrDatabaseOperationFailed   = errs.New("database operation failed")
)

// SlotUnavailableError is the business-conflict outcome of a booking attempt.
// It matches ErrSlotUnavailable under errors.Is and carries nearby free slots
// as suggestions.
type SlotUnavailableError struct {
	Alternatives []string
}

func (e *SlotUnavailableError) Error() string {
	return "slot unavailable"
}

func (e *SlotUnavailableError) Is(target error) bool {
	return target == ErrSlotUnavailable
}

type ReserveSlotInput struct {
	DentistID    uuid.UUID
	Date         time.Time
	Time         schedule.TimeOfDay
	PatientID    *uuid.UUID
	ContactName  string
	ContactEmail string
	Reason       string
	// RequirePayment keeps the appointment pending until the payment webhook
	// confirms it; otherwise the booking is confirmed immediately.
	RequirePayment bool
	// Holder must match an existing hold on the slot, if any.
	Holder string
}

type UpdateAppointmentInput struct {
	Status       *appointment.Status
	Notes        *string
	CancelReason string
}

type PlaceHoldInput struct {
	DentistID uuid.UUID
	Date      time.Time
	Time      schedule.TimeOfDay
	Holder    string
}

type HoldReceipt struct {
	ExpiresAt time.Time
}

type BookingCommands interface {
	ReserveSlot(ctx context.Context, in ReserveSlotInput) (*queries.AppointmentView, error)
	CancelAppointment(ctx context.Context, actor uuid.UUID, role user.Role, id uuid.UUID, reason string) error
	UpdateAppointment(ctx context.Context, actor uuid.UUID, role user.Role, id uuid.UUID, in UpdateAppointmentInput) (*queries.AppointmentView, error)
	ConfirmAppointment(ctx context.Context, id uuid.UUID) (*queries.AppointmentView, error)
	PlaceHold(ctx context.Context, in PlaceHoldInput) (*HoldReceipt, error)
	ReleaseHold(ctx context.Context, in PlaceHoldInput) error
}

type bookingUseCaseImpl struct {
	appointmentRepo  AppointmentRepository
	notificationRepo NotificationRepository
	appointmentReads AppointmentReads
	scheduleReads    ScheduleReads
	holds            HoldStore
	pool             *pgxpool.Pool
	clock            clock.Clock
	policy           appointment.CancellationPolicy
	cfg              config.BookingConfig
}

func NewBookingUseCase(
	appointmentRepo AppointmentRepository,
	notificationRepo NotificationRepository,
	appointmentReads AppointmentReads,
	scheduleReads ScheduleReads,
	holds HoldStore,
	pool *pgxpool.Pool,
	clk clock.Clock,
	cfg config.BookingConfig,
) BookingCommands {
	return &bookingUseCaseImpl{
		appointmentRepo:  appointmentRepo,
		notificationRepo: notificationRepo,
		appointmentReads: appointmentReads,
		scheduleReads:    scheduleReads,
		holds:            holds,
		pool:             pool,
		clock:            clk,
		policy:           appointment.NewCancellationPolicy(cfg.CancelWindow),
		cfg:              cfg,
	}
}

// ReserveSlot is the reservation guard: optimistic availability pre-check,
// then a constrained insert. The pre-check is a UX nicety; the partial unique
// index is the arbiter, and its violation is translated into the same
// slot-unavailable outcome as a failed pre-check.
func (b *bookingUseCaseImpl) ReserveSlot(ctx context.Context, in ReserveSlotInput) (*queries.AppointmentView, error) {
	ctx, cancel := b.withTimeout(ctx)
	defer cancel()

	status := appointment.StatusConfirmed
	if in.RequirePayment {
		status = appointment.StatusPending
	}

	appt, err := appointment.NewAppointment(
		b.clock,
		in.DentistID,
		in.PatientID,
		appointment.Contact{Name: in.ContactName, Email: in.ContactEmail},
		in.Date,
		in.Time,
		status,
		in.Reason,
	)
	if err != nil {
		return nil, errs.Mark(err, ErrInvalidInput)
	}

	held, err := b.holds.Held(ctx, in.DentistID, in.Date, []schedule.TimeOfDay{in.Time})
	if err != nil {
		return nil, b.markInfra(err)
	}
	if holder, ok := held[in.Time]; ok && holder != in.Holder {
		return nil, b.slotUnavailable(ctx, in.DentistID, in.Date, in.Time)
	}

	available, err := b.appointmentReads.IsSlotAvailable(ctx, in.DentistID, in.Date, in.Time, nil)
	if err != nil {
		return nil, b.markInfra(err)
	}
	if !available {
		return nil, b.slotUnavailable(ctx, in.DentistID, in.Date, in.Time)
	}

	id, err := db.WithDefaultRetry(ctx, b.pool, func(tx db.DBTX) (uuid.UUID, error) {
		createdID, createErr := b.appointmentRepo.Create(ctx, tx, appt)
		if createErr != nil {
			return uuid.Nil, createErr
		}
		if notifyErr := b.enqueueNotification(ctx, tx, createdID, "appointment_booked"); notifyErr != nil {
			return uuid.Nil, notifyErr
		}
		return createdID, nil
	})
	if err != nil {
		if infra.IsKind(err, infra.KindConflict) {
			// Lost the race between pre-check and insert.
			return nil, b.slotUnavailable(ctx, in.DentistID, in.Date, in.Time)
		}
		return nil, b.markInfra(err)
	}

	if in.Holder != "" {
		// The booking now owns the slot; the hold has served its purpose.
		_ = b.holds.Release(ctx, in.DentistID, in.Date, in.Time, in.Holder)
	}

	view, err := b.appointmentReads.ViewByID(ctx, id)
	if err != nil {
		return nil, b.markInfra(err)
	}
	return view, nil
}

func (b *bookingUseCaseImpl) CancelAppointment(ctx context.Context, actor uuid.UUID, role user.Role, id uuid.UUID, reason string) error {
	ctx, cancel := b.withTimeout(ctx)
	defer cancel()

	snap, err := b.loadSnapshot(ctx, id)
	if err != nil {
		return err
	}

	if err := authorizeAppointmentAccess(snap, actor, role); err != nil {
		return err
	}
	if snap.Status == appointment.StatusCancelled {
		return ErrAlreadyCancelled
	}
	if !snap.Status.Occupies() || !appointment.CanTransition(snap.Status, appointment.StatusCancelled) {
		return ErrInvalidTransition
	}

	// Staff may cancel inside the guard window; patients may not.
	if !role.IsStaff() && !b.policy.CanCancel(snap.StartAt(), b.clock.Now()) {
		return ErrCancellationWindowExpired
	}

	_, err = db.WithDefaultRetry(ctx, b.pool, func(tx db.DBTX) (struct{}, error) {
		ok, cancelErr := b.appointmentRepo.Cancel(ctx, tx, id, reason, b.clock.Now())
		if cancelErr != nil {
			return struct{}{}, cancelErr
		}
		if !ok {
			return struct{}{}, ErrConcurrentUpdate
		}
		return struct{}{}, b.enqueueNotification(ctx, tx, id, "appointment_cancelled")
	})
	if err != nil {
		if errors.Is(err, ErrConcurrentUpdate) {
			return ErrConcurrentUpdate
		}
		return b.markInfra(err)
	}
	return nil
}

func (b *bookingUseCaseImpl) UpdateAppointment(ctx context.Context, actor uuid.UUID, role user.Role, id uuid.UUID, in UpdateAppointmentInput) (*queries.AppointmentView, error) {
	ctx, cancel := b.withTimeout(ctx)
	defer cancel()

	if in.Status == nil && in.Notes == nil {
		return nil, ErrInvalidInput
	}

	snap, err := b.loadSnapshot(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := authorizeAppointmentAccess(snap, actor, role); err != nil {
		return nil, err
	}

	if in.Status != nil && *in.Status == appointment.StatusCancelled {
		if err := b.CancelAppointment(ctx, actor, role, id, in.CancelReason); err != nil {
			return nil, err
		}
		return b.appointmentReads.ViewByID(ctx, id)
	}

	// Any other mutation is schedule management, reserved for staff.
	if !role.IsStaff() {
		return nil, ErrForbidden
	}

	_, err = db.WithDefaultRetry(ctx, b.pool, func(tx db.DBTX) (struct{}, error) {
		if in.Status != nil {
			if !appointment.CanTransition(snap.Status, *in.Status) {
				return struct{}{}, ErrInvalidTransition
			}
			ok, updErr := b.appointmentRepo.UpdateStatus(ctx, tx, id, snap.Status, *in.Status)
			if updErr != nil {
				return struct{}{}, updErr
			}
			if !ok {
				return struct{}{}, ErrConcurrentUpdate
			}
		}
		if in.Notes != nil {
			ok, notesErr := b.appointmentRepo.UpdateNotes(ctx, tx, id, *in.Notes)
			if notesErr != nil {
				return struct{}{}, notesErr
			}
			if !ok {
				return struct{}{}, ErrAppointmentNotFound
			}
		}
		return struct{}{}, nil
	})
	if err != nil {
		if errors.Is(err, ErrInvalidTransition) || errors.Is(err, ErrConcurrentUpdate) || errors.Is(err, ErrAppointmentNotFound) {
			return nil, err
		}
		return nil, b.markInfra(err)
	}

	view, err := b.appointmentReads.ViewByID(ctx, id)
	if err != nil {
		return nil, b.markInfra(err)
	}
	return view, nil
}

// ConfirmAppointment is driven by the payment webhook: pending becomes
// confirmed. Replays are idempotent.
func (b *bookingUseCaseImpl) ConfirmAppointment(ctx context.Context, id uuid.UUID) (*queries.AppointmentView, error) {
	ctx, cancel := b.withTimeout(ctx)
	defer cancel()

	ok, err := b.appointmentRepo.UpdateStatus(ctx, b.pool, id, appointment.StatusPending, appointment.StatusConfirmed)
	if err != nil {
		return nil, b.markInfra(err)
	}
	if !ok {
		snap, snapErr := b.loadSnapshot(ctx, id)
		if snapErr != nil {
			return nil, snapErr
		}
		if snap.Status != appointment.StatusConfirmed {
			return nil, ErrInvalidTransition
		}
	}

	view, err := b.appointmentReads.ViewByID(ctx, id)
	if err != nil {
		return nil, b.markInfra(err)
	}
	return view, nil
}

// PlaceHold reserves a slot for the reserve-then-pay flow. A hold behaves
// like a booking for availability purposes but evaporates with its TTL.
func (b *bookingUseCaseImpl) PlaceHold(ctx context.Context, in PlaceHoldInput) (*HoldReceipt, error) {
	ctx, cancel := b.withTimeout(ctx)
	defer cancel()

	if in.Holder == "" {
		return nil, ErrInvalidInput
	}
	if !in.Time.At(in.Date).After(b.clock.Now()) {
		return nil, errs.Mark(appointment.ErrPastSlot, ErrInvalidInput)
	}

	available, err := b.appointmentReads.IsSlotAvailable(ctx, in.DentistID, in.Date, in.Time, nil)
	if err != nil {
		return nil, b.markInfra(err)
	}
	if !available {
		return nil, b.slotUnavailable(ctx, in.DentistID, in.Date, in.Time)
	}

	placed, err := b.holds.Place(ctx, in.DentistID, in.Date, in.Time, in.Holder, b.cfg.HoldTTL)
	if err != nil {
		return nil, b.markInfra(err)
	}
	if !placed {
		return nil, b.slotUnavailable(ctx, in.DentistID, in.Date, in.Time)
	}

	return &HoldReceipt{ExpiresAt: b.clock.Now().Add(b.cfg.HoldTTL)}, nil
}

func (b *bookingUseCaseImpl) ReleaseHold(ctx context.Context, in PlaceHoldInput) error {
	ctx, cancel := b.withTimeout(ctx)
	defer cancel()

	if in.Holder == "" {
		return ErrInvalidInput
	}
	if err := b.holds.Release(ctx, in.DentistID, in.Date, in.Time, in.Holder); err != nil {
		return b.markInfra(err)
	}
	return nil
}

// slotUnavailable builds the conflict outcome with best-effort alternative
// suggestions; suggestion failures never mask the conflict itself.
func (b *bookingUseCaseImpl) slotUnavailable(ctx context.Context, dentistID uuid.UUID, date time.Time, requested schedule.TimeOfDay) error {
	return &SlotUnavailableError{Alternatives: b.alternatives(ctx, dentistID, date, requested)}
}

func (b *bookingUseCaseImpl) alternatives(ctx context.Context, dentistID uuid.UUID, date time.Time, requested schedule.TimeOfDay) []string {
	candidates := b.candidateGrid(ctx, dentistID, date)
	if len(candidates) == 0 {
		return nil
	}

	occupied, err := b.appointmentReads.OccupiedTimes(ctx, dentistID, date)
	if err != nil {
		return nil
	}
	held, err := b.holds.Held(ctx, dentistID, date, candidates)
	if err != nil {
		return nil
	}

	now := b.clock.Now()
	free := candidates[:0]
	for _, t := range candidates {
		if _, taken := occupied[t]; taken {
			continue
		}
		if _, h := held[t]; h {
			continue
		}
		if !t.At(date).After(now) {
			continue
		}
		free = append(free, t)
	}

	ranked := appointment.RankAlternatives(free, requested, b.cfg.MaxAlternatives)
	out := make([]string, len(ranked))
	for i, t := range ranked {
		out[i] = t.String()
	}
	return out
}

// candidateGrid uses the dentist's own template when one exists for the date,
// otherwise the configured default clinic grid.
func (b *bookingUseCaseImpl) candidateGrid(ctx context.Context, dentistID uuid.UUID, date time.Time) []schedule.TimeOfDay {
	rules, err := b.scheduleReads.RulesByDentist(ctx, dentistID)
	if err == nil {
		if slots := schedule.GenerateSlots(date, rules); len(slots) > 0 {
			return slots
		}
	}

	start, sErr := schedule.ParseTimeOfDay(b.cfg.DefaultDayStart)
	end, eErr := schedule.ParseTimeOfDay(b.cfg.DefaultDayEnd)
	if sErr != nil || eErr != nil || b.cfg.DefaultSlotMin <= 0 {
		return nil
	}
	var grid []schedule.TimeOfDay
	for t := start; t.Before(end); t = t.AddMinutes(b.cfg.DefaultSlotMin) {
		grid = append(grid, t)
	}
	return grid
}

func (b *bookingUseCaseImpl) loadSnapshot(ctx context.Context, id uuid.UUID) (*AppointmentSnapshot, error) {
	snap, err := b.appointmentReads.SnapshotByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrAppointmentNotFound
		}
		return nil, b.markInfra(err)
	}
	return snap, nil
}

func (b *bookingUseCaseImpl) enqueueNotification(ctx context.Context, tx db.DBTX, appointmentID uuid.UUID, topic string) error {
	payload, err := json.Marshal(map[string]any{
		"appointment_id": appointmentID,
		"type":           topic,
	})
	if err != nil {
		return err
	}
	return b.notificationRepo.CreateJob(ctx, tx, "email", topic, payload, b.clock.Now())
}

func (b *bookingUseCaseImpl) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if b.cfg.QueryTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, b.cfg.QueryTimeout)
}

// markInfra separates infrastructure failures (timeouts included) from
// business conflicts so callers can branch by error identity.
func (b *bookingUseCaseImpl) markInfra(err error) error {
	if infra.IsKind(err, infra.KindTimeout) {
		return errs.Mark(err, ErrDatastoreTimeout)
	}
	return errs.Mark(err, ErrDatabaseOperationFailed)
}

func authorizeAppointmentAccess(snap *AppointmentSnapshot, actor uuid.UUID, role user.Role) error {
	switch role {
	case user.RoleAdmin:
		return nil
	case user.RoleDentist:
		if snap.DentistID == actor {
			return nil
		}
	case user.RolePatient:
		if snap.PatientID != nil && *snap.PatientID == actor {
			return nil
		}
	}
	return ErrForbidden
}
