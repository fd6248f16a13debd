package queries

import (
	"context"
	"time"

	"dental-clinic-api/internal/domain/user"
	"dental-clinic-api/internal/infra"
	"dental-clinic-api/internal/pkg/errs"

	"github.com/google/uuid"
)

var (
	ErrAppointmentNotFound = errs.New("appointment not found")
	ErrAccessDenied        = errs.New("access denied")
)

type AppointmentViewRepo interface {
	FindByID(ctx context.Context, id uuid.UUID) (*AppointmentView, error)
	FindByPatient(ctx context.Context, patientID uuid.UUID) ([]*AppointmentListItem, error)
	FindByDentist(ctx context.Context, dentistID uuid.UUID) ([]*AppointmentListItem, error)
	FindByDentistDate(ctx context.Context, dentistID uuid.UUID, date time.Time) ([]*AppointmentListItem, error)
}

type appointmentQueriesImpl struct {
	repo AppointmentViewRepo
}

func NewAppointmentQueries(repo AppointmentViewRepo) AppointmentQueries {
	return &appointmentQueriesImpl{repo: repo}
}

func (q *appointmentQueriesImpl) GetByID(ctx context.Context, actor uuid.UUID, role user.Role, id uuid.UUID) (*AppointmentView, error) {
	view, err := q.repo.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrAppointmentNotFound
		}
		return nil, err
	}

	if !canSeeAppointment(view, actor, role) {
		// Hide existence from strangers.
		return nil, ErrAppointmentNotFound
	}
	return view, nil
}

func (q *appointmentQueriesImpl) ListByRequester(ctx context.Context, requester uuid.UUID, role user.Role) ([]*AppointmentListItem, error) {
	if role == user.RoleDentist {
		return q.repo.FindByDentist(ctx, requester)
	}
	return q.repo.FindByPatient(ctx, requester)
}

func (q *appointmentQueriesImpl) ListByDentistDate(ctx context.Context, actor uuid.UUID, role user.Role, dentistID uuid.UUID, date time.Time) ([]*AppointmentListItem, error) {
	if role != user.RoleAdmin && !(role == user.RoleDentist && actor == dentistID) {
		return nil, ErrAccessDenied
	}
	return q.repo.FindByDentistDate(ctx, dentistID, date)
}

func canSeeAppointment(view *AppointmentView, actor uuid.UUID, role user.Role) bool {
	switch role {
	case user.RoleAdmin:
		return true
	case user.RoleDentist:
		return view.DentistID == actor
	default:
		return view.PatientID != nil && *view.PatientID == actor
	}
}
