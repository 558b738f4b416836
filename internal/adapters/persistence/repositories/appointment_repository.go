package repositories

import (
	"context"
	"strconv"

	"eps-clinic/internal/adapters/persistence/filestore"
	"eps-clinic/internal/core/domain"
)

// appointmentRepository implements AppointmentRepository over a line store
type appointmentRepository struct {
	store *filestore.LineStore
}

// NewAppointmentRepository creates a new appointment repository
func NewAppointmentRepository(store *filestore.LineStore) AppointmentRepository {
	return &appointmentRepository{store: store}
}

// List loads every appointment from the backing store
func (r *appointmentRepository) List(ctx context.Context) ([]domain.Appointment, error) {
	recs, err := r.store.LoadAll()
	if err != nil {
		return nil, err
	}
	appts := make([]domain.Appointment, 0, len(recs))
	for _, rec := range recs {
		appts = append(appts, *appointmentFromRecord(rec))
	}
	return appts, nil
}

// ExistsScheduled checks whether a scheduled appointment already occupies
// the given doctor/date/time slot
func (r *appointmentRepository) ExistsScheduled(ctx context.Context, doctor, date, timeStr string) (bool, error) {
	appts, err := r.List(ctx)
	if err != nil {
		return false, err
	}
	for _, a := range appts {
		if a.Doctor == doctor && a.Date == date && a.Time == timeStr && a.Status == domain.StatusScheduled {
			return true, nil
		}
	}
	return false, nil
}

// Create assigns the next numeric id and appends the appointment. The id
// assignment happens inside the locked store update so two creates in this
// process can never pick the same id.
func (r *appointmentRepository) Create(ctx context.Context, appt *domain.Appointment) error {
	return r.store.Update(func(recs []filestore.Record) ([]filestore.Record, error) {
		appt.ID = nextID(recs)
		return append(recs, appointmentToRecord(appt)), nil
	})
}

// CancelScheduled flips a scheduled appointment to cancelled when it
// matches both the id and the owning patient. Returns false when nothing
// matched; a cancelled or foreign appointment is indistinguishable from a
// missing one by design.
func (r *appointmentRepository) CancelScheduled(ctx context.Context, id, patient string) (bool, error) {
	found := false
	err := r.store.Update(func(recs []filestore.Record) ([]filestore.Record, error) {
		for _, rec := range recs {
			if recString(rec, "id") == id &&
				recString(rec, "patient") == patient &&
				recString(rec, "status") == string(domain.StatusScheduled) {
				rec["status"] = string(domain.StatusCancelled)
				found = true
				break
			}
		}
		return recs, nil
	})
	return found, err
}

// nextID returns max numeric id + 1 over the collection, "1" when empty.
// Ids that do not parse count as 0, matching how the ids were always
// assigned here in the first place.
func nextID(recs []filestore.Record) string {
	max := 0
	for _, rec := range recs {
		n, err := strconv.Atoi(recString(rec, "id"))
		if err != nil {
			continue
		}
		if n > max {
			max = n
		}
	}
	return strconv.Itoa(max + 1)
}

func appointmentFromRecord(rec filestore.Record) *domain.Appointment {
	appt := &domain.Appointment{Extra: map[string]any{}}
	for k, v := range rec {
		switch k {
		case "id":
			appt.ID, _ = v.(string)
		case "patient":
			appt.Patient, _ = v.(string)
		case "doctor":
			appt.Doctor, _ = v.(string)
		case "date":
			appt.Date, _ = v.(string)
		case "time":
			appt.Time, _ = v.(string)
		case "status":
			s, _ := v.(string)
			appt.Status = domain.AppointmentStatus(s)
		default:
			appt.Extra[k] = v
		}
	}
	return appt
}

func appointmentToRecord(appt *domain.Appointment) filestore.Record {
	rec := filestore.Record{}
	for k, v := range appt.Extra {
		rec[k] = v
	}
	rec["id"] = appt.ID
	rec["patient"] = appt.Patient
	rec["doctor"] = appt.Doctor
	rec["date"] = appt.Date
	rec["time"] = appt.Time
	rec["status"] = string(appt.Status)
	return rec
}
