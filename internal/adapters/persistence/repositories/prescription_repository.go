package repositories

import (
	"context"

	"eps-clinic/internal/adapters/persistence/filestore"
	"eps-clinic/internal/core/domain"
)

// prescriptionRepository implements PrescriptionRepository over a line store
type prescriptionRepository struct {
	store *filestore.LineStore
}

// NewPrescriptionRepository creates a new prescription repository
func NewPrescriptionRepository(store *filestore.LineStore) PrescriptionRepository {
	return &prescriptionRepository{store: store}
}

// List loads every prescription from the backing store
func (r *prescriptionRepository) List(ctx context.Context) ([]domain.Prescription, error) {
	recs, err := r.store.LoadAll()
	if err != nil {
		return nil, err
	}
	prescs := make([]domain.Prescription, 0, len(recs))
	for _, rec := range recs {
		prescs = append(prescs, *prescriptionFromRecord(rec))
	}
	return prescs, nil
}

// Create assigns the next numeric id and appends the prescription,
// the same max+1 scheme appointments use
func (r *prescriptionRepository) Create(ctx context.Context, presc *domain.Prescription) error {
	return r.store.Update(func(recs []filestore.Record) ([]filestore.Record, error) {
		presc.ID = nextID(recs)
		return append(recs, prescriptionToRecord(presc)), nil
	})
}

func prescriptionFromRecord(rec filestore.Record) *domain.Prescription {
	presc := &domain.Prescription{Extra: map[string]any{}}
	for k, v := range rec {
		switch k {
		case "id":
			presc.ID, _ = v.(string)
		case "doctor":
			presc.Doctor, _ = v.(string)
		case "patient":
			presc.Patient, _ = v.(string)
		case "appointment_id":
			presc.AppointmentID, _ = v.(string)
		case "text":
			presc.Text, _ = v.(string)
		default:
			presc.Extra[k] = v
		}
	}
	return presc
}

func prescriptionToRecord(presc *domain.Prescription) filestore.Record {
	rec := filestore.Record{}
	for k, v := range presc.Extra {
		rec[k] = v
	}
	rec["id"] = presc.ID
	rec["doctor"] = presc.Doctor
	rec["patient"] = presc.Patient
	rec["appointment_id"] = presc.AppointmentID
	rec["text"] = presc.Text
	return rec
}
