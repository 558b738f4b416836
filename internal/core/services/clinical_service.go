package services

import (
	"context"

	"eps-clinic/internal/adapters/persistence/repositories"
	"eps-clinic/internal/core/domain"
	"eps-clinic/internal/pkg/validate"
)

// ClinicalService handles appointment scheduling and prescriptions. It
// never touches the user store directly; all identity checks go through
// the injected UserDirectory.
type ClinicalService struct {
	apptRepo  repositories.AppointmentRepository
	prescRepo repositories.PrescriptionRepository
	users     UserDirectory
}

// NewClinicalService creates a new clinical service
func NewClinicalService(
	apptRepo repositories.AppointmentRepository,
	prescRepo repositories.PrescriptionRepository,
	users UserDirectory,
) *ClinicalService {
	return &ClinicalService{
		apptRepo:  apptRepo,
		prescRepo: prescRepo,
		users:     users,
	}
}

// ScheduleAppointmentInput represents appointment scheduling input
type ScheduleAppointmentInput struct {
	PatientName     string `json:"patient_name"`
	PatientPassword string `json:"patient_password"`
	DoctorName      string `json:"doctor_name"`
	Date            string `json:"date"`
	Time            string `json:"time"`
}

// ScheduleAppointment books an appointment after the full check chain:
// non-blank fields, a real doctor, an authenticated patient with an open
// session, a legal slot, and a free slot for that doctor.
func (s *ClinicalService) ScheduleAppointment(ctx context.Context, input *ScheduleAppointmentInput) (domain.Result, error) {
	if validate.Blank(input.PatientName, input.PatientPassword, input.DoctorName, input.Date, input.Time) {
		return domain.ResultInvalidData, nil
	}

	doctor, err := s.users.FindUser(ctx, input.DoctorName)
	if err != nil {
		return "", err
	}
	if doctor == nil || doctor.Role != domain.RoleDoctor {
		return domain.ResultDoctorNotFound, nil
	}

	ok, err := s.authenticate(ctx, input.PatientName, input.PatientPassword)
	if err != nil {
		return "", err
	}
	if !ok {
		return domain.ResultNotLoggedIn, nil
	}

	if res := validate.Slot(input.Date, input.Time); !res.OK() {
		return res, nil
	}

	taken, err := s.apptRepo.ExistsScheduled(ctx, input.DoctorName, input.Date, input.Time)
	if err != nil {
		return "", err
	}
	if taken {
		return domain.ResultSlotTaken, nil
	}

	appt := &domain.Appointment{
		Patient: input.PatientName,
		Doctor:  input.DoctorName,
		Date:    input.Date,
		Time:    input.Time,
		Status:  domain.StatusScheduled,
	}
	if err := s.apptRepo.Create(ctx, appt); err != nil {
		return "", err
	}
	return domain.ResultOK, nil
}

// ListAppointments returns every appointment where the authenticated user
// is the patient or the doctor. Cancelled appointments stay visible.
func (s *ClinicalService) ListAppointments(ctx context.Context, name, password string) ([]domain.Appointment, domain.Result, error) {
	ok, err := s.authenticate(ctx, name, password)
	if err != nil {
		return nil, "", err
	}
	if !ok {
		return nil, domain.ResultNotLoggedIn, nil
	}

	appts, err := s.apptRepo.List(ctx)
	if err != nil {
		return nil, "", err
	}
	mine := make([]domain.Appointment, 0, len(appts))
	for _, a := range appts {
		if a.Patient == name || a.Doctor == name {
			mine = append(mine, a)
		}
	}
	return mine, domain.ResultOK, nil
}

// CancelAppointment moves one of the patient's own scheduled appointments
// to cancelled. An appointment that is already cancelled, or that belongs
// to someone else, reports not found.
func (s *ClinicalService) CancelAppointment(ctx context.Context, patientName, patientPassword, appointmentID string) (domain.Result, error) {
	ok, err := s.authenticate(ctx, patientName, patientPassword)
	if err != nil {
		return "", err
	}
	if !ok {
		return domain.ResultNotLoggedIn, nil
	}

	found, err := s.apptRepo.CancelScheduled(ctx, appointmentID, patientName)
	if err != nil {
		return "", err
	}
	if !found {
		return domain.ResultNotFound, nil
	}
	return domain.ResultOK, nil
}

// CreatePrescriptionInput represents prescription creation input
type CreatePrescriptionInput struct {
	DoctorName     string `json:"doctor_name"`
	DoctorPassword string `json:"doctor_password"`
	PatientName    string `json:"patient_name"`
	AppointmentID  string `json:"appt_id"`
	Text           string `json:"text"`
}

// CreatePrescription issues a prescription. Only a logged-in doctor may
// create one, and the patient must exist.
func (s *ClinicalService) CreatePrescription(ctx context.Context, input *CreatePrescriptionInput) (domain.Result, error) {
	if validate.Blank(input.DoctorName, input.DoctorPassword, input.PatientName, input.AppointmentID, input.Text) {
		return domain.ResultInvalidData, nil
	}

	doctor, err := s.users.FindUser(ctx, input.DoctorName)
	if err != nil {
		return "", err
	}
	if doctor == nil || doctor.Role != domain.RoleDoctor {
		return domain.ResultDoctorNotFound, nil
	}
	if doctor.Password != input.DoctorPassword || !doctor.Session {
		return domain.ResultNotLoggedIn, nil
	}

	patient, err := s.users.FindUser(ctx, input.PatientName)
	if err != nil {
		return "", err
	}
	if patient == nil {
		return domain.ResultNotFound, nil
	}

	presc := &domain.Prescription{
		Doctor:        input.DoctorName,
		Patient:       input.PatientName,
		AppointmentID: input.AppointmentID,
		Text:          input.Text,
	}
	if err := s.prescRepo.Create(ctx, presc); err != nil {
		return "", err
	}
	return domain.ResultOK, nil
}

// ListPrescriptions returns the authenticated user's prescriptions: the
// ones they wrote when asking as a doctor, the ones written for them
// otherwise.
func (s *ClinicalService) ListPrescriptions(ctx context.Context, role, name, password string) ([]domain.Prescription, domain.Result, error) {
	ok, err := s.authenticate(ctx, name, password)
	if err != nil {
		return nil, "", err
	}
	if !ok {
		return nil, domain.ResultNotLoggedIn, nil
	}

	prescs, err := s.prescRepo.List(ctx)
	if err != nil {
		return nil, "", err
	}
	mine := make([]domain.Prescription, 0, len(prescs))
	for _, p := range prescs {
		if role == domain.RoleDoctor {
			if p.Doctor == name {
				mine = append(mine, p)
			}
		} else if p.Patient == name {
			mine = append(mine, p)
		}
	}
	return mine, domain.ResultOK, nil
}

// authenticate checks name/password against the user directory and
// requires an open session
func (s *ClinicalService) authenticate(ctx context.Context, name, password string) (bool, error) {
	user, err := s.users.FindUser(ctx, name)
	if err != nil {
		return false, err
	}
	if user == nil || user.Password != password || !user.Session {
		return false, nil
	}
	return true, nil
}
