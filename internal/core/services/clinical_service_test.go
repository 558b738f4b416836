package services_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"eps-clinic/internal/adapters/persistence/filestore"
	"eps-clinic/internal/adapters/persistence/repositories"
	"eps-clinic/internal/core/domain"
	"eps-clinic/internal/core/services"
)

type clinicalFixture struct {
	clinical *services.ClinicalService
	identity *services.IdentityService
	appts    repositories.AppointmentRepository
}

// newClinicalFixture wires clinical + identity services over temp stores
// and registers a logged-in doctor "house" and patient "ana".
func newClinicalFixture(t *testing.T) *clinicalFixture {
	t.Helper()
	ctx := context.Background()
	dir := t.TempDir()

	userRepo := repositories.NewUserRepository(filestore.NewLineStore(filepath.Join(dir, "users.txt")))
	apptRepo := repositories.NewAppointmentRepository(filestore.NewLineStore(filepath.Join(dir, "appointments.txt")))
	prescRepo := repositories.NewPrescriptionRepository(filestore.NewLineStore(filepath.Join(dir, "prescriptions.txt")))

	identity := services.NewIdentityService(userRepo)
	clinical := services.NewClinicalService(apptRepo, prescRepo, identity)

	for _, u := range []struct{ name, role string }{
		{"house", domain.RoleDoctor},
		{"ana", "patient"},
	} {
		result, err := identity.RegisterUser(ctx, u.name, "pw", u.role)
		require.NoError(t, err)
		require.Equal(t, domain.ResultOK, result)
		result, err = identity.OpenCloseSession(ctx, u.name, "pw", true)
		require.NoError(t, err)
		require.Equal(t, domain.ResultOK, result)
	}

	return &clinicalFixture{clinical: clinical, identity: identity, appts: apptRepo}
}

func scheduleInput() *services.ScheduleAppointmentInput {
	return &services.ScheduleAppointmentInput{
		PatientName:     "ana",
		PatientPassword: "pw",
		DoctorName:      "house",
		Date:            "15/03/2024",
		Time:            "09:00",
	}
}

func (f *clinicalFixture) mustSchedule(t *testing.T, input *services.ScheduleAppointmentInput) {
	t.Helper()
	result, err := f.clinical.ScheduleAppointment(context.Background(), input)
	require.NoError(t, err)
	require.Equal(t, domain.ResultOK, result)
}

func TestScheduleAppointmentChecks(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name   string
		mutate func(*services.ScheduleAppointmentInput)
		want   domain.Result
	}{
		{"valid", func(in *services.ScheduleAppointmentInput) {}, domain.ResultOK},
		{"blank field", func(in *services.ScheduleAppointmentInput) { in.Time = " " }, domain.ResultInvalidData},
		{"unknown doctor", func(in *services.ScheduleAppointmentInput) { in.DoctorName = "ghost" }, domain.ResultDoctorNotFound},
		{"doctor is not a doctor", func(in *services.ScheduleAppointmentInput) { in.DoctorName = "ana" }, domain.ResultDoctorNotFound},
		{"unknown patient", func(in *services.ScheduleAppointmentInput) { in.PatientName = "ghost" }, domain.ResultNotLoggedIn},
		{"wrong password", func(in *services.ScheduleAppointmentInput) { in.PatientPassword = "bad" }, domain.ResultNotLoggedIn},
		{"weekend slot", func(in *services.ScheduleAppointmentInput) { in.Date = "16/03/2024" }, domain.ResultOutOfRange},
		{"off-grid time", func(in *services.ScheduleAppointmentInput) { in.Time = "09:15" }, domain.ResultOutOfRange},
		{"malformed date", func(in *services.ScheduleAppointmentInput) { in.Date = "2024-03-15" }, domain.ResultInvalidData},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newClinicalFixture(t)
			input := scheduleInput()
			tt.mutate(input)
			result, err := f.clinical.ScheduleAppointment(ctx, input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, result)
		})
	}
}

func TestScheduleAppointmentRequiresOpenSession(t *testing.T) {
	ctx := context.Background()
	f := newClinicalFixture(t)

	_, err := f.identity.OpenCloseSession(ctx, "ana", "pw", false)
	require.NoError(t, err)

	result, err := f.clinical.ScheduleAppointment(ctx, scheduleInput())
	require.NoError(t, err)
	assert.Equal(t, domain.ResultNotLoggedIn, result)
}

func TestScheduleAppointmentSlotCollision(t *testing.T) {
	ctx := context.Background()
	f := newClinicalFixture(t)

	f.mustSchedule(t, scheduleInput())

	// same doctor, same slot
	result, err := f.clinical.ScheduleAppointment(ctx, scheduleInput())
	require.NoError(t, err)
	assert.Equal(t, domain.ResultSlotTaken, result)

	// cancelling the first frees the slot
	result, err = f.clinical.CancelAppointment(ctx, "ana", "pw", "1")
	require.NoError(t, err)
	require.Equal(t, domain.ResultOK, result)

	f.mustSchedule(t, scheduleInput())
}

func TestListAppointments(t *testing.T) {
	ctx := context.Background()
	f := newClinicalFixture(t)

	f.mustSchedule(t, scheduleInput())
	second := scheduleInput()
	second.Time = "10:00"
	f.mustSchedule(t, second)

	_, err := f.clinical.CancelAppointment(ctx, "ana", "pw", "1")
	require.NoError(t, err)

	// patient view: both appointments, the cancelled one included
	appts, result, err := f.clinical.ListAppointments(ctx, "ana", "pw")
	require.NoError(t, err)
	require.Equal(t, domain.ResultOK, result)
	require.Len(t, appts, 2)
	assert.Equal(t, domain.StatusCancelled, appts[0].Status)
	assert.Equal(t, domain.StatusScheduled, appts[1].Status)

	// doctor view sees the same two
	appts, result, err = f.clinical.ListAppointments(ctx, "house", "pw")
	require.NoError(t, err)
	require.Equal(t, domain.ResultOK, result)
	assert.Len(t, appts, 2)

	// closed session cannot list
	_, err = f.identity.OpenCloseSession(ctx, "ana", "pw", false)
	require.NoError(t, err)
	_, result, err = f.clinical.ListAppointments(ctx, "ana", "pw")
	require.NoError(t, err)
	assert.Equal(t, domain.ResultNotLoggedIn, result)
}

func TestCancelAppointment(t *testing.T) {
	ctx := context.Background()
	f := newClinicalFixture(t)
	f.mustSchedule(t, scheduleInput())

	// someone else's appointment
	result, err := f.identity.RegisterUser(ctx, "luis", "pw", "patient")
	require.NoError(t, err)
	require.Equal(t, domain.ResultOK, result)
	result, err = f.identity.OpenCloseSession(ctx, "luis", "pw", true)
	require.NoError(t, err)
	require.Equal(t, domain.ResultOK, result)

	result, err = f.clinical.CancelAppointment(ctx, "luis", "pw", "1")
	require.NoError(t, err)
	assert.Equal(t, domain.ResultNotFound, result)

	// owner cancels
	result, err = f.clinical.CancelAppointment(ctx, "ana", "pw", "1")
	require.NoError(t, err)
	assert.Equal(t, domain.ResultOK, result)

	// cancelling again: no distinct already-cancelled signal
	result, err = f.clinical.CancelAppointment(ctx, "ana", "pw", "1")
	require.NoError(t, err)
	assert.Equal(t, domain.ResultNotFound, result)

	// unknown id
	result, err = f.clinical.CancelAppointment(ctx, "ana", "pw", "42")
	require.NoError(t, err)
	assert.Equal(t, domain.ResultNotFound, result)
}

func prescriptionInput() *services.CreatePrescriptionInput {
	return &services.CreatePrescriptionInput{
		DoctorName:     "house",
		DoctorPassword: "pw",
		PatientName:    "ana",
		AppointmentID:  "1",
		Text:           "ibuprofen 400mg",
	}
}

func TestCreatePrescription(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name   string
		mutate func(*services.CreatePrescriptionInput)
		want   domain.Result
	}{
		{"valid", func(in *services.CreatePrescriptionInput) {}, domain.ResultOK},
		{"blank text", func(in *services.CreatePrescriptionInput) { in.Text = "" }, domain.ResultInvalidData},
		{"unknown doctor", func(in *services.CreatePrescriptionInput) { in.DoctorName = "ghost" }, domain.ResultDoctorNotFound},
		{"issuer is not a doctor", func(in *services.CreatePrescriptionInput) { in.DoctorName = "ana"; in.PatientName = "house" }, domain.ResultDoctorNotFound},
		{"wrong doctor password", func(in *services.CreatePrescriptionInput) { in.DoctorPassword = "bad" }, domain.ResultNotLoggedIn},
		{"unknown patient", func(in *services.CreatePrescriptionInput) { in.PatientName = "ghost" }, domain.ResultNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newClinicalFixture(t)
			input := prescriptionInput()
			tt.mutate(input)
			result, err := f.clinical.CreatePrescription(ctx, input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, result)
		})
	}
}

func TestCreatePrescriptionRequiresOpenSession(t *testing.T) {
	ctx := context.Background()
	f := newClinicalFixture(t)

	_, err := f.identity.OpenCloseSession(ctx, "house", "pw", false)
	require.NoError(t, err)

	result, err := f.clinical.CreatePrescription(ctx, prescriptionInput())
	require.NoError(t, err)
	assert.Equal(t, domain.ResultNotLoggedIn, result)
}

func TestListPrescriptions(t *testing.T) {
	ctx := context.Background()
	f := newClinicalFixture(t)

	result, err := f.clinical.CreatePrescription(ctx, prescriptionInput())
	require.NoError(t, err)
	require.Equal(t, domain.ResultOK, result)

	other := prescriptionInput()
	other.Text = "rest"
	result, err = f.clinical.CreatePrescription(ctx, other)
	require.NoError(t, err)
	require.Equal(t, domain.ResultOK, result)

	// doctor sees what they wrote
	prescs, result, err := f.clinical.ListPrescriptions(ctx, domain.RoleDoctor, "house", "pw")
	require.NoError(t, err)
	require.Equal(t, domain.ResultOK, result)
	require.Len(t, prescs, 2)
	assert.Equal(t, "1", prescs[0].ID)
	assert.Equal(t, "2", prescs[1].ID)

	// patient sees their own
	prescs, result, err = f.clinical.ListPrescriptions(ctx, "patient", "ana", "pw")
	require.NoError(t, err)
	require.Equal(t, domain.ResultOK, result)
	assert.Len(t, prescs, 2)

	// a different patient sees none
	_, err = f.identity.RegisterUser(ctx, "luis", "pw", "patient")
	require.NoError(t, err)
	_, err = f.identity.OpenCloseSession(ctx, "luis", "pw", true)
	require.NoError(t, err)
	prescs, result, err = f.clinical.ListPrescriptions(ctx, "patient", "luis", "pw")
	require.NoError(t, err)
	require.Equal(t, domain.ResultOK, result)
	assert.Empty(t, prescs)

	// no session, no listing
	_, err = f.identity.OpenCloseSession(ctx, "ana", "pw", false)
	require.NoError(t, err)
	_, result, err = f.clinical.ListPrescriptions(ctx, "patient", "ana", "pw")
	require.NoError(t, err)
	assert.Equal(t, domain.ResultNotLoggedIn, result)
}
