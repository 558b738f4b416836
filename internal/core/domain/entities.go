package domain

// Plan represents an affiliate insurance plan
type Plan string

const (
	PlanA Plan = "A"
	PlanB Plan = "B"
	PlanC Plan = "C"
)

// Plans lists every valid plan, in reporting order
var Plans = []Plan{PlanA, PlanB, PlanC}

// Gender represents an affiliate gender
type Gender string

const (
	GenderM Gender = "M"
	GenderF Gender = "F"
	GenderX Gender = "X"
)

// Genders lists every valid gender, in reporting order
var Genders = []Gender{GenderM, GenderF, GenderX}

// Roles are open strings compared by equality; only "doctor" carries
// special meaning in the clinical domain.
const RoleDoctor = "doctor"

// AppointmentStatus represents the appointment lifecycle state
type AppointmentStatus string

const (
	StatusScheduled AppointmentStatus = "scheduled"
	StatusCancelled AppointmentStatus = "cancelled"
)

// Affiliate represents a person enrolled under a plan.
// Birth is kept as dd/mm/yyyy text, the way it is stored.
type Affiliate struct {
	ID       string `json:"id"`
	Names    string `json:"names"`
	Surnames string `json:"surnames"`
	Birth    string `json:"birth"`
	Plan     string `json:"plan"`
	Gender   string `json:"gender"`
	Email    string `json:"email"`
}

// Survey represents one satisfaction survey row. The ID is an affiliate
// id but is not required to reference an existing affiliate.
type Survey struct {
	ID     string  `json:"id"`
	Rating float64 `json:"rating"`
}

// User represents a system user (patient, doctor, admin).
// Extra holds fields the store carried that this version does not model;
// they survive a load/save cycle unchanged.
type User struct {
	Name     string `json:"name"`
	Password string `json:"password"`
	Role     string `json:"role"`
	Session  bool   `json:"session"`

	Extra map[string]any `json:"-"`
}

// Appointment represents a scheduled visit between a patient and a doctor
type Appointment struct {
	ID      string            `json:"id"`
	Patient string            `json:"patient"`
	Doctor  string            `json:"doctor"`
	Date    string            `json:"date"`
	Time    string            `json:"time"`
	Status  AppointmentStatus `json:"status"`

	Extra map[string]any `json:"-"`
}

// Prescription represents a prescription a doctor issued against an appointment
type Prescription struct {
	ID            string `json:"id"`
	Doctor        string `json:"doctor"`
	Patient       string `json:"patient"`
	AppointmentID string `json:"appointment_id"`
	Text          string `json:"text"`

	Extra map[string]any `json:"-"`
}
