package domain

// Result is the outcome code every domain operation reports back to the
// transport layer. Business-rule violations are results, not errors; only
// infrastructure faults (a broken backing store) travel as error values.
type Result string

const (
	ResultOK                Result = "ok"
	ResultInvalidData       Result = "invalid data"
	ResultInvalidDateFormat Result = "invalid date format"
	ResultIDAlreadyExists   Result = "id already exists"
	ResultNotFound          Result = "not found"
	ResultDoctorNotFound    Result = "doctor not found"
	ResultNotLoggedIn       Result = "user not logged in"
	ResultSlotTaken         Result = "slot taken"
	ResultOutOfRange        Result = "out of range"
	ResultAlreadyExists     Result = "already exists"
)

// OK reports whether the result is the success code
func (r Result) OK() bool {
	return r == ResultOK
}

func (r Result) String() string {
	return string(r)
}
