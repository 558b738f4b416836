// Package validate holds the pure field and slot checks shared by the
// affiliate and clinical services.
package validate

import (
	"strings"
	"time"

	"eps-clinic/internal/core/domain"
)

const (
	// DateLayout is the dd/mm/yyyy format every stored date uses
	DateLayout = "02/01/2006"
	// TimeLayout is the HH:MM format appointment times use
	TimeLayout = "15:04"
)

// ParseDate parses a dd/mm/yyyy string into a date. Impossible calendar
// dates (31/02/2024) fail the same way malformed input does.
func ParseDate(s string) (time.Time, error) {
	return time.Parse(DateLayout, s)
}

// ParseTime parses an HH:MM string
func ParseTime(s string) (time.Time, error) {
	return time.Parse(TimeLayout, s)
}

// AgeAt returns full years between birth and today, subtracting one when
// the birthday has not happened yet this year.
func AgeAt(birth, today time.Time) int {
	age := today.Year() - birth.Year()
	if today.Month() < birth.Month() ||
		(today.Month() == birth.Month() && today.Day() < birth.Day()) {
		age--
	}
	return age
}

// Age returns the current age for a birth date
func Age(birth time.Time) int {
	return AgeAt(birth, time.Now())
}

// ValidPlan reports whether p is one of the closed plan values
func ValidPlan(p string) bool {
	switch domain.Plan(p) {
	case domain.PlanA, domain.PlanB, domain.PlanC:
		return true
	}
	return false
}

// ValidGender reports whether g is one of the closed gender values
func ValidGender(g string) bool {
	switch domain.Gender(g) {
	case domain.GenderM, domain.GenderF, domain.GenderX:
		return true
	}
	return false
}

// ValidEmail does the minimal shape check the service requires: at least
// one '@' and one '.'. Nothing stricter.
func ValidEmail(e string) bool {
	return strings.Contains(e, "@") && strings.Contains(e, ".")
}

// Blank reports whether any value is empty or whitespace-only
func Blank(values ...string) bool {
	for _, v := range values {
		if strings.TrimSpace(v) == "" {
			return true
		}
	}
	return false
}

// Slot checks whether a (date, time) pair is bookable: a weekday, between
// 08:00 and 16:00 inclusive, on a half-hour boundary. Parse failures yield
// invalid data, rule failures out of range.
func Slot(dateStr, timeStr string) domain.Result {
	date, err := ParseDate(dateStr)
	if err != nil {
		return domain.ResultInvalidData
	}
	clock, err := ParseTime(timeStr)
	if err != nil {
		return domain.ResultInvalidData
	}

	if wd := date.Weekday(); wd == time.Saturday || wd == time.Sunday {
		return domain.ResultOutOfRange
	}

	minutes := clock.Hour()*60 + clock.Minute()
	if minutes < 8*60 || minutes > 16*60 {
		return domain.ResultOutOfRange
	}
	if clock.Minute() != 0 && clock.Minute() != 30 {
		return domain.ResultOutOfRange
	}

	return domain.ResultOK
}
