package dateutil

import (
	"time"
)

// Age calculates the age at a given date
func Age(birthDate, atDate time.Time) int {
	age := atDate.Year() - birthDate.Year()
	if atDate.Month() < birthDate.Month() ||
		(atDate.Month() == birthDate.Month() && atDate.Day() < birthDate.Day()) {
		age--
	}
	return age
}

// IsLeapYear determines if a year is a leap year
func IsLeapYear(year int) bool {
	return (year%4 == 0 && year%100 != 0) || year%400 == 0
}

// DaysInYear returns the number of days in a year
func DaysInYear(year int) int {
	if IsLeapYear(year) {
		return 366
	}
	return 365
}

// YearStart returns midnight UTC on January 1 of the given year.
func YearStart(year int) time.Time {
	return time.Date(year, 1, 1, 0, 0, 0, 0, time.UTC)
}

// YearEnd returns the last instant of December 31 of the given year.
func YearEnd(year int) time.Time {
	return time.Date(year, 12, 31, 23, 59, 59, 0, time.UTC)
}

// MonthsBetween returns the number of whole months from `from` to `to`.
// Returns 0 when `to` is not after `from`.
func MonthsBetween(from, to time.Time) int {
	if !to.After(from) {
		return 0
	}
	months := (to.Year()-from.Year())*12 + int(to.Month()) - int(from.Month())
	if to.Day() < from.Day() {
		months--
	}
	if months < 0 {
		return 0
	}
	return months
}

// ActiveFraction returns the fraction of a calendar year during which the
// window [start, end] is active. A zero start means "always started"; a zero
// end means "never ends". The result is in [0, 1].
func ActiveFraction(year int, start, end time.Time) float64 {
	yearStart := YearStart(year)
	nextYear := YearStart(year + 1)

	from := yearStart
	if !start.IsZero() && start.After(from) {
		from = start
	}
	to := nextYear
	if !end.IsZero() && end.Before(to) {
		to = end
	}
	if !to.After(from) {
		return 0
	}

	active := to.Sub(from).Hours() / 24
	frac := active / float64(DaysInYear(year))
	if frac > 1 {
		frac = 1
	}
	return frac
}
