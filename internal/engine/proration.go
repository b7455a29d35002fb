package engine

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Proration is the fraction of a pay period an employee is entitled to be
// paid for, based on joining and exit dates.
type Proration struct {
	Factor      decimal.Decimal
	DaysPayable int
	TotalDays   int
	Warnings    []string
}

// FullPeriod reports whether no proration applies.
func (p Proration) FullPeriod() bool {
	return p.Factor.Equal(decimal.NewFromInt(1))
}

// Prorate converts the employee's tenure overlap with the period into a
// payable-days fraction. The factor is kept as an exact decimal quotient and
// never pre-rounded; rounding happens once, on final amounts.
func Prorate(emp EmployeeSnapshot, period PayPeriod) Proration {
	totalDays := period.TotalDays()
	full := Proration{
		Factor:      decimal.NewFromInt(1),
		DaysPayable: totalDays,
		TotalDays:   totalDays,
	}

	joining := dateOnly(emp.DateOfJoining)

	// Joining on or before the first working day of the period counts as a
	// full period. This absorbs joins on a weekend immediately preceding it.
	if !joining.After(firstWorkingDay(period.Start)) {
		if emp.DateOfExit == nil || !dateOnly(*emp.DateOfExit).Before(dateOnly(period.End)) {
			return full
		}
	}

	effectiveStart := joining
	if effectiveStart.Before(dateOnly(period.Start)) {
		effectiveStart = dateOnly(period.Start)
	}

	effectiveEnd := dateOnly(period.End)
	if emp.DateOfExit != nil && dateOnly(*emp.DateOfExit).Before(effectiveEnd) {
		effectiveEnd = dateOnly(*emp.DateOfExit)
	}

	if effectiveEnd.Before(effectiveStart) {
		// Exit recorded before joining (or tenure entirely outside the
		// period). Not fatal, but the caller should surface it for review.
		return Proration{
			Factor:      decimal.Zero,
			DaysPayable: 0,
			TotalDays:   totalDays,
			Warnings: []string{fmt.Sprintf(
				"tenure ends %s before it starts %s, zero payable days",
				effectiveEnd.Format("2006-01-02"), effectiveStart.Format("2006-01-02"),
			)},
		}
	}

	daysPayable := daysBetween(effectiveStart, effectiveEnd) + 1
	if daysPayable >= totalDays {
		return full
	}

	return Proration{
		Factor:      decimal.NewFromInt(int64(daysPayable)).Div(decimal.NewFromInt(int64(totalDays))),
		DaysPayable: daysPayable,
		TotalDays:   totalDays,
	}
}

// firstWorkingDay returns the earliest date >= from that is not a weekend day.
func firstWorkingDay(from time.Time) time.Time {
	d := dateOnly(from)
	for d.Weekday() == time.Saturday || d.Weekday() == time.Sunday {
		d = d.AddDate(0, 0, 1)
	}
	return d
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func daysBetween(a, b time.Time) int {
	return int(dateOnly(b).Sub(dateOnly(a)).Hours() / 24)
}
