package fine

import (
	"math"
	"time"

	"library-backend/pkg/calendar"
)

// Policy turns an overdue interval into money. The due date is a calendar
// date; the return instant is reduced to its calendar day in Location. A
// return any time on the due date is on time, any time on the next day is one
// day late.
type Policy struct {
	RatePerDay float64
	Location   *time.Location
}

func NewPolicy(ratePerDay float64, loc *time.Location) Policy {
	if loc == nil {
		loc = time.UTC
	}
	return Policy{RatePerDay: ratePerDay, Location: loc}
}

// Assessment is the outcome of evaluating one loan.
type Assessment struct {
	OverdueDays int     `json:"overdueDays"`
	Amount      float64 `json:"amount"`
}

// Due reports whether a fine has to be raised.
func (a Assessment) Due() bool { return a.OverdueDays > 0 }

// Assess evaluates a return that happened at `returned` against the due date.
func (p Policy) Assess(due, returned time.Time) Assessment {
	days := calendar.DaysPast(due, returned, p.Location)
	if days <= 0 {
		return Assessment{}
	}
	return Assessment{
		OverdueDays: days,
		Amount:      round2(float64(days) * p.RatePerDay),
	}
}

// Project computes what Assess would charge if the loan were returned at now.
// Display only; callers must not persist the result as a fine.
func (p Policy) Project(due, now time.Time) Assessment { return p.Assess(due, now) }

func round2(v float64) float64 { return math.Round(v*100) / 100 }
