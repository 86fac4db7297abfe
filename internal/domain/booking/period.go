package booking

import (
	"errors"
	"fmt"
	"math"
	"time"
)

var ErrInvalidStayRange = errors.New("check-in must be before check-out")

// StayPeriod is a half-open date range [checkIn, checkOut). The open end
// lets a stay ending on a given day and one starting the same day coexist.
type StayPeriod struct {
	checkIn  time.Time
	checkOut time.Time
}

func NewStayPeriod(checkIn, checkOut time.Time) (StayPeriod, error) {
	if !checkIn.Before(checkOut) {
		return StayPeriod{}, ErrInvalidStayRange
	}
	return StayPeriod{checkIn: checkIn, checkOut: checkOut}, nil
}

func (p StayPeriod) CheckIn() time.Time {
	return p.checkIn
}

func (p StayPeriod) CheckOut() time.Time {
	return p.checkOut
}

// Nights rounds the span to whole days so a DST-shifted range still counts
// the calendar nights a guest actually stays.
func (p StayPeriod) Nights() int {
	return int(math.Round(p.checkOut.Sub(p.checkIn).Hours() / 24))
}

// Overlaps reports whether two half-open ranges share any night.
// Equivalent to the negation of: a.end <= b.start OR b.end <= a.start.
func (p StayPeriod) Overlaps(other StayPeriod) bool {
	return p.checkIn.Before(other.checkOut) && other.checkIn.Before(p.checkOut)
}

func (p StayPeriod) ToDaterange() string {
	return fmt.Sprintf("[%s,%s)", p.checkIn.Format(time.DateOnly), p.checkOut.Format(time.DateOnly))
}
