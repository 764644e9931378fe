package model

import "time"

// DueDate is a point in time at minute resolution.
type DueDate struct {
	at time.Time
}

// NewDueDate drops everything below the minute from t.
func NewDueDate(t time.Time) DueDate {
	return DueDate{at: t.Truncate(time.Minute)}
}

// Date builds a due date in loc. Out-of-range components normalise the
// way time.Date does (month 13 is January of the following year).
func Date(year int, month time.Month, day, hour, minute int, loc *time.Location) DueDate {
	return DueDate{at: time.Date(year, month, day, hour, minute, 0, 0, loc)}
}

// Time returns the instant.
func (d DueDate) Time() time.Time { return d.at }

// Equal compares instants, ignoring location.
func (d DueDate) Equal(o DueDate) bool { return d.at.Equal(o.at) }

// IsOverdue reports whether the due date lies before now.
func (d DueDate) IsOverdue(now time.Time) bool { return d.at.Before(now) }

func (d DueDate) String() string {
	return d.at.Format("Mon Jan 2 2006 15:04")
}
