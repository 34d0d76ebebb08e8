package model

import (
	"fmt"
	"time"
)

// TimeInterval is a closed interval [Begin, End] on the timeline.
type TimeInterval struct {
	Begin time.Time
	End   time.Time
}

func NewTimeInterval(begin, end time.Time) TimeInterval {
	return TimeInterval{Begin: begin, End: end}
}

func (i TimeInterval) String() string {
	return fmt.Sprintf("[%s, %s]", i.Begin.Format(time.RFC3339Nano), i.End.Format(time.RFC3339Nano))
}

// IsZero reports whether the interval is the zero value.
func (i TimeInterval) IsZero() bool {
	return i.Begin.IsZero() && i.End.IsZero()
}

// Width returns End - Begin.
func (i TimeInterval) Width() time.Duration {
	return i.End.Sub(i.Begin)
}

// Overlaps reports whether the closed intervals share at least one instant.
func (i TimeInterval) Overlaps(other TimeInterval) bool {
	return !i.Begin.After(other.End) && !other.Begin.After(i.End)
}

// Disjoint is the negation of Overlaps.
func (i TimeInterval) Disjoint(other TimeInterval) bool {
	return !i.Overlaps(other)
}

// Contains reports whether t falls inside the closed interval.
func (i TimeInterval) Contains(t time.Time) bool {
	return !t.Before(i.Begin) && !t.After(i.End)
}

// Union returns the smallest interval covering both. Callers are expected to
// check Overlaps first when contiguity matters.
func (i TimeInterval) Union(other TimeInterval) TimeInterval {
	u := i
	if other.Begin.Before(u.Begin) {
		u.Begin = other.Begin
	}
	if other.End.After(u.End) {
		u.End = other.End
	}
	return u
}
