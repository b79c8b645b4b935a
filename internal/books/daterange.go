package books

import "time"

// DateRange bounds the query dates allowed for a category.
type DateRange struct {
	Min     time.Time
	Max     time.Time
	Default time.Time
}

// Resolve derives the valid query dates for c. With no category selected
// every field is now. The default is the newest list, not today.
func Resolve(c *Category, now time.Time) DateRange {
	if c == nil {
		return DateRange{Min: now, Max: now, Default: now}
	}
	return DateRange{Min: c.ValidFrom, Max: c.ValidTo, Default: c.ValidTo}
}

// Contains reports whether t lies within [Min, Max].
func (r DateRange) Contains(t time.Time) bool {
	return !t.Before(r.Min) && !t.After(r.Max)
}

// Clamp pins t into [Min, Max].
func (r DateRange) Clamp(t time.Time) time.Time {
	if t.Before(r.Min) {
		return r.Min
	}
	if t.After(r.Max) {
		return r.Max
	}
	return t
}
