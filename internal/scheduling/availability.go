package scheduling

import (
	"encoding/json"
	"fmt"
	"time"
)

// MinuteOfDay is a clock time expressed as minutes since midnight. It
// marshals to and from "HH:MM" so availability templates stay readable in
// JSON columns and API payloads.
type MinuteOfDay int

func ParseMinuteOfDay(s string) (MinuteOfDay, error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return 0, fmt.Errorf("parse time of day %q: %w", s, err)
	}
	return MinuteOfDay(t.Hour()*60 + t.Minute()), nil
}

func (m MinuteOfDay) Hour() int   { return int(m) / 60 }
func (m MinuteOfDay) Minute() int { return int(m) % 60 }

func (m MinuteOfDay) Duration() time.Duration {
	return time.Duration(m) * time.Minute
}

func (m MinuteOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", m.Hour(), m.Minute())
}

func (m MinuteOfDay) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.String())
}

func (m *MinuteOfDay) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseMinuteOfDay(s)
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// TimeRange is one contiguous working window within a day, half-open
// [Start, End).
type TimeRange struct {
	Start MinuteOfDay `json:"start"`
	End   MinuteOfDay `json:"end"`
}

func (r TimeRange) Validate() error {
	if r.Start >= r.End {
		return &ValidationError{Field: "availability", Reason: fmt.Sprintf("range start %s must be before end %s", r.Start, r.End)}
	}
	if r.Start < 0 || r.End > 24*60 {
		return &ValidationError{Field: "availability", Reason: "range must fall within a single day"}
	}
	return nil
}

// Contains reports whether [start, start+d) fits inside the range, with
// minutes measured from the same midnight.
func (r TimeRange) Contains(start MinuteOfDay, d time.Duration) bool {
	end := start + MinuteOfDay(d/time.Minute)
	return start >= r.Start && end <= r.End
}

// WeeklyAvailability is a doctor's recurring weekly template: at most one
// working window per weekday, absent days carry no hours at all.
type WeeklyAvailability struct {
	Monday    *TimeRange `json:"monday,omitempty"`
	Tuesday   *TimeRange `json:"tuesday,omitempty"`
	Wednesday *TimeRange `json:"wednesday,omitempty"`
	Thursday  *TimeRange `json:"thursday,omitempty"`
	Friday    *TimeRange `json:"friday,omitempty"`
	Saturday  *TimeRange `json:"saturday,omitempty"`
	Sunday    *TimeRange `json:"sunday,omitempty"`
}

// RangeFor looks up the working window for a weekday. A missing window is
// a regular day off, not an error.
func (w WeeklyAvailability) RangeFor(day time.Weekday) (TimeRange, bool) {
	var r *TimeRange
	switch day {
	case time.Monday:
		r = w.Monday
	case time.Tuesday:
		r = w.Tuesday
	case time.Wednesday:
		r = w.Wednesday
	case time.Thursday:
		r = w.Thursday
	case time.Friday:
		r = w.Friday
	case time.Saturday:
		r = w.Saturday
	case time.Sunday:
		r = w.Sunday
	}
	if r == nil {
		return TimeRange{}, false
	}
	return *r, true
}

func (w WeeklyAvailability) Validate() error {
	for _, r := range []*TimeRange{w.Monday, w.Tuesday, w.Wednesday, w.Thursday, w.Friday, w.Saturday, w.Sunday} {
		if r == nil {
			continue
		}
		if err := r.Validate(); err != nil {
			return err
		}
	}
	return nil
}
