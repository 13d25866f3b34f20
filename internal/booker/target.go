package booker

import (
	"fmt"
	"strings"
	"time"
)

// CourtTimes lists the facility's bookable start times: 09:00 through 23:00
// in 40-minute steps.
func CourtTimes() []string {
	var times []string
	for m := 9 * 60; m <= 23*60; m += 40 {
		times = append(times, fmt.Sprintf("%02d:%02d", m/60, m%60))
	}
	return times
}

// TargetSpec is the recurring slot to chase. Immutable for the process
// lifetime.
type TargetSpec struct {
	Weekday   time.Weekday
	CourtTime string // HH:MM, one of CourtTimes
}

// NewTargetSpec validates the user-supplied weekday and court time before
// the loop starts.
func NewTargetSpec(weekday, courtTime string) (TargetSpec, error) {
	wd, err := ParseWeekday(weekday)
	if err != nil {
		return TargetSpec{}, err
	}
	valid := CourtTimes()
	for _, t := range valid {
		if t == courtTime {
			return TargetSpec{Weekday: wd, CourtTime: courtTime}, nil
		}
	}
	return TargetSpec{}, fmt.Errorf("%s is not a valid court time, should be one of %v", courtTime, valid)
}

// Eve is the weekday immediately before the target weekday; the calendar
// for the target date opens at midnight at the end of that day.
func (t TargetSpec) Eve() time.Weekday {
	return (t.Weekday + 6) % 7
}

var weekdays = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
}

// ParseWeekday accepts full English weekday names and their three-letter
// abbreviations, case-insensitive.
func ParseWeekday(s string) (time.Weekday, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	if wd, ok := weekdays[key]; ok {
		return wd, nil
	}
	if len(key) == 3 {
		for name, wd := range weekdays {
			if strings.HasPrefix(name, key) {
				return wd, nil
			}
		}
	}
	return 0, fmt.Errorf("%s is not a valid week day", s)
}
