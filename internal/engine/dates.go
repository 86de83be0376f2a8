package engine

import (
	"strings"
	"time"

	naturaldate "github.com/tj/go-naturaldate"
)

// target is the resolved date a duty question asks about.
type target struct {
	date       time.Time
	weekday    string
	dayOfMonth int
	label      string
}

var weekdayNames = []string{
	"sunday", "monday", "tuesday", "wednesday", "thursday", "friday", "saturday",
}

// resolveDate extracts the date a query refers to. The default is today;
// "tomorrow", "yesterday" and "next week" shift it, a bare weekday name
// resolves to the next occurrence on or after today (the previous one
// when the query also says "last"). Anything else is handed to the
// natural-date parser as a best effort before falling back to today.
func (e *Engine) resolveDate(query string) target {
	now := e.Now()
	q := strings.ToLower(query)

	switch {
	case strings.Contains(q, "tomorrow"):
		return makeTarget(now.AddDate(0, 0, 1), "tomorrow")
	case strings.Contains(q, "yesterday"):
		return makeTarget(now.AddDate(0, 0, -1), "yesterday")
	case strings.Contains(q, "next week"):
		return makeTarget(now.AddDate(0, 0, 7), "next week")
	}

	for i, day := range weekdayNames {
		if !strings.Contains(q, day) {
			continue
		}
		want := time.Weekday(i)
		if strings.Contains(q, "last") {
			delta := int(now.Weekday()-want+7) % 7
			if delta == 0 {
				delta = 7
			}
			return makeTarget(now.AddDate(0, 0, -delta), "last "+day)
		}
		delta := int(want-now.Weekday()+7) % 7
		return makeTarget(now.AddDate(0, 0, delta), day)
	}

	if !strings.Contains(q, "today") {
		if parsed, err := naturaldate.Parse(q, now, naturaldate.WithDirection(naturaldate.Future)); err == nil && !sameDay(parsed, now) {
			return makeTarget(parsed, strings.ToLower(parsed.Format("Monday, Jan 2")))
		}
	}
	return makeTarget(now, "today")
}

func makeTarget(d time.Time, label string) target {
	return target{
		date:       d,
		weekday:    d.Weekday().String(),
		dayOfMonth: d.Day(),
		label:      label,
	}
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// greeting picks the time-of-day salutation. Thresholds follow the clock:
// before noon it is morning, before five in the afternoon it is afternoon.
func (e *Engine) greeting() string {
	switch hour := e.Now().Hour(); {
	case hour < 12:
		return "Good morning!"
	case hour < 17:
		return "Good afternoon!"
	default:
		return "Good evening!"
	}
}
