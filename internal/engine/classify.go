package engine

import (
	"strconv"
	"strings"

	"brigade/internal/models"
)

// dutyStatus is an employee's classification for one target date.
type dutyStatus string

const (
	dutyWorking  dutyStatus = "working"
	dutyOff      dutyStatus = "off"
	dutyVacation dutyStatus = "vacation"
	dutyLeave    dutyStatus = "leave"
)

// buckets groups the roster by duty status for the target date.
type buckets struct {
	working  []models.Employee
	off      []models.Employee
	vacation []models.Employee
	leave    []models.Employee
	shifts   map[string]string // employee name -> matched shift text
}

// classify sorts every employee into a status bucket for the target date.
// An employee with no matching record counts as working: rosters in the
// wild leave regular shifts implicit more often than days off.
func classify(employees []models.Employee, t target) buckets {
	b := buckets{shifts: make(map[string]string, len(employees))}
	for _, emp := range employees {
		rec := findRecord(emp, t)
		if rec == nil {
			b.working = append(b.working, emp)
			continue
		}
		b.shifts[emp.Name] = rec.ShiftText
		switch classifyShift(rec.ShiftText) {
		case dutyOff:
			b.off = append(b.off, emp)
		case dutyVacation:
			b.vacation = append(b.vacation, emp)
		case dutyLeave:
			b.leave = append(b.leave, emp)
		default:
			b.working = append(b.working, emp)
		}
	}
	return b
}

// findRecord locates the schedule record for the target date: exact
// weekday match first, then a three-letter abbreviation match, then a
// day-of-month substring as the last resort.
func findRecord(emp models.Employee, t target) *models.ScheduleRecord {
	for i := range emp.Schedule {
		if strings.EqualFold(emp.Schedule[i].Weekday, t.weekday) {
			return &emp.Schedule[i]
		}
	}
	if len(t.weekday) >= 3 {
		abbr := strings.ToLower(t.weekday[:3])
		for i := range emp.Schedule {
			day := strings.ToLower(emp.Schedule[i].Weekday)
			if len(day) >= 3 && day[:3] == abbr {
				return &emp.Schedule[i]
			}
		}
	}
	dom := strconv.Itoa(t.dayOfMonth)
	for i := range emp.Schedule {
		if strings.Contains(emp.Schedule[i].Weekday, dom) {
			return &emp.Schedule[i]
		}
	}
	return nil
}

// classifyShift buckets raw shift text. "OFF" must match exactly; the
// leave codes AL and UL are compared whole so they never fire on shift
// text that merely contains those letters.
func classifyShift(text string) dutyStatus {
	upper := strings.ToUpper(strings.TrimSpace(text))
	switch {
	case upper == "OFF":
		return dutyOff
	case strings.Contains(upper, "VACATION") || upper == models.CodeAnnualLeave:
		return dutyVacation
	case strings.Contains(upper, "LEAVE") || upper == models.CodeUnpaidLeave:
		return dutyLeave
	default:
		return dutyWorking
	}
}

// filterDept keeps only employees of one canonical department.
func filterDept(emps []models.Employee, dept string) []models.Employee {
	if dept == "" {
		return emps
	}
	var out []models.Employee
	for _, e := range emps {
		if strings.EqualFold(e.Department, dept) {
			out = append(out, e)
		}
	}
	return out
}

// filtered applies a department filter to every bucket.
func (b buckets) filtered(dept string) buckets {
	if dept == "" {
		return b
	}
	return buckets{
		working:  filterDept(b.working, dept),
		off:      filterDept(b.off, dept),
		vacation: filterDept(b.vacation, dept),
		leave:    filterDept(b.leave, dept),
		shifts:   b.shifts,
	}
}
