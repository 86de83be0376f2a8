package models

import "strings"

// ShiftStatus is the derived status of a single schedule record.
type ShiftStatus string

const (
	StatusScheduled ShiftStatus = "scheduled"
	StatusOff       ShiftStatus = "off"
)

// Shift codes that carry special meaning beyond plain working hours.
const (
	CodeAnnualLeave = "AL" // annual leave
	CodeUnpaidLeave = "UL" // unpaid leave
)

// ScheduleRecord is one employee/day entry from an uploaded roster.
// Identity within a snapshot is (EmployeeName, Weekday); records are
// created once by the parser and never mutated.
type ScheduleRecord struct {
	EmployeeName  string      `json:"employee_name"`
	Weekday       string      `json:"weekday"`
	ShiftText     string      `json:"shift_text"`
	DerivedStatus ShiftStatus `json:"derived_status"`
	Role          string      `json:"role"`
	Department    string      `json:"department"`
}

// DeriveStatus classifies raw shift text: anything containing "off"
// (case-insensitive) is an off day, everything else is scheduled.
func DeriveStatus(shiftText string) ShiftStatus {
	if strings.Contains(strings.ToLower(shiftText), "off") {
		return StatusOff
	}
	return StatusScheduled
}

// Employee is one member of the roster for a single month's snapshot.
type Employee struct {
	Name       string           `json:"name"`
	ID         string           `json:"id,omitempty"`
	Role       string           `json:"role"`
	Department string           `json:"department"`
	Category   string           `json:"category"`
	Schedule   []ScheduleRecord `json:"schedule"`
}

// Canonical department names used across parsing and querying.
const (
	DeptHotKitchen  = "Hot Kitchen"
	DeptColdKitchen = "Cold Kitchen"
	DeptPastry      = "Pastry"
	DeptButchery    = "Butchery"
	DeptStewarding  = "Stewarding"
	DeptGeneral     = "General"
)

// InferDepartment maps free-text role wording to a canonical department.
// Used only when the sheet does not carry an explicit department column.
func InferDepartment(role string) string {
	r := strings.ToLower(role)
	switch {
	case strings.Contains(r, "baker") || strings.Contains(r, "bakery") || strings.Contains(r, "pastry"):
		return DeptPastry
	case strings.Contains(r, "butcher"):
		return DeptButchery
	case strings.Contains(r, "steward") || strings.Contains(r, "dishwash"):
		return DeptStewarding
	case strings.Contains(r, "garde manger") || strings.Contains(r, "cold"):
		return DeptColdKitchen
	case strings.Contains(r, "chef") || strings.Contains(r, "cook") || strings.Contains(r, "commi"):
		return DeptHotKitchen
	default:
		return DeptGeneral
	}
}

// ParseMetadata is the diagnostic block reported alongside every parse so
// callers can show the user what was auto-detected.
type ParseMetadata struct {
	TotalRecords    int      `json:"total_records"`
	UniqueStaff     int      `json:"unique_staff"`
	DetectedColumns []string `json:"detected_columns"`
	SampleRow       []string `json:"sample_row,omitempty"`
	TotalRowsInFile int      `json:"total_rows_in_file"`
	Format          string   `json:"format"`
}

// ParseResult is the full output of a roster parse.
type ParseResult struct {
	Success   bool             `json:"success"`
	Error     string           `json:"error,omitempty"`
	Schedules []ScheduleRecord `json:"schedules"`
	Staff     []Employee       `json:"staff"`
	Metadata  ParseMetadata    `json:"metadata"`
}
