package parser

import "brigade/internal/models"

// PreviewRow is one employee line of the duty-schedule preview.
type PreviewRow struct {
	Name       string            `json:"name"`
	Role       string            `json:"role"`
	Department string            `json:"department"`
	Days       map[string]string `json:"days"`
}

// Preview renders a weekday-by-employee matrix for the dashboard preview.
// Days without a record display as "OFF". That is a display default only;
// no record is ever materialized for an empty cell.
func Preview(staff []models.Employee) []PreviewRow {
	rows := make([]PreviewRow, 0, len(staff))
	for _, emp := range staff {
		row := PreviewRow{
			Name:       emp.Name,
			Role:       emp.Role,
			Department: emp.Department,
			Days:       make(map[string]string, len(weekdays)),
		}
		for _, day := range weekdays {
			row.Days[day] = "OFF"
		}
		for _, rec := range emp.Schedule {
			if _, known := row.Days[rec.Weekday]; known {
				row.Days[rec.Weekday] = rec.ShiftText
			}
		}
		rows = append(rows, row)
	}
	return rows
}
