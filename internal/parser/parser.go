// Package parser turns irregular tabular duty rosters into normalized
// per-employee-per-day schedule records. It is heuristic by design: it
// auto-detects the sheet shape and column roles, degrades silently when
// the heuristics run dry, and never panics on malformed input.
package parser

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"brigade/internal/models"
	"brigade/internal/roles"
)

// Supported sheet shapes.
const (
	FormatWeekColumns = "week-columns" // one row per employee, day columns
	FormatRowEntries  = "row-entries"  // one row per schedule entry
)

// headerLookahead bounds the scan for a header row from the top of the
// sheet before falling back to row 0.
const headerLookahead = 10

var weekdays = []string{
	"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday",
}

// headerKeywords flag a row as the header and disqualify a cell as an
// employee name (guards against repeated header rows inside the data).
var headerKeywords = []string{
	"NAME", "EMPLOYEE", "STAFF", "POSITION", "SHIFT",
	"SUNDAY", "MONDAY", "TUESDAY", "WEDNESDAY", "THURSDAY", "FRIDAY", "SATURDAY",
}

// Column synonym sets for keyword matching, exact match tried before
// substring match.
var (
	nameKeys = []string{"NAME", "EMPLOYEE", "EMPLOYEE NAME", "STAFF", "STAFF NAME", "FULL NAME"}
	roleKeys = []string{"POSITION", "ROLE", "TITLE", "JOB", "DESIGNATION"}
	dateKeys = []string{"DATE", "DAY", "DUTY DATE", "SHIFT DATE"}
	timeKeys = []string{"SHIFT", "TIME", "TIMING", "HOURS", "DUTY", "SCHEDULE"}
	deptKeys = []string{"DEPARTMENT", "DEPT", "SECTION", "OUTLET"}
)

// dateLayouts are tried in order when a header or date cell has to be read
// as a calendar date.
var dateLayouts = []string{
	"2006-01-02", "02/01/2006", "01/02/2006", "2/1/2006",
	"02-01-2006", "Jan 2 2006", "2 Jan 2006", "Jan 2", "2 Jan",
}

// Parser converts raw grids into roster parse results. Now is injectable
// so calendar-day headers resolve deterministically in tests.
type Parser struct {
	Now func() time.Time
}

// New returns a Parser using the wall clock.
func New() *Parser {
	return &Parser{Now: time.Now}
}

// Parse converts a raw grid into employees and schedule records. It is
// total over any input: structural problems come back as Success=false
// with a message, never as a panic or error.
func (p *Parser) Parse(grid RawGrid) models.ParseResult {
	res := models.ParseResult{
		Metadata: models.ParseMetadata{TotalRowsInFile: len(grid.Rows)},
	}
	if len(grid.Rows) < 2 {
		res.Error = "roster needs at least a header row and one data row"
		return res
	}

	headerIdx := findHeaderRow(grid)
	header := grid.Rows[headerIdx]
	dayCols := weekdayColumns(header)

	if len(dayCols) == 0 && findColumn(header, dateKeys) >= 0 {
		return p.parseRowEntries(grid, headerIdx, res)
	}
	return p.parseWeekColumns(grid, headerIdx, dayCols, res)
}

// parseWeekColumns handles the one-row-per-employee shape: a name column,
// an optional role column, and one column per day of the week.
func (p *Parser) parseWeekColumns(grid RawGrid, headerIdx int, dayCols map[int]string, res models.ParseResult) models.ParseResult {
	header := grid.Rows[headerIdx]
	res.Metadata.Format = FormatWeekColumns

	nameCol := findColumn(header, nameKeys)
	roleCol := findColumn(header, roleKeys)

	// Positional fallback: many hand-made sheets put the name in the
	// second column and the job title in the fourth.
	sample := firstDataRow(grid, headerIdx)
	if nameCol < 0 && plausibleName(cellAt(sample, 1)) {
		nameCol = 1
	}
	if roleCol < 0 && plausibleName(cellAt(sample, 3)) {
		roleCol = 3
	}
	if nameCol < 0 {
		res.Error = "could not locate an employee name column"
		return res
	}

	if len(dayCols) == 0 {
		dayCols = p.calendarDayColumns(header, nameCol, roleCol)
	}
	if len(dayCols) == 0 {
		dayCols = dateHeaderColumns(header)
	}
	if len(dayCols) == 0 {
		// Last resort: assume a fixed block of seven columns holds
		// Sunday through Saturday in order.
		dayCols = fixedDayBlock(header)
	}

	res.Metadata.DetectedColumns = describeColumns(nameCol, roleCol, -1, -1, dayCols)

	byName := map[string]*models.Employee{}
	var order []string
	for i := headerIdx + 1; i < len(grid.Rows); i++ {
		name := grid.cell(i, nameCol)
		if !admitName(name) {
			continue
		}
		role := ""
		if roleCol >= 0 {
			role = grid.cell(i, roleCol)
		}
		emp := byName[name]
		if emp == nil {
			emp = &models.Employee{
				Name:       name,
				Role:       role,
				Department: models.InferDepartment(role),
				Category:   roles.Categorize(role).Name,
			}
			byName[name] = emp
			order = append(order, name)
			if res.Metadata.SampleRow == nil {
				res.Metadata.SampleRow = grid.Rows[i]
			}
		}
		for _, col := range sortedKeys(dayCols) {
			text := grid.cell(i, col)
			if text == "" {
				// Empty day cells emit nothing in the authoritative
				// parse; the preview renderer displays them as OFF.
				continue
			}
			rec := models.ScheduleRecord{
				EmployeeName:  name,
				Weekday:       dayCols[col],
				ShiftText:     text,
				DerivedStatus: models.DeriveStatus(text),
				Role:          emp.Role,
				Department:    emp.Department,
			}
			emp.Schedule = append(emp.Schedule, rec)
			res.Schedules = append(res.Schedules, rec)
		}
	}

	return finish(res, byName, order)
}

// parseRowEntries handles the one-row-per-shift-entry shape: separate
// name/date/shift/role/department columns located by keyword.
func (p *Parser) parseRowEntries(grid RawGrid, headerIdx int, res models.ParseResult) models.ParseResult {
	header := grid.Rows[headerIdx]
	res.Metadata.Format = FormatRowEntries

	nameCol := findColumn(header, nameKeys)
	if nameCol < 0 {
		nameCol = 0 // first column is the best remaining guess
	}
	dateCol := findColumn(header, dateKeys)
	shiftCol := findColumn(header, timeKeys)
	roleCol := findColumn(header, roleKeys)
	deptCol := findColumn(header, deptKeys)

	res.Metadata.DetectedColumns = describeColumns(nameCol, roleCol, dateCol, deptCol, nil)

	byName := map[string]*models.Employee{}
	var order []string
	for i := headerIdx + 1; i < len(grid.Rows); i++ {
		name := grid.cell(i, nameCol)
		if !admitName(name) {
			continue
		}
		role := ""
		if roleCol >= 0 {
			role = grid.cell(i, roleCol)
		}
		dept := ""
		if deptCol >= 0 {
			dept = grid.cell(i, deptCol)
		}
		if dept == "" {
			dept = models.InferDepartment(role)
		}
		emp := byName[name]
		if emp == nil {
			emp = &models.Employee{
				Name:       name,
				Role:       role,
				Department: dept,
				Category:   roles.Categorize(role).Name,
			}
			byName[name] = emp
			order = append(order, name)
			if res.Metadata.SampleRow == nil {
				res.Metadata.SampleRow = grid.Rows[i]
			}
		}
		shift := ""
		if shiftCol >= 0 {
			shift = grid.cell(i, shiftCol)
		}
		if shift == "" {
			continue
		}
		weekday := p.resolveWeekday(grid.cell(i, dateCol))
		rec := models.ScheduleRecord{
			EmployeeName:  name,
			Weekday:       weekday,
			ShiftText:     shift,
			DerivedStatus: models.DeriveStatus(shift),
			Role:          emp.Role,
			Department:    emp.Department,
		}
		emp.Schedule = append(emp.Schedule, rec)
		res.Schedules = append(res.Schedules, rec)
	}

	return finish(res, byName, order)
}

// finish assembles the employee list in first-seen order and settles the
// success flag.
func finish(res models.ParseResult, byName map[string]*models.Employee, order []string) models.ParseResult {
	for _, name := range order {
		res.Staff = append(res.Staff, *byName[name])
	}
	res.Metadata.TotalRecords = len(res.Schedules)
	res.Metadata.UniqueStaff = len(res.Staff)
	if len(res.Staff) == 0 {
		res.Error = "no employee rows could be resolved"
		return res
	}
	res.Success = true
	return res
}

// findHeaderRow scans from the top for the first row containing a header
// keyword or weekday name. Row 0 is the best-effort fallback.
func findHeaderRow(grid RawGrid) int {
	limit := len(grid.Rows)
	if limit > headerLookahead {
		limit = headerLookahead
	}
	for i := 0; i < limit; i++ {
		for _, cell := range grid.Rows[i] {
			upper := strings.ToUpper(cell)
			for _, kw := range headerKeywords {
				if strings.Contains(upper, kw) {
					return i
				}
			}
		}
	}
	return 0
}

// weekdayColumns maps column index to weekday name for every header cell
// carrying a weekday token. Duplicates overwrite, which tolerates sheets
// that repeat a day header.
func weekdayColumns(header []string) map[int]string {
	cols := map[int]string{}
	for i, cell := range header {
		upper := strings.ToUpper(cell)
		for _, day := range weekdays {
			if strings.Contains(upper, strings.ToUpper(day)) {
				cols[i] = day
				break
			}
		}
	}
	return cols
}

// calendarDayColumns reads header cells as day-of-month numbers 1-31 and
// maps each onto a weekday using the current year and month.
func (p *Parser) calendarDayColumns(header []string, nameCol, roleCol int) map[int]string {
	now := p.Now()
	cols := map[int]string{}
	for i, cell := range header {
		if i == nameCol || i == roleCol {
			continue
		}
		n, err := strconv.Atoi(strings.TrimSpace(cell))
		if err != nil || n < 1 || n > 31 {
			continue
		}
		d := time.Date(now.Year(), now.Month(), n, 0, 0, 0, 0, now.Location())
		cols[i] = d.Weekday().String()
	}
	return cols
}

// dateHeaderColumns reads header cells as date-like strings and maps each
// onto its actual weekday.
func dateHeaderColumns(header []string) map[int]string {
	cols := map[int]string{}
	for i, cell := range header {
		text := strings.TrimSpace(cell)
		if text == "" {
			continue
		}
		for _, layout := range dateLayouts {
			if d, err := time.Parse(layout, text); err == nil {
				cols[i] = d.Weekday().String()
				break
			}
		}
	}
	return cols
}

// fixedDayBlock assumes columns 2-8 hold Sunday through Saturday in order.
// Only applied when the sheet is wide enough to hold the block.
func fixedDayBlock(header []string) map[int]string {
	const offset = 2
	if len(header) < offset+len(weekdays) {
		return nil
	}
	cols := map[int]string{}
	for i, day := range weekdays {
		cols[offset+i] = day
	}
	return cols
}

// resolveWeekday turns a date cell from a row-entry sheet into a weekday
// name. Unparseable cells pass through as written so the query engine can
// still attempt a day-of-month match.
func (p *Parser) resolveWeekday(text string) string {
	text = strings.TrimSpace(text)
	if text == "" {
		return ""
	}
	for _, day := range weekdays {
		if strings.Contains(strings.ToUpper(text), strings.ToUpper(day)) {
			return day
		}
	}
	for _, layout := range dateLayouts {
		if d, err := time.Parse(layout, text); err == nil {
			return d.Weekday().String()
		}
	}
	if n, err := strconv.Atoi(text); err == nil && n >= 1 && n <= 31 {
		now := p.Now()
		d := time.Date(now.Year(), now.Month(), n, 0, 0, 0, 0, now.Location())
		return d.Weekday().String()
	}
	return text
}

// findColumn resolves a column by keyword, preferring an exact header
// match over a substring match.
func findColumn(header []string, keys []string) int {
	for i, cell := range header {
		upper := strings.ToUpper(strings.TrimSpace(cell))
		for _, k := range keys {
			if upper == k {
				return i
			}
		}
	}
	for i, cell := range header {
		upper := strings.ToUpper(cell)
		for _, k := range keys {
			if strings.Contains(upper, k) {
				return i
			}
		}
	}
	return -1
}

// admitName accepts a data row's name cell: non-empty after trimming, at
// least two characters, and not itself a header keyword.
func admitName(name string) bool {
	name = strings.TrimSpace(name)
	if len(name) < 2 {
		return false
	}
	upper := strings.ToUpper(name)
	for _, kw := range headerKeywords {
		if upper == kw {
			return false
		}
	}
	return true
}

// plausibleName says whether a sample cell could be a person's name: a
// non-numeric string longer than three characters.
func plausibleName(cell string) bool {
	cell = strings.TrimSpace(cell)
	if len(cell) <= 3 {
		return false
	}
	if _, err := strconv.ParseFloat(cell, 64); err == nil {
		return false
	}
	return true
}

func firstDataRow(grid RawGrid, headerIdx int) []string {
	if headerIdx+1 < len(grid.Rows) {
		return grid.Rows[headerIdx+1]
	}
	return nil
}

func cellAt(row []string, col int) string {
	if col < 0 || col >= len(row) {
		return ""
	}
	return row[col]
}

func sortedKeys(m map[int]string) []int {
	keys := make([]int, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	return keys
}

// describeColumns renders the detected column mapping for the diagnostic
// metadata block.
func describeColumns(nameCol, roleCol, dateCol, deptCol int, dayCols map[int]string) []string {
	var out []string
	if nameCol >= 0 {
		out = append(out, fmt.Sprintf("name=%d", nameCol))
	}
	if roleCol >= 0 {
		out = append(out, fmt.Sprintf("role=%d", roleCol))
	}
	if dateCol >= 0 {
		out = append(out, fmt.Sprintf("date=%d", dateCol))
	}
	if deptCol >= 0 {
		out = append(out, fmt.Sprintf("department=%d", deptCol))
	}
	for _, col := range sortedKeys(dayCols) {
		out = append(out, fmt.Sprintf("%s=%d", dayCols[col], col))
	}
	return out
}
