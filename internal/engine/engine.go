// Package engine answers natural-language duty questions against the
// parsed roster without calling any external service. Intents are a
// small closed set; everything is resolved locally with keyword rules.
package engine

import (
	"fmt"
	"strings"
	"time"

	"brigade/internal/conversation"
	"brigade/internal/models"
)

// defaultDisplayLimit caps each bucket in full-roster listings.
const defaultDisplayLimit = 15

// departmentAliases maps query keywords to canonical department names.
// Longer aliases come first so "hot kitchen" never half-matches.
var departmentAliases = []struct {
	keyword string
	dept    string
}{
	{"hot kitchen", models.DeptHotKitchen},
	{"cold kitchen", models.DeptColdKitchen},
	{"stewarding", models.DeptStewarding},
	{"butchery", models.DeptButchery},
	{"bakery", models.DeptPastry},
	{"pastry", models.DeptPastry},
}

// Intent keyword sets, one token match is enough. Dispatch order matters:
// working wins over off, off over vacation, and so on.
var (
	workingWords = []string{"working", "work", "works", "duty"}
	offWords     = []string{"off"}
	leaveWords   = []string{"vacation", "vacations", "leave", "absent", "holiday"}
	rosterWords  = []string{"staff", "list", "team", "names", "all", "everyone"}
	findWords    = []string{"find", "search", "where"}
)

// stopWords are stripped before a query is compared against employee
// names. Intent, department and date words are stripped separately.
var stopWords = []string{
	"who", "whos", "what", "whats", "is", "are", "on", "in", "at", "the",
	"a", "an", "of", "for", "me", "my", "show", "tell", "please", "about",
	"and", "does", "do", "status", "schedule", "shift", "day", "week",
	"today", "tomorrow", "yesterday", "next", "last",
}

// Engine resolves duty questions over an in-memory roster. Now is
// injectable so date resolution is deterministic in tests.
type Engine struct {
	Now          func() time.Time
	DisplayLimit int
}

// New returns an Engine with the wall clock and default display limit.
func New() *Engine {
	return &Engine{Now: time.Now, DisplayLimit: defaultDisplayLimit}
}

// Answer resolves one duty question. It always returns a human-readable
// string: missing data, unknown names and empty buckets are ordinary
// conversational outcomes, never errors. The session is consulted for
// follow-up expansion and updated with the resolved context.
func (e *Engine) Answer(query string, employees []models.Employee, sess *conversation.Session) string {
	greeting := e.greeting()
	if len(employees) == 0 {
		response := greeting + " I don't have a duty roster loaded yet. Upload this month's schedule and ask me again."
		sess.Push(conversation.Turn{Query: query, Response: response})
		return response
	}

	asked := query
	if sess.IsFollowUp(query) {
		query = sess.Expand(query)
	}
	lower := strings.ToLower(query)

	t := e.resolveDate(lower)
	deptKeyword, dept := detectDepartment(lower)
	all := classify(employees, t)
	b := all.filtered(dept)

	response := e.dispatch(lower, employees, all, b, t, dept, deptKeyword, sess)
	response = greeting + " " + response
	sess.Push(conversation.Turn{Query: asked, Response: response})
	return response
}

// dispatch runs name-search priority and then the intent chain.
func (e *Engine) dispatch(lower string, employees []models.Employee, all, b buckets, t target, dept, deptKeyword string, sess *conversation.Session) string {
	// A person's name in the query beats every listing intent. When both
	// a name and a department appear, the name wins and the department
	// filter is dropped.
	if stripped := stripQuery(lower); stripped != "" {
		if matches := matchNames(employees, stripped); len(matches) > 0 {
			return e.personAnswer(matches, all, t)
		}
	}

	switch {
	case hasToken(lower, workingWords):
		sess.SetContext(conversation.Context{
			Department: deptKeyword, DateLabel: t.label, QueryType: "working", LastQuery: lower,
		})
		return renderBucket("working", b.working, all.shifts, t, dept)
	case hasToken(lower, offWords):
		sess.SetContext(conversation.Context{
			Department: deptKeyword, DateLabel: t.label, QueryType: "off", LastQuery: lower,
		})
		return renderBucket("off", b.off, nil, t, dept)
	case hasToken(lower, leaveWords):
		return renderLeave(b, t, dept)
	case hasToken(lower, rosterWords):
		return e.renderRoster(b, t, dept)
	case hasToken(lower, findWords):
		stripped := stripQuery(lower)
		if stripped == "" {
			return "Who should I look for? Give me a name, for example: \"find Ana\"."
		}
		if matches := matchNames(employees, stripped); len(matches) > 0 {
			return e.personAnswer(matches, all, t)
		}
		return fmt.Sprintf("I couldn't find anyone called %q on this month's roster.", stripped)
	default:
		return renderSummary(b, t, dept)
	}
}

// detectDepartment finds a department keyword in the query. Returns the
// raw keyword (for follow-up context) and the canonical department name.
func detectDepartment(lower string) (keyword, dept string) {
	for _, alias := range departmentAliases {
		if strings.Contains(lower, alias.keyword) {
			return alias.keyword, alias.dept
		}
	}
	return "", ""
}

// hasToken reports whether any of the words appears as a whole token.
func hasToken(lower string, words []string) bool {
	for _, field := range strings.FieldsFunc(lower, func(r rune) bool {
		return !('a' <= r && r <= 'z' || '0' <= r && r <= '9')
	}) {
		for _, w := range words {
			if field == w {
				return true
			}
		}
	}
	return false
}

// stripQuery removes stop, intent, department and date words, leaving the
// tokens that could be a person's name.
func stripQuery(lower string) string {
	drop := map[string]bool{}
	for _, set := range [][]string{stopWords, workingWords, offWords, leaveWords, rosterWords, findWords, weekdayNames} {
		for _, w := range set {
			drop[w] = true
		}
	}
	for _, alias := range departmentAliases {
		for _, part := range strings.Fields(alias.keyword) {
			drop[part] = true
		}
	}
	var kept []string
	for _, field := range strings.FieldsFunc(lower, func(r rune) bool {
		return !('a' <= r && r <= 'z' || '0' <= r && r <= '9')
	}) {
		if !drop[field] {
			kept = append(kept, field)
		}
	}
	return strings.Join(kept, " ")
}

// matchNames compares the stripped query against every employee name,
// substring in either direction.
func matchNames(employees []models.Employee, stripped string) []models.Employee {
	var out []models.Employee
	for _, emp := range employees {
		name := strings.ToLower(emp.Name)
		if strings.Contains(name, stripped) || strings.Contains(stripped, name) {
			out = append(out, emp)
		}
	}
	return out
}

// personAnswer renders the status of one or more matched people.
func (e *Engine) personAnswer(matches []models.Employee, all buckets, t target) string {
	if len(matches) == 1 {
		emp := matches[0]
		status := statusOf(emp, all)
		line := fmt.Sprintf("%s (%s, %s) is %s %s.", emp.Name, emp.Role, emp.Department, statusPhrase(status), t.label)
		if status == dutyWorking {
			if shift, ok := all.shifts[emp.Name]; ok && shift != "" {
				line += fmt.Sprintf(" Shift: %s.", shift)
			}
		}
		return line
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "I found %d people matching that:\n", len(matches))
	for _, emp := range matches {
		fmt.Fprintf(&sb, "• %s (%s) — %s %s\n", emp.Name, emp.Role, statusPhrase(statusOf(emp, all)), t.label)
	}
	return strings.TrimRight(sb.String(), "\n")
}

func statusOf(emp models.Employee, all buckets) dutyStatus {
	for _, v := range all.off {
		if v.Name == emp.Name {
			return dutyOff
		}
	}
	for _, v := range all.vacation {
		if v.Name == emp.Name {
			return dutyVacation
		}
	}
	for _, v := range all.leave {
		if v.Name == emp.Name {
			return dutyLeave
		}
	}
	return dutyWorking
}

func statusPhrase(s dutyStatus) string {
	switch s {
	case dutyOff:
		return "off"
	case dutyVacation:
		return "on vacation"
	case dutyLeave:
		return "on leave"
	default:
		return "working"
	}
}

func deptSuffix(dept string) string {
	if dept == "" {
		return ""
	}
	return " in " + dept
}

// renderBucket lists one bucket, with shift texts for the working list.
func renderBucket(kind string, emps []models.Employee, shifts map[string]string, t target, dept string) string {
	if len(emps) == 0 {
		return fmt.Sprintf("Nobody is %s%s %s.", kind, deptSuffix(dept), t.label)
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "Here's who is %s%s %s (%d):\n", kind, deptSuffix(dept), t.label, len(emps))
	for _, emp := range emps {
		fmt.Fprintf(&sb, "• %s (%s)", emp.Name, emp.Role)
		if shifts != nil {
			if shift, ok := shifts[emp.Name]; ok && shift != "" {
				fmt.Fprintf(&sb, " — %s", shift)
			}
		}
		sb.WriteString("\n")
	}
	return strings.TrimRight(sb.String(), "\n")
}

// renderLeave lists vacation and leave separately with counts.
func renderLeave(b buckets, t target, dept string) string {
	if len(b.vacation) == 0 && len(b.leave) == 0 {
		return fmt.Sprintf("Nobody is on vacation or leave%s %s.", deptSuffix(dept), t.label)
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "On vacation%s %s (%d):\n", deptSuffix(dept), t.label, len(b.vacation))
	if len(b.vacation) == 0 {
		sb.WriteString("• nobody\n")
	}
	for _, emp := range b.vacation {
		fmt.Fprintf(&sb, "• %s (%s)\n", emp.Name, emp.Role)
	}
	fmt.Fprintf(&sb, "On leave%s %s (%d):\n", deptSuffix(dept), t.label, len(b.leave))
	if len(b.leave) == 0 {
		sb.WriteString("• nobody\n")
	}
	for _, emp := range b.leave {
		fmt.Fprintf(&sb, "• %s (%s)\n", emp.Name, emp.Role)
	}
	return strings.TrimRight(sb.String(), "\n")
}

// renderRoster shows the whole roster grouped by status, each group
// capped at the display limit with an overflow count.
func (e *Engine) renderRoster(b buckets, t target, dept string) string {
	limit := e.DisplayLimit
	if limit <= 0 {
		limit = defaultDisplayLimit
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "Duty roster%s %s:\n", deptSuffix(dept), t.label)
	groups := []struct {
		title string
		emps  []models.Employee
	}{
		{"Working", b.working},
		{"Off", b.off},
		{"Vacation", b.vacation},
		{"Leave", b.leave},
	}
	for _, g := range groups {
		fmt.Fprintf(&sb, "%s (%d):\n", g.title, len(g.emps))
		shown := g.emps
		if len(shown) > limit {
			shown = shown[:limit]
		}
		for _, emp := range shown {
			fmt.Fprintf(&sb, "• %s (%s)\n", emp.Name, emp.Role)
		}
		if over := len(g.emps) - limit; over > 0 {
			fmt.Fprintf(&sb, "…and %d more\n", over)
		}
	}
	return strings.TrimRight(sb.String(), "\n")
}

// renderSummary is the default intent: counts plus suggested follow-ups.
func renderSummary(b buckets, t target, dept string) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Here's the duty summary%s %s: %d working, %d off, %d on vacation, %d on leave.\n",
		deptSuffix(dept), t.label, len(b.working), len(b.off), len(b.vacation), len(b.leave))
	sb.WriteString("You can ask me things like:\n")
	sb.WriteString("• Who is working today?\n")
	sb.WriteString("• Who is off tomorrow?\n")
	sb.WriteString("• Who is on vacation?\n")
	sb.WriteString("• List all staff")
	return sb.String()
}
