// Package conversation holds the short-term dialogue state used to
// resolve follow-up duty questions. State lives in an explicit Session
// value owned by the caller, one per chat surface, rather than in
// process-wide globals, so concurrent users never share context.
package conversation

import (
	"strings"
	"sync"
)

// historyLimit bounds the retained turns; the oldest turn is evicted
// first once the limit is reached.
const historyLimit = 10

// Turn is one question/answer exchange.
type Turn struct {
	Query    string `json:"query"`
	Response string `json:"response"`
}

// Context captures the slots of the last substantive query. It is
// overwritten whole, never merged.
type Context struct {
	Department string
	DateLabel  string
	QueryType  string
	LastQuery  string
}

// Session is the per-conversation state. The zero value is ready to use.
// Safe for concurrent use: callers sharing one session ID mutate it from
// parallel requests.
type Session struct {
	mu      sync.Mutex
	History []Turn
	Last    Context
}

// Markers that can only start a longer sentence carry a trailing space so
// stripping them never eats into the next word ("yes " must not match
// "yesterday").
var discourseMarkers = []string{
	"what about", "how about", "what of", "and ", "also ", "ok ", "yes ", "no ",
}

var weekdayNames = []string{
	"sunday", "monday", "tuesday", "wednesday", "thursday", "friday", "saturday",
}

var departmentNames = []string{
	"hot kitchen", "cold kitchen", "bakery", "pastry", "butchery", "stewarding",
}

// IsFollowUp reports whether the query refines the previous question
// rather than starting a new topic: short queries, discourse-marked
// queries, a bare weekday, or a bare department name.
func (s *Session) IsFollowUp(query string) bool {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return false
	}
	if len(strings.Fields(q)) <= 3 {
		return true
	}
	for _, marker := range discourseMarkers {
		if strings.HasPrefix(q, marker) {
			return true
		}
	}
	bare := strings.TrimSuffix(q, "?")
	bare = strings.TrimSpace(bare)
	for _, day := range weekdayNames {
		if bare == day {
			return true
		}
	}
	for _, dept := range departmentNames {
		if bare == dept {
			return true
		}
	}
	return false
}

// Expand rewrites a follow-up into a fully specified query by splicing
// the new department or date token into the last known intent. Without a
// prior intent the query passes through unchanged. This is textual
// rewriting only: it never touches slots the follow-up did not mention.
func (s *Session) Expand(query string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Last.QueryType == "" {
		return query
	}
	q := strings.ToLower(strings.TrimSpace(query))
	q = strings.TrimSuffix(q, "?")
	for _, marker := range discourseMarkers {
		q = strings.TrimSpace(strings.TrimPrefix(q, marker))
	}

	dept := findToken(q, departmentNames)
	date := findDateToken(q)

	switch {
	case dept != "" && date != "":
		return "who is " + s.Last.QueryType + " in " + dept + " " + date
	case dept != "":
		expanded := "who is " + s.Last.QueryType + " in " + dept
		if s.Last.DateLabel != "" {
			expanded += " " + s.Last.DateLabel
		}
		return expanded
	case date != "":
		expanded := "who is " + s.Last.QueryType
		if s.Last.Department != "" {
			expanded += " in " + strings.ToLower(s.Last.Department)
		}
		return expanded + " " + date
	default:
		return query
	}
}

// SetContext overwrites the remembered slots of the last substantive
// query.
func (s *Session) SetContext(ctx Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Last = ctx
}

// Context returns the remembered slots.
func (s *Session) Context() Context {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.Last
}

// Push appends a turn, evicting the oldest once the history bound is
// reached.
func (s *Session) Push(turn Turn) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.History = append(s.History, turn)
	if len(s.History) > historyLimit {
		s.History = s.History[len(s.History)-historyLimit:]
	}
}

// Reset clears every remembered turn and slot.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.History = nil
	s.Last = Context{}
}

func findToken(q string, tokens []string) string {
	for _, t := range tokens {
		if strings.Contains(q, t) {
			return t
		}
	}
	return ""
}

// findDateToken pulls a date word out of a follow-up: a weekday name or
// one of the relative expressions the engine understands.
func findDateToken(q string) string {
	for _, t := range []string{"tomorrow", "yesterday", "next week", "today"} {
		if strings.Contains(q, t) {
			return t
		}
	}
	for _, day := range weekdayNames {
		if strings.Contains(q, day) {
			if strings.Contains(q, "last") {
				return "last " + day
			}
			return day
		}
	}
	return ""
}
