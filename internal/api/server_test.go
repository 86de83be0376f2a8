package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"brigade/internal/config"
	"brigade/internal/database"
	"brigade/internal/store"
)

func testAPI(t *testing.T) *RosterAPI {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := database.Open("sqlite3", filepath.Join(t.TempDir(), "roster.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	a := NewRosterAPI(config.Default(), store.New(db, nil), nil)
	// Pin the clocks so weekday resolution does not depend on the test run
	// date. 2025-06-10 is a Tuesday; June 2025 starts on a Sunday.
	fixed := func() time.Time { return time.Date(2025, time.June, 10, 9, 0, 0, 0, time.UTC) }
	a.Engine.Now = fixed
	a.Parser.Now = fixed
	return a
}

func doJSON(t *testing.T, a *RosterAPI, method, path string, body any) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	a.Router.ServeHTTP(w, req)

	var decoded map[string]any
	if w.Body.Len() > 0 && w.Body.Bytes()[0] == '{' {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &decoded))
	}
	return w, decoded
}

func uploadSample(t *testing.T, a *RosterAPI) {
	t.Helper()
	w, resp := doJSON(t, a, http.MethodPost, "/api/v1/roster/upload", gin.H{
		"month": "2025-06",
		"rows": [][]any{
			{"Name", "Role", "Sunday", "Monday"},
			{"Ana Ruiz", "Commi 1", "8AM-6PM", "OFF"},
			{"Ben Osei", "Head Baker", "OFF", "6AM-3PM"},
		},
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	require.Equal(t, true, resp["stored"], w.Body.String())
}

func TestHealthCheck(t *testing.T) {
	a := testAPI(t)
	w, resp := doJSON(t, a, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", resp["status"])
}

func TestUploadRoster(t *testing.T) {
	a := testAPI(t)
	uploadSample(t, a)

	w, resp := doJSON(t, a, http.MethodGet, "/api/v1/roster", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, resp["success"])
	assert.Equal(t, "2025-06", resp["month"])
	assert.Contains(t, w.Body.String(), "Ana Ruiz")
	assert.Contains(t, w.Body.String(), "Ben Osei")
}

func TestUploadRoster_DefaultMonth(t *testing.T) {
	a := testAPI(t)
	w, resp := doJSON(t, a, http.MethodPost, "/api/v1/roster/upload", gin.H{
		"rows": [][]any{
			{"Name", "Role", "Sunday"},
			{"Ana Ruiz", "Commi 1", "8AM-6PM"},
		},
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	// The pinned clock, not the wall clock, names the month.
	assert.Equal(t, "2025-06", resp["month"])
}

func TestUploadRoster_BadPayload(t *testing.T) {
	a := testAPI(t)
	w, _ := doJSON(t, a, http.MethodPost, "/api/v1/roster/upload", gin.H{"month": "2025-06"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUploadRoster_UnparseableGrid(t *testing.T) {
	a := testAPI(t)
	w, resp := doJSON(t, a, http.MethodPost, "/api/v1/roster/upload", gin.H{
		"rows": [][]any{{"just one row"}},
	})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, false, resp["success"])
	assert.NotEmpty(t, resp["error"])
}

func TestRosterPreview(t *testing.T) {
	a := testAPI(t)
	uploadSample(t, a)

	w, resp := doJSON(t, a, http.MethodGet, "/api/v1/roster/preview", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, resp["success"])
	// Days without a record display as OFF in the preview.
	assert.Contains(t, w.Body.String(), "OFF")
}

func TestAskDuty_EndToEnd(t *testing.T) {
	a := testAPI(t)
	uploadSample(t, a)

	w, resp := doJSON(t, a, http.MethodPost, "/api/v1/duty/ask", gin.H{
		"question": "who is off monday",
	})
	require.Equal(t, http.StatusOK, w.Code)
	answer, _ := resp["answer"].(string)
	assert.Contains(t, answer, "Ana Ruiz")
	assert.NotContains(t, answer, "Ben Osei")
	assert.Equal(t, "default", resp["session_id"])
}

func TestAskDuty_NoRoster(t *testing.T) {
	a := testAPI(t)
	w, resp := doJSON(t, a, http.MethodPost, "/api/v1/duty/ask", gin.H{
		"question": "who is working today",
	})
	require.Equal(t, http.StatusOK, w.Code)
	answer, _ := resp["answer"].(string)
	assert.Contains(t, answer, "don't have a duty roster loaded")
}

func TestAskDuty_SessionsAreIsolated(t *testing.T) {
	a := testAPI(t)
	uploadSample(t, a)

	_, _ = doJSON(t, a, http.MethodPost, "/api/v1/duty/ask", gin.H{
		"session_id": "sous-chef", "question": "who is working in bakery monday",
	})

	// A follow-up on a fresh session has no context to expand, so it must
	// not inherit the other session's department or intent.
	_, resp := doJSON(t, a, http.MethodPost, "/api/v1/duty/ask", gin.H{
		"session_id": "porter", "question": "tomorrow?",
	})
	answer, _ := resp["answer"].(string)
	assert.NotContains(t, answer, "Ben Osei")

	// The original session still expands against its own context.
	_, resp = doJSON(t, a, http.MethodPost, "/api/v1/duty/ask", gin.H{
		"session_id": "sous-chef", "question": "tomorrow?",
	})
	answer, _ = resp["answer"].(string)
	assert.Contains(t, answer, "tomorrow")
	assert.Contains(t, answer, "Ben Osei")
}

func TestAskDuty_ConcurrentSharedSession(t *testing.T) {
	a := testAPI(t)
	uploadSample(t, a)

	var wg sync.WaitGroup
	for g := 0; g < 4; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 5; i++ {
				body, _ := json.Marshal(gin.H{"question": "who is working in bakery monday"})
				req := httptest.NewRequest(http.MethodPost, "/api/v1/duty/ask", bytes.NewReader(body))
				req.Header.Set("Content-Type", "application/json")
				w := httptest.NewRecorder()
				a.Router.ServeHTTP(w, req)
			}
		}()
	}
	wg.Wait()

	sess := a.session("default")
	assert.Equal(t, "working", sess.Context().QueryType)
	assert.Equal(t, "bakery", sess.Context().Department)
}

func TestResetSession(t *testing.T) {
	a := testAPI(t)
	uploadSample(t, a)

	_, _ = doJSON(t, a, http.MethodPost, "/api/v1/duty/ask", gin.H{"question": "who is working in bakery monday"})
	w, _ := doJSON(t, a, http.MethodPost, "/api/v1/duty/reset", gin.H{"session_id": ""})
	assert.Equal(t, http.StatusOK, w.Code)

	sess := a.session("default")
	assert.Empty(t, sess.History)
	assert.Empty(t, sess.Context().QueryType)
}

func TestRoleCategories(t *testing.T) {
	a := testAPI(t)
	req := httptest.NewRequest(http.MethodGet, "/api/v1/roles/categories", nil)
	w := httptest.NewRecorder()
	a.Router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var categories []map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &categories))
	assert.Len(t, categories, 21)
	assert.Contains(t, w.Body.String(), "Executive Chef")
}

func TestMonitorMetrics(t *testing.T) {
	a := testAPI(t)
	uploadSample(t, a)

	w, resp := doJSON(t, a, http.MethodGet, "/api/v1/metrics", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotNil(t, resp["uptime_seconds"])
}

func TestAssistantDisabled(t *testing.T) {
	a := testAPI(t)
	w, _ := doJSON(t, a, http.MethodPost, "/api/v1/assistant/chat", gin.H{"message": "hello"})
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestAuthMiddlewareRejectsMissingToken(t *testing.T) {
	gin.SetMode(gin.TestMode)
	db, err := database.Open("sqlite3", filepath.Join(t.TempDir(), "roster.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	cfg := config.Default()
	cfg.Auth.Enabled = true
	cfg.Auth.Secret = "kitchen-secret"
	a := NewRosterAPI(cfg, store.New(db, nil), nil)

	w, _ := doJSON(t, a, http.MethodGet, "/api/v1/roster", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// Health stays open.
	w, _ = doJSON(t, a, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}
