package api

import (
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"brigade/internal/assistant"
	"brigade/internal/config"
	"brigade/internal/conversation"
	"brigade/internal/engine"
	"brigade/internal/models"
	"brigade/internal/monitoring"
	"brigade/internal/parser"
	"brigade/internal/store"
)

// RosterAPI is the main API handler for the roster service.
type RosterAPI struct {
	Router    *gin.Engine
	Parser    *parser.Parser
	Engine    *engine.Engine
	Store     *store.Store
	Assistant *assistant.Assistant
	Monitor   *monitoring.Monitor

	log *zap.Logger

	sessionsMu sync.Mutex
	sessions   map[string]*conversation.Session
}

// NewRosterAPI creates the roster API instance and wires its routes.
func NewRosterAPI(cfg *config.Config, st *store.Store, log *zap.Logger) *RosterAPI {
	if log == nil {
		log = zap.NewNop()
	}
	router := gin.Default()

	eng := engine.New()
	if cfg.Roster.DisplayLimit > 0 {
		eng.DisplayLimit = cfg.Roster.DisplayLimit
	}

	api := &RosterAPI{
		Router:   router,
		Parser:   parser.New(),
		Engine:   eng,
		Store:    st,
		Monitor:  monitoring.NewMonitor(),
		log:      log,
		sessions: make(map[string]*conversation.Session),
	}
	if cfg.Assistant.Enabled {
		api.Assistant = assistant.New(cfg.Assistant.Model)
	}

	api.setupRoutes(cfg)
	return api
}

// setupRoutes configures all API endpoints
func (a *RosterAPI) setupRoutes(cfg *config.Config) {
	// Health check
	a.Router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "Brigade roster API is running"})
	})

	a.Router.GET("/ws", a.HandleWebSocket)

	v1 := a.Router.Group("/api/v1")
	if cfg.Auth.Enabled {
		v1.Use(AuthMiddleware(cfg.Auth.Secret))
	}
	{
		// Roster ingestion and inspection
		v1.POST("/roster/upload", a.UploadRoster)
		v1.GET("/roster", a.GetRoster)
		v1.GET("/roster/preview", a.GetRosterPreview)

		// Duty questions
		v1.POST("/duty/ask", a.AskDuty)
		v1.POST("/duty/reset", a.ResetSession)

		// Reference data and diagnostics
		v1.GET("/roles/categories", a.GetRoleCategories)
		v1.GET("/metrics", a.GetMonitorMetrics)

		// Hosted-model chat (disabled unless configured)
		v1.POST("/assistant/chat", a.AssistantChat)
	}
}

// UploadRequest carries one uploaded roster grid.
type UploadRequest struct {
	Month string  `json:"month"`
	Rows  [][]any `json:"rows" binding:"required"`
}

// UploadRoster parses an uploaded grid and, on success, replaces the
// stored snapshot for the month. Persistence is best-effort: a failed
// save is logged and the parse result is still returned.
func (a *RosterAPI) UploadRoster(c *gin.Context) {
	var req UploadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	grid := parser.FromValues(req.Rows)
	result := a.Parser.Parse(grid)
	a.Monitor.RecordParse(result.Metadata.Format, result.Success, result.Metadata.UniqueStaff, result.Metadata.TotalRecords)

	if !result.Success {
		c.JSON(http.StatusOK, result)
		return
	}

	month := req.Month
	if month == "" {
		month = a.Parser.Now().Format("2006-01")
	}
	snap, err := a.Store.Save(month, result, grid.Rows)
	if err != nil {
		a.log.Error("failed to persist roster snapshot", zap.Error(err), zap.String("month", month))
		c.JSON(http.StatusOK, gin.H{"result": result, "stored": false})
		return
	}
	monitoring.SnapshotStaff.Set(float64(snap.UniqueStaff))

	c.JSON(http.StatusOK, gin.H{"result": result, "stored": true, "snapshot_id": snap.SnapshotID, "month": month})
}

// GetRoster returns the latest stored snapshot.
func (a *RosterAPI) GetRoster(c *gin.Context) {
	snap, err := a.Store.LoadLatest()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if snap == nil {
		c.JSON(http.StatusOK, gin.H{"success": false, "error": "no roster uploaded yet"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success":     true,
		"snapshot_id": snap.SnapshotID,
		"month":       snap.Month,
		"format":      snap.Format,
		"staff":       snap.Staff,
		"schedules":   snap.Schedules,
	})
}

// GetRosterPreview renders the weekday-by-employee duty preview of the
// latest snapshot.
func (a *RosterAPI) GetRosterPreview(c *gin.Context) {
	snap, err := a.Store.LoadLatest()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if snap == nil {
		c.JSON(http.StatusOK, gin.H{"success": false, "error": "no roster uploaded yet"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "month": snap.Month, "preview": parser.Preview(snap.Staff)})
}

// AskRequest is one duty question tied to a conversation session.
type AskRequest struct {
	SessionID string `json:"session_id"`
	Question  string `json:"question" binding:"required"`
}

// AskDuty answers a duty question against the latest snapshot. A failed
// snapshot load is treated as "no data loaded", not as an error.
func (a *RosterAPI) AskDuty(c *gin.Context) {
	var req AskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var staff []models.Employee
	snap, err := a.Store.LoadLatest()
	if err != nil {
		a.log.Warn("failed to load roster snapshot, answering without data", zap.Error(err))
	} else if snap != nil {
		staff = snap.Staff
	}

	sess := a.session(req.SessionID)
	followUp := sess.IsFollowUp(req.Question)
	answer := a.Engine.Answer(req.Question, staff, sess)
	a.Monitor.RecordQuery(followUp)

	c.JSON(http.StatusOK, gin.H{"answer": answer, "session_id": a.sessionID(req.SessionID)})
}

// ResetSession clears one conversation session.
func (a *RosterAPI) ResetSession(c *gin.Context) {
	var req struct {
		SessionID string `json:"session_id"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	a.session(req.SessionID).Reset()
	c.JSON(http.StatusOK, gin.H{"message": "Conversation cleared"})
}

// GetRoleCategories lists the canonical role categories for the UI.
func (a *RosterAPI) GetRoleCategories(c *gin.Context) {
	c.JSON(http.StatusOK, rolesPayload())
}

// GetMonitorMetrics returns the in-memory operational metrics.
func (a *RosterAPI) GetMonitorMetrics(c *gin.Context) {
	c.JSON(http.StatusOK, a.Monitor.GetMetrics())
}

// AssistantChat forwards free text to the hosted model surface.
func (a *RosterAPI) AssistantChat(c *gin.Context) {
	if a.Assistant == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "assistant is not enabled"})
		return
	}
	var req struct {
		Message string `json:"message" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	reply, err := a.Assistant.Chat(c.Request.Context(), req.Message)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"reply": reply})
}

// session returns the conversation state for an ID, creating it on first
// use. Sessions are per-caller so concurrent users never share context.
func (a *RosterAPI) session(id string) *conversation.Session {
	id = a.sessionID(id)
	a.sessionsMu.Lock()
	defer a.sessionsMu.Unlock()
	sess, ok := a.sessions[id]
	if !ok {
		sess = &conversation.Session{}
		a.sessions[id] = sess
	}
	return sess
}

func (a *RosterAPI) sessionID(id string) string {
	if id == "" {
		return "default"
	}
	return id
}
