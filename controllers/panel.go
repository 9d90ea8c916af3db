package controllers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/Churn-Demo/frontend/config"
	"github.com/Churn-Demo/frontend/log_messages"
	"github.com/Churn-Demo/frontend/logger"
	"github.com/Churn-Demo/frontend/models"
	"github.com/Churn-Demo/frontend/service"
	"github.com/Churn-Demo/frontend/views"
)

// SessionCookie carries the id of the caller's panel.
const SessionCookie = "panel_session"

// PanelController serves the prediction panel of each browser session.
type PanelController struct {
	sessions *service.Sessions
	ui       config.UIConfig
	outcomes metric.Int64Counter
}

func NewPanelController(sessions *service.Sessions, ui config.UIConfig, meter metric.Meter) *PanelController {
	outcomes, err := meter.Int64Counter(
		"panel.predictions_total",
		metric.WithDescription("Prediction submits by outcome."),
	)
	if err != nil {
		logger.Error(log_messages.MetricInstrumentFailure, err, map[string]any{"instrument": "panel.predictions_total"})
	}
	return &PanelController{
		sessions: sessions,
		ui:       ui,
		outcomes: outcomes,
	}
}

// panel resolves the caller's panel and refreshes the session cookie.
func (pc *PanelController) panel(c *gin.Context) *service.Panel {
	raw, _ := c.Cookie(SessionCookie)
	id, panel := pc.sessions.Panel(raw)
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(SessionCookie, id, 0, "/", "", false, true)
	return panel
}

// Show renders the page (GET /).
func (pc *PanelController) Show(c *gin.Context) {
	pc.render(c, pc.panel(c).Snapshot())
}

// State returns the JSON view of the panel (GET /api/panel).
func (pc *PanelController) State(c *gin.Context) {
	c.JSON(http.StatusOK, service.View(pc.panel(c).Snapshot()))
}

// Predict submits the customer id (POST /predict). Form posts get the page
// back, script clients get the JSON view.
func (pc *PanelController) Predict(c *gin.Context) {
	panel := pc.panel(c)

	var input string
	if strings.HasPrefix(c.ContentType(), "application/json") {
		var req models.PredictRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			_ = c.Error(err).SetType(gin.ErrorTypeBind)
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
			return
		}
		input = req.CustomerID
	} else {
		input = c.PostForm("customer_id")
	}

	state := panel.Submit(c.Request.Context(), input)
	pc.record(c, state)

	if wantsJSON(c) {
		c.JSON(http.StatusOK, service.View(state))
		return
	}
	pc.render(c, state)
}

func (pc *PanelController) record(c *gin.Context, state service.State) {
	if pc.outcomes == nil {
		return
	}
	pc.outcomes.Add(c.Request.Context(), 1, metric.WithAttributes(
		attribute.String("phase", string(state.Phase)),
		attribute.String("kind", state.ErrorKind),
	))
}

func (pc *PanelController) render(c *gin.Context, state service.State) {
	data := models.TemplateData{
		UserInput:  state.CustomerID,
		Loading:    state.Loading(),
		Error:      state.Error,
		Summary:    service.Summarize(state),
		ModelLabel: pc.ui.ModelLabel,
		SampleIDs:  pc.ui.SampleIDs,
		Endpoint:   service.PredictByIDPath,
	}
	c.HTML(http.StatusOK, views.PanelTemplate, data)
}

// Health answers liveness probes (GET /health).
func Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy", "service": "churn-panel"})
}

func wantsJSON(c *gin.Context) bool {
	accept := c.GetHeader("Accept")
	xreq := c.GetHeader("X-Requested-With")
	return strings.Contains(accept, "application/json") || xreq == "XMLHttpRequest"
}
