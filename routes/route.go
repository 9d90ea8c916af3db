package routes

import (
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/metric"

	"github.com/Churn-Demo/frontend/config"
	"github.com/Churn-Demo/frontend/controllers"
	"github.com/Churn-Demo/frontend/service"
	"github.com/Churn-Demo/frontend/views"
)

// Web builds the engine serving the panel page and its JSON API.
func Web(cfg *config.AppConfig, sessions *service.Sessions, meter metric.Meter) (*gin.Engine, error) {
	tmpl, err := views.Load()
	if err != nil {
		return nil, err
	}

	server := gin.New()
	server.Use(
		gin.Recovery(),
		controllers.AttachRequestID(),
		controllers.AccessLog(),
		controllers.NewMetricMiddleware(meter),
	)
	server.SetHTMLTemplate(tmpl)

	panel := controllers.NewPanelController(sessions, cfg.UI, meter)

	// Page d'accueil (GET)
	server.GET("/", panel.Show)

	// Traitement du formulaire (POST)
	server.POST("/predict", panel.Predict)

	server.GET("/api/panel", panel.State)
	server.GET("/health", controllers.Health)

	return server, nil
}
