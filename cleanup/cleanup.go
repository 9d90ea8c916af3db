package cleanup

import (
	"context"
	"net/http"
	"time"

	"github.com/Churn-Demo/frontend/log_messages"
	"github.com/Churn-Demo/frontend/logger"
)

// CleanupResources stops background work and drains the HTTP server.
func CleanupResources(ctx context.Context, stopBackground context.CancelFunc, server *http.Server, timeout time.Duration) {
	logger.CtxInfo(ctx, log_messages.CleanupStarted)

	if stopBackground != nil {
		stopBackground()
		logger.CtxInfo(ctx, "Background workers stopped")
	}
	if server != nil {
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), timeout)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.CtxError(ctx, "Failed to shutdown HTTP server", err)
		} else {
			logger.CtxInfo(ctx, "HTTP server shutdown successfully")
		}
	}

	logger.CtxInfo(ctx, log_messages.CleanupCompleted)
}
