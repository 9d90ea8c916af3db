package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/urfave/cli/v2"
	"go.opentelemetry.io/otel"

	"github.com/Churn-Demo/frontend/cleanup"
	"github.com/Churn-Demo/frontend/config"
	"github.com/Churn-Demo/frontend/log_messages"
	"github.com/Churn-Demo/frontend/logger"
	"github.com/Churn-Demo/frontend/routes"
	"github.com/Churn-Demo/frontend/service"
)

var version = "dev"

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:    "churn-panel",
		Usage:   "CusTech churn demo: customer id in, churn risk out",
		Version: version,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Usage:   "Path to the YAML config file",
				EnvVars: []string{"CONFIG_PATH"},
			},
			&cli.StringFlag{
				Name:    "gateway-url",
				Usage:   "Base URL of the prediction gateway",
				EnvVars: []string{"GATEWAY_URL"},
			},
			&cli.StringFlag{
				Name:    "log-level",
				Usage:   "Log level (debug, info, warn, error)",
				EnvVars: []string{"LOGGING_LEVEL"},
			},
		},
		Commands: []*cli.Command{
			serveCommand(),
			predictCommand(),
		},
		Action: runServe,
	}
}

func serveCommand() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Serve the prediction panel",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:    "port",
				Usage:   "HTTP port",
				EnvVars: []string{"SERVER_PORT"},
			},
		},
		Action: runServe,
	}
}

func predictCommand() *cli.Command {
	return &cli.Command{
		Name:  "predict",
		Usage: "Ask the gateway for one customer and print the summary",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "customer-id",
				Aliases:  []string{"c"},
				Usage:    "Customer identifier, e.g. N001",
				Required: true,
			},
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Print the panel as JSON",
			},
		},
		Action: runPredict,
	}
}

// loadConfig applies CLI flags over the file and environment configuration.
func loadConfig(c *cli.Context) (*config.AppConfig, error) {
	if path := c.String("config"); path != "" {
		if err := os.Setenv("CONFIG_PATH", path); err != nil {
			return nil, err
		}
	}
	cfg, err := config.LoadFromConfig()
	if err != nil {
		logger.Error(log_messages.FailedLoadingConfiguration, err)
		return nil, err
	}
	if url := c.String("gateway-url"); url != "" {
		cfg.Gateway.BaseURL = url
	}
	if level := c.String("log-level"); level != "" {
		cfg.Logging.LogLevel = level
	}
	if c.IsSet("port") {
		cfg.Server.Port = c.Int("port")
	}
	return cfg, nil
}

func runServe(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	logger.Init(cfg.Logging.LogLevel)
	gin.SetMode(gin.ReleaseMode)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	gateway := service.NewGatewayClient(cfg.Gateway.BaseURL, cfg.Gateway.Timeout)
	sessions := service.NewSessions(gateway, cfg.Sessions.IdleTimeout)
	go sessions.Run(ctx, cfg.Sessions.SweepInterval)

	engine, err := routes.Web(cfg, sessions, otel.Meter(cfg.Server.ServiceName))
	if err != nil {
		return err
	}

	server := startHTTPServer(ctx, cfg.Server.Port, engine)
	logger.CtxInfo(ctx, log_messages.ServerStarting, map[string]any{
		"port":    cfg.Server.Port,
		"gateway": gateway.Endpoint(),
	})

	waitForShutdownSignal()

	logger.CtxInfo(ctx, log_messages.ServerShutdown)
	cleanup.CleanupResources(ctx, cancel, server, cfg.Server.ShutdownTimeout)
	logger.CtxInfo(ctx, log_messages.ServerExiting)
	return nil
}

// startHTTPServer starts the HTTP server in a goroutine
func startHTTPServer(ctx context.Context, port int, engine http.Handler) *http.Server {
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", port),
		Handler:           engine,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.CtxError(ctx, log_messages.ServerStartFailure, err)
		}
	}()

	return srv
}

// waitForShutdownSignal waits for shutdown signals and returns when received
func waitForShutdownSignal() {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
}

func runPredict(c *cli.Context) error {
	logger.InitConsole(c.String("log-level"))
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	logger.InitConsole(cfg.Logging.LogLevel)

	panel := service.NewPanel(service.NewGatewayClient(cfg.Gateway.BaseURL, cfg.Gateway.Timeout))
	state := panel.Submit(c.Context, c.String("customer-id"))

	if c.Bool("json") {
		if err := printJSON(c.App.Writer, service.View(state)); err != nil {
			return err
		}
	} else {
		printSummary(c.App.Writer, state)
	}

	if state.Phase == service.PhaseFailure {
		return cli.Exit("", 1)
	}
	return nil
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}

func printSummary(w io.Writer, state service.State) {
	if state.Error != "" {
		fmt.Fprintf(w, "Error: %s\n", state.Error)
		return
	}
	summary := service.Summarize(state)

	risk := service.Placeholder
	if summary.Badge != nil {
		risk = fmt.Sprintf("%s (%s)", summary.Badge.Label, summary.Badge.Severity)
	}
	pct := summary.PercentText
	if summary.Percent != nil {
		pct += "%"
	}

	fmt.Fprintf(w, "Riesgo de churn: %s\n", risk)
	fmt.Fprintf(w, "Probabilidad:    %s\n", pct)
	fmt.Fprintf(w, "Predicción:      %s\n", summary.Prediction)
	fmt.Fprintf(w, "Fuente:          %s\n", summary.Source)
	fmt.Fprintf(w, "\n%s\n", summary.PrettyJSON)
}
