package log_messages

const (
	ServerStarting             = "Server starting"
	ServerStartFailure         = "failed to start server"
	ServerShutdown             = "Shutting down server..."
	ServerExiting              = "Server exiting"
	FailedLoadingConfiguration = "Failed to load configuration"
	EnvFileNotFound            = ".env file not found, using system environment"
	ConfigFileNotFound         = "config file not found, using defaults"
	CleanupStarted             = "Starting cleanup of resources..."
	CleanupCompleted           = "All resources cleaned up successfully"
	RequestServed              = "request served"
	RequestFailed              = "request failed"
	MetricInstrumentFailure    = "failed to create metric instrument"
	PredictionRequested        = "prediction requested"
	PredictionSucceeded        = "prediction succeeded"
	PredictionFailed           = "prediction failed"
	PredictionSuperseded       = "prediction superseded by a newer submit"
	PredictionPanicked         = "prediction call panicked"
	SessionsSwept              = "idle panel sessions evicted"
)
