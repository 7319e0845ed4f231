package config

const (
	// Mode values
	ModeOnetime   = "onetime"
	ModeAutomated = "automated"

	// Monitor Defaults
	DefaultMonitorPollIntervalSeconds     = 3600 // 1 hour
	DefaultMonitorNoChangeIntervalSeconds = 600  // 10 minutes

	// Registry Defaults
	DefaultRegistryBaseURL        = "https://api.company-information.service.gov.uk"
	DefaultRegistryTimeoutSeconds = 30
	DefaultRegistryUserAgent      = "companywatch/1.0"

	// Retry Defaults
	DefaultRetryMaxRetries  = 2
	DefaultRetryBaseDelayMs = 1000
	DefaultRetryMaxDelayMs  = 30000

	// Storage Defaults
	StorageBackendFile         = "file"
	StorageBackendSQLite       = "sqlite"
	DefaultStorageBackend      = StorageBackendFile
	DefaultStorageSnapshotDir  = "database/snapshots"
	DefaultStorageSQLiteDBPath = "database/snapshots.db"

	// Log Defaults
	DefaultLogLevel      = "info"
	DefaultLogFormat     = "console"
	DefaultLogFile       = ""
	DefaultMaxLogSizeMB  = 100
	DefaultMaxLogBackups = 3

	// Environment variables
	EnvConfigPath          = "COMPANYWATCH_CONFIG_PATH"
	EnvAPIKey              = "CH_API_KEY"
	EnvCompanyNumber       = "COMPANY_NUMBER"
	EnvPollIntervalSeconds = "POLL_INTERVAL_SECONDS"
)
