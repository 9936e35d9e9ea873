package constants

// DefaultVersion is the default version of the application
const DefaultVersion = "0.1.0-dev"

// DefaultBuildTime is the default build time when not provided at build time
const DefaultBuildTime = "unknown"

// DefaultGitCommit is the default git commit hash when not provided at build time
const DefaultGitCommit = "unknown"

// DefaultGoVersion is the default Go version when not provided at build time
const DefaultGoVersion = "unknown"

// Cleanup defaults.

// DefaultCleanupSchedule runs a sweep at the top of every hour.
// The expression has a leading seconds field.
const DefaultCleanupSchedule = "0 0 * * * *"

// DefaultMaxAttempts is the number of delete attempts per file
const DefaultMaxAttempts = 3

// DefaultInitialBackoffMs is the wait before the first delete retry
const DefaultInitialBackoffMs = 25

// DefaultMaxBackoffMs caps the wait between delete retries
const DefaultMaxBackoffMs = 200

// Metrics defaults.

// DefaultMetricsListen is the default address of the /metrics endpoint
const DefaultMetricsListen = ":9464"

// DefaultMetricsNamespace prefixes every exported metric name
const DefaultMetricsNamespace = "telecap"
