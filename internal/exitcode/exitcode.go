// Package exitcode defines exit codes for the CLI.
package exitcode

const (
	// Success indicates successful completion.
	Success = 0

	// UserError indicates a user error (bad args, empty title, unknown ref).
	UserError = 1

	// ConfigError indicates a missing or invalid configuration (no user id, bad config file).
	ConfigError = 2

	// BackendError indicates a failed remote call.
	BackendError = 3
)
