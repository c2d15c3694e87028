package main

// Exit codes
const (
	ExitSuccess     = 0 // Success
	ExitError       = 1 // General error (invalid arguments, runtime failure)
	ExitConfigError = 2 // Configuration error (unreadable or invalid config, level file)
	ExitDataError   = 3 // Data error (malformed input)
	ExitAPIError    = 4 // Upstream error (not found, rate limit, network, circuit open)
)
