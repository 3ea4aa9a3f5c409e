package main

// Exit codes.
const (
	ExitSuccess    = 0 // Success
	ExitError      = 1 // General error (invalid arguments, runtime failure)
	ExitUsageError = 2 // Usage error (bad flags, unreadable config)
	ExitNoCitation = 3 // Identifier unrecognized or no citation available
	ExitAPIError   = 4 // A registry request failed
)
