package main

// Exit codes
const (
	ExitSuccess     = 0 // Success
	ExitError       = 1 // General error (invalid arguments, runtime failure)
	ExitConfigError = 2 // Configuration error (missing directory, no input files, bad settings)
	ExitDataError   = 3 // Data error (unreadable input file)
)
