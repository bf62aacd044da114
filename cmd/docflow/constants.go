package main

// Default limits for CLI commands.
const (
	DefaultListLimit     = 50
	DefaultActivityLimit = 100
)
