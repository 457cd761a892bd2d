package debug

import "os"

const (
	DebugShowSetupKey = "DEBUG_SHOW_SETUP"
	DebugApiKey       = "DEBUG_API"
)

func isDebugShowSetupSet() bool {
	return os.Getenv(DebugShowSetupKey) == "true"
}

func isDebugApiSet() bool {
	return os.Getenv(DebugApiKey) == "true"
}
