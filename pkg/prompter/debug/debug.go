package debug

const (
	Debug = true
)

func IsDebug() bool {
	return Debug
}

func IsDebugShowSetup() bool {
	return Debug && isDebugShowSetupSet()
}

// IsDebugApi switches the HTTP router to gin's debug mode.
func IsDebugApi() bool {
	return Debug && isDebugApiSet()
}
