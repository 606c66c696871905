package domain

// SessionState is the process-wide readiness of the external messaging
// session. There is exactly one session per process and no transition leads
// back to initializing.
type SessionState string

const (
	SessionInitializing SessionState = "initializing"
	SessionReady        SessionState = "ready"
	SessionDisconnected SessionState = "disconnected"
)
