package services

// Service defines the lifecycle of an out-of-session subsystem
// Services own external resources: audio device, terminal, debug sinks
type Service interface {
	// Name returns the unique identifier for this service
	Name() string

	// Dependencies lists services that must initialize first
	Dependencies() []string

	// Init receives the shared environment for dependency injection
	Init(env any) error

	// Start begins service operation
	// Called after all services are initialized
	Start() error

	// Stop halts service operation and releases resources
	Stop() error
}
