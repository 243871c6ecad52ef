package service

// Service defines the lifecycle interface for infrastructure subsystems
// Services manage long-lived resources: audio backend, content store, metrics
//
// Lifecycle:
//  1. Construction with explicit configuration
//  2. Init() - load resources, in dependency order
//  3. Start() - launch background goroutines
//  4. [runtime operation]
//  5. Stop() - halt goroutines, release resources
type Service interface {
	// Name returns the unique identifier for this service
	Name() string

	// Dependencies returns names of services that must Init before this one
	Dependencies() []string

	// Init prepares the service; failure aborts startup
	Init() error

	// Start begins service operation, called after every service initialized
	Start() error

	// Stop halts service operation and releases resources
	// Must be idempotent
	Stop() error
}
