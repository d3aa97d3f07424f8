package repositories

import "context"

// Repository aggregates every data-access interface the service uses.
type Repository interface {
	// Request domain
	Request() RequestRepository

	// Profile domain
	StudentProfile() StudentProfileRepository
	VolunteerProfile() VolunteerProfileRepository

	// User domain (read-mostly; Casdoor owns user data)
	User() UserRepository

	// Transaction support
	WithTransaction(ctx context.Context, fn func(Repository) error) error

	// Health check
	Ping(ctx context.Context) error

	// Close connections
	Close() error
}

// RepositoryManager interface for managing repository lifecycle
type RepositoryManager interface {
	// Initialize repositories with database connections
	Initialize() error

	// Get repository instance
	GetRepository() Repository

	// Health check for all repositories
	HealthCheck(ctx context.Context) error

	// Graceful shutdown
	Shutdown(ctx context.Context) error
}
