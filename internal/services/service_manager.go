package services

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"gorm.io/gorm"

	"github.com/Hand2Hand-2025/volunteer-service/internal/events"
	"github.com/Hand2Hand-2025/volunteer-service/internal/mailer"
	"github.com/Hand2Hand-2025/volunteer-service/internal/repositories"
	"github.com/Hand2Hand-2025/volunteer-service/internal/validator"
)

// ServiceManagerConfig holds configuration for the service manager
type ServiceManagerConfig struct {
	EnableDebugLogging bool
	LogLevel           slog.Level

	// Service-specific configurations
	Request   ServiceConfig
	Student   ServiceConfig
	Volunteer ServiceConfig
	Admin     ServiceConfig

	DefaultTimeout time.Duration
}

type ServiceConfig struct {
	Enabled      bool
	CacheEnabled bool
	CacheTTL     time.Duration
}

// serviceManager implements ServiceManager interface
type serviceManager struct {
	// Dependencies
	db             *gorm.DB
	repo           repositories.Repository
	logger         *slog.Logger
	validator      *validator.Validator
	eventPublisher events.EventPublisher
	mailer         mailer.Mailer
	config         ServiceManagerConfig

	// Service instances
	requestService      RequestService
	studentService      StudentService
	volunteerService    VolunteerService
	adminService        AdminService
	notificationService NotificationService

	// Lifecycle management
	initialized bool
	shutdown    bool
	mu          sync.RWMutex
}

// NewServiceManager creates a new service manager with all dependencies
func NewServiceManager(
	db *gorm.DB,
	repo repositories.Repository,
	logger *slog.Logger,
	v *validator.Validator,
	publisher events.EventPublisher,
	m mailer.Mailer,
	config ServiceManagerConfig,
) ServiceManager {
	return &serviceManager{
		db:             db,
		repo:           repo,
		logger:         logger,
		validator:      v,
		eventPublisher: publisher,
		mailer:         m,
		config:         config,
	}
}

// NewDefaultServiceManager creates a service manager with default configuration
func NewDefaultServiceManager(
	db *gorm.DB,
	repo repositories.Repository,
	logger *slog.Logger,
	v *validator.Validator,
	publisher events.EventPublisher,
	m mailer.Mailer,
) ServiceManager {
	config := ServiceManagerConfig{
		EnableDebugLogging: false,
		LogLevel:           slog.LevelInfo,

		Request: ServiceConfig{
			Enabled:      true,
			CacheEnabled: true,
			CacheTTL:     2 * time.Minute,
		},
		Student: ServiceConfig{
			Enabled:      true,
			CacheEnabled: false,
			CacheTTL:     5 * time.Minute,
		},
		Volunteer: ServiceConfig{
			Enabled:      true,
			CacheEnabled: false,
			CacheTTL:     5 * time.Minute,
		},
		Admin: ServiceConfig{
			Enabled:      true,
			CacheEnabled: false,
			CacheTTL:     0,
		},

		DefaultTimeout: 30 * time.Second,
	}

	return NewServiceManager(db, repo, logger, v, publisher, m, config)
}

// Initialize sets up all services and their dependencies
func (sm *serviceManager) Initialize(ctx context.Context) error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized {
		return nil
	}

	sm.logger.Info("Initializing service manager")

	if err := sm.initializeServices(ctx); err != nil {
		return fmt.Errorf("failed to initialize services: %w", err)
	}

	sm.initialized = true
	sm.logger.Info("Service manager initialized successfully")

	return nil
}

func (sm *serviceManager) initializeServices(ctx context.Context) error {
	// Notification service first; the request service depends on it.
	sm.notificationService = NewNotificationService(sm.eventPublisher, sm.mailer, sm.logger)
	sm.logger.Info("Notification service initialized")

	if sm.config.Request.Enabled {
		sm.requestService = NewRequestService(sm.repo, sm.db, sm.logger, sm.validator, sm.notificationService)
		sm.logger.Info("Request service initialized")
	}

	if sm.config.Student.Enabled {
		sm.studentService = NewStudentService(sm.repo, sm.db, sm.logger, sm.validator)
		sm.logger.Info("Student service initialized")
	}

	if sm.config.Volunteer.Enabled {
		sm.volunteerService = NewVolunteerService(sm.repo, sm.db, sm.logger, sm.validator)
		sm.logger.Info("Volunteer service initialized")
	}

	if sm.config.Admin.Enabled {
		sm.adminService = NewAdminService(sm.repo, sm.db, sm.logger, sm.notificationService)
		sm.logger.Info("Admin service initialized")
	}

	return nil
}

// Service getters
func (sm *serviceManager) Request() RequestService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	if !sm.initialized {
		panic("service manager not initialized")
	}

	if sm.config.Request.Enabled && sm.requestService != nil {
		return sm.requestService
	}

	panic("request service not enabled or not initialized")
}

func (sm *serviceManager) Student() StudentService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	if !sm.initialized {
		panic("service manager not initialized")
	}

	if sm.config.Student.Enabled && sm.studentService != nil {
		return sm.studentService
	}

	panic("student service not enabled or not initialized")
}

func (sm *serviceManager) Volunteer() VolunteerService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	if !sm.initialized {
		panic("service manager not initialized")
	}

	if sm.config.Volunteer.Enabled && sm.volunteerService != nil {
		return sm.volunteerService
	}

	panic("volunteer service not enabled or not initialized")
}

func (sm *serviceManager) Admin() AdminService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	if !sm.initialized {
		panic("service manager not initialized")
	}

	if sm.config.Admin.Enabled && sm.adminService != nil {
		return sm.adminService
	}

	panic("admin service not enabled or not initialized")
}

func (sm *serviceManager) Notification() NotificationService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	if !sm.initialized {
		panic("service manager not initialized")
	}

	if sm.notificationService != nil {
		return sm.notificationService
	}

	panic("notification service not initialized")
}

// Health and lifecycle
func (sm *serviceManager) HealthCheck(ctx context.Context) error {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	if !sm.initialized {
		return fmt.Errorf("service manager not initialized")
	}

	if sm.shutdown {
		return fmt.Errorf("service manager is shut down")
	}

	if err := sm.repo.Ping(ctx); err != nil {
		return fmt.Errorf("repository health check failed: %w", err)
	}

	return nil
}

func (sm *serviceManager) Shutdown(ctx context.Context) error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.shutdown {
		return nil
	}

	sm.logger.Info("Shutting down service manager")

	if sm.eventPublisher != nil {
		if err := sm.eventPublisher.Close(); err != nil {
			sm.logger.Error("Failed to close event publisher", "error", err)
		}
	}

	if err := sm.repo.Close(); err != nil {
		sm.logger.Error("Failed to close repository", "error", err)
	}

	sm.shutdown = true
	sm.logger.Info("Service manager shut down completed")

	return nil
}

// IsInitialized returns whether the service manager has been initialized
func (sm *serviceManager) IsInitialized() bool {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	return sm.initialized
}
