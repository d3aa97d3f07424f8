package services

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/Hand2Hand-2025/volunteer-service/internal/events"
	"github.com/Hand2Hand-2025/volunteer-service/internal/validator"
)

func newTestServiceManager(t *testing.T) ServiceManager {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewDefaultServiceManager(
		nil,
		newFakeRepository(),
		logger,
		validator.New(),
		events.NewMockEventPublisher(logger),
		&captureMailer{},
	)
}

func TestServiceManager_Initialize(t *testing.T) {
	sm := newTestServiceManager(t)
	ctx := context.Background()

	if err := sm.Initialize(ctx); err != nil {
		t.Fatalf("Initialize failed: %v", err)
	}

	// All getters must return wired services after initialization
	if sm.Request() == nil || sm.Student() == nil || sm.Volunteer() == nil ||
		sm.Admin() == nil || sm.Notification() == nil {
		t.Fatal("Expected all services initialized")
	}

	if err := sm.HealthCheck(ctx); err != nil {
		t.Errorf("HealthCheck failed: %v", err)
	}

	// Initialize is idempotent
	if err := sm.Initialize(ctx); err != nil {
		t.Errorf("Second Initialize failed: %v", err)
	}
}

func TestServiceManager_PanicsBeforeInitialize(t *testing.T) {
	sm := newTestServiceManager(t)

	defer func() {
		if recover() == nil {
			t.Fatal("Expected panic for uninitialized manager")
		}
	}()
	sm.Request()
}

func TestServiceManager_Shutdown(t *testing.T) {
	sm := newTestServiceManager(t)
	ctx := context.Background()

	if err := sm.Initialize(ctx); err != nil {
		t.Fatalf("Initialize failed: %v", err)
	}
	if err := sm.Shutdown(ctx); err != nil {
		t.Fatalf("Shutdown failed: %v", err)
	}
	if err := sm.HealthCheck(ctx); err == nil {
		t.Errorf("HealthCheck must fail after shutdown")
	}
	// Shutdown is idempotent
	if err := sm.Shutdown(ctx); err != nil {
		t.Errorf("Second Shutdown failed: %v", err)
	}
}
