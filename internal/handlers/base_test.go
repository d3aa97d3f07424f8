package handlers

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/Hand2Hand-2025/volunteer-service/internal/services"
	"github.com/Hand2Hand-2025/volunteer-service/internal/utils"
)

func TestHandleServiceError(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := NewBaseHandler(utils.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))

	tests := []struct {
		name string
		err  error
		want int
	}{
		{"request not found", services.ErrRequestNotFound, http.StatusNotFound},
		{"profile not found", services.ErrProfileNotFound, http.StatusNotFound},
		{"profile required", services.ErrProfileRequired, http.StatusBadRequest},
		{"invalid status", services.ErrInvalidStatus, http.StatusBadRequest},
		// Lifecycle guard failures are client errors, not conflicts
		{"already resolved", services.ErrAlreadyResolved, http.StatusBadRequest},
		{"invalid state transition", services.ErrInvalidStateTransition, http.StatusBadRequest},
		{"profile exists", services.ErrProfileExists, http.StatusBadRequest},
		{"ownership failure", services.NewPermissionError("student-2", 1, "request", "cancel", "not the owning student"), http.StatusForbidden},
		{"unexpected error", errors.New("connection reset"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

			h.handleServiceError(c, tt.err)

			if w.Code != tt.want {
				t.Errorf("Expected %d for %v, got %d", tt.want, tt.err, w.Code)
			}
		})
	}
}
