package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/Hand2Hand-2025/volunteer-service/internal/config"
	"github.com/Hand2Hand-2025/volunteer-service/internal/models"
)

func roleGateRouter(callerRole models.UserRole, required ...models.UserRole) *gin.Engine {
	gin.SetMode(gin.TestMode)
	cam := NewCasdoorAuthMiddleware(config.CasdoorConfig{}, nil)

	router := gin.New()
	router.GET("/protected",
		func(c *gin.Context) {
			if callerRole != "" {
				c.Set("user_role", callerRole)
			}
			c.Next()
		},
		cam.RequireRoleMiddleware(required...),
		func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"ok": true})
		})
	return router
}

func TestRequireRoleMiddleware(t *testing.T) {
	t.Run("matching role passes", func(t *testing.T) {
		router := roleGateRouter(models.RoleVolunteer, models.RoleVolunteer)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		router.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d", w.Code)
		}
	})

	t.Run("wrong role is denied with details", func(t *testing.T) {
		router := roleGateRouter(models.RoleVolunteer, models.RoleStudent)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		router.ServeHTTP(w, req)

		if w.Code != http.StatusForbidden {
			t.Fatalf("Expected 403, got %d", w.Code)
		}

		var body models.ErrorResponse
		if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
			t.Fatalf("Failed to parse body: %v", err)
		}
		if body.UserRole != models.RoleVolunteer {
			t.Errorf("403 body must name the caller role, got %q", body.UserRole)
		}
		if len(body.RequiredRoles) != 1 || body.RequiredRoles[0] != models.RoleStudent {
			t.Errorf("403 body must list required roles, got %v", body.RequiredRoles)
		}
	})

	t.Run("admin gets no implicit bypass", func(t *testing.T) {
		router := roleGateRouter(models.RoleAdmin, models.RoleStudent)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		router.ServeHTTP(w, req)

		if w.Code != http.StatusForbidden {
			t.Fatalf("Admin must not bypass role gates, got %d", w.Code)
		}
	})

	t.Run("missing role is denied", func(t *testing.T) {
		router := roleGateRouter("", models.RoleStudent)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		router.ServeHTTP(w, req)

		if w.Code != http.StatusForbidden {
			t.Fatalf("Expected 403 without a role, got %d", w.Code)
		}
	})
}
