package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"taskhub/backend/internal/config"
	"taskhub/backend/internal/middleware"
	"taskhub/backend/internal/models"
	"taskhub/backend/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/gofrs/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupAuthMiddleware(t *testing.T) (*gin.Engine, *services.AuthServiceImpl, *models.User) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, _ := db.DB()
	sqlDB.SetMaxOpenConns(1)
	if err := db.AutoMigrate(&models.User{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	user := &models.User{ID: uuid.Must(uuid.NewV4()), Username: "alice", Email: "a@x.com", Password: "h", Role: models.RoleUser}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("create user: %v", err)
	}

	authService := services.NewAuthService(config.AuthConfig{
		JWTSecret:      "test-secret",
		AccessTokenTTL: time.Hour,
		BCryptCost:     bcrypt.MinCost,
	})

	router := gin.New()
	router.Use(middleware.Authenticate(db, authService))
	router.GET("/whoami", func(c *gin.Context) {
		actor := c.MustGet("actor").(*models.User)
		c.JSON(http.StatusOK, gin.H{"username": actor.Username})
	})
	return router, authService, user
}

func TestAuthenticateMissingHeader(t *testing.T) {
	router, _, _ := setupAuthMiddleware(t)

	req, _ := http.NewRequest("GET", "/whoami", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("Expected status %d, got %d", http.StatusUnauthorized, w.Code)
	}
}

func TestAuthenticateWrongScheme(t *testing.T) {
	router, _, _ := setupAuthMiddleware(t)

	req, _ := http.NewRequest("GET", "/whoami", nil)
	req.Header.Set("Authorization", "Basic abc123")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("Expected status %d, got %d", http.StatusUnauthorized, w.Code)
	}
}

func TestAuthenticateInvalidToken(t *testing.T) {
	router, _, _ := setupAuthMiddleware(t)

	req, _ := http.NewRequest("GET", "/whoami", nil)
	req.Header.Set("Authorization", "Bearer not.a.token")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("Expected status %d, got %d", http.StatusUnauthorized, w.Code)
	}
}

func TestAuthenticateValidToken(t *testing.T) {
	router, authService, user := setupAuthMiddleware(t)

	token, err := authService.GenerateToken(user.ID)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	req, _ := http.NewRequest("GET", "/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status %d, got %d (%s)", http.StatusOK, w.Code, w.Body.String())
	}
	if body := w.Body.String(); body != `{"username":"alice"}` {
		t.Errorf("unexpected body %s", body)
	}
}

func TestAuthenticateTokenForDeletedUser(t *testing.T) {
	router, authService, _ := setupAuthMiddleware(t)

	token, err := authService.GenerateToken(uuid.Must(uuid.NewV4()))
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	req, _ := http.NewRequest("GET", "/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("Expected status %d, got %d", http.StatusUnauthorized, w.Code)
	}
}
