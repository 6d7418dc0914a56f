package handlers_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"taskhub/backend/internal/apperrors"
	"taskhub/backend/internal/handlers"
	"taskhub/backend/internal/models"
	"taskhub/backend/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/gofrs/uuid"
	"gorm.io/gorm"
)

type MockTaskService struct {
	err   error
	tasks []models.Task
}

func (m *MockTaskService) CreateTask(db *gorm.DB, actor *models.User, input services.TaskInput) (*models.Task, error) {
	if m.err != nil {
		return nil, m.err
	}
	task := models.Task{
		ID:     uuid.Must(uuid.NewV4()),
		UserID: actor.ID,
		Title:  input.Title,
		Status: models.StatusPending,
	}
	m.tasks = append(m.tasks, task)
	return &task, nil
}

func (m *MockTaskService) GetTasks(db *gorm.DB, actor *models.User, filter services.TaskFilter) ([]models.Task, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.tasks, nil
}

func (m *MockTaskService) GetTaskByID(db *gorm.DB, actor *models.User, id uuid.UUID) (*models.Task, error) {
	if m.err != nil {
		return nil, m.err
	}
	return &models.Task{ID: id, UserID: actor.ID, Title: "Test Task", Status: models.StatusPending}, nil
}

func (m *MockTaskService) UpdateTask(db *gorm.DB, actor *models.User, id uuid.UUID, input services.TaskInput) (*models.Task, error) {
	if m.err != nil {
		return nil, m.err
	}
	return &models.Task{ID: id, UserID: actor.ID, Title: input.Title, Status: input.Status}, nil
}

func (m *MockTaskService) DeleteTask(db *gorm.DB, actor *models.User, id uuid.UUID) error {
	return m.err
}

func (m *MockTaskService) AttachFile(db *gorm.DB, actor *models.User, id uuid.UUID, file io.Reader, originalName string) (*models.Task, error) {
	if m.err != nil {
		return nil, m.err
	}
	return &models.Task{ID: id, UserID: actor.ID, Title: "Test Task", Attachment: "attachment-stored.txt"}, nil
}

func setupTaskRouter(mock *MockTaskService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	handler := handlers.NewTaskHandler(nil, mock)
	router := gin.New()

	// Stand-in for the auth middleware.
	router.Use(func(c *gin.Context) {
		c.Set("actor", &models.User{ID: uuid.Must(uuid.NewV4()), Username: "tester", Role: models.RoleUser})
		c.Next()
	})

	router.POST("/tasks", handler.CreateTask)
	router.GET("/tasks", handler.GetTasks)
	router.GET("/tasks/:id", handler.GetTask)
	router.PUT("/tasks/:id", handler.UpdateTask)
	router.DELETE("/tasks/:id", handler.DeleteTask)
	return router
}

func TestCreateTask(t *testing.T) {
	router := setupTaskRouter(&MockTaskService{})

	body, _ := json.Marshal(services.TaskInput{Title: "Test Task"})
	req, _ := http.NewRequest("POST", "/tasks", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Errorf("Expected status %d, got %d", http.StatusCreated, w.Code)
	}
}

func TestCreateTaskInvalidJSON(t *testing.T) {
	router := setupTaskRouter(&MockTaskService{})

	req, _ := http.NewRequest("POST", "/tasks", bytes.NewBuffer([]byte("invalid json")))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected status %d, got %d", http.StatusBadRequest, w.Code)
	}
}

func TestCreateTaskValidationErrorMapsTo400(t *testing.T) {
	router := setupTaskRouter(&MockTaskService{err: apperrors.ErrValidation})

	body, _ := json.Marshal(services.TaskInput{Title: "x"})
	req, _ := http.NewRequest("POST", "/tasks", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected status %d, got %d", http.StatusBadRequest, w.Code)
	}
}

func TestGetTaskNotFound(t *testing.T) {
	router := setupTaskRouter(&MockTaskService{err: apperrors.ErrTaskNotFound})

	req, _ := http.NewRequest("GET", "/tasks/"+uuid.Must(uuid.NewV4()).String(), nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("Expected status %d, got %d", http.StatusNotFound, w.Code)
	}
}

func TestGetTaskAccessDenied(t *testing.T) {
	router := setupTaskRouter(&MockTaskService{err: apperrors.ErrAccessDenied})

	req, _ := http.NewRequest("GET", "/tasks/"+uuid.Must(uuid.NewV4()).String(), nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusForbidden {
		t.Errorf("Expected status %d, got %d", http.StatusForbidden, w.Code)
	}
}

func TestDeleteTaskReturnsConfirmation(t *testing.T) {
	router := setupTaskRouter(&MockTaskService{})

	req, _ := http.NewRequest("DELETE", "/tasks/"+uuid.Must(uuid.NewV4()).String(), nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Expected status %d, got %d", http.StatusOK, w.Code)
	}

	var response map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if response["message"] != "Task deleted successfully" {
		t.Errorf("unexpected message %q", response["message"])
	}
}

func TestUnexpectedErrorMapsTo500WithoutDetail(t *testing.T) {
	router := setupTaskRouter(&MockTaskService{err: gorm.ErrInvalidData})

	req, _ := http.NewRequest("GET", "/tasks", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusInternalServerError {
		t.Errorf("Expected status %d, got %d", http.StatusInternalServerError, w.Code)
	}
	if bytes.Contains(w.Body.Bytes(), []byte("unsupported data")) {
		t.Error("internal error detail must not leak to the client")
	}
}

func TestTaskEndpointsRequireActor(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := handlers.NewTaskHandler(nil, &MockTaskService{})
	router := gin.New()
	// No actor middleware here.
	router.GET("/tasks", handler.GetTasks)

	req, _ := http.NewRequest("GET", "/tasks", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("Expected status %d, got %d", http.StatusUnauthorized, w.Code)
	}
}
