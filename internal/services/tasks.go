package services

import (
	"errors"
	"fmt"
	"io"
	"log"
	"time"

	"taskhub/backend/internal/apperrors"
	"taskhub/backend/internal/models"
	"taskhub/backend/internal/storage"

	"github.com/gofrs/uuid"
	"gorm.io/gorm"
)

// TaskInput is validated as a whole on both create and update: a call
// must carry a title every time, there are no partial updates.
type TaskInput struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	Status      string `json:"status"`
	DueDate     string `json:"due_date"`
	UserID      string `json:"user_id"`
}

type TaskFilter struct {
	Status string
	UserID string
}

type TaskService interface {
	CreateTask(db *gorm.DB, actor *models.User, input TaskInput) (*models.Task, error)
	GetTasks(db *gorm.DB, actor *models.User, filter TaskFilter) ([]models.Task, error)
	GetTaskByID(db *gorm.DB, actor *models.User, id uuid.UUID) (*models.Task, error)
	UpdateTask(db *gorm.DB, actor *models.User, id uuid.UUID, input TaskInput) (*models.Task, error)
	DeleteTask(db *gorm.DB, actor *models.User, id uuid.UUID) error
	AttachFile(db *gorm.DB, actor *models.User, id uuid.UUID, file io.Reader, originalName string) (*models.Task, error)
}

type TaskServiceImpl struct {
	notifications NotificationService
	store         storage.FileStore
}

func NewTaskService(notifications NotificationService, store storage.FileStore) *TaskServiceImpl {
	return &TaskServiceImpl{notifications: notifications, store: store}
}

func (s *TaskServiceImpl) CreateTask(db *gorm.DB, actor *models.User, input TaskInput) (*models.Task, error) {
	dueDate, err := validateTaskInput(&input)
	if err != nil {
		return nil, err
	}

	ownerID := actor.ID
	if actor.IsAdmin() && input.UserID != "" {
		ownerID, err = uuid.FromString(input.UserID)
		if err != nil {
			return nil, fmt.Errorf("%w: user_id must be a valid id", apperrors.ErrValidation)
		}
	}

	status := input.Status
	if status == "" {
		status = models.StatusPending
	}

	task := models.Task{
		ID:          uuid.Must(uuid.NewV4()),
		UserID:      ownerID,
		Title:       input.Title,
		Description: input.Description,
		Status:      status,
		DueDate:     dueDate,
	}
	if err := db.Create(&task).Error; err != nil {
		return nil, err
	}

	s.emit(db, actor.ID, models.NotificationTaskCreated,
		fmt.Sprintf("Task %q created", task.Title), task.ID)

	return &task, nil
}

func (s *TaskServiceImpl) GetTasks(db *gorm.DB, actor *models.User, filter TaskFilter) ([]models.Task, error) {
	query := db.Preload("User").Preload("Comments.User").Order("created_at DESC")

	// Non-admins only ever see their own tasks, whatever they ask for.
	if !actor.IsAdmin() {
		query = query.Where("user_id = ?", actor.ID)
	} else if filter.UserID != "" {
		query = query.Where("user_id = ?", filter.UserID)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}

	var tasks []models.Task
	if err := query.Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}

func (s *TaskServiceImpl) GetTaskByID(db *gorm.DB, actor *models.User, id uuid.UUID) (*models.Task, error) {
	var task models.Task
	err := db.Preload("User").Preload("Comments.User").First(&task, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrTaskNotFound
		}
		return nil, err
	}
	if !CanAccess(actor, task.UserID) {
		return nil, apperrors.ErrAccessDenied
	}
	return &task, nil
}

func (s *TaskServiceImpl) UpdateTask(db *gorm.DB, actor *models.User, id uuid.UUID, input TaskInput) (*models.Task, error) {
	dueDate, err := validateTaskInput(&input)
	if err != nil {
		return nil, err
	}

	var task models.Task
	var oldStatus string

	// Read-check-write on the task row is kept inside one transaction
	// so a concurrent update on the same task cannot interleave.
	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&task, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.ErrTaskNotFound
			}
			return err
		}
		if !CanAccess(actor, task.UserID) {
			return apperrors.ErrAccessDenied
		}

		oldStatus = task.Status
		task.Title = input.Title
		task.Description = input.Description
		if input.Status != "" {
			task.Status = input.Status
		}
		if dueDate != nil {
			task.DueDate = dueDate
		}
		return tx.Save(&task).Error
	})
	if err != nil {
		return nil, err
	}

	if input.Status != "" && input.Status != oldStatus {
		s.emit(db, actor.ID, models.NotificationStatusChanged,
			fmt.Sprintf("Task %q changed status to %s", task.Title, task.Status), task.ID)
	}

	return &task, nil
}

// DeleteTask hard-deletes the task together with its comments and
// notifications, leaving no orphans behind.
func (s *TaskServiceImpl) DeleteTask(db *gorm.DB, actor *models.User, id uuid.UUID) error {
	return db.Transaction(func(tx *gorm.DB) error {
		var task models.Task
		if err := tx.First(&task, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.ErrTaskNotFound
			}
			return err
		}
		if !CanAccess(actor, task.UserID) {
			return apperrors.ErrAccessDenied
		}

		if err := tx.Where("task_id = ?", task.ID).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("task_id = ?", task.ID).Delete(&models.Notification{}).Error; err != nil {
			return err
		}
		return tx.Delete(&task).Error
	})
}

func (s *TaskServiceImpl) AttachFile(db *gorm.DB, actor *models.User, id uuid.UUID, file io.Reader, originalName string) (*models.Task, error) {
	var task models.Task
	if err := db.First(&task, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrTaskNotFound
		}
		return nil, err
	}
	if !CanAccess(actor, task.UserID) {
		return nil, apperrors.ErrAccessDenied
	}

	filename, err := s.store.Store(file, originalName)
	if err != nil {
		return nil, err
	}

	task.Attachment = filename
	if err := db.Save(&task).Error; err != nil {
		return nil, err
	}
	return &task, nil
}

// emit records a notification after the primary write committed.
// Failure is logged and swallowed; the mutation already succeeded.
func (s *TaskServiceImpl) emit(db *gorm.DB, recipientID uuid.UUID, notificationType, message string, taskID uuid.UUID) {
	if err := s.notifications.Emit(db, recipientID, notificationType, message, &taskID); err != nil {
		log.Printf("notification emit failed (%s): %v", notificationType, err)
	}
}

func validateTaskInput(input *TaskInput) (*time.Time, error) {
	if input.Title == "" {
		return nil, fmt.Errorf("%w: title is required", apperrors.ErrValidation)
	}
	if input.Status != "" && !models.ValidStatus(input.Status) {
		return nil, fmt.Errorf("%w: status must be one of pending, in_progress, completed", apperrors.ErrValidation)
	}
	if input.DueDate == "" {
		return nil, nil
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, input.DueDate); err == nil {
			return &t, nil
		}
	}
	return nil, fmt.Errorf("%w: due_date must be an ISO date", apperrors.ErrValidation)
}
