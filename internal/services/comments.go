package services

import (
	"errors"
	"fmt"
	"log"

	"taskhub/backend/internal/apperrors"
	"taskhub/backend/internal/models"

	"github.com/gofrs/uuid"
	"gorm.io/gorm"
)

type CommentService interface {
	CreateComment(db *gorm.DB, actor *models.User, taskID uuid.UUID, content string) (*models.Comment, error)
	GetComments(db *gorm.DB, actor *models.User, taskID uuid.UUID) ([]models.Comment, error)
}

type CommentServiceImpl struct {
	notifications NotificationService
}

func NewCommentService(notifications NotificationService) *CommentServiceImpl {
	return &CommentServiceImpl{notifications: notifications}
}

// CreateComment is gated on the parent task's owner, not on who wrote
// earlier comments: the owner and admins may comment, nobody else.
func (s *CommentServiceImpl) CreateComment(db *gorm.DB, actor *models.User, taskID uuid.UUID, content string) (*models.Comment, error) {
	if content == "" {
		return nil, fmt.Errorf("%w: content is required", apperrors.ErrValidation)
	}

	task, err := loadTaskForAccess(db, actor, taskID)
	if err != nil {
		return nil, err
	}

	comment := models.Comment{
		ID:      uuid.Must(uuid.NewV4()),
		Content: content,
		TaskID:  task.ID,
		UserID:  actor.ID,
	}
	if err := db.Create(&comment).Error; err != nil {
		return nil, err
	}

	taskRef := task.ID
	if err := s.notifications.Emit(db, actor.ID, models.NotificationCommentAdded,
		fmt.Sprintf("New comment on task %q", task.Title), &taskRef); err != nil {
		log.Printf("notification emit failed (%s): %v", models.NotificationCommentAdded, err)
	}

	return &comment, nil
}

func (s *CommentServiceImpl) GetComments(db *gorm.DB, actor *models.User, taskID uuid.UUID) ([]models.Comment, error) {
	if _, err := loadTaskForAccess(db, actor, taskID); err != nil {
		return nil, err
	}

	var comments []models.Comment
	err := db.Preload("User").
		Where("task_id = ?", taskID).
		Order("created_at DESC").
		Find(&comments).Error
	return comments, err
}

// loadTaskForAccess checks existence before ownership, so probing a
// missing task id always answers not-found.
func loadTaskForAccess(db *gorm.DB, actor *models.User, taskID uuid.UUID) (*models.Task, error) {
	var task models.Task
	if err := db.First(&task, "id = ?", taskID).Error; err != nil {
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
