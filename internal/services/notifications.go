package services

import (
	"errors"

	"taskhub/backend/internal/apperrors"
	"taskhub/backend/internal/models"

	"github.com/gofrs/uuid"
	"gorm.io/gorm"
)

// feedLimit caps the inbox at the 20 most recent entries.
const feedLimit = 20

type NotificationService interface {
	Emit(db *gorm.DB, recipientID uuid.UUID, notificationType, message string, taskID *uuid.UUID) error
	ListForUser(db *gorm.DB, userID uuid.UUID) ([]models.Notification, error)
	MarkRead(db *gorm.DB, actor *models.User, id uuid.UUID) (*models.Notification, error)
}

type NotificationServiceImpl struct{}

func NewNotificationService() *NotificationServiceImpl {
	return &NotificationServiceImpl{}
}

// Emit records a lifecycle event for its recipient. Callers invoke it
// after the primary mutation has been persisted; a failure here must
// not revert that mutation.
func (s *NotificationServiceImpl) Emit(db *gorm.DB, recipientID uuid.UUID, notificationType, message string, taskID *uuid.UUID) error {
	notification := models.Notification{
		ID:      uuid.Must(uuid.NewV4()),
		Message: message,
		Type:    notificationType,
		TaskID:  taskID,
		UserID:  recipientID,
	}
	return db.Create(&notification).Error
}

func (s *NotificationServiceImpl) ListForUser(db *gorm.DB, userID uuid.UUID) ([]models.Notification, error) {
	var notifications []models.Notification
	err := db.Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(feedLimit).
		Find(&notifications).Error
	return notifications, err
}

// MarkRead flips is_read for the recipient. Unlike the task policy
// there is no admin override here; only the recipient may touch their
// inbox. Marking an already-read notification again is a no-op.
func (s *NotificationServiceImpl) MarkRead(db *gorm.DB, actor *models.User, id uuid.UUID) (*models.Notification, error) {
	var notification models.Notification
	if err := db.First(&notification, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotificationNotFound
		}
		return nil, err
	}

	if notification.UserID != actor.ID {
		return nil, apperrors.ErrAccessDenied
	}

	if !notification.IsRead {
		notification.IsRead = true
		if err := db.Save(&notification).Error; err != nil {
			return nil, err
		}
	}
	return &notification, nil
}
