package models

import (
	"time"

	"github.com/gofrs/uuid"
)

const (
	NotificationTaskCreated   = "task_created"
	NotificationStatusChanged = "status_changed"
	NotificationCommentAdded  = "comment_added"
)

// Notification records a lifecycle event. UserID is the recipient,
// which is the acting user that triggered the event.
type Notification struct {
	ID        uuid.UUID  `json:"id" gorm:"primaryKey;type:uuid"`
	Message   string     `json:"message" gorm:"not null"`
	Type      string     `json:"type" gorm:"not null"`
	TaskID    *uuid.UUID `json:"task_id,omitempty" gorm:"type:uuid;index"`
	UserID    uuid.UUID  `json:"user_id" gorm:"type:uuid;not null;index"`
	IsRead    bool       `json:"is_read" gorm:"not null;default:false"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}
