package models

import (
	"time"

	"github.com/gofrs/uuid"
)

// Comment is immutable once created; it only disappears when its task
// is deleted.
type Comment struct {
	ID        uuid.UUID `json:"id" gorm:"primaryKey;type:uuid"`
	Content   string    `json:"content" gorm:"not null"`
	TaskID    uuid.UUID `json:"task_id" gorm:"type:uuid;not null;index"`
	UserID    uuid.UUID `json:"user_id" gorm:"type:uuid;not null"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	User *User `json:"user,omitempty" gorm:"foreignKey:UserID"`
}
