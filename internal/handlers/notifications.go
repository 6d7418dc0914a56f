package handlers

import (
	"net/http"

	"taskhub/backend/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/gofrs/uuid"
	"gorm.io/gorm"
)

type NotificationHandler struct {
	db                  *gorm.DB
	notificationService services.NotificationService
}

func NewNotificationHandler(db *gorm.DB, notificationService services.NotificationService) *NotificationHandler {
	return &NotificationHandler{db: db, notificationService: notificationService}
}

func (h *NotificationHandler) GetNotifications(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		abortUnauthenticated(c)
		return
	}

	notifications, err := h.notificationService.ListForUser(h.db, actor.ID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, notifications)
}

func (h *NotificationHandler) MarkAsRead(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		abortUnauthenticated(c)
		return
	}

	id := uuid.FromStringOrNil(c.Param("id"))
	if _, err := h.notificationService.MarkRead(h.db, actor, id); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Notification marked as read"})
}
