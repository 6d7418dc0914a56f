package handlers

import (
	"net/http"

	"taskhub/backend/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/gofrs/uuid"
	"gorm.io/gorm"
)

type CommentHandler struct {
	db             *gorm.DB
	commentService services.CommentService
}

func NewCommentHandler(db *gorm.DB, commentService services.CommentService) *CommentHandler {
	return &CommentHandler{db: db, commentService: commentService}
}

type createCommentRequest struct {
	Content string `json:"content" binding:"required"`
}

func (h *CommentHandler) CreateComment(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		abortUnauthenticated(c)
		return
	}

	var req createCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "content is required"})
		return
	}

	taskID := uuid.FromStringOrNil(c.Param("taskId"))
	comment, err := h.commentService.CreateComment(h.db, actor, taskID, req.Content)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, comment)
}

func (h *CommentHandler) GetComments(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		abortUnauthenticated(c)
		return
	}

	taskID := uuid.FromStringOrNil(c.Param("taskId"))
	comments, err := h.commentService.GetComments(h.db, actor, taskID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, comments)
}
