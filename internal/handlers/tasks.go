package handlers

import (
	"net/http"

	"taskhub/backend/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/gofrs/uuid"
	"gorm.io/gorm"
)

type TaskHandler struct {
	db          *gorm.DB
	taskService services.TaskService
}

func NewTaskHandler(db *gorm.DB, taskService services.TaskService) *TaskHandler {
	return &TaskHandler{db: db, taskService: taskService}
}

func (h *TaskHandler) CreateTask(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		abortUnauthenticated(c)
		return
	}

	var input services.TaskInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	task, err := h.taskService.CreateTask(h.db, actor, input)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, task)
}

func (h *TaskHandler) GetTasks(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		abortUnauthenticated(c)
		return
	}

	filter := services.TaskFilter{
		Status: c.Query("status"),
		UserID: c.Query("user_id"),
	}

	tasks, err := h.taskService.GetTasks(h.db, actor, filter)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, tasks)
}

func (h *TaskHandler) GetTask(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		abortUnauthenticated(c)
		return
	}

	id := uuid.FromStringOrNil(c.Param("id"))
	task, err := h.taskService.GetTaskByID(h.db, actor, id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, task)
}

func (h *TaskHandler) UpdateTask(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		abortUnauthenticated(c)
		return
	}

	var input services.TaskInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	id := uuid.FromStringOrNil(c.Param("id"))
	task, err := h.taskService.UpdateTask(h.db, actor, id, input)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, task)
}

func (h *TaskHandler) DeleteTask(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		abortUnauthenticated(c)
		return
	}

	id := uuid.FromStringOrNil(c.Param("id"))
	if err := h.taskService.DeleteTask(h.db, actor, id); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Task deleted successfully"})
}

func (h *TaskHandler) UploadAttachment(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		abortUnauthenticated(c)
		return
	}

	fileHeader, err := c.FormFile("attachment")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "No file uploaded"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}
	defer file.Close()

	id := uuid.FromStringOrNil(c.Param("id"))
	task, err := h.taskService.AttachFile(h.db, actor, id, file, fileHeader.Filename)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":  "File uploaded successfully",
		"filename": task.Attachment,
	})
}
