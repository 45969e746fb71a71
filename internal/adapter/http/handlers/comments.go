package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"taskboard/internal/adapter/http/dto"
	"taskboard/internal/adapter/http/mapper"
	"taskboard/internal/adapter/http/middleware"
	"taskboard/internal/core/ports"
	"taskboard/pkg/apierrors"
)

type CommentHandler struct {
	taskService ports.TaskService
}

func NewCommentHandler(taskService ports.TaskService) *CommentHandler {
	return &CommentHandler{taskService: taskService}
}

func (h *CommentHandler) ListComments(c *gin.Context) {
	comments, err := h.taskService.ListComments(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, apierrors.MsgFailListComments)
		return
	}

	c.JSON(http.StatusOK, mapper.ToCommentItems(comments))
}

func (h *CommentHandler) AddComment(c *gin.Context) {
	var req dto.CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, apierrors.MsgInvalidCommentPayload)
		return
	}

	comment, err := h.taskService.AddComment(c.Request.Context(), middleware.GetUserID(c), c.Param("id"), req.Body)
	if err != nil {
		respondError(c, err, apierrors.MsgFailAddComment)
		return
	}

	c.JSON(http.StatusCreated, mapper.ToCommentItem(comment))
}
