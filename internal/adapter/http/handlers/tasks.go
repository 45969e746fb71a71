package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"taskboard/internal/adapter/http/dto"
	"taskboard/internal/adapter/http/mapper"
	"taskboard/internal/adapter/http/middleware"
	"taskboard/internal/adapter/http/validation"
	"taskboard/internal/core/ports"
	"taskboard/pkg/apierrors"
)

type TaskHandler struct {
	taskService     ports.TaskService
	orderingService ports.OrderingService
}

func NewTaskHandler(taskService ports.TaskService, orderingService ports.OrderingService) *TaskHandler {
	return &TaskHandler{taskService: taskService, orderingService: orderingService}
}

func (h *TaskHandler) ListTasks(c *gin.Context) {
	filter, err := validation.BuildTaskFilter(c.Request.URL.Query())
	if err != nil {
		badRequest(c, apierrors.MsgInvalidQuery)
		return
	}

	tasks, err := h.taskService.ListTasks(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err, apierrors.MsgFailListTask)
		return
	}

	c.JSON(http.StatusOK, mapper.ToTaskItems(tasks))
}

func (h *TaskHandler) GetTask(c *gin.Context) {
	task, err := h.taskService.GetTask(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, apierrors.MsgFailListTask)
		return
	}

	c.JSON(http.StatusOK, mapper.ToTaskItem(task))
}

func (h *TaskHandler) CreateTask(c *gin.Context) {
	var req dto.CreateTaskRequest
	raw, err := bindJSON(c, &req)
	if err != nil {
		badRequest(c, apierrors.MsgInvalidTaskPayload)
		return
	}

	input, err := validation.BuildCreateTaskInput(req, raw)
	if err != nil {
		badRequest(c, apierrors.MsgInvalidTaskPayload)
		return
	}

	task, err := h.taskService.CreateTask(c.Request.Context(), middleware.GetUserID(c), input)
	if err != nil {
		respondError(c, err, apierrors.MsgFailCreateTask)
		return
	}

	c.JSON(http.StatusCreated, mapper.ToTaskItem(task))
}

func (h *TaskHandler) UpdateTask(c *gin.Context) {
	var req dto.UpdateTaskRequest
	raw, err := bindJSON(c, &req)
	if err != nil {
		badRequest(c, apierrors.MsgInvalidTaskPayload)
		return
	}

	input, err := validation.BuildUpdateTaskInput(req, raw)
	if err != nil {
		badRequest(c, apierrors.MsgInvalidTaskPayload)
		return
	}

	task, err := h.taskService.UpdateTask(c.Request.Context(), middleware.GetUserID(c), c.Param("id"), input)
	if err != nil {
		respondError(c, err, apierrors.MsgFailUpdateTask)
		return
	}

	c.JSON(http.StatusOK, mapper.ToTaskItem(task))
}

func (h *TaskHandler) DeleteTask(c *gin.Context) {
	if err := h.taskService.DeleteTask(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err, apierrors.MsgFailDeleteTask)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *TaskHandler) AssignSection(c *gin.Context) {
	var req dto.AssignSectionRequest
	raw, err := bindJSON(c, &req)
	if err != nil {
		badRequest(c, apierrors.MsgInvalidMovePayload)
		return
	}

	sectionID, err := validation.BuildAssignSection(req, raw)
	if err != nil {
		badRequest(c, apierrors.MsgInvalidMovePayload)
		return
	}

	task, err := h.taskService.AssignSection(c.Request.Context(), c.Param("id"), sectionID)
	if err != nil {
		respondError(c, err, apierrors.MsgFailMoveTask)
		return
	}

	c.JSON(http.StatusOK, mapper.ToTaskItem(task))
}

func (h *TaskHandler) MoveTask(c *gin.Context) {
	var req dto.MoveTaskRequest
	if _, err := bindJSON(c, &req); err != nil {
		badRequest(c, apierrors.MsgInvalidMovePayload)
		return
	}

	input, err := validation.BuildMoveTaskInput(req)
	if err != nil {
		badRequest(c, apierrors.MsgInvalidMovePayload)
		return
	}

	task, err := h.orderingService.MoveTask(c.Request.Context(), c.Param("id"), input)
	if err != nil {
		respondError(c, err, apierrors.MsgFailMoveTask)
		return
	}

	c.JSON(http.StatusOK, mapper.ToTaskItem(task))
}
