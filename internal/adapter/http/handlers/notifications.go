package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"taskboard/internal/adapter/http/dto"
	"taskboard/internal/adapter/http/mapper"
	"taskboard/internal/adapter/http/middleware"
	"taskboard/internal/adapter/http/validation"
	"taskboard/internal/core/ports"
	"taskboard/pkg/apierrors"
)

// PollIntervalHeader tells polling clients how often to come back.
const PollIntervalHeader = "X-Poll-Interval"

type NotificationHandler struct {
	notificationService ports.NotificationService
	pollInterval        time.Duration
}

func NewNotificationHandler(notificationService ports.NotificationService, pollInterval time.Duration) *NotificationHandler {
	return &NotificationHandler{notificationService: notificationService, pollInterval: pollInterval}
}

func (h *NotificationHandler) ListNotifications(c *gin.Context) {
	filter, err := validation.BuildNotificationFilter(c.Request.URL.Query())
	if err != nil {
		badRequest(c, apierrors.MsgInvalidQuery)
		return
	}

	notifications, err := h.notificationService.ListForUser(c.Request.Context(), middleware.GetUserID(c), filter)
	if err != nil {
		respondError(c, err, apierrors.MsgFailListNotifications)
		return
	}

	h.setPollInterval(c)
	c.JSON(http.StatusOK, mapper.ToNotificationItems(notifications))
}

func (h *NotificationHandler) UnreadCount(c *gin.Context) {
	count, err := h.notificationService.UnreadCount(c.Request.Context(), middleware.GetUserID(c))
	if err != nil {
		respondError(c, err, apierrors.MsgFailListNotifications)
		return
	}

	h.setPollInterval(c)
	c.JSON(http.StatusOK, dto.UnreadCountResponse{Count: count})
}

func (h *NotificationHandler) MarkRead(c *gin.Context) {
	err := h.notificationService.MarkRead(c.Request.Context(), middleware.GetUserID(c), c.Param("id"))
	if err != nil {
		respondError(c, err, apierrors.MsgFailMarkRead)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *NotificationHandler) MarkAllRead(c *gin.Context) {
	updated, err := h.notificationService.MarkAllRead(c.Request.Context(), middleware.GetUserID(c))
	if err != nil {
		respondError(c, err, apierrors.MsgFailMarkRead)
		return
	}

	c.JSON(http.StatusOK, dto.MarkAllReadResponse{Updated: updated})
}

func (h *NotificationHandler) setPollInterval(c *gin.Context) {
	if h.pollInterval <= 0 {
		return
	}
	c.Header(PollIntervalHeader, strconv.Itoa(int(h.pollInterval.Seconds())))
}
