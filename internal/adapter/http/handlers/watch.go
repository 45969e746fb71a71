package handlers

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"taskboard/internal/adapter/http/dto"
	"taskboard/internal/adapter/http/middleware"
	"taskboard/internal/adapter/http/validation"
	"taskboard/internal/core/ports"
	"taskboard/pkg/apierrors"
)

type WatchHandler struct {
	watcherService ports.WatcherService
}

func NewWatchHandler(watcherService ports.WatcherService) *WatchHandler {
	return &WatchHandler{watcherService: watcherService}
}

func (h *WatchHandler) GetWatch(c *gin.Context) {
	watching, err := h.watcherService.IsWatching(c.Request.Context(), c.Param("id"), middleware.GetUserID(c))
	if err != nil {
		respondError(c, err, apierrors.MsgFailWatch)
		return
	}

	c.JSON(http.StatusOK, dto.WatchResponse{Watching: watching})
}

// SetWatch applies {action: watch|unwatch|toggle}; an empty body toggles.
func (h *WatchHandler) SetWatch(c *gin.Context) {
	var req dto.WatchRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		badRequest(c, apierrors.MsgInvalidWatchPayload)
		return
	}

	action, err := validation.ParseWatchAction(req)
	if err != nil {
		badRequest(c, apierrors.MsgInvalidWatchPayload)
		return
	}

	ctx := c.Request.Context()
	taskID, userID := c.Param("id"), middleware.GetUserID(c)

	var watching bool
	switch action {
	case validation.WatchOn:
		watching, err = h.watcherService.SetWatch(ctx, taskID, userID, true)
	case validation.WatchOff:
		watching, err = h.watcherService.SetWatch(ctx, taskID, userID, false)
	default:
		watching, err = h.watcherService.ToggleWatch(ctx, taskID, userID)
	}
	if err != nil {
		respondError(c, err, apierrors.MsgFailWatch)
		return
	}

	c.JSON(http.StatusOK, dto.WatchResponse{Watching: watching})
}
