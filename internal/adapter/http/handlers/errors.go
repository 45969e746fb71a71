package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"go.uber.org/zap"

	"taskboard/internal/adapter/http/middleware"
	"taskboard/internal/core/domain"
	"taskboard/pkg/apierrors"
)

// retryAfterSeconds is advertised with 503 responses.
const retryAfterSeconds = "2"

type errorMapping struct {
	target error
	status int
	msgKey string
}

// errorMappings is checked in order; specific sentinels come before the
// families they wrap.
var errorMappings = []errorMapping{
	{domain.ErrTaskNotFound, http.StatusNotFound, apierrors.MsgTaskNotFound},
	{domain.ErrSectionNotFound, http.StatusNotFound, apierrors.MsgSectionNotFound},
	{domain.ErrStatusNotFound, http.StatusNotFound, apierrors.MsgStatusNotFound},
	{domain.ErrPriorityNotFound, http.StatusNotFound, apierrors.MsgPriorityNotFound},
	{domain.ErrNotificationNotFound, http.StatusNotFound, apierrors.MsgNotificationNotFound},
	{domain.ErrNotFound, http.StatusNotFound, apierrors.MsgNotFound},
	{domain.ErrConfigInUse, http.StatusConflict, apierrors.MsgConfigInUse},
	{domain.ErrInvalidReorderTarget, http.StatusUnprocessableEntity, apierrors.MsgInvalidReorderTarget},
	{domain.ErrUnauthorized, http.StatusForbidden, apierrors.MsgForbidden},
	{domain.ErrDependencyUnavailable, http.StatusServiceUnavailable, apierrors.MsgDependencyUnavailable},
	{domain.ErrDefaultConfigDelete, http.StatusBadRequest, apierrors.MsgDefaultConfigDelete},
	{domain.ErrDefaultConfigDemote, http.StatusBadRequest, apierrors.MsgDefaultConfigDemote},
	{domain.ErrInvalidOrderedIDs, http.StatusBadRequest, apierrors.MsgInvalidOrderedIDs},
	{domain.ErrEmptyComment, http.StatusBadRequest, apierrors.MsgInvalidCommentPayload},
	{domain.ErrConflictingAnchors, http.StatusBadRequest, apierrors.MsgInvalidMovePayload},
	{domain.ErrValidation, http.StatusBadRequest, apierrors.MsgValidation},
}

// respondError writes the localized API error for err. Unknown errors are
// logged and reported with fallbackMsg as a 500.
func respondError(c *gin.Context, err error, fallbackMsg string) {
	lang := middleware.GetLang(c)

	status, msgKey := http.StatusInternalServerError, fallbackMsg
	for _, m := range errorMappings {
		if errors.Is(err, m.target) {
			status, msgKey = m.status, m.msgKey
			break
		}
	}

	switch {
	case status == http.StatusServiceUnavailable:
		c.Header("Retry-After", retryAfterSeconds)
		zap.L().Warn("dependency unavailable", zap.String("path", c.FullPath()), zap.Error(err))
	case status >= http.StatusInternalServerError:
		zap.L().Error("request failed", zap.String("path", c.FullPath()), zap.Error(err))
	}

	c.JSON(status, apierrors.CreateError(status, msgKey, lang))
}

func badRequest(c *gin.Context, msgKey string) {
	c.JSON(http.StatusBadRequest, apierrors.CreateError(http.StatusBadRequest, msgKey, middleware.GetLang(c)))
}

// bindJSON decodes and validates the body into req and also returns the raw
// field map so handlers can tell an explicit null from an absent field.
func bindJSON(c *gin.Context, req any) (map[string]json.RawMessage, error) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		return nil, err
	}
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, err
	}
	if err := binding.JSON.BindBody(body, req); err != nil {
		return nil, err
	}
	return raw, nil
}
