package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"taskboard/internal/adapter/http/dto"
	"taskboard/internal/adapter/http/mapper"
	"taskboard/internal/adapter/http/validation"
	"taskboard/internal/core/domain"
	"taskboard/internal/core/ports"
	"taskboard/pkg/apierrors"
)

// ConfigHandler serves one config kind; routes mount one per kind.
type ConfigHandler struct {
	configService ports.ConfigService
	kind          domain.ConfigKind
}

func NewConfigHandler(configService ports.ConfigService, kind domain.ConfigKind) *ConfigHandler {
	return &ConfigHandler{configService: configService, kind: kind}
}

func (h *ConfigHandler) List(c *gin.Context) {
	entries, err := h.configService.List(c.Request.Context(), h.kind)
	if err != nil {
		respondError(c, err, apierrors.MsgFailListConfig)
		return
	}

	c.JSON(http.StatusOK, mapper.ToConfigItems(entries))
}

func (h *ConfigHandler) Create(c *gin.Context) {
	var req dto.CreateConfigRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, apierrors.MsgInvalidConfigPayload)
		return
	}

	input, err := validation.BuildCreateConfigInput(req)
	if err != nil {
		badRequest(c, apierrors.MsgInvalidConfigPayload)
		return
	}

	entry, err := h.configService.Create(c.Request.Context(), h.kind, input)
	if err != nil {
		respondError(c, err, apierrors.MsgFailSaveConfig)
		return
	}

	c.JSON(http.StatusCreated, mapper.ToConfigItem(entry))
}

func (h *ConfigHandler) Update(c *gin.Context) {
	var req dto.UpdateConfigRequest
	raw, err := bindJSON(c, &req)
	if err != nil {
		badRequest(c, apierrors.MsgInvalidConfigPayload)
		return
	}

	input, err := validation.BuildUpdateConfigInput(req, raw)
	if err != nil {
		badRequest(c, apierrors.MsgInvalidConfigPayload)
		return
	}

	entry, err := h.configService.Update(c.Request.Context(), h.kind, c.Param("id"), input)
	if err != nil {
		respondError(c, err, apierrors.MsgFailSaveConfig)
		return
	}

	c.JSON(http.StatusOK, mapper.ToConfigItem(entry))
}

func (h *ConfigHandler) Delete(c *gin.Context) {
	if err := h.configService.Delete(c.Request.Context(), h.kind, c.Param("id")); err != nil {
		respondError(c, err, apierrors.MsgFailSaveConfig)
		return
	}

	c.Status(http.StatusNoContent)
}
