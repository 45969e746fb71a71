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

type SectionHandler struct {
	sectionService  ports.SectionService
	orderingService ports.OrderingService
}

func NewSectionHandler(sectionService ports.SectionService, orderingService ports.OrderingService) *SectionHandler {
	return &SectionHandler{sectionService: sectionService, orderingService: orderingService}
}

func (h *SectionHandler) ListSections(c *gin.Context) {
	sections, err := h.sectionService.ListSections(c.Request.Context())
	if err != nil {
		respondError(c, err, apierrors.MsgFailListSections)
		return
	}

	c.JSON(http.StatusOK, mapper.ToSectionItems(sections))
}

func (h *SectionHandler) CreateSection(c *gin.Context) {
	var req dto.CreateSectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, apierrors.MsgInvalidSectionPayload)
		return
	}

	section, err := h.sectionService.CreateSection(c.Request.Context(), domain.CreateSectionInput{
		Name:  req.Name,
		Color: req.Color,
	})
	if err != nil {
		respondError(c, err, apierrors.MsgFailSaveSection)
		return
	}

	c.JSON(http.StatusCreated, mapper.ToSectionItem(section))
}

func (h *SectionHandler) UpdateSection(c *gin.Context) {
	var req dto.UpdateSectionRequest
	raw, err := bindJSON(c, &req)
	if err != nil {
		badRequest(c, apierrors.MsgInvalidSectionPayload)
		return
	}

	input, err := validation.BuildUpdateSectionInput(req, raw)
	if err != nil {
		badRequest(c, apierrors.MsgInvalidSectionPayload)
		return
	}

	section, err := h.sectionService.UpdateSection(c.Request.Context(), c.Param("id"), input)
	if err != nil {
		respondError(c, err, apierrors.MsgFailSaveSection)
		return
	}

	c.JSON(http.StatusOK, mapper.ToSectionItem(section))
}

func (h *SectionHandler) DeleteSection(c *gin.Context) {
	if err := h.sectionService.DeleteSection(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err, apierrors.MsgFailSaveSection)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *SectionHandler) ReorderSections(c *gin.Context) {
	var req dto.ReorderSectionsRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.IDs() == nil {
		badRequest(c, apierrors.MsgInvalidSectionPayload)
		return
	}

	sections, err := h.orderingService.ReorderSections(c.Request.Context(), req.IDs())
	if err != nil {
		respondError(c, err, apierrors.MsgFailSaveSection)
		return
	}

	c.JSON(http.StatusOK, mapper.ToSectionItems(sections))
}

func (h *SectionHandler) MoveSection(c *gin.Context) {
	var req dto.MoveSectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, apierrors.MsgInvalidMovePayload)
		return
	}

	section, err := h.orderingService.MoveSection(c.Request.Context(), c.Param("id"), req.AfterSectionID)
	if err != nil {
		respondError(c, err, apierrors.MsgFailSaveSection)
		return
	}

	c.JSON(http.StatusOK, mapper.ToSectionItem(section))
}
