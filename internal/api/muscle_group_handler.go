package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"gaindalf/internal/domain"
	"gaindalf/internal/service"
)

// MuscleGroupHandler exposes the muscle group catalogue.
type MuscleGroupHandler struct {
	catalogService service.CatalogService
}

// NewMuscleGroupHandler creates a new MuscleGroupHandler.
func NewMuscleGroupHandler(catalogService service.CatalogService) *MuscleGroupHandler {
	return &MuscleGroupHandler{catalogService: catalogService}
}

// --- DTOs ---

type MuscleGroupRequest struct {
	Name string `json:"name" binding:"required"`
}

type MuscleGroupResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// MapMuscleGroupToResponse converts a domain.MuscleGroup to its DTO.
func MapMuscleGroupToResponse(group *domain.MuscleGroup) MuscleGroupResponse {
	if group == nil {
		return MuscleGroupResponse{}
	}
	return MuscleGroupResponse{ID: group.ID.Hex(), Name: group.Name}
}

// --- Handler Methods ---

func (h *MuscleGroupHandler) List(c *gin.Context) {
	groups, err := h.catalogService.GetMuscleGroups(c.Request.Context())
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to retrieve muscle groups.")
		return
	}

	responses := make([]MuscleGroupResponse, len(groups))
	for i := range groups {
		responses[i] = MapMuscleGroupToResponse(&groups[i])
	}
	c.JSON(http.StatusOK, responses)
}

func (h *MuscleGroupHandler) Create(c *gin.Context) {
	var req MuscleGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	group, err := h.catalogService.CreateMuscleGroup(c.Request.Context(), req.Name)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNameTaken):
			abortWithError(c, http.StatusConflict, err.Error())
		case errors.Is(err, service.ErrValidationFailed):
			abortWithError(c, http.StatusBadRequest, err.Error())
		default:
			abortWithError(c, http.StatusInternalServerError, "Failed to create muscle group.")
		}
		return
	}

	c.JSON(http.StatusCreated, MapMuscleGroupToResponse(group))
}

func (h *MuscleGroupHandler) Rename(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req MuscleGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	group, err := h.catalogService.RenameMuscleGroup(c.Request.Context(), id, req.Name)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrMuscleGroupNotFound):
			abortWithError(c, http.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrNameTaken):
			abortWithError(c, http.StatusConflict, err.Error())
		default:
			abortWithError(c, http.StatusInternalServerError, "Failed to rename muscle group.")
		}
		return
	}

	c.JSON(http.StatusOK, MapMuscleGroupToResponse(group))
}

func (h *MuscleGroupHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.catalogService.DeleteMuscleGroup(c.Request.Context(), id); err != nil {
		if errors.Is(err, service.ErrMuscleGroupNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to delete muscle group.")
		}
		return
	}

	c.Status(http.StatusNoContent)
}
