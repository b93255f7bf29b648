package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"gaindalf/internal/domain"
	"gaindalf/internal/service"
)

// SettingsHandler manages muscle group conflict pairs and manual backups.
type SettingsHandler struct {
	catalogService service.CatalogService
	backupService  service.BackupService
}

func NewSettingsHandler(catalogService service.CatalogService, backupService service.BackupService) *SettingsHandler {
	return &SettingsHandler{catalogService: catalogService, backupService: backupService}
}

type CreateConflictRequest struct {
	GroupAID string `json:"groupAId" binding:"required"`
	GroupBID string `json:"groupBId" binding:"required"`
}

type ConflictResponse struct {
	ID         string `json:"id"`
	GroupAID   string `json:"groupAId"`
	GroupAName string `json:"groupAName"`
	GroupBID   string `json:"groupBId"`
	GroupBName string `json:"groupBName"`
}

type BackupResponse struct {
	Key string `json:"key"`
}

func (h *SettingsHandler) mapConflictToResponse(conflict *domain.MuscleGroupConflict, groupNames map[string]string) ConflictResponse {
	return ConflictResponse{
		ID:         conflict.ID.Hex(),
		GroupAID:   conflict.GroupAID.Hex(),
		GroupAName: groupNames[conflict.GroupAID.Hex()],
		GroupBID:   conflict.GroupBID.Hex(),
		GroupBName: groupNames[conflict.GroupBID.Hex()],
	}
}

func (h *SettingsHandler) groupNames(c *gin.Context) (map[string]string, bool) {
	groups, err := h.catalogService.GetMuscleGroups(c.Request.Context())
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to retrieve muscle groups.")
		return nil, false
	}
	names := make(map[string]string, len(groups))
	for _, g := range groups {
		names[g.ID.Hex()] = g.Name
	}
	return names, true
}

// ListConflicts returns all configured conflict pairs with group names.
func (h *SettingsHandler) ListConflicts(c *gin.Context) {
	conflicts, err := h.catalogService.GetConflicts(c.Request.Context())
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to retrieve conflicts.")
		return
	}
	names, ok := h.groupNames(c)
	if !ok {
		return
	}

	responses := make([]ConflictResponse, len(conflicts))
	for i := range conflicts {
		responses[i] = h.mapConflictToResponse(&conflicts[i], names)
	}
	c.JSON(http.StatusOK, responses)
}

func (h *SettingsHandler) CreateConflict(c *gin.Context) {
	var req CreateConflictRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}
	ids, err := parseObjectIDs([]string{req.GroupAID, req.GroupBID})
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid group id format")
		return
	}

	conflict, err := h.catalogService.CreateConflict(c.Request.Context(), ids[0], ids[1])
	if err != nil {
		switch {
		case errors.Is(err, service.ErrMuscleGroupNotFound):
			abortWithError(c, http.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrSelfConflict):
			abortWithError(c, http.StatusBadRequest, err.Error())
		case errors.Is(err, service.ErrConflictExists):
			abortWithError(c, http.StatusConflict, err.Error())
		default:
			abortWithError(c, http.StatusInternalServerError, "Failed to create conflict.")
		}
		return
	}

	names, ok := h.groupNames(c)
	if !ok {
		return
	}
	c.JSON(http.StatusCreated, h.mapConflictToResponse(conflict, names))
}

func (h *SettingsHandler) DeleteConflict(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.catalogService.DeleteConflict(c.Request.Context(), id); err != nil {
		if errors.Is(err, service.ErrConflictNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to delete conflict.")
		}
		return
	}

	c.Status(http.StatusNoContent)
}

// TriggerBackup runs an immediate export to object storage.
func (h *SettingsHandler) TriggerBackup(c *gin.Context) {
	key, err := h.backupService.Run(c.Request.Context())
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to run backup.")
		return
	}
	c.JSON(http.StatusOK, BackupResponse{Key: key})
}
