package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"gaindalf/internal/domain"
	"gaindalf/internal/service"
)

// LiftHandler exposes the lift catalogue.
type LiftHandler struct {
	catalogService service.CatalogService
	workoutService service.WorkoutService
}

// NewLiftHandler creates a new LiftHandler.
func NewLiftHandler(catalogService service.CatalogService, workoutService service.WorkoutService) *LiftHandler {
	return &LiftHandler{catalogService: catalogService, workoutService: workoutService}
}

// --- DTOs ---

type CreateLiftRequest struct {
	Name           string   `json:"name" binding:"required"`
	MuscleGroupIDs []string `json:"muscleGroupIds"`
}

type UpdateLiftRequest struct {
	Name           *string   `json:"name"`
	MuscleGroupIDs *[]string `json:"muscleGroupIds"`
}

type LiftResponse struct {
	ID             string   `json:"id"`
	Name           string   `json:"name"`
	MuscleGroupIDs []string `json:"muscleGroupIds"`
}

// SetResponse is the DTO for one set; reps and weight stay nullable.
type SetResponse struct {
	SetNumber int      `json:"setNumber"`
	Reps      *int     `json:"reps"`
	Weight    *float64 `json:"weight"`
}

// MapLiftToResponse converts a domain.Lift to its DTO.
func MapLiftToResponse(lift *domain.Lift) LiftResponse {
	if lift == nil {
		return LiftResponse{}
	}
	ids := make([]string, len(lift.MuscleGroupIDs))
	for i, id := range lift.MuscleGroupIDs {
		ids[i] = id.Hex()
	}
	return LiftResponse{ID: lift.ID.Hex(), Name: lift.Name, MuscleGroupIDs: ids}
}

// MapSetsToResponse converts embedded sets to DTOs.
func MapSetsToResponse(sets []domain.WorkoutSet) []SetResponse {
	responses := make([]SetResponse, len(sets))
	for i, s := range sets {
		responses[i] = SetResponse{SetNumber: s.SetNumber, Reps: s.Reps, Weight: s.Weight}
	}
	return responses
}

func parseObjectIDs(raw []string) ([]primitive.ObjectID, error) {
	ids := make([]primitive.ObjectID, len(raw))
	for i, s := range raw {
		id, err := primitive.ObjectIDFromHex(s)
		if err != nil {
			return nil, fmt.Errorf("invalid muscle group id %q", s)
		}
		ids[i] = id
	}
	return ids, nil
}

// --- Handler Methods ---

func (h *LiftHandler) List(c *gin.Context) {
	lifts, err := h.catalogService.GetLifts(c.Request.Context())
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to retrieve lifts.")
		return
	}

	responses := make([]LiftResponse, len(lifts))
	for i := range lifts {
		responses[i] = MapLiftToResponse(&lifts[i])
	}
	c.JSON(http.StatusOK, responses)
}

func (h *LiftHandler) Create(c *gin.Context) {
	var req CreateLiftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	groupIDs, err := parseObjectIDs(req.MuscleGroupIDs)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	lift, err := h.catalogService.CreateLift(c.Request.Context(), req.Name, groupIDs)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNameTaken):
			abortWithError(c, http.StatusConflict, err.Error())
		case errors.Is(err, service.ErrMuscleGroupNotFound):
			abortWithError(c, http.StatusBadRequest, err.Error())
		case errors.Is(err, service.ErrValidationFailed):
			abortWithError(c, http.StatusBadRequest, err.Error())
		default:
			abortWithError(c, http.StatusInternalServerError, "Failed to create lift.")
		}
		return
	}

	c.JSON(http.StatusCreated, MapLiftToResponse(lift))
}

func (h *LiftHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req UpdateLiftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	var groupIDs []primitive.ObjectID
	if req.MuscleGroupIDs != nil {
		parsed, err := parseObjectIDs(*req.MuscleGroupIDs)
		if err != nil {
			abortWithError(c, http.StatusBadRequest, err.Error())
			return
		}
		groupIDs = parsed
		if groupIDs == nil {
			groupIDs = []primitive.ObjectID{}
		}
	}

	lift, err := h.catalogService.UpdateLift(c.Request.Context(), id, req.Name, groupIDs)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrLiftNotFound):
			abortWithError(c, http.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrNameTaken):
			abortWithError(c, http.StatusConflict, err.Error())
		case errors.Is(err, service.ErrMuscleGroupNotFound):
			abortWithError(c, http.StatusBadRequest, err.Error())
		case errors.Is(err, service.ErrValidationFailed):
			abortWithError(c, http.StatusBadRequest, err.Error())
		default:
			abortWithError(c, http.StatusInternalServerError, "Failed to update lift.")
		}
		return
	}

	c.JSON(http.StatusOK, MapLiftToResponse(lift))
}

func (h *LiftHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.catalogService.DeleteLift(c.Request.Context(), id); err != nil {
		if errors.Is(err, service.ErrLiftNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to delete lift.")
		}
		return
	}

	c.Status(http.StatusNoContent)
}

// LastSets returns the sets from the most recent workout containing the lift.
func (h *LiftHandler) LastSets(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	sets, err := h.workoutService.LastSets(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrLiftNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to retrieve last sets.")
		}
		return
	}

	c.JSON(http.StatusOK, MapSetsToResponse(sets))
}
