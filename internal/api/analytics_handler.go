package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"gaindalf/internal/engine"
	"gaindalf/internal/service"
)

// AnalyticsHandler serves the normalized strength and endurance index series.
type AnalyticsHandler struct {
	progressService service.ProgressService
}

func NewAnalyticsHandler(progressService service.ProgressService) *AnalyticsHandler {
	return &AnalyticsHandler{progressService: progressService}
}

type IndexPointResponse struct {
	WorkoutID      string   `json:"workoutId"`
	Date           string   `json:"date"`
	StrengthIndex  *float64 `json:"strengthIndex"`
	EnduranceIndex *float64 `json:"enduranceIndex"`
}

func mapIndexPointsToResponse(points []engine.IndexPoint) []IndexPointResponse {
	responses := make([]IndexPointResponse, len(points))
	for i, p := range points {
		responses[i] = IndexPointResponse{
			WorkoutID:      p.WorkoutID.Hex(),
			Date:           p.Date.Format(dateLayout),
			StrengthIndex:  p.Strength,
			EnduranceIndex: p.Endurance,
		}
	}
	return responses
}

// Progress returns the overall index series across all workouts.
func (h *AnalyticsHandler) Progress(c *gin.Context) {
	points, err := h.progressService.GetProgress(c.Request.Context())
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to compute progress.")
		return
	}
	c.JSON(http.StatusOK, mapIndexPointsToResponse(points))
}

// LiftHistory returns the index series restricted to one lift.
func (h *AnalyticsHandler) LiftHistory(c *gin.Context) {
	liftID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	points, err := h.progressService.GetLiftHistory(c.Request.Context(), liftID)
	if err != nil {
		if errors.Is(err, service.ErrLiftNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to compute lift history.")
		}
		return
	}
	c.JSON(http.StatusOK, mapIndexPointsToResponse(points))
}
