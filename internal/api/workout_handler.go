package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"gaindalf/internal/domain"
	"gaindalf/internal/engine"
	"gaindalf/internal/service"
)

// dateLayout is the ISO date format used on the wire for workout dates.
const dateLayout = "2006-01-02"

// WorkoutHandler exposes workouts, the lift occurrences inside them, their
// sets, and the suggestion endpoint.
type WorkoutHandler struct {
	workoutService    service.WorkoutService
	catalogService    service.CatalogService
	suggestionService service.SuggestionService
}

// NewWorkoutHandler creates a new WorkoutHandler.
func NewWorkoutHandler(
	workoutService service.WorkoutService,
	catalogService service.CatalogService,
	suggestionService service.SuggestionService,
) *WorkoutHandler {
	return &WorkoutHandler{
		workoutService:    workoutService,
		catalogService:    catalogService,
		suggestionService: suggestionService,
	}
}

// --- DTOs ---

type WorkoutLiftResponse struct {
	ID           string        `json:"id"`
	LiftID       string        `json:"liftId"`
	LiftName     string        `json:"liftName"`
	DisplayOrder int           `json:"displayOrder"`
	Sets         []SetResponse `json:"sets"`
}

type WorkoutResponse struct {
	ID           string                `json:"id"`
	Date         string                `json:"date"`
	Subtitle     string                `json:"subtitle"`
	WorkoutLifts []WorkoutLiftResponse `json:"workoutLifts"`
}

type WorkoutSummaryResponse struct {
	ID        string   `json:"id"`
	Date      string   `json:"date"`
	Subtitle  string   `json:"subtitle"`
	LiftNames []string `json:"liftNames"`
}

type SubtitleUpdateRequest struct {
	Subtitle string `json:"subtitle"`
}

type AddLiftRequest struct {
	LiftID       string `json:"liftId" binding:"required"`
	DisplayOrder int    `json:"displayOrder"`
}

type SetCreateRequest struct {
	Reps   *int     `json:"reps"`
	Weight *float64 `json:"weight"`
}

type SetUpdateRequest struct {
	Reps   *int     `json:"reps"`
	Weight *float64 `json:"weight"`
}

type SuggestionResponse struct {
	MuscleGroupID   string        `json:"muscleGroupId"`
	MuscleGroupName string        `json:"muscleGroupName"`
	LiftID          string        `json:"liftId"`
	LiftName        string        `json:"liftName"`
	PreviousSets    []SetResponse `json:"previousSets"`
}

// --- Helpers ---

// liftNames builds a lift id -> name lookup for response assembly.
func (h *WorkoutHandler) liftNames(c *gin.Context) (map[string]string, bool) {
	lifts, err := h.catalogService.GetLifts(c.Request.Context())
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to retrieve lifts.")
		return nil, false
	}
	names := make(map[string]string, len(lifts))
	for _, l := range lifts {
		names[l.ID.Hex()] = l.Name
	}
	return names, true
}

func mapWorkoutLiftToResponse(occurrence *domain.WorkoutLift, liftNames map[string]string) WorkoutLiftResponse {
	return WorkoutLiftResponse{
		ID:           occurrence.ID.Hex(),
		LiftID:       occurrence.LiftID.Hex(),
		LiftName:     liftNames[occurrence.LiftID.Hex()],
		DisplayOrder: occurrence.DisplayOrder,
		Sets:         MapSetsToResponse(occurrence.Sets),
	}
}

func (h *WorkoutHandler) buildWorkoutResponse(c *gin.Context, workout *domain.Workout) (WorkoutResponse, bool) {
	occurrences, err := h.workoutService.GetWorkoutLifts(c.Request.Context(), workout.ID)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to retrieve workout lifts.")
		return WorkoutResponse{}, false
	}
	names, ok := h.liftNames(c)
	if !ok {
		return WorkoutResponse{}, false
	}

	liftResponses := make([]WorkoutLiftResponse, len(occurrences))
	for i := range occurrences {
		liftResponses[i] = mapWorkoutLiftToResponse(&occurrences[i], names)
	}
	return WorkoutResponse{
		ID:           workout.ID.Hex(),
		Date:         workout.Date.Format(dateLayout),
		Subtitle:     workout.Subtitle,
		WorkoutLifts: liftResponses,
	}, true
}

// --- Workout Methods ---

// List returns workout summaries, newest first.
func (h *WorkoutHandler) List(c *gin.Context) {
	workouts, err := h.workoutService.GetWorkouts(c.Request.Context())
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to retrieve workouts.")
		return
	}
	names, ok := h.liftNames(c)
	if !ok {
		return
	}

	summaries := make([]WorkoutSummaryResponse, len(workouts))
	for i, w := range workouts {
		occurrences, err := h.workoutService.GetWorkoutLifts(c.Request.Context(), w.ID)
		if err != nil {
			abortWithError(c, http.StatusInternalServerError, "Failed to retrieve workout lifts.")
			return
		}
		liftNames := make([]string, 0, len(occurrences))
		for _, occ := range occurrences {
			if name, exists := names[occ.LiftID.Hex()]; exists {
				liftNames = append(liftNames, name)
			}
		}
		summaries[i] = WorkoutSummaryResponse{
			ID:        w.ID.Hex(),
			Date:      w.Date.Format(dateLayout),
			Subtitle:  w.Subtitle,
			LiftNames: liftNames,
		}
	}
	c.JSON(http.StatusOK, summaries)
}

func (h *WorkoutHandler) Create(c *gin.Context) {
	workout, err := h.workoutService.CreateWorkout(c.Request.Context())
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to create workout.")
		return
	}

	response, ok := h.buildWorkoutResponse(c, workout)
	if !ok {
		return
	}
	c.JSON(http.StatusCreated, response)
}

func (h *WorkoutHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	workout, err := h.workoutService.GetWorkoutByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrWorkoutNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to retrieve workout.")
		}
		return
	}

	response, ok := h.buildWorkoutResponse(c, workout)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, response)
}

func (h *WorkoutHandler) UpdateSubtitle(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req SubtitleUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	workout, err := h.workoutService.UpdateSubtitle(c.Request.Context(), id, req.Subtitle)
	if err != nil {
		if errors.Is(err, service.ErrWorkoutNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to update workout.")
		}
		return
	}

	response, ok := h.buildWorkoutResponse(c, workout)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, response)
}

func (h *WorkoutHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.workoutService.DeleteWorkout(c.Request.Context(), id); err != nil {
		if errors.Is(err, service.ErrWorkoutNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to delete workout.")
		}
		return
	}

	c.Status(http.StatusNoContent)
}

// --- Lift Occurrence Methods ---

func (h *WorkoutHandler) AddLift(c *gin.Context) {
	workoutID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req AddLiftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}
	liftID, err := parseObjectIDs([]string{req.LiftID})
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid liftId format")
		return
	}

	occurrence, err := h.workoutService.AddLiftToWorkout(c.Request.Context(), workoutID, liftID[0], req.DisplayOrder)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrWorkoutNotFound), errors.Is(err, service.ErrLiftNotFound):
			abortWithError(c, http.StatusNotFound, err.Error())
		default:
			abortWithError(c, http.StatusInternalServerError, "Failed to add lift to workout.")
		}
		return
	}

	names, ok := h.liftNames(c)
	if !ok {
		return
	}
	c.JSON(http.StatusCreated, mapWorkoutLiftToResponse(occurrence, names))
}

func (h *WorkoutHandler) RemoveLift(c *gin.Context) {
	workoutID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	occurrenceID, ok := parseIDParam(c, "wlId")
	if !ok {
		return
	}

	if err := h.workoutService.RemoveLiftFromWorkout(c.Request.Context(), workoutID, occurrenceID); err != nil {
		if errors.Is(err, service.ErrWorkoutLiftNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to remove lift from workout.")
		}
		return
	}

	c.Status(http.StatusNoContent)
}

// --- Set Methods ---

func (h *WorkoutHandler) AddSet(c *gin.Context) {
	occurrenceID, ok := parseIDParam(c, "wlId")
	if !ok {
		return
	}

	var req SetCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	set, err := h.workoutService.AddSet(c.Request.Context(), occurrenceID, req.Reps, req.Weight)
	if err != nil {
		if errors.Is(err, service.ErrWorkoutLiftNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to add set.")
		}
		return
	}

	c.JSON(http.StatusCreated, SetResponse{SetNumber: set.SetNumber, Reps: set.Reps, Weight: set.Weight})
}

func (h *WorkoutHandler) UpdateSet(c *gin.Context) {
	occurrenceID, ok := parseIDParam(c, "wlId")
	if !ok {
		return
	}
	setNumber, err := parseIntParam(c, "setNumber")
	if err != nil {
		return
	}

	var req SetUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	set, err := h.workoutService.UpdateSet(c.Request.Context(), occurrenceID, setNumber, req.Reps, req.Weight)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrWorkoutLiftNotFound), errors.Is(err, service.ErrSetNotFound):
			abortWithError(c, http.StatusNotFound, err.Error())
		default:
			abortWithError(c, http.StatusInternalServerError, "Failed to update set.")
		}
		return
	}

	c.JSON(http.StatusOK, SetResponse{SetNumber: set.SetNumber, Reps: set.Reps, Weight: set.Weight})
}

func (h *WorkoutHandler) DeleteSet(c *gin.Context) {
	occurrenceID, ok := parseIDParam(c, "wlId")
	if !ok {
		return
	}
	setNumber, err := parseIntParam(c, "setNumber")
	if err != nil {
		return
	}

	if err := h.workoutService.DeleteSet(c.Request.Context(), occurrenceID, setNumber); err != nil {
		switch {
		case errors.Is(err, service.ErrWorkoutLiftNotFound), errors.Is(err, service.ErrSetNotFound):
			abortWithError(c, http.StatusNotFound, err.Error())
		default:
			abortWithError(c, http.StatusInternalServerError, "Failed to delete set.")
		}
		return
	}

	c.Status(http.StatusNoContent)
}

// --- Suggestion Methods ---

// Suggest recommends the next muscle group and lift for the workout.
func (h *WorkoutHandler) Suggest(c *gin.Context) {
	workoutID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	result, err := h.suggestionService.Suggest(c.Request.Context(), workoutID)
	if err != nil {
		h.abortSuggestError(c, err)
		return
	}
	c.JSON(http.StatusOK, mapSuggestionToResponse(result))
}

// SuggestForGroup recommends the next lift within a chosen muscle group.
func (h *WorkoutHandler) SuggestForGroup(c *gin.Context) {
	workoutID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	groupID, ok := parseIDParam(c, "groupId")
	if !ok {
		return
	}

	result, err := h.suggestionService.SuggestForGroup(c.Request.Context(), workoutID, groupID)
	if err != nil {
		h.abortSuggestError(c, err)
		return
	}
	c.JSON(http.StatusOK, mapSuggestionToResponse(result))
}

func (h *WorkoutHandler) abortSuggestError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrWorkoutNotFound),
		errors.Is(err, service.ErrMuscleGroupNotFound),
		errors.Is(err, engine.ErrNoMuscleGroups),
		errors.Is(err, engine.ErrNoLiftsInGroup):
		abortWithError(c, http.StatusNotFound, err.Error())
	default:
		abortWithError(c, http.StatusInternalServerError, "Failed to compute suggestion.")
	}
}

func mapSuggestionToResponse(result *service.SuggestionResult) SuggestionResponse {
	return SuggestionResponse{
		MuscleGroupID:   result.MuscleGroupID.Hex(),
		MuscleGroupName: result.MuscleGroupName,
		LiftID:          result.LiftID.Hex(),
		LiftName:        result.LiftName,
		PreviousSets:    MapSetsToResponse(result.PreviousSets),
	}
}
