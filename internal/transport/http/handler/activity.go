package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"fittrack/internal/app"
	"fittrack/internal/transport/http/response"
)

type ActivityHandler struct {
	activityService *app.ActivityService
}

// CreateActivityRequest carries DurationMinutes as a pointer so the service
// can tell an omitted field from an explicit zero; both are rejected, but
// never by a truthiness check.
type CreateActivityRequest struct {
	Name            string     `json:"name" binding:"max=64"`
	DurationMinutes *int       `json:"durationMinutes"`
	Date            *time.Time `json:"date"`
	Notes           string     `json:"notes" binding:"max=2048"`
}

func NewActivityHandler(activityService *app.ActivityService) *ActivityHandler {
	return &ActivityHandler{activityService: activityService}
}

func (h *ActivityHandler) List(c *gin.Context) {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, response.CodeUnauthorized, "invalid token payload")
		return
	}

	activities, err := h.activityService.List(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "list activities failed")
		return
	}

	response.OK(c, activities)
}

func (h *ActivityHandler) Create(c *gin.Context) {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, response.CodeUnauthorized, "invalid token payload")
		return
	}

	var req CreateActivityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "invalid request payload")
		return
	}

	activity, err := h.activityService.Create(c.Request.Context(), app.CreateActivityInput{
		UserID:          userID,
		Name:            req.Name,
		DurationMinutes: req.DurationMinutes,
		Date:            req.Date,
		Notes:           req.Notes,
	})
	if err != nil {
		switch {
		case errors.Is(err, app.ErrMissingFields), errors.Is(err, app.ErrInvalidInput):
			response.Error(c, http.StatusBadRequest, response.CodeBadRequest, err.Error())
		default:
			response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "create activity failed")
		}
		return
	}

	response.Created(c, activity)
}

func (h *ActivityHandler) Summary(c *gin.Context) {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, response.CodeUnauthorized, "invalid token payload")
		return
	}

	loc := time.UTC
	if tz := c.Query("tz"); tz != "" {
		parsed, err := time.LoadLocation(tz)
		if err != nil {
			response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "invalid tz")
			return
		}
		loc = parsed
	}

	summary, err := h.activityService.Summary(c.Request.Context(), userID, loc)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "summarize activities failed")
		return
	}

	response.OK(c, summary)
}
