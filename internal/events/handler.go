package events

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
)

// EventHandler handles HTTP requests for publishing events.
type EventHandler struct {
	repo *EventRepository
}

// NewEventHandler creates a new EventHandler.
func NewEventHandler(repo *EventRepository) *EventHandler {
	return &EventHandler{repo: repo}
}

// PublishEvent allows admins to write a bill or org event. The notification
// fan-out picks it up on the next poll.
func (h *EventHandler) PublishEvent(c echo.Context) error {
	var e Event
	if err := c.Bind(&e); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request"})
	}

	if err := e.Validate(); err != nil {
		if errors.Is(err, ErrEmptyHistory) || errors.Is(err, ErrUnknownType) {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to validate event"})
	}

	if err := h.repo.CreateEvent(c.Request().Context(), &e); err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to publish event"})
	}
	return c.JSON(http.StatusCreated, map[string]string{"id": e.ID.Hex(), "message": "Event published successfully"})
}
