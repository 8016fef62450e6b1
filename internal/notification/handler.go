package notification

import (
	"net/http"

	"BillTracker/internal/auth"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// NotificationHandler handles HTTP requests for the notification feed.
type NotificationHandler struct {
	repo *NotificationRepository
}

// NewNotificationHandler creates a new NotificationHandler.
func NewNotificationHandler(repo *NotificationRepository) *NotificationHandler {
	return &NotificationHandler{repo: repo}
}

func userIDFromContext(c echo.Context) string {
	claims, ok := c.Get("user").(*auth.JWTClaims)
	if !ok || claims == nil {
		return ""
	}
	return claims.UserID
}

// List returns the authenticated user's notification feed.
func (h *NotificationHandler) List(c echo.Context) error {
	userID := userIDFromContext(c)
	if userID == "" {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Missing user claims"})
	}

	notifications, err := h.repo.FindByUser(c.Request().Context(), userID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to list notifications"})
	}
	return c.JSON(http.StatusOK, notifications)
}

// MarkDelivered flips the delivered flag on one of the user's notifications.
func (h *NotificationHandler) MarkDelivered(c echo.Context) error {
	userID := userIDFromContext(c)
	if userID == "" {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Missing user claims"})
	}

	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid notification id"})
	}

	n, err := h.repo.GetByID(c.Request().Context(), id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to fetch notification"})
	}
	if n == nil {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "Notification not found"})
	}
	if n.UserID != userID {
		return c.JSON(http.StatusForbidden, map[string]string{"error": "Not allowed to modify this notification"})
	}

	if err := h.repo.MarkDelivered(c.Request().Context(), id); err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to mark notification delivered"})
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "Notification marked delivered"})
}
