package subscription

import (
	"net/http"
	"strings"

	"BillTracker/internal/auth"

	"github.com/labstack/echo/v4"
)

// SubscriptionHandler handles HTTP requests for following and unfollowing topics.
type SubscriptionHandler struct {
	repo *SubscriptionRepository
}

// NewSubscriptionHandler creates a new SubscriptionHandler.
func NewSubscriptionHandler(repo *SubscriptionRepository) *SubscriptionHandler {
	return &SubscriptionHandler{repo: repo}
}

func userIDFromContext(c echo.Context) string {
	claims, ok := c.Get("user").(*auth.JWTClaims)
	if !ok || claims == nil {
		return ""
	}
	return claims.UserID
}

// validTopic accepts the two key shapes the fan-out derives: bill-{court}-{id}
// and org-{id}.
func validTopic(topic string) bool {
	if strings.HasPrefix(topic, "bill-") {
		rest := strings.TrimPrefix(topic, "bill-")
		parts := strings.SplitN(rest, "-", 2)
		return len(parts) == 2 && parts[0] != "" && parts[1] != ""
	}
	if strings.HasPrefix(topic, "org-") {
		return strings.TrimPrefix(topic, "org-") != ""
	}
	return false
}

// Subscribe follows a topic for the authenticated user.
func (h *SubscriptionHandler) Subscribe(c echo.Context) error {
	userID := userIDFromContext(c)
	if userID == "" {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Missing user claims"})
	}

	var req SubscribeRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request"})
	}
	if !validTopic(req.Topic) {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid topic"})
	}

	sub := &Subscription{Topic: req.Topic, UserID: userID}
	if err := h.repo.CreateSubscription(c.Request().Context(), sub); err != nil {
		return c.JSON(http.StatusConflict, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusCreated, sub)
}

// Unsubscribe removes the authenticated user's subscription to a topic.
func (h *SubscriptionHandler) Unsubscribe(c echo.Context) error {
	userID := userIDFromContext(c)
	if userID == "" {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Missing user claims"})
	}

	topic := c.Param("topic")
	if err := h.repo.DeleteSubscription(c.Request().Context(), userID, topic); err != nil {
		return c.JSON(http.StatusNotFound, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "Unsubscribed successfully"})
}

// List returns the authenticated user's subscriptions.
func (h *SubscriptionHandler) List(c echo.Context) error {
	userID := userIDFromContext(c)
	if userID == "" {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Missing user claims"})
	}

	subs, err := h.repo.FindByUser(c.Request().Context(), userID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to list subscriptions"})
	}
	return c.JSON(http.StatusOK, subs)
}
