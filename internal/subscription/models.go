package subscription

import (
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// BillTopic builds the topic key for a specific bill in a court.
func BillTopic(court, billID string) string {
	return fmt.Sprintf("bill-%s-%s", court, billID)
}

// OrgTopic builds the topic key for an organization.
func OrgTopic(orgID string) string {
	return fmt.Sprintf("org-%s", orgID)
}

// Subscription links a user to a topic they receive notifications for.
type Subscription struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Topic     string             `bson:"topic" json:"topic"`
	UserID    string             `bson:"user_id" json:"user_id"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
}

// SubscribeRequest represents the request to follow a bill or an org.
type SubscribeRequest struct {
	Topic string `json:"topic"`
}
