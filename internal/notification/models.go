package notification

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Fields is the projection of one event into the values shared by every
// notification it fans out to. Immutable once derived; per-recipient copies
// override the owning user and the displayed type.
type Fields struct {
	// Topic is the key subscribers are matched against.
	Topic string
	// Type is the event's own type (bill or org).
	Type string
	// Court and BillID identify the bill the event concerns. For org
	// events they name the companion bill whose watchers are also
	// notified.
	Court  string
	BillID string

	Header    string
	Subheader string
	BodyText  string
	Timestamp time.Time
}

// Recipient is one resolved subscriber together with the notification type
// their copy displays. Subscribers found through the companion bill query
// carry type bill regardless of the event's own type.
type Recipient struct {
	UserID string
	Type   string
}

// Notification is one per-recipient feed document. Created once by the
// fan-out; the consuming UI flips Delivered.
type Notification struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID    string             `bson:"user_id" json:"user_id"`
	Topic     string             `bson:"topic" json:"topic"`
	Type      string             `bson:"type" json:"type"`
	Court     string             `bson:"court,omitempty" json:"court,omitempty"`
	BillID    string             `bson:"bill_id,omitempty" json:"bill_id,omitempty"`
	Header    string             `bson:"header" json:"header"`
	Subheader string             `bson:"subheader" json:"subheader"`
	BodyText  string             `bson:"body_text" json:"body_text"`
	Timestamp time.Time          `bson:"timestamp" json:"timestamp"`
	Delivered bool               `bson:"delivered" json:"delivered"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
}
