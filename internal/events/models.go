package events

import (
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Event types. Every event carries exactly one of the two payload shapes.
const (
	TypeBill = "bill"
	TypeOrg  = "org"
)

var (
	// ErrEmptyHistory marks a bill event with no history entries. A bill
	// event must record at least one action; an empty history is a data
	// error, not a transient condition.
	ErrEmptyHistory = errors.New("bill event has empty history")
	// ErrUnknownType marks an event whose type tag is neither bill nor org.
	ErrUnknownType = errors.New("unknown event type")
)

// HistoryEntry is one action taken on a bill, in the order it occurred.
type HistoryEntry struct {
	Action string `bson:"action" json:"action"`
	Branch string `bson:"branch" json:"branch"`
}

// Event is the tagged bill-or-org payload written to the events collection.
// Bill events carry Court, BillID and History; org events carry OrgID,
// TestimonyContent and TestimonyUser.
type Event struct {
	ID   primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Type string             `bson:"type" json:"type"`

	Court   string         `bson:"court,omitempty" json:"court,omitempty"`
	BillID  string         `bson:"bill_id,omitempty" json:"bill_id,omitempty"`
	History []HistoryEntry `bson:"history,omitempty" json:"history,omitempty"`

	OrgID            string `bson:"org_id,omitempty" json:"org_id,omitempty"`
	TestimonyContent string `bson:"testimony_content,omitempty" json:"testimony_content,omitempty"`
	TestimonyUser    string `bson:"testimony_user,omitempty" json:"testimony_user,omitempty"`

	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
	// ProcessedAt is set once the notification fan-out has committed for
	// this event. Unset means the event is still pending.
	ProcessedAt *time.Time `bson:"processed_at,omitempty" json:"processed_at,omitempty"`
}

// Validate checks the union invariants: a recognized type tag, and for bill
// events a non-empty history.
func (e *Event) Validate() error {
	switch e.Type {
	case TypeBill:
		if len(e.History) == 0 {
			return fmt.Errorf("event %s: %w", e.ID.Hex(), ErrEmptyHistory)
		}
		return nil
	case TypeOrg:
		return nil
	default:
		return fmt.Errorf("event %s: %w: %q", e.ID.Hex(), ErrUnknownType, e.Type)
	}
}
