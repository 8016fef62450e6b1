package notification

import (
	"context"
	"fmt"
	"log"
	"time"

	"BillTracker/internal/events"
	"BillTracker/internal/subscription"
)

// SubscriberFinder resolves subscriptions by topic key. Satisfied by
// subscription.SubscriptionRepository.
type SubscriberFinder interface {
	FindByTopic(ctx context.Context, topic string) ([]*subscription.Subscription, error)
}

// BatchWriter stages and commits notification documents as one batch.
// Satisfied by NotificationRepository.
type BatchWriter interface {
	InsertBatch(ctx context.Context, notifications []*Notification) error
}

// FanoutService turns one event into notification documents for every
// subscriber of the event's topic (and, for non-bill events, of the
// companion bill's topic).
type FanoutService struct {
	finder SubscriberFinder
	writer BatchWriter
	echo   *EmailEcho
}

// NewFanoutService creates a new FanoutService. echo may be nil to disable
// the email copy.
func NewFanoutService(finder SubscriberFinder, writer BatchWriter, echo *EmailEcho) *FanoutService {
	return &FanoutService{finder: finder, writer: writer, echo: echo}
}

// DeriveFields classifies the event and projects it into notification
// fields. Returns events.ErrEmptyHistory or events.ErrUnknownType when the
// payload violates the union invariants.
func DeriveFields(e *events.Event) (Fields, error) {
	if err := e.Validate(); err != nil {
		return Fields{}, err
	}

	switch e.Type {
	case events.TypeBill:
		last := e.History[len(e.History)-1]
		return Fields{
			Topic:     subscription.BillTopic(e.Court, e.BillID),
			Type:      events.TypeBill,
			Court:     e.Court,
			BillID:    e.BillID,
			Header:    e.BillID,
			Subheader: last.Branch,
			BodyText:  last.Action,
			Timestamp: e.UpdatedAt,
		}, nil
	default:
		return Fields{
			Topic:     subscription.OrgTopic(e.OrgID),
			Type:      events.TypeOrg,
			Court:     e.Court,
			BillID:    e.BillID,
			Header:    e.OrgID,
			Subheader: e.TestimonyUser,
			BodyText:  e.TestimonyContent,
			Timestamp: e.UpdatedAt,
		}, nil
	}
}

// ResolveRecipients queries the direct topic, and for non-bill events also
// the companion bill topic. Companion matches display type bill; direct
// matches keep the event's type. A user subscribed to both topics receives
// two notifications.
func (s *FanoutService) ResolveRecipients(ctx context.Context, f Fields) ([]Recipient, error) {
	direct, err := s.finder.FindByTopic(ctx, f.Topic)
	if err != nil {
		return nil, fmt.Errorf("resolve subscribers for %s: %w", f.Topic, err)
	}

	recipients := make([]Recipient, 0, len(direct))
	for _, sub := range direct {
		recipients = append(recipients, Recipient{UserID: sub.UserID, Type: f.Type})
	}

	if f.Type != events.TypeBill {
		companionTopic := subscription.BillTopic(f.Court, f.BillID)
		companion, err := s.finder.FindByTopic(ctx, companionTopic)
		if err != nil {
			return nil, fmt.Errorf("resolve subscribers for %s: %w", companionTopic, err)
		}
		for _, sub := range companion {
			recipients = append(recipients, Recipient{UserID: sub.UserID, Type: events.TypeBill})
		}
	}
	return recipients, nil
}

// BuildNotifications produces one feed document per recipient from the
// shared fields. Pure; the caller commits the result as a batch.
func BuildNotifications(f Fields, recipients []Recipient) []*Notification {
	now := time.Now()
	notifications := make([]*Notification, 0, len(recipients))
	for _, r := range recipients {
		notifications = append(notifications, &Notification{
			UserID:    r.UserID,
			Topic:     f.Topic,
			Type:      r.Type,
			Court:     f.Court,
			BillID:    f.BillID,
			Header:    f.Header,
			Subheader: f.Subheader,
			BodyText:  f.BodyText,
			Timestamp: f.Timestamp,
			Delivered: false,
			CreatedAt: now,
		})
	}
	return notifications
}

// Process runs the full fan-out for one event snapshot: derive, resolve,
// build, commit. A nil event (deleted before processing) is a logged no-op.
// Validation errors abort before anything is written.
func (s *FanoutService) Process(ctx context.Context, e *events.Event) error {
	if e == nil {
		log.Println("Fan-out: no event data, skipping")
		return nil
	}
	log.Printf("Fan-out: received event %s (type=%s)", e.ID.Hex(), e.Type)

	fields, err := DeriveFields(e)
	if err != nil {
		return err
	}
	log.Printf("Fan-out: derived topic %s for event %s", fields.Topic, e.ID.Hex())

	recipients, err := s.ResolveRecipients(ctx, fields)
	if err != nil {
		return err
	}

	notifications := BuildNotifications(fields, recipients)
	for _, n := range notifications {
		log.Printf("Fan-out: dispatching %s notification to user %s", n.Type, n.UserID)
	}
	if len(notifications) == 0 {
		return nil
	}

	if err := s.writer.InsertBatch(ctx, notifications); err != nil {
		return fmt.Errorf("commit notification batch: %w", err)
	}

	if s.echo != nil {
		s.echo.Send(ctx, notifications)
	}
	return nil
}
