package subscription

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// SubscriptionRepository handles DB operations for topic subscriptions.
type SubscriptionRepository struct {
	collection *mongo.Collection
}

// NewSubscriptionRepository creates a new repository for subscriptions.
func NewSubscriptionRepository(db *mongo.Database) *SubscriptionRepository {
	return &SubscriptionRepository{collection: db.Collection("subscriptions")}
}

// FindByTopic fetches every subscription whose topic equals the given key.
// This is the lookup the notification fan-out resolves recipients with.
func (r *SubscriptionRepository) FindByTopic(ctx context.Context, topic string) ([]*Subscription, error) {
	cursor, err := r.collection.Find(ctx, bson.M{"topic": topic})
	if err != nil {
		return nil, err
	}
	var subs []*Subscription
	if err := cursor.All(ctx, &subs); err != nil {
		return nil, err
	}
	return subs, nil
}

// FindByUser fetches all of one user's subscriptions.
func (r *SubscriptionRepository) FindByUser(ctx context.Context, userID string) ([]*Subscription, error) {
	cursor, err := r.collection.Find(ctx, bson.M{"user_id": userID})
	if err != nil {
		return nil, err
	}
	var subs []*Subscription
	if err := cursor.All(ctx, &subs); err != nil {
		return nil, err
	}
	return subs, nil
}

// CreateSubscription inserts a new subscription into the DB.
func (r *SubscriptionRepository) CreateSubscription(ctx context.Context, s *Subscription) error {
	if s.ID.IsZero() {
		s.ID = primitive.NewObjectID()
	}
	s.CreatedAt = time.Now()
	_, err := r.collection.InsertOne(ctx, s)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return errors.New("already subscribed to this topic")
		}
		return err
	}
	return nil
}

// DeleteSubscription removes one user's subscription to a topic.
func (r *SubscriptionRepository) DeleteSubscription(ctx context.Context, userID, topic string) error {
	res, err := r.collection.DeleteOne(ctx, bson.M{"user_id": userID, "topic": topic})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return errors.New("subscription not found")
	}
	return nil
}
