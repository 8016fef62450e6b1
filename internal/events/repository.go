package events

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EventRepository handles DB operations for the events collection.
type EventRepository struct {
	collection *mongo.Collection
}

// NewEventRepository creates a new repository for events.
func NewEventRepository(db *mongo.Database) *EventRepository {
	return &EventRepository{collection: db.Collection("events")}
}

// CreateEvent inserts a new event into the DB.
func (r *EventRepository) CreateEvent(ctx context.Context, e *Event) error {
	if e.ID.IsZero() {
		e.ID = primitive.NewObjectID()
	}
	if e.UpdatedAt.IsZero() {
		e.UpdatedAt = time.Now()
	}
	_, err := r.collection.InsertOne(ctx, e)
	return err
}

// FindUnprocessed fetches events the fan-out has not handled yet, oldest first.
func (r *EventRepository) FindUnprocessed(ctx context.Context, limit int64) ([]*Event, error) {
	filter := bson.M{"processed_at": bson.M{"$exists": false}}
	opts := options.Find().SetSort(bson.D{{Key: "updated_at", Value: 1}}).SetLimit(limit)
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	var evts []*Event
	if err := cursor.All(ctx, &evts); err != nil {
		return nil, err
	}
	return evts, nil
}

// FindByID fetches the latest snapshot of one event. Returns nil if the
// document no longer exists (deleted between poll and processing).
func (r *EventRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*Event, error) {
	var e Event
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&e)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return &e, nil
}

// MarkProcessed stamps the event as handled by the fan-out.
func (r *EventRepository) MarkProcessed(ctx context.Context, id primitive.ObjectID) error {
	update := bson.M{"$set": bson.M{"processed_at": time.Now()}}
	res, err := r.collection.UpdateByID(ctx, id, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return errors.New("event not found")
	}
	return nil
}
