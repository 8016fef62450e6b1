package bills

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// BillRepository handles DB operations for the bills collection. It
// implements Querier.
type BillRepository struct {
	collection *mongo.Collection
}

// NewBillRepository creates a new repository for bills.
func NewBillRepository(db *mongo.Database) *BillRepository {
	return &BillRepository{collection: db.Collection("bills")}
}

// FetchPage returns up to pageSize bills under the given sort and filter,
// starting strictly after the cursor when one is provided.
func (r *BillRepository) FetchPage(ctx context.Context, sort Sort, filter *Filter, pageSize int, after *Cursor) ([]Bill, error) {
	clauses := orderClauses(sort, filter)

	predicates := []bson.M{}
	if fp := filterPredicate(filter); len(fp) > 0 {
		predicates = append(predicates, fp)
	}
	if after != nil {
		predicates = append(predicates, keysetPredicate(clauses, after.keys(clauses)))
	}

	query := bson.M{}
	switch len(predicates) {
	case 1:
		query = predicates[0]
	case 2:
		query = bson.M{"$and": predicates}
	}

	opts := options.Find().SetSort(sortDocument(clauses)).SetLimit(int64(pageSize))
	cursor, err := r.collection.Find(ctx, query, opts)
	if err != nil {
		return nil, err
	}
	items := []Bill{}
	if err := cursor.All(ctx, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// FindByCourtAndNumber fetches a single bill. Returns nil when absent.
func (r *BillRepository) FindByCourtAndNumber(ctx context.Context, court, number string) (*Bill, error) {
	var b Bill
	err := r.collection.FindOne(ctx, bson.M{"court": court, "number": number}).Decode(&b)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return &b, nil
}

// UpsertBill creates or replaces a bill keyed by (court, number).
func (r *BillRepository) UpsertBill(ctx context.Context, b *Bill) error {
	if b.Court == "" || b.Number == "" {
		return errors.New("bill requires court and number")
	}
	if b.ID.IsZero() {
		b.ID = primitive.NewObjectID()
	}
	filter := bson.M{"court": b.Court, "number": b.Number}
	update := bson.M{"$set": bson.M{
		"title":               b.Title,
		"primary_sponsor_id":  b.PrimarySponsorID,
		"committee_id":        b.CommitteeID,
		"city":                b.City,
		"cosponsor_count":     b.CosponsorCount,
		"testimony_count":     b.TestimonyCount,
		"latest_testimony_at": b.LatestTestimonyAt,
		"next_hearing_at":     b.NextHearingAt,
	}}
	opts := options.Update().SetUpsert(true)
	_, err := r.collection.UpdateOne(ctx, filter, update, opts)
	return err
}
