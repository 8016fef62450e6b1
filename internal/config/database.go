package config

import (
	"context"
	"log"
	"os"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/fx"
)

type MongoDBConfig struct {
	URI      string
	Database string
}

func NewMongoDBConfig() *MongoDBConfig {
	uri := os.Getenv("MONGO_URI")
	if uri == "" {
		log.Fatal("DB uri not set")
	}
	dbName := os.Getenv("MONGO_DATABASE")
	if dbName == "" {
		dbName = "bill_tracker"
	}
	return &MongoDBConfig{URI: uri, Database: dbName}
}

type MongoDBClient struct {
	Client   *mongo.Client
	Database *mongo.Database
}

func NewMongoDBClient(lc fx.Lifecycle, config *MongoDBConfig) (*MongoDBClient, *mongo.Database, error) {
	clientOptions := options.Client().ApplyURI(config.URI)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	err = client.Ping(ctx, nil)
	if err != nil {
		log.Fatalf("Failed to ping MongoDB: %v", err)
	}

	log.Println("Connected to MongoDB")

	lc.Append(fx.Hook{
		OnStart: func(startCtx context.Context) error {
			EnsureIndexes(startCtx, client.Database(config.Database))
			return nil
		},
		OnStop: func(stopCtx context.Context) error {
			log.Println("Closing MongoDB connection ...")
			return client.Disconnect(stopCtx)
		},
	})
	db := client.Database(config.Database)
	return &MongoDBClient{Client: client, Database: db}, db, nil
}

// EnsureIndexes creates the indexes the query paths depend on: the topic lookup
// for subscription fan-out, the unique (court, number) key for bills, and the
// compound sort indexes backing keyset pagination.
func EnsureIndexes(ctx context.Context, db *mongo.Database) {
	ctx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()

	subIndexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "topic", Value: 1}}},
		{
			Keys:    bson.D{{Key: "topic", Value: 1}, {Key: "user_id", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	}
	if _, err := db.Collection("subscriptions").Indexes().CreateMany(ctx, subIndexes); err != nil {
		log.Fatal("Failed to create subscription indexes:", err)
	}

	billIndexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "court", Value: 1}, {Key: "number", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{Keys: bson.D{{Key: "cosponsor_count", Value: -1}, {Key: "number", Value: 1}}},
		{Keys: bson.D{{Key: "latest_testimony_at", Value: -1}, {Key: "number", Value: 1}}},
		{Keys: bson.D{{Key: "testimony_count", Value: -1}, {Key: "number", Value: 1}}},
		{Keys: bson.D{{Key: "next_hearing_at", Value: -1}, {Key: "number", Value: 1}}},
	}
	if _, err := db.Collection("bills").Indexes().CreateMany(ctx, billIndexes); err != nil {
		log.Fatal("Failed to create bill indexes:", err)
	}

	notifIndexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "created_at", Value: -1}}},
	}
	if _, err := db.Collection("notifications").Indexes().CreateMany(ctx, notifIndexes); err != nil {
		log.Fatal("Failed to create notification indexes:", err)
	}

	log.Println("MongoDB indexes ensured")
}

func (c *MongoDBClient) GetCollection(collectionName string) *mongo.Collection {
	return c.Database.Collection(collectionName)
}
