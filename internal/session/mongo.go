package session

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type mongoSession struct {
	Key       string    `bson:"_id"`
	Data      Data      `bson:"data"`
	ExpiresAt time.Time `bson:"expires_at"`
}

// MongoStore keeps sessions in the "sessions" collection. A TTL index on expires_at lets
// MongoDB drop expired documents on its own.
type MongoStore struct {
	collection *mongo.Collection
}

func NewMongoStore(ctx context.Context, db *mongo.Database) (*MongoStore, error) {
	collection := db.Collection("sessions")
	_, err := collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "expires_at", Value: 1}},
		Options: options.Index().SetExpireAfterSeconds(0),
	})
	if err != nil {
		return nil, errors.Wrap(err, "creating sessions ttl index failed")
	}
	return &MongoStore{collection: collection}, nil
}

func (s *MongoStore) Get(ctx context.Context, key string) (*Data, error) {
	var doc mongoSession
	err := s.collection.FindOne(ctx, bson.M{"_id": key, "expires_at": bson.M{"$gt": time.Now().UTC()}}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, errors.Wrap(err, "finding session failed")
	}
	return &doc.Data, nil
}

func (s *MongoStore) Save(ctx context.Context, key string, data *Data, ttl time.Duration) error {
	doc := mongoSession{Key: key, Data: *data, ExpiresAt: time.Now().UTC().Add(ttl)}
	_, err := s.collection.ReplaceOne(ctx, bson.M{"_id": key}, doc, options.Replace().SetUpsert(true))
	if err != nil {
		return errors.Wrap(err, "saving session failed")
	}
	return nil
}

func (s *MongoStore) Delete(ctx context.Context, key string) error {
	if _, err := s.collection.DeleteOne(ctx, bson.M{"_id": key}); err != nil {
		return errors.Wrap(err, "deleting session failed")
	}
	return nil
}
