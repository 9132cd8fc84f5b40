package repository

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	mongoDatabase          = "transferadmin"
	mongoSessionCollection = "admin_session"
	mongoSessionIndex      = "session_key_unique"
)

type sessionDoc struct {
	SessionID string    `bson:"session_id"`
	Key       string    `bson:"key"`
	Value     string    `bson:"value"`
	UpdatedAt time.Time `bson:"updated_at"`
}

type MongoSessionRepo struct {
	DB *mongo.Client
}

func NewMongoSessionRepo(db *mongo.Client) *MongoSessionRepo {
	return &MongoSessionRepo{DB: db}
}

func (r *MongoSessionRepo) collection() *mongo.Collection {
	return r.DB.Database(mongoDatabase).Collection(mongoSessionCollection)
}

func sessionIndex() mongo.IndexModel {
	return mongo.IndexModel{
		Keys:    bson.D{{Key: "session_id", Value: 1}, {Key: "key", Value: 1}},
		Options: options.Index().SetUnique(true).SetName(mongoSessionIndex),
	}
}

// EnsureIndexes makes (session_id, key) unique so concurrent upserts in Set
// cannot leave duplicate documents. Creating an existing index is a no-op.
func (r *MongoSessionRepo) EnsureIndexes(ctx context.Context) error {
	_, err := r.collection().Indexes().CreateOne(ctx, sessionIndex())
	return err
}

func (r *MongoSessionRepo) Get(ctx context.Context, sessionID, key string) (string, error) {
	var doc sessionDoc
	err := r.collection().
		FindOne(ctx, bson.M{"session_id": sessionID, "key": key}).
		Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return "", ErrNotFound
		}
		return "", err
	}
	return doc.Value, nil
}

func (r *MongoSessionRepo) Set(ctx context.Context, sessionID, key, value string) error {
	_, err := r.collection().UpdateOne(ctx,
		bson.M{"session_id": sessionID, "key": key},
		bson.M{"$set": bson.M{"value": value, "updated_at": time.Now().UTC()}},
		options.Update().SetUpsert(true),
	)
	return err
}

func (r *MongoSessionRepo) Delete(ctx context.Context, sessionID, key string) error {
	_, err := r.collection().DeleteOne(ctx, bson.M{"session_id": sessionID, "key": key})
	return err
}
