// Package mongo is implementation of storage interface over a mongodb collection.
package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Decentr-net/notos/internal/storage"
)

type document struct {
	Key       string    `bson:"_id"`
	Value     []byte    `bson:"value"`
	UpdatedAt time.Time `bson:"updated_at"`
}

type mgo struct {
	c *mongo.Collection
}

// New creates new instance of mongo storage. Every key is a document of the collection.
func New(c *mongo.Collection) storage.Storage {
	return mgo{c: c}
}

// Connect connects to uri and returns a storage over db.collection.
func Connect(ctx context.Context, uri, db, collection string) (storage.Storage, func(context.Context) error, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to mongo: %w", err)
	}

	return New(client.Database(db).Collection(collection)), client.Disconnect, nil
}

func (m mgo) Get(ctx context.Context, key string) ([]byte, error) {
	var d document

	if err := m.c.FindOne(ctx, bson.M{"_id": key}).Decode(&d); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get %s: %w", key, err)
	}

	return d.Value, nil
}

func (m mgo) Put(ctx context.Context, key string, value []byte) error {
	d := document{Key: key, Value: value, UpdatedAt: time.Now().UTC()}

	if _, err := m.c.ReplaceOne(ctx, bson.M{"_id": key}, d, options.Replace().SetUpsert(true)); err != nil {
		return fmt.Errorf("failed to put %s: %w", key, err)
	}

	return nil
}

func (m mgo) Delete(ctx context.Context, key string) error {
	if _, err := m.c.DeleteOne(ctx, bson.M{"_id": key}); err != nil {
		return fmt.Errorf("failed to delete %s: %w", key, err)
	}

	return nil
}

func (m mgo) Ping(ctx context.Context) error {
	if err := m.c.Database().Client().Ping(ctx, nil); err != nil {
		return fmt.Errorf("failed to ping mongo: %w", err)
	}

	return nil
}
