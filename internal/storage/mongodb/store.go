// Package mongodb implements storage.Store using MongoDB
package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/sirosfoundation/go-ebics/internal/storage"
)

// Store implements storage.Store using MongoDB
type Store struct {
	client  *mongo.Client
	db      *mongo.Database
	records *mongo.Collection
}

// Config holds MongoDB connection settings
type Config struct {
	URI        string
	Database   string
	Collection string
}

// record is the document stored per record
type record struct {
	ID        string    `bson:"_id"`
	Kind      string    `bson:"kind"`
	RecordID  string    `bson:"record_id"`
	Data      []byte    `bson:"data"`
	UpdatedAt time.Time `bson:"updated_at"`
}

// NewStore creates a new MongoDB store
func NewStore(ctx context.Context, cfg *Config) (*Store, error) {
	// Connect to MongoDB
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, fmt.Errorf("connecting to MongoDB: %w", err)
	}

	// Verify connection
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("pinging MongoDB: %w", err)
	}

	collection := cfg.Collection
	if collection == "" {
		collection = "records"
	}
	db := client.Database(cfg.Database)
	s := &Store{
		client:  client,
		db:      db,
		records: db.Collection(collection),
	}

	if err := s.createIndexes(ctx); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("creating indexes: %w", err)
	}
	return s, nil
}

func (s *Store) createIndexes(ctx context.Context) error {
	_, err := s.records.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "kind", Value: 1}, {Key: "record_id", Value: 1}}, Options: options.Index().SetUnique(true)},
	})
	return err
}

func documentID(kind storage.Kind, id string) string {
	return string(kind) + "/" + id
}

// Put replaces the record in a single upsert
func (s *Store) Put(ctx context.Context, kind storage.Kind, id string, data []byte) error {
	if err := storage.Validate(kind, id); err != nil {
		return err
	}
	doc := record{
		ID:        documentID(kind, id),
		Kind:      string(kind),
		RecordID:  id,
		Data:      data,
		UpdatedAt: time.Now().UTC(),
	}
	_, err := s.records.ReplaceOne(ctx, bson.M{"_id": doc.ID}, doc, options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("storing %s %s: %w", kind, id, err)
	}
	return nil
}

func (s *Store) Get(ctx context.Context, kind storage.Kind, id string) ([]byte, error) {
	if err := storage.Validate(kind, id); err != nil {
		return nil, err
	}
	var doc record
	err := s.records.FindOne(ctx, bson.M{"_id": documentID(kind, id)}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("%s %s: %w", kind, id, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("loading %s %s: %w", kind, id, err)
	}
	return doc.Data, nil
}

func (s *Store) Delete(ctx context.Context, kind storage.Kind, id string) error {
	if err := storage.Validate(kind, id); err != nil {
		return err
	}
	res, err := s.records.DeleteOne(ctx, bson.M{"_id": documentID(kind, id)})
	if err != nil {
		return fmt.Errorf("deleting %s %s: %w", kind, id, err)
	}
	if res.DeletedCount == 0 {
		return fmt.Errorf("%s %s: %w", kind, id, storage.ErrNotFound)
	}
	return nil
}

func (s *Store) List(ctx context.Context, kind storage.Kind) ([]string, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "record_id", Value: 1}}).
		SetProjection(bson.M{"record_id": 1})
	cursor, err := s.records.Find(ctx, bson.M{"kind": string(kind)}, opts)
	if err != nil {
		return nil, fmt.Errorf("listing %s records: %w", kind, err)
	}
	defer cursor.Close(ctx)

	var ids []string
	for cursor.Next(ctx) {
		var doc record
		if err := cursor.Decode(&doc); err != nil {
			return nil, err
		}
		ids = append(ids, doc.RecordID)
	}
	return ids, cursor.Err()
}

// Close closes the MongoDB connection
func (s *Store) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

// Ping verifies database connectivity
func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx, nil)
}
