// Package storage persists token analysis records in MongoDB. The analysis
// pipeline itself has no dependency on this layer; records are written only
// by the HTTP surface after a pipeline run.
package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
)

// CollectionName is the Mongo collection holding token records.
const CollectionName = "tokens"

var (
	// ErrNotFound is returned when no record matches the given ID.
	ErrNotFound = errors.New("token record not found")

	// ErrInvalidID is returned when an identifier is not a valid ObjectID.
	ErrInvalidID = errors.New("invalid token record id")
)

// Record is one stored token with its last verification outcome. Secret
// holds the caller-provided secret reference used during verification, not
// a key the pipeline depends on.
type Record struct {
	ID        bson.ObjectID `bson:"_id,omitempty" json:"id"`
	Token     string        `bson:"token" json:"token"`
	Name      string        `bson:"name" json:"name"`
	Valid     *bool         `bson:"valid,omitempty" json:"valid"`
	Secret    string        `bson:"secret,omitempty" json:"secret"`
	ErrorKind string        `bson:"error_kind,omitempty" json:"error_kind,omitempty"`
	CreatedAt time.Time     `bson:"created_at" json:"created_at"`
}

// Repository provides CRUD access to token records.
type Repository struct {
	collection *mongo.Collection
}

// NewRepository binds a repository to the tokens collection of db.
func NewRepository(db *mongo.Database) *Repository {
	return &Repository{collection: db.Collection(CollectionName)}
}

// List returns all records, newest first.
func (r *Repository) List(ctx context.Context) ([]Record, error) {
	cursor, err := r.collection.Find(ctx, bson.D{})
	if err != nil {
		return nil, fmt.Errorf("failed to list token records: %w", err)
	}

	var records []Record
	if err := cursor.All(ctx, &records); err != nil {
		return nil, fmt.Errorf("failed to decode token records: %w", err)
	}
	return records, nil
}

// Get returns the record with the given hex ObjectID.
func (r *Repository) Get(ctx context.Context, id string) (Record, error) {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return Record{}, fmt.Errorf("%w: %q", ErrInvalidID, id)
	}

	var record Record
	err = r.collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&record)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return Record{}, ErrNotFound
	}
	if err != nil {
		return Record{}, fmt.Errorf("failed to get token record: %w", err)
	}
	return record, nil
}

// Create inserts a record and returns it with the generated ID and
// creation time set.
func (r *Repository) Create(ctx context.Context, record Record) (Record, error) {
	if record.ID.IsZero() {
		record.ID = bson.NewObjectID()
	}
	if record.CreatedAt.IsZero() {
		record.CreatedAt = time.Now().UTC()
	}

	if _, err := r.collection.InsertOne(ctx, record); err != nil {
		return Record{}, fmt.Errorf("failed to create token record: %w", err)
	}
	return record, nil
}

// Update applies the given field changes to the record with the given ID.
func (r *Repository) Update(ctx context.Context, id string, changes bson.M) error {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidID, id)
	}

	result, err := r.collection.UpdateByID(ctx, oid, bson.M{"$set": changes})
	if err != nil {
		return fmt.Errorf("failed to update token record: %w", err)
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes the record with the given ID.
func (r *Repository) Delete(ctx context.Context, id string) error {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidID, id)
	}

	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("failed to delete token record: %w", err)
	}
	if result.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
