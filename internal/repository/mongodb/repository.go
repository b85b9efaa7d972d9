package mongodb

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/ovolab/eggcost/internal/store"
)

// DocumentRepository implements store.DocumentStore on top of MongoDB.
// Records are keyed by ObjectID hex strings and stamped with createdAt and
// updatedAt times on the way in.
type DocumentRepository struct {
	client *mongo.Client
	dbName string
}

// NewDocumentRepository connects to MongoDB and verifies the connection.
func NewDocumentRepository(ctx context.Context, uri string, dbName string) (*DocumentRepository, error) {
	clientOptions := options.Client().ApplyURI(uri)
	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	return &DocumentRepository{client: client, dbName: dbName}, nil
}

func (r *DocumentRepository) collection(name string) *mongo.Collection {
	return r.client.Database(r.dbName).Collection(name)
}

// Create inserts a record and returns its server-assigned id.
func (r *DocumentRepository) Create(ctx context.Context, collection string, doc any) (string, error) {
	payload, err := toDocument(doc)
	if err != nil {
		return "", err
	}
	delete(payload, "_id")

	now := time.Now().UTC()
	payload["createdAt"] = now
	payload["updatedAt"] = now

	res, err := r.collection(collection).InsertOne(ctx, payload)
	if err != nil {
		return "", fmt.Errorf("insert into %s: %w", collection, err)
	}

	oid, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return "", fmt.Errorf("insert into %s: unexpected id type %T", collection, res.InsertedID)
	}
	return oid.Hex(), nil
}

// Update applies a partial update to the record with the given id. Only the
// fields present in the patch are touched.
func (r *DocumentRepository) Update(ctx context.Context, collection, id string, patch any) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("record %s in %s: %w", id, collection, store.ErrNotFound)
	}

	fields, err := toDocument(patch)
	if err != nil {
		return err
	}
	delete(fields, "_id")
	fields["updatedAt"] = time.Now().UTC()

	res, err := r.collection(collection).UpdateByID(ctx, oid, bson.M{"$set": fields})
	if err != nil {
		return fmt.Errorf("update %s in %s: %w", id, collection, err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("record %s in %s: %w", id, collection, store.ErrNotFound)
	}
	return nil
}

// Delete removes the record with the given id.
func (r *DocumentRepository) Delete(ctx context.Context, collection, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("record %s in %s: %w", id, collection, store.ErrNotFound)
	}

	res, err := r.collection(collection).DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete %s from %s: %w", id, collection, err)
	}
	if res.DeletedCount == 0 {
		return fmt.Errorf("record %s in %s: %w", id, collection, store.ErrNotFound)
	}
	return nil
}

// ListAll decodes every record of the collection into out, which must be a
// pointer to a slice.
func (r *DocumentRepository) ListAll(ctx context.Context, collection string, out any) error {
	cursor, err := r.collection(collection).Find(ctx, bson.M{})
	if err != nil {
		return fmt.Errorf("list %s: %w", collection, err)
	}
	if err := cursor.All(ctx, out); err != nil {
		return fmt.Errorf("decode %s: %w", collection, err)
	}
	return nil
}

// Close closes the MongoDB connection.
func (r *DocumentRepository) Close(ctx context.Context) error {
	return r.client.Disconnect(ctx)
}

// toDocument round-trips a struct through bson so omitempty patch fields drop
// out before the write.
func toDocument(v any) (bson.M, error) {
	raw, err := bson.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encode document: %w", err)
	}
	var doc bson.M
	if err := bson.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("decode document: %w", err)
	}
	return doc, nil
}
