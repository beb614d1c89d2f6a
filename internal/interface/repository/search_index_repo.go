package repository

import (
	"context"
	"fmt"
	"time"

	"flight-inventory-service/internal/domain/entity"
	"flight-inventory-service/internal/domain/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoSearchIndex implements SearchIndex with one collection per entity kind.
// Documents are keyed by the entity's business key.
type MongoSearchIndex struct {
	collections map[entity.Kind]*mongo.Collection
}

// NewMongoSearchIndex creates the index collections and their text indexes
func NewMongoSearchIndex(ctx context.Context, db *mongo.Database) (repository.SearchIndex, error) {
	collOpts := options.Collection().SetBSONOptions(&options.BSONOptions{DefaultDocumentM: true})

	idx := &MongoSearchIndex{collections: make(map[entity.Kind]*mongo.Collection)}
	for _, kind := range entity.Kinds() {
		collection := db.Collection(kind.IndexName(), collOpts)

		// Wildcard text index so every projected string field is searchable
		textIndex := mongo.IndexModel{
			Keys:    bson.D{{Key: "$**", Value: "text"}},
			Options: options.Index().SetName("keyword_text"),
		}
		if _, err := collection.Indexes().CreateOne(ctx, textIndex); err != nil {
			return nil, fmt.Errorf("create text index on %s: %w", kind.IndexName(), err)
		}
		idx.collections[kind] = collection
	}
	return idx, nil
}

// Upsert replaces the document stored under doc.ID, creating it if absent
func (r *MongoSearchIndex) Upsert(ctx context.Context, doc entity.Document) error {
	collection, err := r.collection(doc.Kind)
	if err != nil {
		return err
	}

	body := bson.M{"indexedAt": time.Now().UTC()}
	for k, v := range doc.Fields {
		body[k] = v
	}
	body["_id"] = doc.ID

	_, err = collection.ReplaceOne(ctx, bson.M{"_id": doc.ID}, body, options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("index %s %s: %w", doc.Kind, doc.ID, err)
	}
	return nil
}

// Remove deletes the document; removing an absent document is not an error
func (r *MongoSearchIndex) Remove(ctx context.Context, kind entity.Kind, id string) error {
	collection, err := r.collection(kind)
	if err != nil {
		return err
	}
	if _, err := collection.DeleteOne(ctx, bson.M{"_id": id}); err != nil {
		return fmt.Errorf("remove %s %s: %w", kind, id, err)
	}
	return nil
}

// Search runs a keyword query over the documents of kind. An empty text lists documents.
func (r *MongoSearchIndex) Search(ctx context.Context, kind entity.Kind, text string, limit int) ([]entity.Document, error) {
	collection, err := r.collection(kind)
	if err != nil {
		return nil, err
	}

	filter := bson.M{}
	opts := options.Find()
	if text != "" {
		filter["$text"] = bson.M{"$search": text}
		opts.SetProjection(bson.M{"score": bson.M{"$meta": "textScore"}})
		opts.SetSort(bson.D{{Key: "score", Value: bson.M{"$meta": "textScore"}}})
	} else {
		opts.SetSort(bson.D{{Key: "_id", Value: 1}})
	}
	if limit > 0 {
		opts.SetLimit(int64(limit))
	}

	cursor, err := collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("search %s: %w", kind, err)
	}
	defer cursor.Close(ctx)

	var docs []entity.Document
	for cursor.Next(ctx) {
		var raw bson.M
		if err := cursor.Decode(&raw); err != nil {
			return nil, fmt.Errorf("decode %s document: %w", kind, err)
		}
		id, _ := raw["_id"].(string)
		delete(raw, "_id")
		delete(raw, "score")
		docs = append(docs, entity.Document{Kind: kind, ID: id, Fields: raw})
	}
	return docs, cursor.Err()
}

// IDs returns the ids of every document of kind
func (r *MongoSearchIndex) IDs(ctx context.Context, kind entity.Kind) ([]string, error) {
	collection, err := r.collection(kind)
	if err != nil {
		return nil, err
	}

	cursor, err := collection.Find(ctx, bson.M{}, options.Find().SetProjection(bson.M{"_id": 1}))
	if err != nil {
		return nil, fmt.Errorf("list %s ids: %w", kind, err)
	}
	defer cursor.Close(ctx)

	var ids []string
	for cursor.Next(ctx) {
		var row struct {
			ID string `bson:"_id"`
		}
		if err := cursor.Decode(&row); err != nil {
			return nil, fmt.Errorf("decode %s id: %w", kind, err)
		}
		ids = append(ids, row.ID)
	}
	return ids, cursor.Err()
}

func (r *MongoSearchIndex) collection(kind entity.Kind) (*mongo.Collection, error) {
	collection, ok := r.collections[kind]
	if !ok {
		return nil, fmt.Errorf("no index for kind %q", kind)
	}
	return collection, nil
}
