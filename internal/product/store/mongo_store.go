package store

import (
	"context"
	"errors"
	"fmt"
	"regexp"

	"github.com/chetanpal14/web-application-assignment/internal/platform/database"
	perrors "github.com/chetanpal14/web-application-assignment/internal/product/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// MongoStore implements ProductStore on a MongoDB collection.
type MongoStore struct {
	conn       *database.Client
	collection string
}

// NewMongoStore creates a ProductStore backed by the named collection.
func NewMongoStore(conn *database.Client, collection string) *MongoStore {
	return &MongoStore{
		conn:       conn,
		collection: collection,
	}
}

// document is the BSON shape of a product.
type document struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Name        string             `bson:"name"`
	Description string             `bson:"description"`
	Price       float64            `bson:"price"`
	Quantity    int64              `bson:"quantity"`
	Category    string             `bson:"category"`
}

// IsValidID reports whether id is a 24 character hex ObjectID.
func (m *MongoStore) IsValidID(id string) bool {
	return primitive.IsValidObjectID(id)
}

// Ping checks that the server answers.
func (m *MongoStore) Ping(ctx context.Context) error {
	return m.conn.Ping(ctx)
}

// Find returns every product matching the filter.
func (m *MongoStore) Find(ctx context.Context, filter Filter) ([]Product, error) {
	coll, query, err := m.prepare(filter)
	if err != nil {
		return nil, err
	}
	cursor, err := coll.Find(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to find products: %w", err)
	}
	var docs []document
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode products: %w", err)
	}
	products := make([]Product, len(docs))
	for i, doc := range docs {
		products[i] = toProduct(doc)
	}
	return products, nil
}

// FindOne returns the first product matching the filter.
// Returns ErrProductNotFound if nothing matches.
func (m *MongoStore) FindOne(ctx context.Context, filter Filter) (*Product, error) {
	coll, query, err := m.prepare(filter)
	if err != nil {
		return nil, err
	}
	var doc document
	if err := coll.FindOne(ctx, query).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, perrors.ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to find product: %w", err)
	}
	product := toProduct(doc)
	return &product, nil
}

// InsertOne adds a product. An unacknowledged write concern yields Acknowledged=false.
func (m *MongoStore) InsertOne(ctx context.Context, product Product) (InsertResult, error) {
	coll, err := m.conn.Collection(m.collection)
	if err != nil {
		return InsertResult{}, err
	}
	res, err := coll.InsertOne(ctx, fromProduct(product))
	if err != nil {
		if errors.Is(err, mongo.ErrUnacknowledgedWrite) {
			return InsertResult{Acknowledged: false}, nil
		}
		return InsertResult{}, fmt.Errorf("failed to insert product: %w", err)
	}
	var insertedID string
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		insertedID = oid.Hex()
	}
	return InsertResult{InsertedID: insertedID, Acknowledged: true}, nil
}

// UpdateOne applies the patch with $set to the first product matching the filter.
func (m *MongoStore) UpdateOne(ctx context.Context, filter Filter, patch Patch) (UpdateResult, error) {
	coll, query, err := m.prepare(filter)
	if err != nil {
		return UpdateResult{}, err
	}
	res, err := coll.UpdateOne(ctx, query, bson.M{"$set": toSet(patch)})
	if err != nil {
		return UpdateResult{}, fmt.Errorf("failed to update product: %w", err)
	}
	return UpdateResult{MatchedCount: res.MatchedCount, ModifiedCount: res.ModifiedCount}, nil
}

// DeleteOne removes at most one product matching the filter.
func (m *MongoStore) DeleteOne(ctx context.Context, filter Filter) (DeleteResult, error) {
	coll, query, err := m.prepare(filter)
	if err != nil {
		return DeleteResult{}, err
	}
	res, err := coll.DeleteOne(ctx, query)
	if err != nil {
		return DeleteResult{}, fmt.Errorf("failed to delete product: %w", err)
	}
	return DeleteResult{DeletedCount: res.DeletedCount}, nil
}

// DeleteMany removes every product matching the filter.
func (m *MongoStore) DeleteMany(ctx context.Context, filter Filter) (DeleteResult, error) {
	coll, query, err := m.prepare(filter)
	if err != nil {
		return DeleteResult{}, err
	}
	res, err := coll.DeleteMany(ctx, query)
	if err != nil {
		return DeleteResult{}, fmt.Errorf("failed to delete products: %w", err)
	}
	return DeleteResult{DeletedCount: res.DeletedCount}, nil
}

func (m *MongoStore) prepare(filter Filter) (*mongo.Collection, bson.M, error) {
	coll, err := m.conn.Collection(m.collection)
	if err != nil {
		return nil, nil, err
	}
	query, err := toQuery(filter)
	if err != nil {
		return nil, nil, err
	}
	return coll, query, nil
}

// toQuery converts a Filter to a MongoDB query document.
// Name matching is an unanchored, case-insensitive regex over the escaped text.
func toQuery(filter Filter) (bson.M, error) {
	query := bson.M{}
	if filter.ID != "" {
		oid, err := primitive.ObjectIDFromHex(filter.ID)
		if err != nil {
			return nil, fmt.Errorf("%w: %s", perrors.ErrInvalidID, filter.ID)
		}
		query["_id"] = oid
	}
	if filter.NameContains != "" {
		query["name"] = bson.M{"$regex": regexp.QuoteMeta(filter.NameContains), "$options": "i"}
	}
	return query, nil
}

// toSet builds the $set document from the fields present in the patch.
func toSet(patch Patch) bson.M {
	set := bson.M{}
	if patch.Name != nil {
		set["name"] = *patch.Name
	}
	if patch.Description != nil {
		set["description"] = *patch.Description
	}
	if patch.Price != nil {
		set["price"] = *patch.Price
	}
	if patch.Quantity != nil {
		set["quantity"] = *patch.Quantity
	}
	if patch.Category != nil {
		set["category"] = *patch.Category
	}
	return set
}

func toProduct(doc document) Product {
	return Product{
		ID:          doc.ID.Hex(),
		Name:        doc.Name,
		Description: doc.Description,
		Price:       doc.Price,
		Quantity:    doc.Quantity,
		Category:    doc.Category,
	}
}

func fromProduct(p Product) document {
	return document{
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		Quantity:    p.Quantity,
		Category:    p.Category,
	}
}
