package repository

import (
	"context"
	"errors"

	"github.com/firetemplate/items-api/internal/items"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// mongoItem is the stored shape; the item ID is the document ObjectID.
type mongoItem struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Name        string             `bson:"name"`
	Description string             `bson:"description"`
	Owner       string             `bson:"owner"`
}

func (d *mongoItem) toItem() *items.Item {
	return &items.Item{ID: d.ID.Hex(), Name: d.Name, Description: d.Description, Owner: d.Owner}
}

// MongoRepo implements Repository on a MongoDB collection.
type MongoRepo struct {
	col *mongo.Collection
}

func NewMongoRepo(ctx context.Context, col *mongo.Collection) *MongoRepo {
	// owner index backs the list query; failure only costs performance
	idx := mongo.IndexModel{Keys: bson.D{{Key: "owner", Value: 1}}}
	_, _ = col.Indexes().CreateOne(ctx, idx)
	return &MongoRepo{col: col}
}

func (m *MongoRepo) ListByOwner(ctx context.Context, owner string, limit int) ([]*items.Item, error) {
	opts := options.Find()
	if limit > 0 {
		opts.SetLimit(int64(limit))
	}
	cur, err := m.col.Find(ctx, bson.M{"owner": owner}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	out := []*items.Item{}
	for cur.Next(ctx) {
		var d mongoItem
		if err := cur.Decode(&d); err != nil {
			return nil, err
		}
		out = append(out, d.toItem())
	}
	return out, cur.Err()
}

func (m *MongoRepo) Create(ctx context.Context, it *items.Item) (*items.Item, error) {
	d := mongoItem{ID: primitive.NewObjectID(), Name: it.Name, Description: it.Description, Owner: it.Owner}
	if _, err := m.col.InsertOne(ctx, d); err != nil {
		return nil, err
	}
	return d.toItem(), nil
}

func (m *MongoRepo) Get(ctx context.Context, id string) (*items.Item, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}
	var d mongoItem
	if err := m.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&d); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return d.toItem(), nil
}

func (m *MongoRepo) Update(ctx context.Context, id string, p items.Patch) (*items.Item, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}
	set := bson.M{"$set": bson.M{"name": p.Name, "description": p.Description}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var d mongoItem
	if err := m.col.FindOneAndUpdate(ctx, bson.M{"_id": oid}, set, opts).Decode(&d); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return d.toItem(), nil
}

func (m *MongoRepo) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrNotFound
	}
	res, err := m.col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
