package parlour

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type mongoCollection struct {
	collection *mongo.Collection
}

func NewMongoCollection(c *mongo.Collection) Collection {
	return &mongoCollection{collection: c}
}

func (m *mongoCollection) Find(ctx context.Context, filter Filter) ([]Document, error) {
	f := bson.M{}
	for k, v := range filter {
		f[k] = v
	}

	cur, err := m.collection.Find(ctx, f)
	if err != nil {
		return nil, err
	}

	docs := []Document{}
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}
	return docs, nil
}

// FindByID looks documents up by ObjectID when id is one, by plain string otherwise.
func (m *mongoCollection) FindByID(ctx context.Context, id string) (Document, error) {
	var key interface{} = id
	if oid, err := primitive.ObjectIDFromHex(id); err == nil {
		key = oid
	}

	var d Document
	sr := m.collection.FindOne(ctx, bson.M{"_id": key})
	if errors.Is(sr.Err(), mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err := sr.Decode(&d); err != nil {
		return nil, err
	}
	return d, nil
}

func (m *mongoCollection) Insert(ctx context.Context, doc Document) (InsertResult, error) {
	res, err := m.collection.InsertOne(ctx, doc)
	if err != nil {
		return InsertResult{}, err
	}
	return InsertResult{Acknowledged: true, InsertedID: res.InsertedID}, nil
}
