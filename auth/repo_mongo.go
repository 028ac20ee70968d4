package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type mongoAccountRepository struct {
	collection *mongo.Collection
}

type dbAccount struct {
	ID             ID        `bson:"_id"`
	Email          string    `bson:"email"`
	FirstName      string    `bson:"firstName"`
	LastName       string    `bson:"lastName"`
	Image          string    `bson:"image,omitempty"`
	CredentialHash string    `bson:"credentialHash"`
	CreatedAt      time.Time `bson:"createdAt"`
}

func NewMongoAccountRepository(c *mongo.Collection) Repository {
	return &mongoAccountRepository{collection: c}
}

// EnsureIndexes creates the unique email index that backs ErrExistingEmail
// for concurrent registrations.
func EnsureIndexes(ctx context.Context, c *mongo.Collection) error {
	_, err := c.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("email_unique"),
	})
	if err != nil {
		return fmt.Errorf("error creating email index: %w", err)
	}
	return nil
}

func (m *mongoAccountRepository) FindByEmail(ctx context.Context, email string) (*Account, error) {
	var a dbAccount
	sr := m.collection.FindOne(ctx, bson.M{"email": email})

	if errors.Is(sr.Err(), mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}

	if err := sr.Decode(&a); err != nil {
		return nil, err
	}

	acc := accountFromDBAccount(a)
	return &acc, nil
}

func (m *mongoAccountRepository) Store(ctx context.Context, acc *Account) error {
	dba := dbAccountFromAccount(acc)
	_, err := m.collection.InsertOne(ctx, &dba)
	if mongo.IsDuplicateKeyError(err) {
		return ErrExistingEmail
	}
	return err
}

func (m *mongoAccountRepository) UpsertByEmail(ctx context.Context, email string, c Changes) (UpsertResult, error) {
	set := bson.M{}
	if c.FirstName != nil {
		set["firstName"] = *c.FirstName
	}
	if c.LastName != nil {
		set["lastName"] = *c.LastName
	}
	if c.Image != nil {
		set["image"] = *c.Image
	}
	if c.CredentialHash != nil {
		set["credentialHash"] = *c.CredentialHash
	}

	update := bson.M{
		"$set":         set,
		"$setOnInsert": bson.M{"_id": NewID(), "createdAt": time.Now().UTC()},
	}
	res, err := m.collection.UpdateOne(ctx, bson.M{"email": email}, update, options.Update().SetUpsert(true))
	if err != nil {
		return UpsertResult{}, err
	}

	return UpsertResult{
		MatchedCount:  res.MatchedCount,
		ModifiedCount: res.ModifiedCount,
		UpsertedCount: res.UpsertedCount,
	}, nil
}

func dbAccountFromAccount(a *Account) dbAccount {
	return dbAccount{a.ID, a.Email, a.FirstName, a.LastName, a.Image, a.CredentialHash, a.CreatedAt}
}

func accountFromDBAccount(a dbAccount) Account {
	return Account{a.ID, a.Email, a.FirstName, a.LastName, a.Image, a.CredentialHash, a.CreatedAt}
}
