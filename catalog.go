package parlour

import (
	"context"
	"errors"
)

// Document is a schemaless catalog record stored exactly as it was sent.
type Document map[string]interface{}

// Filter selects documents whose fields equal the given values.
type Filter map[string]interface{}

type InsertResult struct {
	Acknowledged bool        `json:"acknowledged"`
	InsertedID   interface{} `json:"insertedId"`
}

// Collection is the generic document store behind services, reviews and bookings.
type Collection interface {
	Find(ctx context.Context, filter Filter) ([]Document, error)
	FindByID(ctx context.Context, id string) (Document, error)
	Insert(ctx context.Context, doc Document) (InsertResult, error)
}

var (
	ErrNotFound      = errors.New("document not found")
	ErrEmptyDocument = errors.New("document cannot be empty")
	ErrForbidden     = errors.New("forbidden")
)
