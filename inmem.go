package parlour

import (
	"context"
	"reflect"
	"sync"

	"github.com/rs/xid"
)

type collection struct {
	mu   sync.RWMutex
	docs []Document
}

func NewCollection(docs ...Document) Collection {
	c := &collection{}
	for _, d := range docs {
		if _, ok := d["_id"]; !ok {
			d["_id"] = xid.New().String()
		}
		c.docs = append(c.docs, d)
	}
	return c
}

func (c *collection) Find(_ context.Context, filter Filter) ([]Document, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	docs := []Document{}
	for _, d := range c.docs {
		if matches(d, filter) {
			docs = append(docs, d)
		}
	}
	return docs, nil
}

func (c *collection) FindByID(_ context.Context, id string) (Document, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	for _, d := range c.docs {
		if d["_id"] == id {
			return d, nil
		}
	}
	return nil, ErrNotFound
}

func (c *collection) Insert(_ context.Context, doc Document) (InsertResult, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	id := xid.New().String()
	d := Document{"_id": id}
	for k, v := range doc {
		d[k] = v
	}
	c.docs = append(c.docs, d)
	return InsertResult{Acknowledged: true, InsertedID: id}, nil
}

func matches(d Document, filter Filter) bool {
	for k, v := range filter {
		if !reflect.DeepEqual(d[k], v) {
			return false
		}
	}
	return true
}
