package parlour

import (
	"context"
	"fmt"
)

type Service interface {
	ListServices(ctx context.Context) ([]Document, error)
	GetService(ctx context.Context, id string) (Document, error)
	ListReviews(ctx context.Context) ([]Document, error)
	AddReview(ctx context.Context, review Document) (InsertResult, error)
	AddBooking(ctx context.Context, booking Document) (InsertResult, error)
	ListBookings(ctx context.Context, subject, email string) ([]Document, error)
}

type service struct {
	services Collection
	reviews  Collection
	bookings Collection
}

func NewService(services, reviews, bookings Collection) Service {
	return &service{services: services, reviews: reviews, bookings: bookings}
}

func (svc *service) ListServices(ctx context.Context) ([]Document, error) {
	return svc.services.Find(ctx, nil)
}

func (svc *service) GetService(ctx context.Context, id string) (Document, error) {
	return svc.services.FindByID(ctx, id)
}

func (svc *service) ListReviews(ctx context.Context) ([]Document, error) {
	return svc.reviews.Find(ctx, nil)
}

func (svc *service) AddReview(ctx context.Context, review Document) (InsertResult, error) {
	return insert(ctx, svc.reviews, review)
}

func (svc *service) AddBooking(ctx context.Context, booking Document) (InsertResult, error) {
	return insert(ctx, svc.bookings, booking)
}

// ListBookings returns the bookings made with email. Users may only list their own.
func (svc *service) ListBookings(ctx context.Context, subject, email string) ([]Document, error) {
	if subject != email {
		return nil, ErrForbidden
	}
	return svc.bookings.Find(ctx, Filter{"email": email})
}

// insert drops any client supplied _id so the store assigns one.
func insert(ctx context.Context, c Collection, doc Document) (InsertResult, error) {
	delete(doc, "_id")
	if len(doc) == 0 {
		return InsertResult{}, ErrEmptyDocument
	}

	res, err := c.Insert(ctx, doc)
	if err != nil {
		return InsertResult{}, fmt.Errorf("error inserting document: %w", err)
	}
	return res, nil
}
