package parlour

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
)

type ServiceTestSuite struct {
	suite.Suite
	svc      Service
	bookings Collection
	ctx      context.Context
}

func (suite *ServiceTestSuite) SetupTest() {
	suite.ctx = context.Background()
	suite.bookings = NewCollection(
		Document{"email": "a@b.com", "service": "Facial"},
		Document{"email": "c@d.com", "service": "Manicure"},
		Document{"email": "a@b.com", "service": "Haircut"},
	)
	suite.svc = NewService(
		NewCollection(Document{"_id": "s1", "name": "Facial", "price": 40.0}),
		NewCollection(),
		suite.bookings,
	)
}

func (suite *ServiceTestSuite) TestGetService() {
	doc, err := suite.svc.GetService(suite.ctx, "s1")
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), "Facial", doc["name"])

	_, err = suite.svc.GetService(suite.ctx, "nope")
	assert.Equal(suite.T(), ErrNotFound, err)
}

func (suite *ServiceTestSuite) TestListBookings_OnlyOwn() {
	docs, err := suite.svc.ListBookings(suite.ctx, "a@b.com", "a@b.com")
	assert.NoError(suite.T(), err)
	assert.Len(suite.T(), docs, 2)
	for _, d := range docs {
		assert.Equal(suite.T(), "a@b.com", d["email"])
	}

	_, err = suite.svc.ListBookings(suite.ctx, "a@b.com", "c@d.com")
	assert.Equal(suite.T(), ErrForbidden, err)

	docs, err = suite.svc.ListBookings(suite.ctx, "x@y.com", "x@y.com")
	assert.NoError(suite.T(), err)
	assert.Empty(suite.T(), docs)
}

func (suite *ServiceTestSuite) TestAddReview_StoresWhatWasSent() {
	res, err := suite.svc.AddReview(suite.ctx, Document{"_id": "forced", "rating": 5.0, "text": "Lovely"})
	assert.NoError(suite.T(), err)
	assert.True(suite.T(), res.Acknowledged)
	assert.NotEqual(suite.T(), "forced", res.InsertedID)

	docs, err := suite.svc.ListReviews(suite.ctx)
	assert.NoError(suite.T(), err)
	assert.Len(suite.T(), docs, 1)
	assert.Equal(suite.T(), 5.0, docs[0]["rating"])
	assert.Equal(suite.T(), "Lovely", docs[0]["text"])
	assert.Equal(suite.T(), res.InsertedID, docs[0]["_id"])
}

func (suite *ServiceTestSuite) TestAddBooking_RejectsEmptyDocument() {
	_, err := suite.svc.AddBooking(suite.ctx, Document{})
	assert.Equal(suite.T(), ErrEmptyDocument, err)

	_, err = suite.svc.AddBooking(suite.ctx, Document{"_id": "only-id"})
	assert.Equal(suite.T(), ErrEmptyDocument, err)
}

func (suite *ServiceTestSuite) TestNewService() {
	services, reviews, bookings := NewCollection(), NewCollection(), NewCollection()
	svc := NewService(services, reviews, bookings)
	s := svc.(*service)

	assert.Equal(suite.T(), services, s.services)
	assert.Equal(suite.T(), reviews, s.reviews)
	assert.Equal(suite.T(), bookings, s.bookings)
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceTestSuite))
}
