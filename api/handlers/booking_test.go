package handlers_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/linesmerrill/car-rental-api/api/handlers"
	"github.com/linesmerrill/car-rental-api/booking"
	"github.com/linesmerrill/car-rental-api/databases/mocks"
	"github.com/linesmerrill/car-rental-api/events"
	"github.com/linesmerrill/car-rental-api/models"
	"github.com/linesmerrill/car-rental-api/session"
)

const validBookingBody = `{
	"firstName": "Jane",
	"lastName": "Doe",
	"email": "jane@example.com",
	"phone": "+1 555-123-4567",
	"startDate": "2024-06-20",
	"endDate": "2024-06-22",
	"cardNumber": "4242 4242 4242 4242",
	"expiryDate": "12/27",
	"cvv": "123"
}`

type channelPublisher struct {
	events chan events.Event
}

func (p channelPublisher) Publish(ctx context.Context, e events.Event) error {
	p.events <- e
	return nil
}

func (p channelPublisher) Close() error { return nil }

func bookingRequest(slug, body string) *http.Request {
	req, _ := http.NewRequest("POST", "/api/v1/bookings/"+slug, strings.NewReader(body))
	return mux.SetURLVars(req, map[string]string{"slug": slug})
}

func newBookingHandler(carDB *mocks.CarDatabase, uoDB *mocks.UserOrderDatabase) handlers.Booking {
	n := 0
	intake := booking.NewIntake(uoDB, time.UTC)
	intake.Now = func() time.Time { return time.Date(2024, time.June, 15, 10, 0, 0, 0, time.UTC) }
	intake.NewID = func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	}
	return handlers.Booking{
		CarDB:    carDB,
		Intake:   intake,
		Sessions: session.NewManager(context.Background(), "secret", time.Hour),
	}
}

func carDBWith(car models.Car) *mocks.CarDatabase {
	db := &mocks.CarDatabase{}
	db.On("FindOne", mock.Anything, bson.M{"slug.current": car.Slug.Current}).Return(&car, nil)
	return db
}

func TestBooking_BookingHandlerCreatesRecord(t *testing.T) {
	car := testCatalog()[1]
	uoDB := &mocks.UserOrderDatabase{}
	uoDB.On("FindOne", mock.Anything, bson.M{"userEmail": "jane@example.com"}).Return(nil, mongo.ErrNoDocuments)
	uoDB.On("UpsertOrder", mock.Anything, models.Customer{Name: "Jane Doe", Email: "jane@example.com", Phone: "+1 555-123-4567"}, mock.AnythingOfType("models.Order")).Return(true, nil)

	b := newBookingHandler(carDBWith(car), uoDB)
	rr := httptest.NewRecorder()
	http.HandlerFunc(b.BookingHandler).ServeHTTP(rr, bookingRequest("nissan-gt-r", validBookingBody))

	assert.Equal(t, http.StatusCreated, rr.Code)
	var got models.BookingResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
	assert.Equal(t, "id-2", got.TrackingID)
	assert.Equal(t, models.OrderStatusPending, got.Status)
	assert.True(t, got.Created)
	assert.Equal(t, "c2", got.Car.ID)
	assert.NotEmpty(t, got.SessionToken)

	email, err := b.Sessions.(*session.Manager).Parse(got.SessionToken)
	require.NoError(t, err)
	assert.Equal(t, "jane@example.com", email)

	assert.NotContains(t, rr.Body.String(), "4242")
	uoDB.AssertExpectations(t)
}

func TestBooking_BookingHandlerAppendsOrder(t *testing.T) {
	car := testCatalog()[1]
	uoDB := &mocks.UserOrderDatabase{}
	uoDB.On("FindOne", mock.Anything, mock.Anything).Return(&models.UserOrder{UserName: "Jane Doe", UserEmail: "jane@example.com"}, nil)
	uoDB.On("UpsertOrder", mock.Anything, mock.Anything, mock.Anything).Return(false, nil)

	rr := httptest.NewRecorder()
	http.HandlerFunc(newBookingHandler(carDBWith(car), uoDB).BookingHandler).ServeHTTP(rr, bookingRequest("nissan-gt-r", validBookingBody))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"created":false`)
}

func TestBooking_BookingHandlerPublishesEvent(t *testing.T) {
	car := testCatalog()[1]
	uoDB := &mocks.UserOrderDatabase{}
	uoDB.On("FindOne", mock.Anything, mock.Anything).Return(nil, mongo.ErrNoDocuments)
	uoDB.On("UpsertOrder", mock.Anything, mock.Anything, mock.Anything).Return(true, nil)

	pub := channelPublisher{events: make(chan events.Event, 1)}
	b := newBookingHandler(carDBWith(car), uoDB)
	b.Publisher = pub

	rr := httptest.NewRecorder()
	http.HandlerFunc(b.BookingHandler).ServeHTTP(rr, bookingRequest("nissan-gt-r", validBookingBody))
	require.Equal(t, http.StatusCreated, rr.Code)

	select {
	case e := <-pub.events:
		assert.Equal(t, events.TypeOrderCreated, e.Type)
		assert.Equal(t, "jane@example.com", e.UserEmail)
		assert.Equal(t, "id-2", e.TrackingID)
		assert.Equal(t, "c2", e.CarID)
		assert.Equal(t, "2024-06-20", e.StartDate)
	case <-time.After(time.Second):
		t.Fatal("order.created event was not published")
	}
}

func TestBooking_BookingHandlerValidationErrors(t *testing.T) {
	car := testCatalog()[1]
	uoDB := &mocks.UserOrderDatabase{}
	body := strings.Replace(validBookingBody, `"cvv": "123"`, `"cvv": "12"`, 1)
	body = strings.Replace(body, `"email": "jane@example.com"`, `"email": "jane"`, 1)

	rr := httptest.NewRecorder()
	http.HandlerFunc(newBookingHandler(carDBWith(car), uoDB).BookingHandler).ServeHTTP(rr, bookingRequest("nissan-gt-r", body))

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.JSONEq(t, `{"errors": {"cvv": "Invalid CVV", "email": "Invalid email address"}}`, rr.Body.String())
	uoDB.AssertNotCalled(t, "FindOne", mock.Anything, mock.Anything)
	uoDB.AssertNotCalled(t, "UpsertOrder", mock.Anything, mock.Anything, mock.Anything)
}

func TestBooking_BookingHandlerIdentityMismatch(t *testing.T) {
	car := testCatalog()[1]
	uoDB := &mocks.UserOrderDatabase{}
	uoDB.On("FindOne", mock.Anything, mock.Anything).Return(&models.UserOrder{UserName: "John Smith", UserEmail: "jane@example.com"}, nil)

	rr := httptest.NewRecorder()
	http.HandlerFunc(newBookingHandler(carDBWith(car), uoDB).BookingHandler).ServeHTTP(rr, bookingRequest("nissan-gt-r", validBookingBody))

	assert.Equal(t, http.StatusConflict, rr.Code)
	assert.Equal(t, errorBody(booking.MessageIdentityMismatch, booking.MessageIdentityMismatch), rr.Body.String())
	uoDB.AssertNotCalled(t, "UpsertOrder", mock.Anything, mock.Anything, mock.Anything)
}

func TestBooking_BookingHandlerIdentityCheckFailure(t *testing.T) {
	car := testCatalog()[1]
	uoDB := &mocks.UserOrderDatabase{}
	uoDB.On("FindOne", mock.Anything, mock.Anything).Return(nil, errors.New("server selection timeout"))

	rr := httptest.NewRecorder()
	http.HandlerFunc(newBookingHandler(carDBWith(car), uoDB).BookingHandler).ServeHTTP(rr, bookingRequest("nissan-gt-r", validBookingBody))

	assert.Equal(t, http.StatusServiceUnavailable, rr.Code)
	assert.Equal(t, errorBody(booking.MessageIdentityCheck, booking.MessageIdentityCheck), rr.Body.String())
	assert.NotContains(t, rr.Body.String(), "server selection timeout")
	uoDB.AssertNotCalled(t, "UpsertOrder", mock.Anything, mock.Anything, mock.Anything)
}

func TestBooking_BookingHandlerWriteFailure(t *testing.T) {
	car := testCatalog()[1]
	uoDB := &mocks.UserOrderDatabase{}
	uoDB.On("FindOne", mock.Anything, mock.Anything).Return(nil, mongo.ErrNoDocuments)
	uoDB.On("UpsertOrder", mock.Anything, mock.Anything, mock.Anything).Return(false, errors.New("write concern error"))

	rr := httptest.NewRecorder()
	http.HandlerFunc(newBookingHandler(carDBWith(car), uoDB).BookingHandler).ServeHTTP(rr, bookingRequest("nissan-gt-r", validBookingBody))

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.Equal(t, errorBody(booking.MessageWriteFailed, booking.MessageWriteFailed), rr.Body.String())
}

func TestBooking_BookingHandlerUnknownCar(t *testing.T) {
	carDB := &mocks.CarDatabase{}
	carDB.On("FindOne", mock.Anything, bson.M{"slug.current": "tesla"}).Return(nil, mongo.ErrNoDocuments)
	uoDB := &mocks.UserOrderDatabase{}

	rr := httptest.NewRecorder()
	http.HandlerFunc(newBookingHandler(carDB, uoDB).BookingHandler).ServeHTTP(rr, bookingRequest("tesla", validBookingBody))

	assert.Equal(t, http.StatusNotFound, rr.Code)
	uoDB.AssertNotCalled(t, "FindOne", mock.Anything, mock.Anything)
}

func TestBooking_BookingHandlerBadJSON(t *testing.T) {
	carDB := &mocks.CarDatabase{}
	uoDB := &mocks.UserOrderDatabase{}

	rr := httptest.NewRecorder()
	http.HandlerFunc(newBookingHandler(carDB, uoDB).BookingHandler).ServeHTTP(rr, bookingRequest("nissan-gt-r", `{"firstName":`))

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), "failed to decode request")
	carDB.AssertNotCalled(t, "FindOne", mock.Anything, mock.Anything)
}
