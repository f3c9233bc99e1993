package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"github.com/linesmerrill/car-rental-api/api"
	"github.com/linesmerrill/car-rental-api/config"
	"github.com/linesmerrill/car-rental-api/databases"
	"github.com/linesmerrill/car-rental-api/events"
	"github.com/linesmerrill/car-rental-api/models"
	"github.com/linesmerrill/car-rental-api/notify"
	"github.com/linesmerrill/car-rental-api/receipt"
	"github.com/linesmerrill/car-rental-api/session"
)

// catalogPath is where renters without an order history are sent
const catalogPath = "/api/v1/cars"

// Messages returned by the order history endpoints
const (
	MessageFetchOrdersFailed  = "Failed to fetch orders"
	MessageClearHistoryFailed = "Failed to clear history"
	MessageNoHistory          = "no order history found"
	MessageOrderNotFound      = "order not found"
	MessageRenderFailed       = "failed to render receipt"
)

// Errors sent to the client in place of store and render failures, which are
// only logged
var (
	ErrFetchOrders  = errors.New(MessageFetchOrdersFailed)
	ErrClearHistory = errors.New(MessageClearHistoryFailed)
	ErrNoHistory    = errors.New(MessageNoHistory)
	ErrRender       = errors.New(MessageRenderFailed)
)

// writeInternalError logs cause and answers 500 with the generic err
func writeInternalError(w http.ResponseWriter, message string, err, cause error) {
	zap.S().Errorw(message, "cause", cause)
	config.ErrorStatus(message, http.StatusInternalServerError, w, err)
}

// HistoryNotifier tells the renter their history was cleared
type HistoryNotifier interface {
	HistoryCleared(ctx context.Context, customer models.Customer) error
}

// Orders exported for testing purposes
type Orders struct {
	DB        databases.UserOrderDatabase
	CarDB     databases.CarDatabase
	Publisher events.Publisher
	Notifier  HistoryNotifier
	Now       func() time.Time
	Location  *time.Location
}

// OrdersHandler returns the order history of the session's renter with every
// car reference expanded. Without a session or a record the renter is sent
// back to the catalog.
func (o Orders) OrdersHandler(w http.ResponseWriter, r *http.Request) {
	email, ok := session.EmailFromContext(r.Context())
	if !ok {
		http.Redirect(w, r, catalogPath, http.StatusSeeOther)
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()
	record, err := o.DB.FindOne(ctx, bson.M{"userEmail": email})
	if errors.Is(err, mongo.ErrNoDocuments) {
		http.Redirect(w, r, catalogPath, http.StatusSeeOther)
		return
	}
	if err != nil {
		writeInternalError(w, MessageFetchOrdersFailed, ErrFetchOrders, err)
		return
	}

	summaries := map[string]models.CarSummary{}
	if ids := record.CarIDs(); len(ids) > 0 {
		cars, err := o.CarDB.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
		if err != nil {
			writeInternalError(w, MessageFetchOrdersFailed, ErrFetchOrders, err)
			return
		}
		for _, c := range cars {
			summaries[c.ID] = c.Summary()
		}
	}

	writeJSON(w, http.StatusOK, models.NewOrderHistory(*record, summaries, o.Location))
}

// ClearOrdersHandler empties the order list of the session's renter. The
// record itself is kept.
func (o Orders) ClearOrdersHandler(w http.ResponseWriter, r *http.Request) {
	email, ok := session.EmailFromContext(r.Context())
	if !ok {
		http.Redirect(w, r, catalogPath, http.StatusSeeOther)
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()
	record, err := o.DB.FindOne(ctx, bson.M{"userEmail": email})
	if errors.Is(err, mongo.ErrNoDocuments) {
		config.ErrorStatus(MessageNoHistory, http.StatusNotFound, w, ErrNoHistory)
		return
	}
	if err != nil {
		writeInternalError(w, MessageClearHistoryFailed, ErrClearHistory, err)
		return
	}

	now := time.Now
	if o.Now != nil {
		now = o.Now
	}
	_, err = o.DB.UpdateOne(ctx,
		bson.M{"userEmail": email},
		bson.M{"$set": bson.M{"orders": []models.Order{}, "updatedAt": now().UTC()}},
	)
	if err != nil {
		writeInternalError(w, MessageClearHistoryFailed, ErrClearHistory, err)
		return
	}
	zap.S().Infow("order history cleared", "userEmail", email, "orders", len(record.Orders))

	customer := models.Customer{Name: record.UserName, Email: record.UserEmail, Phone: record.PhoneNumber}
	if o.Publisher != nil {
		e := events.Event{Type: events.TypeOrdersCleared, UserEmail: email, OccurredAt: now().UTC()}
		notify.Go("publish "+events.TypeOrdersCleared, func(ctx context.Context) error {
			return o.Publisher.Publish(ctx, e)
		})
	}
	if o.Notifier != nil {
		notify.Go("history cleared email", func(ctx context.Context) error {
			return o.Notifier.HistoryCleared(ctx, customer)
		})
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"message": "history cleared"}`))
}

// ReceiptHandler returns the PDF receipt of one of the session's orders
func (o Orders) ReceiptHandler(w http.ResponseWriter, r *http.Request) {
	trackingID := mux.Vars(r)["tracking_id"]
	email, ok := session.EmailFromContext(r.Context())
	if !ok {
		http.Redirect(w, r, catalogPath, http.StatusSeeOther)
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()
	record, err := o.DB.FindOne(ctx, bson.M{"userEmail": email})
	if errors.Is(err, mongo.ErrNoDocuments) {
		config.ErrorStatus(MessageOrderNotFound, http.StatusNotFound, w, ErrNoHistory)
		return
	}
	if err != nil {
		writeInternalError(w, MessageFetchOrdersFailed, ErrFetchOrders, err)
		return
	}
	order, ok := record.FindOrder(trackingID)
	if !ok {
		config.ErrorStatus(MessageOrderNotFound, http.StatusNotFound, w, fmt.Errorf("no order with tracking id %s", trackingID))
		return
	}

	car, err := o.CarDB.FindOne(ctx, bson.M{"_id": order.Car.Ref})
	if err != nil && !errors.Is(err, mongo.ErrNoDocuments) {
		writeInternalError(w, MessageFetchOrdersFailed, ErrFetchOrders, err)
		return
	}

	now := time.Now
	if o.Now != nil {
		now = o.Now
	}
	pdf, err := receipt.Render(receipt.Data{
		UserName:    record.UserName,
		UserEmail:   record.UserEmail,
		PhoneNumber: record.PhoneNumber,
		Order:       order,
		Car:         car,
		IssuedAt:    now(),
		Location:    o.Location,
	})
	if err != nil {
		writeInternalError(w, MessageRenderFailed, ErrRender, err)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`inline; filename="%s"`, receipt.Filename(order.TrackingID)))
	w.WriteHeader(http.StatusOK)
	w.Write(pdf)
}
