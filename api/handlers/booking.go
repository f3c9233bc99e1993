package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/linesmerrill/car-rental-api/api"
	"github.com/linesmerrill/car-rental-api/booking"
	"github.com/linesmerrill/car-rental-api/config"
	"github.com/linesmerrill/car-rental-api/databases"
	"github.com/linesmerrill/car-rental-api/events"
	"github.com/linesmerrill/car-rental-api/models"
	"github.com/linesmerrill/car-rental-api/notify"
)

// TokenIssuer issues the session token handed out after a booking
type TokenIssuer interface {
	Issue(email string) (string, error)
}

// BookingNotifier sends the booking confirmation to the renter
type BookingNotifier interface {
	BookingConfirmation(ctx context.Context, customer models.Customer, order models.Order, car models.Car) error
}

// Booking exported for testing purposes
type Booking struct {
	CarDB     databases.CarDatabase
	Intake    *booking.Intake
	Sessions  TokenIssuer
	Publisher events.Publisher
	Notifier  BookingNotifier
}

// BookingHandler books the car named by the slug route variable. The body is a
// booking.Request. A new customer record answers 201, an order appended to an
// existing record answers 200.
func (b Booking) BookingHandler(w http.ResponseWriter, r *http.Request) {
	var req booking.Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		config.ErrorStatus("failed to decode request", http.StatusBadRequest, w, err)
		return
	}

	car, ok := findCarBySlug(w, r, b.CarDB)
	if !ok {
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()
	res, err := b.Intake.Submit(ctx, *car, req)
	api.BookingsTotal.WithLabelValues(string(res.State)).Inc()
	if err != nil {
		writeBookingError(w, err)
		return
	}

	resp := models.BookingResponse{
		TrackingID: res.TrackingID,
		Status:     res.Order.Status,
		StartDate:  res.Order.StartDate,
		EndDate:    res.Order.EndDate,
		Car:        car.Summary(),
		Created:    res.Created,
	}
	if b.Sessions != nil {
		token, err := b.Sessions.Issue(res.Customer.Email)
		if err != nil {
			zap.S().Errorw("failed to issue session token", "error", err, "trackingId", res.TrackingID)
		}
		resp.SessionToken = token
	}

	b.announce(res, *car)

	status := http.StatusOK
	if res.Created {
		status = http.StatusCreated
	}
	writeJSON(w, status, resp)
}

// announce publishes the order.created event and sends the confirmation email
// in the background
func (b Booking) announce(res booking.Result, car models.Car) {
	if b.Publisher != nil {
		e := events.Event{
			Type:       events.TypeOrderCreated,
			UserEmail:  res.Customer.Email,
			TrackingID: res.TrackingID,
			CarID:      car.ID,
			StartDate:  res.Order.StartDate.Format(time.DateOnly),
			EndDate:    res.Order.EndDate.Format(time.DateOnly),
			Status:     string(res.Order.Status),
			OccurredAt: res.Order.CreatedAt,
		}
		notify.Go("publish "+events.TypeOrderCreated, func(ctx context.Context) error {
			return b.Publisher.Publish(ctx, e)
		})
	}
	if b.Notifier != nil {
		notify.Go("booking confirmation email", func(ctx context.Context) error {
			return b.Notifier.BookingConfirmation(ctx, res.Customer, res.Order, car)
		})
	}
}

// writeBookingError maps the errors of booking.Intake.Submit onto responses.
// Store errors are logged but never sent to the client.
func writeBookingError(w http.ResponseWriter, err error) {
	var vErr *booking.ValidationError
	switch {
	case errors.As(err, &vErr):
		writeJSON(w, http.StatusBadRequest, models.ValidationErrorResponse{Errors: vErr.Fields})
	case errors.Is(err, booking.ErrIdentityMismatch):
		config.ErrorStatus(booking.MessageIdentityMismatch, http.StatusConflict, w, booking.ErrIdentityMismatch)
	case errors.Is(err, booking.ErrIdentityCheck):
		zap.S().Errorw("identity check failed", "error", err)
		config.ErrorStatus(booking.MessageIdentityCheck, http.StatusServiceUnavailable, w, booking.ErrIdentityCheck)
	case errors.Is(err, booking.ErrWriteFailed):
		zap.S().Errorw("failed to record booking", "error", err)
		config.ErrorStatus(booking.MessageWriteFailed, http.StatusInternalServerError, w, booking.ErrWriteFailed)
	default:
		config.ErrorStatus(booking.MessageWriteFailed, http.StatusInternalServerError, w, err)
	}
}
