// Package booking validates booking submissions and records them against the
// renter's order record.
package booking

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"github.com/linesmerrill/car-rental-api/databases"
	"github.com/linesmerrill/car-rental-api/models"
)

// State is a step of a single submission
type State string

// Submission states. Rejected, Failed and Succeeded are final.
const (
	StateIdle          State = "idle"
	StateValidating    State = "validating"
	StateRejected      State = "rejected"
	StateEmailChecking State = "email_checking"
	StateWriting       State = "writing"
	StateFailed        State = "failed"
	StateSucceeded     State = "succeeded"
)

// Result is the outcome of Submit
type Result struct {
	State      State
	TrackingID string
	Customer   models.Customer
	Order      models.Order
	// Created is true when the submission created the customer's record
	Created bool
}

// Intake turns booking requests into orders
type Intake struct {
	DB       databases.UserOrderDatabase
	Now      func() time.Time
	NewID    func() string
	Location *time.Location
}

// NewIntake returns an Intake that evaluates dates in loc
func NewIntake(db databases.UserOrderDatabase, loc *time.Location) *Intake {
	if loc == nil {
		loc = time.UTC
	}
	return &Intake{
		DB:       db,
		Now:      time.Now,
		NewID:    uuid.NewString,
		Location: loc,
	}
}

// Submit validates req, makes sure the email is not registered under another
// name and appends a pending order for car to the customer's record. Returned
// errors are a *ValidationError, ErrIdentityMismatch, ErrIdentityCheck or
// ErrWriteFailed; the last two wrap the store error.
func (in *Intake) Submit(ctx context.Context, car models.Car, req Request) (Result, error) {
	res := Result{State: StateIdle}
	transition := func(s State) {
		zap.S().Debugw("booking state", "from", res.State, "to", s, "car", car.Slug.Current)
		res.State = s
	}

	transition(StateValidating)
	now := in.Now().In(in.Location)
	period, err := Validate(req, now)
	if err != nil {
		transition(StateRejected)
		return res, err
	}

	customer := models.Customer{
		Name:  req.FullName(),
		Email: strings.TrimSpace(req.Email),
		Phone: strings.TrimSpace(req.Phone),
	}
	res.Customer = customer

	transition(StateEmailChecking)
	existing, err := in.DB.FindOne(ctx, bson.M{"userEmail": customer.Email})
	switch {
	case errors.Is(err, mongo.ErrNoDocuments):
	case err != nil:
		transition(StateRejected)
		return res, fmt.Errorf("%w: %w", ErrIdentityCheck, err)
	case existing.UserName != customer.Name:
		transition(StateRejected)
		return res, ErrIdentityMismatch
	}

	transition(StateWriting)
	order := models.Order{
		Key:        in.NewID(),
		Car:        models.NewReference(car.ID),
		StartDate:  period.Start,
		EndDate:    period.End,
		TrackingID: in.NewID(),
		Status:     models.OrderStatusPending,
		CreatedAt:  now.UTC(),
	}
	created, err := in.DB.UpsertOrder(ctx, customer, order)
	if err != nil {
		transition(StateFailed)
		if mongo.IsDuplicateKeyError(err) {
			return res, ErrIdentityMismatch
		}
		return res, fmt.Errorf("%w: %w", ErrWriteFailed, err)
	}

	transition(StateSucceeded)
	res.Order = order
	res.TrackingID = order.TrackingID
	res.Created = created
	zap.S().Infow("booking recorded",
		"trackingId", order.TrackingID,
		"car", car.ID,
		"created", created)
	return res, nil
}
