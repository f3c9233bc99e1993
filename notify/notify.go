// Package notify sends renter emails through SendGrid.
package notify

import (
	"context"
	"fmt"
	"strings"

	"github.com/sendgrid/rest"
	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"go.uber.org/zap"

	"github.com/linesmerrill/car-rental-api/models"
	templates "github.com/linesmerrill/car-rental-api/templates/html"
)

const dateLayout = "2006-01-02"

// Sender delivers a prepared message. *sendgrid.Client satisfies it.
type Sender interface {
	Send(email *mail.SGMailV3) (*rest.Response, error)
}

// Notifier sends booking related emails. A Notifier without a Sender logs and
// drops every message.
type Notifier struct {
	Sender  Sender
	From    *mail.Email
	BaseURL string
}

// New returns a Notifier using the SendGrid API key, or a disabled one when
// the key is empty
func New(apiKey, fromName, fromAddress, baseURL string) *Notifier {
	n := &Notifier{
		From:    mail.NewEmail(fromName, fromAddress),
		BaseURL: strings.TrimRight(baseURL, "/"),
	}
	if apiKey != "" {
		n.Sender = sendgrid.NewSendClient(apiKey)
	}
	return n
}

// BookingConfirmation emails the renter the details of a new order
func (n *Notifier) BookingConfirmation(ctx context.Context, customer models.Customer, order models.Order, car models.Car) error {
	subject := "Your booking is confirmed: " + car.Name
	data := templates.BookingEmailData{
		CustomerName: customer.Name,
		CarName:      car.Name,
		StartDate:    order.StartDate.Format(dateLayout),
		EndDate:      order.EndDate.Format(dateLayout),
		TrackingID:   order.TrackingID,
		Status:       string(order.Status),
	}
	if n.BaseURL != "" {
		data.OrdersURL = n.BaseURL + "/api/v1/orders"
	}
	plainText := fmt.Sprintf("Hi %s, your booking of %s from %s to %s is in. Tracking id: %s.",
		customer.Name, car.Name, data.StartDate, data.EndDate, order.TrackingID)
	return n.send(ctx, customer, subject, plainText, templates.RenderBookingConfirmationEmail(data))
}

// HistoryCleared tells the renter their order history was cleared
func (n *Notifier) HistoryCleared(ctx context.Context, customer models.Customer) error {
	subject := "Your rental history was cleared"
	body := fmt.Sprintf("Hi %s,\nthe order history for %s was cleared at your request.", customer.Name, customer.Email)
	return n.send(ctx, customer, subject, body, templates.RenderGenericEmail(subject, body))
}

func (n *Notifier) send(ctx context.Context, customer models.Customer, subject, plainText, htmlContent string) error {
	if n.Sender == nil {
		zap.S().Debugw("email delivery disabled, dropping message", "to", customer.Email, "subject", subject)
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	to := mail.NewEmail(customer.Name, customer.Email)
	message := mail.NewSingleEmail(n.From, subject, to, plainText, htmlContent)
	response, err := n.Sender.Send(message)
	if err != nil {
		zap.S().Errorw("failed to send email", "error", err, "to", customer.Email)
		return err
	}
	if response.StatusCode >= 400 {
		zap.S().Errorw("sendgrid returned error status", "status", response.StatusCode, "body", response.Body, "to", customer.Email)
		return fmt.Errorf("sendgrid error: status %d", response.StatusCode)
	}
	zap.S().Infow("email sent successfully", "to", customer.Email, "subject", subject)
	return nil
}

// Go runs fn in its own goroutine. Failures and panics are logged and never
// reach the caller.
func Go(name string, fn func(ctx context.Context) error) {
	go func() {
		defer func() {
			if r := recover(); r != nil {
				zap.S().Errorw("panic in background task", "task", name, "panic", r)
			}
		}()
		if err := fn(context.Background()); err != nil {
			zap.S().Warnw("background task failed", "task", name, "error", err)
		}
	}()
}
