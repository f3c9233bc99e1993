package templates

import (
	"fmt"
	"html"
)

// BookingEmailData holds the values shown in the booking confirmation email
type BookingEmailData struct {
	CustomerName string
	CarName      string
	StartDate    string
	EndDate      string
	TrackingID   string
	Status       string
	OrdersURL    string
}

// RenderBookingConfirmationEmail generates the HTML for the booking confirmation email.
// Every value is HTML-escaped.
func RenderBookingConfirmationEmail(d BookingEmailData) string {
	body := fmt.Sprintf(`<h2>Hi %s,</h2>
      <p>Your booking is in. Keep your tracking id handy when you pick the car up.</p>
      <table class="details">
        <tr><td class="label">Car</td><td>%s</td></tr>
        <tr><td class="label">Pick-up</td><td>%s</td></tr>
        <tr><td class="label">Drop-off</td><td>%s</td></tr>
        <tr><td class="label">Tracking id</td><td>%s</td></tr>
        <tr><td class="label">Status</td><td>%s</td></tr>
      </table>`,
		html.EscapeString(d.CustomerName),
		html.EscapeString(d.CarName),
		html.EscapeString(d.StartDate),
		html.EscapeString(d.EndDate),
		html.EscapeString(d.TrackingID),
		html.EscapeString(d.Status),
	)
	if d.OrdersURL != "" {
		body += fmt.Sprintf(`
      <a class="cta-button" href="%s">View your orders</a>`, html.EscapeString(d.OrdersURL))
	}
	return layout("Booking Confirmed", body)
}
