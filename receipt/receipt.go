// Package receipt renders PDF rental receipts.
package receipt

import (
	"bytes"
	"fmt"
	"time"

	"github.com/phpdave11/gofpdf"

	"github.com/linesmerrill/car-rental-api/booking"
	"github.com/linesmerrill/car-rental-api/models"
)

const dateLayout = "2006-01-02"

// Data is everything printed on a receipt. Car is nil when the rented car is
// no longer in the catalog. Dates are printed in Location, UTC when nil.
type Data struct {
	UserName    string
	UserEmail   string
	PhoneNumber string
	Order       models.Order
	Car         *models.Car
	IssuedAt    time.Time
	Location    *time.Location
}

// Filename is the download name of the receipt for trackingID
func Filename(trackingID string) string {
	return fmt.Sprintf("receipt-%s.pdf", trackingID)
}

func (d Data) location() *time.Location {
	if d.Location == nil {
		return time.UTC
	}
	return d.Location
}

// period is the rental in the receipt location. Stored dates come back from
// mongo in UTC.
func (d Data) period() booking.Period {
	loc := d.location()
	return booking.Period{Start: d.Order.StartDate.In(loc), End: d.Order.EndDate.In(loc)}
}

// Render builds the receipt PDF
func Render(d Data) ([]byte, error) {
	loc := d.location()
	rental := d.period()

	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetTitle("Rental Receipt", false)
	pdf.SetCreator("car-rental-api", false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "RENTAL RECEIPT")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 12)
	line := func(label, value string) {
		if value == "" {
			value = "-"
		}
		pdf.Cell(0, 7, tr(fmt.Sprintf("%-14s: %s", label, value)))
		pdf.Ln(7)
	}
	line("Tracking id", d.Order.TrackingID)
	line("Issued", d.IssuedAt.In(loc).Format("2006-01-02 15:04"))
	line("Status", string(d.Order.Status.Normalize()))
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 7, "Renter")
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "", 12)
	line("Name", d.UserName)
	line("Email", d.UserEmail)
	line("Phone", d.PhoneNumber)
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 7, "Rental")
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "", 12)
	line("Pick-up", rental.Start.Format(dateLayout))
	line("Drop-off", rental.End.Format(dateLayout))

	if d.Car == nil {
		line("Car", "no longer available")
	} else {
		line("Car", d.Car.Name)
		line("Brand", d.Car.Brand)
		line("Type", d.Car.Type)
		q := booking.NewQuote(*d.Car, rental)
		line("Days", fmt.Sprintf("%d", q.Days))
		line("Price per day", "$"+q.PricePerDay.StringFixed(2))
		if q.Savings.IsPositive() {
			line("You saved", "$"+q.Savings.StringFixed(2))
		}
		pdf.Ln(2)
		pdf.SetFont("Helvetica", "B", 12)
		pdf.Cell(0, 8, "Total: $"+q.Total.StringFixed(2))
		pdf.Ln(12)
	}

	pdf.SetFont("Helvetica", "I", 10)
	pdf.MultiCell(0, 6, "Payment card details are not stored. Present your tracking id when you pick up the car.", "", "", false)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
