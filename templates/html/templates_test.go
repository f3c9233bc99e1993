package templates

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRenderGenericEmailEscapes(t *testing.T) {
	out := RenderGenericEmail("History <cleared>", "line one\n<script>x</script>")
	assert.Contains(t, out, "<title>History &lt;cleared&gt;</title>")
	assert.Contains(t, out, "line one<br>&lt;script&gt;x&lt;/script&gt;")
	assert.NotContains(t, out, "<script>")
}

func TestRenderBookingConfirmationEmail(t *testing.T) {
	out := RenderBookingConfirmationEmail(BookingEmailData{
		CustomerName: "Jane <Doe>",
		CarName:      "Nissan GT-R",
		StartDate:    "2024-06-20",
		EndDate:      "2024-06-22",
		TrackingID:   "track-1",
		Status:       "pending",
		OrdersURL:    "https://rent.example.com/orders",
	})
	assert.Contains(t, out, "Hi Jane &lt;Doe&gt;,")
	assert.Contains(t, out, "<td>Nissan GT-R</td>")
	assert.Contains(t, out, "<td>track-1</td>")
	assert.Contains(t, out, `href="https://rent.example.com/orders"`)
	assert.Contains(t, out, "width: 40%;")
}

func TestRenderBookingConfirmationEmailWithoutLink(t *testing.T) {
	out := RenderBookingConfirmationEmail(BookingEmailData{CustomerName: "Jane"})
	assert.NotContains(t, out, "cta-button\" href")
}
