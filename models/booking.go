package models

import "time"

// BookingResponse is returned after a booking was recorded. SessionToken
// identifies the renter on later order history requests.
type BookingResponse struct {
	TrackingID   string      `json:"trackingId"`
	Status       OrderStatus `json:"status"`
	StartDate    time.Time   `json:"startDate"`
	EndDate      time.Time   `json:"endDate"`
	Car          CarSummary  `json:"car"`
	Created      bool        `json:"created"`
	SessionToken string      `json:"sessionToken,omitempty"`
}

// ValidationErrorResponse lists the invalid form fields with their messages
type ValidationErrorResponse struct {
	Errors map[string]string `json:"errors"`
}

// LiveSearchQuery is a message sent by a live search client
type LiveSearchQuery struct {
	Query string `json:"query"`
}

// LiveSearchResult answers a LiveSearchQuery
type LiveSearchResult struct {
	Query   string `json:"query"`
	Results []Car  `json:"results"`
}
