// Package docs Car Rental API.
//
// Documentation of the Car Rental API.
//
//     Schemes: https
//     BasePath: /
//     Version: 1.0.0
//     Host: https://car-rental-api.herokuapp.com
//
//     Consumes:
//     - application/json
//
//     Produces:
//     - application/json
//
//     Security:
//     - bearer
//
//    SecurityDefinitions:
//    bearer:
//      type: apiKey
//      name: Authorization
//      in: header
//
// swagger:meta
package docs

import (
	"github.com/linesmerrill/car-rental-api/booking"
	"github.com/linesmerrill/car-rental-api/catalog"
	"github.com/linesmerrill/car-rental-api/models"
)

// swagger:route GET /health health healthEndpointID
// Lists the healthchex of the web service api.
// responses:
//   200: healthResponse
//   503: healthResponse

// Shows the current health of the api. true means it is alive, false means it is not.
// swagger:response healthResponse
type healthResponseWrapper struct {
	// in:body
	Body models.HealthCheckResponse
}

// swagger:route GET /api/v1/cars cars listCars
// Lists the catalog, narrowed by the type, seatingCapacity and fuelCapacity query parameters.
// responses:
//   200: carsResponse
//   500: errorResponse

// swagger:route GET /api/v1/cars/search cars searchCars
// Lists the cars whose name contains q. A blank q returns an empty list.
// responses:
//   200: carsResponse
//   500: errorResponse

// A list of cars
// swagger:response carsResponse
type carsResponseWrapper struct {
	// in:body
	Body []models.Car
}

// swagger:route GET /api/v1/cars/facets cars carFacets
// Lists the selectable values of every facet.
// responses:
//   200: facetsResponse

// Selectable values per facet
// swagger:response facetsResponse
type facetsResponseWrapper struct {
	// in:body
	Body catalog.Facets
}

// swagger:route GET /api/v1/cars/{slug} cars carBySlug
// Gets a single car by slug.
// responses:
//   200: carResponse
//   404: errorResponse

// Shows a single car by the given {slug}
// swagger:response carResponse
type carResponseWrapper struct {
	// in:body
	Body models.Car
}

// swagger:route GET /api/v1/cars/{slug}/quote cars carQuote
// Prices a rental between startDate and endDate, both days included.
// responses:
//   200: quoteResponse
//   400: errorResponse
//   404: errorResponse

// The price of a rental
// swagger:response quoteResponse
type quoteResponseWrapper struct {
	// in:body
	Body booking.Quote
}

// swagger:route POST /api/v1/bookings/{slug} bookings createBooking
// Books a car. Card fields are checked for shape only and are never stored.
// responses:
//   200: bookingResponse
//   201: bookingResponse
//   400: validationErrorResponse
//   404: errorResponse
//   409: errorResponse
//   500: errorResponse
//   503: errorResponse

// swagger:parameters createBooking
type bookingRequestWrapper struct {
	// in:body
	Body booking.Request
}

// The recorded booking and the session token of the renter
// swagger:response bookingResponse
type bookingResponseWrapper struct {
	// in:body
	Body models.BookingResponse
}

// Invalid form fields
// swagger:response validationErrorResponse
type validationErrorResponseWrapper struct {
	// in:body
	Body models.ValidationErrorResponse
}

// swagger:route GET /api/v1/orders orders orderHistory
// Gets the order history of the session's renter.
// responses:
//   200: orderHistoryResponse
//   303: description: no session or no order history, redirects to the catalog
//   500: errorResponse

// swagger:route DELETE /api/v1/orders orders clearOrderHistory
// Clears the order history of the session's renter.
// responses:
//   200: description: history cleared
//   404: errorResponse
//   500: errorResponse

// The renter's orders
// swagger:response orderHistoryResponse
type orderHistoryResponseWrapper struct {
	// in:body
	Body models.OrderHistory
}

// swagger:route GET /api/v1/orders/{tracking_id}/receipt orders orderReceipt
// Downloads the PDF receipt of one order.
// Produces:
// - application/pdf
// responses:
//   200: description: the receipt
//   404: errorResponse

// An error
// swagger:response errorResponse
type errorResponseWrapper struct {
	// in:body
	Body models.ErrorMessageResponse
}
