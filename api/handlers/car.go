package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"github.com/linesmerrill/car-rental-api/api"
	"github.com/linesmerrill/car-rental-api/booking"
	"github.com/linesmerrill/car-rental-api/catalog"
	"github.com/linesmerrill/car-rental-api/config"
	"github.com/linesmerrill/car-rental-api/databases"
	"github.com/linesmerrill/car-rental-api/models"
)

// Car exported for testing purposes
type Car struct {
	DB       databases.CarDatabase
	Location *time.Location
	Now      func() time.Time
}

// CarsHandler returns the catalog, narrowed by the type, seatingCapacity and
// fuelCapacity query parameters when present
func (c Car) CarsHandler(w http.ResponseWriter, r *http.Request) {
	cars, ok := c.loadCatalog(w, r)
	if !ok {
		return
	}
	facets := catalog.ParseFacets(r.URL.Query())
	zap.S().Debugw("filtering catalog", "facets", facets)
	writeJSON(w, http.StatusOK, catalog.Filter(cars, facets))
}

// SearchHandler returns the cars whose name contains the q query parameter
func (c Car) SearchHandler(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	cars, ok := c.loadCatalog(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, catalog.Search(cars, q))
}

// FacetsHandler returns the selectable values of every facet
func (c Car) FacetsHandler(w http.ResponseWriter, r *http.Request) {
	cars, ok := c.loadCatalog(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, catalog.FacetValues(cars))
}

// CarBySlugHandler returns a car by its slug
func (c Car) CarBySlugHandler(w http.ResponseWriter, r *http.Request) {
	car, ok := findCarBySlug(w, r, c.DB)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, car)
}

// QuoteHandler prices a rental of the car between the startDate and endDate
// query parameters
func (c Car) QuoteHandler(w http.ResponseWriter, r *http.Request) {
	loc := c.Location
	if loc == nil {
		loc = time.UTC
	}
	now := time.Now
	if c.Now != nil {
		now = c.Now
	}

	start, startErr := booking.ParseDate(r.URL.Query().Get("startDate"), loc)
	end, endErr := booking.ParseDate(r.URL.Query().Get("endDate"), loc)
	if err := errors.Join(startErr, endErr); err != nil {
		config.ErrorStatus(booking.MessageInvalidDateRange, http.StatusBadRequest, w, err)
		return
	}
	if !booking.ValidateDates(start, end, now().In(loc)) {
		config.ErrorStatus(booking.MessageInvalidDateRange, http.StatusBadRequest, w, errors.New("dates must not be in the past and end must not be before start"))
		return
	}

	car, ok := findCarBySlug(w, r, c.DB)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, booking.NewQuote(*car, booking.Period{Start: start, End: end}))
}

func (c Car) loadCatalog(w http.ResponseWriter, r *http.Request) ([]models.Car, bool) {
	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()
	cars, err := c.DB.Find(ctx, bson.M{})
	if err != nil {
		config.ErrorStatus("failed to get cars", http.StatusInternalServerError, w, err)
		return nil, false
	}
	return cars, true
}

// findCarBySlug looks up the car named by the slug route variable and writes
// the error response itself when there is none
func findCarBySlug(w http.ResponseWriter, r *http.Request, db databases.CarDatabase) (*models.Car, bool) {
	slug := mux.Vars(r)["slug"]
	zap.S().Debugf("slug: %v", slug)

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()
	car, err := db.FindOne(ctx, bson.M{"slug.current": slug})
	if errors.Is(err, mongo.ErrNoDocuments) {
		config.ErrorStatus("car not found", http.StatusNotFound, w, err)
		return nil, false
	}
	if err != nil {
		config.ErrorStatus("failed to get car by slug", http.StatusInternalServerError, w, err)
		return nil, false
	}
	return car, true
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	b, err := json.Marshal(v)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(b)
}
