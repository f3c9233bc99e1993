package handlers

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/linesmerrill/car-rental-api/api"
	"github.com/linesmerrill/car-rental-api/booking"
	"github.com/linesmerrill/car-rental-api/config"
	"github.com/linesmerrill/car-rental-api/databases"
	"github.com/linesmerrill/car-rental-api/events"
	"github.com/linesmerrill/car-rental-api/notify"
	"github.com/linesmerrill/car-rental-api/session"
)

// App stores the router and db connection, so it can be reused
type App struct {
	Router    *mux.Router
	Config    config.Config
	Sessions  *session.Manager
	Publisher events.Publisher
	Notifier  *notify.Notifier
	dbHelper  databases.DatabaseHelper
	client    databases.ClientHelper
}

// New creates a new mux router and all the routes
func (a *App) New() *mux.Router {
	a.setDefaults()

	carDB := databases.NewCarDatabase(a.dbHelper)
	userOrderDB := databases.NewUserOrderDatabase(a.dbHelper)

	c := Car{DB: carDB, Location: a.Config.Location}
	b := Booking{
		CarDB:     carDB,
		Intake:    booking.NewIntake(userOrderDB, a.Config.Location),
		Sessions:  a.Sessions,
		Publisher: a.Publisher,
		Notifier:  a.Notifier,
	}
	o := Orders{DB: userOrderDB, CarDB: carDB, Publisher: a.Publisher, Notifier: a.Notifier, Location: a.Config.Location}
	ls := LiveSearch{DB: carDB}

	r := mux.NewRouter()
	r.Use(api.RequestIDMiddleware, api.RecoverMiddleware, api.MetricsMiddleware)

	// healthchex
	var pinger api.Pinger
	if a.client != nil {
		pinger = a.client
	}
	r.Handle("/health", api.HealthCheckHandler(pinger)).Methods("GET")
	r.Handle("/metrics", promhttp.Handler()).Methods("GET")

	r.HandleFunc("/ws/search", ls.LiveSearchHandler).Methods("GET")

	apiCreate := r.PathPrefix("/api/v1").Subrouter()
	apiCreate.Use(api.TimeoutMiddleware(a.Config.RequestTimeout), a.Sessions.Middleware)

	apiCreate.HandleFunc("/cars", c.CarsHandler).Methods("GET")
	apiCreate.HandleFunc("/cars/search", c.SearchHandler).Methods("GET")
	apiCreate.HandleFunc("/cars/facets", c.FacetsHandler).Methods("GET")
	apiCreate.HandleFunc("/cars/{slug}", c.CarBySlugHandler).Methods("GET")
	apiCreate.HandleFunc("/cars/{slug}/quote", c.QuoteHandler).Methods("GET")

	apiCreate.HandleFunc("/bookings/{slug}", b.BookingHandler).Methods("POST")

	apiCreate.HandleFunc("/orders", o.OrdersHandler).Methods("GET")
	apiCreate.HandleFunc("/orders", o.ClearOrdersHandler).Methods("DELETE")
	apiCreate.HandleFunc("/orders/{tracking_id}/receipt", o.ReceiptHandler).Methods("GET")

	// swagger docs hosted at "/"
	r.PathPrefix("/").Handler(http.StripPrefix("/", http.FileServer(http.Dir("./docs/"))))
	return r
}

func (a *App) setDefaults() {
	if a.Config.Location == nil {
		a.Config.Location = time.UTC
	}
	if a.Config.RequestTimeout <= 0 {
		a.Config.RequestTimeout = 30 * time.Second
	}
	if a.Sessions == nil {
		a.Sessions = session.NewManager(context.Background(), a.Config.SessionSecret, a.Config.SessionTTL)
	}
	if a.Publisher == nil {
		a.Publisher = events.LogPublisher{}
	}
	if a.Notifier == nil {
		a.Notifier = notify.New("", a.Config.MailFromName, a.Config.MailFromAddress, a.Config.BaseURL)
	}
}

// Initialize is invoked by main to connect with the database and create a router
func (a *App) Initialize(ctx context.Context) error {
	client, err := databases.NewClient(&a.Config)
	if err != nil {
		// if we fail to create a new database client, then kill the pod
		zap.S().With(err).Error("failed to create new client")
		return err
	}

	a.client = client
	a.dbHelper = databases.NewDatabase(&a.Config, client)
	err = client.Connect(ctx)
	if err != nil {
		// if we fail to connect to the database, then kill the pod
		zap.S().With(err).Error("failed to connect to database")
		return err
	}
	zap.S().Info("car-rental-api has connected to the database")

	if err := a.ensureIndexes(ctx); err != nil {
		return err
	}

	if a.Config.SessionSecret == "" {
		return fmt.Errorf("session secret is not set")
	}
	a.Sessions = session.NewManager(ctx, a.Config.SessionSecret, a.Config.SessionTTL)
	a.Publisher = events.New(a.Config.KafkaBrokers, a.Config.KafkaTopic)
	a.Notifier = notify.New(a.Config.SendgridAPIKey, a.Config.MailFromName, a.Config.MailFromAddress, a.Config.BaseURL)

	// initialize api router
	a.initializeRoutes()
	return nil
}

func (a *App) ensureIndexes(ctx context.Context) error {
	ctx, cancel := api.WithQueryTimeout(ctx)
	defer cancel()
	if err := databases.NewCarDatabase(a.dbHelper).EnsureIndexes(ctx); err != nil {
		zap.S().With(err).Error("failed to create car indexes")
		return err
	}
	if err := databases.NewUserOrderDatabase(a.dbHelper).EnsureIndexes(ctx); err != nil {
		zap.S().With(err).Error("failed to create user order indexes")
		return err
	}
	return nil
}

// Database returns the database handle set up by Initialize
func (a *App) Database() databases.DatabaseHelper {
	return a.dbHelper
}

// Close releases the event publisher and the database connection
func (a *App) Close(ctx context.Context) {
	if a.Publisher != nil {
		if err := a.Publisher.Close(); err != nil {
			zap.S().Warnw("failed to close event publisher", "error", err)
		}
	}
	if a.client != nil {
		if err := a.client.Disconnect(ctx); err != nil {
			zap.S().Warnw("failed to disconnect from database", "error", err)
		}
	}
}

func (a *App) initializeRoutes() {
	a.Router = a.New()
}
