package config

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/linesmerrill/car-rental-api/logging"
	"github.com/linesmerrill/car-rental-api/models"
)

// Config holds the project config values
type Config struct {
	URL                string
	DatabaseName       string
	BaseURL            string
	Port               string
	Environment        string
	SessionSecret      string
	SessionTTL         time.Duration
	SendgridAPIKey     string
	MailFromName       string
	MailFromAddress    string
	KafkaBrokers       []string
	KafkaTopic         string
	Location           *time.Location
	RequestTimeout     time.Duration
	CompletionSchedule string
}

// New sets up all config related services
func New() *Config {
	// a missing .env is fine, the environment is used as is
	_ = godotenv.Load()

	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("DB_URI", "mongodb://127.0.0.1:27017")
	v.SetDefault("DB_NAME", "car-rental")
	v.SetDefault("PORT", "8080")
	v.SetDefault("ENVIRONMENT", "local")
	v.SetDefault("SESSION_TTL", "720h")
	v.SetDefault("MAIL_FROM_NAME", "Morent Car Rental")
	v.SetDefault("MAIL_FROM_ADDRESS", "no-reply@morent-rental.com")
	v.SetDefault("KAFKA_TOPIC", "car-rental.orders")
	v.SetDefault("TIMEZONE", "UTC")
	v.SetDefault("REQUEST_TIMEOUT", "30s")
	v.SetDefault("COMPLETION_SCHEDULE", "0 * * * *")

	//setup zap logger and replace default logger
	logger, err := logging.New(v.GetString("ENVIRONMENT"))
	if err != nil {
		logger = zap.NewExample()
	}
	_ = zap.ReplaceGlobals(logger)

	loc, err := time.LoadLocation(v.GetString("TIMEZONE"))
	if err != nil {
		zap.S().Warnw("unknown timezone, falling back to UTC", "timezone", v.GetString("TIMEZONE"), "error", err)
		loc = time.UTC
	}

	return &Config{
		URL:                v.GetString("DB_URI"),
		DatabaseName:       v.GetString("DB_NAME"),
		BaseURL:            v.GetString("BASE_URL"),
		Port:               v.GetString("PORT"),
		Environment:        v.GetString("ENVIRONMENT"),
		SessionSecret:      v.GetString("SESSION_SECRET"),
		SessionTTL:         v.GetDuration("SESSION_TTL"),
		SendgridAPIKey:     v.GetString("SENDGRID_API_KEY"),
		MailFromName:       v.GetString("MAIL_FROM_NAME"),
		MailFromAddress:    v.GetString("MAIL_FROM_ADDRESS"),
		KafkaBrokers:       splitList(v.GetString("KAFKA_BROKERS")),
		KafkaTopic:         v.GetString("KAFKA_TOPIC"),
		Location:           loc,
		RequestTimeout:     v.GetDuration("REQUEST_TIMEOUT"),
		CompletionSchedule: v.GetString("COMPLETION_SCHEDULE"),
	}
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// ErrorStatus is a useful function that will log, write http headers and body for a
// give message, status code and err
func ErrorStatus(message string, httpStatusCode int, w http.ResponseWriter, err error) {
	zap.S().With("error", err).Error(message)
	errText := ""
	if err != nil {
		errText = err.Error()
	}
	b, _ := json.Marshal(models.ErrorMessageResponse{
		Response: models.MessageError{
			Message: message,
			Error:   errText,
		},
	})
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(httpStatusCode)
	w.Write(b)
}
