package booking

import (
	"errors"
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"
)

// Form field keys used in ValidationErrors
const (
	FieldFirstName  = "firstName"
	FieldLastName   = "lastName"
	FieldEmail      = "email"
	FieldPhone      = "phone"
	FieldDates      = "dates"
	FieldCardNumber = "cardNumber"
	FieldExpiryDate = "expiryDate"
	FieldCVV        = "cvv"
)

const dateLayout = "2006-01-02"

var (
	emailRegex      = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phoneRegex      = regexp.MustCompile(`^\+?[\d\s-]{10,}$`)
	cardNumberRegex = regexp.MustCompile(`^\d{16}$`)
	expiryRegex     = regexp.MustCompile(`^(\d{2})/(\d{2})$`)
	cvvRegex        = regexp.MustCompile(`^\d{3,4}$`)
	whitespaceRegex = regexp.MustCompile(`\s+`)
)

// ErrInvalidDate is returned by ParseDate for values that are not a date
var ErrInvalidDate = errors.New("invalid date")

// Request is a booking form submission. The card fields are only checked for
// shape and never leave this package.
type Request struct {
	FirstName  string `json:"firstName"`
	LastName   string `json:"lastName"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	StartDate  string `json:"startDate"`
	EndDate    string `json:"endDate"`
	CardNumber string `json:"cardNumber"`
	ExpiryDate string `json:"expiryDate"`
	CVV        string `json:"cvv"`
}

// FullName is the name a customer record is registered under
func (r Request) FullName() string {
	return strings.TrimSpace(r.FirstName) + " " + strings.TrimSpace(r.LastName)
}

// Period is a validated rental period. Both ends are dates at midnight.
type Period struct {
	Start time.Time
	End   time.Time
}

// ValidateName reports whether a first or last name has at least two characters
func ValidateName(name string) bool {
	return utf8.RuneCountInString(strings.TrimSpace(name)) >= 2
}

// ValidateEmail reports whether email looks like local@domain.tld
func ValidateEmail(email string) bool {
	return emailRegex.MatchString(email)
}

// ValidatePhone reports whether phone has at least ten digits, spaces or dashes,
// optionally after a leading plus
func ValidatePhone(phone string) bool {
	return phoneRegex.MatchString(phone)
}

// ParseDate reads a YYYY-MM-DD or RFC3339 value and returns that date at
// midnight in loc
func ParseDate(value string, loc *time.Location) (time.Time, error) {
	value = strings.TrimSpace(value)
	if t, err := time.ParseInLocation(dateLayout, value, loc); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, ErrInvalidDate
	}
	return dateOf(t.In(loc)), nil
}

func dateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// ValidateDates reports whether start is not before the day of now and end is
// not before start
func ValidateDates(start, end, now time.Time) bool {
	today := dateOf(now)
	return !dateOf(start).Before(today) && !dateOf(end).Before(dateOf(start))
}

// ValidateCardNumber reports whether the number is exactly 16 digits once
// whitespace is removed
func ValidateCardNumber(number string) bool {
	return cardNumberRegex.MatchString(whitespaceRegex.ReplaceAllString(number, ""))
}

// ValidateExpiry reports whether expiry is MM/YY with a valid month and the
// first day of that month is after now
func ValidateExpiry(expiry string, now time.Time) bool {
	m := expiryRegex.FindStringSubmatch(expiry)
	if m == nil {
		return false
	}
	month, _ := strconv.Atoi(m[1])
	year, _ := strconv.Atoi(m[2])
	if month < 1 || month > 12 {
		return false
	}
	return time.Date(2000+year, time.Month(month), 1, 0, 0, 0, 0, now.Location()).After(now)
}

// ValidateCVV reports whether cvv is three or four digits
func ValidateCVV(cvv string) bool {
	return cvvRegex.MatchString(cvv)
}

// Validate runs every field check against req and collects all failures into
// a *ValidationError. Dates are interpreted in the location of now.
func Validate(req Request, now time.Time) (Period, error) {
	errs := ValidationErrors{}

	if !ValidateName(req.FirstName) {
		errs[FieldFirstName] = MessageFirstNameTooShort
	}
	if !ValidateName(req.LastName) {
		errs[FieldLastName] = MessageLastNameTooShort
	}
	if !ValidateEmail(strings.TrimSpace(req.Email)) {
		errs[FieldEmail] = MessageInvalidEmail
	}
	if !ValidatePhone(req.Phone) {
		errs[FieldPhone] = MessageInvalidPhone
	}

	var period Period
	start, startErr := ParseDate(req.StartDate, now.Location())
	end, endErr := ParseDate(req.EndDate, now.Location())
	if startErr != nil || endErr != nil || !ValidateDates(start, end, now) {
		errs[FieldDates] = MessageInvalidDateRange
	} else {
		period = Period{Start: start, End: end}
	}

	if !ValidateCardNumber(req.CardNumber) {
		errs[FieldCardNumber] = MessageInvalidCardNumber
	}
	if !ValidateExpiry(req.ExpiryDate, now) {
		errs[FieldExpiryDate] = MessageInvalidExpiry
	}
	if !ValidateCVV(req.CVV) {
		errs[FieldCVV] = MessageInvalidCVV
	}

	if len(errs) > 0 {
		return Period{}, &ValidationError{Fields: errs}
	}
	return period, nil
}
