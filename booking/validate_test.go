package booking

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2024, time.June, 15, 10, 30, 0, 0, time.UTC)

func validRequest() Request {
	return Request{
		FirstName:  "Jane",
		LastName:   "Doe",
		Email:      "jane@example.com",
		Phone:      "+1 555-123-4567",
		StartDate:  "2024-06-20",
		EndDate:    "2024-06-22",
		CardNumber: "4242 4242 4242 4242",
		ExpiryDate: "12/27",
		CVV:        "123",
	}
}

func TestValidateName(t *testing.T) {
	assert.True(t, ValidateName("Al"))
	assert.True(t, ValidateName("Zoë"))
	assert.False(t, ValidateName("A"))
	assert.False(t, ValidateName(" A "))
	assert.False(t, ValidateName(""))
}

func TestValidateEmail(t *testing.T) {
	valid := []string{"jane@example.com", "a@b.co", "first.last+tag@sub.domain.org"}
	invalid := []string{"", "jane", "jane@example", "@example.com", "jane @example.com", "jane@@example.com"}
	for _, e := range valid {
		assert.True(t, ValidateEmail(e), e)
	}
	for _, e := range invalid {
		assert.False(t, ValidateEmail(e), e)
	}
}

func TestValidatePhone(t *testing.T) {
	valid := []string{"5551234567", "+15551234567", "555-123-4567", "+1 555 123 4567"}
	invalid := []string{"", "555-1234", "555.123.4567", "phone12345678", "++15551234567"}
	for _, p := range valid {
		assert.True(t, ValidatePhone(p), p)
	}
	for _, p := range invalid {
		assert.False(t, ValidatePhone(p), p)
	}
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2024-06-20", time.UTC)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, time.June, 20, 0, 0, 0, 0, time.UTC), d)

	d, err = ParseDate("2024-06-20T23:15:00Z", time.UTC)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, time.June, 20, 0, 0, 0, 0, time.UTC), d)

	_, err = ParseDate("20/06/2024", time.UTC)
	assert.True(t, errors.Is(err, ErrInvalidDate))

	_, err = ParseDate("", time.UTC)
	assert.Error(t, err)
}

func TestParseDateConvertsToLocation(t *testing.T) {
	loc := time.FixedZone("UTC+3", 3*60*60)
	d, err := ParseDate("2024-06-20T22:00:00Z", loc)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, time.June, 21, 0, 0, 0, 0, loc), d)
}

func TestValidateDates(t *testing.T) {
	today := time.Date(2024, time.June, 15, 0, 0, 0, 0, time.UTC)
	tomorrow := today.AddDate(0, 0, 1)
	yesterday := today.AddDate(0, 0, -1)

	assert.True(t, ValidateDates(today, today, testNow), "same day rental starting today")
	assert.True(t, ValidateDates(today, tomorrow, testNow))
	assert.False(t, ValidateDates(yesterday, tomorrow, testNow), "start before today")
	assert.False(t, ValidateDates(tomorrow, today, testNow), "end before start")
}

func TestValidateCardNumber(t *testing.T) {
	assert.True(t, ValidateCardNumber("4242424242424242"))
	assert.True(t, ValidateCardNumber("4242 4242 4242 4242"))
	assert.True(t, ValidateCardNumber(" 4242\t4242 42424242 "))
	assert.False(t, ValidateCardNumber("424242424242424"))
	assert.False(t, ValidateCardNumber("42424242424242424"))
	assert.False(t, ValidateCardNumber("4242-4242-4242-4242"))
	assert.False(t, ValidateCardNumber(""))
}

func TestValidateExpiry(t *testing.T) {
	assert.True(t, ValidateExpiry("07/24", testNow))
	assert.True(t, ValidateExpiry("01/30", testNow))
	assert.False(t, ValidateExpiry("06/24", testNow), "first day of current month is in the past")
	assert.False(t, ValidateExpiry("05/24", testNow))
	assert.False(t, ValidateExpiry("13/30", testNow))
	assert.False(t, ValidateExpiry("00/30", testNow))
	assert.False(t, ValidateExpiry("1/30", testNow))
	assert.False(t, ValidateExpiry("01/2030", testNow))
}

func TestValidateCVV(t *testing.T) {
	assert.True(t, ValidateCVV("123"))
	assert.True(t, ValidateCVV("1234"))
	assert.False(t, ValidateCVV("12"))
	assert.False(t, ValidateCVV("12345"))
	assert.False(t, ValidateCVV("12a"))
}

func TestValidateAcceptsValidRequest(t *testing.T) {
	p, err := Validate(validRequest(), testNow)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, time.June, 20, 0, 0, 0, 0, time.UTC), p.Start)
	assert.Equal(t, time.Date(2024, time.June, 22, 0, 0, 0, 0, time.UTC), p.End)
}

func TestValidateCollectsEveryFailure(t *testing.T) {
	req := Request{
		FirstName:  "J",
		LastName:   "",
		Email:      "not-an-email",
		Phone:      "123",
		StartDate:  "2024-06-10",
		EndDate:    "2024-06-12",
		CardNumber: "1234",
		ExpiryDate: "13/99",
		CVV:        "1",
	}
	_, err := Validate(req, testNow)
	var vErr *ValidationError
	require.True(t, errors.As(err, &vErr))
	assert.Equal(t, ValidationErrors{
		FieldFirstName:  MessageFirstNameTooShort,
		FieldLastName:   MessageLastNameTooShort,
		FieldEmail:      MessageInvalidEmail,
		FieldPhone:      MessageInvalidPhone,
		FieldDates:      MessageInvalidDateRange,
		FieldCardNumber: MessageInvalidCardNumber,
		FieldExpiryDate: MessageInvalidExpiry,
		FieldCVV:        MessageInvalidCVV,
	}, vErr.Fields)
}

func TestValidateOnlyFailingFields(t *testing.T) {
	req := validRequest()
	req.CVV = "12"
	req.EndDate = "2024-06-19"
	_, err := Validate(req, testNow)
	var vErr *ValidationError
	require.True(t, errors.As(err, &vErr))
	assert.Len(t, vErr.Fields, 2)
	assert.Equal(t, MessageInvalidCVV, vErr.Fields[FieldCVV])
	assert.Equal(t, MessageInvalidDateRange, vErr.Fields[FieldDates])
}

func TestValidateUnparsableDate(t *testing.T) {
	req := validRequest()
	req.StartDate = "tomorrow"
	_, err := Validate(req, testNow)
	var vErr *ValidationError
	require.True(t, errors.As(err, &vErr))
	assert.Equal(t, MessageInvalidDateRange, vErr.Fields[FieldDates])
}

func TestValidationErrorMessageIsStable(t *testing.T) {
	err := &ValidationError{Fields: ValidationErrors{"cvv": "Invalid CVV", "email": "Invalid email address"}}
	assert.Equal(t, "invalid booking request: cvv: Invalid CVV, email: Invalid email address", err.Error())
}

func TestFullNameTrims(t *testing.T) {
	r := Request{FirstName: "  Jane ", LastName: "Doe "}
	assert.Equal(t, "Jane Doe", r.FullName())
}
