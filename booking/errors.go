package booking

import (
	"errors"
	"sort"
	"strings"
)

// Messages shown to the renter when a submission cannot be completed
const (
	MessageIdentityMismatch = "This email is associated with a different name. Please use your registered email."
	MessageIdentityCheck    = "Error validating user information. Please try again."
	MessageWriteFailed      = "Failed to process payment. Please try again."
)

// Field validation messages
const (
	MessageFirstNameTooShort = "First name is too short"
	MessageLastNameTooShort  = "Last name is too short"
	MessageInvalidEmail      = "Invalid email address"
	MessageInvalidPhone      = "Invalid phone number"
	MessageInvalidDateRange  = "Invalid date range"
	MessageInvalidCardNumber = "Invalid card number"
	MessageInvalidExpiry     = "Invalid expiry date"
	MessageInvalidCVV        = "Invalid CVV"
)

var (
	// ErrIdentityMismatch is returned when the email is already registered under another name
	ErrIdentityMismatch = errors.New(MessageIdentityMismatch)
	// ErrIdentityCheck is returned when the existing record for the email could not be read
	ErrIdentityCheck = errors.New(MessageIdentityCheck)
	// ErrWriteFailed is returned when the order could not be stored
	ErrWriteFailed = errors.New(MessageWriteFailed)
)

// ValidationErrors maps a form field to its validation message
type ValidationErrors map[string]string

// ValidationError is returned when one or more fields of a Request are invalid
type ValidationError struct {
	Fields ValidationErrors
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Fields[k])
	}
	return "invalid booking request: " + strings.Join(parts, ", ")
}
