package errors

import (
	"fmt"
	"net/http"
)

// default error is internal service error at handler level
// if error has different status code use ErrorWithStatusCode
type ErrorWithStatusCode struct {
	Message    string
	StatusCode int
}

func (e *ErrorWithStatusCode) Error() string {
	return e.Message
}

// Shared failure modes of the verification and password flows. Handlers map
// these to responses via WriteErrorAndStatusCode; nothing here is fatal to
// the process.
var (
	AccountNotFound        = &ErrorWithStatusCode{Message: "Account not found", StatusCode: http.StatusNotFound}
	AccountAlreadyVerified = &ErrorWithStatusCode{Message: "Account already verified. Please login", StatusCode: http.StatusConflict}
	CodeNotFound           = &ErrorWithStatusCode{Message: "Invalid or expired code", StatusCode: http.StatusBadRequest}
	CodeExpired            = &ErrorWithStatusCode{Message: "Code expired. Please request a new one", StatusCode: http.StatusBadRequest}
	NotConfirmed           = &ErrorWithStatusCode{Message: "Verify the code sent to your email before resetting the password", StatusCode: http.StatusForbidden}
	DeliveryFailed         = &ErrorWithStatusCode{Message: "Failed to send the code. Please try again", StatusCode: http.StatusBadGateway}
)

// CooldownActive reports how long the caller has to wait before the next
// code can be issued for the same identifier.
func CooldownActive(secondsRemaining int) *ErrorWithStatusCode {
	return &ErrorWithStatusCode{
		Message:    fmt.Sprintf("Please wait %d seconds before requesting a new code", secondsRemaining),
		StatusCode: http.StatusTooManyRequests,
	}
}

// ValidationFailed covers bad form input: missing fields, malformed email,
// password policy violations.
func ValidationFailed(message string) *ErrorWithStatusCode {
	return &ErrorWithStatusCode{Message: message, StatusCode: http.StatusBadRequest}
}

func IsNotFound(err error) bool {
	e, ok := err.(*ErrorWithStatusCode)
	return ok && e.StatusCode == http.StatusNotFound
}

func IsCooldown(err error) bool {
	e, ok := err.(*ErrorWithStatusCode)
	return ok && e.StatusCode == http.StatusTooManyRequests
}
