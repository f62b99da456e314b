package httperr

import "errors"

// Kind classifies a business error for the caller.
// Transient storage failures are not business errors; see dbretry.IsTransient.
type Kind int

const (
	KindBusiness Kind = iota
	KindInvalidInput
	KindNotFound
	KindBookingRejected
)

type BusinessError struct {
	Code string
	Kind Kind
}

func (e BusinessError) Error() string {
	return e.Code
}

func ErrBusiness(code string) error {
	return BusinessError{Code: code}
}

func InvalidInput(code string) error {
	return BusinessError{Code: code, Kind: KindInvalidInput}
}

func NotFoundErr(code string) error {
	return BusinessError{Code: code, Kind: KindNotFound}
}

// Rejected signals a normal negative booking outcome (table taken, blocked...).
// It is never retried.
func Rejected(code string) error {
	return BusinessError{Code: code, Kind: KindBookingRejected}
}

func IsBusiness(err error, code string) bool {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Code == code
	}
	return false
}

// KindOf returns the kind of a business error, ok=false for any other error.
func KindOf(err error) (Kind, bool) {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Kind, true
	}
	return 0, false
}

func CodeOf(err error) string {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Code
	}
	return ""
}
