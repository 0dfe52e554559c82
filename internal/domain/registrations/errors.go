package registrations

import "errors"

var (
	ErrNotFound  = errors.New("registration not found")
	ErrDuplicate = errors.New("car number already registered for this date")

	ErrInvalidInput    = errors.New("invalid input")
	ErrInvalidQuantity = errors.New("invalid quantity")
	ErrUnknownItem     = errors.New("unknown item")

	ErrInitialsRequired      = errors.New("volunteer initials required")
	ErrPaymentMethodRequired = errors.New("payment method required")
	ErrEmptyPayment          = errors.New("payment total must be greater than zero")
)
