package ledger

import "errors"

var (
	ErrInvalidFeePercent = errors.New("Fee percent must not exceed 100")
	ErrInvalidUri        = errors.New("URI must not be empty")
	ErrInvalidAccount    = errors.New("Account must not be empty")
	ErrInvalidPrice      = errors.New("Price must be greater than 0")
	ErrTokenNotFound     = errors.New("Token not found")
	ErrListingNotFound   = errors.New("Listing not found")
	ErrUnauthorized      = errors.New("Caller is not owner nor approved")
	ErrAlreadySold       = errors.New("Item already sold")
	ErrPaymentMismatch   = errors.New("Payment must equal the asking price")
	ErrInsufficientFunds = errors.New("Insufficient funds")
)
