package ledger

import "errors"

var (
	ErrSymbolRequired       = errors.New("Stock symbol is required")
	ErrInvalidSymbol        = errors.New("Invalid stock symbol")
	ErrInvalidType          = errors.New("Transaction type must be BUY or SELL")
	ErrInvalidQuantity      = errors.New("Quantity must be a positive integer")
	ErrInvalidPrice         = errors.New("Price must be a positive number")
	ErrInsufficientHoldings = errors.New("Not enough stock to sell")
)
