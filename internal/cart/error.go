package cart

import (
	"errors"
	"fmt"
)

var (
	ErrItemNotFound       = errors.New("cart item not found")
	ErrOwnListing         = errors.New("you cannot add your own product to the cart")
	ErrProductUnavailable = errors.New("product is not available")
)

// StockError reports a quantity request the product's stock cannot cover.
type StockError struct {
	Available int
	InCart    int
}

func (e *StockError) Error() string {
	switch {
	case e.InCart >= e.Available:
		return "Maximum quantity already in cart"
	case e.InCart > 0:
		return fmt.Sprintf("Can only add %d more item(s)", e.Available-e.InCart)
	default:
		return fmt.Sprintf("Only %d items available", e.Available)
	}
}
