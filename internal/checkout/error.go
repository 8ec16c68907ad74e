package checkout

import (
	"errors"
	"fmt"
)

var (
	ErrCartEmpty       = errors.New("your cart is empty")
	ErrInvalidAddress  = errors.New("invalid shipping address")
	ErrProductGone     = errors.New("a product in your cart no longer exists")
	ErrCheckoutTimeout = errors.New("checkout timed out, please try again")
)

// UnavailableError means a cart line points at a product that is no
// longer purchasable.
type UnavailableError struct {
	Title string
}

func (e *UnavailableError) Error() string {
	return fmt.Sprintf("%s is no longer available", e.Title)
}

// ShortfallError means the requested quantity exceeds current stock.
type ShortfallError struct {
	Title     string
	Available int
}

func (e *ShortfallError) Error() string {
	return fmt.Sprintf("Not enough stock for %s. Only %d available", e.Title, e.Available)
}
